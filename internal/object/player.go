package object

import (
	"math"
	"time"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// Player is the cursor-avatar controlled by the user.
//
// Cooldowns and timed effects are stored as timestamps and released by Tick,
// so nothing scheduled for one match can fire into another.
type Player struct {
	Pos       physics.Vec
	Radius    float64
	Speed     float64
	Health    int
	MaxHealth int
	Shield    int
	Combo     int
	MaxCombo  int
	Trail     []physics.Vec // Most recent position last
	Arena     Arena

	lastKill time.Time
	powerups map[PowerupKind]time.Time // Expiry per active timed effect

	canShoot     bool
	shootReadyAt time.Time
	canDash      bool
	dashReadyAt  time.Time
	canPlaceWall bool
	wallReadyAt  time.Time

	dashing           bool
	invulnerable      bool
	invulnerableUntil time.Time

	charging    bool
	chargeStart time.Time
}

// NewPlayer creates a player in the middle of the arena.
func NewPlayer(arena Arena, maxHealth int) *Player {
	if maxHealth <= 0 {
		maxHealth = config.PlayerBaseHealth
	}
	return &Player{
		Pos:          arena.Center(),
		Radius:       config.PlayerRadius,
		Speed:        config.PlayerSpeed,
		Health:       maxHealth,
		MaxHealth:    maxHealth,
		Arena:        arena,
		powerups:     make(map[PowerupKind]time.Time),
		canShoot:     true,
		canDash:      true,
		canPlaceWall: true,
	}
}

// Move displaces the player by the movement vector scaled by its speed.
// The vector is expected to be already normalized by the input layer.
func (p *Player) Move(v physics.Vec) {
	speed := p.Speed
	if p.HasPowerup(PowerupSpeed) {
		speed *= config.SpeedPowerupFactor
	}

	p.Pos = p.Arena.Clamp(p.Pos.Add(v.Scale(speed)), p.Radius)

	p.Trail = append(p.Trail, p.Pos)
	if len(p.Trail) > config.TrailLength {
		p.Trail = p.Trail[len(p.Trail)-config.TrailLength:]
	}
}

// Shoot fires toward aim. Uncharged shots respect and restart the shoot
// cooldown; charged shots bypass it and deal amplified damage.
func (p *Player) Shoot(aim physics.Vec, charged bool, now time.Time) []*Projectile {
	if !p.canShoot && !charged {
		return nil
	}

	damage := config.ProjectileDamage
	if charged {
		damage *= config.ChargeMultiplier
	}

	angle := aim.Sub(p.Pos).Angle()
	var shots []*Projectile
	if p.HasPowerup(PowerupMultishot) {
		for i := -1; i <= 1; i++ {
			spread := angle + float64(i)*config.MultishotSpread
			shots = append(shots, NewProjectile(p.Pos, spread, config.ProjectileSpeed, damage, true, ColorPlayer))
		}
	} else {
		shots = append(shots, NewProjectile(p.Pos, angle, config.ProjectileSpeed, damage, true, ColorPlayer))
	}

	if !charged {
		cooldown := config.ShootCooldown
		if p.HasPowerup(PowerupRapid) {
			cooldown /= 2
		}
		p.canShoot = false
		p.shootReadyAt = now.Add(cooldown)
	}
	return shots
}

// StartCharge begins holding a charge shot.
func (p *Player) StartCharge(now time.Time) {
	p.charging = true
	p.chargeStart = now
}

// ReleaseCharge ends the charge. A charge held for at least the charge time
// fires charged projectiles; a shorter one is wasted and yields none.
func (p *Player) ReleaseCharge(aim physics.Vec, now time.Time) []*Projectile {
	if !p.charging {
		return nil
	}
	p.charging = false

	if now.Sub(p.chargeStart) >= config.ChargeTime {
		return p.Shoot(aim, true, now)
	}
	return nil
}

// CancelCharge drops a charge in progress without firing.
func (p *Player) CancelCharge() {
	p.charging = false
}

// Charging reports whether a charge is being held.
func (p *Player) Charging() bool {
	return p.charging
}

// ChargePercent returns the charge progress in [0, 1].
func (p *Player) ChargePercent(now time.Time) float64 {
	if !p.charging {
		return 0
	}
	return math.Min(float64(now.Sub(p.chargeStart))/float64(config.ChargeTime), 1)
}

// Dash teleports the player toward aim and grants a short invulnerability
// window. Returns false while on cooldown or already dashing.
func (p *Player) Dash(aim physics.Vec, now time.Time) bool {
	if !p.canDash || p.dashing {
		return false
	}

	angle := aim.Sub(p.Pos).Angle()
	p.Pos = p.Arena.Clamp(p.Pos.Add(physics.FromAngle(angle, config.DashDistance)), p.Radius)

	p.dashing = true
	p.invulnerable = true
	p.invulnerableUntil = now.Add(config.DashInvulnerability)
	p.canDash = false
	p.dashReadyAt = now.Add(config.DashCooldown)
	return true
}

// CanShoot reports whether an uncharged shot is available.
func (p *Player) CanShoot() bool { return p.canShoot }

// CanDash reports whether the dash is off cooldown.
func (p *Player) CanDash() bool { return p.canDash && !p.dashing }

// CanPlaceWall reports whether the wall is off cooldown.
func (p *Player) CanPlaceWall() bool { return p.canPlaceWall }

// Dashing reports whether a dash is in progress.
func (p *Player) Dashing() bool { return p.dashing }

// Invulnerable reports whether incoming damage is ignored.
func (p *Player) Invulnerable() bool { return p.invulnerable }

// StartWallCooldown marks a wall as placed.
func (p *Player) StartWallCooldown(now time.Time) {
	p.canPlaceWall = false
	p.wallReadyAt = now.Add(config.WallCooldown)
}

// TakeDamage applies damage, shield first. Overflow past the shield reaches
// health. Returns true when health has dropped to zero.
func (p *Player) TakeDamage(amount int) bool {
	if p.invulnerable {
		return false
	}

	if p.Shield > 0 {
		p.Shield -= amount
		if p.Shield < 0 {
			p.Health += p.Shield
			p.Shield = 0
		}
	} else {
		p.Health -= amount
	}

	if p.Health <= 0 {
		p.Health = 0
		return true
	}
	return false
}

// Heal restores health up to the maximum.
func (p *Player) Heal(amount int) {
	p.Health = min(p.Health+amount, p.MaxHealth)
}

// AddKill extends the combo if the previous kill is recent enough,
// otherwise starts a new one.
func (p *Player) AddKill(now time.Time) {
	if !p.lastKill.IsZero() && now.Sub(p.lastKill) < config.ComboTimeout {
		p.Combo++
	} else {
		p.Combo = 1
	}
	p.lastKill = now
	p.MaxCombo = max(p.MaxCombo, p.Combo)
}

// ComboMultiplier returns the score multiplier for the current combo.
func (p *Player) ComboMultiplier() float64 {
	table := config.ComboMultipliers
	idx := min(p.Combo-1, len(table)-1)
	return table[max(0, idx)]
}

// AddPowerup activates a timed effect. Collecting an active effect again
// extends it to a full duration.
func (p *Player) AddPowerup(kind PowerupKind, now time.Time) {
	expiry := now.Add(config.PowerupDuration)
	if cur, ok := p.powerups[kind]; ok && cur.After(expiry) {
		return
	}
	p.powerups[kind] = expiry
}

// HasPowerup reports whether the timed effect is active.
func (p *Player) HasPowerup(kind PowerupKind) bool {
	_, ok := p.powerups[kind]
	return ok
}

// PowerupRemaining returns the time left on an active effect.
func (p *Player) PowerupRemaining(kind PowerupKind, now time.Time) time.Duration {
	expiry, ok := p.powerups[kind]
	if !ok {
		return 0
	}
	return max(expiry.Sub(now), 0)
}

// Powerups returns the active timed effects in a stable order.
func (p *Player) Powerups() []PowerupKind {
	var kinds []PowerupKind
	for _, kind := range PowerupKinds {
		if p.HasPowerup(kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Tick releases cooldowns and effects whose time has come and resets a
// combo that timed out.
func (p *Player) Tick(now time.Time) {
	if !p.canShoot && !now.Before(p.shootReadyAt) {
		p.canShoot = true
	}
	if !p.canDash && !now.Before(p.dashReadyAt) {
		p.canDash = true
	}
	if !p.canPlaceWall && !now.Before(p.wallReadyAt) {
		p.canPlaceWall = true
	}
	if p.invulnerable && !now.Before(p.invulnerableUntil) {
		p.invulnerable = false
		p.dashing = false
	}
	for kind, expiry := range p.powerups {
		if !now.Before(expiry) {
			delete(p.powerups, kind)
		}
	}
	if p.Combo > 0 && now.Sub(p.lastKill) > config.ComboTimeout {
		p.Combo = 0
	}
}
