package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// BossState is the behavior of a boss enemy. It escalates through three
// phases as its health drops and alternates orbiting and chasing the target.
type BossState struct {
	Phase   int
	Pattern int

	speedMult       float64
	attackCooldown  int // ticks
	contactCooldown int // ticks
	firing          bool
}

// NewBoss creates a boss for the given wave. Health scales with the wave and
// healthMult; speedMult scales the phase speed for the whole fight.
func NewBoss(pos physics.Vec, wave int, healthMult, speedMult float64) *Enemy {
	s := StatsFor(EnemyBoss)
	health := max(int(math.Floor(float64(s.Health+wave*config.BossHealthPerWave)*healthMult)), 1)
	b := &BossState{Phase: 1, speedMult: speedMult}
	return &Enemy{
		Kind:       EnemyBoss,
		Pos:        pos,
		Radius:     s.Radius,
		BaseSpeed:  s.Speed,
		Speed:      s.Speed * speedMult,
		Health:     health,
		MaxHealth:  health,
		Score:      s.Score,
		Color:      s.Color,
		Difficulty: 1,
		Active:     true,
		behavior:   b,
	}
}

// Update raises the phase as health drops, moves, and arms the next volley
// when the attack cooldown runs out.
func (b *BossState) Update(e *Enemy, target physics.Vec, _ []*Enemy) *Enemy {
	frac := e.HealthFraction()
	switch {
	case frac < config.BossPhase3Threshold:
		b.Phase = max(b.Phase, 3)
	case frac < config.BossPhase2Threshold:
		b.Phase = max(b.Phase, 2)
	}

	e.Speed = (config.BossBaseSpeed + float64(b.Phase)*config.BossSpeedPerPhase) * b.speedMult
	b.attackCooldown--
	if b.contactCooldown > 0 {
		b.contactCooldown--
	}

	angle := e.angleTo(target)
	if b.Pattern%config.BossOrbitEvery == 0 {
		angle += math.Pi / 2
	}
	e.step(angle)

	if b.attackCooldown <= 0 {
		b.firing = true
		b.Pattern++
		b.attackCooldown = config.BossAttackInterval / b.Phase
	}
	return nil
}

// Shoot releases the armed volley: a fan of 3+phase heavy projectiles
// centred on the target, wider each phase.
func (b *BossState) Shoot(e *Enemy, target physics.Vec) []*Projectile {
	if !b.firing {
		return nil
	}
	b.firing = false

	count := config.BossProjectileBase + b.Phase
	spread := config.BossSpreadPerPhase * float64(b.Phase)
	base := e.angleTo(target)

	shots := make([]*Projectile, 0, count)
	for i := 0; i < count; i++ {
		angle := base + (float64(i)-float64(count)/2)*(spread/float64(count))
		shots = append(shots, NewProjectile(e.Pos, angle, config.EnemyProjectileSpeed, config.BossProjectileDmg, false, e.Color))
	}
	return shots
}

// OnDeath spawns nothing.
func (b *BossState) OnDeath(*Enemy, *rand.Rand) []*Enemy { return nil }

// TryContact reports whether the boss may hurt the player on contact this
// tick and starts the contact cooldown if so.
func (b *BossState) TryContact() bool {
	if b.contactCooldown > 0 {
		return false
	}
	b.contactCooldown = config.BossContactCooldown
	return true
}
