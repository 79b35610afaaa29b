package game

import (
	"math"
	"time"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

// scaledDamage applies the preset damage factor, rounding up.
func (s *State) scaledDamage(base int) int {
	return int(math.Ceil(float64(base) * s.Preset.Damage))
}

// hurtPlayer applies damage and ends the match on death.
func (s *State) hurtPlayer(amount int) {
	health, shield := s.Player.Health, s.Player.Shield
	died := s.Player.TakeDamage(amount)
	if taken := health - s.Player.Health + shield - s.Player.Shield; taken > 0 {
		s.emit(EventPlayerHurt, s.Player.Pos, taken)
	}
	if died {
		s.gameOver()
	}
}

// updateEnemies moves every enemy, collects their shots and resolves
// contact with the player.
func (s *State) updateEnemies(now time.Time) {
	target := s.Player.Pos
	for _, e := range s.Enemies {
		if !e.Active {
			continue
		}

		if healed := e.Update(target, s.Enemies); healed != nil {
			s.explode(healed.Pos, object.ColorHeal, config.HealExplosion)
		}
		s.Projectiles = append(s.Projectiles, e.Shoot(target)...)

		if !physics.CirclesOverlap(e.Pos, e.Radius, s.Player.Pos, s.Player.Radius) {
			continue
		}
		s.resolveContact(e, now)
	}
}

func (s *State) resolveContact(e *object.Enemy, now time.Time) {
	if boss, ok := e.Boss(); ok {
		if !boss.TryContact() {
			return
		}
		s.hurtPlayer(s.scaledDamage(config.BossContactBase))
		s.explode(e.Pos, e.Color, config.ContactExplosion)
		s.shake(config.ContactShake)
		return
	}

	base := config.ContactBase
	if e.Kind == object.EnemyKamikaze {
		base = config.KamikazeContactBase
		s.explode(e.Pos, e.Color, config.KamikazeExplosion)
		s.shake(config.KamikazeShake)
		s.emit(EventKamikaze, e.Pos, 0)
		for _, other := range s.Enemies {
			if other == e || !other.Active {
				continue
			}
			if physics.Distance(e.Pos, other.Pos) < e.ExplosionRadius && other.TakeDamage(config.KamikazeSplashDamage) {
				s.killEnemy(other, false, now)
			}
		}
	}

	s.hurtPlayer(s.scaledDamage(base))
	e.Active = false
	s.explode(e.Pos, e.Color, config.ContactExplosion)
	s.shake(config.ContactShake)
}

// updateProjectiles moves projectiles and resolves walls, enemy hits and
// player hits.
func (s *State) updateProjectiles(now time.Time) {
	s.grid.Clear()
	for i, e := range s.Enemies {
		if e.Active {
			s.grid.Insert(e.Pos, i)
		}
	}

	for _, p := range s.Projectiles {
		if !p.Active {
			continue
		}
		p.Update(s.Arena)
		if !p.Active {
			continue
		}

		for _, w := range s.Walls {
			if w.Active && w.CollidesWith(p.Pos, p.Radius) {
				p.Active = false
				s.explode(p.Pos, p.Color, config.WallHitExplosion)
				s.emit(EventWallHit, p.Pos, 0)
				break
			}
		}
		if !p.Active {
			continue
		}

		if p.FromPlayer {
			s.hitEnemy(p, now)
		} else {
			s.hitPlayer(p)
		}
	}
}

// hitEnemy damages the first active enemy, in collection order, that the
// projectile overlaps. A projectile hits at most one enemy.
func (s *State) hitEnemy(p *object.Projectile, now time.Time) {
	target := -1
	s.grid.QueryAround(p.Pos, func(i int) bool {
		e := s.Enemies[i]
		if e.Active && (target < 0 || i < target) && physics.CirclesOverlap(p.Pos, p.Radius, e.Pos, e.Radius) {
			target = i
		}
		return false
	})
	if target < 0 {
		return
	}

	e := s.Enemies[target]
	p.Active = false
	died := e.TakeDamage(p.Damage)
	s.DamageNumbers = append(s.DamageNumbers,
		object.NewDamageNumber(e.Pos, p.Damage*config.DamageNumberPerPoint, s.Player.Combo > 1))
	s.emit(EventEnemyHit, e.Pos, p.Damage)

	if died {
		s.killEnemy(e, true, now)
	}
}

// killEnemy handles a death. Only player kills score and feed the combo.
func (s *State) killEnemy(e *object.Enemy, byPlayer bool, now time.Time) {
	for _, child := range e.OnDeath(s.rng) {
		s.spawnEnemy(child)
	}

	if e == s.Boss {
		s.Boss = nil
		s.Wave++
		s.shake(config.BossDeathShake)
		s.emit(EventBossDefeated, e.Pos, s.Wave)
	}

	gained := 0
	if byPlayer {
		s.Player.AddKill(now)
		gained = int(math.Floor(float64(e.Score) * s.Player.ComboMultiplier()))
		s.Score += gained
		s.Kills++
		if e.Kind != object.EnemyBoss {
			s.nonBossKills++
		}
	}

	s.explode(e.Pos, e.Color, config.KillExplosion)
	s.shake(config.KillShake)
	s.emit(EventEnemyKilled, e.Pos, gained)
}

func (s *State) hitPlayer(p *object.Projectile) {
	if !physics.CirclesOverlap(p.Pos, p.Radius, s.Player.Pos, s.Player.Radius) {
		return
	}
	p.Active = false
	s.hurtPlayer(s.scaledDamage(p.Damage))
	s.explode(s.Player.Pos, object.ColorWhite, config.ProjectileExplosion)
	s.shake(config.ProjectileHitShake)
}

// updatePowerups applies the magnet and collects touched powerups.
func (s *State) updatePowerups(now time.Time) {
	magnet := s.Player.HasPowerup(object.PowerupMagnet)
	for _, pu := range s.Powerups {
		if !pu.Active {
			continue
		}
		pu.Update(s.Player.Pos, magnet)
		if physics.CirclesOverlap(pu.Pos, pu.Radius, s.Player.Pos, s.Player.Radius) {
			s.collect(pu, now)
		}
	}
}

func (s *State) collect(pu *object.Powerup, now time.Time) {
	pu.Active = false
	s.Notifications = append(s.Notifications, object.NewNotification(pu.Kind))

	switch pu.Kind {
	case object.PowerupShield:
		s.Player.Shield = config.ShieldCharges
	case object.PowerupHealth:
		s.Player.Heal(config.HealthPackAmount)
	default:
		s.Player.AddPowerup(pu.Kind, now)
	}

	s.Score += config.PowerupScore
	s.explode(pu.Pos, pu.Kind.Color(), config.PowerupExplosion)
	s.emit(EventPowerup, pu.Pos, int(pu.Kind))
}

// updateFeedback ages particles, numbers and notifications and decays the
// screen shake.
func (s *State) updateFeedback() {
	for _, p := range s.Particles {
		p.Update()
	}
	for _, d := range s.DamageNumbers {
		d.Update()
	}
	for _, n := range s.Notifications {
		n.Update()
	}

	s.ScreenShake *= config.ShakeDecay
	if s.ScreenShake < config.ShakeFloor {
		s.ScreenShake = 0
	}
}
