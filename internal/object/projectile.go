package object

import (
	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// Projectile is a bullet fired by the player or by an enemy.
type Projectile struct {
	Pos        physics.Vec
	Vel        physics.Vec
	Radius     float64
	Damage     int
	FromPlayer bool
	Bounces    int
	Color      Color
	Active     bool
}

// NewProjectile creates a projectile at pos traveling along angle.
// Projectiles dealing more than one damage are drawn and collide larger.
func NewProjectile(pos physics.Vec, angle, speed float64, damage int, fromPlayer bool, color Color) *Projectile {
	radius := config.ProjectileRadius
	if damage > 1 {
		radius *= config.HeavyRadiusFactor
	}
	return &Projectile{
		Pos:        pos,
		Vel:        physics.FromAngle(angle, speed),
		Radius:     radius,
		Damage:     damage,
		FromPlayer: fromPlayer,
		Color:      color,
		Active:     true,
	}
}

// Update moves the projectile and bounces it off the arena edges.
// Only one edge is resolved per update, x before y. Once the bounce
// budget is spent the next crossing removes the projectile.
func (p *Projectile) Update(arena Arena) {
	if !p.Active {
		return
	}
	p.Pos = p.Pos.Add(p.Vel)

	bounced := false
	if p.Pos.X < 0 || p.Pos.X > arena.Width {
		if p.Bounces >= config.ProjectileMaxBounces {
			p.Active = false
			return
		}
		p.Vel.X = -p.Vel.X
		p.Pos.X = physics.Clamp(p.Pos.X, 0, arena.Width)
		p.Bounces++
		bounced = true
	}

	if !bounced && (p.Pos.Y < 0 || p.Pos.Y > arena.Height) {
		if p.Bounces >= config.ProjectileMaxBounces {
			p.Active = false
			return
		}
		p.Vel.Y = -p.Vel.Y
		p.Pos.Y = physics.Clamp(p.Pos.Y, 0, arena.Height)
		p.Bounces++
	}
}
