package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

func behaviorFor(kind EnemyKind) Behavior {
	switch kind {
	case EnemyNormal:
		return chaser{shootInterval: config.NormalShootInterval}
	case EnemySniper:
		return sniper{}
	case EnemySplitter:
		return splitter{}
	case EnemySupport:
		return support{}
	default:
		return chaser{}
	}
}

// chaser walks straight at the target. A zero shootInterval never fires.
type chaser struct {
	shootInterval int
}

func (c chaser) Update(e *Enemy, target physics.Vec, _ []*Enemy) *Enemy {
	e.step(e.angleTo(target))
	return nil
}

func (c chaser) Shoot(e *Enemy, target physics.Vec) []*Projectile {
	if c.shootInterval == 0 {
		return nil
	}
	return e.fireAt(target, c.shootInterval)
}

func (chaser) OnDeath(*Enemy, *rand.Rand) []*Enemy { return nil }

// sniper backs away while the target is in range and fires from there.
type sniper struct{}

func (sniper) Update(e *Enemy, target physics.Vec, _ []*Enemy) *Enemy {
	if physics.Distance(e.Pos, target) < e.ShootRange {
		e.step(e.angleTo(target) + math.Pi)
	}
	return nil
}

func (sniper) Shoot(e *Enemy, target physics.Vec) []*Projectile {
	if physics.Distance(e.Pos, target) > e.ShootRange {
		return nil
	}
	return e.fireAt(target, config.SniperShootInterval)
}

func (sniper) OnDeath(*Enemy, *rand.Rand) []*Enemy { return nil }

// splitter chases and breaks into weaker normal enemies on death.
type splitter struct {
	chaser
}

func (splitter) OnDeath(e *Enemy, rng *rand.Rand) []*Enemy {
	children := make([]*Enemy, 0, config.SplitterChildren)
	for i := 0; i < config.SplitterChildren; i++ {
		angle := 2*math.Pi*float64(i)/config.SplitterChildren + rng.Float64()*0.5
		pos := e.Pos.Add(physics.FromAngle(angle, config.SplitterChildRadius))
		child := NewEnemy(EnemyNormal, pos, e.Difficulty*config.SplitterChildFactor)
		child.Health = 1
		children = append(children, child)
	}
	return children
}

// support keeps its distance and periodically heals the nearest damaged ally.
type support struct{}

func (support) Update(e *Enemy, target physics.Vec, allies []*Enemy) *Enemy {
	if physics.Distance(e.Pos, target) < config.SupportRetreatRange {
		e.step(e.angleTo(target) + math.Pi)
	}

	e.healCooldown--
	if e.healCooldown > 0 {
		return nil
	}

	var nearest *Enemy
	best := config.SupportHealRange
	for _, ally := range allies {
		if ally == e || !ally.Active || ally.Health >= ally.MaxHealth {
			continue
		}
		if d := physics.Distance(e.Pos, ally.Pos); d < best {
			nearest, best = ally, d
		}
	}
	if nearest == nil {
		return nil
	}

	nearest.Health = min(nearest.Health+e.HealAmount, nearest.MaxHealth)
	e.healCooldown = config.SupportHealInterval
	return nearest
}

func (support) Shoot(*Enemy, physics.Vec) []*Projectile { return nil }

func (support) OnDeath(*Enemy, *rand.Rand) []*Enemy { return nil }
