package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// EnemyKind identifies an enemy variant.
type EnemyKind uint8

// Enemy kinds.
const (
	EnemyNormal EnemyKind = iota
	EnemySniper
	EnemyTank
	EnemySplitter
	EnemyKamikaze
	EnemySupport
	EnemyBoss
)

var enemyKindNames = [...]string{"normal", "sniper", "tank", "splitter", "kamikaze", "support", "boss"}

func (k EnemyKind) String() string {
	if int(k) < len(enemyKindNames) {
		return enemyKindNames[k]
	}
	return "unknown"
}

// EnemyStats are the unscaled attributes of a kind.
type EnemyStats struct {
	Radius          float64
	Speed           float64
	Health          int
	Score           int
	Color           Color
	ShootRange      float64
	ExplosionRadius float64
	HealAmount      int
}

var enemyStats = map[EnemyKind]EnemyStats{
	EnemyNormal:   {Radius: 12, Speed: 3, Health: 2, Score: 100, Color: 0xff0000},
	EnemySniper:   {Radius: 10, Speed: 1.5, Health: 1, Score: 150, Color: 0xff00ff, ShootRange: 400},
	EnemyTank:     {Radius: 18, Speed: 1.5, Health: 8, Score: 300, Color: 0xff8800},
	EnemySplitter: {Radius: 14, Speed: 2.5, Health: 3, Score: 200, Color: 0x00ff88},
	EnemyKamikaze: {Radius: 10, Speed: 5, Health: 1, Score: 120, Color: 0xffff00, ExplosionRadius: 60},
	EnemySupport:  {Radius: 11, Speed: 2, Health: 2, Score: 180, Color: 0x8888ff, HealAmount: 1},
	EnemyBoss:     {Radius: config.BossRadius, Speed: config.BossBaseSpeed, Health: config.BossBaseHealth, Score: config.BossScore, Color: ColorBoss},
}

// StatsFor returns the base attributes of kind.
func StatsFor(kind EnemyKind) EnemyStats {
	if s, ok := enemyStats[kind]; ok {
		return s
	}
	return enemyStats[EnemyNormal]
}

// Behavior is the per-kind part of an enemy.
type Behavior interface {
	// Update moves the enemy for one tick. It may return an ally it healed.
	Update(e *Enemy, target physics.Vec, allies []*Enemy) (healed *Enemy)
	// Shoot returns the projectiles fired this tick, if any.
	Shoot(e *Enemy, target physics.Vec) []*Projectile
	// OnDeath returns enemies spawned by the death.
	OnDeath(e *Enemy, rng *rand.Rand) []*Enemy
}

// Enemy is a hostile unit. Kind-specific logic lives in its Behavior.
type Enemy struct {
	Kind            EnemyKind
	Pos             physics.Vec
	Radius          float64
	BaseSpeed       float64
	Speed           float64
	Health          int
	MaxHealth       int
	Score           int
	Color           Color
	Difficulty      float64 // Multiplier the stats were scaled by
	ShootRange      float64
	ExplosionRadius float64
	HealAmount      int
	Active          bool

	shootCooldown int // ticks
	healCooldown  int // ticks
	behavior      Behavior
}

// NewEnemy creates an enemy of kind with speed and health scaled by mult.
// Scaled health never drops below one.
func NewEnemy(kind EnemyKind, pos physics.Vec, mult float64) *Enemy {
	if kind == EnemyBoss {
		return NewBoss(pos, 1, 1, 1)
	}
	s := StatsFor(kind)
	health := max(int(math.Floor(float64(s.Health)*mult)), 1)
	return &Enemy{
		Kind:            kind,
		Pos:             pos,
		Radius:          s.Radius,
		BaseSpeed:       s.Speed,
		Speed:           s.Speed * mult,
		Health:          health,
		MaxHealth:       health,
		Score:           s.Score,
		Color:           s.Color,
		Difficulty:      mult,
		ShootRange:      s.ShootRange,
		ExplosionRadius: s.ExplosionRadius,
		HealAmount:      s.HealAmount,
		Active:          true,
		behavior:        behaviorFor(kind),
	}
}

// Update runs the behavior for one tick and returns a healed ally, if any.
func (e *Enemy) Update(target physics.Vec, allies []*Enemy) *Enemy {
	if !e.Active {
		return nil
	}
	healed := e.behavior.Update(e, target, allies)
	e.shootCooldown--
	return healed
}

// Shoot returns projectiles fired toward target this tick.
func (e *Enemy) Shoot(target physics.Vec) []*Projectile {
	if !e.Active {
		return nil
	}
	return e.behavior.Shoot(e, target)
}

// OnDeath returns the enemies spawned when e dies.
func (e *Enemy) OnDeath(rng *rand.Rand) []*Enemy {
	return e.behavior.OnDeath(e, rng)
}

// TakeDamage subtracts health and deactivates the enemy at zero.
// Returns true when this call killed it.
func (e *Enemy) TakeDamage(amount int) bool {
	if !e.Active {
		return false
	}
	e.Health -= amount
	if e.Health <= 0 {
		e.Active = false
		return true
	}
	return false
}

// Boss returns the boss state when e is a boss.
func (e *Enemy) Boss() (*BossState, bool) {
	b, ok := e.behavior.(*BossState)
	return b, ok
}

// HealthFraction returns health over max health.
func (e *Enemy) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return float64(e.Health) / float64(e.MaxHealth)
}

func (e *Enemy) step(angle float64) {
	e.Pos = e.Pos.Add(physics.FromAngle(angle, e.Speed))
}

func (e *Enemy) angleTo(target physics.Vec) float64 {
	return target.Sub(e.Pos).Angle()
}

func (e *Enemy) fireAt(target physics.Vec, interval int) []*Projectile {
	if e.shootCooldown > 0 {
		return nil
	}
	e.shootCooldown = interval
	return []*Projectile{
		NewProjectile(e.Pos, e.angleTo(target), config.EnemyProjectileSpeed, config.ProjectileDamage, false, e.Color),
	}
}
