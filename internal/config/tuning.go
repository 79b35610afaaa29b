package config

import (
	"math"
	"time"
)

// Arena dimensions in logical units. Renderers scale to fit.
const (
	ArenaWidth  = 1200
	ArenaHeight = 800
)

// Simulation rate. Speeds below are in units per tick.
const (
	TickRate = 60
	TickTime = time.Second / TickRate
)

// Player
const (
	PlayerRadius        = 15.0
	PlayerSpeed         = 5.0
	PlayerBaseHealth    = 5
	SpeedPowerupFactor  = 1.5
	DiagonalFactor      = 0.707
	TrailLength         = 10
	DashDistance        = 150.0
	DashCooldown        = 3000 * time.Millisecond
	DashInvulnerability = 100 * time.Millisecond
	ShootCooldown       = 250 * time.Millisecond
	ChargeTime          = 1000 * time.Millisecond
	ChargeMultiplier    = 3
	MultishotSpread     = 0.2 // radians
	ShieldCharges       = 3
	HealthPackAmount    = 2
	ChargedShotShake    = 5.0
	ComboTimeout        = 3000 * time.Millisecond
)

// ComboMultipliers maps combo-1 to the score multiplier.
var ComboMultipliers = []float64{1, 1.5, 2, 2.5, 3, 4, 5}

// Projectile
const (
	ProjectileRadius     = 5.0
	ProjectileSpeed      = 12.0
	ProjectileDamage     = 1
	ProjectileMaxBounces = 2
	HeavyRadiusFactor    = 1.5
)

// Wall
const (
	WallMaxLength    = 150.0
	WallMinDrag      = 30.0
	WallDuration     = 2000 * time.Millisecond
	WallCooldown     = 4000 * time.Millisecond
	WallThickness    = 8.0
	WallHitExplosion = 8
)

// Enemy behavior
const (
	NormalShootInterval  = 60  // ticks
	SniperShootInterval  = 90  // ticks
	SupportHealInterval  = 120 // ticks
	SupportHealRange     = 150.0
	SupportRetreatRange  = 200.0
	EnemySpawnMargin     = 20.0
	EnemyProjectileSpeed = 12.0
	SplitterChildren     = 2
	SplitterChildRadius  = 20.0
	SplitterChildFactor  = 0.7
	KamikazeSplashDamage = 2
	KamikazeContactBase  = 2
	ContactBase          = 1
)

// Boss
const (
	BossRadius          = 40.0
	BossBaseHealth      = 50
	BossHealthPerWave   = 20
	BossBaseSpeed       = 2.0
	BossSpeedPerPhase   = 0.5
	BossScore           = 1000
	BossKillInterval    = 10 // non-boss kills between bosses
	BossAttackInterval  = 60 // ticks, divided by phase
	BossProjectileBase  = 3
	BossProjectileDmg   = 2
	BossContactCooldown = 60 // ticks
	BossContactBase     = 2
	BossSpawnY          = -50.0
	BossSpawnShake      = 10.0
	BossDeathShake      = 15.0
	BossPhase2Threshold = 0.66
	BossPhase3Threshold = 0.33
	BossOrbitEvery      = 3
	BossSpreadPerPhase  = math.Pi / 4
)

// Powerups
const (
	PowerupRadius        = 20.0
	PowerupSpawnInterval = 10000 * time.Millisecond
	PowerupDuration      = 8000 * time.Millisecond
	PowerupSpawnInset    = 50.0
	PowerupScore         = 50
	MagnetRange          = 200.0
	MagnetPull           = 3.0
)

// Scheduler
const (
	BaseSpawnInterval     = 2000 * time.Millisecond
	MinSpawnInterval      = 500 * time.Millisecond
	SpawnIntervalPerMin   = 100 * time.Millisecond
	TimeBonusPerMin       = 0.5
	KillBonus             = 0.02
	MaxDifficultyMult     = 3.0
	BaseMaxEnemies        = 8
	LateWaveWeightGrowth  = 0.05
	LateWaveWeightMaxGain = 0.25
)

// Feedback
const (
	ParticleDrag         = 0.98
	ExplosionCount       = 20
	DamageNumberLife     = 60  // ticks
	NotificationLife     = 120 // ticks
	ShakeDecay           = 0.9
	ShakeFloor           = 0.1
	ContactShake         = 3.0
	KamikazeShake        = 8.0
	ProjectileHitShake   = 5.0
	ContactExplosion     = 20
	KamikazeExplosion    = 40
	ProjectileExplosion  = 15
	KillExplosion        = 20
	KillShake            = 4.0
	HealExplosion        = 10
	PowerupExplosion     = 15
	DamageNumberPerPoint = 100
)

// Input
const (
	TouchDeadZone    = 5.0
	TouchSensitivity = 50.0
)

// High scores
const (
	MaxHighScores = 10
)

// Terminal clients
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
	ClientTargetFrameTime    = TickTime
)
