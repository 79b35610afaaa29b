package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

// DifficultyMultiplier scales new enemies. It grows with time survived and
// kills, capped, then applies the preset's enemy speed factor.
func (s *State) DifficultyMultiplier() float64 {
	minutes := float64(s.ElapsedSeconds()) / 60
	timeBonus := 1 + minutes*config.TimeBonusPerMin
	killBonus := 1 + float64(s.Kills)*config.KillBonus
	return math.Min(timeBonus*killBonus, config.MaxDifficultyMult) * s.Preset.EnemySpeed
}

// EnemySpawnInterval is the time between enemy spawns. It shrinks with time
// survived down to a floor, then applies the preset's spawn rate.
func (s *State) EnemySpawnInterval() time.Duration {
	minutes := float64(s.ElapsedSeconds()) / 60
	reduction := time.Duration(minutes * float64(config.SpawnIntervalPerMin))
	interval := max(config.BaseSpawnInterval-reduction, config.MinSpawnInterval)
	return time.Duration(float64(interval) * s.Preset.SpawnRate)
}

// MaxEnemies is the population cap for regular spawns.
func (s *State) MaxEnemies() int {
	return config.BaseMaxEnemies + s.Wave/2
}

type kindWeight struct {
	kind   object.EnemyKind
	weight float64
}

// spawnWeights returns the enemy mix for a wave. Later waves unlock more
// kinds and keep shifting weight toward the dangerous ones.
func spawnWeights(wave int) []kindWeight {
	switch {
	case wave < 3:
		return []kindWeight{
			{object.EnemyNormal, 0.7},
			{object.EnemySniper, 0.3},
		}
	case wave < 5:
		return []kindWeight{
			{object.EnemyNormal, 0.5},
			{object.EnemySniper, 0.2},
			{object.EnemyTank, 0.15},
			{object.EnemySplitter, 0.15},
		}
	}

	bonus := math.Min(float64(wave-5)*config.LateWaveWeightGrowth, config.LateWaveWeightMaxGain)
	return []kindWeight{
		{object.EnemyNormal, 0.3},
		{object.EnemySniper, 0.15},
		{object.EnemyTank, 0.15 + bonus},
		{object.EnemySplitter, 0.15 + bonus},
		{object.EnemyKamikaze, 0.15 + bonus},
		{object.EnemySupport, 0.1 + bonus},
	}
}

// pickEnemyKind draws a kind from the wave's weight table.
func pickEnemyKind(wave int, rng *rand.Rand) object.EnemyKind {
	weights := spawnWeights(wave)
	total := 0.0
	for _, w := range weights {
		total += w.weight
	}

	r := rng.Float64() * total
	for _, w := range weights {
		r -= w.weight
		if r < 0 {
			return w.kind
		}
	}
	return weights[len(weights)-1].kind
}

// edgeSpawnPos returns a point just outside a random arena edge.
func (s *State) edgeSpawnPos() physics.Vec {
	m := config.EnemySpawnMargin
	w, h := s.Arena.Width, s.Arena.Height
	switch s.rng.Intn(4) {
	case 0:
		return physics.Vec{X: s.rng.Float64() * w, Y: -m}
	case 1:
		return physics.Vec{X: w + m, Y: s.rng.Float64() * h}
	case 2:
		return physics.Vec{X: s.rng.Float64() * w, Y: h + m}
	default:
		return physics.Vec{X: -m, Y: s.rng.Float64() * h}
	}
}

// schedule runs the enemy, powerup and boss timers.
func (s *State) schedule(now time.Time) {
	if now.Sub(s.lastEnemySpawn) > s.EnemySpawnInterval() && len(s.Enemies) < s.MaxEnemies() {
		kind := pickEnemyKind(s.Wave, s.rng)
		mult := s.DifficultyMultiplier() * s.Preset.EnemyHealth
		s.Enemies = append(s.Enemies, object.NewEnemy(kind, s.edgeSpawnPos(), mult))
		s.lastEnemySpawn = now
	}

	if now.Sub(s.lastPowerupSpawn) > config.PowerupSpawnInterval {
		s.spawnPowerup()
		s.lastPowerupSpawn = now
	}

	if s.bossDue() {
		s.spawnBoss()
	}
}

func (s *State) spawnPowerup() {
	kind := object.PowerupKinds[s.rng.Intn(len(object.PowerupKinds))]
	inset := config.PowerupSpawnInset
	pos := physics.Vec{
		X: inset + s.rng.Float64()*(s.Arena.Width-2*inset),
		Y: inset + s.rng.Float64()*(s.Arena.Height-2*inset),
	}
	s.Powerups = append(s.Powerups, object.NewPowerup(kind, pos))
}

// bossDue reports whether the non-boss kill count has crossed a multiple of
// the boss interval not yet used while no boss is alive. Several kills in one
// step, or kills made while a boss is alive, can skip past the multiple.
func (s *State) bossDue() bool {
	return s.Boss == nil &&
		s.nonBossKills/config.BossKillInterval > s.lastBossAt/config.BossKillInterval
}

func (s *State) spawnBoss() {
	pos := physics.Vec{X: s.Arena.Width / 2, Y: config.BossSpawnY}
	boss := object.NewBoss(pos, s.Wave, s.Preset.EnemyHealth, s.Preset.EnemySpeed)
	s.Boss = boss
	s.Enemies = append(s.Enemies, boss)
	s.lastBossAt = s.nonBossKills
	s.shake(config.BossSpawnShake)
	s.emit(EventBossSpawned, pos, boss.MaxHealth)
}
