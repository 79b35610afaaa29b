package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

func TestEnemySpawnInterval(t *testing.T) {
	s, _ := newTestState(t)

	tests := []struct {
		elapsed time.Duration
		rate    float64
		want    time.Duration
	}{
		{0, 1, 2000 * time.Millisecond},
		{time.Minute, 1, 1900 * time.Millisecond},
		{time.Minute, 1.5, 2850 * time.Millisecond},
		{10 * time.Minute, 1, 1000 * time.Millisecond},
		{30 * time.Minute, 1, 500 * time.Millisecond},
		{30 * time.Minute, 0.5, 250 * time.Millisecond},
	}
	for _, tt := range tests {
		s.elapsed = tt.elapsed
		s.Preset.SpawnRate = tt.rate
		if got := s.EnemySpawnInterval(); got != tt.want {
			t.Errorf("elapsed %v rate %v: interval %v, want %v", tt.elapsed, tt.rate, got, tt.want)
		}
	}
}

func TestDifficultyMultiplier(t *testing.T) {
	s, _ := newTestState(t)

	if got := s.DifficultyMultiplier(); got != 1 {
		t.Fatalf("fresh multiplier = %v", got)
	}

	s.elapsed = 2 * time.Minute
	s.Kills = 25
	if got := s.DifficultyMultiplier(); math.Abs(got-3) > 1e-9 {
		t.Fatalf("multiplier = %v, want 2*1.5 = 3", got)
	}

	s.Kills = 1000
	s.Preset.EnemySpeed = 0.8
	if got := s.DifficultyMultiplier(); math.Abs(got-2.4) > 1e-9 {
		t.Fatalf("capped multiplier = %v, want 2.4", got)
	}
}

func TestMaxEnemies(t *testing.T) {
	s, _ := newTestState(t)
	if got := s.MaxEnemies(); got != 8 {
		t.Fatalf("wave 1 cap = %d", got)
	}
	s.Wave = 5
	if got := s.MaxEnemies(); got != 10 {
		t.Fatalf("wave 5 cap = %d", got)
	}
}

func TestPickEnemyKindByWave(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	count := func(wave int) map[object.EnemyKind]int {
		seen := map[object.EnemyKind]int{}
		for i := 0; i < 5000; i++ {
			seen[pickEnemyKind(wave, rng)]++
		}
		return seen
	}

	early := count(1)
	if len(early) != 2 || early[object.EnemyNormal] < early[object.EnemySniper] {
		t.Errorf("wave 1 mix = %v", early)
	}

	mid := count(3)
	if mid[object.EnemyKamikaze] != 0 || mid[object.EnemySupport] != 0 || mid[object.EnemyTank] == 0 {
		t.Errorf("wave 3 mix = %v", mid)
	}

	late := count(5)
	for _, kind := range []object.EnemyKind{
		object.EnemyNormal, object.EnemySniper, object.EnemyTank,
		object.EnemySplitter, object.EnemyKamikaze, object.EnemySupport,
	} {
		if late[kind] == 0 {
			t.Errorf("wave 5 never picked %v", kind)
		}
	}
	if late[object.EnemyBoss] != 0 {
		t.Error("boss picked by the regular spawner")
	}
}

func TestSpawnWeightsGrowAndCap(t *testing.T) {
	weightOf := func(wave int, kind object.EnemyKind) float64 {
		for _, w := range spawnWeights(wave) {
			if w.kind == kind {
				return w.weight
			}
		}
		return 0
	}
	if weightOf(5, object.EnemyKamikaze) >= weightOf(7, object.EnemyKamikaze) {
		t.Error("kamikaze weight did not grow")
	}
	if got := weightOf(50, object.EnemyTank); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("capped tank weight = %v, want 0.4", got)
	}
	if weightOf(50, object.EnemyNormal) != 0.3 {
		t.Error("normal weight changed in late waves")
	}
}

func TestScheduledEnemySpawn(t *testing.T) {
	s, clock := newTestState(t)
	clock.Advance(2001 * time.Millisecond)
	s.Step(Input{})

	if len(s.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(s.Enemies))
	}
	e := s.Enemies[0]
	if e.Kind != object.EnemyNormal && e.Kind != object.EnemySniper {
		t.Fatalf("wave 1 spawned %v", e.Kind)
	}
	inside := e.Pos.X >= 0 && e.Pos.X <= s.Arena.Width && e.Pos.Y >= 0 && e.Pos.Y <= s.Arena.Height
	if inside {
		t.Fatalf("enemy spawned inside the arena at %+v", e.Pos)
	}

	step(s, clock, 1)
	if len(s.Enemies) != 1 {
		t.Fatal("spawned again before the interval")
	}
}

func TestSpawnRespectsCap(t *testing.T) {
	s, clock := newTestState(t)
	for i := 0; i < s.MaxEnemies(); i++ {
		s.Enemies = append(s.Enemies, object.NewEnemy(object.EnemyTank, physics.Vec{X: 10, Y: float64(10 + 40*i)}, 0.01))
	}
	clock.Advance(3 * time.Second)
	s.Step(Input{})
	if len(s.Enemies) != 8 {
		t.Fatalf("enemies = %d, want cap 8", len(s.Enemies))
	}
}

func TestScheduledPowerupSpawn(t *testing.T) {
	s, clock := newTestState(t)
	s.lastEnemySpawn = t0.Add(time.Hour)

	clock.Advance(config.PowerupSpawnInterval + time.Millisecond)
	s.Step(Input{})
	if len(s.Powerups) != 1 {
		t.Fatalf("powerups = %d, want 1", len(s.Powerups))
	}
	p := s.Powerups[0].Pos
	if p.X < 50 || p.X > 1150 || p.Y < 50 || p.Y > 750 {
		t.Fatalf("powerup outside inset area: %+v", p)
	}
}

func TestBossScalesWithPreset(t *testing.T) {
	s, _ := newTestState(t)
	s.Wave = 3
	s.Preset.EnemyHealth = 0.5
	s.spawnBoss()
	if s.Boss.MaxHealth != 55 {
		t.Fatalf("boss health = %d, want floor((50+60)*0.5) = 55", s.Boss.MaxHealth)
	}
	if s.Boss.Pos != (physics.Vec{X: 600, Y: -50}) {
		t.Fatalf("boss spawned at %+v", s.Boss.Pos)
	}
	if s.ScreenShake != 10 {
		t.Fatalf("shake = %v", s.ScreenShake)
	}
}

func TestBossSpawnsWhenKillsSkipTheInterval(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)
	s.nonBossKills, s.Kills = 9, 9

	for _, y := range []float64{250, 550} {
		e := object.NewEnemy(object.EnemyNormal, physics.Vec{X: 700, Y: y}, 1)
		e.Health = 1
		s.Enemies = append(s.Enemies, e)
		s.Projectiles = append(s.Projectiles, playerShot(680, y, 0, 1))
	}
	step(s, clock, 1)
	if s.nonBossKills != 11 {
		t.Fatalf("non-boss kills = %d, want 11", s.nonBossKills)
	}

	step(s, clock, 5)
	if s.Boss == nil {
		t.Fatal("no boss after kills went from 9 to 11")
	}
}

func TestBossDueTracksIntervals(t *testing.T) {
	s, _ := newTestState(t)

	tests := []struct {
		kills, lastBossAt int
		bossAlive         bool
		want              bool
	}{
		{0, 0, false, false},
		{9, 0, false, false},
		{10, 0, false, true},
		{13, 0, false, true},
		{10, 10, false, false},
		{19, 10, false, false},
		{21, 10, false, true},
		{21, 10, true, false},
		{21, 21, false, false},
		{30, 21, false, true},
	}
	for _, tt := range tests {
		s.nonBossKills, s.lastBossAt = tt.kills, tt.lastBossAt
		s.Boss = nil
		if tt.bossAlive {
			s.Boss = object.NewEnemy(object.EnemyNormal, physics.Vec{}, 1)
		}
		if got := s.bossDue(); got != tt.want {
			t.Errorf("kills %d last %d alive %v: bossDue = %v, want %v", tt.kills, tt.lastBossAt, tt.bossAlive, got, tt.want)
		}
	}
}
