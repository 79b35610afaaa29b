// Package game runs a Battle Cursor match: it owns every entity, advances
// the simulation one frame per Step and resolves all combat in a fixed order.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

// collisionGridCellSize is the cell size for the enemy spatial grid.
// Must be >= the largest projectile-enemy collision distance
// (heavy projectile 7.5 + boss 40).
const collisionGridCellSize = 50.0

// Options configures a new match.
type Options struct {
	Preset config.Preset
	Clock  Clock // Defaults to SystemClock
	Seed   int64 // Zero seeds from the clock
	Arena  object.Arena
}

// Input is the continuous per-frame input.
type Input struct {
	Move physics.Vec // Already normalized movement vector
}

// State is one match. It is not safe for concurrent use; a single goroutine
// must drive Step and the actions.
type State struct {
	Arena  object.Arena
	Preset config.Preset

	Player        *object.Player
	Enemies       []*object.Enemy
	Projectiles   []*object.Projectile
	Walls         []*object.Wall
	Powerups      []*object.Powerup
	Particles     []*object.Particle
	DamageNumbers []*object.DamageNumber
	Notifications []*object.Notification
	Boss          *object.Enemy // Active boss, also present in Enemies

	Score       int
	Kills       int
	Wave        int
	ScreenShake float64
	Frame       uint64
	Over        bool

	clock            Clock
	rng              *rand.Rand
	startedAt        time.Time
	elapsed          time.Duration
	lastEnemySpawn   time.Time
	lastPowerupSpawn time.Time
	nonBossKills     int
	lastBossAt       int // nonBossKills value that triggered the last boss

	toSpawn []*object.Enemy // Enemies to add after the current step
	events  []Event
	grid    *physics.SpatialGrid
}

// New starts a match.
func New(opts Options) *State {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Arena.Width <= 0 || opts.Arena.Height <= 0 {
		opts.Arena = object.DefaultArena()
	}
	if opts.Preset.Name == "" {
		opts.Preset = config.DefaultPresets()[config.DefaultDifficulty]
	}

	now := opts.Clock.Now()
	seed := opts.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}

	return &State{
		Arena:            opts.Arena,
		Preset:           opts.Preset,
		Player:           object.NewPlayer(opts.Arena, opts.Preset.PlayerHealth),
		Wave:             1,
		clock:            opts.Clock,
		rng:              rand.New(rand.NewSource(seed)),
		startedAt:        now,
		lastEnemySpawn:   now,
		lastPowerupSpawn: now,
		grid:             physics.NewSpatialGrid(opts.Arena.Width, opts.Arena.Height, collisionGridCellSize),
	}
}

// Now returns the match clock's current time.
func (s *State) Now() time.Time {
	return s.clock.Now()
}

// Elapsed returns the time since the match started, frozen once it is over.
func (s *State) Elapsed() time.Duration {
	return s.elapsed
}

// ElapsedSeconds returns the whole seconds survived so far.
func (s *State) ElapsedSeconds() int {
	return int(s.elapsed / time.Second)
}

// SpawnParticle implements object.Spawner.
func (s *State) SpawnParticle(p *object.Particle) {
	s.Particles = append(s.Particles, p)
}

// spawnEnemy queues an enemy to join after the current step.
func (s *State) spawnEnemy(e *object.Enemy) {
	s.toSpawn = append(s.toSpawn, e)
}

// flushSpawned adds all queued enemies and clears the queue.
func (s *State) flushSpawned() {
	s.Enemies = append(s.Enemies, s.toSpawn...)
	s.toSpawn = s.toSpawn[:0]
}

func (s *State) explode(pos physics.Vec, color object.Color, count int) {
	object.SpawnExplosion(pos, color, count, s.rng, s)
}

func (s *State) shake(intensity float64) {
	s.ScreenShake = max(s.ScreenShake, intensity)
}

func (s *State) gameOver() {
	if s.Over {
		return
	}
	s.Over = true
	s.Player.CancelCharge()
	s.emit(EventGameOver, s.Player.Pos, s.Score)
}

// compact drops every inactive entity, keeping order.
func (s *State) compact() {
	s.Enemies = filter(s.Enemies, func(e *object.Enemy) bool { return e.Active })
	s.Projectiles = filter(s.Projectiles, func(p *object.Projectile) bool { return p.Active })
	s.Walls = filter(s.Walls, func(w *object.Wall) bool { return w.Active })
	s.Powerups = filter(s.Powerups, func(p *object.Powerup) bool { return p.Active })
	s.DamageNumbers = filter(s.DamageNumbers, func(d *object.DamageNumber) bool { return d.Active })
	s.Notifications = filter(s.Notifications, func(n *object.Notification) bool { return n.Active })
	s.Particles = filter(s.Particles, func(p *object.Particle) bool {
		if !p.Active {
			p.Release()
			return false
		}
		return true
	})
}

// filter keeps the items for which keep returns true, reusing the backing array.
func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	var zero T
	for i := len(out); i < len(items); i++ {
		items[i] = zero
	}
	return out
}
