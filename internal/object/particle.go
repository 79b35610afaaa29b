package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	Pos     physics.Vec
	Vel     physics.Vec
	Size    float64
	Life    int // Ticks remaining
	MaxLife int // Initial life (for fade calculation)
	Color   Color
	Active  bool
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vec, size float64, life int, color Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = vel
	p.Size = size
	p.Life = life
	p.MaxLife = life
	p.Color = color
	p.Active = true
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion creates count particles in a circular burst pattern.
func SpawnExplosion(pos physics.Vec, color Color, count int, rng *rand.Rand, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 2 + rng.Float64()*4
		size := 2 + rng.Float64()*4
		life := 20 + rng.Intn(21)

		spawner.SpawnParticle(NewParticle(pos, physics.FromAngle(angle, speed), size, life, color))
	}
}

// Update moves the particle and counts down its life.
func (p *Particle) Update() {
	p.Pos = p.Pos.Add(p.Vel)
	p.Vel = p.Vel.Scale(config.ParticleDrag)
	p.Life--
	if p.Life <= 0 {
		p.Active = false
	}
}

// Alpha returns the remaining life fraction used to fade the particle.
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return float64(p.Life) / float64(p.MaxLife)
}
