// Package fx provides short-lived visual particles for hits and explosions.
// Particles are presentation only and never feed back into the simulation.
package fx

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool reuses Particle values across bursts.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a single spark drifting away from a burst origin.
type Particle struct {
	X, Y    float64 // Position in playfield units
	VX, VY  float64 // Velocity per tick
	Life    int     // Ticks remaining
	MaxLife int
	Drag    float64 // Velocity multiplier per tick (1.0 = no drag)
	Symbol  rune
}

// Faded reports whether the particle is in the last quarter of its life.
func (p *Particle) Faded() bool {
	return p.MaxLife > 0 && p.Life*4 < p.MaxLife
}

func newParticle(x, y, vx, vy float64, life int, symbol rune) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Life:    life,
		MaxLife: life,
		Drag:    0.95,
		Symbol:  symbol,
	}
	return p
}

// release returns the particle to the pool.
func (p *Particle) release() {
	particlePool.Put(p)
}

// Burst sizes and speeds per effect.
const (
	hitParticlesPerSize = 4
	hitSpeed            = 3.0
	hitLife             = 30
	shipParticles       = 24
	shipSpeed           = 4.0
	shipLife            = 60
)

var burstSymbols = []rune{'#', '@', '*', '%', 'X', 'O', '+'}

// System owns every live particle of one session.
type System struct {
	rng       *rand.Rand
	particles []*Particle
}

// NewSystem creates an empty particle system.
func NewSystem(rng *rand.Rand) *System {
	return &System{rng: rng}
}

// Particles returns the live particles. Callers must not keep the slice.
func (s *System) Particles() []*Particle {
	return s.particles
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// AsteroidHit bursts a few sparks, more for larger rocks.
func (s *System) AsteroidHit(x, y float64, size int) {
	s.burst(x, y, size*hitParticlesPerSize, hitSpeed, hitLife)
}

// ShipDestroyed bursts the ship's explosion.
func (s *System) ShipDestroyed(x, y float64) {
	s.burst(x, y, shipParticles, shipSpeed, shipLife)
}

// burst spawns count particles in a circle around (x, y).
func (s *System) burst(x, y float64, count int, speed float64, life int) {
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + s.rng.Float64())
		l := int(float64(life) * (0.5 + s.rng.Float64()*0.5))
		if l < 1 {
			l = 1
		}
		symbol := burstSymbols[s.rng.Intn(len(burstSymbols))]
		s.particles = append(s.particles, newParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, l, symbol))
	}
}

// Update advances every particle by one tick and drops expired ones.
func (s *System) Update() {
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.Life--
		if p.Life <= 0 {
			p.release()
			continue
		}
		p.VX *= p.Drag
		p.VY *= p.Drag
		p.X += p.VX
		p.Y += p.VY
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

// Reset releases every particle.
func (s *System) Reset() {
	for _, p := range s.particles {
		p.release()
	}
	clear(s.particles)
	s.particles = s.particles[:0]
}
