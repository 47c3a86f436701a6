// Package particle holds the drifting, twinkling star field behind the page.
package particle

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/iburimskiy/starfield/internal/config"
)

// Particle is one star. Every field is always present; there is a single kind of particle.
type Particle struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	// Original is the spawn position. Axes that drift out of bounds snap back to it.
	Original mgl64.Vec3
	Rotation mgl64.Vec3
	Phase    float64
	// Alpha is the opacity computed on the last tick. It may be negative.
	Alpha float64
}

// Opacity is the twinkle curve. Values range over [-0.2, 0.8]; clamping is the renderer's job.
func Opacity(phase float64) float64 {
	return 0.3 + 0.5*math.Sin(phase)
}

func (p *Particle) Opacity() float64 { return Opacity(p.Phase) }

func (p *Particle) tick() {
	p.Phase += config.TwinkleStep
	p.Alpha = Opacity(p.Phase)

	p.Position = p.Position.Add(p.Velocity)
	for axis := 0; axis < 3; axis++ {
		if math.Abs(p.Position[axis]) > config.ParticleBound {
			p.Position[axis] = p.Original[axis]
		}
	}

	p.Rotation[0] += config.RotationSpeed
	p.Rotation[1] += config.RotationSpeed
}

// Field is a fixed-size collection of particles.
type Field struct {
	particles []Particle
}

// New spawns count particles uniformly inside the bounding cube with a small random drift.
func New(count int, rng *rand.Rand) *Field {
	ps := make([]Particle, count)
	for i := range ps {
		pos := mgl64.Vec3{
			symmetric(rng, config.ParticleBound),
			symmetric(rng, config.ParticleBound),
			symmetric(rng, config.ParticleBound),
		}
		ps[i] = Particle{
			Position: pos,
			Original: pos,
			Velocity: mgl64.Vec3{
				symmetric(rng, config.ParticleSpeed),
				symmetric(rng, config.ParticleSpeed),
				symmetric(rng, config.ParticleSpeed),
			},
			Phase: rng.Float64() * 2 * math.Pi,
		}
		ps[i].Alpha = ps[i].Opacity()
	}
	return &Field{particles: ps}
}

// FromParticles wraps an existing set of particles. The slice is copied.
func FromParticles(ps []Particle) *Field {
	return &Field{particles: append([]Particle(nil), ps...)}
}

// symmetric returns a uniform value in [-limit, limit).
func symmetric(rng *rand.Rand, limit float64) float64 {
	return (rng.Float64() - 0.5) * 2 * limit
}

// Tick advances every particle by one frame.
func (f *Field) Tick() {
	for i := range f.particles {
		f.particles[i].tick()
	}
}

// Reset moves all particles back to where they spawned.
func (f *Field) Reset() {
	for i := range f.particles {
		f.particles[i].Position = f.particles[i].Original
	}
}

func (f *Field) Len() int { return len(f.particles) }

func (f *Field) At(i int) Particle { return f.particles[i] }

// Particles returns the live backing slice. Callers must not append to it.
func (f *Field) Particles() []Particle { return f.particles }
