package cloth

import (
	"math"

	"github.com/san-kum/clothsim/internal/integrators"
	"gonum.org/v1/gonum/spatial/r3"
)

// Particle is a point mass of the grid. A pinned particle ignores forces
// and never moves.
type Particle struct {
	Position     r3.Vec
	Velocity     r3.Vec
	Acceleration r3.Vec
	Mass         float64
	Pinned       bool

	origin r3.Vec
}

// NewParticle creates a particle at rest with its acceleration set to gravity.
func NewParticle(pos r3.Vec, mass float64, gravity r3.Vec) Particle {
	return Particle{
		Position:     pos,
		Acceleration: gravity,
		Mass:         mass,
		origin:       pos,
	}
}

// Origin is the position the particle was created at.
func (p *Particle) Origin() r3.Vec { return p.origin }

// IsAffectedByForce reports whether forces and integration move the particle.
func (p *Particle) IsAffectedByForce() bool { return !p.Pinned }

// ApplyForce adds force/mass to the acceleration. Contributions from
// several springs within one step sum linearly.
func (p *Particle) ApplyForce(force r3.Vec) {
	if p.Pinned {
		return
	}
	p.Acceleration = r3.Add(p.Acceleration, r3.Scale(1/p.Mass, force))
}

// resetForces drops accumulated spring contributions.
func (p *Particle) resetForces(gravity r3.Vec) {
	if p.Pinned {
		return
	}
	p.Acceleration = gravity
}

// Integrate advances velocity and position by dt with the given scheme.
// gravity is only read by the midpoint scheme.
func (p *Particle) Integrate(dt float64, scheme integrators.Scheme, gravity r3.Vec) error {
	if p.Pinned {
		return nil
	}
	pos, vel, acc, err := integrators.Step(scheme, p.Position, p.Velocity, p.Acceleration, gravity, dt)
	if err != nil {
		return err
	}
	p.Position, p.Velocity, p.Acceleration = pos, vel, acc
	return nil
}

// Reset restores the original position, zeroes the velocity and sets the
// acceleration to gravity. The pinned flag is left as is.
func (p *Particle) Reset(gravity r3.Vec) {
	p.Position = p.origin
	p.Velocity = r3.Vec{}
	p.Acceleration = gravity
}

func (p *Particle) finite() bool {
	for _, v := range [...]r3.Vec{p.Position, p.Velocity} {
		if !isFinite(v.X) || !isFinite(v.Y) || !isFinite(v.Z) {
			return false
		}
	}
	return true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
