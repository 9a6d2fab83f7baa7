package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kinetic returns the total kinetic energy of the free particles.
func Kinetic(c *cloth.Cloth) float64 {
	var e float64
	for _, p := range c.Particles() {
		if p.Pinned {
			continue
		}
		e += 0.5 * p.Mass * r3.Dot(p.Velocity, p.Velocity)
	}
	return e
}

// Potential returns the gravitational potential energy relative to the
// origin, using the cloth's configured gravity.
func Potential(c *cloth.Cloth) float64 {
	g := c.Gravity()
	var e float64
	for _, p := range c.Particles() {
		e -= p.Mass * r3.Dot(g, p.Position)
	}
	return e
}

// Elastic returns the energy stored in all springs, 0.5 k (L-L0)^2 each.
func Elastic(c *cloth.Cloth) float64 {
	ps := c.Particles()
	var e float64
	for _, s := range c.Springs() {
		d := s.CurrentLength(ps) - s.RestLength
		e += 0.5 * s.K * d * d
	}
	return e
}

func Total(c *cloth.Cloth) float64 {
	return Kinetic(c) + Potential(c) + Elastic(c)
}

// KineticEnergy is the mean kinetic energy over the observed states.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(c *cloth.Cloth, t float64) {
	e.total += Kinetic(c)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// PotentialEnergy reports the gravitational energy of the last observed state.
type PotentialEnergy struct {
	name  string
	value float64
}

func NewPotentialEnergy() *PotentialEnergy {
	return &PotentialEnergy{name: "potential_energy"}
}

func (e *PotentialEnergy) Name() string                      { return e.name }
func (e *PotentialEnergy) Observe(c *cloth.Cloth, t float64) { e.value = Potential(c) }
func (e *PotentialEnergy) Value() float64                    { return e.value }
func (e *PotentialEnergy) Reset()                            { e.value = 0 }

// SpringEnergy reports the elastic energy of the last observed state.
type SpringEnergy struct {
	name  string
	value float64
}

func NewSpringEnergy() *SpringEnergy {
	return &SpringEnergy{name: "spring_energy"}
}

func (e *SpringEnergy) Name() string                      { return e.name }
func (e *SpringEnergy) Observe(c *cloth.Cloth, t float64) { e.value = Elastic(c) }
func (e *SpringEnergy) Value() float64                    { return e.value }
func (e *SpringEnergy) Reset()                            { e.value = 0 }

// EnergyDrift tracks the largest relative change of total energy against
// the first non-zero observation. A cloth built flat and at rest has zero
// energy at t=0, so the baseline is usually the state after the first step.
type EnergyDrift struct {
	name      string
	baseline  float64
	baselined bool
	maxDrift  float64
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(c *cloth.Cloth, t float64) {
	energy := Total(c)
	if !e.baselined {
		if energy == 0 || math.IsNaN(energy) || math.IsInf(energy, 0) {
			return
		}
		e.baseline, e.baselined = energy, true
	}

	drift := math.Abs(energy-e.baseline) / math.Abs(e.baseline)
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.baseline, e.baselined = 0, false
	e.maxDrift = 0
}
