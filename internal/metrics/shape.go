package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sag is the lowest particle height reached during the run.
type Sag struct {
	name string
	minY float64
	seen bool
}

func NewSag() *Sag {
	return &Sag{name: "sag"}
}

func (s *Sag) Name() string { return s.name }

func (s *Sag) Observe(c *cloth.Cloth, t float64) {
	for _, p := range c.Positions() {
		if !s.seen || p.Y < s.minY {
			s.minY = p.Y
			s.seen = true
		}
	}
}

func (s *Sag) Value() float64 { return s.minY }

func (s *Sag) Reset() {
	s.minY = 0
	s.seen = false
}

// CenterDrift is the distance between the first and the last observed
// cloth center.
type CenterDrift struct {
	name    string
	initial r3.Vec
	current r3.Vec
	samples int
}

func NewCenterDrift() *CenterDrift {
	return &CenterDrift{name: "center_drift"}
}

func (d *CenterDrift) Name() string { return d.name }

func (d *CenterDrift) Observe(c *cloth.Cloth, t float64) {
	d.current = c.Center()
	if d.samples == 0 {
		d.initial = d.current
	}
	d.samples++
}

func (d *CenterDrift) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return r3.Norm(r3.Sub(d.current, d.initial))
}

func (d *CenterDrift) Reset() {
	d.initial = r3.Vec{}
	d.current = r3.Vec{}
	d.samples = 0
}

// Default returns a fresh instance of every cloth metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewPotentialEnergy(),
		NewSpringEnergy(),
		NewEnergyDrift(),
		NewMaxStrain(),
		NewStability(DefaultStrainThreshold),
		NewSag(),
		NewCenterDrift(),
	}
}

// DefaultStrainThreshold marks a spring stretched to twice its rest length.
const DefaultStrainThreshold = 1.0

