package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
	"gonum.org/v1/gonum/floats"
)

// Strains returns |L-L0|/L0 for every spring, in spring order.
func Strains(c *cloth.Cloth) []float64 {
	ps := c.Particles()
	springs := c.Springs()
	out := make([]float64, len(springs))
	for i, s := range springs {
		if s.RestLength == 0 {
			continue
		}
		out[i] = math.Abs(s.CurrentLength(ps)-s.RestLength) / s.RestLength
	}
	return out
}

// MaxStrain is the largest spring strain seen during the run.
type MaxStrain struct {
	name string
	max  float64
}

func NewMaxStrain() *MaxStrain {
	return &MaxStrain{name: "max_strain"}
}

func (m *MaxStrain) Name() string { return m.name }

func (m *MaxStrain) Observe(c *cloth.Cloth, t float64) {
	strains := Strains(c)
	if len(strains) == 0 {
		return
	}
	m.max = math.Max(m.max, floats.Max(strains))
}

func (m *MaxStrain) Value() float64 { return m.max }
func (m *MaxStrain) Reset()         { m.max = 0 }

// Stability is the fraction of observed states whose strains all stay
// below the threshold.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(c *cloth.Cloth, t float64) {
	s.samples++
	if !c.Finite() {
		s.violations++
		return
	}
	for _, v := range Strains(c) {
		if v > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
