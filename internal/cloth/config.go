package cloth

import (
	"fmt"
	"math"

	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultGravity is the ambient acceleration used when a config leaves it unset.
var DefaultGravity = r3.Vec{Y: -0.1}

// SpringFamily configures one spring family.
type SpringFamily struct {
	Enabled bool
	K       float64
	Color   mesh.Color
}

// Config is everything a Cloth needs at construction. It is copied into
// the Cloth; later changes have no effect on it.
type Config struct {
	Dimension int
	Mass      float64

	Neighbor SpringFamily
	Shear    SpringFamily
	Bending  SpringFamily

	// ColorSprings selects the per-family colors; otherwise every segment
	// uses mesh.DefaultSpringColor.
	ColorSprings bool

	// MeshRendered selects solid-mesh mode. When false only markers and
	// segments are kept current.
	MeshRendered bool

	Gravity r3.Vec

	// Pinned overrides the default anchors (the two corners at the far
	// edge) when non-nil.
	Pinned []int

	// Workers splits spring force evaluation across goroutines when > 1.
	Workers int
}

// DefaultConfig mirrors the reference scene: a 10x10 cloth of 0.1 masses
// with all spring families at k=1.5.
func DefaultConfig() Config {
	return Config{
		Dimension: 10,
		Mass:      0.1,
		Neighbor:  SpringFamily{Enabled: true, K: 1.5, Color: mesh.Green},
		Shear:     SpringFamily{Enabled: true, K: 1.5, Color: mesh.Red},
		Bending:   SpringFamily{Enabled: true, K: 1.5, Color: mesh.Blue},
		Gravity:   DefaultGravity,
	}
}

// Family returns the settings of family f.
func (c Config) Family(f Family) SpringFamily {
	switch f {
	case Shear:
		return c.Shear
	case Bending:
		return c.Bending
	default:
		return c.Neighbor
	}
}

// Validate rejects configurations that cannot produce a grid.
func (c Config) Validate() error {
	if c.Dimension < 1 {
		return fmt.Errorf("%w: dimension must be >= 1, got %d", ErrInvalidConfiguration, c.Dimension)
	}
	if !(c.Mass > 0) || math.IsInf(c.Mass, 0) {
		return fmt.Errorf("%w: mass must be positive and finite, got %v", ErrInvalidConfiguration, c.Mass)
	}
	for _, f := range Families() {
		fam := c.Family(f)
		if !fam.Enabled {
			continue
		}
		if fam.K < 0 || !isFinite(fam.K) {
			return fmt.Errorf("%w: %s spring constant must be finite and >= 0, got %v", ErrInvalidConfiguration, f, fam.K)
		}
	}
	if !isFinite(c.Gravity.X) || !isFinite(c.Gravity.Y) || !isFinite(c.Gravity.Z) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfiguration)
	}
	n := c.Dimension * c.Dimension
	for _, idx := range c.Pinned {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: pinned index %d outside [0,%d)", ErrInvalidConfiguration, idx, n)
		}
	}
	return nil
}

// DefaultPinned returns the anchors for a w x h grid: the particles at the
// far edge (col h-1) in the first and last row.
func DefaultPinned(w, h int) []int {
	if w < 1 || h < 1 {
		return nil
	}
	first := gridIndex(h, 0, h-1)
	last := gridIndex(h, w-1, h-1)
	if first == last {
		return []int{first}
	}
	return []int{first, last}
}
