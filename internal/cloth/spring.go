package cloth

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Family groups springs by the grid relation they model.
type Family int

const (
	Neighbor Family = iota
	Shear
	Bending
)

func (f Family) String() string {
	switch f {
	case Neighbor:
		return "neighbor"
	case Shear:
		return "shear"
	case Bending:
		return "bending"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Families lists the spring families in generation order.
func Families() []Family { return []Family{Neighbor, Shear, Bending} }

// Spring is a Hookean link between particles A and B, given as indices
// into the cloth's particle slice.
type Spring struct {
	A, B       int
	K          float64
	RestLength float64
	Family     Family
}

// NewSpring links particles a and b. The rest length is their current distance.
func NewSpring(ps []Particle, a, b int, k float64, family Family) Spring {
	s := Spring{A: a, B: b, K: k, Family: family}
	s.RestLength = s.CurrentLength(ps)
	return s
}

// CurrentLength is the distance between the endpoints.
func (s Spring) CurrentLength(ps []Particle) float64 {
	return r3.Norm(r3.Sub(ps[s.A].Position, ps[s.B].Position))
}

// Force is the force on particle A: -k * (L - L0) along A-B. The force on
// B is its negation.
func (s Spring) Force(ps []Particle) r3.Vec {
	d := r3.Sub(ps[s.A].Position, ps[s.B].Position)
	dir := mesh.Normalize(d)
	deviation := r3.Norm(d) - s.RestLength
	return r3.Scale(-s.K*deviation, dir)
}

// SyncGeometry moves the segment endpoints to the particle positions.
func (s Spring) SyncGeometry(ps []Particle, seg *mesh.Segment) {
	seg.A = ps[s.A].Position
	seg.B = ps[s.B].Position
}
