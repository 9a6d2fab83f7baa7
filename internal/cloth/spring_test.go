package cloth

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func twoParticles(a, b r3.Vec) []Particle {
	return []Particle{
		NewParticle(a, 1, r3.Vec{}),
		NewParticle(b, 1, r3.Vec{}),
	}
}

func TestSpring_RestLengthFromConstruction(t *testing.T) {
	g := NewWithT(t)

	ps := twoParticles(r3.Vec{}, r3.Vec{X: 3, Y: 4})
	s := NewSpring(ps, 0, 1, 2, Shear)

	g.Expect(s.RestLength).To(Equal(5.0))
	g.Expect(s.CurrentLength(ps)).To(Equal(5.0))
	g.Expect(s.Force(ps)).To(Equal(r3.Vec{}))
	g.Expect(s.Family).To(Equal(Shear))
}

func TestSpring_StretchedPullsTogether(t *testing.T) {
	g := NewWithT(t)

	ps := twoParticles(r3.Vec{}, r3.Vec{X: 1})
	s := NewSpring(ps, 0, 1, 2, Neighbor)

	ps[1].Position = r3.Vec{X: 1.5}
	f := s.Force(ps)

	// A sits at the origin, so it is pulled towards +X
	g.Expect(f.X).To(BeNumerically("~", 1.0, 1e-12))
	g.Expect(f.Y).To(BeZero())
	g.Expect(s.CurrentLength(ps)).To(Equal(1.5))
	g.Expect(s.RestLength).To(Equal(1.0))
}

func TestSpring_CompressedPushesApart(t *testing.T) {
	g := NewWithT(t)

	ps := twoParticles(r3.Vec{}, r3.Vec{Y: 2})
	s := NewSpring(ps, 0, 1, 1, Bending)

	ps[1].Position = r3.Vec{Y: 1}
	f := s.Force(ps)

	g.Expect(f.Y).To(BeNumerically("~", -1.0, 1e-12))
}

func TestSpring_CoincidentEndpointsGiveZeroForce(t *testing.T) {
	g := NewWithT(t)

	ps := twoParticles(r3.Vec{}, r3.Vec{X: 1})
	s := NewSpring(ps, 0, 1, 1, Neighbor)
	ps[1].Position = r3.Vec{}

	f := s.Force(ps)
	g.Expect(math.IsNaN(f.X)).To(BeFalse())
	g.Expect(f).To(Equal(r3.Vec{}))
}

func TestSpring_SyncGeometry(t *testing.T) {
	g := NewWithT(t)

	ps := twoParticles(r3.Vec{}, r3.Vec{X: 1})
	s := NewSpring(ps, 0, 1, 1, Neighbor)
	seg := mesh.Segment{Color: mesh.Red}

	ps[0].Position = r3.Vec{Y: -1}
	s.SyncGeometry(ps, &seg)

	g.Expect(seg.A).To(Equal(r3.Vec{Y: -1}))
	g.Expect(seg.B).To(Equal(r3.Vec{X: 1}))
	g.Expect(seg.Color).To(Equal(mesh.Red))
	g.Expect(ps[0].Velocity).To(Equal(r3.Vec{}))
}

func TestFamily_String(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Neighbor.String()).To(Equal("neighbor"))
	g.Expect(Shear.String()).To(Equal("shear"))
	g.Expect(Bending.String()).To(Equal("bending"))
	g.Expect(Family(5).String()).To(Equal("family(5)"))
}
