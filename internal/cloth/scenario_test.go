package cloth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const dt = 0.1

var gravity = r3.Vec{Y: -0.1}

// smallCloth is a 3x3 grid of unit masses with unit neighbor springs only.
func smallCloth(pinned []int) *cloth.Cloth {
	c, err := cloth.New(cloth.Config{
		Dimension: 3,
		Mass:      1,
		Neighbor:  cloth.SpringFamily{Enabled: true, K: 1},
		Gravity:   gravity,
		Pinned:    pinned,
	})
	Expect(err).NotTo(HaveOccurred())
	return c
}

// far edge of the 3x3 grid: col 2 of every row
var topRow = []int{2, 5, 8}

// near edge: col 0 of every row
var bottomRow = []int{0, 3, 6}

var _ = Describe("Cloth", func() {
	Describe("a 3x3 grid hanging from its top row", func() {
		var c *cloth.Cloth

		BeforeEach(func() {
			c = smallCloth(topRow)
		})

		It("only has neighbor springs", func() {
			Expect(c.Springs()).To(HaveLen(12))
			Expect(c.SpringCount(cloth.Shear)).To(BeZero())
			Expect(c.SpringCount(cloth.Bending)).To(BeZero())
		})

		It("falls under pure gravity after one Euler step", func() {
			Expect(c.Step(dt, integrators.Euler)).To(Succeed())

			ps := c.Particles()
			for _, i := range bottomRow {
				Expect(ps[i].Velocity.Y).To(BeNumerically("~", -0.01, 1e-12))
				Expect(ps[i].Position.Y).To(BeNumerically("~", -0.001, 1e-12))
				Expect(ps[i].Velocity.X).To(BeZero())
				Expect(ps[i].Velocity.Z).To(BeZero())
			}
			for _, f := range c.SpringForces() {
				Expect(f).To(Equal(r3.Vec{}))
			}
		})

		It("accumulates velocity over two Euler steps away from the anchors", func() {
			Expect(c.Step(dt, integrators.Euler)).To(Succeed())
			Expect(c.Step(dt, integrators.Euler)).To(Succeed())

			ps := c.Particles()
			for _, i := range bottomRow {
				Expect(ps[i].Velocity.Y).To(BeNumerically("~", gravity.Y*dt*2, 1e-12))
			}
		})

		It("never moves the anchors", func() {
			before := c.Particles()
			for i := 0; i < 200; i++ {
				Expect(c.Step(dt, integrators.Midpoint)).To(Succeed())
			}
			after := c.Particles()
			for _, i := range topRow {
				Expect(after[i].Position).To(Equal(before[i].Position))
				Expect(after[i].Velocity).To(Equal(before[i].Velocity))
			}
		})
	})

	Describe("default anchors", func() {
		It("gives the same first step as the hanging row for the near edge", func() {
			c := smallCloth(nil)
			Expect(c.Step(dt, integrators.Euler)).To(Succeed())

			ps := c.Particles()
			Expect(ps[2].Pinned).To(BeTrue())
			Expect(ps[8].Pinned).To(BeTrue())
			for _, i := range bottomRow {
				Expect(ps[i].Velocity.Y).To(BeNumerically("~", -0.01, 1e-12))
			}
		})
	})

	Describe("Newton's third law", func() {
		It("applies the negated spring force to the second endpoint", func() {
			c, err := cloth.New(cloth.Config{
				Dimension: 4,
				Mass:      0.5,
				Neighbor:  cloth.SpringFamily{Enabled: true, K: 3},
				Shear:     cloth.SpringFamily{Enabled: true, K: 2},
				Bending:   cloth.SpringFamily{Enabled: true, K: 1},
				Gravity:   gravity,
			})
			Expect(err).NotTo(HaveOccurred())

			// let the anchors load the springs first
			for i := 0; i < 20; i++ {
				Expect(c.Step(dt, integrators.Euler)).To(Succeed())
			}
			Expect(c.Step(dt, integrators.Euler)).To(Succeed())

			ps := c.Particles()
			springs := c.Springs()
			forces := c.SpringForces()

			net := make([]r3.Vec, len(ps))
			loaded := 0
			for i, s := range springs {
				net[s.A] = r3.Add(net[s.A], forces[i])
				net[s.B] = r3.Add(net[s.B], r3.Scale(-1, forces[i]))
				if r3.Norm(forces[i]) > 0 {
					loaded++
				}
			}
			Expect(loaded).To(BeNumerically(">", 0))

			for i, p := range ps {
				if p.Pinned {
					continue
				}
				applied := r3.Scale(p.Mass, r3.Sub(p.Acceleration, gravity))
				Expect(applied.X).To(BeNumerically("~", net[i].X, 1e-12))
				Expect(applied.Y).To(BeNumerically("~", net[i].Y, 1e-12))
				Expect(applied.Z).To(BeNumerically("~", net[i].Z, 1e-12))
			}
		})
	})

	Describe("a cloth without springs", func() {
		It("still produces a mesh of the right size", func() {
			c, err := cloth.New(cloth.Config{
				Dimension:    3,
				Mass:         1,
				Gravity:      gravity,
				MeshRendered: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Springs()).To(BeEmpty())

			Expect(c.Step(dt, integrators.Euler)).To(Succeed())

			m := c.Mesh()
			Expect(m.Vertices).To(HaveLen(9))
			Expect(m.Indices).To(HaveLen(mesh.TriangleCount(3, 3) * 3))
			Expect(m.Vertices).To(Equal(c.Positions()))

			_, segs := c.ExportGeometry()
			Expect(segs).To(BeEmpty())
		})
	})

	Describe("Reset", func() {
		It("can be called twice", func() {
			c := smallCloth(topRow)
			c.Reset()
			Expect(c.Reset).NotTo(Panic())
			Expect(c.Step(dt, integrators.Euler)).To(MatchError(cloth.ErrReleased))
		})

		It("is followed by a fresh cloth for a restart", func() {
			c := smallCloth(topRow)
			for i := 0; i < 10; i++ {
				Expect(c.Step(dt, integrators.Euler)).To(Succeed())
			}
			c.Reset()

			fresh, err := cloth.New(c.Config())
			Expect(err).NotTo(HaveOccurred())
			for _, p := range fresh.Particles() {
				Expect(p.Position).To(Equal(p.Origin()))
			}
		})
	})
})
