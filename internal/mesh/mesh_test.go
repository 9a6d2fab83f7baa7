package mesh

import (
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r3"
)

func flatGrid(w, h int) []r3.Vec {
	out := make([]r3.Vec, 0, w*h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			out = append(out, r3.Vec{X: float64(x), Z: float64(y)})
		}
	}
	return out
}

func TestIndices_Count(t *testing.T) {
	tests := []struct {
		w, h      int
		triangles int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 2, 2},
		{3, 3, 8},
		{10, 10, 162},
	}

	for _, tt := range tests {
		g := NewWithT(t)
		idx := Indices(tt.w, tt.h)
		g.Expect(idx).To(HaveLen(tt.triangles*3), "grid %dx%d", tt.w, tt.h)
		g.Expect(TriangleCount(tt.w, tt.h)).To(Equal(tt.triangles))
	}
}

func TestIndices_FirstCell(t *testing.T) {
	g := NewWithT(t)

	idx := Indices(3, 3)
	g.Expect(idx[:6]).To(Equal([]uint32{0, 1, 3, 3, 1, 4}))

	for _, i := range idx {
		g.Expect(i).To(BeNumerically("<", 9))
	}
}

func TestMesh_SyncCopiesPositions(t *testing.T) {
	g := NewWithT(t)

	pos := flatGrid(3, 3)
	m := New(3, 3, pos)
	g.Expect(m.Vertices).To(Equal(pos))

	pos[4] = r3.Vec{X: 1, Y: -2, Z: 1}
	g.Expect(m.Vertices[4]).NotTo(Equal(pos[4]))

	m.Sync(pos)
	g.Expect(m.Vertices[4]).To(Equal(pos[4]))
	g.Expect(m.Vertices).To(HaveLen(9))
}

func TestMesh_FlatNormalsPointUp(t *testing.T) {
	g := NewWithT(t)

	m := New(4, 4, flatGrid(4, 4))
	for i, n := range m.Normals {
		g.Expect(n.X).To(BeNumerically("~", 0, 1e-12), "normal %d", i)
		g.Expect(n.Y).To(BeNumerically("~", 1, 1e-12), "normal %d", i)
		g.Expect(n.Z).To(BeNumerically("~", 0, 1e-12), "normal %d", i)
	}
}

func TestMesh_SingleParticleHasZeroNormal(t *testing.T) {
	g := NewWithT(t)

	m := New(1, 1, []r3.Vec{{X: 3}})
	g.Expect(m.Indices).To(BeEmpty())
	g.Expect(m.Normals).To(Equal([]r3.Vec{{}}))
}

func TestMesh_ReleaseIsIdempotent(t *testing.T) {
	g := NewWithT(t)

	m := New(3, 3, flatGrid(3, 3))
	m.Release()
	g.Expect(m.Released()).To(BeTrue())
	g.Expect(m.Vertices).To(BeNil())

	g.Expect(m.Release).NotTo(Panic())
	g.Expect(m.Released()).To(BeTrue())

	m.Sync(flatGrid(3, 3))
	g.Expect(m.Vertices).To(BeNil())
}

func TestNormalize_Zero(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Normalize(r3.Vec{})).To(Equal(r3.Vec{}))
	u := Normalize(r3.Vec{X: 3, Y: 4})
	g.Expect(u.X).To(BeNumerically("~", 0.6, 1e-12))
	g.Expect(u.Y).To(BeNumerically("~", 0.8, 1e-12))
}

func TestColor_Hex(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Green.Hex()).To(Equal("#00ff00"))
	g.Expect(FrontColor.Hex()).To(Equal("#c09bd8"))

	r, gr, b := BackColor.RGB()
	g.Expect([]uint8{r, gr, b}).To(Equal([]uint8{0xc2, 0x18, 0x5b}))
}
