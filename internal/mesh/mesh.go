package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is the solid surface of a width x height particle grid.
type Mesh struct {
	Width, Height int
	Vertices      []r3.Vec
	Normals       []r3.Vec
	Indices       []uint32

	released bool
}

// Indices builds the triangle index buffer for a w x h grid stored with
// index = x*h + y: two triangles per cell that is neither in the last row
// nor in the last column.
func Indices(w, h int) []uint32 {
	if w < 2 || h < 2 {
		return []uint32{}
	}
	out := make([]uint32, 0, TriangleCount(w, h)*3)
	n := w * h
	for i := 0; i < n; i++ {
		lastColumn := i%h == h-1
		lastRow := i >= h*(w-1)
		if lastColumn || lastRow {
			continue
		}
		a, b, c, d := uint32(i), uint32(i+1), uint32(i+h), uint32(i+h+1)
		out = append(out, a, b, c)
		out = append(out, c, b, d)
	}
	return out
}

// TriangleCount is 2*(w-1)*(h-1), or zero for grids without cells.
func TriangleCount(w, h int) int {
	if w < 2 || h < 2 {
		return 0
	}
	return 2 * (w - 1) * (h - 1)
}

// New allocates a mesh for the grid and fills it from positions.
func New(w, h int, positions []r3.Vec) *Mesh {
	m := &Mesh{
		Width:    w,
		Height:   h,
		Vertices: make([]r3.Vec, len(positions)),
		Normals:  make([]r3.Vec, len(positions)),
		Indices:  Indices(w, h),
	}
	m.Sync(positions)
	return m
}

// Sync rewrites the vertex buffer from positions and recomputes normals.
// The buffer is never resized; extra positions are ignored.
func (m *Mesh) Sync(positions []r3.Vec) {
	if m.released {
		return
	}
	copy(m.Vertices, positions)
	m.ComputeNormals()
}

// ComputeNormals accumulates each face normal, weighted by face area, onto
// its three vertices and normalizes the sums.
func (m *Mesh) ComputeNormals() {
	if m.released {
		return
	}
	for i := range m.Normals {
		m.Normals[i] = r3.Vec{}
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		va, vb, vc := m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]
		n := r3.Cross(r3.Sub(vc, vb), r3.Sub(va, vb))
		m.Normals[ia] = r3.Add(m.Normals[ia], n)
		m.Normals[ib] = r3.Add(m.Normals[ib], n)
		m.Normals[ic] = r3.Add(m.Normals[ic], n)
	}
	for i, n := range m.Normals {
		m.Normals[i] = Normalize(n)
	}
}

func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Triangle returns the vertex positions of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c r3.Vec) {
	i := t * 3
	return m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
}

// Release drops the buffers. Calling it again has no effect.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.Vertices = nil
	m.Normals = nil
	m.Indices = nil
	m.released = true
}

func (m *Mesh) Released() bool { return m.released }

// Normalize returns the unit vector along v, or the zero vector when v has
// zero length.
func Normalize(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}
