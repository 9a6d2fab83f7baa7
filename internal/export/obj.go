package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/clothsim/internal/mesh"
)

var ErrReleasedMesh = errors.New("export: mesh has been released")

// WriteOBJ writes m as a Wavefront OBJ object with per-vertex normals.
// Face indices are 1-based as the format requires.
func WriteOBJ(w io.Writer, name string, m *mesh.Mesh) error {
	if m == nil || m.Released() {
		return ErrReleasedMesh
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# clothsim %dx%d\n", m.Width, m.Height)
	fmt.Fprintf(bw, "o %s\n", name)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t]+1, m.Indices[t+1]+1, m.Indices[t+2]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	return bw.Flush()
}
