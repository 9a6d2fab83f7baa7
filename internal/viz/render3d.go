package viz

import (
	"math"

	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	minZoom = 0.01
	maxZoom = 10
)

// Camera orbits Target at a fixed distance and projects with a simple
// perspective divide.
type Camera struct {
	Target     r3.Vec
	Distance   float64
	Near       float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 50, Near: 0.1, RotX: -0.4, RotY: 0.7, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(maxZoom, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(minZoom, c.Zoom/1.2) }

// RotatePoint moves p into camera space: relative to Target, rotated about
// Y then X.
func (c *Camera) RotatePoint(p r3.Vec) r3.Vec {
	p = r3.Sub(p, c.Target)
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project converts world coordinates to screen sub-pixels. It returns x, y,
// depth and whether the point lands on screen.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	fx, fy, depth, ok := c.project(p, sw, sh)
	if !ok || !nearScreen(fx, fy, sw, sh) {
		return 0, 0, 0, false
	}
	x, y := int(math.Round(fx)), int(math.Round(fy))
	return x, y, depth, x >= 0 && x < sw && y >= 0 && y < sh
}

// project is Project without rounding or bounds; ok is false for points
// behind the near plane or with non-finite coordinates.
func (c *Camera) project(p r3.Vec, sw, sh int) (float64, float64, float64, bool) {
	rot := r3.Scale(c.Zoom, c.RotatePoint(p))
	dist := c.Distance
	if !(rot.Z < dist-c.Near) {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := math.Min(float64(sw), float64(sh)) / 3.0
	fx := rot.X*scale*pScale + float64(sw/2)
	fy := -rot.Y*scale*pScale + float64(sh/2)
	if math.IsNaN(fx) || math.IsNaN(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		return 0, 0, 0, false
	}
	return fx, fy, rot.Z, true
}

// nearScreen bounds how far off screen a line endpoint may lie, which keeps
// line rasterization short when a cloth blows up.
func nearScreen(fx, fy float64, sw, sh int) bool {
	w, h := float64(sw), float64(sh)
	return fx >= -w && fx <= 2*w && fy >= -h && fy <= 2*h
}

// Fit returns the center of the points' bounding box and the zoom that
// keeps their bounding sphere inside the viewport.
func Fit(points []r3.Vec) (center r3.Vec, zoom float64) {
	if len(points) == 0 {
		return r3.Vec{}, 1
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = r3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	center = r3.Scale(0.5, r3.Add(lo, hi))
	radius := 0.5 * r3.Norm(r3.Sub(hi, lo))
	if radius == 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return center, 1
	}
	return center, math.Max(minZoom, math.Min(maxZoom, 1.35/radius))
}

type Edge struct {
	Start, End r3.Vec
}

type Wireframe struct {
	Edges  []Edge
	Points []r3.Vec
}

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e r3.Vec) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p r3.Vec)   { w.Points = append(w.Points, p) }
func (w *Wireframe) Clear() {
	w.Edges = w.Edges[:0]
	w.Points = w.Points[:0]
}

// AddSegments adds one edge per spring segment and a point per marker.
func (w *Wireframe) AddSegments(segments []mesh.Segment, markers []mesh.Marker) {
	for _, s := range segments {
		w.AddEdge(s.A, s.B)
	}
	for _, m := range markers {
		w.AddPoint(m.Position)
	}
}

// AddMesh adds the edges of every triangle. Shared edges are drawn twice.
func (w *Wireframe) AddMesh(m *mesh.Mesh) {
	if m == nil || m.Released() {
		return
	}
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		w.AddEdge(a, b)
		w.AddEdge(b, c)
		w.AddEdge(c, a)
	}
}

// Render3D draws the wireframe onto the canvas. Edges with one visible
// endpoint are clipped by the canvas itself; edges reaching far off screen
// or behind the camera are skipped.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.SubWidth(), c.SubHeight()
	for _, e := range w.Edges {
		fx1, fy1, _, ok1 := cam.project(e.Start, cw, ch)
		fx2, fy2, _, ok2 := cam.project(e.End, cw, ch)
		if !ok1 || !ok2 || !nearScreen(fx1, fy1, cw, ch) || !nearScreen(fx2, fy2, cw, ch) {
			continue
		}
		c.DrawLine(int(math.Round(fx1)), int(math.Round(fy1)), int(math.Round(fx2)), int(math.Round(fy2)))
	}
	for _, p := range w.Points {
		if x, y, _, ok := cam.Project(p, cw, ch); ok {
			c.DrawDisc(x, y, 1)
		}
	}
}
