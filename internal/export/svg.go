package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/clothsim/internal/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Projection picks the two world axes drawn in an SVG.
type Projection int

const (
	// Side looks along -X: horizontal Z, vertical Y.
	Side Projection = iota
	// Front looks along -Z: horizontal X, vertical Y.
	Front
	// Top looks down -Y: horizontal X, vertical Z.
	Top
)

func (p Projection) project(v r3.Vec) (float64, float64) {
	switch p {
	case Front:
		return v.X, v.Y
	case Top:
		return v.X, v.Z
	default:
		return v.Z, v.Y
	}
}

func ParseProjection(name string) (Projection, error) {
	switch strings.ToLower(name) {
	case "", "side":
		return Side, nil
	case "front":
		return Front, nil
	case "top":
		return Top, nil
	}
	return Side, fmt.Errorf("export: unknown projection %q", name)
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func boundsOf(pts [][2]float64) bounds {
	b := bounds{minX: pts[0][0], maxX: pts[0][0], minY: pts[0][1], maxY: pts[0][1]}
	for _, p := range pts {
		if p[0] < b.minX {
			b.minX = p[0]
		}
		if p[0] > b.maxX {
			b.maxX = p[0]
		}
		if p[1] < b.minY {
			b.minY = p[1]
		}
		if p[1] > b.maxY {
			b.maxY = p[1]
		}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

// toPixel maps into a width x height viewport with y pointing down.
func (b bounds) toPixel(p [2]float64, width, height int) (float64, float64) {
	x := (p[0] - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p[1]-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

// MeshToSVG draws the cloth surface triangles (when indices is non-empty)
// and the spring segments in the given projection.
func MeshToSVG(positions []r3.Vec, indices []uint32, segments []mesh.Segment, proj Projection, width, height int) string {
	pts := make([][2]float64, 0, len(positions)+2*len(segments))
	for _, p := range positions {
		x, y := proj.project(p)
		pts = append(pts, [2]float64{x, y})
	}
	for _, s := range segments {
		ax, ay := proj.project(s.A)
		bx, by := proj.project(s.B)
		pts = append(pts, [2]float64{ax, ay}, [2]float64{bx, by})
	}
	if len(pts) == 0 {
		return ""
	}
	b := boundsOf(pts)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if len(indices) >= 3 {
		fmt.Fprintf(&sb, "<g fill=\"%s\" fill-opacity=\"0.6\" stroke=\"%s\" stroke-width=\"0.5\">\n",
			mesh.FrontColor.Hex(), mesh.BackColor.Hex())
		for t := 0; t+2 < len(indices); t += 3 {
			if !inRange(indices[t:t+3], len(positions)) {
				continue
			}
			sb.WriteString(`<polygon points="`)
			for k := 0; k < 3; k++ {
				x, y := b.toPixel(pts[indices[t+k]], width, height)
				if k > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			}
			sb.WriteString("\"/>\n")
		}
		sb.WriteString("</g>\n")
	}

	if len(segments) > 0 {
		sb.WriteString("<g stroke-width=\"1\">\n")
		base := len(positions)
		for i, s := range segments {
			x1, y1 := b.toPixel(pts[base+2*i], width, height)
			x2, y2 := b.toPixel(pts[base+2*i+1], width, height)
			fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\"/>\n",
				x1, y1, x2, y2, s.Color.Hex())
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func inRange(idx []uint32, n int) bool {
	for _, i := range idx {
		if int(i) >= n {
			return false
		}
	}
	return true
}

// SeriesToSVG plots values against times as a single polyline.
func SeriesToSVG(times, values []float64, width, height int, strokeColor string) string {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	if n < 2 {
		return ""
	}

	pts := make([][2]float64, n)
	for i := 0; i < n; i++ {
		pts[i] = [2]float64{times[i], values[i]}
	}
	b := boundsOf(pts)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	for i, p := range pts {
		x, y := b.toPixel(p, width, height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
