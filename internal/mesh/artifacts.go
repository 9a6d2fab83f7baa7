package mesh

import "gonum.org/v1/gonum/spatial/r3"

// Segment is the line drawn for a spring.
type Segment struct {
	A, B  r3.Vec
	Color Color
}

// Marker is the point drawn for a particle.
type Marker struct {
	Position r3.Vec
	Radius   float64
	Color    Color
}

func NewMarker(p r3.Vec) Marker {
	return Marker{Position: p, Radius: DefaultMarkerRadius, Color: DefaultMarkerColor}
}
