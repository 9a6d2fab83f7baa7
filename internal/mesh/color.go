package mesh

import "fmt"

// Color is a packed 0xRRGGBB value.
type Color uint32

const (
	White Color = 0xffffff
	Green Color = 0x00ff00
	Red   Color = 0xff0000
	Blue  Color = 0x0000ff

	// FrontColor and BackColor shade the two faces of the cloth surface.
	FrontColor Color = 0xc09bd8
	BackColor  Color = 0xc2185b

	DefaultSpringColor = White
	DefaultMarkerColor = Green
)

// DefaultMarkerRadius is the display radius of a particle marker.
const DefaultMarkerRadius = 0.1

func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex renders the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}
