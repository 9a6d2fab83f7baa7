package analysis

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

type PhasePoint struct {
	X, Y float64
}

// PhasePortrait2D pairs a series (X) with its rate of change (Y).
type PhasePortrait2D struct {
	Points []PhasePoint
}

// NewPhasePortrait plots values against their central-difference rate;
// the endpoints use one-sided differences.
func NewPhasePortrait(times, values []float64) *PhasePortrait2D {
	n := len(times)
	if len(values) < n {
		n = len(values)
	}
	if n < 2 {
		return nil
	}

	portrait := &PhasePortrait2D{Points: make([]PhasePoint, n)}
	for i := range portrait.Points {
		lo, hi := max(i-1, 0), min(i+1, n-1)
		rate := 0.0
		if dt := times[hi] - times[lo]; dt != 0 {
			rate = (values[hi] - values[lo]) / dt
		}
		portrait.Points[i] = PhasePoint{X: values[i], Y: rate}
	}
	return portrait
}

// axis maps one coordinate onto [0, cells) with 10% padding on each side.
type axis struct {
	lo, span float64
	cells    int
}

func newAxis(vals []float64, cells int) axis {
	lo, hi := floats.Min(vals), floats.Max(vals)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return axis{lo: lo - 0.1*span, span: 1.2 * span, cells: cells}
}

func (a axis) cell(v float64) int {
	return int((v - a.lo) / a.span * float64(a.cells-1))
}

func (a axis) contains(v float64) bool {
	return v >= a.lo && v <= a.lo+a.span
}

// PhasePortraitToASCII renders the portrait on a width x height grid, with
// axes through the origin when it is in view.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 1 || height < 1 {
		return ""
	}

	xs := make([]float64, len(portrait.Points))
	ys := make([]float64, len(portrait.Points))
	for i, p := range portrait.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	ax, ay := newAxis(xs, width), newAxis(ys, height)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	plot := func(row, col int, r rune, over bool) {
		if row < 0 || row >= height || col < 0 || col >= width {
			return
		}
		if over || grid[row][col] == ' ' {
			grid[row][col] = r
		}
	}

	for _, p := range portrait.Points {
		plot(height-1-ay.cell(p.Y), ax.cell(p.X), '•', true)
	}
	if ax.contains(0) {
		col := ax.cell(0)
		for row := 0; row < height; row++ {
			plot(row, col, '│', false)
		}
	}
	if ay.contains(0) {
		row := height - 1 - ay.cell(0)
		for col := 0; col < width; col++ {
			plot(row, col, '─', false)
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
