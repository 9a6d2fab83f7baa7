package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/clothsim/internal/mesh"
)

// Styles are rebuilt from CurrentTheme on every render so a theme switch
// takes effect on the next frame.
type Styles struct {
	Header   lipgloss.Style
	Panel    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Running  lipgloss.Style
	Paused   lipgloss.Style
	Failed   lipgloss.Style
	KeyHint  lipgloss.Style
	Subtle   lipgloss.Style
	Selected lipgloss.Style
}

func CurrentStyles() Styles {
	t := CurrentTheme
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(44),
		Label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Running:  lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Paused:   lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Failed:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}

// GradientText shades text from start to end, one rune at a time.
func GradientText(text string, start, end mesh.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := start.RGB()
	er, eg, eb := end.RGB()
	lerp := func(a, b uint8, t float64) uint32 {
		return uint32(float64(a) + t*(float64(b)-float64(a)) + 0.5)
	}

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := mesh.Color(lerp(sr, er, t)<<16 | lerp(sg, eg, t)<<8 | lerp(sb, eb, t))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(col.Hex()))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders a bar filled to percent in [0,1].
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(bar)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		result.WriteRune(chars[idx])
	}

	return result.String()
}

// StatLine renders a label/value row.
func StatLine(st Styles, label, format string, args ...interface{}) string {
	return st.Label.Render(label) + st.Value.Render(fmt.Sprintf(format, args...)) + "\n"
}
