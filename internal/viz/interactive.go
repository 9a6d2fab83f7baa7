package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/clothsim/internal/config"
)

var presetInfo = map[string]string{
	"drape":     "reference scene",
	"stiff":     "high stiffness, small dt",
	"loose":     "soft, no bending",
	"sheet":     "large solid mesh",
	"wireframe": "colored springs",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// param is one editable field of the config screen.
type param struct {
	name string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"dimension", func(c *config.Config) float64 { return float64(c.Dimension) }, func(c *config.Config, v float64) { c.Dimension = int(v) }},
	{"mass", func(c *config.Config) float64 { return c.Mass }, func(c *config.Config, v float64) { c.Mass = v }},
	{"neighbor_k", func(c *config.Config) float64 { return c.Springs.Neighbor.K }, func(c *config.Config, v float64) { c.Springs.Neighbor.K = v }},
	{"shear_k", func(c *config.Config) float64 { return c.Springs.Shear.K }, func(c *config.Config, v float64) { c.Springs.Shear.K = v }},
	{"bending_k", func(c *config.Config) float64 { return c.Springs.Bending.K }, func(c *config.Config, v float64) { c.Springs.Bending.K = v }},
	{"gravity", func(c *config.Config) float64 { return -c.Gravity.Y }, func(c *config.Config, v float64) { c.Gravity.Y = -v }},
	{"dt", func(c *config.Config) float64 { return c.Dt }, func(c *config.Config, v float64) { c.Dt = v }},
}

// App is the preset picker that launches a LiveModel.
type App struct {
	state       int
	cursor      int
	presets     []string
	selected    string
	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string
	err         error
	live        LiveModel
}

func NewApp() *App {
	return &App{state: stateMenu, presets: config.ListPresets()}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.live.Update(msg)
		m.live = newLive.(LiveModel)
		return m, cmd
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(key)
		case stateConfig:
			return m.configKey(key)
		}
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.selected = m.presets[m.cursor]
		m.cfg = config.GetPreset(m.selected)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(strings.TrimSpace(m.editBuf), 64); err == nil {
				p.set(m.cfg, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(p.get(m.cfg), 'g', -1, 64)
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)*0.9)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)*1.1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m App) start() (App, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	live, err := NewLiveModel(m.selected, m.cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state = live, stateSim
	return m, m.live.Init()
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func (m App) viewMenu() string {
	st := CurrentStyles()
	var b strings.Builder
	b.WriteString("\n\n    " + st.Header.Render("CLOTHSIM") + "\n    " + st.Subtle.Render("mass-spring cloth") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", st.Selected.Render("▸"), st.Value.Bold(true).Render(fmt.Sprintf("%-12s", name)), st.Selected.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", st.Subtle.Render(fmt.Sprintf("%-12s", name)), st.Subtle.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + st.KeyHint.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (m App) viewConfig() string {
	st := CurrentStyles()
	var b strings.Builder
	b.WriteString("\n\n    " + st.Header.Render(strings.ToUpper(m.selected)) + "\n    " + st.Subtle.Render(presetInfo[m.selected]) + "\n\n")
	for i, p := range params {
		val := fmt.Sprintf("%8.3f", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", st.Selected.Render("▸"), st.Value.Bold(true).Render(fmt.Sprintf("%-12s", p.name)), st.Selected.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", st.Subtle.Render(fmt.Sprintf("%-12s", p.name)), st.Subtle.Render(val)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + st.Failed.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + st.KeyHint.Render("j/k select  h/l adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}
