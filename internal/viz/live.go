package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/integrators"
	"github.com/san-kum/clothsim/internal/mesh"
	"github.com/san-kum/clothsim/internal/metrics"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	fps             = 60

	// camera smoothing
	springFrequency = 4.0
	springDamping   = 1.0
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// LiveModel steps a cloth once per frame and draws it on a braille canvas.
// The camera follows the cloth, easing its zoom and target with a
// critically damped spring.
type LiveModel struct {
	name   string
	cfg    *config.Config
	cloth  *cloth.Cloth
	scheme integrators.Scheme
	dt     float64
	t      float64

	canvas    *Canvas
	wire      *Wireframe
	camera    *Camera
	spring    harmonica.Spring
	zoomVel   float64
	targetVel r3.Vec
	userZoom  float64

	running  bool
	err      error
	energy   []float64
	showHelp bool
	status   string

	recorder *Recorder
	gifPath  string
}

func NewLiveModel(name string, cfg *config.Config) (LiveModel, error) {
	scheme, err := cfg.ParsedScheme()
	if err != nil {
		return LiveModel{}, err
	}
	c, err := cloth.New(cfg.ClothConfig())
	if err != nil {
		return LiveModel{}, err
	}

	cam := NewCamera()
	cam.Target, cam.Zoom = Fit(c.Positions())

	return LiveModel{
		name:     name,
		cfg:      cfg.Clone(),
		cloth:    c,
		scheme:   scheme,
		dt:       cfg.Dt,
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		wire:     NewWireframe(),
		camera:   cam,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping),
		userZoom: 1,
		running:  true,
		energy:   make([]float64, 0, historyCapacity),
		gifPath:  "clothsim.gif",
	}, nil
}

func (m LiveModel) Cloth() *cloth.Cloth        { return m.cloth }
func (m LiveModel) Scheme() integrators.Scheme { return m.scheme }
func (m LiveModel) Running() bool              { return m.running }
func (m LiveModel) Time() float64              { return m.t }
func (m LiveModel) Err() error                 { return m.err }
func (m LiveModel) Camera() *Camera            { return m.camera }
func (m *LiveModel) SetGIFPath(path string)    { m.gifPath = path }

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recorder != nil {
				m.stopRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.restart()
		case "m":
			if m.scheme == integrators.Euler {
				m.scheme = integrators.Midpoint
			} else {
				m.scheme = integrators.Euler
			}
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "+", "=":
			m.userZoom *= 1.2
		case "-", "_":
			m.userZoom /= 1.2
		case "t":
			NextTheme()
		case "g":
			if m.recorder != nil {
				m.stopRecording()
			} else {
				m.recorder = NewRecorder()
				m.status = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.step()
		}
		m.draw()
		if m.recorder != nil {
			m.recorder.Capture(m.canvas)
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) step() {
	if err := m.cloth.Step(m.dt, m.scheme); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.t += m.dt

	// energy can overflow before positions do
	energy := metrics.Total(m.cloth)
	if !m.cloth.Finite() || math.IsNaN(energy) || math.IsInf(energy, 0) {
		m.err = &cloth.StepError{Step: m.cloth.Steps() - 1, Time: m.t, Wrapped: cloth.ErrDiverged}
		m.running = false
		return
	}

	m.energy = append(m.energy, energy)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

// restart discards the cloth and builds a fresh one from the same config.
func (m *LiveModel) restart() {
	m.cloth.Reset()
	c, err := cloth.New(m.cfg.ClothConfig())
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.cloth = c
	m.t = 0
	m.err = nil
	m.energy = m.energy[:0]
	m.running = true
}

func (m *LiveModel) stopRecording() {
	if err := m.recorder.Save(m.gifPath); err != nil {
		m.status = "gif: " + err.Error()
	} else {
		m.status = fmt.Sprintf("saved %d frames to %s", m.recorder.Len(), m.gifPath)
	}
	m.recorder = nil
}

func (m *LiveModel) draw() {
	m.canvas.Clear()
	m.wire.Clear()
	if m.cloth.Released() {
		return
	}

	if m.cfg.MeshRendered {
		m.wire.AddMesh(m.cloth.Mesh())
	} else {
		markers, segments := m.cloth.ExportGeometry()
		m.wire.AddSegments(segments, markers)
	}

	if m.cloth.Finite() {
		center, zoom := Fit(m.cloth.Positions())
		m.follow(center, zoom*m.userZoom)
	}
	Render3D(m.canvas, m.wire, m.camera)
}

func (m *LiveModel) follow(center r3.Vec, zoom float64) {
	cam := m.camera
	cam.Zoom, m.zoomVel = m.spring.Update(cam.Zoom, m.zoomVel, zoom)
	cam.Target.X, m.targetVel.X = m.spring.Update(cam.Target.X, m.targetVel.X, center.X)
	cam.Target.Y, m.targetVel.Y = m.spring.Update(cam.Target.Y, m.targetVel.Y, center.Y)
	cam.Target.Z, m.targetVel.Z = m.spring.Update(cam.Target.Z, m.targetVel.Z, center.Z)
}

func (m LiveModel) View() string {
	st := CurrentStyles()
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.Header.Render(GradientText(strings.ToUpper(m.name), mesh.FrontColor, mesh.BackColor)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(st.Failed.Render("STOPPED: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(st.Running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.Paused.Render("PAUSED") + "\n\n")
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(chart) + "\n\n")
	}

	s.WriteString(StatLine(st, "Time", "%.2fs", m.t))
	s.WriteString(StatLine(st, "Steps", "%d", m.cloth.Steps()))
	s.WriteString(StatLine(st, "Scheme", "%s", m.scheme))
	s.WriteString(StatLine(st, "Grid", "%dx%d", m.cloth.Width(), m.cloth.Height()))
	s.WriteString(StatLine(st, "Springs", "%d", len(m.cloth.Springs())))
	if !m.cloth.Released() && m.cloth.Finite() {
		sag := 0.0
		for i, p := range m.cloth.Positions() {
			if i == 0 || p.Y < sag {
				sag = p.Y
			}
		}
		s.WriteString(StatLine(st, "Sag", "%.3f", sag))
		s.WriteString(StatLine(st, "Energy", "%.4f", metrics.Total(m.cloth)))
		s.WriteString(StatLine(st, "Zoom", "%.2f", m.camera.Zoom))
	}
	if m.status != "" {
		s.WriteString("\n" + st.Subtle.Render(m.status) + "\n")
	}

	s.WriteString(st.KeyHint.Render("\n─────────────────────\nSP:Pause R:Restart M:Scheme\nX/Y:Rotate +/-:Zoom T:Theme\nG:Record ?:Help Q:Quit"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Rebuild the cloth        ║
║  M        - Toggle euler/midpoint    ║
║  X/Y      - Rotate camera            ║
║  +/-      - Zoom                     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive opens the live view full screen until the user quits.
func RunLive(name string, cfg *config.Config) error {
	m, err := NewLiveModel(name, cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
