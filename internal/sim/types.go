package sim

import (
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/integrators"
	"gonum.org/v1/gonum/spatial/r3"
)

// Metric accumulates a scalar over a run. Observe sees the initial state
// at t=0 and the state after every step.
type Metric interface {
	Name() string
	Observe(c *cloth.Cloth, t float64)
	Value() float64
	Reset()
}

// Observer is called after every completed step.
type Observer interface {
	OnStep(c *cloth.Cloth, t float64)
}

type ObserverFunc func(c *cloth.Cloth, t float64)

func (f ObserverFunc) OnStep(c *cloth.Cloth, t float64) { f(c, t) }

type RunConfig struct {
	Dt       float64
	Duration float64
	Scheme   integrators.Scheme

	// SampleEvery records a position frame every n steps; 0 keeps only the
	// initial and final frames.
	SampleEvery int

	// ValidateState stops the run with cloth.ErrDiverged when any particle
	// leaves the finite range.
	ValidateState bool
}

type Frame struct {
	Step      int
	Time      float64
	Positions []r3.Vec
}

type Result struct {
	Scheme     integrators.Scheme
	Dt         float64
	StepsTaken int

	Times   []float64
	Centers []r3.Vec
	MinY    []float64
	Frames  []Frame

	Metrics map[string]float64
}

// Final returns the last recorded frame, or nil when nothing was recorded.
func (r *Result) Final() *Frame {
	if len(r.Frames) == 0 {
		return nil
	}
	return &r.Frames[len(r.Frames)-1]
}

func (r *Result) Duration() float64 {
	if len(r.Times) == 0 {
		return 0
	}
	return r.Times[len(r.Times)-1]
}
