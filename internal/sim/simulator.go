package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/clothsim/internal/cloth"
	"gonum.org/v1/gonum/spatial/r3"
)

type Simulator struct {
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

type Option func(*Simulator)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithMetrics(ms ...Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, ms...) }
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances c for cfg.Duration seconds in fixed steps of cfg.Dt. On
// cancellation or divergence the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, c *cloth.Cloth, cfg RunConfig) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if c.Released() {
		return nil, cloth.ErrReleased
	}

	steps := stepCount(cfg.Duration, cfg.Dt)
	result := &Result{
		Scheme:  cfg.Scheme,
		Dt:      cfg.Dt,
		Times:   make([]float64, 0, steps+1),
		Centers: make([]r3.Vec, 0, steps+1),
		MinY:    make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.debug("run start", "particles", len(c.Particles()), "springs", len(c.Springs()),
		"scheme", cfg.Scheme, "dt", cfg.Dt, "steps", steps)

	t := 0.0
	s.record(result, c, 0, t, true)
	for _, m := range s.metrics {
		m.Observe(c, t)
	}

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		if err := c.Step(cfg.Dt, cfg.Scheme); err != nil {
			runErr = &cloth.StepError{Step: i, Time: t, Wrapped: err}
			break
		}
		t = float64(i+1) * cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !c.Finite() {
			runErr = &cloth.StepError{Step: i, Time: t, Wrapped: cloth.ErrDiverged}
			if s.logger != nil {
				s.logger.Warn("cloth diverged", "step", i, "t", t)
			}
			break
		}

		sample := cfg.SampleEvery > 0 && (i+1)%cfg.SampleEvery == 0
		s.record(result, c, i+1, t, sample)

		for _, m := range s.metrics {
			m.Observe(c, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(c, t)
		}
	}

	if last := result.Final(); last == nil || last.Step != result.StepsTaken {
		if c.Finite() {
			result.Frames = append(result.Frames, Frame{Step: result.StepsTaken, Time: t, Positions: c.Positions()})
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.debug("run finished", "steps", result.StepsTaken, "t", t, "err", runErr)
	return result, runErr
}

func (s *Simulator) record(r *Result, c *cloth.Cloth, step int, t float64, frame bool) {
	positions := c.Positions()
	r.Times = append(r.Times, t)
	r.Centers = append(r.Centers, c.Center())
	r.MinY = append(r.MinY, minY(positions))
	if frame {
		r.Frames = append(r.Frames, Frame{Step: step, Time: t, Positions: positions})
	}
}

func (s *Simulator) debug(msg string, kv ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, kv...)
	}
}

func validateConfig(cfg RunConfig) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", cloth.ErrInvalidStepInput, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive and finite, got %v", cloth.ErrInvalidStepInput, cfg.Duration)
	}
	if !cfg.Scheme.Valid() {
		return fmt.Errorf("%w: scheme %s", cloth.ErrInvalidStepInput, cfg.Scheme)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must be >= 0, got %d", cloth.ErrInvalidStepInput, cfg.SampleEvery)
	}
	return nil
}

// stepCount tolerates durations that are a multiple of dt up to rounding.
func stepCount(duration, dt float64) int {
	return int(math.Floor(duration/dt + 1e-9))
}

func minY(ps []r3.Vec) float64 {
	if len(ps) == 0 {
		return 0
	}
	m := ps[0].Y
	for _, p := range ps[1:] {
		if p.Y < m {
			m = p.Y
		}
	}
	return m
}
