package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of cloth runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun starts from a preset (drape when empty) and applies Config as
// a partial override, so only the keys it names change. Scheme, Dt and
// Duration win over both when set.
type ScenarioRun struct {
	Preset   string    `yaml:"preset"`
	Config   yaml.Node `yaml:"config"`
	Scheme   string    `yaml:"scheme"`
	Dt       float64   `yaml:"dt"`
	Duration float64   `yaml:"duration"`
	SaveAs   string    `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Runs) == 0 {
		return nil, fmt.Errorf("scenario %q has no runs", scenario.Name)
	}
	return &scenario, nil
}

// Resolve builds the effective configuration of a run.
func (r ScenarioRun) Resolve() (*config.Config, error) {
	preset := r.Preset
	if preset == "" {
		preset = "drape"
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	if !r.Config.IsZero() {
		if err := r.Config.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config override: %w", err)
		}
	}
	if r.Scheme != "" {
		cfg.Scheme = r.Scheme
	}
	if r.Dt != 0 {
		cfg.Dt = r.Dt
	}
	if r.Duration != 0 {
		cfg.Duration = r.Duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Outcome struct {
	Name   string
	RunID  string
	Config *config.Config
	Result *sim.Result
}

// Runner executes scenarios and sweeps. A nil Store skips persistence.
type Runner struct {
	Store  *storage.Store
	Logger *log.Logger
}

func (rn *Runner) logger() *log.Logger {
	if rn.Logger != nil {
		return rn.Logger
	}
	return log.Default()
}

// Execute runs one configuration to completion with the default metrics.
func Execute(ctx context.Context, cfg *config.Config, logger *log.Logger) (*cloth.Cloth, *sim.Result, error) {
	scheme, err := cfg.ParsedScheme()
	if err != nil {
		return nil, nil, err
	}
	c, err := cloth.New(cfg.ClothConfig())
	if err != nil {
		return nil, nil, err
	}
	s := sim.New(sim.WithLogger(logger), sim.WithMetrics(metrics.Default()...))
	result, err := s.Run(ctx, c, sim.RunConfig{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Scheme:        scheme,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: true,
	})
	return c, result, err
}

// Info describes a finished run for storage.
func Info(name string, cfg *config.Config, c *cloth.Cloth) storage.RunInfo {
	counts := make(map[string]int)
	for _, f := range cloth.Families() {
		counts[f.String()] = c.SpringCount(f)
	}
	g := c.Gravity()
	pinned := make([]int, 0)
	for i, p := range c.Particles() {
		if p.Pinned {
			pinned = append(pinned, i)
		}
	}
	return storage.RunInfo{
		Preset:       name,
		Width:        c.Width(),
		Height:       c.Height(),
		Mass:         cfg.Mass,
		Scheme:       cfg.Scheme,
		Dt:           cfg.Dt,
		Duration:     cfg.Duration,
		Gravity:      [3]float64{g.X, g.Y, g.Z},
		Pinned:       pinned,
		SpringCounts: counts,
		MeshRendered: cfg.MeshRendered,
	}
}

// RunScenario executes the runs in order and stops at the first failure.
func (rn *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]Outcome, error) {
	logger := rn.logger()
	outcomes := make([]Outcome, 0, len(scenario.Runs))

	for i, run := range scenario.Runs {
		name := run.SaveAs
		if name == "" {
			name = run.Preset
		}
		if name == "" {
			name = fmt.Sprintf("%s-%d", scenario.Name, i+1)
		}
		logger.Info("running", "scenario", scenario.Name, "run", fmt.Sprintf("%d/%d", i+1, len(scenario.Runs)), "name", name)

		cfg, err := run.Resolve()
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		c, result, err := Execute(ctx, cfg, logger)
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		out := Outcome{Name: name, Config: cfg, Result: result}
		if rn.Store != nil {
			id, err := rn.Store.Save(Info(name, cfg, c), result)
			if err != nil {
				return outcomes, fmt.Errorf("run %d save: %w", i+1, err)
			}
			out.RunID = id
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}
