package automation

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/config"
)

// ParameterSweep varies one cloth parameter across [Min, Max] in Steps
// evenly spaced values.
type ParameterSweep struct {
	Base  *config.Config
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value       float64
	Sag         float64
	MaxStrain   float64
	EnergyDrift float64
	Settling    float64
	Diverged    bool
}

var sweepParams = map[string]func(*config.Config, float64){
	"k": func(c *config.Config, v float64) {
		c.Springs.Neighbor.K = v
		c.Springs.Shear.K = v
		c.Springs.Bending.K = v
	},
	"neighbor_k": func(c *config.Config, v float64) { c.Springs.Neighbor.K = v },
	"shear_k":    func(c *config.Config, v float64) { c.Springs.Shear.K = v },
	"bending_k":  func(c *config.Config, v float64) { c.Springs.Bending.K = v },
	"mass":       func(c *config.Config, v float64) { c.Mass = v },
	"gravity":    func(c *config.Config, v float64) { c.Gravity.Y = -v },
	"dt":         func(c *config.Config, v float64) { c.Dt = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// settleBand is the center-height band used for the settling time.
const settleBand = 0.01

// RunSweep executes the sweep sequentially. A run that diverges is
// reported with Diverged set rather than aborting the sweep.
func (rn *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	apply, ok := sweepParams[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter %q", sweep.Param)
	}
	if sweep.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.Steps)
	}
	base := sweep.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	logger := rn.logger()
	paramStep := 0.0
	if sweep.Steps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.Steps-1)
	}

	results := make([]SweepResult, 0, sweep.Steps)
	for i := 0; i < sweep.Steps; i++ {
		val := sweep.Min + float64(i)*paramStep
		cfg := base.Clone()
		apply(cfg, val)
		if err := cfg.Validate(); err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.Param, val, err)
		}

		_, result, err := Execute(ctx, cfg, logger)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		sr := SweepResult{Value: val, Diverged: err != nil}
		if result != nil {
			sr.Sag = result.Metrics["sag"]
			sr.MaxStrain = result.Metrics["max_strain"]
			sr.EnergyDrift = result.Metrics["energy_drift"]
			centerY := make([]float64, len(result.Centers))
			for j, c := range result.Centers {
				centerY[j] = c.Y
			}
			sr.Settling = analysis.SettlingTime(result.Times, centerY, settleBand)
		}
		results = append(results, sr)

		logger.Info("sweep", "step", fmt.Sprintf("%d/%d", i+1, sweep.Steps), sweep.Param, val, "diverged", sr.Diverged)
	}

	return results, nil
}
