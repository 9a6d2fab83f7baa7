package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/clothsim/internal/cloth"
)

type Job struct {
	Name   string
	Cloth  *cloth.Cloth
	Config RunConfig
}

// Ensemble runs independent cloths concurrently. Each job gets its own
// Simulator; NewMetrics, when set, supplies fresh metric instances per job.
type Ensemble struct {
	base       *Simulator
	NewMetrics func() []Metric
}

// NewEnsemble runs jobs with s's logger; a nil s uses New().
func NewEnsemble(s *Simulator) *Ensemble {
	if s == nil {
		s = New()
	}
	return &Ensemble{base: s}
}

func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sim := New(WithLogger(e.base.logger))
			if e.NewMetrics != nil {
				sim.metrics = append(sim.metrics, e.NewMetrics()...)
			}

			job := jobs[idx]
			results[idx], errs[idx] = sim.Run(ctx, job.Cloth, job.Config)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return results, fmt.Errorf("%s: %w", jobs[i].Name, err)
		}
	}

	return results, nil
}
