package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/kinesim/internal/control"
)

// Job is one independent headless run. Jobs may share a world but never a
// Simulation.
type Job struct {
	Name     string
	Sim      *Simulation
	Source   control.Source
	Duration float64
	FPS      float64
}

// RunBatch runs every job on its own goroutine and returns the results in
// job order. The first failing job's error is returned.
func RunBatch(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			job := jobs[idx]
			results[idx], errs[idx] = job.Sim.Run(ctx, job.Source, job.Duration, job.FPS)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", jobs[i].Name, err)
		}
	}

	return results, nil
}
