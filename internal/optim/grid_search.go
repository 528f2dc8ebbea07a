package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/experiment"
	"github.com/san-kum/kinesim/internal/sim"
)

var ErrUnknownMetric = errors.New("optim: unknown metric")

// Goal turns a metric value into a cost; lower is better.
type Goal func(v float64) float64

func Minimize(v float64) float64 { return v }
func Maximize(v float64) float64 { return -v }

// Target prefers values close to t.
func Target(t float64) Goal {
	return func(v float64) float64 { return math.Abs(v - t) }
}

// GridSearch tries every combination of the swept parameters.
type GridSearch struct {
	sweeps []experiment.ParameterSweep
}

func NewGridSearch(sweeps ...experiment.ParameterSweep) *GridSearch {
	return &GridSearch{sweeps: sweeps}
}

// Points enumerates the grid, last parameter varying fastest.
func (g *GridSearch) Points() []map[string]float64 {
	points := []map[string]float64{{}}
	for _, s := range g.sweeps {
		next := make([]map[string]float64, 0, len(points)*max(s.Steps, 1))
		for _, p := range points {
			for _, v := range s.Values() {
				q := make(map[string]float64, len(p)+1)
				for k, pv := range p {
					q[k] = pv
				}
				q[s.Param] = v
				next = append(next, q)
			}
		}
		points = next
	}
	return points
}

// Result is one evaluated grid point.
type Result struct {
	Params map[string]float64
	Value  float64
	Cost   float64
}

// Search runs the whole grid concurrently from base and returns every point
// in grid order plus the index of the cheapest one.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, reg *experiment.Registry, metricName string, goal Goal) ([]Result, int, error) {
	sc, err := reg.GetScene(base.Scene)
	if err != nil {
		return nil, -1, err
	}

	points := g.Points()
	jobs := make([]sim.Job, len(points))
	for i, p := range points {
		cfg := *base
		for name, v := range p {
			if err := cfg.SetParam(name, v); err != nil {
				return nil, -1, err
			}
		}
		exp, err := experiment.NewWithScene(&cfg, reg, sc, nil)
		if err != nil {
			return nil, -1, fmt.Errorf("%s: %w", label(p), err)
		}
		jobs[i] = exp.Job(label(p))
	}

	runs, err := sim.RunBatch(ctx, jobs)
	if err != nil {
		return nil, -1, err
	}

	results := make([]Result, len(runs))
	best := -1
	for i, r := range runs {
		v, ok := r.Metrics[metricName]
		if !ok {
			return nil, -1, fmt.Errorf("%w: %s", ErrUnknownMetric, metricName)
		}
		results[i] = Result{Params: points[i], Value: v, Cost: goal(v)}
		if best == -1 || results[i].Cost < results[best].Cost {
			best = i
		}
	}
	return results, best, nil
}

func label(p map[string]float64) string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s=%g", k, p[k])
	}
	return strings.Join(parts, ",")
}
