package experiment

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/automation"
	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/control"
	"github.com/san-kum/kinesim/internal/metrics"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/sim"
)

// SourceFactory builds a control source for one run.
type SourceFactory func(cfg *config.Config, sc *scene.Scene) (control.Source, error)

type Registry struct {
	sources map[string]SourceFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		sources: make(map[string]SourceFactory),
	}

	r.sources["none"] = func(*config.Config, *scene.Scene) (control.Source, error) {
		return control.NewNone(), nil
	}
	r.sources["wander"] = func(cfg *config.Config, _ *scene.Scene) (control.Source, error) {
		return control.NewWander(cfg.Seed), nil
	}
	r.sources["seek"] = func(_ *config.Config, sc *scene.Scene) (control.Source, error) {
		return control.NewSeek(Waypoints(sc), true), nil
	}
	r.sources["scenario"] = func(cfg *config.Config, _ *scene.Scene) (control.Source, error) {
		if cfg.Scenario == "" {
			return nil, fmt.Errorf("%w: source scenario needs a scenario file", config.ErrInvalid)
		}
		s, err := automation.LoadScenario(cfg.Scenario)
		if err != nil {
			return nil, err
		}
		return s.Source(), nil
	}

	return r
}

// Register adds or replaces a source.
func (r *Registry) Register(name string, fn SourceFactory) {
	r.sources[name] = fn
}

func (r *Registry) GetSource(name string, cfg *config.Config, sc *scene.Scene) (control.Source, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", name)
	}
	return fn(cfg, sc)
}

func (r *Registry) ListSources() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) GetScene(name string) (*scene.Scene, error) {
	return scene.Open(name)
}

func (r *Registry) ListScenes() []string {
	return scene.Names()
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return metrics.Default()
}

// Waypoints visits every scene object that has a position, in file order,
// skipping the origin. Scenes without any get a 10m square.
func Waypoints(sc *scene.Scene) []mgl64.Vec3 {
	var points []mgl64.Vec3
	for i := range sc.Objects {
		p, ok := sc.Target(i)
		if !ok || (p[0] == 0 && p[2] == 0) {
			continue
		}
		points = append(points, p)
	}
	if len(points) > 0 {
		return points
	}
	return []mgl64.Vec3{{0, 0, -10}, {10, 0, -10}, {10, 0, 0}, {0, 0, 0}}
}
