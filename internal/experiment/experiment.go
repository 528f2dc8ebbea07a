package experiment

import (
	"context"
	"log"

	"github.com/san-kum/kinesim/internal/config"
	"github.com/san-kum/kinesim/internal/control"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/sim"
)

// Experiment is one configured run: a scene, a simulation and the source
// that drives it.
type Experiment struct {
	cfg       *config.Config
	scene     *scene.Scene
	simulator *sim.Simulation
	source    control.Source
}

// New opens the scene, builds the simulation with the default metrics and
// picks the source named in cfg.
func New(cfg *config.Config, reg *Registry, logger *log.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sc, err := reg.GetScene(cfg.Scene)
	if err != nil {
		return nil, err
	}
	return NewWithScene(cfg, reg, sc, logger)
}

// NewWithScene is New for a scene that is already loaded. Experiments built
// from the same scene share nothing mutable.
func NewWithScene(cfg *config.Config, reg *Registry, sc *scene.Scene, logger *log.Logger) (*Experiment, error) {
	opts := []sim.Option{}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}
	for _, m := range reg.DefaultMetrics() {
		opts = append(opts, sim.WithMetric(m))
	}

	simulator, err := sim.New(cfg.ToSim(sc.Spawn), sc.Index(), opts...)
	if err != nil {
		return nil, err
	}

	src, err := reg.GetSource(cfg.Source, cfg, sc)
	if err != nil {
		return nil, err
	}

	return &Experiment{
		cfg:       cfg,
		scene:     sc,
		simulator: simulator,
		source:    src,
	}, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, e.source, e.cfg.Duration, e.cfg.FPS)
}

// Job wraps the experiment for sim.RunBatch.
func (e *Experiment) Job(name string) sim.Job {
	return sim.Job{
		Name:     name,
		Sim:      e.simulator,
		Source:   e.source,
		Duration: e.cfg.Duration,
		FPS:      e.cfg.FPS,
	}
}

// GetSimulator returns the underlying simulation for adding observers
func (e *Experiment) GetSimulator() *sim.Simulation {
	return e.simulator
}

func (e *Experiment) Scene() *scene.Scene    { return e.scene }
func (e *Experiment) Source() control.Source { return e.source }
func (e *Experiment) Config() *config.Config { return e.cfg }
