package sim

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/collision"
	"github.com/san-kum/kinesim/internal/control"
	"github.com/san-kum/kinesim/internal/geom"
	"github.com/san-kum/kinesim/internal/player"
	"github.com/san-kum/kinesim/internal/pool"
)

// Simulation owns every piece of mutable state: the player, the sphere pool,
// the clock and the respawn guard. It is not safe for concurrent use; the
// world it queries may be shared.
type Simulation struct {
	cfg      Config
	resolver *collision.Resolver
	player   *player.Controller
	pool     *pool.Pool
	clock    Clock
	guard    RespawnGuard
	logger   *log.Logger

	metrics   []Metric
	observers []Observer

	frames   int
	respawns int
}

type Option func(*Simulation)

func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.logger = l }
}

func WithMetric(m Metric) Option {
	return func(s *Simulation) { s.AddMetric(m) }
}

// New places the player at the respawn point (0, Respawn.Height, 0).
func New(cfg Config, world collision.World, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := pool.New(cfg.PoolSize, cfg.SphereRadius)
	p.Inherit = cfg.Inherit

	s := &Simulation{
		cfg:      cfg,
		resolver: collision.New(world, cfg.Physics),
		player:   player.New(cfg.Player, mgl64.Vec3{0, cfg.Respawn.Height, 0}),
		pool:     p,
		guard:    cfg.Respawn,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (c Config) Validate() error {
	if c.Substeps < 1 {
		return fmt.Errorf("%w: substeps must be at least 1, got %d", ErrInvalidConfig, c.Substeps)
	}
	if c.MaxFrameDelta <= 0 {
		return fmt.Errorf("%w: max frame delta must be positive, got %f", ErrInvalidConfig, c.MaxFrameDelta)
	}
	if c.Respawn.Delay < 0 || c.Respawn.FallThreshold < 0 {
		return fmt.Errorf("%w: respawn delay and threshold must be non-negative", ErrInvalidConfig)
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Player.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) Config() Config            { return s.cfg }
func (s *Simulation) Player() *player.Controller { return s.player }
func (s *Simulation) Pool() *pool.Pool           { return s.pool }
func (s *Simulation) Now() float64               { return s.clock.Now() }
func (s *Simulation) Frames() int                { return s.frames }

// Frame advances the simulation by one rendered frame. delta is capped at
// MaxFrameDelta and split into equal sub-steps; a non-positive or NaN delta
// moves nothing. Throw and teleport commands apply once, before the
// sub-steps.
func (s *Simulation) Frame(delta float64, cmd control.Command) Sample {
	if !(delta > 0) {
		delta = 0
	}
	delta = math.Min(delta, s.cfg.MaxFrameDelta)

	if cmd.Teleport != nil {
		s.Teleport(*cmd.Teleport)
	}
	threw := false
	if cmd.Throw != nil {
		s.Throw(cmd.Throw.Aim, cmd.Throw.Held)
		threw = true
	}

	contacts := 0
	respawned := false
	if delta > 0 {
		dt := delta / float64(s.cfg.Substeps)
		for i := 0; i < s.cfg.Substeps; i++ {
			now := s.clock.Now()
			if s.player.ApplyInput(cmd.Input, cmd.Azimuth, now) {
				s.logger.Printf("jump t=%.3f feet=%s", now, fmtVec(s.player.Feet()))
			}

			res := s.player.Step(dt, s.resolver)
			contacts += res.Contacts

			v := s.player.Velocity()
			s.pool.Step(dt, s.resolver, s.player.Capsule(), &v)
			s.player.SetVelocity(v)

			if s.guard.Check(s.player.Capsule().Start.Y(), now) {
				s.respawn()
				respawned = true
			}

			s.clock.Advance(dt)
			s.player.Update(s.clock.Now())
		}
	}
	s.frames++

	now := s.clock.Now()
	return Sample{
		Time:        now,
		Feet:        s.player.Feet(),
		Velocity:    s.player.Velocity(),
		OnFloor:     s.player.OnFloor(),
		Jumping:     s.player.IsJumping(now),
		State:       s.player.State(now),
		Animation:   s.player.Animation(now),
		Contacts:    contacts,
		SphereSpeed: s.pool.MeanSpeed(),
		Respawned:   respawned,
		Threw:       threw,
	}
}

func (s *Simulation) respawn() {
	feet := mgl64.Vec3{0, s.guard.Height, 0}
	s.player.Teleport(feet)
	s.respawns++
	s.logger.Printf("respawn t=%.3f feet=%s count=%d", s.clock.Now(), fmtVec(feet), s.respawns)
}

// Throw launches the next pooled sphere from the player and returns its
// index.
func (s *Simulation) Throw(aim mgl64.Vec3, held float64) int {
	i := s.pool.Throw(s.player.Capsule(), aim, s.player.Velocity(), held)
	s.logger.Printf("throw t=%.3f sphere=%d impulse=%.2f", s.clock.Now(), i, pool.ThrowImpulse(held))
	return i
}

// Teleport moves the feet to target, stops the player and makes target's
// height the new respawn height.
func (s *Simulation) Teleport(target mgl64.Vec3) {
	if !geom.Finite(target) {
		return
	}
	s.player.Teleport(target)
	s.guard.Rearm(target.Y())
	s.logger.Printf("teleport t=%.3f feet=%s", s.clock.Now(), fmtVec(target))
}

// Observation is what a control source sees before the next frame.
func (s *Simulation) Observation() control.Observation {
	now := s.clock.Now()
	return control.Observation{
		Time:     now,
		Feet:     s.player.Feet(),
		Velocity: s.player.Velocity(),
		OnFloor:  s.player.OnFloor(),
		Jumping:  s.player.IsJumping(now),
	}
}

func (s *Simulation) View() View {
	now := s.clock.Now()
	bodies := s.pool.Bodies()
	spheres := make([]mgl64.Vec3, len(bodies))
	for i, b := range bodies {
		spheres[i] = b.Sphere.Center
	}
	return View{
		Time:          now,
		Capsule:       s.player.Capsule(),
		Feet:          s.player.Feet(),
		Facing:        s.player.Facing(),
		Velocity:      s.player.Velocity(),
		OnFloor:       s.player.OnFloor(),
		Jumping:       s.player.IsJumping(now),
		State:         s.player.State(now),
		Animation:     s.player.Animation(now),
		Spheres:       spheres,
		RespawnHeight: s.guard.Height,
		Respawns:      s.respawns,
	}
}

// Run drives the simulation headless at a fixed frame rate for duration
// seconds of frames, asking src for a command before each frame.
func (s *Simulation) Run(ctx context.Context, src control.Source, duration, fps float64) (*Result, error) {
	if err := validateRun(duration, fps); err != nil {
		return nil, err
	}

	frames := int(math.Round(duration * fps))
	delta := 1 / fps
	result := &Result{
		Samples: make([]Sample, 0, frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	respawnsBefore := s.respawns
	throwsBefore := s.pool.Thrown()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, respawnsBefore, throwsBefore)
			return result, ctx.Err()
		default:
		}

		cmd := src.Command(s.Observation())
		sample := s.Frame(delta, cmd)

		if s.cfg.ValidateState && !sample.Valid() {
			err := StepError{Time: sample.Time, Frame: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnFrame(sample)
		}
		result.Samples = append(result.Samples, sample)
	}

	s.finish(result, respawnsBefore, throwsBefore)
	return result, nil
}

func (s *Simulation) finish(result *Result, respawnsBefore, throwsBefore int) {
	result.Frames = len(result.Samples)
	result.Respawns = s.respawns - respawnsBefore
	result.Throws = s.pool.Thrown() - throwsBefore
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateRun(duration, fps float64) error {
	if duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, duration)
	}
	if fps <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %f", ErrInvalidConfig, fps)
	}
	return nil
}

func fmtVec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v[0], v[1], v[2])
}
