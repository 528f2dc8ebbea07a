package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/control"
	"github.com/san-kum/kinesim/internal/spatial"
)

func flatWorld() *spatial.Index {
	return spatial.Build(spatial.Quad(
		mgl64.Vec3{-50, 0, -50},
		mgl64.Vec3{-50, 0, 50},
		mgl64.Vec3{50, 0, 50},
		mgl64.Vec3{50, 0, -50},
	))
}

func groundConfig() Config {
	cfg := DefaultConfig()
	cfg.Respawn = NewRespawnGuard(0)
	return cfg
}

type countMetric struct {
	count int
}

func (c *countMetric) Name() string     { return "count" }
func (c *countMetric) Observe(s Sample) { c.count++ }
func (c *countMetric) Value() float64   { return float64(c.count) }
func (c *countMetric) Reset()           { c.count = 0 }

func TestSimulationRun(t *testing.T) {
	s, err := New(groundConfig(), flatWorld())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	metric := &countMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), control.NewNone(), 1.0, 60)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Samples) != 60 {
		t.Errorf("expected 60 samples, got %d", len(result.Samples))
	}
	if result.Metrics["count"] != 60 {
		t.Errorf("expected 60 observations, got %v", result.Metrics["count"])
	}
	if math.Abs(s.Now()-1.0) > 1e-9 {
		t.Errorf("expected clock at 1s, got %v", s.Now())
	}

	last := result.Samples[len(result.Samples)-1]
	if !last.OnFloor {
		t.Error("expected the player to be standing")
	}
	if last.Feet.Y() < -1e-9 || last.Feet.Y() > 0.1 {
		t.Errorf("expected feet on the floor, got %v", last.Feet)
	}
}

func TestSimulationInvalidRun(t *testing.T) {
	s, err := New(groundConfig(), flatWorld())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	tests := []struct {
		name     string
		duration float64
		fps      float64
	}{
		{"zero duration", 0, 60},
		{"negative duration", -1, 60},
		{"zero fps", 1, 0},
		{"negative fps", 1, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), control.NewNone(), tt.duration, tt.fps)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero substeps", func(c *Config) { c.Substeps = 0 }},
		{"zero frame cap", func(c *Config) { c.MaxFrameDelta = 0 }},
		{"negative delay", func(c *Config) { c.Respawn.Delay = -1 }},
		{"bad physics", func(c *Config) { c.Physics.MaxPasses = 0 }},
		{"bad player", func(c *Config) { c.Player.Radius = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg, flatWorld()); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestFrameDelta(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"normal", 1.0 / 60, 1.0 / 60},
		{"capped", 1.0, 0.05},
		{"negative", -0.1, 0},
		{"nan", math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(groundConfig(), flatWorld())
			if err != nil {
				t.Fatalf("new failed: %v", err)
			}
			sample := s.Frame(tt.delta, control.Command{})
			if math.Abs(sample.Time-tt.want) > 1e-12 {
				t.Errorf("expected clock %v, got %v", tt.want, sample.Time)
			}
			if s.Frames() != 1 {
				t.Errorf("expected 1 frame, got %d", s.Frames())
			}
		})
	}
}

func TestFrameThrowAndTeleport(t *testing.T) {
	s, err := New(groundConfig(), flatWorld())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	target := mgl64.Vec3{4, 3, -2}
	sample := s.Frame(1.0/60, control.Command{
		Teleport: &target,
		Throw:    &control.Throw{Aim: mgl64.Vec3{0, 0, -1}, Held: 0.5},
	})

	if !sample.Threw {
		t.Error("expected a throw")
	}
	if s.Pool().Next() != 1 {
		t.Errorf("expected ring to advance, next=%d", s.Pool().Next())
	}
	v := s.View()
	if v.RespawnHeight != 3 {
		t.Errorf("expected respawn height 3, got %v", v.RespawnHeight)
	}
	if v.Feet.Sub(target).Len() > 0.05 {
		t.Errorf("expected feet near %v, got %v", target, v.Feet)
	}
	if v.Spheres[0].Y() < 0 {
		t.Errorf("expected thrown sphere above ground, got %v", v.Spheres[0])
	}
	if v.Spheres[1].Y() > -100 {
		t.Errorf("expected unthrown sphere below the world, got %v", v.Spheres[1])
	}
}

func TestRunCancelled(t *testing.T) {
	s, err := New(groundConfig(), flatWorld())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, control.NewNone(), 1, 60)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil || result.Frames != 0 {
		t.Errorf("expected an empty partial result, got %+v", result)
	}
}

func TestRunBatch(t *testing.T) {
	world := flatWorld()

	jobs := make([]Job, 4)
	for i := range jobs {
		s, err := New(groundConfig(), world)
		if err != nil {
			t.Fatalf("new failed: %v", err)
		}
		jobs[i] = Job{Name: "wander", Sim: s, Source: control.NewWander(int64(i)), Duration: 2, FPS: 60}
	}

	results, err := RunBatch(context.Background(), jobs)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	for i, r := range results {
		if r.Frames != 120 {
			t.Errorf("job %d: expected 120 frames, got %d", i, r.Frames)
		}
	}
}
