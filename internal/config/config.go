package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinesim/internal/collision"
	"github.com/san-kum/kinesim/internal/player"
	"github.com/san-kum/kinesim/internal/sim"
)

const (
	DefaultScene         = "flat"
	DefaultSource        = "none"
	DefaultDuration      = 10.0
	DefaultFPS           = 60.0
	DefaultSubsteps      = 5
	DefaultMaxFrameDelta = 0.05
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Scene         string           `yaml:"scene"`
	Source        string           `yaml:"source"`
	Scenario      string           `yaml:"scenario,omitempty"`
	Duration      float64          `yaml:"duration"`
	FPS           float64          `yaml:"fps"`
	Seed          int64            `yaml:"seed"`
	Substeps      int              `yaml:"substeps"`
	MaxFrameDelta float64          `yaml:"max_frame_delta"`
	Physics       collision.Params `yaml:"physics"`
	Player        player.Config    `yaml:"player"`
	Pool          PoolConfig       `yaml:"pool"`
	Respawn       RespawnConfig    `yaml:"respawn"`
}

type PoolConfig struct {
	Size    int     `yaml:"size"`
	Radius  float64 `yaml:"radius"`
	Inherit float64 `yaml:"inherit"`
}

// RespawnConfig mirrors sim.RespawnGuard. A zero Height means the spawn
// height of the loaded scene.
type RespawnConfig struct {
	Height        float64 `yaml:"height"`
	FallThreshold float64 `yaml:"fall_threshold"`
	Delay         float64 `yaml:"delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:         DefaultScene,
		Source:        DefaultSource,
		Duration:      DefaultDuration,
		FPS:           DefaultFPS,
		Substeps:      DefaultSubsteps,
		MaxFrameDelta: DefaultMaxFrameDelta,
		Physics:       collision.DefaultParams(),
		Player:        player.DefaultConfig(),
		Pool: PoolConfig{
			Size:    25,
			Radius:  0.2,
			Inherit: 2,
		},
		Respawn: RespawnConfig{
			FallThreshold: 20,
			Delay:         8,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Scene == "":
		return fmt.Errorf("%w: scene is empty", ErrInvalid)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Duration)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %g", ErrInvalid, c.FPS)
	case c.Pool.Size < 1:
		return fmt.Errorf("%w: pool size must be at least 1, got %d", ErrInvalid, c.Pool.Size)
	case c.Pool.Radius <= 0:
		return fmt.Errorf("%w: pool radius must be positive, got %g", ErrInvalid, c.Pool.Radius)
	}
	if err := c.ToSim(0).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// ToSim builds the simulation config. spawnHeight is used when the respawn
// height is left at zero.
func (c *Config) ToSim(spawnHeight float64) sim.Config {
	height := c.Respawn.Height
	if height == 0 {
		height = spawnHeight
	}
	return sim.Config{
		Substeps:      c.Substeps,
		MaxFrameDelta: c.MaxFrameDelta,
		Physics:       c.Physics,
		Player:        c.Player,
		PoolSize:      c.Pool.Size,
		SphereRadius:  c.Pool.Radius,
		Inherit:       c.Pool.Inherit,
		Respawn: sim.RespawnGuard{
			Height:        height,
			FallThreshold: c.Respawn.FallThreshold,
			Delay:         c.Respawn.Delay,
		},
		ValidateState: true,
	}
}
