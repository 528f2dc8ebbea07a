package player

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("player: invalid config")

type Config struct {
	Height       float64 `yaml:"height"`
	Radius       float64 `yaml:"radius"`
	WalkSpeed    float64 `yaml:"walk_speed"`
	RunSpeed     float64 `yaml:"run_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	JumpCooldown float64 `yaml:"jump_cooldown"`
	JumpLock     float64 `yaml:"jump_lock"`
	Gravity      float64 `yaml:"gravity"`
}

func DefaultConfig() Config {
	return Config{
		Height:       1.8,
		Radius:       0.35,
		WalkSpeed:    5,
		RunSpeed:     10,
		JumpSpeed:    15,
		JumpCooldown: 0.5,
		JumpLock:     3.0,
		Gravity:      30,
	}
}

func (c Config) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfig, c.Radius)
	}
	if c.Height < 2*c.Radius {
		return fmt.Errorf("%w: height %g is shorter than two radii", ErrInvalidConfig, c.Height)
	}
	if c.WalkSpeed < 0 || c.RunSpeed < 0 || c.JumpSpeed < 0 {
		return fmt.Errorf("%w: speeds must be non-negative", ErrInvalidConfig)
	}
	if c.JumpCooldown < 0 || c.JumpLock < 0 {
		return fmt.Errorf("%w: jump timers must be non-negative", ErrInvalidConfig)
	}
	return nil
}
