package config

import (
	"fmt"
	"sort"
)

// tunables maps sweepable parameter names to the field they set.
var tunables = map[string]func(c *Config) *float64{
	"gravity":         func(c *Config) *float64 { return &c.Player.Gravity },
	"sphere_gravity":  func(c *Config) *float64 { return &c.Physics.Gravity },
	"jump_speed":      func(c *Config) *float64 { return &c.Player.JumpSpeed },
	"walk_speed":      func(c *Config) *float64 { return &c.Player.WalkSpeed },
	"run_speed":       func(c *Config) *float64 { return &c.Player.RunSpeed },
	"restitution":     func(c *Config) *float64 { return &c.Physics.Restitution },
	"drag":            func(c *Config) *float64 { return &c.Physics.Drag },
	"floor_friction":  func(c *Config) *float64 { return &c.Physics.FloorFriction },
	"floor_normal_y":  func(c *Config) *float64 { return &c.Physics.FloorNormalY },
	"sphere_radius":   func(c *Config) *float64 { return &c.Pool.Radius },
	"throw_inherit":   func(c *Config) *float64 { return &c.Pool.Inherit },
	"respawn_delay":   func(c *Config) *float64 { return &c.Respawn.Delay },
	"fall_threshold":  func(c *Config) *float64 { return &c.Respawn.FallThreshold },
	"max_frame_delta": func(c *Config) *float64 { return &c.MaxFrameDelta },
}

// SetParam sets a tunable by name.
func (c *Config) SetParam(name string, value float64) error {
	field, ok := tunables[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalid, name)
	}
	*field(c) = value
	return nil
}

func (c *Config) GetParam(name string) (float64, bool) {
	field, ok := tunables[name]
	if !ok {
		return 0, false
	}
	return *field(c), true
}

func Params() []string {
	names := make([]string, 0, len(tunables))
	for name := range tunables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
