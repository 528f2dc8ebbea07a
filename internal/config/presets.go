package config

import "sort"

func preset(scene string, set func(c *Config)) *Config {
	c := DefaultConfig()
	c.Scene = scene
	if set != nil {
		set(c)
	}
	return c
}

// Presets are keyed by scene, then preset name.
var Presets = map[string]map[string]*Config{
	"flat": {
		"idle": preset("flat", nil),
		"wander": preset("flat", func(c *Config) {
			c.Source = "wander"
			c.Duration = 30
			c.Seed = 1
		}),
		"sprint": preset("flat", func(c *Config) {
			c.Source = "seek"
			c.Duration = 20
		}),
		"bouncy": preset("flat", func(c *Config) {
			c.Source = "wander"
			c.Duration = 30
			c.Physics.Restitution = 1.9
			c.Physics.Drag = 0.5
		}),
	},
	"stairs": {
		"climb": preset("stairs", func(c *Config) {
			c.Source = "seek"
			c.Duration = 20
		}),
		"hop": preset("stairs", func(c *Config) {
			c.Source = "wander"
			c.Duration = 30
			c.Seed = 3
		}),
	},
	"room": {
		"ricochet": preset("room", func(c *Config) {
			c.Source = "wander"
			c.Duration = 40
			c.Seed = 7
		}),
		"crowded": preset("room", func(c *Config) {
			c.Source = "wander"
			c.Duration = 40
			c.Pool.Size = 60
		}),
	},
	"ramp": {
		"slide": preset("ramp", func(c *Config) {
			c.Duration = 8
		}),
		"steep": preset("ramp", func(c *Config) {
			c.Duration = 8
			c.Physics.FloorNormalY = 0.8
		}),
	},
	"void": {
		"fall": preset("void", func(c *Config) {
			c.Duration = 12
		}),
		"lowgravity": preset("void", func(c *Config) {
			c.Duration = 20
			c.Player.Gravity = 10
		}),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(scene, name string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
