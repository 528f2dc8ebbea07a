package collision

import (
	"errors"
	"fmt"
)

var ErrInvalidParams = errors.New("collision: invalid params")

// Params holds the tuned response constants. The over-corrections
// (Restitution > 1, DepthOvershoot > 1, MinFloorCorrection) keep the
// discrete resolver from re-penetrating at the fixed sub-step rate.
type Params struct {
	FloorNormalY       float64 `yaml:"floor_normal_y"`
	MinFloorCorrection float64 `yaml:"min_floor_correction"`
	FloorFriction      float64 `yaml:"floor_friction"`
	Restitution        float64 `yaml:"restitution"`
	DepthOvershoot     float64 `yaml:"depth_overshoot"`
	Drag               float64 `yaml:"drag"`
	Gravity            float64 `yaml:"gravity"`
	MaxPasses          int     `yaml:"max_passes"`
	GroundProbe        float64 `yaml:"ground_probe"`
}

func DefaultParams() Params {
	return Params{
		FloorNormalY:       0.5,
		MinFloorCorrection: 0.05,
		FloorFriction:      0.5,
		Restitution:        1.5,
		DepthOvershoot:     1.05,
		Drag:               1.5,
		Gravity:            30,
		MaxPasses:          3,
		GroundProbe:        0.08,
	}
}

func (p Params) Validate() error {
	switch {
	case p.FloorNormalY < 0 || p.FloorNormalY >= 1:
		return fmt.Errorf("%w: floor_normal_y must be in [0, 1), got %g", ErrInvalidParams, p.FloorNormalY)
	case p.MinFloorCorrection < 0:
		return fmt.Errorf("%w: min_floor_correction must be >= 0, got %g", ErrInvalidParams, p.MinFloorCorrection)
	case p.FloorFriction < 0 || p.FloorFriction > 1:
		return fmt.Errorf("%w: floor_friction must be in [0, 1], got %g", ErrInvalidParams, p.FloorFriction)
	case p.Restitution < 0:
		return fmt.Errorf("%w: restitution must be >= 0, got %g", ErrInvalidParams, p.Restitution)
	case p.DepthOvershoot < 1:
		return fmt.Errorf("%w: depth_overshoot must be >= 1, got %g", ErrInvalidParams, p.DepthOvershoot)
	case p.Drag < 0:
		return fmt.Errorf("%w: drag must be >= 0, got %g", ErrInvalidParams, p.Drag)
	case p.MaxPasses < 1:
		return fmt.Errorf("%w: max_passes must be >= 1, got %d", ErrInvalidParams, p.MaxPasses)
	case p.GroundProbe < 0:
		return fmt.Errorf("%w: ground_probe must be >= 0, got %g", ErrInvalidParams, p.GroundProbe)
	}
	return nil
}
