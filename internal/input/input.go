// Package input turns held keys into a camera-relative movement direction.
package input

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Key codes follow the browser KeyboardEvent.code names.
const (
	KeyForward = "KeyW"
	KeyBack    = "KeyS"
	KeyLeft    = "KeyA"
	KeyRight   = "KeyD"
	KeyRun     = "ShiftLeft"
	KeyJump    = "Space"
)

// Snapshot is the held-key state for one frame. The zero value means no
// input.
type Snapshot struct {
	Forward bool `yaml:"forward"`
	Back    bool `yaml:"back"`
	Left    bool `yaml:"left"`
	Right   bool `yaml:"right"`
	Run     bool `yaml:"run"`
	Jump    bool `yaml:"jump"`
}

func FromKeys(keys map[string]bool) Snapshot {
	return Snapshot{
		Forward: keys[KeyForward],
		Back:    keys[KeyBack],
		Left:    keys[KeyLeft],
		Right:   keys[KeyRight],
		Run:     keys[KeyRun],
		Jump:    keys[KeyJump],
	}
}

// Moving reports whether any direction key is held.
func (s Snapshot) Moving() bool {
	return s.Forward || s.Back || s.Left || s.Right
}

// Local returns the unnormalized direction in camera space: forward is -Z,
// right is +X.
func (s Snapshot) Local() mgl64.Vec3 {
	var d mgl64.Vec3
	if s.Forward {
		d[2]--
	}
	if s.Back {
		d[2]++
	}
	if s.Left {
		d[0]--
	}
	if s.Right {
		d[0]++
	}
	return d
}

// Direction rotates the local direction about +Y by azimuth and normalizes
// it. Opposing keys cancel to the zero vector.
func (s Snapshot) Direction(azimuth float64) mgl64.Vec3 {
	d := s.Local()
	if d == (mgl64.Vec3{}) {
		return d
	}
	d = mgl64.Rotate3DY(azimuth).Mul3x1(d)
	return d.Normalize()
}

// Speed picks the run or walk speed.
func (s Snapshot) Speed(walk, run float64) float64 {
	if s.Run {
		return run
	}
	return walk
}
