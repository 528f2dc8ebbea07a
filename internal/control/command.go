package control

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/input"
)

// Throw asks for a sphere launched along Aim after charging for Held seconds.
type Throw struct {
	Aim  mgl64.Vec3
	Held float64
}

// Command is everything a frame consumes. Throw and Teleport are one-shot and
// nil when unused.
type Command struct {
	Input    input.Snapshot
	Azimuth  float64
	Throw    *Throw
	Teleport *mgl64.Vec3
}

// Observation is what a Source may see of the player before a frame.
type Observation struct {
	Time     float64
	Feet     mgl64.Vec3
	Velocity mgl64.Vec3
	OnFloor  bool
	Jumping  bool
}

type Source interface {
	Command(obs Observation) Command
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(obs Observation) Command

func (f SourceFunc) Command(obs Observation) Command { return f(obs) }

// Forward returns the unit camera forward for azimuth, the direction a Forward
// key press moves the player.
func Forward(azimuth float64) mgl64.Vec3 {
	return input.Snapshot{Forward: true}.Direction(azimuth)
}
