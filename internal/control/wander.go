package control

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/input"
)

// Wander presses random keys, re-rolled every Interval seconds. The same seed
// always produces the same input stream.
type Wander struct {
	Interval    float64
	JumpChance  float64
	ThrowChance float64

	rng     *rand.Rand
	held    input.Snapshot
	azimuth float64
	next    float64
}

func NewWander(seed int64) *Wander {
	return &Wander{
		Interval:    0.75,
		JumpChance:  0.2,
		ThrowChance: 0.3,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (w *Wander) Command(obs Observation) Command {
	cmd := Command{Input: w.held, Azimuth: w.azimuth}
	if obs.Time < w.next {
		return cmd
	}
	w.next = obs.Time + w.Interval

	w.azimuth += (w.rng.Float64() - 0.5) * math.Pi / 2
	w.held = input.Snapshot{
		Forward: w.rng.Float64() < 0.7,
		Left:    w.rng.Float64() < 0.2,
		Right:   w.rng.Float64() < 0.2,
		Run:     w.rng.Float64() < 0.3,
	}

	cmd.Input = w.held
	cmd.Azimuth = w.azimuth
	cmd.Input.Jump = w.rng.Float64() < w.JumpChance
	if w.rng.Float64() < w.ThrowChance {
		aim := Forward(w.azimuth).Add(mgl64.Vec3{0, 0.3, 0})
		cmd.Throw = &Throw{Aim: aim, Held: w.rng.Float64() * 2}
	}
	return cmd
}
