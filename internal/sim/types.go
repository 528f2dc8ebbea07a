package sim

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/collision"
	"github.com/san-kum/kinesim/internal/geom"
	"github.com/san-kum/kinesim/internal/player"
)

type Config struct {
	Substeps      int
	MaxFrameDelta float64
	Physics       collision.Params
	Player        player.Config
	PoolSize      int
	SphereRadius  float64
	Inherit       float64
	Respawn       RespawnGuard
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Substeps:      5,
		MaxFrameDelta: 0.05,
		Physics:       collision.DefaultParams(),
		Player:        player.DefaultConfig(),
		PoolSize:      25,
		SphereRadius:  0.2,
		Inherit:       2,
		Respawn:       NewRespawnGuard(200),
		ValidateState: true,
	}
}

// Sample is the state at the end of one frame.
type Sample struct {
	Time        float64
	Feet        mgl64.Vec3
	Velocity    mgl64.Vec3
	OnFloor     bool
	Jumping     bool
	State       player.State
	Animation   player.Animation
	Contacts    int
	SphereSpeed float64
	Respawned   bool
	Threw       bool
}

// Valid reports whether the sample holds only finite numbers.
func (s Sample) Valid() bool {
	return geom.Finite(s.Feet) && geom.Finite(s.Velocity)
}

// View is the read-only picture a renderer needs.
type View struct {
	Time          float64
	Capsule       geom.Capsule
	Feet          mgl64.Vec3
	Facing        mgl64.Vec3
	Velocity      mgl64.Vec3
	OnFloor       bool
	Jumping       bool
	State         player.State
	Animation     player.Animation
	Spheres       []mgl64.Vec3
	RespawnHeight float64
	Respawns      int
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(s Sample)
}

type Result struct {
	Samples  []Sample
	Metrics  map[string]float64
	Frames   int
	Respawns int
	Throws   int
	Errors   []error
}
