package metrics

import (
	"math"

	"github.com/san-kum/kinesim/internal/sim"
)

// MaxFallSpeed tracks the fastest downward velocity seen.
type MaxFallSpeed struct {
	name string
	max  float64
}

func NewMaxFallSpeed() *MaxFallSpeed {
	return &MaxFallSpeed{name: "max_fall_speed"}
}

func (m *MaxFallSpeed) Name() string { return m.name }

func (m *MaxFallSpeed) Observe(s sim.Sample) {
	m.max = math.Max(m.max, -s.Velocity.Y())
}

func (m *MaxFallSpeed) Value() float64 { return m.max }

func (m *MaxFallSpeed) Reset() { m.max = 0 }

// SphereSpeed averages the mean pooled sphere speed over the run.
type SphereSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewSphereSpeed() *SphereSpeed {
	return &SphereSpeed{name: "sphere_speed"}
}

func (m *SphereSpeed) Name() string { return m.name }

func (m *SphereSpeed) Observe(s sim.Sample) {
	m.sum += s.SphereSpeed
	m.samples++
}

func (m *SphereSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *SphereSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

type Respawns struct {
	name  string
	count int
}

func NewRespawns() *Respawns {
	return &Respawns{name: "respawns"}
}

func (r *Respawns) Name() string { return r.name }

func (r *Respawns) Observe(s sim.Sample) {
	if s.Respawned {
		r.count++
	}
}

func (r *Respawns) Value() float64 { return float64(r.count) }

func (r *Respawns) Reset() { r.count = 0 }

// Default returns a fresh set of every metric.
func Default() []sim.Metric {
	return []sim.Metric{
		NewAirtime(),
		NewFloorContact(),
		NewMaxFallSpeed(),
		NewSphereSpeed(),
		NewRespawns(),
	}
}
