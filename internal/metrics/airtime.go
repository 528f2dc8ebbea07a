package metrics

import (
	"github.com/san-kum/kinesim/internal/sim"
)

// Airtime is the fraction of frames spent off the floor.
type Airtime struct {
	name    string
	air     int
	samples int
}

func NewAirtime() *Airtime {
	return &Airtime{
		name: "airtime",
	}
}

func (a *Airtime) Name() string {
	return a.name
}

func (a *Airtime) Observe(s sim.Sample) {
	if !s.OnFloor {
		a.air++
	}
	a.samples++
}

func (a *Airtime) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.air) / float64(a.samples)
}

func (a *Airtime) Reset() {
	a.air = 0
	a.samples = 0
}

// FloorContact is the fraction of frames in which the resolver touched any
// geometry.
type FloorContact struct {
	name     string
	touching int
	samples  int
}

func NewFloorContact() *FloorContact {
	return &FloorContact{name: "contact_ratio"}
}

func (f *FloorContact) Name() string { return f.name }

func (f *FloorContact) Observe(s sim.Sample) {
	if s.Contacts > 0 {
		f.touching++
	}
	f.samples++
}

func (f *FloorContact) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.touching) / float64(f.samples)
}

func (f *FloorContact) Reset() {
	f.touching = 0
	f.samples = 0
}
