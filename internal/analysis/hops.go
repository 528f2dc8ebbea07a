package analysis

import (
	"math"

	"github.com/san-kum/kinesim/internal/sim"
)

// Hop is one stretch of samples spent off the floor.
type Hop struct {
	Start, End float64
	TakeOff    float64 // feet height when the floor was left
	Apex       float64
	Distance   float64 // horizontal
	Landed     bool    // false when the run or a respawn ended it
}

func (h Hop) Duration() float64 { return h.End - h.Start }

// Hops splits a trajectory into its airborne segments. A respawn closes the
// current hop without a landing.
func Hops(samples []sim.Sample) []Hop {
	var (
		hops []Hop
		cur  *Hop
		last sim.Sample
	)
	closeHop := func(end float64, landed bool) {
		cur.End, cur.Landed = end, landed
		hops = append(hops, *cur)
		cur = nil
	}
	for i, s := range samples {
		if cur != nil && s.Respawned {
			closeHop(last.Time, false)
		}
		switch {
		case cur == nil && !s.OnFloor && !s.Respawned:
			from := s
			if i > 0 {
				from = samples[i-1]
			}
			cur = &Hop{Start: from.Time, TakeOff: from.Feet.Y(), Apex: from.Feet.Y()}
			cur.Apex = math.Max(cur.Apex, s.Feet.Y())
			cur.Distance = horizontal(from, s)
		case cur != nil && s.OnFloor:
			cur.Distance += horizontal(last, s)
			closeHop(s.Time, true)
		case cur != nil:
			cur.Apex = math.Max(cur.Apex, s.Feet.Y())
			cur.Distance += horizontal(last, s)
		}
		last = s
	}
	if cur != nil {
		closeHop(last.Time, false)
	}
	return hops
}

func horizontal(a, b sim.Sample) float64 {
	return math.Hypot(b.Feet.X()-a.Feet.X(), b.Feet.Z()-a.Feet.Z())
}

// Summary condenses a run.
type Summary struct {
	Duration   float64
	Distance   float64
	MinHeight  float64
	MaxHeight  float64
	Airtime    float64
	Hops       int
	Landings   int
	LongestHop float64
	Respawns   int
	Throws     int
}

func Summarize(samples []sim.Sample) Summary {
	var sum Summary
	if len(samples) == 0 {
		return sum
	}
	sum.Duration = samples[len(samples)-1].Time - samples[0].Time
	sum.MinHeight, sum.MaxHeight = samples[0].Feet.Y(), samples[0].Feet.Y()
	for i, s := range samples {
		sum.MinHeight = math.Min(sum.MinHeight, s.Feet.Y())
		sum.MaxHeight = math.Max(sum.MaxHeight, s.Feet.Y())
		if s.Respawned {
			sum.Respawns++
		}
		if s.Threw {
			sum.Throws++
		}
		if i > 0 && !s.Respawned {
			sum.Distance += horizontal(samples[i-1], s)
		}
	}
	for _, h := range Hops(samples) {
		sum.Hops++
		sum.Airtime += h.Duration()
		sum.LongestHop = math.Max(sum.LongestHop, h.Duration())
		if h.Landed {
			sum.Landings++
		}
	}
	return sum
}

// Heights extracts feet heights, the usual input to DominantFrequency.
func Heights(samples []sim.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Feet.Y()
	}
	return out
}
