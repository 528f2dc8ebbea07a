package control

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/geom"
	"github.com/san-kum/kinesim/internal/input"
)

// Seek walks the player through a list of waypoints. The camera azimuth is
// steered towards the next waypoint by a PID on the heading error and the
// player only walks forward once roughly facing it.
type Seek struct {
	Waypoints []mgl64.Vec3
	Tolerance float64
	Run       bool
	Loop      bool

	pid     *PID
	azimuth float64
	current int
	prevT   float64
	started bool
}

const (
	seekFacing  = 0.6
	seekSnap    = 1.5
	seekMaxTurn = 8 // rad/s
)

func NewSeek(waypoints []mgl64.Vec3, run bool) *Seek {
	pid := NewPID(6, 0.1, 0)
	pid.Limit = seekMaxTurn
	return &Seek{
		Waypoints: waypoints,
		Tolerance: 0.5,
		Run:       run,
		pid:       pid,
	}
}

// Done reports whether every waypoint was reached.
func (s *Seek) Done() bool { return s.current >= len(s.Waypoints) }

// Current is the index of the waypoint being approached.
func (s *Seek) Current() int { return s.current }

func (s *Seek) Command(obs Observation) Command {
	dt := 0.0
	if s.started {
		dt = obs.Time - s.prevT
	}
	s.started = true
	s.prevT = obs.Time

	if s.Done() {
		return Command{Azimuth: s.azimuth}
	}

	d := geom.Horizontal(s.Waypoints[s.current].Sub(obs.Feet))
	dist := d.Len()
	if dist < s.Tolerance {
		s.current++
		if s.Loop && s.Done() {
			s.current = 0
		}
		s.pid.Reset()
		return Command{Azimuth: s.azimuth}
	}

	desired := math.Atan2(-d.X(), -d.Z())
	err := wrapAngle(desired - s.azimuth)
	if dist < seekSnap {
		s.azimuth = desired
		err = 0
	} else {
		s.azimuth = wrapAngle(s.azimuth + s.pid.Update(err, obs.Time)*dt)
	}

	return Command{
		Input:   input.Snapshot{Forward: math.Abs(err) < seekFacing, Run: s.Run},
		Azimuth: s.azimuth,
	}
}

// wrapAngle maps a to (-pi, pi].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
