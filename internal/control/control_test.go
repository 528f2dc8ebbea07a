package control

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinesim/internal/input"
)

func TestNone(t *testing.T) {
	g := NewWithT(t)
	g.Expect(NewNone().Command(Observation{Time: 3})).To(Equal(Command{}))
}

func TestManualOneShots(t *testing.T) {
	g := NewWithT(t)

	m := NewManual()
	m.Press(input.KeyForward)
	m.Press(input.KeyRun)
	m.Turn(0.5)
	m.QueueThrow(mgl64.Vec3{0, 0, -1}, 1.5)
	m.QueueTeleport(mgl64.Vec3{1, 2, 3})

	cmd := m.Command(Observation{})
	g.Expect(cmd.Input).To(Equal(input.Snapshot{Forward: true, Run: true}))
	g.Expect(cmd.Azimuth).To(Equal(0.5))
	g.Expect(cmd.Throw).To(Equal(&Throw{Aim: mgl64.Vec3{0, 0, -1}, Held: 1.5}))
	g.Expect(*cmd.Teleport).To(Equal(mgl64.Vec3{1, 2, 3}))

	cmd = m.Command(Observation{})
	g.Expect(cmd.Throw).To(BeNil())
	g.Expect(cmd.Teleport).To(BeNil())
	g.Expect(cmd.Input.Forward).To(BeTrue())

	m.Release(input.KeyRun)
	g.Expect(m.Command(Observation{}).Input).To(Equal(input.Snapshot{Forward: true}))
	m.ReleaseAll()
	g.Expect(m.Command(Observation{}).Input).To(Equal(input.Snapshot{}))
}

func TestWanderDeterministic(t *testing.T) {
	g := NewWithT(t)

	a, b := NewWander(7), NewWander(7)
	for i := 0; i < 200; i++ {
		obs := Observation{Time: float64(i) / 60}
		g.Expect(a.Command(obs)).To(Equal(b.Command(obs)))
	}
}

func TestSeekReachesWaypoints(t *testing.T) {
	g := NewWithT(t)

	s := NewSeek([]mgl64.Vec3{{0, 0, -6}, {6, 0, -6}}, false)
	feet := mgl64.Vec3{}
	dt := 1.0 / 60

	for i := 0; i < 60*20 && !s.Done(); i++ {
		cmd := s.Command(Observation{Time: float64(i) * dt, Feet: feet})
		dir := cmd.Input.Direction(cmd.Azimuth)
		feet = feet.Add(dir.Mul(5 * dt))
	}

	g.Expect(s.Done()).To(BeTrue())
	g.Expect(feet.Sub(mgl64.Vec3{6, 0, -6}).Len()).To(BeNumerically("<", 1))
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
	}
	for _, tt := range tests {
		g := NewWithT(t)
		g.Expect(wrapAngle(tt.in)).To(BeNumerically("~", tt.want, 1e-9))
	}
}

func TestPIDProportional(t *testing.T) {
	g := NewWithT(t)

	p := NewPID(2, 0, 0)
	g.Expect(p.Update(1, 0)).To(Equal(2.0))
	g.Expect(p.Update(0.5, 0.1)).To(BeNumerically("~", 1, 1e-12))

	p.SetParam("Kp", 3)
	g.Expect(p.GetParams()["Kp"]).To(Equal(3.0))
	p.Reset()
	g.Expect(p.Update(1, 5)).To(Equal(3.0))
}

func TestPIDLimit(t *testing.T) {
	g := NewWithT(t)

	p := NewPID(10, 1, 0)
	p.SetParam("Limit", 2)
	g.Expect(p.Update(1, 0)).To(Equal(2.0))
	g.Expect(p.Update(-1, 0.1)).To(Equal(-2.0))

	// the integral saturates at Limit/Ki instead of winding up
	p.Kp = 0
	for i := 2; i < 200; i++ {
		p.Update(1, float64(i)*0.1)
	}
	g.Expect(p.Update(1, 20)).To(Equal(2.0))
	g.Expect(p.Update(-1, 20.1)).To(BeNumerically("~", 1.9, 1e-9))
}
