package sim_test

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"github.com/san-kum/kinesim/internal/control"
	"github.com/san-kum/kinesim/internal/input"
	"github.com/san-kum/kinesim/internal/player"
	"github.com/san-kum/kinesim/internal/sim"
	"github.com/san-kum/kinesim/internal/spatial"
)

const frame = 1.0 / 60

func floorAt(y float64) *spatial.Index {
	return spatial.Build(spatial.Quad(
		mgl64.Vec3{-50, y, -50},
		mgl64.Vec3{-50, y, 50},
		mgl64.Vec3{50, y, 50},
		mgl64.Vec3{50, y, -50},
	))
}

// runFor steps whole frames for the given simulated seconds and returns the
// samples that reported a respawn.
func runFor(s *sim.Simulation, seconds float64, cmd control.Command) []sim.Sample {
	var respawns []sim.Sample
	end := s.Now() + seconds
	for s.Now() < end-1e-9 {
		sample := s.Frame(frame, cmd)
		if sample.Respawned {
			respawns = append(respawns, sample)
		}
	}
	return respawns
}

var _ = Describe("Simulation", func() {
	var (
		buf *gbytes.Buffer
		cfg sim.Config
	)

	BeforeEach(func() {
		buf = gbytes.NewBuffer()
		cfg = sim.DefaultConfig()
	})

	Context("falling forever through an empty world", func() {
		var s *sim.Simulation

		BeforeEach(func() {
			cfg.Respawn = sim.NewRespawnGuard(0)
			var err error
			s, err = sim.New(cfg, spatial.Build(nil), sim.WithLogger(log.New(buf, "", 0)))
			Expect(err).NotTo(HaveOccurred())
		})

		It("does not respawn before the delay has elapsed below the threshold", func() {
			Expect(runFor(s, 9.0, control.Command{})).To(BeEmpty())
			falling := s.View()
			Expect(falling.Feet.Y()).To(BeNumerically("<", -20))
		})

		It("respawns exactly once after eight seconds below the threshold", func() {
			respawns := runFor(s, 10.0, control.Command{})
			Expect(respawns).To(HaveLen(1))

			// crossed -20 after ~1.16s of free fall
			Expect(respawns[0].Time).To(BeNumerically("~", 9.16, 0.05))
			Expect(buf).To(gbytes.Say(`respawn t=9\.\d+ feet=\(0\.00, 0\.00, 0\.00\) count=1`))
			Expect(s.View().Respawns).To(Equal(1))
		})

		It("puts the player back at the respawn point at rest", func() {
			respawns := runFor(s, 10.0, control.Command{})
			Expect(respawns).To(HaveLen(1))

			// at most a few sub-steps of free fall after the reset
			r := respawns[0]
			Expect(r.Feet.Sub(mgl64.Vec3{0, 0, 0}).Len()).To(BeNumerically("<", 0.01))
			Expect(r.Velocity.Len()).To(BeNumerically("<", 0.5))
		})
	})

	Context("standing below the threshold and jumping", func() {
		var s *sim.Simulation

		BeforeEach(func() {
			// threshold at 1: standing on the floor counts as below it
			cfg.Respawn = sim.NewRespawnGuard(21)
			var err error
			s, err = sim.New(cfg, floorAt(0), sim.WithLogger(log.New(buf, "", 0)))
			Expect(err).NotTo(HaveOccurred())
		})

		It("re-arms the timer every time a jump rises above the threshold", func() {
			jump := control.Command{Input: input.Snapshot{Jump: true}}
			Expect(runFor(s, 20, jump)).To(BeEmpty())
			Expect(buf).To(gbytes.Say("jump t="))

			Expect(runFor(s, 10, control.Command{})).To(HaveLen(1))
		})
	})

	Context("on a flat floor", func() {
		var s *sim.Simulation

		BeforeEach(func() {
			cfg.Respawn = sim.NewRespawnGuard(10)
			var err error
			s, err = sim.New(cfg, floorAt(0))
			Expect(err).NotTo(HaveOccurred())
		})

		It("drops from y=10 and settles grounded", func() {
			runFor(s, 3, control.Command{})
			v := s.View()
			Expect(v.OnFloor).To(BeTrue())
			Expect(v.State).To(Equal(player.Grounded))
			Expect(v.Animation).To(Equal(player.AnimIdle))
			Expect(v.Velocity.Y()).To(BeNumerically("~", 0, 0.5))
			Expect(v.Feet.Y()).To(BeNumerically("~", 0, 0.1))
		})

		It("holds the jump state for three seconds after landing", func() {
			runFor(s, 3, control.Command{})
			start := s.Now()

			s.Frame(frame, control.Command{Input: input.Snapshot{Jump: true}})
			Expect(s.View().State).To(Equal(player.Jumping))

			runFor(s, 2.5, control.Command{})
			v := s.View()
			Expect(v.OnFloor).To(BeTrue())
			Expect(v.Jumping).To(BeTrue())
			Expect(v.Animation).To(Equal(player.AnimJump))

			runFor(s, start+3.1-s.Now(), control.Command{})
			Expect(s.View().Jumping).To(BeFalse())
			Expect(s.View().State).To(Equal(player.Grounded))
		})

		It("walks in the camera direction", func() {
			runFor(s, 3, control.Command{})
			before := s.View().Feet

			runFor(s, 1, control.Command{Input: input.Snapshot{Forward: true}})
			moved := s.View().Feet.Sub(before)
			Expect(moved.Z()).To(BeNumerically("<", -2))
			Expect(moved.X()).To(BeNumerically("~", 0, 1e-6))
			Expect(s.View().Facing.Z()).To(BeNumerically("~", -1, 1e-9))
		})

		It("throws spheres that come to rest on the floor", func() {
			runFor(s, 3, control.Command{})
			s.Throw(mgl64.Vec3{0, 0.3, -1}, 0.2)
			runFor(s, 12, control.Command{})

			v := s.View()
			Expect(v.Spheres[0].Y()).To(BeNumerically("~", 0.2, 0.05))
			Expect(v.Spheres[1].Y()).To(BeNumerically("<", -100))
		})
	})
})
