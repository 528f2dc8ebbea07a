package player_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinesim/internal/collision"
	"github.com/san-kum/kinesim/internal/input"
	"github.com/san-kum/kinesim/internal/player"
	"github.com/san-kum/kinesim/internal/spatial"
)

const dt = 1.0 / 60 / 5

func flatFloor() *collision.Resolver {
	idx := spatial.Build(spatial.Quad(
		mgl64.Vec3{-50, 0, -50},
		mgl64.Vec3{-50, 0, 50},
		mgl64.Vec3{50, 0, 50},
		mgl64.Vec3{50, 0, -50},
	))
	return collision.New(idx, collision.DefaultParams())
}

// settle steps until the controller is grounded and returns the sub-steps used.
func settle(c *player.Controller, r *collision.Resolver, limit int) int {
	for i := 1; i <= limit; i++ {
		c.Step(dt, r)
		if c.OnFloor() {
			return i
		}
	}
	return limit + 1
}

var _ = Describe("Controller", func() {
	var (
		r *collision.Resolver
		c *player.Controller
	)

	BeforeEach(func() {
		r = flatFloor()
	})

	Context("dropped from y=10 over a flat floor", func() {
		BeforeEach(func() {
			c = player.New(player.DefaultConfig(), mgl64.Vec3{0.3, 10, 0.7})
		})

		It("settles grounded with near-zero vertical velocity", func() {
			steps := settle(c, r, 600)
			Expect(steps).To(BeNumerically("<=", 600))

			for i := 0; i < 60; i++ {
				c.Step(dt, r)
			}
			Expect(c.OnFloor()).To(BeTrue())
			Expect(math.Abs(c.Velocity().Y())).To(BeNumerically("<", 0.5))
			Expect(c.Feet().Y()).To(BeNumerically("~", 0, 0.1))
			Expect(c.State(100)).To(Equal(player.Grounded))
		})

		It("starts airborne", func() {
			Expect(c.OnFloor()).To(BeFalse())
			Expect(c.State(0)).To(Equal(player.Airborne))
			Expect(c.Animation(0)).To(Equal(player.AnimJump))
		})
	})

	Context("standing on the floor", func() {
		BeforeEach(func() {
			c = player.New(player.DefaultConfig(), mgl64.Vec3{})
			c.Teleport(mgl64.Vec3{})
		})

		It("rejects a jump while airborne", func() {
			Expect(c.Jump(0)).To(BeTrue())
			before := c.Velocity()
			Expect(c.Jump(0.1)).To(BeFalse())
			Expect(c.Velocity()).To(Equal(before))
		})

		It("rejects a jump within the cooldown", func() {
			Expect(c.Jump(1)).To(BeTrue())
			c.Teleport(mgl64.Vec3{})
			Expect(c.Jump(1.4)).To(BeFalse())
			Expect(c.OnFloor()).To(BeTrue())
			Expect(c.Jump(1.6)).To(BeTrue())
		})

		It("launches at the jump speed", func() {
			Expect(c.Jump(0)).To(BeTrue())
			Expect(c.Velocity().Y()).To(Equal(15.0))
			Expect(c.OnFloor()).To(BeFalse())
			Expect(c.State(0)).To(Equal(player.Jumping))
		})

		It("keeps the jump lock for exactly three seconds despite landing", func() {
			start := 2.0
			Expect(c.Jump(start)).To(BeTrue())

			now := start
			for now < start+2.9 {
				c.Step(dt, r)
				now += dt
				c.Update(now)
				Expect(c.IsJumping(now)).To(BeTrue())
			}
			// physically landed long ago
			Expect(c.OnFloor()).To(BeTrue())
			Expect(c.State(now)).To(Equal(player.Jumping))

			Expect(c.IsJumping(start + 2.999)).To(BeTrue())
			c.Update(start + 3.0)
			Expect(c.IsJumping(start + 3.0)).To(BeFalse())
			Expect(c.State(start + 3.0)).To(Equal(player.Grounded))
		})

		It("ignores jump input until the lock expires", func() {
			Expect(c.ApplyInput(input.Snapshot{Jump: true}, 0, 0)).To(BeTrue())

			now := 0.0
			for i := 0; i < 600; i++ {
				c.Step(dt, r)
				now += dt
			}
			Expect(c.OnFloor()).To(BeTrue())
			Expect(c.ApplyInput(input.Snapshot{Jump: true}, 0, now)).To(BeFalse())

			c.Update(3.0)
			Expect(c.ApplyInput(input.Snapshot{Jump: true}, 0, 3.0)).To(BeTrue())
		})

		It("clears the lock on teleport", func() {
			Expect(c.Jump(0)).To(BeTrue())
			c.Teleport(mgl64.Vec3{5, 2, 5})
			Expect(c.IsJumping(0.5)).To(BeFalse())
			Expect(c.OnFloor()).To(BeTrue())
			Expect(c.Velocity()).To(Equal(mgl64.Vec3{}))
			Expect(c.Feet().Sub(mgl64.Vec3{5, 2, 5}).Len()).To(BeNumerically("<", 1e-9))
		})

		It("sets horizontal velocity from camera-relative input", func() {
			c.ApplyInput(input.Snapshot{Forward: true}, math.Pi/2, 0)
			Expect(c.Velocity().X()).To(BeNumerically("~", -5, 1e-9))
			Expect(c.Velocity().Z()).To(BeNumerically("~", 0, 1e-9))
			Expect(c.Facing().X()).To(BeNumerically("~", -1, 1e-9))
			Expect(c.Animation(0)).To(Equal(player.AnimWalk))

			c.ApplyInput(input.Snapshot{Forward: true, Run: true}, 0, 0)
			Expect(c.Velocity().Z()).To(BeNumerically("~", -10, 1e-9))
			Expect(c.Animation(0)).To(Equal(player.AnimRun))

			c.ApplyInput(input.Snapshot{}, 0, 0)
			Expect(c.Velocity().X()).To(BeZero())
			Expect(c.Velocity().Z()).To(BeZero())
			Expect(c.Animation(0)).To(Equal(player.AnimIdle))
			Expect(c.Facing().Z()).To(BeNumerically("~", -1, 1e-9))
		})
	})

	Describe("Config", func() {
		It("validates", func() {
			Expect(player.DefaultConfig().Validate()).To(Succeed())

			cfg := player.DefaultConfig()
			cfg.Height = 0.5
			Expect(cfg.Validate()).To(MatchError(player.ErrInvalidConfig))
		})
	})
})
