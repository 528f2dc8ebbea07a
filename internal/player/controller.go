package player

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/collision"
	"github.com/san-kum/kinesim/internal/geom"
	"github.com/san-kum/kinesim/internal/input"
)

type State int

const (
	Grounded State = iota
	Airborne
	Jumping
)

func (s State) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Airborne:
		return "airborne"
	case Jumping:
		return "jumping"
	}
	return "unknown"
}

// ParseState is the inverse of String.
func ParseState(name string) (State, bool) {
	for _, s := range []State{Grounded, Airborne, Jumping} {
		if s.String() == name {
			return s, true
		}
	}
	return Grounded, false
}

type Animation string

const (
	AnimIdle Animation = "idle"
	AnimWalk Animation = "walk"
	AnimRun  Animation = "run"
	AnimJump Animation = "jump"
)

const (
	runThreshold  = 8
	walkThreshold = 0.1
)

// Controller moves the player capsule. Floor contact and the jump lock are
// independent: landing never ends a jump early, only time does.
type Controller struct {
	cfg      Config
	capsule  geom.Capsule
	velocity mgl64.Vec3
	facing   mgl64.Vec3
	onFloor  bool

	jumped   bool
	lastJump float64

	locked    bool
	lockUntil float64
}

// New places the capsule with its lowest point at feet. The player starts
// airborne and settles on the first floor contact.
func New(cfg Config, feet mgl64.Vec3) *Controller {
	return &Controller{
		cfg:     cfg,
		capsule: geom.NewCapsule(feet, cfg.Height, cfg.Radius),
		facing:  mgl64.Vec3{0, 0, -1},
	}
}

func (c *Controller) Config() Config { return c.cfg }

// ApplyInput sets horizontal velocity from the camera-relative direction and
// triggers a jump when the player is grounded and not locked. It reports
// whether a jump started.
func (c *Controller) ApplyInput(in input.Snapshot, azimuth, now float64) bool {
	dir := in.Direction(azimuth)
	speed := in.Speed(c.cfg.WalkSpeed, c.cfg.RunSpeed)
	c.velocity[0] = dir.X() * speed
	c.velocity[2] = dir.Z() * speed
	if dir != (mgl64.Vec3{}) {
		c.facing = dir
	}

	if in.Jump && c.onFloor && !c.IsJumping(now) {
		return c.Jump(now)
	}
	return false
}

// Jump launches the player. It fails while airborne or within the cooldown
// of the previous jump start.
func (c *Controller) Jump(now float64) bool {
	if !c.onFloor {
		return false
	}
	if c.jumped && now-c.lastJump <= c.cfg.JumpCooldown {
		return false
	}

	c.velocity[1] = c.cfg.JumpSpeed
	c.onFloor = false
	c.jumped = true
	c.lastJump = now
	c.locked = true
	c.lockUntil = now + c.cfg.JumpLock
	return true
}

// Step integrates one sub-step and resolves against the world.
func (c *Controller) Step(dt float64, r *collision.Resolver) collision.PlayerResult {
	if !c.onFloor {
		c.velocity[1] -= c.cfg.Gravity * dt
	}
	c.capsule = c.capsule.Translate(c.velocity.Mul(dt))

	res := r.ResolvePlayerVsWorld(c.capsule, c.velocity)
	c.capsule = res.Capsule
	c.velocity = res.Velocity
	c.onFloor = res.OnFloor
	return res
}

// Update releases the jump lock once its deadline has passed.
func (c *Controller) Update(now float64) {
	if c.locked && now >= c.lockUntil {
		c.locked = false
	}
}

func (c *Controller) IsJumping(now float64) bool {
	return c.locked && now < c.lockUntil
}

func (c *Controller) OnFloor() bool { return c.onFloor }

func (c *Controller) State(now float64) State {
	switch {
	case c.IsJumping(now):
		return Jumping
	case c.onFloor:
		return Grounded
	default:
		return Airborne
	}
}

// Teleport puts the feet at the given point, stops the player and clears
// the jump lock.
func (c *Controller) Teleport(feet mgl64.Vec3) {
	c.capsule = geom.NewCapsule(feet, c.cfg.Height, c.cfg.Radius)
	c.velocity = mgl64.Vec3{}
	c.onFloor = true
	c.locked = false
}

func (c *Controller) Capsule() geom.Capsule { return c.capsule }

func (c *Controller) Velocity() mgl64.Vec3 { return c.velocity }

// SetVelocity is used by sphere pushes, which exchange momentum with the
// player.
func (c *Controller) SetVelocity(v mgl64.Vec3) { c.velocity = v }

func (c *Controller) Feet() mgl64.Vec3 { return c.capsule.Feet() }

// Facing is the last non-zero movement direction.
func (c *Controller) Facing() mgl64.Vec3 { return c.facing }

func (c *Controller) Animation(now float64) Animation {
	if c.IsJumping(now) || !c.onFloor {
		return AnimJump
	}
	speed := geom.Horizontal(c.velocity).Len()
	switch {
	case speed > runThreshold:
		return AnimRun
	case speed > walkThreshold:
		return AnimWalk
	}
	return AnimIdle
}
