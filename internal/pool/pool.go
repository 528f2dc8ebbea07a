// Package pool keeps a fixed ring of dynamic spheres. Throwing reuses the
// next slot instead of allocating; unused bodies wait below the world.
package pool

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/collision"
	"github.com/san-kum/kinesim/internal/geom"
)

const (
	DefaultCapacity = 25
	DefaultRadius   = 0.2
	DefaultInherit  = 2

	minImpulse    = 15
	chargeImpulse = 30
	spawnOffset   = 1.5
)

// Hidden is where bodies rest until first thrown.
var Hidden = mgl64.Vec3{0, -100, 0}

type Body struct {
	Sphere   geom.Sphere
	Velocity mgl64.Vec3
	// Tag identifies the visual that follows this body. It is never
	// interpreted here.
	Tag int
}

type Pool struct {
	bodies []Body
	next   int
	thrown int

	// Inherit scales the player's velocity added to a throw.
	Inherit float64
}

func New(capacity int, radius float64) *Pool {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if radius <= 0 {
		radius = DefaultRadius
	}
	bodies := make([]Body, capacity)
	for i := range bodies {
		bodies[i] = Body{
			Sphere: geom.Sphere{Center: Hidden, Radius: radius},
			Tag:    i,
		}
	}
	return &Pool{bodies: bodies, Inherit: DefaultInherit}
}

// ThrowImpulse maps how long the throw was charged, in seconds, to launch
// speed. It starts at 15 and saturates towards 45.
func ThrowImpulse(held float64) float64 {
	if held < 0 || math.IsNaN(held) {
		held = 0
	}
	return minImpulse + chargeImpulse*(1-math.Exp(-held))
}

// Throw relaunches the next body in the ring from just in front of the
// capsule's upper hemisphere and returns its index.
func (p *Pool) Throw(origin geom.Capsule, aim, playerVel mgl64.Vec3, held float64) int {
	dir, ok := geom.Normalize(aim)
	if !ok {
		dir = mgl64.Vec3{0, 0, -1}
	}

	i := p.next
	b := &p.bodies[i]
	b.Sphere.Center = origin.End.Add(dir.Mul(origin.Radius * spawnOffset))
	b.Velocity = dir.Mul(ThrowImpulse(held)).Add(playerVel.Mul(p.Inherit))

	p.next = (p.next + 1) % len(p.bodies)
	p.thrown++
	return i
}

// Step advances every body by dt: world first, then the player, then all
// pairs.
func (p *Pool) Step(dt float64, r *collision.Resolver, c geom.Capsule, playerVel *mgl64.Vec3) {
	for i := range p.bodies {
		b := &p.bodies[i]
		r.ResolveSphereVsWorld(&b.Sphere, &b.Velocity, dt)
		r.ResolvePlayerVsSphere(c, playerVel, &b.Sphere, &b.Velocity)
	}
	r.ResolveSpherePairs(len(p.bodies), func(i int) (*geom.Sphere, *mgl64.Vec3) {
		return &p.bodies[i].Sphere, &p.bodies[i].Velocity
	})
}

// Bodies returns the live slice; callers must not keep it across steps.
func (p *Pool) Bodies() []Body { return p.bodies }

func (p *Pool) Len() int { return len(p.bodies) }

// Next is the index the following Throw will use.
func (p *Pool) Next() int { return p.next }

// Thrown counts throws since creation.
func (p *Pool) Thrown() int { return p.thrown }

// MeanSpeed averages the speed of the bodies thrown so far. The ring fills
// from index 0, so those are the first min(Thrown, Len) bodies; the rest are
// still falling below the world and do not count.
func (p *Pool) MeanSpeed() float64 {
	n := min(p.thrown, len(p.bodies))
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range p.bodies[:n] {
		sum += b.Velocity.Len()
	}
	return sum / float64(n)
}
