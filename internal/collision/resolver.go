package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/geom"
)

// World answers single-contact queries against static geometry.
// *spatial.Index implements it.
type World interface {
	QueryCapsule(c geom.Capsule) (geom.Contact, bool)
	QuerySphere(s geom.Sphere) (geom.Contact, bool)
}

type Resolver struct {
	world World
	p     Params
}

func New(world World, p Params) *Resolver {
	return &Resolver{world: world, p: p}
}

func (r *Resolver) Params() Params { return r.p }

// IsFloor classifies a contact normal as walkable.
func (r *Resolver) IsFloor(n mgl64.Vec3) bool {
	return n.Y() > r.p.FloorNormalY
}

type PlayerResult struct {
	OnFloor  bool
	Capsule  geom.Capsule
	Velocity mgl64.Vec3
	Contacts int
}

// ResolvePlayerVsWorld pushes the capsule out of the world. Each pass takes
// the floor-preferred contact; floors clamp downward velocity and apply
// friction, anything steeper reflects the normal component of velocity.
// When nothing is touched, a short downward probe still reports a floor the
// capsule is resting just above.
func (r *Resolver) ResolvePlayerVsWorld(c geom.Capsule, v mgl64.Vec3) PlayerResult {
	res := PlayerResult{Capsule: c, Velocity: v}

	for pass := 0; pass < r.p.MaxPasses; pass++ {
		contact, ok := r.world.QueryCapsule(res.Capsule)
		if !ok {
			break
		}
		res.Contacts++

		if r.IsFloor(contact.Normal) {
			res.OnFloor = true
			push := math.Max(contact.Depth, r.p.MinFloorCorrection)
			res.Capsule = res.Capsule.Translate(contact.Normal.Mul(push))
			res.Velocity[1] = math.Max(res.Velocity[1], 0)
			res.Velocity[0] *= r.p.FloorFriction
			res.Velocity[2] *= r.p.FloorFriction
			continue
		}

		n := contact.Normal
		res.Velocity = res.Velocity.Sub(n.Mul(n.Dot(res.Velocity) * r.p.Restitution))
		res.Capsule = res.Capsule.Translate(n.Mul(contact.Depth * r.p.DepthOvershoot))
	}

	if !res.OnFloor && res.Velocity.Y() <= 0 && r.p.GroundProbe > 0 {
		probe := res.Capsule.Translate(mgl64.Vec3{0, -r.p.GroundProbe, 0})
		if contact, ok := r.world.QueryCapsule(probe); ok && r.IsFloor(contact.Normal) {
			res.OnFloor = true
		}
	}
	return res
}

// ResolveSphereVsWorld integrates the sphere over dt and resolves it against
// the world. Gravity only accumulates while airborne; drag always applies.
func (r *Resolver) ResolveSphereVsWorld(s *geom.Sphere, v *mgl64.Vec3, dt float64) bool {
	s.Center = s.Center.Add(v.Mul(dt))

	contact, hit := r.world.QuerySphere(*s)
	if hit {
		n := contact.Normal
		*v = v.Sub(n.Mul(n.Dot(*v) * r.p.Restitution))
		s.Center = s.Center.Add(n.Mul(contact.Depth))
	} else {
		v[1] -= r.p.Gravity * dt
	}

	*v = v.Add(v.Mul(math.Exp(-r.p.Drag*dt) - 1))
	return hit
}

// exchange swaps the components of va and vb along n (equal-mass elastic).
func exchange(n mgl64.Vec3, va, vb *mgl64.Vec3) {
	pa := n.Mul(n.Dot(*va))
	pb := n.Mul(n.Dot(*vb))
	*va = va.Add(pb).Sub(pa)
	*vb = vb.Add(pa).Sub(pb)
}

// ResolveSphereVsSphere separates two overlapping spheres symmetrically and
// exchanges their velocities along the line of centers. The velocity sum is
// preserved. Spheres with coincident centers are not touched.
func (r *Resolver) ResolveSphereVsSphere(a, b *geom.Sphere, va, vb *mgl64.Vec3) bool {
	d := a.Center.Sub(b.Center)
	d2 := d.Dot(d)
	rad := a.Radius + b.Radius
	if d2 >= rad*rad {
		return false
	}

	// coincident centers have no line of centers; leave both alone
	n, ok := geom.Normalize(d)
	if !ok {
		return false
	}
	exchange(n, va, vb)

	sep := (rad - math.Sqrt(d2)) / 2
	a.Center = a.Center.Add(n.Mul(sep))
	b.Center = b.Center.Sub(n.Mul(sep))
	return true
}

// ResolveSpherePairs runs ResolveSphereVsSphere over every unordered pair of
// the n bodies returned by at and reports how many pairs touched.
func (r *Resolver) ResolveSpherePairs(n int, at func(i int) (*geom.Sphere, *mgl64.Vec3)) int {
	hits := 0
	for i := 0; i < n; i++ {
		si, vi := at(i)
		for j := i + 1; j < n; j++ {
			sj, vj := at(j)
			if r.ResolveSphereVsSphere(si, sj, vi, vj) {
				hits++
			}
		}
	}
	return hits
}

// ResolvePlayerVsSphere tests the capsule's start, end and midpoint against
// the sphere. The first overlapping point exchanges velocity with the sphere
// and pushes the sphere out by the whole overlap; the capsule never moves.
func (r *Resolver) ResolvePlayerVsSphere(c geom.Capsule, vp *mgl64.Vec3, s *geom.Sphere, vs *mgl64.Vec3) bool {
	rad := c.Radius + s.Radius
	for _, p := range [3]mgl64.Vec3{c.Start, c.End, c.Center()} {
		d := p.Sub(s.Center)
		d2 := d.Dot(d)
		if d2 >= rad*rad {
			continue
		}

		n, ok := geom.Normalize(d)
		if !ok {
			continue
		}
		exchange(n, vp, vs)
		s.Center = s.Center.Sub(n.Mul(rad - math.Sqrt(d2)))
		return true
	}
	return false
}
