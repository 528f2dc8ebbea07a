package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world vertical axis.
var Up = mgl64.Vec3{0, 1, 0}

type Contact struct {
	Normal mgl64.Vec3
	Depth  float64
}

// Push returns the translation that moves a primitive out along the contact.
func (c Contact) Push(scale float64) mgl64.Vec3 {
	return c.Normal.Mul(c.Depth * scale)
}

type AABB struct {
	Min, Max mgl64.Vec3
}

// EmptyAABB returns an inverted box that grows correctly under Extend.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (b AABB) Extend(p mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

func (b AABB) Union(o AABB) AABB {
	return b.Extend(o.Min).Extend(o.Max)
}

func (b AABB) Expand(r float64) AABB {
	d := mgl64.Vec3{r, r, r}
	return AABB{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

func (b AABB) Intersects(o AABB) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

func (b AABB) Size() mgl64.Vec3 { return b.Max.Sub(b.Min) }

func (b AABB) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Empty reports whether nothing has been added to the box.
func (b AABB) Empty() bool { return b.Min[0] > b.Max[0] }

// LongestAxis returns 0, 1 or 2 for X, Y or Z.
func (b AABB) LongestAxis() int {
	size := b.Size()
	axis := 0
	if size[1] > size[axis] {
		axis = 1
	}
	if size[2] > size[axis] {
		axis = 2
	}
	return axis
}

type Triangle struct {
	A, B, C mgl64.Vec3
}

func (t Triangle) Bounds() AABB {
	return EmptyAABB().Extend(t.A).Extend(t.B).Extend(t.C)
}

func (t Triangle) Centroid() mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Normal returns the unit face normal following A->B->C winding, or the zero
// vector for a degenerate triangle.
func (t Triangle) Normal() mgl64.Vec3 {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	l := n.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return n.Mul(1 / l)
}

func (t Triangle) Area() float64 {
	return 0.5 * t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Len()
}

// Degenerate reports a zero-area or non-finite triangle.
func (t Triangle) Degenerate() bool {
	if !Finite(t.A) || !Finite(t.B) || !Finite(t.C) {
		return true
	}
	return t.Area() < 1e-12
}

// Capsule is a segment from Start to End swept by Radius. Start is the lower
// hemisphere center.
type Capsule struct {
	Start, End mgl64.Vec3
	Radius     float64
}

// NewCapsule builds an upright capsule whose lowest point rests at feet.
func NewCapsule(feet mgl64.Vec3, height, radius float64) Capsule {
	axis := math.Max(height-2*radius, 0)
	start := feet.Add(mgl64.Vec3{0, radius, 0})
	return Capsule{
		Start:  start,
		End:    start.Add(mgl64.Vec3{0, axis, 0}),
		Radius: radius,
	}
}

func (c Capsule) Translate(d mgl64.Vec3) Capsule {
	c.Start = c.Start.Add(d)
	c.End = c.End.Add(d)
	return c
}

func (c Capsule) Center() mgl64.Vec3 {
	return c.Start.Add(c.End).Mul(0.5)
}

// Feet returns the lowest point of the capsule.
func (c Capsule) Feet() mgl64.Vec3 {
	return c.Start.Sub(mgl64.Vec3{0, c.Radius, 0})
}

func (c Capsule) Bounds() AABB {
	return EmptyAABB().Extend(c.Start).Extend(c.End).Expand(c.Radius)
}

// Valid checks the radius and the upright orientation.
func (c Capsule) Valid() bool {
	return c.Radius > 0 && c.End.Y() >= c.Start.Y() && Finite(c.Start) && Finite(c.End)
}

type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

func (s Sphere) Bounds() AABB {
	return EmptyAABB().Extend(s.Center).Expand(s.Radius)
}

func Finite(v mgl64.Vec3) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Normalize returns the unit vector of v and false when v is too short to
// have a direction.
func Normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	l := v.Len()
	if l < 1e-9 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// Horizontal drops the vertical component.
func Horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], 0, v[2]}
}
