package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// Contains reports whether p, assumed to lie in the triangle plane, falls
// inside the triangle (edges included).
func (t Triangle) Contains(p mgl64.Vec3) bool {
	v0 := t.C.Sub(t.A)
	v1 := t.B.Sub(t.A)
	v2 := p.Sub(t.A)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if math.Abs(denom) < epsilon*epsilon {
		return false
	}
	inv := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv

	const tol = 1e-7
	return u >= -tol && v >= -tol && u+v <= 1+tol
}

// ClosestPointTriangle returns the point of t nearest to p.
func ClosestPointTriangle(p mgl64.Vec3, t Triangle) mgl64.Vec3 {
	a, b, c := t.A, t.B, t.C
	ab := b.Sub(a)
	ac := c.Sub(a)

	ap := p.Sub(a)
	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}

// ClosestPointSegment returns the point of segment [a, b] nearest to p.
func ClosestPointSegment(p, a, b mgl64.Vec3) mgl64.Vec3 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < epsilon {
		return a
	}
	t := mgl64.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Mul(t))
}

// ClosestPointsSegments returns the closest pair of points between segments
// [p1, q1] and [p2, q2]; the first point lies on the first segment.
func ClosestPointsSegments(p1, q1, p2, q2 mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	d1 := q1.Sub(p1)
	d2 := q2.Sub(p2)
	r := p1.Sub(p2)
	a := d1.Dot(d1)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	var s, t float64
	switch {
	case a <= epsilon && e <= epsilon:
		return p1, p2
	case a <= epsilon:
		t = mgl64.Clamp(f/e, 0, 1)
	default:
		c := d1.Dot(r)
		if e <= epsilon {
			s = mgl64.Clamp(-c/a, 0, 1)
			break
		}
		b := d1.Dot(d2)
		denom := a*e - b*b
		if denom != 0 {
			s = mgl64.Clamp((b*f-c*e)/denom, 0, 1)
		}
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = mgl64.Clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = mgl64.Clamp((b-c)/a, 0, 1)
		}
	}
	return p1.Add(d1.Mul(s)), p2.Add(d2.Mul(t))
}

// CapsuleTriangle tests a capsule against a single triangle. The returned
// normal points from the triangle towards the capsule. Triangles are treated
// as two-sided: the face normal is flipped to the side holding most of the
// capsule axis.
func CapsuleTriangle(c Capsule, t Triangle) (Contact, bool) {
	n := t.Normal()
	if n == (mgl64.Vec3{}) {
		return Contact{}, false
	}

	s1 := n.Dot(c.Start.Sub(t.A))
	s2 := n.Dot(c.End.Sub(t.A))
	if s1+s2 < 0 {
		n = n.Mul(-1)
		s1, s2 = -s1, -s2
	}
	if s1 >= c.Radius && s2 >= c.Radius {
		return Contact{}, false
	}

	best := math.Inf(1)
	bestNormal := n

	for _, end := range [2]struct {
		p mgl64.Vec3
		s float64
	}{{c.Start, s1}, {c.End, s2}} {
		if end.s < best && t.Contains(end.p.Sub(n.Mul(end.s))) {
			best = end.s
		}
	}

	// axis pierces the face
	if s1*s2 < 0 && best > 0 {
		k := s1 / (s1 - s2)
		x := c.Start.Add(c.End.Sub(c.Start).Mul(k))
		if t.Contains(x) {
			best = 0
		}
	}

	edges := [3][2]mgl64.Vec3{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}}
	for _, e := range edges {
		onAxis, onEdge := ClosestPointsSegments(c.Start, c.End, e[0], e[1])
		d := onAxis.Sub(onEdge).Len()
		if d < best {
			best = d
			if dir, ok := Normalize(onAxis.Sub(onEdge)); ok {
				bestNormal = dir
			} else {
				bestNormal = n
			}
		}
	}

	if best >= c.Radius {
		return Contact{}, false
	}
	return Contact{Normal: bestNormal, Depth: c.Radius - best}, true
}

// SphereTriangle tests a sphere against a single triangle.
func SphereTriangle(s Sphere, t Triangle) (Contact, bool) {
	q := ClosestPointTriangle(s.Center, t)
	diff := s.Center.Sub(q)
	d2 := diff.Dot(diff)
	if d2 >= s.Radius*s.Radius {
		return Contact{}, false
	}

	d := math.Sqrt(d2)
	normal, ok := Normalize(diff)
	if !ok {
		normal = t.Normal()
		if normal == (mgl64.Vec3{}) {
			return Contact{}, false
		}
	}
	return Contact{Normal: normal, Depth: s.Radius - d}, true
}
