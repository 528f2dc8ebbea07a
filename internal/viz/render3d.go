package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/geom"
)

// Camera is a chase camera: it sits Distance behind and Height above its
// target, looking along the azimuth forward, pitched down by Pitch.
type Camera struct {
	Target   mgl64.Vec3
	Azimuth  float64
	Pitch    float64
	Distance float64
	Height   float64
	FOV      float64
	Near     float64
	Zoom     float64
}

func NewCamera() *Camera {
	return &Camera{Pitch: 0.25, Distance: 6, Height: 2.5, FOV: math.Pi / 3, Near: 0.1, Zoom: 1.0}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// Follow aims the camera at a capsule center with the given azimuth.
func (c *Camera) Follow(target mgl64.Vec3, azimuth float64) {
	c.Target = target
	c.Azimuth = azimuth
}

// Eye is the camera position in world space.
func (c *Camera) Eye() mgl64.Vec3 {
	back := mgl64.Rotate3DY(c.Azimuth).Mul3x1(mgl64.Vec3{0, 0, c.Distance / c.Zoom})
	return c.Target.Add(back).Add(mgl64.Vec3{0, c.Height, 0})
}

// RotatePoint moves a world point into camera space, where the camera looks
// down -Z.
func (c *Camera) RotatePoint(p mgl64.Vec3) mgl64.Vec3 {
	rel := p.Sub(c.Eye())
	rel = mgl64.Rotate3DY(-c.Azimuth).Mul3x1(rel)
	return mgl64.Rotate3DX(c.Pitch).Mul3x1(rel)
}

// Project converts a camera-space point to sub-pixel coordinates. Points at
// or behind the near plane are not visible.
func (c *Camera) Project(rot mgl64.Vec3, sw, sh int) (int, int, bool) {
	depth := -rot.Z()
	if depth < c.Near {
		return 0, 0, false
	}
	f := float64(min(sw, sh)) / 2 / math.Tan(c.FOV/2)
	sx := int(math.Round(rot.X()/depth*f)) + sw/2
	sy := int(math.Round(-rot.Y()/depth*f)) + sh/2
	return sx, sy, true
}

// clip trims a camera-space segment to the part in front of the near plane.
func (c *Camera) clip(a, b mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3, bool) {
	da, db := -a.Z()-c.Near, -b.Z()-c.Near
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = a.Add(b.Sub(a).Mul(da / (da - db)))
	case db < 0:
		b = b.Add(a.Sub(b).Mul(db / (db - da)))
	}
	return a, b, true
}

type Edge struct {
	Start, End mgl64.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe               { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e mgl64.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p mgl64.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                  { w.Edges = w.Edges[:0] }

// MeshWireframe returns the distinct edges of tris.
func MeshWireframe(tris []geom.Triangle) *Wireframe {
	w := NewWireframe()
	seen := make(map[[2]mgl64.Vec3]bool, len(tris)*3)
	for _, t := range tris {
		for _, e := range [3][2]mgl64.Vec3{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			key := e
			if less(e[1], e[0]) {
				key = [2]mgl64.Vec3{e[1], e[0]}
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			w.AddEdge(key[0], key[1])
		}
	}
	return w
}

func less(a, b mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// CapsuleWireframe outlines a capsule with two rings and four rails.
func CapsuleWireframe(c geom.Capsule) *Wireframe {
	w := NewWireframe()
	const n = 12
	ring := func(center mgl64.Vec3) []mgl64.Vec3 {
		pts := make([]mgl64.Vec3, n)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / n
			pts[i] = center.Add(mgl64.Vec3{math.Cos(a) * c.Radius, 0, math.Sin(a) * c.Radius})
		}
		return pts
	}
	bottom, top := ring(c.Start), ring(c.End)
	for i := 0; i < n; i++ {
		w.AddEdge(bottom[i], bottom[(i+1)%n])
		w.AddEdge(top[i], top[(i+1)%n])
		if i%3 == 0 {
			w.AddEdge(bottom[i], top[i])
		}
	}
	w.AddEdge(c.Start.Sub(mgl64.Vec3{0, c.Radius, 0}), c.End.Add(mgl64.Vec3{0, c.Radius, 0}))
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe to the canvas, farthest edges first.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	cw, ch := c.Pixels()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		a, b, ok := cam.clip(cam.RotatePoint(e.Start), cam.RotatePoint(e.End))
		if !ok {
			continue
		}
		x1, y1, v1 := cam.Project(a, cw, ch)
		x2, y2, v2 := cam.Project(b, cw, ch)
		if v1 && v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, -(a.Z() + b.Z()) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
