package viz

import (
	"math"

	"github.com/san-kum/kinesim/internal/scene"
)

// Snapshot draws the whole scene from above, scaled to fit a w×h canvas,
// with a small ring on every teleport target.
func Snapshot(sc *scene.Scene, w, h int) *Canvas {
	c := NewCanvas(w, h)
	b := sc.Bounds()
	if b.Empty() {
		return c
	}

	pw, ph := c.Pixels()
	size := b.Size()
	scale := math.Min(float64(pw-4)/math.Max(size.X(), 1), float64(ph-4)/math.Max(size.Z(), 1))
	vp := Viewport{Center: b.Center(), Scale: scale}

	TopDown(c, MeshWireframe(sc.Triangles), vp)
	for i := range sc.Objects {
		if t, ok := sc.Target(i); ok {
			x, y := vp.Project(c, t)
			c.Circle(x, y, 1.5)
		}
	}
	return c
}
