package viz

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Pixels is the canvas size in sub-pixels: two columns and four rows of dots
// per cell.
func (c *Canvas) Pixels() (int, int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Lit reports whether the sub-pixel (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm. Lines are clipped to a
// margin around the canvas first so far-off geometry stays cheap.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	w, h := c.Pixels()
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= w && x1 >= w) || (y0 >= h && y1 >= h) {
		return
	}
	const limit = 1 << 14
	if absInt(x1-x0) > limit || absInt(y1-y0) > limit {
		return
	}

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle outlines a circle of radius r sub-pixels; r below one sets a dot.
func (c *Canvas) Circle(cx, cy int, r float64) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	steps := max(8, int(2*math.Pi*r))
	px, py := cx+int(math.Round(r)), cy
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(r*math.Cos(a)))
		y := cy + int(math.Round(r*math.Sin(a)))
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Viewport maps the world xz plane onto canvas sub-pixels, north (-Z) up.
type Viewport struct {
	Center mgl64.Vec3
	Scale  float64 // sub-pixels per metre
}

func (v Viewport) Project(c *Canvas, p mgl64.Vec3) (int, int) {
	w, h := c.Pixels()
	x := float64(w)/2 + (p.X()-v.Center.X())*v.Scale
	y := float64(h)/2 + (p.Z()-v.Center.Z())*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

// TopDown draws a wireframe seen from above. Vertical edges collapse to dots.
func TopDown(c *Canvas, w *Wireframe, vp Viewport) {
	for _, e := range w.Edges {
		x1, y1 := vp.Project(c, e.Start)
		x2, y2 := vp.Project(c, e.End)
		c.DrawLine(x1, y1, x2, y2)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
