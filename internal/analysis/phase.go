package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/kinesim/internal/sim"
)

type Point struct{ X, Y float64 }

// Portrait is a 2D trajectory ready for plotting.
type Portrait struct {
	Points []Point
}

// VerticalPortrait plots feet height against vertical velocity. A clean
// jump traces a parabola in this plane.
func VerticalPortrait(samples []sim.Sample) *Portrait {
	p := &Portrait{Points: make([]Point, 0, len(samples))}
	for _, s := range samples {
		p.Points = append(p.Points, Point{X: s.Feet.Y(), Y: s.Velocity.Y()})
	}
	return p
}

// TrackPortrait plots the ground track seen from above, north (-Z) up.
func TrackPortrait(samples []sim.Sample) *Portrait {
	p := &Portrait{Points: make([]Point, 0, len(samples))}
	for _, s := range samples {
		p.Points = append(p.Points, Point{X: s.Feet.X(), Y: -s.Feet.Z()})
	}
	return p
}

// Crossings records the ground position each time the feet rise through
// height, interpolated between the two samples around the crossing.
func Crossings(samples []sim.Sample, height float64) *Portrait {
	section := &Portrait{Points: make([]Point, 0)}
	for i := 1; i < len(samples); i++ {
		prev, curr := samples[i-1], samples[i]
		if curr.Respawned || !(prev.Feet.Y() < height && curr.Feet.Y() >= height) {
			continue
		}
		frac := (height - prev.Feet.Y()) / (curr.Feet.Y() - prev.Feet.Y())
		if math.IsNaN(frac) || math.IsInf(frac, 0) {
			frac = 0.5
		}
		at := prev.Feet.Add(curr.Feet.Sub(prev.Feet).Mul(frac))
		section.Points = append(section.Points, Point{X: at.X(), Y: -at.Z()})
	}
	return section
}

// ToASCII draws the portrait with axes where they cross the visible area.
func (p *Portrait) ToASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// older points are drawn lighter
	marks := []rune{'.', 'o', '•'}
	for i, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = marks[min(i*len(marks)/len(p.Points), len(marks)-1)]
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
