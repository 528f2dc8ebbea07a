package export

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/kinesim/internal/analysis"
	"github.com/san-kum/kinesim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	g := NewWithT(t)

	g.Expect(CanvasToSVG(nil, 2)).To(BeEmpty())

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(7, 7)
	svg := CanvasToSVG(c, 2)
	g.Expect(svg).To(HavePrefix("<?xml"))
	g.Expect(svg).To(ContainSubstring(`width="16" height="16"`))
	g.Expect(strings.Count(svg, "<circle")).To(Equal(2))
	g.Expect(svg).To(ContainSubstring(`<circle cx="1.0" cy="1.0" r="0.8"/>`))
	g.Expect(svg).To(ContainSubstring(`<circle cx="15.0" cy="15.0" r="0.8"/>`))
}

func TestPortraitToSVG(t *testing.T) {
	g := NewWithT(t)

	one := &analysis.Portrait{Points: []analysis.Point{{X: 1, Y: 1}}}
	g.Expect(PortraitToSVG(nil, 100, 100, "#fff", false)).To(BeEmpty())
	g.Expect(PortraitToSVG(one, 100, 100, "#fff", false)).To(BeEmpty())
	g.Expect(PortraitToSVG(one, 100, 100, "#fff", true)).To(ContainSubstring("<circle"))

	line := &analysis.Portrait{Points: []analysis.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}}
	svg := PortraitToSVG(line, 120, 120, "#0ff", false)
	g.Expect(svg).To(ContainSubstring(`stroke="#0ff"`))
	// 10% padding on each side
	g.Expect(svg).To(ContainSubstring(`d="M10.0,110.0 L110.0,10.0"`))
}
