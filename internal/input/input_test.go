package input

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"
)

func TestDirection(t *testing.T) {
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name    string
		in      Snapshot
		azimuth float64
		want    mgl64.Vec3
	}{
		{"none", Snapshot{}, 0, mgl64.Vec3{}},
		{"forward", Snapshot{Forward: true}, 0, mgl64.Vec3{0, 0, -1}},
		{"left", Snapshot{Left: true}, 0, mgl64.Vec3{-1, 0, 0}},
		{"diagonal", Snapshot{Forward: true, Right: true}, 0, mgl64.Vec3{s2, 0, -s2}},
		{"cancel", Snapshot{Forward: true, Back: true}, 1.2, mgl64.Vec3{}},
		{"forward turned left", Snapshot{Forward: true}, math.Pi / 2, mgl64.Vec3{-1, 0, 0}},
		{"right turned around", Snapshot{Right: true}, math.Pi, mgl64.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			got := tt.in.Direction(tt.azimuth)
			g.Expect(got.Sub(tt.want).Len()).To(BeNumerically("<", 1e-12), "got %v", got)
		})
	}
}

func TestFromKeys(t *testing.T) {
	g := NewWithT(t)

	s := FromKeys(map[string]bool{"KeyW": true, "ShiftLeft": true, "KeyQ": true})
	g.Expect(s).To(Equal(Snapshot{Forward: true, Run: true}))
	g.Expect(s.Speed(5, 10)).To(Equal(10.0))
	g.Expect(FromKeys(nil)).To(Equal(Snapshot{}))
	g.Expect(FromKeys(nil).Moving()).To(BeFalse())
}
