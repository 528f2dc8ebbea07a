package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinesim/internal/geom"
	"github.com/san-kum/kinesim/internal/spatial"
)

const exported = `{
  "objects": [
    {
      "name": "deck",
      "vertices": [-1, 0, -1, -1, 0, 1, 1, 0, 1, 1, 0, -1],
      "indices": [0, 1, 2, 0, 2, 3],
      "position": [10, 3, 0],
      "scale": [2, 1, 2]
    },
    {
      "name": "soup",
      "vertices": [0, 0, 0, 1, 0, 0, 0, 1, 0],
      "indices": []
    },
    {"name": "marker", "position": [4, 5, 6]}
  ]
}`

func TestParse(t *testing.T) {
	g := NewWithT(t)

	s, err := Parse("test", []byte(exported))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Objects).To(HaveLen(3))
	g.Expect(s.Triangles).To(HaveLen(3))

	b := s.Bounds()
	g.Expect(b.Min.Sub(mgl64.Vec3{0, 0, -2}).Len()).To(BeNumerically("<", 1e-9))
	g.Expect(b.Max.Sub(mgl64.Vec3{12, 3, 2}).Len()).To(BeNumerically("<", 1e-9))
	g.Expect(s.Spawn).To(Equal(5.0))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty objects", `{"objects": []}`, ErrNoObjects},
		{"missing objects", `{}`, ErrNoObjects},
		{"ragged vertices", `{"objects": [{"vertices": [0, 0]}]}`, spatial.ErrBadMesh},
		{"index out of range", `{"objects": [{"vertices": [0,0,0, 1,0,0, 0,0,1], "indices": [0, 1, 5]}]}`, spatial.ErrBadMesh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.name, []byte(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := Parse("bad", []byte("{")); err == nil {
		t.Error("expected a syntax error")
	}
}

func TestTransformOrder(t *testing.T) {
	g := NewWithT(t)

	// scale, then rotate a quarter turn about Y, then translate
	o := Object{
		Position: []float64{1, 2, 3},
		Rotation: []float64{0, math.Pi / 2, 0},
		Scale:    []float64{2, 0, 0},
	}
	p := o.Transform().Mul4x1(mgl64.Vec4{1, 1, 0, 1}).Vec3()
	g.Expect(p.Sub(mgl64.Vec3{1, 3, 1}).Len()).To(BeNumerically("<", 1e-9))
}

func TestTransformEulerXYZ(t *testing.T) {
	g := NewWithT(t)

	// Z applies first, then Y, then X
	o := Object{Rotation: []float64{math.Pi / 2, 0, math.Pi / 2}}
	p := o.Transform().Mul4x1(mgl64.Vec4{1, 0, 0, 1}).Vec3()
	g.Expect(p.Sub(mgl64.Vec3{0, 0, 1}).Len()).To(BeNumerically("<", 1e-9))
}

func TestLoadOrFallback(t *testing.T) {
	g := NewWithT(t)

	s, err := LoadOrFallback(filepath.Join(t.TempDir(), "missing.json"))
	g.Expect(err).To(HaveOccurred())
	g.Expect(s.Name).To(Equal("fallback"))
	g.Expect(s.Triangles).To(HaveLen(2))

	path := filepath.Join(t.TempDir(), "scene.json")
	g.Expect(os.WriteFile(path, []byte(exported), 0644)).To(Succeed())
	s, err = LoadOrFallback(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Objects).To(HaveLen(3))
}

func TestFallbackHoldsThePlayer(t *testing.T) {
	g := NewWithT(t)

	// wound downward; triangles are two-sided
	idx := Fallback().Index()
	c, ok := idx.QueryCapsule(geom.NewCapsule(mgl64.Vec3{0, -0.1, 0}, 1.8, 0.35))
	g.Expect(ok).To(BeTrue())
	g.Expect(c.Normal.Y()).To(BeNumerically(">", 0.99))
}

func TestTargets(t *testing.T) {
	g := NewWithT(t)

	s, err := Parse("test", []byte(exported))
	g.Expect(err).NotTo(HaveOccurred())

	i, ok := s.Find("deck")
	g.Expect(ok).To(BeTrue())
	target, ok := s.Target(i)
	g.Expect(ok).To(BeTrue())
	g.Expect(target.Sub(mgl64.Vec3{10, 3, 0}).Len()).To(BeNumerically("<", 1e-9))

	i, _ = s.Find("marker")
	target, _ = s.Target(i)
	g.Expect(target).To(Equal(mgl64.Vec3{4, 5, 6}))

	_, ok = s.Find("nothing")
	g.Expect(ok).To(BeFalse())
	_, ok = s.Target(7)
	g.Expect(ok).To(BeFalse())
}

func TestBuiltins(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Names()).To(Equal([]string{"flat", "ramp", "room", "stairs", "void"}))

	for _, name := range Names() {
		s, ok := Builtin(name)
		g.Expect(ok).To(BeTrue(), name)
		g.Expect(s.Name).To(Equal(name))
		g.Expect(s.Triangles).NotTo(BeEmpty(), name)
		g.Expect(s.Index().Len()).To(Equal(len(s.Triangles)), name)
	}

	_, ok := Builtin("moon")
	g.Expect(ok).To(BeFalse())
}

func TestStairsStepTops(t *testing.T) {
	g := NewWithT(t)

	s, _ := Builtin("stairs")
	for i, want := range []float64{0.25, 0.5, 0.75} {
		idx, ok := s.Find([]string{"step1", "step2", "step3"}[i])
		g.Expect(ok).To(BeTrue())
		target, _ := s.Target(idx)
		g.Expect(target.Y()).To(BeNumerically("~", want, 1e-12))
	}
}

func TestRampIsWalkable(t *testing.T) {
	g := NewWithT(t)

	s, _ := Builtin("ramp")
	i, _ := s.Find("ramp")
	tris, err := s.Objects[i].Triangles()
	g.Expect(err).NotTo(HaveOccurred())
	for _, tri := range tris {
		n := tri.Normal()
		g.Expect(n.Y()).To(BeNumerically("~", math.Cos(0.35), 1e-9))
	}
}

func TestOpen(t *testing.T) {
	g := NewWithT(t)

	s, err := Open("room")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(s.Name).To(Equal("room"))

	_, err = Open(filepath.Join(t.TempDir(), "nope.json"))
	g.Expect(err).To(HaveOccurred())
}
