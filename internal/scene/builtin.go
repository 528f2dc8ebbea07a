package scene

import (
	"fmt"
	"math"
	"sort"
)

var builtins = map[string]func() *Scene{
	"flat":   flat,
	"stairs": stairs,
	"room":   room,
	"ramp":   ramp,
	"void":   void,
}

func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Builtin(name string) (*Scene, bool) {
	fn, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// Open resolves a builtin name first and a file path otherwise.
func Open(ref string) (*Scene, error) {
	if s, ok := Builtin(ref); ok {
		return s, nil
	}
	return Load(ref)
}

// plane is a w x d quad in the local xz plane, facing +Y.
func plane(name string, w, d float64, pos []float64) Object {
	x, z := w/2, d/2
	return Object{
		Name:     name,
		Vertices: []float64{-x, 0, -z, -x, 0, z, x, 0, z, x, 0, -z},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
		Position: pos,
	}
}

// box has its base centered on the local origin.
func box(name string, w, h, d float64, pos []float64) Object {
	x, z := w/2, d/2
	return Object{
		Name: name,
		Vertices: []float64{
			-x, 0, -z, x, 0, -z, x, 0, z, -x, 0, z,
			-x, h, -z, x, h, -z, x, h, z, -x, h, z,
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // bottom
			4, 5, 6, 4, 6, 7, // top
			0, 1, 5, 0, 5, 4,
			1, 2, 6, 1, 6, 5,
			2, 3, 7, 2, 7, 6,
			3, 0, 4, 3, 4, 7,
		},
		Position: pos,
	}
}

func must(s *Scene, err error) *Scene {
	if err != nil {
		panic(err)
	}
	return s
}

func flat() *Scene {
	return must(New("flat", []Object{
		plane("floor", 100, 100, nil),
		box("crate", 1, 1, 1, []float64{6, 0, -6}),
		box("pillar", 1, 4, 1, []float64{-8, 0, -4}),
	}, 2))
}

func stairs() *Scene {
	objects := []Object{plane("floor", 60, 60, nil)}
	for i := 0; i < 8; i++ {
		h := 0.25 * float64(i+1)
		objects = append(objects, box(fmt.Sprintf("step%d", i+1), 3, h, 1, []float64{0, 0, -3 - float64(i)}))
	}
	objects = append(objects, box("landing", 3, 2, 4, []float64{0, 0, -12.5}))
	return must(New("stairs", objects, 2))
}

func room() *Scene {
	const size, height, thick = 20.0, 4.0, 0.5
	return must(New("room", []Object{
		plane("floor", size, size, nil),
		box("north", size, height, thick, []float64{0, 0, -size / 2}),
		box("south", size, height, thick, []float64{0, 0, size / 2}),
		box("east", thick, height, size, []float64{size / 2, 0, 0}),
		box("west", thick, height, size, []float64{-size / 2, 0, 0}),
	}, 2))
}

func ramp() *Scene {
	const angle = 0.35
	incline := plane("ramp", 4, 12, []float64{0, 6 * math.Sin(angle), -8})
	incline.Rotation = []float64{angle, 0, 0}
	return must(New("ramp", []Object{
		plane("floor", 60, 60, nil),
		incline,
	}, 2))
}

// void is a small ledge with nothing around it.
func void() *Scene {
	return must(New("void", []Object{
		plane("ledge", 2, 2, nil),
	}, 0))
}
