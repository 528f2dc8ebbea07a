// Package scene turns exported scene files and builtin layouts into world
// triangles and teleport targets.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/geom"
	"github.com/san-kum/kinesim/internal/spatial"
)

var ErrNoObjects = errors.New("scene: no objects")

// Object is one entry of an exported scene. Vertices are local-space xyz
// triples; Indices may be empty for a triangle soup. Position, Rotation
// (Euler XYZ, radians) and Scale are optional three-element arrays.
type Object struct {
	Name     string    `json:"name,omitempty"`
	Vertices []float64 `json:"vertices"`
	Indices  []uint32  `json:"indices,omitempty"`
	Position []float64 `json:"position,omitempty"`
	Rotation []float64 `json:"rotation,omitempty"`
	Scale    []float64 `json:"scale,omitempty"`
}

type file struct {
	Objects []Object `json:"objects"`
}

type Scene struct {
	Name      string
	Objects   []Object
	Triangles []geom.Triangle
	// Spawn is the feet height the player starts and respawns at.
	Spawn float64

	bounds []geom.AABB
}

func component(v []float64, i int, def float64) float64 {
	if i >= len(v) || v[i] == 0 {
		return def
	}
	return v[i]
}

// Transform is translation * rotation(X, then Y, then Z) * scale. Zero or
// missing scale components count as 1.
func (o Object) Transform() mgl64.Mat4 {
	t := mgl64.Translate3D(component(o.Position, 0, 0), component(o.Position, 1, 0), component(o.Position, 2, 0))
	r := mgl64.HomogRotate3DX(component(o.Rotation, 0, 0)).
		Mul4(mgl64.HomogRotate3DY(component(o.Rotation, 1, 0))).
		Mul4(mgl64.HomogRotate3DZ(component(o.Rotation, 2, 0)))
	s := mgl64.Scale3D(component(o.Scale, 0, 1), component(o.Scale, 1, 1), component(o.Scale, 2, 1))
	return t.Mul4(r).Mul4(s)
}

func (o Object) Origin() mgl64.Vec3 {
	return mgl64.Vec3{component(o.Position, 0, 0), component(o.Position, 1, 0), component(o.Position, 2, 0)}
}

// Triangles returns the object's triangles in world space.
func (o Object) Triangles() ([]geom.Triangle, error) {
	indices := o.Indices
	if len(indices) == 0 {
		indices = nil
	}
	local, err := spatial.TrianglesFromMesh(o.Vertices, indices)
	if err != nil {
		return nil, err
	}
	m := o.Transform()
	apply := func(p mgl64.Vec3) mgl64.Vec3 { return m.Mul4x1(p.Vec4(1)).Vec3() }
	out := make([]geom.Triangle, len(local))
	for i, t := range local {
		out[i] = geom.Triangle{A: apply(t.A), B: apply(t.B), C: apply(t.C)}
	}
	return out, nil
}

// New builds a scene from objects. Objects without vertices are kept as
// teleport targets but add no geometry.
func New(name string, objects []Object, spawn float64) (*Scene, error) {
	s := &Scene{
		Name:    name,
		Objects: objects,
		Spawn:   spawn,
		bounds:  make([]geom.AABB, len(objects)),
	}
	for i, o := range objects {
		b := geom.EmptyAABB()
		if len(o.Vertices) > 0 {
			tris, err := o.Triangles()
			if err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, o.Name, err)
			}
			for _, t := range tris {
				b = b.Union(t.Bounds())
			}
			s.Triangles = append(s.Triangles, tris...)
		}
		s.bounds[i] = b
	}
	return s, nil
}

// Parse reads the JSON export format. The spawn height is set two units
// above the highest vertex.
func Parse(name string, data []byte) (*Scene, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", name, err)
	}
	if len(f.Objects) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoObjects)
	}
	s, err := New(name, f.Objects, 0)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	if b := s.Bounds(); !b.Empty() {
		s.Spawn = b.Max.Y() + 2
	}
	return s, nil
}

// Load reads a scene file; the scene is named after the file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), data)
}

// LoadOrFallback never returns a nil scene: when path cannot be loaded it
// returns the fallback floor together with the reason.
func LoadOrFallback(path string) (*Scene, error) {
	s, err := Load(path)
	if err != nil {
		return Fallback(), err
	}
	return s, nil
}

// Fallback is a 10x10 floor at y=0.
func Fallback() *Scene {
	s, _ := New("fallback", []Object{{
		Name:     "floor",
		Vertices: []float64{-5, 0, -5, 5, 0, -5, 5, 0, 5, -5, 0, -5, 5, 0, 5, -5, 0, 5},
	}}, 2)
	return s
}

func (s *Scene) Bounds() geom.AABB {
	b := geom.EmptyAABB()
	for _, ob := range s.bounds {
		if !ob.Empty() {
			b = b.Union(ob)
		}
	}
	return b
}

func (s *Scene) Index() *spatial.Index { return spatial.Build(s.Triangles) }

// Find returns the index of the first object called name.
func (s *Scene) Find(name string) (int, bool) {
	for i, o := range s.Objects {
		if o.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Target is where a teleport to object i puts the feet: the object origin,
// raised to the top of its geometry when it has any.
func (s *Scene) Target(i int) (mgl64.Vec3, bool) {
	if i < 0 || i >= len(s.Objects) {
		return mgl64.Vec3{}, false
	}
	p := s.Objects[i].Origin()
	if b := s.bounds[i]; !b.Empty() {
		p[1] = b.Max.Y()
	}
	return p, true
}
