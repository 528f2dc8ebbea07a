package spatial

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/geom"
)

var ErrBadMesh = errors.New("spatial: malformed mesh buffer")

// TrianglesFromMesh converts a flat xyz position buffer into triangles. With a
// nil index buffer every three consecutive vertices form a triangle.
func TrianglesFromMesh(positions []float64, indices []uint32) ([]geom.Triangle, error) {
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position components", ErrBadMesh, len(positions))
	}
	verts := make([]mgl64.Vec3, len(positions)/3)
	for i := range verts {
		verts[i] = mgl64.Vec3{positions[3*i], positions[3*i+1], positions[3*i+2]}
	}

	if indices == nil {
		if len(verts)%3 != 0 {
			return nil, fmt.Errorf("%w: %d vertices without an index buffer", ErrBadMesh, len(verts))
		}
		tris := make([]geom.Triangle, 0, len(verts)/3)
		for i := 0; i < len(verts); i += 3 {
			tris = append(tris, geom.Triangle{A: verts[i], B: verts[i+1], C: verts[i+2]})
		}
		return tris, nil
	}

	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrBadMesh, len(indices))
	}
	tris := make([]geom.Triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		for _, v := range [3]uint32{a, b, c} {
			if int(v) >= len(verts) {
				return nil, fmt.Errorf("%w: index %d out of range (%d vertices)", ErrBadMesh, v, len(verts))
			}
		}
		tris = append(tris, geom.Triangle{A: verts[a], B: verts[b], C: verts[c]})
	}
	return tris, nil
}

// Quad returns the two triangles of the quad a-b-c-d, wound so the normal
// follows (b-a)x(c-a).
func Quad(a, b, c, d mgl64.Vec3) []geom.Triangle {
	return []geom.Triangle{
		{A: a, B: b, C: c},
		{A: a, B: c, C: d},
	}
}
