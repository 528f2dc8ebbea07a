package spatial

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/kinesim/internal/geom"
)

// MaxTrianglesPerLeaf is the threshold for splitting index nodes.
const MaxTrianglesPerLeaf = 8

// node is either internal (two children) or a leaf holding triangles.
type node struct {
	bounds      geom.AABB
	left, right *node
	tris        []geom.Triangle
}

func (n *node) leaf() bool { return n.left == nil }

// Index is an immutable bounding volume hierarchy over the static world.
// It is safe for concurrent queries.
type Index struct {
	root  *node
	count int
	depth int
	nodes int
}

// Build constructs an index from tris. Degenerate triangles are dropped and
// an empty input yields an index that never reports a contact. The input
// slice is not modified.
func Build(tris []geom.Triangle) *Index {
	kept := make([]geom.Triangle, 0, len(tris))
	for _, t := range tris {
		if !t.Degenerate() {
			kept = append(kept, t)
		}
	}

	idx := &Index{count: len(kept)}
	if len(kept) == 0 {
		return idx
	}
	idx.root = idx.build(kept, 1)
	return idx
}

func (idx *Index) build(tris []geom.Triangle, depth int) *node {
	idx.nodes++
	if depth > idx.depth {
		idx.depth = depth
	}

	n := &node{bounds: geom.EmptyAABB()}
	for _, t := range tris {
		n.bounds = n.bounds.Union(t.Bounds())
	}

	if len(tris) <= MaxTrianglesPerLeaf {
		n.tris = tris
		return n
	}

	// split on the longest axis of the centroid spread
	spread := geom.EmptyAABB()
	for _, t := range tris {
		spread = spread.Extend(t.Centroid())
	}
	axis := spread.LongestAxis()

	sort.Slice(tris, func(i, j int) bool {
		return tris[i].Centroid()[axis] < tris[j].Centroid()[axis]
	})

	mid := len(tris) / 2
	n.left = idx.build(tris[:mid], depth+1)
	n.right = idx.build(tris[mid:], depth+1)
	return n
}

// Len returns the number of indexed triangles.
func (idx *Index) Len() int { return idx.count }

// Depth returns the height of the tree, 0 for an empty index.
func (idx *Index) Depth() int { return idx.depth }

func (idx *Index) Nodes() int { return idx.nodes }

// Bounds returns the box enclosing the whole world and false when empty.
func (idx *Index) Bounds() (geom.AABB, bool) {
	if idx.root == nil {
		return geom.EmptyAABB(), false
	}
	return idx.root.bounds, true
}

// Visit calls fn for every triangle whose box overlaps box. Returning false
// from fn stops the walk.
func (idx *Index) Visit(box geom.AABB, fn func(geom.Triangle) bool) {
	if idx.root == nil {
		return
	}
	visit(idx.root, box, fn)
}

func visit(n *node, box geom.AABB, fn func(geom.Triangle) bool) bool {
	if !n.bounds.Intersects(box) {
		return true
	}
	if n.leaf() {
		for _, t := range n.tris {
			if !t.Bounds().Intersects(box) {
				continue
			}
			if !fn(t) {
				return false
			}
		}
		return true
	}
	if !visit(n.left, box, fn) {
		return false
	}
	return visit(n.right, box, fn)
}

// Selector reports whether candidate should replace best when several
// triangles touch the same primitive.
type Selector func(best, candidate geom.Contact) bool

// FloorFirst prefers the contact whose normal is most aligned with up,
// breaking ties by depth. A standing capsule touching both a floor and a wall
// resolves the floor first.
func FloorFirst(up mgl64.Vec3) Selector {
	const tie = 1e-9
	return func(best, candidate geom.Contact) bool {
		cb, cc := best.Normal.Dot(up), candidate.Normal.Dot(up)
		if cc > cb+tie {
			return true
		}
		if cc < cb-tie {
			return false
		}
		return candidate.Depth > best.Depth
	}
}

// Deepest prefers the largest penetration.
func Deepest(best, candidate geom.Contact) bool {
	return candidate.Depth > best.Depth
}

// QueryCapsule returns the floor-preferred contact between c and the world.
func (idx *Index) QueryCapsule(c geom.Capsule) (geom.Contact, bool) {
	return idx.QueryCapsuleWith(c, FloorFirst(geom.Up))
}

func (idx *Index) QueryCapsuleWith(c geom.Capsule, sel Selector) (geom.Contact, bool) {
	return idx.query(c.Bounds(), sel, func(t geom.Triangle) (geom.Contact, bool) {
		return geom.CapsuleTriangle(c, t)
	})
}

// QuerySphere returns the deepest contact between s and the world.
func (idx *Index) QuerySphere(s geom.Sphere) (geom.Contact, bool) {
	return idx.QuerySphereWith(s, Deepest)
}

func (idx *Index) QuerySphereWith(s geom.Sphere, sel Selector) (geom.Contact, bool) {
	return idx.query(s.Bounds(), sel, func(t geom.Triangle) (geom.Contact, bool) {
		return geom.SphereTriangle(s, t)
	})
}

// Contacts returns every contact between c and the world, unordered.
func (idx *Index) Contacts(c geom.Capsule) []geom.Contact {
	var out []geom.Contact
	idx.Visit(c.Bounds(), func(t geom.Triangle) bool {
		if contact, ok := geom.CapsuleTriangle(c, t); ok {
			out = append(out, contact)
		}
		return true
	})
	return out
}

func (idx *Index) query(box geom.AABB, sel Selector, test func(geom.Triangle) (geom.Contact, bool)) (geom.Contact, bool) {
	var (
		best  geom.Contact
		found bool
	)
	idx.Visit(box, func(t geom.Triangle) bool {
		contact, ok := test(t)
		if !ok {
			return true
		}
		if !found || sel(best, contact) {
			best = contact
			found = true
		}
		return true
	})
	return best, found
}
