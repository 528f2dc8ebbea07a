// Package spatial indexes the static world triangles for collision queries.
//
// [Build] ingests the triangles once into a median-split bounding volume
// hierarchy. Queries prune by box overlap, run the narrow phase from package
// geom on the survivors and pick a single contact with a [Selector]:
//
//	idx := spatial.Build(tris)
//	if c, ok := idx.QueryCapsule(capsule); ok {
//	    // c.Normal, c.Depth
//	}
//
// Capsule queries prefer floor contacts ([FloorFirst]); sphere queries take
// the deepest one ([Deepest]).
package spatial
