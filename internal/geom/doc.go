// Package geom provides the collision primitives shared by the simulation.
//
// All vectors are [mgl64.Vec3] values:
//
//   - [Capsule]: swept sphere around a vertical segment (the player volume)
//   - [Sphere]: center + radius (dynamic bodies)
//   - [Triangle]: one face of the static world
//   - [AABB]: axis-aligned box used for broad-phase pruning
//   - [Contact]: unit normal + non-negative penetration depth
//
// Narrow-phase tests ([CapsuleTriangle], [SphereTriangle]) return a contact
// that pushes the primitive out of the triangle, or false when they do not
// touch.
//
// # Example
//
//	c := geom.NewCapsule(mgl64.Vec3{0, 0, 0}, 1.8, 0.35)
//	tri := geom.Triangle{A: a, B: b, C: cc}
//	if contact, ok := geom.CapsuleTriangle(c, tri); ok {
//	    c = c.Translate(contact.Normal.Mul(contact.Depth))
//	}
package geom
