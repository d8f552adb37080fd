package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Ray is a half-line in world space, with the inverse direction and
// per-axis sign precomputed once so AABB slab tests stay branch-lean.
type Ray[T vecmath.Float] struct {
	Origin       vecmath.Vec3[T]
	Direction    vecmath.Vec3[T] // unit length, except for rays built by newRayUnnormalized
	InvDirection vecmath.Vec3[T]
	Sign         [3]bool // Sign[i] is true iff Direction's i-th component is negative
}

// NewRay builds a Ray from an origin and a direction, normalizing the
// direction and deriving InvDirection/Sign from it.
func NewRay[T vecmath.Float](origin, direction vecmath.Vec3[T]) Ray[T] {
	dir := direction.Normalize()
	return newRayFromUnit(origin, dir)
}

// newRayUnnormalized builds a Ray from a direction that must NOT be
// renormalized — used internally for Instance local-space rays, where the
// local direction's magnitude carries the scale of the instance transform
// and local parameter t already equals world-space t.
func newRayUnnormalized[T vecmath.Float](origin, direction vecmath.Vec3[T]) Ray[T] {
	return newRayFromUnit(origin, direction)
}

func newRayFromUnit[T vecmath.Float](origin, direction vecmath.Vec3[T]) Ray[T] {
	inv := vecmath.Vec3[T]{
		X: 1 / direction.X,
		Y: 1 / direction.Y,
		Z: 1 / direction.Z,
	}
	return Ray[T]{
		Origin:       origin,
		Direction:    direction,
		InvDirection: inv,
		Sign:         [3]bool{direction.X < 0, direction.Y < 0, direction.Z < 0},
	}
}

// At returns the point along the ray at parameter t.
func (r Ray[T]) At(t T) vecmath.Vec3[T] {
	return r.Origin.Add(r.Direction.Scale(t))
}
