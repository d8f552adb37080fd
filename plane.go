package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Plane is an infinite plane primitive defined by a point and a unit
// normal, satisfying both Bounded and Traceable.
type Plane[T vecmath.Float] struct {
	Point  vecmath.Vec3[T]
	Normal vecmath.Vec3[T] // unit length
}

// NewPlane validates and constructs a Plane, normalizing Normal. A
// zero-length normal is a construction-time error.
func NewPlane[T vecmath.Float](point, normal vecmath.Vec3[T]) (Plane[T], error) {
	if normal.LengthSquared() < vecmath.DegenerateEpsilon[T]()*vecmath.DegenerateEpsilon[T]() {
		return Plane[T]{}, ErrZeroLengthNormal
	}
	return Plane[T]{Point: point, Normal: normal.Normalize()}, nil
}

// Bounds implements Bounded. A plane is infinite in extent; it reports the
// all-space AABB so it is always visited by any BVH traversal that reaches
// the leaf containing it, while its Centroid (below) stays the finite
// defining point so it can still be binned by centroid. A BVH node whose
// bounds include a plane has infinite surface area, so every SAH split
// cost there is NaN and the builder splits that node at the centroid
// median instead.
func (p Plane[T]) Bounds() AABB[T] {
	inf := vecmath.Inf[T](1)
	return AABB[T]{
		Min: vecmath.Vec3[T]{X: -inf, Y: -inf, Z: -inf},
		Max: vecmath.Vec3[T]{X: inf, Y: inf, Z: inf},
	}
}

// Centroid implements Bounded.
func (p Plane[T]) Centroid() vecmath.Vec3[T] {
	return p.Point
}

// Intersect solves `(p0 - origin)·n / (direction·n)`, rejecting
// near-parallel rays. The plane is single-sided: the reported normal
// never flips to face the ray.
func (p Plane[T]) Intersect(ray Ray[T], tMax T) (Hit[T], bool) {
	denom := ray.Direction.Dot(p.Normal)
	if vecmath.Abs(denom) < vecmath.DegenerateEpsilon[T]() {
		return Hit[T]{}, false
	}

	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denom
	eps := vecmath.Epsilon[T]()
	if t <= eps || t > tMax {
		return Hit[T]{}, false
	}

	return Hit[T]{Distance: t, GeometricNormal: p.Normal}, true
}
