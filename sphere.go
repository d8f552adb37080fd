package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Sphere is a solid sphere primitive.
type Sphere[T vecmath.Float] struct {
	Center vecmath.Vec3[T]
	Radius T
}

// NewSphere validates and constructs a Sphere. A non-positive radius is a
// construction-time error.
func NewSphere[T vecmath.Float](center vecmath.Vec3[T], radius T) (Sphere[T], error) {
	if radius <= 0 {
		return Sphere[T]{}, ErrNonPositiveRadius
	}
	return Sphere[T]{Center: center, Radius: radius}, nil
}

// Bounds implements Bounded.
func (s Sphere[T]) Bounds() AABB[T] {
	r := vecmath.Vec3[T]{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB[T]{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// Centroid implements Bounded.
func (s Sphere[T]) Centroid() vecmath.Vec3[T] {
	return s.Center
}

// Intersect solves the ray/sphere quadratic, returning the smallest root
// exceeding ε_origin and not exceeding tMax. A ray originating inside the
// sphere reports the exit root instead of a negative or too-close one.
func (s Sphere[T]) Intersect(ray Ray[T], tMax T) (Hit[T], bool) {
	eps := vecmath.Epsilon[T]()

	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Hit[T]{}, false
	}

	sqrtDisc := vecmath.Sqrt(discriminant)
	inv2a := 1 / (2 * a)

	tNear := (-b - sqrtDisc) * inv2a
	tFar := (-b + sqrtDisc) * inv2a
	if tNear > tFar {
		tNear, tFar = tFar, tNear
	}

	t := tNear
	if t <= eps {
		// Ray origin is inside (or behind) the near root: report the exit
		// intersection instead of the negative/too-close one.
		t = tFar
	}
	if t <= eps || t > tMax {
		return Hit[T]{}, false
	}

	point := ray.At(t)
	normal := point.Sub(s.Center).Scale(1 / s.Radius)

	return Hit[T]{Distance: t, GeometricNormal: normal}, true
}
