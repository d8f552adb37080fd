package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Triangle is a single triangle with per-vertex shading normals. Edge
// vectors are precomputed once at construction.
type Triangle[T vecmath.Float] struct {
	V0, V1, V2 vecmath.Vec3[T]
	N0, N1, N2 vecmath.Vec3[T]
	e1, e2     vecmath.Vec3[T]
}

// NewTriangle validates and constructs a Triangle. A zero-area triangle
// (‖e1×e2‖ ≤ ε) is a construction-time error.
func NewTriangle[T vecmath.Float](v0, v1, v2, n0, n1, n2 vecmath.Vec3[T]) (Triangle[T], error) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	if e1.Cross(e2).Length() <= vecmath.DegenerateEpsilon[T]() {
		return Triangle[T]{}, ErrDegenerateTriangle
	}
	return Triangle[T]{V0: v0, V1: v1, V2: v2, N0: n0, N1: n1, N2: n2, e1: e1, e2: e2}, nil
}

// Bounds implements Bounded.
func (t Triangle[T]) Bounds() AABB[T] {
	return BoundsFromPoints([]vecmath.Vec3[T]{t.V0, t.V1, t.V2})
}

// Centroid implements Bounded.
func (t Triangle[T]) Centroid() vecmath.Vec3[T] {
	return t.V0.Add(t.V1).Add(t.V2).Scale(1.0 / 3.0)
}

// GeometricNormal returns normalize(e1 × e2), independent of any
// per-vertex shading normals.
func (t Triangle[T]) GeometricNormal() vecmath.Vec3[T] {
	return t.e1.Cross(t.e2).Normalize()
}

// Intersect implements the Möller-Trumbore ray/triangle test, interpolating
// the shading normal from the barycentric coordinates and renormalizing
// it.
func (t Triangle[T]) Intersect(ray Ray[T], tMax T) (Hit[T], bool) {
	eps := vecmath.DegenerateEpsilon[T]()

	h := ray.Direction.Cross(t.e2)
	det := t.e1.Dot(h)
	if vecmath.Abs(det) < eps {
		return Hit[T]{}, false
	}
	invDet := 1 / det

	s := ray.Origin.Sub(t.V0)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return Hit[T]{}, false
	}

	q := s.Cross(t.e1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return Hit[T]{}, false
	}

	dist := invDet * t.e2.Dot(q)
	originEps := vecmath.Epsilon[T]()
	if dist <= originEps || dist > tMax {
		return Hit[T]{}, false
	}

	w := 1 - u - v
	shading := t.N0.Scale(w).Add(t.N1.Scale(u)).Add(t.N2.Scale(v)).Normalize()

	return Hit[T]{
		Distance:         dist,
		GeometricNormal:  t.GeometricNormal(),
		ShadingNormal:    shading,
		HasShadingNormal: true,
	}, true
}
