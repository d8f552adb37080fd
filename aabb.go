package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// AABB is an axis-aligned bounding box. An empty AABB uses the +∞/−∞
// sentinel as the identity element for Union.
type AABB[T vecmath.Float] struct {
	Min, Max vecmath.Vec3[T]
}

// EmptyAABB returns the identity AABB: Min = +∞, Max = −∞.
func EmptyAABB[T vecmath.Float]() AABB[T] {
	pos := vecmath.Inf[T](1)
	neg := vecmath.Inf[T](-1)
	return AABB[T]{
		Min: vecmath.Vec3[T]{X: pos, Y: pos, Z: pos},
		Max: vecmath.Vec3[T]{X: neg, Y: neg, Z: neg},
	}
}

// BoundsFromPoints returns the smallest AABB containing every point.
// An empty slice returns EmptyAABB.
func BoundsFromPoints[T vecmath.Float](points []vecmath.Vec3[T]) AABB[T] {
	box := EmptyAABB[T]()
	for _, p := range points {
		box = box.UnionPoint(p)
	}
	return box
}

// Union returns the smallest AABB containing both a and b.
func (a AABB[T]) Union(b AABB[T]) AABB[T] {
	return AABB[T]{
		Min: vecmath.MinComponents(a.Min, b.Min),
		Max: vecmath.MaxComponents(a.Max, b.Max),
	}
}

// UnionPoint returns the smallest AABB containing a and p.
func (a AABB[T]) UnionPoint(p vecmath.Vec3[T]) AABB[T] {
	return AABB[T]{
		Min: vecmath.MinComponents(a.Min, p),
		Max: vecmath.MaxComponents(a.Max, p),
	}
}

// Size returns the per-axis extent (Max - Min).
func (a AABB[T]) Size() vecmath.Vec3[T] {
	return a.Max.Sub(a.Min)
}

// Centroid returns the box's center, (Min+Max)/2.
func (a AABB[T]) Centroid() vecmath.Vec3[T] {
	return a.Min.Add(a.Max).Scale(0.5)
}

// SurfaceArea returns the total surface area of the box; zero for an
// empty box.
func (a AABB[T]) SurfaceArea() T {
	d := a.Size()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// MaxExtentAxis returns the axis (0=X, 1=Y, 2=Z) along which the box is
// widest.
func (a AABB[T]) MaxExtentAxis() int {
	d := a.Size()
	axis := 0
	best := d.X
	if d.Y > best {
		axis, best = 1, d.Y
	}
	if d.Z > best {
		axis = 2
	}
	return axis
}

// Corners returns the 8 corners of the box, used to transform an AABB by
// an arbitrary matrix.
func (a AABB[T]) Corners() [8]vecmath.Vec3[T] {
	return [8]vecmath.Vec3[T]{
		{X: a.Min.X, Y: a.Min.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Min.Y, Z: a.Min.Z},
		{X: a.Min.X, Y: a.Max.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Max.Y, Z: a.Min.Z},
		{X: a.Min.X, Y: a.Min.Y, Z: a.Max.Z},
		{X: a.Max.X, Y: a.Min.Y, Z: a.Max.Z},
		{X: a.Min.X, Y: a.Max.Y, Z: a.Max.Z},
		{X: a.Max.X, Y: a.Max.Y, Z: a.Max.Z},
	}
}

// IntersectRay performs the slab test using the ray's precomputed inverse
// direction and sign, returning the entry/exit parameters when the ray
// hits the box within [0, tMax].
func (a AABB[T]) IntersectRay(ray Ray[T], tMax T) (tNear, tFar T, ok bool) {
	bounds := [2]vecmath.Vec3[T]{a.Min, a.Max}

	lo := func(sign bool) int {
		if sign {
			return 1
		}
		return 0
	}
	hi := func(sign bool) int {
		if sign {
			return 0
		}
		return 1
	}

	tMin := (bounds[lo(ray.Sign[0])].X - ray.Origin.X) * ray.InvDirection.X
	tMaxX := (bounds[hi(ray.Sign[0])].X - ray.Origin.X) * ray.InvDirection.X

	tyMin := (bounds[lo(ray.Sign[1])].Y - ray.Origin.Y) * ray.InvDirection.Y
	tyMax := (bounds[hi(ray.Sign[1])].Y - ray.Origin.Y) * ray.InvDirection.Y

	if tMin > tyMax || tyMin > tMaxX {
		return 0, 0, false
	}
	tMin = vecmath.Max(tMin, tyMin)
	tMaxX = vecmath.Min(tMaxX, tyMax)

	tzMin := (bounds[lo(ray.Sign[2])].Z - ray.Origin.Z) * ray.InvDirection.Z
	tzMax := (bounds[hi(ray.Sign[2])].Z - ray.Origin.Z) * ray.InvDirection.Z

	if tMin > tzMax || tzMin > tMaxX {
		return 0, 0, false
	}
	tMin = vecmath.Max(tMin, tzMin)
	tMaxX = vecmath.Min(tMaxX, tzMax)

	if tMin > tMaxX || tMaxX < 0 || tMin > tMax {
		return 0, 0, false
	}
	return tMin, tMaxX, true
}
