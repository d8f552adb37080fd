package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Bounded is satisfied by anything that can report an axis-aligned box and
// a centroid, the minimum the BVH builder needs to bin and sort.
type Bounded[T vecmath.Float] interface {
	Bounds() AABB[T]
	Centroid() vecmath.Vec3[T]
}

// Traceable is satisfied by anything that answers a ray query. tMax bounds
// the search: +∞ for closest-hit, an explicit distance for shadow tests.
type Traceable[T vecmath.Float] interface {
	Intersect(ray Ray[T], tMax T) (Hit[T], bool)
}

// Primitive is the combined contract the BVH dispatches against: every
// leaf entry must be both Bounded (to build the tree) and Traceable (to
// query it).
type Primitive[T vecmath.Float] interface {
	Bounded[T]
	Traceable[T]
}
