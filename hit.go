package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Hit is the geometric result of a ray/primitive intersection at the
// smallest valid t. Rendering-specific fields like the hit node or the
// world-space point are deliberately absent; shading and scene-graph
// bookkeeping are outside this library's scope.
type Hit[T vecmath.Float] struct {
	Distance         T
	GeometricNormal  vecmath.Vec3[T]
	ShadingNormal    vecmath.Vec3[T]
	HasShadingNormal bool
}

// Normal returns the shading normal when present, falling back to the
// geometric normal otherwise.
func (h Hit[T]) Normal() vecmath.Vec3[T] {
	if h.HasShadingNormal {
		return h.ShadingNormal
	}
	return h.GeometricNormal
}
