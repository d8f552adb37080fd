package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Mesh is a triangle mesh in its own local space, backed by an inner BVH
// over its triangles. Scene references a Mesh through one or more
// Instances, so a single Mesh's BVH is built once and shared by every
// Instance that reuses it.
type Mesh[T vecmath.Float] struct {
	triangles []Triangle[T]
	bvh       *BVH[T, Triangle[T]]
	bounds    AABB[T]
}

// NewMesh builds a Mesh's inner BVH over triangles. An empty triangle list
// is accepted and behaves as an always-miss mesh.
func NewMesh[T vecmath.Float](triangles []Triangle[T], cfg BvhConfig) (*Mesh[T], error) {
	bvh, err := BuildBVH[T, Triangle[T]](triangles, cfg)
	if err != nil {
		return nil, err
	}

	bounds := EmptyAABB[T]()
	for _, tri := range triangles {
		bounds = bounds.Union(tri.Bounds())
	}

	return &Mesh[T]{triangles: triangles, bvh: bvh, bounds: bounds}, nil
}

// Bounds returns the mesh's local-space bounding box.
func (m *Mesh[T]) Bounds() AABB[T] {
	return m.bounds
}

// Centroid returns the local-space centroid of the mesh's bounding box.
func (m *Mesh[T]) Centroid() vecmath.Vec3[T] {
	return m.bounds.Centroid()
}

// TriangleCount reports the number of triangles in the mesh.
func (m *Mesh[T]) TriangleCount() int {
	return len(m.triangles)
}

// NodeCount reports the node count of the mesh's inner BVH, exposed for
// construction-time logging.
func (m *Mesh[T]) NodeCount() int {
	return m.bvh.NodeCount()
}

// Intersect delegates to the mesh's inner BVH.
func (m *Mesh[T]) Intersect(ray Ray[T], tMax T) (Hit[T], bool) {
	_, hit, ok := m.bvh.Intersect(ray)
	if !ok || hit.Distance > tMax {
		return Hit[T]{}, false
	}
	return hit, true
}

// IntersectAny delegates to the mesh's inner BVH occlusion test.
func (m *Mesh[T]) IntersectAny(ray Ray[T], tMax T) bool {
	return m.bvh.IntersectAny(ray, tMax)
}
