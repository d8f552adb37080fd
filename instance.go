package geodesic

import "github.com/mirstar13/geodesic/vecmath"

// Instance places a shared Mesh into world space under an arbitrary
// invertible affine transform.
//
// The ray is carried into the mesh's local space with its direction
// transformed by InvTransform but NOT renormalized. Because the transform
// is linear, world point (O + t·D) maps to local point (InvTransform·O +
// t·InvTransform·D) for every t — so the local intersection parameter is
// identical to the world-space parameter for any invertible affine
// transform, uniform or not. This resolves non-uniform scale without any
// post-hoc rescaling of the reported distance.
type Instance[T vecmath.Float] struct {
	Mesh         *Mesh[T]
	Transform    vecmath.Mat4[T]
	InvTransform vecmath.Mat4[T]
	InvTranspose vecmath.Mat4[T]
	WorldAABB    AABB[T]
}

// NewInstance validates transform and precomputes the data Intersect needs
// on the hot path. A non-invertible transform is a construction-time
// error.
func NewInstance[T vecmath.Float](mesh *Mesh[T], transform vecmath.Mat4[T]) (*Instance[T], error) {
	inv, ok := transform.Invert()
	if !ok {
		return nil, ErrNonInvertibleTransform
	}
	invTranspose := inv.Transpose()

	worldAABB := EmptyAABB[T]()
	for _, corner := range mesh.Bounds().Corners() {
		worldAABB = worldAABB.UnionPoint(transform.TransformPoint(corner))
	}

	return &Instance[T]{
		Mesh:         mesh,
		Transform:    transform,
		InvTransform: inv,
		InvTranspose: invTranspose,
		WorldAABB:    worldAABB,
	}, nil
}

// Bounds implements Bounded, returning the precomputed world-space box.
func (inst *Instance[T]) Bounds() AABB[T] {
	return inst.WorldAABB
}

// Centroid implements Bounded.
func (inst *Instance[T]) Centroid() vecmath.Vec3[T] {
	return inst.WorldAABB.Centroid()
}

// Intersect transforms ray into the mesh's local space, queries the mesh's
// inner BVH, and transforms the resulting normal back to world space with
// InvTranspose, renormalizing since scale can change its length.
func (inst *Instance[T]) Intersect(ray Ray[T], tMax T) (Hit[T], bool) {
	localOrigin := inst.InvTransform.TransformPoint(ray.Origin)
	localDir := inst.InvTransform.TransformDirection(ray.Direction)
	localRay := newRayUnnormalized(localOrigin, localDir)

	hit, ok := inst.Mesh.Intersect(localRay, tMax)
	if !ok {
		return Hit[T]{}, false
	}

	hit.GeometricNormal = inst.InvTranspose.TransformDirection(hit.GeometricNormal).NormalizeOrUp()
	if hit.HasShadingNormal {
		hit.ShadingNormal = inst.InvTranspose.TransformDirection(hit.ShadingNormal).NormalizeOrUp()
	}
	return hit, true
}

// IntersectAny transforms ray into local space and defers to the mesh's
// occlusion test; no normal transform is needed since occlusion queries
// discard the hit record.
func (inst *Instance[T]) IntersectAny(ray Ray[T], tMax T) bool {
	localOrigin := inst.InvTransform.TransformPoint(ray.Origin)
	localDir := inst.InvTransform.TransformDirection(ray.Direction)
	localRay := newRayUnnormalized(localOrigin, localDir)
	return inst.Mesh.IntersectAny(localRay, tMax)
}
