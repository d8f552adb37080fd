package geodesic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirstar13/geodesic/vecmath"
)

func TestNewInstance_RejectsNonInvertibleTransform(t *testing.T) {
	mesh := singleTriangleMesh(t)
	singular := vecmath.ComposeTRS(
		vecmath.Vec3[float64]{},
		vecmath.Vec3[float64]{},
		vecmath.Vec3[float64]{X: 1, Y: 1, Z: 0}, // zero Z scale collapses the matrix
	)

	_, err := NewInstance(mesh, singular)
	assert.ErrorIs(t, err, ErrNonInvertibleTransform)
}

func TestInstance_IdentityTransformMatchesDirectMeshIntersection(t *testing.T) {
	mesh := singleTriangleMesh(t)
	inst, err := NewInstance(mesh, vecmath.Identity4[float64]())
	require.NoError(t, err)

	ray := NewRay(vecmath.Vec3[float64]{X: 0, Y: -0.3, Z: -5}, vecmath.Vec3[float64]{X: 0, Y: 0, Z: 1})

	directHit, directOK := mesh.Intersect(ray, vecmath.Inf[float64](1))
	instHit, instOK := inst.Intersect(ray, vecmath.Inf[float64](1))

	require.True(t, directOK)
	require.True(t, instOK)
	assert.InDelta(t, directHit.Distance, instHit.Distance, 1e-9)
	assert.InDelta(t, directHit.GeometricNormal.X, instHit.GeometricNormal.X, 1e-9)
	assert.InDelta(t, directHit.GeometricNormal.Y, instHit.GeometricNormal.Y, 1e-9)
	assert.InDelta(t, directHit.GeometricNormal.Z, instHit.GeometricNormal.Z, 1e-9)
}

// TestInstance_NonUniformScalePreservesWorldSpaceDistance exercises the
// resolved Open Question: transforming a ray into local space without
// renormalizing its direction makes the local intersection parameter equal
// the world-space parameter for any invertible affine transform, including
// non-uniform scale.
func TestInstance_NonUniformScalePreservesWorldSpaceDistance(t *testing.T) {
	n := vecmath.Vec3[float64]{X: 0, Y: 0, Z: 1}
	tri, err := NewTriangle(
		vecmath.Vec3[float64]{X: -1, Y: -1, Z: 1},
		vecmath.Vec3[float64]{X: 1, Y: -1, Z: 1},
		vecmath.Vec3[float64]{X: 0, Y: 1, Z: 1},
		n, n, n,
	)
	require.NoError(t, err)
	mesh, err := NewMesh([]Triangle[float64]{tri}, DefaultBvhConfig())
	require.NoError(t, err)

	// Scale Z by 2: the local plane z=1 becomes the world plane z=2.
	transform := vecmath.ComposeTRS(
		vecmath.Vec3[float64]{},
		vecmath.Vec3[float64]{},
		vecmath.Vec3[float64]{X: 1, Y: 1, Z: 2},
	)
	inst, err := NewInstance(mesh, transform)
	require.NoError(t, err)

	ray := NewRay(vecmath.Vec3[float64]{X: 0, Y: -0.3, Z: -5}, vecmath.Vec3[float64]{X: 0, Y: 0, Z: 1})
	hit, ok := inst.Intersect(ray, vecmath.Inf[float64](1))
	require.True(t, ok)
	// World plane is at z=2, ray starts at z=-5 traveling at unit speed: t=7.
	assert.InDelta(t, 7.0, hit.Distance, 1e-9)
}

func TestInstance_WorldAABBContainsTransformedMesh(t *testing.T) {
	mesh := singleTriangleMesh(t)
	transform := vecmath.ComposeTRS(
		vecmath.Vec3[float64]{X: 10, Y: 0, Z: 0},
		vecmath.Vec3[float64]{},
		vecmath.Vec3[float64]{X: 1, Y: 1, Z: 1},
	)
	inst, err := NewInstance(mesh, transform)
	require.NoError(t, err)

	assert.True(t, inst.WorldAABB.Min.X >= 8.9)
	assert.True(t, inst.WorldAABB.Max.X <= 11.1)
}
