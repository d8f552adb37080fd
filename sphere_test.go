package geodesic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirstar13/geodesic/vecmath"
)

func TestNewSphere_RejectsNonPositiveRadius(t *testing.T) {
	_, err := NewSphere(vecmath.Vec3[float64]{}, 0.0)
	assert.ErrorIs(t, err, ErrNonPositiveRadius)

	_, err = NewSphere(vecmath.Vec3[float64]{}, -1.0)
	assert.ErrorIs(t, err, ErrNonPositiveRadius)
}

func TestSphere_Intersect_HeadOnHitsNearSurface(t *testing.T) {
	sphere, err := NewSphere(vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, 1.0)
	require.NoError(t, err)

	ray := NewRay(vecmath.Vec3[float64]{X: -5, Y: 0, Z: 0}, vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0})
	hit, ok := sphere.Intersect(ray, vecmath.Inf[float64](1))
	require.True(t, ok)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
	assert.InDelta(t, -1.0, hit.GeometricNormal.X, 1e-9)
}

func TestSphere_Intersect_MissesDistantRay(t *testing.T) {
	sphere, err := NewSphere(vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, 1.0)
	require.NoError(t, err)

	// Ray passes well outside the sphere.
	ray := NewRay(vecmath.Vec3[float64]{X: -5, Y: 5, Z: 0}, vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0})
	_, ok := sphere.Intersect(ray, vecmath.Inf[float64](1))
	assert.False(t, ok)
}

func TestSphere_Intersect_OriginInsideReportsExitPoint(t *testing.T) {
	sphere, err := NewSphere(vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, 2.0)
	require.NoError(t, err)

	ray := NewRay(vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0})
	hit, ok := sphere.Intersect(ray, vecmath.Inf[float64](1))
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.Distance, 1e-9)
}

func TestSphere_Intersect_BehindRayOriginMisses(t *testing.T) {
	sphere, err := NewSphere(vecmath.Vec3[float64]{X: -5, Y: 0, Z: 0}, 1.0)
	require.NoError(t, err)

	ray := NewRay(vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0})
	_, ok := sphere.Intersect(ray, vecmath.Inf[float64](1))
	assert.False(t, ok)
}

func TestSphere_Intersect_RespectsTMax(t *testing.T) {
	sphere, err := NewSphere(vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0}, 1.0)
	require.NoError(t, err)

	ray := NewRay(vecmath.Vec3[float64]{X: -5, Y: 0, Z: 0}, vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0})
	_, ok := sphere.Intersect(ray, 3.0)
	assert.False(t, ok)
}

func TestSphere_BoundsMatchesCenterAndRadius(t *testing.T) {
	sphere, err := NewSphere(vecmath.Vec3[float64]{X: 1, Y: 2, Z: 3}, 2.0)
	require.NoError(t, err)

	bounds := sphere.Bounds()
	assert.Equal(t, vecmath.Vec3[float64]{X: -1, Y: 0, Z: 1}, bounds.Min)
	assert.Equal(t, vecmath.Vec3[float64]{X: 3, Y: 4, Z: 5}, bounds.Max)
}
