package raycam

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mirstar13/geodesic/vecmath"
)

func TestRayForPixel_CenterPixelPointsForward(t *testing.T) {
	cam := New(vecmath.Identity4[float64](), 60, [2]int{100, 100})
	ray := cam.RayForPixel(50, 50, 0.5, 0.5)

	assert.InDelta(t, 0.0, ray.Origin.X, 1e-9)
	assert.InDelta(t, 0.0, ray.Origin.Y, 1e-9)
	assert.InDelta(t, 0.0, ray.Origin.Z, 1e-9)
	assert.Greater(t, ray.Direction.Z, 0.99)
}

func TestRayForPixel_CornersDivergeUnderPerspective(t *testing.T) {
	cam := New(vecmath.Identity4[float64](), 90, [2]int{100, 100})
	topLeft := cam.RayForPixel(0, 0, 0, 0)
	bottomRight := cam.RayForPixel(99, 99, 1, 1)

	assert.Less(t, topLeft.Direction.X, 0.0)
	assert.Greater(t, bottomRight.Direction.X, 0.0)
}

func TestRayForPixel_OrthographicRaysStayParallel(t *testing.T) {
	cam := New(vecmath.Identity4[float64](), 60, [2]int{100, 100}).WithOrthographic(5)
	a := cam.RayForPixel(0, 50, 0.5, 0.5)
	b := cam.RayForPixel(99, 50, 0.5, 0.5)

	assert.InDelta(t, a.Direction.X, b.Direction.X, 1e-9)
	assert.InDelta(t, a.Direction.Z, b.Direction.Z, 1e-9)
	assert.NotEqual(t, a.Origin.X, b.Origin.X)
}

func TestLookAt_FacesTargetAlongLocalZ(t *testing.T) {
	m := LookAt(vecmath.Vec3[float64]{X: 0, Y: 0, Z: -5}, vecmath.Vec3[float64]{X: 0, Y: 0, Z: 0})
	forward := m.TransformDirection(vecmath.Vec3[float64]{X: 0, Y: 0, Z: 1})
	assert.InDelta(t, 0.0, forward.X, 1e-9)
	assert.InDelta(t, 0.0, forward.Y, 1e-9)
	assert.Greater(t, forward.Z, 0.0)
}
