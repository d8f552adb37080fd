package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat4_IdentityTransformIsNoop(t *testing.T) {
	id := Identity4[float64]()
	p := Vec3[float64]{X: 1, Y: -2, Z: 3}

	assert.Equal(t, p, id.TransformPoint(p))
	assert.Equal(t, p, id.TransformDirection(p))
}

func TestMat4_InvertRoundTrips(t *testing.T) {
	m := ComposeTRS(
		Vec3[float64]{X: 10, Y: 20, Z: 30},
		Vec3[float64]{X: 0.5, Y: 0.5, Z: 0.5},
		Vec3[float64]{X: 2, Y: 2, Z: 2},
	)

	inv, ok := m.Invert()
	require.True(t, ok)

	points := []Vec3[float64]{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-5, 10, -20}, {100, 200, 300},
	}

	for _, p := range points {
		world := m.TransformPoint(p)
		back := inv.TransformPoint(world)
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
		assert.InDelta(t, p.Z, back.Z, 1e-9)
	}
}

func TestMat4_InvertSingularReportsFalse(t *testing.T) {
	// A matrix that collapses everything onto the XY plane is non-invertible.
	m := Mat4[float64]{M: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 1,
	}}
	_, ok := m.Invert()
	assert.False(t, ok)
}

func TestMat4_TransposeIsInvolution(t *testing.T) {
	m := ComposeTRS(
		Vec3[float32]{X: 1, Y: 2, Z: 3},
		Vec3[float32]{X: 0.1, Y: 0.2, Z: 0.3},
		Vec3[float32]{X: 1, Y: 1, Z: 1},
	)
	assert.Equal(t, m, m.Transpose().Transpose())
}

func TestVec3_NormalizeOrUpFallsBackOnZero(t *testing.T) {
	v := Vec3[float64]{}
	got := v.NormalizeOrUp()
	assert.Equal(t, Vec3[float64]{X: 0, Y: 1, Z: 0}, got)
}

func TestVec3_CrossProductOrthogonal(t *testing.T) {
	a := Vec3[float64]{X: 1, Y: 0, Z: 0}
	b := Vec3[float64]{X: 0, Y: 1, Z: 0}
	c := a.Cross(b)
	assert.InDelta(t, 0.0, c.Dot(a), 1e-12)
	assert.InDelta(t, 0.0, c.Dot(b), 1e-12)
	assert.Equal(t, Vec3[float64]{X: 0, Y: 0, Z: 1}, c)
}

func TestEpsilon_DiffersByPrecision(t *testing.T) {
	assert.Equal(t, float32(1e-4), Epsilon[float32]())
	assert.InDelta(t, 1e-8, Epsilon[float64](), 1e-18)
}
