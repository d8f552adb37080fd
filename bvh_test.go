package geodesic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirstar13/geodesic/vecmath"
)

func TestBuildBVH_RejectsInvalidConfig(t *testing.T) {
	_, err := BuildBVH[float64, Sphere[float64]](nil, BvhConfig{SAHBuckets: 1, MaxShapesPerNode: 1, MaxDepth: 1})
	assert.ErrorIs(t, err, ErrInvalidBvhConfig)
}

func TestBVH_EmptyAlwaysMisses(t *testing.T) {
	bvh, err := BuildBVH[float64, Sphere[float64]](nil, DefaultBvhConfig())
	require.NoError(t, err)

	ray := NewRay(vecmath.Vec3[float64]{X: 0, Y: 0, Z: -5}, vecmath.Vec3[float64]{X: 0, Y: 0, Z: 1})
	_, _, ok := bvh.Intersect(ray)
	assert.False(t, ok)
	assert.False(t, bvh.IntersectAny(ray, vecmath.Inf[float64](1)))
}

func TestBVH_SingleSphereRootIsNodeZero(t *testing.T) {
	sphere, err := NewSphere(vecmath.Vec3[float64]{}, 1.0)
	require.NoError(t, err)

	bvh, err := BuildBVH[float64, Sphere[float64]]([]Sphere[float64]{sphere}, DefaultBvhConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, bvh.NodeCount())

	ray := NewRay(vecmath.Vec3[float64]{X: -5, Y: 0, Z: 0}, vecmath.Vec3[float64]{X: 1, Y: 0, Z: 0})
	idx, hit, ok := bvh.Intersect(ray)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 4.0, hit.Distance, 1e-9)
}

func randomSpheres(n int, seed int64) []Sphere[float64] {
	rng := rand.New(rand.NewSource(seed))
	spheres := make([]Sphere[float64], 0, n)
	for len(spheres) < n {
		center := vecmath.Vec3[float64]{
			X: rng.Float64()*200 - 100,
			Y: rng.Float64()*200 - 100,
			Z: rng.Float64()*200 - 100,
		}
		radius := rng.Float64()*4 + 0.5
		sphere, err := NewSphere(center, radius)
		if err != nil {
			continue
		}
		spheres = append(spheres, sphere)
	}
	return spheres
}

func randomRay(rng *rand.Rand) Ray[float64] {
	origin := vecmath.Vec3[float64]{
		X: rng.Float64()*400 - 200,
		Y: rng.Float64()*400 - 200,
		Z: rng.Float64()*400 - 200,
	}
	dir := vecmath.Vec3[float64]{
		X: rng.Float64()*2 - 1,
		Y: rng.Float64()*2 - 1,
		Z: rng.Float64()*2 - 1,
	}.NormalizeOrUp()
	return NewRay(origin, dir)
}

func bruteForceClosest(spheres []Sphere[float64], ray Ray[float64]) (int, Hit[float64], bool) {
	best := -1
	bestDist := vecmath.Inf[float64](1)
	var bestHit Hit[float64]
	for i, s := range spheres {
		if hit, ok := s.Intersect(ray, vecmath.Inf[float64](1)); ok && hit.Distance < bestDist {
			best, bestDist, bestHit = i, hit.Distance, hit
		}
	}
	return best, bestHit, best >= 0
}

// TestBVH_Intersect_MatchesBruteForceScan cross-checks the BVH's
// closest-hit traversal against a linear scan over the same primitives,
// the property-based check every accelerated spatial structure must pass.
func TestBVH_Intersect_MatchesBruteForceScan(t *testing.T) {
	spheres := randomSpheres(100, 42)
	bvh, err := BuildBVH[float64, Sphere[float64]](spheres, DefaultBvhConfig())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		ray := randomRay(rng)

		wantIdx, wantHit, wantOK := bruteForceClosest(spheres, ray)
		gotIdx, gotHit, gotOK := bvh.Intersect(ray)

		require.Equal(t, wantOK, gotOK, "ray %d", i)
		if wantOK {
			assert.Equal(t, wantIdx, gotIdx, "ray %d", i)
			assert.InDelta(t, wantHit.Distance, gotHit.Distance, 1e-6, "ray %d", i)
		}
	}
}

func TestBVH_IntersectAny_MatchesBruteForceScan(t *testing.T) {
	spheres := randomSpheres(100, 99)
	bvh, err := BuildBVH[float64, Sphere[float64]](spheres, DefaultBvhConfig())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(13))
	tMax := 80.0
	for i := 0; i < 1000; i++ {
		ray := randomRay(rng)

		wantHit := false
		for _, s := range spheres {
			if _, ok := s.Intersect(ray, tMax); ok {
				wantHit = true
				break
			}
		}

		gotHit := bvh.IntersectAny(ray, tMax)
		assert.Equal(t, wantHit, gotHit, "ray %d", i)
	}
}

func TestBVH_NodeCountIsDeterministicForFixedInput(t *testing.T) {
	spheres := randomSpheres(50, 5)
	bvh1, err := BuildBVH[float64, Sphere[float64]](spheres, DefaultBvhConfig())
	require.NoError(t, err)
	bvh2, err := BuildBVH[float64, Sphere[float64]](spheres, DefaultBvhConfig())
	require.NoError(t, err)

	assert.Equal(t, bvh1.NodeCount(), bvh2.NodeCount())
	assert.Equal(t, bvh1.MaxDepthReached(), bvh2.MaxDepthReached())
}
