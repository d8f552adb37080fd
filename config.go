package geodesic

// BvhConfig tunes the SAH build. It is not generic over the scalar
// precision: these are integer counts and unitless cost weights, not
// geometry, and decoding it straight off the `bvh_config` key of
// assets.json is simplest when it stays a plain float64/int struct.
type BvhConfig struct {
	TraverseCost     float64
	IntersectCost    float64
	SAHBuckets       int
	MaxShapesPerNode int
	MaxDepth         int
}

// DefaultBvhConfig returns reasonable defaults: 12 SAH buckets, leaves
// capped at 4 primitives, depth capped at 64.
func DefaultBvhConfig() BvhConfig {
	return BvhConfig{
		TraverseCost:     1.0,
		IntersectCost:    1.0,
		SAHBuckets:       12,
		MaxShapesPerNode: 4,
		MaxDepth:         64,
	}
}

// maxStackCapacity bounds the fixed-size, heap-free traversal stack used
// by BVH.Intersect and BVH.IntersectAny. Since MaxDepth is a runtime
// value, traversal uses a [maxStackCapacity]int32 array on the call stack
// and Validate rejects configurations that could overflow it.
const maxStackCapacity = 128

// Validate rejects out-of-range configuration.
func (c BvhConfig) Validate() error {
	if c.SAHBuckets < 2 {
		return ErrInvalidBvhConfig
	}
	if c.MaxShapesPerNode < 1 {
		return ErrInvalidBvhConfig
	}
	if c.MaxDepth < 1 || c.MaxDepth > maxStackCapacity-1 {
		return ErrInvalidBvhConfig
	}
	return nil
}
