package geodesic

import "errors"

// Construction-time error taxonomy. Queries never fail — numeric edge
// cases inside a query are handled by returning no hit, never by
// returning an error.
var (
	// ErrDegenerateTriangle is returned when a triangle's edges are
	// parallel (zero cross-product area).
	ErrDegenerateTriangle = errors.New("geodesic: degenerate triangle")

	// ErrNonPositiveRadius is returned when a sphere's radius is <= 0.
	ErrNonPositiveRadius = errors.New("geodesic: sphere radius must be positive")

	// ErrZeroLengthNormal is returned when a plane's normal has zero length.
	ErrZeroLengthNormal = errors.New("geodesic: plane normal must be non-zero")

	// ErrNonInvertibleTransform is returned when an Instance's transform
	// has no inverse.
	ErrNonInvertibleTransform = errors.New("geodesic: instance transform is not invertible")

	// ErrInvalidBvhConfig is returned by BvhConfig.Validate for
	// out-of-range tuning parameters.
	ErrInvalidBvhConfig = errors.New("geodesic: invalid BVH configuration")
)
