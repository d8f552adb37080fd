// Package vecmath provides the generic linear algebra shared by every layer
// of geodesic: vectors, matrices, and the per-precision epsilon constants
// the geometry routines guard against.
package vecmath

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Float narrows constraints.Float to the two widths this package targets.
// constraints.Float itself also admits non-IEEE widths we never test against.
type Float interface {
	constraints.Float
	~float32 | ~float64
}

// Sqrt computes the square root of a generic Float, routing float32 through
// float64 since the standard library has no math.Sqrt32.
func Sqrt[T Float](v T) T {
	return T(math.Sqrt(float64(v)))
}

// Abs returns the absolute value of a generic Float.
func Abs[T Float](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

// Min returns the smaller of two generic Floats.
func Min[T Float](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two generic Floats.
func Max[T Float](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Clamp constrains v to [lo, hi].
func Clamp[T Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Inf returns positive or negative infinity for T.
func Inf[T Float](sign int) T {
	return T(math.Inf(sign))
}

// Epsilon returns the self-intersection guard ε_origin: 1e-4 for 32-bit
// precision, 1e-8 for 64-bit.
func Epsilon[T Float]() T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(1e-4)
	default:
		return T(1e-8)
	}
}

// NormalEpsilon returns the unit-length tolerance: 1e-5 for 32-bit
// precision, 1e-10 for 64-bit.
func NormalEpsilon[T Float]() T {
	var zero T
	switch any(zero).(type) {
	case float32:
		return T(1e-5)
	default:
		return T(1e-10)
	}
}

// DegenerateEpsilon is the tolerance used to reject zero-area triangles,
// zero-length normals, and near-parallel ray/plane or ray/triangle tests.
func DegenerateEpsilon[T Float]() T {
	return Epsilon[T]()
}
