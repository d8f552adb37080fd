package vecmath

// Vec3 is a generic 3-component vector.
type Vec3[T Float] struct {
	X, Y, Z T
}

// Add returns the componentwise sum.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the componentwise difference.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared avoids the square root when only comparison is needed.
func (v Vec3[T]) LengthSquared() T {
	return v.Dot(v)
}

// Length returns the Euclidean length.
func (v Vec3[T]) Length() T {
	return Sqrt(v.LengthSquared())
}

// Normalize returns v scaled to unit length. The zero vector normalizes to
// itself; callers needing a default-up fallback for degenerate input
// should call NormalizeOrUp instead.
func (v Vec3[T]) Normalize() Vec3[T] {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// NormalizeOrUp normalizes v, falling back to world-up (0,1,0) for
// near-zero-length input.
func (v Vec3[T]) NormalizeOrUp() Vec3[T] {
	if v.LengthSquared() < Epsilon[T]()*Epsilon[T]() {
		return Vec3[T]{0, 1, 0}
	}
	return v.Normalize()
}

// Neg returns the componentwise negation.
func (v Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{-v.X, -v.Y, -v.Z}
}

// MinComponents returns the componentwise minimum of a and b.
func MinComponents[T Float](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{Min(a.X, b.X), Min(a.Y, b.Y), Min(a.Z, b.Z)}
}

// MaxComponents returns the componentwise maximum of a and b.
func MaxComponents[T Float](a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{Max(a.X, b.X), Max(a.Y, b.Y), Max(a.Z, b.Z)}
}

// Component returns the value on the given axis (0=X, 1=Y, 2=Z).
func (v Vec3[T]) Component(axis int) T {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

