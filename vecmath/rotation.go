package vecmath

import "math"

func sin[T Float](v T) T { return T(math.Sin(float64(v))) }
func cos[T Float](v T) T { return T(math.Cos(float64(v))) }

// RotationYawPitchRoll builds a pure rotation matrix from Euler angles in
// radians (X=pitch, Y=yaw, Z=roll), applied yaw then pitch then roll.
func RotationYawPitchRoll[T Float](angles Vec3[T]) Mat4[T] {
	cy, sy := cos(angles.Y), sin(angles.Y)
	cp, sp := cos(angles.X), sin(angles.X)
	cr, sr := cos(angles.Z), sin(angles.Z)

	yaw := Mat4[T]{M: [16]T{
		cy, 0, sy, 0,
		0, 1, 0, 0,
		-sy, 0, cy, 0,
		0, 0, 0, 1,
	}}
	pitch := Mat4[T]{M: [16]T{
		1, 0, 0, 0,
		0, cp, -sp, 0,
		0, sp, cp, 0,
		0, 0, 0, 1,
	}}
	roll := Mat4[T]{M: [16]T{
		cr, -sr, 0, 0,
		sr, cr, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}

	return roll.Multiply(pitch).Multiply(yaw)
}
