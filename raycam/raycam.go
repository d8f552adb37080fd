// Package raycam generates geodesic.Ray values for camera pixels, inverting
// a standard point-to-screen projection into pixel-to-ray generation.
package raycam

import (
	"math"

	"github.com/mirstar13/geodesic"
	"github.com/mirstar13/geodesic/vecmath"
)

// Projection selects how Camera maps a pixel to a ray direction.
type Projection int

const (
	// Perspective rays diverge from a single origin.
	Perspective Projection = iota
	// Orthographic rays are parallel.
	Orthographic
)

// Camera produces one world-space Ray per pixel sample. Resolution follows
// a [height, width] convention.
type Camera struct {
	CameraToWorld vecmath.Mat4[float64]
	FOVDegrees    float64
	Resolution    [2]int
	Projection    Projection
	OrthoHalfSize float64
}

// New returns a perspective Camera looking down local +Z through
// cameraToWorld.
func New(cameraToWorld vecmath.Mat4[float64], fovDegrees float64, resolution [2]int) *Camera {
	return &Camera{
		CameraToWorld: cameraToWorld,
		FOVDegrees:    fovDegrees,
		Resolution:    resolution,
		Projection:    Perspective,
		OrthoHalfSize: 1,
	}
}

// WithOrthographic switches the camera to parallel-ray projection, with
// halfSize the half-height of the view volume in world units; the
// half-width is halfSize times the width/height aspect ratio.
func (c *Camera) WithOrthographic(halfSize float64) *Camera {
	c.Projection = Orthographic
	c.OrthoHalfSize = halfSize
	return c
}

// LookAt builds a camera-to-world matrix for an eye positioned at eye and
// aimed at target, deriving yaw/pitch via atan2 instead of a basis-vector
// construction.
func LookAt(eye, target vecmath.Vec3[float64]) vecmath.Mat4[float64] {
	d := target.Sub(eye)
	yaw := math.Atan2(d.X, d.Z)
	distXZ := math.Sqrt(d.X*d.X + d.Z*d.Z)
	pitch := -math.Atan2(d.Y, distXZ)

	// Pitch tilts local +Z first, then yaw turns it toward the target.
	m := vecmath.RotationYawPitchRoll(vecmath.Vec3[float64]{Y: yaw}).
		Multiply(vecmath.RotationYawPitchRoll(vecmath.Vec3[float64]{X: pitch}))
	m.M[3], m.M[7], m.M[11] = eye.X, eye.Y, eye.Z
	return m
}

// RayForPixel returns the world-space ray through pixel (x, y), sampled at
// subpixel offset (sx, sy) each in [0, 1). x indexes columns (0..width),
// y indexes rows (0..height).
func (c *Camera) RayForPixel(x, y int, sx, sy float64) geodesic.Ray[float64] {
	height, width := c.Resolution[0], c.Resolution[1]
	aspect := float64(width) / float64(height)

	ndcX := (float64(x)+sx)/float64(width)*2 - 1
	ndcY := 1 - (float64(y)+sy)/float64(height)*2

	if c.Projection == Orthographic {
		localOrigin := vecmath.Vec3[float64]{
			X: ndcX * aspect * c.OrthoHalfSize,
			Y: ndcY * c.OrthoHalfSize,
			Z: 0,
		}
		localDir := vecmath.Vec3[float64]{X: 0, Y: 0, Z: 1}
		origin := c.CameraToWorld.TransformPoint(localOrigin)
		dir := c.CameraToWorld.TransformDirection(localDir)
		return geodesic.NewRay(origin, dir)
	}

	tanHalfFOV := math.Tan(c.FOVDegrees * math.Pi / 360)
	localDir := vecmath.Vec3[float64]{
		X: ndcX * aspect * tanHalfFOV,
		Y: ndcY * tanHalfFOV,
		Z: 1,
	}
	origin := c.CameraToWorld.TransformPoint(vecmath.Vec3[float64]{})
	dir := c.CameraToWorld.TransformDirection(localDir)
	return geodesic.NewRay(origin, dir)
}
