package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// degenerateLength is the squared length below which a vector is treated as zero.
const degenerateLength = 1e-12

// PerspectiveZO creates a right-handed perspective projection matrix that maps view depth
// into the WebGPU clip space range [0, 1] (mgl32.Perspective targets OpenGL's [-1, 1]).
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix (column-major)
func PerspectiveZO(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// SafeNormalize returns the unit vector in the direction of v.
// When v is too short to normalize, v is returned unchanged together with false.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the normalized vector, or v if degenerate
//   - bool: false if v was degenerate
func SafeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	lenSq := v.Dot(v)
	if lenSq < degenerateLength || math.IsNaN(float64(lenSq)) || math.IsInf(float64(lenSq), 0) {
		return v, false
	}
	return v.Mul(1.0 / float32(math.Sqrt(float64(lenSq)))), true
}

// RotateAbout rotates v around axis by the given angle in degrees, following the
// right-hand rule. The axis does not need to be normalized; a degenerate axis leaves v unchanged.
//
// Parameters:
//   - v: the vector to rotate
//   - axis: the rotation axis
//   - degrees: rotation angle in degrees
//
// Returns:
//   - mgl32.Vec3: the rotated vector
func RotateAbout(v, axis mgl32.Vec3, degrees float32) mgl32.Vec3 {
	if degrees == 0 {
		return v
	}
	n, ok := SafeNormalize(axis)
	if !ok {
		return v
	}
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), n).Rotate(v)
}

// ElevationDegrees returns the signed angle in degrees between dir and the plane
// orthogonal to up. Both vectors are expected to be unit length.
//
// Parameters:
//   - dir: the direction to measure
//   - up: the plane normal
//
// Returns:
//   - float32: angle in degrees within [-90, 90]
func ElevationDegrees(dir, up mgl32.Vec3) float32 {
	d := mgl32.Clamp(dir.Dot(up), -1, 1)
	return mgl32.RadToDeg(float32(math.Asin(float64(d))))
}
