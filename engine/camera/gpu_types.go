package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUCameraUniformSource is the WGSL definition of the CameraUniform struct that
// GPUCameraUniform serializes into.
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the serialized size of GPUCameraUniform in bytes.
const GPUCameraUniformSize = 80

// GPUCameraUniform is the per-viewpoint uniform block uploaded each frame.
// Layout: mat4x4<f32> view_proj at 0, vec3<f32> camera_position at 64, 4 bytes padding.
type GPUCameraUniform struct {
	ViewProj       [16]float32
	CameraPosition [3]float32
}

// Marshal serializes the uniform into a new little-endian buffer.
//
// Returns:
//   - []byte: GPUCameraUniformSize bytes
func (g *GPUCameraUniform) Marshal() []byte {
	return g.AppendTo(make([]byte, 0, GPUCameraUniformSize))
}

// AppendTo appends the serialized uniform to dst, so a renderer can reuse one staging
// slice across frames.
//
// Parameters:
//   - dst: the buffer to append to
//
// Returns:
//   - []byte: dst extended by GPUCameraUniformSize bytes
func (g *GPUCameraUniform) AppendTo(dst []byte) []byte {
	for _, v := range g.ViewProj {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	for _, v := range g.CameraPosition {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return binary.LittleEndian.AppendUint32(dst, 0)
}
