package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detachedSource struct{}

func (detachedSource) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (detachedSource) Width() int                                 { return 640 }
func (detachedSource) Height() int                                { return 480 }

func TestNewRenderer_RequiresSurface(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, nil)
	require.Error(t, err)

	_, err = NewRenderer(BackendTypeWGPU, detachedSource{}, WithPresentMode(PresentModeVSync))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window is not initialized")
}

func TestPresentMode(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, wgpuPresentMode(PresentModeVSync))
	assert.Equal(t, wgpu.PresentModeImmediate, wgpuPresentMode(PresentModeUncapped))
	assert.Equal(t, wgpu.PresentModeImmediate, wgpuPresentMode(PresentMode(42)))

	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
	assert.Equal(t, "unknown", PresentMode(42).String())
}

func TestClearColorFromSlice(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want ClearColor
	}{
		{"nil", nil, DefaultClearColor},
		{"two components", []float64{1, 1}, DefaultClearColor},
		{"rgb", []float64{0.2, 0.4, 0.6}, ClearColor{R: 0.2, G: 0.4, B: 0.6, A: 1}},
		{"rgba", []float64{0, 0, 0, 0.5}, ClearColor{A: 0.5}},
		{"clamped", []float64{-1, 2, 0.5, 7}, ClearColor{R: 0, G: 1, B: 0.5, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClearColorFromSlice(tt.in))
		})
	}
}

func TestClearColor_ToWGPU(t *testing.T) {
	c := ClearColor{R: 0.25, G: 0.5, B: 0.75, A: 1}.wgpu()
	assert.Equal(t, wgpu.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, c)
}

func TestUniformBufferLabel(t *testing.T) {
	assert.Equal(t, "camera_0 Camera Uniform", uniformBufferLabel("camera_0"))
	assert.Equal(t, "camera_0_mirror Camera Uniform", uniformBufferLabel("camera_0_mirror"))
}
