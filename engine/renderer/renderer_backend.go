package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

func (m PresentMode) String() string {
	switch m {
	case PresentModeVSync:
		return "vsync"
	case PresentModeUncapped:
		return "uncapped"
	}
	return "unknown"
}

// wgpuPresentMode maps a PresentMode onto the surface present mode. Anything unknown is uncapped.
func wgpuPresentMode(mode PresentMode) wgpu.PresentMode {
	if mode == PresentModeVSync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}

// ClearColor is the linear RGBA color the frame is cleared to.
type ClearColor struct {
	R, G, B, A float64
}

// DefaultClearColor is the dark grey every frame starts from.
var DefaultClearColor = ClearColor{R: 0.1, G: 0.1, B: 0.1, A: 1.0}

// ClearColorFromSlice builds a ClearColor from 3 or 4 components, falling back to
// DefaultClearColor for any other length. Components are clamped to [0, 1].
//
// Parameters:
//   - rgba: red, green, blue and optional alpha
//
// Returns:
//   - ClearColor: the resulting color
func ClearColorFromSlice(rgba []float64) ClearColor {
	if len(rgba) != 3 && len(rgba) != 4 {
		return DefaultClearColor
	}
	c := ClearColor{A: 1}
	dst := []*float64{&c.R, &c.G, &c.B, &c.A}
	for i, v := range rgba {
		*dst[i] = min(max(v, 0), 1)
	}
	return c
}

func (c ClearColor) wgpu() wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// uniformBufferLabel names the GPU buffer that backs a viewpoint's uniform block.
func uniformBufferLabel(viewpoint string) string {
	return viewpoint + " Camera Uniform"
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
