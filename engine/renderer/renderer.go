package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
)

// SurfaceSource is anything that can hand out a WebGPU surface descriptor and its size,
// normally a window.Window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu  *sync.Mutex
	log zerolog.Logger

	backendType RendererBackendType
	backend     RendererBackend

	// staging is reused for every uniform upload.
	staging []byte

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	clearColor           ClearColor
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU surface, one uniform buffer per viewpoint and the frame
// lifecycle. Each frame uploads the viewpoints that were updated, clears the surface
// and presents it.
type Renderer interface {
	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be reconfigured
	Resize(width, height int) error

	// SetPresentMode sets the surface present mode. Applied on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the color frames are cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c ClearColor)

	// UploadCamera serializes the camera's uniform block and writes it into the buffer keyed
	// by the camera's label. The camera must have been updated for the frame beforehand.
	//
	// Parameters:
	//   - cam: the viewpoint to upload
	//
	// Returns:
	//   - error: an error if the buffer could not be created or written
	UploadCamera(cam camera.Camera) error

	// UniformBuffer returns the GPU buffer holding the uniform for a viewpoint label.
	//
	// Parameters:
	//   - label: the camera label
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if that viewpoint was never uploaded
	UniformBuffer(label string) *wgpu.Buffer

	// BeginFrame acquires the next surface texture and opens the clear pass.
	//
	// Returns:
	//   - error: an error if the frame could not be started
	BeginFrame() error

	// EndFrame closes the clear pass and submits the frame's commands.
	//
	// Returns:
	//   - error: an error if submission failed
	EndFrame() error

	// Present presents the current frame to the window.
	Present()

	// RenderFrame uploads each viewpoint and runs BeginFrame, EndFrame and Present.
	//
	// Parameters:
	//   - cams: the viewpoints to upload, primary first
	//
	// Returns:
	//   - error: the first error encountered
	RenderFrame(cams ...camera.Camera) error

	// Backend returns the backend implementation.
	//
	// Returns:
	//   - RendererBackend: the backend
	Backend() RendererBackend

	// Release frees all GPU resources. The renderer is unusable afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates the GPU device for the given surface and configures it to the
// source's current size.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - source: the window providing the surface
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if the GPU device or surface could not be created
func NewRenderer(backendType RendererBackendType, source SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	if source == nil {
		return nil, errors.New("renderer requires a surface source")
	}
	r := &renderer{
		mu:          &sync.Mutex{},
		log:         zerolog.Nop(),
		backendType: backendType,
		presentMode: PresentModeUncapped,
		clearColor:  DefaultClearColor,
		staging:     make([]byte, 0, camera.GPUCameraUniformSize),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(source.SurfaceDescriptor(), r.forceFallbackAdapter, r.log)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	if err := r.backend.ConfigureSurface(source.Width(), source.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}
	r.log.Info().
		Str("present_mode", r.presentMode.String()).
		Int("width", source.Width()).
		Int("height", source.Height()).
		Msg("renderer ready")
	return r, nil
}

func (r *renderer) Resize(width, height int) error {
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c ClearColor) {
	r.backend.SetClearColor(c)
}

func (r *renderer) UploadCamera(cam camera.Camera) error {
	if cam == nil {
		return errors.New("nil camera")
	}
	u := cam.Uniform()

	r.mu.Lock()
	r.staging = u.AppendTo(r.staging[:0])
	data := r.staging
	err := r.backend.WriteUniform(cam.Label(), data)
	r.mu.Unlock()
	return err
}

func (r *renderer) UniformBuffer(label string) *wgpu.Buffer {
	return r.backend.UniformBuffer(label)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) RenderFrame(cams ...camera.Camera) error {
	for _, cam := range cams {
		if err := r.UploadCamera(cam); err != nil {
			return err
		}
	}
	if err := r.BeginFrame(); err != nil {
		return err
	}
	if err := r.EndFrame(); err != nil {
		return err
	}
	r.Present()
	return nil
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) Release() {
	r.backend.Release()
	r.log.Debug().Msg("renderer released")
}
