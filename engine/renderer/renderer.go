package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount

	width, height int

	// meshes is created on the first DrawScene.
	meshes *meshPass
}

// Renderer owns the GPU surface of a window and runs one render pass per frame.
//
// A frame is BeginFrame, any DrawScene calls, EndFrame and Present.
// The pass clears to the color supplied by BeginFrame.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// Size returns the current surface size in pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// SetPresentMode changes how frames are delivered to the display. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the next surface image and opens the frame's render pass.
	//
	// Parameters:
	//   - clear: the background color of the frame
	//
	// Returns:
	//   - error: error if the surface image cannot be acquired
	BeginFrame(clear common.Color) error

	// DrawScene records the meshes of m into the open frame, lit by lights and seen through cam.
	// GPU buffers for m are created on first use and released once a different model is drawn.
	// A nil model draws nothing.
	//
	// Parameters:
	//   - cam: the camera supplying the view-projection matrix
	//   - lights: the scene's lights
	//   - m: the model to draw, or nil
	//
	// Returns:
	//   - error: error if GPU resources could not be created or no frame is open
	DrawScene(cam camera.Camera, lights []light.Light, m model.Model) error

	// EndFrame ends the render pass and submits the recorded commands.
	EndFrame()

	// Present shows the finished frame.
	Present()

	// Release frees all GPU resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given window's surface.
// It panics if no adapter or device can be obtained.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - w: the window whose surface is rendered to
//   - options: a variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.Resize(w.Width(), w.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) BeginFrame(clear common.Color) error {
	return r.backend.BeginFrame(clear)
}

func (r *renderer) DrawScene(cam camera.Camera, lights []light.Light, m model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.meshes == nil {
		r.meshes = newMeshPass()
	}
	return r.meshes.draw(r.backend, cam, lights, m)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	if r.meshes != nil {
		r.meshes.release()
		r.meshes = nil
	}
	r.mu.Unlock()
	r.backend.Release()
}
