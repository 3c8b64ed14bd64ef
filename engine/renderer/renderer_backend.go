package renderer

import (
	"errors"
	"fmt"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount is the number of samples per pixel of the main color target.
// WebGPU guarantees 1 (off) and 4; higher counts are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8x multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16x multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// ErrInvalidMSAA is returned by ParseMSAA for sample counts the GPU cannot use.
var ErrInvalidMSAA = errors.New("renderer: invalid MSAA sample count")

// ParseMSAA converts a configured samples-per-pixel value into an MSAASampleCount.
// Zero selects the default.
//
// Parameters:
//   - samples: 0, 1, 4, 8 or 16
//
// Returns:
//   - MSAASampleCount: the matching sample count
//   - error: ErrInvalidMSAA for any other value
func ParseMSAA(samples int) (MSAASampleCount, error) {
	switch samples {
	case 0:
		return MSAA4x, nil
	case 1:
		return MSAAOff, nil
	case 4:
		return MSAA4x, nil
	case 8:
		return MSAA8x, nil
	case 16:
		return MSAA16x, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidMSAA, samples)
}

// RendererBackend is the top-level backend interface for the Renderer.
type RendererBackend interface {
	wgpuRendererBackend
}
