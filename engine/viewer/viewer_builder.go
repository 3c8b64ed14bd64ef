package viewer

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewer)

// WithConvention sets the sign convention of the forward and backward keys.
//
// Parameters:
//   - convention: the longitudinal sign convention
//
// Returns:
//   - ViewerBuilderOption: a function that applies the convention option to a viewer
func WithConvention(convention camera.Convention) ViewerBuilderOption {
	return func(v *viewer) {
		v.convention = convention
	}
}

// WithClearOnFocusLoss controls whether losing window focus releases every held movement key.
func WithClearOnFocusLoss(clear bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.clearOnFocusLoss = clear
	}
}

// WithKeyBindings replaces the movement key layout.
//
// Parameters:
//   - bindings: the key code to direction map
//
// Returns:
//   - ViewerBuilderOption: a function that applies the bindings option to a viewer
func WithKeyBindings(bindings camera.KeyBindings) ViewerBuilderOption {
	return func(v *viewer) {
		if bindings != nil {
			v.bindings = bindings
		}
	}
}

// WithAspect sets the initial camera aspect ratio. The engine updates it on resize.
func WithAspect(aspect float32) ViewerBuilderOption {
	return func(v *viewer) {
		if aspect > 0 {
			v.aspect = aspect
		}
	}
}

// WithCommandBuffer sets the capacity of the command queue.
func WithCommandBuffer(size int) ViewerBuilderOption {
	return func(v *viewer) {
		if size > 0 {
			v.bufferSize = size
		}
	}
}

// WithRandomSource sets the generator used for random model colors.
//
// Parameters:
//   - rng: the random source, or nil for the global generator
//
// Returns:
//   - ViewerBuilderOption: a function that applies the random source option to a viewer
func WithRandomSource(rng *rand.Rand) ViewerBuilderOption {
	return func(v *viewer) {
		v.rng = rng
	}
}
