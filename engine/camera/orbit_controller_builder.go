package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitOption is a functional option for configuring an OrbitController.
type OrbitOption func(*orbitControllerImpl)

// WithPosition sets the initial camera position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - OrbitOption: functional option to set the position
func WithPosition(x, y, z float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: target components
//
// Returns:
//   - OrbitOption: functional option to set the target
func WithTarget(x, y, z float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.target = mgl32.Vec3{x, y, z}
	}
}

// WithDistanceBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum distance from the target
//   - max: maximum distance from the target
//
// Returns:
//   - OrbitOption: functional option to set distance bounds
func WithDistanceBounds(min, max float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.minDistance = min
		oc.maxDistance = max
	}
}

// WithMaxPolarAngle limits how far below world up the camera may swing.
// Pi/2 keeps the camera at or above the target's horizon.
//
// Parameters:
//   - angle: maximum polar angle in radians
//
// Returns:
//   - OrbitOption: functional option to set the polar limit
func WithMaxPolarAngle(angle float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.maxPolar = angle
	}
}

// WithDamping enables or disables inertia and sets the per-tick factor.
//
// Parameters:
//   - enabled: whether pending input decays over several ticks
//   - factor: the fraction applied per tick when enabled
//
// Returns:
//   - OrbitOption: functional option to configure damping
func WithDamping(enabled bool, factor float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.enableDamping = enabled
		oc.dampingFactor = factor
	}
}

// WithPan enables or disables panning.
func WithPan(enabled bool) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.enablePan = enabled
	}
}

// WithRotateSpeed sets the orbit angle per dragged pixel.
//
// Parameters:
//   - speed: radians per pixel
//
// Returns:
//   - OrbitOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier.
func WithPanSpeed(speed float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.panSpeed = speed
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
func WithZoomSpeed(speed float32) OrbitOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}
