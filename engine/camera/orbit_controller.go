package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the polar angle away from the poles so the view never
// aligns with world up.
const polarEpsilon float32 = 1e-6

// OrbitController orbits the camera around a target point.
//
// Pointer input accumulates pending rotation, pan and zoom which Update folds
// into the pose once per tick. Update re-derives the spherical offset from the
// current position, so translation applied by a FreeLookController earlier in
// the same tick is preserved and then clamped to the distance and polar limits.
// The controller owns orientation: the camera always looks at the target.
type OrbitController interface {
	// Position returns the camera position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// SetPosition moves the camera without moving the target.
	// The change is clamped on the next Update.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Target returns the point the camera orbits and looks at.
	//
	// Returns:
	//   - x, y, z: target components
	Target() (x, y, z float32)

	// SetTarget moves the orbit pivot without moving the camera.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// Forward returns the unit view direction, normalize(target - position).
	// Returns the zero vector when position and target coincide.
	//
	// Returns:
	//   - x, y, z: direction components
	Forward() (x, y, z float32)

	// SetPose replaces both position and target and discards any pending
	// rotation, pan or zoom so the pose is reproduced exactly.
	//
	// Parameters:
	//   - position: the new camera position
	//   - target: the new look-at point
	SetPose(position, target mgl32.Vec3)

	// Rotate queues an orbit from a pointer drag.
	//
	// Parameters:
	//   - dx: horizontal drag in pixels
	//   - dy: vertical drag in pixels
	Rotate(dx, dy float32)

	// Pan queues a translation of the target in the view plane.
	// Ignored when panning is disabled.
	//
	// Parameters:
	//   - dx: horizontal drag in pixels
	//   - dy: vertical drag in pixels
	Pan(dx, dy float32)

	// Zoom queues a dolly toward (positive delta) or away from the target.
	//
	// Parameters:
	//   - delta: scroll wheel delta
	Zoom(delta float32)

	// Update applies pending input and enforces the limits. Call once per tick
	// after any free-look translation.
	Update()

	// Distance returns the current distance between camera and target.
	//
	// Returns:
	//   - float32: the orbit radius
	Distance() float32

	// DistanceBounds returns the allowed orbit radius range.
	//
	// Returns:
	//   - min, max: the radius limits
	DistanceBounds() (min, max float32)

	// PolarBounds returns the allowed polar angle range in radians, measured from world up.
	//
	// Returns:
	//   - min, max: the polar angle limits
	PolarBounds() (min, max float32)

	// DampingFactor returns the fraction of pending input applied each tick,
	// or 0 when damping is disabled.
	//
	// Returns:
	//   - float32: the damping factor
	DampingFactor() float32
}

type orbitControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3

	// Pending input, folded in by Update.
	deltaTheta float32
	deltaPhi   float32
	panOffset  mgl32.Vec3
	scale      float32

	minDistance float32
	maxDistance float32
	minPolar    float32
	maxPolar    float32

	enableDamping bool
	dampingFactor float32
	enablePan     bool

	rotateSpeed float32
	panSpeed    float32
	zoomSpeed   float32
}

var _ OrbitController = &orbitControllerImpl{}
var _ Pose = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller looking at the origin from
// (0, 0, 1) with damping enabled at factor 0.05, panning enabled, no distance
// limits and the full polar range.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitOption) OrbitController {
	oc := &orbitControllerImpl{
		mu:       &sync.Mutex{},
		position: mgl32.Vec3{0, 0, 1},
		scale:    1,

		minDistance: 0,
		maxDistance: math32.Inf(1),
		minPolar:    0,
		maxPolar:    math32.Pi,

		enableDamping: true,
		dampingFactor: 0.05,
		enablePan:     true,

		rotateSpeed: 0.005,
		panSpeed:    1,
		zoomSpeed:   1,
	}
	for _, option := range options {
		option(oc)
	}
	return oc
}

func (oc *orbitControllerImpl) Position() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position[0], oc.position[1], oc.position[2]
}

func (oc *orbitControllerImpl) SetPosition(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.position = mgl32.Vec3{x, y, z}
}

func (oc *orbitControllerImpl) Target() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target[0], oc.target[1], oc.target[2]
}

func (oc *orbitControllerImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = mgl32.Vec3{x, y, z}
}

func (oc *orbitControllerImpl) Forward() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	f := common.SafeNormalize(oc.target.Sub(oc.position))
	return f[0], f[1], f[2]
}

func (oc *orbitControllerImpl) SetPose(position, target mgl32.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.position = position
	oc.target = target
	oc.resetPending()
}

func (oc *orbitControllerImpl) Rotate(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.deltaTheta -= dx * oc.rotateSpeed
	oc.deltaPhi -= dy * oc.rotateSpeed
}

func (oc *orbitControllerImpl) Pan(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enablePan {
		return
	}
	right, up := oc.viewPlaneAxes()
	k := oc.panSpeed * oc.position.Sub(oc.target).Len() * 0.001
	oc.panOffset = oc.panOffset.Add(right.Mul(-dx * k)).Add(up.Mul(dy * k))
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.scale *= math32.Pow(0.95, delta*oc.zoomSpeed)
}

func (oc *orbitControllerImpl) Update() {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	offset := oc.position.Sub(oc.target)
	radius := offset.Len()
	var theta, phi float32
	if radius > 0 {
		theta = math32.Atan2(offset[0], offset[2])
		phi = math32.Acos(common.Clamp(offset[1]/radius, -1, 1))
	} else {
		phi = math32.Pi / 2
	}

	factor := float32(1)
	if oc.enableDamping {
		factor = oc.dampingFactor
	}

	theta += oc.deltaTheta * factor
	phi += oc.deltaPhi * factor
	phi = common.Clamp(phi, oc.minPolar, oc.maxPolar)
	phi = common.Clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)

	radius = common.Clamp(radius*oc.scale, oc.minDistance, oc.maxDistance)

	oc.target = oc.target.Add(oc.panOffset.Mul(factor))

	sinPhi := math32.Sin(phi)
	oc.position = oc.target.Add(mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	})

	if oc.enableDamping {
		decay := 1 - oc.dampingFactor
		oc.deltaTheta *= decay
		oc.deltaPhi *= decay
		oc.panOffset = oc.panOffset.Mul(decay)
		oc.scale = 1
		return
	}
	oc.resetPending()
}

func (oc *orbitControllerImpl) Distance() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position.Sub(oc.target).Len()
}

func (oc *orbitControllerImpl) DistanceBounds() (min, max float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minDistance, oc.maxDistance
}

func (oc *orbitControllerImpl) PolarBounds() (min, max float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minPolar, oc.maxPolar
}

func (oc *orbitControllerImpl) DampingFactor() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enableDamping {
		return 0
	}
	return oc.dampingFactor
}

// resetPending discards queued rotation, pan and zoom.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) resetPending() {
	oc.deltaTheta = 0
	oc.deltaPhi = 0
	oc.panOffset = mgl32.Vec3{}
	oc.scale = 1
}

// viewPlaneAxes returns the camera's right and up vectors, matching the LookAt basis.
// Both are zero when position and target coincide.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) viewPlaneAxes() (right, up mgl32.Vec3) {
	backward := common.SafeNormalize(oc.position.Sub(oc.target))
	right = common.SafeNormalize(common.WorldUp.Cross(backward))
	up = backward.Cross(right)
	return right, up
}
