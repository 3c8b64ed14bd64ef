package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Convention selects the sign of the longitudinal axis.
type Convention int

const (
	// ConventionReference moves along -F while the forward key is held and along
	// +F while the backward key is held. This is the behavior the monument pages
	// ship with and is the default.
	ConventionReference Convention = iota

	// ConventionNatural moves along +F while the forward key is held.
	ConventionNatural
)

// Pose is the camera state a FreeLookController translates each tick.
// Forward must describe the current orientation, not the translated position.
type Pose interface {
	// Position returns the world-space camera position.
	Position() (x, y, z float32)

	// SetPosition moves the camera without changing what drives its orientation.
	SetPosition(x, y, z float32)

	// Forward returns the unit view direction in world space.
	Forward() (x, y, z float32)
}

// FreeLookController turns held movement keys into per-tick camera translation.
//
// The controller owns exactly one MovementState. It is not safe for concurrent
// use: feed it commands and ticks from the same goroutine.
type FreeLookController interface {
	// Handle applies a single input command to the movement state.
	// Unknown commands are ignored.
	//
	// Parameters:
	//   - cmd: the command to apply
	Handle(cmd Command)

	// Tick translates the pose by one frame of movement.
	// The forward direction is sampled once before any translation happens.
	//
	// Parameters:
	//   - pose: the camera pose to translate
	Tick(pose Pose)

	// State returns a copy of the current movement flags.
	//
	// Returns:
	//   - MovementState: the held keys
	State() MovementState

	// Speed returns the per-tick displacement magnitude along each axis.
	//
	// Returns:
	//   - float32: the speed in world units per tick
	Speed() float32

	// Convention returns the longitudinal sign convention in use.
	//
	// Returns:
	//   - Convention: the configured convention
	Convention() Convention
}

type freeLookControllerImpl struct {
	state            MovementState
	speed            float32
	convention       Convention
	clearOnFocusLoss bool
}

var _ FreeLookController = &freeLookControllerImpl{}

// NewFreeLookController creates a controller with all flags released.
// Speed defaults to 1 world unit per tick, the reference convention is used,
// and losing focus releases every held key.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FreeLookController: the newly created controller
func NewFreeLookController(options ...FreeLookOption) FreeLookController {
	c := &freeLookControllerImpl{
		speed:            1,
		convention:       ConventionReference,
		clearOnFocusLoss: true,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *freeLookControllerImpl) Handle(cmd Command) {
	switch cmd := cmd.(type) {
	case MoveCommand:
		c.state.Set(cmd.Direction, cmd.Held)
	case FocusLostCommand:
		if c.clearOnFocusLoss {
			c.state.Clear()
		}
	}
}

func (c *freeLookControllerImpl) Tick(pose Pose) {
	if !c.state.Any() {
		return
	}
	px, py, pz := pose.Position()
	fx, fy, fz := pose.Forward()
	next := Step(c.state, c.speed, mgl32.Vec3{px, py, pz}, mgl32.Vec3{fx, fy, fz}, c.convention)
	pose.SetPosition(next[0], next[1], next[2])
}

func (c *freeLookControllerImpl) State() MovementState {
	return c.state
}

func (c *freeLookControllerImpl) Speed() float32 {
	return c.speed
}

func (c *freeLookControllerImpl) Convention() Convention {
	return c.convention
}

// Step computes the position after one tick of free-look movement.
//
// Vertical motion is applied along world up first. The horizontal step then
// moves by longitudinal*F + lateral*S where S = normalize(F x up). When F is
// parallel to world up the side vector collapses to zero and lateral motion
// is dropped for that tick. Opposing keys cancel. NaN inputs propagate.
//
// Parameters:
//   - state: the held movement keys
//   - speed: displacement per axis per tick
//   - position: the current world position
//   - forward: the current unit view direction
//   - convention: the longitudinal sign convention
//
// Returns:
//   - mgl32.Vec3: the new world position
func Step(state MovementState, speed float32, position, forward mgl32.Vec3, convention Convention) mgl32.Vec3 {
	var longitudinal, lateral float32
	if state.Forward {
		longitudinal -= speed
	}
	if state.Backward {
		longitudinal += speed
	}
	if state.Left {
		lateral -= speed
	}
	if state.Right {
		lateral += speed
	}
	if state.Up {
		position[1] += speed
	}
	if state.Down {
		position[1] -= speed
	}

	if convention == ConventionNatural {
		longitudinal = -longitudinal
	}

	// Zero coefficients are skipped so a released axis never mixes a
	// non-finite direction into the position.
	if longitudinal != 0 {
		position = position.Add(forward.Mul(longitudinal))
	}
	if lateral != 0 {
		side := common.SafeNormalize(forward.Cross(common.WorldUp))
		position = position.Add(side.Mul(lateral))
	}
	return position
}
