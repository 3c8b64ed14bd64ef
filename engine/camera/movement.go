package camera

import "github.com/Carmen-Shannon/oxy-viewer/common"

// Direction identifies one of the six free-look movement axes.
type Direction uint8

const (
	// DirectionForward moves along the view direction.
	DirectionForward Direction = iota

	// DirectionBackward moves against the view direction.
	DirectionBackward

	// DirectionLeft strafes toward the camera's left.
	DirectionLeft

	// DirectionRight strafes toward the camera's right.
	DirectionRight

	// DirectionUp rises along world +Y.
	DirectionUp

	// DirectionDown sinks along world -Y.
	DirectionDown
)

var directionNames = [...]string{"forward", "backward", "left", "right", "up", "down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// MovementState records which movement keys are currently held.
// A flag is true from its key-down until its key-up; repeated key-downs are no-ops.
type MovementState struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool
}

// Set updates the flag for a single direction, leaving the others untouched.
// Unknown directions are ignored.
//
// Parameters:
//   - d: the direction to update
//   - held: whether the key for the direction is held
func (m *MovementState) Set(d Direction, held bool) {
	switch d {
	case DirectionForward:
		m.Forward = held
	case DirectionBackward:
		m.Backward = held
	case DirectionLeft:
		m.Left = held
	case DirectionRight:
		m.Right = held
	case DirectionUp:
		m.Up = held
	case DirectionDown:
		m.Down = held
	}
}

// Held reports whether the flag for d is set.
func (m MovementState) Held(d Direction) bool {
	switch d {
	case DirectionForward:
		return m.Forward
	case DirectionBackward:
		return m.Backward
	case DirectionLeft:
		return m.Left
	case DirectionRight:
		return m.Right
	case DirectionUp:
		return m.Up
	case DirectionDown:
		return m.Down
	}
	return false
}

// Any reports whether at least one flag is set.
func (m MovementState) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right || m.Up || m.Down
}

// Clear releases every flag.
func (m *MovementState) Clear() {
	*m = MovementState{}
}

// KeyBindings maps virtual key codes to movement directions.
type KeyBindings map[uint32]Direction

// DefaultKeyBindings returns the WASD layout with Space for up and Left Shift for down.
//
// Returns:
//   - KeyBindings: a fresh binding map that callers may modify
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		common.KeyW:         DirectionForward,
		common.KeyS:         DirectionBackward,
		common.KeyA:         DirectionLeft,
		common.KeyD:         DirectionRight,
		common.KeySpace:     DirectionUp,
		common.KeyLeftShift: DirectionDown,
	}
}

// Command translates a key transition into a MoveCommand.
// The second return value is false when the key is not bound.
//
// Parameters:
//   - keyCode: the virtual key code from the window
//   - pressed: true for key-down (including repeats), false for key-up
//
// Returns:
//   - MoveCommand: the movement command for the key
//   - bool: true if the key is bound to a direction
func (kb KeyBindings) Command(keyCode uint32, pressed bool) (MoveCommand, bool) {
	d, ok := kb[keyCode]
	if !ok {
		return MoveCommand{}, false
	}
	return MoveCommand{Direction: d, Held: pressed}, true
}
