package viewer

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// Command is a unit of work for the tick goroutine. Window callbacks and
// background loads submit commands; Tick applies them in order.
type Command interface {
	isViewerCommand()
}

// KeyCommand is a raw key transition. Movement keys are forwarded to the
// free-look controller; the remaining bound keys trigger viewer actions on press.
type KeyCommand struct {
	Code    uint32
	Pressed bool
}

// FocusCommand reports a keyboard focus change.
type FocusCommand struct {
	Focused bool
}

// MouseButtonCommand is a pointer button transition at a window position.
type MouseButtonCommand struct {
	Button  window.MouseButton
	Pressed bool
	X, Y    float32
}

// MouseMoveCommand is a cursor position update.
type MouseMoveCommand struct {
	X, Y float32
}

// ScrollCommand is a wheel step; positive zooms in.
type ScrollCommand struct {
	Delta float32
}

// ToggleDayNightCommand flips between the day and night lighting presets.
type ToggleDayNightCommand struct{}

// SetAmbientLevelCommand moves the ambient slider to Level.
type SetAmbientLevelCommand struct {
	Level float32
}

// SetIndoorLevelCommand moves the indoor light slider to Level.
type SetIndoorLevelCommand struct {
	Level float32
}

// RandomizeColorCommand reloads the model with one random color on every material.
type RandomizeColorCommand struct{}

// ResetColorCommand reloads the model with its own materials.
type ResetColorCommand struct{}

// PresetViewCommand snaps the camera to a named preset view.
type PresetViewCommand struct {
	Name string
}

// reloadCommand starts a load of the preset model with the current settings.
type reloadCommand struct{}

// loadProgressCommand and loadResultCommand carry a background load back to
// the tick goroutine. Loads superseded by a newer one are dropped.
type loadProgressCommand struct {
	generation uint64
	progress   loader.Progress
}

type loadResultCommand struct {
	generation uint64
	result     loader.Result
}

func (KeyCommand) isViewerCommand()             {}
func (FocusCommand) isViewerCommand()           {}
func (MouseButtonCommand) isViewerCommand()     {}
func (MouseMoveCommand) isViewerCommand()       {}
func (ScrollCommand) isViewerCommand()          {}
func (ToggleDayNightCommand) isViewerCommand()  {}
func (SetAmbientLevelCommand) isViewerCommand() {}
func (SetIndoorLevelCommand) isViewerCommand()  {}
func (RandomizeColorCommand) isViewerCommand()  {}
func (ResetColorCommand) isViewerCommand()      {}
func (PresetViewCommand) isViewerCommand()      {}
func (reloadCommand) isViewerCommand()          {}
func (loadProgressCommand) isViewerCommand()    {}
func (loadResultCommand) isViewerCommand()      {}
