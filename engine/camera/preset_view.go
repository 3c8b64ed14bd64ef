package camera

import "github.com/go-gl/mathgl/mgl32"

// PresetView is a named camera pose that bypasses per-tick integration.
type PresetView struct {
	Name     string
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
}

// ApplyPresetView snaps the controller to the view's pose. Applying the same
// view repeatedly always yields the same pose.
//
// Parameters:
//   - ctrl: the orbit controller that owns the camera pose
//   - view: the view to apply
func ApplyPresetView(ctrl OrbitController, view PresetView) {
	ctrl.SetPose(view.Position, view.LookAt)
}
