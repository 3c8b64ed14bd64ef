package model

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that overrides the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithPosition is an option builder that sets the initial world translation.
//
// Parameters:
//   - position: the translation
//
// Returns:
//   - ModelBuilderOption: a function that applies the position option to a model
func WithPosition(position mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.position = position
	}
}

// WithScale is an option builder that sets the per-axis scale.
func WithScale(scale mgl32.Vec3) ModelBuilderOption {
	return func(m *model) {
		m.scale = scale
	}
}

// WithShadows is an option builder that sets cast and receive shadow on every mesh.
//
// Parameters:
//   - enabled: true to cast and receive shadows
//
// Returns:
//   - ModelBuilderOption: a function that applies the shadow option to a model
func WithShadows(enabled bool) ModelBuilderOption {
	return func(m *model) {
		for i := range m.meshes {
			m.meshes[i].CastShadow = enabled
			m.meshes[i].ReceiveShadow = enabled
		}
	}
}

// WithColor is an option builder that overrides every material's color.
// A nil color keeps the imported base colors.
//
// Parameters:
//   - c: the override color, or nil
//
// Returns:
//   - ModelBuilderOption: a function that applies the color option to a model
func WithColor(c *common.Color) ModelBuilderOption {
	return func(m *model) {
		if c == nil {
			return
		}
		for i := range m.materials {
			m.materials[i].Color = *c
		}
	}
}

// WithForceOpaque is an option builder that makes every material fully opaque
// and double-sided, for models whose exported transparency flags are unreliable.
//
// Returns:
//   - ModelBuilderOption: a function that applies the option to a model
func WithForceOpaque() ModelBuilderOption {
	return func(m *model) {
		for i := range m.materials {
			m.materials[i].Opacity = 1
			m.materials[i].Transparent = false
			m.materials[i].DoubleSided = true
		}
	}
}

// WithPolygonOffset is an option builder that enables depth polygon offset on
// every material, used to avoid z-fighting on coplanar faces.
//
// Parameters:
//   - factor: the slope-scaled depth bias
//   - units: the constant depth bias
//
// Returns:
//   - ModelBuilderOption: a function that applies the polygon offset option to a model
func WithPolygonOffset(factor, units float32) ModelBuilderOption {
	return func(m *model) {
		for i := range m.materials {
			m.materials[i].PolygonOffset = true
			m.materials[i].PolygonOffsetFactor = factor
			m.materials[i].PolygonOffsetUnits = units
		}
	}
}
