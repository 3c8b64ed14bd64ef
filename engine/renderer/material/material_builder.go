package material

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the linear RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values, alpha being the opacity
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithDoubleSided is an option builder that disables back-face culling.
//
// Parameters:
//   - doubleSided: true to draw both faces
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sidedness option to a material
func WithDoubleSided(doubleSided bool) MaterialBuilderOption {
	return func(m *material) {
		m.doubleSided = doubleSided
	}
}

// WithTransparent is an option builder that enables alpha blending.
//
// Parameters:
//   - transparent: true to blend with what is already drawn
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparency option to a material
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = transparent
	}
}

// WithPolygonOffset is an option builder that pushes the material's faces back in depth.
//
// Parameters:
//   - factor: the slope-scaled offset
//   - units: the constant offset
//
// Returns:
//   - MaterialBuilderOption: a function that applies the polygon offset option to a material
func WithPolygonOffset(factor, units float32) MaterialBuilderOption {
	return func(m *material) {
		m.polygonOffset = true
		m.polygonOffsetFactor = factor
		m.polygonOffsetUnits = units
	}
}

// WithPipelineKey is an option builder that overrides the derived render pipeline key.
//
// Parameters:
//   - key: the pipeline key to associate with the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline key option to a material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider is an option builder that sets the bind group provider for the material.
//
// Parameters:
//   - provider: the bind group provider containing GPU resources for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the bind group provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
