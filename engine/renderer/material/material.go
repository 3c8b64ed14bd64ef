package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
)

// material is the implementation of the Material interface.
type material struct {
	name                string
	baseColor           [4]float32
	doubleSided         bool
	transparent         bool
	polygonOffset       bool
	polygonOffsetFactor float32
	polygonOffsetUnits  float32
	pipelineKey         string
	bindGroupProvider   bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material, encapsulating the
// surface properties that select a pipeline and the GPU resource bindings
// needed for draw calls.
//
// Surface properties are set at construction and are read-only through this
// interface. The pipeline key is derived from them unless overridden; the bind
// group provider is attached once the renderer has created the GPU buffers.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the linear RGB color and opacity of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// DoubleSided reports whether back faces are drawn.
	DoubleSided() bool

	// Transparent reports whether the material is alpha blended.
	Transparent() bool

	// PolygonOffset returns the depth offset applied to the material's faces.
	//
	// Returns:
	//   - factor: the slope-scaled offset
	//   - units: the constant offset
	//   - enabled: false when no offset is applied
	PolygonOffset() (factor, units float32, enabled bool)

	// GPUParams returns the uniform block for the mesh fragment shader.
	//
	// Returns:
	//   - GPUMaterialParams: the material uniform
	GPUParams() GPUMaterialParams

	// PipelineKey retrieves the key identifying the render pipeline this material uses.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider, or nil if not yet initialized
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBaseColor replaces the base color, e.g. after the model's color is overridden.
	//
	// Parameters:
	//   - rgba: the linear RGB color and opacity
	SetBaseColor(rgba [4]float32)

	// SetPipelineKey sets the render pipeline key for this material.
	//
	// Parameters:
	//   - key: the pipeline key to associate with this material
	SetPipelineKey(key string)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Without WithPipelineKey the key is derived from the surface properties, so
// materials that can share a pipeline get the same key.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor: [4]float32{1, 1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	if m.pipelineKey == "" {
		m.pipelineKey = PipelineKeyFor(m.doubleSided, m.transparent, m.polygonOffset, m.polygonOffsetFactor, m.polygonOffsetUnits)
	}
	return m
}

// PipelineKeyFor names the mesh pipeline variant for a combination of surface properties.
//
// Parameters:
//   - doubleSided: whether back faces are drawn
//   - transparent: whether the surface is alpha blended
//   - offset: whether a polygon offset applies
//   - factor, units: the polygon offset values
//
// Returns:
//   - string: the pipeline key, e.g. "mesh/culled/blend"
func PipelineKeyFor(doubleSided, transparent, offset bool, factor, units float32) string {
	key := "mesh"
	if !doubleSided {
		key += "/culled"
	}
	if transparent {
		key += "/blend"
	}
	if offset {
		key += fmt.Sprintf("/offset(%g,%g)", factor, units)
	}
	return key
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) DoubleSided() bool {
	return m.doubleSided
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) PolygonOffset() (float32, float32, bool) {
	return m.polygonOffsetFactor, m.polygonOffsetUnits, m.polygonOffset
}

func (m *material) GPUParams() GPUMaterialParams {
	return GPUMaterialParams{BaseColor: m.baseColor}
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetBaseColor(rgba [4]float32) {
	m.baseColor = rgba
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
