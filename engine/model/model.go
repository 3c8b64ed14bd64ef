package model

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	mu *sync.RWMutex

	name      string
	meshes    []Mesh
	materials []Material
	bounds    Box3
	position  mgl32.Vec3
	scale     mgl32.Vec3
}

// Model is a scene instance of an imported model.
// Each load produces a fresh Model so material and shadow settings of one
// instance never leak into another that shares the same imported data.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Meshes returns a snapshot of the model's meshes.
	//
	// Returns:
	//   - []Mesh: the meshes
	Meshes() []Mesh

	// Materials returns a snapshot of the model's materials.
	//
	// Returns:
	//   - []Material: the materials
	Materials() []Material

	// LocalBounds returns the model-space bounding box.
	//
	// Returns:
	//   - Box3: the bounding box before position and scale are applied
	LocalBounds() Box3

	// WorldBounds returns the bounding box after scale and position are applied.
	//
	// Returns:
	//   - Box3: the world-space bounding box
	WorldBounds() Box3

	// Position returns the world-space translation of the model.
	Position() mgl32.Vec3

	// SetPosition sets the world-space translation of the model.
	//
	// Parameters:
	//   - position: the new translation
	SetPosition(position mgl32.Vec3)

	// Scale returns the per-axis scale of the model.
	Scale() mgl32.Vec3

	// Recenter moves the model so the center of its world bounds lands on target:
	// position = position − center + target. When subtractTwice is set the
	// center is subtracted a second time.
	//
	// Parameters:
	//   - target: the world point to move the bounds center to
	//   - subtractTwice: subtract the center once more after recentering
	Recenter(target mgl32.Vec3, subtractTwice bool)

	// SetShadows sets cast and receive shadow on every mesh.
	//
	// Parameters:
	//   - enabled: true to cast and receive shadows
	SetShadows(enabled bool)

	// SetColor overrides the color of every material.
	//
	// Parameters:
	//   - c: the override color
	SetColor(c common.Color)

	// ResetColor restores every material's imported base color.
	ResetColor()

	// ModelMatrix returns the model-to-world transform.
	//
	// Returns:
	//   - mgl32.Mat4: translation × scale
	ModelMatrix() mgl32.Mat4
}

var _ Model = &model{}

// NewModel creates a Model instance from imported data with the specified options applied.
// Materials keep their imported opacity and sidedness; shadows start enabled.
//
// Parameters:
//   - imported: the imported model to instance
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(imported *ImportedModel, options ...ModelBuilderOption) Model {
	m := &model{
		mu:    &sync.RWMutex{},
		name:  imported.Name,
		scale: mgl32.Vec3{1, 1, 1},
	}

	m.materials = make([]Material, 0, len(imported.Materials)+1)
	for _, src := range imported.Materials {
		m.materials = append(m.materials, newMaterial(src))
	}

	defaultIndex := -1
	m.meshes = make([]Mesh, len(imported.Meshes))
	m.bounds = EmptyBox()
	for i, src := range imported.Meshes {
		idx := src.MaterialIndex
		if idx < 0 || idx >= len(imported.Materials) {
			if defaultIndex < 0 {
				defaultIndex = len(m.materials)
				m.materials = append(m.materials, newMaterial(defaultMaterial))
			}
			idx = defaultIndex
		}
		normals := src.Normals
		if len(normals) != len(src.Positions) {
			normals = ComputeNormals(src.Positions, src.Indices)
		}
		m.meshes[i] = Mesh{
			Name:          src.Name,
			Positions:     src.Positions,
			Normals:       normals,
			Indices:       src.Indices,
			MaterialIndex: idx,
			Bounds:        src.Bounds,
			CastShadow:    true,
			ReceiveShadow: true,
		}
		m.bounds.Union(src.Bounds)
	}

	for _, opt := range options {
		opt(m)
	}
	return m
}

func newMaterial(src ImportedMaterial) Material {
	return Material{
		Name:        src.Name,
		Color:       src.BaseColor,
		BaseColor:   src.BaseColor,
		Opacity:     src.Opacity,
		Transparent: src.Transparent,
		DoubleSided: src.DoubleSided,
	}
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Meshes() []Mesh {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Mesh, len(m.meshes))
	copy(out, m.meshes)
	return out
}

func (m *model) Materials() []Material {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Material, len(m.materials))
	copy(out, m.materials)
	return out
}

func (m *model) LocalBounds() Box3 {
	return m.bounds
}

func (m *model) WorldBounds() Box3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.worldBounds()
}

func (m *model) worldBounds() Box3 {
	if m.bounds.IsEmpty() {
		return m.bounds
	}
	box := EmptyBox()
	box.ExpandByPoint(mulElem(m.bounds.Min, m.scale))
	box.ExpandByPoint(mulElem(m.bounds.Max, m.scale))
	return box.Translate(m.position)
}

func (m *model) Position() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

func (m *model) SetPosition(position mgl32.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = position
}

func (m *model) Scale() mgl32.Vec3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scale
}

func (m *model) Recenter(target mgl32.Vec3, subtractTwice bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	center := m.worldBounds().Center()
	m.position = m.position.Sub(center).Add(target)
	if subtractTwice {
		m.position = m.position.Sub(center)
	}
}

func (m *model) SetShadows(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.meshes {
		m.meshes[i].CastShadow = enabled
		m.meshes[i].ReceiveShadow = enabled
	}
}

func (m *model) SetColor(c common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.materials {
		m.materials[i].Color = c
	}
}

func (m *model) ResetColor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.materials {
		m.materials[i].Color = m.materials[i].BaseColor
	}
}

func (m *model) ModelMatrix() mgl32.Mat4 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return mgl32.Translate3D(m.position[0], m.position[1], m.position[2]).
		Mul4(mgl32.Scale3D(m.scale[0], m.scale[1], m.scale[2]))
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
