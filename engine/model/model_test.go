package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImported() *ImportedModel {
	box := EmptyBox()
	box.ExpandByPoint(mgl32.Vec3{0, 0, 0})
	box.ExpandByPoint(mgl32.Vec3{2, 4, 6})
	return &ImportedModel{
		Name: "house",
		Meshes: []ImportedMesh{
			{Name: "roof", Positions: []mgl32.Vec3{{0, 0, 0}, {2, 4, 6}}, MaterialIndex: 0, Bounds: box},
			{Name: "post", Positions: []mgl32.Vec3{{1, 1, 1}}, MaterialIndex: -1, Bounds: Box3{Min: mgl32.Vec3{1, 1, 1}, Max: mgl32.Vec3{1, 1, 1}}},
		},
		Materials: []ImportedMaterial{
			{Name: "wood", BaseColor: common.Color{R: 0.5, G: 0.25, B: 0}, Opacity: 0.3, Transparent: true},
		},
	}
}

func TestBox3(t *testing.T) {
	box := EmptyBox()
	assert.True(t, box.IsEmpty())
	assert.Equal(t, mgl32.Vec3{}, box.Center())

	box.ExpandByPoint(mgl32.Vec3{-1, 0, 2})
	box.ExpandByPoint(mgl32.Vec3{3, 4, -2})
	assert.False(t, box.IsEmpty())
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, box.Center())
	assert.Equal(t, mgl32.Vec3{4, 4, 4}, box.Size())

	box.Union(EmptyBox())
	assert.Equal(t, mgl32.Vec3{-1, 0, -2}, box.Min)

	moved := box.Translate(mgl32.Vec3{1, 1, 1})
	assert.Equal(t, mgl32.Vec3{2, 3, 1}, moved.Center())
}

func TestNewModelKeepsImportedMaterials(t *testing.T) {
	m := NewModel(testImported())

	mats := m.Materials()
	require.Len(t, mats, 2)
	assert.Equal(t, float32(0.3), mats[0].Opacity)
	assert.True(t, mats[0].Transparent)
	assert.False(t, mats[0].DoubleSided)
	assert.Equal(t, "default", mats[1].Name)
	assert.Equal(t, float32(1), mats[1].Opacity)
	assert.False(t, mats[1].Transparent)

	meshes := m.Meshes()
	require.Len(t, meshes, 2)
	assert.Equal(t, 1, meshes[1].MaterialIndex)
	assert.True(t, meshes[0].CastShadow)
	assert.True(t, meshes[0].ReceiveShadow)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.LocalBounds().Center())
}

func TestWithForceOpaque(t *testing.T) {
	m := NewModel(testImported(), WithForceOpaque())

	mats := m.Materials()
	require.Len(t, mats, 2)
	for _, mat := range mats {
		assert.Equal(t, float32(1), mat.Opacity)
		assert.False(t, mat.Transparent)
		assert.True(t, mat.DoubleSided)
	}
}

func TestModelOptions(t *testing.T) {
	red := common.Color{R: 1}
	m := NewModel(testImported(), WithShadows(false), WithColor(&red), WithPolygonOffset(1, 1), WithName("toba"))

	assert.Equal(t, "toba", m.Name())
	for _, mesh := range m.Meshes() {
		assert.False(t, mesh.CastShadow)
		assert.False(t, mesh.ReceiveShadow)
	}
	for _, mat := range m.Materials() {
		assert.Equal(t, red, mat.Color)
		assert.True(t, mat.PolygonOffset)
		assert.Equal(t, float32(1), mat.PolygonOffsetFactor)
		assert.Equal(t, float32(1), mat.PolygonOffsetUnits)
	}

	m.ResetColor()
	assert.Equal(t, common.Color{R: 0.5, G: 0.25}, m.Materials()[0].Color)
}

func TestModelInstancesAreIndependent(t *testing.T) {
	imported := testImported()
	a := NewModel(imported)
	b := NewModel(imported)

	a.SetColor(common.Color{G: 1})
	a.SetShadows(false)

	assert.Equal(t, imported.Materials[0].BaseColor, b.Materials()[0].Color)
	assert.True(t, b.Meshes()[0].CastShadow)
}

func TestRecenter(t *testing.T) {
	m := NewModel(testImported())
	target := mgl32.Vec3{1350, 850, 100}

	m.Recenter(target, false)
	assert.Equal(t, mgl32.Vec3{1349, 848, 97}, m.Position())
	assert.Equal(t, target, m.WorldBounds().Center())
}

func TestRecenterSubtractTwice(t *testing.T) {
	m := NewModel(testImported())

	m.Recenter(mgl32.Vec3{-1, 27, -30}, true)
	assert.Equal(t, mgl32.Vec3{-3, 23, -36}, m.Position())
}

func TestModelMatrix(t *testing.T) {
	m := NewModel(testImported(), WithPosition(mgl32.Vec3{1, 2, 3}), WithScale(mgl32.Vec3{2, 2, 2}))
	p := m.ModelMatrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.Equal(t, mgl32.Vec4{3, 4, 5, 1}, p)
	assert.Equal(t, mgl32.Vec3{3, 6, 9}, m.WorldBounds().Center())
}
