package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFloat(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestComputeNormals(t *testing.T) {
	// Two triangles of a unit quad in the XY plane, wound counter-clockwise.
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}, {5, 5, 5}}
	normals := ComputeNormals(positions, []uint32{0, 1, 2, 0, 2, 3})

	require.Len(t, normals, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, normals[i])
	}
	assert.Equal(t, mgl32.Vec3{}, normals[4], "unreferenced vertex")
}

func TestComputeNormalsNonIndexed(t *testing.T) {
	normals := ComputeNormals([]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}}, nil)
	assert.Equal(t, []mgl32.Vec3{{-1, 0, 0}, {-1, 0, 0}, {-1, 0, 0}}, normals)
}

func TestComputeNormalsIgnoresBadIndices(t *testing.T) {
	normals := ComputeNormals([]mgl32.Vec3{{0, 0, 0}}, []uint32{0, 7, 9})
	assert.Equal(t, []mgl32.Vec3{{}}, normals)
}

func TestNewModelComputesMissingNormals(t *testing.T) {
	m := NewModel(&ImportedModel{Meshes: []ImportedMesh{{
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	}}})
	assert.Equal(t, []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}, m.Meshes()[0].Normals)
}

func TestMeshVertexData(t *testing.T) {
	mesh := Mesh{
		Positions: []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}},
		Normals:   []mgl32.Vec3{{0, 1, 0}},
	}
	buf := mesh.VertexData()
	require.Len(t, buf, 48)
	assert.Equal(t, float32(3), readFloat(buf, 8))
	assert.Equal(t, float32(1), readFloat(buf, 16))
	assert.Equal(t, float32(4), readFloat(buf, 24))
	assert.Equal(t, float32(0), readFloat(buf, 40), "missing normal")
}

func TestMeshIndexData(t *testing.T) {
	indexed := Mesh{Positions: make([]mgl32.Vec3, 3), Indices: []uint32{2, 1, 0}}
	buf, count := indexed.IndexData()
	assert.Equal(t, 3, count)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[0:]))

	plain := Mesh{Positions: make([]mgl32.Vec3, 6)}
	buf, count = plain.IndexData()
	assert.Equal(t, 6, count)
	require.Len(t, buf, 24)
	assert.Equal(t, uint32(5), binary.LittleEndian.Uint32(buf[20:]))
}

func TestGPUModelData(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	g := NewGPUModelData(m)
	assert.Equal(t, [16]float32(m), g.Model)
	assert.InDelta(t, 0.5, g.Normal[0], 1e-6)

	buf := g.Marshal()
	require.Len(t, buf, 128)
	assert.Equal(t, 128, g.Size())
	assert.Equal(t, float32(1), readFloat(buf, 48))
	assert.InDelta(t, 0.5, readFloat(buf, 64), 1e-6)

	singular := NewGPUModelData(mgl32.Scale3D(0, 1, 1))
	assert.Equal(t, [16]float32(mgl32.Ident4()), singular.Normal)

	var v GPUVertex
	assert.Equal(t, 24, v.Size())
}
