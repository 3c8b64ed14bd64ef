package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (24 bytes, tightly packed).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 24 bytes (vertex buffers are tightly packed, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: unit vertex normal for lighting (12 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 24)
	g.marshalTo(buf)
	return buf
}

func (g *GPUVertex) marshalTo(buf []byte) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
		binary.LittleEndian.PutUint32(buf[12+i*4:], math.Float32bits(g.Normal[i]))
	}
}

// VertexData packs the mesh positions and normals into an interleaved vertex buffer.
// Missing normals are written as zero.
//
// Returns:
//   - []byte: len(Positions) * 24 bytes
func (m Mesh) VertexData() []byte {
	var v GPUVertex
	stride := v.Size()
	buf := make([]byte, len(m.Positions)*stride)
	for i, p := range m.Positions {
		v.Position = p
		v.Normal = [3]float32{}
		if i < len(m.Normals) {
			v.Normal = m.Normals[i]
		}
		v.marshalTo(buf[i*stride:])
	}
	return buf
}

// IndexData packs the mesh indices as uint32. Non-indexed meshes get the
// sequence 0..n-1 so every mesh can be drawn with DrawIndexed.
//
// Returns:
//   - []byte: the index buffer contents
//   - int: the number of indices
func (m Mesh) IndexData() ([]byte, int) {
	indices := m.Indices
	if len(indices) == 0 {
		indices = make([]uint32, len(m.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf, len(indices)
}

// GPUModelDataSource is the canonical WGSL definition of the ModelData struct.
// Matches GPUModelData layout exactly (128 bytes, std430 aligned).
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData is the GPU-aligned per-model transform block.
// Matches the WGSL ModelData struct layout exactly (see GPUModelDataSource).
// Size: 128 bytes (two mat4x4<f32>, std430 aligned, no padding required).
type GPUModelData struct {
	Model  [16]float32 // offset  0: model-to-world transform matrix (64 bytes)
	Normal [16]float32 // offset 64: inverse transpose of Model for normals (64 bytes)
}

// NewGPUModelData builds the transform block for a model matrix. A singular
// matrix falls back to identity normals.
//
// Parameters:
//   - modelMatrix: the model-to-world transform
//
// Returns:
//   - GPUModelData: the uniform ready for Marshal
func NewGPUModelData(modelMatrix mgl32.Mat4) GPUModelData {
	normal := mgl32.Ident4()
	if modelMatrix.Det() != 0 {
		normal = modelMatrix.Inv().Transpose()
	}
	return GPUModelData{Model: modelMatrix, Normal: normal}
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 128)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:64+(i+1)*4], math.Float32bits(g.Normal[i]))
	}
	return buf
}
