package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeshShaderEntryPoints(t *testing.T) {
	vs := NewShader("mesh.vs", ShaderTypeVertex, MeshSource)
	fs := NewShader("mesh.fs", ShaderTypeFragment, MeshSource)

	assert.Equal(t, "vs_main", vs.EntryPoint())
	assert.Equal(t, "fs_main", fs.EntryPoint())
	assert.NotContains(t, vs.Source(), annotationPrefix)
	require.NotNil(t, vs.Module())
	assert.Equal(t, "mesh.vs", vs.Module().Label)
}

func TestMeshShaderVertexLayout(t *testing.T) {
	vs := NewShader("mesh.vs", ShaderTypeVertex, MeshSource)
	require.Len(t, vs.VertexLayouts(), 1)

	layout := vs.VertexLayout(0)
	require.Len(t, layout, 1)
	assert.Equal(t, uint64(24), layout[0].ArrayStride)
	require.Len(t, layout[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout[0].Attributes[0].Format)
	assert.Equal(t, uint64(12), layout[0].Attributes[1].Offset)
	assert.Equal(t, uint32(1), layout[0].Attributes[1].ShaderLocation)

	fs := NewShader("mesh.fs", ShaderTypeFragment, MeshSource)
	assert.Empty(t, fs.VertexLayouts())
}

func TestMeshShaderBindGroups(t *testing.T) {
	fs := NewShader("mesh.fs", ShaderTypeFragment, MeshSource)
	descs := fs.BindGroupLayoutDescriptors()
	require.Len(t, descs, 3)

	frame := descs[0].Entries
	require.Len(t, frame, 2)
	assert.Equal(t, uint64(80), frame[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(112), frame[1].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, frame[0].Buffer.Type)
	assert.Equal(t, wgpu.ShaderStageFragment, frame[0].Visibility)

	assert.Equal(t, uint64(128), descs[1].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(16), descs[2].Entries[0].Buffer.MinBindingSize)

	assert.Equal(t, "lighting", fs.BindGroupVarName(0, 1))
	assert.Equal(t, "", fs.BindGroupVarName(5, 0))
}

func TestShaderBinding(t *testing.T) {
	vs := NewShader("mesh.vs", ShaderTypeVertex, MeshSource)

	tests := []struct {
		arg     AnnotationArg
		group   int
		binding int
	}{
		{AnnotationArgCamera, 0, 0},
		{AnnotationArgLighting, 0, 1},
		{AnnotationArgModelData, 1, 0},
		{AnnotationArgMaterialParams, 2, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.arg), func(t *testing.T) {
			g, b, ok := vs.Binding(tt.arg)
			require.True(t, ok)
			assert.Equal(t, tt.group, g)
			assert.Equal(t, tt.binding, b)
		})
	}

	_, _, ok := vs.Binding(annotationArgVertex)
	assert.False(t, ok)
}

func TestNewShaderPanics(t *testing.T) {
	assert.Panics(t, func() { NewShader("empty", ShaderTypeVertex, "") })
	assert.Panics(t, func() { NewShader("bad", ShaderTypeVertex, "//@oxy:include textures\n") })
}

func TestComputeStructSizes(t *testing.T) {
	src := `
struct Inner { a: vec3<f32>, b: f32, }
struct Outer { inner: Inner, list: array<vec4<f32>, 3>, flag: u32, }
`
	sizes := computeStructSizes(parseStructBlocks(src))
	assert.Equal(t, wgslTypeLayout{16, 16}, sizes["Inner"])
	// 16 (inner) + 48 (array) + 4, rounded to the 16 byte alignment.
	assert.Equal(t, wgslTypeLayout{80, 16}, sizes["Outer"])
}

func TestStripComments(t *testing.T) {
	src := "a /* one /* nested */ still */ b // tail\nc"
	assert.Equal(t, "a  b \nc\n", stripComments(src))
}

func TestSplitAtTopLevelCommas(t *testing.T) {
	parts := splitAtTopLevelCommas("a: array<vec4<f32>, 4>, b: f32")
	require.Len(t, parts, 2)
	assert.Equal(t, "a: array<vec4<f32>, 4>", parts[0])
}
