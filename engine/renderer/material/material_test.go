package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithName("ijuk"))
	assert.Equal(t, "ijuk", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.False(t, m.DoubleSided())
	assert.False(t, m.Transparent())
	_, _, offset := m.PolygonOffset()
	assert.False(t, offset)
	assert.Equal(t, "mesh/culled", m.PipelineKey())
	assert.Nil(t, m.BindGroupProvider())
}

func TestPipelineKeys(t *testing.T) {
	tests := []struct {
		name string
		opts []MaterialBuilderOption
		want string
	}{
		{"double sided", []MaterialBuilderOption{WithDoubleSided(true)}, "mesh"},
		{"blended", []MaterialBuilderOption{WithTransparent(true)}, "mesh/culled/blend"},
		{"offset", []MaterialBuilderOption{WithDoubleSided(true), WithPolygonOffset(1, 1)}, "mesh/offset(1,1)"},
		{"override", []MaterialBuilderOption{WithPipelineKey("custom")}, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMaterial(tt.opts...).PipelineKey())
		})
	}

	a := NewMaterial(WithName("a"), WithBaseColor([4]float32{1, 0, 0, 1}))
	b := NewMaterial(WithName("b"), WithBaseColor([4]float32{0, 1, 0, 1}))
	assert.Equal(t, a.PipelineKey(), b.PipelineKey(), "color does not split pipelines")
}

func TestMaterialSetters(t *testing.T) {
	m := NewMaterial(WithPolygonOffset(2, 3))
	factor, units, enabled := m.PolygonOffset()
	assert.True(t, enabled)
	assert.Equal(t, float32(2), factor)
	assert.Equal(t, float32(3), units)

	p := bind_group_provider.NewBindGroupProvider("ijuk")
	m.SetBindGroupProvider(p)
	m.SetPipelineKey("other")
	assert.Equal(t, p, m.BindGroupProvider())
	assert.Equal(t, "other", m.PipelineKey())

	m.SetBaseColor([4]float32{0.1, 0.2, 0.3, 0.4})
	assert.Equal(t, [4]float32{0.1, 0.2, 0.3, 0.4}, m.GPUParams().BaseColor)
}

func TestGPUMaterialParams(t *testing.T) {
	m := NewMaterial(WithBaseColor([4]float32{0.25, 0.5, 0.75, 0.5}))
	params := m.GPUParams()
	buf := params.Marshal()
	require.Len(t, buf, 16)
	assert.Equal(t, 16, params.Size())
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])))
}
