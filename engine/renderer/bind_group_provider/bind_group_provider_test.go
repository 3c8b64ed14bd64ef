package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("roof", WithIndexCount(36))
	assert.Equal(t, "roof", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Empty(t, p.Buffers())
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("camera")
	p.SetIndexCount(3)
	p.SetBuffer(1, nil)
	assert.Len(t, p.Buffers(), 1)

	assert.NotPanics(t, p.Release)
	assert.Empty(t, p.Buffers())
	assert.Equal(t, 0, p.IndexCount())
	assert.NotPanics(t, p.Release, "release is idempotent")
}
