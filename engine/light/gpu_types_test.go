package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGPULighting(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithIntensity(0.5)),
		NewLight(LightTypeAmbient, WithIntensity(0.25)),
		NewLight(LightTypeAmbient, WithIntensity(10), WithEnabled(false)),
		NewLight(LightTypeHemisphere, WithColor(0xff0000), WithGroundColor(0x0000ff), WithIntensity(2)),
		NewLight(LightTypeDirectional, WithPosition(0, 10, 0), WithIntensity(3)),
		NewLight(LightTypeDirectional, WithPosition(10, 0, 0), WithIntensity(7)),
		NewLight(LightTypePoint, WithPosition(1, 2, 3), WithIntensity(4), WithAttenuation(100, 2)),
		NewLight(LightTypePoint, WithPosition(9, 9, 9)),
	}

	g := NewGPULighting(lights)
	assert.Equal(t, [4]float32{0.75, 0.75, 0.75, 0}, g.Ambient)
	assert.Equal(t, [4]float32{2, 0, 0, 0}, g.SkyColor)
	assert.Equal(t, [4]float32{0, 0, 2, 0}, g.GroundColor)
	assert.Equal(t, [4]float32{0, -1, 0, 1}, g.SunDirection)
	assert.Equal(t, [4]float32{3, 3, 3, 0}, g.SunColor)
	assert.Equal(t, [4]float32{1, 2, 3, 100}, g.PointPosition)
	assert.Equal(t, [4]float32{4, 4, 4, 2}, g.PointColor)
}

func TestNewGPULightingWithoutSun(t *testing.T) {
	g := NewGPULighting([]Light{NewLight(LightTypeDirectional, WithPosition(0, 10, 0), WithEnabled(false))})
	assert.Equal(t, float32(0), g.SunDirection[3])
	assert.Equal(t, [4]float32{}, g.SunColor)
}

func TestGPULightingMarshal(t *testing.T) {
	g := GPULighting{PointColor: [4]float32{0, 0, 0, 2}}
	g.Ambient[1] = 0.5

	buf := g.Marshal()
	require.Len(t, buf, 112)
	assert.Equal(t, 112, g.Size())
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])))
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[108:])))
}
