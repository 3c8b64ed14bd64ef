package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypeAmbient)
	assert.Equal(t, LightTypeAmbient, l.Type())
	assert.Equal(t, common.Color{R: 1, G: 1, B: 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.True(t, l.Enabled())
	assert.False(t, l.CastsShadows())
	assert.Equal(t, DefaultShadowConfig(), l.Shadow())
}

func TestDirectionalLightShinesTowardOrigin(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithPosition(0, 10, 0))
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())

	p := NewLight(LightTypePoint, WithPosition(0, 10, 0))
	assert.Equal(t, mgl32.Vec3{}, p.Direction())
}

func TestLightOptions(t *testing.T) {
	shadow := ShadowConfig{Near: 1, Far: 500, Left: -500, Right: 500, Top: 500, Bottom: -500, MapSize: 1024}
	l := NewLight(LightTypePoint,
		WithColor(0xd5d6a9),
		WithIntensity(500000*5),
		WithAttenuation(1000, 2),
		WithShadow(shadow),
	)

	assert.Equal(t, uint32(0xd5d6a9), l.Color().Hex())
	assert.Equal(t, float32(2500000), l.Intensity())
	assert.Equal(t, float32(1000), l.Range())
	assert.Equal(t, float32(2), l.Decay())
	assert.True(t, l.CastsShadows())
	assert.Equal(t, shadow, l.Shadow())
}

func TestHemisphereGroundColor(t *testing.T) {
	l := NewLight(LightTypeHemisphere, WithColor(0x4d4717), WithGroundColor(0x051301))
	assert.Equal(t, uint32(0x4d4717), l.Color().Hex())
	assert.Equal(t, uint32(0x051301), l.GroundColor().Hex())
}

func TestLightSetters(t *testing.T) {
	l := NewLight(LightTypeAmbient)
	l.SetIntensity(-0.1)
	l.SetEnabled(false)
	l.SetPosition(1, 2, 3)
	assert.Equal(t, float32(-0.1), l.Intensity())
	assert.False(t, l.Enabled())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Position())
}

func TestShadowConfigMerge(t *testing.T) {
	got := ShadowConfig{MapSize: 2048, Bias: -0.001, Near: 0.001, Far: 200}.Merge(DefaultShadowConfig())
	assert.Equal(t, 2048, got.MapSize)
	assert.Equal(t, float32(-0.001), got.Bias)
	assert.Equal(t, float32(0.001), got.Near)
	assert.Equal(t, float32(200), got.Far)
	assert.Equal(t, -DefaultShadowHalfExtent, got.Left)
	assert.Equal(t, DefaultShadowHalfExtent, got.Top)
}
