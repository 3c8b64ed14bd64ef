package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a distant source like the sun or moon.
	// It shines from its position toward the origin with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint emits in all directions from a position and attenuates
	// with distance up to its range according to its decay exponent.
	LightTypePoint

	// LightTypeAmbient lights every surface uniformly.
	LightTypeAmbient

	// LightTypeHemisphere blends a sky color from above with a ground color
	// from below.
	LightTypeHemisphere
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeAmbient:
		return "ambient"
	case LightTypeHemisphere:
		return "hemisphere"
	}
	return "unknown"
}

type lightImpl struct {
	mu *sync.RWMutex

	lightType    LightType
	position     mgl32.Vec3
	color        common.Color
	groundColor  common.Color
	intensity    float32
	lightRange   float32
	decay        float32
	enabled      bool
	castsShadows bool
	shadow       ShadowConfig
}

// Light is a light source in the scene.
//
// Type-specific properties return zero values when not applicable: ground
// color is only meaningful for hemisphere lights, range and decay for point
// lights, and the shadow configuration for shadow-casting lights.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and hemisphere lights.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Direction returns the unit direction the light travels. Directional lights
	// shine from their position toward the origin. Zero for other types.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized direction
	Direction() mgl32.Vec3

	// Color returns the light color. For hemisphere lights this is the sky color.
	Color() common.Color

	// GroundColor returns the hemisphere light's ground color.
	GroundColor() common.Color

	// Intensity returns the scalar intensity multiplier. Negative values are
	// allowed and darken the scene.
	Intensity() float32

	// Range returns the distance at which a point light's contribution reaches zero.
	// Zero means unlimited.
	Range() float32

	// Decay returns the point light's distance attenuation exponent.
	Decay() float32

	// Enabled returns whether this light contributes to rendering.
	Enabled() bool

	// CastsShadows returns whether this light renders a shadow map.
	CastsShadows() bool

	// Shadow returns the shadow camera and map configuration.
	//
	// Returns:
	//   - ShadowConfig: the shadow settings
	Shadow() ShadowConfig

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a white, enabled light of the given type with intensity 1,
// unlimited range, a physically based decay of 2 and the default shadow settings.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.RWMutex{},
		lightType: lightType,
		color:     common.Color{R: 1, G: 1, B: 1},
		intensity: 1,
		decay:     2,
		enabled:   true,
		shadow:    DefaultShadowConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	if l.lightType != LightTypeDirectional {
		return mgl32.Vec3{}
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return common.SafeNormalize(l.position.Mul(-1))
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) GroundColor() common.Color {
	return l.groundColor
}

func (l *lightImpl) Intensity() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Shadow() ShadowConfig {
	return l.shadow
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
