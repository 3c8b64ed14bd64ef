package light

// DefaultShadowMapSize is the default width and height in texels of a shadow map.
const DefaultShadowMapSize = 512

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// of a directional light's shadow camera.
const DefaultShadowHalfExtent float32 = 5.0

// DefaultShadowNear is the default near plane of the shadow camera.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane of the shadow camera.
const DefaultShadowFar float32 = 500.0

// ShadowConfig describes a light's shadow camera and depth map.
// The orthographic bounds apply to directional lights; point lights use
// only the clip planes, map size and bias.
type ShadowConfig struct {
	Near    float32 `toml:"near"`
	Far     float32 `toml:"far"`
	Left    float32 `toml:"left"`
	Right   float32 `toml:"right"`
	Top     float32 `toml:"top"`
	Bottom  float32 `toml:"bottom"`
	MapSize int     `toml:"map_size"`
	Bias    float32 `toml:"bias"`
}

// DefaultShadowConfig returns the shadow settings used when a light does not specify any.
//
// Returns:
//   - ShadowConfig: a symmetric orthographic shadow camera with no bias
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		Near:    DefaultShadowNear,
		Far:     DefaultShadowFar,
		Left:    -DefaultShadowHalfExtent,
		Right:   DefaultShadowHalfExtent,
		Top:     DefaultShadowHalfExtent,
		Bottom:  -DefaultShadowHalfExtent,
		MapSize: DefaultShadowMapSize,
	}
}

// Merge fills zero-valued fields of c from fallback and returns the result.
//
// Parameters:
//   - fallback: the settings to take unset fields from
//
// Returns:
//   - ShadowConfig: the merged configuration
func (c ShadowConfig) Merge(fallback ShadowConfig) ShadowConfig {
	if c.Near == 0 {
		c.Near = fallback.Near
	}
	if c.Far == 0 {
		c.Far = fallback.Far
	}
	if c.Left == 0 && c.Right == 0 {
		c.Left, c.Right = fallback.Left, fallback.Right
	}
	if c.Top == 0 && c.Bottom == 0 {
		c.Top, c.Bottom = fallback.Top, fallback.Bottom
	}
	if c.MapSize == 0 {
		c.MapSize = fallback.MapSize
	}
	if c.Bias == 0 {
		c.Bias = fallback.Bias
	}
	return c
}
