package common

import "math/rand/v2"

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ColorFromHex converts a 0xRRGGBB value into a Color.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// Hex packs the color back into a 0xRRGGBB value, clamping each channel.
func (c Color) Hex() uint32 {
	r := uint32(Clamp(c.R, 0, 1)*255 + 0.5)
	g := uint32(Clamp(c.G, 0, 1)*255 + 0.5)
	b := uint32(Clamp(c.B, 0, 1)*255 + 0.5)
	return r<<16 | g<<8 | b
}

// RGBA returns the color as an RGBA array with the given alpha.
func (c Color) RGBA(alpha float32) [4]float32 {
	return [4]float32{c.R, c.G, c.B, alpha}
}

// RandomColor returns a color with each channel drawn uniformly from [0, 1).
// A nil source falls back to the global generator.
//
// Parameters:
//   - src: the random source to draw from, or nil
//
// Returns:
//   - Color: the random color
func RandomColor(src *rand.Rand) Color {
	if src == nil {
		return Color{R: rand.Float32(), G: rand.Float32(), B: rand.Float32()}
	}
	return Color{R: src.Float32(), G: src.Float32(), B: src.Float32()}
}
