package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// GPULightingSource is the canonical WGSL definition of the Lighting struct.
// Matches GPULighting layout exactly (112 bytes, std430 aligned).
//
//go:embed assets/lighting.wgsl
var GPULightingSource string

// GPULighting is the GPU-aligned summary of a scene's lights for the forward mesh shader.
// Colors are premultiplied by intensity.
// Size: 112 bytes (seven vec4<f32>, std430 aligned).
type GPULighting struct {
	Ambient       [4]float32 // offset  0: summed ambient irradiance (rgb)
	SkyColor      [4]float32 // offset 16: summed hemisphere sky color (rgb)
	GroundColor   [4]float32 // offset 32: summed hemisphere ground color (rgb)
	SunDirection  [4]float32 // offset 48: travel direction (xyz), 1 in w when a sun is present
	SunColor      [4]float32 // offset 64: directional light color (rgb)
	PointPosition [4]float32 // offset 80: point light position (xyz) and range (w, 0 = unlimited)
	PointColor    [4]float32 // offset 96: point light color (rgb) and decay exponent (w)
}

// NewGPULighting folds lights into a GPULighting. Disabled lights are skipped.
// Ambient and hemisphere lights accumulate; only the first directional and the
// first point light are kept.
//
// Parameters:
//   - lights: the scene's lights
//
// Returns:
//   - GPULighting: the uniform ready for Marshal
func NewGPULighting(lights []Light) GPULighting {
	var g GPULighting
	haveSun, havePoint := false, false
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		intensity := l.Intensity()
		switch l.Type() {
		case LightTypeAmbient:
			addScaled(&g.Ambient, l.Color(), intensity)
		case LightTypeHemisphere:
			addScaled(&g.SkyColor, l.Color(), intensity)
			addScaled(&g.GroundColor, l.GroundColor(), intensity)
		case LightTypeDirectional:
			if haveSun {
				continue
			}
			haveSun = true
			d := l.Direction()
			g.SunDirection = [4]float32{d[0], d[1], d[2], 1}
			addScaled(&g.SunColor, l.Color(), intensity)
		case LightTypePoint:
			if havePoint {
				continue
			}
			havePoint = true
			p := l.Position()
			g.PointPosition = [4]float32{p[0], p[1], p[2], l.Range()}
			addScaled(&g.PointColor, l.Color(), intensity)
			g.PointColor[3] = l.Decay()
		}
	}
	return g
}

func addScaled(dst *[4]float32, c common.Color, s float32) {
	dst[0] += c.R * s
	dst[1] += c.G * s
	dst[2] += c.B * s
}

// Size returns the size of the GPULighting struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPULighting) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULighting struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload.
func (g *GPULighting) Marshal() []byte {
	buf := make([]byte, g.Size())
	fields := [][4]float32{g.Ambient, g.SkyColor, g.GroundColor, g.SunDirection, g.SunColor, g.PointPosition, g.PointColor}
	for i, f := range fields {
		for j := range 4 {
			binary.LittleEndian.PutUint32(buf[i*16+j*4:], math.Float32bits(f[j]))
		}
	}
	return buf
}
