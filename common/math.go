package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// NormalizeEpsilon is the length below which a vector is treated as degenerate
// and normalizes to the zero vector instead of producing NaN/Inf components.
const NormalizeEpsilon float32 = 1e-8

// WorldUp is the fixed world-space up axis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// SafeNormalize returns v scaled to unit length. Vectors shorter than
// NormalizeEpsilon (including the zero vector) yield the zero vector.
//
// Parameters:
//   - v: the vector to normalize
//
// Returns:
//   - mgl32.Vec3: the unit vector, or the zero vector when v is degenerate
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < NormalizeEpsilon || math32.IsNaN(l) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// Perspective creates a perspective projection matrix.
// Depth maps to the WebGPU clip space range [0, 1], unlike mgl32.Perspective
// which targets the OpenGL [-1, 1] convention.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / math32.Tan(fovY/2)
	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	return out
}
