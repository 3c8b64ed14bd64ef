package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Nil(t, c.Controller())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}

func TestCameraViewMatrixLooksAtTarget(t *testing.T) {
	oc := NewOrbitController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	c := NewCamera(WithController(oc), WithFov(45), WithClipPlanes(0.1, 20000))

	view := c.ViewMatrix()
	eye := view.Mul4x1(mgl32.Vec4{0, 0, 10, 1})
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	eyeView := eye.Vec3()
	assert.InDeltaSlice(t, []float32{0, 0, 0}, eyeView[:], 1e-5)
	assert.InDelta(t, -10, origin[2], 1e-5)
}

func TestCameraUpdateFollowsController(t *testing.T) {
	oc := NewOrbitController(WithPosition(0, 0, 10))
	c := NewCamera(WithController(oc))
	before := c.ViewMatrix()

	oc.SetPosition(10, 0, 0)
	assert.Equal(t, before, c.ViewMatrix())

	c.Update()
	assert.NotEqual(t, before, c.ViewMatrix())
}

func TestCameraAspectUpdatesProjection(t *testing.T) {
	c := NewCamera()
	c.SetAspect(2)
	p := c.ProjectionMatrix()
	assert.InDelta(t, p[5]/2, p[0], 1e-6)

	identity := p.Mul4(c.InverseProjectionMatrix())
	assert.True(t, identity.ApproxEqualThreshold(mgl32.Ident4(), 1e-4))
}

func TestCameraUpdateWithoutController(t *testing.T) {
	c := NewCamera()
	c.Update()
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}
