package camera

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePose struct {
	position mgl32.Vec3
	forward  mgl32.Vec3
}

func (p *fakePose) Position() (x, y, z float32) { return p.position[0], p.position[1], p.position[2] }
func (p *fakePose) SetPosition(x, y, z float32) { p.position = mgl32.Vec3{x, y, z} }
func (p *fakePose) Forward() (x, y, z float32)  { return p.forward[0], p.forward[1], p.forward[2] }

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-4)
}

func TestStepSingleAxis(t *testing.T) {
	lookingDownZ := mgl32.Vec3{0, 0, -1}

	tests := []struct {
		name  string
		state MovementState
		want  mgl32.Vec3
	}{
		{"forward moves against view direction", MovementState{Forward: true}, mgl32.Vec3{0, 0, 0.5}},
		{"backward moves along view direction", MovementState{Backward: true}, mgl32.Vec3{0, 0, -0.5}},
		{"left strafes to -x", MovementState{Left: true}, mgl32.Vec3{-0.5, 0, 0}},
		{"right strafes to +x", MovementState{Right: true}, mgl32.Vec3{0.5, 0, 0}},
		{"up rises", MovementState{Up: true}, mgl32.Vec3{0, 0.5, 0}},
		{"down sinks", MovementState{Down: true}, mgl32.Vec3{0, -0.5, 0}},
		{"nothing held", MovementState{}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Step(tt.state, 0.5, mgl32.Vec3{}, lookingDownZ, ConventionReference)
			assertVec(t, tt.want, got)
		})
	}
}

func TestStepOpposingKeysCancel(t *testing.T) {
	f := mgl32.Vec3{0.6, 0, -0.8}
	start := mgl32.Vec3{1, 2, 3}

	got := Step(MovementState{Forward: true, Backward: true, Left: true, Right: true, Up: true, Down: true}, 50, start, f, ConventionReference)
	assertVec(t, start, got)
}

func TestStepIsLinear(t *testing.T) {
	f := common.SafeNormalize(mgl32.Vec3{0.3, -0.4, -0.87})
	start := mgl32.Vec3{10, -4, 7}
	speed := float32(50)

	combined := MovementState{Forward: true, Right: true, Up: true}
	got := Step(combined, speed, start, f, ConventionReference).Sub(start)

	var sum mgl32.Vec3
	for _, d := range []Direction{DirectionForward, DirectionRight, DirectionUp} {
		var single MovementState
		single.Set(d, true)
		sum = sum.Add(Step(single, speed, start, f, ConventionReference).Sub(start))
	}
	assert.InDeltaSlice(t, sum[:], got[:], 1e-3)
}

func TestStepSideVectorIsNormalized(t *testing.T) {
	// Looking partly downward shortens cross(F, up); the strafe must still be speed long.
	f := common.SafeNormalize(mgl32.Vec3{0, -0.9, -0.1})
	got := Step(MovementState{Right: true}, 2, mgl32.Vec3{}, f, ConventionReference)
	assert.InDelta(t, 2, got.Len(), 1e-4)
}

func TestStepDegenerateForward(t *testing.T) {
	for _, f := range []mgl32.Vec3{{0, 1, 0}, {0, -1, 0}, {}} {
		got := Step(MovementState{Left: true, Right: false}, 0.5, mgl32.Vec3{1, 1, 1}, f, ConventionReference)
		for _, c := range got {
			require.False(t, math32.IsNaN(c))
		}
		assertVec(t, mgl32.Vec3{1, 1, 1}, got)
	}
}

func TestStepNaturalConvention(t *testing.T) {
	got := Step(MovementState{Forward: true}, 0.5, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, ConventionNatural)
	assertVec(t, mgl32.Vec3{0, 0, -0.5}, got)

	got = Step(MovementState{Right: true}, 0.5, mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, ConventionNatural)
	assertVec(t, mgl32.Vec3{0.5, 0, 0}, got)
}

func TestStepNaNSpeedPropagates(t *testing.T) {
	got := Step(MovementState{Forward: true}, math32.NaN(), mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, ConventionReference)
	assert.True(t, math32.IsNaN(got[2]))
}

func TestFreeLookControllerDefaults(t *testing.T) {
	c := NewFreeLookController()
	assert.Equal(t, MovementState{}, c.State())
	assert.Equal(t, float32(1), c.Speed())
	assert.Equal(t, ConventionReference, c.Convention())
}

func TestFreeLookControllerHandle(t *testing.T) {
	c := NewFreeLookController(WithSpeed(0.5))

	c.Handle(MoveCommand{Direction: DirectionForward, Held: true})
	c.Handle(MoveCommand{Direction: DirectionForward, Held: true})
	assert.Equal(t, MovementState{Forward: true}, c.State())

	c.Handle(MoveCommand{Direction: DirectionUp, Held: true})
	c.Handle(MoveCommand{Direction: DirectionForward, Held: false})
	assert.Equal(t, MovementState{Up: true}, c.State())

	// Releasing a key that was never pressed leaves the state alone.
	c.Handle(MoveCommand{Direction: DirectionLeft, Held: false})
	assert.Equal(t, MovementState{Up: true}, c.State())
}

func TestFreeLookControllerFocusLost(t *testing.T) {
	c := NewFreeLookController()
	c.Handle(MoveCommand{Direction: DirectionForward, Held: true})
	c.Handle(MoveCommand{Direction: DirectionDown, Held: true})
	c.Handle(FocusLostCommand{})
	assert.False(t, c.State().Any())

	stuck := NewFreeLookController(WithClearOnFocusLoss(false))
	stuck.Handle(MoveCommand{Direction: DirectionForward, Held: true})
	stuck.Handle(FocusLostCommand{})
	assert.Equal(t, MovementState{Forward: true}, stuck.State())
}

func TestFreeLookControllerTick(t *testing.T) {
	c := NewFreeLookController(WithSpeed(0.5))
	pose := &fakePose{forward: mgl32.Vec3{0, 0, -1}}

	c.Tick(pose)
	assertVec(t, mgl32.Vec3{}, pose.position)

	c.Handle(MoveCommand{Direction: DirectionForward, Held: true})
	for range 4 {
		c.Tick(pose)
	}
	assertVec(t, mgl32.Vec3{0, 0, 2}, pose.position)
}

func TestFreeLookControllersAreIndependent(t *testing.T) {
	a := NewFreeLookController()
	b := NewFreeLookController()
	a.Handle(MoveCommand{Direction: DirectionRight, Held: true})
	assert.True(t, a.State().Right)
	assert.False(t, b.State().Any())
}

func TestKeyBindings(t *testing.T) {
	kb := DefaultKeyBindings()

	tests := []struct {
		key  uint32
		want Direction
	}{
		{common.KeyW, DirectionForward},
		{common.KeyS, DirectionBackward},
		{common.KeyA, DirectionLeft},
		{common.KeyD, DirectionRight},
		{common.KeySpace, DirectionUp},
		{common.KeyLeftShift, DirectionDown},
	}
	for _, tt := range tests {
		cmd, ok := kb.Command(tt.key, true)
		require.True(t, ok)
		assert.Equal(t, MoveCommand{Direction: tt.want, Held: true}, cmd)
	}

	_, ok := kb.Command(common.KeyRightShift, true)
	assert.False(t, ok)
}

func TestMovementStateSetHeld(t *testing.T) {
	var m MovementState
	for d := DirectionForward; d <= DirectionDown; d++ {
		m.Set(d, true)
		assert.True(t, m.Held(d), d.String())
	}
	m.Clear()
	assert.False(t, m.Any())
	assert.Equal(t, "unknown", Direction(42).String())
}

func TestMovementStateSetLeavesOthersUnchanged(t *testing.T) {
	starts := []MovementState{
		{},
		{Forward: true, Left: true, Up: true},
		{Backward: true, Right: true, Down: true},
		{Forward: true, Backward: true, Left: true, Right: true, Up: true, Down: true},
	}
	for _, start := range starts {
		for d := DirectionForward; d <= DirectionDown; d++ {
			for _, held := range []bool{true, false} {
				t.Run(fmt.Sprintf("%+v/%s/%t", start, d, held), func(t *testing.T) {
					m := start
					m.Set(d, held)

					assert.Equal(t, held, m.Held(d))
					for other := DirectionForward; other <= DirectionDown; other++ {
						if other == d {
							continue
						}
						assert.Equal(t, start.Held(other), m.Held(other), other.String())
					}
				})
			}
		}
	}
}
