package viewer

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/preset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLoader completes every load immediately from an in-memory import.
type fakeLoader struct {
	mu       sync.Mutex
	imported *model.ImportedModel
	err      error
	paths    []string
}

func (f *fakeLoader) LoadAsync(_ context.Context, path string, opts ...model.ModelBuilderOption) (<-chan loader.Progress, <-chan loader.Result) {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	err := f.err
	f.mu.Unlock()

	progress := make(chan loader.Progress, 2)
	result := make(chan loader.Result, 1)
	progress <- loader.Progress{Path: path, Loaded: 50, Total: 100}
	progress <- loader.Progress{Path: path, Loaded: 100, Total: 100}
	close(progress)
	if err != nil {
		result <- loader.Result{Path: path, Err: err}
	} else {
		result <- loader.Result{Path: path, Model: model.NewModel(f.imported, opts...)}
	}
	close(result)
	return progress, result
}

func (f *fakeLoader) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func newFakeLoader() *fakeLoader {
	box := model.Box3{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{2, 4, 6}}
	return &fakeLoader{
		imported: &model.ImportedModel{
			Name: "house",
			Meshes: []model.ImportedMesh{
				{Name: "roof", Positions: []mgl32.Vec3{{0, 0, 0}, {2, 4, 6}}, Indices: []uint32{0, 1, 0}, MaterialIndex: 0, Bounds: box},
			},
			Materials: []model.ImportedMaterial{
				{Name: "thatch", BaseColor: common.Color{R: 0.5, G: 0.4, B: 0.3}, Opacity: 0.5, Transparent: true},
			},
		},
	}
}

func newTestViewer(t *testing.T, name string, options ...ViewerBuilderOption) (Viewer, *fakeLoader) {
	t.Helper()
	p, err := preset.Load(name)
	require.NoError(t, err)
	ld := newFakeLoader()
	v := NewViewer(p, ld, options...)
	t.Cleanup(v.Stop)
	return v, ld
}

// tickUntilNewModel ticks until the scene holds a model other than prev.
func tickUntilNewModel(t *testing.T, v Viewer, prev model.Model) model.Model {
	t.Helper()
	var current model.Model
	require.Eventually(t, func() bool {
		v.Tick()
		current = v.Scene().Model()
		return current != nil && current != prev
	}, 2*time.Second, time.Millisecond)
	return current
}

func lightOf(t *testing.T, s scene.Scene, lt light.LightType) light.Light {
	t.Helper()
	for _, l := range s.Lights() {
		if l.Type() == lt {
			return l
		}
	}
	t.Fatalf("no %s light in scene", lt)
	return nil
}

func orbitPosition(v Viewer) mgl32.Vec3 {
	x, y, z := v.Orbit().Position()
	return mgl32.Vec3{x, y, z}
}

func orbitTarget(v Viewer) mgl32.Vec3 {
	x, y, z := v.Orbit().Target()
	return mgl32.Vec3{x, y, z}
}

func TestNewViewerToba(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	s := v.Scene()

	assert.Equal(t, "toba", s.Name())
	assert.Nil(t, s.Model())
	assert.Len(t, s.Lights(), 4)
	assert.Equal(t, float32(2), lightOf(t, s, light.LightTypeAmbient).Intensity())
	assert.Equal(t, float32(1), lightOf(t, s, light.LightTypeHemisphere).Intensity())
	assert.Equal(t, float32(2500000), lightOf(t, s, light.LightTypePoint).Intensity())
	assert.True(t, lightOf(t, s, light.LightTypeDirectional).CastsShadows())
	assert.Equal(t, "/lilienstein_4k.hdr", s.Environment().Background)

	status := v.Status()
	assert.True(t, status.Day)
	assert.Equal(t, float32(4), status.AmbientLevel)
	assert.Equal(t, float32(5), status.IndoorLevel)

	// The exterior starting pose lies beyond the orbit limit.
	assert.InDelta(t, 3500, v.Orbit().Distance(), 0.5)
}

func TestNewViewerMandailing(t *testing.T) {
	v, _ := newTestViewer(t, "mandailing")
	s := v.Scene()

	assert.Len(t, s.Lights(), 3)
	assert.Equal(t, float32(0.5), lightOf(t, s, light.LightTypeAmbient).Intensity())
	assert.Equal(t, float32(10), lightOf(t, s, light.LightTypePoint).Intensity())
	assert.False(t, lightOf(t, s, light.LightTypePoint).CastsShadows())
	assert.Equal(t, 2048, lightOf(t, s, light.LightTypeDirectional).Shadow().MapSize)
	assert.InDelta(t, 40, v.Orbit().Distance(), 0.01)
}

func TestNewViewerRequiresDependencies(t *testing.T) {
	p, err := preset.Load("toba")
	require.NoError(t, err)
	assert.Panics(t, func() { NewViewer(nil, newFakeLoader()) })
	assert.Panics(t, func() { NewViewer(p, nil) })
}

func TestStartLoadsAndRecenters(t *testing.T) {
	v, ld := newTestViewer(t, "toba")
	v.Start(context.Background())

	m := tickUntilNewModel(t, v, nil)
	assert.Equal(t, []string{"toba.glb"}, ld.paths)
	center := m.WorldBounds().Center()
	assert.InDeltaSlice(t, []float32{1350, 850, 100}, center[:], 1e-3)
	for _, mesh := range m.Meshes() {
		assert.True(t, mesh.CastShadow)
		assert.True(t, mesh.ReceiveShadow)
	}
	for _, mat := range m.Materials() {
		assert.Equal(t, float32(1), mat.Opacity)
		assert.False(t, mat.Transparent)
		assert.True(t, mat.DoubleSided)
	}

	status := v.Status()
	assert.False(t, status.Loading)
	assert.Equal(t, float32(1), status.Progress)
	assert.NoError(t, status.LastError)
}

func TestStartRecentersTwiceForMandailing(t *testing.T) {
	v, _ := newTestViewer(t, "mandailing")
	v.Start(context.Background())

	m := tickUntilNewModel(t, v, nil)
	// Center (1, 2, 3) is subtracted a second time after moving it onto the target.
	center := m.WorldBounds().Center()
	assert.InDeltaSlice(t, []float32{-2, 25, -33}, center[:], 1e-4)
	for _, mat := range m.Materials() {
		assert.True(t, mat.PolygonOffset)
		assert.Equal(t, float32(1), mat.PolygonOffsetFactor)
		assert.Equal(t, float32(1), mat.PolygonOffsetUnits)
		// Only the polygon offset is applied; the imported flags are kept.
		assert.Equal(t, float32(0.5), mat.Opacity)
		assert.True(t, mat.Transparent)
		assert.False(t, mat.DoubleSided)
	}
}

func TestToggleDayNight(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	v.Start(context.Background())
	day := tickUntilNewModel(t, v, nil)

	v.Submit(ToggleDayNightCommand{})
	night := tickUntilNewModel(t, v, day)

	s := v.Scene()
	assert.False(t, v.Status().Day)
	assert.Equal(t, "/nightback.hdr", s.Environment().Background)
	assert.Equal(t, float32(-0.1), lightOf(t, s, light.LightTypeAmbient).Intensity())
	assert.Equal(t, float32(0), lightOf(t, s, light.LightTypeDirectional).Intensity())
	assert.Len(t, s.Lights(), 4)
	for _, mesh := range night.Meshes() {
		assert.False(t, mesh.CastShadow)
	}

	v.Submit(ToggleDayNightCommand{})
	back := tickUntilNewModel(t, v, night)
	assert.True(t, v.Status().Day)
	assert.Equal(t, float32(0.5), lightOf(t, s, light.LightTypeAmbient).Intensity())
	assert.Equal(t, float32(0), lightOf(t, s, light.LightTypeDirectional).Intensity())
	for _, mesh := range back.Meshes() {
		assert.True(t, mesh.CastShadow)
	}
}

func TestToggleKeepsMandailingSun(t *testing.T) {
	v, _ := newTestViewer(t, "mandailing")
	v.Submit(ToggleDayNightCommand{})
	v.Tick()
	assert.Equal(t, float32(1), lightOf(t, v.Scene(), light.LightTypeDirectional).Intensity())
}

func TestAmbientLevel(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	s := v.Scene()
	before := lightOf(t, s, light.LightTypeAmbient)

	v.Submit(SetAmbientLevelCommand{Level: 6})
	v.Tick()
	after := lightOf(t, s, light.LightTypeAmbient)
	assert.NotSame(t, before, after)
	assert.Equal(t, float32(3), after.Intensity())
	assert.Equal(t, float32(6), lightOf(t, s, light.LightTypeHemisphere).Intensity())

	v.Submit(ToggleDayNightCommand{})
	v.Submit(SetAmbientLevelCommand{Level: 5})
	v.Tick()
	assert.InDelta(t, 0.5, lightOf(t, s, light.LightTypeAmbient).Intensity(), 1e-6)

	v.Submit(SetAmbientLevelCommand{Level: 20})
	v.Tick()
	assert.Equal(t, float32(10), v.Status().AmbientLevel)
}

func TestIndoorLevel(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	v.Submit(SetIndoorLevelCommand{Level: 2})
	v.Tick()

	point := lightOf(t, v.Scene(), light.LightTypePoint)
	assert.Equal(t, float32(1000000), point.Intensity())
	assert.Equal(t, float32(1000), point.Range())
	assert.True(t, point.CastsShadows())

	v.Submit(SetIndoorLevelCommand{Level: -3})
	v.Tick()
	assert.Equal(t, float32(0), v.Status().IndoorLevel)
}

func TestSliderKeys(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	press := func(code uint32) {
		v.Submit(KeyCommand{Code: code, Pressed: true})
		v.Submit(KeyCommand{Code: code, Pressed: false})
	}
	press(common.KeyRightBracket)
	press(common.KeyMinus)
	press(common.KeyMinus)
	v.Tick()

	status := v.Status()
	assert.Equal(t, float32(5), status.AmbientLevel)
	assert.Equal(t, float32(3), status.IndoorLevel)
}

func TestKeyRepeatTriggersOnce(t *testing.T) {
	v, _ := newTestViewer(t, "mandailing")
	v.Submit(KeyCommand{Code: common.KeyN, Pressed: true})
	v.Submit(KeyCommand{Code: common.KeyN, Pressed: true})
	v.Tick()
	assert.False(t, v.Status().Day)

	v.Submit(KeyCommand{Code: common.KeyN, Pressed: false})
	v.Submit(KeyCommand{Code: common.KeyN, Pressed: true})
	v.Tick()
	assert.True(t, v.Status().Day)
}

func TestMovementKeys(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	start := v.Orbit().Distance()

	// Backward moves along the view direction under the default convention.
	v.Submit(KeyCommand{Code: common.KeyS, Pressed: true})
	v.Tick()
	assert.InDelta(t, start-50, v.Orbit().Distance(), 0.5)

	v.Submit(KeyCommand{Code: common.KeyS, Pressed: false})
	v.Tick()
	assert.InDelta(t, start-50, v.Orbit().Distance(), 0.5)
}

func TestFocusLossReleasesKeys(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	start := v.Orbit().Distance()

	v.Submit(KeyCommand{Code: common.KeyS, Pressed: true})
	v.Submit(FocusCommand{Focused: false})
	v.Tick()
	assert.InDelta(t, start, v.Orbit().Distance(), 0.5)
}

func TestFocusLossKeepsKeysWhenDisabled(t *testing.T) {
	v, _ := newTestViewer(t, "toba", WithClearOnFocusLoss(false))
	start := v.Orbit().Distance()

	v.Submit(KeyCommand{Code: common.KeyS, Pressed: true})
	v.Submit(FocusCommand{Focused: false})
	v.Tick()
	assert.InDelta(t, start-50, v.Orbit().Distance(), 0.5)
}

func TestPresetViews(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	interior, ok := v.Preset().View(preset.ViewInterior)
	require.True(t, ok)

	v.Submit(PresetViewCommand{Name: preset.ViewInterior})
	v.Tick()
	first := orbitPosition(v)
	assert.InDeltaSlice(t, interior.Position[:], first[:], 1e-2)
	assert.Equal(t, mgl32.Vec3{}, orbitTarget(v))

	v.Submit(MouseButtonCommand{Button: window.MouseButtonLeft, Pressed: true})
	v.Submit(MouseMoveCommand{X: 200, Y: 40})
	v.Tick()
	v.Submit(KeyCommand{Code: common.KeyI, Pressed: true})
	v.Tick()
	second := orbitPosition(v)
	assert.InDeltaSlice(t, first[:], second[:], 1e-2)

	v.Submit(PresetViewCommand{Name: "attic"})
	v.Tick()
	third := orbitPosition(v)
	assert.InDeltaSlice(t, first[:], third[:], 1e-2)
}

func TestMouseInput(t *testing.T) {
	v, _ := newTestViewer(t, "toba")
	start := orbitPosition(v)

	v.Submit(MouseMoveCommand{X: 10, Y: 10})
	v.Tick()
	idle := orbitPosition(v)
	assert.InDeltaSlice(t, start[:], idle[:], 0.1, "moves without a button do nothing")

	v.Submit(MouseButtonCommand{Button: window.MouseButtonLeft, Pressed: true, X: 10, Y: 10})
	v.Submit(MouseMoveCommand{X: 110, Y: 10})
	v.Submit(MouseButtonCommand{Button: window.MouseButtonLeft, Pressed: false})
	v.Tick()
	assert.NotEqual(t, start, orbitPosition(v))

	v.Submit(MouseButtonCommand{Button: window.MouseButtonRight, Pressed: true, X: 0, Y: 0})
	v.Submit(MouseMoveCommand{X: 30, Y: 30})
	v.Tick()
	assert.NotEqual(t, mgl32.Vec3{}, orbitTarget(v))

	before := v.Orbit().Distance()
	v.Submit(ScrollCommand{Delta: 1})
	v.Tick()
	assert.Less(t, v.Orbit().Distance(), before)
}

func TestRandomAndResetColor(t *testing.T) {
	v, _ := newTestViewer(t, "toba", WithRandomSource(rand.New(rand.NewPCG(1, 2))))
	v.Start(context.Background())
	original := tickUntilNewModel(t, v, nil)

	v.Submit(RandomizeColorCommand{})
	colored := tickUntilNewModel(t, v, original)
	mats := colored.Materials()
	require.NotEmpty(t, mats)
	for _, mat := range mats {
		assert.Equal(t, mats[0].Color, mat.Color)
		assert.NotEqual(t, mat.BaseColor, mat.Color)
	}
	for _, mesh := range colored.Meshes() {
		assert.True(t, mesh.CastShadow)
	}

	v.Submit(ResetColorCommand{})
	reset := tickUntilNewModel(t, v, colored)
	for _, mat := range reset.Materials() {
		assert.Equal(t, mat.BaseColor, mat.Color)
	}
}

func TestLoadFailureKeepsModel(t *testing.T) {
	v, ld := newTestViewer(t, "toba")
	v.Start(context.Background())
	m := tickUntilNewModel(t, v, nil)

	errBroken := errors.New("broken file")
	ld.setErr(errBroken)
	v.Submit(ResetColorCommand{})
	require.Eventually(t, func() bool {
		v.Tick()
		return v.Status().LastError != nil
	}, 2*time.Second, time.Millisecond)

	assert.ErrorIs(t, v.Status().LastError, errBroken)
	assert.False(t, v.Status().Loading)
	assert.Same(t, m, v.Scene().Model())
}

func TestSubmitAfterStopDoesNotBlock(t *testing.T) {
	v, _ := newTestViewer(t, "toba", WithCommandBuffer(1))
	v.Stop()

	done := make(chan struct{})
	go func() {
		for range 4 {
			v.Submit(ScrollCommand{Delta: 1})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked after Stop")
	}
}
