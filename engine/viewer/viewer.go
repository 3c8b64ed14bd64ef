package viewer

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/preset"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// DefaultCommandBuffer is the capacity of the command queue when WithCommandBuffer is not used.
const DefaultCommandBuffer = 256

// ModelLoader starts background model loads. loader.Loader satisfies it.
type ModelLoader interface {
	LoadAsync(ctx context.Context, path string, opts ...model.ModelBuilderOption) (<-chan loader.Progress, <-chan loader.Result)
}

// Status is a snapshot of the viewer's user-visible state.
type Status struct {
	Day          bool
	AmbientLevel float32
	IndoorLevel  float32
	Loading      bool
	Progress     float32
	LastError    error
}

// Viewer drives one monument scene: it turns window input into commands,
// applies them on the tick goroutine and keeps camera, lights and model in sync.
type Viewer interface {
	// Scene returns the scene the viewer populates.
	Scene() scene.Scene

	// Camera returns the scene camera.
	Camera() camera.Camera

	// Orbit returns the orbit controller that owns the camera pose.
	Orbit() camera.OrbitController

	// Preset returns the preset the viewer was built from.
	Preset() *preset.Preset

	// Bind routes the window's input callbacks into the command queue.
	// The resize callback is left to the engine.
	//
	// Parameters:
	//   - w: the window to take input from
	Bind(w window.Window)

	// Start queues the initial model load. Loads are cancelled when ctx is done
	// or Stop is called. Call it once, from the goroutine that will call Stop.
	//
	// Parameters:
	//   - ctx: the lifetime of background loads
	Start(ctx context.Context)

	// Submit queues a command for the next Tick. Safe to call from any goroutine.
	// Blocks while the queue is full unless the viewer has been stopped.
	//
	// Parameters:
	//   - cmd: the command to queue
	Submit(cmd Command)

	// Tick applies every queued command, then advances the free-look controller,
	// the orbit controller and the camera, in that order.
	// Must only be called from the tick goroutine.
	Tick()

	// Status returns a snapshot of lighting and loading state. Safe to call from any goroutine.
	Status() Status

	// Stop cancels in-flight loads and releases blocked submitters.
	Stop()
}

type viewer struct {
	preset *preset.Preset
	loader ModelLoader

	scene    scene.Scene
	cam      camera.Camera
	orbit    camera.OrbitController
	freeLook camera.FreeLookController
	bindings camera.KeyBindings

	commands chan Command
	done     chan struct{}
	stopOnce sync.Once

	ctx        context.Context
	cancel     context.CancelFunc
	loadCancel context.CancelFunc
	generation uint64

	// Tick goroutine state.
	day          bool
	ambientLevel float32
	indoorLevel  float32
	color        *common.Color
	heldKeys     map[uint32]bool
	dragButton   window.MouseButton
	dragging     bool
	lastX, lastY float32
	loggedStep   int

	ambient     light.Light
	hemisphere  light.Light
	point       light.Light
	directional light.Light

	// Builder-only settings.
	convention       camera.Convention
	clearOnFocusLoss bool
	aspect           float32
	bufferSize       int
	rng              *rand.Rand

	statusMu sync.RWMutex
	status   Status
}

var _ Viewer = &viewer{}

// NewViewer builds the scene, camera and initial day lighting for a preset.
// No model is present until Start has been called and the load completes.
//
// Parameters:
//   - p: the validated scene preset
//   - ld: the loader used for model loads
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the newly created viewer
func NewViewer(p *preset.Preset, ld ModelLoader, options ...ViewerBuilderOption) Viewer {
	if p == nil || ld == nil {
		panic("viewer: preset and loader are required")
	}
	v := &viewer{
		preset:           p,
		loader:           ld,
		bindings:         camera.DefaultKeyBindings(),
		done:             make(chan struct{}),
		day:              true,
		ambientLevel:     p.Lighting.Ambient.Level.Initial,
		indoorLevel:      p.Lighting.Point.Level.Initial,
		heldKeys:         make(map[uint32]bool),
		convention:       camera.ConventionReference,
		clearOnFocusLoss: true,
		aspect:           1,
		bufferSize:       DefaultCommandBuffer,
	}
	for _, option := range options {
		option(v)
	}
	v.commands = make(chan Command, v.bufferSize)
	v.ctx, v.cancel = context.WithCancel(context.Background())

	pc := p.Camera
	orbitOpts := []camera.OrbitOption{
		camera.WithPosition(pc.Position[0], pc.Position[1], pc.Position[2]),
		camera.WithTarget(pc.Target[0], pc.Target[1], pc.Target[2]),
		camera.WithDamping(p.Orbit.DampingFactor > 0, p.Orbit.DampingFactor),
		camera.WithPan(p.Orbit.Pan),
	}
	// Zero means unlimited for both.
	if p.Orbit.MaxDistance > 0 {
		orbitOpts = append(orbitOpts, camera.WithDistanceBounds(p.Orbit.MinDistance, p.Orbit.MaxDistance))
	}
	if p.Orbit.MaxPolarAngle > 0 {
		orbitOpts = append(orbitOpts, camera.WithMaxPolarAngle(p.Orbit.MaxPolarAngle))
	}
	v.orbit = camera.NewOrbitController(orbitOpts...)
	v.orbit.Update()

	v.cam = camera.NewCamera(
		camera.WithFov(pc.Fov),
		camera.WithAspect(v.aspect),
		camera.WithClipPlanes(pc.Near, pc.Far),
		camera.WithController(v.orbit),
	)

	v.freeLook = camera.NewFreeLookController(
		camera.WithSpeed(p.Movement.Speed),
		camera.WithConvention(v.convention),
		camera.WithClearOnFocusLoss(v.clearOnFocusLoss),
	)

	v.ambient = v.newAmbient(p.Lighting.Ambient.AmbientIntensity(v.ambientLevel, true))
	v.directional = v.newDirectional(p.Lighting.Directional.Intensity)
	v.point = v.newPoint()
	lights := []light.Light{v.ambient, v.directional, v.point}
	if h := p.Lighting.Hemisphere; h != nil {
		v.hemisphere = v.newHemisphere(h.Intensity)
		lights = append(lights, v.hemisphere)
	}

	v.scene = scene.NewScene(p.Name, v.cam,
		scene.WithLights(lights...),
		scene.WithEnvironment(v.environment()),
	)

	v.status = Status{Day: true, AmbientLevel: v.ambientLevel, IndoorLevel: v.indoorLevel}
	return v
}

func (v *viewer) Scene() scene.Scene {
	return v.scene
}

func (v *viewer) Camera() camera.Camera {
	return v.cam
}

func (v *viewer) Orbit() camera.OrbitController {
	return v.orbit
}

func (v *viewer) Preset() *preset.Preset {
	return v.preset
}

func (v *viewer) Bind(w window.Window) {
	w.SetKeyDownCallback(func(keyCode uint32) {
		v.Submit(KeyCommand{Code: keyCode, Pressed: true})
	})
	w.SetKeyUpCallback(func(keyCode uint32) {
		v.Submit(KeyCommand{Code: keyCode, Pressed: false})
	})
	w.SetFocusCallback(func(focused bool) {
		v.Submit(FocusCommand{Focused: focused})
	})
	w.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y float32) {
		v.Submit(MouseButtonCommand{Button: button, Pressed: pressed, X: x, Y: y})
	})
	w.SetMouseMoveCallback(func(x, y float32) {
		v.Submit(MouseMoveCommand{X: x, Y: y})
	})
	w.SetScrollCallback(func(delta float32) {
		v.Submit(ScrollCommand{Delta: delta})
	})
}

func (v *viewer) Start(ctx context.Context) {
	v.cancel()
	v.ctx, v.cancel = context.WithCancel(ctx)
	v.Submit(reloadCommand{})
}

func (v *viewer) Submit(cmd Command) {
	select {
	case v.commands <- cmd:
	case <-v.done:
	}
}

func (v *viewer) Stop() {
	v.stopOnce.Do(func() {
		close(v.done)
		v.cancel()
	})
}

func (v *viewer) Tick() {
drain:
	for {
		select {
		case cmd := <-v.commands:
			v.handle(cmd)
		default:
			break drain
		}
	}

	v.freeLook.Tick(v.orbit)
	v.orbit.Update()
	v.cam.Update()
}

func (v *viewer) Status() Status {
	v.statusMu.RLock()
	defer v.statusMu.RUnlock()
	return v.status
}

// handle applies a single command. Runs on the tick goroutine.
func (v *viewer) handle(cmd Command) {
	switch cmd := cmd.(type) {
	case KeyCommand:
		v.handleKey(cmd)
	case FocusCommand:
		if !cmd.Focused {
			v.freeLook.Handle(camera.FocusLostCommand{})
			clear(v.heldKeys)
			v.dragging = false
		}
	case MouseButtonCommand:
		v.handleMouseButton(cmd)
	case MouseMoveCommand:
		v.handleMouseMove(cmd)
	case ScrollCommand:
		v.orbit.Zoom(cmd.Delta)
	case ToggleDayNightCommand:
		v.toggleDayNight()
	case SetAmbientLevelCommand:
		v.setAmbientLevel(cmd.Level)
	case SetIndoorLevelCommand:
		v.setIndoorLevel(cmd.Level)
	case RandomizeColorCommand:
		c := common.RandomColor(v.rng)
		v.color = &c
		v.reload()
	case ResetColorCommand:
		v.color = nil
		v.reload()
	case PresetViewCommand:
		v.applyView(cmd.Name)
	case reloadCommand:
		v.reload()
	case loadProgressCommand:
		v.handleProgress(cmd)
	case loadResultCommand:
		v.handleResult(cmd)
	}
}

func (v *viewer) handleKey(cmd KeyCommand) {
	if move, ok := v.bindings.Command(cmd.Code, cmd.Pressed); ok {
		v.freeLook.Handle(move)
		return
	}

	wasHeld := v.heldKeys[cmd.Code]
	if !cmd.Pressed {
		delete(v.heldKeys, cmd.Code)
		return
	}
	v.heldKeys[cmd.Code] = true
	if wasHeld {
		// Auto-repeat.
		return
	}

	lighting := v.preset.Lighting
	switch cmd.Code {
	case common.KeyI:
		v.applyView(preset.ViewInterior)
	case common.KeyO:
		v.applyView(preset.ViewExterior)
	case common.KeyN:
		v.toggleDayNight()
	case common.KeyC:
		v.handle(RandomizeColorCommand{})
	case common.KeyR:
		v.handle(ResetColorCommand{})
	case common.KeyLeftBracket:
		v.setAmbientLevel(v.ambientLevel - lighting.Ambient.Level.Step)
	case common.KeyRightBracket:
		v.setAmbientLevel(v.ambientLevel + lighting.Ambient.Level.Step)
	case common.KeyMinus:
		v.setIndoorLevel(v.indoorLevel - lighting.Point.Level.Step)
	case common.KeyEqual:
		v.setIndoorLevel(v.indoorLevel + lighting.Point.Level.Step)
	}
}

func (v *viewer) handleMouseButton(cmd MouseButtonCommand) {
	if !cmd.Pressed {
		if v.dragging && cmd.Button == v.dragButton {
			v.dragging = false
		}
		return
	}
	if v.dragging || cmd.Button == window.MouseButtonMiddle {
		return
	}
	v.dragging = true
	v.dragButton = cmd.Button
	v.lastX, v.lastY = cmd.X, cmd.Y
}

func (v *viewer) handleMouseMove(cmd MouseMoveCommand) {
	dx, dy := cmd.X-v.lastX, cmd.Y-v.lastY
	v.lastX, v.lastY = cmd.X, cmd.Y
	if !v.dragging {
		return
	}
	switch v.dragButton {
	case window.MouseButtonLeft:
		v.orbit.Rotate(dx, dy)
	case window.MouseButtonRight:
		v.orbit.Pan(dx, dy)
	}
}

func (v *viewer) applyView(name string) {
	view, ok := v.preset.View(name)
	if !ok {
		log.Printf("[Viewer] unknown preset view %q", name)
		return
	}
	camera.ApplyPresetView(v.orbit, view)
}

func (v *viewer) toggleDayNight() {
	v.day = !v.day
	v.scene.SetEnvironment(v.environment())

	v.ambient = v.swapLight(v.ambient, v.newAmbient(v.preset.Lighting.Ambient.ToggleIntensity(v.day)))
	if toggle := v.preset.Lighting.Directional.ToggleIntensity; toggle != nil {
		v.directional = v.swapLight(v.directional, v.newDirectional(*toggle))
	}

	v.updateStatus(func(s *Status) { s.Day = v.day })
	v.reload()
}

func (v *viewer) setAmbientLevel(level float32) {
	amb := v.preset.Lighting.Ambient
	v.ambientLevel = amb.Level.Clamp(level)
	v.ambient = v.swapLight(v.ambient, v.newAmbient(amb.AmbientIntensity(v.ambientLevel, v.day)))
	if v.hemisphere != nil {
		v.hemisphere = v.swapLight(v.hemisphere, v.newHemisphere(v.ambientLevel))
	}
	v.updateStatus(func(s *Status) { s.AmbientLevel = v.ambientLevel })
}

func (v *viewer) setIndoorLevel(level float32) {
	v.indoorLevel = v.preset.Lighting.Point.Level.Clamp(level)
	v.point = v.swapLight(v.point, v.newPoint())
	v.updateStatus(func(s *Status) { s.IndoorLevel = v.indoorLevel })
}

// swapLight removes old from the scene and adds replacement in its place.
func (v *viewer) swapLight(old, replacement light.Light) light.Light {
	v.scene.ReplaceLight(old, replacement)
	return replacement
}

func (v *viewer) newAmbient(intensity float32) light.Light {
	return light.NewLight(light.LightTypeAmbient,
		light.WithColor(v.preset.Lighting.Ambient.Color),
		light.WithIntensity(intensity),
	)
}

func (v *viewer) newHemisphere(intensity float32) light.Light {
	h := v.preset.Lighting.Hemisphere
	return light.NewLight(light.LightTypeHemisphere,
		light.WithColor(h.SkyColor),
		light.WithGroundColor(h.GroundColor),
		light.WithIntensity(intensity),
	)
}

func (v *viewer) newDirectional(intensity float32) light.Light {
	d := v.preset.Lighting.Directional
	return light.NewLight(light.LightTypeDirectional,
		light.WithColor(d.Color),
		light.WithIntensity(intensity),
		light.WithPosition(d.Position[0], d.Position[1], d.Position[2]),
		light.WithShadow(d.Shadow),
	)
}

func (v *viewer) newPoint() light.Light {
	pt := v.preset.Lighting.Point
	opts := []light.LightBuilderOption{
		light.WithColor(pt.Color),
		light.WithIntensity(pt.BaseIntensity * v.indoorLevel),
		light.WithAttenuation(pt.Distance, pt.Decay),
		light.WithPosition(pt.Position[0], pt.Position[1], pt.Position[2]),
	}
	if pt.Shadows {
		opts = append(opts, light.WithShadow(light.DefaultShadowConfig()))
	}
	return light.NewLight(light.LightTypePoint, opts...)
}

func (v *viewer) environment() scene.Environment {
	bg, clearColor := v.preset.Environment.Background(v.day)
	return scene.Environment{Background: bg, ClearColor: clearColor}
}

// reload starts a fresh load of the preset model with the current shadow and
// color settings. A load already in flight is cancelled and its result dropped.
func (v *viewer) reload() {
	if v.loadCancel != nil {
		v.loadCancel()
	}
	ctx, cancel := context.WithCancel(v.ctx)
	v.loadCancel = cancel
	v.generation++
	generation := v.generation
	v.loggedStep = 0

	opts := []model.ModelBuilderOption{
		model.WithShadows(v.day),
		model.WithColor(v.color),
	}
	if po := v.preset.Model.PolygonOffset; po != nil {
		opts = append(opts, model.WithPolygonOffset(po[0], po[1]))
	}
	if v.preset.Model.ForceOpaque {
		opts = append(opts, model.WithForceOpaque())
	}

	v.updateStatus(func(s *Status) {
		s.Loading = true
		s.Progress = 0
	})

	progress, result := v.loader.LoadAsync(ctx, v.preset.Model.Path, opts...)
	go func() {
		for p := range progress {
			select {
			case v.commands <- loadProgressCommand{generation: generation, progress: p}:
			default:
			}
		}
		if r, ok := <-result; ok {
			v.Submit(loadResultCommand{generation: generation, result: r})
		}
	}()
}

func (v *viewer) handleProgress(cmd loadProgressCommand) {
	if cmd.generation != v.generation {
		return
	}
	fraction := cmd.progress.Fraction()
	if step := int(fraction * 4); step > v.loggedStep {
		v.loggedStep = step
		log.Printf("[Viewer] loading %s: %.0f%%", cmd.progress.Path, fraction*100)
	}
	v.updateStatus(func(s *Status) { s.Progress = fraction })
}

func (v *viewer) handleResult(cmd loadResultCommand) {
	if cmd.generation != v.generation {
		return
	}
	if cmd.result.Err != nil {
		log.Printf("[Viewer] keeping previous model, load of %s failed: %v", cmd.result.Path, cmd.result.Err)
		v.updateStatus(func(s *Status) {
			s.Loading = false
			s.LastError = cmd.result.Err
		})
		return
	}

	m := cmd.result.Model
	m.Recenter(v.preset.Model.RecenterTarget, v.preset.Model.RecenterTwice)
	v.scene.SetModel(m)
	v.updateStatus(func(s *Status) {
		s.Loading = false
		s.Progress = 1
		s.LastError = nil
	})
}

func (v *viewer) updateStatus(fn func(s *Status)) {
	v.statusMu.Lock()
	defer v.statusMu.Unlock()
	fn(&v.status)
}
