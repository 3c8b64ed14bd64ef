package preset

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

//go:embed presets/*.toml
var embedded embed.FS

// ErrUnknownPreset is returned when no embedded preset has the requested name.
var ErrUnknownPreset = errors.New("preset: unknown preset")

// ErrInvalidPreset is returned when a preset document fails to decode or validate.
var ErrInvalidPreset = errors.New("preset: invalid preset")

// View names recognized by the viewer's preset view commands.
const (
	ViewInterior = "interior"
	ViewExterior = "exterior"
)

// Preset is the full description of one monument scene.
type Preset struct {
	Name        string          `toml:"name"`
	Title       string          `toml:"title"`
	Model       ModelSection    `toml:"model"`
	Movement    MovementSection `toml:"movement"`
	Camera      CameraSection   `toml:"camera"`
	Orbit       OrbitSection    `toml:"orbit"`
	Environment EnvSection      `toml:"environment"`
	Lighting    LightingSection `toml:"lighting"`
	Views       map[string]View `toml:"views"`
}

// ModelSection names the asset and how it is placed once loaded.
type ModelSection struct {
	Path           string      `toml:"path"`
	RecenterTarget mgl32.Vec3  `toml:"recenter_target"`
	RecenterTwice  bool        `toml:"recenter_twice"`
	PolygonOffset  *[2]float32 `toml:"polygon_offset"`
	ForceOpaque    bool        `toml:"force_opaque"`
}

// MovementSection holds the free-look speed in world units per tick.
type MovementSection struct {
	Speed float32 `toml:"speed"`
}

// CameraSection holds the perspective projection and the initial pose.
type CameraSection struct {
	Fov      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position mgl32.Vec3 `toml:"position"`
	Target   mgl32.Vec3 `toml:"target"`
}

// OrbitSection configures the orbit controller.
type OrbitSection struct {
	MinDistance   float32 `toml:"min_distance"`
	MaxDistance   float32 `toml:"max_distance"`
	MaxPolarAngle float32 `toml:"max_polar_angle"`
	DampingFactor float32 `toml:"damping_factor"`
	Pan           bool    `toml:"pan"`
}

// EnvSection holds the day and night backgrounds.
type EnvSection struct {
	DayBackground   string `toml:"day_background"`
	NightBackground string `toml:"night_background"`
	DayClearColor   uint32 `toml:"day_clear_color"`
	NightClearColor uint32 `toml:"night_clear_color"`
}

// LightingSection groups every light the scene starts with.
type LightingSection struct {
	Ambient     AmbientLight     `toml:"ambient"`
	Hemisphere  *HemisphereLight `toml:"hemisphere"`
	Point       PointLight       `toml:"point"`
	Directional DirectionalLight `toml:"directional"`
}

// Slider is a stepped value range driven by keyboard input.
type Slider struct {
	Initial float32 `toml:"initial"`
	Min     float32 `toml:"min"`
	Max     float32 `toml:"max"`
	Step    float32 `toml:"step"`
}

// Clamp limits v to the slider's range.
func (s Slider) Clamp(v float32) float32 {
	return common.Clamp(v, s.Min, s.Max)
}

// AmbientLight configures the ambient light and its level slider.
// The initial intensity is Level.Initial scaled by DayScale.
type AmbientLight struct {
	Color                uint32  `toml:"color"`
	DayScale             float32 `toml:"day_scale"`
	NightScale           float32 `toml:"night_scale"`
	DayToggleIntensity   float32 `toml:"day_toggle_intensity"`
	NightToggleIntensity float32 `toml:"night_toggle_intensity"`
	Level                Slider  `toml:"level"`
}

// HemisphereLight configures the optional sky/ground light. Its intensity
// follows the ambient level slider.
type HemisphereLight struct {
	SkyColor    uint32  `toml:"sky_color"`
	GroundColor uint32  `toml:"ground_color"`
	Intensity   float32 `toml:"intensity"`
}

// PointLight configures the indoor light and its level slider.
type PointLight struct {
	Color         uint32     `toml:"color"`
	BaseIntensity float32    `toml:"base_intensity"`
	Distance      float32    `toml:"distance"`
	Decay         float32    `toml:"decay"`
	Position      mgl32.Vec3 `toml:"position"`
	Shadows       bool       `toml:"shadows"`
	Level         Slider     `toml:"level"`
}

// DirectionalLight configures the sun. When ToggleIntensity is set the light
// is replaced by one of that intensity on every day/night toggle.
type DirectionalLight struct {
	Color           uint32             `toml:"color"`
	Intensity       float32            `toml:"intensity"`
	Position        mgl32.Vec3         `toml:"position"`
	ToggleIntensity *float32           `toml:"toggle_intensity"`
	Shadow          light.ShadowConfig `toml:"shadow"`
}

// View is a fixed camera pose.
type View struct {
	Position mgl32.Vec3 `toml:"position"`
	LookAt   mgl32.Vec3 `toml:"look_at"`
}

// Names lists the embedded presets in sorted order.
func Names() []string {
	entries, err := embedded.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Load decodes the embedded preset with the given name.
//
// Parameters:
//   - name: the preset name, e.g. "toba"
//
// Returns:
//   - *Preset: the validated preset
//   - error: ErrUnknownPreset, ErrInvalidPreset or nil
func Load(name string) (*Preset, error) {
	data, err := embedded.ReadFile("presets/" + strings.ToLower(name) + ".toml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return Parse(data)
}

// LoadFile decodes a preset from a TOML file on disk.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - *Preset: the validated preset
//   - error: a read error, ErrInvalidPreset or nil
func LoadFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML preset document. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - *Preset: the validated preset
//   - error: ErrInvalidPreset wrapping the cause, or nil
func Parse(data []byte) (*Preset, error) {
	var p Preset
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	p.Lighting.Directional.Shadow = p.Lighting.Directional.Shadow.Merge(light.DefaultShadowConfig())
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the preset for values the viewer cannot run with.
//
// Returns:
//   - error: ErrInvalidPreset describing the first problem found, or nil
func (p *Preset) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidPreset, fmt.Sprintf(format, args...))
	}
	switch {
	case p.Name == "":
		return invalid("name is required")
	case p.Model.Path == "":
		return invalid("model.path is required")
	case !(p.Movement.Speed > 0):
		return invalid("movement.speed must be positive, got %v", p.Movement.Speed)
	case !(p.Camera.Fov > 0 && p.Camera.Fov < 180):
		return invalid("camera.fov must be in (0, 180), got %v", p.Camera.Fov)
	case !(p.Camera.Near > 0 && p.Camera.Far > p.Camera.Near):
		return invalid("camera clip planes must satisfy 0 < near < far, got %v/%v", p.Camera.Near, p.Camera.Far)
	case p.Orbit.MinDistance < 0 || p.Orbit.MaxDistance < p.Orbit.MinDistance:
		return invalid("orbit distance bounds %v/%v", p.Orbit.MinDistance, p.Orbit.MaxDistance)
	case p.Orbit.DampingFactor < 0 || p.Orbit.DampingFactor > 1:
		return invalid("orbit.damping_factor must be in [0, 1], got %v", p.Orbit.DampingFactor)
	}
	for name, s := range map[string]Slider{"ambient": p.Lighting.Ambient.Level, "point": p.Lighting.Point.Level} {
		if s.Max < s.Min || s.Step <= 0 || s.Initial < s.Min || s.Initial > s.Max {
			return invalid("lighting.%s.level slider %+v", name, s)
		}
	}
	for _, name := range []string{ViewInterior, ViewExterior} {
		if _, ok := p.Views[name]; !ok {
			return invalid("views.%s is required", name)
		}
	}
	return nil
}

// View returns the named preset view as a camera pose.
//
// Parameters:
//   - name: ViewInterior or ViewExterior
//
// Returns:
//   - camera.PresetView: the pose
//   - bool: false when the preset has no view with that name
func (p *Preset) View(name string) (camera.PresetView, bool) {
	v, ok := p.Views[name]
	if !ok {
		return camera.PresetView{}, false
	}
	return camera.PresetView{Name: name, Position: v.Position, LookAt: v.LookAt}, true
}

// AmbientIntensity returns the ambient intensity for a slider level.
func (a AmbientLight) AmbientIntensity(level float32, day bool) float32 {
	if day {
		return level * a.DayScale
	}
	return level * a.NightScale
}

// ToggleIntensity returns the ambient intensity applied right after a day/night switch.
func (a AmbientLight) ToggleIntensity(day bool) float32 {
	if day {
		return a.DayToggleIntensity
	}
	return a.NightToggleIntensity
}

// Background returns the environment for the given time of day.
func (e EnvSection) Background(day bool) (string, common.Color) {
	if day {
		return e.DayBackground, common.ColorFromHex(e.DayClearColor)
	}
	return e.NightBackground, common.ColorFromHex(e.NightClearColor)
}
