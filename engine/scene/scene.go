package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
)

// Environment describes what surrounds the model.
type Environment struct {
	// Background is the path of the equirectangular environment image.
	Background string

	// ClearColor is the color the frame is cleared to behind the model.
	ClearColor common.Color
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name        string
	active      bool
	cam         camera.Camera
	r           renderer.Renderer
	lights      []light.Light
	environment Environment
	model       model.Model
}

// Scene holds everything needed to draw one view: camera, lights, environment
// and the currently displayed model.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene identifier.
	Name() string

	// Active reports whether the scene is rendered.
	Active() bool

	// SetActive enables or disables rendering of the scene.
	SetActive(active bool)

	// Camera returns the scene camera.
	Camera() camera.Camera

	// SetCamera replaces the scene camera.
	SetCamera(cam camera.Camera)

	// Renderer returns the renderer that draws the scene, or nil.
	Renderer() renderer.Renderer

	// SetRenderer assigns the renderer that draws the scene.
	SetRenderer(r renderer.Renderer)

	// AddLight appends a light.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light by identity. Unknown lights are ignored.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// ReplaceLight swaps old for replacement in place, or appends replacement
	// when old is nil or not in the scene.
	//
	// Parameters:
	//   - old: the light to remove
	//   - replacement: the light to add
	ReplaceLight(old, replacement light.Light)

	// Lights returns a snapshot of the scene lights.
	//
	// Returns:
	//   - []light.Light: the lights in insertion order
	Lights() []light.Light

	// Environment returns the current environment.
	Environment() Environment

	// SetEnvironment replaces the environment.
	SetEnvironment(env Environment)

	// Model returns the displayed model, or nil before the first load completes.
	Model() model.Model

	// SetModel displays m and returns the model it replaced.
	//
	// Parameters:
	//   - m: the new model
	//
	// Returns:
	//   - model.Model: the previous model, or nil
	SetModel(m model.Model) model.Model
}

var _ Scene = &scene{}

// NewScene creates a new active Scene with the given camera.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera to view the scene through
//   - options: a variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:     &sync.RWMutex{},
		name:   name,
		active: true,
		cam:    cam,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) SetRenderer(r renderer.Renderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.r = r
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

func (s *scene) ReplaceLight(old, replacement light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old != nil {
		for i, existing := range s.lights {
			if existing == old {
				if replacement == nil {
					s.lights = append(s.lights[:i], s.lights[i+1:]...)
				} else {
					s.lights[i] = replacement
				}
				return
			}
		}
	}
	if replacement != nil {
		s.lights = append(s.lights, replacement)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Environment() Environment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.environment
}

func (s *scene) SetEnvironment(env Environment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.environment = env
}

func (s *scene) Model() model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func (s *scene) SetModel(m model.Model) model.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.model
	s.model = m
	return prev
}
