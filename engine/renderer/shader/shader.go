package shader

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// MeshSource is the forward mesh shader used for every material variant.
//
//go:embed assets/mesh.wgsl
var MeshSource string

// ShaderType identifies the pipeline stage a shader module is compiled for.
type ShaderType int

const (
	ShaderTypeVertex ShaderType = iota
	ShaderTypeFragment
)

type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string

	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	declarations               []Annotation

	module *wgpu.ShaderModuleDescriptor
}

// Shader is a pre-processed WGSL module together with the layouts parsed from it.
type Shader interface {
	// Key returns the unique key used to identify the shader.
	Key() string

	// Source returns the pre-processed WGSL source.
	Source() string

	// ShaderType returns the stage this shader was built for.
	ShaderType() ShaderType

	// EntryPoint returns the entry point function name for this shader's stage.
	EntryPoint() string

	// Module returns the shader module descriptor passed to the GPU device.
	Module() *wgpu.ShaderModuleDescriptor

	// VertexLayouts returns the vertex buffer layouts parsed from the vertex input structs.
	// Always empty for fragment shaders.
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// VertexLayout returns the vertex buffer layouts at the given index.
	//
	// Parameters:
	//   - index: the vertex layout index
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the layouts, or nil if none exist at that index
	VertexLayout(index int) []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors returns every bind group layout descriptor keyed by group index.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptor returns the layout descriptor for the given group.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, zero-valued if the group is absent
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName returns the WGSL variable name declared at the given group and binding.
	//
	// Parameters:
	//   - group: the @group index
	//   - binding: the @binding index
	//
	// Returns:
	//   - string: the variable name, or empty string if nothing is declared there
	BindGroupVarName(group, binding int) string

	// Declarations returns the group annotations expanded by the pre-processor.
	Declarations() []Annotation

	// Binding returns the group and binding holding the given registered struct.
	//
	// Parameters:
	//   - arg: the struct type argument, e.g. AnnotationArgCamera
	//
	// Returns:
	//   - int: the @group index
	//   - int: the @binding index
	//   - bool: false if the shader declares no binding of that type
	Binding(arg AnnotationArg) (int, int, bool)
}

var _ Shader = &shader{}

// NewShader pre-processes and parses a WGSL source for the given stage.
// Panics if the source is empty or contains malformed annotations, since shader
// sources are embedded at build time.
//
// Parameters:
//   - key: the unique shader key
//   - shaderType: the stage to parse the entry point and layouts for
//   - source: the raw WGSL source containing @oxy: annotations
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key string, shaderType ShaderType, source string) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: empty source for shader %q", key))
	}

	s := &shader{
		key:        key,
		shaderType: shaderType,
	}
	s.parse(source)
	return s
}

func (s *shader) parse(source string) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		panic(fmt.Sprintf("shader: failed to pre-process shader source %q: %v", s.key, err))
	}
	s.source = processed
	s.declarations = append([]Annotation(nil), pp.Declarations()...)

	s.module = &wgpu.ShaderModuleDescriptor{
		Label:          s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: processed},
	}
	s.entryPoint = parseEntryPoint(processed, s.shaderType)

	var visibility wgpu.ShaderStage
	switch s.shaderType {
	case ShaderTypeVertex:
		s.vertexLayouts = parseVertexLayouts(processed)
		visibility = wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		s.vertexLayouts = map[int][]wgpu.VertexBufferLayout{}
		visibility = wgpu.ShaderStageFragment
	}
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(processed, visibility)
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) VertexLayout(index int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[index]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if names, ok := s.bindingVarNames[group]; ok {
		return names[binding]
	}
	return ""
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

func (s *shader) Binding(arg AnnotationArg) (int, int, bool) {
	for _, d := range s.declarations {
		if len(d.Args) == 3 && d.Args[2] == arg && d.Group != nil && d.Binding != nil {
			return *d.Group, *d.Binding, true
		}
	}
	return 0, 0, false
}
