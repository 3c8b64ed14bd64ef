package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// meshPipelineKey is the double-sided opaque variant, the pipeline NewPipeline defaults describe.
var meshPipelineKey = material.PipelineKeyFor(true, false, false, 0, 0)

// bindingSlot is the group and binding a registered struct is declared at in the mesh shader.
type bindingSlot struct {
	group, binding int
}

// meshPass holds the GPU state shared by every mesh draw. The frame bind group carries
// camera and lighting; pipelines are keyed by material variant.
type meshPass struct {
	vertexShader, fragmentShader shader.Shader

	layouts  map[int]wgpu.BindGroupLayoutDescriptor
	slots    map[shader.AnnotationArg]bindingSlot
	groupLen int

	pipelines     map[string]pipeline.Pipeline
	frameProvider bind_group_provider.BindGroupProvider
	frameReady    bool
	resources     *modelResources
}

// modelResources are the GPU buffers of one model instance. They are rebuilt when the
// drawn model changes identity.
type modelResources struct {
	model         model.Model
	modelProvider bind_group_provider.BindGroupProvider
	meshes        []bind_group_provider.BindGroupProvider
	materials     []material.Material
}

func newMeshPass() *meshPass {
	vs := shader.NewShader("mesh.vs", shader.ShaderTypeVertex, shader.MeshSource)
	fs := shader.NewShader("mesh.fs", shader.ShaderTypeFragment, shader.MeshSource)
	base := pipeline.NewPipeline(meshPipelineKey, pipeline.WithVertexShader(vs), pipeline.WithFragmentShader(fs))

	mp := &meshPass{
		vertexShader:   vs,
		fragmentShader: fs,
		layouts:        base.MergedBindGroupLayouts(),
		slots:          make(map[shader.AnnotationArg]bindingSlot),
		pipelines:      map[string]pipeline.Pipeline{meshPipelineKey: base},
		frameProvider:  bind_group_provider.NewBindGroupProvider("Frame"),
	}
	for _, arg := range []shader.AnnotationArg{
		shader.AnnotationArgCamera,
		shader.AnnotationArgLighting,
		shader.AnnotationArgModelData,
		shader.AnnotationArgMaterialParams,
	} {
		g, b, ok := vs.Binding(arg)
		if !ok {
			panic(fmt.Sprintf("renderer: mesh shader declares no %s binding", arg))
		}
		mp.slots[arg] = bindingSlot{g, b}
		mp.groupLen = max(mp.groupLen, g+1)
	}
	return mp
}

// pipelineFor returns the registered pipeline for mat's key, creating it on first use.
func (mp *meshPass) pipelineFor(backend RendererBackend, mat material.Material) (pipeline.Pipeline, error) {
	p, ok := mp.pipelines[mat.PipelineKey()]
	if !ok {
		p = pipeline.NewPipeline(mat.PipelineKey(), pipelineOptions(mp.vertexShader, mp.fragmentShader, mat)...)
		mp.pipelines[mat.PipelineKey()] = p
	}
	if p.Pipeline() == nil {
		if err := backend.RegisterRenderPipeline(p); err != nil {
			return nil, fmt.Errorf("register pipeline %q: %w", p.PipelineKey(), err)
		}
	}
	return p, nil
}

// pipelineOptions maps a material's surface properties onto pipeline state.
// Transparent surfaces blend over what is already drawn and leave depth untouched.
func pipelineOptions(vs, fs shader.Shader, mat material.Material) []pipeline.PipelineBuilderOption {
	opts := []pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	}
	if !mat.DoubleSided() {
		opts = append(opts, pipeline.WithCullMode(wgpu.CullModeBack))
	}
	if mat.Transparent() {
		opts = append(opts, pipeline.WithBlendEnabled(true), pipeline.WithDepthWriteEnabled(false))
	}
	if factor, units, ok := mat.PolygonOffset(); ok {
		opts = append(opts, pipeline.WithDepthBias(int32(units), factor))
	}
	return opts
}

func (mp *meshPass) slotGroup(arg shader.AnnotationArg) int {
	return mp.slots[arg].group
}

// write builds a buffer write for the registered struct arg held by provider.
func (mp *meshPass) write(provider bind_group_provider.BindGroupProvider, arg shader.AnnotationArg, data []byte) bind_group_provider.BufferWrite {
	return bind_group_provider.BufferWrite{
		Provider: provider,
		Binding:  mp.slots[arg].binding,
		Data:     data,
	}
}

func (mp *meshPass) initFrame(backend RendererBackend) error {
	if mp.frameReady {
		return nil
	}
	if err := backend.InitBindGroup(mp.frameProvider, mp.layouts[mp.slotGroup(shader.AnnotationArgCamera)]); err != nil {
		return err
	}
	mp.frameReady = true
	return nil
}

// resourcesFor returns the GPU resources of m, releasing those of any previously drawn model.
func (mp *meshPass) resourcesFor(backend RendererBackend, m model.Model) (*modelResources, error) {
	if mp.resources != nil && mp.resources.model == m {
		return mp.resources, nil
	}
	mp.releaseResources()

	res := &modelResources{
		model:         m,
		modelProvider: bind_group_provider.NewBindGroupProvider(m.Name() + " Model"),
	}
	mp.resources = res
	if err := backend.InitBindGroup(res.modelProvider, mp.layouts[mp.slotGroup(shader.AnnotationArgModelData)]); err != nil {
		return nil, err
	}

	meshes := m.Meshes()
	res.meshes = make([]bind_group_provider.BindGroupProvider, len(meshes))
	for i, mesh := range meshes {
		provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s Mesh %d", m.Name(), i))
		res.meshes[i] = provider
		indexData, indexCount := mesh.IndexData()
		if indexCount == 0 {
			continue
		}
		if err := backend.InitMeshBuffers(provider, mesh.VertexData(), indexData, indexCount); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// syncMaterials brings the cached materials in line with the model's current ones. A
// material whose pipeline key changed is rebuilt around its existing bind group.
func (mp *meshPass) syncMaterials(backend RendererBackend, res *modelResources, mats []model.Material) error {
	if len(res.materials) != len(mats) {
		for _, cached := range res.materials {
			if cached != nil && cached.BindGroupProvider() != nil {
				cached.BindGroupProvider().Release()
			}
		}
		res.materials = make([]material.Material, len(mats))
	}

	for i, mm := range mats {
		key := material.PipelineKeyFor(mm.DoubleSided, mm.Transparent, mm.PolygonOffset, mm.PolygonOffsetFactor, mm.PolygonOffsetUnits)
		rgba := mm.Color.RGBA(mm.Opacity)

		cached := res.materials[i]
		if cached != nil && cached.PipelineKey() == key {
			cached.SetBaseColor(rgba)
			continue
		}

		opts := []material.MaterialBuilderOption{
			material.WithName(mm.Name),
			material.WithBaseColor(rgba),
			material.WithDoubleSided(mm.DoubleSided),
			material.WithTransparent(mm.Transparent),
		}
		if mm.PolygonOffset {
			opts = append(opts, material.WithPolygonOffset(mm.PolygonOffsetFactor, mm.PolygonOffsetUnits))
		}
		next := material.NewMaterial(opts...)

		if cached != nil {
			next.SetBindGroupProvider(cached.BindGroupProvider())
		} else {
			provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Material %d %s", i, mm.Name))
			if err := backend.InitBindGroup(provider, mp.layouts[mp.slotGroup(shader.AnnotationArgMaterialParams)]); err != nil {
				return err
			}
			next.SetBindGroupProvider(provider)
		}
		res.materials[i] = next
	}
	return nil
}

// draw writes the frame uniforms and records one draw per mesh of m: opaque materials
// first, then transparent ones so they blend over the finished opaque image.
func (mp *meshPass) draw(backend RendererBackend, cam camera.Camera, lights []light.Light, m model.Model) error {
	if err := mp.initFrame(backend); err != nil {
		return err
	}

	cameraData := camera.NewGPUCameraUniform(cam)
	lighting := light.NewGPULighting(lights)
	writes := []bind_group_provider.BufferWrite{
		mp.write(mp.frameProvider, shader.AnnotationArgCamera, cameraData.Marshal()),
		mp.write(mp.frameProvider, shader.AnnotationArgLighting, lighting.Marshal()),
	}
	if m == nil {
		backend.WriteBuffers(writes)
		return nil
	}

	res, err := mp.resourcesFor(backend, m)
	if err != nil {
		return err
	}
	if err := mp.syncMaterials(backend, res, m.Materials()); err != nil {
		return err
	}

	modelData := model.NewGPUModelData(m.ModelMatrix())
	writes = append(writes, mp.write(res.modelProvider, shader.AnnotationArgModelData, modelData.Marshal()))
	for _, mat := range res.materials {
		params := mat.GPUParams()
		writes = append(writes, mp.write(mat.BindGroupProvider(), shader.AnnotationArgMaterialParams, params.Marshal()))
	}
	backend.WriteBuffers(writes)

	bindGroups := make([]bind_group_provider.BindGroupProvider, mp.groupLen)
	bindGroups[mp.slotGroup(shader.AnnotationArgCamera)] = mp.frameProvider
	bindGroups[mp.slotGroup(shader.AnnotationArgModelData)] = res.modelProvider
	materialGroup := mp.slotGroup(shader.AnnotationArgMaterialParams)

	meshes := m.Meshes()
	for _, transparent := range []bool{false, true} {
		for i, mesh := range meshes {
			if mesh.MaterialIndex < 0 || mesh.MaterialIndex >= len(res.materials) || i >= len(res.meshes) {
				continue
			}
			mat := res.materials[mesh.MaterialIndex]
			if mat.Transparent() != transparent || res.meshes[i].IndexCount() == 0 {
				continue
			}
			p, err := mp.pipelineFor(backend, mat)
			if err != nil {
				return err
			}
			bindGroups[materialGroup] = mat.BindGroupProvider()
			if err := backend.DrawCall(p, res.meshes[i], 1, bindGroups); err != nil {
				return err
			}
		}
	}
	return nil
}

func (mp *meshPass) releaseResources() {
	res := mp.resources
	if res == nil {
		return
	}
	res.modelProvider.Release()
	for _, provider := range res.meshes {
		provider.Release()
	}
	for _, mat := range res.materials {
		if mat != nil && mat.BindGroupProvider() != nil {
			mat.BindGroupProvider().Release()
		}
	}
	mp.resources = nil
}

func (mp *meshPass) release() {
	mp.releaseResources()
	mp.frameProvider.Release()
	for _, p := range mp.pipelines {
		p.Release()
	}
}
