package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh/mesh"
)

// PipelineKind selects one of the two render pipelines.
type PipelineKind int

const (
	// PipelineBasic draws untextured, opaque geometry.
	PipelineBasic PipelineKind = iota
	// PipelineTextured draws glyph quads sampling the atlas with
	// premultiplied alpha blending.
	PipelineTextured
)

func (k PipelineKind) String() string {
	switch k {
	case PipelineBasic:
		return "basic"
	case PipelineTextured:
		return "textured"
	default:
		return fmt.Sprintf("PipelineKind(%d)", int(k))
	}
}

// UniformSize is the byte size of the uniform buffer: one mat4x4<f32>.
const UniformSize = 64

// PipelineState is the fixed-function state of a pipeline kind.
type PipelineState struct {
	Kind      PipelineKind
	Buffers   []gputypes.VertexBufferLayout
	Primitive gputypes.PrimitiveState
	Target    gputypes.ColorTargetState
	Bindings  []gputypes.BindGroupLayoutEntry
}

// NewPipelineState describes the pipeline of the given kind rendering into
// a target of the given format.
func NewPipelineState(kind PipelineKind, format gputypes.TextureFormat) PipelineState {
	s := PipelineState{
		Kind:    kind,
		Buffers: mesh.VertexLayout(),
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Target: gputypes.ColorTargetState{
			Format:    format,
			WriteMask: gputypes.ColorWriteMaskAll,
		},
		Bindings: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	}

	if kind == PipelineTextured {
		premulBlend := gputypes.BlendStatePremultiplied()
		s.Target.Blend = &premulBlend
		s.Bindings = append(s.Bindings,
			gputypes.BindGroupLayoutEntry{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	return s
}

// Pipeline owns the GPU objects of one pipeline kind.
type Pipeline struct {
	device hal.Device
	state  PipelineState

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler
}

// NewPipeline compiles the shader for kind and creates its render pipeline.
func NewPipeline(device hal.Device, kind PipelineKind, format gputypes.TextureFormat) (*Pipeline, error) {
	p := &Pipeline{device: device, state: NewPipelineState(kind, format)}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

// State returns the pipeline's fixed-function state.
func (p *Pipeline) State() PipelineState { return p.state }

// BindGroupLayout returns the layout of bind group 0.
func (p *Pipeline) BindGroupLayout() hal.BindGroupLayout { return p.bindLayout }

// Sampler returns the atlas sampler, or nil for the basic pipeline.
func (p *Pipeline) Sampler() hal.Sampler { return p.sampler }

func (p *Pipeline) create() error {
	kind := p.state.Kind

	shader, err := NewShaderModule(p.device, kind)
	if err != nil {
		return err
	}
	p.shader = shader

	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   kind.String() + "_bind_layout",
		Entries: p.state.Bindings,
	})
	if err != nil {
		return fmt.Errorf("gpu: create %s bind group layout: %w", kind, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            kind.String() + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create %s pipeline layout: %w", kind, err)
	}
	p.pipeLayout = pipeLayout

	if kind == PipelineTextured {
		// Glyph texels map 1:1 to pixels; nearest filtering keeps them sharp.
		sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
			Label:        "glyph_atlas_sampler",
			AddressModeU: gputypes.AddressModeClampToEdge,
			AddressModeV: gputypes.AddressModeClampToEdge,
			AddressModeW: gputypes.AddressModeClampToEdge,
			MagFilter:    gputypes.FilterModeNearest,
			MinFilter:    gputypes.FilterModeNearest,
			MipmapFilter: gputypes.FilterModeNearest,
		})
		if err != nil {
			return fmt.Errorf("gpu: create glyph atlas sampler: %w", err)
		}
		p.sampler = sampler
	}

	target := p.state.Target
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  kind.String() + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: VertexEntryPoint,
			Buffers:    p.state.Buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: FragmentEntryPoint,
			Targets:    []gputypes.ColorTargetState{target},
		},
		Primitive: p.state.Primitive,
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create %s pipeline: %w", kind, err)
	}
	p.pipeline = pipeline

	return nil
}

// RecordDraw records a non-indexed draw of vertexCount vertices.
func (p *Pipeline) RecordDraw(rp hal.RenderPassEncoder, bindGroup hal.BindGroup, vertBuf hal.Buffer, vertexCount uint32) {
	if vertexCount == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.Draw(vertexCount, 1, 0, 0)
}

// Destroy releases the pipeline's GPU objects in reverse creation order.
// Safe to call more than once.
func (p *Pipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
