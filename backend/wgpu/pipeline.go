package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/tri"
	"github.com/gogpu/wgpu/hal"
)

// Formats of the offscreen attachments.
const (
	colorFormat = gputypes.TextureFormatRGBA8Unorm
	depthFormat = gputypes.TextureFormatDepth24Plus
)

// compileSPIRV compiles WGSL source to a SPIR-V word slice.
func compileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, err
	}

	// SPIR-V is little-endian 32-bit words.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return code, nil
}

// vertexLayout returns the single interleaved vertex buffer layout for l.
func vertexLayout(l tri.Layout) []gputypes.VertexBufferLayout {
	attrs := l.Attributes()
	out := make([]gputypes.VertexAttribute, len(attrs))
	for i, a := range attrs {
		out[i] = gputypes.VertexAttribute{
			Format:         vertexFormat(a.Components),
			Offset:         uint64(a.Offset), //nolint:gosec // small layout offsets
			ShaderLocation: a.Location,
		}
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uint64(l.Stride()), //nolint:gosec // stride is positive
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  out,
		},
	}
}

func vertexFormat(components int) gputypes.VertexFormat {
	switch components {
	case 2:
		return gputypes.VertexFormatFloat32x2
	case 4:
		return gputypes.VertexFormatFloat32x4
	default:
		return gputypes.VertexFormatFloat32x3
	}
}

// program owns the GPU objects of one tri.ProgramDesc.
type program struct {
	dev *Device

	label       string
	textured    bool
	uniforms    tri.UniformLayout
	shader      hal.ShaderModule
	bindLayout  hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout
	pipeline    hal.RenderPipeline
	uniformSize uint64
	released    bool
}

// CreateProgram compiles the WGSL source and builds the render pipeline.
// Compilation failures wrap tri.ErrShaderCompile; pipeline failures
// wrap tri.ErrProgramLink.
func (d *Device) CreateProgram(desc tri.ProgramDesc) (tri.Program, error) {
	if d.closed {
		return nil, errClosed
	}
	if desc.Shaders.WGSL == "" {
		return nil, fmt.Errorf("%w: %s shader source is empty", tri.ErrShaderCompile, desc.Label)
	}

	p := &program{
		dev:         d,
		label:       desc.Label,
		textured:    desc.Textured,
		uniforms:    desc.Uniforms,
		uniformSize: uint64(max(desc.Uniforms.Size, 16)), //nolint:gosec // layout sizes are small
	}
	if err := p.create(desc); err != nil {
		p.destroy()
		return nil, err
	}
	tri.Logger().Debug("wgpu: program created", "label", desc.Label)
	return p, nil
}

func (p *program) create(desc tri.ProgramDesc) error {
	device := p.dev.device

	code, err := compileSPIRV(desc.Shaders.WGSL)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", tri.ErrShaderCompile, desc.Label, err)
	}
	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label + "_shader",
		Source: hal.ShaderSource{WGSL: desc.Shaders.WGSL, SPIRV: code},
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", tri.ErrShaderCompile, desc.Label, err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: uniform block (vertex+fragment)
	//   Binding 1: texture_2d (fragment, textured only)
	//   Binding 2: sampler (fragment, textured only)
	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
	}
	if desc.Textured {
		entries = append(entries,
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
	bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("%w: %s bind group layout: %w", tri.ErrProgramLink, desc.Label, err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label + "_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("%w: %s pipeline layout: %w", tri.ErrProgramLink, desc.Label, err)
	}
	p.pipeLayout = pipeLayout

	// The render pass always carries a depth attachment, so every
	// pipeline declares one; depth-less programs never test or write it.
	depthCompare := gputypes.CompareFunctionAlways
	if desc.DepthTest {
		depthCompare = gputypes.CompareFunctionLess
	}
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(desc.Layout),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    colorFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: desc.DepthTest,
			DepthCompare:      depthCompare,
			StencilFront:      keep,
			StencilBack:       keep,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %s pipeline: %w", tri.ErrProgramLink, desc.Label, err)
	}
	p.pipeline = pipeline
	return nil
}

// Release destroys the pipeline objects in reverse creation order.
func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.destroy()
}

func (p *program) destroy() {
	device := p.dev.device
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
