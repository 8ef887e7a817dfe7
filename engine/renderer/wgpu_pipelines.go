package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/ui"
	"github.com/cogentcore/webgpu/wgpu"
)

// ensurePipelines creates the bind group layouts, shared resources and render pipelines on the first frame.
func (b *wgpuRendererBackendImpl) ensurePipelines() error {
	if b.litPipeline != nil {
		return nil
	}
	if err := b.createLayouts(); err != nil {
		return err
	}
	if err := b.createSharedResources(); err != nil {
		return err
	}

	litLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Lit Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.globalsLayout, b.objectLayout, b.materialLayout},
	})
	if err != nil {
		return err
	}
	shadowLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Shadow Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.shadowGlobalsLayout, b.objectLayout},
	})
	if err != nil {
		return err
	}

	b.litPipeline, err = b.createPipeline("Lit", litShaderSource, litLayout, wgpu.PrimitiveTopologyTriangleList, false)
	if err != nil {
		return err
	}
	b.linePipeline, err = b.createPipeline("Line", lineShaderSource, litLayout, wgpu.PrimitiveTopologyLineList, false)
	if err != nil {
		return err
	}
	b.shadowPipeline, err = b.createPipeline("Shadow", shadowShaderSource, shadowLayout, wgpu.PrimitiveTopologyTriangleList, true)
	if err != nil {
		return err
	}
	b.overlayPipeline, err = b.createOverlayPipeline()
	if err != nil {
		return err
	}
	return nil
}

func (b *wgpuRendererBackendImpl) createLayouts() error {
	uniformEntry := func(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
		entry := wgpu.BindGroupLayoutEntry{Binding: binding, Visibility: visibility}
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		entry.Buffer.MinBindingSize = size
		return entry
	}
	vertexFragment := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

	shadowMapEntry := wgpu.BindGroupLayoutEntry{Binding: 1, Visibility: wgpu.ShaderStageFragment}
	shadowMapEntry.Texture.SampleType = wgpu.TextureSampleTypeDepth
	shadowMapEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	shadowSamplerEntry := wgpu.BindGroupLayoutEntry{Binding: 2, Visibility: wgpu.ShaderStageFragment}
	shadowSamplerEntry.Sampler.Type = wgpu.SamplerBindingTypeComparison

	colorMapEntry := wgpu.BindGroupLayoutEntry{Binding: 1, Visibility: wgpu.ShaderStageFragment}
	colorMapEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	colorMapEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	colorSamplerEntry := wgpu.BindGroupLayoutEntry{Binding: 2, Visibility: wgpu.ShaderStageFragment}
	colorSamplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering

	var err error
	b.globalsLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Globals Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, vertexFragment, globalsUniformSize), shadowMapEntry, shadowSamplerEntry},
	})
	if err != nil {
		return fmt.Errorf("failed to create globals layout: %w", err)
	}
	b.shadowGlobalsLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Shadow Globals Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, wgpu.ShaderStageVertex, shadowGlobalsUniformSize)},
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow globals layout: %w", err)
	}
	b.objectLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Object Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, vertexFragment, objectUniformSize)},
	})
	if err != nil {
		return fmt.Errorf("failed to create object layout: %w", err)
	}
	b.materialLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Material Layout",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, vertexFragment, materialUniformSize), colorMapEntry, colorSamplerEntry},
	})
	if err != nil {
		return fmt.Errorf("failed to create material layout: %w", err)
	}
	return nil
}

// createSharedResources creates the globals buffer, samplers, the fallback white texture and a 1x1 shadow map
// so the globals bind group is valid even when shadows are off.
func (b *wgpuRendererBackendImpl) createSharedResources() error {
	var err error
	b.globalsBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Globals Uniform",
		Size:  globalsUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}

	b.colorSampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Color Sampler",
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create color sampler: %w", err)
	}

	b.comparisonSampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create comparison sampler: %w", err)
	}

	b.whiteTexture, err = b.uploadTexture("White", &common.RGBAImage{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1})
	if err != nil {
		return err
	}

	if err := b.ensureShadowMap(1, 1); err != nil {
		return err
	}

	b.shadowGlobalsBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Shadow Globals Bind Group",
		Layout: b.shadowGlobalsLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.globalsBuffer, Offset: 0, Size: shadowGlobalsUniformSize},
		},
	})
	return err
}

// createPipeline builds one render pipeline over the shared interleaved vertex layout.
// Depth-only pipelines target the shadow map and have no fragment stage.
func (b *wgpuRendererBackendImpl) createPipeline(label, source string, layout *wgpu.PipelineLayout, topology wgpu.PrimitiveTopology, depthOnly bool) (*wgpu.RenderPipeline, error) {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: label + " Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s shader: %w", label, err)
	}
	defer module.Release()

	attributes := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
	}
	if !depthOnly && topology == wgpu.PrimitiveTopologyTriangleList {
		attributes = append(attributes,
			wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		)
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label:  label + " Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: vertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes:  attributes,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	}

	if depthOnly {
		desc.DepthStencil.Format = shadowDepthFormat
		desc.DepthStencil.DepthBias = 2
		desc.DepthStencil.DepthBiasSlopeScale = 2.0
	} else {
		desc.Fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    *b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		}
	}

	p, err := b.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s pipeline: %w", label, err)
	}
	return p, nil
}

// createOverlayPipeline builds the alpha blended pipeline for UI quads. It shares the material
// layout: a 32 byte uniform, the font atlas and the color sampler.
// The main pass has a depth attachment, so depth is declared but never tested or written.
func (b *wgpuRendererBackendImpl) createOverlayPipeline() (*wgpu.RenderPipeline, error) {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Overlay Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: overlayShaderSource,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile Overlay shader: %w", err)
	}
	defer module.Release()

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Overlay Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.materialLayout},
	})
	if err != nil {
		return nil, err
	}

	p, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Overlay Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: ui.VertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: false,
			DepthCompare:      wgpu.CompareFunctionAlways,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: *b.surfaceFormat,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Overlay pipeline: %w", err)
	}
	return p, nil
}
