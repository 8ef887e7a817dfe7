package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/ui"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	depthFormat       = wgpu.TextureFormatDepth24Plus
	shadowDepthFormat = wgpu.TextureFormatDepth32Float

	globalsUniformSize       = 192
	shadowGlobalsUniformSize = 128
	objectUniformSize        = 80
	materialUniformSize      = 32
)

// errSurfaceNotConfigured is returned by DrawFrame before the first ConfigureSurface.
var errSurfaceNotConfigured = errors.New("surface not configured")

type gpuMesh struct {
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   uint32
	lines        bool
}

type gpuTexture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

type gpuMaterial struct {
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

// gpuStream is a buffer rewritten every frame, grown when the data outgrows it.
type gpuStream struct {
	buffer *wgpu.Buffer
	size   uint64
}

type gpuObject struct {
	uniform   *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

// preparedDraw is a draw item with every GPU resource resolved.
type preparedDraw struct {
	item     DrawItem
	mesh     *gpuMesh
	object   *gpuObject
	material *gpuMaterial
}

// wgpuRendererBackendImpl is the WebGPU implementation of RendererBackend.
type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width, height int

	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	globalsLayout       *wgpu.BindGroupLayout
	shadowGlobalsLayout *wgpu.BindGroupLayout
	objectLayout        *wgpu.BindGroupLayout
	materialLayout      *wgpu.BindGroupLayout

	litPipeline    *wgpu.RenderPipeline
	linePipeline   *wgpu.RenderPipeline
	shadowPipeline *wgpu.RenderPipeline

	overlayPipeline  *wgpu.RenderPipeline
	overlayUniform   *wgpu.Buffer
	overlayBindGroup *wgpu.BindGroup
	overlayAtlasID   uint64
	overlayVertices  gpuStream
	overlayIndices   gpuStream

	globalsBuffer          *wgpu.Buffer
	globalsBindGroup       *wgpu.BindGroup
	shadowGlobalsBindGroup *wgpu.BindGroup

	shadowTexture     *wgpu.Texture
	shadowTextureView *wgpu.TextureView
	shadowSize        [2]uint32
	comparisonSampler *wgpu.Sampler
	colorSampler      *wgpu.Sampler
	whiteTexture      *gpuTexture

	meshes    map[uint64]*gpuMesh
	textures  map[uint64]*gpuTexture
	materials map[material.Material]*gpuMaterial
	objects   map[*scene.Node]*gpuObject
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) *wgpuRendererBackendImpl {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		meshes:      make(map[uint64]*gpuMesh),
		textures:    make(map[uint64]*gpuTexture),
		materials:   make(map[material.Material]*gpuMaterial),
		objects:     make(map[*scene.Node]*gpuObject),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.configureSurface(width, height)
}

func (b *wgpuRendererBackendImpl) configureSurface(width, height int) {
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]
	b.width, b.height = width, height

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
	}
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
}

func (b *wgpuRendererBackendImpl) DrawFrame(frame *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.depthTextureView == nil {
		return errSurfaceNotConfigured
	}
	if err := b.ensurePipelines(); err != nil {
		return err
	}
	if frame.Shadows {
		if err := b.ensureShadowMap(frame.ShadowCamera.MapWidth, frame.ShadowCamera.MapHeight); err != nil {
			return err
		}
	}

	globals := frame.globals()
	b.queue.WriteBuffer(b.globalsBuffer, 0, common.StructToBytes(&globals))

	draws := make([]preparedDraw, 0, len(frame.Items))
	for _, item := range frame.Items {
		d, err := b.prepare(item)
		if err != nil {
			return fmt.Errorf("failed to prepare %q: %w", item.Node.Name, err)
		}
		draws = append(draws, d)
	}
	if !frame.Overlay.Empty() {
		if err := b.prepareOverlay(frame.Overlay); err != nil {
			return fmt.Errorf("failed to prepare overlay: %w", err)
		}
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		// Outdated or lost swapchain; rebuild it and skip this frame.
		log.Printf("[Renderer] surface texture unavailable, reconfiguring: %v", err)
		b.configureSurface(b.width, b.height)
		return nil
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	defer func() {
		view.Release()
		surfaceTexture.Release()
	}()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	if frame.Shadows {
		b.encodeShadowPass(encoder, draws)
	}
	b.encodeMainPass(encoder, view, frame, draws)

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) encodeShadowPass(encoder *wgpu.CommandEncoder, draws []preparedDraw) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		// No color attachments, depth only
		ColorAttachments: nil,
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.shadowTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(b.shadowPipeline)
	pass.SetBindGroup(0, b.shadowGlobalsBindGroup, nil)
	for _, d := range draws {
		if !d.item.CastShadow || d.mesh.lines {
			continue
		}
		pass.SetBindGroup(1, d.object.bindGroup, nil)
		pass.SetVertexBuffer(0, d.mesh.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(d.mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(d.mesh.indexCount, 1, 0, 0, 0)
	}
	pass.End()
}

func (b *wgpuRendererBackendImpl) encodeMainPass(encoder *wgpu.CommandEncoder, view *wgpu.TextureView, frame *Frame, draws []preparedDraw) {
	clear := frame.ClearColor
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: float64(clear[3]),
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	vp := clampViewport(frame.Viewport, b.width, b.height)
	pass.SetViewport(vp[0], vp[1], vp[2], vp[3], 0, 1)
	pass.SetScissorRect(uint32(vp[0]), uint32(vp[1]), uint32(vp[2]), uint32(vp[3]))
	pass.SetBindGroup(0, b.globalsBindGroup, nil)
	for _, d := range draws {
		if d.mesh.lines {
			pass.SetPipeline(b.linePipeline)
		} else {
			pass.SetPipeline(b.litPipeline)
		}
		pass.SetBindGroup(1, d.object.bindGroup, nil)
		pass.SetBindGroup(2, d.material.bindGroup, nil)
		pass.SetVertexBuffer(0, d.mesh.vertexBuffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(d.mesh.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(d.mesh.indexCount, 1, 0, 0, 0)
	}
	if !frame.Overlay.Empty() {
		b.encodeOverlay(pass, frame.Overlay)
	}
	pass.End()
}

// prepareOverlay uploads the UI geometry and binds the font atlas.
func (b *wgpuRendererBackendImpl) prepareOverlay(d *ui.DrawData) error {
	atlas, err := b.texture(d.Atlas)
	if err != nil {
		return err
	}
	if b.overlayUniform == nil {
		b.overlayUniform, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Overlay Uniform",
			Size:  materialUniformSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
	}
	if b.overlayBindGroup == nil || b.overlayAtlasID != d.Atlas.ID {
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Overlay Bind Group",
			Layout: b.materialLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: b.overlayUniform, Offset: 0, Size: wgpu.WholeSize},
				{Binding: 1, TextureView: atlas.view},
				{Binding: 2, Sampler: b.colorSampler},
			},
		})
		if err != nil {
			return err
		}
		if b.overlayBindGroup != nil {
			b.overlayBindGroup.Release()
		}
		b.overlayBindGroup, b.overlayAtlasID = bg, d.Atlas.ID
	}

	u := overlayUniformFor(d.DisplaySize)
	b.queue.WriteBuffer(b.overlayUniform, 0, common.StructToBytes(&u))
	if err := b.writeStream(&b.overlayVertices, "Overlay Vertex Buffer", wgpu.BufferUsageVertex, d.Vertices); err != nil {
		return err
	}
	return b.writeStream(&b.overlayIndices, "Overlay Index Buffer", wgpu.BufferUsageIndex, common.SliceToBytes(d.Indices))
}

// writeStream copies data into s, reallocating it when too small.
// Queue writes must be a multiple of 4 bytes, so uint16 index data is padded.
func (b *wgpuRendererBackendImpl) writeStream(s *gpuStream, label string, usage wgpu.BufferUsage, data []byte) error {
	data = padTo4(data)
	if uint64(len(data)) > s.size {
		size := streamCapacity(uint64(len(data)))
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: label,
			Size:  size,
			Usage: usage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		if s.buffer != nil {
			s.buffer.Release()
		}
		s.buffer, s.size = buf, size
	}
	if len(data) > 0 {
		b.queue.WriteBuffer(s.buffer, 0, data)
	}
	return nil
}

// encodeOverlay draws the UI over the whole surface, one scissored draw per command.
func (b *wgpuRendererBackendImpl) encodeOverlay(pass *wgpu.RenderPassEncoder, d *ui.DrawData) {
	pass.SetViewport(0, 0, float32(b.width), float32(b.height), 0, 1)
	pass.SetPipeline(b.overlayPipeline)
	pass.SetBindGroup(0, b.overlayBindGroup, nil)
	pass.SetVertexBuffer(0, b.overlayVertices.buffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(b.overlayIndices.buffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	for _, cmd := range d.Commands {
		rect, ok := scissorRect(cmd.Clip, b.width, b.height)
		if !ok || cmd.Count == 0 {
			continue
		}
		pass.SetScissorRect(rect[0], rect[1], rect[2], rect[3])
		pass.DrawIndexed(cmd.Count, 1, cmd.FirstIndex, cmd.BaseVertex, 0)
	}
}

// scissorRect turns a clip rectangle (x0, y0, x1, y1) into an x, y, width, height scissor inside a
// width by height surface. It reports false when nothing of the rectangle is visible.
func scissorRect(clip [4]float32, width, height int) ([4]uint32, bool) {
	x0, y0 := max(clip[0], 0), max(clip[1], 0)
	x1, y1 := min(clip[2], float32(width)), min(clip[3], float32(height))
	if x1 <= x0 || y1 <= y0 {
		return [4]uint32{}, false
	}
	left, top := uint32(x0), uint32(y0)
	return [4]uint32{left, top, uint32(x1) - left, uint32(y1) - top}, uint32(x1) > left && uint32(y1) > top
}

// streamCapacity rounds a byte size up to a power of two, at least 4 KiB.
func streamCapacity(n uint64) uint64 {
	size := uint64(4096)
	for size < n {
		size *= 2
	}
	return size
}

// padTo4 extends data with zeros to a multiple of 4 bytes.
func padTo4(data []byte) []byte {
	if r := len(data) % 4; r != 0 {
		return append(data[:len(data):len(data)], make([]byte, 4-r)...)
	}
	return data
}

// clampViewport fits a frame viewport inside a width by height surface.
// An empty viewport covers the whole surface.
func clampViewport(vp [4]float32, width, height int) [4]float32 {
	w, h := float32(width), float32(height)
	if vp[2] <= 0 || vp[3] <= 0 {
		return [4]float32{0, 0, w, h}
	}
	x, y := min(max(vp[0], 0), w), min(max(vp[1], 0), h)
	return [4]float32{x, y, min(vp[2], w-x), min(vp[3], h-y)}
}

// prepare resolves the cached GPU resources of one item, creating them on first use.
func (b *wgpuRendererBackendImpl) prepare(item DrawItem) (preparedDraw, error) {
	mesh, err := b.mesh(item.Geometry)
	if err != nil {
		return preparedDraw{}, err
	}
	obj, err := b.object(item)
	if err != nil {
		return preparedDraw{}, err
	}
	mat, err := b.material(item.Material)
	if err != nil {
		return preparedDraw{}, err
	}
	return preparedDraw{item: item, mesh: mesh, object: obj, material: mat}, nil
}

func (b *wgpuRendererBackendImpl) mesh(g *scene.Geometry) (*gpuMesh, error) {
	if m, ok := b.meshes[g.ID]; ok {
		return m, nil
	}
	verts, indices := interleave(g)
	vertexData := common.SliceToBytes(verts)
	indexData := common.SliceToBytes(indices)

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            fmt.Sprintf("Geometry %d Vertex Buffer", g.ID),
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	// Index buffer writes must be 4-byte aligned, which uint32 indices always are.
	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            fmt.Sprintf("Geometry %d Index Buffer", g.ID),
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		vb.Release()
		return nil, err
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	m := &gpuMesh{vertexBuffer: vb, indexBuffer: ib, indexCount: uint32(len(indices)), lines: g.Lines}
	b.meshes[g.ID] = m
	return m, nil
}

func (b *wgpuRendererBackendImpl) object(item DrawItem) (*gpuObject, error) {
	o, ok := b.objects[item.Node]
	if !ok {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: item.Node.Name + " Object Uniform",
			Size:  objectUniformSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  item.Node.Name + " Object Bind Group",
			Layout: b.objectLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: buf, Offset: 0, Size: wgpu.WholeSize},
			},
		})
		if err != nil {
			buf.Release()
			return nil, err
		}
		o = &gpuObject{uniform: buf, bindGroup: bg}
		b.objects[item.Node] = o
	}

	u := objectUniform{Model: item.Model}
	if item.ReceiveShadow {
		u.Flags[0] = 1
	}
	b.queue.WriteBuffer(o.uniform, 0, common.StructToBytes(&u))
	return o, nil
}

// material returns the bind group for m, rebuilding it when the material is flagged dirty.
func (b *wgpuRendererBackendImpl) material(m material.Material) (*gpuMaterial, error) {
	gm, ok := b.materials[m]
	if ok && !m.NeedsUpdate() {
		return gm, nil
	}
	if !ok {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: m.Name() + " Material Uniform",
			Size:  materialUniformSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
		gm = &gpuMaterial{uniform: buf}
		b.materials[m] = gm
	}

	u := materialUniformFor(m)
	b.queue.WriteBuffer(gm.uniform, 0, common.StructToBytes(&u))

	tex := b.whiteTexture
	if mapTex := m.Map(); mapTex != nil && mapTex.Image != nil {
		t, err := b.texture(mapTex)
		if err != nil {
			return nil, err
		}
		tex = t
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  m.Name() + " Material Bind Group",
		Layout: b.materialLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: gm.uniform, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: tex.view},
			{Binding: 2, Sampler: b.colorSampler},
		},
	})
	if err != nil {
		return nil, err
	}
	if gm.bindGroup != nil {
		gm.bindGroup.Release()
	}
	gm.bindGroup = bg
	m.ClearNeedsUpdate()
	return gm, nil
}

func (b *wgpuRendererBackendImpl) texture(t *material.Texture) (*gpuTexture, error) {
	if gt, ok := b.textures[t.ID]; ok {
		return gt, nil
	}
	gt, err := b.uploadTexture(t.Name, t.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to upload texture %q: %w", t.Name, err)
	}
	b.textures[t.ID] = gt
	return gt, nil
}

func (b *wgpuRendererBackendImpl) uploadTexture(label string, img *common.RGBAImage) (*gpuTexture, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              img.Width,
			Height:             img.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		img.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  img.Width * 4,
			RowsPerImage: img.Height,
		},
		&wgpu.Extent3D{
			Width:              img.Width,
			Height:             img.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &gpuTexture{texture: tex, view: view}, nil
}

// ensureShadowMap (re)creates the shadow depth texture when the requested size changes.
func (b *wgpuRendererBackendImpl) ensureShadowMap(width, height uint32) error {
	if width == 0 || height == 0 {
		width, height = 1, 1
	}
	if b.shadowTextureView != nil && b.shadowSize == [2]uint32{width, height} {
		return nil
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Shadow Depth Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        shadowDepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("failed to create shadow depth texture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return fmt.Errorf("failed to create shadow depth texture view: %w", err)
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Globals Bind Group",
		Layout: b.globalsLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.globalsBuffer, Offset: 0, Size: wgpu.WholeSize},
			{Binding: 1, TextureView: view},
			{Binding: 2, Sampler: b.comparisonSampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return err
	}

	if b.shadowTextureView != nil {
		b.globalsBindGroup.Release()
		b.shadowTextureView.Release()
		b.shadowTexture.Release()
	}
	b.shadowTexture, b.shadowTextureView = tex, view
	b.shadowSize = [2]uint32{width, height}
	b.globalsBindGroup = bg
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, m := range b.meshes {
		m.vertexBuffer.Release()
		m.indexBuffer.Release()
	}
	for _, t := range b.textures {
		t.view.Release()
		t.texture.Release()
	}
	for _, m := range b.materials {
		if m.bindGroup != nil {
			m.bindGroup.Release()
		}
		m.uniform.Release()
	}
	for _, o := range b.objects {
		o.bindGroup.Release()
		o.uniform.Release()
	}
	b.meshes = make(map[uint64]*gpuMesh)
	b.textures = make(map[uint64]*gpuTexture)
	b.materials = make(map[material.Material]*gpuMaterial)
	b.objects = make(map[*scene.Node]*gpuObject)

	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
		b.depthTextureView, b.depthTexture = nil, nil
	}
	if b.litPipeline != nil {
		b.litPipeline.Release()
		b.linePipeline.Release()
		b.shadowPipeline.Release()
		b.litPipeline, b.linePipeline, b.shadowPipeline = nil, nil, nil
	}
	if b.overlayPipeline != nil {
		b.overlayPipeline.Release()
		b.overlayPipeline = nil
	}
	if b.overlayBindGroup != nil {
		b.overlayBindGroup.Release()
		b.overlayBindGroup = nil
	}
	if b.overlayUniform != nil {
		b.overlayUniform.Release()
		b.overlayUniform = nil
	}
	for _, s := range []*gpuStream{&b.overlayVertices, &b.overlayIndices} {
		if s.buffer != nil {
			s.buffer.Release()
		}
		*s = gpuStream{}
	}
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
