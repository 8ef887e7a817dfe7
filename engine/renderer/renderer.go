package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/ui"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/chewxy/math32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend RendererBackend

	width, height int
	pixelRatio    float32
	shadowMap     ShadowMapSettings

	// drawn region anchored at the top left, zero means the whole output
	viewportWidth, viewportHeight int

	// drawing buffer size the backend was last configured with
	bufferWidth, bufferHeight int

	forceFallbackAdapter bool
	presentMode          PresentMode

	overlay Overlay
}

// Overlay supplies UI geometry drawn on top of every frame.
type Overlay interface {
	// DrawData returns the geometry to draw, nil for none.
	DrawData() *ui.DrawData
}

// Renderer draws a Scene from a Camera onto the window surface.
//
// Sizes are kept in window (CSS-like) pixels; the drawing buffer is size times pixel ratio.
// All methods must be called from the main thread.
type Renderer interface {
	// SetSize sets the logical size of the output and reconfigures the drawing buffer.
	//
	// Parameters:
	//   - width: width in window pixels
	//   - height: height in window pixels
	SetSize(width, height int)

	// Size returns the logical size last passed to SetSize.
	//
	// Returns:
	//   - int: width in window pixels
	//   - int: height in window pixels
	Size() (int, int)

	// SetViewport limits drawing to a width by height region anchored at the top left of the output.
	// The surface keeps its full size; the rest of it shows the clear color.
	// A non-positive dimension resets the viewport to the whole output.
	//
	// Parameters:
	//   - width: width in window pixels
	//   - height: height in window pixels
	SetViewport(width, height int)

	// SetPixelRatio sets the device pixel ratio and reconfigures the drawing buffer.
	// Non-positive ratios are ignored.
	//
	// Parameters:
	//   - ratio: physical pixels per window pixel
	SetPixelRatio(ratio float32)

	// PixelRatio returns the current device pixel ratio.
	PixelRatio() float32

	// DrawingBufferSize returns the surface size in physical pixels.
	//
	// Returns:
	//   - int: width in physical pixels
	//   - int: height in physical pixels
	DrawingBufferSize() (int, int)

	// ShadowMap returns the shadow settings. Changes apply from the next Render.
	//
	// Returns:
	//   - *ShadowMapSettings: the live settings
	ShadowMap() *ShadowMapSettings

	// Render draws one frame of the scene as seen by the camera.
	// Nothing is drawn while the drawing buffer has a zero dimension.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: an error if the backend failed to draw
	Render(s scene.Scene, cam camera.Camera) error

	// Release frees the GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer drawing into the given window's surface.
// The drawing buffer starts at the window's size with a pixel ratio of 1.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - w: the window providing the surface
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) Renderer {
	r := newRenderer(nil, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter)
	}
	r.backend.SetPresentMode(r.presentMode)

	r.SetSize(w.Width(), w.Height())
	return r
}

// newRenderer builds the renderer state around an existing backend.
func newRenderer(backend RendererBackend, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		backend:     backend,
		pixelRatio:  1,
		shadowMap:   ShadowMapSettings{Type: ShadowMapPCFSoft},
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) SetSize(width, height int) {
	r.width, r.height = width, height
	r.configure()
}

func (r *renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *renderer) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	r.viewportWidth, r.viewportHeight = width, height
}

func (r *renderer) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		return
	}
	r.pixelRatio = ratio
	r.configure()
}

func (r *renderer) PixelRatio() float32 {
	return r.pixelRatio
}

func (r *renderer) DrawingBufferSize() (int, int) {
	return drawingBufferSize(r.width, r.height, r.pixelRatio)
}

func (r *renderer) ShadowMap() *ShadowMapSettings {
	return &r.shadowMap
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	if r.bufferWidth <= 0 || r.bufferHeight <= 0 {
		return nil
	}
	frame := BuildFrame(s, cam, r.shadowMap)
	frame.Viewport = r.drawingViewport()
	if r.overlay != nil {
		frame.Overlay = r.overlay.DrawData()
	}
	if err := r.backend.DrawFrame(&frame); err != nil {
		return fmt.Errorf("failed to draw frame: %w", err)
	}
	return nil
}

func (r *renderer) Release() {
	if r.backend != nil {
		r.backend.Release()
	}
}

// configure pushes the drawing buffer size to the backend when it changed.
func (r *renderer) configure() {
	w, h := r.DrawingBufferSize()
	if w == r.bufferWidth && h == r.bufferHeight {
		return
	}
	r.bufferWidth, r.bufferHeight = w, h
	if r.backend != nil && w > 0 && h > 0 {
		r.backend.ConfigureSurface(w, h)
	}
}

// drawingViewport is the viewport in physical pixels, clamped to the drawing buffer.
func (r *renderer) drawingViewport() [4]float32 {
	w, h := r.bufferWidth, r.bufferHeight
	if r.viewportWidth > 0 && r.viewportHeight > 0 {
		vw, vh := drawingBufferSize(r.viewportWidth, r.viewportHeight, r.pixelRatio)
		w, h = min(vw, w), min(vh, h)
	}
	return [4]float32{0, 0, float32(w), float32(h)}
}

// drawingBufferSize scales a logical size by the pixel ratio, rounding down like a canvas does.
func drawingBufferSize(width, height int, ratio float32) (int, int) {
	return int(math32.Floor(float32(width) * ratio)), int(math32.Floor(float32(height) * ratio))
}
