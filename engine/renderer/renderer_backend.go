package renderer

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ShadowMapType selects the shadow filtering technique.
type ShadowMapType int

const (
	// ShadowMapBasic does a single depth comparison per fragment.
	ShadowMapBasic ShadowMapType = iota
	// ShadowMapPCFSoft averages a 3x3 neighbourhood of comparisons.
	ShadowMapPCFSoft
)

// ShadowMapSettings is the renderer-wide shadow switch. Lights still opt in individually.
type ShadowMapSettings struct {
	Enabled bool
	Type    ShadowMapType
}

// RendererBackend is the GPU side of the Renderer: it owns the surface and every GPU resource.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and depth buffer at the given drawing buffer size.
	//
	// Parameters:
	//   - width: the drawing buffer width in physical pixels
	//   - height: the drawing buffer height in physical pixels
	ConfigureSurface(width, height int)

	// SetPresentMode changes how frames are presented. Takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// DrawFrame uploads whatever the frame needs and draws it to the surface.
	//
	// Parameters:
	//   - frame: the flattened frame
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	DrawFrame(frame *Frame) error

	// Release frees every GPU resource the backend owns.
	Release()
}
