package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithShadowMap enables the shadow pass and selects its filtering.
//
// Parameters:
//   - enabled: true to render shadow maps for shadow-casting lights
//   - t: the filtering technique
//
// Returns:
//   - RendererBuilderOption: a function that applies the shadow option to a renderer
func WithShadowMap(enabled bool, t ShadowMapType) RendererBuilderOption {
	return func(r *renderer) {
		r.shadowMap = ShadowMapSettings{Enabled: enabled, Type: t}
	}
}

// WithOverlay draws the overlay's UI geometry over the scene each frame.
//
// Parameters:
//   - o: the overlay, usually a ui.Context
//
// Returns:
//   - RendererBuilderOption: a function that applies the overlay option to a renderer
func WithOverlay(o Overlay) RendererBuilderOption {
	return func(r *renderer) {
		r.overlay = o
	}
}

// WithPixelRatio sets the initial device pixel ratio.
func WithPixelRatio(ratio float32) RendererBuilderOption {
	return func(r *renderer) {
		if ratio > 0 {
			r.pixelRatio = ratio
		}
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
