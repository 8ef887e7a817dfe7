package viewer

import (
	"math"

	"github.com/chewxy/math32"
)

// Resize defaults of the viewer.
const (
	// DefaultBreakpoint is the window width, in pixels, below which the layout is treated as narrow.
	DefaultBreakpoint = 768
	// DefaultHeightFactor scales the height of a narrow layout, leaving room for the panel.
	DefaultHeightFactor float32 = 0.87
	// DefaultMaxPixelRatio caps the renderer's pixel ratio.
	DefaultMaxPixelRatio float32 = 2
)

// Viewport is the drawable region derived from the window size.
type Viewport struct {
	Width, Height int
	Aspect        float32
}

// ComputeViewport applies the breakpoint rule to a window size.
// Below breakpoint the height is scaled by factor and floored; otherwise the size is used as is.
// A zero height is not guarded, so Aspect may be infinite or NaN.
//
// Parameters:
//   - width: the window width in pixels
//   - height: the window height in pixels
//   - breakpoint: the narrow layout threshold
//   - factor: the narrow layout height factor
//
// Returns:
//   - Viewport: the drawable size and its aspect ratio
func ComputeViewport(width, height, breakpoint int, factor float32) Viewport {
	h := height
	if width < breakpoint {
		h = int(math.Floor(float64(height) * float64(factor)))
	}
	return Viewport{
		Width:  width,
		Height: h,
		Aspect: float32(width) / float32(h),
	}
}

// HandleResize reacts to a window resize: it recomputes the viewport, updates the camera aspect and
// projection, keeps the renderer surface at the window size with the viewport drawn in its top
// rows, and caps its pixel ratio. Calling it twice with the same input
// leaves the same state.
//
// Parameters:
//   - ctx: the viewer context
//   - width: the window width in pixels
//   - height: the window height in pixels
//   - devicePixelRatio: framebuffer pixels per window pixel
func HandleResize(ctx *Context, width, height int, devicePixelRatio float32) {
	v := ctx.Variant
	vp := ComputeViewport(width, height, v.Breakpoint, v.HeightFactor)
	ctx.Viewport = vp

	ctx.Camera.SetAspect(vp.Aspect)
	ctx.Camera.UpdateProjectionMatrix()

	ctx.Renderer.SetSize(width, height)
	ctx.Renderer.SetViewport(vp.Width, vp.Height)
	ctx.Renderer.SetPixelRatio(math32.Min(devicePixelRatio, v.MaxPixelRatio))
}
