package viewer

import "github.com/Carmen-Shannon/oxy-viewer/engine/ui"

// UI is the immediate mode UI the settings pane is drawn with.
type UI interface {
	NewFrame(width, height int, ratio, dt float32)
	Render()
	WantsMouse() bool
	WantsKeyboard() bool
	MouseMove(x, y float32)
	MouseButton(button int, down bool)
	Scroll(delta float32)
	KeyDown(key uint32)
	KeyUp(key uint32)
	Char(char rune)
}

var _ UI = &ui.Context{}

// DrawUI builds this frame's pane widgets. Runs once per frame before the renderer draws.
//
// Parameters:
//   - width: the window width in window pixels
//   - height: the window height in window pixels
//   - ratio: framebuffer pixels per window pixel
//   - dt: seconds since the previous frame
func (ctx *Context) DrawUI(width, height int, ratio, dt float32) {
	if ctx.UI == nil {
		return
	}
	ctx.UI.NewFrame(width, height, ratio, dt)
	ctx.Pane.Draw(float32(width))
	ctx.UI.Render()
}

// HandleDrag orbits the camera, unless the drag belongs to the pane.
func (ctx *Context) HandleDrag(dx, dy float32) {
	if ctx.UI != nil && ctx.UI.WantsMouse() {
		return
	}
	ctx.Controls.RotateByPixels(dx, dy, float32(ctx.Viewport.Height))
}

// HandleScroll zooms the camera, unless the pointer is over the pane.
func (ctx *Context) HandleScroll(delta float32) {
	if ctx.UI != nil {
		ctx.UI.Scroll(delta)
		if ctx.UI.WantsMouse() {
			return
		}
	}
	ctx.Controls.Zoom(delta)
}

// HandleKeyDown feeds the UI and then the pane's keyboard shortcuts, which are skipped while a
// UI widget holds keyboard focus.
func (ctx *Context) HandleKeyDown(key uint32) {
	if ctx.UI != nil {
		ctx.UI.KeyDown(key)
		if ctx.UI.WantsKeyboard() {
			return
		}
	}
	ctx.Pane.HandleKey(key)
}

// HandleKeyUp feeds a key release to the UI.
func (ctx *Context) HandleKeyUp(key uint32) {
	if ctx.UI != nil {
		ctx.UI.KeyUp(key)
	}
}
