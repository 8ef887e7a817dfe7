package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window defines the interface for a platform window hosting the viewer's drawing surface.
// All methods must be called from the thread that created the window.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	// Sizes are in window coordinates; multiply by DevicePixelRatio for physical pixels.
	//
	// Parameters:
	//   - callback: function receiving the new width and height
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the function called on mouse wheel scroll.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function called when a key is pressed or repeats.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function called when a key is released.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetDragCallback sets the function called when the cursor moves with the left button held.
	//
	// Parameters:
	//   - callback: function receiving the cursor movement since the previous event
	SetDragCallback(callback func(dx, dy float32))

	// SetMouseMoveCallback sets the function called whenever the cursor moves.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window coordinates
	SetMouseMoveCallback(callback func(x, y float32))

	// SetMouseButtonCallback sets the function called when a mouse button is pressed or released.
	//
	// Parameters:
	//   - callback: function receiving the button (0 left, 1 right, 2 middle) and whether it is down
	SetMouseButtonCallback(callback func(button int, down bool))

	// SetCharCallback sets the function called for typed text.
	//
	// Parameters:
	//   - callback: function receiving the typed character
	SetCharCallback(callback func(char rune))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// SetTitle replaces the text in the title bar.
	SetTitle(title string)

	// Title returns the current title.
	Title() string

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current client area width in window coordinates.
	Width() int

	// Height returns the current client area height in window coordinates.
	Height() int

	// DevicePixelRatio returns framebuffer pixels per window coordinate (2 on a Retina display).
	//
	// Returns:
	//   - float32: the ratio, 1 when it cannot be determined
	DevicePixelRatio() float32
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	title string

	// size limits applied to user resizing, -1 for no limit
	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height are the client area in window coordinates.
	width, height int

	// closeOnEscape makes Escape close the window.
	closeOnEscape bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate  func()
	onResize  func(width, height int)
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
	onDrag    func(dx, dy float32)

	onMouseMove   func(x, y float32)
	onMouseButton func(button int, down bool)
	onChar        func(char rune)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured, visible window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:         "oxy viewer",
		maxWidth:      -1,
		maxHeight:     -1,
		minWidth:      320,
		minHeight:     240,
		width:         1280,
		height:        800,
		closeOnEscape: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetDragCallback(callback func(dx, dy float32)) {
	w.onDrag = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button int, down bool)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetCharCallback(callback func(char rune)) {
	w.onChar = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	platformSetTitle(w, title)
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) DevicePixelRatio() float32 {
	return platformDevicePixelRatio(w)
}

// pixelRatio divides a framebuffer width by a window width, falling back to 1 for degenerate sizes.
func pixelRatio(framebufferWidth, windowWidth int) float32 {
	if framebufferWidth <= 0 || windowWidth <= 0 {
		return 1
	}
	return float32(framebufferWidth) / float32(windowWidth)
}
