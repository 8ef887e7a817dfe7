// Package ui hosts the Dear ImGui context the settings pane draws into, and flattens its output
// into plain vertex and index data the renderer can upload.
package ui

import (
	"log"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/inkyblackness/imgui-go/v4"
)

// VertexStride is the size of one UI vertex: position (2 x float32), uv (2 x float32), color (RGBA8).
const VertexStride = 20

// DrawCommand is one clipped run of indexed triangles.
type DrawCommand struct {
	// Clip is x0, y0, x1, y1 in framebuffer pixels.
	Clip       [4]float32
	FirstIndex uint32
	Count      uint32
	BaseVertex int32
}

// DrawData is one frame of UI geometry. Vertex positions are in window pixels.
type DrawData struct {
	DisplaySize [2]float32
	Vertices    []byte
	Indices     []uint16
	Commands    []DrawCommand
	Atlas       *material.Texture
}

// Empty reports whether there is nothing to draw.
func (d *DrawData) Empty() bool {
	return d == nil || len(d.Commands) == 0 || d.Atlas == nil
}

// Context owns the ImGui state. Not thread-safe; used from the main thread only.
type Context struct {
	imgui *imgui.Context
	io    imgui.IO
	atlas *material.Texture

	displayW, displayH float32
	ratio              float32
	data               *DrawData
}

// NewContext creates the ImGui context, maps the navigation keys and bakes the font atlas.
//
// Returns:
//   - *Context: the new context
func NewContext() *Context {
	c := &Context{imgui: imgui.CreateContext(nil), ratio: 1}
	c.io = imgui.CurrentIO()
	c.io.SetIniFilename("")

	for imguiKey, key := range keyMap {
		c.io.KeyMap(imguiKey, int(key))
	}

	fonts := c.io.Fonts()
	img := fonts.TextureDataRGBA32()
	pixels := make([]byte, img.Width*img.Height*4)
	copy(pixels, unsafe.Slice((*byte)(img.Pixels), len(pixels)))
	c.atlas = material.NewTexture("UI Font Atlas", "", &common.RGBAImage{
		Pixels: pixels,
		Width:  uint32(img.Width),
		Height: uint32(img.Height),
	})
	fonts.SetTextureID(imgui.TextureID(c.atlas.ID))
	log.Printf("[UI] font atlas %dx%d", img.Width, img.Height)
	return c
}

var keyMap = map[int]uint32{
	imgui.KeyTab:        common.KeyTab,
	imgui.KeyLeftArrow:  common.KeyLeft,
	imgui.KeyRightArrow: common.KeyRight,
	imgui.KeyUpArrow:    common.KeyUp,
	imgui.KeyDownArrow:  common.KeyDown,
	imgui.KeyEnter:      common.KeyEnter,
	imgui.KeyEscape:     common.KeyEsc,
	imgui.KeyBackspace:  common.KeyBackspace,
	imgui.KeySpace:      common.KeySpace,
}

// Atlas returns the font texture the UI samples from.
func (c *Context) Atlas() *material.Texture {
	return c.atlas
}

// NewFrame starts a UI frame. Widgets may be emitted until Render.
//
// Parameters:
//   - width: the window width in window pixels
//   - height: the window height in window pixels
//   - ratio: framebuffer pixels per window pixel
//   - dt: seconds since the previous frame
func (c *Context) NewFrame(width, height int, ratio, dt float32) {
	if ratio <= 0 {
		ratio = 1
	}
	if dt <= 0 {
		dt = 1.0 / 60
	}
	c.displayW, c.displayH, c.ratio = float32(width), float32(height), ratio
	c.io.SetDisplaySize(imgui.Vec2{X: c.displayW, Y: c.displayH})
	c.io.SetDeltaTime(dt)
	imgui.NewFrame()
}

// Render ends the frame and flattens it for the renderer.
func (c *Context) Render() {
	imgui.Render()
	c.data = c.flatten(imgui.RenderedDrawData())
}

// DrawData returns the geometry of the last rendered frame, nil before the first one.
func (c *Context) DrawData() *DrawData {
	return c.data
}

// WantsMouse reports whether the pointer is over a UI window, so the scene should ignore it.
func (c *Context) WantsMouse() bool {
	return c.io.WantCaptureMouse()
}

// WantsKeyboard reports whether a UI widget has keyboard focus.
func (c *Context) WantsKeyboard() bool {
	return c.io.WantCaptureKeyboard()
}

// MouseMove sets the pointer position in window pixels.
func (c *Context) MouseMove(x, y float32) {
	c.io.SetMousePosition(imgui.Vec2{X: x, Y: y})
}

// MouseButton sets the state of one button; 0 is the left button.
func (c *Context) MouseButton(button int, down bool) {
	c.io.SetMouseButtonDown(button, down)
}

// Scroll feeds a vertical wheel delta.
func (c *Context) Scroll(delta float32) {
	c.io.AddMouseWheelDelta(0, delta)
}

// KeyDown feeds a key press.
func (c *Context) KeyDown(key uint32) {
	c.io.KeyPress(int(key))
}

// KeyUp feeds a key release.
func (c *Context) KeyUp(key uint32) {
	c.io.KeyRelease(int(key))
}

// Char feeds typed text.
func (c *Context) Char(r rune) {
	c.io.AddInputCharacters(string(r))
}

// Destroy frees the ImGui context.
func (c *Context) Destroy() {
	if c.imgui != nil {
		c.imgui.Destroy()
		c.imgui = nil
	}
}

// flatten concatenates every draw list into one vertex and one index buffer.
func (c *Context) flatten(dd imgui.DrawData) *DrawData {
	out := &DrawData{DisplaySize: [2]float32{c.displayW, c.displayH}, Atlas: c.atlas}
	if !dd.Valid() {
		return out
	}
	vertexSize, _, _, _ := imgui.VertexBufferLayout()
	indexSize := imgui.IndexBufferLayout()

	for _, list := range dd.CommandLists() {
		vp, vBytes := list.VertexBuffer()
		ip, iBytes := list.IndexBuffer()
		baseVertex := int32(len(out.Vertices) / vertexSize)
		firstIndex := uint32(len(out.Indices))

		out.Vertices = append(out.Vertices, unsafe.Slice((*byte)(vp), vBytes)...)
		out.Indices = append(out.Indices, unsafe.Slice((*uint16)(ip), iBytes/indexSize)...)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				continue
			}
			clip := cmd.ClipRect()
			out.Commands = append(out.Commands, DrawCommand{
				Clip:       ScaleClip([4]float32{clip.X, clip.Y, clip.Z, clip.W}, c.ratio),
				FirstIndex: firstIndex,
				Count:      uint32(cmd.ElementCount()),
				BaseVertex: baseVertex,
			})
			firstIndex += uint32(cmd.ElementCount())
		}
	}
	return out
}

// ScaleClip converts a clip rectangle from window pixels to framebuffer pixels.
//
// Parameters:
//   - clip: x0, y0, x1, y1 in window pixels
//   - ratio: framebuffer pixels per window pixel
//
// Returns:
//   - [4]float32: the rectangle in framebuffer pixels
func ScaleClip(clip [4]float32, ratio float32) [4]float32 {
	return [4]float32{clip[0] * ratio, clip[1] * ratio, clip[2] * ratio, clip[3] * ratio}
}
