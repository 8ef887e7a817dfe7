package viewer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
)

type fakeUI struct {
	frames     [][2]int
	rendered   int
	wantsMouse bool
	wantsKeys  bool
	scrolled   float32
	keysDown   []uint32
	keysUp     []uint32
}

func (u *fakeUI) NewFrame(width, height int, _, _ float32) {
	u.frames = append(u.frames, [2]int{width, height})
}
func (u *fakeUI) Render()                 { u.rendered++ }
func (u *fakeUI) WantsMouse() bool        { return u.wantsMouse }
func (u *fakeUI) WantsKeyboard() bool     { return u.wantsKeys }
func (u *fakeUI) MouseMove(_, _ float32)  {}
func (u *fakeUI) MouseButton(int, bool)   {}
func (u *fakeUI) Scroll(delta float32)    { u.scrolled += delta }
func (u *fakeUI) KeyDown(key uint32)      { u.keysDown = append(u.keysDown, key) }
func (u *fakeUI) KeyUp(key uint32)        { u.keysUp = append(u.keysUp, key) }
func (u *fakeUI) Char(rune)               {}

func TestDrawUIRunsOneFrame(t *testing.T) {
	u := &fakeUI{}
	ctx, _, _ := newTestContext(t, "studio", WithUI(u))

	ctx.DrawUI(1024, 800, 2, 0.016)
	assert.Equal(t, [][2]int{{1024, 800}}, u.frames)
	assert.Equal(t, 1, u.rendered)
}

func TestDrawUIWithoutUIIsNoop(t *testing.T) {
	ctx, _, _ := newTestContext(t, "studio")
	assert.NotPanics(t, func() { ctx.DrawUI(1024, 800, 1, 0.016) })
}

func TestDragOverPaneDoesNotOrbit(t *testing.T) {
	u := &fakeUI{wantsMouse: true}
	ctx, _, _ := newTestContext(t, "studio", WithUI(u))
	HandleResize(ctx, 1024, 800, 1)
	ctx.Controls.Update()
	before := ctx.Controls.Azimuth()

	ctx.HandleDrag(100, 0)
	ctx.Controls.Update()
	assert.Equal(t, before, ctx.Controls.Azimuth())

	u.wantsMouse = false
	ctx.HandleDrag(100, 0)
	ctx.Controls.Update()
	assert.NotEqual(t, before, ctx.Controls.Azimuth())
}

func TestScrollOverPaneDoesNotZoom(t *testing.T) {
	u := &fakeUI{wantsMouse: true}
	ctx, _, _ := newTestContext(t, "studio", WithUI(u))
	ctx.Controls.Update()
	before := ctx.Controls.Radius()

	ctx.HandleScroll(3)
	ctx.Controls.Update()
	assert.Equal(t, float32(3), u.scrolled)
	assert.Equal(t, before, ctx.Controls.Radius())

	u.wantsMouse = false
	ctx.HandleScroll(3)
	ctx.Controls.Update()
	assert.Less(t, ctx.Controls.Radius(), before)
}

func TestKeysReachUIAndPane(t *testing.T) {
	u := &fakeUI{}
	ctx, _, _ := newTestContext(t, "kiosk", WithUI(u))

	ctx.HandleKeyDown(common.KeyH)
	ctx.HandleKeyUp(common.KeyH)
	assert.Equal(t, []uint32{common.KeyH}, u.keysDown)
	assert.Equal(t, []uint32{common.KeyH}, u.keysUp)
	assert.False(t, ctx.Pane.Visible)

	u.wantsKeys = true
	ctx.HandleKeyDown(common.KeyH)
	assert.False(t, ctx.Pane.Visible)
}
