package viewer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/panel"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

type fakeRenderer struct {
	size       [2]int
	viewport   [2]int
	pixelRatio float32
	renders    int
}

func (r *fakeRenderer) SetSize(width, height int)     { r.size = [2]int{width, height} }
func (r *fakeRenderer) SetViewport(width, height int) { r.viewport = [2]int{width, height} }
func (r *fakeRenderer) SetPixelRatio(ratio float32)   { r.pixelRatio = ratio }
func (r *fakeRenderer) Render(scene.Scene, camera.Camera) error {
	r.renders++
	return nil
}

func testTextures(v Variant) map[string]*material.Texture {
	out := make(map[string]*material.Texture, len(v.Options))
	for _, o := range v.Options {
		out[o.Key] = material.NewTexture(o.Key, o.Path, &common.RGBAImage{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1})
	}
	return out
}

func newTestContext(t *testing.T, variant string, options ...ContextBuilderOption) (*Context, *fakeRenderer, map[string]*material.Texture) {
	t.Helper()
	v, err := LoadVariant(variant)
	require.NoError(t, err)

	r := &fakeRenderer{}
	textures := testTextures(v)
	ctx, err := NewContext(v, r, textures, options...)
	require.NoError(t, err)
	return ctx, r, textures
}

// chairDocument is a chair whose seat and back share one material, plus legs that are not customizable.
func chairDocument() *gltf.Document {
	doc := &gltf.Document{Buffers: []*gltf.Buffer{{}}}
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	doc.Materials = []*gltf.Material{{Name: "Wood"}}
	prim := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: uv},
		Indices:    gltf.Index(idx),
		Material:   gltf.Index(0),
	}
	doc.Meshes = []*gltf.Mesh{{Name: "Part", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{
		{Name: "Root", Children: []int{1, 2, 3}},
		{Name: "ChairSeat", Mesh: gltf.Index(0)},
		{Name: "ChairBack", Mesh: gltf.Index(0)},
		{Name: "Legs", Mesh: gltf.Index(0)},
	}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}
	doc.Scene = gltf.Index(0)
	return doc
}

func loadChair(t *testing.T) loader.Result {
	t.Helper()
	ld := loader.NewLoader(loader.WithDocument("chair.glb", chairDocument()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := ld.LoadAsync("chair.glb").Wait(ctx)
	require.NoError(t, err)
	require.True(t, res.OK())
	return res
}

func TestNewContextBuildsStage(t *testing.T) {
	ctx, _, _ := newTestContext(t, "studio")

	bg, err := ctx.Variant.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, bg, ctx.Scene.Background())

	root := ctx.Scene.Root()
	require.NotNil(t, root.Find("AmbientLight"))
	require.NotNil(t, root.Find("DirectionalLight"))
	assert.Equal(t, AmbientIntensity, root.Find("AmbientLight").Light.Intensity())
	sun := root.Find("DirectionalLight").Light
	assert.Equal(t, DirectionalIntensity, sun.Intensity())
	assert.True(t, sun.CastsShadows())

	assert.False(t, ctx.Helper.Visible)
	assert.Nil(t, ctx.Model)
	assert.Equal(t, float32(75), ctx.Camera.Fov())
	assert.Equal(t, orbitTarget[1], ctx.Controls.Target().Y())

	assert.Equal(t, PaneTitle, ctx.Pane.Title)
	assert.Equal(t, 1, ctx.Pane.Len())
	assert.Equal(t, HelperButtonTitle, ctx.Pane.Focused())
}

func TestNewContextNeedsEveryTexture(t *testing.T) {
	v, err := LoadVariant("studio")
	require.NoError(t, err)

	textures := testTextures(v)
	delete(textures, "ebony")
	_, err = NewContext(v, &fakeRenderer{}, textures)
	assert.Error(t, err)
}

func TestHelperButtonTogglesVisibility(t *testing.T) {
	ctx, _, _ := newTestContext(t, "studio")

	require.True(t, ctx.Pane.HandleKey(common.KeyEnter))
	assert.True(t, ctx.Helper.Visible)

	ctx.Pane.HandleKey(common.KeyEnter)
	assert.False(t, ctx.Helper.Visible)
}

func TestChooseOptionOnSeatLeavesBackUnchanged(t *testing.T) {
	ctx, _, textures := newTestContext(t, "studio")
	ctx.OnModelLoaded(loadChair(t))

	require.NotNil(t, ctx.Model)
	seat := ctx.Model.Find("ChairSeat")
	back := ctx.Model.Find("ChairBack")
	require.NotNil(t, seat)
	require.NotNil(t, back)
	require.NotSame(t, seat.Material, back.Material)

	// Rows: helper button, ChairSeat, ChairBack.
	require.Equal(t, 3, ctx.Pane.Len())
	assert.Same(t, textures["oak"], seat.Material.Map())
	assert.Same(t, textures["oak"], back.Material.Map())

	ctx.Pane.HandleKey(common.KeyTab)
	require.Equal(t, "ChairSeat", ctx.Pane.Focused())
	ctx.Pane.HandleKey(common.Key3)

	state, ok := ctx.Binder.Selection("ChairSeat")
	require.True(t, ok)
	assert.Equal(t, "cherry", state.Key)
	assert.Same(t, textures["cherry"], seat.Material.Map())
	assert.True(t, seat.Material.NeedsUpdate())

	state, ok = ctx.Binder.Selection("ChairBack")
	require.True(t, ok)
	assert.Equal(t, "oak", state.Key)
	assert.Same(t, textures["oak"], back.Material.Map())

	legs := ctx.Model.Find("Legs")
	require.NotNil(t, legs)
	assert.Nil(t, legs.Material.Map())
	assert.True(t, legs.CastShadow)
	assert.True(t, legs.ReceiveShadow)
}

func TestPanelSummaryFollowsSelection(t *testing.T) {
	var summaries []string
	ctx, _, _ := newTestContext(t, "studio", WithPaneOptions(panel.WithOnChange(func(s string) {
		summaries = append(summaries, s)
	})))
	ctx.OnModelLoaded(loadChair(t))

	ctx.Pane.HandleKey(common.KeyTab)
	ctx.Pane.HandleKey(common.KeyRight)

	require.NotEmpty(t, summaries)
	last := summaries[len(summaries)-1]
	assert.Contains(t, last, ">ChairSeat: Walnut")
	assert.Contains(t, last, "ChairBack: Oak")
	assert.Equal(t, "Chair Studio | "+last, windowTitle(ctx.Variant.Title, last))
	assert.Equal(t, "Chair Studio", windowTitle(ctx.Variant.Title, ""))
}

func TestShowroomUsesSwatches(t *testing.T) {
	ctx, _, textures := newTestContext(t, "showroom")
	ctx.OnModelLoaded(loadChair(t))
	require.Equal(t, 3, ctx.Pane.Len())

	ctx.Pane.HandleKey(common.KeyTab)
	ctx.Pane.HandleKey(common.KeyTab)
	require.Equal(t, "ChairBack", ctx.Pane.Focused())
	ctx.Pane.HandleKey(common.Key2)

	back := ctx.Model.Find("ChairBack")
	assert.Same(t, textures["walnut"], back.Material.Map())
	assert.Contains(t, ctx.Pane.Summary(), "(Walnut #5d4030)")

	seat := ctx.Model.Find("ChairSeat")
	assert.Same(t, textures["oak"], seat.Material.Map())
}

func TestKioskToggleKeyHidesPane(t *testing.T) {
	ctx, _, _ := newTestContext(t, "kiosk")
	require.NotEmpty(t, ctx.Pane.Summary())

	ctx.Pane.HandleKey(common.KeyH)
	assert.False(t, ctx.Pane.Visible)
	assert.Empty(t, ctx.Pane.Summary())

	ctx.Pane.HandleKey(common.KeyH)
	assert.True(t, ctx.Pane.Visible)
}

func TestLoadFailureLeavesEmptyStage(t *testing.T) {
	ctx, _, _ := newTestContext(t, "studio")
	before := len(ctx.Scene.Root().Children)

	ctx.OnModelLoaded(loader.Result{Err: errors.New("file not found")})

	assert.Nil(t, ctx.Model)
	assert.Len(t, ctx.Scene.Root().Children, before)
	assert.Empty(t, ctx.Binder.Meshes())
	assert.Equal(t, 1, ctx.Pane.Len())
}

func TestMeshValueRejectsUnknownKey(t *testing.T) {
	ctx, _, textures := newTestContext(t, "studio")
	ctx.OnModelLoaded(loadChair(t))

	v := &meshValue{binder: ctx.Binder, mesh: "ChairSeat"}
	assert.Equal(t, "oak", v.Get())
	assert.Error(t, v.Set("mahogany"))
	assert.Equal(t, "oak", v.Get())
	assert.Same(t, textures["oak"], ctx.Model.Find("ChairSeat").Material.Map())

	assert.Empty(t, (&meshValue{binder: ctx.Binder, mesh: "Legs"}).Get())
}
