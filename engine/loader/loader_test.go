package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

func pngBytes(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// chairDocument builds a small in-memory chair: a root group with seat and back meshes sharing one
// textured material and a leg mesh without a material.
func chairDocument(t *testing.T) *gltf.Document {
	t.Helper()
	doc := &gltf.Document{Buffers: []*gltf.Buffer{{}}}

	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	nrm := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t, color.RGBA{R: 200, A: 255}))
	doc.Images = []*gltf.Image{{Name: "wood", URI: uri}}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	doc.Materials = []*gltf.Material{{
		Name: "Wood",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor:  &[4]float64{1, 0.5, 0.25, 1},
			BaseColorTexture: &gltf.TextureInfo{Index: 0},
		},
	}}

	textured := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: pos, gltf.NORMAL: nrm, gltf.TEXCOORD_0: uv},
		Indices:    gltf.Index(idx),
		Material:   gltf.Index(0),
	}
	plain := &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: pos}}

	doc.Meshes = []*gltf.Mesh{
		{Name: "SeatMesh", Primitives: []*gltf.Primitive{textured}},
		{Name: "BackMesh", Primitives: []*gltf.Primitive{textured}},
		{Name: "LegMesh", Primitives: []*gltf.Primitive{plain, plain}},
	}
	doc.Nodes = []*gltf.Node{
		{Name: "Chair", Children: []int{1, 2, 3}, Translation: [3]float64{0, 0.1, 0}},
		{Name: "ChairSeat", Mesh: gltf.Index(0)},
		{Name: "ChairBack", Mesh: gltf.Index(1)},
		{Name: "Legs", Mesh: gltf.Index(2)},
	}
	doc.Scenes = []*gltf.Scene{{Name: "Sketchfab_Scene", Nodes: []int{0}}}
	doc.Scene = gltf.Index(0)
	return doc
}

func TestLoadDocumentBuildsNodeTree(t *testing.T) {
	l := NewLoader()
	root, err := l.LoadDocument(chairDocument(t), "")
	require.NoError(t, err)

	var names []string
	root.Traverse(func(n *scene.Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"Sketchfab_Scene", "Chair", "ChairSeat", "ChairBack", "Legs", "Legs_0", "Legs_1"}, names)

	seat := root.Find("ChairSeat")
	back := root.Find("ChairBack")
	require.Equal(t, scene.KindMesh, seat.Kind)
	assert.Equal(t, scene.KindGroup, root.Find("Legs").Kind)

	require.NotNil(t, seat.Geometry)
	assert.Len(t, seat.Geometry.Positions, 3)
	assert.Len(t, seat.Geometry.Normals, 3)
	assert.Len(t, seat.Geometry.UVs, 3)
	assert.Equal(t, []uint32{0, 1, 2}, seat.Geometry.Indices)

	// Shared glTF material stays shared until the binding layer clones it.
	assert.Same(t, seat.Material, back.Material)
	assert.Equal(t, "Wood", seat.Material.Name())
	assert.Equal(t, [4]float32{1, 0.5, 0.25, 1}, seat.Material.BaseColor())
	require.NotNil(t, seat.Material.Map())
	assert.Equal(t, uint32(2), seat.Material.Map().Image.Width)
	assert.Equal(t, byte(200), seat.Material.Map().Image.Pixels[0])

	assert.Equal(t, "Default", root.Find("Legs_0").Material.Name())
	assert.InDelta(t, 0.1, root.Find("Chair").Transform.At(1, 3), 1e-6)
}

func TestLoadDocumentFreshTreeEachTime(t *testing.T) {
	doc := chairDocument(t)
	l := NewLoader(WithDocument("chair.glb", doc))

	a, err := l.Load("chair.glb")
	require.NoError(t, err)
	b, err := l.Load("chair.glb")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotSame(t, a.Find("ChairSeat").Material, b.Find("ChairSeat").Material)
}

func TestLoadDocumentErrors(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadDocument(nil, "")
	assert.ErrorIs(t, err, ErrNoScene)

	_, err = l.LoadDocument(&gltf.Document{}, "")
	assert.ErrorIs(t, err, ErrNoScene)

	cyclic := &gltf.Document{
		Nodes:  []*gltf.Node{{Name: "a", Children: []int{0}}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
	_, err = l.LoadDocument(cyclic, "")
	assert.Error(t, err)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := NewLoader().Load("chair.obj")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

type fakeDraco struct {
	calls int
	path  string
}

func (f *fakeDraco) DecodePrimitive(_ *gltf.Document, _ *gltf.Primitive, decoderPath string) (*scene.Geometry, error) {
	f.calls++
	f.path = decoderPath
	return scene.NewGeometry([][3]float32{{0, 0, 0}}, nil, nil, nil), nil
}

func dracoDocument() *gltf.Document {
	prim := &gltf.Primitive{
		Attributes: map[string]int{},
		Extensions: gltf.Extensions{ExtDracoMeshCompression: map[string]any{"bufferView": 0}},
	}
	return &gltf.Document{
		Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{prim}}},
		Nodes:  []*gltf.Node{{Name: "ChairSeat", Mesh: gltf.Index(0)}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
}

func TestDracoPrimitivesWithoutDecoderKeepNodes(t *testing.T) {
	l := NewLoader(WithDecoderPath("/draco/"), WithDracoDecoder(nil))
	root, err := l.LoadDocument(dracoDocument(), "")
	require.NoError(t, err)

	seat := root.Find("ChairSeat")
	require.NotNil(t, seat)
	assert.Equal(t, scene.KindMesh, seat.Kind)
	assert.Nil(t, seat.Geometry)
	assert.NotNil(t, seat.Material)
	assert.Equal(t, "/draco/", l.DecoderPath())
}

func TestDracoPrimitivesUseDecoder(t *testing.T) {
	d := &fakeDraco{}
	l := NewLoader(WithDecoderPath("/draco/"), WithDracoDecoder(d))
	root, err := l.LoadDocument(dracoDocument(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, d.calls)
	assert.Equal(t, "/draco/", d.path)
	assert.NotNil(t, root.Find("ChairSeat").Geometry)
}

func TestNewLoaderDecodesDracoByDefault(t *testing.T) {
	l := NewLoader().(*loader)
	assert.IsType(t, &nativeDracoDecoder{}, l.dracoDecoder)
}

func TestDracoExtensionFromRawObject(t *testing.T) {
	prim := &gltf.Primitive{Extensions: gltf.Extensions{
		ExtDracoMeshCompression: map[string]any{
			"bufferView": 2,
			"attributes": map[string]any{"POSITION": 0, "TEXCOORD_0": 1},
		},
	}}

	ext, err := dracoExtension(prim)
	require.NoError(t, err)
	assert.EqualValues(t, 2, ext.BufferView)
	assert.Contains(t, ext.Attributes, gltf.POSITION)
	assert.Contains(t, ext.Attributes, gltf.TEXCOORD_0)

	_, err = dracoExtension(&gltf.Primitive{})
	assert.Error(t, err)
}

func TestDefaultDracoDecoderRejectsMissingBufferView(t *testing.T) {
	_, err := NewLoader().LoadDocument(dracoDocument(), "")
	assert.ErrorIs(t, err, ErrDracoDecode)
}

func TestDefaultDracoDecoderRejectsCorruptData(t *testing.T) {
	doc := dracoDocument()
	junk := []byte("this is not a draco bitstream!!!")
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(junk), Data: junk}}
	doc.BufferViews = []*gltf.BufferView{{Buffer: 0, ByteLength: len(junk)}}
	doc.Meshes[0].Primitives[0].Attributes = map[string]int{}
	doc.Meshes[0].Primitives[0].Extensions = gltf.Extensions{
		ExtDracoMeshCompression: map[string]any{"bufferView": 0, "attributes": map[string]any{"POSITION": 0}},
	}

	_, err := NewLoader().LoadDocument(doc, "")
	assert.ErrorIs(t, err, ErrDracoDecode)
}

func TestLoadAsyncResolvesOnce(t *testing.T) {
	l := NewLoader(WithDocument("chair.glb", chairDocument(t)))
	f := l.LoadAsync("chair.glb")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.NotNil(t, res.Root.Find("ChairSeat"))

	again, ok := f.Result()
	assert.True(t, ok)
	assert.Same(t, res.Root, again.Root)
}

func TestLoadAsyncFailure(t *testing.T) {
	f := NewLoader().LoadAsync(filepath.Join(t.TempDir(), "missing.glb"))
	<-f.Done()

	res, ok := f.Result()
	require.True(t, ok)
	assert.False(t, res.OK())
	assert.Error(t, res.Err)
	assert.Nil(t, res.Root)
}

func TestFutureWaitHonorsContext(t *testing.T) {
	f := newFuture()
	_, ok := f.Result()
	assert.False(t, ok)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	assert.True(t, Resolved(Result{Root: scene.NewNode("x", scene.KindGroup)}).result.OK())
}

func TestLoadTextures(t *testing.T) {
	dir := t.TempDir()
	oak := filepath.Join(dir, "oak.png")
	walnut := filepath.Join(dir, "walnut.png")
	require.NoError(t, os.WriteFile(oak, pngBytes(t, color.RGBA{R: 180, G: 140, B: 90, A: 255}), 0o644))
	require.NoError(t, os.WriteFile(walnut, pngBytes(t, color.RGBA{R: 90, G: 60, B: 40, A: 255}), 0o644))

	l := NewLoader(WithWorkers(2))
	textures, err := l.LoadTextures([]TextureSpec{
		{Key: "oak", Path: oak},
		{Key: "walnut", Path: walnut},
		{Key: "missing", Path: filepath.Join(dir, "missing.png")},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
	require.Len(t, textures, 2)
	assert.Equal(t, "oak", textures["oak"].Name)
	assert.Equal(t, byte(90), textures["walnut"].Image.Pixels[0])
	assert.NotEqual(t, textures["oak"].ID, textures["walnut"].ID)
}

func TestDecodeDataURI(t *testing.T) {
	data, mime, err := decodeDataURI("data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("abc")))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), data)
	assert.Equal(t, "image/png", mime)

	_, _, err = decodeDataURI("data:image/png;base64")
	assert.Error(t, err)
	_, _, err = decodeDataURI("data:text/plain,abc")
	assert.Error(t, err)
}
