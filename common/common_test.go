package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, 3, Coalesce(0, 3))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(-1, 0, 1))
	assert.Equal(t, float32(1), Clamp(2, 0, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#aaaaaa")
	require.NoError(t, err)
	assert.Equal(t, HexToColor(0xaaaaaa), c)
	assert.Equal(t, "#aaaaaa", c.Hex())

	_, err = ParseHexColor("aaaaaa")
	assert.Error(t, err)
}

func TestLinearRGBA(t *testing.T) {
	assert.Equal(t, [4]float32{1, 1, 1, 0.5}, LinearRGBA(HexToColor(0xffffff), 0.5))

	grey := LinearRGBA(HexToColor(0x808080), 1)
	assert.InDelta(t, 0.2158, grey[0], 1e-3)
}

func TestComposeTRSIdentity(t *testing.T) {
	m := ComposeTRS(mgl32.Vec3{}, [4]float32{0, 0, 0, 1}, mgl32.Vec3{1, 1, 1})
	assert.True(t, m.ApproxEqual(mgl32.Ident4()))

	m = ComposeTRS(mgl32.Vec3{1, 2, 3}, [4]float32{0, 0, 0, 1}, mgl32.Vec3{2, 2, 2})
	p := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.True(t, p.ApproxEqual(mgl32.Vec4{3, 4, 5, 1}))
}

func TestImageSourceDecode(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	out, err := (&ImageSource{Name: "tiny", Data: buf.Bytes()}).Decode()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), out.Width)
	assert.Equal(t, uint32(1), out.Height)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 255, 255}, out.Pixels)

	_, err = (&ImageSource{Name: "empty"}).Decode()
	assert.Error(t, err)
	_, err = (&ImageSource{Name: "junk", Data: []byte("nope")}).Decode()
	assert.Error(t, err)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]uint32{}))
	assert.Len(t, SliceToBytes([]uint32{1, 2, 3}), 12)

	v := struct{ A, B float32 }{1, 2}
	assert.Len(t, StructToBytes(&v), 8)
}
