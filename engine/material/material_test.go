package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial(WithName("wood"))

	assert.Equal(t, "wood", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Nil(t, m.Map())
	assert.True(t, m.NeedsUpdate())
}

func TestCloneIsIndependent(t *testing.T) {
	oak := NewTexture("oak", "oak.jpg", &common.RGBAImage{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}})
	ebony := NewTexture("ebony", "ebony.jpg", &common.RGBAImage{Width: 1, Height: 1, Pixels: []byte{0, 0, 0, 255}})

	src := NewMaterial(WithName("chair"), WithMap(oak))
	src.ClearNeedsUpdate()

	clone := clone(t, src)
	assert.Same(t, oak, clone.Map())
	assert.True(t, clone.NeedsUpdate())

	clone.SetMap(ebony)
	clone.MarkNeedsUpdate()

	assert.Same(t, oak, src.Map())
	assert.False(t, src.NeedsUpdate())
	assert.Equal(t, uint64(0), src.Version())
	assert.Equal(t, uint64(1), clone.Version())
}

func TestMarkAndClearNeedsUpdate(t *testing.T) {
	m := NewMaterial()
	m.ClearNeedsUpdate()
	require.False(t, m.NeedsUpdate())

	m.MarkNeedsUpdate()
	m.MarkNeedsUpdate()
	assert.True(t, m.NeedsUpdate())
	assert.Equal(t, uint64(2), m.Version())

	m.ClearNeedsUpdate()
	assert.False(t, m.NeedsUpdate())
	assert.Equal(t, uint64(2), m.Version())
}

func TestTextureIDsAreUnique(t *testing.T) {
	a := NewTexture("a", "", nil)
	b := NewTexture("b", "", nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func clone(t *testing.T, m Material) Material {
	t.Helper()
	c := m.Clone()
	require.NotSame(t, m, c)
	return c
}
