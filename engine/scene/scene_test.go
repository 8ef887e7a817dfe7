package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() *Node {
	root := NewNode("root", KindGroup)
	a := NewNode("a", KindGroup)
	a1 := NewNode("a1", KindMesh)
	a2 := NewNode("a2", KindMesh)
	b := NewNode("b", KindMesh)
	a.Add(a1, a2)
	root.Add(a, b)
	return root
}

func TestTraversePreOrder(t *testing.T) {
	var names []string
	buildTree().Traverse(func(n *Node) { names = append(names, n.Name) })

	assert.Equal(t, []string{"root", "a", "a1", "a2", "b"}, names)
}

func TestTraverseVisitsHiddenNodes(t *testing.T) {
	root := buildTree()
	root.Find("a").Visible = false

	count := 0
	root.Traverse(func(*Node) { count++ })
	assert.Equal(t, 5, count)

	var visible []string
	root.TraverseVisible(func(n *Node, _ mgl32.Mat4) { visible = append(visible, n.Name) })
	assert.Equal(t, []string{"root", "b"}, visible)
}

func TestAddReparents(t *testing.T) {
	root := buildTree()
	a1 := root.Find("a1")
	b := root.Find("b")

	b.Add(a1)

	assert.Same(t, b, a1.Parent)
	assert.Len(t, root.Find("a").Children, 1)
	assert.Equal(t, []*Node{a1}, b.Children)
}

func TestRemoveUnknownChildIsNoop(t *testing.T) {
	root := buildTree()
	stray := NewNode("stray", KindGroup)

	root.Remove(stray)
	assert.Len(t, root.Children, 2)
}

func TestWorldMatrix(t *testing.T) {
	root := NewNode("root", KindGroup)
	child := NewNode("child", KindMesh)
	root.Transform = mgl32.Translate3D(1, 0, 0)
	child.Transform = mgl32.Translate3D(0, 2, 0)
	root.Add(child)

	p := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, 2, p.Y(), 1e-6)
}

func TestNewSceneOptions(t *testing.T) {
	bg := colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	n := NewNode("chair", KindGroup)
	s := NewScene(WithBackground(bg), WithNodes(n))

	require.NotNil(t, s.Root())
	assert.Equal(t, bg, s.Background())
	assert.Same(t, s.Root(), n.Parent)
	assert.Equal(t, "mesh", KindMesh.String())
}

func TestShadowCameraHelperOutlinesShadowVolume(t *testing.T) {
	l := light.NewLight(light.LightTypeDirectional, light.WithPosition(1.5, 1.5, 1.5), light.WithCastsShadows(true))
	h := NewShadowCameraHelper("helper", l)

	assert.Equal(t, KindHelper, h.Kind)
	assert.False(t, h.Visible)
	require.NotNil(t, h.Geometry)
	assert.True(t, h.Geometry.Lines)
	assert.Len(t, h.Geometry.Positions, 8)
	assert.Len(t, h.Geometry.Indices, 24)

	// The near-plane center sits Near units in front of the light along its direction.
	sc := l.Shadow()
	center := mgl32.Vec3{(sc.Left + sc.Right) / 2, (sc.Bottom + sc.Top) / 2, -sc.Near}
	world := h.Transform.Mul4x1(center.Vec4(1)).Vec3()
	assert.InDelta(t, sc.Near, world.Sub(l.Position()).Dot(l.Direction()), 1e-4)
}
