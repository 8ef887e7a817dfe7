package scene

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeKind identifies what a Node represents in the scene graph.
type NodeKind int

const (
	// KindGroup is a transform-only node with no renderable content.
	KindGroup NodeKind = iota
	// KindMesh carries Geometry and a Material.
	KindMesh
	// KindLight carries a light.Light.
	KindLight
	// KindHelper is a debug visual (e.g. a light's shadow camera frustum).
	KindHelper
)

func (k NodeKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	case KindHelper:
		return "helper"
	default:
		return "group"
	}
}

var geometryIDs atomic.Uint64

// Geometry is the vertex data of a single mesh primitive.
type Geometry struct {
	// ID uniquely identifies the geometry for GPU buffer caches.
	ID uint64
	// Positions are the vertex positions in local space.
	Positions [][3]float32
	// Normals are the per-vertex normals, same length as Positions or empty.
	Normals [][3]float32
	// UVs are the per-vertex texture coordinates, same length as Positions or empty.
	UVs [][2]float32
	// Indices index into Positions in triangle-list order. Empty means non-indexed.
	Indices []uint32
	// Lines marks the geometry as a line list instead of a triangle list.
	Lines bool
}

// NewGeometry creates a Geometry with a fresh ID.
func NewGeometry(positions, normals [][3]float32, uvs [][2]float32, indices []uint32) *Geometry {
	return &Geometry{
		ID:        geometryIDs.Add(1),
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	}
}

// Node is a single element of the scene graph.
// Nodes are plain structs mutated only from the main thread.
type Node struct {
	// Name is the identifier carried over from the model file, may be empty or repeated.
	Name string
	// Kind selects which of the payload fields are meaningful.
	Kind NodeKind
	// Transform is the local transform relative to Parent.
	Transform mgl32.Mat4
	// Visible hides the node and its whole subtree when false.
	Visible bool
	// CastShadow and ReceiveShadow are the shadow participation flags consumed by the renderer.
	CastShadow, ReceiveShadow bool

	// Geometry is set on mesh and helper nodes.
	Geometry *Geometry
	// Material is set on mesh and helper nodes.
	Material material.Material
	// Light is set on light nodes.
	Light light.Light

	Parent   *Node
	Children []*Node
}

// NewNode creates a visible node with an identity transform.
//
// Parameters:
//   - name: the node identifier
//   - kind: the node kind
//
// Returns:
//   - *Node: the new node
func NewNode(name string, kind NodeKind) *Node {
	return &Node{
		Name:      name,
		Kind:      kind,
		Transform: mgl32.Ident4(),
		Visible:   true,
	}
}

// NewMesh creates a mesh node with the given geometry and material.
func NewMesh(name string, geo *Geometry, mat material.Material) *Node {
	n := NewNode(name, KindMesh)
	n.Geometry = geo
	n.Material = mat
	return n
}

// Add appends children to the node, detaching them from any previous parent first.
//
// Parameters:
//   - children: the nodes to attach
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		if c.Parent != nil {
			c.Parent.Remove(c)
		}
		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

// Remove detaches a direct child. It is a no-op if child is not a child of n.
//
// Parameters:
//   - child: the node to detach
func (n *Node) Remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// Traverse visits the node and every descendant depth-first in pre-order:
// a parent is visited before its children and siblings in insertion order.
// Hidden nodes are visited too.
//
// Parameters:
//   - fn: the visitor
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Traverse(fn)
	}
}

// TraverseVisible is like Traverse but skips hidden nodes and their subtrees.
//
// Parameters:
//   - fn: the visitor, also receiving the accumulated world matrix
func (n *Node) TraverseVisible(fn func(node *Node, world mgl32.Mat4)) {
	n.traverseVisible(mgl32.Ident4(), fn)
}

func (n *Node) traverseVisible(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.Transform)
	fn(n, world)
	for _, c := range n.Children {
		c.traverseVisible(world, fn)
	}
}

// WorldMatrix composes the transforms from the root down to this node.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.Transform
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.Transform.Mul4(m)
	}
	return m
}

// Find returns the first node in pre-order whose name equals name, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}
