package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// scene is the implementation of the Scene interface.
type scene struct {
	root       *Node
	background colorful.Color
}

// Scene is the root of everything the renderer draws: a node tree plus the clear color behind it.
// Not thread-safe; all access happens on the main thread.
type Scene interface {
	// Root returns the root group node.
	//
	// Returns:
	//   - *Node: the root node, never nil
	Root() *Node

	// Add attaches nodes directly below the root.
	//
	// Parameters:
	//   - nodes: the nodes to attach
	Add(nodes ...*Node)

	// Background returns the clear color.
	//
	// Returns:
	//   - colorful.Color: the background color in sRGB space
	Background() colorful.Color

	// SetBackground replaces the clear color.
	//
	// Parameters:
	//   - c: the new background color
	SetBackground(c colorful.Color)

	// Traverse visits every node depth-first in pre-order, starting with the root.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(*Node))
}

var _ Scene = &scene{}

// NewScene creates an empty Scene configured with the provided options.
//
// Parameters:
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		root:       NewNode("Scene", KindGroup),
		background: colorful.Color{R: 0, G: 0, B: 0},
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Root() *Node {
	return s.root
}

func (s *scene) Add(nodes ...*Node) {
	s.root.Add(nodes...)
}

func (s *scene) Background() colorful.Color {
	return s.background
}

func (s *scene) SetBackground(c colorful.Color) {
	s.background = c
}

func (s *scene) Traverse(fn func(*Node)) {
	s.root.Traverse(fn)
}
