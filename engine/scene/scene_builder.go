package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithBackground sets the clear color of the scene.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c colorful.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}

// WithNodes attaches initial nodes below the root.
//
// Parameters:
//   - nodes: the nodes to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...*Node) SceneBuilderOption {
	return func(s *scene) {
		s.root.Add(nodes...)
	}
}
