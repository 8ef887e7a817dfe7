// Package binding maps texture option keys onto the private materials of a model's customizable meshes.
//
// A mesh is bindable when its name contains the recognition token. Discovery gives every
// bindable mesh its own material clone so changing one part of the chair never changes
// another, and a selection state records which option each mesh currently shows.
//
// Everything here runs on the main thread and takes no locks.
package binding

import (
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// DefaultToken is the substring that marks a mesh as customizable.
const DefaultToken = "Chair"

// SelectionState is the current texture key of one bindable mesh.
type SelectionState struct {
	// MeshName is the bindable mesh this state belongs to.
	MeshName string
	// Key is the currently applied texture option key.
	Key string
}

// binder is the implementation of the Binder interface.
type binder struct {
	token      string
	options    TextureOptions
	meshes     map[string]*scene.Node
	order      []string
	selections map[string]*SelectionState
}

// Binder discovers the customizable meshes of a loaded model and applies texture options to them.
type Binder interface {
	// DiscoverBindableMeshes walks the tree rooted at root depth-first in pre-order.
	// Every visited node gets CastShadow and ReceiveShadow set. Mesh nodes whose name contains
	// the token are bindable: on their first discovery their material is replaced with a private
	// clone. Repeated calls return the same handles and never clone again.
	//
	// Parameters:
	//   - root: the subtree to search
	//
	// Returns:
	//   - []*scene.Node: the bindable meshes in traversal order
	DiscoverBindableMeshes(root *scene.Node) []*scene.Node

	// Initialize creates the selection state for a discovered mesh, defaulted to the first option,
	// and applies that option so the material agrees with the state. Calling it again returns the
	// existing state unchanged.
	//
	// Parameters:
	//   - meshName: the bindable mesh name
	//
	// Returns:
	//   - *SelectionState: the mesh's selection state
	//   - error: ErrUnknownMesh if the mesh was never discovered
	Initialize(meshName string) (*SelectionState, error)

	// Apply assigns the texture bound to key to the mesh's private material, marks the material
	// dirty and records key as the mesh's selection.
	//
	// Parameters:
	//   - meshName: the bindable mesh name
	//   - key: the texture option key
	//
	// Returns:
	//   - error: ErrUnknownMesh or ErrUnknownTextureKey; nothing is mutated in either case
	Apply(meshName, key string) error

	// Selection returns the selection state of a mesh, if Initialize was called for it.
	Selection(meshName string) (*SelectionState, bool)

	// Meshes returns every bindable mesh discovered so far, in discovery order.
	Meshes() []*scene.Node

	// Options returns the configured texture options.
	Options() TextureOptions

	// Token returns the recognition substring.
	Token() string
}

var _ Binder = &binder{}

// NewBinder creates a Binder over a fixed texture option set.
//
// Parameters:
//   - options: the texture options every bindable mesh can choose from
//   - opts: variadic list of BinderBuilderOption functions
//
// Returns:
//   - Binder: the new binder
func NewBinder(options TextureOptions, opts ...BinderBuilderOption) Binder {
	b := &binder{
		token:      DefaultToken,
		options:    options,
		meshes:     make(map[string]*scene.Node),
		selections: make(map[string]*SelectionState),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsBindable reports whether a node is a mesh whose name contains token.
func IsBindable(n *scene.Node, token string) bool {
	return n != nil && n.Kind == scene.KindMesh && strings.Contains(n.Name, token)
}

func (b *binder) DiscoverBindableMeshes(root *scene.Node) []*scene.Node {
	if root == nil {
		return nil
	}

	var found []*scene.Node
	seen := make(map[string]bool)
	root.Traverse(func(n *scene.Node) {
		n.CastShadow = true
		n.ReceiveShadow = true

		if !IsBindable(n, b.token) {
			return
		}

		if existing, ok := b.meshes[n.Name]; ok {
			if existing != n {
				log.Printf("[Binding] skipping duplicate bindable mesh %q", n.Name)
				return
			}
			if !seen[n.Name] {
				seen[n.Name] = true
				found = append(found, n)
			}
			return
		}

		if n.Material != nil {
			n.Material = n.Material.Clone()
		} else {
			n.Material = material.NewMaterial(material.WithName(n.Name))
		}
		b.meshes[n.Name] = n
		b.order = append(b.order, n.Name)
		seen[n.Name] = true
		found = append(found, n)
	})

	return found
}

func (b *binder) Initialize(meshName string) (*SelectionState, error) {
	if _, ok := b.meshes[meshName]; !ok {
		return nil, fmt.Errorf("initialize %q: %w", meshName, ErrUnknownMesh)
	}
	if s, ok := b.selections[meshName]; ok {
		return s, nil
	}

	s := &SelectionState{MeshName: meshName}
	b.selections[meshName] = s
	if err := b.Apply(meshName, b.options.Default()); err != nil {
		delete(b.selections, meshName)
		return nil, err
	}
	return s, nil
}

func (b *binder) Apply(meshName, key string) error {
	mesh, ok := b.meshes[meshName]
	if !ok {
		return fmt.Errorf("apply %q to %q: %w", key, meshName, ErrUnknownMesh)
	}
	opt, ok := b.options.Lookup(key)
	if !ok {
		return fmt.Errorf("apply %q to %q: %w", key, meshName, ErrUnknownTextureKey)
	}

	mesh.Material.SetMap(opt.Texture)
	mesh.Material.MarkNeedsUpdate()
	if s, ok := b.selections[meshName]; ok {
		s.Key = key
	}
	return nil
}

func (b *binder) Selection(meshName string) (*SelectionState, bool) {
	s, ok := b.selections[meshName]
	return s, ok
}

func (b *binder) Meshes() []*scene.Node {
	out := make([]*scene.Node, len(b.order))
	for i, name := range b.order {
		out[i] = b.meshes[name]
	}
	return out
}

func (b *binder) Options() TextureOptions {
	return b.options
}

func (b *binder) Token() string {
	return b.token
}
