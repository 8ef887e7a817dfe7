package binding

import "errors"

var (
	// ErrUnknownTextureKey is returned by Apply when the key is not one of the configured texture options.
	// The material and selection state are left untouched.
	ErrUnknownTextureKey = errors.New("unknown texture key")
	// ErrUnknownMesh is returned when a mesh name was not found by DiscoverBindableMeshes.
	ErrUnknownMesh = errors.New("unknown bindable mesh")
	// ErrNoOptions is returned when a texture option set is empty.
	ErrNoOptions = errors.New("no texture options")
	// ErrEmptyKey is returned for a texture option without a key.
	ErrEmptyKey = errors.New("empty texture key")
	// ErrDuplicateKey is returned when two texture options share a key.
	ErrDuplicateKey = errors.New("duplicate texture key")
)
