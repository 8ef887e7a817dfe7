package loader

import (
	"github.com/qmuntal/gltf"
)

// loaderBackend defines the generic interface for opening model files.
// Concrete implementations (e.g., gltfLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Open reads and decodes a model file including its external buffers.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *gltf.Document: the decoded document
	//   - error: error if reading or decoding fails
	Open(path string) (*gltf.Document, error)
}
