package loader

import (
	"github.com/qmuntal/gltf"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithDecoderPath sets the directory holding decoder resources for compressed geometry.
//
// Parameters:
//   - dir: the decoder directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the decoder path option to a loader
func WithDecoderPath(dir string) LoaderBuilderOption {
	return func(l *loader) {
		l.decoderPath = dir
	}
}

// WithDracoDecoder replaces the decoder used for KHR_draco_mesh_compression primitives.
// Defaults to NewDracoDecoder. With nil, compressed primitives are imported without geometry and a warning is logged.
//
// Parameters:
//   - d: the Draco decoder
//
// Returns:
//   - LoaderBuilderOption: a function that applies the decoder option to a loader
func WithDracoDecoder(d DracoDecoder) LoaderBuilderOption {
	return func(l *loader) {
		l.dracoDecoder = d
	}
}

// WithWorkers sets the number of goroutines used by LoadTextures. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithDocument is an option builder that pre-populates the document cache, so Load(key) skips file access.
//
// Parameters:
//   - key: the path the document is cached under
//   - doc: the decoded document
//
// Returns:
//   - LoaderBuilderOption: a function that applies the document option to a loader
func WithDocument(key string, doc *gltf.Document) LoaderBuilderOption {
	return func(l *loader) {
		l.documentCache[key] = doc
	}
}
