package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// gltfLoaderBackendImpl opens .gltf and .glb files with the qmuntal/gltf decoder.
type gltfLoaderBackendImpl struct{}

var _ loaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() loaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Open(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode gltf %s: %w", path, err)
	}
	return doc, nil
}
