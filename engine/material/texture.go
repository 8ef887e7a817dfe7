package material

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

var textureIDs atomic.Uint64

// Texture is a decoded image that can be assigned to a material's color map.
// Textures are immutable once created and may be shared by any number of materials.
type Texture struct {
	// ID uniquely identifies the texture for GPU resource caches.
	ID uint64
	// Name is the human readable identifier (option key or glTF image name).
	Name string
	// Path is the file the texture was decoded from, empty for embedded images.
	Path string
	// Image holds the decoded RGBA pixels.
	Image *common.RGBAImage
}

// NewTexture wraps decoded pixels in a Texture with a fresh ID.
//
// Parameters:
//   - name: the texture identifier
//   - path: the source path, or "" for embedded images
//   - img: the decoded pixels
//
// Returns:
//   - *Texture: the new texture
func NewTexture(name, path string, img *common.RGBAImage) *Texture {
	return &Texture{
		ID:    textureIDs.Add(1),
		Name:  name,
		Path:  path,
		Image: img,
	}
}
