package loader

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/qmuntal/gltf"
)

// ExtDracoMeshCompression is the glTF extension name for Draco compressed primitives.
// Reference: https://github.com/KhronosGroup/glTF/tree/main/extensions/2.0/Khronos/KHR_draco_mesh_compression
const ExtDracoMeshCompression = "KHR_draco_mesh_compression"

// DracoDecoder decompresses primitives that carry the KHR_draco_mesh_compression extension.
type DracoDecoder interface {
	// DecodePrimitive returns the decompressed geometry of prim.
	//
	// Parameters:
	//   - doc: the owning document, for access to buffer views
	//   - prim: the compressed primitive
	//   - decoderPath: the directory holding decoder resources
	//
	// Returns:
	//   - *scene.Geometry: the decoded vertex data
	//   - error: error if decoding fails
	DecodePrimitive(doc *gltf.Document, prim *gltf.Primitive, decoderPath string) (*scene.Geometry, error)
}

// isDracoCompressed reports whether a primitive stores its geometry through the Draco extension.
func isDracoCompressed(prim *gltf.Primitive) bool {
	if prim == nil || prim.Extensions == nil {
		return false
	}
	_, ok := prim.Extensions[ExtDracoMeshCompression]
	return ok
}
