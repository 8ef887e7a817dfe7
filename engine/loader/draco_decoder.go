package loader

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/qmuntal/draco-go/gltf/draco"
	"github.com/qmuntal/gltf"
)

// ErrDracoDecode wraps every failure of the native Draco decoder.
var ErrDracoDecode = errors.New("draco decode failed")

// nativeDracoDecoder decodes KHR_draco_mesh_compression primitives with the Draco C++ library.
// The decoder is linked into the binary, so decoderPath is not read.
type nativeDracoDecoder struct{}

var _ DracoDecoder = &nativeDracoDecoder{}

// NewDracoDecoder returns the decoder NewLoader registers by default.
func NewDracoDecoder() DracoDecoder {
	return &nativeDracoDecoder{}
}

func (d *nativeDracoDecoder) DecodePrimitive(doc *gltf.Document, prim *gltf.Primitive, _ string) (*scene.Geometry, error) {
	ext, err := dracoExtension(prim)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDracoDecode, err)
	}
	bv := int(ext.BufferView)
	if bv < 0 || bv >= len(doc.BufferViews) {
		return nil, fmt.Errorf("%w: bufferView index %d out of range", ErrDracoDecode, bv)
	}

	// The draco reader looks the extension up on the primitive, so hand it the typed form.
	typed := *prim
	typed.Extensions = make(gltf.Extensions, len(prim.Extensions))
	for k, v := range prim.Extensions {
		typed.Extensions[k] = v
	}
	typed.Extensions[draco.ExtensionName] = ext

	pd, err := draco.UnmarshalMesh(doc, doc.BufferViews[bv])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDracoDecode, err)
	}

	indices, err := pd.ReadIndices(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: indices: %w", ErrDracoDecode, err)
	}
	positions, err := readDracoAttr[[3]float32](pd, &typed, gltf.POSITION)
	if err != nil {
		return nil, err
	}
	if positions == nil {
		return nil, fmt.Errorf("%w: primitive has no POSITION attribute", ErrDracoDecode)
	}
	normals, err := readDracoAttr[[3]float32](pd, &typed, gltf.NORMAL)
	if err != nil {
		return nil, err
	}
	uvs, err := readDracoAttr[[2]float32](pd, &typed, gltf.TEXCOORD_0)
	if err != nil {
		return nil, err
	}

	return scene.NewGeometry(positions, normals, uvs, indices), nil
}

// readDracoAttr reads one compressed attribute. Attributes the primitive does not compress return nil.
func readDracoAttr[T any](pd *draco.PrimitiveDecoder, prim *gltf.Primitive, name string) ([]T, error) {
	ext := prim.Extensions[draco.ExtensionName].(*draco.PrimitiveExt)
	if _, ok := ext.Attributes[name]; !ok {
		return nil, nil
	}
	if _, ok := prim.Attributes[name]; !ok {
		return nil, nil
	}
	data, err := pd.ReadAttr(prim, name, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDracoDecode, name, err)
	}
	out, ok := data.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: %s has unexpected type %T", ErrDracoDecode, name, data)
	}
	return out, nil
}

// dracoExtension returns the primitive's extension object in typed form. Documents decoded from
// files already carry it typed; documents built in memory may carry the raw JSON object instead.
func dracoExtension(prim *gltf.Primitive) (*draco.PrimitiveExt, error) {
	raw, ok := prim.Extensions[draco.ExtensionName]
	if !ok {
		return nil, fmt.Errorf("primitive has no %s extension", draco.ExtensionName)
	}
	if ext, ok := raw.(*draco.PrimitiveExt); ok {
		return ext, nil
	}

	data, ok := raw.(json.RawMessage)
	if !ok {
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", draco.ExtensionName, err)
		}
	}
	ext := new(draco.PrimitiveExt)
	if err := json.Unmarshal(data, ext); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", draco.ExtensionName, err)
	}
	return ext, nil
}
