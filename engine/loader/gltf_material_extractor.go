package loader

import (
	"encoding/base64"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/material"
	"github.com/qmuntal/gltf"
)

// material returns the shared viewer material for a glTF material index, creating it on first use.
// Primitives without a material share one default white material.
func (imp *gltfImporter) material(idx *int) (material.Material, error) {
	if idx == nil {
		if imp.defaultMaterial == nil {
			imp.defaultMaterial = material.NewMaterial(material.WithName("Default"))
		}
		return imp.defaultMaterial, nil
	}
	if *idx < 0 || *idx >= len(imp.doc.Materials) {
		return nil, fmt.Errorf("material index %d out of range", *idx)
	}
	if imp.materials == nil {
		imp.materials = make([]material.Material, len(imp.doc.Materials))
	}
	if m := imp.materials[*idx]; m != nil {
		return m, nil
	}

	src := imp.doc.Materials[*idx]
	opts := []material.MaterialBuilderOption{
		material.WithName(common.Coalesce(src.Name, fmt.Sprintf("material_%d", *idx))),
	}

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			f := *pbr.BaseColorFactor
			opts = append(opts, material.WithBaseColor([4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}))
		}
		if pbr.BaseColorTexture != nil {
			tex, err := imp.texture(pbr.BaseColorTexture.Index)
			if err != nil {
				// A broken embedded image should not fail the whole model.
				log.Printf("[Loader] material %q: %v", src.Name, err)
			} else if tex != nil {
				opts = append(opts, material.WithMap(tex))
			}
		}
	}

	m := material.NewMaterial(opts...)
	imp.materials[*idx] = m
	return m, nil
}

// texture decodes a glTF texture into a viewer texture, once per texture index.
// Images are read from a buffer view (GLB), a data URI, or a file relative to the document.
func (imp *gltfImporter) texture(idx int) (*material.Texture, error) {
	if tex, ok := imp.textures[idx]; ok {
		return tex, nil
	}
	if idx < 0 || idx >= len(imp.doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", idx)
	}

	src := imp.doc.Textures[idx]
	if src.Source == nil {
		imp.textures[idx] = nil
		return nil, nil
	}
	if *src.Source < 0 || *src.Source >= len(imp.doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", *src.Source)
	}
	img := imp.doc.Images[*src.Source]

	source := &common.ImageSource{
		Name:     common.Coalesce(img.Name, fmt.Sprintf("image_%d", *src.Source)),
		MimeType: img.MimeType,
	}

	switch {
	case img.BufferView != nil:
		data, err := readBufferViewRaw(imp.doc, *img.BufferView)
		if err != nil {
			return nil, fmt.Errorf("failed to read image buffer view: %w", err)
		}
		source.Data = data
	case strings.HasPrefix(img.URI, "data:"):
		data, mimeType, err := decodeDataURI(img.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image data URI: %w", err)
		}
		source.Data = data
		source.MimeType = common.Coalesce(source.MimeType, mimeType)
	case img.URI != "":
		source.Path = filepath.Join(imp.baseDir, filepath.FromSlash(img.URI))
	default:
		imp.textures[idx] = nil
		return nil, nil
	}

	decoded, err := source.Decode()
	if err != nil {
		return nil, err
	}
	tex := material.NewTexture(source.Name, source.Path, decoded)
	imp.textures[idx] = tex
	return tex, nil
}

// readBufferViewRaw reads raw bytes from a buffer view by index (not through an accessor).
// This is used for image data which is stored directly in buffer views without accessor interpretation.
func readBufferViewRaw(doc *gltf.Document, bufferViewIndex int) ([]byte, error) {
	if bufferViewIndex < 0 || bufferViewIndex >= len(doc.BufferViews) {
		return nil, fmt.Errorf("bufferView index %d out of range", bufferViewIndex)
	}

	bv := doc.BufferViews[bufferViewIndex]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer index %d out of range", bv.Buffer)
	}

	buf := doc.Buffers[bv.Buffer]
	start := bv.ByteOffset
	end := start + bv.ByteLength
	if end > len(buf.Data) {
		return nil, fmt.Errorf("bufferView exceeds buffer bounds: offset=%d length=%d bufSize=%d", start, bv.ByteLength, len(buf.Data))
	}

	data := make([]byte, bv.ByteLength)
	copy(data, buf.Data[start:end])
	return data, nil
}

// decodeDataURI decodes a base64 data URI into raw bytes and extracts the MIME type.
func decodeDataURI(uri string) ([]byte, string, error) {
	// Format: data:[<mediatype>][;base64],<data>
	header, encoded, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI: no comma found")
	}
	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return nil, "", fmt.Errorf("data URI is not base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, mimeType, nil
}
