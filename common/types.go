// package common contains plain data types and small helpers shared by the viewer packages. They are not interface-wrapped
// structs, just plain structs that express commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// RGBAImage holds decoded RGBA pixel data ready for GPU upload.
type RGBAImage struct {
	// Pixels is the pixel data in RGBA format, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the image in pixels.
	Width uint32
	// Height is the height of the image in pixels.
	Height uint32
}

// ImageSource describes where the bytes of a texture image come from.
// For images embedded in a model file the Data field holds the encoded bytes.
// For external images the Path field holds the file path.
type ImageSource struct {
	// Name is an identifier for this image (e.g., "oak", "ChairSeat_baseColor").
	Name string

	// Path is the file path for external images (empty for embedded).
	Path string

	// Data contains encoded image bytes for embedded images.
	Data []byte

	// MimeType indicates the image format (e.g., "image/png", "image/webp").
	MimeType string
}

// Decode decodes the image to raw RGBA pixel data.
// Uses either embedded Data bytes or loads from Path on disk.
// Supports PNG, JPEG, WebP and BMP formats.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - *RGBAImage: the decoded pixels and dimensions
//   - error: error if decoding fails
func (s *ImageSource) Decode() (*RGBAImage, error) {
	if s == nil {
		return nil, fmt.Errorf("image source is nil")
	}

	var img image.Image
	var err error

	if len(s.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(s.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode embedded image %q: %w", s.Name, err)
		}
	} else if s.Path != "" {
		file, fileErr := os.Open(s.Path)
		if fileErr != nil {
			return nil, fmt.Errorf("failed to open image file %s: %w", s.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image file %s: %w", s.Path, err)
		}
	} else {
		return nil, fmt.Errorf("image source %q has neither data nor path", s.Name)
	}

	return ToRGBA(img), nil
}

// ToRGBA converts any image into tightly packed RGBA pixels.
func ToRGBA(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &RGBAImage{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
}
