package common

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses a "#rrggbb" or "#rgb" string into a color.
//
// Parameters:
//   - hex: the color in CSS hex notation
//
// Returns:
//   - colorful.Color: the parsed color in sRGB space
//   - error: error if the string is not a valid hex color
func ParseHexColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return c, nil
}

// HexToColor converts a 0xRRGGBB integer into a color.
func HexToColor(rgb uint32) colorful.Color {
	return colorful.Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}

// LinearRGBA returns the color as linear-space float32 RGBA, which is what the shaders expect.
func LinearRGBA(c colorful.Color, alpha float32) [4]float32 {
	r, g, b := c.LinearRgb()
	return [4]float32{float32(r), float32(g), float32(b), alpha}
}
