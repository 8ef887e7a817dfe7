package renderer

import "github.com/go-gl/mathgl/mgl32"

// globalsUniform mirrors the Globals struct in the lit shader. Field order and padding follow WGSL uniform layout rules.
type globalsUniform struct {
	ViewProj      mgl32.Mat4
	LightViewProj mgl32.Mat4
	Ambient       [4]float32
	LightDir      [4]float32
	LightColor    [4]float32
	// ShadowParams packs (bias, enabled, texel size, unused).
	ShadowParams [4]float32
}

// objectUniform mirrors the Object struct: the model matrix and (receiveShadow, unused, unused, unused).
type objectUniform struct {
	Model mgl32.Mat4
	Flags [4]float32
}

// materialUniform mirrors the MaterialUniform struct: base color and (hasMap, unused, unused, unused).
type materialUniform struct {
	BaseColor [4]float32
	Flags     [4]float32
}

// vertex is the interleaved vertex layout shared by every pipeline: position, normal, uv.
type vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

const vertexStride = 32

// overlayUniform mirrors the Overlay struct of the UI shader: (scale.xy, translate.xy) from window
// pixels to clip space, then an unused vec4 so it fits the material layout.
type overlayUniform struct {
	Transform [4]float32
	Params    [4]float32
}

// overlayUniformFor maps a display of the given size to clip space, y down.
func overlayUniformFor(displaySize [2]float32) overlayUniform {
	w, h := displaySize[0], displaySize[1]
	if w <= 0 || h <= 0 {
		return overlayUniform{}
	}
	return overlayUniform{Transform: [4]float32{2 / w, -2 / h, -1, 1}}
}
