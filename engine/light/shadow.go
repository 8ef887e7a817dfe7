package light

import "github.com/go-gl/mathgl/mgl32"

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const ShadowMapResolution = 2048

// Default orthographic bounds of the directional light's shadow camera. They are
// sized to tightly enclose a single piece of furniture standing at the origin.
const (
	DefaultShadowNear   float32 = 1.0
	DefaultShadowFar    float32 = 4.0
	DefaultShadowLeft   float32 = -0.5
	DefaultShadowRight  float32 = 0.5
	DefaultShadowTop    float32 = 1.0
	DefaultShadowBottom float32 = -0.5
)

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// ShadowCamera is the orthographic camera a shadow-casting directional light renders its depth map from.
type ShadowCamera struct {
	// MapWidth and MapHeight are the shadow map dimensions in texels.
	MapWidth, MapHeight uint32
	// Near and Far are the clip distances along the light direction.
	Near, Far float32
	// Left, Right, Top and Bottom are the orthographic bounds in light space.
	Left, Right, Top, Bottom float32
	// Bias is the constant depth bias.
	Bias float32
}

// DefaultShadowCamera returns the shadow camera every directional light starts with.
func DefaultShadowCamera() ShadowCamera {
	return ShadowCamera{
		MapWidth:  ShadowMapResolution,
		MapHeight: ShadowMapResolution,
		Near:      DefaultShadowNear,
		Far:       DefaultShadowFar,
		Left:      DefaultShadowLeft,
		Right:     DefaultShadowRight,
		Top:       DefaultShadowTop,
		Bottom:    DefaultShadowBottom,
		Bias:      DefaultShadowBias,
	}
}

// ProjectionMatrix returns the OpenGL-convention orthographic projection of the shadow camera.
func (s ShadowCamera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Ortho(s.Left, s.Right, s.Bottom, s.Top, s.Near, s.Far)
}

// FrustumCorners returns the eight corners of the shadow volume in light view space.
// The first four lie on the near plane, the last four on the far plane, each in
// (left-bottom, right-bottom, right-top, left-top) order.
//
// Returns:
//   - [8]mgl32.Vec3: the corners, with -Z pointing away from the light
func (s ShadowCamera) FrustumCorners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i, d := range [2]float32{s.Near, s.Far} {
		out[i*4+0] = mgl32.Vec3{s.Left, s.Bottom, -d}
		out[i*4+1] = mgl32.Vec3{s.Right, s.Bottom, -d}
		out[i*4+2] = mgl32.Vec3{s.Right, s.Top, -d}
		out[i*4+3] = mgl32.Vec3{s.Left, s.Top, -d}
	}
	return out
}
