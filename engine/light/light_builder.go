package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget is an option builder that sets the point a directional light shines at.
// Defaults to the origin.
//
// Parameters:
//   - x: the x target component
//   - y: the y target component
//   - z: the z target component
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = mgl32.Vec3{x, y, z}
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - rgb: the linear color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(rgb [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = rgb
	}
}

// WithIntensity is an option builder that sets the intensity multiplier of the light.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithCastsShadows is an option builder that enables shadow casting.
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithShadowCamera is an option builder that replaces the shadow camera configuration.
//
// Parameters:
//   - sc: the shadow camera
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow camera option to a lightImpl
func WithShadowCamera(sc ShadowCamera) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadow = sc
	}
}
