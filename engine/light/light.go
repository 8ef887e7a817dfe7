package light

import "github.com/go-gl/mathgl/mgl32"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly, with no direction and no shadows.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant source shining from Position toward Target.
	// Only the direction matters for shading. The position also places the shadow camera.
	LightTypeDirectional
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     mgl32.Vec3
	target       mgl32.Vec3
	color        [3]float32
	intensity    float32
	castsShadows bool
	shadow       ShadowCamera
}

// Light defines the interface for a light source in the scene.
//
// Lights are attached to light nodes in the scene graph. The renderer collects
// them each frame and packs ambient and directional contributions into its
// uniform buffer.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Target returns the point a directional light shines at.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// Direction returns the normalized direction the light travels, from Position toward Target.
	//
	// Returns:
	//   - mgl32.Vec3: the unit direction, or zero if Position equals Target
	Direction() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as linear (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// CastsShadows reports whether the light renders a shadow map.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Shadow returns the shadow camera configuration. Mutating the returned pointer changes the light.
	//
	// Returns:
	//   - *ShadowCamera: the shadow camera
	Shadow() *ShadowCamera

	// ShadowViewMatrix returns the view matrix looking from Position toward Target.
	//
	// Returns:
	//   - mgl32.Mat4: the light's view matrix
	ShadowViewMatrix() mgl32.Mat4

	// SetPosition sets the world-space position of the light.
	SetPosition(x, y, z float32)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetCastsShadows enables or disables shadow casting.
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type with the provided options.
// Defaults to white light at intensity 1 with the default shadow camera and shadows disabled.
//
// Parameters:
//   - lightType: the kind of light
//   - opts: variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the new light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     [3]float32{1, 1, 1},
		intensity: 1,
		shadow:    DefaultShadowCamera(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return mgl32.Vec3{}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Shadow() *ShadowCamera {
	return &l.shadow
}

func (l *lightImpl) ShadowViewMatrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if d := l.Direction(); mgl32.Abs(d.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(l.position, l.target, up)
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}
