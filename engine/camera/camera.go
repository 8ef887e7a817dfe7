package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Default perspective settings of the product viewer camera.
const (
	DefaultFovDegrees float32 = 75
	DefaultNear       float32 = 0.1
	DefaultFar        float32 = 100
)

type cameraImpl struct {
	up mgl32.Vec3

	fov    float32 // degrees, vertical
	aspect float32
	near   float32
	far    float32

	position mgl32.Vec3
	target   mgl32.Vec3

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera defines a perspective camera.
//
// The projection matrix is only recomputed by UpdateProjectionMatrix, so a caller changing
// several parameters (for example on a window resize) pays for one recomputation. The view
// matrix follows Position and LookAt immediately.
//
// Matrices use the OpenGL clip convention (z in [-1, 1]). Renderers targeting a [0, 1]
// depth range apply common.ClipSpaceCorrection.
type Camera interface {
	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Position returns the camera position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at point
	Target() mgl32.Vec3

	// SetPosition moves the camera and refreshes the view matrix.
	//
	// Parameters:
	//   - p: the new eye position
	SetPosition(p mgl32.Vec3)

	// LookAt points the camera at target and refreshes the view matrix.
	//
	// Parameters:
	//   - target: the point to look at
	LookAt(target mgl32.Vec3)

	// SetAspect stores a new aspect ratio. Call UpdateProjectionMatrix to apply it.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// SetFov stores a new vertical field of view in degrees. Call UpdateProjectionMatrix to apply it.
	SetFov(fov float32)

	// UpdateProjectionMatrix recomputes the projection from fov, aspect, near and far.
	UpdateProjectionMatrix()

	// ViewMatrix returns the world to camera transform.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the last computed projection.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	ViewProjectionMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective camera with the provided options.
// Defaults to a 75 degree field of view, aspect 1, near 0.1 and far 100, placed at the origin
// looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		up:       mgl32.Vec3{0, 1, 0},
		fov:      DefaultFovDegrees,
		aspect:   1.0,
		near:     DefaultNear,
		far:      DefaultFar,
		target:   mgl32.Vec3{0, 0, -1},
		position: mgl32.Vec3{0, 0, 0},
	}
	for _, option := range options {
		option(c)
	}
	c.updateView()
	c.UpdateProjectionMatrix()
	return c
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.position = p
	c.updateView()
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.target = target
	c.updateView()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.projectionMatrix = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix.Mul4(c.viewMatrix)
}

// updateView recalculates the view matrix from position, target and up.
// Degenerate setups (position == target) keep the previous matrix.
func (c *cameraImpl) updateView() {
	if c.position.Sub(c.target).Len() == 0 {
		return
	}
	c.viewMatrix = mgl32.LookAtV(c.position, c.target, c.up)
}
