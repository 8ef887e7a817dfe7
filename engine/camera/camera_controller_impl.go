package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// motionEpsilon is the squared position change below which Update reports no movement.
const motionEpsilon float32 = 1e-6

// cameraControllerImpl is the orbit implementation of CameraController.
// Spherical coordinates are measured around target; the camera position is derived from them on every Update.
type cameraControllerImpl struct {
	camera Camera
	target mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Pending deltas consumed by Update
	deltaAzimuth   float32
	deltaElevation float32
	scale          float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	enableDamping bool
	dampingFactor float32
	rotateSpeed   float32
	zoomSpeed     float32

	lastPosition mgl32.Vec3
}

var _ CameraController = &cameraControllerImpl{}

// NewOrbitController attaches damped orbit controls to a camera.
// The initial spherical coordinates are derived from the camera's current position relative to the target,
// so the first Update leaves the camera where it is.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		camera: cam,
		target: cam.Target(),
		scale:  1,

		minRadius:    0,
		maxRadius:    math32.Inf(1),
		minElevation: -math32.Pi/2 + 1e-6,
		maxElevation: math32.Pi/2 - 1e-6,

		enableDamping: true,
		dampingFactor: 0.05,
		rotateSpeed:   1.0,
		zoomSpeed:     1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.syncFromCamera()
	cam.LookAt(cc.target)
	cc.lastPosition = cam.Position()
	return cc
}

// syncFromCamera recomputes the spherical coordinates from the camera position.
func (cc *cameraControllerImpl) syncFromCamera() {
	offset := cc.camera.Position().Sub(cc.target)
	cc.radius = offset.Len()
	if cc.radius == 0 {
		cc.azimuth, cc.elevation = 0, 0
		return
	}
	cc.azimuth = math32.Atan2(offset.X(), offset.Z())
	cc.elevation = math32.Asin(common.Clamp(offset.Y()/cc.radius, -1, 1))
}

// position computes the camera position from the spherical coordinates.
func (cc *cameraControllerImpl) position() mgl32.Vec3 {
	cosElev := math32.Cos(cc.elevation)
	sinElev := math32.Sin(cc.elevation)
	cosAzim := math32.Cos(cc.azimuth)
	sinAzim := math32.Sin(cc.azimuth)

	return mgl32.Vec3{
		cc.target.X() + cc.radius*cosElev*sinAzim,
		cc.target.Y() + cc.radius*sinElev,
		cc.target.Z() + cc.radius*cosElev*cosAzim,
	}
}

func (cc *cameraControllerImpl) Update() bool {
	if cc.enableDamping {
		cc.azimuth += cc.deltaAzimuth * cc.dampingFactor
		cc.elevation += cc.deltaElevation * cc.dampingFactor
	} else {
		cc.azimuth += cc.deltaAzimuth
		cc.elevation += cc.deltaElevation
	}

	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	cc.radius = common.Clamp(cc.radius*cc.scale, cc.minRadius, cc.maxRadius)

	pos := cc.position()
	cc.camera.SetPosition(pos)
	cc.camera.LookAt(cc.target)

	if cc.enableDamping {
		cc.deltaAzimuth *= 1 - cc.dampingFactor
		cc.deltaElevation *= 1 - cc.dampingFactor
	} else {
		cc.deltaAzimuth, cc.deltaElevation = 0, 0
	}
	cc.scale = 1

	moved := pos.Sub(cc.lastPosition)
	cc.lastPosition = pos
	return moved.Dot(moved) > motionEpsilon
}

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.deltaAzimuth += dAzimuth
	cc.deltaElevation += dElevation
}

func (cc *cameraControllerImpl) RotateByPixels(dx, dy, viewportHeight float32) {
	if viewportHeight <= 0 {
		return
	}
	perPixel := 2 * math32.Pi * cc.rotateSpeed / viewportHeight
	cc.Rotate(-dx*perPixel, dy*perPixel)
}

func (cc *cameraControllerImpl) Dolly(scale float32) {
	if scale <= 0 {
		return
	}
	cc.scale *= scale
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.Dolly(math32.Pow(0.95, cc.zoomSpeed*delta))
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(t mgl32.Vec3) {
	cc.target = t
	cc.syncFromCamera()
}

func (cc *cameraControllerImpl) Radius() float32 {
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	return cc.elevation
}

func (cc *cameraControllerImpl) DampingEnabled() bool {
	return cc.enableDamping
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}
