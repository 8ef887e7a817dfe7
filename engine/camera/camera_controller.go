package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines damped orbit controls around a target point.
//
// Input handlers call Rotate, RotateByPixels and Dolly to accumulate deltas. Nothing moves
// until Update is called once per frame. With damping enabled each Update consumes only a
// fraction of the pending deltas, so the camera glides toward rest instead of stopping dead.
type CameraController interface {
	// Update applies pending deltas to the attached camera and decays them.
	//
	// Returns:
	//   - bool: true if the camera moved noticeably this frame
	Update() bool

	// Rotate queues an orbit by the given angles.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle in radians, positive orbits the camera to the left
	//   - dElevation: vertical angle in radians, positive raises the camera
	Rotate(dAzimuth, dElevation float32)

	// RotateByPixels converts a pointer drag into an orbit. A drag across the full viewport
	// height turns the camera by one full revolution times the rotate speed.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - viewportHeight: the height of the drawing surface in pixels
	RotateByPixels(dx, dy, viewportHeight float32)

	// Dolly queues a change of distance to the target.
	//
	// Parameters:
	//   - scale: values above 1 move away, values below 1 move closer
	Dolly(scale float32)

	// Zoom is the scroll wheel entry point. Positive deltas move closer.
	//
	// Parameters:
	//   - delta: scroll offset in wheel steps
	Zoom(delta float32)

	// Target returns the orbit center.
	Target() mgl32.Vec3

	// SetTarget moves the orbit center. The camera keeps its position until the next Update.
	SetTarget(t mgl32.Vec3)

	// Radius returns the current distance from the target.
	Radius() float32

	// Azimuth returns the current horizontal angle in radians (0 = +Z axis).
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane in radians.
	Elevation() float32

	// DampingEnabled reports whether damping is on.
	DampingEnabled() bool

	// DampingFactor returns the fraction of pending motion applied per Update.
	DampingFactor() float32

	// Camera returns the controlled camera.
	Camera() Camera
}
