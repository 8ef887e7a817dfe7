package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewerCamera() Camera {
	return NewCamera(WithPosition(0, 0.8, 1), WithLookAt(0, 0.4, 0))
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, float32(75), c.Fov())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, float32(1), c.Aspect())
}

func TestSetAspectRequiresProjectionUpdate(t *testing.T) {
	c := newViewerCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(2)
	assert.Equal(t, before, c.ProjectionMatrix())

	c.UpdateProjectionMatrix()
	after := c.ProjectionMatrix()
	assert.InDelta(t, before[0]/2, after[0], 1e-6)
	assert.Equal(t, before[5], after[5])
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := newViewerCamera()

	// The target must land on the camera's forward (-Z) axis.
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0.4, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-5)
	assert.InDelta(t, 0, p.Y(), 1e-5)
	assert.Less(t, p.Z(), float32(0))
}

func TestControllerStartsAtCameraPosition(t *testing.T) {
	c := newViewerCamera()
	cc := NewOrbitController(c, WithTarget(0, 0.4, 0))

	assert.InDelta(t, math32.Sqrt(1.16), cc.Radius(), 1e-5)
	assert.InDelta(t, 0, cc.Azimuth(), 1e-6)
	assert.True(t, cc.DampingEnabled())
	assert.Equal(t, float32(0.05), cc.DampingFactor())

	assert.False(t, cc.Update())
	pos := c.Position()
	assert.InDelta(t, 0, pos.X(), 1e-5)
	assert.InDelta(t, 0.8, pos.Y(), 1e-5)
	assert.InDelta(t, 1, pos.Z(), 1e-5)
}

func TestDampedRotationConverges(t *testing.T) {
	c := newViewerCamera()
	cc := NewOrbitController(c, WithTarget(0, 0.4, 0))

	cc.Rotate(1, 0)
	require.True(t, cc.Update())
	assert.InDelta(t, 0.05, cc.Azimuth(), 1e-6)

	for range 400 {
		cc.Update()
	}
	// The geometric series of damped steps sums to the full requested rotation.
	assert.InDelta(t, 1, cc.Azimuth(), 1e-3)
	assert.False(t, cc.Update())
	assert.InDelta(t, math32.Sqrt(1.16), c.Position().Sub(cc.Target()).Len(), 1e-4)
}

func TestUndampedRotationIsImmediate(t *testing.T) {
	c := newViewerCamera()
	cc := NewOrbitController(c, WithTarget(0, 0.4, 0), WithDamping(false, 0))

	cc.Rotate(0.5, 0)
	cc.Update()
	assert.InDelta(t, 0.5, cc.Azimuth(), 1e-6)
	assert.False(t, cc.Update())
}

func TestElevationIsClamped(t *testing.T) {
	c := newViewerCamera()
	cc := NewOrbitController(c, WithTarget(0, 0.4, 0), WithDamping(false, 0), WithElevationLimits(0, 1))

	cc.Rotate(0, 10)
	cc.Update()
	assert.Equal(t, float32(1), cc.Elevation())

	cc.Rotate(0, -10)
	cc.Update()
	assert.Equal(t, float32(0), cc.Elevation())
}

func TestDollyAndRadiusLimits(t *testing.T) {
	c := newViewerCamera()
	cc := NewOrbitController(c, WithTarget(0, 0.4, 0), WithRadiusLimits(0.5, 2))

	cc.Dolly(10)
	cc.Update()
	assert.Equal(t, float32(2), cc.Radius())

	cc.Zoom(100)
	cc.Update()
	assert.Equal(t, float32(0.5), cc.Radius())

	cc.Dolly(-1)
	cc.Update()
	assert.Equal(t, float32(0.5), cc.Radius())
}

func TestRotateByPixels(t *testing.T) {
	c := newViewerCamera()
	cc := NewOrbitController(c, WithTarget(0, 0.4, 0), WithDamping(false, 0))

	cc.RotateByPixels(-100, 0, 200)
	cc.Update()
	assert.InDelta(t, math32.Pi, cc.Azimuth(), 1e-5)

	cc.RotateByPixels(10, 10, 0)
	assert.False(t, cc.Update())
}
