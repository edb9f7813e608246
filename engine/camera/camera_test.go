package camera

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCamera_WithoutController(t *testing.T) {
	c := NewCamera()

	assert.True(t, strings.HasPrefix(c.Label(), "camera_"))
	assert.Nil(t, c.Controller())
	assert.Nil(t, c.Mirror())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
	assert.InDelta(t, math.Pi/4, c.Fov(), 1e-6)

	// Update without a controller leaves the view alone.
	c.Update()
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())
}

func TestNewCamera_LabelsAreUnique(t *testing.T) {
	a, b := NewCamera(), NewCamera()
	assert.NotEqual(t, a.Label(), b.Label())

	assert.Equal(t, "main", NewCamera(WithLabel("main")).Label())
}

func TestCamera_FollowsController(t *testing.T) {
	ctrl := NewCameraController(WithMouseSensitivity(1))
	c := NewCamera(WithController(ctrl), WithAspect(16.0/9.0), WithNear(0.5), WithFar(50))

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, c.Position())
	assert.Equal(t, ctrl.ViewMatrix(), c.ViewMatrix())
	assert.InDelta(t, mgl32.DegToRad(60), c.Fov(), 1e-6)

	ctrl.ApplyMovement(MoveRight, 1)
	ctrl.ApplyLook(0, 0, true)
	ctrl.ApplyLook(20, 5, true)
	ctrl.ApplyZoom(15)

	// Matrices are captured on Update, not on read.
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, c.Position())
	c.Update()

	assert.Equal(t, ctrl.Position(), c.Position())
	assert.Equal(t, ctrl.ViewMatrix(), c.ViewMatrix())
	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), 1e-6)
	assert.True(t, c.ViewProjectionMatrix().ApproxEqualThreshold(c.ProjectionMatrix().Mul4(c.ViewMatrix()), 1e-6))
}

func TestCamera_ProjectionDepthRange(t *testing.T) {
	c := NewCamera(WithNear(0.1), WithFar(100))
	proj := c.ProjectionMatrix()

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.1, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})

	assert.InDelta(t, 0.0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1.0, far.Z()/far.W(), 1e-5)

	identity := c.InverseProjectionMatrix().Mul4(proj)
	assert.True(t, identity.ApproxEqualThreshold(mgl32.Ident4(), 1e-4), "inv * proj = %v", identity)
}

func TestCamera_SettersRecomputeProjection(t *testing.T) {
	c := NewCamera()
	before := c.ProjectionMatrix()

	c.SetAspect(2)
	assert.Equal(t, float32(2), c.Aspect())
	assert.InDelta(t, before[0]/2, c.ProjectionMatrix()[0], 1e-6)

	c.SetNear(1)
	c.SetFar(10)
	assert.Equal(t, float32(1), c.Near())
	assert.Equal(t, float32(10), c.Far())
	p := c.ProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	assert.InDelta(t, 1.0, p.Z()/p.W(), 1e-5)
}

func TestCamera_SetControllerRecomputes(t *testing.T) {
	c := NewCamera()
	ctrl := NewCameraController(WithPosition(mgl32.Vec3{4, 5, 6}))

	c.SetController(ctrl)

	assert.Equal(t, ctrl, c.Controller())
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, c.Position())
	assert.Equal(t, ctrl.ViewMatrix(), c.ViewMatrix())
}

func TestCamera_Frustum(t *testing.T) {
	c := NewCamera(WithController(NewCameraController()), WithNear(0.1), WithFar(100))
	f := c.Frustum()

	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, 0}, 0.1), "origin in front of the eye")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 10}, 0.1), "behind the eye")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, -200}, 0.1), "past the far plane")
	assert.False(t, f.ContainsSphere(mgl32.Vec3{50, 0, -3}, 0.1), "far off to the side")
}

func TestCamera_Uniform(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithPosition(mgl32.Vec3{1, 2, 3}))))
	u := c.Uniform()

	assert.Equal(t, [16]float32(c.ViewProjectionMatrix()), u.ViewProj)
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)

	buf := u.Marshal()
	require.Len(t, buf, GPUCameraUniformSize)
	assert.Equal(t, u.ViewProj[0], math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])))
	assert.Equal(t, u.ViewProj[15], math.Float32frombits(binary.LittleEndian.Uint32(buf[60:64])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:68])))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[72:76])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[76:80]))

	staged := u.AppendTo([]byte{0xff})
	assert.Len(t, staged, GPUCameraUniformSize+1)
	assert.Equal(t, buf, staged[1:])
	assert.Contains(t, GPUCameraUniformSource, "view_proj")
}

func TestCamera_Mirror(t *testing.T) {
	ctrl := NewCameraController()
	c := NewCamera(WithController(ctrl), WithLabel("main"), WithAspect(1.5))

	m := c.Mirror()
	require.NotNil(t, m)

	assert.Equal(t, "main_mirror", m.Label())
	assert.Equal(t, float32(1.5), m.Aspect())
	assert.Equal(t, ctrl.Front().Mul(-1), m.Controller().Front())
	assert.NotEqual(t, c.ViewMatrix(), m.ViewMatrix())

	// Looking backwards, the point behind the primary eye is now visible.
	f := m.Frustum()
	assert.True(t, f.ContainsSphere(mgl32.Vec3{0, 0, 10}, 0.1))
	assert.False(t, f.ContainsSphere(mgl32.Vec3{0, 0, 0}, 0.1))

	m.Controller().ApplyMovement(MoveForward, 1)
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, ctrl.Position())
}
