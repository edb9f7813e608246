package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basisEpsilon = 1e-5

func assertVecNear(t *testing.T, want, got mgl32.Vec3, eps float32) {
	t.Helper()
	assert.Truef(t, want.ApproxEqualThreshold(got, eps), "want %v, got %v", want, got)
}

func assertOrthonormal(t *testing.T, cc CameraController) {
	t.Helper()
	f, u, r := cc.Front(), cc.Up(), cc.Right()

	assert.InDelta(t, 1.0, f.Len(), basisEpsilon, "|front|")
	assert.InDelta(t, 1.0, u.Len(), basisEpsilon, "|up|")
	assert.InDelta(t, 1.0, r.Len(), basisEpsilon, "|right|")
	assert.InDelta(t, 0.0, f.Dot(u), basisEpsilon, "front.up")
	assert.InDelta(t, 0.0, f.Dot(r), basisEpsilon, "front.right")
	assert.InDelta(t, 0.0, u.Dot(r), basisEpsilon, "up.right")
	assertVecNear(t, r, f.Cross(u), basisEpsilon)
}

func TestNewCameraController_Defaults(t *testing.T) {
	cc := NewCameraController()

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, cc.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, cc.Front())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.Up())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cc.Right())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.WorldUp())
	assert.Equal(t, float32(60), cc.Fov())
	assert.Equal(t, float32(2.5), cc.MovementSpeed())
	assert.Equal(t, float32(100), cc.MaxSpeed())
	assert.Equal(t, MovementModeFree, cc.MovementMode())
	assert.False(t, cc.HasSeenPointer())
	assert.False(t, cc.Boosted())
	assert.Zero(t, cc.RollPending())
	assert.InDelta(t, -90.0, cc.Yaw(), 1e-4)
	assert.Zero(t, cc.Pitch())
}

func TestNewCameraController_OptionsAreClamped(t *testing.T) {
	cc := NewCameraController(
		WithFov(500),
		WithMovementSpeed(-3),
	)
	assert.Equal(t, float32(125), cc.Fov())
	assert.Equal(t, float32(0), cc.MovementSpeed())

	cc = NewCameraController(WithFovBounds(10, 90), WithFov(5), WithMaxSpeed(20), WithMovementSpeed(50))
	assert.Equal(t, float32(10), cc.Fov())
	assert.Equal(t, float32(20), cc.MovementSpeed())
}

func TestNewCameraController_DegenerateOrientationFallsBack(t *testing.T) {
	cc := NewCameraController(WithOrientation(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 2, 0}))

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, cc.Front())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.Up())
	assertOrthonormal(t, cc)
}

func TestNewCameraController_CustomOrientation(t *testing.T) {
	cc := NewCameraController(
		WithPosition(mgl32.Vec3{1, 2, 3}),
		WithOrientation(mgl32.Vec3{0, -1, -1}, mgl32.Vec3{0, 1, 0}),
	)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cc.Position())
	assertVecNear(t, mgl32.Vec3{0, -1, -1}.Normalize(), cc.Front(), basisEpsilon)
	assert.InDelta(t, -45.0, cc.Pitch(), 1e-3)
	assertOrthonormal(t, cc)
}

func TestApplyLook_FirstSampleOnlySeeds(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))

	cc.ApplyLook(640, 360, true)

	assert.True(t, cc.HasSeenPointer())
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, cc.Front())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.Up())
}

func TestApplyLook_ResetPointerReseeds(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.ApplyLook(0, 0, true)
	cc.ApplyLook(10, 0, true)
	front := cc.Front()

	cc.ResetPointer()
	assert.False(t, cc.HasSeenPointer())

	// A large jump right after capture must not rotate.
	cc.ApplyLook(5000, 5000, true)
	assert.Equal(t, front, cc.Front())
	assert.True(t, cc.HasSeenPointer())
}

func TestApplyLook_YawTurnsRight(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.ApplyLook(0, 0, true)

	cc.ApplyLook(90, 0, true)

	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cc.Front(), basisEpsilon)
	assertVecNear(t, mgl32.Vec3{0, 0, 1}, cc.Right(), basisEpsilon)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, cc.Up(), basisEpsilon)
	assert.InDelta(t, 0.0, cc.Yaw(), 1e-4)
	assertOrthonormal(t, cc)
}

func TestApplyLook_PointerUpPitchesUp(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.ApplyLook(0, 0, true)

	// Screen y decreases when the pointer moves up.
	cc.ApplyLook(0, -30, true)

	s, c := math.Sincos(30 * math.Pi / 180)
	assertVecNear(t, mgl32.Vec3{0, float32(s), float32(-c)}, cc.Front(), basisEpsilon)
	assert.InDelta(t, 30.0, cc.Pitch(), 1e-3)
	assertOrthonormal(t, cc)
}

func TestApplyLook_SensitivityScalesDeltas(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(0.1))
	cc.ApplyLook(0, 0, true)

	cc.ApplyLook(0, -300, true)

	assert.InDelta(t, 30.0, cc.Pitch(), 1e-3)
}

func TestApplyLook_PitchIsClamped(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		sign float32
	}{
		{name: "up", y: -1, sign: 1},
		{name: "down", y: 1, sign: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController(WithMouseSensitivity(1))
			cc.ApplyLook(0, 0, true)

			for i := 1; i <= 20; i++ {
				cc.ApplyLook(float64(i*7), tt.y*float64(i*1000), true)

				assert.LessOrEqual(t, cc.Pitch()*tt.sign, MaxPitch)
				elevation := math.Asin(float64(cc.Front().Dot(cc.WorldUp()))) * 180 / math.Pi
				assert.LessOrEqual(t, elevation*float64(tt.sign), float64(MaxPitch)+0.05)
				assertOrthonormal(t, cc)
			}
			assert.InDelta(t, MaxPitch*tt.sign, cc.Pitch(), 1e-3)
		})
	}
}

func TestApplyLook_UnconstrainedPitchPassesClamp(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.ApplyLook(0, 0, false)

	cc.ApplyLook(0, -95, false)

	assert.Greater(t, cc.Pitch(), MaxPitch)
	assertOrthonormal(t, cc)
}

func TestApplyLook_UnconstrainedPitchLoopsOverPole(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.ApplyLook(0, 0, false)

	wantPitch := []float32{20, 40, 60, 80, 100, 120, 140, 160, 180, -160, -140, -120, -100, -80, -60, -40, -20, 0}
	y := 0.0
	for i, want := range wantPitch {
		prevUp, prevRight := cc.Up(), cc.Right()

		y -= 20
		cc.ApplyLook(0, y, false)

		assert.Greaterf(t, cc.Up().Dot(prevUp), float32(0.9), "step %d flipped up", i+1)
		assert.Greaterf(t, cc.Right().Dot(prevRight), float32(0.999), "step %d flipped right", i+1)
		if want == 180 {
			assert.InDelta(t, 180, math.Abs(float64(cc.Pitch())), 1e-2)
		} else {
			assert.InDeltaf(t, want, cc.Pitch(), 1e-2, "step %d", i+1)
		}
		assertOrthonormal(t, cc)
	}

	// A full loop lands back on the starting view.
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, cc.Front(), 1e-4)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, cc.Up(), 1e-4)
}

func TestApplyLook_ZeroDeltaIsIdempotent(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(0.37))
	cc.ApplyLook(100, 100, true)
	cc.ApplyLook(153, 121, true)

	front, up, right := cc.Front(), cc.Up(), cc.Right()

	cc.ApplyLook(153, 121, true)

	assert.Equal(t, front, cc.Front())
	assert.Equal(t, up, cc.Up())
	assert.Equal(t, right, cc.Right())
}

func TestApplyLook_IgnoresNonFinitePointer(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.ApplyLook(0, 0, true)
	front := cc.Front()

	cc.ApplyLook(math.NaN(), 4, true)
	cc.ApplyLook(math.Inf(1), 4, true)

	assert.Equal(t, front, cc.Front())

	// The last valid sample is still the reference.
	cc.ApplyLook(90, 0, true)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cc.Front(), basisEpsilon)
}

func TestApplyRoll_Clockwise(t *testing.T) {
	cc := NewCameraController(WithRollSpeed(90))

	cc.ApplyRoll(RollClockwise, 1)

	assertVecNear(t, mgl32.Vec3{0, 0, -1}, cc.Front(), basisEpsilon)
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cc.Up(), basisEpsilon)
	assertVecNear(t, mgl32.Vec3{0, -1, 0}, cc.Right(), basisEpsilon)
	assert.Equal(t, cc.Up(), cc.WorldUp())
	assert.Zero(t, cc.RollPending())
	assertOrthonormal(t, cc)
}

func TestApplyRoll_CounterClockwiseAndBoost(t *testing.T) {
	cc := NewCameraController(WithRollSpeed(10), WithRollBoost(3))
	cc.SetBoosted(true)

	cc.ApplyRoll(RollCounterClockwise, 1)

	s, c := math.Sincos(30 * math.Pi / 180)
	assertVecNear(t, mgl32.Vec3{float32(-s), float32(c), 0}, cc.Up(), basisEpsilon)
	assertOrthonormal(t, cc)
}

func TestApplyRoll_ZeroDtIsNoop(t *testing.T) {
	cc := NewCameraController()

	cc.ApplyRoll(RollClockwise, 0)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.Up())
	assert.Zero(t, cc.RollPending())
}

func TestApplyRoll_ResetRelevels(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1), WithRollSpeed(45))
	cc.ApplyRoll(RollClockwise, 0.7)
	cc.ApplyLook(0, 0, true)
	cc.ApplyLook(25, -40, true)
	cc.ApplyRoll(RollCounterClockwise, 0.2)

	cc.ApplyRoll(RollReset, 0)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.Up())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.WorldUp())
	assert.Zero(t, cc.RollPending())
	assert.Zero(t, cc.Pitch())
	assert.InDelta(t, 0.0, cc.Front().Y(), basisEpsilon)
	assertOrthonormal(t, cc)
}

func TestApplyRoll_ResetWhileLookingStraightUp(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1))
	cc.ApplyLook(0, 0, false)
	cc.ApplyLook(0, -90, false)

	cc.ApplyRoll(RollReset, 0)

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.Up())
	assertVecNear(t, mgl32.Vec3{0, 0, -1}, cc.Front(), basisEpsilon)
	assertOrthonormal(t, cc)
}

func TestApplyLook_YawAfterRollUsesRolledAxis(t *testing.T) {
	cc := NewCameraController(WithRollSpeed(90), WithMouseSensitivity(1))
	cc.ApplyRoll(RollClockwise, 1)
	rolledUp := cc.Up()

	cc.ApplyLook(0, 0, true)
	cc.ApplyLook(10, 0, true)

	s, c := math.Sincos(10 * math.Pi / 180)
	front := cc.Front()
	assertVecNear(t, mgl32.Vec3{0, float32(-s), float32(-c)}, front, basisEpsilon)

	// Rotation about the rolled up axis keeps front orthogonal to it; a world-up yaw
	// would have swung front along X instead.
	assert.InDelta(t, 0.0, front.Dot(rolledUp), basisEpsilon)
	assert.InDelta(t, 0.0, front.X(), basisEpsilon)
	assertVecNear(t, rolledUp, cc.Up(), basisEpsilon)
	assertOrthonormal(t, cc)
}

func TestBasisStaysOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	cc := NewCameraController(WithMouseSensitivity(0.25), WithRollSpeed(60))

	x, y := 0.0, 0.0
	for i := 0; i < 5000; i++ {
		switch rng.Intn(10) {
		case 0:
			cc.ApplyRoll(RollClockwise, rng.Float32()*0.1)
		case 1:
			cc.ApplyRoll(RollCounterClockwise, rng.Float32()*0.1)
		case 2:
			if rng.Intn(20) == 0 {
				cc.ApplyRoll(RollReset, 0)
			}
		case 3:
			cc.SetBoosted(rng.Intn(2) == 0)
		default:
			x += rng.NormFloat64() * 40
			y += rng.NormFloat64() * 40
			cc.ApplyLook(x, y, rng.Intn(4) != 0)
		}
		assertOrthonormal(t, cc)
		if t.Failed() {
			t.Fatalf("basis invalid after step %d", i)
		}
	}
}

func TestApplyMovement(t *testing.T) {
	tests := []struct {
		name      string
		direction MoveDirection
		want      mgl32.Vec3
	}{
		{name: "forward", direction: MoveForward, want: mgl32.Vec3{0, 0, 0.5}},
		{name: "backward", direction: MoveBackward, want: mgl32.Vec3{0, 0, 5.5}},
		{name: "left", direction: MoveLeft, want: mgl32.Vec3{-2.5, 0, 3}},
		{name: "right", direction: MoveRight, want: mgl32.Vec3{2.5, 0, 3}},
		{name: "up", direction: MoveUp, want: mgl32.Vec3{0, 2.5, 3}},
		{name: "down", direction: MoveDown, want: mgl32.Vec3{0, -2.5, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewCameraController()
			cc.ApplyMovement(tt.direction, 1)
			assertVecNear(t, tt.want, cc.Position(), 1e-5)
		})
	}
}

func TestApplyMovement_ZeroDtIsNoop(t *testing.T) {
	cc := NewCameraController()
	cc.ApplyMovement(MoveForward, 0)
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, cc.Position())
}

func TestApplyMovement_Boost(t *testing.T) {
	cc := NewCameraController(WithMovementSpeed(1), WithBoostFactor(4))
	cc.SetBoosted(true)

	cc.ApplyMovement(MoveRight, 0.5)

	assertVecNear(t, mgl32.Vec3{2, 0, 3}, cc.Position(), 1e-5)
}

func TestApplyMovement_VerticalIgnoresPitch(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1), WithMovementSpeed(1))
	cc.ApplyLook(0, 0, true)
	cc.ApplyLook(0, -60, true)

	cc.ApplyMovement(MoveUp, 1)

	assertVecNear(t, mgl32.Vec3{0, 1, 3}, cc.Position(), 1e-5)
}

func TestApplyMovement_PlanarMode(t *testing.T) {
	cc := NewCameraController(
		WithMouseSensitivity(1),
		WithMovementSpeed(1),
		WithMovementMode(MovementModePlanar),
	)
	cc.ApplyLook(0, 0, true)
	cc.ApplyLook(0, -45, true)

	cc.ApplyMovement(MoveForward, 2)

	assertVecNear(t, mgl32.Vec3{0, 0, 1}, cc.Position(), 1e-5)

	cc.SetMovementMode(MovementModeFree)
	cc.ApplyMovement(MoveForward, 1)
	assert.Greater(t, cc.Position().Y(), float32(0.5))
}

func TestApplyZoom_Clamps(t *testing.T) {
	cc := NewCameraController()

	cc.ApplyZoom(10)
	assert.Equal(t, float32(50), cc.Fov())

	cc.ApplyZoom(1000)
	assert.Equal(t, float32(1), cc.Fov())

	cc.ApplyZoom(-1000)
	assert.Equal(t, float32(125), cc.Fov())

	cc.ApplyZoom(float32(math.NaN()))
	assert.Equal(t, float32(125), cc.Fov())

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		cc.ApplyZoom(float32(rng.NormFloat64() * 30))
		require.GreaterOrEqual(t, cc.Fov(), float32(1))
		require.LessOrEqual(t, cc.Fov(), float32(125))
	}
}

func TestApplySpeedAdjust_Clamps(t *testing.T) {
	cc := NewCameraController()

	cc.ApplySpeedAdjust(10, false)
	assert.InDelta(t, 3.5, cc.MovementSpeed(), 1e-5)

	cc.ApplySpeedAdjust(10, true)
	assert.InDelta(t, 13.5, cc.MovementSpeed(), 1e-5)

	cc.ApplySpeedAdjust(1e6, true)
	assert.Equal(t, float32(100), cc.MovementSpeed())

	cc.ApplySpeedAdjust(-1e6, true)
	assert.Equal(t, float32(0), cc.MovementSpeed())

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		cc.ApplySpeedAdjust(float32(rng.NormFloat64()*50), rng.Intn(2) == 0)
		require.GreaterOrEqual(t, cc.MovementSpeed(), float32(0))
		require.LessOrEqual(t, cc.MovementSpeed(), float32(100))
	}
}

func TestViewMatrix_TranslatesEye(t *testing.T) {
	cc := NewCameraController(
		WithPosition(mgl32.Vec3{0, 0, 3}),
		WithOrientation(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}),
	)

	view := cc.ViewMatrix()

	assert.True(t, view.ApproxEqualThreshold(mgl32.Translate3D(0, 0, -3), 1e-6), "view = %v", view)
	origin := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, origin.ApproxEqualThreshold(mgl32.Vec4{0, 0, -3, 1}, 1e-6), "origin = %v", origin)
}

func TestViewMatrix_MatchesBasis(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1), WithRollSpeed(30))
	cc.ApplyLook(0, 0, true)
	cc.ApplyLook(37, -12, true)
	cc.ApplyRoll(RollClockwise, 1)

	view := cc.ViewMatrix()

	// The eye maps to the origin and front maps to -Z in camera space.
	eye := cc.Position()
	assert.True(t, view.Mul4x1(eye.Vec4(1)).ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, 1e-5))
	ahead := view.Mul4x1(eye.Add(cc.Front()).Vec4(1))
	assert.True(t, ahead.ApproxEqualThreshold(mgl32.Vec4{0, 0, -1, 1}, 1e-5), "ahead = %v", ahead)
	above := view.Mul4x1(eye.Add(cc.Up()).Vec4(1))
	assert.True(t, above.ApproxEqualThreshold(mgl32.Vec4{0, 1, 0, 1}, 1e-5), "above = %v", above)
}

func TestSetOrientation(t *testing.T) {
	cc := NewCameraController()

	cc.SetOrientation(mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 3, 0})
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cc.Front(), basisEpsilon)
	assertVecNear(t, mgl32.Vec3{0, 0, 1}, cc.Right(), basisEpsilon)
	assertVecNear(t, mgl32.Vec3{0, 1, 0}, cc.WorldUp(), basisEpsilon)
	assertOrthonormal(t, cc)

	// Parallel input is ignored.
	cc.SetOrientation(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0})
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cc.Front(), basisEpsilon)

	cc.SetOrientation(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, cc.Front(), basisEpsilon)
}

func TestMirror(t *testing.T) {
	cc := NewCameraController(WithMouseSensitivity(1), WithRollSpeed(20))
	cc.ApplyLook(0, 0, true)
	cc.ApplyLook(15, -10, true)
	cc.ApplyRoll(RollClockwise, 1)

	m := cc.Mirror()

	assert.Equal(t, cc.Front().Mul(-1), m.Front())
	assert.Equal(t, cc.Right().Mul(-1), m.Right())
	assert.Equal(t, cc.Up(), m.Up())
	assert.Equal(t, cc.Position(), m.Position())
	assertOrthonormal(t, m)

	// The copy is independent of the primary.
	pos, front := cc.Position(), cc.Front()
	m.ApplyMovement(MoveForward, 1)
	m.ApplyLook(500, 500, true)
	assert.Equal(t, pos, cc.Position())
	assert.Equal(t, front, cc.Front())
}
