package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-freecam/common"
)

// MaxPitch is the pitch limit in degrees applied when ApplyLook constrains pitch.
// It stays short of 90 so front never becomes parallel to world up.
const MaxPitch float32 = 89.9

// levelUp is the world up vector restored by a roll reset.
var levelUp = mgl32.Vec3{0, 1, 0}

// cameraControllerImpl is the single implementation of CameraController.
// Orientation is stored as an explicit basis and updated with frame-relative rotations;
// yaw and pitch are tracked only for clamping and reporting.
type cameraControllerImpl struct {
	mu  *sync.Mutex
	log zerolog.Logger

	position mgl32.Vec3

	// Orthonormal basis; worldUp is the reference for re-deriving right
	front   mgl32.Vec3
	up      mgl32.Vec3
	right   mgl32.Vec3
	worldUp mgl32.Vec3

	yaw         float32
	pitch       float32
	rollPending float32

	// Optics
	fov    float32
	minFov float32
	maxFov float32

	// Speeds
	movementSpeed    float32
	maxSpeed         float32
	mouseSensitivity float32
	rollSpeed        float32 // degrees per second
	boostFactor      float32
	rollBoost        float32
	boosted          bool
	movementMode     MovementMode

	// Pointer tracking
	lastPointerX   float64
	lastPointerY   float64
	hasSeenPointer bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a free-flight controller with sensible defaults:
// positioned at (0, 0, 3) looking down -Z with +Y up.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:  &sync.Mutex{},
		log: zerolog.Nop(),

		position: mgl32.Vec3{0, 0, 3},
		front:    mgl32.Vec3{0, 0, -1},
		worldUp:  levelUp,

		fov:    60.0,
		minFov: 1.0,
		maxFov: 125.0,

		movementSpeed:    2.5,
		maxSpeed:         100.0,
		mouseSensitivity: 0.1,
		rollSpeed:        45.0,
		boostFactor:      3.0,
		rollBoost:        3.0,
		movementMode:     MovementModeFree,
	}

	for _, option := range options {
		option(cc)
	}

	if !cc.setOrientation(cc.front, cc.worldUp) {
		cc.log.Warn().
			Interface("front", cc.front).
			Interface("world_up", cc.worldUp).
			Msg("degenerate initial orientation, falling back to default basis")
		cc.setOrientation(mgl32.Vec3{0, 0, -1}, levelUp)
	}
	cc.fov = mgl32.Clamp(cc.fov, cc.minFov, cc.maxFov)
	cc.movementSpeed = mgl32.Clamp(cc.movementSpeed, 0, cc.maxSpeed)
	return cc
}

// --- internal helpers ---

func finite32(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func finite64(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// setOrientation rebuilds the basis from a view direction and world up.
// Returns false and leaves state untouched if the inputs are degenerate.
// Caller must hold the mutex (or own cc exclusively during construction).
func (cc *cameraControllerImpl) setOrientation(front, worldUp mgl32.Vec3) bool {
	f, ok := common.SafeNormalize(front)
	if !ok {
		return false
	}
	wu, ok := common.SafeNormalize(worldUp)
	if !ok {
		return false
	}
	r, ok := common.SafeNormalize(f.Cross(wu))
	if !ok {
		return false
	}
	u, _ := common.SafeNormalize(r.Cross(f))

	cc.front = f
	cc.right = r
	cc.up = u
	cc.worldUp = wu
	cc.pitch = common.ElevationDegrees(f, wu)
	cc.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(f.Z()), float64(f.X()))))
	cc.rollPending = 0
	return true
}

// forwardVector returns the direction forward/backward movement follows.
// In planar mode a vertical front yields the zero vector.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) forwardVector() mgl32.Vec3 {
	if cc.movementMode != MovementModePlanar {
		return cc.front
	}
	flat := cc.front.Sub(cc.worldUp.Mul(cc.front.Dot(cc.worldUp)))
	n, ok := common.SafeNormalize(flat)
	if !ok {
		return mgl32.Vec3{}
	}
	return n
}

// relevel restores world up to +Y and flattens front onto the horizontal plane.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) relevel() {
	flat := cc.front.Sub(levelUp.Mul(cc.front.Dot(levelUp)))
	front, ok := common.SafeNormalize(flat)
	if !ok {
		// Looking straight up or down: keep the heading implied by right.
		front, ok = common.SafeNormalize(levelUp.Cross(cc.right))
		if !ok {
			front = mgl32.Vec3{0, 0, -1}
		}
	}
	right, _ := common.SafeNormalize(front.Cross(levelUp))

	cc.front = front
	cc.right = right
	cc.up = levelUp
	cc.worldUp = levelUp
	cc.pitch = 0
	cc.rollPending = 0
}

// --- accessors ---

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) SetPosition(pos mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = pos
}

func (cc *cameraControllerImpl) Front() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.front
}

func (cc *cameraControllerImpl) Up() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.up
}

func (cc *cameraControllerImpl) Right() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.right
}

func (cc *cameraControllerImpl) WorldUp() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.worldUp
}

func (cc *cameraControllerImpl) SetOrientation(front, worldUp mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.setOrientation(front, worldUp) {
		cc.log.Debug().
			Interface("front", front).
			Interface("world_up", worldUp).
			Msg("ignoring degenerate orientation")
	}
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position.Add(cc.front)
}

func (cc *cameraControllerImpl) Yaw() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.yaw
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) RollPending() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.rollPending
}

func (cc *cameraControllerImpl) Fov() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.fov
}

func (cc *cameraControllerImpl) MovementSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.movementSpeed
}

func (cc *cameraControllerImpl) MaxSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) SetMouseSensitivity(sensitivity float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.mouseSensitivity = sensitivity
}

func (cc *cameraControllerImpl) MovementMode() MovementMode {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.movementMode
}

func (cc *cameraControllerImpl) SetMovementMode(mode MovementMode) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.movementMode = mode
}

func (cc *cameraControllerImpl) Boosted() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.boosted
}

func (cc *cameraControllerImpl) SetBoosted(boosted bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.boosted = boosted
}

func (cc *cameraControllerImpl) HasSeenPointer() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.hasSeenPointer
}

func (cc *cameraControllerImpl) ResetPointer() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.hasSeenPointer = false
}

// --- input mutators ---

func (cc *cameraControllerImpl) ApplyMovement(direction MoveDirection, dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if dt == 0 || !finite32(dt) {
		return
	}

	velocity := cc.movementSpeed * dt
	if cc.boosted {
		velocity *= cc.boostFactor
	}

	var dir mgl32.Vec3
	switch direction {
	case MoveForward:
		dir = cc.forwardVector()
	case MoveBackward:
		dir = cc.forwardVector().Mul(-1)
	case MoveLeft:
		dir = cc.right.Mul(-1)
	case MoveRight:
		dir = cc.right
	case MoveUp:
		dir = cc.worldUp
	case MoveDown:
		dir = cc.worldUp.Mul(-1)
	default:
		return
	}

	cc.position = cc.position.Add(dir.Mul(velocity))
}

func (cc *cameraControllerImpl) ApplyLook(x, y float64, constrainPitch bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if !finite64(x) || !finite64(y) {
		return
	}

	if !cc.hasSeenPointer {
		cc.lastPointerX = x
		cc.lastPointerY = y
		cc.hasSeenPointer = true
		return
	}

	deltaX := float32(x-cc.lastPointerX) * cc.mouseSensitivity
	deltaY := float32(cc.lastPointerY-y) * cc.mouseSensitivity // screen y grows downward
	cc.lastPointerX = x
	cc.lastPointerY = y

	if (deltaX == 0 && deltaY == 0) || !finite32(deltaX) || !finite32(deltaY) {
		return
	}

	cc.yaw += deltaX

	// Yaw about the current up axis, so an existing roll is respected.
	candidate, ok := common.SafeNormalize(common.RotateAbout(cc.front, cc.up, -deltaX))
	if !ok {
		return
	}

	right, ok := common.SafeNormalize(candidate.Cross(cc.worldUp))
	if !ok {
		// candidate is parallel to world up; up is orthogonal to candidate by construction.
		right, ok = common.SafeNormalize(candidate.Cross(cc.up))
		if !ok {
			return
		}
	}
	// Near the pole the cross product loses precision; keep right orthogonal to candidate.
	right, ok = common.SafeNormalize(right.Sub(candidate.Mul(right.Dot(candidate))))
	if !ok {
		return
	}

	step := deltaY
	var pitch float32
	if constrainPitch {
		// Pitch is re-measured from the basis so the clamp tracks the real elevation.
		current := common.ElevationDegrees(candidate, cc.worldUp)
		pitch = mgl32.Clamp(current+deltaY, -MaxPitch, MaxPitch)
		step = pitch - current
	} else {
		// Over the pole candidate x worldUp reverses; right must stay continuous with the
		// previous basis or up flips on every event.
		if right.Dot(cc.right) < 0 {
			right = right.Mul(-1)
		}
	}

	front, ok := common.SafeNormalize(common.RotateAbout(candidate, right, step))
	if !ok {
		return
	}
	up, ok := common.SafeNormalize(right.Cross(front))
	if !ok {
		return
	}

	if !constrainPitch {
		pitch = loopedPitch(front, up, cc.worldUp)
	}

	cc.front = front
	cc.right = right
	cc.up = up
	cc.pitch = pitch
}

// loopedPitch measures pitch in (-180, 180], counting past the pole while up points below
// the horizon.
func loopedPitch(front, up, worldUp mgl32.Vec3) float32 {
	e := common.ElevationDegrees(front, worldUp)
	if up.Dot(worldUp) >= 0 {
		return e
	}
	if e >= 0 {
		return 180 - e
	}
	return -180 - e
}

func (cc *cameraControllerImpl) ApplyRoll(direction RollDirection, dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	boost := float32(1)
	if cc.boosted {
		boost = cc.rollBoost
	}

	switch direction {
	case RollClockwise:
		cc.rollPending = cc.rollSpeed * dt * boost
	case RollCounterClockwise:
		cc.rollPending = -cc.rollSpeed * dt * boost
	case RollReset:
		cc.relevel()
		cc.log.Debug().Msg("camera roll reset")
		return
	default:
		return
	}

	if cc.rollPending == 0 || !finite32(cc.rollPending) {
		cc.rollPending = 0
		return
	}

	up, ok := common.SafeNormalize(common.RotateAbout(cc.up, cc.front, cc.rollPending))
	if ok {
		// Roll re-seats world up so later yaw turns about the rolled axis.
		right, rok := common.SafeNormalize(cc.front.Cross(up))
		if rok {
			cc.right = right
			cc.up, _ = common.SafeNormalize(right.Cross(cc.front))
			cc.worldUp = cc.up
			cc.pitch = common.ElevationDegrees(cc.front, cc.worldUp)
		}
	}
	cc.rollPending = 0
}

func (cc *cameraControllerImpl) ApplyZoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !finite32(delta) {
		return
	}
	cc.fov = mgl32.Clamp(cc.fov-delta, cc.minFov, cc.maxFov)
}

func (cc *cameraControllerImpl) ApplySpeedAdjust(delta float32, boosted bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !finite32(delta) {
		return
	}
	step := float32(0.1)
	if boosted {
		step = 1.0
	}
	cc.movementSpeed = mgl32.Clamp(cc.movementSpeed+delta*step, 0, cc.maxSpeed)
}

// --- view ---

func (cc *cameraControllerImpl) ViewMatrix() mgl32.Mat4 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return mgl32.LookAtV(cc.position, cc.position.Add(cc.front), cc.up)
}

func (cc *cameraControllerImpl) Mirror() CameraController {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	m := *cc
	m.mu = &sync.Mutex{}
	m.front = cc.front.Mul(-1)
	m.right = cc.right.Mul(-1)
	m.yaw = cc.yaw + 180
	m.pitch = -cc.pitch
	return &m
}
