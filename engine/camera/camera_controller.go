package camera

import "github.com/go-gl/mathgl/mgl32"

// MoveDirection tags a translation command for ApplyMovement.
type MoveDirection int

const (
	MoveForward MoveDirection = iota
	MoveBackward
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
)

// RollDirection tags a roll command for ApplyRoll.
// Clockwise is as seen by the viewer looking along the front vector.
type RollDirection int

const (
	RollClockwise RollDirection = iota
	RollCounterClockwise
	RollReset
)

// MovementMode selects which vector forward/backward movement follows.
type MovementMode int

const (
	// MovementModeFree moves along the full front vector, including its vertical component.
	MovementModeFree MovementMode = iota

	// MovementModePlanar moves along the projection of front onto the plane orthogonal
	// to world up, so looking up or down does not change altitude.
	MovementModePlanar
)

// CameraController defines a free-flight camera controller.
// The controller owns position and an orthonormal orientation basis (front, up, right)
// and mutates them incrementally from input commands. Every mutator leaves the basis
// orthonormal and right-handed before returning. Camera reads from the controller and
// builds the projection side of the frame.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space eye position
	Position() mgl32.Vec3

	// SetPosition places the camera directly.
	//
	// Parameters:
	//   - pos: world-space position
	SetPosition(pos mgl32.Vec3)

	// Front returns the unit view direction.
	//
	// Returns:
	//   - mgl32.Vec3: the front basis vector
	Front() mgl32.Vec3

	// Up returns the camera-relative unit up vector (carries roll).
	//
	// Returns:
	//   - mgl32.Vec3: the up basis vector
	Up() mgl32.Vec3

	// Right returns the unit right vector.
	//
	// Returns:
	//   - mgl32.Vec3: the right basis vector
	Right() mgl32.Vec3

	// WorldUp returns the reference up vector used to re-derive right after yaw/pitch.
	// A roll re-seats it to the rolled up vector; a roll reset restores (0, 1, 0).
	//
	// Returns:
	//   - mgl32.Vec3: the reference up vector
	WorldUp() mgl32.Vec3

	// SetOrientation replaces the basis from a view direction and a world up vector.
	// World up is set to the normalized up argument; the camera up is re-derived so the
	// basis is orthonormal. Parallel or zero-length inputs are ignored.
	//
	// Parameters:
	//   - front: the new view direction
	//   - worldUp: the reference up vector
	SetOrientation(front, worldUp mgl32.Vec3)

	// Target returns the look-at point one unit ahead of the camera.
	//
	// Returns:
	//   - mgl32.Vec3: position + front
	Target() mgl32.Vec3

	// Yaw returns the accumulated yaw in degrees. Best-effort: it only sums look deltas.
	//
	// Returns:
	//   - float32: accumulated yaw in degrees
	Yaw() float32

	// Pitch returns the pitch in degrees relative to the plane orthogonal to world up.
	// After unconstrained look carries the view over a pole it reads past ±90, within (-180, 180].
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// RollPending returns the roll queued for the current update. It is zero between calls.
	//
	// Returns:
	//   - float32: pending roll in degrees
	RollPending() float32

	// Fov returns the vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees
	Fov() float32

	// MovementSpeed returns the translation speed in world units per second.
	//
	// Returns:
	//   - float32: current movement speed
	MovementSpeed() float32

	// MaxSpeed returns the upper bound for MovementSpeed.
	//
	// Returns:
	//   - float32: the speed cap
	MaxSpeed() float32

	// MouseSensitivity returns the pointer delta multiplier in degrees per pointer unit.
	//
	// Returns:
	//   - float32: the sensitivity multiplier
	MouseSensitivity() float32

	// SetMouseSensitivity replaces the pointer delta multiplier.
	//
	// Parameters:
	//   - sensitivity: degrees per pointer unit
	SetMouseSensitivity(sensitivity float32)

	// MovementMode returns the active forward movement mode.
	//
	// Returns:
	//   - MovementMode: free or planar
	MovementMode() MovementMode

	// SetMovementMode selects the forward movement mode.
	//
	// Parameters:
	//   - mode: free or planar
	SetMovementMode(mode MovementMode)

	// Boosted reports whether the boost modifier is active.
	//
	// Returns:
	//   - bool: true while boosted
	Boosted() bool

	// SetBoosted toggles the boost modifier applied to movement and roll.
	//
	// Parameters:
	//   - boosted: true to apply the boost factors
	SetBoosted(boosted bool)

	// HasSeenPointer reports whether ApplyLook has seeded the last pointer position.
	//
	// Returns:
	//   - bool: true once a pointer sample has been recorded
	HasSeenPointer() bool

	// ResetPointer forgets the last pointer sample so the next ApplyLook only seeds it.
	// Call when pointer capture begins to avoid a jump.
	ResetPointer()

	// ApplyMovement translates the camera along the basis vector for direction.
	//
	// Parameters:
	//   - direction: the movement direction
	//   - dt: elapsed time in seconds
	ApplyMovement(direction MoveDirection, dt float32)

	// ApplyLook rotates the camera from a raw pointer position. Yaw is applied about the
	// current up axis, right is re-derived from world up, then pitch is applied about the
	// new right axis.
	//
	// Parameters:
	//   - x, y: raw pointer coordinates (screen space, y grows downward)
	//   - constrainPitch: clamp pitch to ±89.9 degrees when true
	ApplyLook(x, y float64, constrainPitch bool)

	// ApplyRoll rolls the camera about its front axis, or re-levels it on RollReset.
	//
	// Parameters:
	//   - direction: clockwise, counter-clockwise or reset
	//   - dt: elapsed time in seconds
	ApplyRoll(direction RollDirection, dt float32)

	// ApplyZoom narrows (positive delta) or widens the field of view.
	//
	// Parameters:
	//   - delta: scroll delta in degrees
	ApplyZoom(delta float32)

	// ApplySpeedAdjust changes the movement speed from a scroll delta.
	//
	// Parameters:
	//   - delta: scroll delta
	//   - boosted: apply the full delta instead of a tenth of it
	ApplySpeedAdjust(delta float32, boosted bool)

	// ViewMatrix returns the right-handed look-at matrix for the current state.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// Mirror returns an independent copy with front and right negated, for a single frame
	// of an auxiliary rear-facing view.
	//
	// Returns:
	//   - CameraController: the mirrored copy
	Mirror() CameraController
}
