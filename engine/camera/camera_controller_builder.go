package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - pos: world-space eye position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(pos mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = pos
	}
}

// WithOrientation sets the initial view direction and world up vector.
// The basis is orthonormalized after all options are applied; degenerate input falls back
// to looking down -Z with +Y up.
//
// Parameters:
//   - front: initial view direction
//   - worldUp: reference up vector
//
// Returns:
//   - CameraControllerOption: functional option to set the orientation
func WithOrientation(front, worldUp mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.front = front
		cc.worldUp = worldUp
	}
}

// WithFov sets the initial vertical field of view in degrees.
//
// Parameters:
//   - fov: field of view in degrees, clamped to the FOV bounds
//
// Returns:
//   - CameraControllerOption: functional option to set the field of view
func WithFov(fov float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.fov = fov
	}
}

// WithFovBounds sets the zoom limits in degrees.
//
// Parameters:
//   - min: narrowest field of view (default 1)
//   - max: widest field of view (default 125)
//
// Returns:
//   - CameraControllerOption: functional option to set the FOV bounds
func WithFovBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minFov = min
		cc.maxFov = max
	}
}

// WithMovementSpeed sets the initial movement speed in world units per second.
//
// Parameters:
//   - speed: movement speed, clamped to [0, max speed]
//
// Returns:
//   - CameraControllerOption: functional option to set the movement speed
func WithMovementSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.movementSpeed = speed
	}
}

// WithMaxSpeed sets the movement speed cap.
//
// Parameters:
//   - max: upper bound for the movement speed (default 100)
//
// Returns:
//   - CameraControllerOption: functional option to set the speed cap
func WithMaxSpeed(max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.maxSpeed = max
	}
}

// WithMouseSensitivity sets the pointer sensitivity.
//
// Parameters:
//   - sensitivity: degrees of rotation per pointer unit
//
// Returns:
//   - CameraControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithRollSpeed sets the roll rate.
//
// Parameters:
//   - degreesPerSecond: roll applied per second of held input
//
// Returns:
//   - CameraControllerOption: functional option to set the roll speed
func WithRollSpeed(degreesPerSecond float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rollSpeed = degreesPerSecond
	}
}

// WithBoostFactor sets the movement multiplier applied while boosted.
//
// Parameters:
//   - factor: movement multiplier (default 3)
//
// Returns:
//   - CameraControllerOption: functional option to set the boost factor
func WithBoostFactor(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.boostFactor = factor
	}
}

// WithRollBoost sets the roll multiplier applied while boosted.
//
// Parameters:
//   - factor: roll multiplier (default 3)
//
// Returns:
//   - CameraControllerOption: functional option to set the roll boost
func WithRollBoost(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rollBoost = factor
	}
}

// WithMovementMode sets the forward movement mode.
//
// Parameters:
//   - mode: MovementModeFree or MovementModePlanar
//
// Returns:
//   - CameraControllerOption: functional option to set the movement mode
func WithMovementMode(mode MovementMode) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.movementMode = mode
	}
}

// WithControllerLogger attaches a logger for non-per-frame diagnostics.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - CameraControllerOption: functional option to set the logger
func WithControllerLogger(log zerolog.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.log = log
	}
}
