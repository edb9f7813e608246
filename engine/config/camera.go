package config

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
)

// ParseMovementMode maps "free" or "planar" (case-insensitive) to a camera.MovementMode.
// An empty name selects the free mode.
func ParseMovementMode(name string) (camera.MovementMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "free":
		return camera.MovementModeFree, nil
	case "planar":
		return camera.MovementModePlanar, nil
	}
	return camera.MovementModeFree, fmt.Errorf("unknown movement mode %q", name)
}

// ControllerOptions translates the camera section into controller options.
//
// Parameters:
//   - log: logger handed to the controller
//
// Returns:
//   - []camera.CameraControllerOption: options for camera.NewCameraController
func (c CameraConfig) ControllerOptions(log zerolog.Logger) []camera.CameraControllerOption {
	mode, _ := ParseMovementMode(c.MovementMode)
	return []camera.CameraControllerOption{
		camera.WithPosition(vec3(c.Position)),
		camera.WithOrientation(vec3(c.Front), vec3(c.WorldUp)),
		camera.WithFovBounds(c.MinFov, c.MaxFov),
		camera.WithFov(c.Fov),
		camera.WithMaxSpeed(c.MaxSpeed),
		camera.WithMovementSpeed(c.MovementSpeed),
		camera.WithMouseSensitivity(c.MouseSensitivity),
		camera.WithRollSpeed(c.RollSpeed),
		camera.WithBoostFactor(c.BoostFactor),
		camera.WithRollBoost(c.RollBoost),
		camera.WithMovementMode(mode),
		camera.WithControllerLogger(log),
	}
}

// CameraOptions translates the projection settings into camera options.
//
// Parameters:
//   - aspect: the initial viewport aspect ratio
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c CameraConfig) CameraOptions(aspect float32) []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
		camera.WithAspect(aspect),
	}
}

// Apply pushes the settings that are safe to change at runtime onto a live controller.
// Position and orientation are left alone so a reload does not teleport the viewpoint.
func (c CameraConfig) Apply(ctrl camera.CameraController) {
	ctrl.SetMouseSensitivity(c.MouseSensitivity)
	if mode, err := ParseMovementMode(c.MovementMode); err == nil {
		ctrl.SetMovementMode(mode)
	}
}

func vec3(v []float32) mgl32.Vec3 {
	var out mgl32.Vec3
	copy(out[:], v)
	return out
}
