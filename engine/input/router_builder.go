package input

import (
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-freecam/common"
)

// RouterOption is a functional option for configuring a Router.
type RouterOption func(*routerImpl)

// WithKeyMap replaces the default key bindings.
//
// Parameters:
//   - km: the key map to use
//
// Returns:
//   - RouterOption: functional option to set the key map
func WithKeyMap(km KeyMap) RouterOption {
	return func(r *routerImpl) {
		r.keyMap = km
	}
}

// WithLookButton sets the mouse button that enables free look while held (default right).
//
// Parameters:
//   - button: the look button
//
// Returns:
//   - RouterOption: functional option to set the look button
func WithLookButton(button common.MouseButton) RouterOption {
	return func(r *routerImpl) {
		r.lookButton = button
	}
}

// WithConstrainPitch sets whether look input clamps pitch (default true).
//
// Parameters:
//   - constrain: pass false to allow looping over the poles
//
// Returns:
//   - RouterOption: functional option to set pitch constraint
func WithConstrainPitch(constrain bool) RouterOption {
	return func(r *routerImpl) {
		r.constrainPitch = constrain
	}
}

// WithRouterLogger attaches a logger.
//
// Parameters:
//   - log: the logger to use
//
// Returns:
//   - RouterOption: functional option to set the logger
func WithRouterLogger(log zerolog.Logger) RouterOption {
	return func(r *routerImpl) {
		r.log = log
	}
}
