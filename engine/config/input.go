package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/input"
)

// RouterOptions resolves the key bindings and look button into input router options.
//
// Parameters:
//   - constrainPitch: whether look input clamps pitch
//   - log: logger handed to the router
//
// Returns:
//   - []input.RouterOption: options for input.NewRouter
//   - error: on an unknown action, key or button name
func (c InputConfig) RouterOptions(constrainPitch bool, log zerolog.Logger) ([]input.RouterOption, error) {
	km, err := input.ParseKeyMap(c.Bindings)
	if err != nil {
		return nil, err
	}
	button := common.MouseButtonRight
	if c.LookButton != "" {
		var ok bool
		if button, ok = common.MouseButtonByName(c.LookButton); !ok {
			return nil, fmt.Errorf("unknown look button %q", c.LookButton)
		}
	}
	return []input.RouterOption{
		input.WithKeyMap(km),
		input.WithLookButton(button),
		input.WithConstrainPitch(constrainPitch),
		input.WithRouterLogger(log),
	}, nil
}

// CloseKeyCode resolves the close key name; an empty name disables it (code 0).
func (c WindowConfig) CloseKeyCode() (uint32, error) {
	if c.CloseKey == "" {
		return 0, nil
	}
	code, ok := common.KeyByName(c.CloseKey)
	if !ok {
		return 0, fmt.Errorf("unknown close key %q", c.CloseKey)
	}
	return code, nil
}
