package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/oxy-freecam/common"
)

// Action is a named control the router reacts to.
type Action int

const (
	ActionForward Action = iota
	ActionBackward
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionRollCounterClockwise
	ActionRollClockwise
	ActionRollReset
	ActionBoost
	ActionSpeedModifier
)

var actionNames = map[string]Action{
	"forward":        ActionForward,
	"backward":       ActionBackward,
	"left":           ActionLeft,
	"right":          ActionRight,
	"up":             ActionUp,
	"down":           ActionDown,
	"roll_ccw":       ActionRollCounterClockwise,
	"roll_cw":        ActionRollClockwise,
	"roll_reset":     ActionRollReset,
	"boost":          ActionBoost,
	"speed_modifier": ActionSpeedModifier,
}

// KeyMap binds each action to the key codes that trigger it.
type KeyMap map[Action][]uint32

// DefaultKeyMap returns the stock bindings: WASD plus R/F for vertical movement,
// Q/E to roll, X to re-level, shift to boost and control to adjust speed with the wheel.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ActionForward:              {common.KeyW},
		ActionBackward:             {common.KeyS},
		ActionLeft:                 {common.KeyA},
		ActionRight:                {common.KeyD},
		ActionUp:                   {common.KeyR},
		ActionDown:                 {common.KeyF},
		ActionRollCounterClockwise: {common.KeyQ},
		ActionRollClockwise:        {common.KeyE},
		ActionRollReset:            {common.KeyX},
		ActionBoost:                {common.KeyLeftShift, common.KeyRightShift},
		ActionSpeedModifier:        {common.KeyLeftControl, common.KeyRightControl},
	}
}

// ParseKeyMap resolves configured bindings (action name -> key names) on top of
// DefaultKeyMap. Actions absent from bindings keep their default keys; an empty list
// unbinds the action.
//
// Parameters:
//   - bindings: action name to key names, e.g. "forward": ["w"]
//
// Returns:
//   - KeyMap: the resolved key map
//   - error: on an unknown action or key name
func ParseKeyMap(bindings map[string][]string) (KeyMap, error) {
	km := DefaultKeyMap()

	// Sorted for a deterministic first error.
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := actionNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown input action %q", name)
		}
		codes := make([]uint32, 0, len(bindings[name]))
		for _, keyName := range bindings[name] {
			code, ok := common.KeyByName(keyName)
			if !ok {
				return nil, fmt.Errorf("action %s: unknown key %q", name, keyName)
			}
			codes = append(codes, code)
		}
		km[action] = codes
	}
	return km, nil
}

// actionsFor returns every action bound to code.
func (km KeyMap) actionsFor(code uint32) []Action {
	var out []Action
	for action, codes := range km {
		for _, c := range codes {
			if c == code {
				out = append(out, action)
				break
			}
		}
	}
	return out
}
