package common

import "strings"

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW         = 87  // W key (ASCII)
	KeyA         = 65  // A key (ASCII)
	KeyS         = 83  // S key (ASCII)
	KeyD         = 68  // D key (ASCII)
	KeyQ         = 81  // Q key (ASCII)
	KeyE         = 69  // E key (ASCII)
	KeyR         = 82  // R key (ASCII)
	KeyF         = 70  // F key (ASCII)
	KeyC         = 67  // C key (ASCII)
	KeyX         = 88  // X key (ASCII)
	KeyZ         = 90  // Z key (ASCII)
	KeySpace     = 32  // Spacebar (ASCII)
	KeyBackspace = 259 // Backspace key (GLFW)
	KeyEsc       = 256 // Escape key (GLFW)
	KeyEnter     = 257 // Enter key (GLFW)
	KeyTab       = 258 // Tab key (GLFW)
	KeyRight     = 262 // Right arrow (GLFW)
	KeyLeft      = 263 // Left arrow (GLFW)
	KeyDown      = 264 // Down arrow (GLFW)
	KeyUp        = 265 // Up arrow (GLFW)
)

// Modifier keys
const (
	KeyLeftShift    = 340 // Left Shift (GLFW)
	KeyLeftControl  = 341 // Left Control (GLFW)
	KeyLeftAlt      = 342 // Left Alt (GLFW)
	KeyRightShift   = 344 // Right Shift (GLFW)
	KeyRightControl = 345 // Right Control (GLFW)
	KeyRightAlt     = 346 // Right Alt (GLFW)
)

// MouseButton identifies a pointer button. Values match glfw.MouseButton.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
)

var keyNames = map[string]uint32{
	"space":         KeySpace,
	"backspace":     KeyBackspace,
	"escape":        KeyEsc,
	"enter":         KeyEnter,
	"tab":           KeyTab,
	"up":            KeyUp,
	"down":          KeyDown,
	"left":          KeyLeft,
	"right":         KeyRight,
	"left_shift":    KeyLeftShift,
	"right_shift":   KeyRightShift,
	"left_control":  KeyLeftControl,
	"right_control": KeyRightControl,
	"left_alt":      KeyLeftAlt,
	"right_alt":     KeyRightAlt,
}

// Letters and digits use their upper-case ASCII code.
func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyNames[string(c)] = uint32(c - 'a' + 'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = uint32(c)
	}
}

var buttonNames = map[string]MouseButton{
	"left":   MouseButtonLeft,
	"right":  MouseButtonRight,
	"middle": MouseButtonMiddle,
}

// KeyByName resolves a configuration key name (case-insensitive, e.g. "w", "left_shift")
// to its virtual key code.
//
// Parameters:
//   - name: the key name
//
// Returns:
//   - uint32: the key code
//   - bool: false if the name is unknown
func KeyByName(name string) (uint32, bool) {
	code, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// MouseButtonByName resolves "left", "right" or "middle" (case-insensitive) to a MouseButton.
//
// Parameters:
//   - name: the button name
//
// Returns:
//   - MouseButton: the button
//   - bool: false if the name is unknown
func MouseButtonByName(name string) (MouseButton, bool) {
	b, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}
