package input

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/oxy-freecam/common"
	"github.com/Carmen-Shannon/oxy-freecam/engine/camera"
)

// Source is the event surface a Router listens on. window.Window satisfies it.
type Source interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseButtonDownCallback(callback func(button common.MouseButton, x, y float64))
	SetMouseButtonUpCallback(callback func(button common.MouseButton, x, y float64))
	SetMouseMoveCallback(callback func(x, y float64))
	SetScrollCallback(callback func(delta float32))
}

// CursorCapturer is implemented by sources that can hide and lock the cursor while looking.
type CursorCapturer interface {
	SetCursorCaptured(captured bool)
}

// Router translates raw input events into calls on a single CameraController.
// Event callbacks only record state and forward pointer/scroll events; held keys are
// turned into movement and roll once per Tick so motion scales with the tick delta.
type Router interface {
	// Attach registers the router's callbacks on src, replacing any callbacks src already had.
	// If src also implements CursorCapturer the cursor is captured while looking.
	//
	// Parameters:
	//   - src: the event source
	Attach(src Source)

	// Tick applies held movement and roll keys to the controller.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous tick
	Tick(dt float32)

	// Controller returns the controller this router drives.
	//
	// Returns:
	//   - camera.CameraController: the driven controller
	Controller() camera.CameraController

	// Looking reports whether the look button is currently held.
	//
	// Returns:
	//   - bool: true while pointer motion rotates the view
	Looking() bool

	// Release forgets all held keys and ends looking, e.g. when the window loses focus.
	Release()
}

type routerImpl struct {
	mu  *sync.Mutex
	log zerolog.Logger

	controller camera.CameraController
	capturer   CursorCapturer

	keyMap         KeyMap
	lookButton     common.MouseButton
	constrainPitch bool

	held         map[uint32]bool
	looking      bool
	resetPending bool
}

var _ Router = &routerImpl{}

// moveBindings pairs movement actions with the direction they drive.
var moveBindings = []struct {
	action    Action
	direction camera.MoveDirection
}{
	{ActionForward, camera.MoveForward},
	{ActionBackward, camera.MoveBackward},
	{ActionLeft, camera.MoveLeft},
	{ActionRight, camera.MoveRight},
	{ActionUp, camera.MoveUp},
	{ActionDown, camera.MoveDown},
}

// NewRouter creates a Router driving controller.
//
// Parameters:
//   - controller: the controller to drive
//   - options: functional options to configure the router
//
// Returns:
//   - Router: the newly created router, not yet attached to a source
func NewRouter(controller camera.CameraController, options ...RouterOption) Router {
	r := &routerImpl{
		mu:             &sync.Mutex{},
		log:            zerolog.Nop(),
		controller:     controller,
		keyMap:         DefaultKeyMap(),
		lookButton:     common.MouseButtonRight,
		constrainPitch: true,
		held:           make(map[uint32]bool),
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *routerImpl) Attach(src Source) {
	r.mu.Lock()
	if c, ok := src.(CursorCapturer); ok {
		r.capturer = c
	}
	r.mu.Unlock()

	src.SetKeyDownCallback(r.keyDown)
	src.SetKeyUpCallback(r.keyUp)
	src.SetMouseButtonDownCallback(r.buttonDown)
	src.SetMouseButtonUpCallback(r.buttonUp)
	src.SetMouseMoveCallback(r.mouseMove)
	src.SetScrollCallback(r.scroll)
}

func (r *routerImpl) Tick(dt float32) {
	r.mu.Lock()
	boosted := r.actionHeld(ActionBoost)
	var moves []camera.MoveDirection
	for _, b := range moveBindings {
		if r.actionHeld(b.action) {
			moves = append(moves, b.direction)
		}
	}
	rollCW := r.actionHeld(ActionRollClockwise)
	rollCCW := r.actionHeld(ActionRollCounterClockwise)
	reset := r.resetPending
	r.resetPending = false
	r.mu.Unlock()

	r.controller.SetBoosted(boosted)
	for _, d := range moves {
		r.controller.ApplyMovement(d, dt)
	}
	if reset {
		r.controller.ApplyRoll(camera.RollReset, dt)
	}
	// Opposing roll keys cancel out.
	switch {
	case rollCW && !rollCCW:
		r.controller.ApplyRoll(camera.RollClockwise, dt)
	case rollCCW && !rollCW:
		r.controller.ApplyRoll(camera.RollCounterClockwise, dt)
	}
}

func (r *routerImpl) Controller() camera.CameraController {
	return r.controller
}

func (r *routerImpl) Looking() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.looking
}

func (r *routerImpl) Release() {
	r.mu.Lock()
	wasLooking := r.looking
	r.held = make(map[uint32]bool)
	r.looking = false
	r.resetPending = false
	capturer := r.capturer
	r.mu.Unlock()

	if wasLooking && capturer != nil {
		capturer.SetCursorCaptured(false)
	}
}

// actionHeld reports whether any key bound to action is down.
// Caller must hold the mutex.
func (r *routerImpl) actionHeld(action Action) bool {
	for _, code := range r.keyMap[action] {
		if r.held[code] {
			return true
		}
	}
	return false
}

func (r *routerImpl) keyDown(code uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Platform key repeat arrives as further key-downs.
	if r.held[code] {
		return
	}
	r.held[code] = true

	for _, action := range r.keyMap.actionsFor(code) {
		if action == ActionRollReset {
			r.resetPending = true
			r.log.Debug().Msg("roll reset requested")
		}
	}
}

func (r *routerImpl) keyUp(code uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.held, code)
}

func (r *routerImpl) buttonDown(button common.MouseButton, x, y float64) {
	r.mu.Lock()
	if button != r.lookButton || r.looking {
		r.mu.Unlock()
		return
	}
	r.looking = true
	capturer := r.capturer
	constrain := r.constrainPitch
	r.mu.Unlock()

	if capturer != nil {
		capturer.SetCursorCaptured(true)
	}
	// Re-seed so the jump since the last look is not applied as rotation.
	r.controller.ResetPointer()
	r.controller.ApplyLook(x, y, constrain)
}

func (r *routerImpl) buttonUp(button common.MouseButton, _, _ float64) {
	r.mu.Lock()
	if button != r.lookButton || !r.looking {
		r.mu.Unlock()
		return
	}
	r.looking = false
	capturer := r.capturer
	r.mu.Unlock()

	if capturer != nil {
		capturer.SetCursorCaptured(false)
	}
}

func (r *routerImpl) mouseMove(x, y float64) {
	r.mu.Lock()
	looking := r.looking
	constrain := r.constrainPitch
	r.mu.Unlock()

	if looking {
		r.controller.ApplyLook(x, y, constrain)
	}
}

func (r *routerImpl) scroll(delta float32) {
	r.mu.Lock()
	adjustSpeed := r.actionHeld(ActionSpeedModifier)
	boosted := r.actionHeld(ActionBoost)
	r.mu.Unlock()

	if adjustSpeed {
		r.controller.ApplySpeedAdjust(delta, boosted)
		return
	}
	r.controller.ApplyZoom(delta)
}
