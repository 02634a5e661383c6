package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - steer left
	ActionRight          // D, Right arrow - steer right
	ActionAbility        // Space - toggle the float ability
	ActionConfirm        // Enter - confirm selection, restart after death
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionAbility:
		return "Ability"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Opposite returns the contrary steering action, or ActionNone for
// actions that do not steer.
func (a Action) Opposite() Action {
	switch a {
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	default:
		return ActionNone
	}
}

// InputFrame represents the input events for a single simulation tick.
// Pressed holds key-down edges and Released holds key-up edges; an action
// held across ticks appears only on the tick it was pressed.
type InputFrame struct {
	Pressed  map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed:  make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Set marks an action as pressed during this frame.
func (f *InputFrame) Set(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
}

// Release marks an action as released during this frame.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Pressed[a]
}

// WasReleased returns true if the given action was released this frame.
func (f InputFrame) WasReleased(a Action) bool {
	return f.Released[a]
}

// Empty reports whether the frame carries no events.
func (f InputFrame) Empty() bool {
	return len(f.Pressed) == 0 && len(f.Released) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Pressed)
	clear(f.Released)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Pressed {
		c.Pressed[k] = v
	}
	for k, v := range f.Released {
		c.Released[k] = v
	}
	return c
}

// HoldTracker synthesizes key-up edges for input sources that only report
// presses, such as terminals and remote controllers. A held action is
// released after timeout ticks without a repeat; a non-positive timeout
// holds until Release.
type HoldTracker struct {
	timeout int
	held    map[Action]int
}

// NewHoldTracker creates a tracker with the given timeout in ticks.
func NewHoldTracker(timeout int) *HoldTracker {
	return &HoldTracker{timeout: timeout, held: make(map[Action]int)}
}

// Press records a press or repeat of a. It reports true only on the
// initial press.
func (h *HoldTracker) Press(a Action) bool {
	_, wasHeld := h.held[a]
	h.held[a] = 0
	return !wasHeld
}

// Release forgets a and reports whether it was held.
func (h *HoldTracker) Release(a Action) bool {
	_, wasHeld := h.held[a]
	delete(h.held, a)
	return wasHeld
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a Action) bool {
	_, ok := h.held[a]
	return ok
}

// Tick ages every held action by one tick and records a release in f for
// each one that expired.
func (h *HoldTracker) Tick(f *InputFrame) {
	if h.timeout <= 0 {
		return
	}
	for a, age := range h.held {
		age++
		if age >= h.timeout {
			delete(h.held, a)
			f.Release(a)
			continue
		}
		h.held[a] = age
	}
}

// Steer records a steering press into f: the opposite direction is
// released and a is pressed on its initial edge only. Non-steering actions
// are set directly.
func (h *HoldTracker) Steer(a Action, f *InputFrame) {
	opp := a.Opposite()
	if opp == ActionNone {
		f.Set(a)
		return
	}
	if h.Release(opp) {
		f.Release(opp)
	}
	if h.Press(a) {
		f.Set(a)
	}
}
