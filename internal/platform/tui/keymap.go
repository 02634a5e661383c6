package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyjump/internal/core"
)

// keyRepeatDelay approximates the terminal's auto-repeat delay. Terminals
// send no key-up events, so a steering key counts as held until its repeats
// stop for this long.
const keyRepeatDelay = 550 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	holds *core.HoldTracker
}

// NewKeyMapper creates a key mapper for a game running at tickRate.
func NewKeyMapper(tickRate int) *KeyMapper {
	return &KeyMapper{holds: core.NewHoldTracker(ticksFor(keyRepeatDelay, tickRate))}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit, true
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case " ", "up", "w":
		return core.ActionAbility, false
	case "enter":
		return core.ActionConfirm, false
	case "r":
		return core.ActionRestart, false
	case "p":
		return core.ActionPause, false
	case "q", "esc", "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message. Steering
// keys are reported as a press on their first event and stay held while
// the terminal repeats them. Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		km.holds.Steer(action, frame)
	}
	return isQuit
}

// Tick ages held keys and reports the ones whose repeats stopped as
// released. Call once per simulation tick, before Step.
func (km *KeyMapper) Tick(frame *core.InputFrame) {
	km.holds.Tick(frame)
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
