package core

import "strings"

// Action represents a semantic game action (an intent), abstracted from
// physical key presses and on-screen buttons.
// Intents are plain booleans for one tick; several can be active at once.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, ◀ button
	ActionRight          // Right arrow, D, ▶ button
	ActionUp             // Up arrow, W, ▲ button (grid movers)
	ActionDown           // Down arrow, S, ▼ button (grid movers)
	ActionJump           // Space, jump button
	ActionShoot          // F, ● button
	ActionRestart        // R key or restart button - restart after game over
	ActionQuit           // Q, Esc, Ctrl+C - exit
	ActionPause          // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionUp:      "up",
	ActionDown:    "down",
	ActionJump:    "jump",
	ActionShoot:   "shoot",
	ActionRestart: "restart",
	ActionQuit:    "quit",
	ActionPause:   "pause",
}

// String returns the lower-case name of the action as used in config files.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction converts a config name ("left", "jump", ...) into an Action.
// Returns false for unknown names.
func ParseAction(name string) (Action, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name && a != ActionNone {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame represents the intent set for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they are active this tick.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}
