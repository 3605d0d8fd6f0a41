package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H
	ActionUp             // Up arrow, W, K
	ActionRight          // Right arrow, D, L
	ActionDown           // Down arrow, S, J
	ActionConfirm        // Enter - dismiss overlays, confirm menu entries
	ActionBack           // B, Escape - back to the menu
	ActionRestart        // R - start a new game
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
)

// MoveActions lists the actions that shift the board, in direction order.
var MoveActions = [...]Action{ActionLeft, ActionUp, ActionRight, ActionDown}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
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

// IsMove reports whether the action shifts the board.
func (a Action) IsMove() bool {
	return a >= ActionLeft && a <= ActionDown
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Move returns the first move action in the frame, in direction order.
// Only one move is applied per tick.
func (f InputFrame) Move() (Action, bool) {
	for _, a := range MoveActions {
		if f.Has(a) {
			return a, true
		}
	}
	return ActionNone, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
