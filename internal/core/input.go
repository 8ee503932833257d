package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionConfirm            // Enter, Space - start a session from the start screen
	ActionBack               // B, Escape - go back to menu
	ActionQuit               // Q, Ctrl+C - exit
	ActionPause              // P - pause/unpause
	ActionToggleMusic        // M - ambience on/off
	ActionVolumeUp           // + or =
	ActionVolumeDown         // -
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionToggleMusic:
		return "ToggleMusic"
	case ActionVolumeUp:
		return "VolumeUp"
	case ActionVolumeDown:
		return "VolumeDown"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes the two point-designation commands.
// Both set the same movement target; only the indicator differs.
type PointerKind int

const (
	PointerPrimary   PointerKind = iota // Left click
	PointerSecondary                    // Right click
)

// PointerCommand is a "move here" request at a screen cell.
type PointerCommand struct {
	Col, Row int
	Kind     PointerKind
}

// InputFrame represents the input delivered to the game for one frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointers holds every move command received since the last frame,
	// oldest first. The last one wins for the movement target.
	Pointers []PointerCommand
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
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Point appends a pointer command to this frame.
func (f *InputFrame) Point(cmd PointerCommand) {
	f.Pointers = append(f.Pointers, cmd)
}

// Clear resets all actions and pointer commands for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointers = f.Pointers[:0]
}
