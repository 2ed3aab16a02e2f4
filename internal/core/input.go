package core

// Action represents a semantic game command, abstracted from physical key presses.
// The simulation consumes Flap, Dive and Restart; the rest are handled by the platform.
type Action int

const (
	ActionNone       Action = iota
	ActionFlap              // Up, W, Space - upward impulse, starts a session
	ActionDive              // Down, J - downward impulse, starts a session
	ActionRestart           // Enter, R - back to the idle screen after game over
	ActionShare             // S on the game-over card - export the share card
	ActionScreenshot        // Ctrl+S - dump the current screen
	ActionQuit              // Q, Esc, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlap:
		return "Flap"
	case ActionDive:
		return "Dive"
	case ActionRestart:
		return "Restart"
	case ActionShare:
		return "Share"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
