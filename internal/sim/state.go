package sim

// State is the session state machine.
//
//	Idle --Flap/Dive--> Running --collision/ground--> Over --Restart--> Idle
//
// No other transitions exist.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateOver
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateOver:
		return "Over"
	default:
		return "Unknown"
	}
}
