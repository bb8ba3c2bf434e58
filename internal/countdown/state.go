package countdown

// State is the lifecycle of a Countdown.
type State int

const (
	// Reset is the idle state: remaining time equals the configured duration.
	Reset State = iota
	// Started means a tick loop is scheduled and remaining time is decreasing.
	Started
	// Finished means remaining time reached zero and ticking stopped.
	Finished
)

func (s State) String() string {
	switch s {
	case Reset:
		return "reset"
	case Started:
		return "started"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}
