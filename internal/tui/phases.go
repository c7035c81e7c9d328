package tui

// Phase is where the model is in replaying its script.
type Phase int

const (
	PhaseStarting Phase = iota
	PhaseReplaying
	PhaseHolding
	PhaseCompleted
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseStarting:
		return "Starting"
	case PhaseReplaying:
		return "Replaying script"
	case PhaseHolding:
		return "Holding presence"
	case PhaseCompleted:
		return "Completed"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Done reports whether the executor has returned.
func (p Phase) Done() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// Icon is shown next to the phase; running phases use the spinner instead.
func (p Phase) Icon() (string, bool) {
	switch p {
	case PhaseCompleted:
		return iconSuccess, true
	case PhaseFailed:
		return iconFailed, true
	case PhaseHolding:
		return iconHolding, true
	default:
		return "", false
	}
}
