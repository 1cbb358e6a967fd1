package tri

import "fmt"

// Phase is a renderer lifecycle state.
//
//	Uninitialized --Init--> Ready --Start--> Running --Close--> Terminated
//
// Close is accepted from every phase, and a failed Init lands in
// Terminated.
type Phase uint8

const (
	PhaseUninitialized Phase = iota
	PhaseReady
	PhaseRunning
	PhaseTerminated
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "Uninitialized"
	case PhaseReady:
		return "Ready"
	case PhaseRunning:
		return "Running"
	case PhaseTerminated:
		return "Terminated"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// canTransition reports whether from -> to is a legal edge.
func canTransition(from, to Phase) bool {
	switch to {
	case PhaseReady:
		return from == PhaseUninitialized
	case PhaseRunning:
		return from == PhaseReady || from == PhaseRunning
	case PhaseTerminated:
		return true
	default:
		return false
	}
}

// transition returns ErrInvalidTransition when from -> to is illegal.
func transition(from, to Phase) error {
	if !canTransition(from, to) {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, from, to)
	}
	return nil
}
