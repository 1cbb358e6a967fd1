package tri

import (
	"errors"
	"testing"
)

func TestTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		ok       bool
	}{
		{PhaseUninitialized, PhaseReady, true},
		{PhaseReady, PhaseRunning, true},
		{PhaseRunning, PhaseRunning, true},
		{PhaseRunning, PhaseTerminated, true},
		{PhaseUninitialized, PhaseTerminated, true},
		{PhaseTerminated, PhaseTerminated, true},
		{PhaseUninitialized, PhaseRunning, false},
		{PhaseReady, PhaseReady, false},
		{PhaseRunning, PhaseReady, false},
		{PhaseTerminated, PhaseRunning, false},
		{PhaseTerminated, PhaseReady, false},
		{PhaseReady, PhaseUninitialized, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			err := transition(tt.from, tt.to)
			if tt.ok && err != nil {
				t.Errorf("transition() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("transition() error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	if got := Phase(9).String(); got != "Phase(9)" {
		t.Errorf("String() = %q", got)
	}
}
