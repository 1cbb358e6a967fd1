package tri

import (
	"testing"

	"github.com/gogpu/gpucontext"
)

func TestSliderClamps(t *testing.T) {
	s := Slider{Name: "Brightness", Value: 1, Min: 0.1, Max: 2, Step: 0.1}
	for range 30 {
		s.Inc()
	}
	if s.Value != 2 {
		t.Errorf("after Inc: Value = %v, want 2", s.Value)
	}
	for range 30 {
		s.Dec()
	}
	if s.Value != 0.1 {
		t.Errorf("after Dec: Value = %v, want 0.1", s.Value)
	}
	if got := s.String(); got != "Brightness: 0.1" {
		t.Errorf("String() = %q", got)
	}
}

func TestSliderFraction(t *testing.T) {
	s := Slider{Value: 0.5, Min: 0, Max: 1}
	if got := s.Fraction(); got != 0.5 {
		t.Errorf("Fraction() = %v, want 0.5", got)
	}
	if got := (&Slider{Value: 3, Min: 3, Max: 3}).Fraction(); got != 0 {
		t.Errorf("degenerate Fraction() = %v, want 0", got)
	}
}

func TestPointerMove(t *testing.T) {
	var p Pointer
	if dx, dy := p.Move(100, 50); dx != 0 || dy != 0 {
		t.Errorf("first move delta = (%v, %v), want 0", dx, dy)
	}
	if dx, dy := p.Move(110, 45); dx != 10 || dy != -5 {
		t.Errorf("delta = (%v, %v), want (10, -5)", dx, dy)
	}
}

func TestKeyName(t *testing.T) {
	tests := map[gpucontext.Key]string{
		gpucontext.KeyA:      "A",
		gpucontext.KeyR:      "R",
		gpucontext.KeyZ:      "Z",
		gpucontext.KeyEscape: "ESC",
		gpucontext.KeyUp:     "UP",
	}
	for k, want := range tests {
		if got := keyName(k); got != want {
			t.Errorf("keyName(%d) = %q, want %q", k, got, want)
		}
	}
}
