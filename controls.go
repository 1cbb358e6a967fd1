package tri

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
)

// Slider is a bounded scalar adjusted in fixed steps.
type Slider struct {
	Name  string
	Value float32
	Min   float32
	Max   float32
	Step  float32
}

// Inc raises the value by one step, clamped to Max.
func (s *Slider) Inc() { s.Set(s.Value + s.Step) }

// Dec lowers the value by one step, clamped to Min.
func (s *Slider) Dec() { s.Set(s.Value - s.Step) }

// Set assigns a clamped value.
func (s *Slider) Set(v float32) {
	s.Value = mgl32.Clamp(v, s.Min, s.Max)
}

// Fraction returns the value's position in [Min, Max] as 0..1.
func (s *Slider) Fraction() float32 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// String formats the slider for status output.
func (s *Slider) String() string {
	return fmt.Sprintf("%s: %.1f", s.Name, s.Value)
}

// KeyBinding maps a key to a state change.
type KeyBinding struct {
	Key   gpucontext.Key
	Help  string
	Apply func(*State)
}

// Pointer tracks the mouse.
type Pointer struct {
	X, Y   float32
	Down   bool
	Inside bool
	moved  bool
}

// Move records a new position and returns the delta from the previous
// one. The first movement reports a zero delta.
func (p *Pointer) Move(x, y float32) (dx, dy float32) {
	if p.moved {
		dx, dy = x-p.X, y-p.Y
	}
	p.X, p.Y = x, y
	p.moved = true
	return dx, dy
}

// keyName returns a short label for help output.
func keyName(k gpucontext.Key) string {
	switch {
	case k >= gpucontext.KeyA && k <= gpucontext.KeyZ:
		return string(rune('A' + int(k-gpucontext.KeyA)))
	}
	switch k {
	case gpucontext.KeyEscape:
		return "ESC"
	case gpucontext.KeySpace:
		return "SPACE"
	case gpucontext.KeyUp:
		return "UP"
	case gpucontext.KeyDown:
		return "DOWN"
	case gpucontext.KeyLeft:
		return "LEFT"
	case gpucontext.KeyRight:
		return "RIGHT"
	default:
		return fmt.Sprintf("key %d", int(k))
	}
}
