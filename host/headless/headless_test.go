package headless

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/tri"
	"github.com/gogpu/tri/host"
)

func TestRegistered(t *testing.T) {
	h, err := host.Get(host.NameHeadless)
	if err != nil {
		t.Fatal(err)
	}
	if h.Name() != host.NameHeadless {
		t.Errorf("Name() = %q", h.Name())
	}
}

// Without a usable hardware adapter the run must end on the software
// target rather than crash inside a HAL backend.
func TestRunFallsBackWithoutPanic(t *testing.T) {
	out := filepath.Join(t.TempDir(), "triangle.png")
	run := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Run() panicked: %v", r)
			}
		}()
		return Host{}.Run(context.Background(), tri.MustLookup("triangle"), host.Config{
			Width:  32,
			Height: 32,
			Frames: 1,
			Output: out,
		})
	}
	if err := run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRunWritesPNG(t *testing.T) {
	if testing.Short() {
		t.Skip("probes GPU adapters")
	}
	out := filepath.Join(t.TempDir(), "hsv.png")
	err := Host{}.Run(context.Background(), tri.MustLookup("hsv"), host.Config{
		Width:  64,
		Height: 64,
		Output: out,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Errorf("output not written: %v", err)
	}
}
