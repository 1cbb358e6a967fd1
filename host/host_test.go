package host

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend/software"
)

type fakeHost struct {
	name string
	err  error
	runs *[]string
}

func (h *fakeHost) Name() string { return h.name }

func (h *fakeHost) Run(_ context.Context, _ tri.Demo, _ Config) error {
	*h.runs = append(*h.runs, h.name)
	return h.err
}

// withHosts registers fake hosts for the duration of the test.
func withHosts(t *testing.T, fakes ...*fakeHost) {
	t.Helper()
	for _, f := range fakes {
		Register(f.name, func() Host { return f })
		t.Cleanup(func() { Unregister(f.name) })
	}
}

func TestRunFallsThroughUnavailable(t *testing.T) {
	var runs []string
	boom := errors.New("boom")
	withHosts(t,
		&fakeHost{name: NameOffscreen, runs: &runs},
		&fakeHost{name: NameDesktop, err: ErrUnavailable, runs: &runs},
		&fakeHost{name: NameHeadless, err: boom, runs: &runs},
	)

	err := Run(context.Background(), "", tri.MustLookup("simple"), Config{})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if want := []string{NameDesktop, NameHeadless}; !slices.Equal(runs, want) {
		t.Errorf("hosts tried = %v, want %v", runs, want)
	}
}

func TestRunAllUnavailable(t *testing.T) {
	var runs []string
	withHosts(t, &fakeHost{name: NameWindow, err: ErrUnavailable, runs: &runs})

	err := Run(context.Background(), "", tri.MustLookup("simple"), Config{})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Run() error = %v, want ErrUnavailable", err)
	}
}

func TestRunNamed(t *testing.T) {
	var runs []string
	withHosts(t,
		&fakeHost{name: NameDesktop, runs: &runs},
		&fakeHost{name: "custom", runs: &runs},
	)

	if err := Run(context.Background(), "custom", tri.MustLookup("simple"), Config{}); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(runs, []string{"custom"}) {
		t.Errorf("hosts run = %v", runs)
	}
	if _, err := Get("missing"); !errors.Is(err, ErrUnknownHost) {
		t.Errorf("Get(missing) error = %v, want ErrUnknownHost", err)
	}

	names := Available()
	if len(names) != 2 || names[0] != NameDesktop || names[1] != "custom" {
		t.Errorf("Available() = %v, want [desktop custom]", names)
	}
}

func TestConfigSize(t *testing.T) {
	demo := tri.MustLookup("advanced-phong")
	tests := []struct {
		name  string
		cfg   Config
		demo  tri.Demo
		w, h  int
	}{
		{"override", Config{Width: 320, Height: 200}, demo, 320, 200},
		{"demo size", Config{}, demo, demo.Width, demo.Height},
		{"partial override ignored", Config{Width: 10}, demo, demo.Width, demo.Height},
		{"default", Config{}, tri.Demo{}, tri.DefaultWidth, tri.DefaultHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.cfg.Size(tt.demo)
			if w != tt.w || h != tt.h {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

// TestRendererToPNG follows the package tri Quick Start: a renderer on
// the software device, one frame, then ReadPixels and WritePNG.
func TestRendererToPNG(t *testing.T) {
	demo := tri.MustLookup("triangle")
	dev, err := software.New(demo.Width, demo.Height)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()
	r := tri.NewRenderer(demo)
	if err := r.Init(dev); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer r.Close()
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if err := r.Frame(r.Now()); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	img, err := dev.ReadPixels()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "triangle.png")
	if err := WritePNG(path, img); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("output not written: %v", err)
	}
}

func TestOfflineWritesPNG(t *testing.T) {
	dev, err := software.New(64, 48)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	demo := tri.MustLookup("rose")
	cfg := Config{Width: 64, Height: 48, Frames: 5, Output: filepath.Join(t.TempDir(), "out.png")}
	img, err := Offline(context.Background(), dev, demo, cfg)
	if err != nil {
		t.Fatalf("Offline() error = %v", err)
	}
	if err := WritePNG(OutputPath(demo, cfg), img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(cfg.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("bounds = %v, want 64x48", b)
	}
}

func TestOfflineCanceled(t *testing.T) {
	dev, err := software.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Offline(ctx, dev, tri.MustLookup("simple"), Config{Frames: 3}); !errors.Is(err, context.Canceled) {
		t.Errorf("Offline() error = %v, want context.Canceled", err)
	}
}

func TestOutputPath(t *testing.T) {
	demo := tri.MustLookup("hsv")
	if got := OutputPath(demo, Config{}); got != "hsv.png" {
		t.Errorf("OutputPath() = %q", got)
	}
	if got := OutputPath(demo, Config{Output: "x.png"}); got != "x.png" {
		t.Errorf("OutputPath() = %q", got)
	}
}
