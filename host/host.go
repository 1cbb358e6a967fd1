package host

import (
	"context"
	"errors"

	"github.com/gogpu/tri"
)

// Errors returned by hosts.
var (
	// ErrUnavailable means the host cannot run here (no display, no GL
	// context, no adapter). Run tries the next host on this error.
	ErrUnavailable = errors.New("host: not available")

	// ErrUnknownHost is returned for a name nobody registered.
	ErrUnknownHost = errors.New("host: unknown host")
)

// Host runs one demo until it exits, ctx is canceled or the configured
// frame count is reached.
type Host interface {
	Name() string
	Run(ctx context.Context, demo tri.Demo, cfg Config) error
}

// Config is the host configuration shared by every host.
type Config struct {
	// Width and Height override the demo's preferred size.
	Width  int
	Height int

	// Frames stops the loop after this many frames. Zero runs
	// interactive hosts until exit and offline hosts for one frame.
	Frames int

	// Output is the PNG path for the last frame. Offline hosts default
	// to "<demo>.png"; interactive hosts only write when it is set.
	Output string

	// TexturePath replaces the image path of textured demos.
	TexturePath string

	// Seed seeds the demo's random source. Zero keeps the default.
	Seed uint64
}

// Size returns the surface size for demo.
func (c Config) Size(demo tri.Demo) (width, height int) {
	if c.Width > 0 && c.Height > 0 {
		return c.Width, c.Height
	}
	if demo.Width > 0 && demo.Height > 0 {
		return demo.Width, demo.Height
	}
	return tri.DefaultWidth, tri.DefaultHeight
}

// Options converts c into renderer options.
func (c Config) Options(demo tri.Demo) []tri.Option {
	w, h := c.Size(demo)
	opts := []tri.Option{tri.WithSize(w, h)}
	if c.TexturePath != "" {
		opts = append(opts, tri.WithTexturePath(c.TexturePath))
	}
	if c.Seed != 0 {
		opts = append(opts, tri.WithRandSeed(c.Seed))
	}
	return opts
}

// Title returns the window title for demo.
func Title(demo tri.Demo) string {
	if demo.Title != "" {
		return demo.Title
	}
	return demo.Name
}
