// Package offscreen renders demos with the software backend and writes
// the last frame as a PNG with a one-line HUD naming the demo, the
// frame count and the simulated time.
//
// It needs no GPU and no display, which makes it the host of last
// resort.
package offscreen

import (
	"context"
	"fmt"

	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend/software"
	"github.com/gogpu/tri/host"
)

func init() {
	host.Register(host.NameOffscreen, func() host.Host { return &Host{HUD: true} })
}

// Host is the offscreen host.
type Host struct {
	// HUD draws the status line into the written frame.
	HUD bool
}

// Name returns host.NameOffscreen.
func (*Host) Name() string { return host.NameOffscreen }

// Run renders cfg.Frames frames on the CPU and writes the PNG.
func (h *Host) Run(ctx context.Context, demo tri.Demo, cfg host.Config) error {
	w, ht := cfg.Size(demo)
	dev, err := software.New(w, ht)
	if err != nil {
		return err
	}
	defer dev.Close()

	img, err := host.Offline(ctx, dev, demo, cfg)
	if err != nil {
		return err
	}

	if h.HUD {
		frames := max(cfg.Frames, 1)
		seconds := float64(frames) * host.FrameInterval.Seconds()
		text := fmt.Sprintf("%s  |  frame %d  |  %.2fs  |  software", host.Title(demo), frames, seconds)
		if err := Label(img, text); err != nil {
			return err
		}
	}
	return host.WritePNG(host.OutputPath(demo, cfg), img)
}
