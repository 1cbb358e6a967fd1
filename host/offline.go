package host

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend"
)

// FrameInterval is the simulated time between offline frames.
const FrameInterval = time.Second / 60

// Offline runs demo on target without a window. Frame times advance by
// FrameInterval from a fixed epoch, so output is reproducible. It
// returns the last frame; the target stays open.
func Offline(ctx context.Context, target backend.Target, demo tri.Demo, cfg Config) (*image.NRGBA, error) {
	frames := cfg.Frames
	if frames <= 0 {
		frames = 1
	}

	now := time.Unix(0, 0)
	opts := append(cfg.Options(demo), tri.WithClock(func() time.Time { return now }))
	r := tri.NewRenderer(demo, opts...)
	defer r.Close()

	if err := r.Init(target); err != nil {
		return nil, err
	}
	if err := r.Start(); err != nil {
		return nil, err
	}

	for i := 0; i < frames && !r.Done(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		now = now.Add(FrameInterval)
		if err := r.Frame(now); err != nil {
			return nil, err
		}
	}

	img, err := target.ReadPixels()
	if err != nil {
		return nil, fmt.Errorf("host: read pixels: %w", err)
	}
	tri.Logger().Info("offline run finished",
		slog.String("demo", demo.Name),
		slog.String("backend", target.Name()),
		slog.Int("frames", r.State().Frame))
	return img, nil
}

// OutputPath returns cfg.Output or "<demo>.png".
func OutputPath(demo tri.Demo, cfg Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return demo.Name + ".png"
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("host: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("host: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("host: %w", err)
	}
	tri.Logger().Info("frame written", slog.String("path", path))
	return nil
}
