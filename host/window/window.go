// Package window runs demos in a gogpu application window. Frames are
// rendered by the software backend and presented as a texture through
// the window's gpucontext.TextureDrawer.
package window

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend/software"
	"github.com/gogpu/tri/host"
)

func init() {
	host.Register(host.NameWindow, func() host.Host { return Host{} })
}

// Host is the gogpu window host.
type Host struct{}

// Name returns host.NameWindow.
func (Host) Name() string { return host.NameWindow }

// Run opens the window and blocks until it closes.
func (Host) Run(ctx context.Context, demo tri.Demo, cfg host.Config) error {
	w, h := cfg.Size(demo)
	dev, err := software.New(w, h)
	if err != nil {
		return err
	}
	defer dev.Close()

	r := tri.NewRenderer(demo, cfg.Options(demo)...)
	defer r.Close()
	if err := r.Init(dev); err != nil {
		return err
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(host.Title(demo)).
		WithSize(w, h).
		WithContinuousRender(true))

	var (
		p        presenter
		frames   int
		frameErr error
		started  bool
	)

	app.OnDraw(func(dc *gogpu.Context) {
		if ctx.Err() != nil || r.Done() || frameErr != nil {
			app.Quit()
			return
		}
		if !started {
			if frameErr = r.Start(); frameErr != nil {
				app.Quit()
				return
			}
			started = true
		}

		if dw, dh := dc.Width(), dc.Height(); dw > 0 && dh > 0 {
			r.Resize(dw, dh)
		}
		if frameErr = r.Frame(r.Now()); frameErr != nil {
			app.Quit()
			return
		}
		img, err := dev.ReadPixels()
		if err != nil {
			frameErr = err
			app.Quit()
			return
		}
		if frameErr = p.present(dc.AsTextureDrawer(), img.Pix, img.Rect.Dx(), img.Rect.Dy()); frameErr != nil {
			app.Quit()
			return
		}

		frames++
		if cfg.Frames > 0 && frames >= cfg.Frames {
			if cfg.Output != "" {
				frameErr = host.WritePNG(cfg.Output, img)
			}
			app.Quit()
		}
	})

	bindInput(app.EventSource(), r)
	app.OnClose(func() {
		p.release()
		tri.Logger().Info("window closed", slog.String("demo", demo.Name), slog.Int("frames", frames))
	})

	if err := app.Run(); err != nil {
		return fmt.Errorf("%w: gogpu: %w", host.ErrUnavailable, err)
	}
	return frameErr
}

// bindInput forwards window events to r.
func bindInput(events gpucontext.EventSource, r *tri.Renderer) {
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		r.HandleKey(key)
	})
	events.OnMouseMove(func(x, y float64) {
		r.HandlePointerMove(float32(x), float32(y))
	})
	events.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		r.HandlePointerMove(float32(x), float32(y))
		r.HandlePointerButton(translateButton(b), true)
	})
	events.OnMouseRelease(func(b gpucontext.MouseButton, _, _ float64) {
		r.HandlePointerButton(translateButton(b), false)
	})
	events.OnScroll(func(_, dy float64) {
		r.HandleScroll(float32(dy))
	})
	events.OnResize(func(width, height int) {
		r.Resize(width, height)
	})
}

func translateButton(b gpucontext.MouseButton) gpucontext.Button {
	switch b {
	case gpucontext.MouseButtonLeft:
		return gpucontext.ButtonLeft
	case gpucontext.MouseButtonRight:
		return gpucontext.ButtonRight
	case gpucontext.MouseButtonMiddle:
		return gpucontext.ButtonMiddle
	default:
		return gpucontext.ButtonNone
	}
}
