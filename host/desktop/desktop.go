// Package desktop runs demos in a GLFW window with an OpenGL 3.3 core
// context, redrawing once per vsync.
package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend/opengl"
	"github.com/gogpu/tri/host"
)

func init() {
	// GLFW calls must come from the main thread.
	runtime.LockOSThread()
	host.Register(host.NameDesktop, func() host.Host { return Host{} })
}

// Host is the GLFW desktop host.
type Host struct{}

// Name returns host.NameDesktop.
func (Host) Name() string { return host.NameDesktop }

// Run opens the window and drives the renderer until the window closes,
// the demo requests exit, ctx is canceled or cfg.Frames frames are shown.
func (Host) Run(ctx context.Context, demo tri.Demo, cfg host.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: glfw: %w", host.ErrUnavailable, err)
	}
	defer glfw.Terminate()

	w, h := cfg.Size(demo)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(w, h, host.Title(demo), nil, nil)
	if err != nil {
		return fmt.Errorf("%w: create window: %w", host.ErrUnavailable, err)
	}
	defer window.Destroy()
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	// High-DPI framebuffers are larger than the window.
	fbw, fbh := window.GetFramebufferSize()
	dev, err := opengl.New(fbw, fbh)
	if err != nil {
		return fmt.Errorf("%w: %w", host.ErrUnavailable, err)
	}
	defer dev.Close()

	opts := append(cfg.Options(demo), tri.WithSize(fbw, fbh))
	r := tri.NewRenderer(demo, opts...)
	defer r.Close()
	if err := r.Init(dev); err != nil {
		return err
	}
	bindInput(window, r)
	if err := r.Start(); err != nil {
		return err
	}

	frames := 0
	for !window.ShouldClose() && !r.Done() {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := r.Frame(r.Now()); err != nil {
			return err
		}
		frames++
		if cfg.Frames > 0 && frames >= cfg.Frames {
			break
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}

	// The back buffer still holds the last frame.
	if cfg.Output != "" {
		img, err := dev.ReadPixels()
		if err != nil {
			return err
		}
		if err := host.WritePNG(cfg.Output, img); err != nil {
			return err
		}
	}
	tri.Logger().Info("desktop host closed", slog.String("demo", demo.Name), slog.Int("frames", frames))
	return nil
}

// bindInput forwards window events to r.
func bindInput(window *glfw.Window, r *tri.Renderer) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press && action != glfw.Repeat {
			return
		}
		if k := translateKey(key); k != gpucontext.KeyUnknown {
			r.HandleKey(k)
		}
	})

	// Cursor positions are in window coordinates; scale them to the
	// framebuffer the renderer sees.
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		sx, sy := w.GetContentScale()
		r.HandlePointerMove(float32(x)*sx, float32(y)*sy)
	})
	window.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			r.HandlePointerLeave()
		}
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		r.HandlePointerButton(translateButton(button), action == glfw.Press)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		r.HandleScroll(float32(dy))
	})
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.Resize(width, height)
	})
}

func translateButton(b glfw.MouseButton) gpucontext.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return gpucontext.ButtonLeft
	case glfw.MouseButtonRight:
		return gpucontext.ButtonRight
	case glfw.MouseButtonMiddle:
		return gpucontext.ButtonMiddle
	default:
		return gpucontext.ButtonNone
	}
}

func translateKey(k glfw.Key) gpucontext.Key {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return gpucontext.KeyA + gpucontext.Key(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return gpucontext.Key0 + gpucontext.Key(k-glfw.Key0)
	}
	switch k {
	case glfw.KeyEscape:
		return gpucontext.KeyEscape
	case glfw.KeySpace:
		return gpucontext.KeySpace
	case glfw.KeyEnter:
		return gpucontext.KeyEnter
	case glfw.KeyTab:
		return gpucontext.KeyTab
	case glfw.KeyUp:
		return gpucontext.KeyUp
	case glfw.KeyDown:
		return gpucontext.KeyDown
	case glfw.KeyLeft:
		return gpucontext.KeyLeft
	case glfw.KeyRight:
		return gpucontext.KeyRight
	}
	return gpucontext.KeyUnknown
}
