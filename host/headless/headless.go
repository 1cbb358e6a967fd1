// Package headless renders demos without a window on the best available
// backend and writes the last frame as a PNG.
//
// Every wgpu HAL backend is linked in; when no hardware adapter is found
// the software backend is used instead.
package headless

import (
	"context"

	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend"
	_ "github.com/gogpu/tri/backend/software" // fallback target
	_ "github.com/gogpu/tri/backend/wgpu"     // GPU target
	"github.com/gogpu/tri/host"
	_ "github.com/gogpu/wgpu/hal/allbackends" // Vulkan, Metal, DX12, GL
)

func init() {
	host.Register(host.NameHeadless, func() host.Host { return Host{} })
}

// Host is the headless host.
type Host struct{}

// Name returns host.NameHeadless.
func (Host) Name() string { return host.NameHeadless }

// Run renders cfg.Frames frames and writes the PNG.
func (Host) Run(ctx context.Context, demo tri.Demo, cfg host.Config) error {
	w, h := cfg.Size(demo)
	target, err := backend.Default(w, h)
	if err != nil {
		return err
	}
	defer target.Close()

	img, err := host.Offline(ctx, target, demo, cfg)
	if err != nil {
		return err
	}
	return host.WritePNG(host.OutputPath(demo, cfg), img)
}
