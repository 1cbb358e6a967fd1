// Package backend provides the registry of offscreen rendering targets.
//
// A Target is a tri.Device that draws into its own color buffer and can
// read the result back. Hosts that do not own a window (headless and
// offscreen rendering, tests) use targets; windowed hosts create their
// devices directly.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Import the backend packages you want available:
//
//	import (
//		_ "github.com/gogpu/tri/backend/software"
//		_ "github.com/gogpu/tri/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use Default() to open the best available backend, or Open() to request
// a specific backend by name:
//
//	// Open the default (best available) backend
//	t, err := backend.Default(800, 600)
//
//	// Or request a specific backend
//	t, err := backend.Open("software", 800, 600)
//
// # Usage with a Renderer
//
//	r := tri.NewRenderer(tri.MustLookup("triangle"))
//	if err := r.Init(t); err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	_ = r.Start()
//	_ = r.Frame(r.Now())
//	img, err := t.ReadPixels()
//
// # Available Backends
//
// - "wgpu": GPU rendering through the wgpu HAL (Vulkan, Metal, DX12, GL)
// - "software": CPU triangle rasterizer (always available)
package backend
