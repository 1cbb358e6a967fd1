// Package host runs tri demos on a surface.
//
// A Host owns the surface, the graphics context and the frame loop; the
// tri.Renderer owns the demo. Hosts register themselves by name from
// their package init, so a command selects them with blank imports:
//
//	import (
//		_ "github.com/gogpu/tri/host/desktop"   // glfw + OpenGL 3.3
//		_ "github.com/gogpu/tri/host/window"    // gogpu window
//		_ "github.com/gogpu/tri/host/headless"  // best backend, PNG output
//		_ "github.com/gogpu/tri/host/offscreen" // software, PNG output with HUD
//	)
//
//	err := host.Run(ctx, "", tri.MustLookup("triangle"), host.Config{})
//
// An empty host name tries the registered hosts in Priority order and
// moves on when one reports ErrUnavailable.
package host
