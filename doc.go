// Package tri renders single-triangle shader demonstrations.
//
// # Overview
//
// Every demo draws one triangle (or a handful of independent triangles)
// every frame with a small set of slowly varying parameters: a vertex
// color, a procedural or decoded texture, Phong lighting, an HSV color,
// a rotation. Instead of a program per demo, tri has one parameterized
// [Renderer] and a catalog of [Demo] values.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/tri"
//		"github.com/gogpu/tri/backend/software"
//		"github.com/gogpu/tri/host"
//	)
//
//	demo := tri.MustLookup("triangle")
//	dev, err := software.New(demo.Width, demo.Height)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//	r := tri.NewRenderer(demo)
//	if err := r.Init(dev); err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//	_ = r.Start()
//	_ = r.Frame(r.Now())
//	img, _ := dev.ReadPixels()
//	_ = host.WritePNG("triangle.png", img)
//
// # Lifecycle
//
// A renderer moves through four phases:
//
//	Uninitialized -> Ready -> Running -> Terminated
//
// [Renderer.Init] acquires the program, the vertex buffer and the
// texture. [Renderer.Close] releases them and is safe to call on every
// exit path.
//
// # Devices
//
// Rendering goes through the [Device] interface. Implementations live in
// backend/wgpu (WebGPU HAL, WGSL compiled with naga), backend/opengl
// (OpenGL 3.3 core through go-gl) and backend/software (CPU rasterizer).
// Hosts under host/ own the window or offscreen target and drive the
// loop.
//
// # Logging
//
// tri is silent by default. Call [SetLogger] to enable structured logs.
package tri
