// Package wgpu provides the GPU backend for tri using the gogpu/wgpu HAL.
//
// The backend renders into an offscreen RGBA8 color target with a
// Depth24Plus depth buffer and reads frames back through a staging
// buffer. [New] works with any HAL device, including a GL device whose
// context a surface already owns, and the noop device in tests. [Open]
// creates its own device and only tries Vulkan, Metal and DX12.
//
// # Architecture Overview
//
//	tri.Pass -> per-draw uniform buffer + bind group -> render pass -> Submit -> WaitIdle
//
// Key components:
//
//   - Device: implements backend.Target on a hal.Device and hal.Queue
//   - program: shader module (WGSL compiled to SPIR-V by naga), bind group
//     layout, pipeline layout and render pipeline for one tri.Variant
//   - mesh: immutable vertex buffer holding 3·n vertices
//   - texture: sampled RGBA8 texture with its view
//
// # Bind Group Layout
//
// Every program uses group 0:
//
//	@binding(0) uniform block packed by tri.UniformLayout
//	@binding(1) texture_2d<f32>   (textured programs)
//	@binding(2) sampler           (textured programs, repeat + linear)
//
// # Usage
//
//	import _ "github.com/gogpu/wgpu/hal/allbackends"
//
//	dev, err := wgpu.Open(800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Close()
//
// Tests construct a Device on the noop HAL with New.
package wgpu
