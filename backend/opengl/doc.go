// Package opengl implements tri.Device on an OpenGL 3.3 core context
// using github.com/go-gl/gl.
//
// The device draws into the default framebuffer of whatever context is
// current on the calling thread; it does not create one. Hosts make the
// context current, call gl.Init through New and keep every call on the
// locked OS thread.
//
// GLSL programs bind vertex attributes with explicit layout locations
// and read textures from the "tex" sampler on unit 0.
package opengl
