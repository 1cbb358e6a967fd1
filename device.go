package tri

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Device is the graphics API behind the renderer. Implementations live
// in the backend packages; all calls happen on the render thread.
type Device interface {
	// CreateProgram compiles and links a shader program. Compilation
	// failures wrap ErrShaderCompile, link failures ErrProgramLink.
	CreateProgram(desc ProgramDesc) (Program, error)

	// CreateMesh uploads vertex data. The buffer is immutable.
	CreateMesh(layout Layout, tris []Triangle) (Mesh, error)

	// CreateTexture uploads an RGBA8 texture with repeat addressing and
	// linear filtering.
	CreateTexture(tex *Texture) (TextureHandle, error)

	// Draw clears the target and executes every draw call of the pass.
	Draw(pass *Pass) error
}

// ProgramDesc describes a shader program.
type ProgramDesc struct {
	Label     string
	Shaders   ShaderSet
	Layout    Layout
	Uniforms  UniformLayout
	Textured  bool
	DepthTest bool
}

// Program is a compiled shader program.
type Program interface {
	Release()
}

// Mesh is an uploaded vertex buffer.
type Mesh interface {
	VertexCount() int
	Release()
}

// TextureHandle is an uploaded texture.
type TextureHandle interface {
	Release()
}

// DrawCall draws Count vertices of Mesh starting at First.
type DrawCall struct {
	Program  Program
	Mesh     Mesh
	Texture  TextureHandle
	Uniforms Uniforms
	First    int
	Count    int
}

// Pass is one frame: a clear followed by draw calls.
type Pass struct {
	Width  int
	Height int
	Clear  mgl32.Vec4
	Depth  bool
	Draws  []DrawCall
}

// Validate checks that every draw call requests exactly one triangle
// inside its mesh.
func (p *Pass) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("tri: invalid pass size %dx%d", p.Width, p.Height)
	}
	for i, d := range p.Draws {
		if d.Program == nil || d.Mesh == nil {
			return fmt.Errorf("tri: draw %d has no program or mesh", i)
		}
		if d.Count != TriangleVertices {
			return fmt.Errorf("%w: draw %d requests %d", ErrVertexCount, i, d.Count)
		}
		if d.First < 0 || d.First+d.Count > d.Mesh.VertexCount() {
			return fmt.Errorf("%w: draw %d range [%d, %d) exceeds mesh of %d",
				ErrVertexCount, i, d.First, d.First+d.Count, d.Mesh.VertexCount())
		}
	}
	return nil
}
