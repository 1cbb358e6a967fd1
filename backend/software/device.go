package software

import (
	"fmt"
	"image"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend"
	"github.com/gogpu/wgpu/hal/software/raster"
)

func init() {
	backend.Register(backend.NameSoftware, func(width, height int) (backend.Target, error) {
		return New(width, height)
	})
}

// Device renders on the CPU with the wgpu software rasterizer. Programs
// run their Go shaders; clip-space positions use the GL depth range and
// are remapped to [0, 1] before clipping.
type Device struct {
	pipe   *raster.Pipeline
	width  int
	height int
	closed bool
}

var _ backend.Target = (*Device)(nil)

// New creates a device with a width x height color buffer.
func New(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: invalid size %dx%d", width, height)
	}
	return &Device{
		pipe:   raster.NewPipeline(width, height),
		width:  width,
		height: height,
	}, nil
}

// Name returns the backend identifier.
func (d *Device) Name() string { return backend.NameSoftware }

// Size returns the color buffer size.
func (d *Device) Size() (width, height int) { return d.width, d.height }

// Resize reallocates the buffers. The contents are cleared.
func (d *Device) Resize(width, height int) error {
	if d.closed {
		return backend.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("software: invalid size %dx%d", width, height)
	}
	if width == d.width && height == d.height {
		return nil
	}
	d.pipe.Resize(width, height)
	d.width, d.height = width, height
	return nil
}

// Close releases the rasterizer.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.pipe.Close()
}

type program struct {
	desc     tri.ProgramDesc
	released bool
}

func (p *program) Release() { p.released = true }

// CreateProgram checks that the program carries Go shaders.
func (d *Device) CreateProgram(desc tri.ProgramDesc) (tri.Program, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	if desc.Shaders.Soft.Vertex == nil || desc.Shaders.Soft.Fragment == nil {
		return nil, fmt.Errorf("%w: %s has no software shaders", tri.ErrShaderCompile, desc.Label)
	}
	tri.Logger().Debug("software: program created", "label", desc.Label)
	return &program{desc: desc}, nil
}

type mesh struct {
	tris     []tri.Triangle
	released bool
}

func (m *mesh) VertexCount() int { return tri.VertexCount(m.tris) }
func (m *mesh) Release()         { m.released = true }

// CreateMesh copies the triangles.
func (d *Device) CreateMesh(_ tri.Layout, tris []tri.Triangle) (tri.Mesh, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	if len(tris) == 0 {
		return nil, tri.ErrEmptyMesh
	}
	return &mesh{tris: slices.Clone(tris)}, nil
}

type texture struct {
	tex      *tri.Texture
	released bool
}

func (t *texture) Release() { t.released = true }

// CreateTexture keeps a reference to tex; tri textures are immutable
// once built.
func (d *Device) CreateTexture(tex *tri.Texture) (tri.TextureHandle, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return nil, tri.ErrTextureSize
	}
	return &texture{tex: tex}, nil
}

// Draw clears the buffers and rasterizes every draw call.
func (d *Device) Draw(pass *tri.Pass) error {
	if d.closed {
		return backend.ErrClosed
	}
	if err := pass.Validate(); err != nil {
		return err
	}
	if err := d.Resize(pass.Width, pass.Height); err != nil {
		return err
	}

	p := d.pipe
	p.Clear(pass.Clear[0], pass.Clear[1], pass.Clear[2], pass.Clear[3])
	p.ClearDepth(1)
	p.SetDepthTest(pass.Depth, raster.CompareLess)
	p.SetDepthWrite(pass.Depth)
	p.SetCullMode(raster.CullNone)
	p.SetViewport(raster.Viewport{Width: d.width, Height: d.height, MinDepth: 0, MaxDepth: 1})

	for i, dc := range pass.Draws {
		if err := d.draw(dc); err != nil {
			return fmt.Errorf("software: draw %d: %w", i, err)
		}
	}
	return nil
}

func (d *Device) draw(dc tri.DrawCall) error {
	prog, ok := dc.Program.(*program)
	if !ok {
		return fmt.Errorf("foreign program %T", dc.Program)
	}
	m, ok := dc.Mesh.(*mesh)
	if !ok {
		return fmt.Errorf("foreign mesh %T", dc.Mesh)
	}
	if prog.released || m.released {
		return tri.ErrReleased
	}

	var sampler tri.Sampler
	if prog.desc.Textured {
		tex, ok := dc.Texture.(*texture)
		if !ok || tex.released {
			return fmt.Errorf("textured program without a live texture")
		}
		sampler = tex.tex
	}

	shader := prog.desc.Shaders.Soft
	src := m.tris[dc.First/tri.TriangleVertices]

	var clip [3]raster.ClipSpaceVertex
	for i, v := range src {
		pos, varyings := shader.Vertex(v, dc.Uniforms)
		clip[i] = raster.ClipSpaceVertex{
			Position:   glToZeroOne(pos),
			Attributes: varyings,
		}
	}

	var screen []raster.Triangle
	for _, c := range raster.ClipTriangleNearFar(clip) {
		screen = append(screen, raster.Triangle{
			V0: d.toScreen(c[0]),
			V1: d.toScreen(c[1]),
			V2: d.toScreen(c[2]),
		})
	}
	if len(screen) == 0 {
		return nil
	}

	u := dc.Uniforms
	d.pipe.DrawTrianglesWithFragmentShader(screen, func(attrs []float32) [4]float32 {
		return shader.Fragment(attrs, u, sampler)
	})
	return nil
}

// glToZeroOne maps GL clip depth (z in [-w, w]) to the [0, w] range the
// rasterizer clips against.
func glToZeroOne(p mgl32.Vec4) [4]float32 {
	return [4]float32{p[0], p[1], (p[2] + p[3]) * 0.5, p[3]}
}

// toScreen applies the perspective divide and the viewport transform.
// Row 0 is the top of the image.
func (d *Device) toScreen(v raster.ClipSpaceVertex) raster.ScreenVertex {
	invW := float32(1)
	if w := v.Position[3]; w != 0 {
		invW = 1 / w
	}
	x, y, z := v.Position[0]*invW, v.Position[1]*invW, v.Position[2]*invW
	return raster.ScreenVertex{
		X:          (x + 1) * 0.5 * float32(d.width),
		Y:          (1 - y) * 0.5 * float32(d.height),
		Z:          z,
		W:          invW,
		Attributes: v.Attributes,
	}
}

// ReadPixels returns a copy of the color buffer.
func (d *Device) ReadPixels() (*image.NRGBA, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	copy(img.Pix, d.pipe.GetColorBuffer())
	return img, nil
}
