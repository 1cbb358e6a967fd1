package opengl

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend"
)

// Name identifies the OpenGL backend.
const Name = "opengl"

// Device renders into the current GL context's default framebuffer.
type Device struct {
	width  int
	height int
	closed bool
}

var _ backend.Target = (*Device)(nil)

// New loads the GL function pointers for the current context.
func New(width, height int) (*Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("opengl: invalid size %dx%d", width, height)
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: opengl: %w", backend.ErrBackendNotAvailable, err)
	}
	tri.Logger().Info("opengl: context ready",
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	return &Device{width: width, height: height}, nil
}

// Name returns the backend identifier.
func (d *Device) Name() string { return Name }

// Size returns the framebuffer size used for the viewport.
func (d *Device) Size() (width, height int) { return d.width, d.height }

// Resize records the framebuffer size. The window owns the storage.
func (d *Device) Resize(width, height int) error {
	if d.closed {
		return backend.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("opengl: invalid size %dx%d", width, height)
	}
	d.width, d.height = width, height
	return nil
}

// Close marks the device closed. Objects still alive are deleted with
// the context.
func (d *Device) Close() { d.closed = true }

type program struct {
	id       uint32
	uniforms tri.UniformLayout
	textured bool
	loc      map[string]int32
	texLoc   int32
	released bool
}

func (p *program) Release() {
	if p.released {
		return
	}
	p.released = true
	gl.DeleteProgram(p.id)
}

// CreateProgram compiles and links the GLSL sources.
func (d *Device) CreateProgram(desc tri.ProgramDesc) (tri.Program, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	src := desc.Shaders.GLSL
	if src.Vertex == "" || src.Fragment == "" {
		return nil, fmt.Errorf("%w: %s has no GLSL source", tri.ErrShaderCompile, desc.Label)
	}

	vs, err := compileShader(src.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%w: %s vertex: %w", tri.ErrShaderCompile, desc.Label, err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(src.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("%w: %s fragment: %w", tri.ErrShaderCompile, desc.Label, err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(id)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%w: %s: %s", tri.ErrProgramLink, desc.Label, log)
	}

	p := &program{
		id:       id,
		uniforms: desc.Uniforms,
		textured: desc.Textured,
		loc:      make(map[string]int32, len(desc.Uniforms.Fields)),
		texLoc:   -1,
	}
	for _, f := range desc.Uniforms.Fields {
		// Unused uniforms are optimized out and report -1; setting
		// them is a no-op.
		p.loc[f.Name] = gl.GetUniformLocation(id, gl.Str(f.Name+"\x00"))
	}
	if desc.Textured {
		p.texLoc = gl.GetUniformLocation(id, gl.Str("tex\x00"))
	}
	tri.Logger().Debug("opengl: program linked", "label", desc.Label, "id", id)
	return p, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", strings.TrimRight(log, "\x00\n"))
	}
	return shader, nil
}

func programLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

type mesh struct {
	vao, vbo uint32
	vertices int
	released bool
}

func (m *mesh) VertexCount() int { return m.vertices }

func (m *mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
}

// CreateMesh uploads the packed vertices into a static buffer and
// records the attribute layout in a vertex array object.
func (d *Device) CreateMesh(layout tri.Layout, tris []tri.Triangle) (tri.Mesh, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	if len(tris) == 0 {
		return nil, tri.ErrEmptyMesh
	}

	var floats []float32
	for _, t := range tris {
		for _, v := range t {
			floats = layout.Floats(floats, v)
		}
	}

	m := &mesh{vertices: tri.VertexCount(tris)}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(floats)*4, gl.Ptr(floats), gl.STATIC_DRAW)

	stride := int32(layout.Stride()) //nolint:gosec // small stride
	for _, a := range layout.Attributes() {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointer(a.Location, int32(a.Components), gl.FLOAT, false, stride, gl.PtrOffset(a.Offset)) //nolint:gosec // small values
	}
	gl.BindVertexArray(0)

	if err := glError("create mesh"); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

type texture struct {
	id       uint32
	released bool
}

func (t *texture) Release() {
	if t.released {
		return
	}
	t.released = true
	gl.DeleteTextures(1, &t.id)
}

// CreateTexture uploads tex with repeat wrapping and linear filtering.
// Row 0 of tex is the t = 0 row, matching the other backends.
func (d *Device) CreateTexture(tex *tri.Texture) (tri.TextureHandle, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 || len(tex.Pix) < tex.Width*tex.Height*4 {
		return nil, tri.ErrTextureSize
	}

	t := &texture{}
	gl.GenTextures(1, &t.id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(tex.Width), int32(tex.Height), 0, //nolint:gosec // validated positive
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("create texture"); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// Draw clears the framebuffer and issues one DrawArrays per call.
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

	gl.Viewport(0, 0, int32(d.width), int32(d.height)) //nolint:gosec // validated positive
	gl.ClearColor(pass.Clear[0], pass.Clear[1], pass.Clear[2], pass.Clear[3])
	if pass.Depth {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	} else {
		gl.Disable(gl.DEPTH_TEST)
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}

	for i, dc := range pass.Draws {
		if err := d.draw(dc); err != nil {
			return fmt.Errorf("opengl: draw %d: %w", i, err)
		}
	}
	gl.BindVertexArray(0)
	return glError("draw")
}

func (d *Device) draw(dc tri.DrawCall) error {
	p, ok := dc.Program.(*program)
	if !ok {
		return fmt.Errorf("foreign program %T", dc.Program)
	}
	m, ok := dc.Mesh.(*mesh)
	if !ok {
		return fmt.Errorf("foreign mesh %T", dc.Mesh)
	}
	if p.released || m.released {
		return tri.ErrReleased
	}

	gl.UseProgram(p.id)
	if err := p.set(dc.Uniforms); err != nil {
		return err
	}
	if p.textured {
		tex, ok := dc.Texture.(*texture)
		if !ok || tex.released {
			return fmt.Errorf("textured program without a live texture")
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		gl.Uniform1i(p.texLoc, 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, int32(dc.First), int32(dc.Count)) //nolint:gosec // validated by pass
	return nil
}

// set uploads every field of the layout from u.
func (p *program) set(u tri.Uniforms) error {
	if err := p.uniforms.Validate(u); err != nil {
		return err
	}
	for _, f := range p.uniforms.Fields {
		loc := p.loc[f.Name]
		v := u[f.Name]
		switch f.Kind {
		case tri.KindFloat:
			gl.Uniform1f(loc, v.Float)
		case tri.KindInt:
			gl.Uniform1i(loc, v.Int)
		case tri.KindVec3:
			gl.Uniform3f(loc, v.Vec3[0], v.Vec3[1], v.Vec3[2])
		case tri.KindMat4:
			m := v.Mat4
			gl.UniformMatrix4fv(loc, 1, false, &m[0])
		}
	}
	return nil
}

// ReadPixels reads the back buffer. GL rows start at the bottom, so
// they are flipped to put row 0 at the top.
func (d *Device) ReadPixels() (*image.NRGBA, error) {
	if d.closed {
		return nil, backend.ErrClosed
	}
	w, h := d.width, d.height
	raw := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(raw)) //nolint:gosec // validated positive
	if err := glError("read pixels"); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	row := w * 4
	for y := range h {
		copy(img.Pix[y*img.Stride:], raw[(h-1-y)*row:(h-y)*row])
	}
	return img, nil
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl: %s: error 0x%04x", op, code)
	}
	return nil
}
