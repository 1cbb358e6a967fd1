package tri

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gpucontext"
)

// Renderer runs one demo against a Device. It owns the program, the
// mesh and the texture handle and releases them on every exit path.
//
// A Renderer is not safe for concurrent use; hosts call it from their
// render thread only.
type Renderer struct {
	demo  Demo
	opts  options
	state *State
	phase Phase

	dev     Device
	program Program
	mesh    Mesh
	texture TextureHandle

	start    time.Time
	exit     bool
	fellBack bool

	pass Pass
}

// NewRenderer creates a renderer for demo in the Uninitialized phase.
func NewRenderer(demo Demo, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := demo.Width, demo.Height
	if o.width > 0 && o.height > 0 {
		w, h = o.width, o.height
	}
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}

	return &Renderer{
		demo:  demo,
		opts:  o,
		state: newState(w, h, o.seed),
	}
}

// Demo returns the demo being rendered.
func (r *Renderer) Demo() Demo { return r.demo }

// State returns the mutable demo state.
func (r *Renderer) State() *State { return r.state }

// Phase returns the current lifecycle phase.
func (r *Renderer) Phase() Phase { return r.phase }

// Size returns the current surface size.
func (r *Renderer) Size() (width, height int) { return r.state.Width, r.state.Height }

// UsedFallbackTexture reports whether Init substituted the procedural
// texture for an image that failed to load.
func (r *Renderer) UsedFallbackTexture() bool { return r.fellBack }

// Init creates the GPU resources on dev and moves to Ready. Any
// failure releases what was acquired, moves to Terminated and returns
// an *InitError naming the failed stage.
func (r *Renderer) Init(dev Device) error {
	if err := transition(r.phase, PhaseReady); err != nil {
		return err
	}
	if dev == nil {
		return r.fail(StageContext, fmt.Errorf("tri: nil device"))
	}
	r.dev = dev

	if r.demo.Setup != nil {
		r.demo.Setup(r.state)
	}

	desc := r.demo.Variant.Program(r.demo.Name, r.demo.DepthTest)
	program, err := dev.CreateProgram(desc)
	if err != nil {
		return r.fail(programStage(err), err)
	}
	r.program = program

	if err := r.uploadMesh(); err != nil {
		return r.fail(StageUpload, err)
	}

	if r.demo.Variant.Textured() {
		tex, err := r.buildTexture()
		if err != nil {
			return r.fail(StageTexture, err)
		}
		handle, err := dev.CreateTexture(tex)
		if err != nil {
			return r.fail(StageTexture, err)
		}
		r.texture = handle
	}

	r.phase = PhaseReady
	Logger().Info("demo ready",
		slog.String("demo", r.demo.Name),
		slog.String("variant", r.demo.Variant.String()),
		slog.Int("width", r.state.Width),
		slog.Int("height", r.state.Height))
	return nil
}

func (r *Renderer) fail(stage Stage, err error) error {
	r.release()
	r.phase = PhaseTerminated
	return NewInitError(r.demo.Name, stage, err)
}

// buildTexture resolves the demo's texture source. The path option
// only replaces a file path; procedural sources ignore it.
func (r *Renderer) buildTexture() (*Texture, error) {
	src := TextureSource{Generate: DefaultCheckerboard}
	if r.demo.Texture != nil {
		src = *r.demo.Texture
	}
	path := src.Path
	if path != "" && r.opts.texturePath != "" {
		path = r.opts.texturePath
	}

	tex, fellBack, loadErr := src.Resolve(path, r.opts.maxTextureEdge)
	if fellBack {
		r.fellBack = true
		Logger().Warn("texture load failed, using procedural fallback",
			slog.String("demo", r.demo.Name),
			slog.String("path", path),
			slog.Any("err", loadErr))
		return tex, nil
	}
	return tex, loadErr
}

// uploadMesh builds the demo geometry and replaces the current mesh.
// Uploaded meshes are immutable, so a change always means a new one.
func (r *Renderer) uploadMesh() error {
	var tris []Triangle
	if r.demo.Triangles != nil {
		tris = r.demo.Triangles(r.state)
	}
	if len(tris) == 0 {
		return ErrEmptyMesh
	}
	mesh, err := r.dev.CreateMesh(r.demo.Variant.Layout(), tris)
	if err != nil {
		return err
	}
	if r.mesh != nil {
		r.mesh.Release()
	}
	r.mesh = mesh
	Logger().Debug("mesh uploaded",
		slog.String("demo", r.demo.Name),
		slog.Int("vertices", mesh.VertexCount()))
	return nil
}

// Start moves a Ready renderer to Running and prints the controls.
func (r *Renderer) Start() error {
	if r.phase != PhaseReady {
		return fmt.Errorf("%w: %v -> %v", ErrInvalidTransition, r.phase, PhaseRunning)
	}
	r.phase = PhaseRunning
	r.start = r.opts.clock()
	r.demo.Help()
	return nil
}

// Now returns the renderer's clock reading.
func (r *Renderer) Now() time.Time { return r.opts.clock() }

// Frame advances the demo to now and draws one pass.
func (r *Renderer) Frame(now time.Time) error {
	if r.phase != PhaseRunning {
		return fmt.Errorf("%w: frame in phase %v", ErrInvalidTransition, r.phase)
	}

	s := r.state
	s.Time = float32(now.Sub(r.start).Seconds())
	if r.demo.Update != nil {
		r.demo.Update(s)
	}
	if s.regenerate {
		s.regenerate = false
		if err := r.uploadMesh(); err != nil {
			return fmt.Errorf("tri: regenerate mesh: %w", err)
		}
	}

	pass, err := r.buildPass()
	if err != nil {
		return err
	}
	if err := pass.Validate(); err != nil {
		return err
	}
	if err := r.dev.Draw(pass); err != nil {
		return fmt.Errorf("tri: draw: %w", err)
	}
	s.Frame++
	return nil
}

// buildPass fills the reused pass with one draw call per triangle.
func (r *Renderer) buildPass() (*Pass, error) {
	s := r.state
	layout := r.demo.Variant.UniformLayout()
	n := r.mesh.VertexCount() / TriangleVertices

	p := &r.pass
	p.Width, p.Height = s.Width, s.Height
	p.Clear = r.demo.Clear.Vec3().Vec4(1)
	p.Depth = r.demo.DepthTest
	p.Draws = p.Draws[:0]

	for i := range n {
		u := Uniforms{}
		if r.demo.Uniforms != nil {
			r.demo.Uniforms(s, i, u)
		}
		if err := layout.Validate(u); err != nil {
			return nil, fmt.Errorf("tri: %s draw %d: %w", r.demo.Name, i, err)
		}
		p.Draws = append(p.Draws, DrawCall{
			Program:  r.program,
			Mesh:     r.mesh,
			Texture:  r.texture,
			Uniforms: u,
			First:    i * TriangleVertices,
			Count:    TriangleVertices,
		})
	}
	return p, nil
}

// HandleKey applies the binding for key. Escape always requests exit.
func (r *Renderer) HandleKey(key gpucontext.Key) {
	if key == gpucontext.KeyEscape {
		r.RequestExit()
		return
	}
	for _, b := range r.demo.Bindings {
		if b.Key == key && b.Apply != nil {
			b.Apply(r.state)
			return
		}
	}
}

// HandlePointerMove records the pointer position in surface pixels.
// With the left button held, orbit demos rotate the camera.
func (r *Renderer) HandlePointerMove(x, y float32) {
	p := &r.state.Pointer
	dx, dy := p.Move(x, y)
	p.Inside = x >= 0 && y >= 0 && x < float32(r.state.Width) && y < float32(r.state.Height)
	if r.demo.Orbit && p.Down {
		r.state.Camera.Drag(dx, dy)
	}
}

// HandlePointerButton tracks the primary button.
func (r *Renderer) HandlePointerButton(button gpucontext.Button, pressed bool) {
	if button == gpucontext.ButtonLeft {
		r.state.Pointer.Down = pressed
	}
}

// HandlePointerLeave marks the pointer as outside the surface.
func (r *Renderer) HandlePointerLeave() {
	r.state.Pointer.Inside = false
	r.state.Pointer.Down = false
}

// HandleScroll zooms orbit demos.
func (r *Renderer) HandleScroll(dy float32) {
	if r.demo.Orbit {
		r.state.Camera.Scroll(dy)
	}
}

// Resize updates the viewport and projection aspect. Zero sizes
// (minimized windows) are ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.state.Width, r.state.Height = width, height
}

// RequestExit asks the host to stop after the current frame.
func (r *Renderer) RequestExit() {
	if !r.exit {
		Logger().Info("exit requested", slog.String("demo", r.demo.Name))
	}
	r.exit = true
}

// Done reports whether exit was requested or the renderer terminated.
func (r *Renderer) Done() bool {
	return r.exit || r.phase == PhaseTerminated
}

// Close releases all resources and moves to Terminated. It is safe to
// call more than once.
func (r *Renderer) Close() {
	if r.phase == PhaseTerminated {
		return
	}
	r.release()
	r.phase = PhaseTerminated
	Logger().Info("demo terminated",
		slog.String("demo", r.demo.Name),
		slog.Int("frames", r.state.Frame))
}

func (r *Renderer) release() {
	if r.texture != nil {
		r.texture.Release()
		r.texture = nil
	}
	if r.mesh != nil {
		r.mesh.Release()
		r.mesh = nil
	}
	if r.program != nil {
		r.program.Release()
		r.program = nil
	}
}
