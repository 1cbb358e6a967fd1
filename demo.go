package tri

import (
	"log/slog"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Demo is one catalog entry: a variant plus the data and callbacks that
// drive it. Demos are values; the Renderer runs any of them.
type Demo struct {
	Name   string
	Title  string
	Width  int
	Height int

	Variant   Variant
	Clear     Color
	DepthTest bool

	// Texture is required for textured variants.
	Texture *TextureSource

	// Triangles builds the geometry. It is called at Init and again
	// after State.Regenerate.
	Triangles func(s *State) []Triangle

	// Setup initializes per-demo state before the first frame.
	Setup func(s *State)

	// Update advances the animation once per frame.
	Update func(s *State)

	// Uniforms fills the uniforms of the draw call for triangle i.
	Uniforms func(s *State, i int, u Uniforms)

	// Bindings are the demo's keys. Escape is always bound to exit.
	Bindings []KeyBinding

	// Orbit enables mouse drag rotation and scroll zoom.
	Orbit bool
}

// State is the mutable per-run state of a demo.
type State struct {
	Width  int
	Height int

	// Time is seconds since Start; Frame counts rendered frames.
	Time  float32
	Frame int

	Rotation    float32
	Tint        Color
	ObjectColor Color
	Material    int
	ShowNormals bool
	Effect      Effect

	// Hue is in degrees.
	Hue float32

	Intensity  Slider
	Brightness Slider
	Saturation Slider
	Value      Slider

	Camera  Orbit
	Pointer Pointer
	Rand    *rand.Rand

	regenerate bool
}

func newState(width, height int, seed uint64) *State {
	return &State{
		Width:       width,
		Height:      height,
		Tint:        TintWhite,
		ObjectColor: White,
		Intensity:   Slider{Name: "Light intensity", Value: 1, Min: 0.1, Max: 2, Step: 0.1},
		Brightness:  Slider{Name: "Brightness", Value: 1, Min: 0.1, Max: 2, Step: 0.1},
		Saturation:  Slider{Name: "Saturation", Value: 1, Min: 0, Max: 1, Step: 0.05},
		Value:       Slider{Name: "Value", Value: 1, Min: 0, Max: 1, Step: 0.05},
		Camera:      NewOrbit(),
		Rand:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // visual randomness
	}
}

// Regenerate asks the renderer to rebuild and re-upload the geometry
// before the next frame.
func (s *State) Regenerate() { s.regenerate = true }

// Aspect returns width / height.
func (s *State) Aspect() float32 {
	if s.Height <= 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Projection returns the perspective projection for the current size.
func (s *State) Projection() mgl32.Mat4 {
	return Perspective(s.Width, s.Height)
}

// RandomNormal returns a unit vector with z >= 0.
func (s *State) RandomNormal() mgl32.Vec3 {
	n := mgl32.Vec3{
		s.Rand.Float32()*2 - 1,
		s.Rand.Float32()*2 - 1,
		s.Rand.Float32(),
	}
	if n.Len() < 1e-6 {
		return mgl32.Vec3{0, 0, 1}
	}
	return n.Normalize()
}

// Status reports a state change from a key binding.
func (s *State) Status(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Help logs the bindings of d at Info level.
func (d *Demo) Help() {
	log := Logger()
	log.Info("demo controls", slog.String("demo", d.Name), slog.String("title", d.Title))
	for _, b := range d.Bindings {
		log.Info("  "+keyName(b.Key), slog.String("action", b.Help))
	}
	if d.Orbit {
		log.Info("  mouse drag", slog.String("action", "rotate camera"))
		log.Info("  mouse scroll", slog.String("action", "zoom"))
	}
	log.Info("  ESC", slog.String("action", "exit"))
}
