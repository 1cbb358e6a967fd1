package software

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend"
)

func frozenClock() time.Time { return time.Unix(0, 0) }

// render runs the named demo for one frame and returns the image.
func render(t *testing.T, name string, width, height int) *image.NRGBA {
	t.Helper()
	dev, err := New(width, height)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(dev.Close)

	r := tri.NewRenderer(tri.MustLookup(name),
		tri.WithSize(width, height),
		tri.WithClock(frozenClock),
		tri.WithRandSeed(1))
	if err := r.Init(dev); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer r.Close()
	if err := r.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := r.Frame(r.Now()); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}

	img, err := dev.ReadPixels()
	if err != nil {
		t.Fatalf("ReadPixels() error = %v", err)
	}
	return img
}

func near(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -1 && d <= 1
}

func assertPixel(t *testing.T, img *image.NRGBA, x, y int, want tri.Color) {
	t.Helper()
	got := img.NRGBAAt(x, y)
	w := want.NRGBA()
	if !near(got.R, w.R) || !near(got.G, w.G) || !near(got.B, w.B) {
		t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, w)
	}
}

func TestSimpleTriangle(t *testing.T) {
	img := render(t, "simple", 64, 48)
	assertPixel(t, img, 32, 24, tri.RGB(0.8, 0.3, 0.8))
	assertPixel(t, img, 0, 0, tri.RGB(0.2, 0.3, 0.3))
	assertPixel(t, img, 63, 47, tri.RGB(0.2, 0.3, 0.3))
}

func TestColoredTriangleInterpolates(t *testing.T) {
	img := render(t, "triangle", 64, 48)

	// Bottom-left vertex is red, bottom-right green, top blue.
	tests := []struct {
		name string
		x, y int
		ch   int
	}{
		{"near red", 18, 34, 0},
		{"near green", 45, 34, 1},
		{"near blue", 32, 14, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := img.NRGBAAt(tt.x, tt.y)
			ch := [3]uint8{c.R, c.G, c.B}
			for i, v := range ch {
				if i != tt.ch && v >= ch[tt.ch] {
					t.Errorf("pixel %v: channel %d not dominant", c, tt.ch)
				}
			}
		})
	}
}

func TestHSVTriangleAtTimeZeroIsRed(t *testing.T) {
	img := render(t, "hsv", 64, 48)
	assertPixel(t, img, 32, 24, tri.Red)
}

func TestEveryDemoDrawsOverClear(t *testing.T) {
	for _, name := range tri.Names() {
		t.Run(name, func(t *testing.T) {
			d := tri.MustLookup(name)
			img := render(t, name, 80, 60)
			bg := d.Clear.NRGBA()

			covered := 0
			b := img.Bounds()
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					c := img.NRGBAAt(x, y)
					if c.A != 255 {
						t.Fatalf("pixel (%d, %d) alpha = %d, want 255", x, y, c.A)
					}
					if !near(c.R, bg.R) || !near(c.G, bg.G) || !near(c.B, bg.B) {
						covered++
					}
				}
			}
			if want := b.Dx() * b.Dy() / 50; covered < want {
				t.Errorf("%d pixels drawn, want at least %d", covered, want)
			}
		})
	}
}

func TestDepthTest(t *testing.T) {
	dev, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	prog, err := dev.CreateProgram(tri.VariantSolid.Program("solid", true))
	if err != nil {
		t.Fatal(err)
	}
	defer prog.Release()

	quad := func(z float32) tri.Triangle {
		return tri.Triangle{
			{Position: mgl32.Vec3{-1, -1, z}},
			{Position: mgl32.Vec3{3, -1, z}},
			{Position: mgl32.Vec3{-1, 3, z}},
		}
	}
	m, err := dev.CreateMesh(tri.LayoutPosition, []tri.Triangle{quad(-0.5), quad(0.5)})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Release()

	color := func(c tri.Color) tri.Uniforms {
		u := tri.Uniforms{}
		u.SetColor("color", c)
		return u
	}

	for _, tt := range []struct {
		depth bool
		want  tri.Color
	}{
		{true, tri.Green},
		{false, tri.Red},
	} {
		pass := &tri.Pass{Width: 32, Height: 32, Depth: tt.depth, Draws: []tri.DrawCall{
			{Program: prog, Mesh: m, Uniforms: color(tri.Green), First: 0, Count: 3},
			{Program: prog, Mesh: m, Uniforms: color(tri.Red), First: 3, Count: 3},
		}}
		if err := dev.Draw(pass); err != nil {
			t.Fatalf("Draw() error = %v", err)
		}
		img, err := dev.ReadPixels()
		if err != nil {
			t.Fatal(err)
		}
		assertPixel(t, img, 16, 16, tt.want)
	}
}

func TestDrawRejectsBadCalls(t *testing.T) {
	dev, err := New(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	prog, _ := dev.CreateProgram(tri.VariantSolid.Program("solid", false))
	m, _ := dev.CreateMesh(tri.LayoutPosition, []tri.Triangle{{}})
	u := tri.Uniforms{}
	u.SetColor("color", tri.White)

	pass := &tri.Pass{Width: 8, Height: 8, Draws: []tri.DrawCall{
		{Program: prog, Mesh: m, Uniforms: u, Count: 6},
	}}
	if err := dev.Draw(pass); !errors.Is(err, tri.ErrVertexCount) {
		t.Errorf("Draw(6 vertices) error = %v, want ErrVertexCount", err)
	}

	m.Release()
	pass.Draws[0].Count = 3
	if err := dev.Draw(pass); !errors.Is(err, tri.ErrReleased) {
		t.Errorf("Draw(released mesh) error = %v, want ErrReleased", err)
	}
}

func TestCreateErrors(t *testing.T) {
	dev, err := New(8, 8)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := dev.CreateProgram(tri.ProgramDesc{Label: "empty"}); !errors.Is(err, tri.ErrShaderCompile) {
		t.Errorf("CreateProgram(no shaders) error = %v, want ErrShaderCompile", err)
	}
	if _, err := dev.CreateMesh(tri.LayoutPosition, nil); !errors.Is(err, tri.ErrEmptyMesh) {
		t.Errorf("CreateMesh(nil) error = %v, want ErrEmptyMesh", err)
	}
	if _, err := dev.CreateTexture(&tri.Texture{}); !errors.Is(err, tri.ErrTextureSize) {
		t.Errorf("CreateTexture(empty) error = %v, want ErrTextureSize", err)
	}

	dev.Close()
	dev.Close()
	if _, err := dev.ReadPixels(); !errors.Is(err, backend.ErrClosed) {
		t.Errorf("ReadPixels after Close error = %v, want ErrClosed", err)
	}
	if _, err := New(0, 10); err == nil {
		t.Error("New(0, 10) succeeded")
	}
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.NameSoftware) {
		t.Fatal("software backend not registered")
	}
	target, err := backend.Open(backend.NameSoftware, 16, 16)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer target.Close()
	if w, h := target.Size(); w != 16 || h != 16 {
		t.Errorf("Size() = %dx%d, want 16x16", w, h)
	}
}

func TestResizeFollowsPass(t *testing.T) {
	img := render(t, "simple", 40, 30)
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("image bounds = %v, want 40x30", b)
	}
}
