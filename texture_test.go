package tri

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewTextureRejectsEmpty(t *testing.T) {
	for _, sz := range [][2]int{{0, 4}, {4, 0}, {-1, 2}} {
		if _, err := NewTexture(sz[0], sz[1]); err == nil {
			t.Errorf("NewTexture(%d, %d) succeeded, want error", sz[0], sz[1])
		}
	}
}

func TestCheckerboardParity(t *testing.T) {
	const cell = 8
	tex := DefaultCheckerboard()
	if tex.Width != 64 || tex.Height != 64 {
		t.Fatalf("size = %dx%d, want 64x64", tex.Width, tex.Height)
	}

	bin := func(bx, by int) color.NRGBA { return tex.At(bx*cell+3, by*cell+5) }

	tests := []struct {
		name string
		a, b [2]int
		same bool
	}{
		{"(0,0) vs (1,1)", [2]int{0, 0}, [2]int{1, 1}, true},
		{"(0,0) vs (1,0)", [2]int{0, 0}, [2]int{1, 0}, false},
		{"(0,0) vs (0,1)", [2]int{0, 0}, [2]int{0, 1}, false},
		{"(2,5) vs (7,0)", [2]int{2, 5}, [2]int{7, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bin(tt.a[0], tt.a[1]) == bin(tt.b[0], tt.b[1])
			if got != tt.same {
				t.Errorf("same = %v, want %v", got, tt.same)
			}
		})
	}

	if tex.At(0, 0) != CheckerLight {
		t.Errorf("texel (0,0) = %v, want %v", tex.At(0, 0), CheckerLight)
	}
	if tex.At(cell, 0) != CheckerDark {
		t.Errorf("texel (%d,0) = %v, want %v", cell, tex.At(cell, 0), CheckerDark)
	}
}

func TestGradient(t *testing.T) {
	tex := Gradient(5, 2, Black, White, AxisX)
	if got := tex.At(0, 1).R; got != 0 {
		t.Errorf("left texel = %d, want 0", got)
	}
	if got := tex.At(4, 0).R; got != 255 {
		t.Errorf("right texel = %d, want 255", got)
	}
	if a, b := tex.At(2, 0), tex.At(2, 1); a != b {
		t.Errorf("x gradient varies along y: %v vs %v", a, b)
	}
	if a, b := tex.At(1, 0).R, tex.At(3, 0).R; a >= b {
		t.Errorf("gradient not increasing: %d >= %d", a, b)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	a := Noise(16, 16, 7, 2)
	b := Noise(16, 16, 7, 2)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Noise with the same seed differs")
	}
	c := Noise(16, 16, 8, 2)
	if bytes.Equal(a.Pix, c.Pix) {
		t.Error("Noise with a different seed is identical")
	}
	// Texels in the same cell share a value.
	if a.At(0, 0) != a.At(1, 1) {
		t.Error("texels inside one cell differ")
	}
}

func TestSampleRepeatAndCenters(t *testing.T) {
	tex := Checkerboard(2, 1, CheckerLight, CheckerDark)
	// Texel centers sample exactly.
	got := tex.Sample(0.25, 0.25)
	if !approx(got[1], 1, colorEps) {
		t.Errorf("Sample(texel 0 center).g = %v, want 1", got[1])
	}
	got = tex.Sample(0.75, 0.25)
	if !approx(got[1], 100.0/255, colorEps) {
		t.Errorf("Sample(texel 1 center).g = %v, want %v", got[1], 100.0/255)
	}
	// Repeat addressing.
	if a, b := tex.Sample(0.25, 0.25), tex.Sample(1.25, -0.75); !a.ApproxEqual(b) {
		t.Errorf("repeat: %v != %v", a, b)
	}
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTextureFlipsVertically(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255}) // top-left red
	img.Set(0, 1, color.NRGBA{B: 255, A: 255}) // bottom-left blue
	path := writePNG(t, img)

	tex, err := LoadTexture(path, 0)
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	if got := tex.At(0, 0); got.B != 255 {
		t.Errorf("row 0 should be the bottom image row, got %v", got)
	}
	if got := tex.At(0, 1); got.R != 255 {
		t.Errorf("row 1 should be the top image row, got %v", got)
	}

	back := tex.Image()
	if got := back.NRGBAAt(0, 0); got.R != 255 {
		t.Errorf("Image() should restore top-down order, got %v", got)
	}
}

func TestLoadTextureDownscales(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path := writePNG(t, img)

	tex, err := LoadTexture(path, 16)
	if err != nil {
		t.Fatalf("LoadTexture() error = %v", err)
	}
	if tex.Width != 16 || tex.Height != 8 {
		t.Errorf("size = %dx%d, want 16x8", tex.Width, tex.Height)
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png"), 0); err == nil {
		t.Error("LoadTexture(missing) succeeded")
	}
	if _, err := DecodeTextureBytes(nil, 0); err != ErrEmptyImage {
		t.Errorf("DecodeTextureBytes(nil) = %v, want ErrEmptyImage", err)
	}
	if _, err := DecodeTextureBytes([]byte("not an image"), 0); err == nil {
		t.Error("DecodeTextureBytes(garbage) succeeded")
	}
}

func TestTextureSourceResolve(t *testing.T) {
	src := TextureSource{Path: "does-not-exist.png", Generate: DefaultCheckerboard}

	tex, fellBack, loadErr := src.Resolve("", 0)
	if tex == nil || !fellBack || loadErr == nil {
		t.Fatalf("Resolve(missing) = (%v, %v, %v), want fallback texture", tex, fellBack, loadErr)
	}
	if tex.Width != 64 {
		t.Errorf("fallback width = %d, want 64", tex.Width)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	path := writePNG(t, img)
	tex, fellBack, loadErr = src.Resolve(path, 0)
	if loadErr != nil || fellBack || tex.Width != 3 {
		t.Errorf("Resolve(override) = (%dx%d, %v, %v)", tex.Width, tex.Height, fellBack, loadErr)
	}

	if _, _, err := (TextureSource{Path: "nope.png"}).Resolve("", 0); err == nil {
		t.Error("Resolve without generator should fail")
	}
	if _, _, err := (TextureSource{}).Resolve("", 0); err == nil {
		t.Error("empty TextureSource should fail")
	}
}
