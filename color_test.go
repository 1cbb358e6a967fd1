package tri

import (
	"image/color"
	"math"
	"testing"
)

const colorEps = 1e-4

func approx(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestHSVPrimaries(t *testing.T) {
	tests := []struct {
		name string
		hue  float32
		want Color
	}{
		{"red", 0, Red},
		{"green", 120, Green},
		{"blue", 240, Blue},
		{"yellow", 60, RGB(1, 1, 0)},
		{"cyan", 180, RGB(0, 1, 1)},
		{"magenta", 300, RGB(1, 0, 1)},
		{"wraps 360", 360, Red},
		{"wraps negative", -120, Blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSV(tt.hue, 1, 1)
			if !approx(got.R, tt.want.R, colorEps) || !approx(got.G, tt.want.G, colorEps) || !approx(got.B, tt.want.B, colorEps) {
				t.Errorf("HSV(%v, 1, 1) = %+v, want %+v", tt.hue, got, tt.want)
			}
		})
	}
}

func TestHSVDominantChannel(t *testing.T) {
	tests := []struct {
		hue     float32
		channel int
	}{
		{0, 0},
		{120, 1},
		{240, 2},
	}
	for _, tt := range tests {
		c := HSV(tt.hue, 0.8, 0.9)
		ch := [3]float32{c.R, c.G, c.B}
		for i := range ch {
			if i != tt.channel && ch[i] >= ch[tt.channel] {
				t.Errorf("HSV(%v): channel %d = %v not below dominant channel %d = %v",
					tt.hue, i, ch[i], tt.channel, ch[tt.channel])
			}
		}
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for hue := float32(0); hue < 360; hue += 7.5 {
		for _, s := range []float32{0.25, 0.5, 1} {
			for _, v := range []float32{0.3, 1} {
				h2, s2, v2 := HSV(hue, s, v).ToHSV()
				if !approx(h2, hue, 1e-2) || !approx(s2, s, colorEps) || !approx(v2, v, colorEps) {
					t.Errorf("round trip (%v,%v,%v) -> (%v,%v,%v)", hue, s, v, h2, s2, v2)
				}
			}
		}
	}
}

func TestHSVGray(t *testing.T) {
	got := HSV(200, 0, 0.5)
	if got != RGB(0.5, 0.5, 0.5) {
		t.Errorf("HSV(200, 0, 0.5) = %+v, want gray", got)
	}
	h, s, v := got.ToHSV()
	if h != 0 || s != 0 || v != 0.5 {
		t.Errorf("gray.ToHSV() = (%v, %v, %v), want (0, 0, 0.5)", h, s, v)
	}
}

func TestColorNRGBAClamps(t *testing.T) {
	got := RGB(1.5, -0.2, 0.5).NRGBA()
	want := color.NRGBA{R: 255, G: 0, B: 127, A: 255}
	if got != want {
		t.Errorf("NRGBA() = %+v, want %+v", got, want)
	}
}

func TestColorArithmeticDoesNotClamp(t *testing.T) {
	c := RGB(0.8, 0.8, 0.8).Scale(2)
	if c.R != 1.6 {
		t.Errorf("Scale(2).R = %v, want 1.6", c.R)
	}
	if got := Red.Lerp(Blue, 0.5); got != RGB(0.5, 0, 0.5) {
		t.Errorf("Lerp = %+v", got)
	}
	if got := ColorFromVec3(TintRed.Vec3()); got != TintRed {
		t.Errorf("ColorFromVec3(Vec3()) = %+v, want %+v", got, TintRed)
	}
}
