package tri

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a linear RGB color. Components are nominally in [0, 1] but
// arithmetic never clamps; values outside the range saturate on display.
type Color struct {
	R, G, B float32
}

// RGB creates a color from its components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromVec3 converts a vector to a color.
func ColorFromVec3(v mgl32.Vec3) Color {
	return Color{R: v[0], G: v[1], B: v[2]}
}

// Vec3 returns the color as a vector, the form uniforms and shaders use.
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// NRGBA converts the color to 8-bit, clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: 255,
	}
}

// Scale multiplies every channel by k.
func (c Color) Scale(k float32) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// Mul multiplies channel-wise.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Add adds channel-wise.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Lerp performs linear interpolation between two colors.
func (c Color) Lerp(o Color, t float32) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
	}
}

// clamp255 restricts a value to [0, 255].
func clamp255(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors and tint presets.
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
	Red   = RGB(1, 0, 0)
	Green = RGB(0, 1, 0)
	Blue  = RGB(0, 0, 1)

	TintRed   = RGB(1, 0.3, 0.3)
	TintGreen = RGB(0.3, 1, 0.3)
	TintBlue  = RGB(0.3, 0.3, 1)
	TintWhite = White

	SurfaceRed    = RGB(0.9, 0.3, 0.3)
	SurfaceGreen  = RGB(0.3, 0.9, 0.3)
	SurfaceBlue   = RGB(0.3, 0.3, 0.9)
	SurfaceYellow = RGB(0.9, 0.9, 0.3)
)

// HSV creates a color from hue, saturation and value.
// h is hue in degrees and wraps modulo 360; s and v are in [0, 1].
func HSV(h, s, v float32) Color {
	hh := math.Mod(float64(h), 360)
	if hh < 0 {
		hh += 360
	}
	if s <= 0 {
		return Color{R: v, G: v, B: v}
	}

	sector := hh / 60
	i := math.Floor(sector)
	f := float32(sector - i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) % 6 {
	case 0:
		return Color{R: v, G: t, B: p}
	case 1:
		return Color{R: q, G: v, B: p}
	case 2:
		return Color{R: p, G: v, B: t}
	case 3:
		return Color{R: p, G: q, B: v}
	case 4:
		return Color{R: t, G: p, B: v}
	default:
		return Color{R: v, G: p, B: q}
	}
}

// ToHSV returns the hue in degrees [0, 360), saturation and value of c.
// For achromatic colors the hue is 0.
func (c Color) ToHSV() (h, s, v float32) {
	maxc := max(c.R, c.G, c.B)
	minc := min(c.R, c.G, c.B)
	v = maxc
	delta := maxc - minc
	if maxc <= 0 || delta == 0 {
		return 0, 0, v
	}
	s = delta / maxc

	switch maxc {
	case c.R:
		h = 60 * float32(math.Mod(float64((c.G-c.B)/delta), 6))
	case c.G:
		h = 60 * ((c.B-c.R)/delta + 2)
	default:
		h = 60 * ((c.R-c.G)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}
