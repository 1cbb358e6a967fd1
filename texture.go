package tri

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is an RGBA8 pixel buffer. Row 0 is the bottom row, matching
// texture coordinate v = 0.
type Texture struct {
	Width  int
	Height int
	Pix    []byte
}

// NewTexture allocates a transparent black texture.
func NewTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	return &Texture{Width: width, Height: height, Pix: make([]byte, width*height*4)}, nil
}

func mustTexture(width, height int) *Texture {
	t, err := NewTexture(width, height)
	if err != nil {
		panic(err)
	}
	return t
}

// At returns the texel at (x, y).
func (t *Texture) At(x, y int) color.NRGBA {
	i := (y*t.Width + x) * 4
	return color.NRGBA{R: t.Pix[i], G: t.Pix[i+1], B: t.Pix[i+2], A: t.Pix[i+3]}
}

// Set writes the texel at (x, y).
func (t *Texture) Set(x, y int, c color.NRGBA) {
	i := (y*t.Width + x) * 4
	t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Sample returns the bilinearly filtered color at (u, v) with repeat
// addressing, as float RGBA in [0, 1].
func (t *Texture) Sample(u, v float32) mgl32.Vec4 {
	fx := wrap01(u)*float32(t.Width) - 0.5
	fy := wrap01(v)*float32(t.Height) - 0.5
	x0 := int(math.Floor(float64(fx)))
	y0 := int(math.Floor(float64(fy)))
	ax := fx - float32(x0)
	ay := fy - float32(y0)

	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)

	top := c00.Mul(1 - ax).Add(c10.Mul(ax))
	bottom := c01.Mul(1 - ax).Add(c11.Mul(ax))
	return top.Mul(1 - ay).Add(bottom.Mul(ay))
}

func (t *Texture) texel(x, y int) mgl32.Vec4 {
	x = ((x % t.Width) + t.Width) % t.Width
	y = ((y % t.Height) + t.Height) % t.Height
	c := t.At(x, y)
	return mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func wrap01(f float32) float32 {
	return f - float32(math.Floor(float64(f)))
}

// Image returns the texture as an image with row 0 at the top.
func (t *Texture) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	stride := t.Width * 4
	for y := range t.Height {
		src := t.Pix[(t.Height-1-y)*stride : (t.Height-y)*stride]
		copy(img.Pix[y*img.Stride:], src)
	}
	return img
}

// Checkerboard fills a size x size texture with square cells of the given
// edge length. Texel (x, y) is a when (x/cell + y/cell) is even.
func Checkerboard(size, cell int, a, b color.NRGBA) *Texture {
	if cell <= 0 {
		cell = 1
	}
	t := mustTexture(size, size)
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 0 {
				t.Set(x, y, a)
			} else {
				t.Set(x, y, b)
			}
		}
	}
	return t
}

// Checker colors of the default procedural texture.
var (
	CheckerLight = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	CheckerDark  = color.NRGBA{R: 255, G: 100, B: 100, A: 255}
)

// DefaultCheckerboard is the 64x64 texture with 8 texel cells used by
// the textured demos and as the fallback for failed image loads.
func DefaultCheckerboard() *Texture {
	return Checkerboard(64, 8, CheckerLight, CheckerDark)
}

// Axis selects the direction of a gradient.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

// Gradient ramps linearly from one color to another along one axis.
func Gradient(width, height int, from, to Color, axis Axis) *Texture {
	t := mustTexture(width, height)
	span := width - 1
	if axis == AxisY {
		span = height - 1
	}
	for y := range height {
		for x := range width {
			p := x
			if axis == AxisY {
				p = y
			}
			k := float32(0)
			if span > 0 {
				k = float32(p) / float32(span)
			}
			t.Set(x, y, from.Lerp(to, k).NRGBA())
		}
	}
	return t
}

// Noise fills a texture with value noise from an integer hash of the
// cell coordinates. The same seed always produces the same texture.
// Cells are scale x scale texels.
func Noise(width, height int, seed uint32, scale int) *Texture {
	if scale <= 0 {
		scale = 1
	}
	t := mustTexture(width, height)
	for y := range height {
		for x := range width {
			n := uint8(hash2(uint32(x/scale), uint32(y/scale), seed) >> 24)
			t.Set(x, y, color.NRGBA{R: n, G: n, B: n, A: 255})
		}
	}
	return t
}

// hash2 is a small integer mixing function (xorshift-multiply).
func hash2(x, y, seed uint32) uint32 {
	h := seed ^ 0x9e3779b9
	h ^= x * 0x85ebca6b
	h = (h << 13) | (h >> 19)
	h ^= y * 0xc2b2ae35
	h *= 0x27d4eb2d
	h ^= h >> 15
	h *= 0x165667b1
	h ^= h >> 16
	return h
}
