package tri

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// ErrEmptyImage is returned when image data is empty.
var ErrEmptyImage = errors.New("tri: empty image data")

// LoadTexture decodes an image file into a texture. PNG, JPEG, GIF, BMP,
// TIFF and WebP are recognized by content. When maxEdge is positive,
// images whose larger edge exceeds it are downscaled with Catmull-Rom
// filtering.
func LoadTexture(path string, maxEdge int) (*Texture, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("tri: open texture: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeTexture(f, maxEdge)
}

// DecodeTexture decodes an image from r into a texture.
func DecodeTexture(r io.Reader, maxEdge int) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("tri: decode texture: %w", err)
	}
	return TextureFromImage(img, maxEdge), nil
}

// DecodeTextureBytes decodes an in-memory image.
func DecodeTextureBytes(data []byte, maxEdge int) (*Texture, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return DecodeTexture(bytes.NewReader(data), maxEdge)
}

// TextureFromImage converts img to a texture, flipping it vertically so
// the top image row maps to v = 1.
func TextureFromImage(img image.Image, maxEdge int) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxEdge > 0 && (w > maxEdge || h > maxEdge) {
		if w >= h {
			w, h = maxEdge, max(1, h*maxEdge/w)
		} else {
			w, h = max(1, w*maxEdge/h), maxEdge
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	}

	t := mustTexture(w, h)
	stride := w * 4
	for y := range h {
		copy(t.Pix[(h-1-y)*stride:(h-y)*stride], dst.Pix[y*dst.Stride:y*dst.Stride+stride])
	}
	return t
}

// LoadTextureOr loads path and returns fallback() when that fails. The
// load error is returned alongside the fallback texture for reporting;
// it is never fatal.
func LoadTextureOr(path string, maxEdge int, fallback func() *Texture) (*Texture, error) {
	tex, err := LoadTexture(path, maxEdge)
	if err != nil {
		return fallback(), err
	}
	return tex, nil
}

// TextureSource describes where a demo's texture comes from: an image
// file, a procedural generator, or an image file with a procedural
// fallback.
type TextureSource struct {
	// Path is the image file to load. Empty means procedural only.
	Path string
	// Generate builds the procedural texture. When Path is set it is the
	// fallback used if loading fails.
	Generate func() *Texture
}

// Resolve builds the texture. A load failure with a generator available
// is not an error: the generated texture is returned with fellBack set
// and the load error in loadErr for reporting.
func (s TextureSource) Resolve(path string, maxEdge int) (tex *Texture, fellBack bool, loadErr error) {
	if path == "" {
		path = s.Path
	}
	if path == "" {
		if s.Generate == nil {
			return nil, false, errors.New("tri: texture source has neither path nor generator")
		}
		return s.Generate(), false, nil
	}

	if s.Generate == nil {
		tex, err := LoadTexture(path, maxEdge)
		return tex, false, err
	}
	tex, err := LoadTextureOr(path, maxEdge, s.Generate)
	return tex, err != nil, err
}
