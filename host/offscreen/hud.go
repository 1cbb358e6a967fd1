package offscreen

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	hudSize    = 13
	hudPadding = 4
)

var (
	hudOnce sync.Once
	hudFace font.Face
	hudErr  error
)

func face() (font.Face, error) {
	hudOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			hudErr = fmt.Errorf("offscreen: parse font: %w", err)
			return
		}
		hudFace, hudErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    hudSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return hudFace, hudErr
}

// Label draws text on a translucent bar along the top edge of img.
func Label(img *image.NRGBA, text string) error {
	f, err := face()
	if err != nil {
		return err
	}

	m := f.Metrics()
	height := (m.Ascent + m.Descent).Ceil() + 2*hudPadding
	bar := image.Rect(0, 0, img.Bounds().Dx(), height).Add(img.Bounds().Min)
	draw.Draw(img, bar, image.NewUniform(color.NRGBA{A: 160}), image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: f,
		Dot:  fixed.P(bar.Min.X+hudPadding, bar.Min.Y+hudPadding+m.Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}
