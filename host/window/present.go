package window

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// presenter keeps one window texture and refreshes it every frame.
type presenter struct {
	tex gpucontext.Texture
}

// present uploads RGBA pixels and draws them at the window origin. The
// texture is recreated when the size changes or it cannot be updated
// in place.
func (p *presenter) present(dc gpucontext.TextureDrawer, pix []byte, width, height int) error {
	if p.tex != nil && p.tex.Width() == width && p.tex.Height() == height {
		if u, ok := p.tex.(gpucontext.TextureUpdater); ok {
			if err := u.UpdateData(pix); err != nil {
				return fmt.Errorf("window: update texture: %w", err)
			}
			return dc.DrawTexture(p.tex, 0, 0)
		}
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return fmt.Errorf("window: drawer has no texture creator")
	}
	tex, err := creator.NewTextureFromRGBA(width, height, pix)
	if err != nil {
		return fmt.Errorf("window: create texture: %w", err)
	}
	p.release()
	p.tex = tex
	return dc.DrawTexture(p.tex, 0, 0)
}

func (p *presenter) release() {
	if d, ok := p.tex.(interface{ Destroy() }); ok {
		d.Destroy()
	}
	p.tex = nil
}
