package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
	"github.com/gogpu/wgpu/hal"
)

type mesh struct {
	dev      *Device
	buffer   hal.Buffer
	vertices int
	released bool
}

func (m *mesh) VertexCount() int { return m.vertices }

func (m *mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	m.dev.device.DestroyBuffer(m.buffer)
}

// CreateMesh packs tris with layout into a vertex buffer.
func (d *Device) CreateMesh(layout tri.Layout, tris []tri.Triangle) (tri.Mesh, error) {
	if d.closed {
		return nil, errClosed
	}
	if len(tris) == 0 {
		return nil, tri.ErrEmptyMesh
	}

	data := tri.Pack(layout, tris)
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "tri_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create vertex buffer: %w", err)
	}
	if err := d.queue.WriteBuffer(buf, 0, data); err != nil {
		d.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("wgpu: upload vertices: %w", err)
	}
	return &mesh{dev: d, buffer: buf, vertices: tri.VertexCount(tris)}, nil
}

type texture struct {
	dev      *Device
	tex      hal.Texture
	view     hal.TextureView
	released bool
}

func (t *texture) Release() {
	if t.released {
		return
	}
	t.released = true
	if t.view != nil {
		t.dev.device.DestroyTextureView(t.view)
	}
	t.dev.device.DestroyTexture(t.tex)
}

// CreateTexture uploads tex as a sampled RGBA8 texture. Rows are
// uploaded in order, so v = 0 addresses the first row.
func (d *Device) CreateTexture(tex *tri.Texture) (tri.TextureHandle, error) {
	if d.closed {
		return nil, errClosed
	}
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 || len(tex.Pix) < tex.Width*tex.Height*4 {
		return nil, tri.ErrTextureSize
	}

	w, h := uint32(tex.Width), uint32(tex.Height) //nolint:gosec // validated positive
	gpuTex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "tri_texture",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}
	t := &texture{dev: d, tex: gpuTex}

	err = d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: gpuTex, Aspect: gputypes.TextureAspectAll},
		tex.Pix,
		&hal.ImageDataLayout{BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("wgpu: upload texture: %w", err)
	}

	view, err := d.device.CreateTextureView(gpuTex, &hal.TextureViewDescriptor{
		Label:         "tri_texture_view",
		Format:        colorFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Release()
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}
	t.view = view
	return t, nil
}
