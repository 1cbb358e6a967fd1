package wgpu

import (
	"fmt"
	"image"
	"log/slog"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
	"github.com/gogpu/wgpu/hal"
)

// readbackAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const readbackAlignment = 256

// frame holds the per-pass resources freed after submission.
type frame struct {
	buffers []hal.Buffer
	groups  []hal.BindGroup
}

func (d *Device) freeFrame(f *frame) {
	for _, g := range f.groups {
		d.device.DestroyBindGroup(g)
	}
	for _, b := range f.buffers {
		d.device.DestroyBuffer(b)
	}
}

// Draw records one render pass for pass, submits it and waits for the
// GPU. The targets follow the pass size.
func (d *Device) Draw(pass *tri.Pass) error {
	if d.closed {
		return errClosed
	}
	if err := pass.Validate(); err != nil {
		return err
	}
	if err := d.Resize(pass.Width, pass.Height); err != nil {
		return err
	}

	f := &frame{}
	defer d.freeFrame(f)

	// Bind groups and uniform buffers are created before encoding so a
	// failure never leaves an open encoder behind.
	groups := make([]hal.BindGroup, len(pass.Draws))
	for i, dc := range pass.Draws {
		g, err := d.bindDraw(f, dc)
		if err != nil {
			return fmt.Errorf("wgpu: draw %d: %w", i, err)
		}
		groups[i] = g
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "tri_frame"})
	if err != nil {
		return fmt.Errorf("wgpu: create encoder: %w", err)
	}
	if err := encoder.BeginEncoding("tri_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	bg := pass.Clear
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "tri_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    d.colorView,
				LoadOp:  gputypes.LoadOpClear,
				StoreOp: gputypes.StoreOpStore,
				ClearValue: gputypes.Color{
					R: float64(bg[0]),
					G: float64(bg[1]),
					B: float64(bg[2]),
					A: float64(bg[3]),
				},
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            d.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	rp.SetViewport(0, 0, float32(d.width), float32(d.height), 0, 1)

	for i, dc := range pass.Draws {
		p := dc.Program.(*program) // checked by bindDraw
		m := dc.Mesh.(*mesh)
		rp.SetPipeline(p.pipeline)
		rp.SetBindGroup(0, groups[i], nil)
		rp.SetVertexBuffer(0, m.buffer, 0)
		rp.Draw(uint32(dc.Count), 1, uint32(dc.First), 0) //nolint:gosec // validated by pass.Validate
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmd)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("wgpu: wait: %w", err)
	}
	return nil
}

// bindDraw uploads the draw's uniforms and builds its bind group.
func (d *Device) bindDraw(f *frame, dc tri.DrawCall) (hal.BindGroup, error) {
	p, ok := dc.Program.(*program)
	if !ok || p.dev != d {
		return nil, fmt.Errorf("foreign program %T", dc.Program)
	}
	m, ok := dc.Mesh.(*mesh)
	if !ok || m.dev != d {
		return nil, fmt.Errorf("foreign mesh %T", dc.Mesh)
	}
	if p.released || m.released {
		return nil, tri.ErrReleased
	}

	data, err := p.uniforms.Pack(dc.Uniforms)
	if err != nil {
		return nil, err
	}
	ubo, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: p.label + "_uniforms",
		Size:  p.uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	f.buffers = append(f.buffers, ubo)
	if err := d.queue.WriteBuffer(ubo, 0, data); err != nil {
		return nil, fmt.Errorf("upload uniforms: %w", err)
	}

	entries := []gputypes.BindGroupEntry{
		{
			Binding: 0,
			Resource: gputypes.BufferBinding{
				Buffer: ubo.NativeHandle(),
				Size:   p.uniformSize,
			},
		},
	}
	if p.textured {
		tex, ok := dc.Texture.(*texture)
		if !ok || tex.released || tex.dev != d {
			return nil, fmt.Errorf("textured program without a live texture")
		}
		entries = append(entries,
			gputypes.BindGroupEntry{
				Binding:  1,
				Resource: gputypes.TextureViewBinding{TextureView: tex.view.NativeHandle()},
			},
			gputypes.BindGroupEntry{
				Binding:  2,
				Resource: gputypes.SamplerBinding{Sampler: d.sampler.NativeHandle()},
			},
		)
	}

	group, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + "_bind_group",
		Layout:  p.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	f.groups = append(f.groups, group)
	return group, nil
}

// ReadPixels copies the color target into a new image. Row 0 is the
// top of the frame.
func (d *Device) ReadPixels() (*image.NRGBA, error) {
	if d.closed {
		return nil, errClosed
	}

	w, h := uint32(d.width), uint32(d.height) //nolint:gosec // validated positive
	rowBytes := w * 4
	alignedRow := (rowBytes + readbackAlignment - 1) &^ (readbackAlignment - 1)
	size := uint64(alignedRow) * uint64(h)

	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "tri_readback",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create readback buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "tri_readback"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create encoder: %w", err)
	}
	if err := encoder.BeginEncoding("tri_readback"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: d.color,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(d.color, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: alignedRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: d.color, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmd)

	if _, err := d.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, fmt.Errorf("wgpu: submit readback: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wgpu: wait: %w", err)
	}

	mapping, err := d.device.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map readback buffer: %w", err)
	}
	src := unsafe.Slice((*byte)(mapping.Ptr), size)

	// Strip the row padding.
	img := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	for y := 0; y < d.height; y++ {
		off := y * int(alignedRow)
		copy(img.Pix[y*img.Stride:], src[off:off+int(rowBytes)])
	}
	if err := d.device.UnmapBuffer(staging); err != nil {
		tri.Logger().Warn("wgpu: unmap readback buffer", slog.Any("err", err))
	}
	return img, nil
}
