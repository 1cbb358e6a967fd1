package wgpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
	"github.com/gogpu/tri/backend"
	"github.com/gogpu/wgpu/hal"
)

var errClosed = backend.ErrClosed

func init() {
	backend.Register(backend.NameWGPU, func(width, height int) (backend.Target, error) {
		return Open(width, height)
	})
}

// backendOrder lists the HAL backends Open tries. BackendEmpty is left
// out so a machine without a GPU falls through to the software target.
// BackendGL is left out because its adapter needs a context made current
// by a window surface; offscreen devices never have one.
var backendOrder = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
}

// Device renders tri passes with a HAL device into offscreen targets.
type Device struct {
	instance hal.Instance // nil when the device is borrowed
	device   hal.Device
	queue    hal.Queue
	adapter  string

	width  int
	height int

	color     hal.Texture
	colorView hal.TextureView
	depth     hal.Texture
	depthView hal.TextureView
	sampler   hal.Sampler

	closed bool
}

var _ backend.Target = (*Device)(nil)

// Open selects a hardware adapter from the registered HAL backends and
// creates a device with a width x height target. Backends must be
// registered by importing github.com/gogpu/wgpu/hal/allbackends or a
// specific backend package.
func Open(width, height int) (*Device, error) {
	var errs []error
	for _, variant := range backendOrder {
		b, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		d, err := openBackend(b, width, height)
		if err != nil {
			errs = append(errs, fmt.Errorf("%v: %w", variant, err))
			continue
		}
		return d, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no hardware HAL backend registered", backend.ErrBackendNotAvailable)
	}
	return nil, fmt.Errorf("%w: %w", backend.ErrBackendNotAvailable, errors.Join(errs...))
}

func openBackend(b hal.Backend, width, height int) (*Device, error) {
	instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("no adapters")
	}

	// Prefer real GPUs over CPU adapters.
	selected := &adapters[0]
	for i := range adapters {
		t := adapters[i].Info.DeviceType
		if t == gputypes.DeviceTypeDiscreteGPU || t == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}

	open, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open adapter %q: %w", selected.Info.Name, err)
	}

	d, err := New(open.Device, open.Queue, width, height)
	if err != nil {
		open.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	d.instance = instance
	d.adapter = selected.Info.Name

	tri.Logger().Info("wgpu: adapter selected",
		slog.String("backend", b.Variant().String()),
		slog.String("adapter", selected.Info.Name),
		slog.String("type", selected.Info.DeviceType.String()))
	return d, nil
}

// New wraps an existing HAL device and queue. The caller keeps
// ownership of the device; Close releases only the targets.
func New(device hal.Device, queue hal.Queue, width, height int) (*Device, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: nil device or queue")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid size %dx%d", width, height)
	}

	d := &Device{device: device, queue: queue}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "tri_sampler",
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	d.sampler = sampler

	if err := d.createTargets(width, height); err != nil {
		d.destroyTargets()
		device.DestroySampler(sampler)
		return nil, err
	}
	return d, nil
}

// Name returns the backend identifier.
func (d *Device) Name() string { return backend.NameWGPU }

// Adapter returns the adapter name, or "" for borrowed devices.
func (d *Device) Adapter() string { return d.adapter }

// Size returns the render target size.
func (d *Device) Size() (width, height int) { return d.width, d.height }

// Resize recreates the render targets. Contents are discarded.
func (d *Device) Resize(width, height int) error {
	if d.closed {
		return errClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: invalid size %dx%d", width, height)
	}
	if width == d.width && height == d.height {
		return nil
	}
	d.destroyTargets()
	return d.createTargets(width, height)
}

// createTargets allocates the color and depth attachments.
func (d *Device) createTargets(width, height int) error {
	size := hal.Extent3D{
		Width:              uint32(width),  //nolint:gosec // validated positive
		Height:             uint32(height), //nolint:gosec // validated positive
		DepthOrArrayLayers: 1,
	}

	color, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "tri_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        colorFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color target: %w", err)
	}
	d.color = color

	colorView, err := d.device.CreateTextureView(color, &hal.TextureViewDescriptor{
		Label:         "tri_color_view",
		Format:        colorFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color view: %w", err)
	}
	d.colorView = colorView

	depth, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "tri_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create depth target: %w", err)
	}
	d.depth = depth

	depthView, err := d.device.CreateTextureView(depth, &hal.TextureViewDescriptor{
		Label:         "tri_depth_view",
		Format:        depthFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectDepthOnly,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create depth view: %w", err)
	}
	d.depthView = depthView

	d.width, d.height = width, height
	return nil
}

func (d *Device) destroyTargets() {
	if d.depthView != nil {
		d.device.DestroyTextureView(d.depthView)
		d.depthView = nil
	}
	if d.depth != nil {
		d.device.DestroyTexture(d.depth)
		d.depth = nil
	}
	if d.colorView != nil {
		d.device.DestroyTextureView(d.colorView)
		d.colorView = nil
	}
	if d.color != nil {
		d.device.DestroyTexture(d.color)
		d.color = nil
	}
}

// Close waits for the GPU, releases the targets and, for devices
// created by Open, the device and instance. It is idempotent.
func (d *Device) Close() {
	if d.closed {
		return
	}
	d.closed = true

	if err := d.device.WaitIdle(); err != nil {
		tri.Logger().Warn("wgpu: wait idle on close", slog.Any("err", err))
	}
	d.destroyTargets()
	if d.sampler != nil {
		d.device.DestroySampler(d.sampler)
		d.sampler = nil
	}
	if d.instance != nil {
		d.device.Destroy()
		d.instance.Destroy()
		d.instance = nil
	}
}
