package backend

import (
	"errors"
	"image"

	"github.com/gogpu/tri"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrClosed is returned by targets used after Close.
	ErrClosed = errors.New("backend: target closed")
)

// Backend name constants.
const (
	// NameWGPU is the GPU backend built on the wgpu HAL.
	NameWGPU = "wgpu"
	// NameSoftware is the CPU rasterizer backend.
	NameSoftware = "software"
)

// Target is a tri.Device that renders into an offscreen color buffer
// whose contents can be read back after each pass.
//
// Targets are registered via Register() and opened via Open() or
// Default().
type Target interface {
	tri.Device

	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Size returns the current color buffer size.
	Size() (width, height int)

	// Resize reallocates the color and depth buffers.
	Resize(width, height int) error

	// ReadPixels returns the last drawn frame, row 0 at the top.
	ReadPixels() (*image.NRGBA, error)

	// Close releases all backend resources. Handles created by the
	// target must be released first.
	Close()
}
