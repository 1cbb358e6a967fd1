package tri

import "time"

// Option configures a Renderer during creation.
//
// Example:
//
//	r := tri.NewRenderer(demo,
//		tri.WithTexturePath("assets/rose.png"),
//		tri.WithSize(1280, 720),
//	)
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	texturePath    string
	clock          func() time.Time
	width, height  int
	seed           uint64
	maxTextureEdge int
}

// DefaultMaxTextureEdge bounds loaded images. Larger images are
// downscaled before upload.
const DefaultMaxTextureEdge = 2048

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		clock:          time.Now,
		seed:           uint64(time.Now().UnixNano()), //nolint:gosec // seed only
		maxTextureEdge: DefaultMaxTextureEdge,
	}
}

// WithTexturePath overrides the image file of demos that load one.
// Procedural demos ignore it.
func WithTexturePath(path string) Option {
	return func(o *options) {
		o.texturePath = path
	}
}

// WithClock sets the time source used by Start and by hosts that pass
// Now to Frame. Tests use it to get deterministic animation.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithSize overrides the demo's initial surface size.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithRandSeed seeds the generator used for random normals.
func WithRandSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithMaxTextureSize sets the largest texture edge. Zero disables
// downscaling.
func WithMaxTextureSize(edge int) Option {
	return func(o *options) {
		o.maxTextureEdge = edge
	}
}
