package guide

import "github.com/gogpu/guide/surface"

// DefaultScale is the device pixel scale used when WithScale is not given.
const DefaultScale = 2

// Option configures a Renderer or Canvas during creation.
//
// Example:
//
//	// Defaults: scale 2, "image" backend, no raster layer
//	r, err := guide.NewRenderer(ctx)
//
//	// Reference compiler and decoder, recording surface
//	r, err := guide.NewRenderer(ctx,
//	    guide.WithCompiler(compile.Compiler{}),
//	    guide.WithDecoder(decode.SVG{}),
//	    guide.WithSurface(recording.NewRecorder(0, 0)),
//	)
type Option func(*options)

// options holds optional configuration for Renderer and Canvas creation.
type options struct {
	scale    int
	backend  string
	registry *surface.Registry
	surface  surface.Surface
	compiler PathCompiler
	decoder  Decoder
	overlays bool
}

// defaultOptions returns the default options.
func defaultOptions() options {
	return options{
		scale:    DefaultScale,
		backend:  "image",
		registry: surface.Default(),
		overlays: true,
	}
}

// WithScale sets the device pixel scale. Values below 1 are raised to 1.
// The scale is fixed for the lifetime of the canvas.
func WithScale(scale int) Option {
	return func(o *options) {
		if scale < 1 {
			scale = 1
		}
		o.scale = scale
	}
}

// WithBackend selects the surface backend by registry name ("image",
// "recording", or any backend registered by the application).
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithRegistry sets the registry backends are looked up in.
func WithRegistry(r *surface.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithSurface draws into s instead of a registry-created surface. If s does
// not implement surface.ResizableSurface, resizes replace it with a surface
// from the selected backend.
func WithSurface(s surface.Surface) Option {
	return func(o *options) {
		o.surface = s
	}
}

// WithCompiler sets the path compiler used for the raster document and the
// operation preview. Without one, frames have no raster layer and no
// preview.
func WithCompiler(c PathCompiler) Option {
	return func(o *options) {
		o.compiler = c
	}
}

// WithDecoder sets the decoder that rasterizes compiled documents.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithOverlays sets whether extras (grid, guides, handles) start visible.
func WithOverlays(show bool) Option {
	return func(o *options) {
		o.overlays = show
	}
}
