package guide

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/guide/surface"
)

// Requested canvas sizes, in logical units.
var (
	BaseSize   = Size{Width: 300, Height: 300}
	ZoomedSize = Size{Width: 600, Height: 600}
)

// initialSize is the logical size of a canvas before its first resize.
var initialSize = Size{Width: 320, Height: 320}

// Canvas owns the device-pixel surface a Renderer draws on. Its logical
// size follows the bounds provider; the surface is always logical size
// times the device pixel scale.
//
// Canvas methods are safe for concurrent use. A Renderer holds the canvas
// lock for a whole draw pass, so a resize never lands mid-frame.
type Canvas struct {
	mu sync.Mutex

	bounds   BoundsProvider
	registry *surface.Registry
	backend  string
	scale    int

	surf    surface.Surface
	size    Size
	visible bool
	zoomed  bool
	allocs  int
}

// NewCanvas creates a canvas at the initial logical size. The surface comes
// from WithSurface when given, otherwise from the registry backend named by
// WithBackend ("image" by default).
func NewCanvas(bounds BoundsProvider, opts ...Option) (*Canvas, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newCanvas(bounds, o)
}

func newCanvas(bounds BoundsProvider, o options) (*Canvas, error) {
	if bounds == nil {
		return nil, fmt.Errorf("%w: Bounds", ErrMissingProvider)
	}
	c := &Canvas{
		bounds:   bounds,
		registry: o.registry,
		backend:  o.backend,
		scale:    o.scale,
		size:     initialSize,
		visible:  true,
	}
	w, h := c.device(initialSize)
	if o.surface != nil {
		c.surf = o.surface
		if err := c.reallocate(w, h); err != nil {
			return nil, err
		}
		c.allocs = 0
		return c, nil
	}
	s, err := c.registry.NewSurfaceByName(c.backend, surface.Options{Width: w, Height: h})
	if err != nil {
		return nil, fmt.Errorf("guide: create surface: %w", err)
	}
	c.surf = s
	return c, nil
}

func (c *Canvas) device(s Size) (int, int) {
	return int(s.Width) * c.scale, int(s.Height) * c.scale
}

// reallocate sizes the surface to w×h device pixels, in place when the
// surface supports it.
func (c *Canvas) reallocate(w, h int) error {
	if rs, ok := c.surf.(surface.ResizableSurface); ok {
		if err := rs.Resize(w, h); err != nil {
			return fmt.Errorf("guide: resize surface: %w", err)
		}
		c.allocs++
		return nil
	}
	s, err := c.registry.NewSurfaceByName(c.backend, surface.Options{Width: w, Height: h})
	if err != nil {
		return fmt.Errorf("guide: reallocate surface: %w", err)
	}
	if c.surf != nil {
		_ = c.surf.Close()
	}
	c.surf = s
	c.allocs++
	return nil
}

// Resize follows the bounds provider. It returns false without side effects
// when the padded size equals the current logical size.
func (c *Canvas) Resize() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.resize(false)
}

// ForceResize reallocates the surface at the bounds provider's size even
// when it is unchanged, discarding the previous contents.
func (c *Canvas) ForceResize() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resize(true)
}

func (c *Canvas) resize(force bool) bool {
	target := c.bounds.PaddedSize()
	if !force && SizeOffset(target, c.size).IsZero() {
		return false
	}
	Logger().Info(fmt.Sprintf("Require resize: %v, from %v", target, c.size),
		"scale", c.scale, "forced", force)

	w, h := c.device(target)
	if err := c.reallocate(w, h); err != nil {
		Logger().Warn("guide: resize failed", "err", err)
		return false
	}
	c.size = target
	return true
}

// ToggleVisibility shows or hides the canvas and recomputes its size.
func (c *Canvas) ToggleVisibility() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.visible = !c.visible
	c.relayout()
}

// ToggleZoom switches between the base and zoomed requested sizes and
// recomputes the canvas size.
func (c *Canvas) ToggleZoom() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.zoomed = !c.zoomed
	c.relayout()
}

func (c *Canvas) relayout() {
	if l, ok := c.bounds.(Layout); ok {
		l.SetSize(c.requested(), c.visible)
	}
	Logger().Info("guide: layout", "requested", c.requested(), "visible", c.visible)
	c.resize(false)
}

func (c *Canvas) requested() Size {
	if c.zoomed {
		return ZoomedSize
	}
	return BaseSize
}

// Requested returns the size asked of the layout: 300x300, or 600x600 when
// zoomed.
func (c *Canvas) Requested() Size {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.requested()
}

// Size returns the logical size.
func (c *Canvas) Size() Size {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.size
}

// DisplaySize is the on-screen size in logical units: the logical size, or
// zero while hidden.
func (c *Canvas) DisplaySize() Size {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.visible {
		return Size{}
	}
	return c.size
}

// DeviceSize returns the surface size in device pixels.
func (c *Canvas) DeviceSize() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.surf.Width(), c.surf.Height()
}

// Scale returns the device pixel scale.
func (c *Canvas) Scale() int {
	return c.scale
}

// Visible reports whether the canvas is shown.
func (c *Canvas) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.visible
}

// Zoomed reports whether the zoomed size is requested.
func (c *Canvas) Zoomed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.zoomed
}

// Allocations returns how many times the surface has been (re)allocated
// since the canvas was created.
func (c *Canvas) Allocations() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.allocs
}

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.surf.Snapshot()
}

// paint runs fn with the canvas locked.
func (c *Canvas) paint(fn func(s surface.Surface, logical Size)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn(c.surf, c.size)
}

// Close releases the surface.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.surf.Close()
}
