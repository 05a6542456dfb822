package guide

import (
	"context"
	"errors"
	"fmt"
	"image"
)

// DrawingProvider serves the document snapshot to draw.
type DrawingProvider interface {
	Drawing() Drawing
}

// CursorProvider serves the live pointer state.
type CursorProvider interface {
	Cursor() Cursor
}

// ThemeProvider serves the active palette.
type ThemeProvider interface {
	Theme() Theme
}

// BoundsProvider reports the padded logical size needed to contain the
// drawing.
type BoundsProvider interface {
	PaddedSize() Size
}

// Tool answers whether a cast can be applied to the open vertex list.
type Tool interface {
	CanCast(t CastType) bool
}

// PathCompiler turns segments into path descriptions.
type PathCompiler interface {
	// Path compiles segments into SVG path data. Each coordinate is
	// multiplied by scale and then offset by origin.
	Path(segments []Segment, origin Point, scale float64) (string, error)

	// Document compiles the whole drawing into an SVG document of the given
	// logical size.
	Document(d Drawing, size Size) (string, error)
}

// Decoder rasterizes a path description. Decode may be called from any
// goroutine and must return promptly once ctx is cancelled.
type Decoder interface {
	Decode(ctx context.Context, doc string) (image.Image, error)
}

// Refresher is implemented by drawing models that recompute derived state
// before each frame.
type Refresher interface {
	Refresh()
}

// Layout is implemented by bounds providers that track the requested canvas
// size (300x300, or 600x600 zoomed) and whether the canvas is shown.
type Layout interface {
	SetSize(requested Size, visible bool)
}

// Menu is the tool palette chrome refreshed when overlays are toggled.
type Menu interface {
	Refresh(force bool)
}

// Context wires a Renderer to the state it reads. Drawing, Cursor, Theme,
// Bounds and Tool are required; Model and Menu are optional.
type Context struct {
	Drawing DrawingProvider
	Cursor  CursorProvider
	Theme   ThemeProvider
	Bounds  BoundsProvider
	Tool    Tool

	Model Refresher
	Menu  Menu
}

// ErrMissingProvider is returned by NewRenderer when a required provider is
// nil.
var ErrMissingProvider = errors.New("guide: missing provider")

func (c Context) validate() error {
	missing := func(name string) error {
		return fmt.Errorf("%w: %s", ErrMissingProvider, name)
	}
	switch {
	case c.Drawing == nil:
		return missing("Drawing")
	case c.Cursor == nil:
		return missing("Cursor")
	case c.Theme == nil:
		return missing("Theme")
	case c.Bounds == nil:
		return missing("Bounds")
	case c.Tool == nil:
		return missing("Tool")
	}
	return nil
}

// StaticBounds is a BoundsProvider and Layout that reports the last
// requested size, padded to the grid.
type StaticBounds struct {
	size    Size
	visible bool
}

// NewStaticBounds creates bounds for the given requested size.
func NewStaticBounds(requested Size) *StaticBounds {
	return &StaticBounds{size: requested, visible: true}
}

// PaddedSize implements BoundsProvider.
func (b *StaticBounds) PaddedSize() Size {
	return PaddedSize(b.size)
}

// SetSize implements Layout.
func (b *StaticBounds) SetSize(requested Size, visible bool) {
	b.size = requested
	b.visible = visible
}

// Visible reports the visibility passed to the last SetSize.
func (b *StaticBounds) Visible() bool {
	return b.visible
}
