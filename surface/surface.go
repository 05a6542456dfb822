// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
)

// Surface is a device-pixel rendering target.
//
// Surfaces are NOT thread-safe. The guide renderer serialises every draw
// pass against a surface; other callers must do the same.
type Surface interface {
	// Width returns the surface width in device pixels.
	Width() int

	// Height returns the surface height in device pixels.
	Height() int

	// Clear resets every pixel to c, replacing (not blending) the contents.
	Clear(c color.Color)

	// Fill fills path using style. The path is not modified.
	Fill(path *Path, style FillStyle)

	// Stroke strokes path using style. The path is not modified.
	Stroke(path *Path, style StrokeStyle)

	// DrawImage draws img at the given position, or stretched into
	// opts.DstRect when set. A nil opts uses DefaultDrawImageOptions.
	DrawImage(img image.Image, at Point, opts *DrawImageOptions)

	// Flush completes pending work. It is a no-op for CPU surfaces.
	Flush() error

	// Snapshot returns a copy of the surface contents.
	Snapshot() *image.RGBA

	// Close releases the surface. Close is idempotent.
	Close() error
}

// ResizableSurface is implemented by surfaces that can reallocate their
// pixel buffer in place. Resize discards the existing contents.
type ResizableSurface interface {
	Surface

	Resize(width, height int) error
}
