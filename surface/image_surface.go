// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Fills go through a rasterx.Filler and strokes through a rasterx.Dasher,
// both scanning into the same image with anti-aliasing. This is the
// default surface implementation.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(color.White)
//	path := surface.NewPath()
//	path.Circle(400, 300, 100)
//	s.Fill(path, surface.FillStyle{Color: color.RGBA{255, 0, 0, 255}})
//
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	filler *rasterx.Filler
	dasher *rasterx.Dasher

	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
// Non-positive dimensions are raised to 1.
func NewImageSurface(width, height int) *ImageSurface {
	width, height = clampSize(width, height)
	s := &ImageSurface{}
	s.attach(image.NewRGBA(image.Rect(0, 0, width, height)))
	return s
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface will render into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	s := &ImageSurface{}
	s.attach(img)
	return s
}

func clampSize(width, height int) (int, int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return width, height
}

// attach points the rasterizers at img.
func (s *ImageSurface) attach(img *image.RGBA) {
	b := img.Bounds()
	s.img = img
	s.width, s.height = b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(s.width, s.height, img, b)
	s.filler = rasterx.NewFiller(s.width, s.height, scanner)
	s.dasher = rasterx.NewDasher(s.width, s.height, scanner)
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Resize reallocates the pixel buffer. The new buffer is fully transparent.
func (s *ImageSurface) Resize(width, height int) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	width, height = clampSize(width, height)
	s.attach(image.NewRGBA(image.Rect(0, 0, width, height)))
	return nil
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c color.Color) {
	if s.closed {
		return
	}
	if c == nil {
		c = color.Transparent
	}
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Fill fills the given path using the specified style.
func (s *ImageSurface) Fill(path *Path, style FillStyle) {
	if s.closed || path == nil || path.IsEmpty() || isClear(style.Color) {
		return
	}
	s.filler.Clear()
	s.filler.SetColor(style.Color)
	path.AddTo(s.filler)
	s.filler.Draw()
	s.filler.Clear()
}

// Stroke strokes the given path using the specified style.
func (s *ImageSurface) Stroke(path *Path, style StrokeStyle) {
	if s.closed || path == nil || path.IsEmpty() || style.Width <= 0 || isClear(style.Color) {
		return
	}
	capFn := capFunc(style.Cap)
	gapFn := rasterx.FlatGap
	if style.Join == LineJoinRound {
		gapFn = rasterx.RoundGap
	}
	var dashes []float64
	if style.IsDashed() {
		dashes = style.DashPattern
	}
	s.dasher.Clear()
	s.dasher.SetStroke(
		toFixed(style.Width), toFixed(style.MiterLimit),
		capFn, capFn, gapFn, joinMode(style.Join),
		dashes, style.DashOffset,
	)
	s.dasher.SetColor(style.Color)
	path.AddTo(s.dasher)
	s.dasher.Draw()
	s.dasher.Clear()
}

// DrawImage draws an image at the specified position, or scaled into
// opts.DstRect when set.
func (s *ImageSurface) DrawImage(img image.Image, at Point, opts *DrawImageOptions) {
	if s.closed || img == nil {
		return
	}
	if opts == nil {
		opts = DefaultDrawImageOptions()
	}

	src := img.Bounds()
	if opts.SrcRect != nil {
		src = opts.SrcRect.Intersect(src)
	}
	if src.Empty() {
		return
	}
	dst := image.Rect(0, 0, src.Dx(), src.Dy()).Add(image.Pt(int(at.X), int(at.Y)))
	if opts.DstRect != nil {
		dst = *opts.DstRect
	}
	if dst.Empty() || opts.Alpha <= 0 {
		return
	}

	var dopts *draw.Options
	if opts.Alpha < 1 {
		dopts = &draw.Options{
			DstMask: image.NewUniform(color.Alpha{A: uint8(opts.Alpha * 255)}),
		}
	}

	if dst.Dx() == src.Dx() && dst.Dy() == src.Dy() {
		if dopts == nil {
			draw.Draw(s.img, dst, img, src.Min, draw.Over)
			return
		}
		draw.DrawMask(s.img, dst, img, src.Min, dopts.DstMask, image.Point{}, draw.Over)
		return
	}
	scaler(opts.Filter).Scale(s.img, dst, img, src, draw.Over, dopts)
}

// Flush is a no-op for ImageSurface (no buffering).
func (s *ImageSurface) Flush() error {
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	snapshot := image.NewRGBA(s.img.Bounds())
	copy(snapshot.Pix, s.img.Pix)
	return snapshot
}

// Close releases resources associated with the surface.
// After Close, all drawing operations are no-ops.
func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

// Image returns the underlying image directly (not a copy).
// Modifications to the returned image affect the surface.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

var _ ResizableSurface = (*ImageSurface)(nil)

func isClear(c color.Color) bool {
	if c == nil {
		return true
	}
	_, _, _, a := c.RGBA()
	return a == 0
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func capFunc(c LineCap) rasterx.CapFunc {
	switch c {
	case LineCapRound:
		return rasterx.RoundCap
	case LineCapSquare:
		return rasterx.SquareCap
	default:
		return rasterx.ButtCap
	}
}

func joinMode(j LineJoin) rasterx.JoinMode {
	switch j {
	case LineJoinRound:
		return rasterx.Round
	case LineJoinBevel:
		return rasterx.Bevel
	default:
		return rasterx.Miter
	}
}

func scaler(f Filter) draw.Scaler {
	if f == FilterBilinear {
		return draw.BiLinear
	}
	return draw.NearestNeighbor
}
