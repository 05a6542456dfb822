// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota

	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// String returns the SVG name of the fill rule.
func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt specifies a flat line cap (no extension).
	LineCapButt LineCap = iota

	// LineCapRound specifies a semicircular line cap.
	LineCapRound

	// LineCapSquare specifies a square line cap (extends by half width).
	LineCapSquare
)

var lineCapNames = [...]string{
	LineCapButt:   "butt",
	LineCapRound:  "round",
	LineCapSquare: "square",
}

// String returns the SVG name of the cap ("butt", "round", "square").
func (c LineCap) String() string {
	if int(c) < len(lineCapNames) {
		return lineCapNames[c]
	}
	return "butt"
}

// ParseLineCap maps an SVG stroke-linecap value to a LineCap.
// Unknown values map to LineCapButt, the SVG default.
func ParseLineCap(s string) LineCap {
	for i, name := range lineCapNames {
		if name == s {
			return LineCap(i)
		}
	}
	return LineCapButt
}

// LineJoin specifies the shape of line joins.
type LineJoin uint8

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota

	// LineJoinRound specifies a rounded join.
	LineJoinRound

	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

var lineJoinNames = [...]string{
	LineJoinMiter: "miter",
	LineJoinRound: "round",
	LineJoinBevel: "bevel",
}

// String returns the SVG name of the join ("miter", "round", "bevel").
func (j LineJoin) String() string {
	if int(j) < len(lineJoinNames) {
		return lineJoinNames[j]
	}
	return "miter"
}

// ParseLineJoin maps an SVG stroke-linejoin value to a LineJoin.
// Unknown values map to LineJoinMiter, the SVG default.
func ParseLineJoin(s string) LineJoin {
	for i, name := range lineJoinNames {
		if name == s {
			return LineJoin(i)
		}
	}
	return LineJoinMiter
}

// FillStyle defines how to fill a path.
type FillStyle struct {
	// Color is the fill color.
	Color color.Color

	// Rule is the fill rule (NonZero or EvenOdd). ImageSurface always
	// fills nonzero; the rule is kept for recordings and other backends.
	Rule FillRule
}

// StrokeStyle defines how to stroke a path.
type StrokeStyle struct {
	// Color is the stroke color.
	Color color.Color

	// Width is the line width in device pixels.
	Width float64

	// Cap is the line cap style.
	Cap LineCap

	// Join is the line join style.
	Join LineJoin

	// MiterLimit is the limit for miter joins.
	MiterLimit float64

	// DashPattern defines the dash/gap pattern in device pixels.
	// nil or empty means solid line.
	DashPattern []float64

	// DashOffset is the starting offset into the dash pattern.
	DashOffset float64
}

// DefaultStrokeStyle returns a StrokeStyle with default values.
// Uses black color, 1px width, butt caps, miter joins.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Color:      color.Black,
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 4.0,
	}
}

// WithColor returns a copy with the specified color.
func (s StrokeStyle) WithColor(c color.Color) StrokeStyle {
	s.Color = c
	return s
}

// WithWidth returns a copy with the specified width.
func (s StrokeStyle) WithWidth(w float64) StrokeStyle {
	s.Width = w
	return s
}

// WithCap returns a copy with the specified cap style.
func (s StrokeStyle) WithCap(lineCap LineCap) StrokeStyle {
	s.Cap = lineCap
	return s
}

// WithDash returns a copy with the specified dash pattern.
// The pattern slice is copied so the caller may reuse it.
func (s StrokeStyle) WithDash(pattern []float64, offset float64) StrokeStyle {
	if len(pattern) == 0 {
		s.DashPattern = nil
	} else {
		s.DashPattern = append([]float64(nil), pattern...)
	}
	s.DashOffset = offset
	return s
}

// IsDashed returns true if this style has a dash pattern.
func (s StrokeStyle) IsDashed() bool {
	return len(s.DashPattern) > 0
}

// DrawImageOptions defines options for drawing images.
type DrawImageOptions struct {
	// SrcRect is the source rectangle within the image.
	// If nil, the entire image is used.
	SrcRect *image.Rectangle

	// DstRect is the destination rectangle on the surface.
	// If nil, the image is drawn at At with its original size.
	DstRect *image.Rectangle

	// Alpha is the opacity (0.0 = transparent, 1.0 = opaque).
	Alpha float64

	// Filter is the interpolation mode for scaling.
	Filter Filter
}

// DefaultDrawImageOptions returns DrawImageOptions with default values.
func DefaultDrawImageOptions() *DrawImageOptions {
	return &DrawImageOptions{
		Alpha:  1.0,
		Filter: FilterNearest,
	}
}

// Filter specifies the interpolation mode for image scaling.
type Filter uint8

const (
	// FilterNearest uses nearest-neighbor interpolation.
	FilterNearest Filter = iota

	// FilterBilinear uses bilinear interpolation.
	FilterBilinear
)

// Point represents a 2D point in device pixels.
type Point struct {
	X, Y float64
}

// Options configures surface creation.
type Options struct {
	// Width is the surface width in pixels.
	Width int

	// Height is the surface height in pixels.
	Height int
}
