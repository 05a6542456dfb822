// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Verb is a path construction command.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// Path represents a vector path in device pixels.
//
// Path implements rasterx.Adder, so rasterx paths (and oksvg-compiled SVG
// path data) can be poured into it, and AddTo replays it into any adder.
//
// Example:
//
//	p := surface.NewPath()
//	p.MoveTo(100, 100)
//	p.LineTo(200, 100)
//	p.LineTo(150, 200)
//	p.Close()
type Path struct {
	verbs  []Verb
	points []float64
	startX float64
	startY float64
	curX   float64
	curY   float64
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]Verb, 0, 16),
		points: make([]float64, 0, 64),
	}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, x, y)
	p.startX, p.startY = x, y
	p.curX, p.curY = x, y
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.ensureSubpath()
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, x, y)
	p.curX, p.curY = x, y
}

// QuadTo adds a quadratic Bezier curve from the current point.
// (cx, cy) is the control point, (x, y) is the endpoint.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.ensureSubpath()
	p.verbs = append(p.verbs, VerbQuadTo)
	p.points = append(p.points, cx, cy, x, y)
	p.curX, p.curY = x, y
}

// CubicTo adds a cubic Bezier curve from the current point.
// (c1x, c1y) and (c2x, c2y) are control points, (x, y) is the endpoint.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.ensureSubpath()
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, c1x, c1y, c2x, c2y, x, y)
	p.curX, p.curY = x, y
}

// ensureSubpath opens a subpath at the current point when the path is empty
// or the previous subpath was closed.
func (p *Path) ensureSubpath() {
	if len(p.verbs) == 0 || p.verbs[len(p.verbs)-1] == VerbClose {
		p.MoveTo(p.curX, p.curY)
	}
}

// Close closes the current subpath by connecting to the start point.
func (p *Path) Close() {
	if len(p.verbs) == 0 || p.verbs[len(p.verbs)-1] == VerbClose {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
	p.curX, p.curY = p.startX, p.startY
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.startX, p.startY = 0, 0
	p.curX, p.curY = 0, 0
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Verbs returns the verb slice.
func (p *Path) Verbs() []Verb {
	return p.verbs
}

// Points returns the flattened coordinate slice (x0, y0, x1, y1, ...).
func (p *Path) Points() []float64 {
	return p.points
}

// FromVerbs rebuilds a path from a verb list and its coordinates, as
// produced by Verbs and Points. It fails when the coordinate count does not
// match the verbs.
func FromVerbs(verbs []Verb, points []float64) (*Path, error) {
	p := NewPath()
	i := 0
	need := func(n int) error {
		if i+n > len(points) {
			return fmt.Errorf("surface: path truncated at point %d", i)
		}
		return nil
	}
	for _, v := range verbs {
		switch v {
		case VerbMoveTo, VerbLineTo:
			if err := need(2); err != nil {
				return nil, err
			}
			if v == VerbMoveTo {
				p.MoveTo(points[i], points[i+1])
			} else {
				p.LineTo(points[i], points[i+1])
			}
			i += 2
		case VerbQuadTo:
			if err := need(4); err != nil {
				return nil, err
			}
			p.QuadTo(points[i], points[i+1], points[i+2], points[i+3])
			i += 4
		case VerbCubicTo:
			if err := need(6); err != nil {
				return nil, err
			}
			p.CubicTo(points[i], points[i+1], points[i+2], points[i+3], points[i+4], points[i+5])
			i += 6
		case VerbClose:
			p.Close()
		default:
			return nil, fmt.Errorf("surface: unknown path verb %d", v)
		}
	}
	if i != len(points) {
		return nil, fmt.Errorf("surface: %d trailing path coordinates", len(points)-i)
	}
	return p, nil
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	clone := &Path{
		verbs:  make([]Verb, len(p.verbs)),
		points: make([]float64, len(p.points)),
		startX: p.startX,
		startY: p.startY,
		curX:   p.curX,
		curY:   p.curY,
	}
	copy(clone.verbs, p.verbs)
	copy(clone.points, p.points)
	return clone
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a circle to the path.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	const k = 0.5522847498307936 // Bezier circle approximation constant
	ox := rx * k
	oy := ry * k

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Bounds returns the axis-aligned bounding box of the path's points.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.points[0], p.points[0]
	minY, maxY = p.points[1], p.points[1]
	for i := 2; i < len(p.points); i += 2 {
		minX = math.Min(minX, p.points[i])
		maxX = math.Max(maxX, p.points[i])
		minY = math.Min(minY, p.points[i+1])
		maxY = math.Max(maxY, p.points[i+1])
	}
	return minX, minY, maxX, maxY
}

// Start implements rasterx.Adder.
func (p *Path) Start(a fixed.Point26_6) {
	p.MoveTo(unfix(a.X), unfix(a.Y))
}

// Line implements rasterx.Adder.
func (p *Path) Line(b fixed.Point26_6) {
	p.LineTo(unfix(b.X), unfix(b.Y))
}

// QuadBezier implements rasterx.Adder.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	p.QuadTo(unfix(b.X), unfix(b.Y), unfix(c.X), unfix(c.Y))
}

// CubeBezier implements rasterx.Adder.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	p.CubicTo(unfix(b.X), unfix(b.Y), unfix(c.X), unfix(c.Y), unfix(d.X), unfix(d.Y))
}

// Stop implements rasterx.Adder. An open stop only ends the subpath.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		p.Close()
	}
}

var _ rasterx.Adder = (*Path)(nil)

// AddTo replays the path into a rasterx adder (filler, stroker, dasher).
func (p *Path) AddTo(a rasterx.Adder) {
	i := 0
	open := false
	pt := func(j int) fixed.Point26_6 {
		return rasterx.ToFixedP(p.points[j], p.points[j+1])
	}
	for _, v := range p.verbs {
		switch v {
		case VerbMoveTo:
			if open {
				a.Stop(false)
			}
			a.Start(pt(i))
			open = true
			i += 2
		case VerbLineTo:
			a.Line(pt(i))
			i += 2
		case VerbQuadTo:
			a.QuadBezier(pt(i), pt(i+2))
			i += 4
		case VerbCubicTo:
			a.CubeBezier(pt(i), pt(i+2), pt(i+4))
			i += 6
		case VerbClose:
			a.Stop(true)
			open = false
		}
	}
	if open {
		a.Stop(false)
	}
}

// ParseSVGPath compiles SVG path data into a Path using oksvg's path cursor.
// Arcs are converted to cubic segments by the cursor.
func ParseSVGPath(d string) (*Path, error) {
	var cursor oksvg.PathCursor
	if err := cursor.CompilePath(d); err != nil {
		return nil, fmt.Errorf("surface: parse path %q: %w", d, err)
	}
	p := NewPath()
	cursor.Path.AddTo(p)
	return p, nil
}

func unfix(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
