package guide

import (
	"fmt"
	"math"
)

// CellSize is the grid cell in logical units. Every vertex of a drawing sits
// on a multiple of it.
const CellSize = 15

// Size is a width and height in logical units.
type Size struct {
	Width, Height float64
}

// Sz creates a Size.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// String formats the size as "WxH", the way resizes are logged.
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Scale returns the size multiplied by k.
func (s Size) Scale(k float64) Size {
	return Size{Width: s.Width * k, Height: s.Height * k}
}

// SizeOffset returns a - b per axis.
func SizeOffset(a, b Size) Size {
	return Size{Width: a.Width - b.Width, Height: a.Height - b.Height}
}

// PaddedSize snaps both dimensions up to the next multiple of CellSize.
// Negative dimensions become zero.
func PaddedSize(s Size) Size {
	pad := func(v float64) float64 {
		if v <= 0 {
			return 0
		}
		return math.Ceil(v/CellSize) * CellSize
	}
	return Size{Width: pad(s.Width), Height: pad(s.Height)}
}

// Point is a position in logical units.
type Point struct {
	X, Y float64
}

// Pt creates a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Scale returns the point multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
