package guide

import (
	"fmt"
	"image/color"

	"github.com/gogpu/guide/surface"
)

// CastType is the interpolation rule applied to a vertex list.
type CastType string

// Cast types. The empty CastType means no pending operation.
const (
	CastLine   CastType = "line"
	CastArcC   CastType = "arc_c"
	CastArcR   CastType = "arc_r"
	CastBezier CastType = "bezier"
	CastClose  CastType = "close"
)

// Valid reports whether t is one of the known cast types.
func (t CastType) Valid() bool {
	switch t {
	case CastLine, CastArcC, CastArcR, CastBezier, CastClose:
		return true
	}
	return false
}

// Vertex is a grid-aligned point of a drawing, in logical units.
type Vertex = Point

// Segment is a committed, ordered vertex list plus its cast type.
type Segment struct {
	Vertices []Vertex
	Type     CastType
}

// MirrorStyle selects which symmetry guides are drawn and how the compiled
// path is reflected.
type MirrorStyle uint8

const (
	MirrorNone MirrorStyle = iota
	MirrorVertical
	MirrorHorizontal
	MirrorBoth
)

// Vertical reports whether the vertical guide (x mirrored) applies.
func (m MirrorStyle) Vertical() bool {
	return m == MirrorVertical || m == MirrorBoth
}

// Horizontal reports whether the horizontal guide (y mirrored) applies.
func (m MirrorStyle) Horizontal() bool {
	return m == MirrorHorizontal || m == MirrorBoth
}

var mirrorNames = [...]string{"none", "vertical", "horizontal", "both"}

func (m MirrorStyle) String() string {
	if int(m) < len(mirrorNames) {
		return mirrorNames[m]
	}
	return "none"
}

// ParseMirrorStyle maps a mirror name to a MirrorStyle. The empty string
// is MirrorNone.
func ParseMirrorStyle(s string) (MirrorStyle, error) {
	if s == "" {
		return MirrorNone, nil
	}
	for i, name := range mirrorNames {
		if name == s {
			return MirrorStyle(i), nil
		}
	}
	return MirrorNone, fmt.Errorf("guide: unknown mirror style %q", s)
}

// Style holds the stroke attributes of the active layer.
type Style struct {
	Color     color.NRGBA
	Thickness float64
	LineCap   surface.LineCap
	LineJoin  surface.LineJoin
	Dash      []float64
	Mirror    MirrorStyle
	Fill      bool
}

// DefaultStyle is the style of a fresh layer.
var DefaultStyle = Style{
	Color:     color.NRGBA{A: 255},
	Thickness: 15,
	LineCap:   surface.LineCapRound,
	LineJoin:  surface.LineJoinRound,
}

// Drawing is a read-only snapshot of the document being edited.
type Drawing struct {
	// Layer is the active layer's committed segments.
	Layer []Segment

	// Open is the vertex list placed but not yet committed.
	Open []Vertex

	Style Style

	// Crest forces both mirror guides.
	Crest bool

	// Size is the content size in logical units.
	Size Size
}

// Translation is an in-progress drag from one point to another.
type Translation struct {
	From, To Point
	Copy     bool
	Multi    bool
}

// Cursor is the live pointer state.
type Cursor struct {
	Pos Point

	// Operation is the cast being previewed, or empty.
	Operation CastType

	// Translation is nil unless a drag is in progress.
	Translation *Translation
}
