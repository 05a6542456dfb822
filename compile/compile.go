// Package compile turns guide segments into SVG path data and documents.
//
// Compiler is the reference guide.PathCompiler: each cast type maps to one
// SVG path command family.
//
//	line    M x,y L x,y ...
//	arc_c   M x,y A rx,ry 0 0,1 x,y ...
//	arc_r   M x,y A rx,ry 0 0,0 x,y ...
//	bezier  M x,y Q cx,cy x,y ...
//	close   M a A .. b A .. a Z
//
// An arc between vertices on the same row or column is written as a line.
//
// Arc radii are the horizontal and vertical distance between the two
// vertices, so a step of (30, 30) draws a quarter circle.
package compile

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/guide"
)

// ErrUnknownCast is returned for a segment whose type is not a known cast.
var ErrUnknownCast = errors.New("compile: unknown cast type")

// Compiler compiles segments into SVG. The zero value is ready to use.
type Compiler struct{}

var _ guide.PathCompiler = Compiler{}

// Path compiles segs into SVG path data. Every coordinate is multiplied by
// scale and then offset by origin.
func (Compiler) Path(segs []guide.Segment, origin guide.Point, scale float64) (string, error) {
	w := newPathWriter(origin, scale)
	for i, seg := range segs {
		if err := w.segment(seg, identity, false); err != nil {
			return "", fmt.Errorf("compile: segment %d: %w", i, err)
		}
	}
	return w.String(), nil
}

// Document compiles the drawing's active layer into a standalone SVG
// document of the given logical size. Mirror styles add reflected copies of
// every segment through the content midpoint.
func (Compiler) Document(d guide.Drawing, size guide.Size) (string, error) {
	content := d.Size
	if content.IsZero() {
		content = size
	}

	w := newPathWriter(guide.Point{}, 1)
	for _, m := range reflections(d.Style.Mirror, d.Crest, content) {
		for i, seg := range d.Layer {
			if err := w.segment(seg, m.fn, m.flip); err != nil {
				return "", fmt.Errorf("compile: segment %d: %w", i, err)
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(size.Width), num(size.Height), num(size.Width), num(size.Height))
	b.WriteByte('\n')
	if data := w.String(); data != "" {
		writePath(&b, data, d.Style)
	}
	b.WriteString("</svg>\n")
	return b.String(), nil
}

func writePath(b *strings.Builder, data string, st guide.Style) {
	c := st.Color
	rgb := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)

	fmt.Fprintf(b, `<path d="%s" stroke="%s" stroke-width="%s" stroke-linecap="%s" stroke-linejoin="%s"`,
		data, rgb, num(st.Thickness), st.LineCap, st.LineJoin)
	if c.A != 0xff {
		fmt.Fprintf(b, ` stroke-opacity="%s"`, num(float64(c.A)/0xff))
	}
	if len(st.Dash) > 0 {
		parts := make([]string, len(st.Dash))
		for i, v := range st.Dash {
			parts[i] = num(v)
		}
		fmt.Fprintf(b, ` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	if st.Fill {
		fmt.Fprintf(b, ` fill="%s"`, rgb)
		if c.A != 0xff {
			fmt.Fprintf(b, ` fill-opacity="%s"`, num(float64(c.A)/0xff))
		}
	} else {
		b.WriteString(` fill="none"`)
	}
	b.WriteString("/>\n")
}

type reflection struct {
	fn   func(guide.Point) guide.Point
	flip bool
}

func identity(p guide.Point) guide.Point { return p }

// reflections lists the copies a mirror style produces, the original first.
// A reflection through one axis reverses arc sweeps; through both it does not.
func reflections(m guide.MirrorStyle, crest bool, content guide.Size) []reflection {
	w, h := content.Width, content.Height
	flipX := func(p guide.Point) guide.Point { return guide.Pt(w-p.X, p.Y) }
	flipY := func(p guide.Point) guide.Point { return guide.Pt(p.X, h-p.Y) }
	flipXY := func(p guide.Point) guide.Point { return guide.Pt(w-p.X, h-p.Y) }

	out := []reflection{{identity, false}}
	vertical := m.Vertical() || crest
	horizontal := m.Horizontal() || crest
	if vertical {
		out = append(out, reflection{flipX, true})
	}
	if horizontal {
		out = append(out, reflection{flipY, true})
	}
	if vertical && horizontal {
		out = append(out, reflection{flipXY, false})
	}
	return out
}

// pathWriter accumulates path data, omitting the move when a segment
// starts where the previous one ended.
type pathWriter struct {
	b       strings.Builder
	origin  guide.Point
	scale   float64
	last    guide.Point
	started bool
}

func newPathWriter(origin guide.Point, scale float64) *pathWriter {
	return &pathWriter{origin: origin, scale: scale}
}

func (w *pathWriter) String() string {
	return strings.TrimSpace(w.b.String())
}

func (w *pathWriter) device(v guide.Vertex) guide.Point {
	return v.Scale(w.scale).Add(w.origin)
}

func (w *pathWriter) cmd(op byte, pts ...guide.Point) {
	w.b.WriteByte(op)
	for i, p := range pts {
		if i > 0 {
			w.b.WriteByte(' ')
		}
		w.b.WriteString(num(p.X))
		w.b.WriteByte(',')
		w.b.WriteString(num(p.Y))
	}
	w.b.WriteByte(' ')
	if len(pts) > 0 {
		w.last = pts[len(pts)-1]
	}
	w.started = true
}

func (w *pathWriter) moveTo(p guide.Point) {
	if w.started && p == w.last {
		return
	}
	w.cmd('M', p)
}

// arc writes an elliptical arc from a to b. A zero radius is a straight
// line in SVG, so it is written as one.
func (w *pathWriter) arc(a, b guide.Point, sweep int) {
	rx, ry := math.Abs(b.X-a.X), math.Abs(b.Y-a.Y)
	if rx == 0 || ry == 0 {
		w.cmd('L', b)
		return
	}
	fmt.Fprintf(&w.b, "A%s,%s 0 0,%d %s,%s ", num(rx), num(ry), sweep, num(b.X), num(b.Y))
	w.last = b
}

func (w *pathWriter) segment(seg guide.Segment, reflect func(guide.Point) guide.Point, flip bool) error {
	if !seg.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCast, seg.Type)
	}
	if len(seg.Vertices) == 0 {
		return nil
	}
	pts := make([]guide.Point, len(seg.Vertices))
	for i, v := range seg.Vertices {
		pts[i] = w.device(reflect(v))
	}
	w.moveTo(pts[0])

	switch seg.Type {
	case guide.CastLine:
		for _, p := range pts[1:] {
			w.cmd('L', p)
		}
	case guide.CastArcC, guide.CastArcR:
		sweep := 0
		if seg.Type == guide.CastArcC {
			sweep = 1
		}
		if flip {
			sweep = 1 - sweep
		}
		for i := 1; i < len(pts); i++ {
			w.arc(pts[i-1], pts[i], sweep)
		}
	case guide.CastBezier:
		i := 1
		for ; i+1 < len(pts); i += 2 {
			w.cmd('Q', pts[i], pts[i+1])
		}
		if i < len(pts) {
			w.cmd('L', pts[i])
		}
	case guide.CastClose:
		if len(pts) >= 2 {
			sweep := 1
			if flip {
				sweep = 0
			}
			w.arc(pts[0], pts[1], sweep)
			w.arc(pts[1], pts[0], sweep)
		}
		w.b.WriteString("Z ")
		w.last = pts[0]
	}
	return nil
}

func num(v float64) string {
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
