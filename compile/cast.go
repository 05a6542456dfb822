package compile

import "github.com/gogpu/guide"

// MinVertices is the smallest open vertex list each cast accepts.
var MinVertices = map[guide.CastType]int{
	guide.CastLine:   2,
	guide.CastArcC:   2,
	guide.CastArcR:   2,
	guide.CastBezier: 3,
	guide.CastClose:  2,
}

// CanCast reports whether cast t can be applied to the open vertex list.
// Close additionally needs a committed segment on the layer to close.
func CanCast(layer []guide.Segment, open []guide.Vertex, t guide.CastType) bool {
	n, ok := MinVertices[t]
	if !ok || len(open) < n {
		return false
	}
	if t == guide.CastClose {
		return len(layer) > 0
	}
	return true
}

// Tool answers guide.Tool queries from the current drawing.
type Tool struct {
	Drawing guide.DrawingProvider
}

var _ guide.Tool = Tool{}

// CanCast implements guide.Tool.
func (t Tool) CanCast(c guide.CastType) bool {
	d := t.Drawing.Drawing()
	return CanCast(d.Layer, d.Open, c)
}
