package guide

import "slices"

// Frame is the immutable state one draw pass renders. It is assembled once at
// the start of the pass, so every primitive sees the same drawing, cursor and
// palette even if the providers change underneath.
type Frame struct {
	// Scale is the device pixel scale.
	Scale float64

	// Device is the pixel buffer size.
	Device Size

	Drawing Drawing
	Cursor  Cursor
	Theme   Theme

	// Overlays is false when extras (grid, guides, handles) are toggled off.
	Overlays bool

	// Preview is device-space SVG path data for the pending operation, or
	// empty when no preview should be drawn.
	Preview string
}

// cloneDrawing copies every slice of d so the frame does not alias the
// provider's state.
func cloneDrawing(d Drawing) Drawing {
	out := d
	out.Open = slices.Clone(d.Open)
	out.Style.Dash = slices.Clone(d.Style.Dash)
	if d.Layer != nil {
		out.Layer = make([]Segment, len(d.Layer))
		for i, seg := range d.Layer {
			out.Layer[i] = Segment{Vertices: slices.Clone(seg.Vertices), Type: seg.Type}
		}
	}
	return out
}

func cloneCursor(c Cursor) Cursor {
	out := c
	if c.Translation != nil {
		t := *c.Translation
		out.Translation = &t
	}
	return out
}

// shouldPreview reports whether the pending operation gets a preview: the
// tool must accept the cast, and close never previews since it describes
// two arcs rather than one stroke.
func shouldPreview(op CastType, tool Tool) bool {
	if op == "" || op == CastClose {
		return false
	}
	return tool.CanCast(op)
}
