package guide

import (
	"image"
	"image/color"

	"github.com/gogpu/guide/surface"
)

// Overlay geometry, in logical units unless noted. Radii and stroke widths
// are device pixels: markers keep their on-screen size at any scale.
const (
	mirrorMargin = 15

	gridStepEvery  = 4
	gridStepRadius = 2.5
	gridDotRadius  = 1.5

	ruleWidth = 3

	handleRadius = 6
	vertexRadius = 5

	cursorInnerRadius = 5
	cursorMinRadius   = 5
	cursorMaxRadius   = 100
	cursorWidth       = 3

	translationWidth = 5

	previewThickness = 2
)

var (
	translationDash = []float64{5, 10}
	previewDash     = []float64{5, 15}
)

// FrameStats counts what one draw pass emitted.
type FrameStats struct {
	Generation uint64
	Mirrors    int
	Rulers     int
	Dots       int
	StepDots   int
	Rasters    int
	Vertices   int
	Handles    int
	Translated bool
	Preview    bool
}

func ruleStyle(t Theme) surface.StrokeStyle {
	return surface.StrokeStyle{
		Color: t.BLow,
		Width: ruleWidth,
		Cap:   surface.LineCapRound,
		Join:  surface.LineJoinMiter,
	}
}

func drawRule(s surface.Surface, from, to Point, style surface.StrokeStyle) {
	p := surface.NewPath()
	p.MoveTo(from.X, from.Y)
	p.LineTo(to.X, to.Y)
	s.Stroke(p, style)
}

// drawMirror draws the symmetry guides through the content midpoint. Both
// start one margin in from the top/left edge and run to the far edge.
func drawMirror(s surface.Surface, f *Frame) int {
	if !f.Overlays {
		return 0
	}
	m := f.Drawing.Style.Mirror
	if m == MirrorNone && !f.Drawing.Crest {
		return 0
	}
	size := f.Drawing.Size.Scale(f.Scale)
	mid := Pt(size.Width/2, size.Height/2)
	margin := mirrorMargin * f.Scale
	style := ruleStyle(f.Theme)

	n := 0
	if m.Vertical() || f.Drawing.Crest {
		drawRule(s, Pt(mid.X, margin), Pt(mid.X, size.Height), style)
		n++
	}
	if m.Horizontal() || f.Drawing.Crest {
		drawRule(s, Pt(margin, mid.Y), Pt(size.Width, mid.Y), style)
		n++
	}
	return n
}

// drawRulers draws full-span guides through the translation target.
func drawRulers(s surface.Surface, f *Frame) int {
	tr := f.Cursor.Translation
	if tr == nil {
		return 0
	}
	pos := tr.To.Scale(f.Scale)
	size := f.Drawing.Size.Scale(f.Scale)
	style := ruleStyle(f.Theme)

	drawRule(s, Pt(pos.X, 0), Pt(pos.X, size.Height), style)
	drawRule(s, Pt(0, pos.Y), Pt(size.Width, pos.Y), style)
	return 2
}

// GridCell is one grid marker position.
type GridCell struct {
	X, Y int
	Step bool
}

// GridCells lists the markers for a content size: one per CellSize cell,
// skipping the margin row and column, with every fourth cell in both axes
// marked as a step.
func GridCells(size Size) []GridCell {
	w := int(size.Width / CellSize)
	h := int(size.Height / CellSize)
	if w <= 1 || h <= 1 {
		return nil
	}
	cells := make([]GridCell, 0, (w-1)*(h-1))
	for x := 1; x < w; x++ {
		for y := 1; y < h; y++ {
			cells = append(cells, GridCell{
				X:    x,
				Y:    y,
				Step: x%gridStepEvery == 0 && y%gridStepEvery == 0,
			})
		}
	}
	return cells
}

// drawGrid fills all ordinary dots as one path and all step dots as another.
func drawGrid(s surface.Surface, f *Frame) (dots, steps int) {
	if !f.Overlays {
		return 0, 0
	}
	plain, step := surface.NewPath(), surface.NewPath()
	unit := CellSize * f.Scale
	for _, c := range GridCells(f.Drawing.Size) {
		x, y := float64(c.X)*unit, float64(c.Y)*unit
		if c.Step {
			step.Circle(x, y, gridStepRadius)
			steps++
		} else {
			plain.Circle(x, y, gridDotRadius)
		}
		dots++
	}
	if !plain.IsEmpty() {
		s.Fill(plain, surface.FillStyle{Color: f.Theme.BLow})
	}
	if !step.IsEmpty() {
		s.Fill(step, surface.FillStyle{Color: f.Theme.BMed})
	}
	return dots, steps
}

// drawRaster stretches the decoded render over the whole device buffer.
func drawRaster(s surface.Surface, f *Frame, raster image.Image) int {
	if raster == nil {
		return 0
	}
	dst := image.Rect(0, 0, int(f.Device.Width), int(f.Device.Height))
	s.DrawImage(raster, surface.Point{}, &surface.DrawImageOptions{
		DstRect: &dst,
		Alpha:   1,
		Filter:  surface.FilterBilinear,
	})
	return 1
}

func fillCircle(s surface.Surface, at Point, r float64, c color.NRGBA) {
	p := surface.NewPath()
	p.Circle(at.X, at.Y, r)
	s.Fill(p, surface.FillStyle{Color: c})
}

func strokeCircle(s surface.Surface, at Point, r float64, style surface.StrokeStyle) {
	p := surface.NewPath()
	p.Circle(at.X, at.Y, r)
	s.Stroke(p, style)
}

// drawVertices marks the open (uncommitted) vertices.
func drawVertices(s surface.Surface, f *Frame) int {
	for _, v := range f.Drawing.Open {
		fillCircle(s, v.Scale(f.Scale), vertexRadius, f.Theme.FMed)
	}
	return len(f.Drawing.Open)
}

// drawHandles draws the three-ring selectable marker on every vertex of the
// active layer.
func drawHandles(s surface.Surface, f *Frame) int {
	if !f.Overlays {
		return 0
	}
	outer := surface.StrokeStyle{
		Color: f.Theme.FHigh,
		Width: ruleWidth,
		Cap:   surface.LineCapRound,
		Join:  surface.LineJoinMiter,
	}
	n := 0
	for _, seg := range f.Drawing.Layer {
		for _, v := range seg.Vertices {
			at := v.Scale(f.Scale)
			fillCircle(s, at, handleRadius+3, f.Theme.FHigh)
			strokeCircle(s, at, handleRadius+3, outer)
			fillCircle(s, at, handleRadius, f.Theme.FLow)
			fillCircle(s, at, handleRadius-3, f.Theme.FHigh)
			n++
		}
	}
	return n
}

// TranslationColor picks the drag feedback colour: multi wins over copy,
// copy over a plain move.
func TranslationColor(tr Translation, t Theme) color.NRGBA {
	switch {
	case tr.Multi:
		return t.BInv
	case tr.Copy:
		return t.FMed
	default:
		return t.FLow
	}
}

func drawTranslation(s surface.Surface, f *Frame) bool {
	tr := f.Cursor.Translation
	if tr == nil {
		return false
	}
	style := surface.StrokeStyle{
		Color: TranslationColor(*tr, f.Theme),
		Width: translationWidth,
		Cap:   surface.LineCapRound,
		Join:  surface.LineJoinMiter,
	}.WithDash(translationDash, 0)
	drawRule(s, tr.From.Scale(f.Scale), tr.To.Scale(f.Scale), style)
	return true
}

// CursorRadius is the outer cursor ring radius for a stroke thickness.
func CursorRadius(thickness float64) float64 {
	return Clamp(thickness-1, cursorMinRadius, cursorMaxRadius)
}

// drawCursor draws the two cursor rings. The inner ring uses the background
// colour to punch a hole through whatever lies beneath.
func drawCursor(s surface.Surface, f *Frame) {
	at := f.Cursor.Pos.Scale(f.Scale)
	ring := surface.StrokeStyle{
		Width: cursorWidth,
		Cap:   surface.LineCapRound,
		Join:  surface.LineJoinMiter,
	}
	strokeCircle(s, at, cursorInnerRadius, ring.WithColor(f.Theme.Background))
	strokeCircle(s, at, CursorRadius(f.Drawing.Style.Thickness), ring.WithColor(f.Theme.FMed))
}

// drawPreview strokes the compiled preview of the pending operation.
func drawPreview(s surface.Surface, f *Frame) (bool, error) {
	if f.Preview == "" {
		return false, nil
	}
	p, err := surface.ParseSVGPath(f.Preview)
	if err != nil {
		return false, err
	}
	style := surface.StrokeStyle{
		Color: f.Theme.FMed,
		Width: previewThickness * f.Scale,
		Cap:   surface.LineCapRound,
		Join:  surface.LineJoinRound,
	}.WithDash(previewDash, 0)
	s.Stroke(p, style)
	return true, nil
}
