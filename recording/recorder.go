package recording

import (
	"image"
	"image/color"

	"github.com/gogpu/guide/surface"
)

// Recorder captures drawing operations as commands.
// It implements surface.ResizableSurface, so any code that draws into a
// surface can draw into a Recorder instead. Use FinishRecording to take the
// commands captured so far as an immutable Recording.
//
// Example:
//
//	rec := recording.NewRecorder(300, 300)
//	p := surface.NewPath()
//	p.Circle(150, 150, 5)
//	rec.Fill(p, surface.FillStyle{Color: color.White})
//	r := rec.FinishRecording()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
	closed        bool
}

// NewRecorder creates a new Recorder for the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:     width,
		height:    height,
		commands:  make([]Command, 0, 256),
		resources: NewResourcePool(),
	}
}

// FinishRecording returns an immutable Recording containing all commands
// recorded since the last FinishRecording, then starts an empty one.
func (r *Recorder) FinishRecording() *Recording {
	rec := &Recording{
		width:     r.width,
		height:    r.height,
		commands:  r.commands,
		resources: r.resources,
	}
	r.commands = make([]Command, 0, cap(r.commands))
	r.resources = NewResourcePool()
	return rec
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Width returns the recording width in device pixels.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the recording height in device pixels.
func (r *Recorder) Height() int {
	return r.height
}

// Resize changes the recorded dimensions. Recorded commands are kept; the
// next Clear command marks where the resized frame starts.
func (r *Recorder) Resize(width, height int) error {
	if r.closed {
		return surface.ErrSurfaceClosed
	}
	r.width, r.height = width, height
	return nil
}

// Clear records a ClearCommand.
func (r *Recorder) Clear(c color.Color) {
	if r.closed {
		return
	}
	r.commands = append(r.commands, ClearCommand{Color: nrgba(c)})
}

// Fill records a FillPathCommand with a clone of path.
func (r *Recorder) Fill(path *surface.Path, style surface.FillStyle) {
	if r.closed || path == nil {
		return
	}
	r.commands = append(r.commands, FillPathCommand{
		Path:  r.resources.AddPath(path),
		Color: nrgba(style.Color),
		Rule:  style.Rule,
	})
}

// Stroke records a StrokePathCommand with a clone of path.
func (r *Recorder) Stroke(path *surface.Path, style surface.StrokeStyle) {
	if r.closed || path == nil {
		return
	}
	var dash []float64
	if style.IsDashed() {
		dash = append([]float64(nil), style.DashPattern...)
	}
	r.commands = append(r.commands, StrokePathCommand{
		Path:       r.resources.AddPath(path),
		Color:      nrgba(style.Color),
		Width:      style.Width,
		Cap:        style.Cap,
		Join:       style.Join,
		MiterLimit: style.MiterLimit,
		Dash:       dash,
		DashOffset: style.DashOffset,
	})
}

// DrawImage records a DrawImageCommand. The destination rectangle is
// resolved the same way ImageSurface resolves it.
func (r *Recorder) DrawImage(img image.Image, at surface.Point, opts *surface.DrawImageOptions) {
	if r.closed || img == nil {
		return
	}
	if opts == nil {
		opts = surface.DefaultDrawImageOptions()
	}
	src := img.Bounds()
	if opts.SrcRect != nil {
		src = opts.SrcRect.Intersect(src)
	}
	dst := image.Rect(0, 0, src.Dx(), src.Dy()).Add(image.Pt(int(at.X), int(at.Y)))
	if opts.DstRect != nil {
		dst = *opts.DstRect
	}
	r.commands = append(r.commands, DrawImageCommand{
		Image:  r.resources.AddImage(img),
		Src:    src,
		Dst:    dst,
		Alpha:  opts.Alpha,
		Filter: opts.Filter,
	})
}

// Flush is a no-op.
func (r *Recorder) Flush() error {
	return nil
}

// Snapshot rasterizes the commands recorded so far onto a fresh image
// surface and returns the pixels.
func (r *Recorder) Snapshot() *image.RGBA {
	dst := surface.NewImageSurface(r.width, r.height)
	rec := Recording{width: r.width, height: r.height, commands: r.commands, resources: r.resources}
	_ = rec.Playback(dst)
	return dst.Image()
}

// Close stops recording. Later draw calls are ignored.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

var _ surface.ResizableSurface = (*Recorder)(nil)

// Recording is an immutable container for recorded drawing commands.
// It can be replayed to any surface.
type Recording struct {
	width, height int
	commands      []Command
	resources     *ResourcePool
}

// Width returns the width of the recording canvas.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recording) Height() int {
	return r.height
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Resources returns the resource pool.
func (r *Recording) Resources() *ResourcePool {
	return r.resources
}

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Colors returns every distinct colour used by the recording, in first-use
// order.
func (r *Recording) Colors() []color.NRGBA {
	seen := make(map[color.NRGBA]bool)
	var out []color.NRGBA
	add := func(c color.NRGBA) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case ClearCommand:
			add(c.Color)
		case FillPathCommand:
			add(c.Color)
		case StrokePathCommand:
			add(c.Color)
		}
	}
	return out
}

// Playback replays the recording onto dst. Commands whose resources are
// missing (for example images dropped by Decode) are skipped.
func (r *Recording) Playback(dst surface.Surface) error {
	if dst == nil {
		return ErrNilSurface
	}
	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case ClearCommand:
			dst.Clear(c.Color)
		case FillPathCommand:
			if path := r.resources.GetPath(c.Path); path != nil {
				dst.Fill(path, c.Style())
			}
		case StrokePathCommand:
			if path := r.resources.GetPath(c.Path); path != nil {
				dst.Stroke(path, c.Style())
			}
		case DrawImageCommand:
			img := r.resources.GetImage(c.Image)
			if img == nil {
				continue
			}
			src, dstRect := c.Src, c.Dst
			dst.DrawImage(img, surface.Point{}, &surface.DrawImageOptions{
				SrcRect: &src,
				DstRect: &dstRect,
				Alpha:   c.Alpha,
				Filter:  c.Filter,
			})
		}
	}
	return dst.Flush()
}
