package guide

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/gogpu/guide/surface"
)

// ErrClosed is returned by Update after Close.
var ErrClosed = errors.New("guide: renderer closed")

// Renderer composites one frame per update: a raster of the compiled
// drawing stretched over the device buffer, with the overlays drawn on top
// in a fixed order.
//
// Update may be called from any goroutine. Rasters are decoded
// asynchronously and the latest request always wins: a newer Update cancels
// the previous decode, and a completion that is no longer the latest is
// dropped without drawing.
type Renderer struct {
	ctx      Context
	canvas   *Canvas
	compiler PathCompiler
	decoder  Decoder

	base context.Context
	stop context.CancelFunc

	// cancelMu orders requests against each other and against Close.
	cancelMu sync.Mutex
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	// drawMu serialises draw passes; the canvas lock nests inside it.
	drawMu sync.Mutex
	last   FrameStats

	gen      atomic.Uint64
	overlays atomic.Bool
	closed   atomic.Bool

	frames       atomic.Uint64
	stale        atomic.Uint64
	decodeErrors atomic.Uint64

	// begun, when set, runs after a request is registered. Tests use it to
	// hold one request while another overtakes it.
	begun func(gen uint64)
}

// NewRenderer creates a renderer for the providers in ctx.
func NewRenderer(ctx Context, opts ...Option) (*Renderer, error) {
	if err := ctx.validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	canvas, err := newCanvas(ctx.Bounds, o)
	if err != nil {
		return nil, err
	}
	base, stop := context.WithCancel(context.Background())
	r := &Renderer{
		ctx:      ctx,
		canvas:   canvas,
		compiler: o.compiler,
		decoder:  o.decoder,
		base:     base,
		stop:     stop,
	}
	r.overlays.Store(o.overlays)
	return r, nil
}

// Canvas returns the canvas the renderer draws on.
func (r *Renderer) Canvas() *Canvas {
	return r.canvas
}

// Start paints the first frame.
func (r *Renderer) Start() error {
	_, err := r.Update(false)
	return err
}

// Update requests a new frame and returns its generation. It resizes the
// canvas (reallocating even at the same size when force is set), refreshes
// the model, compiles the drawing and starts decoding it. The frame is drawn
// when the decode completes, unless a newer Update has been issued by then.
//
// Without a compiler or decoder the frame is drawn immediately with no
// raster layer.
func (r *Renderer) Update(force bool) (uint64, error) {
	gen, ctx, err := r.begin()
	if err != nil {
		return 0, err
	}
	if r.begun != nil {
		r.begun(gen)
	}

	r.drawMu.Lock()
	if force {
		r.canvas.ForceResize()
	} else {
		r.canvas.Resize()
	}
	r.drawMu.Unlock()

	if r.ctx.Model != nil {
		r.ctx.Model.Refresh()
	}

	if r.compiler == nil || r.decoder == nil {
		defer r.wg.Done()
		r.complete(gen, nil)
		return gen, nil
	}

	doc, err := r.compiler.Document(r.ctx.Drawing.Drawing(), r.canvas.Size())
	if err != nil {
		defer r.wg.Done()
		r.decodeErrors.Add(1)
		Logger().Warn("guide: compile failed, drawing without raster", "gen", gen, "err", err)
		r.complete(gen, nil)
		return gen, nil
	}

	go func() {
		defer r.wg.Done()
		img, err := r.decoder.Decode(ctx, doc)
		if err != nil {
			if ctx.Err() != nil {
				r.stale.Add(1)
				Logger().Debug("guide: decode cancelled", "gen", gen)
				return
			}
			r.decodeErrors.Add(1)
			Logger().Warn("guide: decode failed, drawing without raster", "gen", gen, "err", err)
			img = nil
		}
		r.complete(gen, img)
	}()
	return gen, nil
}

// begin registers a request. The generation bump, the swap of the decode
// context and the WaitGroup increment happen under cancelMu, so requests
// are ordered the same way by all three and none starts after Close. The
// caller owns one wg.Done.
func (r *Renderer) begin() (uint64, context.Context, error) {
	r.cancelMu.Lock()
	defer r.cancelMu.Unlock()

	if r.closed.Load() {
		return 0, nil, ErrClosed
	}
	gen := r.gen.Add(1)
	ctx, cancel := context.WithCancel(r.base)
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
	r.wg.Add(1)
	return gen, ctx, nil
}

// complete draws the frame for gen unless a newer generation was requested.
func (r *Renderer) complete(gen uint64, raster image.Image) {
	r.drawMu.Lock()
	defer r.drawMu.Unlock()

	if latest := r.gen.Load(); gen != latest || r.closed.Load() {
		r.stale.Add(1)
		Logger().Debug("guide: dropping stale raster", "gen", gen, "latest", latest)
		return
	}
	r.draw(gen, raster)
}

// Draw runs the draw pipeline now with the given raster, which may be nil.
func (r *Renderer) Draw(raster image.Image) {
	r.drawMu.Lock()
	defer r.drawMu.Unlock()

	r.draw(r.gen.Load(), raster)
}

// Toggle shows or hides the overlays, requests a frame and refreshes the
// menu chrome.
func (r *Renderer) Toggle() error {
	if r.closed.Load() {
		return ErrClosed
	}
	r.overlays.Store(!r.overlays.Load())
	if _, err := r.Update(false); err != nil {
		r.overlays.Store(!r.overlays.Load())
		return err
	}
	if r.ctx.Menu != nil {
		r.ctx.Menu.Refresh(true)
	}
	return nil
}

// Overlays reports whether extras are shown.
func (r *Renderer) Overlays() bool {
	return r.overlays.Load()
}

// snapshot assembles the immutable frame for one pass.
func (r *Renderer) snapshot(logical Size) *Frame {
	scale := float64(r.canvas.Scale())
	f := &Frame{
		Scale:    scale,
		Device:   logical.Scale(scale),
		Drawing:  cloneDrawing(r.ctx.Drawing.Drawing()),
		Cursor:   cloneCursor(r.ctx.Cursor.Cursor()),
		Theme:    r.ctx.Theme.Theme(),
		Overlays: r.overlays.Load(),
	}
	op := f.Cursor.Operation
	if r.compiler != nil && shouldPreview(op, r.ctx.Tool) {
		seg := []Segment{{Vertices: f.Drawing.Open, Type: op}}
		preview, err := r.compiler.Path(seg, Point{}, scale)
		if err != nil {
			Logger().Warn("guide: preview compile failed", "op", op, "err", err)
		}
		f.Preview = preview
	}
	return f
}

// draw runs the fixed pipeline. Later steps occlude earlier ones:
// clear, mirror, rulers, grid, raster, vertices, handles, translation,
// cursor, preview. Callers hold drawMu.
func (r *Renderer) draw(gen uint64, raster image.Image) {
	r.canvas.paint(func(s surface.Surface, logical Size) {
		f := r.snapshot(logical)
		st := FrameStats{Generation: gen}

		s.Clear(color.Transparent)
		st.Mirrors = drawMirror(s, f)
		st.Rulers = drawRulers(s, f)
		st.Dots, st.StepDots = drawGrid(s, f)
		st.Rasters = drawRaster(s, f, raster)
		st.Vertices = drawVertices(s, f)
		st.Handles = drawHandles(s, f)
		st.Translated = drawTranslation(s, f)
		drawCursor(s, f)
		ok, err := drawPreview(s, f)
		if err != nil {
			Logger().Warn("guide: preview parse failed", "err", err)
		}
		st.Preview = ok

		if err := s.Flush(); err != nil {
			Logger().Warn("guide: flush failed", "err", err)
		}
		r.last = st
		r.frames.Add(1)
		Logger().Debug("guide: frame",
			"gen", gen,
			"dots", st.Dots,
			"handles", st.Handles,
			"raster", st.Rasters == 1,
			"preview", st.Preview)
	})
}

// Stats reports renderer counters.
type Stats struct {
	// Frames is the number of completed draw passes.
	Frames uint64

	// Stale counts decodes dropped because a newer frame was requested.
	Stale uint64

	// DecodeErrors counts frames drawn without a raster after a compile
	// or decode failure.
	DecodeErrors uint64

	// Last describes the most recent draw pass.
	Last FrameStats
}

// Stats returns a snapshot of the renderer counters.
func (r *Renderer) Stats() Stats {
	r.drawMu.Lock()
	last := r.last
	r.drawMu.Unlock()

	return Stats{
		Frames:       r.frames.Load(),
		Stale:        r.stale.Load(),
		DecodeErrors: r.decodeErrors.Load(),
		Last:         last,
	}
}

// Wait blocks until every in-flight decode has completed or been dropped.
func (r *Renderer) Wait() {
	r.wg.Wait()
}

// Close cancels in-flight decodes, waits for them and releases the canvas.
// Close is idempotent.
func (r *Renderer) Close() error {
	r.cancelMu.Lock()
	if r.closed.Swap(true) {
		r.cancelMu.Unlock()
		return nil
	}
	r.stop()
	r.cancelMu.Unlock()

	r.wg.Wait()

	r.drawMu.Lock()
	defer r.drawMu.Unlock()

	return r.canvas.Close()
}
