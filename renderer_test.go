package guide

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/guide/recording"
)

type fakeDrawing struct {
	mu sync.Mutex
	d  Drawing
}

func (f *fakeDrawing) Drawing() Drawing {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.d
}

type fakeCursor struct{ c Cursor }

func (f *fakeCursor) Cursor() Cursor { return f.c }

type fakeTool struct{ allow map[CastType]bool }

func (f fakeTool) CanCast(t CastType) bool { return f.allow[t] }

type fakeModel struct{ refreshes atomic.Int32 }

func (f *fakeModel) Refresh() { f.refreshes.Add(1) }

type fakeMenu struct{ forced atomic.Int32 }

func (f *fakeMenu) Refresh(force bool) {
	if force {
		f.forced.Add(1)
	}
}

// fakeCompiler numbers every document so decodes can be told apart.
type fakeCompiler struct {
	docs    atomic.Int32
	paths   atomic.Int32
	failDoc bool
}

func (f *fakeCompiler) Path(segs []Segment, origin Point, scale float64) (string, error) {
	f.paths.Add(1)
	return "M0,0 L60,60", nil
}

func (f *fakeCompiler) Document(d Drawing, size Size) (string, error) {
	if f.failDoc {
		return "", errors.New("compile failed")
	}
	return fmt.Sprintf("doc-%d", f.docs.Add(1)), nil
}

// gatedDecoder blocks each document until it is released.
type gatedDecoder struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
}

func (g *gatedDecoder) gate(doc string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gates == nil {
		g.gates = make(map[string]chan struct{})
	}
	ch, ok := g.gates[doc]
	if !ok {
		ch = make(chan struct{})
		g.gates[doc] = ch
	}
	return ch
}

func (g *gatedDecoder) release(doc string) { close(g.gate(doc)) }

func (g *gatedDecoder) Decode(ctx context.Context, doc string) (image.Image, error) {
	<-g.gate(doc)
	return image.NewRGBA(image.Rect(0, 0, 300, 300)), nil
}

type decoderFunc func(ctx context.Context, doc string) (image.Image, error)

func (f decoderFunc) Decode(ctx context.Context, doc string) (image.Image, error) {
	return f(ctx, doc)
}

func solidRaster(context.Context, string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 300, 300)), nil
}

type fixture struct {
	drawing *fakeDrawing
	cursor  *fakeCursor
	model   *fakeModel
	menu    *fakeMenu
	rec     *recording.Recorder
	ctx     Context
}

func newFixture() *fixture {
	f := &fixture{
		drawing: &fakeDrawing{d: Drawing{Style: DefaultStyle, Size: BaseSize}},
		cursor:  &fakeCursor{},
		model:   &fakeModel{},
		menu:    &fakeMenu{},
		rec:     recording.NewRecorder(0, 0),
	}
	f.ctx = Context{
		Drawing: f.drawing,
		Cursor:  f.cursor,
		Theme:   NewThemeHolder(DefaultTheme),
		Bounds:  NewStaticBounds(BaseSize),
		Tool:    fakeTool{allow: map[CastType]bool{CastLine: true, CastClose: true}},
		Model:   f.model,
		Menu:    f.menu,
	}
	return f
}

func (f *fixture) renderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()
	opts = append([]Option{WithSurface(f.rec)}, opts...)
	r, err := NewRenderer(f.ctx, opts...)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestNewRendererMissingProvider(t *testing.T) {
	f := newFixture()
	f.ctx.Tool = nil
	if _, err := NewRenderer(f.ctx); !errors.Is(err, ErrMissingProvider) {
		t.Errorf("err = %v, want ErrMissingProvider", err)
	}
}

func TestRendererEndToEnd(t *testing.T) {
	f := newFixture()
	f.drawing.d.Layer = []Segment{{
		Vertices: []Vertex{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}},
		Type:     CastLine,
	}}
	f.cursor.c = Cursor{Pos: Pt(50, 50)}

	r := f.renderer(t,
		WithScale(2),
		WithCompiler(&fakeCompiler{}),
		WithDecoder(decoderFunc(solidRaster)))

	if err := r.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.Wait()

	rec := f.rec.FinishRecording()
	if got := rec.Count(recording.CmdDrawImage); got != 1 {
		t.Fatalf("raster draws = %d, want 1", got)
	}
	for _, cmd := range rec.Commands() {
		if img, ok := cmd.(recording.DrawImageCommand); ok && img.Dst != image.Rect(0, 0, 600, 600) {
			t.Errorf("raster dst = %v, want 600x600 device buffer", img.Dst)
		}
	}

	rules := 0
	middles := 0
	for _, cmd := range rec.Commands() {
		switch c := cmd.(type) {
		case recording.StrokePathCommand:
			if c.Color == DefaultTheme.BLow {
				rules++
			}
		case recording.FillPathCommand:
			if c.Color == DefaultTheme.FLow {
				middles++
			}
		}
	}
	if rules != 0 {
		t.Errorf("rule strokes = %d, want 0", rules)
	}
	if middles != 3 {
		t.Errorf("handle middles = %d, want 3", middles)
	}

	st := r.Stats()
	if st.Frames != 1 || st.Last.Handles != 3 || st.Last.Rulers != 0 || st.Last.Rasters != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.Last.Dots != 361 || st.Last.StepDots != 16 {
		t.Errorf("grid = %d/%d, want 361/16", st.Last.Dots, st.Last.StepDots)
	}
	if f.model.refreshes.Load() != 1 {
		t.Errorf("model refreshes = %d, want 1", f.model.refreshes.Load())
	}
	if w, h := r.Canvas().DeviceSize(); w != 600 || h != 600 {
		t.Errorf("device = %dx%d, want 600x600", w, h)
	}
}

func TestRendererThemeOnlyColors(t *testing.T) {
	f := newFixture()
	f.drawing.d.Layer = []Segment{{Vertices: []Vertex{{X: 15, Y: 15}, {X: 45, Y: 15}}, Type: CastLine}}
	f.drawing.d.Open = []Vertex{{X: 60, Y: 60}, {X: 90, Y: 60}}
	f.drawing.d.Style.Mirror = MirrorBoth
	f.drawing.d.Style.Color = color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}
	f.cursor.c = Cursor{
		Pos:         Pt(90, 60),
		Operation:   CastLine,
		Translation: &Translation{From: Pt(15, 15), To: Pt(30, 30), Multi: true},
	}
	r := f.renderer(t, WithCompiler(&fakeCompiler{}))

	r.Draw(nil)
	rec := f.rec.FinishRecording()

	for _, c := range rec.Colors() {
		if c == (color.NRGBA{}) {
			continue
		}
		if !DefaultTheme.Contains(c) {
			t.Errorf("colour %s is not a theme colour", HexString(c))
		}
	}
	if last := r.Stats().Last; !last.Preview || !last.Translated || last.Mirrors != 2 || last.Rulers != 2 {
		t.Errorf("last = %+v", last)
	}
	first, ok := rec.Commands()[0].(recording.ClearCommand)
	if !ok || first.Color != (color.NRGBA{}) {
		t.Errorf("first command = %#v, want transparent clear", rec.Commands()[0])
	}
}

func TestRendererPreviewGating(t *testing.T) {
	tests := []struct {
		op   CastType
		want bool
	}{
		{"", false},
		{CastLine, true},
		{CastClose, false},
		{CastArcC, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			f := newFixture()
			f.drawing.d.Open = []Vertex{{X: 0, Y: 0}, {X: 30, Y: 30}}
			f.cursor.c = Cursor{Operation: tt.op}
			comp := &fakeCompiler{}
			r := f.renderer(t, WithCompiler(comp))

			r.Draw(nil)
			if got := r.Stats().Last.Preview; got != tt.want {
				t.Errorf("preview = %v, want %v", got, tt.want)
			}
			if called := comp.paths.Load() > 0; called != tt.want {
				t.Errorf("compiler.Path called = %v, want %v", called, tt.want)
			}
		})
	}
}

func TestRendererLastRequestWins(t *testing.T) {
	f := newFixture()
	dec := &gatedDecoder{}
	r := f.renderer(t, WithCompiler(&fakeCompiler{}), WithDecoder(dec))

	g1, err := r.Update(false)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := r.Update(false)
	if err != nil {
		t.Fatal(err)
	}
	if g2 <= g1 {
		t.Fatalf("generations %d, %d not increasing", g1, g2)
	}

	// Newer decode finishes first, the older one lands late.
	dec.release("doc-2")
	dec.release("doc-1")
	r.Wait()

	st := r.Stats()
	if st.Frames != 1 {
		t.Errorf("frames = %d, want 1", st.Frames)
	}
	if st.Stale != 1 {
		t.Errorf("stale = %d, want 1", st.Stale)
	}
	if st.Last.Generation != g2 {
		t.Errorf("drawn generation = %d, want %d", st.Last.Generation, g2)
	}
	if got := f.rec.FinishRecording().Count(recording.CmdDrawImage); got != 1 {
		t.Errorf("raster draws = %d, want 1", got)
	}
}

func TestRendererCancelsSupersededDecode(t *testing.T) {
	f := newFixture()
	started := make(chan struct{}, 1)
	first := true
	var mu sync.Mutex
	dec := decoderFunc(func(ctx context.Context, doc string) (image.Image, error) {
		mu.Lock()
		wait := first
		first = false
		mu.Unlock()
		if wait {
			started <- struct{}{}
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return solidRaster(ctx, doc)
	})
	r := f.renderer(t, WithCompiler(&fakeCompiler{}), WithDecoder(dec))

	if _, err := r.Update(false); err != nil {
		t.Fatal(err)
	}
	<-started
	if _, err := r.Update(false); err != nil {
		t.Fatal(err)
	}
	r.Wait()

	st := r.Stats()
	if st.Frames != 1 || st.Stale != 1 || st.DecodeErrors != 0 {
		t.Errorf("stats = %+v, want 1 frame, 1 stale, 0 errors", st)
	}
}

func TestRendererDecodeFailure(t *testing.T) {
	f := newFixture()
	fail := decoderFunc(func(context.Context, string) (image.Image, error) {
		return nil, errors.New("bad document")
	})
	r := f.renderer(t, WithCompiler(&fakeCompiler{}), WithDecoder(fail))

	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	r.Wait()

	st := r.Stats()
	if st.DecodeErrors != 1 || st.Frames != 1 {
		t.Errorf("stats = %+v, want 1 error and 1 frame", st)
	}
	if st.Last.Rasters != 0 || st.Last.Dots != 361 {
		t.Errorf("last = %+v, want overlays without raster", st.Last)
	}
}

func TestRendererCompileFailure(t *testing.T) {
	f := newFixture()
	r := f.renderer(t,
		WithCompiler(&fakeCompiler{failDoc: true}),
		WithDecoder(decoderFunc(solidRaster)))

	if _, err := r.Update(false); err != nil {
		t.Fatal(err)
	}
	st := r.Stats()
	if st.DecodeErrors != 1 || st.Frames != 1 || st.Last.Rasters != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestRendererForceUpdate(t *testing.T) {
	f := newFixture()
	r := f.renderer(t)

	if _, err := r.Update(false); err != nil {
		t.Fatal(err)
	}
	allocs := r.Canvas().Allocations()
	if _, err := r.Update(false); err != nil {
		t.Fatal(err)
	}
	if r.Canvas().Allocations() != allocs {
		t.Errorf("unforced update reallocated")
	}
	if _, err := r.Update(true); err != nil {
		t.Fatal(err)
	}
	if r.Canvas().Allocations() != allocs+1 {
		t.Errorf("allocations = %d, want %d", r.Canvas().Allocations(), allocs+1)
	}
}

func TestRendererToggle(t *testing.T) {
	f := newFixture()
	r := f.renderer(t)

	if !r.Overlays() {
		t.Fatal("overlays off by default")
	}
	if err := r.Toggle(); err != nil {
		t.Fatal(err)
	}
	if r.Overlays() {
		t.Error("overlays still on after Toggle")
	}
	if f.menu.forced.Load() != 1 {
		t.Errorf("menu forced refreshes = %d, want 1", f.menu.forced.Load())
	}
	if last := r.Stats().Last; last.Dots != 0 || last.Handles != 0 || last.Mirrors != 0 {
		t.Errorf("extras drawn with overlays off: %+v", last)
	}
}

func TestRendererClosed(t *testing.T) {
	f := newFixture()
	r := f.renderer(t)

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := r.Update(false); !errors.Is(err, ErrClosed) {
		t.Errorf("Update after Close err = %v, want ErrClosed", err)
	}
	if err := r.Toggle(); !errors.Is(err, ErrClosed) {
		t.Errorf("Toggle after Close err = %v, want ErrClosed", err)
	}
	if !r.Overlays() {
		t.Error("failed Toggle changed overlay visibility")
	}
	if f.menu.forced.Load() != 0 {
		t.Errorf("failed Toggle refreshed the menu %d times", f.menu.forced.Load())
	}
}

func TestRendererNewerRequestOvertakesOlder(t *testing.T) {
	f := newFixture()
	dec := decoderFunc(func(ctx context.Context, doc string) (image.Image, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return solidRaster(ctx, doc)
	})
	r := f.renderer(t, WithCompiler(&fakeCompiler{}), WithDecoder(dec))

	held := make(chan struct{})
	resume := make(chan struct{})
	r.begun = func(gen uint64) {
		if gen == 1 {
			close(held)
			<-resume
		}
	}

	older := make(chan error, 1)
	go func() {
		_, err := r.Update(false)
		older <- err
	}()
	<-held

	// The newer request runs to completion while the older one is parked
	// right after registering.
	g2, err := r.Update(false)
	if err != nil {
		t.Fatal(err)
	}
	close(resume)
	if err := <-older; err != nil {
		t.Fatal(err)
	}
	r.Wait()

	st := r.Stats()
	if st.Last.Generation != g2 {
		t.Errorf("drawn generation = %d, want newest %d", st.Last.Generation, g2)
	}
	if st.Frames != 1 || st.Stale != 1 {
		t.Errorf("stats = %+v, want 1 frame and 1 stale", st)
	}
	if st.Last.Rasters != 1 {
		t.Errorf("newest frame drawn without raster: %+v", st.Last)
	}
}

func TestRendererConcurrentUpdateAndClose(t *testing.T) {
	f := newFixture()
	r := f.renderer(t, WithCompiler(&fakeCompiler{}), WithDecoder(decoderFunc(solidRaster)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, err := r.Update(false); err != nil {
					if !errors.Is(err, ErrClosed) {
						t.Errorf("Update: %v", err)
					}
					return
				}
			}
		}()
	}
	for r.gen.Load() < 64 {
		runtime.Gosched()
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	wg.Wait()

	frames := r.Stats().Frames
	r.Wait()
	if got := r.Stats().Frames; got != frames {
		t.Errorf("frames drawn after Close: %d, then %d", frames, got)
	}
}

func TestRendererDrawOrder(t *testing.T) {
	f := newFixture()
	f.drawing.d.Layer = []Segment{{Vertices: []Vertex{{X: 15, Y: 15}, {X: 45, Y: 15}}, Type: CastLine}}
	f.drawing.d.Open = []Vertex{{X: 60, Y: 60}, {X: 90, Y: 60}}
	f.drawing.d.Style.Mirror = MirrorBoth
	f.cursor.c = Cursor{
		Pos:         Pt(90, 60),
		Operation:   CastLine,
		Translation: &Translation{From: Pt(15, 15), To: Pt(30, 30), Multi: true},
	}
	r := f.renderer(t, WithCompiler(&fakeCompiler{}))

	r.Draw(image.NewRGBA(image.Rect(0, 0, 300, 300)))
	rec := f.rec.FinishRecording()

	th := DefaultTheme
	name := func(c color.NRGBA) string {
		switch c {
		case th.Background:
			return "background"
		case th.FHigh:
			return "f_high"
		case th.FMed:
			return "f_med"
		case th.FLow:
			return "f_low"
		case th.BMed:
			return "b_med"
		case th.BLow:
			return "b_low"
		case th.BInv:
			return "b_inv"
		}
		return HexString(c)
	}
	var got []string
	for _, cmd := range rec.Commands() {
		switch c := cmd.(type) {
		case recording.ClearCommand:
			got = append(got, "clear")
		case recording.DrawImageCommand:
			got = append(got, "raster")
		case recording.FillPathCommand:
			got = append(got, "fill "+name(c.Color))
		case recording.StrokePathCommand:
			label := "stroke " + name(c.Color)
			if len(c.Dash) > 0 {
				label += fmt.Sprintf(" dash %v", c.Dash)
			}
			got = append(got, label)
		}
	}

	handle := []string{"fill f_high", "stroke f_high", "fill f_low", "fill f_high"}
	want := []string{
		"clear",
		"stroke b_low", "stroke b_low", // mirror
		"stroke b_low", "stroke b_low", // rulers
		"fill b_low", "fill b_med", // grid
		"raster",
		"fill f_med", "fill f_med", // open vertices
	}
	want = append(want, handle...)
	want = append(want, handle...)
	want = append(want,
		"stroke b_inv dash [5 10]",
		"stroke background", "stroke f_med", // cursor
		"stroke f_med dash [5 15]",
	)

	if len(got) != len(want) {
		t.Fatalf("commands:\n got %q\nwant %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %q, want %q", i, got[i], want[i])
		}
	}

	// Mirror guides run through the midpoint, rulers through the drag target.
	mirror := rec.Commands()[1].(recording.StrokePathCommand)
	ruler := rec.Commands()[3].(recording.StrokePathCommand)
	if minX, _, _, _ := rec.Resources().GetPath(mirror.Path).Bounds(); minX != 300 {
		t.Errorf("first guide x = %v, want mirror at 300", minX)
	}
	if minX, _, _, _ := rec.Resources().GetPath(ruler.Path).Bounds(); minX != 60 {
		t.Errorf("first ruler x = %v, want 60", minX)
	}
}
