// Command guidedemo renders one guide frame from a YAML scene to PNG.
//
// Usage:
//
//	guidedemo -scene scene.yaml -output frame.png -log frame.cbor
//
// Without -scene a built-in scene is rendered. The optional -log writes the
// frame's draw commands as CBOR.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/guide"
	"github.com/gogpu/guide/compile"
	"github.com/gogpu/guide/decode"
	"github.com/gogpu/guide/recording"
	"github.com/gogpu/guide/surface"
)

const defaultScene = `
scale: 2
drawing:
  style:
    thickness: 10
    mirror: vertical
  layer:
    - type: line
      vertices: [[30, 30], [120, 30], [120, 120]]
    - type: arc_c
      vertices: [[120, 120], [150, 150]]
  open: [[180, 180], [210, 180]]
cursor:
  pos: [210, 180]
  operation: line
`

func main() {
	var (
		scenePath = flag.String("scene", "", "YAML scene file (default: built-in scene)")
		output    = flag.String("output", "guide.png", "output PNG file")
		frameLog  = flag.String("log", "", "optional CBOR frame log")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	guide.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	scene, err := readScene(*scenePath)
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	rec, err := render(scene)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	if *frameLog != "" {
		if err := writeFrameLog(*frameLog, rec); err != nil {
			log.Fatalf("Failed to write frame log: %v", err)
		}
	}
	if err := savePNG(*output, rec); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Frame saved to %s (%dx%d, %d commands)\n", *output, rec.Width(), rec.Height(), len(rec.Commands()))
}

func readScene(path string) (*Scene, error) {
	var r io.Reader = strings.NewReader(defaultScene)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return LoadScene(r)
}

type drawingProvider struct{ d guide.Drawing }

func (p drawingProvider) Drawing() guide.Drawing { return p.d }

type cursorProvider struct{ c guide.Cursor }

func (p cursorProvider) Cursor() guide.Cursor { return p.c }

// render draws one frame of the scene into a recording.
func render(s *Scene) (*recording.Recording, error) {
	d, err := s.BuildDrawing()
	if err != nil {
		return nil, err
	}
	cur, err := s.BuildCursor()
	if err != nil {
		return nil, err
	}
	theme, err := s.BuildTheme()
	if err != nil {
		return nil, err
	}

	drawing := drawingProvider{d: d}
	bounds := guide.NewStaticBounds(d.Size)
	rec := recording.NewRecorder(0, 0)

	scale := s.Scale
	if scale == 0 {
		scale = guide.DefaultScale
	}
	r, err := guide.NewRenderer(guide.Context{
		Drawing: drawing,
		Cursor:  cursorProvider{c: cur},
		Theme:   guide.NewThemeHolder(theme),
		Bounds:  bounds,
		Tool:    compile.Tool{Drawing: drawing},
	},
		guide.WithScale(scale),
		guide.WithSurface(rec),
		guide.WithCompiler(compile.Compiler{}),
		guide.WithDecoder(decode.SVG{Scale: float64(scale)}),
		guide.WithOverlays(s.ShowOverlays()),
	)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if s.Zoom {
		r.Canvas().ToggleZoom()
	}
	if err := r.Start(); err != nil {
		return nil, err
	}
	r.Wait()

	st := r.Stats()
	if st.DecodeErrors > 0 {
		guide.Logger().Warn("frame drawn without raster", "errors", st.DecodeErrors)
	}
	out := rec.FinishRecording()
	if st.Frames != 1 {
		return nil, fmt.Errorf("expected one frame, drew %d", st.Frames)
	}
	return out, nil
}

func writeFrameLog(path string, rec *recording.Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := recording.Encode(f, rec); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func savePNG(path string, rec *recording.Recording) error {
	dst := surface.NewImageSurface(rec.Width(), rec.Height())
	defer dst.Close()
	if err := rec.Playback(dst); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
