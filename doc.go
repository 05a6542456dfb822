// Package guide renders the live view of a grid-constrained vector path
// editor.
//
// # Overview
//
// Each update produces one frame: the drawing is compiled to a path
// document, rasterized off the draw path, and stretched over a device-pixel
// buffer, with vector overlays drawn on top (grid dots, handles, open
// vertices, mirror guides, rulers, cursor, translation line and the preview
// of the pending operation).
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/guide"
//	    "github.com/gogpu/guide/compile"
//	    "github.com/gogpu/guide/decode"
//	)
//
//	r, err := guide.NewRenderer(guide.Context{
//	    Drawing: model,
//	    Cursor:  cursor,
//	    Theme:   guide.NewThemeHolder(guide.DefaultTheme),
//	    Bounds:  guide.NewStaticBounds(guide.BaseSize),
//	    Tool:    compile.Tool{Drawing: model},
//	},
//	    guide.WithCompiler(compile.Compiler{}),
//	    guide.WithDecoder(decode.SVG{}),
//	)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	r.Start()
//	// after every edit or pointer move:
//	r.Update(false)
//
// # Draw Order
//
// Later steps occlude earlier ones: clear, mirror guides, rulers, grid,
// raster, open vertices, handles, translation, cursor, preview.
//
// # Units
//
// Drawings, cursors and sizes are in logical units. The canvas multiplies
// every coordinate by its device pixel scale (2 by default). Marker radii
// and overlay stroke widths are device pixels.
//
// # Architecture
//
// The library is organized into:
//   - guide: Renderer, Canvas, overlays, theme and geometry
//   - surface: the pixel target interface, a rasterx-backed image surface
//     and the backend registry
//   - recording: a surface that records draw commands, for tests and
//     CBOR frame logs
//   - compile: the reference segment-to-SVG compiler
//   - decode: the reference SVG rasterizer
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package guide

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
