// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the pixel surfaces the guide renderer draws onto.
//
// A Surface is a device-pixel rendering target independent of the code that
// drives it. The renderer never holds pen state: every Fill and Stroke call
// carries its complete style, so a primitive cannot observe a colour, width or
// dash pattern left behind by an earlier one.
//
// # Surface Types
//
//   - ImageSurface: CPU rendering into an *image.RGBA using rasterx
//     (anti-aliased fills, strokes with caps, joins and dash patterns)
//   - recording.Recorder (sub-package recording): captures commands instead
//     of pixels, used for inspection and frame logs
//
// # Registry
//
// Backends register a factory under a name and a priority:
//
//	surface.Register("image", 10, factory, nil)
//
//	s, err := surface.NewSurfaceByName("image", 640, 640)
//
// # Usage
//
//	s := surface.NewImageSurface(640, 640)
//	defer s.Close()
//
//	p := surface.NewPath()
//	p.Circle(320, 320, 9)
//	s.Fill(p, surface.FillStyle{Color: color.White})
//
//	img := s.Snapshot()
//
// # Paths from SVG data
//
// ParseSVGPath turns SVG path data ("M60,60 A180,180 0 0,1 240,240") into a
// Path through oksvg's path cursor, so compiled path descriptions can be
// stroked like any other path.
package surface
