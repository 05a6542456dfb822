// Package recording captures draw passes as typed commands instead of pixels.
//
// A Recorder is a surface.Surface: the guide renderer draws into it exactly
// as it draws into an image surface, and every Clear, Fill, Stroke and
// DrawImage call becomes a command carrying its complete style. Nothing is
// inherited between commands, so a recording can be inspected one command at
// a time (which colours were used, how many dots the grid produced, whether a
// preview was drawn) or replayed onto any other surface.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(0, 0)
//	renderer, err := guide.NewRenderer(ctx, guide.WithSurface(rec))
//	if err != nil {
//		return err
//	}
//	renderer.Draw(nil)
//
//	r := rec.FinishRecording()
//	for _, cmd := range r.Commands() {
//		fmt.Println(cmd.Type())
//	}
//
// # Playback
//
//	dst := surface.NewImageSurface(r.Width(), r.Height())
//	if err := r.Playback(dst); err != nil {
//		return err
//	}
//
// # Frame Logs
//
// Encode writes a recording as CBOR and Decode reads it back. Paths, styles
// and image placements survive the round trip; image pixels do not, so a
// decoded DrawImage command only records where a raster was composited.
//
// # Registration
//
// Importing the package registers the "recording" backend with the surface
// registry at priority 0, below the "image" backend.
package recording
