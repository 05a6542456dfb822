package recording

import "github.com/gogpu/guide/surface"

func init() {
	surface.Register("recording", 0, func(opts surface.Options) (surface.Surface, error) {
		return NewRecorder(opts.Width, opts.Height), nil
	}, nil)
}
