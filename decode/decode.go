// Package decode rasterizes SVG documents produced by the compile package.
//
// SVG is the reference guide.Decoder. It parses the document with oksvg and
// scan-converts it with rasterx into an *image.RGBA sized to the document's
// view box, optionally multiplied by Scale.
package decode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/gogpu/guide"
)

// ErrEmptyDocument is returned when the document is blank or has an empty
// view box.
var ErrEmptyDocument = errors.New("decode: empty document")

// SVG decodes SVG documents into images. The zero value renders at the
// document's own size.
type SVG struct {
	// Scale multiplies the output size. Zero means 1.
	Scale float64

	// Strict rejects documents with unsupported elements instead of
	// skipping them.
	Strict bool
}

var _ guide.Decoder = SVG{}

// Decode implements guide.Decoder. Cancellation is checked before parsing
// and before scan conversion; a cancelled decode returns ctx.Err() wrapped.
func (s SVG) Decode(ctx context.Context, doc string) (image.Image, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	mode := oksvg.WarnErrorMode
	if s.Strict {
		mode = oksvg.StrictErrorMode
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc), mode)
	if err != nil {
		return nil, fmt.Errorf("decode: parse: %w", err)
	}

	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(icon.ViewBox.W * scale))
	h := int(math.Ceil(icon.ViewBox.H * scale))
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	guide.Logger().Debug("decode: rasterized", "width", w, "height", h)
	return img, nil
}
