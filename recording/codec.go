package recording

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/gogpu/guide/surface"
)

// Errors.
var (
	// ErrNilSurface is returned by Playback when given a nil surface.
	ErrNilSurface = errors.New("recording: nil surface")

	// ErrUnsupportedVersion is returned by Decode for frame logs written by
	// an incompatible encoder.
	ErrUnsupportedVersion = errors.New("recording: unsupported frame log version")
)

const wireVersion = 1

type wireRecording struct {
	Version  uint          `cbor:"1,keyasint"`
	Width    int           `cbor:"2,keyasint"`
	Height   int           `cbor:"3,keyasint"`
	Paths    []wirePath    `cbor:"4,keyasint,omitempty"`
	Commands []wireCommand `cbor:"5,keyasint,omitempty"`
}

type wirePath struct {
	Verbs  []byte    `cbor:"1,keyasint,omitempty"`
	Points []float64 `cbor:"2,keyasint,omitempty"`
}

type wireCommand struct {
	Type       CommandType `cbor:"1,keyasint"`
	Color      []byte      `cbor:"2,keyasint,omitempty"`
	Ref        uint32      `cbor:"3,keyasint,omitempty"`
	Rule       uint8       `cbor:"4,keyasint,omitempty"`
	Width      float64     `cbor:"5,keyasint,omitempty"`
	Cap        uint8       `cbor:"6,keyasint,omitempty"`
	Join       uint8       `cbor:"7,keyasint,omitempty"`
	MiterLimit float64     `cbor:"8,keyasint,omitempty"`
	Dash       []float64   `cbor:"9,keyasint,omitempty"`
	DashOffset float64     `cbor:"10,keyasint,omitempty"`
	Src        []int       `cbor:"11,keyasint,omitempty"`
	Dst        []int       `cbor:"12,keyasint,omitempty"`
	Alpha      float64     `cbor:"13,keyasint,omitempty"`
	Filter     uint8       `cbor:"14,keyasint,omitempty"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := cbor.DecOptions{
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	encMode, decMode = em, dm
}

// Encode writes r to w as a CBOR frame log. Image pixels are not written.
func Encode(w io.Writer, r *Recording) error {
	wr := wireRecording{
		Version:  wireVersion,
		Width:    r.width,
		Height:   r.height,
		Paths:    make([]wirePath, len(r.resources.paths)),
		Commands: make([]wireCommand, len(r.commands)),
	}
	for i, p := range r.resources.paths {
		if p == nil {
			continue
		}
		verbs := make([]byte, len(p.Verbs()))
		for j, v := range p.Verbs() {
			verbs[j] = byte(v)
		}
		wr.Paths[i] = wirePath{Verbs: verbs, Points: p.Points()}
	}
	for i, cmd := range r.commands {
		wc := wireCommand{Type: cmd.Type()}
		switch c := cmd.(type) {
		case ClearCommand:
			wc.Color = packColor(c.Color)
		case FillPathCommand:
			wc.Color = packColor(c.Color)
			wc.Ref = uint32(c.Path)
			wc.Rule = uint8(c.Rule)
		case StrokePathCommand:
			wc.Color = packColor(c.Color)
			wc.Ref = uint32(c.Path)
			wc.Width = c.Width
			wc.Cap = uint8(c.Cap)
			wc.Join = uint8(c.Join)
			wc.MiterLimit = c.MiterLimit
			wc.Dash = c.Dash
			wc.DashOffset = c.DashOffset
		case DrawImageCommand:
			wc.Ref = uint32(c.Image)
			wc.Src = packRect(c.Src)
			wc.Dst = packRect(c.Dst)
			wc.Alpha = c.Alpha
			wc.Filter = uint8(c.Filter)
		}
		wr.Commands[i] = wc
	}
	if err := encMode.NewEncoder(w).Encode(wr); err != nil {
		return fmt.Errorf("recording: encode: %w", err)
	}
	return nil
}

// Decode reads a frame log written by Encode. DrawImage commands in the
// result reference no image and are skipped by Playback.
func Decode(rd io.Reader) (*Recording, error) {
	var wr wireRecording
	if err := decMode.NewDecoder(rd).Decode(&wr); err != nil {
		return nil, fmt.Errorf("recording: decode: %w", err)
	}
	if wr.Version != wireVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, wr.Version)
	}

	rec := &Recording{
		width:     wr.Width,
		height:    wr.Height,
		commands:  make([]Command, 0, len(wr.Commands)),
		resources: NewResourcePool(),
	}
	for i, wp := range wr.Paths {
		verbs := make([]surface.Verb, len(wp.Verbs))
		for j, v := range wp.Verbs {
			verbs[j] = surface.Verb(v)
		}
		p, err := surface.FromVerbs(verbs, wp.Points)
		if err != nil {
			return nil, fmt.Errorf("recording: decode path %d: %w", i, err)
		}
		rec.resources.paths = append(rec.resources.paths, p)
	}
	for i, wc := range wr.Commands {
		switch wc.Type {
		case CmdClear:
			rec.commands = append(rec.commands, ClearCommand{Color: unpackColor(wc.Color)})
		case CmdFillPath:
			rec.commands = append(rec.commands, FillPathCommand{
				Path:  PathRef(wc.Ref),
				Color: unpackColor(wc.Color),
				Rule:  surface.FillRule(wc.Rule),
			})
		case CmdStrokePath:
			rec.commands = append(rec.commands, StrokePathCommand{
				Path:       PathRef(wc.Ref),
				Color:      unpackColor(wc.Color),
				Width:      wc.Width,
				Cap:        surface.LineCap(wc.Cap),
				Join:       surface.LineJoin(wc.Join),
				MiterLimit: wc.MiterLimit,
				Dash:       wc.Dash,
				DashOffset: wc.DashOffset,
			})
		case CmdDrawImage:
			rec.commands = append(rec.commands, DrawImageCommand{
				Image:  ImageRef(wc.Ref),
				Src:    unpackRect(wc.Src),
				Dst:    unpackRect(wc.Dst),
				Alpha:  wc.Alpha,
				Filter: surface.Filter(wc.Filter),
			})
		default:
			return nil, fmt.Errorf("recording: decode command %d: unknown type %d", i, wc.Type)
		}
	}
	return rec, nil
}

func packColor(c color.NRGBA) []byte {
	return []byte{c.R, c.G, c.B, c.A}
}

func unpackColor(b []byte) color.NRGBA {
	var c color.NRGBA
	if len(b) == 4 {
		c = color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
	}
	return c
}

func packRect(r image.Rectangle) []int {
	return []int{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y}
}

func unpackRect(v []int) image.Rectangle {
	if len(v) != 4 {
		return image.Rectangle{}
	}
	return image.Rect(v[0], v[1], v[2], v[3])
}
