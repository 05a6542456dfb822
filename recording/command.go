package recording

import (
	"image"
	"image/color"

	"github.com/gogpu/guide/surface"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdClear      CommandType = iota // Replace every pixel with a colour
	CmdFillPath                      // Fill a path
	CmdStrokePath                    // Stroke a path
	CmdDrawImage                     // Composite an image
)

var commandTypeNames = [...]string{
	CmdClear:      "Clear",
	CmdFillPath:   "FillPath",
	CmdStrokePath: "StrokePath",
	CmdDrawImage:  "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// PathRef is a reference to a path in the resource pool.
type PathRef uint32

// ImageRef is a reference to an image in the resource pool.
type ImageRef uint32

// ClearCommand replaces the whole surface with Color.
type ClearCommand struct {
	Color color.NRGBA
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// FillPathCommand fills a pooled path.
type FillPathCommand struct {
	Path  PathRef
	Color color.NRGBA
	Rule  surface.FillRule
}

// Type implements Command.
func (FillPathCommand) Type() CommandType { return CmdFillPath }

// Style rebuilds the fill style the command was recorded with.
func (c FillPathCommand) Style() surface.FillStyle {
	return surface.FillStyle{Color: c.Color, Rule: c.Rule}
}

// StrokePathCommand strokes a pooled path.
type StrokePathCommand struct {
	Path       PathRef
	Color      color.NRGBA
	Width      float64
	Cap        surface.LineCap
	Join       surface.LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// Type implements Command.
func (StrokePathCommand) Type() CommandType { return CmdStrokePath }

// Style rebuilds the stroke style the command was recorded with.
func (c StrokePathCommand) Style() surface.StrokeStyle {
	return surface.StrokeStyle{
		Color:       c.Color,
		Width:       c.Width,
		Cap:         c.Cap,
		Join:        c.Join,
		MiterLimit:  c.MiterLimit,
		DashPattern: c.Dash,
		DashOffset:  c.DashOffset,
	}
}

// DrawImageCommand composites a pooled image. Src is the source rectangle
// within the image and Dst the destination rectangle on the surface.
type DrawImageCommand struct {
	Image  ImageRef
	Src    image.Rectangle
	Dst    image.Rectangle
	Alpha  float64
	Filter surface.Filter
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

// nrgba converts any colour to non-premultiplied RGBA. A nil colour is
// transparent.
func nrgba(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
