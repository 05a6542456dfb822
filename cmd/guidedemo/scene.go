package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/guide"
	"github.com/gogpu/guide/surface"
)

// Scene is the YAML description of one frame.
type Scene struct {
	Scale    int               `yaml:"scale"`
	Zoom     bool              `yaml:"zoom"`
	Overlays *bool             `yaml:"overlays"`
	Theme    map[string]string `yaml:"theme"`
	Drawing  SceneDrawing      `yaml:"drawing"`
	Cursor   SceneCursor       `yaml:"cursor"`
}

// SceneDrawing is the drawing section of a scene.
type SceneDrawing struct {
	Size  []float64      `yaml:"size"`
	Style SceneStyle     `yaml:"style"`
	Crest bool           `yaml:"crest"`
	Layer []SceneSegment `yaml:"layer"`
	Open  [][]float64    `yaml:"open"`
}

// SceneStyle is the stroke style of the active layer.
type SceneStyle struct {
	Color     string    `yaml:"color"`
	Thickness float64   `yaml:"thickness"`
	Cap       string    `yaml:"cap"`
	Join      string    `yaml:"join"`
	Dash      []float64 `yaml:"dash"`
	Mirror    string    `yaml:"mirror"`
	Fill      bool      `yaml:"fill"`
}

// SceneSegment is one committed segment.
type SceneSegment struct {
	Type     string      `yaml:"type"`
	Vertices [][]float64 `yaml:"vertices"`
}

// SceneCursor is the pointer state.
type SceneCursor struct {
	Pos         []float64         `yaml:"pos"`
	Operation   string            `yaml:"operation"`
	Translation *SceneTranslation `yaml:"translation"`
}

// SceneTranslation is an in-progress drag.
type SceneTranslation struct {
	From  []float64 `yaml:"from"`
	To    []float64 `yaml:"to"`
	Copy  bool      `yaml:"copy"`
	Multi bool      `yaml:"multi"`
}

// LoadScene decodes a YAML scene. Unknown keys are rejected.
func LoadScene(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &s, nil
}

// ShowOverlays reports whether extras start visible. Defaults to true.
func (s *Scene) ShowOverlays() bool {
	return s.Overlays == nil || *s.Overlays
}

// BuildTheme returns the scene palette, or the default theme when none is
// given.
func (s *Scene) BuildTheme() (guide.Theme, error) {
	if len(s.Theme) == 0 {
		return guide.DefaultTheme, nil
	}
	return guide.ParseTheme(s.Theme)
}

// BuildDrawing converts the drawing section.
func (s *Scene) BuildDrawing() (guide.Drawing, error) {
	sd := s.Drawing
	d := guide.Drawing{
		Style: guide.DefaultStyle,
		Crest: sd.Crest,
		Size:  guide.BaseSize,
	}
	if sd.Size != nil {
		p, err := point(sd.Size)
		if err != nil {
			return d, fmt.Errorf("scene: drawing size: %w", err)
		}
		d.Size = guide.Sz(p.X, p.Y)
	}

	st := sd.Style
	if st.Color != "" {
		c, err := guide.Hex(st.Color)
		if err != nil {
			return d, fmt.Errorf("scene: style color: %w", err)
		}
		d.Style.Color = c
	}
	if st.Thickness > 0 {
		d.Style.Thickness = st.Thickness
	}
	if st.Cap != "" {
		d.Style.LineCap = surface.ParseLineCap(st.Cap)
	}
	if st.Join != "" {
		d.Style.LineJoin = surface.ParseLineJoin(st.Join)
	}
	d.Style.Dash = st.Dash
	d.Style.Fill = st.Fill
	m, err := guide.ParseMirrorStyle(st.Mirror)
	if err != nil {
		return d, fmt.Errorf("scene: %w", err)
	}
	d.Style.Mirror = m

	for i, seg := range sd.Layer {
		t := guide.CastType(seg.Type)
		if !t.Valid() {
			return d, fmt.Errorf("scene: segment %d: unknown type %q", i, seg.Type)
		}
		verts, err := points(seg.Vertices)
		if err != nil {
			return d, fmt.Errorf("scene: segment %d: %w", i, err)
		}
		d.Layer = append(d.Layer, guide.Segment{Vertices: verts, Type: t})
	}
	if d.Open, err = points(sd.Open); err != nil {
		return d, fmt.Errorf("scene: open: %w", err)
	}
	return d, nil
}

// BuildCursor converts the cursor section.
func (s *Scene) BuildCursor() (guide.Cursor, error) {
	sc := s.Cursor
	var c guide.Cursor
	if sc.Pos != nil {
		p, err := point(sc.Pos)
		if err != nil {
			return c, fmt.Errorf("scene: cursor pos: %w", err)
		}
		c.Pos = p
	}
	if sc.Operation != "" {
		c.Operation = guide.CastType(sc.Operation)
		if !c.Operation.Valid() {
			return c, fmt.Errorf("scene: unknown operation %q", sc.Operation)
		}
	}
	if tr := sc.Translation; tr != nil {
		from, err := point(tr.From)
		if err != nil {
			return c, fmt.Errorf("scene: translation from: %w", err)
		}
		to, err := point(tr.To)
		if err != nil {
			return c, fmt.Errorf("scene: translation to: %w", err)
		}
		c.Translation = &guide.Translation{From: from, To: to, Copy: tr.Copy, Multi: tr.Multi}
	}
	return c, nil
}

func point(v []float64) (guide.Point, error) {
	if len(v) != 2 {
		return guide.Point{}, fmt.Errorf("want [x, y], got %v", v)
	}
	return guide.Pt(v[0], v[1]), nil
}

func points(vs [][]float64) ([]guide.Vertex, error) {
	var out []guide.Vertex
	for _, v := range vs {
		p, err := point(v)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
