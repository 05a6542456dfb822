package guide

import (
	"fmt"
	"image/color"
	"sync/atomic"
)

// Theme is the palette every overlay colour is drawn from. The field names
// follow the Hundred Rabbits theme format: f_* are foreground emphasis levels,
// b_* are border/background emphasis levels and *_inv are inverse accents.
type Theme struct {
	Background color.NRGBA
	FHigh      color.NRGBA
	FMed       color.NRGBA
	FLow       color.NRGBA
	FInv       color.NRGBA
	BHigh      color.NRGBA
	BMed       color.NRGBA
	BLow       color.NRGBA
	BInv       color.NRGBA
}

// DefaultTheme is the light palette shipped with the editor.
var DefaultTheme = Theme{
	Background: MustHex("#eeeeee"),
	FHigh:      MustHex("#000000"),
	FMed:       MustHex("#999999"),
	FLow:       MustHex("#cccccc"),
	FInv:       MustHex("#000000"),
	BHigh:      MustHex("#000000"),
	BMed:       MustHex("#888888"),
	BLow:       MustHex("#aaaaaa"),
	BInv:       MustHex("#ffb545"),
}

// Colors returns the palette as a slice, in field order.
func (t Theme) Colors() []color.NRGBA {
	return []color.NRGBA{t.Background, t.FHigh, t.FMed, t.FLow, t.FInv, t.BHigh, t.BMed, t.BLow, t.BInv}
}

// Contains reports whether c is one of the palette colours.
func (t Theme) Contains(c color.NRGBA) bool {
	for _, p := range t.Colors() {
		if p == c {
			return true
		}
	}
	return false
}

// ParseTheme builds a theme from named hex colours ("background", "f_high",
// "f_med", "f_low", "f_inv", "b_high", "b_med", "b_low", "b_inv"). The seven
// colours the renderer draws with are required; f_inv defaults to f_high and
// b_high to f_high.
func ParseTheme(named map[string]string) (Theme, error) {
	var t Theme
	fields := []struct {
		key      string
		dst      *color.NRGBA
		optional bool
	}{
		{"background", &t.Background, false},
		{"f_high", &t.FHigh, false},
		{"f_med", &t.FMed, false},
		{"f_low", &t.FLow, false},
		{"f_inv", &t.FInv, true},
		{"b_high", &t.BHigh, true},
		{"b_med", &t.BMed, false},
		{"b_low", &t.BLow, false},
		{"b_inv", &t.BInv, false},
	}
	for _, f := range fields {
		s, ok := named[f.key]
		if !ok {
			if f.optional {
				continue
			}
			return Theme{}, fmt.Errorf("guide: theme: missing %s", f.key)
		}
		c, err := Hex(s)
		if err != nil {
			return Theme{}, fmt.Errorf("guide: theme: %s: %w", f.key, err)
		}
		*f.dst = c
	}
	if _, ok := named["f_inv"]; !ok {
		t.FInv = t.FHigh
	}
	if _, ok := named["b_high"]; !ok {
		t.BHigh = t.FHigh
	}
	return t, nil
}

// ThemeHolder is a ThemeProvider whose palette can be swapped at any time,
// including while a frame is being drawn. A draw pass reads the theme once,
// so a swap takes effect on the next frame.
type ThemeHolder struct {
	active atomic.Pointer[Theme]
}

// NewThemeHolder creates a holder with the given palette.
func NewThemeHolder(t Theme) *ThemeHolder {
	h := &ThemeHolder{}
	h.Set(t)
	return h
}

// Set replaces the active palette.
func (h *ThemeHolder) Set(t Theme) {
	h.active.Store(&t)
}

// Theme returns the active palette, or DefaultTheme if none was set.
func (h *ThemeHolder) Theme() Theme {
	if t := h.active.Load(); t != nil {
		return *t
	}
	return DefaultTheme
}
