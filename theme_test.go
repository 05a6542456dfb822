package guide

import (
	"errors"
	"sync"
	"testing"
)

func TestParseTheme(t *testing.T) {
	named := map[string]string{
		"background": "#222",
		"f_high":     "#fff",
		"f_med":      "#777",
		"f_low":      "#444",
		"b_med":      "#333",
		"b_low":      "#111",
		"b_inv":      "#72dec2",
	}
	th, err := ParseTheme(named)
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if th.FInv != th.FHigh || th.BHigh != th.FHigh {
		t.Errorf("optional colours should default to f_high: %+v", th)
	}
	if th.BInv != MustHex("#72dec2") {
		t.Errorf("b_inv = %v", th.BInv)
	}

	delete(named, "b_low")
	if _, err := ParseTheme(named); err == nil {
		t.Error("missing b_low should fail")
	}
	named["b_low"] = "nope"
	if _, err := ParseTheme(named); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad colour err = %v, want ErrInvalidColor", err)
	}
}

func TestThemeHolderSwap(t *testing.T) {
	var zero ThemeHolder
	if zero.Theme() != DefaultTheme {
		t.Error("zero holder should serve DefaultTheme")
	}

	h := NewThemeHolder(DefaultTheme)
	dark := DefaultTheme
	dark.Background = MustHex("#000")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); h.Set(dark) }()
		go func() { defer wg.Done(); _ = h.Theme() }()
	}
	wg.Wait()

	if h.Theme().Background != dark.Background {
		t.Error("Set did not take effect")
	}
}
