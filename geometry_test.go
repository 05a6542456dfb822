package guide

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{3 - 1, 5},
		{50 - 1, 49},
		{200 - 1, 100},
		{5, 5},
		{100, 100},
		{-40, 5},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, 5, 100); got != tt.want {
			t.Errorf("Clamp(%v, 5, 100) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestSizeOffset(t *testing.T) {
	got := SizeOffset(Sz(300, 300), Sz(300, 285))
	if got != Sz(0, 15) {
		t.Errorf("SizeOffset = %v, want 0x15", got)
	}
	if !SizeOffset(Sz(600, 600), Sz(600, 600)).IsZero() {
		t.Error("offset of equal sizes should be zero")
	}
}

func TestPaddedSize(t *testing.T) {
	tests := []struct {
		in, want Size
	}{
		{Sz(300, 300), Sz(300, 300)},
		{Sz(301, 14), Sz(315, 15)},
		{Sz(0, -5), Sz(0, 0)},
		{Sz(0.5, 29.9), Sz(15, 30)},
	}
	for _, tt := range tests {
		if got := PaddedSize(tt.in); got != tt.want {
			t.Errorf("PaddedSize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSizeString(t *testing.T) {
	if s := Sz(300, 600).String(); s != "300x600" {
		t.Errorf("String() = %q, want 300x600", s)
	}
}
