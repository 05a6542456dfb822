// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"
)

func imageFactory(opts Options) (Surface, error) {
	return NewImageSurface(opts.Width, opts.Height), nil
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register("test", 50, imageFactory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("temp", 10, imageFactory, nil)
	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("recording", 0, imageFactory, nil)
	r.Register("image", 10, imageFactory, nil)
	r.Register("alt", 10, imageFactory, nil)

	got := r.List()
	want := []string{"alt", "image", "recording"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestRegistryNewSurfaceSkipsUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("off", 100, imageFactory, func() bool { return false })
	r.Register("image", 10, imageFactory, nil)

	s, err := r.NewSurface(Options{Width: 30, Height: 15})
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	if s.Width() != 30 || s.Height() != 15 {
		t.Errorf("size = %dx%d, want 30x15", s.Width(), s.Height())
	}
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()

	if _, err := r.NewSurface(Options{Width: 1, Height: 1}); !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("empty registry err = %v, want ErrNoBackendAvailable", err)
	}

	_, err := r.NewSurfaceByName("missing", Options{})
	var nf *BackendNotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("err = %v, want BackendNotFoundError{missing}", err)
	}

	r.Register("off", 1, imageFactory, func() bool { return false })
	_, err = r.NewSurfaceByName("off", Options{})
	var ua *BackendUnavailableError
	if !errors.As(err, &ua) {
		t.Errorf("err = %v, want BackendUnavailableError", err)
	}

	boom := errors.New("boom")
	r.Register("broken", 5, func(Options) (Surface, error) { return nil, boom }, nil)
	if _, err := r.NewSurfaceByName("broken", Options{}); !errors.Is(err, boom) {
		t.Errorf("factory error = %v, want boom", err)
	}
}

func TestGlobalRegistryHasImage(t *testing.T) {
	s, err := NewSurfaceByName("image", 45, 45)
	if err != nil {
		t.Fatalf("NewSurfaceByName(image): %v", err)
	}
	defer s.Close()

	if _, ok := s.(*ImageSurface); !ok {
		t.Errorf("image backend returned %T", s)
	}
}
