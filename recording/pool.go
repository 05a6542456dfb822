package recording

import (
	"image"

	"github.com/gogpu/guide/surface"
)

// ResourcePool stores resources referenced by recording commands.
// Each AddPath clones its argument, so a recording never observes later
// edits to a path the caller reuses.
//
// ResourcePool is not safe for concurrent use.
type ResourcePool struct {
	paths  []*surface.Path
	images []image.Image
}

// NewResourcePool creates an empty resource pool with pre-allocated capacity.
func NewResourcePool() *ResourcePool {
	return &ResourcePool{
		paths:  make([]*surface.Path, 0, 64),
		images: make([]image.Image, 0, 2),
	}
}

// AddPath adds a clone of path to the pool and returns its reference.
func (p *ResourcePool) AddPath(path *surface.Path) PathRef {
	var stored *surface.Path
	if path != nil {
		stored = path.Clone()
	}
	p.paths = append(p.paths, stored)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return PathRef(uint32(len(p.paths) - 1))
}

// GetPath returns the path for the given reference, or nil.
func (p *ResourcePool) GetPath(ref PathRef) *surface.Path {
	if int(ref) >= len(p.paths) {
		return nil
	}
	return p.paths[ref]
}

// AddImage adds an image to the pool and returns its reference.
// Images are stored by reference; callers must not mutate them afterwards.
func (p *ResourcePool) AddImage(img image.Image) ImageRef {
	p.images = append(p.images, img)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	return ImageRef(uint32(len(p.images) - 1))
}

// GetImage returns the image for the given reference, or nil.
func (p *ResourcePool) GetImage(ref ImageRef) image.Image {
	if int(ref) >= len(p.images) {
		return nil
	}
	return p.images[ref]
}

// ImageCount returns the number of images in the pool.
func (p *ResourcePool) ImageCount() int {
	return len(p.images)
}
