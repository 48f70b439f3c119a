// Package atlasspace keeps the ordered list of atlas bins and decides where
// each new raster goes.
//
// Bins are only ever appended. A placement tries every bin in creation order
// and opens a new bin only when none has room.
package atlasspace

import (
	"fmt"

	"github.com/gogpu/glyphatlas/packer"
)

// Allocator creates atlases. All atlases share one size.
type Allocator[A any] interface {
	NewAtlas() (A, error)
	AtlasSize() (width, height uint32)
}

// Slot is a placement inside an atlas.
type Slot[A any] struct {
	Atlas A
	X, Y  uint32
}

type bin[A any] struct {
	atlas  A
	packer packer.Packer
}

// Space is the set of bins. It is not safe for concurrent use.
type Space[A any] struct {
	newPacker packer.Factory
	bins      []bin[A]
}

// New creates an empty space. A nil factory selects shelf packers with no
// padding.
func New[A any](f packer.Factory) *Space[A] {
	if f == nil {
		f = packer.ShelfFactory(0)
	}
	return &Space[A]{newPacker: f}
}

// Place finds room for a w x h raster. When no bin fits it asks alloc for a
// new atlas; an allocation error is returned as is and no bin is added.
//
// A raster that does not fit into a fresh bin is a programming error: rasters
// are always capped at the atlas size.
func (s *Space[A]) Place(alloc Allocator[A], w, h uint32) (Slot[A], error) {
	for i := range s.bins {
		b := &s.bins[i]
		if x, y, ok := b.packer.Pack(int(w), int(h)); ok {
			return Slot[A]{Atlas: b.atlas, X: uint32(x), Y: uint32(y)}, nil
		}
	}

	atlas, err := alloc.NewAtlas()
	if err != nil {
		return Slot[A]{}, err
	}
	aw, ah := alloc.AtlasSize()
	b := bin[A]{atlas: atlas, packer: s.newPacker(int(aw), int(ah))}
	s.bins = append(s.bins, b)

	x, y, ok := b.packer.Pack(int(w), int(h))
	if !ok {
		panic(fmt.Sprintf("atlasspace: %dx%d raster does not fit an empty %dx%d atlas", w, h, aw, ah))
	}
	return Slot[A]{Atlas: atlas, X: uint32(x), Y: uint32(y)}, nil
}

// Len returns the number of bins.
func (s *Space[A]) Len() int {
	return len(s.bins)
}
