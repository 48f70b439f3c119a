// Package packer places rectangles inside a fixed-size 2-D area.
//
// A packer only accumulates placements: there is no way to free a rectangle
// or compact the area once it is placed.
package packer

// Packer places rectangles inside one atlas.
type Packer interface {
	// Pack finds room for a w x h rectangle and returns its top-left
	// corner. It reports false if the rectangle does not fit.
	Pack(w, h int) (x, y int, ok bool)
}

// Factory creates a packer for an atlas of the given dimensions.
type Factory func(width, height int) Packer

// ShelfFactory returns a Factory producing shelf packers with the given
// padding between rectangles.
func ShelfFactory(padding int) Factory {
	return func(width, height int) Packer {
		return NewShelf(width, height, padding)
	}
}

// Shelf packs rectangles into horizontal shelves.
//
// Rectangles are placed left to right on the first shelf that is tall
// enough. The last shelf may grow taller while there is room below it.
// When no shelf fits, a new one is opened under the last.
type Shelf struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

type shelf struct {
	y      int
	height int
	x      int // next free column
}

// NewShelf creates a shelf packer for a width x height area.
func NewShelf(width, height, padding int) *Shelf {
	return &Shelf{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// Pack implements Packer.
func (s *Shelf) Pack(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 || w > s.width || h > s.height {
		return -1, -1, false
	}
	paddedW := w + s.padding

	for i := range s.shelves {
		sh := &s.shelves[i]
		if sh.x+w > s.width {
			continue
		}
		if h > sh.height {
			last := i == len(s.shelves)-1
			if !last || sh.y+h > s.height {
				continue
			}
			sh.height = h
		}
		x, y = sh.x, sh.y
		sh.x += paddedW
		s.usedArea += w * h
		return x, y, true
	}

	newY := 0
	if n := len(s.shelves); n > 0 {
		last := s.shelves[n-1]
		newY = last.y + last.height + s.padding
	}
	if newY+h > s.height {
		return -1, -1, false
	}
	s.shelves = append(s.shelves, shelf{y: newY, height: h, x: paddedW})
	s.usedArea += w * h
	return 0, newY, true
}

// Utilization returns the fraction of the area covered by rectangles.
func (s *Shelf) Utilization() float64 {
	if s.width <= 0 || s.height <= 0 {
		return 0
	}
	return float64(s.usedArea) / float64(s.width*s.height)
}

// ShelfCount returns the number of shelves opened so far.
func (s *Shelf) ShelfCount() int {
	return len(s.shelves)
}
