// Package face owns font data and the faces parsed from it.
//
// A parsed face reads from the byte slice it was parsed from, so the two are
// kept together in one [Face] value and never handed out separately. Faces
// are registered in a [Store], which only ever appends: a face keeps its
// [Handle] for the lifetime of the store.
package face

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/glyphatlas/geometry"
)

// Face is a parsed font face together with the bytes it was parsed from and
// its rendering parameters.
//
// A Face is not safe for concurrent use. Use Clone to get an independent
// Face for another goroutine; clones share the immutable font data.
type Face struct {
	data   []byte
	ot     *font.Face
	index  int
	params geometry.Params

	// metadata from the sfnt tables
	name      string
	numGlyphs int
	upem      float32
}

// Parse parses face number index of a font file or collection (TTF, OTF,
// TTC or OTC). The data slice is copied and can be reused after this call.
func Parse(data []byte, index int, params geometry.Params) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	owned := make([]byte, len(data))
	copy(owned, data)

	faces, err := font.ParseTTC(bytes.NewReader(owned))
	if err != nil {
		return nil, fmt.Errorf("face: failed to parse font: %w", err)
	}
	if index < 0 || index >= len(faces) {
		return nil, fmt.Errorf("%w: %d of %d", ErrFaceIndex, index, len(faces))
	}

	coll, err := sfnt.ParseCollection(owned)
	if err != nil {
		return nil, fmt.Errorf("face: failed to parse font tables: %w", err)
	}
	sf, err := coll.Font(index)
	if err != nil {
		return nil, fmt.Errorf("face: failed to parse font tables: %w", err)
	}

	f := &Face{
		data:      owned,
		ot:        faces[index],
		index:     index,
		params:    params,
		numGlyphs: sf.NumGlyphs(),
		upem:      float32(faces[index].Upem()),
	}
	var buf sfnt.Buffer
	if name, err := sf.Name(&buf, sfnt.NameIDFamily); err == nil {
		f.name = name
	}
	return f, nil
}

// Clone returns a Face that can be used on another goroutine. The clone
// shares the font data and parsed tables, but has its own glyph caches and
// a copy of the current variation coordinates.
func (f *Face) Clone() *Face {
	c := *f
	c.ot = font.NewFace(f.ot.Font)
	if coords := f.ot.Coords(); len(coords) > 0 {
		c.ot.SetCoords(append(coords[:0:0], coords...))
	}
	return &c
}

// Shaping returns the underlying go-text face, for use by a text shaper.
// It may be configured (for example with SetCoords) on the goroutine that
// owns this Face.
func (f *Face) Shaping() *font.Face {
	return f.ot
}

// Data returns the font bytes this face was parsed from. The slice must not
// be modified.
func (f *Face) Data() []byte {
	return f.data
}

// Index returns the position of this face in its font file.
func (f *Face) Index() int {
	return f.index
}

// Params returns the rendering parameters of this face.
func (f *Face) Params() geometry.Params {
	return f.params
}

// Name returns the family name, or an empty string if the font has none.
func (f *Face) Name() string {
	return f.name
}

// NumGlyphs returns the number of glyphs in the face.
func (f *Face) NumGlyphs() int {
	return f.numGlyphs
}

// UnitsPerEm returns the size of the em square in font units.
func (f *Face) UnitsPerEm() float32 {
	return f.upem
}

// Glyph is the renderable shape of one glyph.
type Glyph struct {
	// Outline is the glyph outline in font units.
	Outline font.GlyphOutline

	// BBox is the outline's bounding box in font units.
	BBox geometry.BBox
}

// Glyph returns the outline and bounding box of a glyph. It reports false
// when the glyph has nothing to rasterize: no outline (a space), a bitmap
// or SVG glyph, or an empty bounding box.
func (f *Face) Glyph(gid uint16) (Glyph, bool) {
	outline, ok := f.ot.GlyphData(font.GID(gid)).(font.GlyphOutline)
	if !ok || len(outline.Segments) == 0 {
		return Glyph{}, false
	}
	ext, ok := f.ot.GlyphExtents(font.GID(gid))
	if !ok {
		return Glyph{}, false
	}

	// Extents are top-left based with a negative height.
	bbox := geometry.BBox{
		XMin: min(ext.XBearing, ext.XBearing+ext.Width),
		XMax: max(ext.XBearing, ext.XBearing+ext.Width),
		YMin: min(ext.YBearing, ext.YBearing+ext.Height),
		YMax: max(ext.YBearing, ext.YBearing+ext.Height),
	}
	if bbox.IsEmpty() {
		return Glyph{}, false
	}
	return Glyph{Outline: outline, BBox: bbox}, true
}
