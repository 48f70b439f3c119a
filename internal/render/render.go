// Package render turns one glyph of a face into a planned MSDF raster.
//
// Both the synchronous path and the background worker go through Glyph, so
// a glyph rendered on either side produces the same plan and the same bytes.
package render

import (
	"github.com/go-text/typesetting/font"

	"github.com/gogpu/glyphatlas/face"
	"github.com/gogpu/glyphatlas/geometry"
)

// Rasterizer produces an RGB MSDF raster for an outline. Implementations
// must be safe for concurrent use and must return exactly
// plan.SDFWidth*plan.SDFHeight*3 bytes, rows bottom-up.
type Rasterizer interface {
	Rasterize(outline font.GlyphOutline, plan geometry.Plan) []byte
}

// Raster is a rendered glyph ready to be copied into an atlas.
type Raster struct {
	Plan   geometry.Plan
	Pixels []byte
}

// Width returns the raster width in texels.
func (r Raster) Width() uint32 { return r.Plan.SDFWidth }

// Height returns the raster height in texels.
func (r Raster) Height() uint32 { return r.Plan.SDFHeight }

// Glyph plans and rasterizes glyph gid of f for an atlas of the given size.
// It reports false when the glyph has no renderable shape.
func Glyph(f *face.Face, gid uint16, atlasWidth, atlasHeight uint32, r Rasterizer) (Raster, bool) {
	g, ok := f.Glyph(gid)
	if !ok {
		return Raster{}, false
	}
	plan, ok := geometry.Compute(g.BBox, f.UnitsPerEm(), f.Params(), atlasWidth, atlasHeight)
	if !ok || plan.SDFWidth == 0 || plan.SDFHeight == 0 {
		return Raster{}, false
	}
	return Raster{Plan: plan, Pixels: r.Rasterize(g.Outline, plan)}, true
}
