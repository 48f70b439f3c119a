// Package geometry maps glyph metrics in font units to MSDF raster texels.
//
// All arithmetic is done in float32 so that the raster dimensions, the
// font-unit to texel transform and the render box agree bit for bit between
// the synchronous and the background rendering paths.
//
// Given a glyph bounding box in font units, a face's units-per-em and the
// face's rendering parameters, [Compute] returns a [Plan]:
//
//	glyph   = bbox extent * texelsPerEm / unitsPerEm
//	sdf     = ceil(glyph + border)           (capped at the atlas size)
//	scale   = (sdf - border) / bbox extent
//	texel   = (fontUnit + translate) * scale
//	render  = bbox/unitsPerEm expanded by (sdf - glyph)/texelsPerEm/2
//
// The render box is what a renderer uses to size the textured quad. It
// includes exactly the padding baked into the raster, so the SDF border lines
// up with the quad edges.
package geometry

import "math"

// Params holds the per-face rendering parameters.
type Params struct {
	// BorderTexels is the padding around each glyph raster, in texels.
	// It is also the effective range of the distance field, so values
	// below 2 give poor results. When in doubt, use 4.
	BorderTexels float32

	// TexelsPerEmX and TexelsPerEmY set the raster density: how many texels
	// one em of the face occupies in the atlas. 64 is a good starting point;
	// thin faces need more.
	TexelsPerEmX float32
	TexelsPerEmY float32
}

// DefaultParams returns the parameters recommended for an unknown face.
func DefaultParams() Params {
	return Params{
		BorderTexels: 4,
		TexelsPerEmX: 64,
		TexelsPerEmY: 64,
	}
}

// Validate checks that the parameters can produce a raster.
func (p Params) Validate() error {
	if !(p.BorderTexels >= 0) || math.IsInf(float64(p.BorderTexels), 0) {
		return &ParamsError{Field: "BorderTexels", Reason: "must be finite and non-negative"}
	}
	if !(p.TexelsPerEmX > 0) || math.IsInf(float64(p.TexelsPerEmX), 0) {
		return &ParamsError{Field: "TexelsPerEmX", Reason: "must be finite and positive"}
	}
	if !(p.TexelsPerEmY > 0) || math.IsInf(float64(p.TexelsPerEmY), 0) {
		return &ParamsError{Field: "TexelsPerEmY", Reason: "must be finite and positive"}
	}
	return nil
}

// ParamsError reports an invalid rendering parameter.
type ParamsError struct {
	Field  string
	Reason string
}

func (e *ParamsError) Error() string {
	return "geometry: invalid params." + e.Field + ": " + e.Reason
}

// BBox is a glyph bounding box in font units.
type BBox struct {
	XMin, YMin float32
	XMax, YMax float32
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float32 { return b.XMax - b.XMin }

// Height returns the vertical extent of the box.
func (b BBox) Height() float32 { return b.YMax - b.YMin }

// IsEmpty reports whether the box encloses no area.
func (b BBox) IsEmpty() bool {
	return !(b.XMax > b.XMin) || !(b.YMax > b.YMin)
}

// Transform maps font units to raster texels: texel = (p + Translate) * Scale.
type Transform struct {
	ScaleX, ScaleY         float32
	TranslateX, TranslateY float32
}

// Apply maps a point in font units to raster texel coordinates.
func (t Transform) Apply(x, y float32) (float32, float32) {
	return (x + t.TranslateX) * t.ScaleX, (y + t.TranslateY) * t.ScaleY
}

// Invert maps raster texel coordinates back to font units.
func (t Transform) Invert(x, y float32) (float32, float32) {
	return x/t.ScaleX - t.TranslateX, y/t.ScaleY - t.TranslateY
}

// RenderBox is the quad a renderer draws for a glyph, in em units relative
// to the glyph origin.
type RenderBox struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Plan is everything needed to rasterize one glyph and place it.
type Plan struct {
	// GlyphWidth and GlyphHeight are the bbox extent in texels, unpadded.
	GlyphWidth, GlyphHeight float32

	// SDFWidth and SDFHeight are the raster dimensions in texels, padded
	// and capped at the atlas dimensions.
	SDFWidth, SDFHeight uint32

	// Transform maps font units into the raster.
	Transform Transform

	// Range is the distance from the outline, in texels, at which the
	// distance field saturates. It equals the border.
	Range float32

	// Render is the quad to draw, in em units.
	Render RenderBox
}

// Compute plans the raster for a glyph with the given bounding box.
// It reports false when the box is empty: the glyph has no renderable shape.
func Compute(bbox BBox, unitsPerEm float32, p Params, atlasWidth, atlasHeight uint32) (Plan, bool) {
	if bbox.IsEmpty() || !(unitsPerEm > 0) {
		return Plan{}, false
	}

	rawWidth := bbox.Width()
	rawHeight := bbox.Height()
	glyphWidth := rawWidth * p.TexelsPerEmX / unitsPerEm
	glyphHeight := rawHeight * p.TexelsPerEmY / unitsPerEm

	sdfWidth := ceil32(glyphWidth + p.BorderTexels)
	sdfHeight := ceil32(glyphHeight + p.BorderTexels)

	// Scale is derived from the uncapped size; capping only clips the raster.
	scaleX := (sdfWidth - p.BorderTexels) / rawWidth
	scaleY := (sdfHeight - p.BorderTexels) / rawHeight

	halfExtraWidth := (sdfWidth - glyphWidth) / p.TexelsPerEmX * 0.5
	halfExtraHeight := (sdfHeight - glyphHeight) / p.TexelsPerEmY * 0.5

	return Plan{
		GlyphWidth:  glyphWidth,
		GlyphHeight: glyphHeight,
		SDFWidth:    capTexels(sdfWidth, atlasWidth),
		SDFHeight:   capTexels(sdfHeight, atlasHeight),
		Transform: Transform{
			ScaleX:     scaleX,
			ScaleY:     scaleY,
			TranslateX: p.BorderTexels/(scaleX*2) - bbox.XMin,
			TranslateY: p.BorderTexels/(scaleY*2) - bbox.YMin,
		},
		Range: p.BorderTexels,
		Render: RenderBox{
			MinX: bbox.XMin/unitsPerEm - halfExtraWidth,
			MinY: bbox.YMin/unitsPerEm - halfExtraHeight,
			MaxX: bbox.XMax/unitsPerEm + halfExtraWidth,
			MaxY: bbox.YMax/unitsPerEm + halfExtraHeight,
		},
	}, true
}

func ceil32(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}

// capTexels converts n to a texel count no larger than limit. Sizes beyond
// the uint32 range saturate instead of wrapping.
func capTexels(n float32, limit uint32) uint32 {
	if n >= float32(limit) {
		return limit
	}
	return uint32(n)
}
