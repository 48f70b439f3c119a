package glyphatlas

import (
	"github.com/gogpu/glyphatlas/msdf"
	"github.com/gogpu/glyphatlas/packer"
)

// Option configures a Cache during creation.
//
// Example:
//
//	// Default MSDF generator and shelf packing
//	c := glyphatlas.New[gpuatlas.AtlasID, gpuatlas.Coords]()
//
//	// Fewer corners, padded shelves
//	gen := msdf.NewGenerator(msdf.Config{AngleThreshold: math.Pi / 6, EdgeThreshold: 1.001})
//	c := glyphatlas.New[gpuatlas.AtlasID, gpuatlas.Coords](
//	    glyphatlas.WithRasterizer(gen),
//	    glyphatlas.WithPacker(packer.ShelfFactory(1)),
//	)
type Option func(*options)

// options holds optional configuration for Cache creation.
type options struct {
	rasterizer Rasterizer
	packer     packer.Factory
}

// defaultOptions returns the default cache options.
func defaultOptions() options {
	return options{
		rasterizer: msdf.DefaultGenerator(),
		packer:     packer.ShelfFactory(0),
	}
}

// WithRasterizer sets the rasterizer that turns glyph outlines into MSDF
// rasters. It is called from the background worker as well as from the
// caller's goroutine, so it must be safe for concurrent use.
// A nil rasterizer keeps the default msdf.Generator.
func WithRasterizer(r Rasterizer) Option {
	return func(o *options) {
		if r != nil {
			o.rasterizer = r
		}
	}
}

// WithPacker sets how rectangles are packed inside each atlas.
// A nil factory keeps the default unpadded shelf packer.
func WithPacker(f packer.Factory) Option {
	return func(o *options) {
		if f != nil {
			o.packer = f
		}
	}
}
