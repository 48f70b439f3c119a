// Package glyphatlas caches glyphs as multi-channel signed distance fields
// packed into GPU texture atlases.
//
// # Overview
//
// A [Cache] turns a (face, glyph id) pair into a place in an atlas. The first
// request for a glyph rasterizes it into an MSDF, packs the raster into the
// first atlas with room and uploads it through a [Handler] supplied by the
// renderer. Later requests return the stored placement. Glyphs are never
// evicted and atlases only grow.
//
// # Quick Start
//
//	c := glyphatlas.New[gpuatlas.AtlasID, gpuatlas.Coords]()
//	defer c.Close()
//
//	h, err := c.AddFace(goregular.TTF, 0, geometry.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	atlases, _ := gpuatlas.New(gpuatlas.DefaultConfig())
//	p, ok, err := c.Glyph(h, gid, atlases)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if ok {
//	    // draw p.Coords from atlas p.Atlas
//	}
//
// # Background rendering
//
// Unless the package is built with the nobackground tag, rasterization runs
// on one worker goroutine. A glyph requested for the first time is then
// reported as not available yet; it shows up in a later call once the worker
// has rendered it. Atlas placement and handler calls always happen on the
// caller's goroutine, inside [Cache.Glyph]. [SetBackgroundRendering] switches
// newly requested glyphs between the two modes at run time, and
// [Cache.Flush] waits for the worker to catch up.
//
// # Failures
//
// A glyph without an outline (a space, a bitmap glyph) resolves to "no
// result" and is never rasterized again. A handler error fails the glyph for
// good; it is returned by the synchronous path and logged by the background
// path. Out-of-range face handles and glyph ids are programming errors and
// panic.
//
// # Coordinate System
//
// Rasters handed to [Handler.AddToAtlas] are 3 bytes per texel (RGB) with
// rows bottom-up: row 0 holds the lowest font-unit y. The render box is in
// em units relative to the glyph origin, y up.
package glyphatlas
