package glyphatlas

import (
	"context"
	"fmt"

	"github.com/gogpu/glyphatlas/face"
	"github.com/gogpu/glyphatlas/geometry"
	"github.com/gogpu/glyphatlas/internal/atlasspace"
	"github.com/gogpu/glyphatlas/internal/bgrender"
	"github.com/gogpu/glyphatlas/internal/render"
)

// Handle identifies a face registered with a Cache.
type Handle = face.Handle

// GlyphID is a glyph index within a face.
type GlyphID uint16

// Key identifies a cached glyph.
type Key struct {
	Face  Handle
	Glyph GlyphID
}

// Handler owns the atlases on the renderer side.
//
// A is the renderer's atlas handle and C whatever it needs later to draw a
// glyph from that atlas. Handler methods are only called from the goroutine
// calling Cache.Glyph.
type Handler[A, C any] interface {
	// NewAtlas creates a new, blank atlas.
	NewAtlas() (A, error)

	// AtlasSize returns the size shared by all atlases of this handler.
	// It is called often and should be cheap.
	AtlasSize() (width, height uint32)

	// AddToAtlas uploads a w x h RGB raster to (x, y) of atlas and returns
	// the coordinates needed to draw it. box is the quad to draw in em
	// units; the raster already includes the half-texel borders that box
	// accounts for.
	AddToAtlas(atlas A, box geometry.RenderBox, x, y, w, h uint32, pixels []byte) (C, error)
}

// Rasterizer produces MSDF rasters. See msdf.Generator for the default.
type Rasterizer = render.Rasterizer

// Placement is where a glyph lives.
type Placement[A, C any] struct {
	Atlas  A
	Coords C
}

type state uint8

const (
	statePending state = iota + 1
	statePresent
	stateFailed
)

type entry[A, C any] struct {
	state     state
	placement Placement[A, C]
}

// Stats reports cache activity.
type Stats struct {
	// Hits and Misses count Glyph calls that found or created an entry.
	Hits, Misses uint64

	// Rasterized counts rasters placed and uploaded.
	Rasterized uint64

	// Pending, Present and Failed count entries per state.
	Pending, Present, Failed int

	// Atlases is the number of atlases created.
	Atlases int
}

// Cache is a demand-populated glyph atlas cache.
//
// A Cache is not safe for concurrent use. It must be used from one
// goroutine, which is also the goroutine its Handler is called on.
type Cache[A, C any] struct {
	faces      face.Store
	entries    map[Key]*entry[A, C]
	space      *atlasspace.Space[A]
	rasterizer Rasterizer
	bg         *background

	hits, misses, rasterized uint64
	pending, present, failed int
}

// New creates an empty cache. Unless built with the nobackground tag, it
// starts the background worker; call Close to stop it.
func New[A, C any](opts ...Option) *Cache[A, C] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[A, C]{
		entries:    make(map[Key]*entry[A, C]),
		space:      atlasspace.New[A](o.packer),
		rasterizer: o.rasterizer,
		bg:         newBackground(o.rasterizer),
	}
}

// AddFace parses face number index of a font file or collection and
// registers it. Handles are assigned in order starting at zero.
func (c *Cache[A, C]) AddFace(data []byte, index int, params geometry.Params) (Handle, error) {
	f, err := face.Parse(data, index, params)
	if err != nil {
		return 0, err
	}
	h := c.faces.Add(f)
	c.bg.addFace(f)
	return h, nil
}

// Face returns the face registered as h, for use by a text shaper. It
// reports false when h is out of range.
func (c *Cache[A, C]) Face(h Handle) (*face.Face, bool) {
	return c.faces.Get(h)
}

// Glyph returns the placement of glyph gid of face fh, rasterizing and
// uploading it through h on first use.
//
// ok is false when the glyph has no shape, has failed before, or is still
// being rendered in the background. err is only set when h fails while the
// glyph is resolved synchronously; the glyph is then failed for good.
//
// Glyph panics if fh or gid is out of range.
func (c *Cache[A, C]) Glyph(fh Handle, gid GlyphID, h Handler[A, C]) (p Placement[A, C], ok bool, err error) {
	c.reconcile(h)

	key := Key{Face: fh, Glyph: gid}
	if e, found := c.entries[key]; found {
		c.hits++
		return e.placement, e.state == statePresent, nil
	}

	f, found := c.faces.Get(fh)
	if !found {
		panic(fmt.Sprintf("glyphatlas: face handle %d out of range (%d faces)", fh, c.faces.Len()))
	}
	if int(gid) >= f.NumGlyphs() {
		panic(fmt.Sprintf("glyphatlas: glyph %d out of range for face %d (%d glyphs)", gid, fh, f.NumGlyphs()))
	}
	c.misses++

	aw, ah := h.AtlasSize()
	if c.bg.available() {
		c.bg.render(bgrender.Job{Face: fh, Glyph: uint16(gid), AtlasWidth: aw, AtlasHeight: ah})
		c.entries[key] = &entry[A, C]{state: statePending}
		c.pending++
		return p, false, nil
	}

	raster, shaped := render.Glyph(f, uint16(gid), aw, ah, c.rasterizer)
	if !shaped {
		Logger().Warn("glyphatlas: glyph has no shape", "face", fh, "glyph", gid)
		c.entries[key] = &entry[A, C]{state: stateFailed}
		c.failed++
		return p, false, nil
	}
	placement, err := c.place(raster, h)
	if err != nil {
		c.entries[key] = &entry[A, C]{state: stateFailed}
		c.failed++
		return p, false, &GlyphError{Face: fh, Glyph: gid, Err: err}
	}
	c.entries[key] = &entry[A, C]{state: statePresent, placement: placement}
	c.present++
	return placement, true, nil
}

// reconcile settles every background result that is ready.
func (c *Cache[A, C]) reconcile(h Handler[A, C]) {
	for {
		res, ok := c.bg.poll()
		if !ok {
			return
		}
		c.settle(res, h)
	}
}

func (c *Cache[A, C]) settle(res bgrender.Result, h Handler[A, C]) {
	key := Key{Face: res.Face, Glyph: GlyphID(res.Glyph)}
	e, ok := c.entries[key]
	switch {
	case !ok:
		Logger().Warn("glyphatlas: discarding result for a glyph never requested", "face", key.Face, "glyph", key.Glyph)
		return
	case e.state != statePending:
		Logger().Warn("glyphatlas: discarding duplicate result", "face", key.Face, "glyph", key.Glyph)
		return
	}

	c.pending--
	if res.NoShape {
		Logger().Warn("glyphatlas: glyph has no shape", "face", key.Face, "glyph", key.Glyph)
		e.state = stateFailed
		c.failed++
		return
	}
	placement, err := c.place(res.Raster, h)
	if err != nil {
		Logger().Warn("glyphatlas: atlas handler failed", "face", key.Face, "glyph", key.Glyph, "err", err)
		e.state = stateFailed
		c.failed++
		return
	}
	e.state = statePresent
	e.placement = placement
	c.present++
}

// place packs a raster into an atlas and uploads it.
func (c *Cache[A, C]) place(r render.Raster, h Handler[A, C]) (Placement[A, C], error) {
	bins := c.space.Len()
	slot, err := c.space.Place(h, r.Width(), r.Height())
	if err != nil {
		return Placement[A, C]{}, err
	}
	if c.space.Len() > bins {
		Logger().Debug("glyphatlas: new atlas", "atlases", c.space.Len())
	}

	coords, err := h.AddToAtlas(slot.Atlas, r.Plan.Render, slot.X, slot.Y, r.Width(), r.Height(), r.Pixels)
	if err != nil {
		return Placement[A, C]{}, err
	}
	c.rasterized++
	return Placement[A, C]{Atlas: slot.Atlas, Coords: coords}, nil
}

// Flush waits until the background worker has rendered every glyph
// requested so far, or until ctx is done. The results are settled by the
// next call to Glyph. Without a background worker Flush returns immediately.
func (c *Cache[A, C]) Flush(ctx context.Context) error {
	select {
	case <-c.bg.barrier():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns a snapshot of cache activity.
func (c *Cache[A, C]) Stats() Stats {
	return Stats{
		Hits:       c.hits,
		Misses:     c.misses,
		Rasterized: c.rasterized,
		Pending:    c.pending,
		Present:    c.present,
		Failed:     c.failed,
		Atlases:    c.space.Len(),
	}
}

// Len returns the number of cached glyphs in any state.
func (c *Cache[A, C]) Len() int {
	return len(c.entries)
}

// AtlasCount returns the number of atlases created so far.
func (c *Cache[A, C]) AtlasCount() int {
	return c.space.Len()
}

// Close stops the background worker after it has finished the queued
// glyphs. Their results are still settled by later Glyph calls, and glyphs
// requested after Close are resolved synchronously.
func (c *Cache[A, C]) Close() {
	c.bg.close()
}
