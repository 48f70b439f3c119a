//go:build !nobackground

package glyphatlas

import (
	"sync/atomic"

	"github.com/gogpu/glyphatlas/face"
	"github.com/gogpu/glyphatlas/internal/bgrender"
)

var backgroundEnabled atomic.Bool

func init() {
	backgroundEnabled.Store(true)
}

// SetBackgroundRendering selects whether glyphs requested from now on are
// rasterized on the background worker (the default) or synchronously inside
// Cache.Glyph. It affects every Cache in the process. Glyphs already sent to
// the worker are still settled.
func SetBackgroundRendering(enabled bool) {
	backgroundEnabled.Store(enabled)
}

// BackgroundRendering reports whether background rendering is enabled.
func BackgroundRendering() bool {
	return backgroundEnabled.Load()
}

// background is the Cache side of the worker.
type background struct {
	actor  *bgrender.Actor
	closed bool
}

func newBackground(r Rasterizer) *background {
	return &background{actor: bgrender.Start(r, Logger)}
}

func (b *background) available() bool {
	return !b.closed && backgroundEnabled.Load()
}

// addFace mirrors a registration. The worker gets its own clone so the two
// goroutines never share a go-text face.
func (b *background) addFace(f *face.Face) {
	b.actor.AddFace(f.Clone())
}

func (b *background) render(j bgrender.Job) {
	b.actor.Render(j)
}

func (b *background) poll() (bgrender.Result, bool) {
	return b.actor.Poll()
}

func (b *background) barrier() <-chan struct{} {
	return b.actor.Barrier()
}

func (b *background) close() {
	if b.closed {
		return
	}
	b.closed = true
	b.actor.Close()
}
