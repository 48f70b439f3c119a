//go:build nobackground

package glyphatlas

import (
	"github.com/gogpu/glyphatlas/face"
	"github.com/gogpu/glyphatlas/internal/bgrender"
)

// background is compiled out: every glyph is resolved synchronously.
type background struct{}

func newBackground(Rasterizer) *background { return &background{} }

func (*background) available() bool               { return false }
func (*background) addFace(*face.Face)            {}
func (*background) render(bgrender.Job)           {}
func (*background) poll() (bgrender.Result, bool) { return bgrender.Result{}, false }
func (*background) close()                        {}

var flushed = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func (*background) barrier() <-chan struct{} { return flushed }

// SetBackgroundRendering has no effect: the package was built with the
// nobackground tag.
func SetBackgroundRendering(bool) {}

// BackgroundRendering reports false: the package was built with the
// nobackground tag.
func BackgroundRendering() bool { return false }
