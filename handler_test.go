package glyphatlas

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphatlas/geometry"
)

// upload is one recorded AddToAtlas call.
type upload struct {
	Atlas      int
	Box        geometry.RenderBox
	X, Y, W, H uint32
	Pixels     []byte
}

type coords struct {
	X, Y, W, H uint32
}

// stubHandler hands out integer atlas ids and records every call.
type stubHandler struct {
	width, height uint32
	newErr        error
	addErr        error

	newCalls int
	addCalls int
	uploads  []upload
}

func newStubHandler(w, h uint32) *stubHandler {
	return &stubHandler{width: w, height: h}
}

func (s *stubHandler) NewAtlas() (int, error) {
	s.newCalls++
	if s.newErr != nil {
		return 0, s.newErr
	}
	return s.newCalls - 1, nil
}

func (s *stubHandler) AtlasSize() (uint32, uint32) {
	return s.width, s.height
}

func (s *stubHandler) AddToAtlas(atlas int, box geometry.RenderBox, x, y, w, h uint32, pixels []byte) (coords, error) {
	s.addCalls++
	if s.addErr != nil {
		return coords{}, s.addErr
	}
	s.uploads = append(s.uploads, upload{
		Atlas:  atlas,
		Box:    box,
		X:      x,
		Y:      y,
		W:      w,
		H:      h,
		Pixels: append([]byte(nil), pixels...),
	})
	return coords{X: x, Y: y, W: w, H: h}, nil
}

func newTestCache(t *testing.T, opts ...Option) (*Cache[int, coords], Handle) {
	t.Helper()
	c := New[int, coords](opts...)
	t.Cleanup(c.Close)
	h, err := c.AddFace(goregular.TTF, 0, geometry.DefaultParams())
	if err != nil {
		t.Fatalf("AddFace: %v", err)
	}
	return c, h
}

func glyphOf(t *testing.T, c *Cache[int, coords], h Handle, r rune) GlyphID {
	t.Helper()
	f, ok := c.Face(h)
	if !ok {
		t.Fatalf("face %d not registered", h)
	}
	g, ok := f.Shaping().NominalGlyph(r)
	if !ok {
		t.Fatalf("no glyph for %q", r)
	}
	return GlyphID(g)
}
