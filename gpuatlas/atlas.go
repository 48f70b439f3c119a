package gpuatlas

import (
	"fmt"
	"image"

	"github.com/gogpu/glyphatlas/geometry"
)

// AtlasID identifies an atlas within a Manager.
type AtlasID int

// Atlas is a single MSDF texture atlas.
type Atlas struct {
	// Data is the RGB pixel data, 3 bytes per texel, row-major.
	Data []byte

	width, height uint32
	id            AtlasID
	glyphs        int
	usedArea      int
	dirty         bool
}

func newAtlas(id AtlasID, width, height uint32) *Atlas {
	return &Atlas{
		Data:   make([]byte, int(width)*int(height)*3),
		width:  width,
		height: height,
		id:     id,
	}
}

// ID returns the atlas id.
func (a *Atlas) ID() AtlasID { return a.id }

// Size returns the atlas dimensions.
func (a *Atlas) Size() (width, height uint32) { return a.width, a.height }

// GlyphCount returns the number of glyphs in this atlas.
func (a *Atlas) GlyphCount() int { return a.glyphs }

// IsDirty returns true if the atlas has been modified since last upload.
func (a *Atlas) IsDirty() bool { return a.dirty }

// Utilization returns the fraction of texels covered by glyphs.
func (a *Atlas) Utilization() float64 {
	return float64(a.usedArea) / float64(int(a.width)*int(a.height))
}

// copyRegion writes a w x h RGB raster at (x, y).
func (a *Atlas) copyRegion(x, y, w, h uint32, pixels []byte) {
	stride := int(a.width) * 3
	row := int(w) * 3
	for dy := 0; dy < int(h); dy++ {
		dst := (int(y)+dy)*stride + int(x)*3
		copy(a.Data[dst:dst+row], pixels[dy*row:(dy+1)*row])
	}
	a.glyphs++
	a.usedArea += int(w) * int(h)
	a.dirty = true
}

// RGBA returns the atlas as RGBA8 texel data with opaque alpha, the layout
// expected by a gputypes.TextureFormatRGBA8Unorm texture.
func (a *Atlas) RGBA() []byte {
	n := int(a.width) * int(a.height)
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4] = a.Data[i*3]
		out[i*4+1] = a.Data[i*3+1]
		out[i*4+2] = a.Data[i*3+2]
		out[i*4+3] = 0xFF
	}
	return out
}

// Image returns a copy of the atlas as an image, for debugging and PNG
// dumps. Rasters are stored bottom-up, so atlas row 0 becomes the bottom row
// of the image and glyphs appear upright.
func (a *Atlas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(a.width), int(a.height)))
	rgba := a.RGBA()
	row := int(a.width) * 4
	for y := 0; y < int(a.height); y++ {
		dst := (int(a.height) - 1 - y) * img.Stride
		copy(img.Pix[dst:dst+row], rgba[y*row:(y+1)*row])
	}
	return img
}

// Coords describes where a glyph is and how to draw it.
type Coords struct {
	// Atlas indicates which atlas this glyph is in.
	Atlas AtlasID

	// Pixel coordinates in atlas.
	X, Y, Width, Height uint32

	// UV coordinates [0, 1] for texture sampling. V0 is the raster row
	// holding Render.MinY.
	U0, V0, U1, V1 float32

	// Render is the quad to draw in em units, relative to the glyph origin
	// with y up.
	Render geometry.RenderBox
}

// String returns a string representation of the coordinates.
func (c Coords) String() string {
	return fmt.Sprintf("Coords(atlas %d, %d,%d %dx%d)", c.Atlas, c.X, c.Y, c.Width, c.Height)
}

// Manager creates atlases and copies glyph rasters into them. It
// implements glyphatlas.Handler[AtlasID, Coords].
//
// Manager is not safe for concurrent use; it is driven from the goroutine
// that owns the glyph cache.
type Manager struct {
	config  Config
	atlases []*Atlas
}

// New creates a new atlas manager.
func New(config Config) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Manager{
		config:  config,
		atlases: make([]*Atlas, 0, config.MaxAtlases),
	}, nil
}

// NewDefault creates a new atlas manager with default configuration.
func NewDefault() *Manager {
	m, _ := New(DefaultConfig())
	return m
}

// Config returns the manager configuration.
func (m *Manager) Config() Config {
	return m.config
}

// NewAtlas creates a new, blank atlas. It returns an *AtlasFullError once
// MaxAtlases atlases exist.
func (m *Manager) NewAtlas() (AtlasID, error) {
	if len(m.atlases) >= m.config.MaxAtlases {
		return 0, &AtlasFullError{Max: m.config.MaxAtlases}
	}
	id := AtlasID(len(m.atlases))
	m.atlases = append(m.atlases, newAtlas(id, m.config.Width, m.config.Height))
	return id, nil
}

// AtlasSize returns the size of every atlas.
func (m *Manager) AtlasSize() (width, height uint32) {
	return m.config.Width, m.config.Height
}

// AddToAtlas copies a w x h RGB raster to (x, y) of the atlas and marks it
// dirty.
func (m *Manager) AddToAtlas(id AtlasID, box geometry.RenderBox, x, y, w, h uint32, pixels []byte) (Coords, error) {
	a, ok := m.Atlas(id)
	if !ok {
		return Coords{}, fmt.Errorf("%w: %d", ErrAtlasNotFound, id)
	}
	if uint64(x)+uint64(w) > uint64(a.width) || uint64(y)+uint64(h) > uint64(a.height) {
		return Coords{}, fmt.Errorf("%w: %dx%d at (%d, %d) in %dx%d", ErrRegionOutOfBounds, w, h, x, y, a.width, a.height)
	}
	if uint64(len(pixels)) != uint64(w)*uint64(h)*3 {
		return Coords{}, fmt.Errorf("%w: got %d bytes for %dx%d", ErrPixelCount, len(pixels), w, h)
	}

	a.copyRegion(x, y, w, h, pixels)

	aw, ah := float32(a.width), float32(a.height)
	return Coords{
		Atlas:  id,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		U0:     float32(x) / aw,
		V0:     float32(y) / ah,
		U1:     float32(x+w) / aw,
		V1:     float32(y+h) / ah,
		Render: box,
	}, nil
}

// Atlas returns the atlas with the given id.
func (m *Manager) Atlas(id AtlasID) (*Atlas, bool) {
	if id < 0 || int(id) >= len(m.atlases) {
		return nil, false
	}
	return m.atlases[id], true
}

// AtlasCount returns the number of atlases.
func (m *Manager) AtlasCount() int {
	return len(m.atlases)
}

// DirtyAtlases returns the ids of atlases modified since their last
// MarkClean, in creation order.
func (m *Manager) DirtyAtlases() []AtlasID {
	var ids []AtlasID
	for _, a := range m.atlases {
		if a.dirty {
			ids = append(ids, a.id)
		}
	}
	return ids
}

// MarkClean marks an atlas as uploaded.
func (m *Manager) MarkClean(id AtlasID) {
	if a, ok := m.Atlas(id); ok {
		a.dirty = false
	}
}

// MarkAllClean marks every atlas as uploaded.
func (m *Manager) MarkAllClean() {
	for _, a := range m.atlases {
		a.dirty = false
	}
}
