package gpuatlas

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureDescriptor describes the GPU texture backing one atlas.
type TextureDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the texture dimensions.
	Size gputypes.Extent3D

	// MipLevelCount is the number of mip levels. MSDF atlases use 1.
	MipLevelCount uint32

	// SampleCount is the number of samples per pixel.
	SampleCount uint32

	// Dimension is the texture dimension.
	Dimension gputypes.TextureDimension

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Usage specifies how the texture will be used.
	Usage gputypes.TextureUsage
}

// TextureDescriptor returns the descriptor for the texture of atlas id.
// Distance values are linear, so the format is RGBA8Unorm, not sRGB.
func (m *Manager) TextureDescriptor(id AtlasID) TextureDescriptor {
	return TextureDescriptor{
		Label: fmt.Sprintf("%s_atlas_%d", m.config.Label, id),
		Size: gputypes.Extent3D{
			Width:              m.config.Width,
			Height:             m.config.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// BytesPerRow returns the row pitch of the data returned by Atlas.RGBA.
func (m *Manager) BytesPerRow() uint32 {
	return m.config.Width * 4
}
