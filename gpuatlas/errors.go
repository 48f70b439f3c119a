package gpuatlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for gpuatlas package.
var (
	// ErrAtlasFull is matched by AtlasFullError.
	ErrAtlasFull = errors.New("gpuatlas: atlas limit reached")

	// ErrAtlasNotFound is returned for an id the manager never issued.
	ErrAtlasNotFound = errors.New("gpuatlas: atlas not found")

	// ErrRegionOutOfBounds is returned when a region is outside atlas bounds.
	ErrRegionOutOfBounds = errors.New("gpuatlas: region is outside atlas bounds")

	// ErrPixelCount is returned when the pixel slice does not match the
	// region size.
	ErrPixelCount = errors.New("gpuatlas: pixel data does not match region size")
)

// AtlasFullError is returned by NewAtlas once MaxAtlases atlases exist.
type AtlasFullError struct {
	Max int
}

func (e *AtlasFullError) Error() string {
	return fmt.Sprintf("gpuatlas: atlas limit reached (%d atlases)", e.Max)
}

// Is reports whether target is ErrAtlasFull.
func (e *AtlasFullError) Is(target error) bool {
	return target == ErrAtlasFull
}
