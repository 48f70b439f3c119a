package face

import "errors"

// Sentinel errors for face package.
var (
	// ErrEmptyData is returned when the font data is empty.
	ErrEmptyData = errors.New("face: empty font data")

	// ErrFaceIndex is returned when the requested face does not exist in
	// the font file or collection.
	ErrFaceIndex = errors.New("face: face index out of range")
)
