package glyphatlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for glyphatlas package.
var (
	// ErrHandler wraps every error returned by an atlas handler during
	// synchronous resolution. The handler's own error stays reachable with
	// errors.Is and errors.As.
	ErrHandler = errors.New("glyphatlas: atlas handler failed")
)

// GlyphError reports a handler failure for one glyph.
type GlyphError struct {
	Face  Handle
	Glyph GlyphID
	Err   error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("%v for glyph %d of face %d: %v", ErrHandler, e.Glyph, e.Face, e.Err)
}

// Unwrap returns both ErrHandler and the handler's error.
func (e *GlyphError) Unwrap() []error {
	return []error{ErrHandler, e.Err}
}
