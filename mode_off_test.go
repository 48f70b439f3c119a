//go:build nobackground

package glyphatlas

import "testing"

// synchronous is a no-op: without the background worker every glyph is
// resolved synchronously.
func synchronous(*testing.T) {}
