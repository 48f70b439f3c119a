package main

import (
	"slices"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/glyphatlas"
)

// textRun is a range of runes with one direction. end is exclusive.
type textRun struct {
	start, end int
	dir        di.Direction
}

// splitRuns splits text into bidi runs in logical order.
func splitRuns(text string) []textRun {
	n := len([]rune(text))
	if n == 0 {
		return nil
	}

	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return []textRun{{0, n, di.DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []textRun{{0, n, di.DirectionLTR}}
	}

	runs := make([]textRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos() // inclusive
		dir := di.DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, textRun{start: start, end: end + 1, dir: dir})
	}
	// Order returns visual order; shaping wants logical order.
	slices.SortFunc(runs, func(a, b textRun) int { return a.start - b.start })
	return runs
}

// shapeText shapes text with HarfBuzz and returns the glyph ids it uses,
// each once, in order of first appearance.
func shapeText(f *font.Face, text string, size float64) []glyphatlas.GlyphID {
	runes := []rune(text)
	var hb shaping.HarfbuzzShaper

	seen := make(map[glyphatlas.GlyphID]bool)
	var ids []glyphatlas.GlyphID
	for _, r := range splitRuns(text) {
		out := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  r.start,
			RunEnd:    r.end,
			Direction: r.dir,
			Face:      f,
			Size:      fixed.Int26_6(size * 64),
			Script:    detectScript(runes[r.start:r.end]),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			id := glyphatlas.GlyphID(g.GlyphID)
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// detectScript returns the script of the first rune with a real script.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if s := language.LookupScript(r); s != language.Common {
			return s
		}
	}
	return language.Latin
}
