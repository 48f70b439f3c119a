package msdf

import (
	"math"
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"

	"github.com/gogpu/glyphatlas/geometry"
)

func seg(op opentype.SegmentOp, pts ...float32) opentype.Segment {
	s := opentype.Segment{Op: op}
	for i := 0; i+1 < len(pts); i += 2 {
		s.Args[i/2] = opentype.SegmentPoint{X: pts[i], Y: pts[i+1]}
	}
	return s
}

// rect returns a closed counter-clockwise rectangle outline.
func rect(x0, y0, x1, y1 float32) []opentype.Segment {
	return []opentype.Segment{
		seg(opentype.SegmentOpMoveTo, x0, y0),
		seg(opentype.SegmentOpLineTo, x1, y0),
		seg(opentype.SegmentOpLineTo, x1, y1),
		seg(opentype.SegmentOpLineTo, x0, y1),
	}
}

// square returns a closed 100x100 square outline at the origin.
func square() font.GlyphOutline {
	return font.GlyphOutline{Segments: rect(0, 0, 100, 100)}
}

// plan16 plans a glyph at 16 texels per 100-unit em with a 4 texel border.
// Font unit u maps to texel (u + 12.5) * 0.16.
func plan16(t *testing.T, bbox geometry.BBox) geometry.Plan {
	t.Helper()
	plan, ok := geometry.Compute(bbox, 100,
		geometry.Params{BorderTexels: 4, TexelsPerEmX: 16, TexelsPerEmY: 16}, 256, 256)
	if !ok {
		t.Fatal("no plan")
	}
	return plan
}

func squarePlan(t *testing.T) geometry.Plan {
	return plan16(t, geometry.BBox{XMax: 100, YMax: 100})
}

type raster struct {
	pix []byte
	w   int
}

func (r raster) texel(x, y int) [3]byte {
	o := (y*r.w + x) * 3
	return [3]byte{r.pix[o], r.pix[o+1], r.pix[o+2]}
}

func (r raster) median(x, y int) byte {
	v := r.texel(x, y)
	return Median(v[0], v[1], v[2])
}

// sampleMedian bilinearly samples the channels at texel coordinates
// (x, y), as a GPU sampler would, and returns their median.
func (r raster) sampleMedian(x, y float64) float64 {
	x0, y0 := int(math.Floor(x-0.5)), int(math.Floor(y-0.5))
	fx, fy := x-0.5-float64(x0), y-0.5-float64(y0)
	var ch [3]float64
	for c := range ch {
		v00 := float64(r.texel(x0, y0)[c])
		v10 := float64(r.texel(x0+1, y0)[c])
		v01 := float64(r.texel(x0, y0+1)[c])
		v11 := float64(r.texel(x0+1, y0+1)[c])
		ch[c] = (v00*(1-fx)+v10*fx)*(1-fy) + (v01*(1-fx)+v11*fx)*fy
	}
	return median3(ch[0], ch[1], ch[2])
}

func TestFromOutline_ClosesContours(t *testing.T) {
	shape := FromOutline(square())
	if len(shape.Contours) != 1 {
		t.Fatalf("contours = %d, want 1", len(shape.Contours))
	}
	if shape.EdgeCount() != 4 {
		t.Errorf("edges = %d, want 4 (closing edge added)", shape.EdgeCount())
	}
	last := shape.Contours[0].Edges[3]
	if last.Kind != EdgeLinear || last.end() != (Point{0, 0}) {
		t.Errorf("closing edge = %+v", last)
	}
}

func TestFromOutline_KeepsCurves(t *testing.T) {
	outline := font.GlyphOutline{Segments: []opentype.Segment{
		seg(opentype.SegmentOpMoveTo, 0, 0),
		seg(opentype.SegmentOpQuadTo, 50, 100, 100, 0),
		seg(opentype.SegmentOpCubeTo, 70, -50, 30, -50, 0, 0),
	}}
	shape := FromOutline(outline)
	if shape.EdgeCount() != 2 {
		t.Fatalf("edges = %d, want 2", shape.EdgeCount())
	}
	q, c := shape.Contours[0].Edges[0], shape.Contours[0].Edges[1]
	if q.Kind != EdgeQuadratic || c.Kind != EdgeCubic {
		t.Fatalf("kinds = %v, %v", q.Kind, c.Kind)
	}
	if got := q.pointAt(0.5); got != (Point{50, 50}) {
		t.Errorf("quad midpoint = %+v, want {50 50}", got)
	}
	if c.start() != q.end() {
		t.Errorf("cubic starts at %+v, want %+v", c.start(), q.end())
	}
}

func TestColorEdges_SquareCorners(t *testing.T) {
	shape := FromOutline(square())
	ColorEdges(shape, DefaultConfig().AngleThreshold)

	edges := shape.Contours[0].Edges
	for i := range edges {
		next := edges[(i+1)%len(edges)]
		if edges[i].Color == next.Color {
			t.Errorf("edges %d and %d share color %v across a corner", i, (i+1)%len(edges), edges[i].Color)
		}
		if edges[i].Color == ColorWhite {
			t.Errorf("edge %d left white", i)
		}
	}
}

func TestColorEdges_SmoothContourIsWhite(t *testing.T) {
	// A circle-like contour made of quads has no corners.
	outline := font.GlyphOutline{Segments: []opentype.Segment{
		seg(opentype.SegmentOpMoveTo, 100, 0),
		seg(opentype.SegmentOpQuadTo, 100, 100, 0, 100),
		seg(opentype.SegmentOpQuadTo, -100, 100, -100, 0),
		seg(opentype.SegmentOpQuadTo, -100, -100, 0, -100),
		seg(opentype.SegmentOpQuadTo, 100, -100, 100, 0),
	}}
	shape := FromOutline(outline)
	ColorEdges(shape, DefaultConfig().AngleThreshold)
	for i, e := range shape.Contours[0].Edges {
		if e.Color != ColorWhite {
			t.Errorf("edge %d color = %v, want white", i, e.Color)
		}
	}
}

func TestColorEdges_Teardrop(t *testing.T) {
	// One cubic leaving and returning to the origin: a single corner.
	outline := font.GlyphOutline{Segments: []opentype.Segment{
		seg(opentype.SegmentOpMoveTo, 0, 0),
		seg(opentype.SegmentOpCubeTo, 150, -100, 150, 100, 0, 0),
	}}
	shape := FromOutline(outline)
	ColorEdges(shape, DefaultConfig().AngleThreshold)

	edges := shape.Contours[0].Edges
	if len(edges) != 3 {
		t.Fatalf("edges = %d, want the loop split in 3", len(edges))
	}
	want := []Color{ColorCyan, ColorWhite, ColorMagenta}
	for i, e := range edges {
		if e.Color != want[i] {
			t.Errorf("edge %d color = %v, want %v", i, e.Color, want[i])
		}
		next := edges[(i+1)%len(edges)]
		if d := e.end().sub(next.start()).length(); d > 1e-9 {
			t.Errorf("gap of %v between edges %d and %d", d, i, (i+1)%len(edges))
		}
	}
}

func TestRasterize_Square(t *testing.T) {
	plan := squarePlan(t)
	pix := DefaultGenerator().Rasterize(square(), plan)

	w, h := int(plan.SDFWidth), int(plan.SDFHeight)
	if len(pix) != w*h*3 {
		t.Fatalf("len = %d, want %d", len(pix), w*h*3)
	}

	r := raster{pix: pix, w: w}
	if v := r.median(w/2, h/2); v <= 128 {
		t.Errorf("center median = %d, want inside (> 128)", v)
	}
	if v := r.median(0, 0); v >= 128 {
		t.Errorf("corner median = %d, want outside (< 128)", v)
	}
	if v := r.median(w-1, h-1); v >= 128 {
		t.Errorf("far corner median = %d, want outside (< 128)", v)
	}
}

func TestRasterize_CornerStaysSharp(t *testing.T) {
	plan := squarePlan(t)
	r := raster{pix: DefaultGenerator().Rasterize(square(), plan), w: int(plan.SDFWidth)}

	// The corner (100, 100) sits at texel coordinate (18, 18), between the
	// centers of texels 17 and 18. Texel (18, 18) is 3.125 units out along
	// the bisector on both axes.
	//
	// A single-channel distance field stores the Euclidean distance there,
	// 4.42 units (105), which rounds the corner off. The channels here hold
	// the distance to the extended edges, 3.125 units (112).
	if got := r.median(18, 18); got < 111 || got > 113 {
		t.Errorf("median outside the corner = %d, want 112", got)
	}

	// Sampled exactly at the corner, the reconstructed distance is on the
	// outline. A single-channel field gives about 118 here.
	if got := r.sampleMedian(18, 18); got < 127 {
		t.Errorf("sampled median at the corner = %.2f, want >= 127", got)
	}
	// Along the bisector, inside stays inside and outside stays outside.
	for _, tt := range []struct {
		at     float64
		inside bool
	}{
		{16.5, true},
		{17.5, true},
		{18.5, false},
	} {
		if got := r.sampleMedian(tt.at, tt.at); (got > 127.5) != tt.inside {
			t.Errorf("sampled median at (%v, %v) = %.2f, inside = %v", tt.at, tt.at, got, tt.inside)
		}
	}
}

func TestRasterize_OverlappingContoursStayFilled(t *testing.T) {
	// Two overlapping squares. Just right of the first square's right edge
	// the nearest edges say "outside", but the second square covers it.
	outline := font.GlyphOutline{Segments: append(rect(0, 0, 100, 100), rect(50, 0, 150, 100)...)}
	plan := plan16(t, geometry.BBox{XMax: 150, YMax: 100})
	r := raster{pix: DefaultGenerator().Rasterize(outline, plan), w: int(plan.SDFWidth)}

	// Texel (18, 9) is centered at (103.125, 46.875) in font units.
	if got := r.median(18, 9); got <= 128 {
		t.Errorf("median at the hidden edge = %d, want inside (> 128)", got)
	}
	for x := 3; x < int(plan.SDFWidth)-3; x++ {
		if got := r.median(x, 10); got <= 128 {
			t.Errorf("median at (%d, 10) = %d, want inside", x, got)
		}
	}
}

func TestRasterize_ClockwiseOutline(t *testing.T) {
	cw := font.GlyphOutline{Segments: []opentype.Segment{
		seg(opentype.SegmentOpMoveTo, 0, 0),
		seg(opentype.SegmentOpLineTo, 0, 100),
		seg(opentype.SegmentOpLineTo, 100, 100),
		seg(opentype.SegmentOpLineTo, 100, 0),
	}}
	plan := squarePlan(t)
	gen := DefaultGenerator()
	a := gen.Rasterize(square(), plan)
	b := raster{pix: gen.Rasterize(cw, plan), w: int(plan.SDFWidth)}

	if v := b.median(10, 10); v <= 128 {
		t.Errorf("center median = %d, want inside (> 128)", v)
	}
	ra := raster{pix: a, w: int(plan.SDFWidth)}
	for y := 0; y < int(plan.SDFHeight); y++ {
		for x := 0; x < int(plan.SDFWidth); x++ {
			if ina, inb := ra.median(x, y) >= 128, b.median(x, y) >= 128; ina != inb {
				t.Fatalf("texel (%d, %d): inside = %v, counter-clockwise gives %v", x, y, inb, ina)
			}
		}
	}
}

func TestRasterize_Deterministic(t *testing.T) {
	plan := squarePlan(t)
	g := DefaultGenerator()
	a := g.Rasterize(square(), plan)
	b := g.Rasterize(square(), plan)
	if string(a) != string(b) {
		t.Error("rasterization is not deterministic")
	}
}

func TestRasterize_Empty(t *testing.T) {
	plan := squarePlan(t)
	pix := DefaultGenerator().Rasterize(font.GlyphOutline{}, plan)
	for i, v := range pix {
		if v != 0 {
			t.Fatalf("pixel byte %d = %d, want 0", i, v)
		}
	}
}

func TestClash(t *testing.T) {
	const threshold = 0.125
	tests := []struct {
		name string
		a, b []float64
		want bool
	}{
		{"equal", []float64{0.6, 0.6, 0.6}, []float64{0.6, 0.6, 0.6}, false},
		{"one channel", []float64{0.6, 0.6, 0.6}, []float64{0.2, 0.6, 0.6}, false},
		{"two channels", []float64{0.9, 0.9, 0.4}, []float64{0.4, 0.4, 0.45}, true},
		{"below threshold", []float64{0.6, 0.6, 0.6}, []float64{0.5, 0.5, 0.6}, false},
		{"neighbor flattened", []float64{0.9, 0.9, 0.1}, []float64{0.3, 0.3, 0.3}, false},
		{"closer to the edge", []float64{0.9, 0.9, 0.52}, []float64{0.4, 0.4, 0.3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clash(tt.a, tt.b, threshold); got != tt.want {
				t.Errorf("clash(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCorrectClashes(t *testing.T) {
	// Two texels interpolating to a false edge between them.
	field := []float64{
		0.9, 0.9, 0.3,
		0.3, 0.3, 0.55,
	}
	correctClashes(field, 2, 1, 0.125)
	for c := 0; c < 3; c++ {
		if field[c] != 0.9 {
			t.Fatalf("texel 0 = %v, want flattened to its median 0.9", field[:3])
		}
	}
	if field[3] != 0.3 || field[5] != 0.55 {
		t.Errorf("texel 1 = %v, want unchanged", field[3:])
	}
}

func TestMedian(t *testing.T) {
	tests := []struct{ r, g, b, want byte }{
		{1, 2, 3, 2},
		{3, 2, 1, 2},
		{2, 3, 1, 2},
		{200, 200, 10, 200},
		{0, 255, 128, 128},
	}
	for _, tt := range tests {
		if got := Median(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("Median(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	tests := []struct {
		name  string
		c     Config
		field string
	}{
		{"zero angle", Config{AngleThreshold: 0, EdgeThreshold: 1.001}, "AngleThreshold"},
		{"angle above pi", Config{AngleThreshold: 4, EdgeThreshold: 1.001}, "AngleThreshold"},
		{"edge below one", Config{AngleThreshold: 1, EdgeThreshold: 0.5}, "EdgeThreshold"},
		{"edge nan", Config{AngleThreshold: 1, EdgeThreshold: math.NaN()}, "EdgeThreshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			ce, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("field = %q, want %q", ce.Field, tt.field)
			}
			if g := NewGenerator(tt.c); g.Config() != DefaultConfig() {
				t.Error("invalid config should fall back to defaults")
			}
		})
	}
}
