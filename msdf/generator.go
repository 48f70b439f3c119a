package msdf

import (
	"math"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/glyphatlas/geometry"
)

// Config holds MSDF generation parameters.
type Config struct {
	// AngleThreshold is the smallest turn, in radians, between two edges
	// that counts as a corner. Corners get differently colored edges on
	// each side.
	// Default: pi-3 (about 8 degrees)
	AngleThreshold float64

	// EdgeThreshold controls clash correction. Two neighboring texels whose
	// channels differ by more than EdgeThreshold texels of distance in two
	// channels clash, and the one farther from the outline is flattened to
	// its median.
	// Default: 1.001
	EdgeThreshold float64
}

// DefaultConfig returns the default MSDF configuration.
func DefaultConfig() Config {
	return Config{
		AngleThreshold: math.Pi - 3,
		EdgeThreshold:  1.001,
	}
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.AngleThreshold <= 0 || c.AngleThreshold > math.Pi {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	if !(c.EdgeThreshold >= 1) || math.IsInf(c.EdgeThreshold, 0) {
		return &ConfigError{Field: "EdgeThreshold", Reason: "must be finite and at least 1.0"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "msdf: invalid config." + e.Field + ": " + e.Reason
}

// Generator renders MSDF rasters. It holds no mutable state and is safe for
// concurrent use.
type Generator struct {
	config Config
}

// NewGenerator creates a generator. An invalid configuration is replaced by
// DefaultConfig.
func NewGenerator(config Config) *Generator {
	if config.Validate() != nil {
		config = DefaultConfig()
	}
	return &Generator{config: config}
}

// DefaultGenerator creates a generator with the default configuration.
func DefaultGenerator() *Generator {
	return NewGenerator(DefaultConfig())
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.config
}

// Rasterize renders the outline into a plan.SDFWidth x plan.SDFHeight RGB
// raster, mapping font units to texels with plan.Transform.
func (g *Generator) Rasterize(outline font.GlyphOutline, plan geometry.Plan) []byte {
	w, h := int(plan.SDFWidth), int(plan.SDFHeight)
	pix := make([]byte, w*h*3)
	if w == 0 || h == 0 {
		return pix
	}

	shape := FromOutline(outline)
	if shape.EdgeCount() == 0 {
		return pix
	}
	ColorEdges(shape, g.config.AngleThreshold)

	pxRange := float64(plan.Range)
	if pxRange <= 0 {
		pxRange = 1
	}
	field := distanceField(shape, plan.Transform, w, h, pxRange)
	correctClashes(field, w, h, g.config.EdgeThreshold/(2*pxRange))

	for i, v := range field {
		pix[i] = encode(v)
	}
	return pix
}

// windingSteps is the number of points per curve used for inside tests.
const windingSteps = 16

// distanceField returns the normalized channel values of every texel:
// 0.5 on the outline, larger inside, with pxRange texels of distance
// spanning half the unit interval. Values are not clamped.
func distanceField(shape *Shape, tr geometry.Transform, w, h int, pxRange float64) []float64 {
	polys := shape.flatten(windingSteps)
	// Edge distances are positive on the left; flip them when the outer
	// contours run clockwise so that inside is always positive.
	orientation := 1.0
	if signedArea(polys) < 0 {
		orientation = -1
	}
	// Distances are measured in font units and converted with the mean scale.
	texelsPerUnit := (float64(tr.ScaleX) + float64(tr.ScaleY)) / 2
	toValue := func(d float64) float64 {
		return 0.5 + orientation*d*texelsPerUnit/(2*pxRange)
	}

	field := make([]float64, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx, fy := tr.Invert(float32(x)+0.5, float32(y)+0.5)
			p := Point{X: float64(fx), Y: float64(fy)}

			channels, nearest := shape.distances(p)
			v := field[(y*w+x)*3:][:3]
			for c := range channels {
				v[c] = toValue(channels[c])
			}

			// Overlapping contours can put the median on the wrong side
			// of the outline; the winding number decides.
			inside := winding(polys, p) != 0
			if (median3(v[0], v[1], v[2]) > 0.5) != inside {
				d := math.Abs(nearest.Distance) * texelsPerUnit / (2 * pxRange)
				if !inside {
					d = -d
				}
				v[0], v[1], v[2] = 0.5+d, 0.5+d, 0.5+d
			}
		}
	}
	return field
}

// distances returns the per-channel pseudo-distances from p, left of the
// edge direction positive, and the true distance to the nearest edge.
func (s *Shape) distances(p Point) (channels [3]float64, nearest SignedDistance) {
	type candidate struct {
		edge *Edge
		sd   SignedDistance
		t    float64
	}
	var best [3]candidate
	for c := range best {
		best[c].sd = infiniteDistance()
	}
	nearest = infiniteDistance()

	for ci := range s.Contours {
		for ei := range s.Contours[ci].Edges {
			e := &s.Contours[ci].Edges[ei]
			sd, t := e.signedDistance(p)
			if sd.closerThan(nearest) {
				nearest = sd
			}
			for c, bit := range [3]Color{ColorRed, ColorGreen, ColorBlue} {
				if e.Color&bit != 0 && sd.closerThan(best[c].sd) {
					best[c] = candidate{edge: e, sd: sd, t: t}
				}
			}
		}
	}

	for c := range best {
		if best[c].edge == nil {
			channels[c] = nearest.Distance
			continue
		}
		channels[c] = best[c].edge.pseudoDistance(best[c].sd, best[c].t, p)
	}
	return channels, nearest
}

// correctClashes flattens texels whose channels disagree with a neighbor's
// by more than threshold in two channels. Such pairs interpolate to a false
// edge between them. Only the texel farther from the outline is flattened.
func correctClashes(field []float64, w, h int, threshold float64) {
	at := func(x, y int) []float64 {
		return field[(y*w+x)*3:][:3]
	}
	var clashes []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := at(x, y)
			if (x > 0 && clash(a, at(x-1, y), threshold)) ||
				(x < w-1 && clash(a, at(x+1, y), threshold)) ||
				(y > 0 && clash(a, at(x, y-1), threshold)) ||
				(y < h-1 && clash(a, at(x, y+1), threshold)) {
				clashes = append(clashes, y*w+x)
			}
		}
	}
	for _, i := range clashes {
		v := field[i*3:][:3]
		m := median3(v[0], v[1], v[2])
		v[0], v[1], v[2] = m, m, m
	}
}

// clash reports whether texel a should be flattened because of neighbor b.
func clash(a, b []float64, threshold float64) bool {
	a0, a1, a2 := a[0], a[1], a[2]
	b0, b1, b2 := b[0], b[1], b[2]
	// Order the channel pairs by decreasing difference.
	if math.Abs(b0-a0) < math.Abs(b1-a1) {
		a0, a1 = a1, a0
		b0, b1 = b1, b0
	}
	if math.Abs(b1-a1) < math.Abs(b2-a2) {
		a1, a2 = a2, a1
		b1, b2 = b2, b1
		if math.Abs(b0-a0) < math.Abs(b1-a1) {
			a0, a1 = a1, a0
			b0, b1 = b1, b0
		}
	}
	return math.Abs(b1-a1) >= threshold &&
		!(b0 == b1 && b0 == b2) && // b was already flattened
		math.Abs(a2-0.5) >= math.Abs(b2-0.5)
}

func median3(a, b, c float64) float64 {
	return max(min(a, b), min(max(a, b), c))
}

// encode maps a normalized channel value to a byte; 128 is the edge.
func encode(v float64) byte {
	return byte(math.Round(max(0, min(1, v)) * 255))
}

// Median returns the median of three channel values, the reconstructed
// distance of an MSDF texel.
func Median(r, g, b byte) byte {
	return max(min(r, g), min(max(r, g), b))
}
