package msdf

import (
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// Point is a 2D point in font units.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point      { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point      { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) mul(s float64) Point    { return Point{p.X * s, p.Y * s} }
func (p Point) dot(q Point) float64    { return p.X*q.X + p.Y*q.Y }
func (p Point) cross(q Point) float64  { return p.X*q.Y - p.Y*q.X }
func (p Point) lengthSquared() float64 { return p.X*p.X + p.Y*p.Y }
func (p Point) length() float64        { return math.Sqrt(p.lengthSquared()) }
func (p Point) lerp(q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

// normalized returns the unit vector along p, or the zero vector.
func (p Point) normalized() Point {
	l := p.length()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Color selects which channels an edge contributes to.
type Color uint8

const (
	ColorRed Color = 1 << iota
	ColorGreen
	ColorBlue

	ColorYellow  = ColorRed | ColorGreen
	ColorCyan    = ColorGreen | ColorBlue
	ColorMagenta = ColorRed | ColorBlue
	ColorWhite   = ColorRed | ColorGreen | ColorBlue
)

// EdgeKind is the geometric type of an edge.
type EdgeKind uint8

const (
	// EdgeLinear is a straight segment.
	EdgeLinear EdgeKind = iota

	// EdgeQuadratic is a quadratic Bezier curve.
	EdgeQuadratic

	// EdgeCubic is a cubic Bezier curve.
	EdgeCubic
)

// Edge is one outline segment.
type Edge struct {
	Kind EdgeKind

	// Points holds the start point, the control points and the end point.
	// Linear edges use two of them, quadratic three, cubic four.
	Points [4]Point

	// Color is the set of channels this edge contributes to.
	Color Color
}

func (e *Edge) start() Point { return e.Points[0] }
func (e *Edge) end() Point   { return e.Points[int(e.Kind)+1] }

// pointAt evaluates the edge at t in [0, 1].
func (e *Edge) pointAt(t float64) Point {
	p := &e.Points
	switch e.Kind {
	case EdgeQuadratic:
		return evaluateQuadratic(p[0], p[1], p[2], t)
	case EdgeCubic:
		return evaluateCubic(p[0], p[1], p[2], p[3], t)
	default:
		return p[0].lerp(p[1], t)
	}
}

// directionAt returns the tangent at t. Degenerate control points fall back
// to the chord so that endpoints always have a direction.
func (e *Edge) directionAt(t float64) Point {
	p := &e.Points
	switch e.Kind {
	case EdgeQuadratic:
		if d := quadraticDerivative(p[0], p[1], p[2], t); d.lengthSquared() != 0 {
			return d
		}
		return p[2].sub(p[0])
	case EdgeCubic:
		d := cubicDerivative(p[0], p[1], p[2], p[3], t)
		if d.lengthSquared() != 0 {
			return d
		}
		if t < 0.5 {
			d = p[2].sub(p[0])
		} else {
			d = p[3].sub(p[1])
		}
		if d.lengthSquared() != 0 {
			return d
		}
		return p[3].sub(p[0])
	default:
		return p[1].sub(p[0])
	}
}

// split cuts the edge at t into two edges of the same kind.
func (e *Edge) split(t float64) (Edge, Edge) {
	p := &e.Points
	a := Edge{Kind: e.Kind, Color: e.Color}
	b := a
	switch e.Kind {
	case EdgeQuadratic:
		q0, q1 := p[0].lerp(p[1], t), p[1].lerp(p[2], t)
		r := q0.lerp(q1, t)
		a.Points = [4]Point{p[0], q0, r}
		b.Points = [4]Point{r, q1, p[2]}
	case EdgeCubic:
		q0, q1, q2 := p[0].lerp(p[1], t), p[1].lerp(p[2], t), p[2].lerp(p[3], t)
		r0, r1 := q0.lerp(q1, t), q1.lerp(q2, t)
		s := r0.lerp(r1, t)
		a.Points = [4]Point{p[0], q0, r0, s}
		b.Points = [4]Point{s, r1, q2, p[3]}
	default:
		m := p[0].lerp(p[1], t)
		a.Points = [4]Point{p[0], m}
		b.Points = [4]Point{m, p[1]}
	}
	return a, b
}

// splitThirds cuts the edge into three edges of equal parameter length.
func (e *Edge) splitThirds() [3]Edge {
	first, rest := e.split(1.0 / 3)
	second, third := rest.split(0.5)
	return [3]Edge{first, second, third}
}

// Contour is a closed loop of edges.
type Contour struct {
	Edges []Edge
}

// Shape is a glyph outline prepared for distance evaluation.
type Shape struct {
	Contours []Contour
}

// EdgeCount returns the number of edges over all contours.
func (s *Shape) EdgeCount() int {
	n := 0
	for _, c := range s.Contours {
		n += len(c.Edges)
	}
	return n
}

// FromOutline converts a go-text outline into a shape. Open contours are
// closed with a line; degenerate segments are dropped.
func FromOutline(outline font.GlyphOutline) *Shape {
	b := shapeBuilder{shape: &Shape{}}
	for _, seg := range outline.Segments {
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			b.closeContour()
			b.start = toPoint(seg.Args[0])
			b.pos = b.start
		case opentype.SegmentOpLineTo:
			b.line(toPoint(seg.Args[0]))
		case opentype.SegmentOpQuadTo:
			b.add(Edge{Kind: EdgeQuadratic, Points: [4]Point{b.pos, toPoint(seg.Args[0]), toPoint(seg.Args[1])}})
		case opentype.SegmentOpCubeTo:
			b.add(Edge{Kind: EdgeCubic, Points: [4]Point{b.pos, toPoint(seg.Args[0]), toPoint(seg.Args[1]), toPoint(seg.Args[2])}})
		}
	}
	b.closeContour()
	return b.shape
}

func toPoint(p opentype.SegmentPoint) Point {
	return Point{X: float64(p.X), Y: float64(p.Y)}
}

type shapeBuilder struct {
	shape      *Shape
	current    Contour
	start, pos Point
}

func (b *shapeBuilder) line(to Point) {
	if to.sub(b.pos).lengthSquared() < 1e-12 {
		return
	}
	b.add(Edge{Kind: EdgeLinear, Points: [4]Point{b.pos, to}})
}

func (b *shapeBuilder) add(e Edge) {
	e.Color = ColorWhite
	to := e.end()
	if to.sub(b.pos).lengthSquared() < 1e-12 && e.directionAt(0).lengthSquared() < 1e-12 {
		return
	}
	b.current.Edges = append(b.current.Edges, e)
	b.pos = to
}

func (b *shapeBuilder) closeContour() {
	b.line(b.start)
	if len(b.current.Edges) > 0 {
		b.shape.Contours = append(b.shape.Contours, b.current)
	}
	b.current = Contour{}
}

// ColorEdges assigns channel colors so that every corner (a turn larger
// than angleThreshold radians) separates two edges of different colors.
// A contour with a single corner has its edges rotated to start at the
// corner, and is split when it has fewer than three edges.
func ColorEdges(s *Shape, angleThreshold float64) {
	cosThreshold := math.Cos(angleThreshold)
	for ci := range s.Contours {
		colorContour(&s.Contours[ci], cosThreshold)
	}
}

func colorContour(c *Contour, cosThreshold float64) {
	n := len(c.Edges)
	if n == 0 {
		return
	}

	var corners []int // corner at the start of edge i
	prev := c.Edges[n-1].directionAt(1)
	for i := range c.Edges {
		if isCorner(prev, c.Edges[i].directionAt(0), cosThreshold) {
			corners = append(corners, i)
		}
		prev = c.Edges[i].directionAt(1)
	}

	switch len(corners) {
	case 0:
		for i := range c.Edges {
			c.Edges[i].Color = ColorWhite
		}
	case 1:
		colorTeardrop(c, corners[0])
	default:
		colorSpans(c, corners)
	}
}

// colorSpans gives each run of edges between two corners its own color.
func colorSpans(c *Contour, corners []int) {
	n := len(c.Edges)
	cycle := [3]Color{ColorCyan, ColorMagenta, ColorYellow}
	spans := len(corners)
	for s := 0; s < spans; s++ {
		color := cycle[s%3]
		if s == spans-1 && color == cycle[0] {
			// The last span touches the first one as well.
			color = cycle[1]
		}
		from := corners[s]
		to := corners[(s+1)%spans]
		if to <= from {
			to += n
		}
		for i := from; i < to; i++ {
			c.Edges[i%n].Color = color
		}
	}
}

// colorTeardrop colors a contour with one corner: cyan leaving the corner,
// white in the middle, magenta arriving back at it.
func colorTeardrop(c *Contour, corner int) {
	n := len(c.Edges)
	edges := make([]Edge, 0, max(3, n))
	for i := 0; i < n; i++ {
		edges = append(edges, c.Edges[(corner+i)%n])
	}
	if len(edges) < 3 {
		split := make([]Edge, 0, 3*len(edges))
		for i := range edges {
			parts := edges[i].splitThirds()
			split = append(split, parts[:]...)
		}
		edges = split
	}

	colors := [3]Color{ColorCyan, ColorWhite, ColorMagenta}
	m := len(edges)
	for i := range edges {
		edges[i].Color = colors[int(3+2.875*float64(i)/float64(m-1)-1.4375+0.5)-2]
	}
	c.Edges = edges
}

func isCorner(a, b Point, cosThreshold float64) bool {
	la, lb := a.lengthSquared(), b.lengthSquared()
	if la == 0 || lb == 0 {
		return false
	}
	return a.dot(b)/math.Sqrt(la*lb) < cosThreshold
}

// flatten approximates every contour by a closed polygon, steps points per
// curved edge.
func (s *Shape) flatten(steps int) [][]Point {
	polys := make([][]Point, 0, len(s.Contours))
	for _, c := range s.Contours {
		var poly []Point
		for i := range c.Edges {
			e := &c.Edges[i]
			if e.Kind == EdgeLinear {
				poly = append(poly, e.start())
				continue
			}
			for k := 0; k < steps; k++ {
				poly = append(poly, e.pointAt(float64(k)/float64(steps)))
			}
		}
		polys = append(polys, poly)
	}
	return polys
}

// signedArea returns the total shoelace area of the polygons: positive when
// the outer contours run counter-clockwise with y pointing up.
func signedArea(polys [][]Point) float64 {
	var area float64
	for _, poly := range polys {
		for i := range poly {
			area += poly[i].cross(poly[(i+1)%len(poly)])
		}
	}
	return area / 2
}

// winding returns the nonzero winding number of the polygons around p.
func winding(polys [][]Point, p Point) int {
	wn := 0
	for _, poly := range polys {
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			side := b.sub(a).cross(p.sub(a))
			if a.Y <= p.Y {
				if b.Y > p.Y && side > 0 {
					wn++
				}
			} else if b.Y <= p.Y && side < 0 {
				wn--
			}
		}
	}
	return wn
}
