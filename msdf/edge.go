package msdf

import "math"

// SignedDistance is the distance from a point to an edge. Distance is
// positive on the left of the edge direction. Dot breaks ties between
// equally distant edges: it is the alignment between the edge direction and
// the direction to the point, zero when the closest point is interior.
type SignedDistance struct {
	Distance float64
	Dot      float64
}

func infiniteDistance() SignedDistance {
	return SignedDistance{Distance: math.MaxFloat64}
}

// closerThan reports whether d is closer to its edge than other.
func (d SignedDistance) closerThan(other SignedDistance) bool {
	ad, ao := math.Abs(d.Distance), math.Abs(other.Distance)
	if ad != ao {
		return ad < ao
	}
	return d.Dot < other.Dot
}

// signedDistance returns the signed distance from p to the edge and the
// parameter of the closest point, clamped to [0, 1].
func (e *Edge) signedDistance(p Point) (SignedDistance, float64) {
	pts := &e.Points
	switch e.Kind {
	case EdgeQuadratic:
		return quadraticSignedDistance(pts[0], pts[1], pts[2], p)
	case EdgeCubic:
		return cubicSignedDistance(pts[0], pts[1], pts[2], pts[3], p)
	default:
		return linearSignedDistance(pts[0], pts[1], p)
	}
}

// pseudoDistance extends the edge past its endpoints along the endpoint
// tangents. When the closest point is an endpoint and p lies beyond it, the
// perpendicular distance to that extension replaces the true distance. This
// keeps corners sharp in the median of the channels.
func (e *Edge) pseudoDistance(sd SignedDistance, t float64, p Point) float64 {
	switch t {
	case 0:
		dir := e.directionAt(0).normalized()
		aq := p.sub(e.start())
		if aq.dot(dir) < 0 {
			if pd := dir.cross(aq); math.Abs(pd) <= math.Abs(sd.Distance) {
				return pd
			}
		}
	case 1:
		dir := e.directionAt(1).normalized()
		bq := p.sub(e.end())
		if bq.dot(dir) > 0 {
			if pd := dir.cross(bq); math.Abs(pd) <= math.Abs(sd.Distance) {
				return pd
			}
		}
	}
	return sd.Distance
}

func evaluateQuadratic(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	// B(t) = (1-t)^2*P0 + 2*(1-t)*t*P1 + t^2*P2
	return Point{
		u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

func evaluateCubic(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	u2 := u * u
	t2 := t * t
	// B(t) = (1-t)^3*P0 + 3*(1-t)^2*t*P1 + 3*(1-t)*t^2*P2 + t^3*P3
	return Point{
		u*u2*p0.X + 3*u2*t*p1.X + 3*u*t2*p2.X + t*t2*p3.X,
		u*u2*p0.Y + 3*u2*t*p1.Y + 3*u*t2*p2.Y + t*t2*p3.Y,
	}
}

func quadraticDerivative(p0, p1, p2 Point, t float64) Point {
	u := 1 - t
	return Point{
		2*u*(p1.X-p0.X) + 2*t*(p2.X-p1.X),
		2*u*(p1.Y-p0.Y) + 2*t*(p2.Y-p1.Y),
	}
}

func cubicDerivative(p0, p1, p2, p3 Point, t float64) Point {
	u := 1 - t
	return Point{
		3*u*u*(p1.X-p0.X) + 6*u*t*(p2.X-p1.X) + 3*t*t*(p3.X-p2.X),
		3*u*u*(p1.Y-p0.Y) + 6*u*t*(p2.Y-p1.Y) + 3*t*t*(p3.Y-p2.Y),
	}
}

func cubicSecondDerivative(p0, p1, p2, p3 Point, t float64) Point {
	a := p2.sub(p1.mul(2)).add(p0)
	b := p3.sub(p2.mul(2)).add(p1)
	return a.mul(6 * (1 - t)).add(b.mul(6 * t))
}

// endpointDot is the tie-breaker for a closest point at an endpoint.
func endpointDot(tangent, diff Point) float64 {
	return math.Abs(tangent.normalized().dot(diff.normalized()))
}

func linearSignedDistance(a, b, p Point) (SignedDistance, float64) {
	ab := b.sub(a)
	ap := p.sub(a)
	l := ab.lengthSquared()
	if l == 0 {
		return SignedDistance{Distance: ap.length()}, 0
	}

	t := max(0, min(1, ap.dot(ab)/l))
	diff := p.sub(a.add(ab.mul(t)))
	dist := diff.length()
	if ab.cross(ap) < 0 {
		dist = -dist
	}

	var dot float64
	if t == 0 || t == 1 {
		dot = endpointDot(ab, diff)
	}
	return SignedDistance{Distance: dist, Dot: dot}, t
}

// closest tracks the best candidate while scanning curve parameters.
type closest struct {
	sd SignedDistance
	t  float64
}

func (c *closest) check(pt, tangent, p Point, t float64) {
	diff := p.sub(pt)
	dist := diff.length()
	if tangent.cross(diff) < 0 {
		dist = -dist
	}
	var dot float64
	if t == 0 || t == 1 {
		dot = endpointDot(tangent, diff)
	}
	if sd := (SignedDistance{Distance: dist, Dot: dot}); sd.closerThan(c.sd) {
		c.sd, c.t = sd, t
	}
}

// quadraticSignedDistance solves the cubic whose roots are the stationary
// points of the squared distance.
func quadraticSignedDistance(p0, p1, p2, p Point) (SignedDistance, float64) {
	qa := p0.sub(p)
	qb := p1.sub(p)
	qc := p2.sub(p)

	// B(t) - p = a*t^2 + b*t + c
	a := qa.sub(qb.mul(2)).add(qc)
	b := qb.sub(qa).mul(2)
	c := qa

	roots := solveCubic(2*a.dot(a), 3*a.dot(b), 2*a.dot(c)+b.dot(b), b.dot(c))

	best := closest{sd: infiniteDistance()}
	for _, t := range append(roots, 0, 1) {
		if t < 0 || t > 1 {
			continue
		}
		tangent := quadraticDerivative(p0, p1, p2, t)
		if tangent.lengthSquared() == 0 {
			tangent = p2.sub(p0)
		}
		best.check(evaluateQuadratic(p0, p1, p2, t), tangent, p, t)
	}
	return best.sd, best.t
}

// cubicSignedDistance refines evenly spaced starting parameters with
// Newton's method; the stationary points of a cubic's squared distance are
// the roots of a quintic.
func cubicSignedDistance(p0, p1, p2, p3, p Point) (SignedDistance, float64) {
	best := closest{sd: infiniteDistance()}
	check := func(t float64) {
		tangent := cubicDerivative(p0, p1, p2, p3, t)
		if tangent.lengthSquared() == 0 {
			tangent = p3.sub(p0)
		}
		best.check(evaluateCubic(p0, p1, p2, p3, t), tangent, p, t)
	}

	check(0)
	check(1)
	const samples = 8
	for i := 0; i <= samples; i++ {
		check(newtonRefineCubic(p0, p1, p2, p3, p, float64(i)/samples))
	}
	return best.sd, best.t
}

func newtonRefineCubic(p0, p1, p2, p3, p Point, t float64) float64 {
	const (
		maxIter = 8
		epsilon = 1e-10
	)
	for i := 0; i < maxIter; i++ {
		diff := evaluateCubic(p0, p1, p2, p3, t).sub(p)
		d1 := cubicDerivative(p0, p1, p2, p3, t)
		d2 := cubicSecondDerivative(p0, p1, p2, p3, t)

		// f is half the derivative of the squared distance.
		f := diff.dot(d1)
		fp := d1.dot(d1) + diff.dot(d2)
		if math.Abs(fp) < epsilon {
			break
		}
		dt := -f / fp
		if math.Abs(dt) < epsilon {
			break
		}
		t = max(0, min(1, t+dt))
	}
	return t
}

// solveCubic returns the real roots of a*x^3 + b*x^2 + c*x + d in [0, 1].
func solveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < 1e-14 {
		return solveQuadratic(b, c, d)
	}

	b /= a
	c /= a
	d /= a

	// Depressed cubic t^3 + p*t + q, x = t - b/3.
	p := c - b*b/3
	q := d - b*c/3 + 2*b*b*b/27
	disc := q*q/4 + p*p*p/27
	shift := b / 3

	var roots []float64
	keep := func(x float64) {
		if x >= 0 && x <= 1 {
			roots = append(roots, x)
		}
	}
	switch {
	case disc > 1e-14:
		s := math.Sqrt(disc)
		keep(math.Cbrt(-q/2+s) + math.Cbrt(-q/2-s) - shift)
	case disc < -1e-14:
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(max(-1, min(1, -q/(2*r))))
		m := 2 * math.Cbrt(r)
		for k := 0; k < 3; k++ {
			keep(m*math.Cos((phi+float64(2*k)*math.Pi)/3) - shift)
		}
	default:
		u := math.Cbrt(-q / 2)
		keep(2*u - shift)
		if u != 0 {
			keep(-u - shift)
		}
	}
	return roots
}

// solveQuadratic returns the real roots of a*x^2 + b*x + c in [0, 1].
func solveQuadratic(a, b, c float64) []float64 {
	var roots []float64
	keep := func(x float64) {
		if x >= 0 && x <= 1 {
			roots = append(roots, x)
		}
	}
	if math.Abs(a) < 1e-14 {
		if math.Abs(b) >= 1e-14 {
			keep(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	s := math.Sqrt(disc)
	keep((-b + s) / (2 * a))
	if s != 0 {
		keep((-b - s) / (2 * a))
	}
	return roots
}
