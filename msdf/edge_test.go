package msdf

import (
	"math"
	"sort"
	"testing"
)

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestLinearSignedDistance(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	tests := []struct {
		name  string
		p     Point
		dist  float64
		param float64
	}{
		{"left", Point{5, 3}, 3, 0.5},
		{"right", Point{5, -3}, -3, 0.5},
		{"past end", Point{13, 4}, 5, 1},
		{"before start", Point{-3, -4}, -5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, param := linearSignedDistance(a, b, tt.p)
			if !near(sd.Distance, tt.dist, 1e-12) || param != tt.param {
				t.Errorf("got (%v, %v), want (%v, %v)", sd.Distance, param, tt.dist, tt.param)
			}
		})
	}
}

func TestQuadraticSignedDistance(t *testing.T) {
	// Apex at (5, 5) with a radius of curvature of 2.5.
	p0, p1, p2 := Point{0, 0}, Point{5, 10}, Point{10, 0}

	sd, param := quadraticSignedDistance(p0, p1, p2, Point{5, 8})
	if !near(sd.Distance, 3, 1e-9) || !near(param, 0.5, 1e-9) {
		t.Errorf("above apex: got (%v, %v), want (3, 0.5)", sd.Distance, param)
	}

	sd, _ = quadraticSignedDistance(p0, p1, p2, Point{5, 4})
	if !near(sd.Distance, -1, 1e-9) {
		t.Errorf("below apex: got %v, want -1", sd.Distance)
	}

	sd, param = quadraticSignedDistance(p0, p1, p2, Point{-3, -4})
	if !near(math.Abs(sd.Distance), 5, 1e-9) || param != 0 {
		t.Errorf("before start: got (%v, %v), want (|5|, 0)", sd.Distance, param)
	}
}

func TestCubicSignedDistance(t *testing.T) {
	// A straight cubic along the x axis.
	p0, p1, p2, p3 := Point{0, 0}, Point{10.0 / 3, 0}, Point{20.0 / 3, 0}, Point{10, 0}

	sd, param := cubicSignedDistance(p0, p1, p2, p3, Point{4, 2})
	if !near(sd.Distance, 2, 1e-6) || !near(param, 0.4, 1e-6) {
		t.Errorf("got (%v, %v), want (2, 0.4)", sd.Distance, param)
	}
	sd, _ = cubicSignedDistance(p0, p1, p2, p3, Point{7, -1})
	if !near(sd.Distance, -1, 1e-6) {
		t.Errorf("got %v, want -1", sd.Distance)
	}
}

func TestPseudoDistance(t *testing.T) {
	e := Edge{Kind: EdgeLinear, Points: [4]Point{{0, 0}, {10, 0}}}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"interior", Point{5, 3}, 3},
		{"past end", Point{13, 4}, 4},
		{"before start", Point{-3, -4}, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, param := e.signedDistance(tt.p)
			if got := e.pseudoDistance(sd, param, tt.p); !near(got, tt.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolveCubic(t *testing.T) {
	// (x - 0.2)(x - 0.5)(x - 0.9)
	roots := solveCubic(1, -1.6, 0.73, -0.09)
	sort.Float64s(roots)
	want := []float64{0.2, 0.5, 0.9}
	if len(roots) != len(want) {
		t.Fatalf("roots = %v, want %v", roots, want)
	}
	for i := range want {
		if !near(roots[i], want[i], 1e-9) {
			t.Errorf("root %d = %v, want %v", i, roots[i], want[i])
		}
	}

	// Roots outside [0, 1] are dropped.
	if roots := solveCubic(1, 0, 0, -8); len(roots) != 0 {
		t.Errorf("x^3 - 8: roots = %v, want none in [0, 1]", roots)
	}
	// Degenerate leading coefficient: 2x - 1.
	if roots := solveCubic(0, 0, 2, -1); len(roots) != 1 || !near(roots[0], 0.5, 1e-12) {
		t.Errorf("2x - 1: roots = %v, want [0.5]", roots)
	}
}

func TestEdgeSplitThirds(t *testing.T) {
	edges := []Edge{
		{Kind: EdgeLinear, Points: [4]Point{{0, 0}, {9, 3}}},
		{Kind: EdgeQuadratic, Points: [4]Point{{0, 0}, {5, 10}, {10, 0}}},
		{Kind: EdgeCubic, Points: [4]Point{{0, 0}, {150, -100}, {150, 100}, {0, 0}}},
	}
	for _, e := range edges {
		parts := e.splitThirds()
		for i, part := range parts {
			if part.Kind != e.Kind {
				t.Fatalf("part %d kind = %v, want %v", i, part.Kind, e.Kind)
			}
			for _, u := range []float64{0, 0.5, 1} {
				want := e.pointAt((float64(i) + u) / 3)
				if got := part.pointAt(u); got.sub(want).length() > 1e-9 {
					t.Errorf("kind %v part %d at %v = %+v, want %+v", e.Kind, i, u, got, want)
				}
			}
		}
	}
}
