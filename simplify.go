package vacationmap

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultSimplifyTolerance is the distance, in coordinate degrees, below which
// consecutive points are merged.
const DefaultSimplifyTolerance = 0.0001

// Simplify thins a path in a single greedy pass: a point is kept only if it is
// farther than tol from the previously kept point. The first and last points
// always survive. This is not Douglas-Peucker; it never looks at the shape of
// the path, only at point spacing.
//
// Paths with fewer than 3 points are returned unchanged. The input is not modified.
func Simplify(ls orb.LineString, tol float64) orb.LineString {
	if len(ls) < 3 {
		return ls
	}

	out := make(orb.LineString, 1, len(ls))
	out[0] = ls[0]
	last := ls[0]
	for _, p := range ls[1:] {
		if planar.Distance(p, last) > tol {
			out = append(out, p)
			last = p
		}
	}

	// Keep the endpoint even when it sits right on top of the last kept point.
	if end := ls[len(ls)-1]; !out[len(out)-1].Equal(end) {
		out = append(out, end)
	}
	return out
}

// simplifyGeometry applies Simplify to every line in g. Other geometry types
// are returned as is.
func simplifyGeometry(g orb.Geometry, tol float64) orb.Geometry {
	switch g := g.(type) {
	case orb.LineString:
		return Simplify(g, tol)
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(g))
		for i, ls := range g {
			out[i] = Simplify(ls, tol)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(g))
		for i, sub := range g {
			out[i] = simplifyGeometry(sub, tol)
		}
		return out
	}
	return g
}
