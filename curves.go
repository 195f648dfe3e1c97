package knotviz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// TorusKnot samples the (p, q) torus knot: the curve winding p times
// around the symmetry axis of a torus and q times through its hole. The
// curve is closed; the first point is repeated at the end, so the result
// has n+1 points. n is clamped to at least 3.
func TorusKnot(p, q, n int) Points {
	if n < 3 {
		n = 3
	}
	pts := make(Points, 0, n+1)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		r := math.Cos(float64(q)*t) + 2
		pts = append(pts, r3.Vec{
			X: r * math.Cos(float64(p)*t),
			Y: r * math.Sin(float64(p)*t),
			Z: -math.Sin(float64(q) * t),
		})
	}
	return append(pts, pts[0])
}

// Trefoil samples the simplest nontrivial knot, the (2, 3) torus knot.
func Trefoil(n int) Points { return TorusKnot(2, 3, n) }
