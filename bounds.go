package knotviz

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Boundary is an axis-aligned box, normalized so Min <= Max on every axis.
type Boundary struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// NormalizeBoundary expands shorthand boundary values into a full box:
//
//	NormalizeBoundary(s)                            // cube [0,s] on all axes
//	NormalizeBoundary(a, b, c)                      // [0,a] x [0,b] x [0,c]
//	NormalizeBoundary(x0, x1, y0, y1, z0, z1)       // explicit box
//
// Any other count, or a pair with min above max, is an error wrapping
// ErrBadBoundary.
func NormalizeBoundary(vals ...float64) (Boundary, error) {
	var b Boundary
	switch len(vals) {
	case 1:
		s := vals[0]
		b = Boundary{0, s, 0, s, 0, s}
	case 3:
		b = Boundary{0, vals[0], 0, vals[1], 0, vals[2]}
	case 6:
		b = Boundary{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}
	default:
		return Boundary{}, fmt.Errorf("%w: need 1, 3 or 6 values, got %d", ErrBadBoundary, len(vals))
	}
	if b.XMin > b.XMax || b.YMin > b.YMax || b.ZMin > b.ZMax {
		return Boundary{}, fmt.Errorf("%w: min exceeds max", ErrBadBoundary)
	}
	return b, nil
}

// corner returns box corner i, with bits 0, 1, 2 of i selecting the max
// side of x, y, z.
func (b Boundary) corner(i int) r3.Vec {
	v := r3.Vec{X: b.XMin, Y: b.YMin, Z: b.ZMin}
	if i&1 != 0 {
		v.X = b.XMax
	}
	if i&2 != 0 {
		v.Y = b.YMax
	}
	if i&4 != 0 {
		v.Z = b.ZMax
	}
	return v
}

// Edges returns the 12 edges of the box as point pairs, for wireframe
// drawing.
func (b Boundary) Edges() [][2]r3.Vec {
	pairs := [12][2]int{
		{0, 1}, {2, 3}, {4, 5}, {6, 7}, // along x
		{0, 2}, {1, 3}, {4, 6}, {5, 7}, // along y
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // along z
	}
	edges := make([][2]r3.Vec, len(pairs))
	for i, p := range pairs {
		edges[i] = [2]r3.Vec{b.corner(p[0]), b.corner(p[1])}
	}
	return edges
}
