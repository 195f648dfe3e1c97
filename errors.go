package knotviz

import "errors"

var (
	// ErrTooFewPoints is returned when a curve has fewer than two points.
	ErrTooFewPoints = errors.New("knotviz: need at least 2 points")

	// ErrNoCurves is returned when a cell plot receives no curves.
	ErrNoCurves = errors.New("knotviz: no curves to plot")

	// ErrBadBoundary is returned for boundary values that do not describe
	// a box.
	ErrBadBoundary = errors.New("knotviz: invalid boundary")
)
