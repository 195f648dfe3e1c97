// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package gonumplot

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axes3 projects 3D points onto a 2D plotting plane with an orthographic
// turntable view. It stands in for true 3D axes on a 2D plotting surface.
type Axes3 struct {
	Azimuth   float64 // degrees around the z axis
	Elevation float64 // degrees above the xy plane
}

// NewAxes3 returns axes with the standard 30/30 view.
func NewAxes3() *Axes3 {
	return &Axes3{Azimuth: 30, Elevation: 30}
}

// Project maps a 3D point to view-plane coordinates. The projection is
// orthographic: distance along the view direction is discarded.
func (a *Axes3) Project(p r3.Vec) (x, y float64) {
	az := a.Azimuth * math.Pi / 180
	el := a.Elevation * math.Pi / 180

	sinAz, cosAz := math.Sin(az), math.Cos(az)
	sinEl, cosEl := math.Sin(el), math.Cos(el)

	right := r3.Vec{X: -sinAz, Y: cosAz}
	up := r3.Vec{X: -sinEl * cosAz, Y: -sinEl * sinAz, Z: cosEl}
	return r3.Dot(p, right), r3.Dot(p, up)
}
