// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// CameraTurntable is the only camera kind currently implemented: the eye
// orbits the origin on a sphere, constrained so the up axis stays vertical.
const CameraTurntable = "turntable"

// DefaultFOV is the vertical field of view, in degrees, used when
// Camera.FOV is zero. It is wide enough that the standard framing distance
// of 1.5 times the scene radius keeps the scene inside the frustum.
const DefaultFOV = 90.0

// Camera describes an orbiting perspective view of the scene origin.
// The zero value is not usable directly; fill Distance or start from
// DefaultCamera.
type Camera struct {
	Kind      string  // camera model, CameraTurntable when empty
	Distance  float64 // eye distance from the origin
	Azimuth   float64 // degrees around the up axis
	Elevation float64 // degrees above the ground plane
	Up        string  // vertical axis, "z" (default) or "y"
	FOV       float64 // vertical field of view in degrees, 0 means DefaultFOV
}

// DefaultCamera returns the standard framing for a scene of the given
// radius: a 30/30 degree turntable orbit at the given eye distance.
func DefaultCamera(distance float64) Camera {
	return Camera{
		Kind:      CameraTurntable,
		Distance:  distance,
		Azimuth:   30,
		Elevation: 30,
		Up:        "z",
		FOV:       DefaultFOV,
	}
}

// eye returns the camera position in world space.
func (c Camera) eye() r3.Vec {
	az := c.Azimuth * math.Pi / 180
	el := c.Elevation * math.Pi / 180
	d := c.Distance
	if c.Up == "y" {
		return r3.Vec{
			X: d * math.Cos(el) * math.Cos(az),
			Y: d * math.Sin(el),
			Z: d * math.Cos(el) * math.Sin(az),
		}
	}
	return r3.Vec{
		X: d * math.Cos(el) * math.Cos(az),
		Y: d * math.Cos(el) * math.Sin(az),
		Z: d * math.Sin(el),
	}
}

func (c Camera) upVec() r3.Vec {
	if c.Up == "y" {
		return r3.Vec{Y: 1}
	}
	return r3.Vec{Z: 1}
}

// basis returns the eye position and the right/up/forward view vectors.
func (c Camera) basis() (eye, right, up, forward r3.Vec) {
	eye = c.eye()
	forward = r3.Unit(r3.Scale(-1, eye))
	right = r3.Cross(forward, c.upVec())
	if r3.Norm(right) < 1e-12 {
		// Looking straight along the up axis; any horizontal right works.
		right = r3.Vec{X: 1}
	}
	right = r3.Unit(right)
	up = r3.Cross(right, forward)
	return eye, right, up, forward
}

// Project maps a world-space point to pixel coordinates on a width×height
// target. The returned depth grows with distance from the eye, matching the
// framebuffer depth test. ok is false when the point is behind the camera.
func (c Camera) Project(p r3.Vec, width, height int) (x, y, depth float64, ok bool) {
	eye, right, up, forward := c.basis()
	d := r3.Sub(p, eye)
	vx := r3.Dot(d, right)
	vy := r3.Dot(d, up)
	vz := r3.Dot(d, forward)
	if vz < 1e-6 {
		return 0, 0, 0, false
	}
	fov := c.FOV
	if fov <= 0 {
		fov = DefaultFOV
	}
	halfH := math.Tan(fov / 2 * math.Pi / 180)
	// Vertical FOV convention: scale both axes by the half-height so the
	// aspect ratio of the scene is preserved on non-square targets.
	s := float64(height) / 2
	x = float64(width)/2 + vx/(vz*halfH)*s
	y = float64(height)/2 - vy/(vz*halfH)*s
	return x, y, vz, true
}
