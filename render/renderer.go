// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/paint"
)

// DefaultTubeRadius is the tube radius used when a draw call passes a
// non-positive radius.
const DefaultTubeRadius = 1.0

// Default target dimensions for renderers constructed by the registry.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Renderer draws 3D polylines into a pixel target.
//
// A Renderer is the capability surface a backend must provide: colored tube
// and polyline drawing into an addressable Target. Backends that cannot build
// tube geometry may render DrawTube as a polyline at reduced fidelity; the
// call must still succeed.
//
// Renderers accumulate drawing between clears, so several curves can be
// composed into one frame by passing clear=false after the first call.
//
// Thread safety: renderers are NOT safe for concurrent use. Drive each
// renderer from a single goroutine.
type Renderer interface {
	// Name reports the backend name, e.g. "gpu" or "mesh".
	Name() string

	// DrawTube renders points as a tube of the given radius with per-point
	// colors. colors may be shorter than points; the last color is extended.
	// A non-positive radius means DefaultTubeRadius. When clear is true the
	// target is cleared before drawing.
	DrawTube(points []r3.Vec, colors []paint.RGBA, radius float64, clear bool) error

	// DrawPolyline renders points as a single-color connected line strip.
	// When clear is true the target is cleared before drawing.
	DrawPolyline(points []r3.Vec, color paint.RGBA, clear bool) error

	// Target returns the target the renderer draws into. The returned
	// target stays valid until Close.
	Target() *Target

	// Close releases backend resources. The renderer must not be used
	// after Close.
	Close() error
}

// CameraSetter is an optional interface for renderers whose view can be
// positioned. Renderers without it keep their own framing heuristic.
type CameraSetter interface {
	SetCamera(Camera)
}

// BackgroundSetter is an optional interface for renderers whose clear
// color can be changed.
type BackgroundSetter interface {
	SetBackground(paint.RGBA)
}
