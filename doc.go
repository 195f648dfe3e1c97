// Package knotviz renders 3D space curves, such as knots and periodic
// line tangles, as colored tubes.
//
// # Overview
//
// knotviz draws closed and open space curves with per-point coloring,
// selecting the best available rendering backend at runtime. It grew
// out of knot-theory tooling: the typical inputs are torus knots,
// closed random walks and curves cut into segments by periodic cell
// boundaries.
//
// # Quick Start
//
//	import "github.com/knotviz/knotviz"
//
//	// Render a trefoil knot with the default hue-sweep coloring.
//	fig, err := knotviz.PlotLine(knotviz.Trefoil(300))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fig.Close()
//
//	// Save to PNG, or open a window with fig.Show().
//	fig.SavePNG("trefoil.png")
//
// # Backends
//
// Rendering goes through the render package's registry. Importing this
// package registers three backends:
//   - gpu: tube geometry shaded through the wgpu pipeline (priority 100)
//   - gonum: reduced-fidelity projected polylines via gonum/plot
//     (priority 50)
//   - mesh: the render package's built-in software rasterizer
//     (priority 10), always available
//
// WithMode selects one explicitly; the default "auto" probes in
// priority order and picks the first backend that reports itself
// available. Additional backends register themselves the same way, see
// render.Register.
//
// # Entry Points
//
//   - PlotLine draws one curve as a 3D tube.
//   - PlotCell draws many curves with decorrelated per-curve colors and
//     an optional boundary box.
//   - PlotProjection draws the 2D projection of a curve with optional
//     crossing markers; it never touches the 3D backends.
//
// All three share one option list; options that do not concern an entry
// point are ignored, so a single set of options can be reused across
// calls.
package knotviz

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
