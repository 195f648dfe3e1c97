package knotviz

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"

	"github.com/knotviz/knotviz/paint"
	"github.com/knotviz/knotviz/render"
)

// Option configures a plotting call.
// Options apply to PlotLine, PlotCell, PlotProjection and Figure.Line;
// options that do not concern a call are ignored, so a shared option list
// can be reused across entry points.
//
// Example:
//
//	// Default: auto-resolved backend, HSV sweep along the curve
//	fig, err := knotviz.PlotLine(points)
//
//	// Explicit backend and a uniform color
//	fig, err := knotviz.PlotLine(points,
//	    knotviz.WithMode("mesh"),
//	    knotviz.WithColor(paint.Red))
type Option func(*plotConfig)

// plotConfig holds the configuration of one plotting call.
type plotConfig struct {
	mode      string
	width     int
	height    int
	color     *paint.RGBA
	colormap  paint.Colormap
	mu        []float64
	radius    float64
	clear     bool
	rng       *rand.Rand
	boundary  []float64
	crossings []r2.Vec
	markStart bool
	show      bool
	plt       *plot.Plot
}

// defaultConfig returns the defaults for a fresh plotting call.
func defaultConfig() plotConfig {
	return plotConfig{
		mode:     render.ModeAuto,
		width:    render.DefaultWidth,
		height:   render.DefaultHeight,
		colormap: paint.HueSweep,
		radius:   render.DefaultTubeRadius,
		clear:    true,
		show:     true,
	}
}

// WithMode selects the rendering backend: "auto", "gpu", "gonum" or
// "mesh". "auto" probes registered backends in priority order.
func WithMode(mode string) Option {
	return func(c *plotConfig) { c.mode = mode }
}

// WithSize sets the target size in pixels. The default is 800x600.
func WithSize(width, height int) Option {
	return func(c *plotConfig) { c.width, c.height = width, height }
}

// WithColor draws the whole curve in one color instead of mapping mu
// values through a colormap.
func WithColor(c paint.RGBA) Option {
	return func(cfg *plotConfig) { cfg.color = &c }
}

// WithColormap selects the colormap applied along the curve. The default
// sweeps the HSV hue circle once from start to end.
func WithColormap(m paint.Colormap) Option {
	return func(c *plotConfig) { c.colormap = m }
}

// WithMu overrides the per-point colormap coordinates. The slice must
// have one value per curve point; the default is evenly spaced values
// over [0, 1].
func WithMu(mu []float64) Option {
	return func(c *plotConfig) { c.mu = mu }
}

// WithTubeRadius sets the tube thickness in curve units. The default is
// render.DefaultTubeRadius.
func WithTubeRadius(r float64) Option {
	return func(c *plotConfig) { c.radius = r }
}

// WithClear controls whether the draw clears the target first. Top-level
// plots clear by default; Figure.Line composes by default.
func WithClear(clear bool) Option {
	return func(c *plotConfig) { c.clear = clear }
}

// WithRand injects the random source used to decorrelate cell colors.
// A fixed source makes the color assignment reproducible. The default is
// time-seeded.
func WithRand(rng *rand.Rand) Option {
	return func(c *plotConfig) { c.rng = rng }
}

// WithBoundary adds a wireframe boundary box to a cell plot. Accepts one
// value (cube side), three (per-axis extent from zero) or six
// (xmin, xmax, ymin, ymax, zmin, zmax).
func WithBoundary(vals ...float64) Option {
	return func(c *plotConfig) { c.boundary = vals }
}

// WithCrossings overlays projected self-intersection markers on a
// projection plot. nil disables the overlay entirely; an empty non-nil
// slice renders zero markers.
func WithCrossings(crossings []r2.Vec) Option {
	return func(c *plotConfig) { c.crossings = crossings }
}

// WithMarkStart marks the first point of a projection with a blue circle.
func WithMarkStart(mark bool) Option {
	return func(c *plotConfig) { c.markStart = mark }
}

// WithShow controls whether a projection is rasterized into its image
// during the call. Rendering is on by default; with false the caller gets
// the figure and limits only, and Projection.Show renders on demand.
func WithShow(show bool) Option {
	return func(c *plotConfig) { c.show = show }
}

// WithPlot draws a projection onto an existing gonum/plot figure instead
// of a fresh one. Limits and tick suppression are still applied.
func WithPlot(p *plot.Plot) Option {
	return func(c *plotConfig) { c.plt = p }
}
