package knotviz

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/paint"
	"github.com/knotviz/knotviz/render"
	"github.com/knotviz/knotviz/viewer"
)

// Figure is a live rendering: a backend pinned at creation plus its
// target. Further curves compose into the same figure via Line, and the
// result can be read, saved or shown at any point.
type Figure struct {
	renderer render.Renderer
	base     plotConfig
}

// newFigure resolves the mode once and constructs the renderer. The
// backend stays pinned for the figure's lifetime; a draw failure never
// switches backends.
func newFigure(cfg plotConfig) (*Figure, error) {
	r, err := render.New(cfg.mode)
	if err != nil {
		return nil, err
	}
	r.Target().Resize(cfg.width, cfg.height)
	logger().Info("backend selected", "backend", r.Name())
	return &Figure{renderer: r, base: cfg}, nil
}

// Backend reports the pinned backend's name.
func (f *Figure) Backend() string { return f.renderer.Name() }

// Line draws another curve into the figure with the pinned backend.
// Unlike the top-level entry points it composes by default; pass
// WithClear(true) to start the figure over.
func (f *Figure) Line(points []r3.Vec, opts ...Option) error {
	cfg := f.base
	cfg.clear = false
	for _, opt := range opts {
		opt(&cfg)
	}
	return f.draw(points, cfg)
}

// draw validates and dispatches one tube draw.
func (f *Figure) draw(points []r3.Vec, cfg plotConfig) error {
	if len(points) < 2 {
		return ErrTooFewPoints
	}
	colors, err := curveColors(points, cfg)
	if err != nil {
		return err
	}
	logger().Debug("draw curve",
		"backend", f.renderer.Name(), "points", len(points), "clear", cfg.clear)
	if err := f.renderer.DrawTube(points, colors, cfg.radius, cfg.clear); err != nil {
		return &render.BackendError{Backend: f.renderer.Name(), Op: "draw", Err: err}
	}
	return nil
}

// polyline draws a plain line strip, used for boundary wireframes.
func (f *Figure) polyline(points []r3.Vec, c paint.RGBA, clear bool) error {
	if err := f.renderer.DrawPolyline(points, c, clear); err != nil {
		return &render.BackendError{Backend: f.renderer.Name(), Op: "draw", Err: err}
	}
	return nil
}

// curveColors produces one color per point: a uniform color replicated,
// or mu values mapped through the colormap.
func curveColors(points []r3.Vec, cfg plotConfig) ([]paint.RGBA, error) {
	n := len(points)
	colors := make([]paint.RGBA, n)
	if cfg.color != nil {
		for i := range colors {
			colors[i] = *cfg.color
		}
		return colors, nil
	}
	mu := cfg.mu
	if mu == nil {
		mu = make([]float64, n)
		floats.Span(mu, 0, 1)
	}
	if len(mu) != n {
		return nil, fmt.Errorf("knotviz: %d mu values for %d points", len(mu), n)
	}
	cmap := cfg.colormap
	if cmap == nil {
		cmap = paint.HueSweep
	}
	for i, m := range mu {
		colors[i] = cmap.At(m)
	}
	return colors, nil
}

// Image returns the rendered figure. The image shares the target's
// memory, so it reflects further draws.
func (f *Figure) Image() image.Image { return f.renderer.Target().Image() }

// Target returns the figure's render target.
func (f *Figure) Target() *render.Target { return f.renderer.Target() }

// SavePNG writes the rendered figure to a PNG file.
func (f *Figure) SavePNG(path string) error { return f.renderer.Target().SavePNG(path) }

// Show opens a blocking viewer window with the rendered figure. It
// returns when the user closes the window.
func (f *Figure) Show() error { return viewer.Show(f.Image(), "knotviz") }

// Close releases the backend's resources. The figure must not be drawn
// to afterwards.
func (f *Figure) Close() error { return f.renderer.Close() }
