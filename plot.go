package knotviz

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/paint"
	_ "github.com/knotviz/knotviz/render/gonumplot" // register the "gonum" backend
	_ "github.com/knotviz/knotviz/render/gpu"       // register the "gpu" backend
)

// Points is an ordered sequence of 3D curve coordinates.
type Points = []r3.Vec

// boundaryColor is the wireframe color for cell boundary boxes.
var boundaryColor = paint.Gray

// PlotLine renders one curve as a colored 3D tube and returns the live
// figure for further composition.
//
// The backend is resolved once (default "auto") and pinned to the
// figure. Colors follow WithColor, or mu values (default evenly spaced
// over [0, 1]) mapped through the colormap (default the HSV hue sweep).
//
// Example:
//
//	fig, err := knotviz.PlotLine(knotviz.Trefoil(300))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer fig.Close()
//	fig.SavePNG("trefoil.png")
func PlotLine(points Points, opts ...Option) (*Figure, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	fig, err := newFigure(cfg)
	if err != nil {
		return nil, err
	}
	if err := fig.draw(points, cfg); err != nil {
		fig.Close()
		return nil, err
	}
	return fig, nil
}

// PlotCell renders a collection of curves, each curve possibly split
// into several segments by periodic cell boundaries. Every curve gets
// one color across all its segments, decorrelated from its neighbors
// (see paint.DistinctColors); WithRand fixes the assignment. A boundary
// supplied with WithBoundary is drawn as a gray wireframe box.
//
// The backend is resolved once; all segments compose into one figure, so
// only the first draw clears the target.
func PlotCell(curves [][]Points, opts ...Option) (*Figure, error) {
	if len(curves) == 0 {
		return nil, ErrNoCurves
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	colors := paint.DistinctColors(len(curves), rng)

	fig, err := newFigure(cfg)
	if err != nil {
		return nil, err
	}
	clear := cfg.clear
	segCfg := cfg
	for i, curve := range curves {
		segCfg.color = &colors[i]
		for _, seg := range curve {
			segCfg.clear = clear
			if err := fig.draw(seg, segCfg); err != nil {
				fig.Close()
				return nil, err
			}
			clear = false
		}
	}
	if cfg.boundary != nil {
		b, err := NormalizeBoundary(cfg.boundary...)
		if err != nil {
			fig.Close()
			return nil, err
		}
		for _, e := range b.Edges() {
			if err := fig.polyline(e[:], boundaryColor, clear); err != nil {
				fig.Close()
				return nil, err
			}
			clear = false
		}
	}
	return fig, nil
}
