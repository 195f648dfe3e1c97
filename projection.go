package knotviz

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/knotviz/knotviz/paint"
	"github.com/knotviz/knotviz/viewer"
)

// Projection is a rendered 2D projection of a curve: the underlying
// gonum/plot figure, the computed axis limits, and (unless rendering was
// suppressed) the rasterized image.
type Projection struct {
	Plot       *plot.Plot
	XMin, XMax float64
	YMin, YMax float64

	img           *image.RGBA
	width, height int
}

// PlotProjection renders the first two coordinates of points as a
// connected 2D line. It never consults the backend resolver; projections
// always go through the plotting path regardless of which 3D backends
// are available.
//
// Axis tick labels are suppressed so the axes stay schematic. Limits are
// the data extent padded by a tenth of the range on each side; a curve
// with zero extent on an axis gets zero padding there. WithMarkStart
// marks the first point with a blue circle, and WithCrossings overlays
// semi-transparent red markers at the given positions. WithShow(false)
// skips rasterization; Image and Show render lazily on demand.
func PlotProjection(points Points, opts ...Option) (*Projection, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := cfg.plt
	if p == nil {
		p = plot.New()
	}

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("knotviz: projection line: %w", err)
	}
	c := paint.SteelBlue
	if cfg.color != nil {
		c = *cfg.color
	}
	line.Color = c.Color()
	p.Add(line)

	// Schematic axes: keep the frame, drop the tick labels.
	p.X.Tick.Marker = plot.ConstantTicks{}
	p.Y.Tick.Marker = plot.ConstantTicks{}

	proj := &Projection{Plot: p, width: cfg.width, height: cfg.height}
	proj.XMin, proj.XMax, proj.YMin, proj.YMax = projectionLimits(xys)

	if cfg.markStart {
		start, err := plotter.NewScatter(plotter.XYs{xys[0]})
		if err != nil {
			return nil, fmt.Errorf("knotviz: start marker: %w", err)
		}
		start.GlyphStyle = draw.GlyphStyle{
			Color:  paint.Blue.Color(),
			Radius: vg.Points(4),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(start)
	}
	if cfg.crossings != nil {
		marks := make(plotter.XYs, len(cfg.crossings))
		for i, cr := range cfg.crossings {
			marks[i] = plotter.XY{X: cr.X, Y: cr.Y}
		}
		sc, err := plotter.NewScatter(marks)
		if err != nil {
			return nil, fmt.Errorf("knotviz: crossing markers: %w", err)
		}
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  paint.RGBA{R: 1, A: 0.5}.Color(),
			Radius: vg.Points(4),
			Shape:  draw.CircleGlyph{},
		}
		p.Add(sc)
	}

	// Adding a plotter widens the axis ranges to cover its data, so the
	// padded limits go in last.
	p.X.Min, p.X.Max = proj.XMin, proj.XMax
	p.Y.Min, p.Y.Max = proj.YMin, proj.YMax

	if cfg.show {
		proj.render()
	}
	return proj, nil
}

// projectionLimits returns the data extent padded by a tenth of the
// range per side.
func projectionLimits(xys plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = xys[0].X, xys[0].X
	ymin, ymax = xys[0].Y, xys[0].Y
	for _, xy := range xys[1:] {
		xmin = math.Min(xmin, xy.X)
		xmax = math.Max(xmax, xy.X)
		ymin = math.Min(ymin, xy.Y)
		ymax = math.Max(ymax, xy.Y)
	}
	xpad := (xmax - xmin) / 10
	ypad := (ymax - ymin) / 10
	return xmin - xpad, xmax + xpad, ymin - ypad, ymax + ypad
}

func (p *Projection) render() {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	c := vgimg.NewWith(vgimg.UseImage(img))
	p.Plot.Draw(draw.New(c))
	p.img = img
}

// Image returns the rasterized projection, rendering it first when the
// original call suppressed rendering.
func (p *Projection) Image() image.Image {
	if p.img == nil {
		p.render()
	}
	return p.img
}

// Rendered reports whether the projection has been rasterized yet.
func (p *Projection) Rendered() bool {
	return p.img != nil
}

// Show opens a blocking viewer window displaying the projection.
func (p *Projection) Show() error {
	return viewer.Show(p.Image(), "knotviz projection")
}
