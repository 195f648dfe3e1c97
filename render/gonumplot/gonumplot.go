// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gonumplot provides the reduced-fidelity "gonum" rendering backend.
// Curves are projected through orthographic 3D axes and drawn as single-color
// lines on a gonum/plot figure. There is no tube geometry and no per-point
// coloring; the backend exists so headless environments without a GPU still
// render something meaningful.
//
// To enable it, import the package for its side effects:
//
//	import _ "github.com/knotviz/knotviz/render/gonumplot"
package gonumplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/knotviz/knotviz/paint"
	"github.com/knotviz/knotviz/render"
)

// BackendGonum is the identifier for the gonum/plot backend.
const BackendGonum = "gonum"

const gonumPriority = 50

func init() {
	render.Register(render.Registration{
		Name:     BackendGonum,
		Priority: gonumPriority,
		Probe:    Probe,
		New: func() (render.Renderer, error) {
			return New(render.DefaultWidth, render.DefaultHeight)
		},
	})
}

// Line widths on the figure, in printer's points.
const (
	tubeLineWidth = vg.Points(3)
	lineWidth     = vg.Points(1.5)
)

// Probe reports whether a figure with 3D axes can be constructed. plot.New
// panics when its font stack cannot load; that is reported as an
// unavailable backend rather than crashing resolution.
func Probe() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gonumplot: probe: %v", r)
		}
	}()
	p := plot.New()
	if p == nil {
		return fmt.Errorf("gonumplot: probe: nil figure")
	}
	if NewAxes3() == nil {
		return fmt.Errorf("gonumplot: probe: nil axes")
	}
	return nil
}

// series is one accumulated line on the figure.
type series struct {
	xys   plotter.XYs
	color color.Color
	width vg.Length
}

// Renderer draws projected polylines on a gonum/plot figure. Draws
// accumulate until a clear; every draw re-renders the whole figure into the
// target, with axis ranges fit to all accumulated data at equal scale.
type Renderer struct {
	target     *render.Target
	axes       *Axes3
	background paint.RGBA
	lines      []series
}

// New creates a renderer with a target of the given size.
func New(width, height int) (*Renderer, error) {
	if err := Probe(); err != nil {
		return nil, err
	}
	return &Renderer{
		target:     render.NewTarget(width, height),
		axes:       NewAxes3(),
		background: paint.White,
	}, nil
}

// Name reports "gonum".
func (r *Renderer) Name() string { return BackendGonum }

// Target returns the renderer's target.
func (r *Renderer) Target() *render.Target { return r.target }

// Close drops the accumulated figure content.
func (r *Renderer) Close() error {
	r.lines = nil
	return nil
}

// SetCamera adopts the camera's azimuth and elevation for the orthographic
// view. Distance and field of view do not apply.
func (r *Renderer) SetCamera(c render.Camera) {
	r.axes.Azimuth = c.Azimuth
	r.axes.Elevation = c.Elevation
}

// SetBackground changes the figure background. The default is white.
func (r *Renderer) SetBackground(c paint.RGBA) { r.background = c }

// DrawTube degrades to a fixed-width polyline in the first supplied color.
// The tube radius is ignored.
func (r *Renderer) DrawTube(points []r3.Vec, colors []paint.RGBA, radius float64, clear bool) error {
	c := paint.SteelBlue
	if len(colors) > 0 {
		c = colors[0]
	}
	return r.draw(points, c, tubeLineWidth, clear)
}

// DrawPolyline draws a single-color line strip.
func (r *Renderer) DrawPolyline(points []r3.Vec, color paint.RGBA, clear bool) error {
	return r.draw(points, color, lineWidth, clear)
}

func (r *Renderer) draw(points []r3.Vec, c paint.RGBA, width vg.Length, clear bool) error {
	if len(points) < 2 {
		return render.ErrNotEnoughPoints
	}
	if clear {
		r.lines = r.lines[:0]
	}
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		x, y := r.axes.Project(p)
		xys[i] = plotter.XY{X: x, Y: y}
	}
	r.lines = append(r.lines, series{xys: xys, color: c.Color(), width: width})

	render.Logger().Debug("gonum draw", "points", len(points), "series", len(r.lines))
	return r.replot()
}

// replot renders every accumulated series onto a fresh figure and
// rasterizes it into the target.
func (r *Renderer) replot() error {
	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = r.background.Color()

	for _, s := range r.lines {
		l, err := plotter.NewLine(s.xys)
		if err != nil {
			return fmt.Errorf("gonumplot: %w", err)
		}
		l.Color = s.color
		l.Width = s.width
		p.Add(l)
	}

	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = r.extent()

	canvas := vgimg.NewWith(vgimg.UseImage(r.target.Image()))
	p.Draw(draw.New(canvas))
	return nil
}

// extent fits the axis ranges to all accumulated data: equal units per
// pixel on both axes, with a margin so lines stay off the border.
func (r *Renderer) extent() (xmin, xmax, ymin, ymax float64) {
	first := true
	for _, s := range r.lines {
		for _, xy := range s.xys {
			if first {
				xmin, xmax, ymin, ymax = xy.X, xy.X, xy.Y, xy.Y
				first = false
				continue
			}
			xmin = math.Min(xmin, xy.X)
			xmax = math.Max(xmax, xy.X)
			ymin = math.Min(ymin, xy.Y)
			ymax = math.Max(ymax, xy.Y)
		}
	}

	cx, cy := (xmin+xmax)/2, (ymin+ymax)/2
	aspect := float64(r.target.Width()) / float64(r.target.Height())
	half := math.Max((ymax-ymin)/2, (xmax-xmin)/2/aspect)
	if half == 0 {
		half = 1
	}
	half *= 1.1
	return cx - half*aspect, cx + half*aspect, cy - half, cy + half
}

var (
	_ render.Renderer         = (*Renderer)(nil)
	_ render.CameraSetter     = (*Renderer)(nil)
	_ render.BackgroundSetter = (*Renderer)(nil)
)
