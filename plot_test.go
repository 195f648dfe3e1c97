package knotviz

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/paint"
	"github.com/knotviz/knotviz/render"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// recordedDraw captures one renderer call for assertions.
type recordedDraw struct {
	Op     string
	Points []r3.Vec
	Colors []paint.RGBA
	Color  paint.RGBA
	Radius float64
	Clear  bool
}

// recordingRenderer is a Renderer that records draw calls instead of
// rasterizing. failOn makes the n-th draw (1-based) fail.
type recordingRenderer struct {
	name   string
	target *render.Target
	draws  []recordedDraw
	closed bool
	failOn int
}

func (s *recordingRenderer) Name() string { return s.name }

func (s *recordingRenderer) DrawTube(points []r3.Vec, colors []paint.RGBA, radius float64, clear bool) error {
	if s.failOn > 0 && len(s.draws)+1 == s.failOn {
		return errors.New("induced draw failure")
	}
	s.draws = append(s.draws, recordedDraw{
		Op:     "tube",
		Points: append([]r3.Vec(nil), points...),
		Colors: append([]paint.RGBA(nil), colors...),
		Radius: radius,
		Clear:  clear,
	})
	return nil
}

func (s *recordingRenderer) DrawPolyline(points []r3.Vec, color paint.RGBA, clear bool) error {
	if s.failOn > 0 && len(s.draws)+1 == s.failOn {
		return errors.New("induced draw failure")
	}
	s.draws = append(s.draws, recordedDraw{
		Op:     "line",
		Points: append([]r3.Vec(nil), points...),
		Color:  color,
		Clear:  clear,
	})
	return nil
}

func (s *recordingRenderer) Target() *render.Target { return s.target }

func (s *recordingRenderer) Close() error {
	s.closed = true
	return nil
}

// registerRecorder registers a recording backend on the shared registry
// and returns the instance render.New will hand out. The registration is
// removed when the test ends.
func registerRecorder(t *testing.T, name string, priority int) *recordingRenderer {
	t.Helper()
	s := &recordingRenderer{name: name, target: render.NewTarget(8, 8)}
	render.Register(render.Registration{
		Name:     name,
		Priority: priority,
		Probe:    func() error { return nil },
		New:      func() (render.Renderer, error) { return s, nil },
	})
	t.Cleanup(func() { render.Unregister(name) })
	return s
}

func line3(n int) Points {
	pts := make(Points, n)
	for i := range pts {
		pts[i] = r3.Vec{X: float64(i), Y: float64(i) * 0.5, Z: 1}
	}
	return pts
}

func TestPlotLineTooFewPoints(t *testing.T) {
	constructed := false
	render.Register(render.Registration{
		Name:     "counting",
		Priority: 1,
		New: func() (render.Renderer, error) {
			constructed = true
			return &recordingRenderer{name: "counting", target: render.NewTarget(8, 8)}, nil
		},
	})
	t.Cleanup(func() { render.Unregister("counting") })

	for _, pts := range []Points{nil, line3(1)} {
		fig, err := PlotLine(pts, WithMode("counting"))
		if !errors.Is(err, ErrTooFewPoints) {
			t.Errorf("PlotLine(%d points) error = %v, want ErrTooFewPoints", len(pts), err)
		}
		if fig != nil {
			t.Error("PlotLine returned a figure alongside an error")
		}
	}
	if constructed {
		t.Error("backend constructed before point validation")
	}
}

func TestPlotLineDrawsOneTube(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	pts := line3(5)
	fig, err := PlotLine(pts, WithMode("recorder"))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	if fig.Backend() != "recorder" {
		t.Fatalf("Backend() = %q, want recorder", fig.Backend())
	}
	if len(s.draws) != 1 {
		t.Fatalf("got %d draws, want 1", len(s.draws))
	}
	d := s.draws[0]
	if d.Op != "tube" || !d.Clear || d.Radius != render.DefaultTubeRadius {
		t.Fatalf("draw = %+v, want cleared tube with default radius", d)
	}
	diff(t, pts, d.Points)

	// Default coloring sweeps the colormap over evenly spaced mu values.
	want := make([]paint.RGBA, 5)
	for i := range want {
		want[i] = paint.HueSweep.At(float64(i) / 4)
	}
	diff(t, want, d.Colors)
}

func TestPlotLineUniformColor(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	fig, err := PlotLine(line3(4), WithMode("recorder"), WithColor(paint.Red))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	want := []paint.RGBA{paint.Red, paint.Red, paint.Red, paint.Red}
	diff(t, want, s.draws[0].Colors)
}

func TestPlotLineMuColormap(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	mu := []float64{0, 0.1, 0.9}
	fig, err := PlotLine(line3(3), WithMode("recorder"), WithMu(mu), WithColormap(paint.Grays))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	want := make([]paint.RGBA, len(mu))
	for i, m := range mu {
		want[i] = paint.Grays.At(m)
	}
	diff(t, want, s.draws[0].Colors)
}

func TestPlotLineMuLengthMismatch(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	fig, err := PlotLine(line3(5), WithMode("recorder"), WithMu([]float64{0, 1}))
	if err == nil {
		t.Fatal("expected error for mismatched mu length")
	}
	if fig != nil {
		t.Fatal("PlotLine returned a figure alongside an error")
	}
	if !s.closed {
		t.Error("backend not closed after draw failure")
	}
}

func TestPlotLineRadiusAndClear(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	fig, err := PlotLine(line3(3), WithMode("recorder"), WithTubeRadius(2.5), WithClear(false))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	d := s.draws[0]
	if d.Radius != 2.5 || d.Clear {
		t.Fatalf("draw = %+v, want radius 2.5 without clear", d)
	}
}

func TestPlotLineUnknownMode(t *testing.T) {
	_, err := PlotLine(line3(3), WithMode("no-such-backend"))
	var ue *render.UnknownModeError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want *render.UnknownModeError", err)
	}
	if ue.Mode != "no-such-backend" {
		t.Fatalf("Mode = %q, want no-such-backend", ue.Mode)
	}
}

func TestPlotLineDrawFailureWrapsBackend(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)
	s.failOn = 1

	_, err := PlotLine(line3(3), WithMode("recorder"))
	var be *render.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *render.BackendError", err)
	}
	if be.Backend != "recorder" {
		t.Fatalf("Backend = %q, want recorder", be.Backend)
	}
	if !s.closed {
		t.Error("backend not closed after draw failure")
	}
}

// TestPlotLineAutoFallsThrough exercises end-to-end automatic resolution:
// a failing high-priority backend is skipped, the next one wins, and
// lower-priority backends are never probed.
func TestPlotLineAutoFallsThrough(t *testing.T) {
	var probed []string
	render.Register(render.Registration{
		Name:     "flaky",
		Priority: 300,
		Probe: func() error {
			probed = append(probed, "flaky")
			return errors.New("unavailable")
		},
		New: func() (render.Renderer, error) { return nil, errors.New("unavailable") },
	})
	t.Cleanup(func() { render.Unregister("flaky") })

	winner := &recordingRenderer{name: "winner", target: render.NewTarget(8, 8)}
	render.Register(render.Registration{
		Name:     "winner",
		Priority: 200,
		Probe: func() error {
			probed = append(probed, "winner")
			return nil
		},
		New: func() (render.Renderer, error) { return winner, nil },
	})
	t.Cleanup(func() { render.Unregister("winner") })

	lowProbed := false
	render.Register(render.Registration{
		Name:     "low",
		Priority: 150,
		Probe: func() error {
			lowProbed = true
			return nil
		},
		New: func() (render.Renderer, error) {
			return &recordingRenderer{name: "low", target: render.NewTarget(8, 8)}, nil
		},
	})
	t.Cleanup(func() { render.Unregister("low") })

	fig, err := PlotLine(line3(4))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	if fig.Backend() != "winner" {
		t.Fatalf("Backend() = %q, want winner", fig.Backend())
	}
	diff(t, []string{"flaky", "winner"}, probed)
	if lowProbed {
		t.Error("lower-priority backend probed after a winner was found")
	}
	if len(winner.draws) != 1 {
		t.Fatalf("got %d draws on winner, want 1", len(winner.draws))
	}
}

func TestFigureLineComposes(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	fig, err := PlotLine(line3(4), WithMode("recorder"))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	if err := fig.Line(line3(3), WithColor(paint.Green)); err != nil {
		t.Fatalf("Line: %v", err)
	}
	if len(s.draws) != 2 {
		t.Fatalf("got %d draws, want 2", len(s.draws))
	}
	second := s.draws[1]
	if second.Clear {
		t.Error("composed line cleared the target")
	}
	diff(t, []paint.RGBA{paint.Green, paint.Green, paint.Green}, second.Colors)

	// An explicit clear request on a composed line is honored.
	if err := fig.Line(line3(3), WithClear(true)); err != nil {
		t.Fatalf("Line: %v", err)
	}
	if !s.draws[2].Clear {
		t.Error("WithClear(true) ignored on composed line")
	}
}

func TestFigureLineTooFewPoints(t *testing.T) {
	registerRecorder(t, "recorder", 1)

	fig, err := PlotLine(line3(4), WithMode("recorder"))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	if err := fig.Line(line3(1)); !errors.Is(err, ErrTooFewPoints) {
		t.Fatalf("Line(1 point) error = %v, want ErrTooFewPoints", err)
	}
}

func TestFigureTargetSize(t *testing.T) {
	registerRecorder(t, "recorder", 1)

	fig, err := PlotLine(line3(4), WithMode("recorder"), WithSize(100, 80))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	if w, h := fig.Target().Width(), fig.Target().Height(); w != 100 || h != 80 {
		t.Fatalf("target = %dx%d, want 100x80", w, h)
	}
	b := fig.Image().Bounds()
	if b.Dx() != 100 || b.Dy() != 80 {
		t.Fatalf("image = %dx%d, want 100x80", b.Dx(), b.Dy())
	}
}

func TestFigureSavePNG(t *testing.T) {
	registerRecorder(t, "recorder", 1)

	fig, err := PlotLine(line3(4), WithMode("recorder"))
	if err != nil {
		t.Fatalf("PlotLine: %v", err)
	}
	defer fig.Close()

	path := filepath.Join(t.TempDir(), "out.png")
	if err := fig.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func TestPlotCellNoCurves(t *testing.T) {
	if _, err := PlotCell(nil); !errors.Is(err, ErrNoCurves) {
		t.Fatalf("PlotCell(nil) error = %v, want ErrNoCurves", err)
	}
	if _, err := PlotCell([][]Points{}); !errors.Is(err, ErrNoCurves) {
		t.Fatalf("PlotCell(empty) error = %v, want ErrNoCurves", err)
	}
}

func TestPlotCellDrawsAllSegments(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	curves := [][]Points{
		{line3(4), line3(3)},
		{line3(5)},
		{line3(2), line3(6)},
	}
	rng := rand.New(rand.NewSource(7))
	fig, err := PlotCell(curves, WithMode("recorder"), WithRand(rng))
	if err != nil {
		t.Fatalf("PlotCell: %v", err)
	}
	defer fig.Close()

	if len(s.draws) != 5 {
		t.Fatalf("got %d draws, want 5", len(s.draws))
	}
	for i, d := range s.draws {
		if d.Op != "tube" {
			t.Fatalf("draw %d op = %q, want tube", i, d.Op)
		}
		if clear := i == 0; d.Clear != clear {
			t.Errorf("draw %d clear = %v, want %v", i, d.Clear, clear)
		}
	}

	// The color assignment is reproducible from the seed, uniform within a
	// curve, and identical across a curve's segments.
	want := paint.DistinctColors(3, rand.New(rand.NewSource(7)))
	curveOf := []int{0, 0, 1, 2, 2}
	for i, d := range s.draws {
		for j, c := range d.Colors {
			if c != want[curveOf[i]] {
				t.Fatalf("draw %d color %d = %+v, want %+v", i, j, c, want[curveOf[i]])
			}
		}
	}
}

func TestPlotCellSeededColorsReproducible(t *testing.T) {
	run := func() []recordedDraw {
		s := registerRecorder(t, "recorder", 1)
		curves := [][]Points{{line3(4)}, {line3(4)}}
		fig, err := PlotCell(curves, WithMode("recorder"), WithRand(rand.New(rand.NewSource(42))))
		if err != nil {
			t.Fatalf("PlotCell: %v", err)
		}
		fig.Close()
		render.Unregister("recorder")
		return s.draws
	}
	diff(t, run(), run())
}

func TestPlotCellBoundary(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	fig, err := PlotCell([][]Points{{line3(4)}},
		WithMode("recorder"), WithBoundary(5), WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("PlotCell: %v", err)
	}
	defer fig.Close()

	if len(s.draws) != 13 {
		t.Fatalf("got %d draws, want 1 tube + 12 edges", len(s.draws))
	}
	for i, d := range s.draws[1:] {
		if d.Op != "line" {
			t.Fatalf("draw %d op = %q, want line", i+1, d.Op)
		}
		if d.Clear {
			t.Errorf("boundary edge %d cleared the target", i)
		}
		if len(d.Points) != 2 {
			t.Fatalf("edge %d has %d points, want 2", i, len(d.Points))
		}
		if d.Color != paint.Gray {
			t.Fatalf("edge %d color = %+v, want gray", i, d.Color)
		}
	}
}

func TestPlotCellBadBoundary(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)

	_, err := PlotCell([][]Points{{line3(4)}},
		WithMode("recorder"), WithBoundary(1, 2), WithRand(rand.New(rand.NewSource(1))))
	if !errors.Is(err, ErrBadBoundary) {
		t.Fatalf("error = %v, want ErrBadBoundary", err)
	}
	if !s.closed {
		t.Error("backend not closed after boundary failure")
	}
}

func TestPlotCellDrawFailureClosesFigure(t *testing.T) {
	s := registerRecorder(t, "recorder", 1)
	s.failOn = 2

	_, err := PlotCell([][]Points{{line3(4)}, {line3(4)}},
		WithMode("recorder"), WithRand(rand.New(rand.NewSource(1))))
	var be *render.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *render.BackendError", err)
	}
	if !s.closed {
		t.Error("backend not closed after draw failure")
	}
}
