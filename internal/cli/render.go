package cli

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knotviz/knotviz"
	"github.com/knotviz/knotviz/paint"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output PNG path; empty derives it from the scene path
	mode   string // backend mode string; "auto" probes in priority order
	view   bool   // open a viewer window after rendering
}

// newRenderCmd creates the render command for turning scene files into
// PNG images.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{mode: "auto"}

	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Render a scene file to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default: scene path with .png)")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "rendering backend: auto, gpu, gonum or mesh")
	cmd.Flags().BoolVar(&opts.view, "view", false, "open a window with the result")

	return cmd
}

// runRender loads the scene, renders it and writes the PNG. With --view
// it then blocks in a viewer window until the user closes it.
func runRender(ctx context.Context, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	scene, err := loadScene(path)
	if err != nil {
		return err
	}
	logger.Infof("Loaded %s: %d curves", path, len(scene.Curves))

	fig, err := buildFigure(scene, opts.mode)
	if err != nil {
		return err
	}
	defer fig.Close()
	logger.Infof("Rendered with %s backend", fig.Backend())

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	}
	if err := fig.SavePNG(out); err != nil {
		return err
	}
	logger.Infof("Wrote %s", out)

	if opts.view {
		return fig.Show()
	}
	return nil
}

// buildFigure turns a scene description into a rendered figure.
//
// A scene naming a colormap must hold exactly one curve; the colormap is
// swept along it. Any other scene goes through cell rendering with one
// decorrelated color per curve and the optional boundary box.
func buildFigure(scene *sceneFile, mode string) (*knotviz.Figure, error) {
	curves := make([][]knotviz.Points, 0, len(scene.Curves))
	for i, c := range scene.Curves {
		pts, err := curvePoints(c)
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i+1, err)
		}
		curves = append(curves, []knotviz.Points{pts})
	}

	opts := []knotviz.Option{knotviz.WithMode(mode)}
	if scene.Width > 0 && scene.Height > 0 {
		opts = append(opts, knotviz.WithSize(scene.Width, scene.Height))
	}
	if scene.Radius > 0 {
		opts = append(opts, knotviz.WithTubeRadius(scene.Radius))
	}
	if scene.Seed != 0 {
		opts = append(opts, knotviz.WithRand(rand.New(rand.NewSource(scene.Seed))))
	}

	if scene.Colormap != "" {
		if len(curves) != 1 {
			return nil, fmt.Errorf("colormap %q needs a single-curve scene, got %d curves", scene.Colormap, len(curves))
		}
		if len(scene.Boundary) > 0 {
			return nil, fmt.Errorf("colormap and boundary cannot be combined")
		}
		cmap, ok := paint.ColormapByName(scene.Colormap)
		if !ok {
			return nil, fmt.Errorf("unknown colormap %q", scene.Colormap)
		}
		return knotviz.PlotLine(curves[0][0], append(opts, knotviz.WithColormap(cmap))...)
	}

	if len(scene.Boundary) > 0 {
		opts = append(opts, knotviz.WithBoundary(scene.Boundary...))
	}
	return knotviz.PlotCell(curves, opts...)
}
