package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz"
)

// sceneFile is the on-disk description of a scene: figure settings plus a
// list of curves given either inline or as torus knot parameters.
//
// Example:
//
//	width = 800
//	height = 600
//	radius = 0.2
//	seed = 42
//	boundary = [10.0]
//
//	[[curve]]
//	torus = [2, 3, 300]
//
//	[[curve]]
//	points = [[0.0, 0.0, 0.0], [5.0, 0.0, 1.0], [5.0, 5.0, 2.0]]
type sceneFile struct {
	Width    int          `toml:"width"`
	Height   int          `toml:"height"`
	Radius   float64      `toml:"radius"`
	Seed     int64        `toml:"seed"`
	Colormap string       `toml:"colormap"`
	Boundary []float64    `toml:"boundary"`
	Curves   []sceneCurve `toml:"curve"`
}

// sceneCurve is one [[curve]] table. Exactly one of Torus and Points must
// be set.
type sceneCurve struct {
	// Torus holds torus knot parameters p and q, optionally followed by
	// the number of sample points.
	Torus []int `toml:"torus"`

	// Points holds inline [x, y, z] rows.
	Points [][]float64 `toml:"points"`
}

// loadScene reads and decodes a TOML scene file.
func loadScene(path string) (*sceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scene sceneFile
	if err := toml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(scene.Curves) == 0 {
		return nil, fmt.Errorf("%s: scene has no curves", path)
	}
	return &scene, nil
}

// defaultTorusSamples is the sample count for torus curves that do not
// name one.
const defaultTorusSamples = 200

// curvePoints materializes one scene curve.
func curvePoints(c sceneCurve) (knotviz.Points, error) {
	switch {
	case len(c.Torus) > 0 && len(c.Points) > 0:
		return nil, fmt.Errorf("curve sets both torus and points")
	case len(c.Torus) > 0:
		n := defaultTorusSamples
		switch len(c.Torus) {
		case 2:
		case 3:
			n = c.Torus[2]
		default:
			return nil, fmt.Errorf("torus needs [p, q] or [p, q, samples], got %d values", len(c.Torus))
		}
		return knotviz.TorusKnot(c.Torus[0], c.Torus[1], n), nil
	case len(c.Points) > 0:
		pts := make(knotviz.Points, len(c.Points))
		for i, row := range c.Points {
			if len(row) != 3 {
				return nil, fmt.Errorf("point %d has %d coordinates, want 3", i+1, len(row))
			}
			pts[i] = r3.Vec{X: row[0], Y: row[1], Z: row[2]}
		}
		return pts, nil
	default:
		return nil, fmt.Errorf("curve sets neither torus nor points")
	}
}
