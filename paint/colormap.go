package paint

import "sort"

// Colormap maps a normalized position in [0, 1] to a color. Tube draws use a
// colormap to turn per-point arc-length parameters into per-point colors.
type Colormap interface {
	At(t float64) RGBA
}

// ColormapFunc adapts a plain function to the Colormap interface.
type ColormapFunc func(t float64) RGBA

// At returns f(t).
func (f ColormapFunc) At(t float64) RGBA { return f(t) }

// Stop is a color at a fixed position in a stop-based colormap.
type Stop struct {
	Offset float64 // position in the map, 0.0 to 1.0
	Color  RGBA
}

// Stops is a colormap defined by interpolating between color stops.
// Stops should be sorted by offset; At sorts a copy when they are not.
type Stops []Stop

// At returns the interpolated color at t. Positions outside [0, 1] clamp to
// the edge colors. An empty map yields Transparent.
func (s Stops) At(t float64) RGBA {
	if len(s) == 0 {
		return Transparent
	}
	if len(s) == 1 {
		return s[0].Color
	}

	sorted := s
	if !sort.SliceIsSorted(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset }) {
		sorted = make(Stops, len(s))
		copy(sorted, s)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	}

	if t <= sorted[0].Offset {
		return sorted[0].Color
	}
	if t >= sorted[len(sorted)-1].Offset {
		return sorted[len(sorted)-1].Color
	}

	idx := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Offset >= t
	})

	lo, hi := sorted[idx-1], sorted[idx]
	if hi.Offset == lo.Offset {
		return lo.Color
	}
	localT := (t - lo.Offset) / (hi.Offset - lo.Offset)
	return lo.Color.Lerp(hi.Color, localT)
}

// HueSweep is the default tube colormap: the full-saturation, full-value hue
// circle. Arc-length position maps directly to hue, so a closed curve colored
// with evenly spaced parameters wraps smoothly back to its starting color.
var HueSweep Colormap = ColormapFunc(func(t float64) RGBA {
	return HSV(t, 1, 1)
})

// Grays runs linearly from black to white.
var Grays Colormap = Stops{
	{0, Black},
	{1, White},
}

// Viridis is the perceptually uniform map popularized by matplotlib.
var Viridis Colormap = Stops{
	{0.0, RGB(68/255.0, 1/255.0, 84/255.0)},
	{0.1, RGB(72/255.0, 35/255.0, 116/255.0)},
	{0.2, RGB(64/255.0, 67/255.0, 135/255.0)},
	{0.3, RGB(52/255.0, 94/255.0, 141/255.0)},
	{0.4, RGB(41/255.0, 120/255.0, 142/255.0)},
	{0.5, RGB(32/255.0, 144/255.0, 140/255.0)},
	{0.6, RGB(34/255.0, 167/255.0, 132/255.0)},
	{0.7, RGB(68/255.0, 190/255.0, 112/255.0)},
	{0.8, RGB(121/255.0, 209/255.0, 81/255.0)},
	{0.9, RGB(189/255.0, 222/255.0, 38/255.0)},
	{1.0, RGB(253/255.0, 231/255.0, 37/255.0)},
}

// ColormapByName resolves the colormap names accepted in scene files.
func ColormapByName(name string) (Colormap, bool) {
	switch name {
	case "", "hsv", "hue":
		return HueSweep, true
	case "gray", "grays":
		return Grays, true
	case "viridis":
		return Viridis, true
	}
	return nil, false
}
