package paint

import (
	"math/rand"
	"time"
)

// DistinctColors returns k visually distinct, decorrelated colors, one per
// curve in a scene. It samples k+1 evenly spaced hues over the closed [0, 1]
// interval and discards the last (hue 1 is the same color as hue 0, so
// keeping it would hand the first and last curve indistinguishable colors),
// converts each through full-saturation HSV, then shuffles the order so that
// draw order does not correlate with hue order. The shuffle permutes the
// assignment only; the hue values themselves are untouched.
//
// rng controls the permutation and may be nil, in which case a freshly
// seeded source is used. Supplying a fixed-seed rng makes the assignment
// deterministic.
func DistinctColors(k int, rng *rand.Rand) []RGBA {
	if k <= 0 {
		return nil
	}

	colors := make([]RGBA, k)
	for i := range colors {
		colors[i] = HSV(float64(i)/float64(k), 1, 1)
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return colors
}
