// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides z-buffered rasterization of projected 3D geometry:
// depth-tested triangle fill with per-vertex color interpolation and DDA line
// drawing. It operates on a raw framebuffer and knows nothing about cameras
// or meshes.
package raster

import "math"

// Vertex is a projected point: screen coordinates in pixels, depth (smaller
// is nearer the viewer), and an unpremultiplied color with components in
// [0, 1].
type Vertex struct {
	X, Y, Z    float64
	R, G, B, A float64
}

// Framebuffer is an RGBA pixel buffer with a parallel depth buffer.
type Framebuffer struct {
	W, H  int
	Pix   []uint8 // 4 bytes per pixel, row-major
	Depth []float32
}

// NewFramebuffer creates a framebuffer cleared to transparent black with all
// depths at +Inf.
func NewFramebuffer(w, h int) *Framebuffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	f := &Framebuffer{
		W:     w,
		H:     h,
		Pix:   make([]uint8, w*h*4),
		Depth: make([]float32, w*h),
	}
	f.resetDepth()
	return f
}

// Clear fills every pixel with the given color and resets the depth buffer.
func (f *Framebuffer) Clear(r, g, b, a uint8) {
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = r
		f.Pix[i+1] = g
		f.Pix[i+2] = b
		f.Pix[i+3] = a
	}
	f.resetDepth()
}

func (f *Framebuffer) resetDepth() {
	inf := float32(math.Inf(1))
	for i := range f.Depth {
		f.Depth[i] = inf
	}
}

// At returns the color at (x, y) as 8-bit RGBA. Out-of-bounds reads are zero.
func (f *Framebuffer) At(x, y int) (r, g, b, a uint8) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return 0, 0, 0, 0
	}
	i := (y*f.W + x) * 4
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3]
}

// shade writes a depth-tested, alpha-blended sample.
func (f *Framebuffer) shade(x, y int, z float64, r, g, b, a float64) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	di := y*f.W + x
	if float32(z) > f.Depth[di] {
		return
	}
	f.Depth[di] = float32(z)

	pi := di * 4
	sr := clamp01(r)
	sg := clamp01(g)
	sb := clamp01(b)
	sa := clamp01(a)

	if sa >= 1 {
		f.Pix[pi] = uint8(sr*255 + 0.5)
		f.Pix[pi+1] = uint8(sg*255 + 0.5)
		f.Pix[pi+2] = uint8(sb*255 + 0.5)
		f.Pix[pi+3] = 255
		return
	}

	inv := 1 - sa
	dr := float64(f.Pix[pi]) / 255
	dg := float64(f.Pix[pi+1]) / 255
	db := float64(f.Pix[pi+2]) / 255
	da := float64(f.Pix[pi+3]) / 255
	f.Pix[pi] = uint8((sr*sa + dr*inv) * 255)
	f.Pix[pi+1] = uint8((sg*sa + dg*inv) * 255)
	f.Pix[pi+2] = uint8((sb*sa + db*inv) * 255)
	f.Pix[pi+3] = uint8((sa + da*inv) * 255)
}

// FillTriangle rasterizes one depth-tested triangle with barycentric
// interpolation of depth and color.
func (f *Framebuffer) FillTriangle(a, b, c Vertex) {
	area := edge(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	if area == 0 {
		return
	}

	minX := int(math.Floor(min3(a.X, b.X, c.X)))
	maxX := int(math.Ceil(max3(a.X, b.X, c.X)))
	minY := int(math.Floor(min3(a.Y, b.Y, c.Y)))
	maxY := int(math.Ceil(max3(a.Y, b.Y, c.Y)))

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > f.W-1 {
		maxX = f.W - 1
	}
	if maxY > f.H-1 {
		maxY = f.H - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	inv := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			w0 := edge(b.X, b.Y, c.X, c.Y, px, py) * inv
			w1 := edge(c.X, c.Y, a.X, a.Y, px, py) * inv
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			z := w0*a.Z + w1*b.Z + w2*c.Z
			f.shade(x, y, z,
				w0*a.R+w1*b.R+w2*c.R,
				w0*a.G+w1*b.G+w2*c.G,
				w0*a.B+w1*b.B+w2*c.B,
				w0*a.A+w1*b.A+w2*c.A,
			)
		}
	}
}

// DrawLine draws a depth-tested line by DDA stepping, interpolating depth
// and color between the endpoints.
func (f *Framebuffer) DrawLine(a, b Vertex) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := a.X + dx*t
		y := a.Y + dy*t
		f.shade(int(x), int(y),
			a.Z+(b.Z-a.Z)*t,
			a.R+(b.R-a.R)*t,
			a.G+(b.G-a.G)*t,
			a.B+(b.B-a.B)*t,
			a.A+(b.A-a.A)*t,
		)
	}
}

// edge is the signed doubled area of triangle (x0,y0)(x1,y1)(x2,y2).
func edge(x0, y0, x1, y1, x2, y2 float64) float64 {
	return (x1-x0)*(y2-y0) - (y1-y0)*(x2-x0)
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
