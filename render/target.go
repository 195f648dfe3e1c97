// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/knotviz/knotviz/internal/raster"
	"github.com/knotviz/knotviz/paint"
)

// Target is the pixel destination a renderer draws into: an RGBA8
// framebuffer with a depth plane. CPU backends rasterize into it directly;
// the GPU backend copies its readback here.
//
// Target implements image.Image, so it can be handed to image/png or a
// viewer without copying.
type Target struct {
	fb *raster.Framebuffer
}

// NewTarget creates a target of the given size. Dimensions below one pixel
// are clamped.
func NewTarget(width, height int) *Target {
	return &Target{fb: raster.NewFramebuffer(width, height)}
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.fb.W }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.fb.H }

// Format returns the pixel format of the target.
func (t *Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Pixels returns direct access to the pixel data, 4 bytes per pixel.
func (t *Target) Pixels() []byte { return t.fb.Pix }

// Stride returns the number of bytes per row.
func (t *Target) Stride() int { return t.fb.W * 4 }

// Framebuffer exposes the underlying framebuffer for rasterizing backends.
func (t *Target) Framebuffer() *raster.Framebuffer { return t.fb }

// Clear fills the target with c and resets the depth plane.
func (t *Target) Clear(c paint.RGBA) {
	n := color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
	t.fb.Clear(n.R, n.G, n.B, n.A)
}

// Resize replaces the framebuffer when the size changes. Contents are not
// preserved across a size change.
func (t *Target) Resize(width, height int) {
	if width == t.fb.W && height == t.fb.H {
		return
	}
	t.fb = raster.NewFramebuffer(width, height)
}

// Image returns an *image.RGBA view sharing the target's pixel memory.
func (t *Target) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.fb.Pix,
		Stride: t.fb.W * 4,
		Rect:   image.Rect(0, 0, t.fb.W, t.fb.H),
	}
}

// ColorModel implements image.Image.
func (t *Target) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (t *Target) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.fb.W, t.fb.H)
}

// At implements image.Image.
func (t *Target) At(x, y int) color.Color {
	r, g, b, a := t.fb.At(x, y)
	return color.RGBA{R: r, G: g, B: b, A: a}
}

// EncodePNG writes the target contents as PNG.
func (t *Target) EncodePNG(w io.Writer) error {
	return png.Encode(w, t.Image())
}

// SavePNG writes the target contents to a PNG file.
func (t *Target) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, t.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var _ image.Image = (*Target)(nil)
