// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/gogpu/naga"

	"github.com/knotviz/knotviz/render"
)

//go:embed shaders/tube.wgsl
var tubeShaderWGSL string

// TubeVertex is the GPU-compatible vertex layout.
// Must match VertexIn in shaders/tube.wgsl.
type TubeVertex struct {
	PX, PY, PZ float32 // position
	NX, NY, NZ float32 // normal
	R, G, B, A float32 // color
}

// cameraUniform is the GPU layout of the camera block, column-major.
// Must match Camera in shaders/tube.wgsl.
type cameraUniform struct {
	ViewProj [16]float32
	Eye      [4]float32
}

// compileTubeShader compiles the embedded WGSL to SPIR-V words.
// SPIR-V is little-endian 32-bit words.
func compileTubeShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(tubeShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// buildCameraUniform computes the view-projection matrix for a camera
// orbiting center. Projection follows the WebGPU convention: right-handed
// view space with depth mapped to [0, 1].
func buildCameraUniform(cam render.Camera, width, height int) cameraUniform {
	az := cam.Azimuth * math.Pi / 180
	el := cam.Elevation * math.Pi / 180
	d := cam.Distance

	var eye, up [3]float64
	if cam.Up == "y" {
		eye = [3]float64{
			d * math.Cos(el) * math.Cos(az),
			d * math.Sin(el),
			d * math.Cos(el) * math.Sin(az),
		}
		up = [3]float64{0, 1, 0}
	} else {
		eye = [3]float64{
			d * math.Cos(el) * math.Cos(az),
			d * math.Cos(el) * math.Sin(az),
			d * math.Sin(el),
		}
		up = [3]float64{0, 0, 1}
	}

	f := norm3([3]float64{-eye[0], -eye[1], -eye[2]})
	r := norm3(cross3(f, up))
	u := cross3(r, f)

	// Row-major view matrix, world to view, -z forward.
	view := [4][4]float64{
		{r[0], r[1], r[2], -dot3(r, eye)},
		{u[0], u[1], u[2], -dot3(u, eye)},
		{-f[0], -f[1], -f[2], dot3(f, eye)},
		{0, 0, 0, 1},
	}

	fov := cam.FOV
	if fov <= 0 {
		fov = render.DefaultFOV
	}
	tanHalf := math.Tan(fov / 2 * math.Pi / 180)
	aspect := float64(width) / float64(height)
	near := d / 100
	far := d * 10

	proj := [4][4]float64{
		{1 / (aspect * tanHalf), 0, 0, 0},
		{0, 1 / tanHalf, 0, 0},
		{0, 0, far / (near - far), near * far / (near - far)},
		{0, 0, -1, 0},
	}

	vp := mul4(proj, view)

	var out cameraUniform
	// Column-major flattening as WGSL mat4x4 expects.
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out.ViewProj[col*4+row] = float32(vp[row][col])
		}
	}
	out.Eye = [4]float32{float32(eye[0]), float32(eye[1]), float32(eye[2]), 1}
	return out
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm3(v [3]float64) [3]float64 {
	n := math.Sqrt(dot3(v, v))
	if n == 0 {
		return v
	}
	return [3]float64{v[0] / n, v[1] / n, v[2] / n}
}

func mul4(a, b [4][4]float64) [4][4]float64 {
	var m [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				m[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return m
}
