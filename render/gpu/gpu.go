// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu provides the GPU rendering backend. It acquires a WebGPU
// device through gogpu/wgpu and registers itself with the highest backend
// priority, so automatic resolution prefers it whenever an adapter exists.
//
// To enable it, import the package for its side effects:
//
//	import _ "github.com/knotviz/knotviz/render/gpu"
package gpu

import (
	"math"

	"github.com/gogpu/gpucontext"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/internal/raster"
	"github.com/knotviz/knotviz/internal/tube"
	"github.com/knotviz/knotviz/paint"
	"github.com/knotviz/knotviz/render"
)

// BackendGPU is the identifier for the GPU backend.
const BackendGPU = "gpu"

const gpuPriority = 100

func init() {
	render.Register(render.Registration{
		Name:     BackendGPU,
		Priority: gpuPriority,
		Probe:    Probe,
		New: func() (render.Renderer, error) {
			return New(render.DefaultWidth, render.DefaultHeight)
		},
	})
}

// Shading weights for the tube surface.
// Must match the constants in shaders/tube.wgsl.
const (
	tubeAmbient = 0.35
	tubeDiffuse = 0.65
)

// Renderer draws tubes on a WebGPU device.
//
// The draw path is staged: geometry is tessellated and packed in the GPU
// vertex layout with the camera uniform alongside, then shaded on the CPU
// into the target. Vertex upload and the render pass move onto the queue
// once wgpu/core exposes buffer writes; the device, queue and compiled
// tube shader are already held.
//
// Framing fits the data: the camera orbits the centroid of the first
// curve of a frame at 1.5 times its bounding radius.
type Renderer struct {
	target   *render.Target
	dev      *deviceState
	provider gpucontext.DeviceProvider
	spirv    []uint32

	camera     render.Camera
	customCam  bool
	background paint.RGBA

	center   r3.Vec
	frameSet bool
}

// New acquires a GPU device and creates a renderer with a target of the
// given size.
func New(width, height int) (*Renderer, error) {
	dev, err := acquireDevice("knotviz-tube-device")
	if err != nil {
		return nil, err
	}
	spirv, err := compileTubeShader()
	if err != nil {
		dev.release()
		return nil, err
	}
	return &Renderer{
		target:     render.NewTarget(width, height),
		dev:        dev,
		spirv:      spirv,
		background: paint.White,
	}, nil
}

// NewWithProvider creates a renderer on a device owned by the host
// application, for embedding into a gogpu app. The provider's resources
// are shared, not owned: Close does not release them.
func NewWithProvider(width, height int, p gpucontext.DeviceProvider) (*Renderer, error) {
	if p == nil || p.Device() == nil {
		return nil, ErrNoGPU
	}
	spirv, err := compileTubeShader()
	if err != nil {
		return nil, err
	}
	render.Logger().Debug("gpu using host device", "format", p.SurfaceFormat())
	return &Renderer{
		target:     render.NewTarget(width, height),
		provider:   p,
		spirv:      spirv,
		background: paint.White,
	}, nil
}

// Name reports "gpu".
func (r *Renderer) Name() string { return BackendGPU }

// Target returns the renderer's target.
func (r *Renderer) Target() *render.Target { return r.target }

// Info returns adapter information, or nil when running on a host device.
func (r *Renderer) Info() *Info {
	if r.dev == nil {
		return nil
	}
	return r.dev.info
}

// Close releases the device chain. A host-provided device is left alone.
func (r *Renderer) Close() error {
	if r.dev != nil {
		r.dev.release()
		r.dev = nil
	}
	r.provider = nil
	r.frameSet = false
	return nil
}

// SetCamera overrides the automatic framing.
func (r *Renderer) SetCamera(c render.Camera) {
	r.camera = c
	r.customCam = true
}

// SetBackground changes the clear color. The default is white.
func (r *Renderer) SetBackground(c paint.RGBA) { r.background = c }

// DrawTube tessellates points into a tube with per-point colors and
// renders it.
func (r *Renderer) DrawTube(points []r3.Vec, colors []paint.RGBA, radius float64, clear bool) error {
	if r.dev == nil && r.provider == nil {
		return ErrNotInitialized
	}
	if len(points) < 2 {
		return render.ErrNotEnoughPoints
	}
	if radius <= 0 {
		radius = render.DefaultTubeRadius
	}
	r.beginFrame(points, radius, clear)

	msh := tube.Build(points, colors, radius, tube.DefaultRingPoints)
	if msh == nil {
		return render.ErrNotEnoughPoints
	}
	verts := r.packVertices(msh)
	cam := buildCameraUniform(r.camera, r.target.Width(), r.target.Height())
	render.Logger().Debug("gpu draw tube",
		"points", len(points), "vertices", len(verts), "triangles", msh.TriangleCount())

	r.shadeTriangles(verts, msh.Indices, cam)
	return nil
}

// DrawPolyline renders a single-color line strip.
func (r *Renderer) DrawPolyline(points []r3.Vec, color paint.RGBA, clear bool) error {
	if r.dev == nil && r.provider == nil {
		return ErrNotInitialized
	}
	if len(points) < 2 {
		return render.ErrNotEnoughPoints
	}
	r.beginFrame(points, 0, clear)

	fb := r.target.Framebuffer()
	w, h := r.target.Width(), r.target.Height()
	prev, prevOK := r.lineVertex(points[0], color, w, h)
	for _, p := range points[1:] {
		cur, ok := r.lineVertex(p, color, w, h)
		if prevOK && ok {
			fb.DrawLine(prev, cur)
		}
		prev, prevOK = cur, ok
	}
	return nil
}

// beginFrame clears when requested and fixes the frame's look-at point and
// camera on the first draw.
func (r *Renderer) beginFrame(points []r3.Vec, radius float64, clear bool) {
	if clear {
		r.target.Clear(r.background)
		r.frameSet = false
	}
	if r.frameSet {
		return
	}
	r.center = centroid(points)
	if !r.customCam {
		dist := 1.5 * (boundingRadius(points, r.center) + radius)
		if dist < 1e-9 {
			dist = 1
		}
		r.camera = render.DefaultCamera(dist)
	}
	r.frameSet = true
}

// packVertices converts a tessellated mesh into the GPU vertex layout.
// Positions are recentered so the camera orbit around the origin looks at
// the data.
func (r *Renderer) packVertices(msh *tube.Mesh) []TubeVertex {
	verts := make([]TubeVertex, len(msh.Positions))
	for i, p := range msh.Positions {
		c := msh.Colors[i]
		n := msh.Normals[i]
		verts[i] = TubeVertex{
			PX: float32(p.X - r.center.X),
			PY: float32(p.Y - r.center.Y),
			PZ: float32(p.Z - r.center.Z),
			NX: float32(n.X), NY: float32(n.Y), NZ: float32(n.Z),
			R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A),
		}
	}
	return verts
}

// shadeTriangles rasterizes packed vertices into the target with the same
// shading the fragment shader applies.
func (r *Renderer) shadeTriangles(verts []TubeVertex, indices []uint32, cam cameraUniform) {
	fb := r.target.Framebuffer()
	w, h := r.target.Width(), r.target.Height()
	eye := r3.Vec{X: float64(cam.Eye[0]), Y: float64(cam.Eye[1]), Z: float64(cam.Eye[2])}

	projected := make([]raster.Vertex, len(verts))
	visible := make([]bool, len(verts))
	for i, v := range verts {
		p := r3.Vec{X: float64(v.PX), Y: float64(v.PY), Z: float64(v.PZ)}
		x, y, depth, ok := r.camera.Project(p, w, h)
		if !ok {
			continue
		}
		view := r3.Unit(r3.Sub(eye, p))
		n := r3.Vec{X: float64(v.NX), Y: float64(v.NY), Z: float64(v.NZ)}
		bright := tubeAmbient + tubeDiffuse*math.Abs(r3.Dot(n, view))
		if bright > 1 {
			bright = 1
		}
		projected[i] = raster.Vertex{
			X: x, Y: y, Z: depth,
			R: float64(v.R) * bright, G: float64(v.G) * bright, B: float64(v.B) * bright,
			A: float64(v.A),
		}
		visible[i] = true
	}

	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if !visible[a] || !visible[b] || !visible[c] {
			continue
		}
		fb.FillTriangle(projected[a], projected[b], projected[c])
	}
}

func (r *Renderer) lineVertex(p r3.Vec, c paint.RGBA, w, h int) (raster.Vertex, bool) {
	x, y, depth, ok := r.camera.Project(r3.Sub(p, r.center), w, h)
	return raster.Vertex{X: x, Y: y, Z: depth, R: c.R, G: c.G, B: c.B, A: c.A}, ok
}

func centroid(points []r3.Vec) r3.Vec {
	if len(points) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, p := range points {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1/float64(len(points)), sum)
}

// boundingRadius returns the largest distance from center to any point.
func boundingRadius(points []r3.Vec, center r3.Vec) float64 {
	var m float64
	for _, p := range points {
		m = math.Max(m, r3.Norm(r3.Sub(p, center)))
	}
	return m
}

var (
	_ render.Renderer         = (*Renderer)(nil)
	_ render.CameraSetter     = (*Renderer)(nil)
	_ render.BackgroundSetter = (*Renderer)(nil)
)
