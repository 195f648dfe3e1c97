// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/internal/raster"
	"github.com/knotviz/knotviz/internal/tube"
	"github.com/knotviz/knotviz/paint"
)

// BackendMesh is the software mesh backend. It is always available and
// registers itself with the lowest priority, so automatic resolution
// reaches it only when the hardware-backed backends fail.
const BackendMesh = "mesh"

const meshPriority = 10

func init() {
	Register(Registration{
		Name:     BackendMesh,
		Priority: meshPriority,
		New: func() (Renderer, error) {
			return NewMesh(DefaultWidth, DefaultHeight), nil
		},
	})
}

// Mesh renders curves by tessellating them into tube meshes and
// rasterizing the triangles on the CPU with depth testing and Lambert-style
// shading.
//
// The first draw of a frame fixes the scene framing: the curve is
// recentered by subtracting its centroid, and the turntable camera distance
// is set to 1.5 times the largest absolute coordinate of the original
// points, which keeps the whole curve in view at any scale. Draws composed
// onto the same frame with clear=false reuse that framing so multiple
// curves stay aligned.
type Mesh struct {
	target     *Target
	camera     Camera
	customCam  bool
	background paint.RGBA

	center   r3.Vec
	frameSet bool
}

// NewMesh creates a mesh renderer with a target of the given size.
func NewMesh(width, height int) *Mesh {
	return &Mesh{
		target:     NewTarget(width, height),
		background: paint.White,
	}
}

// Name reports "mesh".
func (m *Mesh) Name() string { return BackendMesh }

// Target returns the renderer's framebuffer target.
func (m *Mesh) Target() *Target { return m.target }

// Close releases the renderer. The mesh renderer holds no external
// resources, so Close only invalidates the frame state.
func (m *Mesh) Close() error {
	m.frameSet = false
	return nil
}

// SetCamera overrides the automatic turntable framing.
func (m *Mesh) SetCamera(c Camera) {
	m.camera = c
	m.customCam = true
}

// SetBackground changes the clear color. The default is white.
func (m *Mesh) SetBackground(c paint.RGBA) { m.background = c }

// DrawTube tessellates points into a tube and rasterizes it.
func (m *Mesh) DrawTube(points []r3.Vec, colors []paint.RGBA, radius float64, clear bool) error {
	if len(points) < 2 {
		return ErrNotEnoughPoints
	}
	if radius <= 0 {
		radius = DefaultTubeRadius
	}
	m.beginFrame(points, clear)

	msh := tube.Build(points, colors, radius, tube.DefaultRingPoints)
	if msh == nil {
		return ErrNotEnoughPoints
	}
	logger().Debug("mesh draw tube",
		"points", len(points), "triangles", msh.TriangleCount(), "radius", radius)

	for i := range msh.Positions {
		msh.Positions[i] = r3.Sub(msh.Positions[i], m.center)
	}
	m.rasterize(msh)
	return nil
}

// DrawPolyline projects points and draws depth-tested line segments.
func (m *Mesh) DrawPolyline(points []r3.Vec, color paint.RGBA, clear bool) error {
	if len(points) < 2 {
		return ErrNotEnoughPoints
	}
	m.beginFrame(points, clear)

	fb := m.target.Framebuffer()
	w, h := m.target.Width(), m.target.Height()
	prev, prevOK := m.vertex(points[0], color, w, h)
	for _, p := range points[1:] {
		cur, ok := m.vertex(p, color, w, h)
		if prevOK && ok {
			fb.DrawLine(prev, cur)
		}
		prev, prevOK = cur, ok
	}
	return nil
}

// beginFrame clears the target when requested and fixes the scene framing
// on the first draw of a frame. The centroid and camera distance come from
// the pre-translation point set.
func (m *Mesh) beginFrame(points []r3.Vec, clear bool) {
	if clear {
		m.target.Clear(m.background)
		m.frameSet = false
	}
	if m.frameSet {
		return
	}
	m.center = centroid(points)
	if !m.customCam {
		dist := 1.5 * maxAbsCoord(points)
		if dist < 1e-9 {
			dist = 1
		}
		m.camera = DefaultCamera(dist)
	}
	m.frameSet = true
}

// vertex projects a recentered point into screen space with a flat color.
func (m *Mesh) vertex(p r3.Vec, c paint.RGBA, w, h int) (raster.Vertex, bool) {
	x, y, depth, ok := m.camera.Project(r3.Sub(p, m.center), w, h)
	return raster.Vertex{X: x, Y: y, Z: depth, R: c.R, G: c.G, B: c.B, A: c.A}, ok
}

// Shading weights for the rasterized tube surface.
const (
	meshAmbient = 0.35
	meshDiffuse = 0.65
)

// rasterize projects the mesh and fills its triangles with depth testing.
// Brightness is a headlight model: ambient plus diffuse scaled by the
// unsigned angle between the surface normal and the view direction, so the
// inside of a tube is lit too.
func (m *Mesh) rasterize(msh *tube.Mesh) {
	fb := m.target.Framebuffer()
	w, h := m.target.Width(), m.target.Height()
	eye, _, _, _ := m.camera.basis()

	verts := make([]raster.Vertex, len(msh.Positions))
	visible := make([]bool, len(msh.Positions))
	for i, p := range msh.Positions {
		x, y, depth, ok := m.camera.Project(p, w, h)
		if !ok {
			continue
		}
		view := r3.Unit(r3.Sub(eye, p))
		bright := meshAmbient + meshDiffuse*math.Abs(r3.Dot(msh.Normals[i], view))
		if bright > 1 {
			bright = 1
		}
		c := msh.Colors[i]
		verts[i] = raster.Vertex{
			X: x, Y: y, Z: depth,
			R: c.R * bright, G: c.G * bright, B: c.B * bright, A: c.A,
		}
		visible[i] = true
	}

	idx := msh.Indices
	for i := 0; i+2 < len(idx); i += 3 {
		a, b, c := idx[i], idx[i+1], idx[i+2]
		if !visible[a] || !visible[b] || !visible[c] {
			continue
		}
		fb.FillTriangle(verts[a], verts[b], verts[c])
	}
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

func maxAbsCoord(points []r3.Vec) float64 {
	var m float64
	for _, p := range points {
		m = math.Max(m, math.Abs(p.X))
		m = math.Max(m, math.Abs(p.Y))
		m = math.Max(m, math.Abs(p.Z))
	}
	return m
}

var (
	_ Renderer         = (*Mesh)(nil)
	_ CameraSetter     = (*Mesh)(nil)
	_ BackgroundSetter = (*Mesh)(nil)
)
