// Package tube tessellates 3D polylines into triangle meshes. A tube thickens
// a curve into a cylindrical surface by sweeping a ring of points along
// parallel-transported frames, producing smooth per-vertex normals and
// carrying per-point colors onto every vertex of the matching ring.
package tube

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/paint"
)

// DefaultRingPoints is the number of vertices in each cross-section ring.
const DefaultRingPoints = 8

// Mesh is an indexed triangle mesh with per-vertex colors and normals.
type Mesh struct {
	Positions []r3.Vec
	Normals   []r3.Vec
	Colors    []paint.RGBA
	Indices   []uint32 // triangle list, three indices per triangle
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Build sweeps a ring of ringPoints vertices along the polyline, one ring per
// input point, and connects consecutive rings with triangles. colors supplies
// one color per input point; if it is shorter, the last color is extended.
// Build returns nil for fewer than two points.
func Build(points []r3.Vec, colors []paint.RGBA, radius float64, ringPoints int) *Mesh {
	n := len(points)
	if n < 2 {
		return nil
	}
	if ringPoints < 3 {
		ringPoints = DefaultRingPoints
	}

	tangents := tangents(points)
	normal := perpendicular(tangents[0])

	m := &Mesh{
		Positions: make([]r3.Vec, 0, n*ringPoints),
		Normals:   make([]r3.Vec, 0, n*ringPoints),
		Colors:    make([]paint.RGBA, 0, n*ringPoints),
		Indices:   make([]uint32, 0, (n-1)*ringPoints*6),
	}

	for i := 0; i < n; i++ {
		t := tangents[i]

		// Parallel transport: keep the frame normal perpendicular to the
		// new tangent, falling back to a fresh perpendicular at kinks
		// where the projection collapses.
		proj := r3.Sub(normal, r3.Scale(r3.Dot(normal, t), t))
		if r3.Norm(proj) < 1e-12 {
			proj = perpendicular(t)
		}
		normal = r3.Unit(proj)
		binormal := r3.Cross(t, normal)

		c := colorAt(colors, i)
		for j := 0; j < ringPoints; j++ {
			theta := 2 * math.Pi * float64(j) / float64(ringPoints)
			dir := r3.Add(
				r3.Scale(math.Cos(theta), normal),
				r3.Scale(math.Sin(theta), binormal),
			)
			m.Positions = append(m.Positions, r3.Add(points[i], r3.Scale(radius, dir)))
			m.Normals = append(m.Normals, dir)
			m.Colors = append(m.Colors, c)
		}
	}

	for i := 0; i < n-1; i++ {
		ring := uint32(i * ringPoints)
		next := uint32((i + 1) * ringPoints)
		for j := 0; j < ringPoints; j++ {
			a := ring + uint32(j)
			b := next + uint32(j)
			j1 := uint32((j + 1) % ringPoints)
			c := next + j1
			d := ring + j1
			m.Indices = append(m.Indices, a, b, c, a, c, d)
		}
	}

	return m
}

// tangents returns the unit tangent at every point: central differences in
// the interior, one-sided at the ends. Zero-length steps inherit the
// previous tangent so duplicate points do not produce a degenerate frame.
func tangents(points []r3.Vec) []r3.Vec {
	n := len(points)
	out := make([]r3.Vec, n)
	prev := r3.Vec{X: 1}
	for i := 0; i < n; i++ {
		var d r3.Vec
		switch {
		case i == 0:
			d = r3.Sub(points[1], points[0])
		case i == n-1:
			d = r3.Sub(points[n-1], points[n-2])
		default:
			d = r3.Sub(points[i+1], points[i-1])
		}
		if r3.Norm(d) < 1e-12 {
			out[i] = prev
			continue
		}
		out[i] = r3.Unit(d)
		prev = out[i]
	}
	return out
}

// perpendicular returns a unit vector perpendicular to t, seeded from the
// coordinate axis least aligned with it.
func perpendicular(t r3.Vec) r3.Vec {
	axis := r3.Vec{X: 1}
	ax, ay, az := math.Abs(t.X), math.Abs(t.Y), math.Abs(t.Z)
	if ay <= ax && ay <= az {
		axis = r3.Vec{Y: 1}
	} else if az <= ax && az <= ay {
		axis = r3.Vec{Z: 1}
	}
	p := r3.Cross(t, axis)
	if r3.Norm(p) < 1e-12 {
		p = r3.Cross(t, r3.Vec{Y: 1})
	}
	return r3.Unit(p)
}

func colorAt(colors []paint.RGBA, i int) paint.RGBA {
	if len(colors) == 0 {
		return paint.White
	}
	if i >= len(colors) {
		return colors[len(colors)-1]
	}
	return colors[i]
}
