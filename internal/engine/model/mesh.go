package model

import (
	"fmt"
	"strings"

	"github.com/Faultbox/hullwater/pkg/math"
)

// Shape names accepted by Build.
const (
	ShapeBox   = "box"
	ShapePanel = "panel"
	ShapeWedge = "wedge"
)

// Build returns the named hull shape with the given size (width X, height Y, length Z).
func Build(shape string, size math.Vec3) (*Mesh, error) {
	shape = strings.ToLower(shape)
	if size.X <= 0 || size.Z <= 0 || (shape != ShapePanel && size.Y <= 0) {
		return nil, fmt.Errorf("invalid hull size %v", size)
	}
	switch shape {
	case ShapeBox:
		return Box(size), nil
	case ShapePanel:
		return Panel(size.X, size.Z), nil
	case ShapeWedge:
		return Wedge(size), nil
	default:
		return nil, fmt.Errorf("unknown hull shape %q", shape)
	}
}

// Box returns a closed box centered on the origin, four vertices per face.
func Box(size math.Vec3) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	m := &Mesh{}

	// Each face is spanned by u and v with u x v along the outward normal.
	m.addQuad(math.Vec3{X: hx}, math.Vec3{Y: hy}, math.Vec3{Z: hz})
	m.addQuad(math.Vec3{X: -hx}, math.Vec3{Z: hz}, math.Vec3{Y: hy})
	m.addQuad(math.Vec3{Y: hy}, math.Vec3{Z: hz}, math.Vec3{X: hx})
	m.addQuad(math.Vec3{Y: -hy}, math.Vec3{X: hx}, math.Vec3{Z: hz})
	m.addQuad(math.Vec3{Z: hz}, math.Vec3{X: hx}, math.Vec3{Y: hy})
	m.addQuad(math.Vec3{Z: -hz}, math.Vec3{Y: hy}, math.Vec3{X: hx})

	m.Bounds = computeBounds(m.Vertices)
	return m
}

// Panel returns a flat horizontal width x length sheet at y=0 facing down, as the
// bottom of a hull would.
func Panel(width, length float32) *Mesh {
	m := &Mesh{}
	m.addQuad(math.Vec3{}, math.Vec3{X: width / 2}, math.Vec3{Z: length / 2})
	m.Bounds = computeBounds(m.Vertices)
	return m
}

// Wedge returns a V-bottomed prism along Z: a flat deck of the given width at
// +height/2 and a keel line at -height/2.
func Wedge(size math.Vec3) *Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	section := [3]math.Vec3{{X: -hx, Y: hy}, {X: hx, Y: hy}, {Y: -hy}}

	m := &Mesh{}
	for _, p := range section {
		m.Vertices = append(m.Vertices, p.Add(math.Vec3{Z: -hz}), p.Add(math.Vec3{Z: hz}))
	}
	// Vertex 2k is section[k] at the stern, 2k+1 at the bow.
	for k := 0; k < 3; k++ {
		a, b := uint32(2*k), uint32(2*((k+1)%3))
		m.Indices = append(m.Indices, a, b, b+1, a, b+1, a+1)
	}
	m.Indices = append(m.Indices, 0, 2, 4, 1, 3, 5)

	orientOutward(m, math.Vec3{Y: hy / 3})
	m.Bounds = computeBounds(m.Vertices)
	return m
}

// addQuad appends the rectangle center±u±v as two triangles. u x v must point
// out of the hull.
func (m *Mesh) addQuad(center, u, v math.Vec3) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		center.Sub(u).Sub(v),
		center.Add(u).Sub(v),
		center.Add(u).Add(v),
		center.Sub(u).Add(v),
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// orientOutward flips triangles of a convex mesh whose normal faces the interior
// point inside.
func orientOutward(m *Mesh, inside math.Vec3) {
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(centroid.Sub(inside)) < 0 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
		}
	}
}

// Transform returns a copy of m with every vertex transformed by mat.
func Transform(m *Mesh, mat math.Mat4) *Mesh {
	out := &Mesh{
		Vertices: make([]math.Vec3, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = mat.TransformPoint(v)
	}
	copy(out.Indices, m.Indices)
	out.Bounds = computeBounds(out.Vertices)
	return out
}

// SurfaceArea returns the summed triangle area.
func SurfaceArea(m *Mesh) float32 {
	var area float32
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		area += b.Sub(a).Cross(c.Sub(a)).Length() / 2
	}
	return area
}

// Volume returns the enclosed volume of a closed, outward-wound mesh.
func Volume(m *Mesh) float32 {
	var vol float32
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		vol += a.Dot(b.Cross(c)) / 6
	}
	return vol
}

func computeBounds(vertices []math.Vec3) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0], Max: vertices[0]}
	for _, p := range vertices[1:] {
		b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}
