package hydro

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hullwater/pkg/math"
)

// Mesh validation errors.
var (
	ErrEmptyMesh  = errors.New("mesh has no triangles")
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	ErrIndexRange = errors.New("triangle index out of range")
)

// Mesh is an indexed triangle list in body-local space. Triangles are wound so
// that cross(b-a, c-a) points out of the hull.
type Mesh struct {
	vertices []math.Vec3
	indices  []uint32
}

// NewMesh validates and copies the vertex and index arrays.
func NewMesh(vertices []math.Vec3, indices []uint32) (*Mesh, error) {
	if len(indices) == 0 || len(vertices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: got %d indices", ErrIndexCount, len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexRange, idx, i, len(vertices))
		}
	}

	m := &Mesh{
		vertices: make([]math.Vec3, len(vertices)),
		indices:  make([]uint32, len(indices)),
	}
	copy(m.vertices, vertices)
	copy(m.indices, indices)
	return m, nil
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Vertex returns the body-local position of vertex i.
func (m *Mesh) Vertex(i int) math.Vec3 {
	return m.vertices[i]
}

// Triangle returns the three vertex indices of triangle i in winding order.
func (m *Mesh) Triangle(i int) (a, b, c int) {
	return int(m.indices[i*3]), int(m.indices[i*3+1]), int(m.indices[i*3+2])
}

// TriangleArea returns the area of the triangle (a, b, c).
func TriangleArea(a, b, c math.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

// TriangleNormal returns the unit normal of (a, b, c) following its winding.
func TriangleNormal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
