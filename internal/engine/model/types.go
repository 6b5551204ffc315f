// Package model builds hull meshes for the water simulation.
package model

import "github.com/Faultbox/hullwater/pkg/math"

// Mesh is an indexed triangle list in body-local space. Triangles are wound so
// that cross(b-a, c-a) points out of the hull.
type Mesh struct {
	Vertices []math.Vec3
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
