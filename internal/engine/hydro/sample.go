package hydro

import "github.com/Faultbox/hullwater/pkg/math"

// SampledVertex is a world-space vertex tagged with its height above the water.
// Slot is the vertex's position (0..2) in its triangle's winding order.
type SampledVertex struct {
	Position math.Vec3
	Height   float32
	Slot     int
}

// VertexSampler transforms mesh vertices to world space and samples their heights.
// Its buffers are sized once for the mesh and reused every step.
type VertexSampler struct {
	mesh    *Mesh
	water   HeightField
	world   []math.Vec3
	heights []float32
}

// NewVertexSampler returns a sampler for mesh against the given water.
func NewVertexSampler(mesh *Mesh, water HeightField) *VertexSampler {
	return &VertexSampler{
		mesh:    mesh,
		water:   water,
		world:   make([]math.Vec3, mesh.VertexCount()),
		heights: make([]float32, mesh.VertexCount()),
	}
}

// Sample refreshes every vertex for the given pose and timestamp.
func (s *VertexSampler) Sample(pose math.Mat4, t float32) {
	for i := range s.world {
		p := pose.TransformPoint(s.mesh.Vertex(i))
		s.world[i] = p
		s.heights[i] = s.water.Height(p, t)
	}
}

// Triangle returns the sampled vertices of triangle i in winding order.
func (s *VertexSampler) Triangle(i int) [3]SampledVertex {
	a, b, c := s.mesh.Triangle(i)
	return [3]SampledVertex{
		{Position: s.world[a], Height: s.heights[a], Slot: 0},
		{Position: s.world[b], Height: s.heights[b], Slot: 1},
		{Position: s.world[c], Height: s.heights[c], Slot: 2},
	}
}

// Position returns the last sampled world position of vertex i.
func (s *VertexSampler) Position(i int) math.Vec3 {
	return s.world[i]
}

// Height returns the last sampled height of vertex i.
func (s *VertexSampler) Height(i int) float32 {
	return s.heights[i]
}
