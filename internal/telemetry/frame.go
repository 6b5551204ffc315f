package telemetry

import (
	"github.com/Faultbox/hullwater/internal/engine/hydro"
	"github.com/Faultbox/hullwater/pkg/math"
)

// Frame is the JSON message sent to clients after a simulation step.
type Frame struct {
	Type          string       `json:"type"`
	Step          int          `json:"step"`
	Time          float32      `json:"time"`
	Position      [3]float32   `json:"position"`
	Rotation      [4]float32   `json:"rotation"` // x, y, z, w
	Counts        Counts       `json:"counts"`
	SubmergedArea float32      `json:"submergedArea"`
	TotalArea     float32      `json:"totalArea"`
	Force         [3]float32   `json:"force"`
	Torque        [3]float32   `json:"torque"`
	Pieces        int          `json:"pieces"`
	Triangles     [][9]float32 `json:"triangles,omitempty"` // submerged pieces, xyz per corner
}

// Counts is the number of hull triangles in each water state.
type Counts struct {
	Above     int `json:"above"`
	TwoAbove  int `json:"twoAbove"`
	OneAbove  int `json:"oneAbove"`
	Submerged int `json:"submerged"`
}

// NewFrame builds a step frame from a hydro report and the body pose, without
// the submerged geometry.
func NewFrame(step int, position math.Vec3, rotation math.Quat, r hydro.Report) Frame {
	return Frame{
		Type:     "step",
		Step:     step,
		Time:     r.Time,
		Position: vec(position),
		Rotation: [4]float32{rotation.X, rotation.Y, rotation.Z, rotation.W},
		Counts: Counts{
			Above:     r.Counts[hydro.AboveWater],
			TwoAbove:  r.Counts[hydro.TwoAboveWater],
			OneAbove:  r.Counts[hydro.OneAboveWater],
			Submerged: r.Counts[hydro.Submerged],
		},
		SubmergedArea: r.SubmergedArea,
		TotalArea:     r.TotalArea,
		Force:         vec(r.NetForce),
		Torque:        vec(r.NetTorque),
		Pieces:        len(r.Samples),
	}
}

// WithTriangles attaches the world-space corners of the submerged pieces.
func (f Frame) WithTriangles(pieces []hydro.ClippedTriangle) Frame {
	f.Triangles = make([][9]float32, len(pieces))
	for i, p := range pieces {
		for j, v := range p.Vertices {
			f.Triangles[i][3*j] = v.Position.X
			f.Triangles[i][3*j+1] = v.Position.Y
			f.Triangles[i][3*j+2] = v.Position.Z
		}
	}
	return f
}

func vec(v math.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}
