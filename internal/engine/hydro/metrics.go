package hydro

import (
	gomath "math"

	"github.com/Faultbox/hullwater/pkg/math"
)

// minCosineSpeed is the speed below which a sample's velocity cosine is 0.
const minCosineSpeed = 1e-4

// TriangleSample holds the per sub-triangle quantities the force model works on.
type TriangleSample struct {
	Original     int
	Orientation  Orientation
	Center       math.Vec3
	CenterHeight float32
	Normal       math.Vec3
	Area         float32
	Velocity     math.Vec3
	Cosine       float32
}

// Measure computes the sample for a clipped triangle. The center height is
// sampled from water at t, not interpolated from the vertices.
func Measure(ct ClippedTriangle, body RigidBody, water HeightField, t float32) TriangleSample {
	v1, v2, v3 := ct.Vertices[0].Position, ct.Vertices[1].Position, ct.Vertices[2].Position
	center := PressureCenter(ct)
	velocity := PointVelocity(body, center)

	s := TriangleSample{
		Original:     ct.Original,
		Orientation:  ct.Orientation,
		Center:       center,
		CenterHeight: water.Height(center, t),
		Normal:       TriangleNormal(v1, v2, v3),
		Area:         ct.Area,
		Velocity:     velocity,
	}
	if speed := velocity.Length(); speed >= minCosineSpeed {
		s.Cosine = velocity.Dot(s.Normal) / speed
	}
	return s
}

// PressureCenter returns the point where the hydrostatic pressure over the
// triangle resultant acts, assuming pressure varies linearly with height.
// Level triangles, and those where the closed form degenerates, use the centroid.
func PressureCenter(ct ClippedTriangle) math.Vec3 {
	a, b, c := ct.Vertices[0], ct.Vertices[1], ct.Vertices[2]

	switch ct.Orientation {
	case ApexUp:
		// a is the apex, b and c share a height.
		z0 := a.Height
		h := b.Height - a.Height
		if den := 6*z0 + 4*h; !nearZero(den) {
			t := (4*z0 + 3*h) / den
			toBase := b.Position.Add(c.Position).Scale(0.5).Sub(a.Position)
			return a.Position.Add(toBase.Scale(t))
		}
	case BaseUp:
		// a and b share a height, c is the lowest vertex.
		z0 := a.Height
		h := c.Height - a.Height
		if den := 6*z0 + 2*h; !nearZero(den) {
			t := (2*z0 + h) / den
			toTop := a.Position.Add(b.Position).Scale(0.5).Sub(c.Position)
			return c.Position.Add(toTop.Scale(t))
		}
	}
	return a.Position.Add(b.Position).Add(c.Position).Scale(1.0 / 3)
}

func nearZero(f float32) bool {
	return gomath.Abs(float64(f)) < 1e-9
}
