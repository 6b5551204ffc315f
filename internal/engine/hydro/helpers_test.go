package hydro

import (
	gomath "math"

	"github.com/Faultbox/hullwater/pkg/math"
)

// flatWater is a calm surface at y=0.
var flatWater = HeightFunc(func(p math.Vec3, _ float32) float32 { return p.Y })

type appliedForce struct {
	force, point math.Vec3
}

type testBody struct {
	com     math.Vec3
	vel     math.Vec3
	ang     math.Vec3
	mass    float32
	applied []appliedForce
}

func (b *testBody) WorldCenterOfMass() math.Vec3 { return b.com }
func (b *testBody) LinearVelocity() math.Vec3    { return b.vel }
func (b *testBody) AngularVelocity() math.Vec3   { return b.ang }
func (b *testBody) Mass() float32                { return b.mass }

func (b *testBody) ApplyForceAtPoint(force, point math.Vec3) {
	b.applied = append(b.applied, appliedForce{force, point})
}

func approx(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(tol)
}

func approxVec(a, b math.Vec3, tol float32) bool {
	return approx(a.X, b.X, tol) && approx(a.Y, b.Y, tol) && approx(a.Z, b.Z, tol)
}

// sampled builds a triangle sampled against flat water, slots in argument order.
func sampled(a, b, c math.Vec3) [3]SampledVertex {
	return [3]SampledVertex{
		{Position: a, Height: a.Y, Slot: 0},
		{Position: b, Height: b.Y, Slot: 1},
		{Position: c, Height: c.Y, Slot: 2},
	}
}
