// Package hydro computes the submerged part of a rigid hull's triangle mesh every
// physics step and derives the hydrodynamic forces acting on it.
//
// The pipeline for one step is: sample vertices against the water height field,
// classify each triangle by how many of its vertices are above water, clip it
// against the water line into sub-triangles with a horizontal edge, compute the
// per sub-triangle metrics and sum buoyancy, viscous resistance, pressure drag and
// slamming into one force applied at each sub-triangle's pressure center.
//
// World space is Y-up. Heights are signed: positive above the water surface.
package hydro

import "github.com/Faultbox/hullwater/pkg/math"

// HeightField reports the signed vertical distance from a world position to the
// water surface at time t. Positive values are above water. Implementations must
// return the same value for the same inputs within one step.
type HeightField interface {
	Height(p math.Vec3, t float32) float32
}

// HeightFunc adapts an ordinary function to HeightField.
type HeightFunc func(p math.Vec3, t float32) float32

// Height calls f(p, t).
func (f HeightFunc) Height(p math.Vec3, t float32) float32 {
	return f(p, t)
}

// RigidBody is the part of the host physics body the simulator reads from and
// pushes forces into. Forces are accumulated by the body and consumed by its
// integrator at the end of the step.
type RigidBody interface {
	WorldCenterOfMass() math.Vec3
	LinearVelocity() math.Vec3
	AngularVelocity() math.Vec3
	Mass() float32
	ApplyForceAtPoint(force, point math.Vec3)
}

// PointVelocity returns the velocity of a world point rigidly attached to the body.
func PointVelocity(body RigidBody, point math.Vec3) math.Vec3 {
	r := point.Sub(body.WorldCenterOfMass())
	return body.LinearVelocity().Add(body.AngularVelocity().Cross(r))
}
