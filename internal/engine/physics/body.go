// Package physics is a minimal rigid body integrator for driving a hull
// through the water simulation.
package physics

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hullwater/pkg/math"
)

// ErrInvalidBody is returned for non-positive mass or inertia.
var ErrInvalidBody = errors.New("invalid rigid body")

// Body is a rigid body whose center of mass is its origin. Forces and torques
// accumulate between calls to Integrate.
type Body struct {
	position        math.Vec3
	rotation        math.Quat
	linearVelocity  math.Vec3
	angularVelocity math.Vec3

	mass           float32
	inverseInertia math.Vec3 // body-local principal axes

	force  math.Vec3
	torque math.Vec3

	LinearDamping  float32
	AngularDamping float32
}

// NewBody creates a body at rest with the given mass and principal moments of inertia.
func NewBody(mass float32, inertia math.Vec3) (*Body, error) {
	if mass <= 0 {
		return nil, fmt.Errorf("%w: mass %v", ErrInvalidBody, mass)
	}
	if inertia.X <= 0 || inertia.Y <= 0 || inertia.Z <= 0 {
		return nil, fmt.Errorf("%w: inertia %v", ErrInvalidBody, inertia)
	}
	return &Body{
		rotation:       math.QuatIdentity(),
		mass:           mass,
		inverseInertia: math.Vec3{X: 1 / inertia.X, Y: 1 / inertia.Y, Z: 1 / inertia.Z},
	}, nil
}

// BoxInertia returns the principal moments of a solid box of the given size.
func BoxInertia(mass float32, size math.Vec3) math.Vec3 {
	x2, y2, z2 := size.X*size.X, size.Y*size.Y, size.Z*size.Z
	k := mass / 12
	return math.Vec3{X: k * (y2 + z2), Y: k * (x2 + z2), Z: k * (x2 + y2)}
}

// SetPose teleports the body.
func (b *Body) SetPose(position math.Vec3, rotation math.Quat) {
	b.position = position
	b.rotation = rotation.Normalize()
}

// SetVelocity overwrites the linear and angular velocity.
func (b *Body) SetVelocity(linear, angular math.Vec3) {
	b.linearVelocity = linear
	b.angularVelocity = angular
}

func (b *Body) Position() math.Vec3 { return b.position }
func (b *Body) Rotation() math.Quat { return b.rotation }
func (b *Body) Mass() float32       { return b.mass }

// Pose returns the local-to-world transform.
func (b *Body) Pose() math.Mat4 {
	return math.Pose(b.position, b.rotation)
}

// WorldCenterOfMass returns the body position.
func (b *Body) WorldCenterOfMass() math.Vec3 { return b.position }

func (b *Body) LinearVelocity() math.Vec3  { return b.linearVelocity }
func (b *Body) AngularVelocity() math.Vec3 { return b.angularVelocity }

// AccumulatedForce returns the force and torque gathered since the last Integrate.
func (b *Body) AccumulatedForce() (force, torque math.Vec3) {
	return b.force, b.torque
}

// ApplyForce adds a force through the center of mass.
func (b *Body) ApplyForce(force math.Vec3) {
	b.force = b.force.Add(force)
}

// ApplyForceAtPoint adds a force at a world point, producing torque about the
// center of mass.
func (b *Body) ApplyForceAtPoint(force, point math.Vec3) {
	b.force = b.force.Add(force)
	b.torque = b.torque.Add(point.Sub(b.position).Cross(force))
}

// Integrate advances the body by dt with semi-implicit Euler under vertical
// gravity, then clears the accumulated force and torque.
func (b *Body) Integrate(dt, gravity float32) {
	if dt <= 0 {
		return
	}

	acc := b.force.Scale(1 / b.mass).Add(math.Vec3{Y: gravity})
	b.linearVelocity = b.linearVelocity.Add(acc.Scale(dt)).Scale(damp(b.LinearDamping, dt))

	// Torque goes through the inertia tensor in body space.
	local := b.rotation.Conjugate().Rotate(b.torque).Mul(b.inverseInertia)
	angAcc := b.rotation.Rotate(local)
	b.angularVelocity = b.angularVelocity.Add(angAcc.Scale(dt)).Scale(damp(b.AngularDamping, dt))

	b.position = b.position.Add(b.linearVelocity.Scale(dt))
	b.rotation = b.rotation.Integrate(b.angularVelocity, dt)

	b.force = math.Vec3{}
	b.torque = math.Vec3{}
}

func damp(k, dt float32) float32 {
	if k <= 0 {
		return 1
	}
	return 1 / (1 + k*dt)
}
