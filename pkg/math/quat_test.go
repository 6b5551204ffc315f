package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))
	v := Vec3{1, 0, 0}

	got := q.Rotate(v)
	want := q.ToMat4().TransformPoint(v)
	if got.Distance(want) > 0.0001 {
		t.Errorf("Rotate() = %v, matrix gives %v", got, want)
	}
	// 90 degrees about Y takes +X to -Z
	if got.Distance(Vec3{0, 0, -1}) > 0.0001 {
		t.Errorf("Rotate() = %v, want (0, 0, -1)", got)
	}
}

func TestQuatConjugateUndoesRotation(t *testing.T) {
	q := QuatFromEuler(0.3, -0.7, 1.1)
	v := Vec3{1, 2, 3}
	back := q.Conjugate().Rotate(q.Rotate(v))
	if back.Distance(v) > 0.0001 {
		t.Errorf("Conjugate().Rotate(Rotate(v)) = %v, want %v", back, v)
	}
}

func TestQuatIntegrate(t *testing.T) {
	// Spin about Y at pi/2 rad/s for one second in small steps
	q := QuatIdentity()
	omega := Vec3{0, float32(math.Pi / 2), 0}
	for i := 0; i < 1000; i++ {
		q = q.Integrate(omega, 0.001)
	}

	want := QuatFromAxisAngle(Vec3{0, 1, 0}, float32(math.Pi/2))
	if d := math.Abs(float64(q.Dot(want))); d < 0.9999 {
		t.Errorf("integrated orientation %v differs from %v (|dot| = %v)", q, want, d)
	}
}
