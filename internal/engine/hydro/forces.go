package hydro

import (
	gomath "math"

	"github.com/Faultbox/hullwater/pkg/math"
)

// BuoyancyForce returns the hydrostatic force on a sample. Only the vertical
// component is kept: horizontal pressure cancels over a closed hull. Samples
// whose center ended up above water get no buoyancy.
func BuoyancyForce(density, gravity float32, s TriangleSample) math.Vec3 {
	if s.CenterHeight > 0 {
		return math.Vec3{}
	}
	f := s.Normal.Scale(density * gravity * -s.CenterHeight * s.Area)
	return math.Vec3{Y: f.Y}
}

// LogReynolds returns log10 of the Reynolds number V*L/nu. ok is false when any
// input is not positive.
func LogReynolds(speed, length, viscosity float32) (logRe float32, ok bool) {
	if speed <= 0 || length <= 0 || viscosity <= 0 {
		return 0, false
	}
	return log10(speed) + log10(length) - log10(viscosity), true
}

// ResistanceCoefficient is the ITTC 1957 friction line 0.075/(log10(Re)-2)^2.
// Reynolds numbers at or below 100 give 0.
func ResistanceCoefficient(logRe float32) float32 {
	d := logRe - 2
	if !(d > 0) || gomath.IsInf(float64(d), 0) {
		return 0
	}
	return 0.075 / (d * d)
}

// ViscousResistance returns the skin friction force, opposing the tangential flow.
func ViscousResistance(density, cf float32, s TriangleSample) math.Vec3 {
	v := s.Velocity
	tangential := v.Sub(s.Normal.Scale(v.Dot(s.Normal))).Neg().Normalize()
	return tangential.Scale(0.5 * density * cf * s.Area * v.LengthSq())
}

// PressureDrag returns the pressure drag on a front-facing sample (cosine > 0)
// or the suction on a back-facing one. Both act along the normal.
func PressureDrag(s TriangleSample, p DragParams) math.Vec3 {
	speed := s.Velocity.Length()
	if p.ReferenceSpeed > 0 {
		speed /= p.ReferenceSpeed
	}

	if s.Cosine > 0 {
		k := (p.PressureC1*speed + p.PressureC2*speed*speed) * s.Area * pow(s.Cosine, p.PressureFallOff)
		return s.Normal.Scale(-k)
	}
	k := (p.SuctionC1*speed + p.SuctionC2*speed*speed) * s.Area * pow(-s.Cosine, p.SuctionFallOff)
	return s.Normal.Scale(k)
}

// SlammingForce returns the impact force on a sample entering the water. The
// acceleration is a finite difference of the swept volume rate of the original
// triangle the sample was cut from.
func SlammingForce(prev, cur TriangleRecord, s TriangleSample, p SlammingParams, mass, totalArea, dt float32) math.Vec3 {
	if s.Cosine < 0 || cur.OriginalArea <= 0 || totalArea <= 0 || dt <= 0 || p.MaxAcceleration <= 0 {
		return math.Vec3{}
	}

	swept := cur.Velocity.Scale(cur.SubmergedArea)
	sweptBefore := prev.Velocity.Scale(prev.SubmergedArea)
	acceleration := swept.Sub(sweptBefore).Scale(1 / (cur.OriginalArea * dt)).Length()

	ratio := clamp01(acceleration / p.MaxAcceleration)
	if ratio == 0 {
		return math.Vec3{}
	}

	stopping := s.Velocity.Scale(mass * 2 * s.Area / totalArea)
	return stopping.Scale(-pow(ratio, p.RampPower) * s.Cosine * p.Coefficient)
}

func pow(x, y float32) float32 {
	return float32(gomath.Pow(float64(x), float64(y)))
}

func log10(x float32) float32 {
	return float32(gomath.Log10(float64(x)))
}

func clamp01(x float32) float32 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
