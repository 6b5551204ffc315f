package hydro

import (
	"testing"

	"github.com/Faultbox/hullwater/pkg/math"
)

func clipped(o Orientation, a, b, c math.Vec3) ClippedTriangle {
	v := sampled(a, b, c)
	return ClippedTriangle{Vertices: v, Orientation: o, Area: TriangleArea(a, b, c)}
}

func TestPressureCenter(t *testing.T) {
	tests := []struct {
		name string
		ct   ClippedTriangle
		want math.Vec3
	}{
		{
			name: "apex up",
			ct:   clipped(ApexUp, math.Vec3{Y: -1}, math.Vec3{X: 1, Y: -3}, math.Vec3{X: -1, Y: -3}),
			want: math.Vec3{Y: -1 - 2*(10.0/14)},
		},
		{
			name: "apex at surface",
			ct:   clipped(ApexUp, math.Vec3{}, math.Vec3{X: 1, Y: -4}, math.Vec3{X: -1, Y: -4}),
			want: math.Vec3{Y: -3},
		},
		{
			name: "base up",
			ct:   clipped(BaseUp, math.Vec3{X: -1, Y: -1}, math.Vec3{X: 1, Y: -1}, math.Vec3{Y: -3}),
			want: math.Vec3{Y: -2.2},
		},
		{
			name: "base at surface",
			ct:   clipped(BaseUp, math.Vec3{X: -1}, math.Vec3{X: 1}, math.Vec3{Y: -2}),
			want: math.Vec3{Y: -1},
		},
		{
			name: "level uses centroid",
			ct:   clipped(Level, math.Vec3{Y: -2}, math.Vec3{X: 3, Y: -2}, math.Vec3{Z: 3, Y: -2}),
			want: math.Vec3{X: 1, Y: -2, Z: 1},
		},
		{
			name: "degenerate falls back to centroid",
			ct:   clipped(ApexUp, math.Vec3{}, math.Vec3{X: 3}, math.Vec3{Z: 3}),
			want: math.Vec3{X: 1, Z: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PressureCenter(tt.ct); !approxVec(got, tt.want, 1e-5) {
				t.Errorf("PressureCenter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	// Downward-facing triangle at depth 2.
	ct := clipped(Level, math.Vec3{Y: -2}, math.Vec3{X: 3, Y: -2}, math.Vec3{Z: 3, Y: -2})
	ct.Original = 4

	tests := []struct {
		name       string
		body       *testBody
		wantCosine float32
		wantVel    math.Vec3
	}{
		{"at rest", &testBody{}, 0, math.Vec3{}},
		{"sinking", &testBody{vel: math.Vec3{Y: -2}}, 1, math.Vec3{Y: -2}},
		{"rising", &testBody{vel: math.Vec3{Y: 1}}, -1, math.Vec3{Y: 1}},
		{"sliding", &testBody{vel: math.Vec3{X: 1}}, 0, math.Vec3{X: 1}},
		{"spinning", &testBody{com: math.Vec3{Y: -2}, ang: math.Vec3{Y: 1}}, 0, math.Vec3{X: 1, Z: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Measure(ct, tt.body, flatWater, 0)
			if s.Original != 4 || s.Orientation != Level {
				t.Errorf("Measure() carried %d/%v, want 4/level", s.Original, s.Orientation)
			}
			if !approxVec(s.Normal, math.Vec3{Y: -1}, 1e-6) {
				t.Errorf("Measure() normal = %v, want -Y", s.Normal)
			}
			if !approx(s.CenterHeight, -2, 1e-6) {
				t.Errorf("Measure() center height = %v, want -2", s.CenterHeight)
			}
			if !approx(s.Area, 4.5, 1e-5) {
				t.Errorf("Measure() area = %v, want 4.5", s.Area)
			}
			if !approxVec(s.Velocity, tt.wantVel, 1e-5) {
				t.Errorf("Measure() velocity = %v, want %v", s.Velocity, tt.wantVel)
			}
			if !approx(s.Cosine, tt.wantCosine, 1e-5) {
				t.Errorf("Measure() cosine = %v, want %v", s.Cosine, tt.wantCosine)
			}
		})
	}
}
