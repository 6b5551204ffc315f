package water

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/hullwater/internal/engine/hydro"
	"github.com/Faultbox/hullwater/pkg/math"
)

var (
	_ hydro.HeightField = Plane{}
	_ hydro.HeightField = Wave{}
	_ hydro.HeightField = (*Grid)(nil)
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestPlaneHeight(t *testing.T) {
	w := Plane{Level: 2}
	tests := []struct {
		p    math.Vec3
		want float32
	}{
		{math.Vec3{Y: 2}, 0},
		{math.Vec3{X: 5, Y: 3, Z: -4}, 1},
		{math.Vec3{Y: -1}, -3},
	}
	for _, tt := range tests {
		if got := w.Height(tt.p, 10); got != tt.want {
			t.Errorf("Height(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestWave(t *testing.T) {
	w := Wave{Level: 1, Amplitude: 0.5, Speed: 2, Length: 1}

	tests := []struct {
		name    string
		x, z, t float32
		want    float32
	}{
		{"origin", 0, 0, 0, 1},
		{"crest", gomath.Pi / 2, 0, 0, 1.5},
		{"trough", -gomath.Pi / 2, 7, 0, 0.5},
		{"moved by time", 0, 0, gomath.Pi / 4, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.SurfaceY(tt.x, tt.z, tt.t); !near(got, tt.want) {
				t.Errorf("SurfaceY(%v, %v, %v) = %v, want %v", tt.x, tt.z, tt.t, got, tt.want)
			}
		})
	}

	if got := w.Height(math.Vec3{X: gomath.Pi / 2, Y: 2}, 0); !near(got, 0.5) {
		t.Errorf("Height() = %v, want 0.5", got)
	}
}

func TestWaveDirection(t *testing.T) {
	w := Wave{Amplitude: 1, Length: 1, Direction: math.Vec2{Y: 3}}
	if got := w.SurfaceY(gomath.Pi/2, 0, 0); !near(got, 0) {
		t.Errorf("SurfaceY across the wave = %v, want 0", got)
	}
	if got := w.SurfaceY(0, gomath.Pi/2, 0); !near(got, 1) {
		t.Errorf("SurfaceY along the wave = %v, want 1", got)
	}
}

func TestWaveDegenerate(t *testing.T) {
	for _, w := range []Wave{{Level: 3, Amplitude: 1}, {Level: 3, Length: 1}} {
		if got := w.SurfaceY(1, 2, 3); got != 3 {
			t.Errorf("%+v.SurfaceY() = %v, want 3", w, got)
		}
	}
}

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name       string
		cellSize   float32
		cols, rows int
		heights    []float32
		wantErr    error
	}{
		{"valid", 1, 2, 2, make([]float32, 4), nil},
		{"too small", 1, 1, 2, make([]float32, 2), ErrGridSize},
		{"bad cell", 0, 2, 2, make([]float32, 4), ErrGridCell},
		{"short heights", 1, 3, 2, make([]float32, 4), ErrGridHeights},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(math.Vec2{}, tt.cellSize, tt.cols, tt.rows, tt.heights)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewGrid() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGridBilinear(t *testing.T) {
	// 3x2 samples, 2 units apart, starting at (-2, 0).
	g, err := NewGrid(math.Vec2{X: -2}, 2, 3, 2, []float32{
		0, 1, 2,
		2, 3, 4,
	})
	if err != nil {
		t.Fatalf("NewGrid() error = %v", err)
	}

	tests := []struct {
		name string
		x, z float32
		want float32
	}{
		{"corner", -2, 0, 0},
		{"sample", 0, 2, 3},
		{"mid edge", -1, 0, 0.5},
		{"cell center", 1, 1, 2.5},
		{"clamped low", -10, -10, 0},
		{"clamped high", 10, 10, 4},
		{"clamped x only", 10, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.SurfaceY(tt.x, tt.z, 0); !near(got, tt.want) {
				t.Errorf("SurfaceY(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
			}
		})
	}

	if got := g.Height(math.Vec3{X: 1, Y: 5, Z: 1}, 0); !near(got, 2.5) {
		t.Errorf("Height() = %v, want 2.5", got)
	}
}

func TestFlatGrid(t *testing.T) {
	g, err := FlatGrid(math.Vec2{}, 1, 4, 3, 1.5)
	if err != nil {
		t.Fatalf("FlatGrid() error = %v", err)
	}
	if cols, rows := g.Size(); cols != 4 || rows != 3 {
		t.Errorf("Size() = %d, %d, want 4, 3", cols, rows)
	}
	g.Set(1, 1, 2.5)
	if g.At(1, 1) != 2.5 || g.At(0, 0) != 1.5 {
		t.Errorf("At() = %v, %v, want 2.5, 1.5", g.At(1, 1), g.At(0, 0))
	}
	if got := g.SurfaceY(0.5, 0.5, 0); !near(got, 1.75) {
		t.Errorf("SurfaceY(0.5, 0.5) = %v, want 1.75", got)
	}
}
