package sim

import (
	"context"
	"errors"
	gomath "math"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Faultbox/hullwater/internal/config"
	"github.com/Faultbox/hullwater/internal/engine/hydro"
	"github.com/Faultbox/hullwater/internal/telemetry"
	"github.com/Faultbox/hullwater/pkg/math"
)

func near(a, b, tol float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(tol)
}

func TestHydroParams(t *testing.T) {
	cfg := config.Default()
	p, err := HydroParams(cfg)
	if err != nil {
		t.Fatalf("HydroParams() error = %v", err)
	}
	if p.TravelCurve != nil {
		t.Error("expected no travel curve by default")
	}
	if p.Density != cfg.Water.Density || p.Slamming.Coefficient != 1 || p.Drag.SuctionFallOff != 0.5 {
		t.Errorf("HydroParams() = %+v", p)
	}

	cfg.Viscosity.TravelCurve = [][2]float32{{0, 0}, {0.5, 0.1}, {1, 0}}
	cfg.Viscosity.TableSize = 32
	p, err = HydroParams(cfg)
	if err != nil {
		t.Fatalf("HydroParams() with curve error = %v", err)
	}
	if p.TravelCurve == nil || p.TravelCurve.Len() != 32 {
		t.Errorf("expected 32-entry travel curve, got %v", p.TravelCurve)
	}

	cfg.Viscosity.TravelCurve = [][2]float32{{0, 0}, {0, 1}}
	if _, err := HydroParams(cfg); !errors.Is(err, hydro.ErrCurvePoints) {
		t.Errorf("HydroParams() error = %v, want ErrCurvePoints", err)
	}

	cfg = config.Default()
	cfg.Drag.ReferenceSpeed = 0
	if _, err := HydroParams(cfg); !errors.Is(err, hydro.ErrInvalidParams) {
		t.Errorf("HydroParams() error = %v, want ErrInvalidParams", err)
	}
}

func TestWater(t *testing.T) {
	p := math.Vec3{Y: 3}
	tests := []struct {
		name    string
		modify  func(*config.WaterConfig)
		want    float32
		wantErr bool
	}{
		{"plane", func(w *config.WaterConfig) { w.Level = 1 }, 2, false},
		{"wave at rest phase", func(w *config.WaterConfig) { w.Kind = "wave"; w.Level = 0.5 }, 2.5, false},
		{"flat grid", func(w *config.WaterConfig) { w.Kind = "grid"; w.Level = -1 }, 4, false},
		{"grid heights", func(w *config.WaterConfig) {
			w.Kind = "grid"
			w.Grid = config.GridConfig{Origin: [2]float32{-1, -1}, CellSize: 2, Cols: 2, Rows: 2, Heights: []float32{1, 1, 1, 1}}
		}, 2, false},
		{"bad grid", func(w *config.WaterConfig) { w.Kind = "grid"; w.Grid.Heights = []float32{1} }, 0, true},
		{"unknown", func(w *config.WaterConfig) { w.Kind = "lava" }, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(&cfg.Water)
			field, err := Water(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Water() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := field.Height(p, 0); !near(got, tt.want, 1e-5) {
				t.Errorf("Height(%v) = %v, want %v", p, got, tt.want)
			}
		})
	}
}

func TestHull(t *testing.T) {
	for _, shape := range []string{"box", "panel", "wedge"} {
		cfg := config.Default()
		cfg.Hull.Shape = shape
		m, mesh, err := Hull(cfg)
		if err != nil {
			t.Errorf("Hull(%s) error = %v", shape, err)
			continue
		}
		if mesh.TriangleCount() != m.TriangleCount() {
			t.Errorf("Hull(%s) triangles %d != %d", shape, mesh.TriangleCount(), m.TriangleCount())
		}
	}

	cfg := config.Default()
	cfg.Hull.Shape = "sphere"
	if _, _, err := Hull(cfg); err == nil {
		t.Error("expected error for unknown shape")
	}
}

func TestHullCenterOfMass(t *testing.T) {
	cfg := config.Default()
	cfg.Hull.Size = [3]float32{2, 1, 4}
	cfg.Hull.CenterOfMass = [3]float32{0, -0.25, 0}

	m, mesh, err := Hull(cfg)
	if err != nil {
		t.Fatalf("Hull() error = %v", err)
	}
	want := math.Vec3{Y: 0.25}
	if got := m.Bounds.Center(); got.Sub(want).Length() > 1e-6 {
		t.Errorf("Bounds.Center() = %v, want %v", got, want)
	}
	if got := mesh.Vertex(0); got != m.Vertices[0] {
		t.Errorf("Vertex(0) = %v, want %v", got, m.Vertices[0])
	}
	if size := m.Bounds.Size(); size != (math.Vec3{X: 2, Y: 1, Z: 4}) {
		t.Errorf("Bounds.Size() = %v, want unchanged", size)
	}
}

func TestBoxSettlesAtDraft(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Steps = 500
	cfg.Simulation.LinearDamping = 5
	cfg.Simulation.AngularDamping = 5

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close(context.Background())

	sum, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Steps != 500 || !near(sum.Time, 10, 1e-3) {
		t.Errorf("Run() = %d steps, %v s, want 500, 10", sum.Steps, sum.Time)
	}

	// 2x1x4 box of 2000 kg: draft m/(rho*A), center half a height above the bottom.
	draft := cfg.Hull.Mass / (cfg.Water.Density * 8)
	want := 0.5 - draft
	if !near(sum.Position.Y, want, 0.01) {
		t.Errorf("final y = %v, want %v", sum.Position.Y, want)
	}
	if sum.Velocity.Length() > 0.05 {
		t.Errorf("final velocity = %v, want ~0", sum.Velocity)
	}
	if sum.MaxSlamming <= 0 {
		t.Error("expected a slamming force when the box hits the water")
	}
	// Bottom plus the wetted sides at rest; the dive goes deeper.
	if rest := 8 + 2*(2+4)*draft; sum.MaxSubmergedArea < rest-0.01 {
		t.Errorf("max submerged area = %v, want at least %v", sum.MaxSubmergedArea, rest)
	}
}

func TestShapesAndWaters(t *testing.T) {
	for _, shape := range []string{"box", "panel", "wedge"} {
		for _, kind := range []string{"plane", "wave", "grid"} {
			t.Run(shape+"/"+kind, func(t *testing.T) {
				cfg := config.Default()
				cfg.Hull.Shape = shape
				cfg.Hull.Velocity = [3]float32{1, 0, 2}
				cfg.Hull.Rotation = [3]float32{5, 30, -5}
				cfg.Water.Kind = kind
				cfg.Viscosity.TravelCurve = [][2]float32{{0, 0}, {1, 0.2}}
				cfg.Simulation.Steps = 100

				s, err := New(cfg)
				if err != nil {
					t.Fatalf("New() error = %v", err)
				}
				sum, err := s.Run(context.Background())
				if err != nil {
					t.Fatalf("Run() error = %v", err)
				}
				if !sum.Position.IsFinite() {
					t.Errorf("final position = %v", sum.Position)
				}
			})
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.Default()
	cfg.Simulation.Steps = 10
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}

	cfg.Simulation.Steps = 0
	s, err = New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sum, err := s.Run(ctx)
	if err != nil || sum.Steps != 0 {
		t.Errorf("Run() = %d steps, %v, want 0, nil", sum.Steps, err)
	}
}

func TestRealtimeRunStopsOnDeadline(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.Steps = 0
	cfg.Simulation.Realtime = true
	cfg.Simulation.FixedTimeStep = 0.01

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	sum, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sum.Steps == 0 || sum.Steps > 20 {
		t.Errorf("Run() = %d steps in 100ms at 10ms, want a paced count", sum.Steps)
	}
}

func TestDiverged(t *testing.T) {
	cfg := config.Default()
	nan := float32(gomath.NaN())
	cfg.Hull.Velocity = [3]float32{0, nan, 0}

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := s.Step(); !errors.Is(err, ErrDiverged) {
		t.Errorf("Step() error = %v, want ErrDiverged", err)
	}
}

func TestTelemetryStream(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry.Addr = "127.0.0.1:0"
	cfg.Telemetry.EveryN = 1
	cfg.Hull.Position = [3]float32{0, 0.2, 0}

	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close(context.Background())

	addr := s.TelemetryAddr()
	if !strings.HasPrefix(addr, "127.0.0.1:") {
		t.Fatalf("TelemetryAddr() = %q", addr)
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for s.hub.Clients() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("telemetry client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := s.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var frame telemetry.Frame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if frame.Type != "step" || frame.Step != 1 {
		t.Errorf("frame = %s/%d, want step/1", frame.Type, frame.Step)
	}
	if frame.Pieces == 0 || len(frame.Triangles) != frame.Pieces {
		t.Errorf("frame has %d pieces and %d triangles", frame.Pieces, len(frame.Triangles))
	}
}
