package sim

import (
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/hullwater/internal/config"
	"github.com/Faultbox/hullwater/internal/engine/hydro"
	"github.com/Faultbox/hullwater/internal/engine/model"
	"github.com/Faultbox/hullwater/internal/engine/water"
	"github.com/Faultbox/hullwater/pkg/math"
)

// HydroParams converts the force model sections of cfg.
func HydroParams(cfg *config.Config) (hydro.Params, error) {
	p := hydro.Params{
		Density:   cfg.Water.Density,
		Gravity:   cfg.Water.Gravity,
		Viscosity: cfg.Water.Viscosity,
		Drag: hydro.DragParams{
			ReferenceSpeed:  cfg.Drag.ReferenceSpeed,
			PressureC1:      cfg.Drag.Pressure.C1,
			PressureC2:      cfg.Drag.Pressure.C2,
			PressureFallOff: cfg.Drag.Pressure.FallOff,
			SuctionC1:       cfg.Drag.Suction.C1,
			SuctionC2:       cfg.Drag.Suction.C2,
			SuctionFallOff:  cfg.Drag.Suction.FallOff,
		},
		Slamming: hydro.SlammingParams{
			MaxAcceleration: cfg.Slamming.MaxAcceleration,
			RampPower:       cfg.Slamming.RampPower,
			Coefficient:     cfg.Slamming.Coefficient,
		},
		Epsilon:  cfg.Clipping.Epsilon,
		TimeStep: cfg.Simulation.FixedTimeStep,
		Forces: hydro.ForceToggles{
			Buoyancy: cfg.Forces.Buoyancy,
			Viscous:  cfg.Forces.Viscous,
			Drag:     cfg.Forces.Drag,
			Slamming: cfg.Forces.Slamming,
		},
	}

	if len(cfg.Viscosity.TravelCurve) >= 2 {
		curve, err := hydro.PiecewiseLinear(cfg.Viscosity.TravelCurve)
		if err != nil {
			return hydro.Params{}, fmt.Errorf("viscosity.travel_curve: %w", err)
		}
		table, err := hydro.NewCurveTable(curve, cfg.Viscosity.TableSize)
		if err != nil {
			return hydro.Params{}, fmt.Errorf("viscosity.table_size: %w", err)
		}
		p.TravelCurve = table
	}
	return p, p.Validate()
}

// Water builds the height field named by cfg.Water.Kind.
func Water(cfg *config.Config) (hydro.HeightField, error) {
	w := cfg.Water
	switch strings.ToLower(w.Kind) {
	case config.WaterPlane:
		return water.Plane{Level: w.Level}, nil
	case config.WaterWave:
		return water.Wave{
			Level:     w.Level,
			Amplitude: w.Wave.Amplitude,
			Speed:     w.Wave.Speed,
			Length:    w.Wave.Length,
			Direction: math.Vec2{X: w.Wave.Direction[0], Y: w.Wave.Direction[1]},
		}, nil
	case config.WaterGrid:
		origin := math.Vec2{X: w.Grid.Origin[0], Y: w.Grid.Origin[1]}
		if len(w.Grid.Heights) == 0 {
			return water.FlatGrid(origin, w.Grid.CellSize, w.Grid.Cols, w.Grid.Rows, w.Level)
		}
		return water.NewGrid(origin, w.Grid.CellSize, w.Grid.Cols, w.Grid.Rows, w.Grid.Heights)
	default:
		return nil, fmt.Errorf("unknown water kind %q", w.Kind)
	}
}

// Hull builds the configured hull shape and the validated mesh the simulator reads.
func Hull(cfg *config.Config) (*model.Mesh, *hydro.Mesh, error) {
	size := vec3(cfg.Hull.Size)
	m, err := model.Build(cfg.Hull.Shape, size)
	if err != nil {
		return nil, nil, err
	}
	if com := vec3(cfg.Hull.CenterOfMass); com != (math.Vec3{}) {
		m = model.Transform(m, math.Translate(-com.X, -com.Y, -com.Z))
	}
	mesh, err := hydro.NewMesh(m.Vertices, m.Indices)
	if err != nil {
		return nil, nil, fmt.Errorf("hull mesh: %w", err)
	}
	return m, mesh, nil
}

// startRotation converts the configured Euler degrees.
func startRotation(deg [3]float32) math.Quat {
	const toRad = gomath.Pi / 180
	return math.QuatFromEuler(deg[0]*toRad, deg[1]*toRad, deg[2]*toRad)
}

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
