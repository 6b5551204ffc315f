package hydro

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when simulator parameters are out of range.
var ErrInvalidParams = errors.New("invalid hydro parameters")

// DragParams are the tunable pressure and suction drag coefficients.
type DragParams struct {
	ReferenceSpeed  float32
	PressureC1      float32
	PressureC2      float32
	PressureFallOff float32
	SuctionC1       float32
	SuctionC2       float32
	SuctionFallOff  float32
}

// SlammingParams tune the slamming force. Coefficient is an empirical multiplier
// with no physical derivation; leave it at 1 unless tuning by eye.
type SlammingParams struct {
	MaxAcceleration float32
	RampPower       float32
	Coefficient     float32
}

// ForceToggles switch individual force contributions on or off.
type ForceToggles struct {
	Buoyancy bool
	Viscous  bool
	Drag     bool
	Slamming bool
}

// AllForces enables every contribution.
func AllForces() ForceToggles {
	return ForceToggles{Buoyancy: true, Viscous: true, Drag: true, Slamming: true}
}

// Params configures a Simulator. Values are read once at construction.
type Params struct {
	Density   float32 // kg/m^3
	Gravity   float32 // vertical acceleration, negative is down
	Viscosity float32 // kinematic viscosity, m^2/s
	Drag      DragParams
	Slamming  SlammingParams
	Epsilon   float32 // height tolerance at the water line
	TimeStep  float32 // fixed step length, s
	Forces    ForceToggles

	// TravelCurve, when set, shapes the fluid travel length along the hull for
	// the viscous resistance coefficient.
	TravelCurve *CurveTable
}

// DefaultParams returns parameters for fresh water at 15 C and a 50 Hz step.
func DefaultParams() Params {
	return Params{
		Density:   999.1026,
		Gravity:   -9.81,
		Viscosity: 1.1e-6,
		Drag: DragParams{
			ReferenceSpeed:  1,
			PressureC1:      10,
			PressureC2:      10,
			PressureFallOff: 0.5,
			SuctionC1:       10,
			SuctionC2:       10,
			SuctionFallOff:  0.5,
		},
		Slamming: SlammingParams{
			MaxAcceleration: 100,
			RampPower:       2,
			Coefficient:     1,
		},
		Epsilon:  1e-5,
		TimeStep: 0.02,
		Forces:   AllForces(),
	}
}

// Validate checks that every parameter the force model divides by is usable.
func (p Params) Validate() error {
	switch {
	case p.Density <= 0:
		return fmt.Errorf("%w: density must be positive, got %v", ErrInvalidParams, p.Density)
	case p.Viscosity <= 0:
		return fmt.Errorf("%w: viscosity must be positive, got %v", ErrInvalidParams, p.Viscosity)
	case p.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidParams, p.Epsilon)
	case p.TimeStep <= 0:
		return fmt.Errorf("%w: time step must be positive, got %v", ErrInvalidParams, p.TimeStep)
	case p.Drag.ReferenceSpeed <= 0:
		return fmt.Errorf("%w: reference speed must be positive, got %v", ErrInvalidParams, p.Drag.ReferenceSpeed)
	case p.Slamming.MaxAcceleration <= 0:
		return fmt.Errorf("%w: max acceleration must be positive, got %v", ErrInvalidParams, p.Slamming.MaxAcceleration)
	}
	return nil
}
