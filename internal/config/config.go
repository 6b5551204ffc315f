// Package config handles simulation configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// Water kinds.
const (
	WaterPlane = "plane"
	WaterWave  = "wave"
	WaterGrid  = "grid"
)

// Config holds all simulation settings.
type Config struct {
	Water      WaterConfig      `yaml:"water"`
	Drag       DragConfig       `yaml:"drag"`
	Slamming   SlammingConfig   `yaml:"slamming"`
	Clipping   ClippingConfig   `yaml:"clipping"`
	Viscosity  ViscosityConfig  `yaml:"viscosity"`
	Forces     ForcesConfig     `yaml:"forces"`
	Hull       HullConfig       `yaml:"hull"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WaterConfig holds fluid properties and the surface the hull floats in.
type WaterConfig struct {
	Density   float32    `yaml:"density"`   // kg/m^3
	Gravity   float32    `yaml:"gravity"`   // m/s^2, negative is down
	Viscosity float32    `yaml:"viscosity"` // kinematic, m^2/s
	Kind      string     `yaml:"kind"`      // plane, wave or grid
	Level     float32    `yaml:"level"`
	Wave      WaveConfig `yaml:"wave"`
	Grid      GridConfig `yaml:"grid"`
}

// WaveConfig holds the travelling wave shape.
type WaveConfig struct {
	Amplitude float32    `yaml:"amplitude"`
	Speed     float32    `yaml:"speed"`
	Length    float32    `yaml:"length"`
	Direction [2]float32 `yaml:"direction"` // x, z
}

// GridConfig holds a static heightmap. Heights are row-major with x varying
// fastest; an empty list means a flat grid at the water level.
type GridConfig struct {
	Origin   [2]float32 `yaml:"origin"` // x, z
	CellSize float32    `yaml:"cell_size"`
	Cols     int        `yaml:"cols"`
	Rows     int        `yaml:"rows"`
	Heights  []float32  `yaml:"heights"`
}

// DragConfig holds the pressure drag and suction tuning.
type DragConfig struct {
	ReferenceSpeed float32          `yaml:"reference_speed"`
	Pressure       DragCoefficients `yaml:"pressure"`
	Suction        DragCoefficients `yaml:"suction"`
}

// DragCoefficients are the linear and quadratic terms and the cosine fall-off.
type DragCoefficients struct {
	C1      float32 `yaml:"c1"`
	C2      float32 `yaml:"c2"`
	FallOff float32 `yaml:"falloff"`
}

// SlammingConfig holds the slamming force tuning.
type SlammingConfig struct {
	MaxAcceleration float32 `yaml:"max_acceleration"`
	RampPower       float32 `yaml:"ramp_power"`
	Coefficient     float32 `yaml:"coefficient"`
}

// ClippingConfig holds the water line tolerance.
type ClippingConfig struct {
	Epsilon float32 `yaml:"epsilon"`
}

// ViscosityConfig shapes the travel length used for the friction coefficient.
// The curve is disabled when it has fewer than 2 points.
type ViscosityConfig struct {
	TravelCurve [][2]float32 `yaml:"travel_curve"`
	TableSize   int          `yaml:"table_size"`
}

// ForcesConfig toggles individual force contributions.
type ForcesConfig struct {
	Buoyancy bool `yaml:"buoyancy"`
	Viscous  bool `yaml:"viscous"`
	Drag     bool `yaml:"drag"`
	Slamming bool `yaml:"slamming"`
}

// HullConfig holds the hull shape and its starting state.
type HullConfig struct {
	Shape    string     `yaml:"shape"` // box, panel or wedge
	Size     [3]float32 `yaml:"size"`  // width, height, length
	Mass     float32    `yaml:"mass"`
	Position [3]float32 `yaml:"position"`
	Velocity [3]float32 `yaml:"velocity"`
	Rotation [3]float32 `yaml:"rotation"` // Euler degrees

	// CenterOfMass is where the body origin sits in hull coordinates.
	CenterOfMass [3]float32 `yaml:"center_of_mass"`
}

// SimulationConfig holds the fixed step loop settings. Zero steps runs until
// interrupted; Realtime paces the loop at one step per fixed time step.
type SimulationConfig struct {
	FixedTimeStep  float32 `yaml:"fixed_time_step"` // seconds
	Steps          int     `yaml:"steps"`
	Realtime       bool    `yaml:"realtime"`
	LinearDamping  float32 `yaml:"linear_damping"`
	AngularDamping float32 `yaml:"angular_damping"`
}

// TelemetryConfig holds the websocket report stream settings. An empty Addr
// disables the server.
type TelemetryConfig struct {
	Addr         string        `yaml:"addr"`
	EveryN       int           `yaml:"every_n"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Water: WaterConfig{
			Density:   999.1026,
			Gravity:   -9.81,
			Viscosity: 1.1e-6,
			Kind:      WaterPlane,
			Wave: WaveConfig{
				Amplitude: 0.15,
				Speed:     1,
				Length:    2,
				Direction: [2]float32{1, 0},
			},
			Grid: GridConfig{
				Origin:   [2]float32{-10, -10},
				CellSize: 1,
				Cols:     21,
				Rows:     21,
			},
		},
		Drag: DragConfig{
			ReferenceSpeed: 1,
			Pressure:       DragCoefficients{C1: 10, C2: 10, FallOff: 0.5},
			Suction:        DragCoefficients{C1: 10, C2: 10, FallOff: 0.5},
		},
		Slamming: SlammingConfig{
			MaxAcceleration: 100,
			RampPower:       2,
			Coefficient:     1,
		},
		Clipping: ClippingConfig{
			Epsilon: 1e-5,
		},
		Viscosity: ViscosityConfig{
			TableSize: 256,
		},
		Forces: ForcesConfig{
			Buoyancy: true,
			Viscous:  true,
			Drag:     true,
			Slamming: true,
		},
		Hull: HullConfig{
			Shape:    "box",
			Size:     [3]float32{2, 1, 4},
			Mass:     2000,
			Position: [3]float32{0, 1, 0},
		},
		Simulation: SimulationConfig{
			FixedTimeStep:  0.02,
			Steps:          500,
			LinearDamping:  0.1,
			AngularDamping: 0.5,
		},
		Telemetry: TelemetryConfig{
			EveryN:       5,
			WriteTimeout: time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks the settings the simulation cannot run without.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Water.Kind) {
	case WaterPlane, WaterWave, WaterGrid:
	default:
		return fmt.Errorf("%w: unknown water kind %q", ErrInvalid, c.Water.Kind)
	}
	switch {
	case c.Water.Density <= 0:
		return fmt.Errorf("%w: water.density must be positive", ErrInvalid)
	case c.Water.Viscosity <= 0:
		return fmt.Errorf("%w: water.viscosity must be positive", ErrInvalid)
	case c.Clipping.Epsilon <= 0:
		return fmt.Errorf("%w: clipping.epsilon must be positive", ErrInvalid)
	case c.Simulation.FixedTimeStep <= 0:
		return fmt.Errorf("%w: simulation.fixed_time_step must be positive", ErrInvalid)
	case c.Simulation.Steps < 0:
		return fmt.Errorf("%w: simulation.steps must not be negative", ErrInvalid)
	case c.Hull.Mass <= 0:
		return fmt.Errorf("%w: hull.mass must be positive", ErrInvalid)
	case len(c.Viscosity.TravelCurve) >= 2 && c.Viscosity.TableSize < 2:
		return fmt.Errorf("%w: viscosity.table_size must be at least 2", ErrInvalid)
	case c.Telemetry.Addr != "" && c.Telemetry.EveryN <= 0:
		return fmt.Errorf("%w: telemetry.every_n must be positive", ErrInvalid)
	}
	return nil
}
