// Package sim runs a hull through the water simulation on a fixed time step.
package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hullwater/internal/config"
	"github.com/Faultbox/hullwater/internal/engine/hydro"
	"github.com/Faultbox/hullwater/internal/engine/physics"
	"github.com/Faultbox/hullwater/internal/logger"
	"github.com/Faultbox/hullwater/internal/telemetry"
	"github.com/Faultbox/hullwater/pkg/math"
)

// ErrDiverged is returned when the body state stops being finite.
var ErrDiverged = errors.New("simulation diverged")

// progressEvery is how many steps pass between progress log lines.
const progressEvery = 50

// Summary describes a finished run.
type Summary struct {
	Steps            int
	Time             float32
	Position         math.Vec3
	Velocity         math.Vec3
	MaxSubmergedArea float32
	MaxSlamming      float32
}

// Sim owns one hull, its rigid body, the water and the optional telemetry server.
type Sim struct {
	cfg    *config.Config
	body   *physics.Body
	hydro  *hydro.Simulator
	hub    *telemetry.Hub
	server *telemetry.Server
	log    *zap.Logger

	step    int
	summary Summary
}

// New builds a simulation from cfg and starts telemetry if an address is set.
func New(cfg *config.Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params, err := HydroParams(cfg)
	if err != nil {
		return nil, err
	}
	field, err := Water(cfg)
	if err != nil {
		return nil, err
	}
	hull, mesh, err := Hull(cfg)
	if err != nil {
		return nil, err
	}

	body, err := physics.NewBody(cfg.Hull.Mass, physics.BoxInertia(cfg.Hull.Mass, hull.Bounds.Size()))
	if err != nil {
		return nil, err
	}
	body.LinearDamping = cfg.Simulation.LinearDamping
	body.AngularDamping = cfg.Simulation.AngularDamping
	body.SetPose(vec3(cfg.Hull.Position), startRotation(cfg.Hull.Rotation))
	body.SetVelocity(vec3(cfg.Hull.Velocity), math.Vec3{})

	hs, err := hydro.New(mesh, field, params)
	if err != nil {
		return nil, fmt.Errorf("creating hydro simulator: %w", err)
	}

	s := &Sim{
		cfg:   cfg,
		body:  body,
		hydro: hs,
		log:   logger.Named("sim"),
	}

	if cfg.Telemetry.Addr != "" {
		s.hub = telemetry.NewHub(cfg.Telemetry.WriteTimeout)
		s.server, err = telemetry.Listen(cfg.Telemetry.Addr, s.hub)
		if err != nil {
			return nil, err
		}
	}

	s.log.Info("simulation ready",
		zap.String("shape", cfg.Hull.Shape),
		zap.Int("triangles", hull.TriangleCount()),
		zap.String("water", cfg.Water.Kind),
		zap.Float32("mass", cfg.Hull.Mass),
		zap.Float32("dt", cfg.Simulation.FixedTimeStep),
		zap.Int("steps", cfg.Simulation.Steps),
	)
	return s, nil
}

// Body returns the simulated rigid body.
func (s *Sim) Body() *physics.Body {
	return s.body
}

// TelemetryAddr returns the bound telemetry address, or "" when disabled.
func (s *Sim) TelemetryAddr() string {
	if s.server == nil {
		return ""
	}
	return s.server.Addr()
}

// Step advances the simulation by one fixed step and returns the hydro report.
func (s *Sim) Step() (hydro.Report, error) {
	dt := s.cfg.Simulation.FixedTimeStep
	t := float32(s.step) * dt

	r := s.hydro.Step(s.body, s.body.Pose(), t)
	s.body.Integrate(dt, s.cfg.Water.Gravity)
	s.step++

	s.summary.Steps = s.step
	s.summary.Time = float32(s.step) * dt
	s.summary.Position = s.body.Position()
	s.summary.Velocity = s.body.LinearVelocity()
	s.summary.MaxSubmergedArea = max(s.summary.MaxSubmergedArea, r.SubmergedArea)
	for _, f := range r.Forces {
		s.summary.MaxSlamming = max(s.summary.MaxSlamming, f.Slamming.Length())
	}

	if !s.body.Position().IsFinite() || !s.body.LinearVelocity().IsFinite() {
		return r, fmt.Errorf("%w at step %d", ErrDiverged, s.step)
	}

	if s.hub != nil && s.step%s.cfg.Telemetry.EveryN == 0 {
		frame := telemetry.NewFrame(s.step, s.body.Position(), s.body.Rotation(), r).WithTriangles(r.Pieces)
		s.hub.Broadcast(frame)
	}
	return r, nil
}

// Run steps until the configured count is reached or ctx is done. With zero
// configured steps it runs until ctx is done and then returns a nil error.
func (s *Sim) Run(ctx context.Context) (Summary, error) {
	steps := s.cfg.Simulation.Steps

	var tick <-chan time.Time
	if s.cfg.Simulation.Realtime {
		ticker := time.NewTicker(time.Duration(float64(s.cfg.Simulation.FixedTimeStep) * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	for steps == 0 || s.step < steps {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if err := ctx.Err(); err != nil {
			if steps == 0 {
				break
			}
			return s.summary, err
		}

		r, err := s.Step()
		if err != nil {
			s.log.Error("step failed", zap.Error(err))
			return s.summary, err
		}
		if s.step%progressEvery == 0 {
			pos := s.body.Position()
			s.log.Info("progress",
				zap.Int("step", s.step),
				zap.Float32("time", s.summary.Time),
				zap.Float32("y", pos.Y),
				zap.Float32("submergedArea", r.SubmergedArea),
				zap.Float32("forceY", r.NetForce.Y),
			)
		}
	}

	s.log.Info("simulation finished",
		zap.Int("steps", s.summary.Steps),
		zap.Float32("time", s.summary.Time),
		zap.Float32("x", s.summary.Position.X),
		zap.Float32("y", s.summary.Position.Y),
		zap.Float32("z", s.summary.Position.Z),
		zap.Float32("maxSlamming", s.summary.MaxSlamming),
	)
	return s.summary, nil
}

// Close stops telemetry.
func (s *Sim) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Close(ctx)
}
