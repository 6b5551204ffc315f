package hydro

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/hullwater/internal/logger"
	"github.com/Faultbox/hullwater/pkg/math"
)

// ErrNoWater is returned when a Simulator is built without a height field.
var ErrNoWater = errors.New("height field is required")

// AppliedForce is the force contributions of one sub-triangle, all applied at Point.
type AppliedForce struct {
	Original int
	Point    math.Vec3
	Buoyancy math.Vec3
	Viscous  math.Vec3
	Drag     math.Vec3
	Slamming math.Vec3
	Net      math.Vec3
}

// Report summarizes one step. Forces has an entry for every sample whose center
// is under water. Pieces, Samples and Forces are owned by the Simulator and are
// only valid until the next call to Step.
type Report struct {
	Time          float32
	Counts        [4]int // triangles per TriangleState
	SubmergedArea float32
	TotalArea     float32
	Pieces        []ClippedTriangle
	Samples       []TriangleSample
	Forces        []AppliedForce
	NetForce      math.Vec3
	NetTorque     math.Vec3 // about the body's center of mass
}

// Simulator computes the hydrodynamic forces on one hull. It owns the hull's
// per-triangle history and must be stepped once per fixed physics step from a
// single goroutine.
type Simulator struct {
	mesh    *Mesh
	water   HeightField
	params  Params
	sampler *VertexSampler
	clipper Clipper
	state   *StateBuffer
	log     *zap.Logger

	clipped []ClippedTriangle
	samples []TriangleSample
	forces  []AppliedForce
	steps   uint64
}

// New builds a Simulator for mesh floating in water.
func New(mesh *Mesh, water HeightField, params Params) (*Simulator, error) {
	if mesh == nil {
		return nil, ErrEmptyMesh
	}
	if water == nil {
		return nil, ErrNoWater
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := mesh.TriangleCount()
	s := &Simulator{
		mesh:    mesh,
		water:   water,
		params:  params,
		sampler: NewVertexSampler(mesh, water),
		clipper: Clipper{Epsilon: params.Epsilon, Water: water},
		state:   NewStateBuffer(n),
		log:     logger.Named("hydro"),
		clipped: make([]ClippedTriangle, 0, 2*n),
		samples: make([]TriangleSample, 0, 2*n),
		forces:  make([]AppliedForce, 0, 2*n),
	}

	s.log.Info("hull simulator created",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", n),
		zap.Float32("epsilon", params.Epsilon),
		zap.Float32("dt", params.TimeStep),
		zap.Bool("travelCurve", params.TravelCurve != nil),
	)
	return s, nil
}

// Params returns the parameters the simulator was built with.
func (s *Simulator) Params() Params {
	return s.params
}

// Mesh returns the hull mesh.
func (s *Simulator) Mesh() *Mesh {
	return s.mesh
}

// Record returns the previous and current history of original triangle i.
func (s *Simulator) Record(i int) (prev, cur TriangleRecord) {
	return s.state.Previous(i), s.state.Current(i)
}

// TotalArea returns the hull's surface area, known after the first step.
func (s *Simulator) TotalArea() float32 {
	return s.state.TotalArea()
}

// Reset drops the triangle history, e.g. after teleporting the body.
func (s *Simulator) Reset() {
	s.state.Reset()
}

// Step runs one pass for the body at pose and time t, applies every sub-triangle's
// net force to body and returns the step report. Every height query of the pass
// uses t.
func (s *Simulator) Step(body RigidBody, pose math.Mat4, t float32) Report {
	first := s.state.Begin()
	s.sampler.Sample(pose, t)
	s.clipper.Time = t
	s.clipped = s.clipped[:0]

	report := Report{Time: t}
	for i := 0; i < s.mesh.TriangleCount(); i++ {
		tri := s.sampler.Triangle(i)
		a, b, c := tri[0].Position, tri[1].Position, tri[2].Position
		if first {
			s.state.SetOriginalArea(i, TriangleArea(a, b, c))
		}

		ct := Classify(tri)
		report.Counts[ct.State]++

		var area float32
		s.clipped, area = s.clipper.Clip(ct, i, s.clipped)
		if ct.State == Submerged {
			area = s.state.Current(i).OriginalArea
		}

		centroid := a.Add(b).Add(c).Scale(1.0 / 3)
		s.state.Update(i, area, PointVelocity(body, centroid))
		report.SubmergedArea += area
	}
	s.state.End()
	report.TotalArea = s.state.TotalArea()
	report.Pieces = s.clipped

	s.samples = s.samples[:0]
	for _, ct := range s.clipped {
		s.samples = append(s.samples, Measure(ct, body, s.water, t))
	}
	report.Samples = s.samples

	s.applyForces(body, &report)
	report.Forces = s.forces

	s.steps++
	if ce := s.log.Check(zapcore.DebugLevel, "hydro step"); ce != nil {
		ce.Write(
			zap.Uint64("step", s.steps),
			zap.Float32("time", t),
			zap.Int("submerged", report.Counts[Submerged]),
			zap.Int("oneAbove", report.Counts[OneAboveWater]),
			zap.Int("twoAbove", report.Counts[TwoAboveWater]),
			zap.Int("pieces", len(s.clipped)),
			zap.Float32("submergedArea", report.SubmergedArea),
			zap.Float32("forceY", report.NetForce.Y),
		)
	}
	return report
}

func (s *Simulator) applyForces(body RigidBody, report *Report) {
	s.forces = s.forces[:0]
	if len(s.samples) == 0 {
		return
	}

	p := s.params
	mass := body.Mass()
	com := body.WorldCenterOfMass()
	totalArea := s.state.TotalArea()
	travel := newTravelModel(body.LinearVelocity(), s.samples, p.Viscosity, p.TravelCurve)

	for _, smp := range s.samples {
		// A center re-sampled above the surface is a clipping artifact.
		if smp.CenterHeight > 0 {
			continue
		}
		f := AppliedForce{Original: smp.Original, Point: smp.Center}
		if p.Forces.Buoyancy {
			f.Buoyancy = BuoyancyForce(p.Density, p.Gravity, smp)
		}
		if p.Forces.Viscous {
			f.Viscous = ViscousResistance(p.Density, travel.coefficient(smp.Center), smp)
		}
		if p.Forces.Drag {
			f.Drag = PressureDrag(smp, p.Drag)
		}
		if p.Forces.Slamming {
			prev, cur := s.Record(smp.Original)
			f.Slamming = SlammingForce(prev, cur, smp, p.Slamming, mass, totalArea, p.TimeStep)
		}
		f.Net = f.Buoyancy.Add(f.Viscous).Add(f.Drag).Add(f.Slamming)

		body.ApplyForceAtPoint(f.Net, f.Point)
		report.NetForce = report.NetForce.Add(f.Net)
		report.NetTorque = report.NetTorque.Add(f.Point.Sub(com).Cross(f.Net))
		s.forces = append(s.forces, f)
	}
}

// travelModel gives the friction coefficient for each sample from the Reynolds
// number of the flow along the hull's direction of travel.
type travelModel struct {
	ok           bool
	axis         math.Vec3
	lead         float32 // projection of the foremost sample center
	length       float32 // submerged length along axis
	logSpeed     float32
	logViscosity float32
	logRe        float32
	curve        *CurveTable
}

func newTravelModel(velocity math.Vec3, samples []TriangleSample, viscosity float32, curve *CurveTable) travelModel {
	speed := velocity.Length()
	if speed <= 0 {
		return travelModel{}
	}
	axis := velocity.Scale(1 / speed)

	lo, hi := float32(gomath.MaxFloat32), float32(-gomath.MaxFloat32)
	for _, smp := range samples {
		d := smp.Center.Dot(axis)
		lo = min(lo, d)
		hi = max(hi, d)
	}

	length := hi - lo
	logRe, ok := LogReynolds(speed, length, viscosity)
	if !ok {
		return travelModel{}
	}
	return travelModel{
		ok:           true,
		axis:         axis,
		lead:         hi,
		length:       length,
		logSpeed:     log10(speed),
		logViscosity: log10(viscosity),
		logRe:        logRe,
		curve:        curve,
	}
}

func (m travelModel) coefficient(center math.Vec3) float32 {
	if !m.ok {
		return 0
	}
	if m.curve == nil {
		return ResistanceCoefficient(m.logRe)
	}
	// Key 0 is the leading edge where the flow meets the hull.
	key := (m.lead - center.Dot(m.axis)) / m.length
	logLength := m.curve.LookUp(key) * 2 * log10(m.length)
	return ResistanceCoefficient(m.logSpeed + logLength - m.logViscosity)
}

// String implements fmt.Stringer for log output.
func (r Report) String() string {
	return fmt.Sprintf("t=%.3f submerged=%.3f/%.3f pieces=%d force=%v",
		r.Time, r.SubmergedArea, r.TotalArea, len(r.Samples), r.NetForce)
}
