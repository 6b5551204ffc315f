// Package water provides the water surfaces a hull floats in. Every surface
// implements hydro.HeightField: Height returns the signed distance from a point
// to the surface straight above or below it, positive above water.
package water

import "github.com/Faultbox/hullwater/pkg/math"

// Surface is a water surface described by its elevation at (x, z) and time t.
type Surface interface {
	SurfaceY(x, z, t float32) float32
}

// Distance returns p.Y minus the elevation of s under p.
func Distance(s Surface, p math.Vec3, t float32) float32 {
	return p.Y - s.SurfaceY(p.X, p.Z, t)
}

// Plane is calm water at a fixed level.
type Plane struct {
	Level float32
}

// SurfaceY returns the plane level.
func (w Plane) SurfaceY(_, _, _ float32) float32 {
	return w.Level
}

// Height implements hydro.HeightField.
func (w Plane) Height(p math.Vec3, _ float32) float32 {
	return p.Y - w.Level
}
