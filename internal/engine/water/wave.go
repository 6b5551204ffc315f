package water

import (
	gomath "math"

	"github.com/Faultbox/hullwater/pkg/math"
)

// Wave is a travelling sine wave around Level. Length scales the distance
// between crests (2*pi*Length apart) and the wave moves against Direction at
// Speed/Length radians per second.
type Wave struct {
	Level     float32
	Amplitude float32
	Speed     float32
	Length    float32
	Direction math.Vec2 // defaults to +X when zero
}

// SurfaceY returns the wave elevation at (x, z) and time t.
func (w Wave) SurfaceY(x, z, t float32) float32 {
	if w.Length <= 0 || w.Amplitude == 0 {
		return w.Level
	}
	d := w.Direction
	if l := d.Length(); l > 0 {
		d = d.Scale(1 / l)
	} else {
		d = math.Vec2{X: 1}
	}
	phase := (t*w.Speed + x*d.X + z*d.Y) / w.Length
	return w.Level + w.Amplitude*float32(gomath.Sin(float64(phase)))
}

// Height implements hydro.HeightField.
func (w Wave) Height(p math.Vec3, t float32) float32 {
	return Distance(w, p, t)
}
