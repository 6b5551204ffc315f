package hydro

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"
)

// Curve errors.
var (
	ErrTableSize   = errors.New("curve table needs at least 2 entries")
	ErrCurvePoints = errors.New("curve needs at least 2 points with increasing x")
)

// CurveTable is a precomputed lookup from a normalized key in [0,1] to log10 of the
// arc length of a curve from its start to that key. It is built once and read
// with a single index per query.
type CurveTable struct {
	delta  float32
	values []float32
}

// NewCurveTable samples curve at size evenly spaced keys in [0,1], accumulates the
// chord lengths between samples and stores their log10.
func NewCurveTable(curve func(x float32) float32, size int) (*CurveTable, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTableSize, size)
	}

	step := 1 / float32(size-1)
	values := make([]float32, 0, size)

	var length float64
	prevX, prevY := float32(0), curve(0)
	for i := 1; i < size; i++ {
		x := float32(i) * step
		y := curve(x)
		length += gomath.Hypot(float64(x-prevX), float64(y-prevY))
		values = append(values, float32(gomath.Log10(length)))
		prevX, prevY = x, y
	}
	values = append(values, values[len(values)-1])

	return &CurveTable{delta: step, values: values}, nil
}

// LookUp returns the entry for key. Keys outside [0,1] use the nearest end.
func (c *CurveTable) LookUp(key float32) float32 {
	if !(key > 0) {
		return c.values[0]
	}
	if key >= 1 {
		return c.values[len(c.values)-1]
	}
	i := int(key / c.delta)
	return c.values[min(i, len(c.values)-1)]
}

// Len returns the number of entries.
func (c *CurveTable) Len() int {
	return len(c.values)
}

// PiecewiseLinear returns a curve through the given (x, y) control points, held
// constant beyond the first and last point.
func PiecewiseLinear(points [][2]float32) (func(float32) float32, error) {
	if len(points) < 2 {
		return nil, ErrCurvePoints
	}
	pts := make([][2]float32, len(points))
	copy(pts, points)
	for i := 1; i < len(pts); i++ {
		if pts[i][0] <= pts[i-1][0] {
			return nil, fmt.Errorf("%w: x[%d]=%v after %v", ErrCurvePoints, i, pts[i][0], pts[i-1][0])
		}
	}

	return func(x float32) float32 {
		if x <= pts[0][0] {
			return pts[0][1]
		}
		last := len(pts) - 1
		if x >= pts[last][0] {
			return pts[last][1]
		}
		i := sort.Search(len(pts), func(i int) bool { return pts[i][0] >= x })
		a, b := pts[i-1], pts[i]
		t := (x - a[0]) / (b[0] - a[0])
		return a[1] + (b[1]-a[1])*t
	}, nil
}
