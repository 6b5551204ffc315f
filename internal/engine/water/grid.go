package water

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hullwater/pkg/math"
)

// Grid errors.
var (
	ErrGridSize    = errors.New("grid needs at least 2x2 samples")
	ErrGridCell    = errors.New("grid cell size must be positive")
	ErrGridHeights = errors.New("grid height count does not match its size")
)

// Grid is a static heightmap of surface elevations sampled every CellSize units
// from Origin (x, z). Queries between samples are bilinear; queries outside the
// grid clamp to its border.
type Grid struct {
	origin   math.Vec2
	cellSize float32
	cols     int
	rows     int
	heights  []float32 // row-major, rows along z
}

// NewGrid validates and copies heights, which hold cols*rows elevations with x
// varying fastest.
func NewGrid(origin math.Vec2, cellSize float32, cols, rows int, heights []float32) (*Grid, error) {
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridSize, cols, rows)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrGridCell, cellSize)
	}
	if len(heights) != cols*rows {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrGridHeights, len(heights), cols*rows)
	}

	g := &Grid{
		origin:   origin,
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		heights:  make([]float32, len(heights)),
	}
	copy(g.heights, heights)
	return g, nil
}

// FlatGrid returns a cols x rows grid with every sample at level.
func FlatGrid(origin math.Vec2, cellSize float32, cols, rows int, level float32) (*Grid, error) {
	if cols < 0 || rows < 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrGridSize, cols, rows)
	}
	heights := make([]float32, cols*rows)
	for i := range heights {
		heights[i] = level
	}
	return NewGrid(origin, cellSize, cols, rows, heights)
}

// At returns the sample at column x, row z.
func (g *Grid) At(x, z int) float32 {
	return g.heights[z*g.cols+x]
}

// Set overwrites the sample at column x, row z.
func (g *Grid) Set(x, z int, h float32) {
	g.heights[z*g.cols+x] = h
}

// Size returns the number of columns and rows.
func (g *Grid) Size() (cols, rows int) {
	return g.cols, g.rows
}

// SurfaceY returns the interpolated elevation at (x, z). The grid is static, t is ignored.
func (g *Grid) SurfaceY(x, z, _ float32) float32 {
	fx := (x - g.origin.X) / g.cellSize
	fz := (z - g.origin.Y) / g.cellSize

	cellX := clampi(int(floor(fx)), 0, g.cols-2)
	cellZ := clampi(int(floor(fz)), 0, g.rows-2)

	fracX := clampf(fx-float32(cellX), 0, 1)
	fracZ := clampf(fz-float32(cellZ), 0, 1)

	// Corners: sw, se along x on the low z row; nw, ne on the next row.
	sw := g.At(cellX, cellZ)
	se := g.At(cellX+1, cellZ)
	nw := g.At(cellX, cellZ+1)
	ne := g.At(cellX+1, cellZ+1)

	south := sw*(1-fracX) + se*fracX
	north := nw*(1-fracX) + ne*fracX
	return south*(1-fracZ) + north*fracZ
}

// Height implements hydro.HeightField.
func (g *Grid) Height(p math.Vec3, t float32) float32 {
	xz := p.XZ()
	return p.Y - g.SurfaceY(xz.X, xz.Y, t)
}

func floor(v float32) float32 {
	i := float32(int(v))
	if i > v {
		i--
	}
	return i
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
