package hydro

import "github.com/Faultbox/hullwater/pkg/math"

// TriangleRecord is what one original mesh triangle remembers about one step.
type TriangleRecord struct {
	SubmergedArea float32
	OriginalArea  float32
	// Velocity is the body velocity at the centroid of the un-clipped triangle.
	Velocity math.Vec3
}

// StateBuffer double-buffers a TriangleRecord per original triangle. It is the
// only memory carried from one step to the next.
type StateBuffer struct {
	current   []TriangleRecord
	previous  []TriangleRecord
	totalArea float32
	primed    bool
}

// NewStateBuffer allocates records for n triangles.
func NewStateBuffer(n int) *StateBuffer {
	return &StateBuffer{
		current:  make([]TriangleRecord, n),
		previous: make([]TriangleRecord, n),
	}
}

// Begin starts a step by moving the current records into the previous slot.
// It reports whether this is the first step, in which case the caller must set
// every triangle's original area.
func (b *StateBuffer) Begin() (first bool) {
	if !b.primed {
		b.totalArea = 0
		return true
	}
	b.current, b.previous = b.previous, b.current
	return false
}

// SetOriginalArea stores the constant un-clipped area of triangle i.
func (b *StateBuffer) SetOriginalArea(i int, area float32) {
	b.current[i].OriginalArea = area
	b.previous[i].OriginalArea = area
	b.totalArea += area
}

// Update overwrites the current record of triangle i.
func (b *StateBuffer) Update(i int, submergedArea float32, velocity math.Vec3) {
	b.current[i].SubmergedArea = submergedArea
	b.current[i].Velocity = velocity
}

// End closes a step. After the first step the previous records equal the
// current ones, so nothing has accelerated yet.
func (b *StateBuffer) End() {
	if !b.primed {
		copy(b.previous, b.current)
		b.primed = true
	}
}

// Reset forgets all history; the next step is treated as the first.
func (b *StateBuffer) Reset() {
	clear(b.current)
	clear(b.previous)
	b.totalArea = 0
	b.primed = false
}

// Len returns the number of tracked triangles.
func (b *StateBuffer) Len() int {
	return len(b.current)
}

// Current returns this step's record of triangle i.
func (b *StateBuffer) Current(i int) TriangleRecord {
	return b.current[i]
}

// Previous returns the last step's record of triangle i.
func (b *StateBuffer) Previous(i int) TriangleRecord {
	return b.previous[i]
}

// TotalArea returns the summed original area of all triangles.
func (b *StateBuffer) TotalArea() float32 {
	return b.totalArea
}
