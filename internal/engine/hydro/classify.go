package hydro

// TriangleState says how a triangle sits relative to the water surface.
type TriangleState uint8

const (
	AboveWater TriangleState = iota
	TwoAboveWater
	OneAboveWater
	Submerged
)

// String returns the state name.
func (s TriangleState) String() string {
	switch s {
	case AboveWater:
		return "above"
	case TwoAboveWater:
		return "two-above"
	case OneAboveWater:
		return "one-above"
	case Submerged:
		return "submerged"
	default:
		return "unknown"
	}
}

// ClassifiedTriangle holds a triangle's vertices sorted by height, highest first.
type ClassifiedTriangle struct {
	Vertices [3]SampledVertex
	State    TriangleState
}

// Classify sorts the vertices by descending height and derives the state.
// Equal heights keep their input order. A height of exactly 0 is not above water.
func Classify(v [3]SampledVertex) ClassifiedTriangle {
	sortByHeight(&v)
	return ClassifiedTriangle{Vertices: v, State: stateOf(v[0].Height, v[1].Height, v[2].Height)}
}

// stateOf classifies sorted heights h0 >= h1 >= h2.
func stateOf(h0, h1, h2 float32) TriangleState {
	switch {
	case h2 > 0:
		return AboveWater
	case h1 > 0:
		return TwoAboveWater
	case h0 > 0:
		return OneAboveWater
	default:
		return Submerged
	}
}

// sortByHeight is a stable descending insertion sort over three vertices.
func sortByHeight(v *[3]SampledVertex) {
	for i := 1; i < 3; i++ {
		for j := i; j > 0 && v[j].Height > v[j-1].Height; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}
