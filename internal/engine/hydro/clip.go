package hydro

// Orientation tells which side of a clipped triangle carries its horizontal edge.
type Orientation uint8

const (
	// ApexUp has one vertex above a horizontal base: Vertices[0] is the apex.
	ApexUp Orientation = iota
	// BaseUp has a horizontal top edge Vertices[0]-Vertices[1] above Vertices[2].
	BaseUp
	// Level has all three vertices at the same height.
	Level
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case ApexUp:
		return "apex-up"
	case BaseUp:
		return "base-up"
	case Level:
		return "level"
	default:
		return "unknown"
	}
}

// ClippedTriangle is a piece of an original mesh triangle lying at or below the
// water surface, in the original winding order.
type ClippedTriangle struct {
	Vertices    [3]SampledVertex
	Orientation Orientation
	Original    int
	Area        float32
}

// Clipper cuts classified triangles against the water line. Water and Time must be
// the same height field and timestamp the vertices were sampled with.
type Clipper struct {
	Epsilon float32
	Water   HeightField
	Time    float32
}

// Clip appends the submerged sub-triangles of ct to dst and returns the extended
// slice together with their total area. original is the index of ct in the mesh.
func (c *Clipper) Clip(ct ClassifiedTriangle, original int, dst []ClippedTriangle) ([]ClippedTriangle, float32) {
	top, mid, bottom := ct.Vertices[0], ct.Vertices[1], ct.Vertices[2]
	switch ct.State {
	case TwoAboveWater:
		return c.clipTwoAbove(top, mid, bottom, original, dst)
	case OneAboveWater:
		return c.clipOneAbove(top, mid, bottom, original, dst)
	case Submerged:
		return c.splitHorizontal(top, mid, bottom, original, dst)
	default:
		return dst, 0
	}
}

// clipTwoAbove keeps the tip around bottom, cut on edges bottom-top and bottom-mid.
func (c *Clipper) clipTwoAbove(top, mid, bottom SampledVertex, original int, dst []ClippedTriangle) ([]ClippedTriangle, float32) {
	cutTB := c.cut(bottom, top, -bottom.Height/(top.Height-bottom.Height))
	cutMB := c.cut(bottom, mid, -bottom.Height/(mid.Height-bottom.Height))

	if follows(top, mid) {
		cutTB.Slot = (bottom.Slot + 1) % 3
		cutMB.Slot = (cutTB.Slot + 1) % 3
	} else {
		cutMB.Slot = (bottom.Slot + 1) % 3
		cutTB.Slot = (cutMB.Slot + 1) % 3
	}

	if cutTB.Height > cutMB.Height {
		return c.splitHorizontal(cutTB, cutMB, bottom, original, dst)
	}
	return c.splitHorizontal(cutMB, cutTB, bottom, original, dst)
}

// clipOneAbove drops the cap around top and splits the remaining quadrilateral
// along the diagonal from mid to the cut on edge bottom-top.
func (c *Clipper) clipOneAbove(top, mid, bottom SampledVertex, original int, dst []ClippedTriangle) ([]ClippedTriangle, float32) {
	cutTB := c.cut(bottom, top, -bottom.Height/(top.Height-bottom.Height))
	cutTM := c.cut(mid, top, -mid.Height/(top.Height-mid.Height))
	midFollowsTop := follows(top, mid)

	if midFollowsTop {
		cutTB.Slot = (mid.Slot + 1) % 3
		cutTM.Slot = (cutTB.Slot + 1) % 3
	} else {
		cutTM.Slot = (mid.Slot + 1) % 3
		cutTB.Slot = (cutTM.Slot + 1) % 3
	}
	first := [3]SampledVertex{mid, cutTB, cutTM}
	sortByHeight(&first)
	dst, area := c.splitHorizontal(first[0], first[1], first[2], original, dst)

	if midFollowsTop {
		bottom.Slot = (mid.Slot + 1) % 3
		cutTB.Slot = (bottom.Slot + 1) % 3
	} else {
		cutTB.Slot = (mid.Slot + 1) % 3
		bottom.Slot = (cutTB.Slot + 1) % 3
	}
	second := [3]SampledVertex{mid, cutTB, bottom}
	sortByHeight(&second)
	dst, secondArea := c.splitHorizontal(second[0], second[1], second[2], original, dst)

	return dst, area + secondArea
}

// splitHorizontal cuts a triangle sorted by height along the horizontal line
// through mid, so every emitted piece has a horizontal edge.
func (c *Clipper) splitHorizontal(top, mid, bottom SampledVertex, original int, dst []ClippedTriangle) ([]ClippedTriangle, float32) {
	if top.Height-mid.Height < c.Epsilon {
		orientation := BaseUp
		if mid.Height-bottom.Height < c.Epsilon {
			orientation = Level
		}
		if follows(top, mid) {
			return emit(dst, top, mid, bottom, orientation, original)
		}
		return emit(dst, mid, top, bottom, orientation, original)
	}

	if mid.Height-bottom.Height < c.Epsilon {
		if follows(top, mid) {
			return emit(dst, top, mid, bottom, ApexUp, original)
		}
		return emit(dst, top, bottom, mid, ApexUp, original)
	}

	cut := c.cut(bottom, top, (mid.Height-bottom.Height)/(top.Height-bottom.Height))

	var upArea, downArea float32
	if follows(top, mid) {
		dst, upArea = emit(dst, top, mid, cut, ApexUp, original)
		dst, downArea = emit(dst, cut, mid, bottom, BaseUp, original)
	} else {
		dst, upArea = emit(dst, top, cut, mid, ApexUp, original)
		dst, downArea = emit(dst, mid, cut, bottom, BaseUp, original)
	}
	return dst, upArea + downArea
}

// cut returns the point at parameter t from a towards b, with its height sampled
// from the water rather than interpolated.
func (c *Clipper) cut(a, b SampledVertex, t float32) SampledVertex {
	p := a.Position.Lerp(b.Position, t)
	return SampledVertex{Position: p, Height: c.Water.Height(p, c.Time), Slot: -1}
}

// follows reports whether b comes right after a in winding order.
func follows(a, b SampledVertex) bool {
	return (a.Slot+1)%3 == b.Slot
}

func emit(dst []ClippedTriangle, a, b, c SampledVertex, o Orientation, original int) ([]ClippedTriangle, float32) {
	area := TriangleArea(a.Position, b.Position, c.Position)
	dst = append(dst, ClippedTriangle{
		Vertices:    [3]SampledVertex{a, b, c},
		Orientation: o,
		Original:    original,
		Area:        area,
	})
	return dst, area
}
