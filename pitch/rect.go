package pitch

// Point is a 2-D coordinate in layout units.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned rectangle tagged with its layer key and owning cell.
// Coordinates are normalized so X1 <= X2 and Y1 <= Y2; construct through
// NewRect to guarantee the invariant.
type Rect struct {
	X1, Y1, X2, Y2 float64
	Layer          string
	CellName       string
}

// NewRect builds a normalized Rect, swapping coordinates where needed.
func NewRect(x1, y1, x2, y2 float64, layer, cellName string) Rect {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2, Layer: layer, CellName: cellName}
}

// Center returns the midpoint of the rectangle's bounding box.
func (r Rect) Center() Point {
	return Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Overlaps reports whether r and other overlap strictly on both axes.
// eps widens the rejection band: with eps > 0, rectangles that merely touch
// (or come within eps of touching) do not count as overlapping.
func (r Rect) Overlaps(other Rect, eps float64) bool {
	return !(r.X2 <= other.X1+eps || other.X2 <= r.X1+eps ||
		r.Y2 <= other.Y1+eps || other.Y2 <= r.Y1+eps)
}

// Intersection returns the overlap rectangle of r and other. ok is false
// when the overlap has non-positive width or height.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	x1 := max(r.X1, other.X1)
	y1 := max(r.Y1, other.Y1)
	x2 := min(r.X2, other.X2)
	y2 := min(r.Y2, other.Y2)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}, false
	}
	return Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}, true
}

// IntersectionArea returns the area of the overlap between r and other,
// or 0 when there is no true overlap.
func (r Rect) IntersectionArea(other Rect) float64 {
	ov, ok := r.Intersection(other)
	if !ok {
		return 0
	}
	return (ov.X2 - ov.X1) * (ov.Y2 - ov.Y1)
}

// LayerTable groups rectangles by layer key. Per-layer insertion order is
// preserved so that first-wins tie-breaks in the matcher stay reproducible.
type LayerTable map[string][]Rect

// Add appends r to its layer's sequence.
func (t LayerTable) Add(r Rect) {
	t[r.Layer] = append(t[r.Layer], r)
}

// Layer returns the rectangles recorded for the given layer key, in
// insertion order. A missing key yields an empty slice.
func (t LayerTable) Layer(key string) []Rect {
	return t[key]
}
