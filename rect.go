package geom

import "fmt"

// Rect is an axis-aligned rectangle spanning from (X0, Y0) to (X1, Y1).
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

var _ Shape = Rect{}

// NewRect returns the rectangle with origin (x, y) and size w×h.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

// NewRectFromPoints returns a rectangle with the extents of p0 and p1, ensuring that
// width and height are non-negative.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{p0.X, p0.Y, p1.X, p1.Y}.Abs()
}

// Abs returns a new rectangle with the same extents as r, but ensuring that width and
// height are non-negative.
func (r Rect) Abs() Rect {
	return Rect{
		X0: min(r.X0, r.X1),
		Y0: min(r.Y0, r.Y1),
		X1: max(r.X0, r.X1),
		Y1: max(r.Y0, r.Y1),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{%s, %s}", Pt(r.X0, r.Y0), Pt(r.X1, r.Y1))
}

// Origin returns the origin of the rectangle.
func (r Rect) Origin() Point {
	return Point{
		X: r.X0,
		Y: r.Y0,
	}
}

// Width returns the rectangle's width, defined as X1 − X0. It may be negative.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the rectangle's height, defined as Y1 − Y0. It may be negative.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

func (r Rect) Size() Size {
	return Size{
		Width:  r.Width(),
		Height: r.Height(),
	}
}

// IsEmpty reports whether the rectangle encloses no area, that is, whether its
// width or height is not positive.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X0 &&
		pt.X < r.X1 &&
		pt.Y >= r.Y0 &&
		pt.Y < r.Y1
}

// Union returns the smallest rectangle enclosing r and o.
//
// Results are valid only if width and height are non-negative.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// UnionPoint computes the union with one point.
//
// This method includes the perimeter of zero-area rectangles.
// Thus, a succession of UnionPoint operations on a series of
// points yields their enclosing rectangle.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{
		X0: min(r.X0, pt.X),
		Y0: min(r.Y0, pt.Y),
		X1: max(r.X1, pt.X),
		Y1: max(r.Y1, pt.Y),
	}
}

// Bounds implements Shape.
func (r Rect) Bounds() Rect { return r }

// PathIterator implements Shape. The outline starts at the origin, runs along
// the top edge first, returns to the origin with an explicit line and is then
// closed. Rectangles with negative width or height produce no segments.
func (r Rect) PathIterator(at *Affine) PathIterator {
	it := &rectIterator{
		x:  r.X0,
		y:  r.Y0,
		w:  r.Width(),
		h:  r.Height(),
		at: at,
	}
	if it.w < 0 || it.h < 0 {
		it.index = rectSegments
	}
	return it
}

// Render draws the rectangle's outline on s. See [Render].
func (r Rect) Render(s Surface, style RenderStyle, clip bool) error {
	return Render(s, r.PathIterator(nil), style, clip)
}

// rectSegments is the number of segments in a rectangle outline: one move,
// four lines and a close.
const rectSegments = 6

type rectIterator struct {
	x, y, w, h float64
	at         *Affine
	index      int
}

func (it *rectIterator) WindingRule() WindingRule { return WindNonZero }
func (it *rectIterator) IsDone() bool             { return it.index >= rectSegments }
func (it *rectIterator) Next()                    { it.index++ }

func (it *rectIterator) CurrentSegment(coords []float64) (SegmentKind, error) {
	if it.IsDone() {
		return 0, fmt.Errorf("rect iterator: %w", ErrIteratorDone)
	}
	if it.index == rectSegments-1 {
		return SegClose, nil
	}
	coords[0] = it.x
	coords[1] = it.y
	if it.index == 1 || it.index == 2 {
		coords[0] += it.w
	}
	if it.index == 2 || it.index == 3 {
		coords[1] += it.h
	}
	if it.at != nil {
		it.at.TransformPoints(coords, 0, coords, 0, 1)
	}
	if it.index == 0 {
		return SegMoveTo, nil
	}
	return SegLineTo, nil
}
