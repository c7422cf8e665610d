package geom

import (
	"fmt"
	"iter"
	"strings"
)

// SegmentKind identifies the kind of a path segment.
type SegmentKind int

const (
	// SegMoveTo starts a new subpath at one point.
	SegMoveTo SegmentKind = iota
	// SegLineTo draws a line to one point.
	SegLineTo
	// SegQuadTo draws a quadratic Bézier curve through a control point to an
	// end point.
	SegQuadTo
	// SegCubicTo draws a cubic Bézier curve through two control points to an
	// end point.
	SegCubicTo
	// SegClose closes the current subpath with a line back to its start.
	SegClose
)

var segmentCoords = [...]int{
	SegMoveTo:  2,
	SegLineTo:  2,
	SegQuadTo:  4,
	SegCubicTo: 6,
	SegClose:   0,
}

// NumCoords returns the number of coordinates, not points, that a segment of
// kind k carries.
func (k SegmentKind) NumCoords() int {
	if k < 0 || int(k) >= len(segmentCoords) {
		return 0
	}
	return segmentCoords[k]
}

func (k SegmentKind) String() string {
	switch k {
	case SegMoveTo:
		return "MoveTo"
	case SegLineTo:
		return "LineTo"
	case SegQuadTo:
		return "QuadTo"
	case SegCubicTo:
		return "CubicTo"
	case SegClose:
		return "Close"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// WindingRule determines which points lie inside a path.
type WindingRule int

const (
	// WindEvenOdd treats a point as inside if a ray from it crosses the
	// path's outline an odd number of times.
	WindEvenOdd WindingRule = iota
	// WindNonZero treats a point as inside if the outline winds around it
	// a non-zero number of times.
	WindNonZero
)

func (r WindingRule) String() string {
	switch r {
	case WindEvenOdd:
		return "EvenOdd"
	case WindNonZero:
		return "NonZero"
	default:
		return fmt.Sprintf("WindingRule(%d)", int(r))
	}
}

func (r WindingRule) valid() bool {
	return r == WindEvenOdd || r == WindNonZero
}

// PathIterator is a cursor over the segments of a path.
//
// A typical loop looks like this:
//
//	var coords [6]float64
//	for ; !it.IsDone(); it.Next() {
//		kind, err := it.CurrentSegment(coords[:])
//		...
//	}
//
// Iterators borrow their source. Mutating the source during iteration leads
// to undefined results.
type PathIterator interface {
	// WindingRule returns the winding rule of the underlying path.
	WindingRule() WindingRule
	// IsDone reports whether all segments have been consumed.
	IsDone() bool
	// Next advances to the next segment. Calling Next on an exhausted
	// iterator has no effect.
	Next()
	// CurrentSegment stores the current segment's points into coords, which
	// must have room for 6 values, and returns the segment's kind. It
	// returns an error wrapping [ErrIteratorDone] if IsDone is true.
	CurrentSegment(coords []float64) (SegmentKind, error)
}

// Shape is implemented by anything that can describe its outline as a
// sequence of path segments.
type Shape interface {
	// Bounds returns a rectangle enclosing all points of the outline,
	// including control points.
	Bounds() Rect
	// PathIterator returns an iterator over the outline, with each point
	// mapped by at. A nil at means no transformation.
	PathIterator(at *Affine) PathIterator
}

// Segment is a self-contained copy of one path segment.
type Segment struct {
	Kind SegmentKind
	// Coords holds Kind.NumCoords() values; the rest are zero.
	Coords [6]float64
}

// Points returns the segment's points.
func (seg Segment) Points() []Point {
	n := seg.Kind.NumCoords() / 2
	pts := make([]Point, n)
	for i := range n {
		pts[i] = Pt(seg.Coords[2*i], seg.Coords[2*i+1])
	}
	return pts
}

// EndPoint returns the last point of the segment. Close segments have no
// end point of their own.
func (seg Segment) EndPoint() (Point, bool) {
	n := seg.Kind.NumCoords()
	if n == 0 {
		return Point{}, false
	}
	return Pt(seg.Coords[n-2], seg.Coords[n-1]), true
}

func (seg Segment) String() string {
	parts := []string{seg.Kind.String()}
	for _, pt := range seg.Points() {
		parts = append(parts, pt.String())
	}
	return strings.Join(parts, " ")
}

// Segments returns a sequence over the remaining segments of it. The
// sequence consumes the iterator and stops early if reading a segment fails.
// In that case it.IsDone reports false after the loop and it.CurrentSegment
// returns the error. Use [SegmentsErr] to receive the error in the loop.
func Segments(it PathIterator) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for ; !it.IsDone(); it.Next() {
			var seg Segment
			kind, err := it.CurrentSegment(seg.Coords[:])
			if err != nil {
				return
			}
			seg.Kind = kind
			if !yield(seg) {
				return
			}
		}
	}
}

// SegmentsErr is like [Segments] but yields the error that stopped the
// sequence as its last element, paired with a zero Segment.
func SegmentsErr(it PathIterator) iter.Seq2[Segment, error] {
	return func(yield func(Segment, error) bool) {
		for ; !it.IsDone(); it.Next() {
			var seg Segment
			kind, err := it.CurrentSegment(seg.Coords[:])
			if err != nil {
				yield(Segment{}, err)
				return
			}
			seg.Kind = kind
			if !yield(seg, nil) {
				return
			}
		}
	}
}

// CopyIterator iterates over the segments of a [Path] and returns their
// coordinates unchanged.
type CopyIterator struct {
	path      *Path
	typeIdx   int
	coordsIdx int
}

var _ PathIterator = (*CopyIterator)(nil)

// NewCopyIterator returns an iterator over p's segments.
func NewCopyIterator(p *Path) *CopyIterator {
	return &CopyIterator{path: p}
}

func (it *CopyIterator) WindingRule() WindingRule { return it.path.rule }
func (it *CopyIterator) IsDone() bool             { return it.typeIdx >= len(it.path.types) }

func (it *CopyIterator) Next() {
	if it.IsDone() {
		return
	}
	it.coordsIdx += it.path.types[it.typeIdx].NumCoords()
	it.typeIdx++
}

func (it *CopyIterator) CurrentSegment(coords []float64) (SegmentKind, error) {
	if it.IsDone() {
		return 0, fmt.Errorf("path iterator: %w", ErrIteratorDone)
	}
	kind := it.path.types[it.typeIdx]
	n := kind.NumCoords()
	copy(coords[:n], it.path.coords[it.coordsIdx:it.coordsIdx+n])
	return kind, nil
}

// TransformIterator iterates over the segments of a [Path] and maps each
// point by an affine transform as it is read.
type TransformIterator struct {
	CopyIterator
	at *Affine
}

var _ PathIterator = (*TransformIterator)(nil)

// NewTransformIterator returns an iterator over p's segments mapped by at.
// at is borrowed, not copied.
func NewTransformIterator(p *Path, at *Affine) *TransformIterator {
	return &TransformIterator{
		CopyIterator: CopyIterator{path: p},
		at:           at,
	}
}

func (it *TransformIterator) CurrentSegment(coords []float64) (SegmentKind, error) {
	if it.IsDone() {
		return 0, fmt.Errorf("path iterator: %w", ErrIteratorDone)
	}
	kind := it.path.types[it.typeIdx]
	n := kind.NumCoords()
	if n > 0 {
		it.at.TransformPoints(it.path.coords, it.coordsIdx, coords, 0, n/2)
	}
	return kind, nil
}
