package geom

import (
	"fmt"
	"iter"
)

// Path is a mutable sequence of path segments built from straight lines and
// quadratic and cubic Bézier curves.
//
// Segment kinds and coordinates are stored in two flat arrays. Both grow in
// bounded steps as segments are appended and never shrink. Reset keeps the
// storage for reuse.
//
// Every subpath must start with a MoveTo. Appending any other segment to an
// empty path fails with [ErrIllegalPathState].
//
// The zero value is an empty path using the even-odd winding rule.
type Path struct {
	types  []SegmentKind
	coords []float64
	rule   WindingRule
	// expandMax caps the number of segments added per growth step. Zero
	// means defaultExpandMax.
	expandMax int
}

var _ Shape = (*Path)(nil)

// NewPath returns an empty path with the given winding rule.
func NewPath(rule WindingRule, opts ...PathOption) (*Path, error) {
	o := defaultPathOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	p := &Path{
		types:     make([]SegmentKind, 0, o.capacity),
		coords:    make([]float64, 0, o.capacity*2),
		expandMax: o.expandMax,
	}
	if err := p.SetWindingRule(rule); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPathFromShape returns a new path holding the outline of s, mapped by at
// if at is not nil. The path adopts the winding rule of s's iterator.
func NewPathFromShape(s Shape, at *Affine) (*Path, error) {
	it := s.PathIterator(at)
	p := &Path{
		types:  make([]SegmentKind, 0, defaultPathCapacity),
		coords: make([]float64, 0, defaultPathCapacity*2),
	}
	if err := p.SetWindingRule(it.WindingRule()); err != nil {
		return nil, err
	}
	if err := p.Append(it, false); err != nil {
		return nil, err
	}
	return p, nil
}

// Clone returns an independent copy of p.
func (p *Path) Clone() *Path {
	return p.cloneTransformed(nil)
}

// cloneTransformed copies p, mapping the coordinates by at if at is not
// nil.
func (p *Path) cloneTransformed(at *Affine) *Path {
	c := &Path{
		types:     make([]SegmentKind, len(p.types), cap(p.types)),
		coords:    make([]float64, len(p.coords), cap(p.coords)),
		rule:      p.rule,
		expandMax: p.expandMax,
	}
	copy(c.types, p.types)
	if at == nil {
		copy(c.coords, p.coords)
	} else {
		at.TransformPoints(p.coords, 0, c.coords, 0, len(p.coords)/2)
	}
	return c
}

func (p *Path) expandStep() int {
	if p.expandMax > 0 {
		return p.expandMax
	}
	return defaultExpandMax
}

// needRoom makes room for one more segment kind and newCoords more
// coordinates. If needMove is set, the path must already contain a segment.
func (p *Path) needRoom(needMove bool, newCoords int) error {
	if needMove && len(p.types) == 0 {
		return fmt.Errorf("%w: missing initial moveto in path definition", ErrIllegalPathState)
	}
	step := p.expandStep()
	if size := cap(p.types); len(p.types) >= size {
		grow := max(min(size, step), 1)
		types := make([]SegmentKind, len(p.types), size+grow)
		copy(types, p.types)
		p.types = types
		Logger().Debug("path segment storage grown", "from", size, "to", size+grow)
	}
	if size := cap(p.coords); len(p.coords)+newCoords > size {
		grow := max(min(size, step*2), newCoords)
		coords := make([]float64, len(p.coords), size+grow)
		copy(coords, p.coords)
		p.coords = coords
		Logger().Debug("path coordinate storage grown", "from", size, "to", size+grow)
	}
	return nil
}

// MoveTo starts a new subpath at (x, y). Consecutive MoveTo calls replace
// each other instead of accumulating.
func (p *Path) MoveTo(x, y float64) {
	if n := len(p.types); n > 0 && p.types[n-1] == SegMoveTo {
		p.coords[len(p.coords)-2] = x
		p.coords[len(p.coords)-1] = y
		return
	}
	// needRoom cannot fail without needMove.
	_ = p.needRoom(false, 2)
	p.types = append(p.types, SegMoveTo)
	p.coords = append(p.coords, x, y)
}

// LineTo adds a straight line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) error {
	if err := p.needRoom(true, 2); err != nil {
		return err
	}
	p.types = append(p.types, SegLineTo)
	p.coords = append(p.coords, x, y)
	return nil
}

// QuadTo adds a quadratic Bézier curve from the current point through the
// control point (x1, y1) to (x2, y2).
func (p *Path) QuadTo(x1, y1, x2, y2 float64) error {
	if err := p.needRoom(true, 4); err != nil {
		return err
	}
	p.types = append(p.types, SegQuadTo)
	p.coords = append(p.coords, x1, y1, x2, y2)
	return nil
}

// CurveTo adds a cubic Bézier curve from the current point through the
// control points (x1, y1) and (x2, y2) to (x3, y3).
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	if err := p.needRoom(true, 6); err != nil {
		return err
	}
	p.types = append(p.types, SegCubicTo)
	p.coords = append(p.coords, x1, y1, x2, y2, x3, y3)
	return nil
}

// ClosePath closes the current subpath. Closing an already closed subpath
// does nothing.
func (p *Path) ClosePath() error {
	if n := len(p.types); n == 0 || p.types[n-1] != SegClose {
		if err := p.needRoom(true, 0); err != nil {
			return err
		}
		p.types = append(p.types, SegClose)
	}
	return nil
}

// Append adds the remaining segments of it to p.
//
// If connect is true and p is not empty, an initial MoveTo of it is turned
// into a LineTo, connecting the new geometry to the current subpath. That
// LineTo is dropped entirely if it would lead to the point p already ends
// at, unless p's last segment is a close.
func (p *Path) Append(it PathIterator, connect bool) error {
	var coords [6]float64
	for ; !it.IsDone(); it.Next() {
		kind, err := it.CurrentSegment(coords[:])
		if err != nil {
			return err
		}
		switch kind {
		case SegMoveTo:
			if !connect || len(p.types) < 1 || len(p.coords) < 1 {
				p.MoveTo(coords[0], coords[1])
				break
			}
			n := len(p.coords)
			if p.types[len(p.types)-1] != SegClose &&
				p.coords[n-2] == coords[0] &&
				p.coords[n-1] == coords[1] {
				break
			}
			err = p.LineTo(coords[0], coords[1])
		case SegLineTo:
			err = p.LineTo(coords[0], coords[1])
		case SegQuadTo:
			err = p.QuadTo(coords[0], coords[1], coords[2], coords[3])
		case SegCubicTo:
			err = p.CurveTo(coords[0], coords[1], coords[2], coords[3], coords[4], coords[5])
		case SegClose:
			err = p.ClosePath()
		default:
			err = fmt.Errorf("%w: unknown segment kind %d", ErrInvalidArgument, kind)
		}
		if err != nil {
			return err
		}
		connect = false
	}
	return nil
}

// AppendShape appends the outline of s. See [Path.Append] for connect.
func (p *Path) AppendShape(s Shape, connect bool) error {
	return p.Append(s.PathIterator(nil), connect)
}

// Reset removes all segments, keeping the allocated storage.
func (p *Path) Reset() {
	p.types = p.types[:0]
	p.coords = p.coords[:0]
}

// Bounds returns the smallest rectangle containing every point of the path,
// including control points. The bounds of an empty path are the zero
// rectangle.
func (p *Path) Bounds() Rect {
	i := len(p.coords)
	if i == 0 {
		return Rect{}
	}
	b := Rect{p.coords[i-2], p.coords[i-1], p.coords[i-2], p.coords[i-1]}
	for i -= 2; i > 0; i -= 2 {
		b = b.UnionPoint(Pt(p.coords[i-2], p.coords[i-1]))
	}
	return b
}

// CurrentPoint returns the point the path currently ends at. After a close,
// that is the start of the closed subpath. The boolean is false for an empty
// path.
func (p *Path) CurrentPoint() (Point, bool) {
	index := len(p.coords)
	if len(p.types) < 1 || index < 1 {
		return Point{}, false
	}
	if p.types[len(p.types)-1] == SegClose {
	loop:
		for i := len(p.types) - 2; i > 0; i-- {
			switch k := p.types[i]; k {
			case SegMoveTo:
				break loop
			default:
				index -= k.NumCoords()
			}
		}
	}
	return Pt(p.coords[index-2], p.coords[index-1]), true
}

func (p *Path) WindingRule() WindingRule { return p.rule }

// SetWindingRule changes the path's winding rule.
func (p *Path) SetWindingRule(rule WindingRule) error {
	if !rule.valid() {
		return fmt.Errorf("%w: winding rule must be WindEvenOdd or WindNonZero, got %d", ErrInvalidArgument, int(rule))
	}
	p.rule = rule
	return nil
}

// NumSegments returns the number of segments in the path.
func (p *Path) NumSegments() int {
	return len(p.types)
}

// PathIterator implements [Shape]. A nil at returns a [*CopyIterator], any
// other transform a [*TransformIterator].
func (p *Path) PathIterator(at *Affine) PathIterator {
	if at == nil {
		return NewCopyIterator(p)
	}
	return NewTransformIterator(p, at)
}

// FlatPathIterator returns an iterator over the path, mapped by at, in which
// every curve is replaced by line segments deviating from it by at most
// flatness.
func (p *Path) FlatPathIterator(at *Affine, flatness float64, opts ...FlattenOption) (*FlatteningIterator, error) {
	return NewFlatteningIterator(p.PathIterator(at), flatness, opts...)
}

// Segments returns a sequence over the path's segments.
func (p *Path) Segments() iter.Seq[Segment] {
	return Segments(NewCopyIterator(p))
}

// Transform maps every point of the path by at, in place.
func (p *Path) Transform(at *Affine) {
	if at == nil {
		return
	}
	at.TransformPoints(p.coords, 0, p.coords, 0, len(p.coords)/2)
}

// TransformedShape returns a copy of the path mapped by at. A nil at returns
// a plain copy.
func (p *Path) TransformedShape(at *Affine) *Path {
	return p.cloneTransformed(at)
}
