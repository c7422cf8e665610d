package geom

import (
	"fmt"
	"math"
)

// initialHoldSize fits one cubic curve plus a copy of the source segment.
const initialHoldSize = 14

// FlatteningIterator wraps another [PathIterator] and replaces every
// quadratic and cubic curve with a polyline approximation. It only ever
// returns SegMoveTo, SegLineTo and SegClose segments.
//
// Curves are subdivided recursively at their parametric midpoint until the
// control points of a piece lie within the flatness tolerance of the piece's
// chord, or until the recursion limit is reached. Pending pieces live in a
// scratch buffer that grows on demand.
type FlatteningIterator struct {
	src PathIterator

	flatness   float64
	squareFlat float64
	limit      int
	growSize   int

	// hold stores curve pieces awaiting further subdivision. The piece
	// being worked on starts at holdIndex; holdEnd is the index of the end
	// point of the whole source curve.
	hold      []float64
	holdType  SegmentKind
	holdIndex int
	holdEnd   int

	// levels records the subdivision depth of each pending piece.
	levels     []int
	levelIndex int

	curX, curY float64
	movX, movY float64

	done     bool
	srcErr   error
	limitHit bool
}

var _ PathIterator = (*FlatteningIterator)(nil)

// NewFlatteningIterator returns an iterator over src in which curves are
// replaced by lines deviating from them by at most flatness. flatness must
// not be negative.
func NewFlatteningIterator(src PathIterator, flatness float64, opts ...FlattenOption) (*FlatteningIterator, error) {
	if !(flatness >= 0) {
		return nil, fmt.Errorf("%w: flatness must be >= 0, got %g", ErrInvalidArgument, flatness)
	}
	o := defaultFlattenOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	it := &FlatteningIterator{
		src:        src,
		flatness:   flatness,
		squareFlat: flatness * flatness,
		limit:      o.limit,
		growSize:   o.growSize,
		hold:       make([]float64, initialHoldSize),
		levels:     make([]int, o.limit+1),
	}
	it.next(false)
	return it, nil
}

// Flatness returns the flatness tolerance.
func (it *FlatteningIterator) Flatness() float64 { return it.flatness }

// RecursionLimit returns the maximum subdivision depth of a single curve.
func (it *FlatteningIterator) RecursionLimit() int { return it.limit }

func (it *FlatteningIterator) WindingRule() WindingRule { return it.src.WindingRule() }
func (it *FlatteningIterator) IsDone() bool             { return it.done }

func (it *FlatteningIterator) Next() {
	if it.done {
		return
	}
	it.next(true)
}

// ensureHoldCapacity makes room for want more values in front of the
// current piece by growing hold at the front.
func (it *FlatteningIterator) ensureHoldCapacity(want int) {
	if it.holdIndex-want >= 0 {
		return
	}
	grow := it.growSize
	hold := make([]float64, len(it.hold)+grow)
	copy(hold[it.holdIndex+grow:], it.hold[it.holdIndex:])
	it.hold = hold
	it.holdIndex += grow
	it.holdEnd += grow
}

func (it *FlatteningIterator) next(advance bool) {
	if it.holdIndex >= it.holdEnd {
		if advance {
			it.src.Next()
		}
		if it.src.IsDone() {
			it.done = true
			return
		}
		kind, err := it.src.CurrentSegment(it.hold)
		if err != nil {
			it.srcErr = err
			it.done = true
			return
		}
		it.holdType = kind
		it.levelIndex = 0
		it.levels[0] = 0
		it.limitHit = false
	}

	switch it.holdType {
	case SegMoveTo, SegLineTo:
		it.curX = it.hold[0]
		it.curY = it.hold[1]
		if it.holdType == SegMoveTo {
			it.movX = it.curX
			it.movY = it.curY
		}
		it.holdIndex = 0
		it.holdEnd = 0
	case SegClose:
		it.curX = it.movX
		it.curY = it.movY
		it.holdIndex = 0
		it.holdEnd = 0
	case SegQuadTo:
		if it.holdIndex >= it.holdEnd {
			// Move the curve, including its start point, to the end of the
			// buffer, leaving room in front for subdivision.
			n := len(it.hold)
			it.holdIndex = n - 6
			it.holdEnd = n - 2
			h := it.hold[it.holdIndex:]
			h[0], h[1] = it.curX, it.curY
			h[2], h[3] = it.hold[0], it.hold[1]
			h[4], h[5] = it.hold[2], it.hold[3]
			it.curX, it.curY = h[4], h[5]
		}
		level := it.levels[it.levelIndex]
		for level < it.limit {
			if quadFlatnessSquared(it.hold[it.holdIndex:]) < it.squareFlat {
				break
			}
			it.ensureHoldCapacity(4)
			subdivideQuad(it.hold, it.holdIndex)
			it.holdIndex -= 4
			level++
			it.levels[it.levelIndex] = level
			it.levelIndex++
			it.levels[it.levelIndex] = level
		}
		it.noteLimit(level)
		it.holdIndex += 4
		it.levelIndex--
	case SegCubicTo:
		if it.holdIndex >= it.holdEnd {
			n := len(it.hold)
			it.holdIndex = n - 8
			it.holdEnd = n - 2
			h := it.hold[it.holdIndex:]
			h[0], h[1] = it.curX, it.curY
			h[2], h[3] = it.hold[0], it.hold[1]
			h[4], h[5] = it.hold[2], it.hold[3]
			h[6], h[7] = it.hold[4], it.hold[5]
			it.curX, it.curY = h[6], h[7]
		}
		level := it.levels[it.levelIndex]
		for level < it.limit {
			if cubicFlatnessSquared(it.hold[it.holdIndex:]) < it.squareFlat {
				break
			}
			it.ensureHoldCapacity(6)
			subdivideCubic(it.hold, it.holdIndex)
			it.holdIndex -= 6
			level++
			it.levels[it.levelIndex] = level
			it.levelIndex++
			it.levels[it.levelIndex] = level
		}
		it.noteLimit(level)
		it.holdIndex += 6
		it.levelIndex--
	}
}

// noteLimit logs the first piece of a source curve that was emitted because
// the recursion limit was reached.
func (it *FlatteningIterator) noteLimit(level int) {
	if level < it.limit || it.limitHit || it.limit == 0 {
		return
	}
	it.limitHit = true
	Logger().Debug("flattening reached recursion limit",
		"limit", it.limit,
		"kind", it.holdType,
		"flatness", it.flatness)
}

func (it *FlatteningIterator) CurrentSegment(coords []float64) (SegmentKind, error) {
	if it.done {
		if it.srcErr != nil {
			return 0, fmt.Errorf("flattening iterator: %w", it.srcErr)
		}
		return 0, fmt.Errorf("flattening iterator: %w", ErrIteratorDone)
	}
	kind := it.holdType
	if kind != SegClose {
		coords[0] = it.hold[it.holdIndex]
		coords[1] = it.hold[it.holdIndex+1]
		if kind != SegMoveTo {
			kind = SegLineTo
		}
	}
	return kind, nil
}

// quadFlatnessSquared returns the squared distance of the control point of
// the quadratic curve stored at the start of c from its chord.
func quadFlatnessSquared(c []float64) float64 {
	return segmentDistanceSquared(c[0], c[1], c[4], c[5], c[2], c[3])
}

// cubicFlatnessSquared returns the larger squared distance of the two
// control points of the cubic curve stored at the start of c from its chord.
func cubicFlatnessSquared(c []float64) float64 {
	return math.Max(
		segmentDistanceSquared(c[0], c[1], c[6], c[7], c[2], c[3]),
		segmentDistanceSquared(c[0], c[1], c[6], c[7], c[4], c[5]),
	)
}

// subdivideQuad splits the quadratic curve at buf[off:off+6] in half using
// de Casteljau's algorithm. The left half is written to buf[off-4:off+2] and
// the right half to buf[off:off+6]; they share the midpoint.
func subdivideQuad(buf []float64, off int) {
	x1, y1 := buf[off], buf[off+1]
	cx, cy := buf[off+2], buf[off+3]
	x2, y2 := buf[off+4], buf[off+5]

	lx, ly := (x1+cx)/2, (y1+cy)/2
	rx, ry := (x2+cx)/2, (y2+cy)/2
	mx, my := (lx+rx)/2, (ly+ry)/2

	l := buf[off-4:]
	l[0], l[1] = x1, y1
	l[2], l[3] = lx, ly
	l[4], l[5] = mx, my
	r := buf[off:]
	r[2], r[3] = rx, ry
	r[4], r[5] = x2, y2
}

// subdivideCubic splits the cubic curve at buf[off:off+8] in half. The left
// half is written to buf[off-6:off+2] and the right half to buf[off:off+8].
func subdivideCubic(buf []float64, off int) {
	x1, y1 := buf[off], buf[off+1]
	c1x, c1y := buf[off+2], buf[off+3]
	c2x, c2y := buf[off+4], buf[off+5]
	x2, y2 := buf[off+6], buf[off+7]

	l1x, l1y := (x1+c1x)/2, (y1+c1y)/2
	r2x, r2y := (x2+c2x)/2, (y2+c2y)/2
	cx, cy := (c1x+c2x)/2, (c1y+c2y)/2
	l2x, l2y := (l1x+cx)/2, (l1y+cy)/2
	r1x, r1y := (r2x+cx)/2, (r2y+cy)/2
	mx, my := (l2x+r1x)/2, (l2y+r1y)/2

	l := buf[off-6:]
	l[0], l[1] = x1, y1
	l[2], l[3] = l1x, l1y
	l[4], l[5] = l2x, l2y
	l[6], l[7] = mx, my
	r := buf[off:]
	r[2], r[3] = r1x, r1y
	r[4], r[5] = r2x, r2y
	r[6], r[7] = x2, y2
}
