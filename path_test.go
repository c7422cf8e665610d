package geom

import (
	"errors"
	"slices"
	"testing"
)

func mustPath(t *testing.T, rule WindingRule, opts ...PathOption) *Path {
	t.Helper()
	p, err := NewPath(rule, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// check fails the test immediately if err is not nil. It keeps path
// construction in tests readable.
func check(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func seg(kind SegmentKind, coords ...float64) Segment {
	s := Segment{Kind: kind}
	copy(s.Coords[:], coords)
	return s
}

func TestPathMissingMoveTo(t *testing.T) {
	p := mustPath(t, WindNonZero)
	for name, err := range map[string]error{
		"LineTo":    p.LineTo(1, 1),
		"QuadTo":    p.QuadTo(1, 1, 2, 2),
		"CurveTo":   p.CurveTo(1, 1, 2, 2, 3, 3),
		"ClosePath": p.ClosePath(),
	} {
		if !errors.Is(err, ErrIllegalPathState) {
			t.Errorf("%s: got error %v, want %v", name, err, ErrIllegalPathState)
		}
	}
	if n := p.NumSegments(); n != 0 {
		t.Errorf("failed calls added %d segments", n)
	}
}

func TestPathBuild(t *testing.T) {
	p := mustPath(t, WindEvenOdd)
	p.MoveTo(1, 1)
	p.MoveTo(2, 2)
	check(t, p.LineTo(3, 3))
	check(t, p.QuadTo(4, 4, 5, 5))
	check(t, p.CurveTo(6, 6, 7, 7, 8, 8))
	check(t, p.ClosePath())
	check(t, p.ClosePath())
	p.MoveTo(9, 9)

	want := []Segment{
		seg(SegMoveTo, 2, 2),
		seg(SegLineTo, 3, 3),
		seg(SegQuadTo, 4, 4, 5, 5),
		seg(SegCubicTo, 6, 6, 7, 7, 8, 8),
		seg(SegClose),
		seg(SegMoveTo, 9, 9),
	}
	diff(t, want, slices.Collect(p.Segments()))
	if n := p.NumSegments(); n != len(want) {
		t.Errorf("got %d segments, want %d", n, len(want))
	}
}

func TestPathZeroValue(t *testing.T) {
	var p Path
	if p.WindingRule() != WindEvenOdd {
		t.Errorf("got winding rule %s, want %s", p.WindingRule(), WindEvenOdd)
	}
	p.MoveTo(1, 2)
	check(t, p.LineTo(3, 4))
	check(t, p.CurveTo(1, 1, 2, 2, 3, 3))
	want := []Segment{
		seg(SegMoveTo, 1, 2),
		seg(SegLineTo, 3, 4),
		seg(SegCubicTo, 1, 1, 2, 2, 3, 3),
	}
	diff(t, want, slices.Collect(p.Segments()))
}

func TestPathGrowth(t *testing.T) {
	const expandMax = 2
	p := mustPath(t, WindNonZero, WithCapacity(1), WithExpandMax(expandMax))
	p.MoveTo(0, 0)
	var want []Segment
	want = append(want, seg(SegMoveTo, 0, 0))
	for i := range 20 {
		prevTypes, prevCoords := cap(p.types), cap(p.coords)
		x := float64(i + 1)
		if i%3 == 0 {
			check(t, p.CurveTo(x, 0, x, 1, x, 2))
			want = append(want, seg(SegCubicTo, x, 0, x, 1, x, 2))
		} else {
			check(t, p.LineTo(x, x))
			want = append(want, seg(SegLineTo, x, x))
		}
		if g := cap(p.types) - prevTypes; g > expandMax {
			t.Fatalf("segment storage grew by %d, want at most %d", g, expandMax)
		}
		if g := cap(p.coords) - prevCoords; g > 2*expandMax && g > 6 {
			t.Fatalf("coordinate storage grew by %d", g)
		}
	}
	diff(t, want, slices.Collect(p.Segments()))
}

func TestPathOptionsInvalid(t *testing.T) {
	if _, err := NewPath(WindEvenOdd, WithCapacity(-1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative capacity: got error %v", err)
	}
	if _, err := NewPath(WindEvenOdd, WithExpandMax(0)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero expand max: got error %v", err)
	}
	if _, err := NewPath(WindingRule(7)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad winding rule: got error %v", err)
	}

	p := mustPath(t, WindEvenOdd)
	if err := p.SetWindingRule(WindingRule(-1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got error %v, want %v", err, ErrInvalidArgument)
	}
	if p.WindingRule() != WindEvenOdd {
		t.Error("failed SetWindingRule changed the rule")
	}
	check(t, p.SetWindingRule(WindNonZero))
	if p.WindingRule() != WindNonZero {
		t.Error("SetWindingRule did not change the rule")
	}
}

func TestPathAppend(t *testing.T) {
	line := func(x0, y0, x1, y1 float64) *Path {
		p := mustPath(t, WindNonZero)
		p.MoveTo(x0, y0)
		check(t, p.LineTo(x1, y1))
		return p
	}

	tests := []struct {
		name    string
		base    *Path
		other   *Path
		connect bool
		want    []Segment
	}{
		{
			name:    "no connect",
			base:    line(0, 0, 10, 0),
			other:   line(10, 0, 10, 10),
			connect: false,
			want: []Segment{
				seg(SegMoveTo, 0, 0), seg(SegLineTo, 10, 0),
				seg(SegMoveTo, 10, 0), seg(SegLineTo, 10, 10),
			},
		},
		{
			name:    "connect at shared point",
			base:    line(0, 0, 10, 0),
			other:   line(10, 0, 10, 10),
			connect: true,
			want: []Segment{
				seg(SegMoveTo, 0, 0), seg(SegLineTo, 10, 0), seg(SegLineTo, 10, 10),
			},
		},
		{
			name:    "connect with gap",
			base:    line(0, 0, 10, 0),
			other:   line(20, 0, 20, 10),
			connect: true,
			want: []Segment{
				seg(SegMoveTo, 0, 0), seg(SegLineTo, 10, 0),
				seg(SegLineTo, 20, 0), seg(SegLineTo, 20, 10),
			},
		},
		{
			name:    "connect to empty",
			base:    mustPath(t, WindNonZero),
			other:   line(1, 2, 3, 4),
			connect: true,
			want:    []Segment{seg(SegMoveTo, 1, 2), seg(SegLineTo, 3, 4)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, tt.base.Append(tt.other.PathIterator(nil), tt.connect))
			diff(t, tt.want, slices.Collect(tt.base.Segments()))
		})
	}

	t.Run("connect after close", func(t *testing.T) {
		p := line(0, 0, 10, 0)
		check(t, p.ClosePath())
		check(t, p.Append(line(10, 0, 5, 5).PathIterator(nil), true))
		want := []Segment{
			seg(SegMoveTo, 0, 0), seg(SegLineTo, 10, 0), seg(SegClose),
			seg(SegLineTo, 10, 0), seg(SegLineTo, 5, 5),
		}
		diff(t, want, slices.Collect(p.Segments()))
	})

	t.Run("only first move connects", func(t *testing.T) {
		other := line(10, 0, 10, 10)
		other.MoveTo(50, 50)
		check(t, other.LineTo(60, 60))
		p := line(0, 0, 10, 0)
		check(t, p.Append(other.PathIterator(nil), true))
		want := []Segment{
			seg(SegMoveTo, 0, 0), seg(SegLineTo, 10, 0), seg(SegLineTo, 10, 10),
			seg(SegMoveTo, 50, 50), seg(SegLineTo, 60, 60),
		}
		diff(t, want, slices.Collect(p.Segments()))
	})
}

// lineFirst is a malformed iterator whose first segment is a LineTo.
type lineFirst struct{ done bool }

func (it *lineFirst) WindingRule() WindingRule { return WindEvenOdd }
func (it *lineFirst) IsDone() bool             { return it.done }
func (it *lineFirst) Next()                    { it.done = true }
func (it *lineFirst) CurrentSegment(coords []float64) (SegmentKind, error) {
	coords[0], coords[1] = 1, 1
	return SegLineTo, nil
}

type lineFirstShape struct{}

func (lineFirstShape) Bounds() Rect                      { return Rect{1, 1, 1, 1} }
func (lineFirstShape) PathIterator(*Affine) PathIterator { return &lineFirst{} }

func TestPathFromShape(t *testing.T) {
	p, err := NewPathFromShape(NewRect(0, 0, 2, 3), NewTranslate(1, 1))
	check(t, err)
	if p.WindingRule() != WindNonZero {
		t.Errorf("got winding rule %s, want %s", p.WindingRule(), WindNonZero)
	}
	diff(t, Rect{1, 1, 3, 4}, p.Bounds())
	if n := p.NumSegments(); n != 6 {
		t.Errorf("got %d segments, want 6", n)
	}

	if _, err := NewPathFromShape(lineFirstShape{}, nil); !errors.Is(err, ErrIllegalPathState) {
		t.Errorf("got error %v, want %v", err, ErrIllegalPathState)
	}

	q := mustPath(t, WindEvenOdd)
	check(t, q.AppendShape(NewRect(0, 0, 1, 1), false))
	if n := q.NumSegments(); n != 6 {
		t.Errorf("AppendShape: got %d segments, want 6", n)
	}
}

func TestPathBounds(t *testing.T) {
	p := mustPath(t, WindEvenOdd)
	diff(t, Rect{}, p.Bounds())

	p.MoveTo(1, 1)
	diff(t, Rect{1, 1, 1, 1}, p.Bounds())

	check(t, p.QuadTo(5, -3, 4, 2))
	check(t, p.CurveTo(0, 0, -2, 8, 3, 3))
	diff(t, Rect{-2, -3, 5, 8}, p.Bounds())
}

func TestPathCurrentPoint(t *testing.T) {
	p := mustPath(t, WindEvenOdd)
	if _, ok := p.CurrentPoint(); ok {
		t.Error("empty path should have no current point")
	}

	p.MoveTo(1, 2)
	check(t, p.LineTo(3, 4))
	if pt, _ := p.CurrentPoint(); pt != Pt(3, 4) {
		t.Errorf("got %s, want %s", pt, Pt(3, 4))
	}
	check(t, p.QuadTo(5, 5, 6, 7))
	if pt, _ := p.CurrentPoint(); pt != Pt(6, 7) {
		t.Errorf("got %s, want %s", pt, Pt(6, 7))
	}
	check(t, p.ClosePath())
	if pt, _ := p.CurrentPoint(); pt != Pt(1, 2) {
		t.Errorf("after close: got %s, want %s", pt, Pt(1, 2))
	}

	p.MoveTo(10, 10)
	check(t, p.CurveTo(11, 11, 12, 12, 13, 13))
	check(t, p.LineTo(20, 20))
	check(t, p.ClosePath())
	if pt, _ := p.CurrentPoint(); pt != Pt(10, 10) {
		t.Errorf("after second close: got %s, want %s", pt, Pt(10, 10))
	}
}

func TestPathTransform(t *testing.T) {
	p := mustPath(t, WindNonZero)
	p.MoveTo(1, 0)
	check(t, p.QuadTo(2, 0, 2, 1))
	check(t, p.ClosePath())

	moved := p.TransformedShape(NewTranslate(10, 0))
	want := []Segment{seg(SegMoveTo, 11, 0), seg(SegQuadTo, 12, 0, 12, 1), seg(SegClose)}
	diff(t, want, slices.Collect(moved.Segments()))
	if moved.WindingRule() != WindNonZero {
		t.Error("transformed copy lost its winding rule")
	}

	// The original is unaffected.
	diff(t, Pt(1, 0), Pt(p.coords[0], p.coords[1]))

	p.Transform(NewQuadrantRotate(1))
	want = []Segment{seg(SegMoveTo, 0, 1), seg(SegQuadTo, 0, 2, -1, 2), seg(SegClose)}
	diff(t, want, slices.Collect(p.Segments()))

	p.Transform(nil)
	diff(t, want, slices.Collect(p.Segments()))
}

func TestPathCloneReset(t *testing.T) {
	p := mustPath(t, WindNonZero)
	p.MoveTo(0, 0)
	check(t, p.LineTo(1, 1))

	c := p.Clone()
	check(t, c.LineTo(2, 2))
	p.coords[0] = 5
	if c.NumSegments() != 3 || p.NumSegments() != 2 {
		t.Errorf("clone is not independent: %d and %d segments", c.NumSegments(), p.NumSegments())
	}
	if c.coords[0] != 0 {
		t.Error("clone shares coordinate storage")
	}

	capTypes := cap(p.types)
	p.Reset()
	if p.NumSegments() != 0 || cap(p.types) != capTypes {
		t.Error("Reset should empty the path and keep its storage")
	}
	if err := p.LineTo(1, 1); !errors.Is(err, ErrIllegalPathState) {
		t.Errorf("after Reset: got error %v, want %v", err, ErrIllegalPathState)
	}
}
