package geom

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"slices"
	"testing"
)

func flatten(t *testing.T, src PathIterator, flatness float64, opts ...FlattenOption) []Segment {
	t.Helper()
	it, err := NewFlatteningIterator(src, flatness, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return slices.Collect(Segments(it))
}

func quadAt(p0, p1, p2 Point, u float64) Point {
	mt := 1 - u
	return Pt(
		mt*mt*p0.X+2*mt*u*p1.X+u*u*p2.X,
		mt*mt*p0.Y+2*mt*u*p1.Y+u*u*p2.Y,
	)
}

func cubicAt(p0, p1, p2, p3 Point, u float64) Point {
	mt := 1 - u
	a, b, c, d := mt*mt*mt, 3*mt*mt*u, 3*mt*u*u, u*u*u
	return Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

// polylineDistance returns the distance from pt to the nearest segment of
// the polyline through pts.
func polylineDistance(pts []Point, pt Point) float64 {
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		d := segmentDistanceSquared(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, pt.X, pt.Y)
		best = min(best, d)
	}
	return math.Sqrt(best)
}

func polyline(t *testing.T, segs []Segment) []Point {
	t.Helper()
	var pts []Point
	for i, s := range segs {
		switch s.Kind {
		case SegMoveTo:
			if i != 0 {
				t.Fatalf("unexpected MoveTo at %d", i)
			}
		case SegLineTo:
		default:
			t.Fatalf("unexpected %s segment at %d", s.Kind, i)
		}
		pt, _ := s.EndPoint()
		pts = append(pts, pt)
	}
	return pts
}

func TestFlattenLinesUnchanged(t *testing.T) {
	p := mustPath(t, WindEvenOdd)
	p.MoveTo(0, 0)
	check(t, p.LineTo(5, 0))
	check(t, p.LineTo(5, 5))
	check(t, p.ClosePath())
	p.MoveTo(10, 10)
	check(t, p.LineTo(12, 10))

	got := flatten(t, p.PathIterator(nil), 0.1)
	diff(t, slices.Collect(p.Segments()), got)
}

func TestFlattenQuadTolerance(t *testing.T) {
	p0, p1, p2 := Pt(0, 0), Pt(50, 100), Pt(100, 0)
	for _, flatness := range []float64{5, 1, 0.1, 0.01} {
		p := mustPath(t, WindNonZero)
		p.MoveTo(p0.X, p0.Y)
		check(t, p.QuadTo(p1.X, p1.Y, p2.X, p2.Y))

		pts := polyline(t, flatten(t, p.PathIterator(nil), flatness))
		diff(t, p0, pts[0])
		diff(t, p2, pts[len(pts)-1])
		for i := 0; i <= 200; i++ {
			pt := quadAt(p0, p1, p2, float64(i)/200)
			if d := polylineDistance(pts, pt); d > flatness+1e-9 {
				t.Fatalf("flatness %g: curve point %s is %g away from the polyline", flatness, pt, d)
			}
		}
		// Every vertex lies on the curve.
		for _, v := range pts {
			if d := curveDistance(func(u float64) Point { return quadAt(p0, p1, p2, u) }, v); d > 1e-3 {
				t.Fatalf("flatness %g: vertex %s is %g away from the curve", flatness, v, d)
			}
		}
	}
}

// curveDistance approximates the distance from pt to a parametric curve.
func curveDistance(f func(u float64) Point, pt Point) float64 {
	best, bestU := math.Inf(1), 0.0
	for i := 0; i <= 1000; i++ {
		u := float64(i) / 1000
		if d := f(u).Distance(pt); d < best {
			best, bestU = d, u
		}
	}
	// Refine around the coarse minimum.
	lo, hi := max(bestU-0.001, 0), min(bestU+0.001, 1)
	for i := 0; i <= 1000; i++ {
		u := lo + (hi-lo)*float64(i)/1000
		best = min(best, f(u).Distance(pt))
	}
	return best
}

func TestFlattenCubicTolerance(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(0, 100), Pt(100, -50), Pt(100, 50)
	for _, flatness := range []float64{2, 0.5, 0.1} {
		p := mustPath(t, WindNonZero)
		p.MoveTo(p0.X, p0.Y)
		check(t, p.CurveTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y))

		pts := polyline(t, flatten(t, p.PathIterator(nil), flatness))
		diff(t, p3, pts[len(pts)-1])
		for i := 0; i <= 300; i++ {
			pt := cubicAt(p0, p1, p2, p3, float64(i)/300)
			if d := polylineDistance(pts, pt); d > flatness+1e-9 {
				t.Fatalf("flatness %g: curve point %s is %g away from the polyline", flatness, pt, d)
			}
		}
	}
}

func TestFlattenSubdivisionCount(t *testing.T) {
	tests := []struct {
		name  string
		curve func(p *Path) error
		limit int
		want  int
	}{
		{"quad limit 0", func(p *Path) error { return p.QuadTo(5, 10, 10, 0) }, 0, 1},
		{"quad limit 3", func(p *Path) error { return p.QuadTo(5, 10, 10, 0) }, 3, 8},
		{"straight quad", func(p *Path) error { return p.QuadTo(5, 0, 10, 0) }, 2, 4},
		{"cubic limit 4", func(p *Path) error { return p.CurveTo(0, 10, 10, 10, 10, 0) }, 4, 16},
		{"deep quad", func(p *Path) error { return p.QuadTo(500, 1000, 1000, 0) }, 10, 1024},
		{"deep cubic", func(p *Path) error { return p.CurveTo(0, 1000, 1000, 1000, 1000, 0) }, 12, 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPath(t, WindNonZero)
			p.MoveTo(0, 0)
			check(t, tt.curve(p))
			check(t, p.ClosePath())

			// A flatness of zero is never reached, so every curve is
			// subdivided down to the recursion limit.
			segs := flatten(t, p.PathIterator(nil), 0, WithRecursionLimit(tt.limit))
			if n := len(segs); n != tt.want+2 {
				t.Fatalf("got %d segments, want %d", n, tt.want+2)
			}
			if segs[len(segs)-1].Kind != SegClose {
				t.Errorf("last segment is %s, want Close", segs[len(segs)-1].Kind)
			}
			pts := polyline(t, segs[:len(segs)-1])
			diff(t, Pt(p.coords[len(p.coords)-2], p.coords[len(p.coords)-1]), pts[len(pts)-1])
			for i := 1; i < len(pts); i++ {
				if pts[i-1].X > pts[i].X {
					t.Fatalf("vertices out of order at %d: %s then %s", i, pts[i-1], pts[i])
				}
			}
		})
	}
}

func TestFlattenGrowSize(t *testing.T) {
	p := mustPath(t, WindNonZero)
	p.MoveTo(0, 0)
	check(t, p.CurveTo(0, 10, 10, 10, 10, 0))
	want := flatten(t, p.PathIterator(nil), 0, WithRecursionLimit(8))
	got := flatten(t, p.PathIterator(nil), 0, WithRecursionLimit(8), WithGrowSize(8))
	diff(t, want, got)
}

func TestFlattenMultipleCurves(t *testing.T) {
	p := mustPath(t, WindEvenOdd)
	p.MoveTo(0, 0)
	check(t, p.QuadTo(1, 1, 2, 0))
	check(t, p.LineTo(3, 0))
	check(t, p.CurveTo(3, 1, 4, 1, 4, 0))
	check(t, p.ClosePath())
	p.MoveTo(10, 10)
	check(t, p.QuadTo(11, 11, 12, 10))

	segs := flatten(t, p.PathIterator(nil), 0, WithRecursionLimit(1))
	want := []Segment{
		seg(SegMoveTo, 0, 0),
		seg(SegLineTo, 1, 0.5),
		seg(SegLineTo, 2, 0),
		seg(SegLineTo, 3, 0),
		seg(SegLineTo, 3.5, 0.75),
		seg(SegLineTo, 4, 0),
		seg(SegClose),
		seg(SegMoveTo, 10, 10),
		seg(SegLineTo, 11, 10.5),
		seg(SegLineTo, 12, 10),
	}
	diff(t, want, segs, approx)
}

func TestFlattenTransformed(t *testing.T) {
	p := mustPath(t, WindNonZero)
	p.MoveTo(0, 0)
	check(t, p.QuadTo(1, 2, 2, 0))

	it, err := p.FlatPathIterator(NewTranslate(10, 0), 0, WithRecursionLimit(1))
	check(t, err)
	if it.WindingRule() != WindNonZero {
		t.Errorf("got winding rule %s", it.WindingRule())
	}
	if it.Flatness() != 0 || it.RecursionLimit() != 1 {
		t.Errorf("got flatness %g and limit %d", it.Flatness(), it.RecursionLimit())
	}
	want := []Segment{
		seg(SegMoveTo, 10, 0),
		seg(SegLineTo, 11, 1),
		seg(SegLineTo, 12, 0),
	}
	diff(t, want, slices.Collect(Segments(it)))

	var c [6]float64
	if _, err := it.CurrentSegment(c[:]); !errors.Is(err, ErrIteratorDone) {
		t.Errorf("got error %v, want %v", err, ErrIteratorDone)
	}
	it.Next()
	if !it.IsDone() {
		t.Error("Next on an exhausted iterator should keep it exhausted")
	}
}

func TestFlattenEmpty(t *testing.T) {
	it, err := NewFlatteningIterator(mustPath(t, WindEvenOdd).PathIterator(nil), 1)
	check(t, err)
	if !it.IsDone() {
		t.Error("flattening an empty path should be done immediately")
	}
}

func TestFlattenInvalid(t *testing.T) {
	src := NewRect(0, 0, 1, 1).PathIterator(nil)
	for _, f := range []float64{-1, math.NaN()} {
		if _, err := NewFlatteningIterator(src, f); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("flatness %g: got error %v, want %v", f, err, ErrInvalidArgument)
		}
	}
	if _, err := NewFlatteningIterator(src, 1, WithRecursionLimit(-1)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative limit: got error %v", err)
	}
	if _, err := NewFlatteningIterator(src, 1, WithGrowSize(4)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("small grow size: got error %v", err)
	}
}

var errBrokenSource = errors.New("broken source")

// brokenIterator yields a MoveTo and then fails.
type brokenIterator struct{ index int }

func (it *brokenIterator) WindingRule() WindingRule { return WindEvenOdd }
func (it *brokenIterator) IsDone() bool             { return it.index > 1 }
func (it *brokenIterator) Next()                    { it.index++ }
func (it *brokenIterator) CurrentSegment(coords []float64) (SegmentKind, error) {
	if it.index == 0 {
		coords[0], coords[1] = 1, 1
		return SegMoveTo, nil
	}
	return 0, errBrokenSource
}

func TestFlattenSourceError(t *testing.T) {
	it, err := NewFlatteningIterator(&brokenIterator{}, 1)
	check(t, err)
	var c [6]float64
	kind, err := it.CurrentSegment(c[:])
	check(t, err)
	if kind != SegMoveTo {
		t.Fatalf("got %s, want MoveTo", kind)
	}
	it.Next()
	if !it.IsDone() {
		t.Fatal("a failing source should end the iteration")
	}
	if _, err := it.CurrentSegment(c[:]); !errors.Is(err, errBrokenSource) {
		t.Errorf("got error %v, want %v", err, errBrokenSource)
	}
}

type recordHandler struct {
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r)
	return nil
}
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func TestFlattenLogsRecursionLimit(t *testing.T) {
	h := &recordHandler{}
	SetLogger(slog.New(h))
	t.Cleanup(func() { SetLogger(nil) })

	p := mustPath(t, WindNonZero)
	p.MoveTo(0, 0)
	check(t, p.QuadTo(5, 10, 10, 0))
	check(t, p.QuadTo(15, 10, 20, 0))
	flatten(t, p.PathIterator(nil), 0, WithRecursionLimit(3))

	var n int
	for _, r := range h.records {
		if r.Message == "flattening reached recursion limit" {
			n++
			if r.Level != slog.LevelDebug {
				t.Errorf("got level %s, want %s", r.Level, slog.LevelDebug)
			}
		}
	}
	if n != 2 {
		t.Errorf("got %d recursion limit records, want one per curve", n)
	}
}
