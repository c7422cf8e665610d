package geom

import "fmt"

// Surface is an external 2D drawing back end that accepts path construction
// commands and paints the resulting path. See the surface package for
// implementations.
type Surface interface {
	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()
	// Clip intersects the clip region with the current path.
	Clip(rule WindingRule) error
	// Fill paints the interior of the current path.
	Fill(rule WindingRule) error
	// Stroke paints the outline of the current path.
	Stroke() error
}

// RenderStyle selects how [Render] paints a path.
type RenderStyle int

const (
	RenderFill RenderStyle = iota
	RenderStroke
	RenderFillStroke
)

func (s RenderStyle) String() string {
	switch s {
	case RenderFill:
		return "Fill"
	case RenderStroke:
		return "Stroke"
	case RenderFillStroke:
		return "FillStroke"
	default:
		return fmt.Sprintf("RenderStyle(%d)", int(s))
	}
}

// Render replays the segments of it onto s as a new path and paints it. If
// clip is set, the path is also added to the clip region before painting.
// Unknown styles fill and stroke.
func Render(s Surface, it PathIterator, style RenderStyle, clip bool) error {
	s.BeginPath()
	rule := it.WindingRule()
	var c [6]float64
	for ; !it.IsDone(); it.Next() {
		kind, err := it.CurrentSegment(c[:])
		if err != nil {
			return err
		}
		switch kind {
		case SegMoveTo:
			s.MoveTo(c[0], c[1])
		case SegLineTo:
			s.LineTo(c[0], c[1])
		case SegQuadTo:
			s.QuadTo(c[0], c[1], c[2], c[3])
		case SegCubicTo:
			s.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case SegClose:
			s.ClosePath()
		}
	}
	if clip {
		if err := s.Clip(rule); err != nil {
			return fmt.Errorf("clip: %w", err)
		}
	}
	switch style {
	case RenderFill:
		return s.Fill(rule)
	case RenderStroke:
		return s.Stroke()
	default:
		if err := s.Fill(rule); err != nil {
			return err
		}
		return s.Stroke()
	}
}

// Render draws the path on s. See [Render].
func (p *Path) Render(s Surface, style RenderStyle, clip bool) error {
	return Render(s, p.PathIterator(nil), style, clip)
}
