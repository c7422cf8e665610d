package surface

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jung-kurt/gofpdf"

	"honnef.co/go/geom"
)

// Document is the part of [gofpdf.Fpdf] that [PDF] draws with. Coordinates
// are in the document's user units.
type Document interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(cx, cy, x, y float64)
	CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y float64)
	ClosePath()
	DrawPath(styleStr string)
	ClipRect(x, y, w, h float64, outline bool)
	ClipPolygon(points []gofpdf.PointType, outline bool)
	ClipEnd()
	Error() error
}

var _ Document = (*gofpdf.Fpdf)(nil)

const defaultClipFlatness = 0.1

// PDF is a [geom.Surface] that writes PDF path operators to a gofpdf
// document. Fill and stroke colors and the line width are taken from the
// document's current state.
//
// gofpdf can only clip to polygons, so Clip flattens the path first and
// supports a single subpath. Clip regions nest until [PDF.EndClip] is
// called, which must happen before the document is written.
type PDF struct {
	recorder

	doc      Document
	ctm      *geom.Affine
	flatness float64
	clips    int

	warnedEvenOdd bool
}

var _ geom.Surface = (*PDF)(nil)

// NewPDF returns a surface drawing into doc.
func NewPDF(doc Document) *PDF {
	return &PDF{
		doc:      doc,
		flatness: defaultClipFlatness,
	}
}

// SetTransform sets the transform from path coordinates to the document's
// user space. A nil transform means identity. The transform is borrowed, not
// copied.
func (p *PDF) SetTransform(at *geom.Affine) {
	p.ctm = at
}

// SetClipFlatness sets the tolerance used to flatten clip paths into
// polygons. The default is 0.1 user units.
func (p *PDF) SetClipFlatness(flatness float64) error {
	if !(flatness >= 0) {
		return fmt.Errorf("%w: flatness must be >= 0, got %g", geom.ErrInvalidArgument, flatness)
	}
	p.flatness = flatness
	return nil
}

// ClipDepth returns the number of clip regions that have not been ended.
func (p *PDF) ClipDepth() int {
	return p.clips
}

// EndClip ends every active clip region.
func (p *PDF) EndClip() {
	for ; p.clips > 0; p.clips-- {
		p.doc.ClipEnd()
	}
}

func (p *PDF) docErr() error {
	if err := p.doc.Error(); err != nil {
		return fmt.Errorf("pdf surface: %w", err)
	}
	return nil
}

// replay writes the current path to the document.
func (p *PDF) replay() error {
	if p.err != nil {
		return fmt.Errorf("pdf surface: %w", p.err)
	}
	var c [6]float64
	for it := p.path.PathIterator(p.ctm); !it.IsDone(); it.Next() {
		kind, err := it.CurrentSegment(c[:])
		if err != nil {
			return fmt.Errorf("pdf surface: %w", err)
		}
		switch kind {
		case geom.SegMoveTo:
			p.doc.MoveTo(c[0], c[1])
		case geom.SegLineTo:
			p.doc.LineTo(c[0], c[1])
		case geom.SegQuadTo:
			p.doc.CurveTo(c[0], c[1], c[2], c[3])
		case geom.SegCubicTo:
			p.doc.CurveBezierCubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case geom.SegClose:
			p.doc.ClosePath()
		}
	}
	return nil
}

func (p *PDF) paint(op string) error {
	if p.err == nil && p.path.NumSegments() == 0 {
		return nil
	}
	if err := p.replay(); err != nil {
		return err
	}
	p.doc.DrawPath(op)
	return p.docErr()
}

// Fill fills the current path using the document's fill color.
func (p *PDF) Fill(rule geom.WindingRule) error {
	if rule == geom.WindEvenOdd {
		return p.paint("f*")
	}
	return p.paint("f")
}

// Stroke strokes the current path using the document's draw color and line
// width.
func (p *PDF) Stroke() error {
	return p.paint("S")
}

// Clip intersects the clip region with the flattened current path. An empty
// path clips everything away. Paths with more than one subpath fail with an
// error wrapping [errors.ErrUnsupported].
func (p *PDF) Clip(rule geom.WindingRule) error {
	if p.err != nil {
		return fmt.Errorf("pdf surface: %w", p.err)
	}
	it, err := p.path.FlatPathIterator(p.ctm, p.flatness)
	if err != nil {
		return fmt.Errorf("pdf surface: %w", err)
	}

	var polys [][]gofpdf.PointType
	var c [6]float64
	for ; !it.IsDone(); it.Next() {
		kind, err := it.CurrentSegment(c[:])
		if err != nil {
			return fmt.Errorf("pdf surface: %w", err)
		}
		switch kind {
		case geom.SegMoveTo:
			polys = append(polys, []gofpdf.PointType{{X: c[0], Y: c[1]}})
		case geom.SegLineTo:
			n := len(polys) - 1
			polys[n] = append(polys[n], gofpdf.PointType{X: c[0], Y: c[1]})
		}
	}
	// Lone MoveTos enclose nothing.
	polys = slices.DeleteFunc(polys, func(poly []gofpdf.PointType) bool { return len(poly) < 2 })

	switch len(polys) {
	case 0:
		p.doc.ClipRect(0, 0, 0, 0, false)
	case 1:
		if rule == geom.WindEvenOdd && !p.warnedEvenOdd {
			p.warnedEvenOdd = true
			geom.Logger().Warn("pdf surface clips polygons with the non-zero rule", "rule", rule)
		}
		p.doc.ClipPolygon(polys[0], false)
	default:
		return fmt.Errorf("pdf surface: clip to %d subpaths: %w", len(polys), errors.ErrUnsupported)
	}
	p.clips++
	return p.docErr()
}
