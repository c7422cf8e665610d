package surface

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"honnef.co/go/geom"
)

// Raster is a [geom.Surface] that fills paths into a [draw.Image].
//
// The rasterizer accumulates signed coverage and only implements the
// non-zero winding rule. Even-odd requests fall back to non-zero and are
// logged once per surface at warning level. Stroking is not supported.
type Raster struct {
	recorder

	dst   draw.Image
	paint image.Image
	ctm   *geom.Affine
	ras   *vector.Rasterizer

	// clip is the coverage of the clip region in the coordinate space of
	// dst's bounds, or nil if nothing has been clipped.
	clip *image.Alpha

	warnedEvenOdd bool
}

var _ geom.Surface = (*Raster)(nil)

// NewRaster returns a surface drawing into dst with opaque black paint.
func NewRaster(dst draw.Image) *Raster {
	b := dst.Bounds()
	return &Raster{
		dst:   dst,
		paint: image.NewUniform(color.Black),
		ras:   vector.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// SetPaint sets the source image used by Fill. Uniform images give flat
// colors; other images are aligned with the destination.
func (r *Raster) SetPaint(src image.Image) {
	r.paint = src
}

// SetPaintColor is a shorthand for SetPaint with a uniform color.
func (r *Raster) SetPaintColor(c color.Color) {
	r.paint = image.NewUniform(c)
}

// SetTransform sets the transform from path coordinates to the
// destination's coordinates. A nil transform means identity. The transform
// is borrowed, not copied.
func (r *Raster) SetTransform(at *geom.Affine) {
	r.ctm = at
}

// ResetClip removes the clip region.
func (r *Raster) ResetClip() {
	r.clip = nil
}

// deviceTransform maps path coordinates to rasterizer coordinates, whose
// origin is the top-left corner of dst's bounds.
func (r *Raster) deviceTransform() *geom.Affine {
	origin := r.dst.Bounds().Min
	if r.ctm == nil {
		if origin == (image.Point{}) {
			return nil
		}
		return geom.NewTranslate(float64(-origin.X), float64(-origin.Y))
	}
	at := r.ctm.Clone()
	at.PreTranslate(float64(-origin.X), float64(-origin.Y))
	return at
}

// coverage scan-converts the current path and returns its coverage mask.
func (r *Raster) coverage() (*image.Alpha, error) {
	if r.err != nil {
		return nil, r.err
	}
	b := r.dst.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())

	var c [6]float64
	open := false
	for it := r.path.PathIterator(r.deviceTransform()); !it.IsDone(); it.Next() {
		kind, err := it.CurrentSegment(c[:])
		if err != nil {
			return nil, err
		}
		switch kind {
		case geom.SegMoveTo:
			// Filling implicitly closes every subpath.
			if open {
				r.ras.ClosePath()
			}
			r.ras.MoveTo(float32(c[0]), float32(c[1]))
			open = true
		case geom.SegLineTo:
			r.ras.LineTo(float32(c[0]), float32(c[1]))
		case geom.SegQuadTo:
			r.ras.QuadTo(float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3]))
		case geom.SegCubicTo:
			r.ras.CubeTo(float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3]), float32(c[4]), float32(c[5]))
		case geom.SegClose:
			r.ras.ClosePath()
			open = false
		}
	}
	if open {
		r.ras.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	r.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, nil
}

// intersect scales the coverage in dst by the coverage in src. Both masks
// must have the same bounds.
func intersect(dst, src *image.Alpha) {
	for i, a := range src.Pix {
		dst.Pix[i] = uint8(uint16(dst.Pix[i]) * uint16(a) / 0xff)
	}
}

func (r *Raster) checkRule(rule geom.WindingRule) {
	if rule == geom.WindEvenOdd && !r.warnedEvenOdd {
		r.warnedEvenOdd = true
		geom.Logger().Warn("raster surface does not support the even-odd rule, using non-zero",
			"rule", rule)
	}
}

// Clip intersects the clip region with the current path.
func (r *Raster) Clip(rule geom.WindingRule) error {
	r.checkRule(rule)
	mask, err := r.coverage()
	if err != nil {
		return fmt.Errorf("raster surface: %w", err)
	}
	if r.clip != nil {
		intersect(mask, r.clip)
	}
	r.clip = mask
	return nil
}

// Fill paints the current path with the current paint, restricted to the
// clip region.
func (r *Raster) Fill(rule geom.WindingRule) error {
	r.checkRule(rule)
	mask, err := r.coverage()
	if err != nil {
		return fmt.Errorf("raster surface: %w", err)
	}
	if r.clip != nil {
		intersect(mask, r.clip)
	}
	b := r.dst.Bounds()
	draw.DrawMask(r.dst, b, r.paint, b.Min, mask, image.Point{}, draw.Over)
	return nil
}

// Stroke always fails with an error wrapping [errors.ErrUnsupported].
func (r *Raster) Stroke() error {
	if r.err != nil {
		return fmt.Errorf("raster surface: %w", r.err)
	}
	return fmt.Errorf("raster surface: stroke: %w", errors.ErrUnsupported)
}
