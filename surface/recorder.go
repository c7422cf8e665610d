package surface

import (
	"honnef.co/go/geom"
)

// recorder implements the path construction half of geom.Surface by
// appending to a geom.Path.
type recorder struct {
	path geom.Path
	// err is the first error from building the current path.
	err error
}

func (r *recorder) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *recorder) BeginPath() {
	r.path.Reset()
	r.err = nil
}

func (r *recorder) MoveTo(x, y float64) { r.path.MoveTo(x, y) }
func (r *recorder) LineTo(x, y float64) { r.setErr(r.path.LineTo(x, y)) }
func (r *recorder) QuadTo(cx, cy, x, y float64) {
	r.setErr(r.path.QuadTo(cx, cy, x, y))
}
func (r *recorder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	r.setErr(r.path.CurveTo(c1x, c1y, c2x, c2y, x, y))
}
func (r *recorder) ClosePath() { r.setErr(r.path.ClosePath()) }
