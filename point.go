package geom

import (
	"fmt"
	"math"
)

type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Distance returns the Euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// DistanceSquared returns the squared Euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	dx := pt.X - o.X
	dy := pt.Y - o.Y
	return dx*dx + dy*dy
}

// IsInf reports whether at least one of x and y is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

// IsNaN reports whether at least one of x and y is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}

// segmentDistanceSquared returns the squared distance from (px, py) to the
// closest point on the line segment (x1, y1)–(x2, y2).
func segmentDistanceSquared(x1, y1, x2, y2, px, py float64) float64 {
	// Work relative to the segment start.
	x2 -= x1
	y2 -= y1
	px -= x1
	py -= y1
	dot := px*x2 + py*y2
	var projlenSq float64
	if dot <= 0 {
		// Behind the start point.
		projlenSq = 0
	} else {
		// Flip the frame so that the projection is measured from the end.
		px = x2 - px
		py = y2 - py
		dot = px*x2 + py*y2
		if dot <= 0 {
			projlenSq = 0
		} else {
			projlenSq = dot * dot / (x2*x2 + y2*y2)
		}
	}
	lenSq := px*px + py*py - projlenSq
	if lenSq < 0 {
		lenSq = 0
	}
	return lenSq
}
