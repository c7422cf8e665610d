package geom

import (
	"math"
	"unsafe"
)

// TransformPoint returns p mapped by a.
func (a *Affine) TransformPoint(p Point) Point {
	x, y := p.X, p.Y
	switch a.state {
	case applyShear | applyScale | applyTranslate:
		return Point{x*a.m00 + y*a.m01 + a.m02, x*a.m10 + y*a.m11 + a.m12}
	case applyShear | applyScale:
		return Point{x*a.m00 + y*a.m01, x*a.m10 + y*a.m11}
	case applyShear | applyTranslate:
		return Point{y*a.m01 + a.m02, x*a.m10 + a.m12}
	case applyShear:
		return Point{y * a.m01, x * a.m10}
	case applyScale | applyTranslate:
		return Point{x*a.m00 + a.m02, y*a.m11 + a.m12}
	case applyScale:
		return Point{x * a.m00, y * a.m11}
	case applyTranslate:
		return Point{x + a.m02, y + a.m12}
	case applyIdentity:
		return p
	default:
		panic(stateError(a.state))
	}
}

// TransformPointSlice maps every point in src and stores the results in dst,
// which is grown as needed and returned. dst may be src.
func (a *Affine) TransformPointSlice(dst, src []Point) []Point {
	if cap(dst) < len(src) {
		dst = append(dst[:cap(dst)], make([]Point, len(src)-cap(dst))...)
	}
	dst = dst[:len(src)]
	for i, p := range src {
		dst[i] = a.TransformPoint(p)
	}
	return dst
}

// overlapping reports whether transforming n points from src[srcOff:] into
// dst[dstOff:] in ascending order would overwrite source coordinates before
// they are read. src and dst may be different slices of one array.
func overlapping(src []float64, srcOff int, dst []float64, dstOff, n int) bool {
	if n <= 0 {
		return false
	}
	s := uintptr(unsafe.Pointer(&src[srcOff]))
	d := uintptr(unsafe.Pointer(&dst[dstOff]))
	return d > s && d < s+uintptr(n*2)*unsafe.Sizeof(src[0])
}

// TransformPoints maps n points stored as consecutive (x, y) pairs in src,
// starting at index srcOff, into dst starting at index dstOff. src and dst
// may share memory, including as different slices of one array.
func (a *Affine) TransformPoints(src []float64, srcOff int, dst []float64, dstOff, n int) {
	if overlapping(src, srcOff, dst, dstOff, n) {
		// Move the source out of the way first, so that writes ahead of the
		// read position don't clobber unread input.
		copy(dst[dstOff:dstOff+n*2], src[srcOff:srcOff+n*2])
		src, srcOff = dst, dstOff
	}
	switch a.state {
	case applyShear | applyScale | applyTranslate:
		m00, m01, m02 := a.m00, a.m01, a.m02
		m10, m11, m12 := a.m10, a.m11, a.m12
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = m00*x + m01*y + m02
			dst[dstOff+1] = m10*x + m11*y + m12
			dstOff += 2
		}
	case applyShear | applyScale:
		m00, m01 := a.m00, a.m01
		m10, m11 := a.m10, a.m11
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = m00*x + m01*y
			dst[dstOff+1] = m10*x + m11*y
			dstOff += 2
		}
	case applyShear | applyTranslate:
		m01, m02 := a.m01, a.m02
		m10, m12 := a.m10, a.m12
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = m01*y + m02
			dst[dstOff+1] = m10*x + m12
			dstOff += 2
		}
	case applyShear:
		m01, m10 := a.m01, a.m10
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = m01 * y
			dst[dstOff+1] = m10 * x
			dstOff += 2
		}
	case applyScale | applyTranslate:
		m00, m02 := a.m00, a.m02
		m11, m12 := a.m11, a.m12
		for range n {
			dst[dstOff] = m00*src[srcOff] + m02
			dst[dstOff+1] = m11*src[srcOff+1] + m12
			srcOff += 2
			dstOff += 2
		}
	case applyScale:
		m00, m11 := a.m00, a.m11
		for range n {
			dst[dstOff] = m00 * src[srcOff]
			dst[dstOff+1] = m11 * src[srcOff+1]
			srcOff += 2
			dstOff += 2
		}
	case applyTranslate:
		m02, m12 := a.m02, a.m12
		for range n {
			dst[dstOff] = src[srcOff] + m02
			dst[dstOff+1] = src[srcOff+1] + m12
			srcOff += 2
			dstOff += 2
		}
	case applyIdentity:
		copy(dst[dstOff:dstOff+n*2], src[srcOff:srcOff+n*2])
	default:
		panic(stateError(a.state))
	}
}

// DeltaTransformPoint maps the vector p by the linear part of a, ignoring
// translation.
func (a *Affine) DeltaTransformPoint(p Point) Point {
	x, y := p.X, p.Y
	switch a.state {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		return Point{x*a.m00 + y*a.m01, x*a.m10 + y*a.m11}
	case applyShear | applyTranslate, applyShear:
		return Point{y * a.m01, x * a.m10}
	case applyScale | applyTranslate, applyScale:
		return Point{x * a.m00, y * a.m11}
	case applyTranslate, applyIdentity:
		return p
	default:
		panic(stateError(a.state))
	}
}

// DeltaTransformPoints is like [Affine.TransformPoints] but ignores the
// translation.
func (a *Affine) DeltaTransformPoints(src []float64, srcOff int, dst []float64, dstOff, n int) {
	if overlapping(src, srcOff, dst, dstOff, n) {
		copy(dst[dstOff:dstOff+n*2], src[srcOff:srcOff+n*2])
		src, srcOff = dst, dstOff
	}
	switch a.state {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		m00, m01 := a.m00, a.m01
		m10, m11 := a.m10, a.m11
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = x*m00 + y*m01
			dst[dstOff+1] = x*m10 + y*m11
			dstOff += 2
		}
	case applyShear | applyTranslate, applyShear:
		m01, m10 := a.m01, a.m10
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = y * m01
			dst[dstOff+1] = x * m10
			dstOff += 2
		}
	case applyScale | applyTranslate, applyScale:
		m00, m11 := a.m00, a.m11
		for range n {
			dst[dstOff] = src[srcOff] * m00
			dst[dstOff+1] = src[srcOff+1] * m11
			srcOff += 2
			dstOff += 2
		}
	case applyTranslate, applyIdentity:
		copy(dst[dstOff:dstOff+n*2], src[srcOff:srcOff+n*2])
	default:
		panic(stateError(a.state))
	}
}

// singular reports whether det is too close to zero for the inverse to be
// computed. The threshold is the smallest positive float64.
func singular(det float64) bool {
	return math.Abs(det) <= math.SmallestNonzeroFloat64
}

// InverseTransformPoint returns the point that a maps onto p. It returns a
// [*NoninvertibleError] if a has no inverse.
func (a *Affine) InverseTransformPoint(p Point) (Point, error) {
	x, y := p.X, p.Y
	switch a.state {
	case applyShear | applyScale | applyTranslate:
		x -= a.m02
		y -= a.m12
		fallthrough
	case applyShear | applyScale:
		det := a.m00*a.m11 - a.m01*a.m10
		if singular(det) {
			return Point{}, noninvertible(det)
		}
		return Point{(x*a.m11 - y*a.m01) / det, (y*a.m00 - x*a.m10) / det}, nil
	case applyShear | applyTranslate:
		x -= a.m02
		y -= a.m12
		fallthrough
	case applyShear:
		if a.m01 == 0 || a.m10 == 0 {
			return Point{}, noninvertible(0)
		}
		return Point{y / a.m10, x / a.m01}, nil
	case applyScale | applyTranslate:
		x -= a.m02
		y -= a.m12
		fallthrough
	case applyScale:
		if a.m00 == 0 || a.m11 == 0 {
			return Point{}, noninvertible(0)
		}
		return Point{x / a.m00, y / a.m11}, nil
	case applyTranslate:
		return Point{x - a.m02, y - a.m12}, nil
	case applyIdentity:
		return p, nil
	default:
		panic(stateError(a.state))
	}
}

// InverseTransformPoints is the inverse of [Affine.TransformPoints]. On error,
// dst is left unmodified unless src and dst overlap.
func (a *Affine) InverseTransformPoints(src []float64, srcOff int, dst []float64, dstOff, n int) error {
	if overlapping(src, srcOff, dst, dstOff, n) {
		copy(dst[dstOff:dstOff+n*2], src[srcOff:srcOff+n*2])
		src, srcOff = dst, dstOff
	}
	switch a.state {
	case applyShear | applyScale | applyTranslate:
		m00, m01, m02 := a.m00, a.m01, a.m02
		m10, m11, m12 := a.m10, a.m11, a.m12
		det := m00*m11 - m01*m10
		if singular(det) {
			return noninvertible(det)
		}
		for range n {
			x := src[srcOff] - m02
			y := src[srcOff+1] - m12
			srcOff += 2
			dst[dstOff] = (x*m11 - y*m01) / det
			dst[dstOff+1] = (y*m00 - x*m10) / det
			dstOff += 2
		}
	case applyShear | applyScale:
		m00, m01 := a.m00, a.m01
		m10, m11 := a.m10, a.m11
		det := m00*m11 - m01*m10
		if singular(det) {
			return noninvertible(det)
		}
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = (x*m11 - y*m01) / det
			dst[dstOff+1] = (y*m00 - x*m10) / det
			dstOff += 2
		}
	case applyShear | applyTranslate:
		m01, m02 := a.m01, a.m02
		m10, m12 := a.m10, a.m12
		if m01 == 0 || m10 == 0 {
			return noninvertible(0)
		}
		for range n {
			x := src[srcOff] - m02
			y := src[srcOff+1] - m12
			srcOff += 2
			dst[dstOff] = y / m10
			dst[dstOff+1] = x / m01
			dstOff += 2
		}
	case applyShear:
		m01, m10 := a.m01, a.m10
		if m01 == 0 || m10 == 0 {
			return noninvertible(0)
		}
		for range n {
			x, y := src[srcOff], src[srcOff+1]
			srcOff += 2
			dst[dstOff] = y / m10
			dst[dstOff+1] = x / m01
			dstOff += 2
		}
	case applyScale | applyTranslate:
		m00, m02 := a.m00, a.m02
		m11, m12 := a.m11, a.m12
		if m00 == 0 || m11 == 0 {
			return noninvertible(0)
		}
		for range n {
			dst[dstOff] = (src[srcOff] - m02) / m00
			dst[dstOff+1] = (src[srcOff+1] - m12) / m11
			srcOff += 2
			dstOff += 2
		}
	case applyScale:
		m00, m11 := a.m00, a.m11
		if m00 == 0 || m11 == 0 {
			return noninvertible(0)
		}
		for range n {
			dst[dstOff] = src[srcOff] / m00
			dst[dstOff+1] = src[srcOff+1] / m11
			srcOff += 2
			dstOff += 2
		}
	case applyTranslate:
		m02, m12 := a.m02, a.m12
		for range n {
			dst[dstOff] = src[srcOff] - m02
			dst[dstOff+1] = src[srcOff+1] - m12
			srcOff += 2
			dstOff += 2
		}
	case applyIdentity:
		copy(dst[dstOff:dstOff+n*2], src[srcOff:srcOff+n*2])
	default:
		panic(stateError(a.state))
	}
	return nil
}

// InverseDeltaTransformPoint returns the vector that the linear part of a
// maps onto p.
func (a *Affine) InverseDeltaTransformPoint(p Point) (Point, error) {
	x, y := p.X, p.Y
	switch a.state {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		det := a.m00*a.m11 - a.m01*a.m10
		if singular(det) {
			return Point{}, noninvertible(det)
		}
		return Point{(x*a.m11 - y*a.m01) / det, (y*a.m00 - x*a.m10) / det}, nil
	case applyShear | applyTranslate, applyShear:
		if a.m01 == 0 || a.m10 == 0 {
			return Point{}, noninvertible(0)
		}
		return Point{y / a.m10, x / a.m01}, nil
	case applyScale | applyTranslate, applyScale:
		if a.m00 == 0 || a.m11 == 0 {
			return Point{}, noninvertible(0)
		}
		return Point{x / a.m00, y / a.m11}, nil
	case applyTranslate, applyIdentity:
		return p, nil
	default:
		panic(stateError(a.state))
	}
}

// Invert replaces a with its inverse. If a has no inverse, it returns a
// [*NoninvertibleError] and leaves a unchanged.
func (a *Affine) Invert() error {
	switch a.state {
	case applyShear | applyScale | applyTranslate:
		m00, m01, m02 := a.m00, a.m01, a.m02
		m10, m11, m12 := a.m10, a.m11, a.m12
		det := m00*m11 - m01*m10
		if singular(det) {
			return noninvertible(det)
		}
		a.m00 = m11 / det
		a.m10 = -m10 / det
		a.m01 = -m01 / det
		a.m11 = m00 / det
		a.m02 = (m01*m12 - m11*m02) / det
		a.m12 = (m10*m02 - m00*m12) / det
	case applyShear | applyScale:
		m00, m01 := a.m00, a.m01
		m10, m11 := a.m10, a.m11
		det := m00*m11 - m01*m10
		if singular(det) {
			return noninvertible(det)
		}
		a.m00 = m11 / det
		a.m10 = -m10 / det
		a.m01 = -m01 / det
		a.m11 = m00 / det
	case applyShear | applyTranslate:
		m01, m02 := a.m01, a.m02
		m10, m12 := a.m10, a.m12
		if m01 == 0 || m10 == 0 {
			return noninvertible(0)
		}
		a.m10 = 1 / m01
		a.m01 = 1 / m10
		a.m02 = -m12 / m10
		a.m12 = -m02 / m01
	case applyShear:
		m01, m10 := a.m01, a.m10
		if m01 == 0 || m10 == 0 {
			return noninvertible(0)
		}
		a.m10 = 1 / m01
		a.m01 = 1 / m10
	case applyScale | applyTranslate:
		m00, m02 := a.m00, a.m02
		m11, m12 := a.m11, a.m12
		if m00 == 0 || m11 == 0 {
			return noninvertible(0)
		}
		a.m00 = 1 / m00
		a.m11 = 1 / m11
		a.m02 = -m02 / m00
		a.m12 = -m12 / m11
	case applyScale:
		m00, m11 := a.m00, a.m11
		if m00 == 0 || m11 == 0 {
			return noninvertible(0)
		}
		a.m00 = 1 / m00
		a.m11 = 1 / m11
	case applyTranslate:
		a.m02 = -a.m02
		a.m12 = -a.m12
	case applyIdentity:
	default:
		panic(stateError(a.state))
	}
	a.invalidateType()
	return nil
}

// Inverse returns a new transform that is the inverse of a, leaving a
// unchanged.
func (a *Affine) Inverse() (*Affine, error) {
	inv := a.Clone()
	if err := inv.Invert(); err != nil {
		return nil, err
	}
	return inv, nil
}

// TransformSize maps a size, interpreted as a vector, by the linear part of
// a. The result may have negative components.
func (a *Affine) TransformSize(s Size) Size {
	p := a.DeltaTransformPoint(Pt(s.Width, s.Height))
	return Size{Width: p.X, Height: p.Y}
}

// InverseTransformSize is the inverse of TransformSize.
func (a *Affine) InverseTransformSize(s Size) (Size, error) {
	det := a.m00*a.m11 - a.m01*a.m10
	if singular(det) {
		return Size{}, noninvertible(det)
	}
	return Size{
		Width:  (s.Width*a.m11 - s.Height*a.m01) / det,
		Height: (s.Height*a.m00 - s.Width*a.m10) / det,
	}, nil
}

// TransformRect returns the bounding box of r after transformation. Empty
// rectangles are returned unchanged. Identity, translation and uniform
// scale transforms take a shortcut; everything else transforms the four
// corners.
func (a *Affine) TransformRect(r Rect) Rect {
	if r.IsEmpty() {
		return r
	}
	switch t := a.Type(); t {
	case TypeIdentity:
		return r
	case TypeTranslation:
		return NewRect(r.X0+a.m02, r.Y0+a.m12, r.Width(), r.Height())
	case TypeUniformScale, TypeTranslation | TypeUniformScale:
		s := a.m00
		return NewRect(r.X0*s+a.m02, r.Y0*s+a.m12, r.Width()*s, r.Height()*s)
	default:
		pts := rectCorners(r)
		a.TransformPoints(pts[:], 0, pts[:], 0, 4)
		return rectFromCorners(pts)
	}
}

// InverseTransformRect returns the bounding box of r mapped by the inverse
// of a.
func (a *Affine) InverseTransformRect(r Rect) (Rect, error) {
	if r.IsEmpty() {
		return r, nil
	}
	switch t := a.Type(); t {
	case TypeIdentity:
		return r, nil
	case TypeTranslation:
		return NewRect(r.X0-a.m02, r.Y0-a.m12, r.Width(), r.Height()), nil
	case TypeUniformScale, TypeTranslation | TypeUniformScale:
		s := a.m00
		if s == 0 {
			return Rect{}, noninvertible(0)
		}
		return NewRect((r.X0-a.m02)/s, (r.Y0-a.m12)/s, r.Width()/s, r.Height()/s), nil
	default:
		pts := rectCorners(r)
		if err := a.InverseTransformPoints(pts[:], 0, pts[:], 0, 4); err != nil {
			return Rect{}, err
		}
		return rectFromCorners(pts), nil
	}
}

func rectCorners(r Rect) [8]float64 {
	return [8]float64{
		r.X0, r.Y0,
		r.X1, r.Y0,
		r.X1, r.Y1,
		r.X0, r.Y1,
	}
}

func rectFromCorners(pts [8]float64) Rect {
	b := Rect{pts[0], pts[1], pts[0], pts[1]}
	for i := 1; i < 4; i++ {
		b = b.UnionPoint(Pt(pts[2*i], pts[2*i+1]))
	}
	return b
}

// TransformShape returns a new path containing the outline of s mapped by a.
func (a *Affine) TransformShape(s Shape) (*Path, error) {
	return NewPathFromShape(s, a)
}
