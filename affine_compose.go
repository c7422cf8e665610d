package geom

import (
	"fmt"
	"math"
)

// Translate concatenates a with a translation by (tx, ty), so that the
// translation is applied to points before a's previous mapping.
func (a *Affine) Translate(tx, ty float64) {
	switch a.state {
	case applyShear | applyScale | applyTranslate:
		a.m02 = tx*a.m00 + ty*a.m01 + a.m02
		a.m12 = tx*a.m10 + ty*a.m11 + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.state = applyShear | applyScale
			a.typ &^= TypeTranslation
		}
	case applyShear | applyScale:
		a.m02 = tx*a.m00 + ty*a.m01
		a.m12 = tx*a.m10 + ty*a.m11
		if a.m02 != 0 || a.m12 != 0 {
			a.state = applyShear | applyScale | applyTranslate
			a.typ |= TypeTranslation
		}
	case applyShear | applyTranslate:
		a.m02 = ty*a.m01 + a.m02
		a.m12 = tx*a.m10 + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.state = applyShear
			a.typ &^= TypeTranslation
		}
	case applyShear:
		a.m02 = ty * a.m01
		a.m12 = tx * a.m10
		if a.m02 != 0 || a.m12 != 0 {
			a.state = applyShear | applyTranslate
			a.typ |= TypeTranslation
		}
	case applyScale | applyTranslate:
		a.m02 = tx*a.m00 + a.m02
		a.m12 = ty*a.m11 + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.state = applyScale
			a.typ &^= TypeTranslation
		}
	case applyScale:
		a.m02 = tx * a.m00
		a.m12 = ty * a.m11
		if a.m02 != 0 || a.m12 != 0 {
			a.state = applyScale | applyTranslate
			a.typ |= TypeTranslation
		}
	case applyTranslate:
		a.m02 = tx + a.m02
		a.m12 = ty + a.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.state = applyIdentity
			a.setType(TypeIdentity)
		}
	case applyIdentity:
		a.m02 = tx
		a.m12 = ty
		if tx != 0 || ty != 0 {
			a.state = applyTranslate
			a.setType(TypeTranslation)
		}
	default:
		panic(stateError(a.state))
	}
}

// Scale concatenates a with a scale by (sx, sy).
func (a *Affine) Scale(sx, sy float64) {
	state := a.state
	switch state {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		a.m00 *= sx
		a.m11 *= sy
		fallthrough
	case applyShear | applyTranslate, applyShear:
		a.m01 *= sy
		a.m10 *= sx
		if a.m01 == 0 && a.m10 == 0 {
			state &= applyTranslate
			if a.m00 == 1 && a.m11 == 1 {
				if state == applyIdentity {
					a.setType(TypeIdentity)
				} else {
					a.setType(TypeTranslation)
				}
			} else {
				state |= applyScale
				a.invalidateType()
			}
			a.state = state
		} else {
			a.invalidateType()
		}
	case applyScale | applyTranslate, applyScale:
		a.m00 *= sx
		a.m11 *= sy
		if a.m00 == 1 && a.m11 == 1 {
			state &= applyTranslate
			a.state = state
			if state == applyIdentity {
				a.setType(TypeIdentity)
			} else {
				a.setType(TypeTranslation)
			}
		} else {
			a.invalidateType()
		}
	case applyTranslate, applyIdentity:
		a.m00 = sx
		a.m11 = sy
		if sx != 1 || sy != 1 {
			a.state = state | applyScale
			a.invalidateType()
		}
	default:
		panic(stateError(state))
	}
}

// ScaleAbout concatenates a with a uniform scale by s about (x, y).
func (a *Affine) ScaleAbout(s, x, y float64) {
	a.Translate(x, y)
	a.Scale(s, s)
	a.Translate(-x, -y)
}

// Shear concatenates a with a shear by (shx, shy).
func (a *Affine) Shear(shx, shy float64) {
	state := a.state
	switch state {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		m0, m1 := a.m00, a.m01
		a.m00 = m0 + m1*shy
		a.m01 = m0*shx + m1
		m0, m1 = a.m10, a.m11
		a.m10 = m0 + m1*shy
		a.m11 = m0*shx + m1
		a.updateState()
	case applyShear | applyTranslate, applyShear:
		a.m00 = a.m01 * shy
		a.m11 = a.m10 * shx
		if a.m00 != 0 || a.m11 != 0 {
			a.state = state | applyScale
		}
		a.invalidateType()
	case applyScale | applyTranslate, applyScale:
		a.m01 = a.m00 * shx
		a.m10 = a.m11 * shy
		if a.m01 != 0 || a.m10 != 0 {
			a.state = state | applyShear
		}
		a.invalidateType()
	case applyTranslate, applyIdentity:
		a.m01 = shx
		a.m10 = shy
		if a.m01 != 0 || a.m10 != 0 {
			a.state = state | applyScale | applyShear
			a.invalidateType()
		}
	default:
		panic(stateError(state))
	}
}

// Rotate concatenates a with a rotation by theta radians. Angles whose sine
// or cosine is exactly ±1 are handled as exact quadrant rotations.
func (a *Affine) Rotate(theta float64) {
	sin := math.Sin(theta)
	switch sin {
	case 1:
		a.Rotate90()
		return
	case -1:
		a.Rotate270()
		return
	}
	cos := math.Cos(theta)
	switch cos {
	case -1:
		a.Rotate180()
	case 1:
	default:
		a.rotateSinCos(sin, cos)
	}
}

// RotateAbout concatenates a with a rotation by theta radians about
// (ax, ay).
func (a *Affine) RotateAbout(theta, ax, ay float64) {
	a.Translate(ax, ay)
	a.Rotate(theta)
	a.Translate(-ax, -ay)
}

// RotateVec concatenates a with a rotation that maps the positive X axis onto
// the direction of (vx, vy). A zero vector leaves a unchanged.
func (a *Affine) RotateVec(vx, vy float64) {
	switch {
	case vy == 0:
		if vx < 0 {
			a.Rotate180()
		}
	case vx == 0:
		if vy > 0 {
			a.Rotate90()
		} else {
			a.Rotate270()
		}
	default:
		l := math.Hypot(vx, vy)
		a.rotateSinCos(vy/l, vx/l)
	}
}

// RotateVecAbout is like RotateVec but rotates about (ax, ay).
func (a *Affine) RotateVecAbout(vx, vy, ax, ay float64) {
	a.Translate(ax, ay)
	a.RotateVec(vx, vy)
	a.Translate(-ax, -ay)
}

func (a *Affine) rotateSinCos(sin, cos float64) {
	m0, m1 := a.m00, a.m01
	a.m00 = cos*m0 + sin*m1
	a.m01 = -sin*m0 + cos*m1
	m0, m1 = a.m10, a.m11
	a.m10 = cos*m0 + sin*m1
	a.m11 = -sin*m0 + cos*m1
	a.updateState()
}

// Rotate90 concatenates a with a rotation by a quarter turn. The coefficients
// are permuted and negated, never multiplied, so no rounding occurs.
func (a *Affine) Rotate90() {
	m0 := a.m00
	a.m00 = a.m01
	a.m01 = -m0
	m0 = a.m10
	a.m10 = a.m11
	a.m11 = -m0
	a.finishQuarterTurn()
}

// Rotate180 concatenates a with a rotation by a half turn.
func (a *Affine) Rotate180() {
	a.m00 = -a.m00
	a.m11 = -a.m11
	state := a.state
	if state&applyShear != 0 {
		a.m01 = -a.m01
		a.m10 = -a.m10
	} else {
		if a.m00 == 1 && a.m11 == 1 {
			a.state = state &^ applyScale
		} else {
			a.state = state | applyScale
		}
	}
	a.invalidateType()
}

// Rotate270 concatenates a with a rotation by three quarter turns.
func (a *Affine) Rotate270() {
	m0 := a.m00
	a.m00 = -a.m01
	a.m01 = m0
	m0 = a.m10
	a.m10 = -a.m11
	a.m11 = m0
	a.finishQuarterTurn()
}

func (a *Affine) finishQuarterTurn() {
	state := rot90Conversion[a.state]
	if state&(applyShear|applyScale) == applyScale && a.m00 == 1 && a.m11 == 1 {
		state -= applyScale
	}
	a.state = state
	a.invalidateType()
}

// QuadrantRotate concatenates a with a rotation by n quarter turns. Negative
// n rotates the other way.
func (a *Affine) QuadrantRotate(n int) {
	switch n & 3 {
	case 0:
	case 1:
		a.Rotate90()
	case 2:
		a.Rotate180()
	case 3:
		a.Rotate270()
	}
}

// QuadrantRotateAbout concatenates a with a rotation by n quarter turns about
// (ax, ay).
func (a *Affine) QuadrantRotateAbout(n int, ax, ay float64) {
	switch n & 3 {
	case 0:
		return
	case 1:
		a.m02 += ax*(a.m00-a.m01) + ay*(a.m01+a.m00)
		a.m12 += ax*(a.m10-a.m11) + ay*(a.m11+a.m10)
		a.Rotate90()
	case 2:
		a.m02 += ax*(a.m00+a.m00) + ay*(a.m01+a.m01)
		a.m12 += ax*(a.m10+a.m10) + ay*(a.m11+a.m11)
		a.Rotate180()
	case 3:
		a.m02 += ax*(a.m00+a.m01) + ay*(a.m01-a.m00)
		a.m12 += ax*(a.m10+a.m11) + ay*(a.m11-a.m10)
		a.Rotate270()
	}
	if a.m02 == 0 && a.m12 == 0 {
		a.state &^= applyTranslate
	} else {
		a.state |= applyTranslate
	}
}

// Concatenate sets a to a ∘ o: points are mapped by o first and by the
// previous value of a second. o may be a itself.
func (a *Affine) Concatenate(o *Affine) {
	t := o.coeffs()
	mystate := a.state
	txstate := t.state
	if mystate > applyAll || txstate > applyAll {
		panic(stateError(mystate | txstate))
	}
	switch txstate<<hiShift | mystate {
	case hiIdentity | applyIdentity,
		hiIdentity | applyTranslate,
		hiIdentity | applyScale,
		hiIdentity | applyScale | applyTranslate,
		hiIdentity | applyShear,
		hiIdentity | applyShear | applyTranslate,
		hiIdentity | applyShear | applyScale,
		hiIdentity | applyShear | applyScale | applyTranslate:
		return

	case hiShear | hiScale | hiTranslate | applyIdentity:
		a.m01, a.m10 = t.m01, t.m10
		fallthrough
	case hiScale | hiTranslate | applyIdentity:
		a.m00, a.m11 = t.m00, t.m11
		fallthrough
	case hiTranslate | applyIdentity:
		a.m02, a.m12 = t.m02, t.m12
		a.adoptState(t)
		return

	case hiShear | hiScale | applyIdentity:
		a.m01, a.m10 = t.m01, t.m10
		fallthrough
	case hiScale | applyIdentity:
		a.m00, a.m11 = t.m00, t.m11
		a.adoptState(t)
		return

	case hiShear | hiTranslate | applyIdentity:
		a.m02, a.m12 = t.m02, t.m12
		fallthrough
	case hiShear | applyIdentity:
		a.m01, a.m10 = t.m01, t.m10
		a.m00, a.m11 = 0, 0
		a.adoptState(t)
		return

	case hiTranslate | applyShear | applyScale | applyTranslate,
		hiTranslate | applyShear | applyScale,
		hiTranslate | applyShear | applyTranslate,
		hiTranslate | applyShear,
		hiTranslate | applyScale | applyTranslate,
		hiTranslate | applyScale,
		hiTranslate | applyTranslate:
		a.Translate(t.m02, t.m12)
		return

	case hiScale | applyShear | applyScale | applyTranslate,
		hiScale | applyShear | applyScale,
		hiScale | applyShear | applyTranslate,
		hiScale | applyShear,
		hiScale | applyScale | applyTranslate,
		hiScale | applyScale,
		hiScale | applyTranslate:
		a.Scale(t.m00, t.m11)
		return

	case hiShear | applyShear | applyScale | applyTranslate,
		hiShear | applyShear | applyScale:
		m0 := a.m00
		a.m00 = a.m01 * t.m10
		a.m01 = m0 * t.m01
		m0 = a.m10
		a.m10 = a.m11 * t.m10
		a.m11 = m0 * t.m01
		a.invalidateType()
		return

	case hiShear | applyShear | applyTranslate,
		hiShear | applyShear:
		a.m00 = a.m01 * t.m10
		a.m01 = 0
		a.m11 = a.m10 * t.m01
		a.m10 = 0
		a.state = mystate ^ (applyShear | applyScale)
		a.invalidateType()
		return

	case hiShear | applyScale | applyTranslate,
		hiShear | applyScale:
		a.m01 = a.m00 * t.m01
		a.m00 = 0
		a.m10 = a.m11 * t.m10
		a.m11 = 0
		a.state = mystate ^ (applyShear | applyScale)
		a.invalidateType()
		return

	case hiShear | applyTranslate:
		a.m00 = 0
		a.m01 = t.m01
		a.m10 = t.m10
		a.m11 = 0
		a.state = applyTranslate | applyShear
		a.invalidateType()
		return
	}

	// General case: o has more than one component and a is not the
	// identity.
	t00, t01, t02 := t.m00, t.m01, t.m02
	t10, t11, t12 := t.m10, t.m11, t.m12
	switch mystate {
	case applyShear | applyScale:
		a.state = mystate | txstate
		fallthrough
	case applyShear | applyScale | applyTranslate:
		m0, m1 := a.m00, a.m01
		a.m00 = t00*m0 + t10*m1
		a.m01 = t01*m0 + t11*m1
		a.m02 += t02*m0 + t12*m1
		m0, m1 = a.m10, a.m11
		a.m10 = t00*m0 + t10*m1
		a.m11 = t01*m0 + t11*m1
		a.m12 += t02*m0 + t12*m1
		a.invalidateType()
		return
	case applyShear | applyTranslate, applyShear:
		m0 := a.m01
		a.m00 = t10 * m0
		a.m01 = t11 * m0
		a.m02 += t12 * m0
		m0 = a.m10
		a.m10 = t00 * m0
		a.m11 = t01 * m0
		a.m12 += t02 * m0
	case applyScale | applyTranslate, applyScale:
		m0 := a.m00
		a.m00 = t00 * m0
		a.m01 = t01 * m0
		a.m02 += t02 * m0
		m0 = a.m11
		a.m10 = t10 * m0
		a.m11 = t11 * m0
		a.m12 += t12 * m0
	case applyTranslate:
		a.m00 = t00
		a.m01 = t01
		a.m02 += t02
		a.m10 = t10
		a.m11 = t11
		a.m12 += t12
		a.state = txstate | applyTranslate
		a.invalidateType()
		return
	default:
		panic(stateError(mystate))
	}
	a.updateState()
}

// PreConcatenate sets a to o ∘ a: points are mapped by the previous value of
// a first and by o second. o may be a itself.
func (a *Affine) PreConcatenate(o *Affine) {
	t := o.coeffs()
	mystate := a.state
	txstate := t.state
	if mystate > applyAll || txstate > applyAll {
		panic(stateError(mystate | txstate))
	}
	switch txstate<<hiShift | mystate {
	case hiIdentity | applyIdentity,
		hiIdentity | applyTranslate,
		hiIdentity | applyScale,
		hiIdentity | applyScale | applyTranslate,
		hiIdentity | applyShear,
		hiIdentity | applyShear | applyTranslate,
		hiIdentity | applyShear | applyScale,
		hiIdentity | applyShear | applyScale | applyTranslate:
		return

	case hiTranslate | applyIdentity,
		hiTranslate | applyScale,
		hiTranslate | applyShear,
		hiTranslate | applyShear | applyScale:
		a.m02 = t.m02
		a.m12 = t.m12
		a.state = mystate | applyTranslate
		a.typ |= TypeTranslation
		return

	case hiTranslate | applyTranslate,
		hiTranslate | applyScale | applyTranslate,
		hiTranslate | applyShear | applyTranslate,
		hiTranslate | applyShear | applyScale | applyTranslate:
		a.m02 += t.m02
		a.m12 += t.m12
		if a.m02 == 0 && a.m12 == 0 {
			a.updateState()
		}
		return

	case hiScale | applyTranslate,
		hiScale | applyIdentity:
		a.state = mystate | applyScale
		fallthrough
	case hiScale | applyShear | applyScale | applyTranslate,
		hiScale | applyShear | applyScale,
		hiScale | applyShear | applyTranslate,
		hiScale | applyShear,
		hiScale | applyScale | applyTranslate,
		hiScale | applyScale:
		t00, t11 := t.m00, t.m11
		if mystate&applyShear != 0 {
			a.m01 *= t00
			a.m10 *= t11
			if mystate&applyScale != 0 {
				a.m00 *= t00
				a.m11 *= t11
			}
		} else {
			a.m00 *= t00
			a.m11 *= t11
		}
		if mystate&applyTranslate != 0 {
			a.m02 *= t00
			a.m12 *= t11
		}
		a.updateState()
		return

	case hiShear | applyShear | applyTranslate,
		hiShear | applyShear:
		mystate |= applyScale
		fallthrough
	case hiShear | applyTranslate,
		hiShear | applyIdentity,
		hiShear | applyScale | applyTranslate,
		hiShear | applyScale:
		a.state = mystate ^ applyShear
		fallthrough
	case hiShear | applyShear | applyScale | applyTranslate,
		hiShear | applyShear | applyScale:
		t01, t10 := t.m01, t.m10
		m0 := a.m00
		a.m00 = a.m10 * t01
		a.m10 = m0 * t10
		m0 = a.m01
		a.m01 = a.m11 * t01
		a.m11 = m0 * t10
		m0 = a.m02
		a.m02 = a.m12 * t01
		a.m12 = m0 * t10
		a.invalidateType()
		return
	}

	t00, t01, t02 := t.m00, t.m01, t.m02
	t10, t11, t12 := t.m10, t.m11, t.m12
	switch mystate {
	case applyShear | applyScale | applyTranslate:
		m0, m1 := a.m02, a.m12
		t02 += m0*t00 + m1*t01
		t12 += m0*t10 + m1*t11
		fallthrough
	case applyShear | applyScale:
		a.m02 = t02
		a.m12 = t12
		m0, m1 := a.m00, a.m10
		a.m00 = m0*t00 + m1*t01
		a.m10 = m0*t10 + m1*t11
		m0, m1 = a.m01, a.m11
		a.m01 = m0*t00 + m1*t01
		a.m11 = m0*t10 + m1*t11
	case applyShear | applyTranslate:
		m0, m1 := a.m02, a.m12
		t02 += m0*t00 + m1*t01
		t12 += m0*t10 + m1*t11
		fallthrough
	case applyShear:
		a.m02 = t02
		a.m12 = t12
		m0 := a.m10
		a.m00 = m0 * t01
		a.m10 = m0 * t11
		m0 = a.m01
		a.m01 = m0 * t00
		a.m11 = m0 * t10
	case applyScale | applyTranslate:
		m0, m1 := a.m02, a.m12
		t02 += m0*t00 + m1*t01
		t12 += m0*t10 + m1*t11
		fallthrough
	case applyScale:
		a.m02 = t02
		a.m12 = t12
		m0 := a.m00
		a.m00 = m0 * t00
		a.m10 = m0 * t10
		m0 = a.m11
		a.m01 = m0 * t01
		a.m11 = m0 * t11
	case applyTranslate:
		m0, m1 := a.m02, a.m12
		t02 += m0*t00 + m1*t01
		t12 += m0*t10 + m1*t11
		fallthrough
	case applyIdentity:
		a.m02 = t02
		a.m12 = t12
		a.m00 = t00
		a.m10 = t10
		a.m01 = t01
		a.m11 = t11
		a.state = mystate | txstate
		a.invalidateType()
		return
	default:
		panic(stateError(mystate))
	}
	a.updateState()
}

// adoptState copies the cached classification of t into a, used when a was
// the identity and now has t's coefficients.
func (a *Affine) adoptState(t affineCoeffs) {
	a.state = t.state
	a.typ = t.typ
	a.typeValid = t.typeValid
}

// PreTranslate sets a to Translate(tx, ty) ∘ a.
func (a *Affine) PreTranslate(tx, ty float64) { a.PreConcatenate(NewTranslate(tx, ty)) }

// PreScale sets a to Scale(sx, sy) ∘ a.
func (a *Affine) PreScale(sx, sy float64) { a.PreConcatenate(NewScale(sx, sy)) }

// PreShear sets a to Shear(shx, shy) ∘ a.
func (a *Affine) PreShear(shx, shy float64) { a.PreConcatenate(NewShear(shx, shy)) }

// PreRotate sets a to Rotate(theta) ∘ a.
func (a *Affine) PreRotate(theta float64) { a.PreConcatenate(NewRotate(theta)) }

// PostTranslate sets a to a ∘ Translate(tx, ty) by concatenating a
// translation instance.
func (a *Affine) PostTranslate(tx, ty float64) { a.Concatenate(NewTranslate(tx, ty)) }

// PostScale sets a to a ∘ Scale(sx, sy).
func (a *Affine) PostScale(sx, sy float64) { a.Concatenate(NewScale(sx, sy)) }

// PostShear sets a to a ∘ Shear(shx, shy).
func (a *Affine) PostShear(shx, shy float64) { a.Concatenate(NewShear(shx, shy)) }

// PostRotate sets a to a ∘ Rotate(theta).
func (a *Affine) PostRotate(theta float64) { a.Concatenate(NewRotate(theta)) }

// Rotation returns the angle, in [0, 2π), by which a rotates the positive X
// axis.
func (a *Affine) Rotation() float64 {
	p0 := a.TransformPoint(Pt(0, 0))
	p1 := a.TransformPoint(Pt(1, 0))
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	rot := math.Asin(math.Abs(dy) / math.Hypot(dx, dy))
	switch {
	case dy > 0:
		if dx < 0 {
			rot = math.Pi - rot
		}
	case dy == 0 && dx > 0:
		rot = 0
	case dx > 0:
		rot = 2*math.Pi - rot
	default:
		rot += math.Pi
	}
	return rot
}

// ScaleFactor returns the length of the unit X vector after transformation.
func (a *Affine) ScaleFactor() float64 {
	return a.DeltaTransformPoint(Pt(1, 0)).Distance(Point{})
}

// SetRotation rotates a so that Rotation returns theta.
func (a *Affine) SetRotation(theta float64) {
	a.Rotate(theta - a.Rotation())
}

// SetScale uniformly rescales a about the origin so that ScaleFactor returns
// s. s must not be zero.
func (a *Affine) SetScale(s float64) error {
	if s == 0 {
		return fmt.Errorf("%w: can't set scale to 0", ErrInvalidArgument)
	}
	a.ScaleAbout(s/a.ScaleFactor(), 0, 0)
	return nil
}
