package geom

import (
	"fmt"
	"math"
)

// Affine describes a mutable affine transform via six coefficients.
//
// The coefficients map a point (x, y) to
//
//	x' = m00·x + m01·y + m02
//	y' = m10·x + m11·y + m12
//
// which corresponds to the augmented matrix
//
//	| m00 m01 m02 |
//	| m10 m11 m12 |
//	|  0   0   1  |
//
// Next to the coefficients, an Affine tracks which of them deviate from the
// identity. Every operation uses that information to pick the cheapest
// arithmetic that is still exact, so applying a pure translation costs two
// additions per point.
//
// Affine values must be created with one of the constructors, such as
// [NewIdentity] or [NewAffine]. The zero value is not a valid transform.
// Affine is not safe for concurrent mutation.
type Affine struct {
	m00, m10 float64
	m01, m11 float64
	m02, m12 float64

	state applyState
	// typ caches the result of Type and is only meaningful if typeValid is
	// set.
	typ       Type
	typeValid bool

	stack []affineCoeffs
}

// applyState records which coefficients differ from the identity. Operations
// switch on it to choose an arithmetic path.
type applyState uint8

const (
	// applyIdentity means the transform is the identity.
	applyIdentity applyState = 0
	// applyTranslate means m02 or m12 is non-zero.
	applyTranslate applyState = 1
	// applyScale means m00 or m11 is not 1 when applyShear is clear, and
	// that m00 or m11 is non-zero when applyShear is set.
	applyScale applyState = 2
	// applyShear means m01 or m10 is non-zero.
	applyShear applyState = 4
	// applyAll is the union of all valid state bits.
	applyAll = applyShear | applyScale | applyTranslate

	// hiShift moves the state of a second transform above the bits of the
	// first, so that a pair of states can be dispatched on in one switch.
	hiShift = 3

	hiIdentity  = applyIdentity << hiShift
	hiTranslate = applyTranslate << hiShift
	hiScale     = applyScale << hiShift
	hiShear     = applyShear << hiShift
)

// rot90Conversion maps a state to the state after a rotation by 90 or 270
// degrees, before accounting for the scale bit possibly dropping out.
var rot90Conversion = [8]applyState{
	applyShear,
	applyShear | applyTranslate,
	applyShear,
	applyShear | applyTranslate,
	applyScale,
	applyScale | applyTranslate,
	applyShear | applyScale,
	applyShear | applyScale | applyTranslate,
}

type affineCoeffs struct {
	m00, m10, m01, m11, m02, m12 float64
	state                        applyState
	typ                          Type
	typeValid                    bool
}

// stateError is the panic value for an apply state that no switch handles.
// It indicates corrupted internal state.
type stateError applyState

func (e stateError) Error() string {
	return fmt.Sprintf("geom: missing case for transform state %#x", uint8(e))
}

// NewIdentity returns a new identity transform.
func NewIdentity() *Affine {
	a := &Affine{}
	a.SetToIdentity()
	return a
}

// NewAffine returns a transform with the given coefficients.
func NewAffine(m00, m10, m01, m11, m02, m12 float64) *Affine {
	a := &Affine{}
	a.SetTransform(m00, m10, m01, m11, m02, m12)
	return a
}

// NewAffineFromMatrix returns a transform from a flat matrix of either 4
// entries (m00, m10, m01, m11) or 6 entries (m00, m10, m01, m11, m02, m12).
func NewAffineFromMatrix(m []float64) (*Affine, error) {
	switch len(m) {
	case 4:
		return NewAffine(m[0], m[1], m[2], m[3], 0, 0), nil
	case 6:
		return NewAffine(m[0], m[1], m[2], m[3], m[4], m[5]), nil
	default:
		return nil, fmt.Errorf("%w: matrix has %d entries, want 4 or 6", ErrInvalidArgument, len(m))
	}
}

// NewTranslate returns a transform representing a translation by (tx, ty).
func NewTranslate(tx, ty float64) *Affine {
	a := &Affine{}
	a.SetToTranslation(tx, ty)
	return a
}

// NewScale returns a transform representing non-uniform scaling.
func NewScale(sx, sy float64) *Affine {
	a := &Affine{}
	a.SetToScale(sx, sy)
	return a
}

// NewShear returns a transform representing a shear, where x' = x + shx·y
// and y' = shy·x + y.
func NewShear(shx, shy float64) *Affine {
	a := &Affine{}
	a.SetToShear(shx, shy)
	return a
}

// NewRotate returns a transform representing a rotation by theta radians.
//
// The convention for rotation is that a positive angle rotates a positive X
// direction into positive Y. Thus, in a Y-down coordinate system (as is common
// for graphics), it is a clockwise rotation, and in Y-up (traditional for
// math), it is anti-clockwise.
func NewRotate(theta float64) *Affine {
	a := &Affine{}
	a.SetToRotation(theta)
	return a
}

// NewRotateAbout returns a transform representing a rotation by theta radians
// about the anchor (ax, ay).
func NewRotateAbout(theta, ax, ay float64) *Affine {
	a := &Affine{}
	a.SetToRotationAbout(theta, ax, ay)
	return a
}

// NewRotateVec returns a transform that rotates the positive X axis onto the
// direction of the vector (vx, vy). A zero vector yields the identity.
func NewRotateVec(vx, vy float64) *Affine {
	a := &Affine{}
	a.SetToRotationVec(vx, vy)
	return a
}

// NewRotateVecAbout is like [NewRotateVec] but rotates about (ax, ay).
func NewRotateVecAbout(vx, vy, ax, ay float64) *Affine {
	a := &Affine{}
	a.SetToRotationVecAbout(vx, vy, ax, ay)
	return a
}

// NewQuadrantRotate returns a transform rotating by n quarter turns. The
// coefficients are exact.
func NewQuadrantRotate(n int) *Affine {
	a := &Affine{}
	a.SetToQuadrantRotation(n)
	return a
}

// NewQuadrantRotateAbout returns a transform rotating by n quarter turns about
// (ax, ay).
func NewQuadrantRotateAbout(n int, ax, ay float64) *Affine {
	a := &Affine{}
	a.SetToQuadrantRotationAbout(n, ax, ay)
	return a
}

func (a *Affine) setType(t Type) {
	a.typ = t
	a.typeValid = true
}

func (a *Affine) invalidateType() {
	a.typeValid = false
}

// updateState recomputes the apply state from the coefficients. The type is
// known for the identity and pure translations and invalidated otherwise.
func (a *Affine) updateState() {
	if a.m01 == 0 && a.m10 == 0 {
		if a.m00 == 1 && a.m11 == 1 {
			if a.m02 == 0 && a.m12 == 0 {
				a.state = applyIdentity
				a.setType(TypeIdentity)
			} else {
				a.state = applyTranslate
				a.setType(TypeTranslation)
			}
		} else {
			if a.m02 == 0 && a.m12 == 0 {
				a.state = applyScale
			} else {
				a.state = applyScale | applyTranslate
			}
			a.invalidateType()
		}
	} else {
		if a.m00 == 0 && a.m11 == 0 {
			if a.m02 == 0 && a.m12 == 0 {
				a.state = applyShear
			} else {
				a.state = applyShear | applyTranslate
			}
		} else {
			if a.m02 == 0 && a.m12 == 0 {
				a.state = applyShear | applyScale
			} else {
				a.state = applyShear | applyScale | applyTranslate
			}
		}
		a.invalidateType()
	}
}

// SetToIdentity resets a to the identity transform.
func (a *Affine) SetToIdentity() {
	a.m00, a.m11 = 1, 1
	a.m10, a.m01, a.m02, a.m12 = 0, 0, 0, 0
	a.state = applyIdentity
	a.setType(TypeIdentity)
}

// SetToTranslation replaces a with a translation by (tx, ty).
func (a *Affine) SetToTranslation(tx, ty float64) {
	a.m00, a.m10, a.m01, a.m11 = 1, 0, 0, 1
	a.m02, a.m12 = tx, ty
	if tx != 0 || ty != 0 {
		a.state = applyTranslate
		a.setType(TypeTranslation)
	} else {
		a.state = applyIdentity
		a.setType(TypeIdentity)
	}
}

// SetToScale replaces a with a scale by (sx, sy).
func (a *Affine) SetToScale(sx, sy float64) {
	a.m00, a.m10, a.m01, a.m11 = sx, 0, 0, sy
	a.m02, a.m12 = 0, 0
	if sx != 1 || sy != 1 {
		a.state = applyScale
		a.invalidateType()
	} else {
		a.state = applyIdentity
		a.setType(TypeIdentity)
	}
}

// SetToShear replaces a with a shear by (shx, shy).
func (a *Affine) SetToShear(shx, shy float64) {
	a.m00, a.m10, a.m01, a.m11 = 1, shy, shx, 1
	a.m02, a.m12 = 0, 0
	if shx != 0 || shy != 0 {
		a.state = applyShear | applyScale
		a.invalidateType()
	} else {
		a.state = applyIdentity
		a.setType(TypeIdentity)
	}
}

// SetToRotation replaces a with a rotation by theta radians. Angles whose
// sine or cosine is exactly ±1 produce exact quadrant rotations.
func (a *Affine) SetToRotation(theta float64) {
	sin := math.Sin(theta)
	var cos float64
	if sin == 1 || sin == -1 {
		cos = 0
		a.state = applyShear
		a.setType(TypeQuadrantRotation)
	} else {
		cos = math.Cos(theta)
		switch cos {
		case -1:
			sin = 0
			a.state = applyScale
			a.setType(TypeQuadrantRotation)
		case 1:
			sin = 0
			a.state = applyIdentity
			a.setType(TypeIdentity)
		default:
			a.state = applyShear | applyScale
			a.setType(TypeGeneralRotation)
		}
	}
	a.m00, a.m10, a.m01, a.m11 = cos, sin, -sin, cos
	a.m02, a.m12 = 0, 0
}

// SetToRotationAbout replaces a with a rotation by theta radians about
// (ax, ay).
func (a *Affine) SetToRotationAbout(theta, ax, ay float64) {
	a.SetToRotation(theta)
	a.anchorRotation(ax, ay)
}

// SetToRotationVec replaces a with a rotation that maps the positive X axis
// onto the direction of (vx, vy).
func (a *Affine) SetToRotationVec(vx, vy float64) {
	var sin, cos float64
	switch {
	case vy == 0:
		sin = 0
		if vx < 0 {
			cos = -1
			a.state = applyScale
			a.setType(TypeQuadrantRotation)
		} else {
			cos = 1
			a.state = applyIdentity
			a.setType(TypeIdentity)
		}
	case vx == 0:
		cos = 0
		if vy > 0 {
			sin = 1
		} else {
			sin = -1
		}
		a.state = applyShear
		a.setType(TypeQuadrantRotation)
	default:
		l := math.Hypot(vx, vy)
		cos = vx / l
		sin = vy / l
		a.state = applyShear | applyScale
		a.setType(TypeGeneralRotation)
	}
	a.m00, a.m10, a.m01, a.m11 = cos, sin, -sin, cos
	a.m02, a.m12 = 0, 0
}

// SetToRotationVecAbout is like SetToRotationVec but rotates about (ax, ay).
func (a *Affine) SetToRotationVecAbout(vx, vy, ax, ay float64) {
	a.SetToRotationVec(vx, vy)
	a.anchorRotation(ax, ay)
}

// anchorRotation turns a pure rotation into a rotation about (ax, ay).
func (a *Affine) anchorRotation(ax, ay float64) {
	sin := a.m10
	oneMinusCos := 1 - a.m00
	a.m02 = ax*oneMinusCos + ay*sin
	a.m12 = ay*oneMinusCos - ax*sin
	if a.m02 != 0 || a.m12 != 0 {
		a.state |= applyTranslate
		if a.typeValid {
			a.typ |= TypeTranslation
		}
	}
}

// SetToQuadrantRotation replaces a with a rotation by n quarter turns.
func (a *Affine) SetToQuadrantRotation(n int) {
	a.m02, a.m12 = 0, 0
	switch n & 3 {
	case 0:
		a.m00, a.m10, a.m01, a.m11 = 1, 0, 0, 1
		a.state = applyIdentity
		a.setType(TypeIdentity)
	case 1:
		a.m00, a.m10, a.m01, a.m11 = 0, 1, -1, 0
		a.state = applyShear
		a.setType(TypeQuadrantRotation)
	case 2:
		a.m00, a.m10, a.m01, a.m11 = -1, 0, 0, -1
		a.state = applyScale
		a.setType(TypeQuadrantRotation)
	case 3:
		a.m00, a.m10, a.m01, a.m11 = 0, -1, 1, 0
		a.state = applyShear
		a.setType(TypeQuadrantRotation)
	}
}

// SetToQuadrantRotationAbout replaces a with a rotation by n quarter turns
// about (ax, ay).
func (a *Affine) SetToQuadrantRotationAbout(n int, ax, ay float64) {
	switch n & 3 {
	case 0:
		a.SetToIdentity()
		return
	case 1:
		a.m00, a.m10, a.m01, a.m11 = 0, 1, -1, 0
		a.m02 = ax + ay
		a.m12 = ay - ax
		a.state = applyShear
	case 2:
		a.m00, a.m10, a.m01, a.m11 = -1, 0, 0, -1
		a.m02 = ax + ax
		a.m12 = ay + ay
		a.state = applyScale
	case 3:
		a.m00, a.m10, a.m01, a.m11 = 0, -1, 1, 0
		a.m02 = ax - ay
		a.m12 = ay + ax
		a.state = applyShear
	}
	if a.m02 == 0 && a.m12 == 0 {
		a.setType(TypeQuadrantRotation)
	} else {
		a.state |= applyTranslate
		a.setType(TypeQuadrantRotation | TypeTranslation)
	}
}

// SetTransform replaces all six coefficients of a.
func (a *Affine) SetTransform(m00, m10, m01, m11, m02, m12 float64) {
	a.m00, a.m10 = m00, m10
	a.m01, a.m11 = m01, m11
	a.m02, a.m12 = m02, m12
	a.updateState()
}

// Set copies the transform o into a. The saved-state stack of a is left
// untouched.
func (a *Affine) Set(o *Affine) {
	a.m00, a.m10 = o.m00, o.m10
	a.m01, a.m11 = o.m01, o.m11
	a.m02, a.m12 = o.m02, o.m12
	a.state = o.state
	a.typ = o.typ
	a.typeValid = o.typeValid
}

// SetOffset replaces the translation part of a.
func (a *Affine) SetOffset(tx, ty float64) {
	a.SetTransform(a.m00, a.m10, a.m01, a.m11, tx, ty)
}

// Coefficients returns the six coefficients of the transform.
func (a *Affine) Coefficients() (m00, m10, m01, m11, m02, m12 float64) {
	return a.m00, a.m10, a.m01, a.m11, a.m02, a.m12
}

// Matrix returns the coefficients in the order m00, m10, m01, m11, m02, m12.
func (a *Affine) Matrix() [6]float64 {
	return [6]float64{a.m00, a.m10, a.m01, a.m11, a.m02, a.m12}
}

func (a *Affine) ScaleX() float64     { return a.m00 }
func (a *Affine) ScaleY() float64     { return a.m11 }
func (a *Affine) ShearX() float64     { return a.m01 }
func (a *Affine) ShearY() float64     { return a.m10 }
func (a *Affine) TranslateX() float64 { return a.m02 }
func (a *Affine) TranslateY() float64 { return a.m12 }

// IsIdentity reports whether a is the identity transform.
func (a *Affine) IsIdentity() bool {
	return a.state == applyIdentity || a.Type() == TypeIdentity
}

// Determinant returns the determinant of the linear part of the transform.
func (a *Affine) Determinant() float64 {
	switch a.state {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		return a.m00*a.m11 - a.m01*a.m10
	case applyShear | applyTranslate, applyShear:
		return -(a.m01 * a.m10)
	case applyScale | applyTranslate, applyScale:
		return a.m00 * a.m11
	case applyTranslate, applyIdentity:
		return 1
	default:
		panic(stateError(a.state))
	}
}

// Equal reports whether a and o have identical coefficients.
func (a *Affine) Equal(o *Affine) bool {
	return a.m00 == o.m00 && a.m01 == o.m01 && a.m02 == o.m02 &&
		a.m10 == o.m10 && a.m11 == o.m11 && a.m12 == o.m12
}

func (a *Affine) IsInf() bool {
	return math.IsInf(a.m00, 0) ||
		math.IsInf(a.m10, 0) ||
		math.IsInf(a.m01, 0) ||
		math.IsInf(a.m11, 0) ||
		math.IsInf(a.m02, 0) ||
		math.IsInf(a.m12, 0)
}

func (a *Affine) IsNaN() bool {
	return math.IsNaN(a.m00) ||
		math.IsNaN(a.m10) ||
		math.IsNaN(a.m01) ||
		math.IsNaN(a.m11) ||
		math.IsNaN(a.m02) ||
		math.IsNaN(a.m12)
}

func (a *Affine) String() string {
	return fmt.Sprintf("Affine[[%g, %g, %g], [%g, %g, %g]]",
		a.m00, a.m01, a.m02,
		a.m10, a.m11, a.m12)
}

// Clone returns an independent copy of a. The copy starts with an empty
// saved-state stack.
func (a *Affine) Clone() *Affine {
	c := &Affine{}
	c.Set(a)
	return c
}

func (a *Affine) coeffs() affineCoeffs {
	return affineCoeffs{
		m00: a.m00, m10: a.m10,
		m01: a.m01, m11: a.m11,
		m02: a.m02, m12: a.m12,
		state:     a.state,
		typ:       a.typ,
		typeValid: a.typeValid,
	}
}

// Save pushes a snapshot of the current transform onto a's stack.
func (a *Affine) Save() {
	a.stack = append(a.stack, a.coeffs())
}

// Restore pops the most recently saved snapshot and makes it the current
// transform. It does nothing if the stack is empty.
func (a *Affine) Restore() {
	if len(a.stack) == 0 {
		return
	}
	c := a.stack[len(a.stack)-1]
	a.stack = a.stack[:len(a.stack)-1]
	a.m00, a.m10 = c.m00, c.m10
	a.m01, a.m11 = c.m01, c.m11
	a.m02, a.m12 = c.m02, c.m12
	a.state = c.state
	a.typ = c.typ
	a.typeValid = c.typeValid
}

// StackDepth returns the number of saved snapshots.
func (a *Affine) StackDepth() int {
	return len(a.stack)
}
