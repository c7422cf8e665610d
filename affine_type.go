package geom

import "strings"

// Type classifies the geometric effect of an [Affine]. It is a bit set; for
// example, a rotation by 90° followed by a translation reports
// TypeQuadrantRotation|TypeTranslation.
type Type int

const (
	// TypeIdentity means the transform maps every point onto itself.
	TypeIdentity Type = 0
	// TypeTranslation means the transform translates.
	TypeTranslation Type = 1
	// TypeUniformScale means the transform scales both axes by the same
	// positive factor other than 1.
	TypeUniformScale Type = 2
	// TypeGeneralScale means the transform scales the axes by different
	// factors.
	TypeGeneralScale Type = 4
	// TypeQuadrantRotation means the transform rotates by a multiple of 90°.
	TypeQuadrantRotation Type = 8
	// TypeGeneralRotation means the transform rotates by an arbitrary angle.
	TypeGeneralRotation Type = 16
	// TypeGeneralTransform means the transform does not preserve angles,
	// such as a shear. No other bits accompany it, not even TypeTranslation.
	TypeGeneralTransform Type = 32
	// TypeFlip means the transform mirrors about some axis, changing the
	// orientation of shapes.
	TypeFlip Type = 64

	TypeMaskScale    = TypeUniformScale | TypeGeneralScale
	TypeMaskRotation = TypeQuadrantRotation | TypeGeneralRotation
)

var typeNames = []struct {
	t    Type
	name string
}{
	{TypeTranslation, "Translation"},
	{TypeUniformScale, "UniformScale"},
	{TypeGeneralScale, "GeneralScale"},
	{TypeQuadrantRotation, "QuadrantRotation"},
	{TypeGeneralRotation, "GeneralRotation"},
	{TypeGeneralTransform, "GeneralTransform"},
	{TypeFlip, "Flip"},
}

// Has reports whether all bits of o are set in t.
func (t Type) Has(o Type) bool {
	return t&o == o
}

func (t Type) String() string {
	if t == TypeIdentity {
		return "Identity"
	}
	var names []string
	for _, tn := range typeNames {
		if t&tn.t != 0 {
			names = append(names, tn.name)
		}
	}
	return strings.Join(names, "|")
}

// Type returns the classification of the transform. The result is cached
// until a mutation makes it unpredictable.
func (a *Affine) Type() Type {
	if !a.typeValid {
		a.setType(a.calculateType())
	}
	return a.typ
}

func (a *Affine) calculateType() Type {
	ret := TypeIdentity
	a.updateState()
	switch a.state {
	case applyShear | applyScale | applyTranslate, applyShear | applyScale:
		if a.state&applyTranslate != 0 {
			ret = TypeTranslation
		}
		m0, m1, m2, m3 := a.m00, a.m11, a.m01, a.m10
		if m0*m2+m3*m1 != 0 {
			// Not orthogonal.
			return TypeGeneralTransform
		}
		sgn0 := m0 >= 0
		sgn1 := m1 >= 0
		if sgn0 == sgn1 {
			if m0 != m1 || m2 != -m3 {
				ret |= TypeGeneralRotation | TypeGeneralScale
			} else if m0*m1-m2*m3 != 1 {
				ret |= TypeGeneralRotation | TypeUniformScale
			} else {
				ret |= TypeGeneralRotation
			}
		} else {
			if m0 != -m1 || m2 != m3 {
				ret |= TypeGeneralRotation | TypeFlip | TypeGeneralScale
			} else if m0*m1-m2*m3 != 1 {
				ret |= TypeGeneralRotation | TypeFlip | TypeUniformScale
			} else {
				ret |= TypeGeneralRotation | TypeFlip
			}
		}
	case applyShear | applyTranslate, applyShear:
		if a.state&applyTranslate != 0 {
			ret = TypeTranslation
		}
		m0, m1 := a.m01, a.m10
		sgn0 := m0 >= 0
		sgn1 := m1 >= 0
		if sgn0 != sgn1 {
			if m0 != -m1 {
				ret |= TypeQuadrantRotation | TypeGeneralScale
			} else if m0 != 1 && m0 != -1 {
				ret |= TypeQuadrantRotation | TypeUniformScale
			} else {
				ret |= TypeQuadrantRotation
			}
		} else {
			if m0 == m1 {
				ret |= TypeQuadrantRotation | TypeFlip | TypeUniformScale
			} else {
				ret |= TypeQuadrantRotation | TypeFlip | TypeGeneralScale
			}
		}
	case applyScale | applyTranslate, applyScale:
		if a.state&applyTranslate != 0 {
			ret = TypeTranslation
		}
		m0, m1 := a.m00, a.m11
		sgn0 := m0 >= 0
		sgn1 := m1 >= 0
		if sgn0 == sgn1 {
			if sgn0 {
				if m0 == m1 {
					ret |= TypeUniformScale
				} else {
					ret |= TypeGeneralScale
				}
			} else {
				if m0 != m1 {
					ret |= TypeQuadrantRotation | TypeGeneralScale
				} else if m0 != -1 {
					ret |= TypeQuadrantRotation | TypeUniformScale
				} else {
					ret |= TypeQuadrantRotation
				}
			}
		} else {
			if m0 == -m1 {
				if m0 == 1 || m0 == -1 {
					ret |= TypeFlip
				} else {
					ret |= TypeFlip | TypeUniformScale
				}
			} else {
				ret |= TypeFlip | TypeGeneralScale
			}
		}
	case applyTranslate:
		ret = TypeTranslation
	case applyIdentity:
	default:
		panic(stateError(a.state))
	}
	return ret
}
