package geom

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// approx compares floats with an absolute tolerance suitable for the small
// coordinates used in tests.
var approx = cmpopts.EquateApprox(0, 1e-9)

func assertNear(t *testing.T, got, want Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon || math.IsNaN(d) {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

// mat is a plain 2×3 matrix used as the reference for Affine arithmetic.
type mat struct {
	M00, M10, M01, M11, M02, M12 float64
}

func matOf(a *Affine) mat {
	m00, m10, m01, m11, m02, m12 := a.Coefficients()
	return mat{m00, m10, m01, m11, m02, m12}
}

// then returns the matrix applying o first and m second.
func (m mat) then(o mat) mat {
	return mat{
		M00: m.M00*o.M00 + m.M01*o.M10,
		M10: m.M10*o.M00 + m.M11*o.M10,
		M01: m.M00*o.M01 + m.M01*o.M11,
		M11: m.M10*o.M01 + m.M11*o.M11,
		M02: m.M00*o.M02 + m.M01*o.M12 + m.M02,
		M12: m.M10*o.M02 + m.M11*o.M12 + m.M12,
	}
}

func (m mat) apply(p Point) Point {
	return Pt(m.M00*p.X+m.M01*p.Y+m.M02, m.M10*p.X+m.M11*p.Y+m.M12)
}

// nonzero returns a value with magnitude in [0.5, 3) and random sign.
func nonzero(r *rand.Rand) float64 {
	v := 0.5 + r.Float64()*2.5
	if r.IntN(2) == 0 {
		v = -v
	}
	return v
}

var allStates = []applyState{
	applyIdentity,
	applyTranslate,
	applyScale,
	applyScale | applyTranslate,
	applyShear,
	applyShear | applyTranslate,
	applyShear | applyScale,
	applyShear | applyScale | applyTranslate,
}

// randomAffine returns a well-conditioned transform whose apply state is
// exactly s.
func randomAffine(t *testing.T, r *rand.Rand, s applyState) *Affine {
	t.Helper()
	for {
		m00, m10, m01, m11, m02, m12 := 1.0, 0.0, 0.0, 1.0, 0.0, 0.0
		if s&applyTranslate != 0 {
			m02, m12 = nonzero(r), nonzero(r)
		}
		switch s & (applyShear | applyScale) {
		case applyScale:
			m00, m11 = nonzero(r), nonzero(r)
		case applyShear:
			m00, m11 = 0, 0
			m01, m10 = nonzero(r), nonzero(r)
		case applyShear | applyScale:
			m00, m11 = nonzero(r), nonzero(r)
			m01, m10 = nonzero(r), nonzero(r)
		}
		if math.Abs(m00*m11-m01*m10) < 0.25 {
			continue
		}
		a := NewAffine(m00, m10, m01, m11, m02, m12)
		if a.state != s {
			t.Fatalf("generated state %#x, want %#x", a.state, s)
		}
		return a
	}
}

// checkState verifies that every coefficient the apply state claims to be
// trivial really is. Extra bits are allowed; missing ones are not.
func checkState(t *testing.T, a *Affine) {
	t.Helper()
	s := a.state
	if s&applyTranslate == 0 && (a.m02 != 0 || a.m12 != 0) {
		t.Errorf("state %#x lacks translate, but translation is (%g, %g)", s, a.m02, a.m12)
	}
	if s&applyShear == 0 && (a.m01 != 0 || a.m10 != 0) {
		t.Errorf("state %#x lacks shear, but shear is (%g, %g)", s, a.m01, a.m10)
	}
	switch s & (applyShear | applyScale) {
	case applyIdentity:
		if a.m00 != 1 || a.m11 != 1 {
			t.Errorf("state %#x lacks scale, but scale is (%g, %g)", s, a.m00, a.m11)
		}
	case applyShear:
		if a.m00 != 0 || a.m11 != 0 {
			t.Errorf("state %#x is shear only, but diagonal is (%g, %g)", s, a.m00, a.m11)
		}
	}
}

func diffMat(t *testing.T, want mat, a *Affine) {
	t.Helper()
	diff(t, want, matOf(a), approx)
}
