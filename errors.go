package geom

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an argument is outside the domain
	// of an operation, such as an unknown winding rule or a zero scale factor.
	ErrInvalidArgument = errors.New("geom: invalid argument")

	// ErrIllegalPathState is returned when a path operation is not valid for
	// the path's current contents, for example drawing before the first MoveTo.
	ErrIllegalPathState = errors.New("geom: illegal path state")

	// ErrNoninvertible is matched by every [NoninvertibleError].
	ErrNoninvertible = errors.New("geom: noninvertible transform")

	// ErrIteratorDone is returned by [PathIterator.CurrentSegment] after the
	// iterator has been exhausted.
	ErrIteratorDone = fmt.Errorf("%w: iterator out of bounds", ErrIllegalPathState)
)

// NoninvertibleError reports an attempt to invert a transform, or to apply
// its inverse, when the transform has no inverse.
type NoninvertibleError struct {
	Determinant float64
}

func (e *NoninvertibleError) Error() string {
	return fmt.Sprintf("geom: determinant is %g", e.Determinant)
}

func (e *NoninvertibleError) Is(target error) bool {
	return target == ErrNoninvertible
}

func noninvertible(det float64) error {
	return &NoninvertibleError{Determinant: det}
}
