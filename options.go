package geom

import "fmt"

const (
	defaultRecursionLimit = 10
	defaultGrowSize       = 24

	defaultPathCapacity = 20
	defaultExpandMax    = 500
)

// FlattenOption configures a [FlatteningIterator].
type FlattenOption func(*flattenOptions)

type flattenOptions struct {
	limit    int
	growSize int
}

func defaultFlattenOptions() flattenOptions {
	return flattenOptions{
		limit:    defaultRecursionLimit,
		growSize: defaultGrowSize,
	}
}

func (o flattenOptions) validate() error {
	if o.limit < 0 {
		return fmt.Errorf("%w: recursion limit %d is negative", ErrInvalidArgument, o.limit)
	}
	if o.growSize < 8 {
		return fmt.Errorf("%w: grow size %d is smaller than one cubic subdivision", ErrInvalidArgument, o.growSize)
	}
	return nil
}

// WithRecursionLimit sets the maximum number of times a single curve is
// subdivided. A curve piece that reaches the limit is emitted as a line even
// if it is not yet flat enough. The default is 10.
func WithRecursionLimit(limit int) FlattenOption {
	return func(o *flattenOptions) {
		o.limit = limit
	}
}

// WithGrowSize sets the number of coordinates by which the flattener's
// scratch buffer grows when subdivision runs out of room. The default is 24.
func WithGrowSize(n int) FlattenOption {
	return func(o *flattenOptions) {
		o.growSize = n
	}
}

// PathOption configures a [Path] during creation.
type PathOption func(*pathOptions)

type pathOptions struct {
	capacity  int
	expandMax int
}

func defaultPathOptions() pathOptions {
	return pathOptions{
		capacity:  defaultPathCapacity,
		expandMax: defaultExpandMax,
	}
}

func (o pathOptions) validate() error {
	if o.capacity < 0 {
		return fmt.Errorf("%w: capacity %d is negative", ErrInvalidArgument, o.capacity)
	}
	if o.expandMax < 1 {
		return fmt.Errorf("%w: expand max %d is not positive", ErrInvalidArgument, o.expandMax)
	}
	return nil
}

// WithCapacity sets the number of segments a new path has room for before
// it has to grow. The default is 20.
func WithCapacity(segments int) PathOption {
	return func(o *pathOptions) {
		o.capacity = segments
	}
}

// WithExpandMax caps how many segments are added to a path's storage in a
// single growth step. Coordinate storage grows by at most twice that many
// values. The default is 500.
func WithExpandMax(n int) PathOption {
	return func(o *pathOptions) {
		o.expandMax = n
	}
}
