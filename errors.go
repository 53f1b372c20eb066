package ndarray

import "errors"

var (
	// ErrShapeMismatch is returned when array shapes disagree where they must
	// match: ragged nested input, concatenation along mismatched axes, masks
	// of the wrong shape, or a reshape that changes the element count.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrBroadcast is returned when two shapes cannot be broadcast together.
	ErrBroadcast = errors.New("shapes cannot be broadcast together")
	// ErrIndexOutOfRange is returned for integer indices outside an axis.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrAxisOutOfRange is returned for axis arguments outside [-ndim, ndim).
	ErrAxisOutOfRange = errors.New("axis out of range")
	// ErrEmpty is returned by reductions that have no identity (min, max)
	// when applied to zero elements.
	ErrEmpty = errors.New("zero-size array")
	// ErrInvalidArgument covers malformed arguments such as a zero step.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDtypeMismatch is returned when stored data does not match the
	// requested element type.
	ErrDtypeMismatch = errors.New("dtype mismatch")
)
