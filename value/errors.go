package value

import "errors"

var (
	// ErrValueTooBig reports a payload or element count that does not fit the
	// protocol's signed 32-bit length field. Retrying cannot change the
	// outcome; callers should treat it as a permanent statement error.
	ErrValueTooBig = errors.New("value too big to be sent in a request - max 2GiB allowed")

	// ErrValueOverflow reports a typed conversion whose result cannot be
	// represented in the target CQL range.
	ErrValueOverflow = errors.New("value is too large to fit in the CQL type")

	// ErrTooManyValues reports an attempt to bind more values than the
	// request's 16-bit count field can carry.
	ErrTooManyValues = errors.New("too many values to add, max 65,535 values can be sent in a request")

	// ErrMixingNamedAndPositional reports an attempt to mix named and
	// positional values in one bound-value list.
	ErrMixingNamedAndPositional = errors.New("mixing named and not named values is not allowed")

	// ErrUnsupportedType reports a Go value Serialize has no encoding for.
	ErrUnsupportedType = errors.New("no CQL wire encoding for Go type")

	// ErrVectorUnsupported reports an attempt to serialize a vector value.
	// The vector wire encoding is not pinned down yet, so encoding one is
	// refused rather than guessed.
	ErrVectorUnsupported = errors.New("vector values have no wire encoding yet")
)
