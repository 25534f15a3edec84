package frame

import (
	"errors"
	"fmt"
)

// Parse failures indicate a malformed or truncated frame from an untrusted
// source. They propagate as errors, never as panics.
var (
	ErrNotEnoughBytes = errors.New("not enough bytes in frame")
	ErrInvalidLength  = errors.New("invalid length field")
)

// RawValueKind discriminates the three wire shapes a value slot can take.
type RawValueKind uint8

const (
	// RawValueBytes is a present value: a non-negative length and that many
	// payload bytes.
	RawValueBytes RawValueKind = iota
	// RawValueNull is the NULL sentinel (length -1, no payload).
	RawValueNull
	// RawValueUnset is the UNSET sentinel (length -2, no payload).
	RawValueUnset
)

// RawValue is one decoded value slot.
type RawValue struct {
	Kind RawValueKind
	// Data holds the payload when Kind is RawValueBytes. It aliases the
	// buffer the value was read from.
	Data []byte
}

// IsNull reports whether the slot holds the NULL sentinel.
func (v RawValue) IsNull() bool { return v.Kind == RawValueNull }

// IsUnset reports whether the slot holds the UNSET sentinel.
func (v RawValue) IsUnset() bool { return v.Kind == RawValueUnset }

// Reader consumes frame primitives from a byte slice.
//
// All reads alias the input slice rather than copying; the caller must keep
// the backing array alive for as long as returned slices are in use.
type Reader struct {
	buf []byte
}

// NewReader creates a Reader over p.
func NewReader(p []byte) *Reader {
	return &Reader{buf: p}
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf)
}

// Bytes returns the unconsumed bytes without advancing.
func (r *Reader) Bytes() []byte {
	return r.buf
}

func (r *Reader) take(n int) ([]byte, error) {
	if len(r.buf) < n {
		return nil, fmt.Errorf("reading %d bytes with %d available: %w", n, len(r.buf), ErrNotEnoughBytes)
	}
	p := r.buf[:n]
	r.buf = r.buf[n:]

	return p, nil
}

// ReadShort reads a big-endian [short].
func (r *Reader) ReadShort() (uint16, error) {
	p, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return wire.Uint16(p), nil
}

// ReadInt reads a big-endian [int].
func (r *Reader) ReadInt() (int32, error) {
	p, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return int32(wire.Uint32(p)), nil
}

// ReadLong reads a big-endian [long].
func (r *Reader) ReadLong() (int64, error) {
	p, err := r.take(8)
	if err != nil {
		return 0, err
	}

	return int64(wire.Uint64(p)), nil
}

// ReadString reads a protocol [string]: 2-byte length plus UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	p, err := r.ReadShortBytes()
	if err != nil {
		return "", err
	}

	return string(p), nil
}

// ReadShortBytes reads a 2-byte length followed by that many bytes.
func (r *Reader) ReadShortBytes() ([]byte, error) {
	n, err := r.ReadShort()
	if err != nil {
		return nil, err
	}

	return r.take(int(n))
}

// ReadBytesOpt reads a 4-byte length followed by that many bytes. Any
// negative length yields (nil, false, nil): the slot carries no payload.
func (r *Reader) ReadBytesOpt() ([]byte, bool, error) {
	n, err := r.ReadInt()
	if err != nil {
		return nil, false, err
	}
	if n < 0 {
		return nil, false, nil
	}

	p, err := r.take(int(n))
	if err != nil {
		return nil, false, err
	}

	return p, true, nil
}

// ReadValue reads one value slot: a 4-byte length where -1 denotes NULL,
// -2 denotes UNSET and any non-negative value prefixes that many payload
// bytes. Other negative lengths are malformed.
func (r *Reader) ReadValue() (RawValue, error) {
	n, err := r.ReadInt()
	if err != nil {
		return RawValue{}, err
	}

	switch {
	case n >= 0:
		p, err := r.take(int(n))
		if err != nil {
			return RawValue{}, err
		}

		return RawValue{Kind: RawValueBytes, Data: p}, nil
	case n == -1:
		return RawValue{Kind: RawValueNull}, nil
	case n == -2:
		return RawValue{Kind: RawValueUnset}, nil
	default:
		return RawValue{}, fmt.Errorf("value length %d: %w", n, ErrInvalidLength)
	}
}

// ReadVint reads one variable-length integer.
func (r *Reader) ReadVint() (int64, error) {
	v, n, err := decodeVint(r.buf)
	if err != nil {
		return 0, err
	}
	r.buf = r.buf[n:]

	return v, nil
}
