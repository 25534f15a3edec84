package value

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/cqlwire/frame"
)

// SerializedValues accumulates one statement's bound values, already
// wire-encoded, into a contiguous region.
//
// Values are appended either positionally or by name; the two modes cannot
// be mixed within one buffer, and the first named append locks the buffer
// into named mode. At most 65535 values fit, matching the request's 2-byte
// count field. A failed append rolls the buffer back to its previous length:
// the buffer never holds a partial element.
//
// Once built, the buffer is immutable from the network layer's point of
// view and can be retransmitted on retry without re-encoding anything.
type SerializedValues struct {
	buf   []byte
	count uint16
	named bool
}

// NewSerializedValues creates an empty buffer.
func NewSerializedValues() *SerializedValues {
	return &SerializedValues{}
}

// NewSerializedValuesWithCapacity creates an empty buffer with a
// preallocated byte region.
func NewSerializedValuesWithCapacity(capacity int) *SerializedValues {
	return &SerializedValues{buf: make([]byte, 0, capacity)}
}

// HasNames reports whether the buffer is in named mode.
func (s *SerializedValues) HasNames() bool {
	return s.named
}

// Len returns the number of values appended so far.
func (s *SerializedValues) Len() int {
	return int(s.count)
}

// IsEmpty reports whether no values have been appended.
func (s *SerializedValues) IsEmpty() bool {
	return s.count == 0
}

// Size returns the accumulated byte length, excluding the count field the
// wire form prepends.
func (s *SerializedValues) Size() int {
	return len(s.buf)
}

// AddValue serializes v and appends it positionally.
func (s *SerializedValues) AddValue(v any) error {
	if s.named {
		return ErrMixingNamedAndPositional
	}
	if s.count == math.MaxUint16 {
		return ErrTooManyValues
	}

	before := len(s.buf)
	fb := frame.Buffer{B: s.buf}
	if err := Serialize(v, &fb); err != nil {
		// Roll back: no partial element may remain.
		s.buf = fb.B[:before]
		return err
	}
	s.buf = fb.B
	s.count++

	return nil
}

// AddNamedValue serializes v and appends it under name. The first named
// append locks the buffer into named mode.
func (s *SerializedValues) AddNamedValue(name string, v any) error {
	if s.count > 0 && !s.named {
		return ErrMixingNamedAndPositional
	}
	s.named = true
	if s.count == math.MaxUint16 {
		return ErrTooManyValues
	}

	before := len(s.buf)
	fb := frame.Buffer{B: s.buf}
	if err := fb.AppendString(name); err != nil {
		s.buf = fb.B[:before]
		return fmt.Errorf("writing value name: %w", err)
	}
	if err := Serialize(v, &fb); err != nil {
		s.buf = fb.B[:before]
		return err
	}
	s.buf = fb.B
	s.count++

	return nil
}

// WriteToRequest emits the wire form: a 2-byte big-endian count followed by
// the accumulated bytes verbatim.
func (s *SerializedValues) WriteToRequest(buf *frame.Buffer) {
	buf.AppendUint16(s.count)
	buf.AppendBytes(s.buf)
}

// SerializedValuesFromFrame reconstructs a buffer from its wire form, e.g.
// when values arrive already serialized. The reconstructed buffer re-slices
// the reader's input rather than re-encoding it, so the input's backing
// array must outlive the returned buffer.
func SerializedValuesFromFrame(r *frame.Reader, named bool) (*SerializedValues, error) {
	count, err := r.ReadShort()
	if err != nil {
		return nil, err
	}

	begin := r.Bytes()
	for range count {
		if named {
			if _, err := r.ReadString(); err != nil {
				return nil, err
			}
		}
		if _, _, err := r.ReadBytesOpt(); err != nil {
			return nil, err
		}
	}

	used := len(begin) - r.Remaining()

	return &SerializedValues{
		buf:   begin[:used:used],
		count: count,
		named: named,
	}, nil
}

// RawValues returns a restartable sequence of the raw value slots, skipping
// names in named mode. Each range over the sequence re-walks the accumulated
// bytes from the start.
//
// The buffer's own invariant guarantees well-formed contents, so internal
// malformation is a bug, not an input error: it panics.
func (s *SerializedValues) RawValues() iter.Seq[frame.RawValue] {
	return func(yield func(frame.RawValue) bool) {
		r := frame.NewReader(s.buf)
		for r.Remaining() > 0 {
			if s.named {
				if _, err := r.ReadShortBytes(); err != nil {
					panic("value: corrupted serialized values: " + err.Error())
				}
			}
			v, err := r.ReadValue()
			if err != nil {
				panic("value: corrupted serialized values: " + err.Error())
			}
			if !yield(v) {
				return
			}
		}
	}
}

// NamedRawValues returns a restartable sequence of (name, value) pairs. The
// name is empty for every pair of a positional buffer. Panics on internal
// malformation, as RawValues does.
func (s *SerializedValues) NamedRawValues() iter.Seq2[string, frame.RawValue] {
	return func(yield func(string, frame.RawValue) bool) {
		r := frame.NewReader(s.buf)
		for range s.count {
			var name string
			if s.named {
				n, err := r.ReadString()
				if err != nil {
					panic("value: corrupted serialized values: " + err.Error())
				}
				name = n
			}
			v, err := r.ReadValue()
			if err != nil {
				panic("value: corrupted serialized values: " + err.Error())
			}
			if !yield(name, v) {
				return
			}
		}
	}
}
