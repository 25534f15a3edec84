package value

import (
	"maps"
	"slices"

	"github.com/arloliu/cqlwire/frame"
)

// ValueList adapts a native aggregate into one statement's bound-value
// buffer.
//
// Implementations that already hold a buffer return it directly without
// copying; buffers are frequently re-submitted unchanged on retry, so the
// zero-copy path matters.
type ValueList interface {
	SerializedValues() (*SerializedValues, error)
}

// NoValues is the empty value list.
var NoValues ValueList = PositionalValues(nil)

// PositionalValues adapts an ordered, possibly heterogeneous sequence of
// values into a positional buffer.
type PositionalValues []any

func (p PositionalValues) SerializedValues() (*SerializedValues, error) {
	result := NewSerializedValues()
	for _, v := range p {
		if err := result.AddValue(v); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// NamedValues adapts a map into a named buffer: each key becomes the value's
// name. Keys are appended in sorted order so repeated serializations of the
// same map produce identical bytes, which batch retries rely on.
type NamedValues map[string]any

func (n NamedValues) SerializedValues() (*SerializedValues, error) {
	result := NewSerializedValues()
	for _, key := range slices.Sorted(maps.Keys(n)) {
		if err := result.AddNamedValue(key, n[key]); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// SerializedValues returns the buffer itself: adapting an already-built
// buffer is free.
func (s *SerializedValues) SerializedValues() (*SerializedValues, error) {
	return s, nil
}

// WriteValueList serializes vl and writes its wire form into buf.
func WriteValueList(vl ValueList, buf *frame.Buffer) error {
	sv, err := vl.SerializedValues()
	if err != nil {
		return err
	}
	sv.WriteToRequest(buf)

	return nil
}
