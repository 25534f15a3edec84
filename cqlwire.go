// Package cqlwire implements client-side value encoding for the CQL native
// protocol: the binary representation of statement bind values that a driver
// writes into QUERY, EXECUTE and BATCH requests.
//
// Every value on the wire is length-prefixed with a 4-byte big-endian signed
// integer. A length of -1 marks a database NULL and -2 marks an UNSET bind
// marker; non-negative lengths are followed by exactly that many payload
// bytes.
//
// # Core Features
//
//   - Serialization of Go scalars, collections, tuples and struct-shaped
//     UDT values via a single Serialize entry point
//   - CQL-specific types (timeuuid, varint, decimal, date, time, duration,
//     counter) with the exact equality and ordering rules the database uses
//   - Reusable serialized-value buffers with NULL/UNSET support and a
//     65535-value cap, matching the protocol's unsigned 16-bit value count
//   - Positional and named value lists
//   - Streaming batch traversal that serializes one statement's values at
//     a time without materializing the whole batch
//   - Optional lz4 and snappy frame-body compression
//
// # Basic Usage
//
// Serializing a single value:
//
//	import "github.com/arloliu/cqlwire"
//
//	data, err := cqlwire.SerializeValue(int32(42))
//	// data == []byte{0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x2A}
//
// Serializing the bind values of a statement:
//
//	sv, err := cqlwire.SerializeValueList(cqlwire.PositionalValues{
//	    "Alice", int64(30), cqlwire.Unset{},
//	})
//
// Traversing a batch:
//
//	batch := cqlwire.BatchValuesOf(
//	    cqlwire.PositionalValues{int32(1)},
//	    cqlwire.PositionalValues{int32(2)},
//	)
//	it := batch.BatchValuesIter()
//	for {
//	    sv, ok, err := it.NextSerialized()
//	    if err != nil || !ok {
//	        break
//	    }
//	    // write sv into the request frame
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the value
// package, simplifying the most common use cases. For fine-grained control
// over frame buffers and batch iteration, use the value and frame packages
// directly.
package cqlwire

import (
	"github.com/arloliu/cqlwire/frame"
	"github.com/arloliu/cqlwire/internal/pool"
	"github.com/arloliu/cqlwire/value"
)

// Unset is the bind marker that leaves a column untouched.
type Unset = value.Unset

// Value is implemented by types that know their own CQL wire encoding.
type Value = value.Value

// PositionalValues serializes a slice of Go values in order.
type PositionalValues = value.PositionalValues

// NamedValues serializes a name-to-value map with deterministic ordering.
type NamedValues = value.NamedValues

// SerializedValues is a reusable buffer of already-encoded bind values.
type SerializedValues = value.SerializedValues

// ValueList is anything that can produce its serialized bind values.
type ValueList = value.ValueList

// BatchValues yields the value lists of a batch, one statement at a time.
type BatchValues = value.BatchValues

// SerializeValue encodes a single Go value into its length-prefixed wire
// form and returns the bytes.
//
// Parameters:
//   - v: The value to encode; see value.Serialize for the supported types
//
// Returns:
//   - []byte: The length prefix followed by the payload
//   - error: value.ErrUnsupportedType or an encoding failure
//
// Example:
//
//	data, err := cqlwire.SerializeValue("hello")
func SerializeValue(v any) ([]byte, error) {
	fb := pool.GetValueBuffer()
	defer pool.PutValueBuffer(fb)

	buf := &frame.Buffer{B: fb.B[:0]}
	if err := value.Serialize(v, buf); err != nil {
		return nil, err
	}
	fb.B = buf.B[:0]

	out := make([]byte, len(buf.B))
	copy(out, buf.B)

	return out, nil
}

// SerializeValueList runs a ValueList through serialization and returns the
// resulting buffer.
//
// Parameters:
//   - vl: The value list; PositionalValues, NamedValues, a *SerializedValues
//     passthrough, or any custom implementation
//
// Returns:
//   - *value.SerializedValues: The encoded bind values
//   - error: The first value that failed to encode
func SerializeValueList(vl ValueList) (*value.SerializedValues, error) {
	return vl.SerializedValues()
}

// SerializeBatch traverses a batch once and returns the concatenated wire
// forms of every statement's values, in order. Each statement contributes
// its 2-byte value count followed by its serialized values.
//
// Parameters:
//   - bv: The batch; its iterator is consumed by one full traversal
//
// Returns:
//   - []byte: The concatenated wire forms
//   - error: The first statement whose values failed to encode
func SerializeBatch(bv BatchValues) ([]byte, error) {
	fb := pool.GetRequestBuffer()
	defer pool.PutRequestBuffer(fb)

	buf := &frame.Buffer{B: fb.B[:0]}
	it := bv.BatchValuesIter()
	for {
		ok, err := it.WriteNextToRequest(buf)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	fb.B = buf.B[:0]

	out := make([]byte, len(buf.B))
	copy(out, buf.B)

	return out, nil
}

// BatchValuesOf wraps the given value lists as a restartable batch.
//
// Each call to BatchValuesIter on the result starts a fresh traversal from
// the first statement.
func BatchValuesOf(lists ...ValueList) BatchValues {
	return value.BatchValuesOf(lists...)
}

// CountBatchValues reports how many statements a batch holds by running one
// full traversal with per-statement skipping. The batch itself is left
// usable; counting consumes a fresh iterator.
func CountBatchValues(bv BatchValues) int {
	return value.CountBatchValues(bv.BatchValuesIter())
}
