// Package value implements the client-side value-encoding engine for the CQL
// native protocol: it converts Go values into the protocol's length-prefixed
// binary representation and collections of such values into the bound-value
// section of a statement or batch request.
//
// Every encoded value starts with a 4-byte big-endian signed length, where
// length -1 denotes NULL, length -2 denotes UNSET and any non-negative length
// prefixes that many payload bytes. Serialize dispatches over native Go types
// and the protocol wrapper types defined here (CqlDate, CqlVarint,
// CqlTimeuuid, ...); custom types hook in by implementing Value.
//
// SerializedValues accumulates a statement's bound values, ValueList adapts
// native aggregates into that buffer, and BatchValues drives a restartable
// traversal over many value lists when building a batch request.
package value
