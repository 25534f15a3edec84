// Package frame implements the primitive byte-level codec shared by every
// request and response body: an append-only write buffer with big-endian
// fixed-width writers and two-phase (reserve then backpatch) length prefixes,
// a fallible reader for the same primitives, and the variable-length integer
// encoding used by the duration type.
//
// Higher layers never touch encoding/binary directly; they compose these
// primitives. The write side is infallible except for protocol-short fields,
// whose payloads are capped at 65535 bytes. The read side consumes untrusted
// input and reports malformed bytes as errors, never panics.
package frame
