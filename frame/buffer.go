package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/cqlwire/endian"
)

// wire is the protocol byte order. Every fixed-width integer the protocol
// transmits is big-endian.
var wire = endian.GetBigEndianEngine()

// Buffer is an append-only byte buffer for building request bodies.
//
// It exposes exactly the primitives the value-encoding layer needs:
// big-endian fixed-width appends, protocol [short string] appends, and the
// reserve/patch pair used to backpatch composite length prefixes after their
// contents have been written.
//
// The zero value is ready to use.
type Buffer struct {
	// B is the underlying byte slice. It is exported so that owning layers
	// can hand the accumulated bytes to the network layer without a copy.
	B []byte
}

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{B: make([]byte, 0, capacity)}
}

// Len returns the number of bytes accumulated so far.
func (b *Buffer) Len() int {
	return len(b.B)
}

// Bytes returns the accumulated bytes.
func (b *Buffer) Bytes() []byte {
	return b.B
}

// Reset empties the buffer, retaining the allocated memory.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Truncate shrinks the buffer back to n bytes. It is used to roll back a
// partially written element after a failed append.
// Panics if n is negative or beyond the current length.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.B) {
		panic("frame: Truncate out of range")
	}
	b.B = b.B[:n]
}

// AppendByte appends a single byte.
func (b *Buffer) AppendByte(v byte) {
	b.B = append(b.B, v)
}

// AppendBytes appends raw bytes verbatim.
func (b *Buffer) AppendBytes(p []byte) {
	b.B = append(b.B, p...)
}

// AppendUint16 appends a big-endian [short].
func (b *Buffer) AppendUint16(v uint16) {
	b.B = wire.AppendUint16(b.B, v)
}

// AppendInt32 appends a big-endian [int].
func (b *Buffer) AppendInt32(v int32) {
	b.B = wire.AppendUint32(b.B, uint32(v))
}

// AppendUint32 appends a big-endian 32-bit unsigned integer.
func (b *Buffer) AppendUint32(v uint32) {
	b.B = wire.AppendUint32(b.B, v)
}

// AppendInt64 appends a big-endian [long].
func (b *Buffer) AppendInt64(v int64) {
	b.B = wire.AppendUint64(b.B, uint64(v))
}

// AppendString appends a protocol [string]: a 2-byte big-endian length
// followed by UTF-8 bytes. Strings longer than 65535 bytes do not fit the
// length field and are rejected.
func (b *Buffer) AppendString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string length %d exceeds maximum %d", len(s), math.MaxUint16)
	}

	b.B = wire.AppendUint16(b.B, uint16(len(s)))
	b.B = append(b.B, s...)

	return nil
}

// AppendVint appends a zigzag-encoded variable-length integer.
func (b *Buffer) AppendVint(v int64) {
	b.B = AppendVint(b.B, v)
}

// ReserveLength appends a 4-byte placeholder for a length prefix whose value
// is not known yet and returns its offset for a later PatchLength.
func (b *Buffer) ReserveLength() int {
	pos := len(b.B)
	b.B = append(b.B, 0, 0, 0, 0)

	return pos
}

// PatchLength overwrites a placeholder previously created by ReserveLength
// with the final big-endian value.
func (b *Buffer) PatchLength(pos int, v int32) {
	wire.PutUint32(b.B[pos:pos+4], uint32(v))
}
