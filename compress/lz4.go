package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec implements lz4 block compression with the protocol's 4-byte
// big-endian uncompressed-length prefix, so the peer can allocate the
// exact output buffer before decompressing.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates a new lz4 codec.
//
// Returns:
//   - LZ4Codec: New lz4 codec instance
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses a frame body with lz4.
//
// The output starts with the uncompressed length as a 4-byte big-endian
// integer, followed by the lz4 block. An empty body compresses to the
// 4-byte zero prefix alone.
//
// Parameters:
//   - data: Frame body to compress
//
// Returns:
//   - []byte: Length-prefixed compressed body
//   - error: Compression error if any
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.BigEndian.PutUint32(dst, uint32(len(data)))

	// Get compressor from pool
	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, err
	}
	if n == 0 && len(data) > 0 {
		// CompressBlock reports incompressible input as a zero-length
		// result. The frame still has to be valid lz4, so fall back to a
		// single literal-only sequence.
		n = literalBlock(dst[4:], data)
	}

	return dst[:4+n], nil
}

// literalBlock encodes src as one lz4 sequence with no match part: a token
// carrying the literal length, the extension bytes for lengths >= 15, then
// the literals verbatim. dst must be at least CompressBlockBound(len(src))
// bytes.
func literalBlock(dst, src []byte) int {
	n := 0
	lit := len(src)
	if lit < 15 {
		dst[n] = byte(lit) << 4
		n++
	} else {
		dst[n] = 0xF0
		n++
		rem := lit - 15
		for rem >= 255 {
			dst[n] = 255
			n++
			rem -= 255
		}
		dst[n] = byte(rem)
		n++
	}
	n += copy(dst[n:], src)

	return n
}

// Decompress restores a frame body compressed by Compress.
//
// The 4-byte prefix sizes the output buffer exactly; a block that
// decompresses to a different length is rejected as corrupted.
//
// Parameters:
//   - data: Length-prefixed compressed body
//
// Returns:
//   - []byte: Decompressed frame body (nil if the prefix says zero)
//   - error: Decompression error if any
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("lz4 body too short: %d bytes", len(data))
	}

	uncompressedLen := binary.BigEndian.Uint32(data)
	if uncompressedLen == 0 {
		return nil, nil
	}

	buf := make([]byte, uncompressedLen)
	n, err := lz4.UncompressBlock(data[4:], buf)
	if err != nil {
		return nil, err
	}
	if n != int(uncompressedLen) {
		return nil, fmt.Errorf("lz4 length mismatch: prefix says %d, block holds %d", uncompressedLen, n)
	}

	return buf, nil
}
