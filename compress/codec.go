// Package compress implements the body compression algorithms the CQL
// native protocol can negotiate during connection startup: lz4 and snappy.
//
// Compression applies to whole frame bodies, after the value-encoding layer
// has produced them; the codecs here are byte-in/byte-out and know nothing
// about the value layout. The lz4 codec carries the protocol's required
// 4-byte big-endian uncompressed-length prefix; snappy's block format embeds
// the length itself.
package compress

// Algorithm names a negotiable compression algorithm, using the identifiers
// the server advertises in its SUPPORTED message.
type Algorithm string

const (
	// None disables body compression.
	None Algorithm = ""
	// LZ4 is the lz4 block algorithm.
	LZ4 Algorithm = "lz4"
	// Snappy is the snappy block algorithm.
	Snappy Algorithm = "snappy"
)

// Compressor compresses a frame body.
//
// Memory management:
//   - Returned slices are newly allocated and owned by the caller
//   - Input slices are not modified
//   - Internal scratch buffers may be reused for efficiency
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a frame body previously compressed with the same
// algorithm. Corrupted or mismatched input is reported as an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions; connections negotiate one codec and use
// it for every frame in both directions.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for a negotiated algorithm.
func NewCodec(algo Algorithm) (Codec, bool) {
	switch algo {
	case None:
		return NoopCodec{}, true
	case LZ4:
		return NewLZ4Codec(), true
	case Snappy:
		return NewSnappyCodec(), true
	default:
		return nil, false
	}
}
