package compress

import (
	"github.com/klauspost/compress/snappy"
)

// SnappyCodec implements snappy block compression. The snappy block
// format embeds the uncompressed length, so no extra framing is needed.
type SnappyCodec struct{}

var _ Codec = SnappyCodec{}

// NewSnappyCodec creates a new snappy codec.
//
// Returns:
//   - SnappyCodec: New snappy codec instance
func NewSnappyCodec() SnappyCodec {
	return SnappyCodec{}
}

// Compress compresses a frame body using snappy block encoding.
//
// Parameters:
//   - data: Frame body to compress
//
// Returns:
//   - []byte: Compressed body (nil if input is empty)
//   - error: Always nil; kept for Codec interface symmetry
func (c SnappyCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Encode(nil, data), nil
}

// Decompress restores a snappy-compressed frame body.
//
// Parameters:
//   - data: Compressed body
//
// Returns:
//   - []byte: Decompressed frame body (nil if input is empty)
//   - error: snappy.ErrCorrupt or snappy.ErrTooLarge on bad input
func (c SnappyCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return snappy.Decode(nil, data)
}
