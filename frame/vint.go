package frame

import (
	"math/bits"
)

// The variable-length integer format follows Cassandra's VIntCoding: the
// value is zigzag-encoded, then the number of leading one bits in the first
// byte tells how many extra bytes follow, with the remaining payload bits
// packed big-endian.

func zigZagEncode(v int64) uint64 {
	return uint64((v >> 63) ^ (v << 1))
}

func zigZagDecode(n uint64) int64 {
	return int64((n >> 1) ^ -(n & 1))
}

// AppendVint appends the variable-length encoding of v to dst and returns the
// extended slice.
func AppendVint(dst []byte, v int64) []byte {
	enc := zigZagEncode(v)

	lead0 := bits.LeadingZeros64(enc)
	numBytes := (639 - lead0*9) >> 6

	// Values below 0x80 fit in a single byte with no continuation bits.
	if numBytes <= 1 {
		return append(dst, byte(enc))
	}

	extraBytes := numBytes - 1
	var tmp [9]byte
	for i := extraBytes; i >= 0; i-- {
		tmp[i] = byte(enc)
		enc >>= 8
	}
	tmp[0] |= byte(^(0xff >> uint(extraBytes)))

	return append(dst, tmp[:numBytes]...)
}

// decodeVint decodes one variable-length integer from the head of data,
// returning the value and the number of bytes consumed.
func decodeVint(data []byte) (int64, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrNotEnoughBytes
	}

	firstByte := data[0]
	if firstByte&0x80 == 0 {
		return zigZagDecode(uint64(firstByte)), 1, nil
	}

	numExtra := bits.LeadingZeros32(uint32(^firstByte)) - 24
	if len(data) < numExtra+1 {
		return 0, 0, ErrNotEnoughBytes
	}

	ret := uint64(firstByte & (0xff >> uint(numExtra)))
	for _, b := range data[1 : numExtra+1] {
		ret = ret<<8 | uint64(b)
	}

	return zigZagDecode(ret), numExtra + 1, nil
}
