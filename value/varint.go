package value

import (
	"bytes"
	"math/big"

	"github.com/cespare/xxhash/v2"
	inf "gopkg.in/inf.v0"
)

// CqlVarint is the native CQL varint representation: a two's-complement
// big-endian byte sequence.
//
// Constructors perform no normalization; the stored bytes may carry leading
// zero bytes and go to the server exactly as provided (the server accepts
// non-normalized varints). Equal and Hash64, however, operate on the
// normalized form, so CqlVarintFromBytes([]byte{0x00, 0x01}) equals
// CqlVarintFromBytes([]byte{0x01}) even though their wire encodings differ.
type CqlVarint struct {
	digits []byte
}

// CqlVarintFromBytes creates a CqlVarint from a two's-complement big-endian
// byte sequence. The slice is retained, not copied.
func CqlVarintFromBytes(digits []byte) CqlVarint {
	return CqlVarint{digits: digits}
}

// CqlVarintFromBigInt converts a big.Int to its two's-complement form.
func CqlVarintFromBigInt(n *big.Int) CqlVarint {
	return CqlVarint{digits: bigIntToSignedBytesBE(n)}
}

// Bytes returns the raw, possibly non-normalized byte sequence that goes on
// the wire.
func (v CqlVarint) Bytes() []byte {
	return v.digits
}

// BigInt interprets the bytes as a signed big integer.
func (v CqlVarint) BigInt() *big.Int {
	return signedBytesBEToBigInt(v.digits)
}

// normalized returns the canonical slice used for equality and hashing:
// an empty or all-zero sequence is [0x00]; otherwise leading zero bytes are
// stripped, keeping one back when the next byte's high bit is set so the
// value still reads as positive.
func (v CqlVarint) normalized() []byte {
	digits := v.digits
	if len(digits) == 0 {
		return []byte{0}
	}

	nonZero := bytes.IndexFunc(digits, func(r rune) bool { return r != 0 })
	if nonZero < 0 {
		return []byte{0}
	}

	if nonZero > 0 {
		if digits[nonZero] > 0x7f {
			// Keep one zero so the high bit does not flip the sign.
			return digits[nonZero-1:]
		}

		return digits[nonZero:]
	}

	return digits
}

// Equal reports whether two varints are numerically equal, i.e. whether
// their normalized byte sequences match.
func (v CqlVarint) Equal(other CqlVarint) bool {
	return bytes.Equal(v.normalized(), other.normalized())
}

// Hash64 hashes the normalized byte sequence, so Equal values hash
// identically.
func (v CqlVarint) Hash64() uint64 {
	return xxhash.Sum64(v.normalized())
}

// CqlDecimal is the native CQL decimal representation: a varint unscaled
// value and a 32-bit scale. Equality is structural (varint bytes plus
// scale), not numeric.
type CqlDecimal struct {
	unscaled CqlVarint
	scale    int32
}

// CqlDecimalFromBytesAndScale creates a CqlDecimal from a two's-complement
// big-endian unscaled value and a scale.
func CqlDecimalFromBytesAndScale(unscaled []byte, scale int32) CqlDecimal {
	return CqlDecimal{unscaled: CqlVarintFromBytes(unscaled), scale: scale}
}

// CqlDecimalFromDec converts an inf.Dec. Scales outside int32 fail with
// ErrValueOverflow.
func CqlDecimalFromDec(d *inf.Dec) (CqlDecimal, error) {
	scale := int64(d.Scale())
	if scale > 1<<31-1 || scale < -(1<<31) {
		return CqlDecimal{}, ErrValueOverflow
	}

	return CqlDecimal{
		unscaled: CqlVarintFromBigInt(d.UnscaledBig()),
		scale:    int32(scale),
	}, nil
}

// Dec converts the decimal to an inf.Dec.
func (d CqlDecimal) Dec() *inf.Dec {
	return inf.NewDecBig(d.unscaled.BigInt(), inf.Scale(d.scale))
}

// BytesAndScale returns the raw unscaled bytes and the scale.
func (d CqlDecimal) BytesAndScale() ([]byte, int32) {
	return d.unscaled.Bytes(), d.scale
}

// Equal reports structural equality: same raw unscaled bytes, same scale.
func (d CqlDecimal) Equal(other CqlDecimal) bool {
	return d.scale == other.scale && bytes.Equal(d.unscaled.Bytes(), other.unscaled.Bytes())
}

// bigIntToSignedBytesBE converts a big.Int to minimal two's-complement
// big-endian bytes.
func bigIntToSignedBytesBE(n *big.Int) []byte {
	switch n.Sign() {
	case 0:
		return []byte{0}
	case 1:
		b := n.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}

		return b
	default:
		length := uint(n.BitLen()/8+1) * 8
		b := new(big.Int).Add(n, new(big.Int).Lsh(big.NewInt(1), length)).Bytes()
		// A most significant bit on a byte boundary leaves a redundant 0xff
		// byte in front; strip it.
		if len(b) >= 2 && b[0] == 0xff && b[1]&0x80 != 0 {
			b = b[1:]
		}

		return b
	}
}

// signedBytesBEToBigInt is the inverse of bigIntToSignedBytesBE and accepts
// non-normalized input.
func signedBytesBEToBigInt(b []byte) *big.Int {
	n := new(big.Int)
	if len(b) == 0 {
		return n
	}

	n.SetBytes(b)
	if b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}

	return n
}
