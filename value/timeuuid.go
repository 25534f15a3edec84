package value

import (
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// CqlTimeuuid is a time-ordered 128-bit identifier with the legacy
// Scylla/Cassandra comparison semantics, which the server applies to
// timeuuid clustering columns:
//
//   - the 8 most significant bytes are reassembled from time_low, time_mid
//     and the low nibble of time_hi_and_version (the version nibble is masked
//     off, so a non-v1 UUID compares the same way a v1 UUID would), and
//     compared first;
//   - on a tie the 8 least significant bytes are compared with the sign bit
//     of every byte flipped, making the comparison effectively signed.
//
// Compare, Equal and Hash64 all derive from these fields. The == operator
// compares raw bytes and does NOT match the legacy semantics; use Equal.
type CqlTimeuuid uuid.UUID

// CqlTimeuuidFromUUID wraps u without reinterpreting its bytes.
func CqlTimeuuidFromUUID(u uuid.UUID) CqlTimeuuid {
	return CqlTimeuuid(u)
}

// CqlTimeuuidFromBytes creates a CqlTimeuuid from a 16-byte slice.
func CqlTimeuuidFromBytes(b []byte) (CqlTimeuuid, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return CqlTimeuuid{}, err
	}

	return CqlTimeuuid(u), nil
}

// ParseCqlTimeuuid parses the canonical textual UUID form.
func ParseCqlTimeuuid(s string) (CqlTimeuuid, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return CqlTimeuuid{}, err
	}

	return CqlTimeuuid(u), nil
}

// UUID returns the wrapped UUID.
func (t CqlTimeuuid) UUID() uuid.UUID {
	return uuid.UUID(t)
}

// String returns the canonical textual form.
func (t CqlTimeuuid) String() string {
	return uuid.UUID(t).String()
}

// msb reassembles the 8 most significant bytes in the legacy comparison
// layout: time_low - time_mid - time_hi, with the version nibble masked off.
func (t CqlTimeuuid) msb() uint64 {
	return uint64(t[6]&0x0F)<<56 |
		uint64(t[7])<<48 |
		uint64(t[4])<<40 |
		uint64(t[5])<<32 |
		uint64(t[0])<<24 |
		uint64(t[1])<<16 |
		uint64(t[2])<<8 |
		uint64(t[3])
}

func (t CqlTimeuuid) lsb() uint64 {
	return uint64(t[8])<<56 |
		uint64(t[9])<<48 |
		uint64(t[10])<<40 |
		uint64(t[11])<<32 |
		uint64(t[12])<<24 |
		uint64(t[13])<<16 |
		uint64(t[14])<<8 |
		uint64(t[15])
}

// lsbSigned flips the sign bit of every byte so that an unsigned 64-bit
// comparison behaves like the per-byte signed comparison the server uses.
func (t CqlTimeuuid) lsbSigned() uint64 {
	return t.lsb() ^ 0x8080808080808080
}

// Compare orders two timeuuids with the legacy semantics, returning
// -1, 0 or 1.
func (t CqlTimeuuid) Compare(other CqlTimeuuid) int {
	a, b := t.msb(), other.msb()
	if a == b {
		a, b = t.lsbSigned(), other.lsbSigned()
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two timeuuids compare equal under the legacy
// semantics. Two values differing only in the version nibble are equal.
func (t CqlTimeuuid) Equal(other CqlTimeuuid) bool {
	return t.Compare(other) == 0
}

// Hash64 hashes the same fields Compare orders by, so equal values hash
// identically.
func (t CqlTimeuuid) Hash64() uint64 {
	var b [16]byte
	wireOrder.PutUint64(b[0:8], t.lsbSigned())
	wireOrder.PutUint64(b[8:16], t.msb())

	return xxhash.Sum64(b[:])
}
