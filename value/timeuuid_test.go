package value

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCqlTimeuuidParseAndString(t *testing.T) {
	const s = "00000000-0000-1000-8080-808080808080"

	tu, err := ParseCqlTimeuuid(s)
	require.NoError(t, err)
	require.Equal(t, s, tu.String())
	require.Equal(t, uuid.MustParse(s), tu.UUID())

	_, err = ParseCqlTimeuuid("not-a-uuid")
	require.Error(t, err)
}

func TestCqlTimeuuidFromBytes(t *testing.T) {
	b := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	tu, err := CqlTimeuuidFromBytes(b)
	require.NoError(t, err)
	require.Equal(t, b, tu[:])

	_, err = CqlTimeuuidFromBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestCqlTimeuuidVersionNibbleIgnored(t *testing.T) {
	// Two UUIDs differing only in the version nibble compare equal even
	// though their raw bytes differ.
	v1 := CqlTimeuuid(uuid.MustParse("00000000-0000-1000-8080-808080808080"))
	v4 := CqlTimeuuid(uuid.MustParse("00000000-0000-4000-8080-808080808080"))

	require.NotEqual(t, v1, v4)
	require.True(t, v1.Equal(v4))
	require.Equal(t, 0, v1.Compare(v4))
	require.Equal(t, v1.Hash64(), v4.Hash64())
}

func TestCqlTimeuuidTimestampOrdering(t *testing.T) {
	// The timestamp is split across time_low, time_mid and time_hi; a later
	// timestamp must order after an earlier one regardless of how the split
	// scatters the bytes.
	early := CqlTimeuuid(uuid.MustParse("ffffffff-ffff-1000-8080-808080808080"))
	late := CqlTimeuuid(uuid.MustParse("00000000-0000-1001-8080-808080808080"))

	require.Equal(t, -1, early.Compare(late))
	require.Equal(t, 1, late.Compare(early))
}

func TestCqlTimeuuidNodeSignedOrdering(t *testing.T) {
	// Same timestamp, so ordering falls through to the least significant
	// bytes, which compare as signed bytes: 0x80 (signed -128) is smaller
	// than 0x00.
	negative := CqlTimeuuid(uuid.MustParse("00000000-0000-1000-8000-000000000000"))
	zero := CqlTimeuuid(uuid.MustParse("00000000-0000-1000-0000-000000000000"))
	positive := CqlTimeuuid(uuid.MustParse("00000000-0000-1000-7f00-000000000000"))

	require.Equal(t, -1, negative.Compare(zero))
	require.Equal(t, -1, zero.Compare(positive))
	require.Equal(t, -1, negative.Compare(positive))
	require.Equal(t, 1, positive.Compare(negative))
}

func TestCqlTimeuuidCompareSelf(t *testing.T) {
	tu := CqlTimeuuid(uuid.MustParse("8e14e760-7fa8-11eb-bc66-000000000001"))
	require.Equal(t, 0, tu.Compare(tu))
	require.True(t, tu.Equal(tu))
}

func TestCqlTimeuuidHashConsistency(t *testing.T) {
	a := CqlTimeuuid(uuid.MustParse("8e14e760-7fa8-11eb-bc66-000000000001"))
	b := CqlTimeuuid(uuid.MustParse("8e14e760-7fa8-11eb-bc66-000000000002"))

	require.Equal(t, a.Hash64(), a.Hash64())
	require.NotEqual(t, a.Hash64(), b.Hash64())
}
