package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	inf "gopkg.in/inf.v0"
)

func TestCqlVarintNormalizedEquality(t *testing.T) {
	tests := []struct {
		name  string
		a, b  []byte
		equal bool
	}{
		{"identical", []byte{0x01}, []byte{0x01}, true},
		{"leading zero stripped", []byte{0x00, 0x01}, []byte{0x01}, true},
		{"many leading zeros", []byte{0x00, 0x00, 0x00, 0x2A}, []byte{0x2A}, true},
		{"empty equals zero", nil, []byte{0x00}, true},
		{"all zeros equal zero", []byte{0x00, 0x00}, []byte{0x00}, true},
		{"sign-preserving zero kept", []byte{0x00, 0x80}, []byte{0x00, 0x80}, true},
		{"positive 128 vs negative 128", []byte{0x00, 0x80}, []byte{0x80}, false},
		{"different values", []byte{0x01}, []byte{0x02}, false},
		{"negative untouched", []byte{0xFF}, []byte{0xFF}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := CqlVarintFromBytes(tt.a)
			b := CqlVarintFromBytes(tt.b)
			require.Equal(t, tt.equal, a.Equal(b))
			require.Equal(t, tt.equal, b.Equal(a))
			if tt.equal {
				require.Equal(t, a.Hash64(), b.Hash64())
			}
		})
	}
}

func TestCqlVarintWirePreservesRawBytes(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x2A}
	v := CqlVarintFromBytes(raw)

	// Equal to the normalized form, but the wire bytes stay as given.
	require.True(t, v.Equal(CqlVarintFromBytes([]byte{0x2A})))
	require.Equal(t, raw, v.Bytes())
}

func TestCqlVarintBigIntRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 127, 128, -128, -129, 255, 256, -255, 1 << 40, -(1 << 40)} {
		v := CqlVarintFromBigInt(big.NewInt(n))
		require.Equal(t, n, v.BigInt().Int64(), "n=%d", n)
	}
}

func TestCqlVarintTwosComplementEncoding(t *testing.T) {
	tests := []struct {
		n    int64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x00, 0x80}},
		{-1, []byte{0xFF}},
		{-128, []byte{0x80}},
		{-129, []byte{0xFF, 0x7F}},
		{-256, []byte{0xFF, 0x00}},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, CqlVarintFromBigInt(big.NewInt(tt.n)).Bytes(), "n=%d", tt.n)
	}
}

func TestCqlVarintBigIntAcceptsNonNormalized(t *testing.T) {
	v := CqlVarintFromBytes([]byte{0x00, 0x00, 0xFF})
	require.Equal(t, int64(255), v.BigInt().Int64())

	require.Zero(t, CqlVarintFromBytes(nil).BigInt().Sign())
}

func TestCqlDecimalFromDec(t *testing.T) {
	d, err := CqlDecimalFromDec(inf.NewDec(12345, 3))
	require.NoError(t, err)

	unscaled, scale := d.BytesAndScale()
	require.Equal(t, []byte{0x30, 0x39}, unscaled)
	require.Equal(t, int32(3), scale)

	back := d.Dec()
	require.Equal(t, 0, back.Cmp(inf.NewDec(12345, 3)))
}

func TestCqlDecimalStructuralEquality(t *testing.T) {
	a := CqlDecimalFromBytesAndScale([]byte{0x01}, 2)
	b := CqlDecimalFromBytesAndScale([]byte{0x01}, 2)
	require.True(t, a.Equal(b))

	// Numerically equal but structurally different: 1e-2 vs 10e-3.
	c := CqlDecimalFromBytesAndScale([]byte{0x0A}, 3)
	require.False(t, a.Equal(c))

	// Same digits, different scale.
	d := CqlDecimalFromBytesAndScale([]byte{0x01}, 3)
	require.False(t, a.Equal(d))

	// Leading zeros are structural too.
	e := CqlDecimalFromBytesAndScale([]byte{0x00, 0x01}, 2)
	require.False(t, a.Equal(e))
}
