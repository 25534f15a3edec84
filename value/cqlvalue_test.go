package value

import (
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cqlwire/frame"
)

func serializeCqlValue(t *testing.T, c CqlValue) []byte {
	t.Helper()

	var buf frame.Buffer
	require.NoError(t, c.SerializeCQL(&buf))

	return buf.B
}

func TestCqlValueMatchesConcreteEncoding(t *testing.T) {
	u := uuid.MustParse("00112233-4455-6677-8899-aabbccddeeff")
	tu := CqlTimeuuidFromUUID(u)

	tests := []struct {
		name string
		dyn  CqlValue
		conc any
	}{
		{"ascii", NewAscii("abc"), "abc"},
		{"text", NewText("héllo"), "héllo"},
		{"bigint", NewBigInt(-5), int64(-5)},
		{"blob", NewBlob([]byte{1, 2}), []byte{1, 2}},
		{"boolean", NewBoolean(true), true},
		{"counter", NewCounter(3), Counter(3)},
		{"date", NewDate(CqlDate(7)), CqlDate(7)},
		{"decimal", NewDecimal(CqlDecimalFromBytesAndScale([]byte{0x7B}, 2)), CqlDecimalFromBytesAndScale([]byte{0x7B}, 2)},
		{"double", NewDouble(1.5), float64(1.5)},
		{"duration", NewDuration(CqlDuration{Months: 1}), CqlDuration{Months: 1}},
		{"float", NewFloat(1.5), float32(1.5)},
		{"inet", NewInet(net.IPv4(10, 0, 0, 1)), net.IPv4(10, 0, 0, 1)},
		{"int", NewInt(-7), int32(-7)},
		{"smallint", NewSmallInt(-7), int16(-7)},
		{"time", NewTime(CqlTime(5)), CqlTime(5)},
		{"timestamp", NewTimestamp(CqlTimestamp(5)), CqlTimestamp(5)},
		{"timeuuid", NewTimeuuid(tu), tu},
		{"tinyint", NewTinyInt(-7), int8(-7)},
		{"uuid", NewUuid(u), u},
		{"varint", NewVarint(CqlVarintFromBytes([]byte{0x2A})), CqlVarintFromBytes([]byte{0x2A})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, mustSerialize(t, tt.conc), serializeCqlValue(t, tt.dyn))
		})
	}
}

func TestCqlValueKind(t *testing.T) {
	require.Equal(t, KindEmpty, NewEmpty().Kind())
	require.Equal(t, KindInt, NewInt(1).Kind())
	require.Equal(t, KindVector, NewVector(nil).Kind())
}

func TestCqlValueEmpty(t *testing.T) {
	// An empty value is present with a zero-length payload, distinct from
	// NULL.
	require.Equal(t, []byte{0, 0, 0, 0}, serializeCqlValue(t, NewEmpty()))
}

func TestCqlValueList(t *testing.T) {
	got := serializeCqlValue(t, NewList([]CqlValue{NewInt(1), NewInt(2)}))
	require.Equal(t, mustSerialize(t, []int32{1, 2}), got)

	// Sets share the list wire shape.
	require.Equal(t, got, serializeCqlValue(t, NewSet([]CqlValue{NewInt(1), NewInt(2)})))
}

func TestCqlValueMap(t *testing.T) {
	got := serializeCqlValue(t, NewMap([]CqlValuePair{
		{Key: NewSmallInt(3), Value: NewTinyInt(4)},
	}))
	require.Equal(t, mustSerialize(t, map[int16]int8{3: 4}), got)
}

func TestCqlValueTuple(t *testing.T) {
	one := NewInt(1)
	a := NewText("a")
	got := serializeCqlValue(t, NewTuple([]*CqlValue{&one, nil, &a}))
	require.Equal(t, mustSerialize(t, Tuple{int32(1), nil, "a"}), got)
}

func TestCqlValueUdt(t *testing.T) {
	name := NewText("bob")
	age := NewInt(30)
	got := serializeCqlValue(t, NewUdt([]UdtField{
		{Name: "name", Value: &name},
		{Name: "age", Value: &age},
		{Name: "email", Value: nil},
	}))

	// Field names never reach the wire; a nil field encodes as NULL.
	type user struct {
		Name  string
		Age   int32
		Email *string
	}
	require.Equal(t, mustSerialize(t, user{Name: "bob", Age: 30}), got)
}

func TestCqlValueVectorRefused(t *testing.T) {
	var buf frame.Buffer
	err := NewVector([]CqlValue{NewFloat(1)}).SerializeCQL(&buf)
	require.ErrorIs(t, err, ErrVectorUnsupported)
	require.Zero(t, buf.Len())
}

func TestCqlValueThroughSerialize(t *testing.T) {
	// A CqlValue implements Value, so the central dispatcher accepts it.
	require.Equal(t, mustSerialize(t, int32(9)), mustSerialize(t, NewInt(9)))
}
