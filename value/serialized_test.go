package value

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cqlwire/frame"
)

// brokenValue writes part of an element and then fails, to exercise the
// rollback path.
type brokenValue struct{}

var errBroken = errors.New("broken value")

func (brokenValue) SerializeCQL(buf *frame.Buffer) error {
	buf.AppendInt32(100)
	buf.AppendBytes([]byte{1, 2, 3})

	return errBroken
}

func TestSerializedValuesAddValue(t *testing.T) {
	sv := NewSerializedValues()
	require.True(t, sv.IsEmpty())
	require.False(t, sv.HasNames())

	require.NoError(t, sv.AddValue(int32(1)))
	require.NoError(t, sv.AddValue(nil))
	require.NoError(t, sv.AddValue(Unset{}))

	require.Equal(t, 3, sv.Len())
	require.False(t, sv.IsEmpty())
	require.Equal(t, 8+4+4, sv.Size())
}

func TestSerializedValuesWriteToRequest(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddValue(int32(1)))
	require.NoError(t, sv.AddValue("ab"))

	var buf frame.Buffer
	sv.WriteToRequest(&buf)

	want := []byte{
		0, 2, // value count
		0, 0, 0, 4, 0, 0, 0, 1,
		0, 0, 0, 2, 'a', 'b',
	}
	require.Equal(t, want, buf.B)
}

func TestSerializedValuesNamed(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddNamedValue("id", int32(9)))
	require.True(t, sv.HasNames())
	require.Equal(t, 1, sv.Len())

	var buf frame.Buffer
	sv.WriteToRequest(&buf)

	want := []byte{
		0, 1, // value count
		0, 2, 'i', 'd', // name
		0, 0, 0, 4, 0, 0, 0, 9,
	}
	require.Equal(t, want, buf.B)
}

func TestSerializedValuesMixingRejected(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddValue(int32(1)))
	require.ErrorIs(t, sv.AddNamedValue("x", int32(2)), ErrMixingNamedAndPositional)

	named := NewSerializedValues()
	require.NoError(t, named.AddNamedValue("x", int32(1)))
	require.ErrorIs(t, named.AddValue(int32(2)), ErrMixingNamedAndPositional)

	// The named flag is sticky: draining-to-empty does not exist, and the
	// failed positional append leaves the buffer intact.
	require.Equal(t, 1, named.Len())
	require.True(t, named.HasNames())
}

func TestSerializedValuesRollbackOnError(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddValue(int32(1)))
	sizeBefore := sv.Size()

	require.ErrorIs(t, sv.AddValue(brokenValue{}), errBroken)
	require.Equal(t, 1, sv.Len())
	require.Equal(t, sizeBefore, sv.Size())

	// The buffer remains usable and the partial bytes are gone.
	require.NoError(t, sv.AddValue(int32(2)))

	var buf frame.Buffer
	sv.WriteToRequest(&buf)
	want := []byte{
		0, 2,
		0, 0, 0, 4, 0, 0, 0, 1,
		0, 0, 0, 4, 0, 0, 0, 2,
	}
	require.Equal(t, want, buf.B)
}

func TestSerializedValuesNamedRollbackOnError(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddNamedValue("a", int32(1)))
	sizeBefore := sv.Size()

	require.ErrorIs(t, sv.AddNamedValue("b", brokenValue{}), errBroken)
	require.Equal(t, 1, sv.Len())
	require.Equal(t, sizeBefore, sv.Size())
}

func TestSerializedValuesUnsupportedValueRollsBack(t *testing.T) {
	sv := NewSerializedValues()
	require.ErrorIs(t, sv.AddValue(make(chan int)), ErrUnsupportedType)
	require.True(t, sv.IsEmpty())
	require.Zero(t, sv.Size())
}

func TestSerializedValuesCountCap(t *testing.T) {
	sv := NewSerializedValuesWithCapacity(4 * 65535)
	for range 65535 {
		require.NoError(t, sv.AddValue(nil))
	}
	require.Equal(t, 65535, sv.Len())

	// The 65536th value does not fit the 2-byte count field.
	require.ErrorIs(t, sv.AddValue(nil), ErrTooManyValues)
	require.Equal(t, 65535, sv.Len())
	require.Equal(t, 4*65535, sv.Size())
}

func TestSerializedValuesCapacityPreallocated(t *testing.T) {
	sv := NewSerializedValuesWithCapacity(64)
	require.True(t, sv.IsEmpty())
	require.NoError(t, sv.AddValue(int32(1)))
	require.Equal(t, 1, sv.Len())
}

func TestSerializedValuesFromFrame(t *testing.T) {
	orig := NewSerializedValues()
	require.NoError(t, orig.AddValue(int32(7)))
	require.NoError(t, orig.AddValue(nil))
	require.NoError(t, orig.AddValue("xy"))

	var buf frame.Buffer
	orig.WriteToRequest(&buf)

	parsed, err := SerializedValuesFromFrame(frame.NewReader(buf.B), false)
	require.NoError(t, err)
	require.Equal(t, orig.Len(), parsed.Len())
	require.Equal(t, orig.Size(), parsed.Size())
	require.False(t, parsed.HasNames())

	var out frame.Buffer
	parsed.WriteToRequest(&out)
	require.Equal(t, buf.B, out.B)
}

func TestSerializedValuesFromFrameNamed(t *testing.T) {
	orig := NewSerializedValues()
	require.NoError(t, orig.AddNamedValue("k", int64(5)))

	var buf frame.Buffer
	orig.WriteToRequest(&buf)

	parsed, err := SerializedValuesFromFrame(frame.NewReader(buf.B), true)
	require.NoError(t, err)
	require.True(t, parsed.HasNames())
	require.Equal(t, 1, parsed.Len())

	var out frame.Buffer
	parsed.WriteToRequest(&out)
	require.Equal(t, buf.B, out.B)
}

func TestSerializedValuesFromFrameTruncated(t *testing.T) {
	_, err := SerializedValuesFromFrame(frame.NewReader([]byte{0}), false)
	require.ErrorIs(t, err, frame.ErrNotEnoughBytes)

	// Count says one value, body is missing.
	_, err = SerializedValuesFromFrame(frame.NewReader([]byte{0, 1}), false)
	require.ErrorIs(t, err, frame.ErrNotEnoughBytes)
}

func TestSerializedValuesRawValues(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddValue([]byte{1, 2}))
	require.NoError(t, sv.AddValue(nil))
	require.NoError(t, sv.AddValue(Unset{}))

	var got []frame.RawValue
	for v := range sv.RawValues() {
		got = append(got, v)
	}

	require.Len(t, got, 3)
	require.Equal(t, []byte{1, 2}, got[0].Data)
	require.True(t, got[1].IsNull())
	require.True(t, got[2].IsUnset())

	// The sequence restarts from the beginning on every range.
	n := 0
	for range sv.RawValues() {
		n++
	}
	require.Equal(t, 3, n)
}

func TestSerializedValuesNamedRawValues(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddNamedValue("a", int32(1)))
	require.NoError(t, sv.AddNamedValue("b", nil))

	var names []string
	var vals []frame.RawValue
	for name, v := range sv.NamedRawValues() {
		names = append(names, name)
		vals = append(vals, v)
	}

	require.Equal(t, []string{"a", "b"}, names)
	require.Equal(t, []byte{0, 0, 0, 1}, vals[0].Data)
	require.True(t, vals[1].IsNull())
}

func TestSerializedValuesNamedRawValuesPositional(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddValue(int32(1)))

	for name, v := range sv.NamedRawValues() {
		require.Empty(t, name)
		require.Equal(t, []byte{0, 0, 0, 1}, v.Data)
	}
}

func TestSerializedValuesRawValuesEarlyBreak(t *testing.T) {
	sv := NewSerializedValues()
	require.NoError(t, sv.AddValue(int32(1)))
	require.NoError(t, sv.AddValue(int32(2)))

	n := 0
	for range sv.RawValues() {
		n++
		break
	}
	require.Equal(t, 1, n)
}
