package value

import (
	"fmt"
	"math"
	"math/big"
	"net"
	"net/netip"
	"reflect"
	"time"

	"github.com/google/uuid"
	inf "gopkg.in/inf.v0"

	"github.com/arloliu/cqlwire/endian"
	"github.com/arloliu/cqlwire/frame"
)

// wireOrder is the protocol byte order, shared by the hashing helpers.
var wireOrder = endian.GetBigEndianEngine()

// Value is the serialization contract implemented by every type that can be
// bound to a statement. SerializeCQL writes a 4-byte big-endian signed length
// prefix followed by exactly that many payload bytes, or one of the sentinel
// lengths (-1 NULL, -2 UNSET) with no payload.
type Value interface {
	SerializeCQL(buf *frame.Buffer) error
}

// nullLength and unsetLength are the protocol's reserved sentinel lengths.
// Payload lengths are always >= 0, so the sentinels can never collide with a
// present value.
const (
	nullLength  int32 = -1
	unsetLength int32 = -2
)

// Serialize encodes any supported Go value into buf.
//
// nil and nil pointers encode as NULL. Fixed-width integers encode with
// their own width; int and uint always encode as 8 bytes so the encoding
// does not depend on the platform. Slices encode as lists, maps as maps,
// byte arrays as raw bytes, structs as concatenated field encodings (the
// user-defined-type shape). Types implementing Value serialize themselves.
//
// Unsupported types fail with ErrUnsupportedType; payloads or element counts
// that do not fit the 32-bit length field fail with ErrValueTooBig.
func Serialize(v any, buf *frame.Buffer) error {
	switch t := v.(type) {
	case nil:
		buf.AppendInt32(nullLength)
		return nil
	case Value:
		return t.SerializeCQL(buf)
	case bool:
		buf.AppendInt32(1)
		if t {
			buf.AppendByte(0x01)
		} else {
			buf.AppendByte(0x00)
		}
		return nil
	case int8:
		buf.AppendInt32(1)
		buf.AppendByte(byte(t))
		return nil
	case uint8:
		buf.AppendInt32(1)
		buf.AppendByte(t)
		return nil
	case int16:
		buf.AppendInt32(2)
		buf.AppendUint16(uint16(t))
		return nil
	case uint16:
		buf.AppendInt32(2)
		buf.AppendUint16(t)
		return nil
	case int32:
		buf.AppendInt32(4)
		buf.AppendInt32(t)
		return nil
	case uint32:
		buf.AppendInt32(4)
		buf.AppendUint32(t)
		return nil
	case int64:
		buf.AppendInt32(8)
		buf.AppendInt64(t)
		return nil
	case uint64:
		buf.AppendInt32(8)
		buf.AppendInt64(int64(t))
		return nil
	case int:
		buf.AppendInt32(8)
		buf.AppendInt64(int64(t))
		return nil
	case uint:
		buf.AppendInt32(8)
		buf.AppendInt64(int64(t))
		return nil
	case float32:
		buf.AppendInt32(4)
		buf.AppendUint32(math.Float32bits(t))
		return nil
	case float64:
		buf.AppendInt32(8)
		buf.AppendInt64(int64(math.Float64bits(t)))
		return nil
	case string:
		return serializeString(t, buf)
	case []byte:
		return serializeBytes(t, buf)
	case net.IP:
		return serializeIP(t, buf)
	case netip.Addr:
		return serializeNetipAddr(t, buf)
	case uuid.UUID:
		buf.AppendInt32(16)
		buf.AppendBytes(t[:])
		return nil
	case time.Time:
		return CqlTimestampFromTime(t).SerializeCQL(buf)
	case *big.Int:
		if t == nil {
			buf.AppendInt32(nullLength)
			return nil
		}
		return CqlVarintFromBigInt(t).SerializeCQL(buf)
	case big.Int:
		return CqlVarintFromBigInt(&t).SerializeCQL(buf)
	case *inf.Dec:
		if t == nil {
			buf.AppendInt32(nullLength)
			return nil
		}
		d, err := CqlDecimalFromDec(t)
		if err != nil {
			return err
		}
		return d.SerializeCQL(buf)
	default:
		return serializeReflect(reflect.ValueOf(v), buf)
	}
}

// serializeReflect handles the aggregate shapes a type switch cannot cover:
// pointers, slices, arrays, maps and structs of arbitrary element types.
// This mirrors how the protocol treats aggregates: slices are lists, maps
// are maps, byte arrays are raw payloads, and structs are concatenated field
// encodings.
func serializeReflect(rv reflect.Value, buf *frame.Buffer) error {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			buf.AppendInt32(nullLength)
			return nil
		}

		return Serialize(rv.Elem().Interface(), buf)
	case reflect.Slice:
		if rv.IsNil() {
			buf.AppendInt32(nullLength)
			return nil
		}

		return serializeReflectList(rv, buf)
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return serializeBytes(reflectArrayBytes(rv), buf)
		}

		return serializeReflectList(rv, buf)
	case reflect.Map:
		if rv.IsNil() {
			buf.AppendInt32(nullLength)
			return nil
		}

		return serializeReflectMap(rv, buf)
	case reflect.Struct:
		return serializeReflectStruct(rv, buf)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}
}

func reflectArrayBytes(rv reflect.Value) []byte {
	p := make([]byte, rv.Len())
	reflect.Copy(reflect.ValueOf(p), rv)

	return p
}

func serializeString(s string, buf *frame.Buffer) error {
	if len(s) > math.MaxInt32 {
		return ErrValueTooBig
	}

	buf.AppendInt32(int32(len(s)))
	buf.AppendBytes([]byte(s))

	return nil
}

func serializeBytes(p []byte, buf *frame.Buffer) error {
	if len(p) > math.MaxInt32 {
		return ErrValueTooBig
	}

	buf.AppendInt32(int32(len(p)))
	buf.AppendBytes(p)

	return nil
}

func serializeIP(ip net.IP, buf *frame.Buffer) error {
	if v4 := ip.To4(); v4 != nil {
		buf.AppendInt32(4)
		buf.AppendBytes(v4)

		return nil
	}
	if v6 := ip.To16(); v6 != nil {
		buf.AppendInt32(16)
		buf.AppendBytes(v6)

		return nil
	}

	return fmt.Errorf("%w: net.IP of length %d", ErrUnsupportedType, len(ip))
}

func serializeNetipAddr(a netip.Addr, buf *frame.Buffer) error {
	if !a.IsValid() {
		return fmt.Errorf("%w: zero netip.Addr", ErrUnsupportedType)
	}
	a = a.Unmap()
	if a.Is4() {
		b := a.As4()
		buf.AppendInt32(4)
		buf.AppendBytes(b[:])

		return nil
	}

	b := a.As16()
	buf.AppendInt32(16)
	buf.AppendBytes(b[:])

	return nil
}

// reserve/patch: composite encodings reserve the 4-byte total length, write
// their contents, then backpatch the placeholder with the bytes written.

func serializeReflectList(rv reflect.Value, buf *frame.Buffer) error {
	n := rv.Len()
	if n > math.MaxInt32 {
		return ErrValueTooBig
	}

	pos := buf.ReserveLength()
	buf.AppendInt32(int32(n))
	for i := range n {
		if err := Serialize(rv.Index(i).Interface(), buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}

func serializeReflectMap(rv reflect.Value, buf *frame.Buffer) error {
	n := rv.Len()
	if n > math.MaxInt32 {
		return ErrValueTooBig
	}

	pos := buf.ReserveLength()
	buf.AppendInt32(int32(n))
	it := rv.MapRange()
	for it.Next() {
		if err := Serialize(it.Key().Interface(), buf); err != nil {
			return err
		}
		if err := Serialize(it.Value().Interface(), buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}

// serializeReflectStruct writes the user-defined-type shape: successive
// field encodings in declaration order, no count field.
func serializeReflectStruct(rv reflect.Value, buf *frame.Buffer) error {
	pos := buf.ReserveLength()
	t := rv.Type()
	for i := range t.NumField() {
		if !t.Field(i).IsExported() {
			continue
		}
		if err := Serialize(rv.Field(i).Interface(), buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}

// serializeTupleElems writes the fixed-arity composite shape: concatenated
// element encodings, no count field, since arity is fixed by the type.
func serializeTupleElems(elems []any, buf *frame.Buffer) error {
	pos := buf.ReserveLength()
	for _, e := range elems {
		if err := Serialize(e, buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}

func patchWritten(buf *frame.Buffer, pos int) error {
	written := buf.Len() - pos - 4
	if written > math.MaxInt32 {
		return ErrValueTooBig
	}
	buf.PatchLength(pos, int32(written))

	return nil
}

// Tuple is a fixed-arity heterogeneous composite. Unlike a list it writes no
// element count: the arity is fixed by the statement's tuple type, so only
// the concatenated element encodings follow the total length.
type Tuple []any

func (t Tuple) SerializeCQL(buf *frame.Buffer) error {
	return serializeTupleElems(t, buf)
}

func (Unset) SerializeCQL(buf *frame.Buffer) error {
	buf.AppendInt32(unsetLength)

	return nil
}

func (c Counter) SerializeCQL(buf *frame.Buffer) error {
	buf.AppendInt32(8)
	buf.AppendInt64(int64(c))

	return nil
}

// SerializeCQL writes the set value, or the UNSET sentinel when unset. An
// unset value never degrades to NULL: NULL would overwrite the column.
func (m MaybeUnset[V]) SerializeCQL(buf *frame.Buffer) error {
	if !m.Set {
		return Unset{}.SerializeCQL(buf)
	}

	return Serialize(m.Value, buf)
}

func (d CqlDate) SerializeCQL(buf *frame.Buffer) error {
	buf.AppendInt32(4)
	buf.AppendUint32(uint32(d))

	return nil
}

func (ts CqlTimestamp) SerializeCQL(buf *frame.Buffer) error {
	buf.AppendInt32(8)
	buf.AppendInt64(int64(ts))

	return nil
}

func (t CqlTime) SerializeCQL(buf *frame.Buffer) error {
	buf.AppendInt32(8)
	buf.AppendInt64(int64(t))

	return nil
}

// SerializeCQL writes the total byte length, then the three vint-encoded
// components in months, days, nanoseconds order.
func (d CqlDuration) SerializeCQL(buf *frame.Buffer) error {
	pos := buf.ReserveLength()
	buf.AppendVint(int64(d.Months))
	buf.AppendVint(int64(d.Days))
	buf.AppendVint(d.Nanoseconds)

	return patchWritten(buf, pos)
}

func (t CqlTimeuuid) SerializeCQL(buf *frame.Buffer) error {
	buf.AppendInt32(16)
	buf.AppendBytes(t[:])

	return nil
}

// SerializeCQL writes the raw byte sequence unchanged; normalization applies
// only to equality and hashing, never to the wire form.
func (v CqlVarint) SerializeCQL(buf *frame.Buffer) error {
	if len(v.digits) > math.MaxInt32 {
		return ErrValueTooBig
	}

	buf.AppendInt32(int32(len(v.digits)))
	buf.AppendBytes(v.digits)

	return nil
}

func (d CqlDecimal) SerializeCQL(buf *frame.Buffer) error {
	unscaled := d.unscaled.Bytes()
	if len(unscaled) > math.MaxInt32-4 {
		return ErrValueTooBig
	}

	buf.AppendInt32(int32(len(unscaled)) + 4)
	buf.AppendInt32(d.scale)
	buf.AppendBytes(unscaled)

	return nil
}
