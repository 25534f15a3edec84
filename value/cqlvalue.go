package value

import (
	"fmt"
	"math"
	"net"

	"github.com/google/uuid"

	"github.com/arloliu/cqlwire/frame"
)

// CqlValueKind tags the runtime type of a CqlValue.
type CqlValueKind uint8

const (
	KindEmpty CqlValueKind = iota
	KindAscii
	KindBigInt
	KindBlob
	KindBoolean
	KindCounter
	KindDate
	KindDecimal
	KindDouble
	KindDuration
	KindFloat
	KindInet
	KindInt
	KindList
	KindMap
	KindSet
	KindSmallInt
	KindText
	KindTime
	KindTimestamp
	KindTimeuuid
	KindTinyInt
	KindTuple
	KindUdt
	KindUuid
	KindVarint
	KindVector
)

// CqlValue is a dynamically typed CQL value, used when the concrete Go type
// of a bound value is only known at runtime (for example when re-binding
// values decoded from a server response). It encodes identically to the
// corresponding concrete type: which representation a caller picks must not
// change the wire bytes.
type CqlValue struct {
	kind CqlValueKind
	v    any
}

// CqlValuePair is one key/value entry of a map value. Pairs are kept in
// order; the protocol writes them interleaved.
type CqlValuePair struct {
	Key   CqlValue
	Value CqlValue
}

// UdtField is one field of a user-defined-type value. A nil Value encodes
// the field as NULL.
type UdtField struct {
	Name  string
	Value *CqlValue
}

// Kind returns the runtime tag.
func (c CqlValue) Kind() CqlValueKind {
	return c.kind
}

func NewEmpty() CqlValue                    { return CqlValue{kind: KindEmpty} }
func NewAscii(s string) CqlValue            { return CqlValue{kind: KindAscii, v: s} }
func NewText(s string) CqlValue             { return CqlValue{kind: KindText, v: s} }
func NewBigInt(v int64) CqlValue            { return CqlValue{kind: KindBigInt, v: v} }
func NewBlob(b []byte) CqlValue             { return CqlValue{kind: KindBlob, v: b} }
func NewBoolean(b bool) CqlValue            { return CqlValue{kind: KindBoolean, v: b} }
func NewCounter(c Counter) CqlValue         { return CqlValue{kind: KindCounter, v: c} }
func NewDate(d CqlDate) CqlValue            { return CqlValue{kind: KindDate, v: d} }
func NewDecimal(d CqlDecimal) CqlValue      { return CqlValue{kind: KindDecimal, v: d} }
func NewDouble(f float64) CqlValue          { return CqlValue{kind: KindDouble, v: f} }
func NewDuration(d CqlDuration) CqlValue    { return CqlValue{kind: KindDuration, v: d} }
func NewFloat(f float32) CqlValue           { return CqlValue{kind: KindFloat, v: f} }
func NewInet(ip net.IP) CqlValue            { return CqlValue{kind: KindInet, v: ip} }
func NewInt(v int32) CqlValue               { return CqlValue{kind: KindInt, v: v} }
func NewList(elems []CqlValue) CqlValue     { return CqlValue{kind: KindList, v: elems} }
func NewMap(pairs []CqlValuePair) CqlValue  { return CqlValue{kind: KindMap, v: pairs} }
func NewSet(elems []CqlValue) CqlValue      { return CqlValue{kind: KindSet, v: elems} }
func NewSmallInt(v int16) CqlValue          { return CqlValue{kind: KindSmallInt, v: v} }
func NewTime(t CqlTime) CqlValue            { return CqlValue{kind: KindTime, v: t} }
func NewTimestamp(ts CqlTimestamp) CqlValue { return CqlValue{kind: KindTimestamp, v: ts} }
func NewTimeuuid(t CqlTimeuuid) CqlValue    { return CqlValue{kind: KindTimeuuid, v: t} }
func NewTinyInt(v int8) CqlValue            { return CqlValue{kind: KindTinyInt, v: v} }
func NewTuple(elems []*CqlValue) CqlValue   { return CqlValue{kind: KindTuple, v: elems} }
func NewUuid(u uuid.UUID) CqlValue          { return CqlValue{kind: KindUuid, v: u} }
func NewVarint(v CqlVarint) CqlValue        { return CqlValue{kind: KindVarint, v: v} }
func NewVector(elems []CqlValue) CqlValue   { return CqlValue{kind: KindVector, v: elems} }

// NewUdt builds a user-defined-type value. Fields must be in the order the
// type declares them; the wire encoding carries no field names.
func NewUdt(fields []UdtField) CqlValue {
	return CqlValue{kind: KindUdt, v: fields}
}

// SerializeCQL dispatches on the runtime tag. Lists and sets share one wire
// shape (count then elements); maps write interleaved pairs; tuples and UDTs
// share the fixed-arity shape with no count field.
func (c CqlValue) SerializeCQL(buf *frame.Buffer) error {
	switch c.kind {
	case KindEmpty:
		buf.AppendInt32(0)
		return nil
	case KindAscii, KindText:
		return serializeString(c.v.(string), buf)
	case KindBigInt:
		return Serialize(c.v.(int64), buf)
	case KindBlob:
		return serializeBytes(c.v.([]byte), buf)
	case KindBoolean:
		return Serialize(c.v.(bool), buf)
	case KindCounter:
		return c.v.(Counter).SerializeCQL(buf)
	case KindDate:
		return c.v.(CqlDate).SerializeCQL(buf)
	case KindDecimal:
		return c.v.(CqlDecimal).SerializeCQL(buf)
	case KindDouble:
		return Serialize(c.v.(float64), buf)
	case KindDuration:
		return c.v.(CqlDuration).SerializeCQL(buf)
	case KindFloat:
		return Serialize(c.v.(float32), buf)
	case KindInet:
		return serializeIP(c.v.(net.IP), buf)
	case KindInt:
		return Serialize(c.v.(int32), buf)
	case KindList, KindSet:
		return serializeCqlValueList(c.v.([]CqlValue), buf)
	case KindMap:
		return serializeCqlValueMap(c.v.([]CqlValuePair), buf)
	case KindSmallInt:
		return Serialize(c.v.(int16), buf)
	case KindTime:
		return c.v.(CqlTime).SerializeCQL(buf)
	case KindTimestamp:
		return c.v.(CqlTimestamp).SerializeCQL(buf)
	case KindTimeuuid:
		return c.v.(CqlTimeuuid).SerializeCQL(buf)
	case KindTinyInt:
		return Serialize(c.v.(int8), buf)
	case KindTuple:
		return serializeCqlValueTuple(c.v.([]*CqlValue), buf)
	case KindUdt:
		return serializeCqlValueUdt(c.v.([]UdtField), buf)
	case KindUuid:
		return Serialize(c.v.(uuid.UUID), buf)
	case KindVarint:
		return c.v.(CqlVarint).SerializeCQL(buf)
	case KindVector:
		return ErrVectorUnsupported
	default:
		return fmt.Errorf("%w: unknown CqlValue kind %d", ErrUnsupportedType, c.kind)
	}
}

func serializeCqlValueList(elems []CqlValue, buf *frame.Buffer) error {
	if len(elems) > math.MaxInt32 {
		return ErrValueTooBig
	}

	pos := buf.ReserveLength()
	buf.AppendInt32(int32(len(elems)))
	for _, e := range elems {
		if err := e.SerializeCQL(buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}

func serializeCqlValueMap(pairs []CqlValuePair, buf *frame.Buffer) error {
	if len(pairs) > math.MaxInt32 {
		return ErrValueTooBig
	}

	pos := buf.ReserveLength()
	buf.AppendInt32(int32(len(pairs)))
	for _, p := range pairs {
		if err := p.Key.SerializeCQL(buf); err != nil {
			return err
		}
		if err := p.Value.SerializeCQL(buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}

func serializeCqlValueTuple(elems []*CqlValue, buf *frame.Buffer) error {
	pos := buf.ReserveLength()
	for _, e := range elems {
		if e == nil {
			buf.AppendInt32(nullLength)
			continue
		}
		if err := e.SerializeCQL(buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}

// A UDT value is successive [bytes] values, one per field in declaration
// order, so it serializes the same way tuples do.
func serializeCqlValueUdt(fields []UdtField, buf *frame.Buffer) error {
	pos := buf.ReserveLength()
	for _, f := range fields {
		if f.Value == nil {
			buf.AppendInt32(nullLength)
			continue
		}
		if err := f.Value.SerializeCQL(buf); err != nil {
			return err
		}
	}

	return patchWritten(buf, pos)
}
