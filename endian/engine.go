// Package endian provides byte order utilities for wire-format encoding and
// decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine
// interface. This enables cleaner API design and avoids the extra allocation
// of the put-then-append pattern when building outgoing request buffers.
//
// # Basic Usage
//
// The CQL native protocol transmits every fixed-width integer in network
// (big-endian) byte order, so most users should use GetBigEndianEngine():
//
//	import "github.com/arloliu/cqlwire/endian"
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, length)
//
// GetLittleEndianEngine() is provided for tooling that inspects host-order
// data, but nothing on the wire path uses it.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations.
//
// This interface is satisfied by binary.BigEndian and binary.LittleEndian
// from the standard library, making it fully compatible with existing Go code
// while providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine.
//
// This is the engine used for every integer the protocol puts on the wire.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Only the byte at the lowest memory address matters.
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host already stores integers in the
// protocol's byte order.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}
