// Package endian provides byte order utilities for the framing layers.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine interface so header and trailer fields can be
// read and appended through one value. Every wire format in this module
// (gzip trailer, zstd-style frame fields, LZ4 match offsets) is
// little-endian, so most call sites use GetLittleEndianEngine.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian, so the
// returned engines interoperate with any existing encoding/binary code.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
//
// The returned value is stateless and safe for concurrent use.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
//
// The returned value is stateless and safe for concurrent use.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
