// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package acpi implements the common machinery to build ACPI tables
// incrementally: byte sinks, the running table checksum, the standard
// description table header and a generic table builder used by the
// table-specific packages (madt, rhct, rqsc, xsdt).
package acpi

import (
	"encoding/binary"
)

// Sink is a destination for the binary encoding of a Structure.
//
// All multi-byte values are encoded little-endian, in the order received.
type Sink interface {
	Byte(v uint8)
	Word(v uint16)
	DWord(v uint32)
	QWord(v uint64)
}

// PutBytes writes every byte of "b" into "s".
func PutBytes(s Sink, b []byte) {
	for _, v := range b {
		s.Byte(v)
	}
}

var _ Sink = (*Buffer)(nil)

// Buffer is a growable in-memory Sink.
type Buffer struct {
	b []byte
}

// Byte implements Sink.
func (buf *Buffer) Byte(v uint8) {
	buf.b = append(buf.b, v)
}

// Word implements Sink.
func (buf *Buffer) Word(v uint16) {
	buf.b = binary.LittleEndian.AppendUint16(buf.b, v)
}

// DWord implements Sink.
func (buf *Buffer) DWord(v uint32) {
	buf.b = binary.LittleEndian.AppendUint32(buf.b, v)
}

// QWord implements Sink.
func (buf *Buffer) QWord(v uint64) {
	buf.b = binary.LittleEndian.AppendUint64(buf.b, v)
}

// Bytes returns the bytes written so far. The slice aliases the buffer
// contents until the next write.
func (buf *Buffer) Bytes() []byte {
	return buf.b
}

// Len returns the amount of bytes written so far.
func (buf *Buffer) Len() int {
	return len(buf.b)
}

// Reset drops all written bytes.
func (buf *Buffer) Reset() {
	buf.b = buf.b[:0]
}

// meter only counts and sums the bytes it receives.
type meter struct {
	length uint32
	sum    uint8
}

func (m *meter) Byte(v uint8) {
	m.length++
	m.sum += v
}

func (m *meter) Word(v uint16) {
	m.Byte(uint8(v))
	m.Byte(uint8(v >> 8))
}

func (m *meter) DWord(v uint32) {
	m.Word(uint16(v))
	m.Word(uint16(v >> 16))
}

func (m *meter) QWord(v uint64) {
	m.DWord(uint32(v))
	m.DWord(uint32(v >> 32))
}
