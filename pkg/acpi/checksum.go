// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"encoding/binary"
)

// Sum8 returns the 8-bit wrapping sum of "b". A valid ACPI table has
// Sum8 equal to zero.
func Sum8(b []byte) uint8 {
	var sum uint8
	for _, v := range b {
		sum += v
	}
	return sum
}

var _ Sink = (*Checksum)(nil)

// Checksum is a running ACPI table checksum.
//
// It accumulates the sum of every byte of a table except the checksum
// byte itself. Value returns the byte which makes the sum of the whole
// table equal to zero (mod 256).
//
// Checksum also implements Sink, so a Structure may be replayed into it.
type Checksum struct {
	sum uint8
}

// Append folds "b" into the checksum.
func (c *Checksum) Append(b []byte) {
	c.sum += Sum8(b)
}

// Delete removes the contribution of bytes previously passed to Append.
// It is used when a field already accounted for changes its value: the old
// encoding is deleted and the new encoding is appended.
func (c *Checksum) Delete(b []byte) {
	c.sum -= Sum8(b)
}

// Add folds a precomputed byte sum (see Measure) into the checksum. It is
// equivalent to appending the bytes the sum was computed from.
func (c *Checksum) Add(sum uint8) {
	c.sum += sum
}

// Value returns the checksum byte.
func (c *Checksum) Value() uint8 {
	return 0 - c.sum
}

// Byte implements Sink.
func (c *Checksum) Byte(v uint8) {
	c.sum += v
}

// Word implements Sink.
func (c *Checksum) Word(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	c.Append(b[:])
}

// DWord implements Sink.
func (c *Checksum) DWord(v uint32) {
	c.Append(dword(v))
}

// QWord implements Sink.
func (c *Checksum) QWord(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	c.Append(b[:])
}

func dword(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}
