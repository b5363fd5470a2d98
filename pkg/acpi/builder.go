// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"fmt"
	"io"
)

// Entry describes a structure appended to a table.
type Entry struct {
	// Offset is the position of the structure relative to the table start.
	Offset uint32

	// Length is the encoded length of the structure.
	Length uint32

	Structure Structure
}

// Builder builds an ACPI table one structure at a time.
//
// The header length and checksum are kept up to date after every call, so
// the table encoding sums to zero and has the length stated in the header
// at any moment. The checksum is updated incrementally: only the bytes
// which change are folded into it.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	header   TableHeader
	fixed    Structure
	checksum Checksum
	entries  []Entry
}

var _ Structure = (*Builder)(nil)

// NewBuilder returns a Builder of an empty table.
//
// "fixed" is the table-specific part of the header encoded right after the
// standard header, it may be nil. Fields of "fixed" may change later only
// through IncrementField.
func NewBuilder(sig Signature, revision uint8, oem OEM, creator Creator, fixed Structure) *Builder {
	b := &Builder{
		header: TableHeader{
			Signature:       sig.Bytes(),
			Length:          HeaderSize,
			Revision:        revision,
			OEMID:           oem.ID,
			OEMTableID:      oem.TableID,
			OEMRevision:     oem.Revision,
			CreatorID:       creator.ID,
			CreatorRevision: creator.Revision,
		},
		fixed: fixed,
	}
	if fixed != nil {
		length, _ := Measure(fixed)
		b.header.Length += length
	}

	// The checksum byte is zero at this point, so it does not contribute.
	b.header.Encode(&b.checksum)
	if fixed != nil {
		fixed.Encode(&b.checksum)
	}
	b.header.Checksum = b.checksum.Value()
	return b
}

// Append adds "st" to the end of the table and returns its offset relative
// to the table start.
func (b *Builder) Append(st Structure) uint32 {
	length, sum := Measure(st)
	offset := b.header.Length

	b.checksum.Delete(dword(b.header.Length))
	b.header.Length += length
	b.checksum.Append(dword(b.header.Length))
	b.checksum.Add(sum)
	b.header.Checksum = b.checksum.Value()

	b.entries = append(b.entries, Entry{Offset: offset, Length: length, Structure: st})
	return offset
}

// IncrementField increments a 32-bit field of the fixed header part (for
// example a structure counter) keeping the checksum valid. "field" must
// point into the "fixed" structure passed to NewBuilder.
func (b *Builder) IncrementField(field *uint32) {
	b.checksum.Delete(dword(*field))
	*field++
	b.checksum.Append(dword(*field))
	b.header.Checksum = b.checksum.Value()
}

// Header returns a copy of the current table header.
func (b *Builder) Header() TableHeader {
	return b.header
}

// Len returns the length of the table encoding.
func (b *Builder) Len() uint32 {
	return b.header.Length
}

// Entries returns the appended structures in the table order.
func (b *Builder) Entries() []Entry {
	result := make([]Entry, len(b.entries))
	copy(result, b.entries)
	return result
}

// Encode implements Structure. It writes the header, the fixed part and
// every appended structure in the order they were appended.
func (b *Builder) Encode(s Sink) {
	b.header.Encode(s)
	if b.fixed != nil {
		b.fixed.Encode(s)
	}
	for _, entry := range b.entries {
		entry.Structure.Encode(s)
	}
}

var _ io.WriterTo = (*Builder)(nil)

// WriteTo implements io.WriterTo.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(Bytes(b))
	if err != nil {
		return int64(n), fmt.Errorf("unable to write %s table: %w", string(b.header.Signature[:]), err)
	}
	return int64(n), nil
}
