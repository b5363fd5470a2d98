// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xsdt builds the Extended System Description Table, the list of
// 64-bit physical addresses of the other tables.
package xsdt

import (
	"io"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

const (
	// Revision is the XSDT revision.
	Revision = 1

	// EntrySize is the size of a table pointer.
	EntrySize = 8
)

type entry uint64

func (e entry) Encode(s acpi.Sink) {
	s.QWord(uint64(e))
}

// XSDT is an Extended System Description Table being built.
type XSDT struct {
	builder *acpi.Builder
	entries []uint64
}

var _ acpi.Structure = (*XSDT)(nil)

// New returns an XSDT without entries.
func New(oem acpi.OEM, creator acpi.Creator) *XSDT {
	return &XSDT{
		builder: acpi.NewBuilder(acpi.SigXSDT, Revision, oem, creator, nil),
	}
}

// AddEntry adds the physical address of a table.
func (x *XSDT) AddEntry(addr uint64) {
	x.builder.Append(entry(addr))
	x.entries = append(x.entries, addr)
}

// Entries returns the table addresses in the table order.
func (x *XSDT) Entries() []uint64 {
	result := make([]uint64, len(x.entries))
	copy(result, x.entries)
	return result
}

// Header returns the current table header.
func (x *XSDT) Header() acpi.TableHeader {
	return x.builder.Header()
}

// Encode implements acpi.Structure.
func (x *XSDT) Encode(s acpi.Sink) {
	x.builder.Encode(s)
}

// Bytes returns the table binary.
func (x *XSDT) Bytes() []byte {
	return acpi.Bytes(x.builder)
}

// WriteTo implements io.WriterTo.
func (x *XSDT) WriteTo(w io.Writer) (int64, error) {
	return x.builder.WriteTo(w)
}
