// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rhct builds the RISC-V Hart Capabilities Table.
//
// The table is an array of nodes: ISA string nodes, and hart info nodes
// which reference them by their offset within the table. If all harts have
// the same ISA string, a single ISA string node can be referenced by every
// hart info node.
//
// Nodes are appended right after the header, so the node array offset
// stored in the table is always HeaderSize. There is no way to place the
// array elsewhere.
package rhct

import (
	"io"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

const (
	// Revision is the RHCT revision.
	Revision = 1

	// HeaderSize is the size of the RHCT header including the fixed
	// fields. The node array starts right after it.
	HeaderSize = acpi.HeaderSize + 20
)

type fields struct {
	timebaseFrequency uint64
	nodes             uint32
	nodeArrayOffset   uint32
}

func (f *fields) Encode(s acpi.Sink) {
	s.DWord(0) // reserved
	s.QWord(f.timebaseFrequency)
	s.DWord(f.nodes)
	s.DWord(f.nodeArrayOffset)
}

// RHCT is a RISC-V Hart Capabilities Table being built.
type RHCT struct {
	builder *acpi.Builder
	fields  *fields
}

var _ acpi.Structure = (*RHCT)(nil)

// ISAStringHandle references an ISA string node of a table. It is the
// offset of the node relative to the table start.
type ISAStringHandle struct {
	table  *RHCT
	offset uint32
}

// Offset returns the offset of the referenced node relative to the table start.
func (h ISAStringHandle) Offset() uint32 {
	return h.offset
}

// New returns an RHCT without nodes. "timebaseFrequency" is the frequency
// of the system counter (the "time" CSR) in Hz. The node array offset is
// set to HeaderSize.
func New(oem acpi.OEM, creator acpi.Creator, timebaseFrequency uint64) *RHCT {
	f := &fields{
		timebaseFrequency: timebaseFrequency,
		nodeArrayOffset:   HeaderSize,
	}
	return &RHCT{
		builder: acpi.NewBuilder(acpi.SigRHCT, Revision, oem, creator, f),
		fields:  f,
	}
}

// AddISAString adds an ISA string node and returns the handle to reference
// it from hart info nodes. It panics with *acpi.ErrISAStringTooLong if the
// string does not fit into a node.
func (t *RHCT) AddISAString(isa string) ISAStringHandle {
	if len(isa) > MaxISAStringLength {
		panic(&acpi.ErrISAStringTooLong{Length: len(isa), Max: MaxISAStringLength})
	}
	offset := t.add(ISAStringNode{ISA: isa})
	return ISAStringHandle{table: t, offset: offset}
}

// AddHartInfo adds a hart info node. The ISA string handle of the node must
// be returned by this table, otherwise AddHartInfo panics with
// *acpi.ErrForeignHandle.
func (t *RHCT) AddHartInfo(hi HartInfo) {
	if hi.handle.table != t {
		panic(&acpi.ErrForeignHandle{Table: acpi.SigRHCT, Offset: hi.handle.offset})
	}
	t.add(hi)
}

func (t *RHCT) add(node acpi.Structure) uint32 {
	offset := t.builder.Append(node)
	t.builder.IncrementField(&t.fields.nodes)
	return offset
}

// Nodes returns the amount of nodes in the table.
func (t *RHCT) Nodes() uint32 {
	return t.fields.nodes
}

// Header returns the current table header.
func (t *RHCT) Header() acpi.TableHeader {
	return t.builder.Header()
}

// Entries returns the nodes in the table order.
func (t *RHCT) Entries() []acpi.Entry {
	return t.builder.Entries()
}

// Encode implements acpi.Structure.
func (t *RHCT) Encode(s acpi.Sink) {
	t.builder.Encode(s)
}

// Bytes returns the table binary.
func (t *RHCT) Bytes() []byte {
	return acpi.Bytes(t.builder)
}

// WriteTo implements io.WriterTo.
func (t *RHCT) WriteTo(w io.Writer) (int64, error) {
	return t.builder.WriteTo(w)
}
