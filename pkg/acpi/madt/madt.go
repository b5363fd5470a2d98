// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package madt builds the Multiple APIC Description Table of a RISC-V
// system: per-hart interrupt controllers (RINTC), the IMSIC and APLICs.
package madt

import (
	"io"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

const (
	// Revision is the MADT revision.
	Revision = 1

	// HeaderSize is the size of the MADT header including the fixed fields.
	HeaderSize = acpi.HeaderSize + 8
)

// LocalInterruptController is the value of the "Local Interrupt
// Controller Address" field.
type LocalInterruptController uint32

// RISCV is the local interrupt controller of RISC-V systems. The address
// field must be ignored by OSPM on RISC-V.
const RISCV LocalInterruptController = 0

// Address returns a LocalInterruptController at the physical address "addr".
func Address(addr uint32) LocalInterruptController {
	return LocalInterruptController(addr)
}

type fields struct {
	localInterruptControllerAddress uint32
	flags                           uint32
}

func (f *fields) Encode(s acpi.Sink) {
	s.DWord(f.localInterruptControllerAddress)
	s.DWord(f.flags)
}

// MADT is a Multiple APIC Description Table being built.
type MADT struct {
	builder  *acpi.Builder
	hasIMSIC bool
}

var _ acpi.Structure = (*MADT)(nil)

// New returns an MADT without interrupt controller structures.
func New(oem acpi.OEM, creator acpi.Creator, lic LocalInterruptController) *MADT {
	f := &fields{
		localInterruptControllerAddress: uint32(lic),
	}
	return &MADT{
		builder: acpi.NewBuilder(acpi.SigAPIC, Revision, oem, creator, f),
	}
}

// AddRINTC adds a per-hart interrupt controller.
func (m *MADT) AddRINTC(rintc RINTC) {
	m.builder.Append(rintc)
}

// AddIMSIC adds the IMSIC structure. A table may contain only one IMSIC
// structure, another attempt panics with *acpi.ErrSingleton.
func (m *MADT) AddIMSIC(imsic IMSIC) {
	if m.hasIMSIC {
		panic(&acpi.ErrSingleton{Table: acpi.SigAPIC, Structure: "IMSIC"})
	}
	m.builder.Append(imsic)
	m.hasIMSIC = true
}

// AddAPLIC adds an APLIC structure.
func (m *MADT) AddAPLIC(aplic APLIC) {
	m.builder.Append(aplic)
}

// HasIMSIC returns true if the IMSIC structure was added.
func (m *MADT) HasIMSIC() bool {
	return m.hasIMSIC
}

// Header returns the current table header.
func (m *MADT) Header() acpi.TableHeader {
	return m.builder.Header()
}

// Entries returns the interrupt controller structures in the table order.
func (m *MADT) Entries() []acpi.Entry {
	return m.builder.Entries()
}

// Encode implements acpi.Structure.
func (m *MADT) Encode(s acpi.Sink) {
	m.builder.Encode(s)
}

// Bytes returns the table binary.
func (m *MADT) Bytes() []byte {
	return acpi.Bytes(m.builder)
}

// WriteTo implements io.WriterTo.
func (m *MADT) WriteTo(w io.Writer) (int64, error) {
	return m.builder.WriteTo(w)
}
