// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gas implements the ACPI Generic Address Structure.
package gas

import (
	"github.com/linuxboot/rvacpi/pkg/acpi"
)

// Size is the encoded size of GAS.
const Size = 12

// AddressSpace is the address space where the register exists.
type AddressSpace uint8

// See "Table 5.1: Generic Address Structure (GAS)" of the ACPI specification.
const (
	SystemMemory             AddressSpace = 0x00
	SystemIO                 AddressSpace = 0x01
	PCIConfig                AddressSpace = 0x02
	EmbeddedController       AddressSpace = 0x03
	SMBus                    AddressSpace = 0x04
	SystemCMOS               AddressSpace = 0x05
	PCIBarTarget             AddressSpace = 0x06
	IPMI                     AddressSpace = 0x07
	GeneralPurposeIO         AddressSpace = 0x08
	GenericSerialBus         AddressSpace = 0x09
	PlatformCommChannel      AddressSpace = 0x0a
	PlatformRuntimeMechanism AddressSpace = 0x0b
	FunctionalFixedHardware  AddressSpace = 0x7f
)

// AccessSize is the access width of the register.
type AccessSize uint8

// Known access sizes.
const (
	UndefinedAccess AccessSize = iota
	ByteAccess
	WordAccess
	DwordAccess
	QwordAccess
)

// GAS describes the location of a register.
type GAS struct {
	AddressSpace AddressSpace
	BitWidth     uint8
	BitOffset    uint8
	AccessSize   AccessSize
	Address      uint64
}

// New returns a GAS.
func New(space AddressSpace, bitWidth, bitOffset uint8, accessSize AccessSize, address uint64) GAS {
	return GAS{
		AddressSpace: space,
		BitWidth:     bitWidth,
		BitOffset:    bitOffset,
		AccessSize:   accessSize,
		Address:      address,
	}
}

var _ acpi.Structure = GAS{}

// Encode implements acpi.Structure.
func (g GAS) Encode(s acpi.Sink) {
	s.Byte(uint8(g.AddressSpace))
	s.Byte(g.BitWidth)
	s.Byte(g.BitOffset)
	s.Byte(uint8(g.AccessSize))
	s.QWord(g.Address)
}
