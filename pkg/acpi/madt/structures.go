// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package madt

import (
	"github.com/linuxboot/rvacpi/pkg/acpi"
)

// Interrupt controller structure types.
const (
	TypeRINTC uint8 = 0x18
	TypeIMSIC uint8 = 0x19
	TypeAPLIC uint8 = 0x1a
)

// Sizes of the interrupt controller structures.
const (
	RINTCSize = 20
	IMSICSize = 16
	APLICSize = 38
)

const structureVersion = 1

// HartStatus is the "Flags" field of RINTC.
type HartStatus uint32

// Known hart statuses.
const (
	HartDisabled      HartStatus = 0
	HartEnabled       HartStatus = 1
	HartOnlineCapable HartStatus = 2
)

func (s HartStatus) String() string {
	switch s {
	case HartDisabled:
		return "disabled"
	case HartEnabled:
		return "enabled"
	case HartOnlineCapable:
		return "online-capable"
	}
	return "unknown"
}

// RINTC is the RISC-V Interrupt Controller structure. RISC-V platforms
// need to have a simple, per-hart interrupt controller available to
// supervisor mode.
type RINTC struct {
	Status       HartStatus
	HartID       uint64
	ProcessorUID uint32
}

// NewRINTC returns a RINTC of the hart "hartID".
func NewRINTC(status HartStatus, hartID uint64, processorUID uint32) RINTC {
	return RINTC{
		Status:       status,
		HartID:       hartID,
		ProcessorUID: processorUID,
	}
}

var _ acpi.Structure = RINTC{}

// Encode implements acpi.Structure.
func (r RINTC) Encode(s acpi.Sink) {
	s.Byte(TypeRINTC)
	s.Byte(RINTCSize)
	s.Byte(structureVersion)
	s.Byte(0)
	s.DWord(uint32(r.Status))
	s.QWord(r.HartID)
	s.DWord(r.ProcessorUID)
}

// IMSIC describes the Incoming MSI Controllers.
//
// Even though IMSIC is a per-processor device, there is only one IMSIC
// structure in the MADT, it provides the information common across
// processors. The per-processor information is provided by RINTC.
type IMSIC struct {
	// SupervisorInterruptIdentities is the amount of interrupt identities
	// supported by the supervisor mode interrupt file (63 to 2047).
	SupervisorInterruptIdentities uint16

	// GuestInterruptIdentities is the amount of interrupt identities
	// supported by the guest mode interrupt files (63 to 2047).
	GuestInterruptIdentities uint16

	// GuestIndexBits is the number of guest index bits in the MSI target address (0 to 7).
	GuestIndexBits uint8

	// HartIndexBits is the number of hart index bits in the MSI target address (0 to 15).
	HartIndexBits uint8

	// GroupIndexBits is the number of group index bits in the MSI target address (0 to 7).
	GroupIndexBits uint8

	// GroupIndexShift is the LSB of the group index bits in the MSI target address (0 to 55).
	GroupIndexShift uint8
}

var _ acpi.Structure = IMSIC{}

// Encode implements acpi.Structure.
func (i IMSIC) Encode(s acpi.Sink) {
	s.Byte(TypeIMSIC)
	s.Byte(IMSICSize)
	s.Byte(structureVersion)
	acpi.PutBytes(s, make([]byte, 5))
	s.Word(i.SupervisorInterruptIdentities)
	s.Word(i.GuestInterruptIdentities)
	s.Byte(i.GuestIndexBits)
	s.Byte(i.HartIndexBits)
	s.Byte(i.GroupIndexBits)
	s.Byte(i.GroupIndexShift)
}

// APLIC describes an Advanced Platform Level Interrupt Controller.
//
// In a machine without IMSICs every hart accepts wired interrupts from
// exactly one APLIC. With IMSICs the APLIC converts wired interrupts into
// MSIs.
type APLIC struct {
	ID         uint32
	HardwareID [8]byte

	// IDCs is the number of interrupt delivery controls. It is zero when
	// the APLIC forwards interrupts as MSIs.
	IDCs uint32

	GSIBase uint32
	Address uint64
	Size    uint32

	// Sources is the total amount of external interrupt sources.
	Sources uint16
}

var _ acpi.Structure = APLIC{}

// Encode implements acpi.Structure.
func (a APLIC) Encode(s acpi.Sink) {
	s.Byte(TypeAPLIC)
	s.Byte(APLICSize)
	s.Byte(structureVersion)
	s.Byte(0)
	s.DWord(a.ID)
	acpi.PutBytes(s, a.HardwareID[:])
	s.DWord(a.IDCs)
	s.DWord(a.GSIBase)
	s.QWord(a.Address)
	s.DWord(a.Size)
	s.Word(a.Sources)
}
