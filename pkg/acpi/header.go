// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// HeaderSize is the size of the standard description table header.
const HeaderSize = 36

// Signature is the 4-character identifier of an ACPI table.
type Signature string

// Signatures of the tables built (or referenced) by this module.
const (
	SigAPIC Signature = "APIC"
	SigDSDT Signature = "DSDT"
	SigFACP Signature = "FACP"
	SigMCFG Signature = "MCFG"
	SigPPTT Signature = "PPTT"
	SigRHCT Signature = "RHCT"
	SigRQSC Signature = "RQSC"
	SigRSDT Signature = "RSDT"
	SigSPCR Signature = "SPCR"
	SigSRAT Signature = "SRAT"
	SigXSDT Signature = "XSDT"
)

// Bytes returns the signature as it is stored in a table header.
func (s Signature) Bytes() [4]byte {
	var ret [4]byte
	copy(ret[:], s)
	return ret
}

// TableHeader is the standard description table header which starts every
// ACPI table (except RSDP and FACS).
type TableHeader struct {
	Signature       [4]byte
	Length          uint32
	Revision        uint8
	Checksum        uint8
	OEMID           [6]byte
	OEMTableID      [8]byte
	OEMRevision     uint32
	CreatorID       [4]byte
	CreatorRevision uint32
}

var _ Structure = (*TableHeader)(nil)

// Encode implements Structure.
func (h *TableHeader) Encode(s Sink) {
	PutBytes(s, h.Signature[:])
	s.DWord(h.Length)
	s.Byte(h.Revision)
	s.Byte(h.Checksum)
	PutBytes(s, h.OEMID[:])
	PutBytes(s, h.OEMTableID[:])
	s.DWord(h.OEMRevision)
	PutBytes(s, h.CreatorID[:])
	s.DWord(h.CreatorRevision)
}

// OEM identifies the OEM which supplied a table.
type OEM struct {
	ID       [6]byte
	TableID  [8]byte
	Revision uint32
}

// NewOEM validates the identifiers and returns them in the table format.
// Identifiers shorter than the field are padded with NUL bytes.
//
// All the problems found are reported at once.
func NewOEM(id, tableID string, revision uint32) (OEM, error) {
	oem := OEM{Revision: revision}

	var result *multierror.Error
	if err := checkIdentifier("OEM ID", id, len(oem.ID)); err != nil {
		result = multierror.Append(result, err)
	}
	if err := checkIdentifier("OEM table ID", tableID, len(oem.TableID)); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return OEM{}, err
	}

	copy(oem.ID[:], id)
	copy(oem.TableID[:], tableID)
	return oem, nil
}

// MustOEM is the same as NewOEM, but panics on invalid identifiers.
func MustOEM(id, tableID string, revision uint32) OEM {
	oem, err := NewOEM(id, tableID, revision)
	if err != nil {
		panic(err)
	}
	return oem
}

func checkIdentifier(field, value string, maxLen int) error {
	if len(value) > maxLen {
		return &ErrInvalidIdentifier{Field: field, Value: value, Reason: fmt.Sprintf("longer than %d bytes", maxLen)}
	}
	for _, c := range []byte(value) {
		if c < 0x20 || c > 0x7e {
			return &ErrInvalidIdentifier{Field: field, Value: value, Reason: fmt.Sprintf("non-printable character 0x%02X", c)}
		}
	}
	return nil
}

// Creator identifies the tool which created a table.
type Creator struct {
	ID       [4]byte
	Revision uint32
}

// DefaultCreator returns the creator identity of tables built by this
// module.
func DefaultCreator() Creator {
	return Creator{
		ID:       [4]byte{'L', 'B', 'A', 'T'}, // LinuxBoot ACPI Tables
		Revision: 1,
	}
}
