// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rhct

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/linuxboot/rvacpi/pkg/acpi"
	"github.com/linuxboot/rvacpi/pkg/acpi/pretty"
)

// NodeType is the type of an RHCT node.
type NodeType uint16

// Known node types.
const (
	NodeTypeISAString NodeType = 0
	NodeTypeHartInfo  NodeType = 0xffff
)

const nodeRevision = 1

const isaStringNodeHeaderSize = 8

// MaxISAStringLength is the length of the longest ISA string which fits
// into a node.
const MaxISAStringLength = math.MaxUint16 - isaStringNodeHeaderSize - 2

// HartInfoSize is the size of a hart info node.
const HartInfoSize = 16

// ISAStringNode describes the ISA string of harts.
type ISAStringNode struct {
	ISA string
}

// Len returns the size of the node.
func (n ISAStringNode) Len() uint16 {
	// type, length, revision, string length, string, NUL, padding to
	// 2-bytes alignment
	l := isaStringNodeHeaderSize + len(n.ISA) + 1
	if l%2 != 0 {
		l++
	}
	return uint16(l)
}

var _ acpi.Structure = ISAStringNode{}

// Encode implements acpi.Structure.
func (n ISAStringNode) Encode(s acpi.Sink) {
	l := n.Len()
	s.Word(uint16(NodeTypeISAString))
	s.Word(l)
	s.Word(nodeRevision)
	s.Word(uint16(len(n.ISA) + 1))
	acpi.PutBytes(s, []byte(n.ISA))
	s.Byte(0)
	if (len(n.ISA)+1)%2 != 0 {
		s.Byte(0)
	}
}

// HartInfo describes the capabilities of a hart. It references exactly
// one ISA string node.
type HartInfo struct {
	ProcessorUID uint32
	handle       ISAStringHandle
}

// NewHartInfo returns a hart info node of the hart with ACPI processor UID
// "processorUID" referencing the ISA string node "isa".
func NewHartInfo(processorUID uint32, isa ISAStringHandle) HartInfo {
	return HartInfo{
		ProcessorUID: processorUID,
		handle:       isa,
	}
}

// ISAString returns the handle of the referenced ISA string node.
func (hi HartInfo) ISAString() ISAStringHandle {
	return hi.handle
}

var _ acpi.Structure = HartInfo{}

// Encode implements acpi.Structure.
func (hi HartInfo) Encode(s acpi.Sink) {
	s.Word(uint16(NodeTypeHartInfo))
	s.Word(HartInfoSize)
	s.Word(nodeRevision)
	s.Word(1) // number of offsets
	s.DWord(hi.ProcessorUID)
	s.DWord(hi.handle.offset)
}

// PrettyString returns the content of the node in a human readable form.
func (hi HartInfo) PrettyString(depth uint, withHeader bool) string {
	var lines []string
	if withHeader {
		lines = append(lines, pretty.Header(depth, "Hart Info", hi))
	}
	lines = append(lines,
		pretty.SubValue(depth, "ACPI Processor UID", "", hi.ProcessorUID),
		pretty.SubValue(depth, "ISA String Offset", fmt.Sprintf("0x%X", hi.handle.offset), nil),
	)
	return strings.Join(lines, "\n")
}

// MarshalJSON implements json.Marshaler. The referenced ISA string node is
// reported by its offset.
func (hi HartInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ProcessorUID    uint32
		ISAStringOffset uint32
	}{
		ProcessorUID:    hi.ProcessorUID,
		ISAStringOffset: hi.handle.offset,
	})
}
