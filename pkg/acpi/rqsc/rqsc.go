// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rqsc builds the RISC-V Quality of Service Controller table,
// which describes the capacity and bandwidth controllers (CBQRI) of a
// system.
package rqsc

import (
	"io"

	"github.com/linuxboot/rvacpi/pkg/acpi"
	"github.com/linuxboot/rvacpi/pkg/acpi/gas"
)

const (
	// Revision is the RQSC revision.
	Revision = 1

	// HeaderSize is the size of the RQSC header including the controller count.
	HeaderSize = acpi.HeaderSize + 4

	// ControllerSize is the size of a QoS controller structure.
	ControllerSize = 32
)

// ControllerType identifies the register interface of a controller.
type ControllerType uint8

// Known controller types.
const (
	Capacity  ControllerType = 0
	Bandwidth ControllerType = 1
)

func (t ControllerType) String() string {
	switch t {
	case Capacity:
		return "capacity"
	case Bandwidth:
		return "bandwidth"
	}
	return "unknown"
}

// ResourceType is the type of resource a controller has control over.
type ResourceType uint8

// Known resource types.
const (
	Cache  ResourceType = 0
	Memory ResourceType = 1
)

func (t ResourceType) String() string {
	switch t {
	case Cache:
		return "cache"
	case Memory:
		return "memory"
	}
	return "unknown"
}

// Controller is a QoS controller structure.
type Controller struct {
	Type ControllerType

	// Register is the starting address of the QoS register interface.
	Register gas.GAS

	ResourceType ResourceType

	// ResourceID is the cache ID of the PPTT cache type structure the
	// controller is associated with if ResourceType is Cache. For Memory
	// it is the SRAT proximity domain, or 0 for UMA systems.
	ResourceID uint32

	// RCIDCount is the number of resource control IDs; zero means no
	// allocation capability.
	RCIDCount uint32

	// MCIDCount is the number of monitoring control IDs; zero means no
	// usage monitoring capability.
	MCIDCount uint32
}

var _ acpi.Structure = Controller{}

// Encode implements acpi.Structure.
func (c Controller) Encode(s acpi.Sink) {
	s.Byte(uint8(c.Type))
	s.Byte(0)
	s.Word(ControllerSize)
	c.Register.Encode(s)
	acpi.PutBytes(s, []byte{0, 0, 0})
	s.Byte(uint8(c.ResourceType))
	s.DWord(c.ResourceID)
	s.DWord(c.RCIDCount)
	s.DWord(c.MCIDCount)
}

type fields struct {
	controllers uint32
}

func (f *fields) Encode(s acpi.Sink) {
	s.DWord(f.controllers)
}

// RQSC is a RISC-V QoS Controller table being built.
type RQSC struct {
	builder *acpi.Builder
	fields  *fields
}

var _ acpi.Structure = (*RQSC)(nil)

// New returns an RQSC without controllers.
func New(oem acpi.OEM, creator acpi.Creator) *RQSC {
	f := &fields{}
	return &RQSC{
		builder: acpi.NewBuilder(acpi.SigRQSC, Revision, oem, creator, f),
		fields:  f,
	}
}

// AddController adds a QoS controller structure.
func (t *RQSC) AddController(c Controller) {
	t.builder.Append(c)
	t.builder.IncrementField(&t.fields.controllers)
}

// Controllers returns the amount of controllers in the table.
func (t *RQSC) Controllers() uint32 {
	return t.fields.controllers
}

// Header returns the current table header.
func (t *RQSC) Header() acpi.TableHeader {
	return t.builder.Header()
}

// Entries returns the controllers in the table order.
func (t *RQSC) Entries() []acpi.Entry {
	return t.builder.Entries()
}

// Encode implements acpi.Structure.
func (t *RQSC) Encode(s acpi.Sink) {
	t.builder.Encode(s)
}

// Bytes returns the table binary.
func (t *RQSC) Bytes() []byte {
	return acpi.Bytes(t.builder)
}

// WriteTo implements io.WriterTo.
func (t *RQSC) WriteTo(w io.Writer) (int64, error) {
	return t.builder.WriteTo(w)
}
