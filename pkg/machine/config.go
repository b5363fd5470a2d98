// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package machine describes a RISC-V machine and builds the ACPI tables
// describing it.
package machine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Config is a machine description.
type Config struct {
	OEM OEM `json:"oem"`

	// TimebaseFrequency is the frequency of the "time" CSR in Hz.
	TimebaseFrequency uint64 `json:"timebase_frequency"`

	// LocalInterruptController is the 32-bit physical address of the
	// local interrupt controllers, zero on RISC-V.
	LocalInterruptController uint32 `json:"local_interrupt_controller,omitempty"`

	Harts          []Hart          `json:"harts"`
	IMSIC          *IMSIC          `json:"imsic,omitempty"`
	APLICs         []APLIC         `json:"aplics,omitempty"`
	QoSControllers []QoSController `json:"qos_controllers,omitempty"`
}

// OEM is the OEM identity stamped into every table.
type OEM struct {
	ID       string `json:"id"`
	TableID  string `json:"table_id"`
	Revision uint32 `json:"revision"`
}

// Hart is a single hardware thread.
type Hart struct {
	HartID       uint64 `json:"hart_id"`
	ProcessorUID uint32 `json:"uid"`

	// Status is one of "enabled" (the default), "disabled" and
	// "online-capable".
	Status string `json:"status,omitempty"`

	// ISA is the ISA string of the hart, for example "rv64imafdc".
	ISA string `json:"isa"`
}

// IMSIC is the common configuration of the incoming MSI controllers.
type IMSIC struct {
	SupervisorInterruptIdentities uint16 `json:"supervisor_interrupt_identities"`
	GuestInterruptIdentities      uint16 `json:"guest_interrupt_identities"`
	GuestIndexBits                uint8  `json:"guest_index_bits"`
	HartIndexBits                 uint8  `json:"hart_index_bits"`
	GroupIndexBits                uint8  `json:"group_index_bits"`
	GroupIndexShift               uint8  `json:"group_index_shift"`
}

// APLIC is an advanced platform level interrupt controller.
type APLIC struct {
	ID         uint32 `json:"id"`
	HardwareID string `json:"hardware_id,omitempty"`
	IDCs       uint32 `json:"idcs"`
	GSIBase    uint32 `json:"gsi_base"`
	Address    uint64 `json:"address"`
	Size       uint32 `json:"size"`
	Sources    uint16 `json:"sources"`
}

// QoSController is a capacity or bandwidth controller.
type QoSController struct {
	// Type is "capacity" or "bandwidth".
	Type string `json:"type"`

	// Address is the system memory address of the register interface.
	Address uint64 `json:"address"`

	// ResourceType is "cache" or "memory".
	ResourceType string `json:"resource_type"`
	ResourceID   uint32 `json:"resource_id"`
	RCIDs        uint32 `json:"rcids"`
	MCIDs        uint32 `json:"mcids"`
}

// Parse decodes a JSON machine description. Unknown fields are rejected.
func Parse(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode the machine description: %w", err)
	}
	return &cfg, nil
}

// Load reads and validates the machine description in the file "path".
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("'%s': %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("'%s' is invalid: %w", path, err)
	}
	return cfg, nil
}
