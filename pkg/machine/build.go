// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"
	"io"

	"github.com/linuxboot/rvacpi/pkg/acpi"
	"github.com/linuxboot/rvacpi/pkg/acpi/gas"
	"github.com/linuxboot/rvacpi/pkg/acpi/madt"
	"github.com/linuxboot/rvacpi/pkg/acpi/rhct"
	"github.com/linuxboot/rvacpi/pkg/acpi/rqsc"
	"github.com/linuxboot/rvacpi/pkg/log"
)

// Table is a finished ACPI table.
type Table interface {
	acpi.Structure
	io.WriterTo

	Header() acpi.TableHeader
	Entries() []acpi.Entry
	Bytes() []byte
}

var (
	_ Table = (*madt.MADT)(nil)
	_ Table = (*rhct.RHCT)(nil)
	_ Table = (*rqsc.RQSC)(nil)
)

// Tables are the tables describing a machine.
type Tables struct {
	MADT *madt.MADT
	RHCT *rhct.RHCT

	// RQSC is nil if the machine has no QoS controllers.
	RQSC *rqsc.RQSC
}

// All returns the built tables in the order they are usually installed.
func (t *Tables) All() []Table {
	result := []Table{t.MADT, t.RHCT}
	if t.RQSC != nil {
		result = append(result, t.RQSC)
	}
	return result
}

// Build validates the description and builds its tables.
//
// Harts sharing an ISA string reference the same RHCT ISA string node.
func (cfg *Config) Build(creator acpi.Creator) (*Tables, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid machine description: %w", err)
	}
	oem, err := cfg.OEM.toACPI()
	if err != nil {
		return nil, err
	}

	tables := &Tables{
		MADT: madt.New(oem, creator, madt.Address(cfg.LocalInterruptController)),
		RHCT: rhct.New(oem, creator, cfg.TimebaseFrequency),
	}

	isaStrings := map[string]rhct.ISAStringHandle{}
	for _, hart := range cfg.Harts {
		handle, ok := isaStrings[hart.ISA]
		if !ok {
			handle = tables.RHCT.AddISAString(hart.ISA)
			isaStrings[hart.ISA] = handle
		}
		tables.RHCT.AddHartInfo(rhct.NewHartInfo(hart.ProcessorUID, handle))
	}
	for _, hart := range cfg.Harts {
		status, _ := parseHartStatus(hart.Status)
		tables.MADT.AddRINTC(madt.NewRINTC(status, hart.HartID, hart.ProcessorUID))
	}
	if cfg.IMSIC != nil {
		tables.MADT.AddIMSIC(madt.IMSIC(*cfg.IMSIC))
	}
	for _, aplic := range cfg.APLICs {
		entry := madt.APLIC{
			ID:      aplic.ID,
			IDCs:    aplic.IDCs,
			GSIBase: aplic.GSIBase,
			Address: aplic.Address,
			Size:    aplic.Size,
			Sources: aplic.Sources,
		}
		copy(entry.HardwareID[:], aplic.HardwareID)
		tables.MADT.AddAPLIC(entry)
	}
	log.Infof("MADT: %d harts, %d APLICs, IMSIC: %t", len(cfg.Harts), len(cfg.APLICs), tables.MADT.HasIMSIC())
	log.Infof("RHCT: %d nodes, %d distinct ISA strings", tables.RHCT.Nodes(), len(isaStrings))

	if len(cfg.QoSControllers) > 0 {
		tables.RQSC = rqsc.New(oem, creator)
		for _, c := range cfg.QoSControllers {
			ctype, _ := parseControllerType(c.Type)
			rtype, _ := parseResourceType(c.ResourceType)
			tables.RQSC.AddController(rqsc.Controller{
				Type:         ctype,
				Register:     gas.New(gas.SystemMemory, 64, 0, gas.QwordAccess, c.Address),
				ResourceType: rtype,
				ResourceID:   c.ResourceID,
				RCIDCount:    c.RCIDs,
				MCIDCount:    c.MCIDs,
			})
		}
		log.Infof("RQSC: %d controllers", tables.RQSC.Controllers())
	}

	return tables, nil
}
