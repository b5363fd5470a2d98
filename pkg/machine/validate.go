// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package machine

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/rvacpi/pkg/acpi"
	"github.com/linuxboot/rvacpi/pkg/acpi/madt"
	"github.com/linuxboot/rvacpi/pkg/acpi/rhct"
	"github.com/linuxboot/rvacpi/pkg/acpi/rqsc"
)

// Validate checks the description can be turned into tables. Every
// problem found is reported.
func (cfg *Config) Validate() error {
	var result *multierror.Error
	report := func(format string, args ...interface{}) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	if _, err := cfg.OEM.toACPI(); err != nil {
		result = multierror.Append(result, err)
	}

	if len(cfg.Harts) == 0 {
		report("no harts")
	}
	hartIDs := map[uint64]int{}
	uids := map[uint32]int{}
	for idx, hart := range cfg.Harts {
		if prev, ok := hartIDs[hart.HartID]; ok {
			report("hart #%d: hart ID %d is already used by hart #%d", idx, hart.HartID, prev)
		} else {
			hartIDs[hart.HartID] = idx
		}
		if prev, ok := uids[hart.ProcessorUID]; ok {
			report("hart #%d: processor UID %d is already used by hart #%d", idx, hart.ProcessorUID, prev)
		} else {
			uids[hart.ProcessorUID] = idx
		}
		if _, err := parseHartStatus(hart.Status); err != nil {
			report("hart #%d: %w", idx, err)
		}
		switch {
		case hart.ISA == "":
			report("hart #%d: empty ISA string", idx)
		case len(hart.ISA) > rhct.MaxISAStringLength:
			report("hart #%d: %w", idx, &acpi.ErrISAStringTooLong{Length: len(hart.ISA), Max: rhct.MaxISAStringLength})
		}
	}

	if imsic := cfg.IMSIC; imsic != nil {
		checkRange := func(field string, value, min, max uint64) {
			if value < min || value > max {
				report("IMSIC: %s is %d, expected %d to %d", field, value, min, max)
			}
		}
		checkRange("supervisor interrupt identities", uint64(imsic.SupervisorInterruptIdentities), 63, 2047)
		checkRange("guest interrupt identities", uint64(imsic.GuestInterruptIdentities), 63, 2047)
		checkRange("guest index bits", uint64(imsic.GuestIndexBits), 0, 7)
		checkRange("hart index bits", uint64(imsic.HartIndexBits), 0, 15)
		checkRange("group index bits", uint64(imsic.GroupIndexBits), 0, 7)
		checkRange("group index shift", uint64(imsic.GroupIndexShift), 0, 55)
	}

	aplicIDs := map[uint32]int{}
	for idx, aplic := range cfg.APLICs {
		if prev, ok := aplicIDs[aplic.ID]; ok {
			report("APLIC #%d: ID %d is already used by APLIC #%d", idx, aplic.ID, prev)
		} else {
			aplicIDs[aplic.ID] = idx
		}
		if len(aplic.HardwareID) > len(madt.APLIC{}.HardwareID) {
			report("APLIC #%d: hardware ID '%s' is longer than %d bytes", idx, aplic.HardwareID, len(madt.APLIC{}.HardwareID))
		}
		if aplic.IDCs == 0 && cfg.IMSIC == nil {
			report("APLIC #%d: no IDCs and no IMSIC to forward MSIs to", idx)
		}
	}

	for idx, c := range cfg.QoSControllers {
		if _, err := parseControllerType(c.Type); err != nil {
			report("QoS controller #%d: %w", idx, err)
		}
		if _, err := parseResourceType(c.ResourceType); err != nil {
			report("QoS controller #%d: %w", idx, err)
		}
	}

	return result.ErrorOrNil()
}

func (oem OEM) toACPI() (acpi.OEM, error) {
	return acpi.NewOEM(oem.ID, oem.TableID, oem.Revision)
}

func parseHartStatus(s string) (madt.HartStatus, error) {
	for _, status := range []madt.HartStatus{madt.HartEnabled, madt.HartDisabled, madt.HartOnlineCapable} {
		if s == status.String() {
			return status, nil
		}
	}
	if s == "" {
		return madt.HartEnabled, nil
	}
	return 0, fmt.Errorf("unknown hart status '%s'", s)
}

func parseControllerType(s string) (rqsc.ControllerType, error) {
	for _, t := range []rqsc.ControllerType{rqsc.Capacity, rqsc.Bandwidth} {
		if s == t.String() {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown controller type '%s'", s)
}

func parseResourceType(s string) (rqsc.ResourceType, error) {
	for _, t := range []rqsc.ResourceType{rqsc.Cache, rqsc.Memory} {
		if s == t.String() {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown resource type '%s'", s)
}
