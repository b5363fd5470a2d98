// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// xsdtgen writes an XSDT referencing tables at the given physical
// addresses.
//
// Synopsis:
//     xsdtgen [--oem-id ID] [--oem-table-id ID] [--oem-revision N] -o FILE ADDRESS...
//
// Addresses are parsed as Go integer literals, for example 0x80001000.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/linuxboot/rvacpi/pkg/acpi"
	"github.com/linuxboot/rvacpi/pkg/acpi/xsdt"
	"github.com/linuxboot/rvacpi/pkg/log"
)

var errUsage = errors.New("usage: xsdtgen [options] -o FILE ADDRESS...")

type config struct {
	oemID       string
	oemTableID  string
	oemRevision uint32
	output      string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.oemID, "oem-id", "LNXBT", "OEM ID (up to 6 characters)")
	flag.StringVar(&cfg.oemTableID, "oem-table-id", "RVXSDT", "OEM table ID (up to 8 characters)")
	flag.Uint32Var(&cfg.oemRevision, "oem-revision", 1, "OEM revision")
	flag.StringVarP(&cfg.output, "output", "o", "", "file to write the XSDT to, '-' for stdout")
	flag.Parse()

	var err error
	if cfg.output == "" || cfg.output == "-" {
		err = run(os.Stdout, cfg, flag.Args())
	} else {
		err = writeFile(cfg.output, cfg, flag.Args())
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// writeFile writes the XSDT into "path". The file is created only once
// the table is built, and removed if writing it fails.
func writeFile(path string, cfg config, args []string) (err error) {
	var buf bytes.Buffer
	if err := run(&buf, cfg, args); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()
	if _, err := buf.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("unable to write '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close '%s': %w", path, err)
	}
	return nil
}

func run(out io.Writer, cfg config, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	oem, err := acpi.NewOEM(cfg.oemID, cfg.oemTableID, cfg.oemRevision)
	if err != nil {
		return err
	}

	table := xsdt.New(oem, acpi.DefaultCreator())
	for _, arg := range args {
		addr, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return fmt.Errorf("%w: invalid address '%s'", errUsage, arg)
		}
		table.AddEntry(addr)
	}

	if _, err := table.WriteTo(out); err != nil {
		return err
	}
	log.Infof("XSDT: %d entries, %d bytes", len(table.Entries()), table.Header().Length)
	return nil
}
