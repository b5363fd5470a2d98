// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/linuxboot/rvacpi/cmds/rvacpi/commands"
	"github.com/linuxboot/rvacpi/pkg/acpi"
	"github.com/linuxboot/rvacpi/pkg/compression"
	"github.com/linuxboot/rvacpi/pkg/log"
	"github.com/linuxboot/rvacpi/pkg/machine"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	MachinePath string  `short:"c" long:"machine" description:"path to the machine description (JSON)" required:"true"`
	OutputDir   string  `short:"o" long:"output" description:"directory to write the tables to" required:"true"`
	Compress    *string `long:"compress" description:"compress the tables [xz, zstd, lz4]"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "writes the ACPI tables of a machine"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Every table is written to its own file named after the table signature, " +
		"for example APIC.bin for the MADT."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.ExtraArgs("build", args); err != nil {
		return err
	}

	var compressor compression.Compressor
	if cmd.Compress != nil {
		var err error
		compressor, err = compression.ByName(*cmd.Compress)
		if err != nil {
			return commands.ErrArgs{Verb: "build", Err: err}
		}
	}

	cfg, err := machine.Load(cmd.MachinePath)
	if err != nil {
		return err
	}
	tables, err := cfg.Build(acpi.DefaultCreator())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cmd.OutputDir, 0755); err != nil {
		return fmt.Errorf("unable to create the output directory '%s': %w", cmd.OutputDir, err)
	}
	for _, table := range tables.All() {
		path, err := write(cmd.OutputDir, table, compressor)
		if err != nil {
			return err
		}
		header := table.Header()
		log.Infof("%s: %s, checksum 0x%02X -> '%s'", header.Signature[:],
			humanize.IBytes(uint64(header.Length)), header.Checksum, path)
	}
	return nil
}

func write(dir string, table machine.Table, compressor compression.Compressor) (string, error) {
	sig := table.Header().Signature
	path := filepath.Join(dir, fmt.Sprintf("%s.bin", sig[:]))

	if compressor != nil {
		path += compressor.Extension()
		data, err := compressor.Encode(table.Bytes())
		if err != nil {
			return "", fmt.Errorf("unable to compress the %s table: %w", sig[:], err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return "", fmt.Errorf("unable to write '%s': %w", path, err)
		}
		return path, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("unable to create '%s': %w", path, err)
	}
	if _, err := table.WriteTo(file); err != nil {
		file.Close()
		return "", fmt.Errorf("unable to write '%s': %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("unable to close '%s': %w", path, err)
	}
	return path, nil
}
