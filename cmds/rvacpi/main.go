// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// rvacpi builds the ACPI tables describing a RISC-V machine.
//
// Synopsis:
//     rvacpi [--verbose] build -c MACHINE_JSON -o OUTPUT_DIR [--compress=xz|zstd|lz4]
//     rvacpi show -c MACHINE_JSON [--format=text|json]
//
// An example:
//     rvacpi build -c virt.json -o tables/
//     rvacpi show -c virt.json --format=json | jq '.[] | select(.Signature == "RHCT")'
//
// Description:
//     build: Writes one binary per table (MADT, RHCT and, if the machine has
//            QoS controllers, RQSC) into OUTPUT_DIR
//     show:  Prints the tables
package main

import (
	"log"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/linuxboot/rvacpi/cmds/rvacpi/commands"
	"github.com/linuxboot/rvacpi/cmds/rvacpi/commands/build"
	"github.com/linuxboot/rvacpi/cmds/rvacpi/commands/show"
	rvlog "github.com/linuxboot/rvacpi/pkg/log"
)

var (
	knownCommands = map[string]commands.Command{
		"build": &build.Command{},
		"show":  &show.Command{},
	}
)

type options struct {
	Verbose bool `short:"v" long:"verbose" description:"print structured debug logs"`
}

func main() {
	var opts options
	flagsParser := flags.NewParser(&opts, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}
	flagsParser.CommandHandler = func(command flags.Commander, args []string) error {
		if opts.Verbose {
			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			rvlog.DefaultLogger = rvlog.NewZapLogger(logger)
		}
		return command.Execute(args)
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		log.Fatal(err)
	}
}
