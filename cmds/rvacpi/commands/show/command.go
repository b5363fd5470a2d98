// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package show

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/linuxboot/rvacpi/cmds/rvacpi/commands"
	"github.com/linuxboot/rvacpi/pkg/acpi"
	"github.com/linuxboot/rvacpi/pkg/acpi/pretty"
	"github.com/linuxboot/rvacpi/pkg/machine"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	MachinePath string  `short:"c" long:"machine" description:"path to the machine description (JSON)" required:"true"`
	Format      *string `long:"format" description:"output format [text, json]"`
	Details     *bool   `long:"details" description:"print also every field of every structure"`

	stdout io.Writer
}

type Format int

const (
	FormatUndefined = Format(iota)
	FormatText
	FormatJSON
)

func ParseFormat(s string) Format {
	switch strings.Trim(strings.ToLower(s), " ") {
	case "text":
		return FormatText
	case "json":
		return FormatJSON
	}
	return FormatUndefined
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the ACPI tables of a machine"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return ""
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.ExtraArgs("show", args); err != nil {
		return err
	}

	format := FormatText
	if cmd.Format != nil {
		format = ParseFormat(*cmd.Format)
		if format == FormatUndefined {
			return commands.ErrArgs{Verb: "show", Err: fmt.Errorf("unknown format '%s'", *cmd.Format)}
		}
	}
	details := cmd.Details != nil && *cmd.Details

	out := cmd.stdout
	if out == nil {
		out = os.Stdout
	}

	cfg, err := machine.Load(cmd.MachinePath)
	if err != nil {
		return err
	}
	tables, err := cfg.Build(acpi.DefaultCreator())
	if err != nil {
		return err
	}

	switch format {
	case FormatText:
		for _, t := range tables.All() {
			renderTable(out, t)
			if details {
				fmt.Fprintln(out, pretty.Table(t.Header(), t.Entries()))
			}
		}
	case FormatJSON:
		b, err := json.MarshalIndent(describe(tables.All()), "", "  ")
		if err != nil {
			panic(err)
		}
		fmt.Fprintf(out, "%s\n", b)
	}

	return nil
}

func renderTable(out io.Writer, t machine.Table) {
	header := t.Header()

	h := table.NewWriter()
	h.SetOutputMirror(out)
	h.SetTitle("%s Header", header.Signature[:])
	h.AppendHeader(table.Row{"Length", "Revision", "Checksum", "OEM ID", "OEM Table ID", "OEM Revision", "Creator"})
	h.AppendRow(table.Row{
		header.Length,
		header.Revision,
		fmt.Sprintf("0x%02X", header.Checksum),
		trimID(header.OEMID[:]),
		trimID(header.OEMTableID[:]),
		fmt.Sprintf("0x%X", header.OEMRevision),
		fmt.Sprintf("%s rev %d", trimID(header.CreatorID[:]), header.CreatorRevision),
	})
	h.Render()

	entries := t.Entries()
	if len(entries) == 0 {
		return
	}
	e := table.NewWriter()
	e.SetOutputMirror(out)
	e.SetTitle("%s Structures", header.Signature[:])
	e.AppendHeader(table.Row{"#", "Structure", "Offset", "Length"})
	for idx, entry := range entries {
		e.AppendRow(table.Row{
			idx,
			pretty.TypeName(entry.Structure),
			fmt.Sprintf("0x%-4X", entry.Offset),
			entry.Length,
		})
	}
	e.Render()
}

type tableDescription struct {
	Signature       string
	Length          uint32
	Revision        uint8
	Checksum        uint8
	OEMID           string
	OEMTableID      string
	OEMRevision     uint32
	CreatorID       string
	CreatorRevision uint32
	Structures      []structureDescription
}

type structureDescription struct {
	Type   string
	Offset uint32
	Length uint32
	Fields interface{}
}

func describe(tables []machine.Table) []tableDescription {
	result := make([]tableDescription, 0, len(tables))
	for _, t := range tables {
		header := t.Header()
		desc := tableDescription{
			Signature:       string(header.Signature[:]),
			Length:          header.Length,
			Revision:        header.Revision,
			Checksum:        header.Checksum,
			OEMID:           trimID(header.OEMID[:]),
			OEMTableID:      trimID(header.OEMTableID[:]),
			OEMRevision:     header.OEMRevision,
			CreatorID:       trimID(header.CreatorID[:]),
			CreatorRevision: header.CreatorRevision,
			Structures:      []structureDescription{},
		}
		for _, entry := range t.Entries() {
			desc.Structures = append(desc.Structures, structureDescription{
				Type:   pretty.TypeName(entry.Structure),
				Offset: entry.Offset,
				Length: entry.Length,
				Fields: entry.Structure,
			})
		}
		result = append(result, desc)
	}
	return result
}

func trimID(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
