// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"fmt"
)

// ErrSingleton means a structure which may appear at most once in a table
// was added a second time.
type ErrSingleton struct {
	Table     Signature
	Structure string
}

func (err *ErrSingleton) Error() string {
	return fmt.Sprintf("%s table may contain only one %s structure", err.Table, err.Structure)
}

// ErrInvalidIdentifier means an OEM identifier cannot be stored in a table header.
type ErrInvalidIdentifier struct {
	Field  string
	Value  string
	Reason string
}

func (err *ErrInvalidIdentifier) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", err.Field, err.Value, err.Reason)
}

// ErrSinkOverflow means a value did not fit into a FixedSink.
type ErrSinkOverflow struct {
	Capacity int
	Offset   int
	Size     int
}

func (err *ErrSinkOverflow) Error() string {
	return fmt.Sprintf("unable to write %d bytes at offset %d: sink capacity is %d bytes",
		err.Size, err.Offset, err.Capacity)
}

// ErrForeignHandle means a cross-reference handle was used with a table
// other than the one which returned it.
type ErrForeignHandle struct {
	Table  Signature
	Offset uint32
}

func (err *ErrForeignHandle) Error() string {
	return fmt.Sprintf("handle 0x%x was not returned by this %s table", err.Offset, err.Table)
}

// ErrISAStringTooLong means an ISA string does not fit into an RHCT node.
type ErrISAStringTooLong struct {
	Length int
	Max    int
}

func (err *ErrISAStringTooLong) Error() string {
	return fmt.Sprintf("ISA string is %d bytes long, the maximum is %d", err.Length, err.Max)
}
