// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pretty renders ACPI tables and their structures in a human
// readable form.
package pretty

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/camelcase"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

// PrettyStringer is implemented by values which render themselves.
type PrettyStringer interface {
	PrettyString(depth uint, withHeader bool) string
}

// Header returns the title line of an object at the nesting level "depth".
func Header(depth uint, description string, obj interface{}) string {
	if description == "" {
		description = TypeName(obj)
	}
	switch depth {
	case 0:
		description = `----` + description + "----\n"
	case 1:
		description = `--` + description + `--`
	default:
		description += `:`
	}
	description = strings.Repeat("  ", int(depth)) + description
	return description
}

// SubValue returns the line describing the field "fieldName".
func SubValue(depth uint, fieldName, valueDescription string, value interface{}) string {
	if valueDescription == "" {
		valueDescription = getDescriptionForValue(depth, value)
	}
	return fmt.Sprintf("%s %s", Header(depth, fieldName, nil), valueDescription)
}

// FieldName converts a Go identifier to a field title, for example
// "OEMTableID" becomes "OEM Table ID".
func FieldName(ident string) string {
	return strings.Join(camelcase.Split(ident), " ")
}

// TypeName returns the title of the type of "obj".
func TypeName(obj interface{}) string {
	t := reflect.TypeOf(obj)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return FieldName(t.Name())
}

// Struct renders every exported field of the struct "obj".
func Struct(depth uint, description string, obj interface{}) string {
	var lines []string
	if description != "" || depth < 2 {
		lines = append(lines, strings.TrimRight(Header(depth, description, obj), "\n"))
	}

	v := reflect.Indirect(reflect.ValueOf(obj))
	if v.Kind() != reflect.Struct {
		lines = append(lines, SubValue(depth+1, "Value", "", obj))
		return strings.Join(lines, "\n")
	}

	t := v.Type()
	for idx := 0; idx < t.NumField(); idx++ {
		field := t.Field(idx)
		if !field.IsExported() {
			continue
		}
		lines = append(lines, SubValue(depth+1, FieldName(field.Name), "", v.Field(idx).Interface()))
	}
	return strings.Join(lines, "\n")
}

// Table renders an ACPI table: its header and every appended structure.
func Table(header acpi.TableHeader, entries []acpi.Entry) string {
	var s strings.Builder
	s.WriteString(Header(0, fmt.Sprintf("%s table", header.Signature[:]), nil))
	s.WriteString(Struct(1, "Header", header))
	s.WriteString("\n")
	for idx, entry := range entries {
		title := fmt.Sprintf("#%d %s (offset 0x%X)", idx, TypeName(entry.Structure), entry.Offset)
		if st, ok := entry.Structure.(PrettyStringer); ok {
			s.WriteString(Header(1, title, nil) + "\n")
			s.WriteString(st.PrettyString(2, false))
		} else {
			s.WriteString(Struct(1, title, entry.Structure))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func getDescriptionForValue(depth uint, value interface{}) string {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr && v.IsNil() {
		return "is not set (nil)"
	}

	switch value := value.(type) {
	case PrettyStringer:
		description := value.PrettyString(depth, false)
		if len(strings.Split(description, "\n")) > 1 {
			return "\n" + description
		}
		return strings.TrimSpace(description)
	case fmt.GoStringer:
		return value.GoString()
	case fmt.Stringer:
		if v.Kind() >= reflect.Uint8 && v.Kind() <= reflect.Uint64 {
			return fmt.Sprintf("%s (0x%X)", value.String(), v.Uint())
		}
		return value.String()
	}

	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i := v.Uint()
		var hexFmt string
		switch v.Type().Size() {
		case 1:
			hexFmt = "0x%02X"
		case 2:
			hexFmt = "0x%04X"
		case 4:
			hexFmt = "0x%08X"
		case 8:
			hexFmt = "0x%016X"
		}
		switch {
		case i < 10:
			return fmt.Sprintf(hexFmt, i)
		case i < 65536:
			return fmt.Sprintf(hexFmt+" (%d)", i, i)
		default:
			return fmt.Sprintf(hexFmt+" (%d: %s)", i, i, humanize.IBytes(i))
		}

	case reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			if s, ok := asciiString(b); ok {
				return fmt.Sprintf("%q (0x%X)", s, b)
			}
		}
		return fmt.Sprintf("0x%X", v.Interface())

	case reflect.Slice:
		if v.Len() == 0 {
			return "empty (len: 0)"
		}
		return fmt.Sprintf("0x%X (len: %d)", v.Interface(), v.Len())

	case reflect.String:
		return fmt.Sprintf("%q", v.String())

	case reflect.Struct:
		return "\n" + Struct(depth+1, "", v.Interface())
	}

	return fmt.Sprintf("%#+v (%T)", value, value)
}

// asciiString returns the NUL-padded printable string stored in "b".
func asciiString(b []byte) (string, bool) {
	s := strings.TrimRight(string(b), "\x00")
	if s == "" {
		return "", false
	}
	for _, c := range []byte(s) {
		if c < 0x20 || c > 0x7e {
			return "", false
		}
	}
	return s, true
}
