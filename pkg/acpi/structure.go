// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

// Structure is anything which could be serialized into an ACPI table: a
// whole table, its header or any of its substructures.
type Structure interface {
	// Encode writes the binary representation of the structure into "s".
	Encode(s Sink)
}

// Measure returns the encoded length of "st" and the 8-bit sum of its
// encoding (the structure's own contribution to a table checksum).
func Measure(st Structure) (length uint32, sum uint8) {
	var m meter
	st.Encode(&m)
	return m.length, m.sum
}

// Bytes returns the binary representation of "st".
func Bytes(st Structure) []byte {
	var buf Buffer
	st.Encode(&buf)
	return buf.Bytes()
}
