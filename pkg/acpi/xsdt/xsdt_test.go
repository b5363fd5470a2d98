// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsdt

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

func TestXSDT(t *testing.T) {
	x := New(acpi.MustOEM("FOOBAR", "CAFEDEAD", 0xdeadbeef), acpi.DefaultCreator())
	data := x.Bytes()
	require.Equal(t, uint8(0), acpi.Sum8(data))
	require.Len(t, data, acpi.HeaderSize)
	require.Equal(t, []byte("XSDT"), data[:4])
}

func TestEntries(t *testing.T) {
	x := New(acpi.MustOEM("FOOBAR", "CAFEDEAD", 0xdeadbeef), acpi.DefaultCreator())

	lastLen := 0
	for i := 0; i < 128; i++ {
		x.AddEntry(uint64(i * 42))

		data := x.Bytes()
		require.Equal(t, uint8(0), acpi.Sum8(data))
		require.Greater(t, len(data), lastLen)
		lastLen = len(data)
		require.Equal(t, acpi.HeaderSize+EntrySize*(i+1), len(data))
		require.Equal(t, x.Header().Length, uint32(len(data)))
		require.Equal(t, uint64(i*42), binary.LittleEndian.Uint64(data[len(data)-EntrySize:]))
	}

	entries := x.Entries()
	require.Len(t, entries, 128)
	require.Equal(t, uint64(127*42), entries[127])
}
