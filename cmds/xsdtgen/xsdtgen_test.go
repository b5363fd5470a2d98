// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

var defaultConfig = config{oemID: "LNXBT", oemTableID: "RVXSDT", oemRevision: 1}

func TestXSDTGen(t *testing.T) {
	t.Run("usage error", func(t *testing.T) {
		err := run(io.Discard, defaultConfig, nil)
		require.True(t, errors.Is(err, errUsage))
	})

	t.Run("invalid address", func(t *testing.T) {
		err := run(io.Discard, defaultConfig, []string{"0x1000", "nowhere"})
		require.True(t, errors.Is(err, errUsage))
	})

	t.Run("invalid OEM", func(t *testing.T) {
		cfg := defaultConfig
		cfg.oemID = "WAY TOO LONG"
		var invalid *acpi.ErrInvalidIdentifier
		require.ErrorAs(t, run(io.Discard, cfg, []string{"0x1000"}), &invalid)
	})

	t.Run("entries", func(t *testing.T) {
		stdout := &bytes.Buffer{}
		require.NoError(t, run(stdout, defaultConfig, []string{"0x80001000", "4096", "0o17"}))

		data := stdout.Bytes()
		require.Len(t, data, acpi.HeaderSize+3*8)
		require.Equal(t, []byte("XSDT"), data[:4])
		require.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[4:]))
		require.Equal(t, uint8(0), acpi.Sum8(data))
		require.Equal(t, uint64(0x80001000), binary.LittleEndian.Uint64(data[acpi.HeaderSize:]))
		require.Equal(t, uint64(4096), binary.LittleEndian.Uint64(data[acpi.HeaderSize+8:]))
		require.Equal(t, uint64(15), binary.LittleEndian.Uint64(data[acpi.HeaderSize+16:]))
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("invalid address", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xsdt.bin")
		err := writeFile(path, defaultConfig, []string{"0x1000", "nowhere"})
		require.True(t, errors.Is(err, errUsage))
		_, err = os.Stat(path)
		require.True(t, os.IsNotExist(err), "no output is left behind")
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "xsdt.bin")
		require.Error(t, writeFile(path, defaultConfig, []string{"0x1000"}))
	})

	t.Run("entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xsdt.bin")
		require.NoError(t, writeFile(path, defaultConfig, []string{"0x80001000", "0x80002000"}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Len(t, data, acpi.HeaderSize+2*8)
		require.Equal(t, uint8(0), acpi.Sum8(data))
		require.Equal(t, uint64(0x80002000), binary.LittleEndian.Uint64(data[acpi.HeaderSize+8:]))
	})
}
