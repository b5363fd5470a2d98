// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

func TestEncode(t *testing.T) {
	g := New(SystemMemory, 64, 0, QwordAccess, 0x0123_4567_89ab_cdef)
	require.Equal(t, []byte{
		0x00, 64, 0, 4,
		0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01,
	}, acpi.Bytes(g))

	length, _ := acpi.Measure(g)
	require.Equal(t, uint32(Size), length)
}
