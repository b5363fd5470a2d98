// Copyright 2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compression

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testData() [][]byte {
	random := make([]byte, 4096)
	rand.New(rand.NewSource(42)).Read(random)
	return [][]byte{
		{},
		[]byte("RHCT"),
		bytes.Repeat([]byte("rv64imafdc_zicsr_zifencei"), 64),
		random,
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, err := ByName(name)
			require.NoError(t, err)
			for _, want := range testData() {
				encoded, err := c.Encode(want)
				require.NoError(t, err)
				got, err := c.Decode(encoded)
				require.NoError(t, err)
				require.Equal(t, len(want), len(got))
				require.True(t, bytes.Equal(want, got), "decompressed data did not match")
			}
		})
	}
}

func TestByName(t *testing.T) {
	c, err := ByName("Xz")
	require.NoError(t, err)
	require.Equal(t, "XZ", c.Name())
	require.Equal(t, ".xz", c.Extension())

	_, err = ByName("brotli")
	require.ErrorContains(t, err, "lz4, xz, zstd")
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{"lz4", "xz", "zstd"}, Names())
}

func TestDecodeGarbage(t *testing.T) {
	for _, name := range []string{"xz", "zstd"} {
		c, err := ByName(name)
		require.NoError(t, err)
		_, err = c.Decode([]byte("definitely not compressed"))
		require.Error(t, err, name)
	}
}
