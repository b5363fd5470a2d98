// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rhct

import (
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/linuxboot/rvacpi/pkg/acpi"
)

type RHCTSuite struct {
	suite.Suite

	table *RHCT
}

func (s *RHCTSuite) SetupTest() {
	s.table = New(acpi.MustOEM("RIVOS", "RIVOS", 42), acpi.DefaultCreator(), 0x9012_1234_5678)
}

func (s *RHCTSuite) encode() []byte {
	data := s.table.Bytes()
	s.Require().Equal(uint8(0), acpi.Sum8(data), "checksum")
	s.Require().Equal(s.table.Header().Length, uint32(len(data)), "length")
	s.Require().Equal(s.table.Nodes(), binary.LittleEndian.Uint32(data[48:52]), "node count")
	return data
}

func (s *RHCTSuite) TestNodeArrayOffset() {
	h := s.table.AddISAString("rv64imac")
	s.table.AddHartInfo(NewHartInfo(0, h))
	data := s.encode()
	s.Require().Equal(uint32(HeaderSize), binary.LittleEndian.Uint32(data[52:56]))
	s.Require().Equal(uint32(HeaderSize), h.Offset())
}

func (s *RHCTSuite) TestBare() {
	data := s.encode()
	s.Require().Len(data, HeaderSize)
	s.Require().Equal([]byte("RHCT"), data[:4])
	s.Require().Equal(uint64(0x9012_1234_5678), binary.LittleEndian.Uint64(data[40:48]))
	s.Require().Equal(uint32(HeaderSize), binary.LittleEndian.Uint32(data[52:56]))
}

func (s *RHCTSuite) TestISAStrings() {
	h0 := s.table.AddISAString("foobar")
	s.encode()
	h1 := s.table.AddISAString("blahblah")
	s.encode()
	h2 := s.table.AddISAString("quux")
	data := s.encode()

	s.Require().Equal(uint32(HeaderSize), h0.Offset())
	// "foobar": 8 + 6 + 1 = 15, padded to 16
	s.Require().Equal(uint32(HeaderSize+16), h1.Offset())
	// "blahblah": 8 + 8 + 1 = 17, padded to 18
	s.Require().Equal(uint32(HeaderSize+16+18), h2.Offset())
	// "quux": 8 + 4 + 1 = 13, padded to 14
	s.Require().Len(data, HeaderSize+16+18+14)
	s.Require().Equal(uint32(3), s.table.Nodes())
}

func (s *RHCTSuite) TestHartInfo() {
	first := s.table.AddISAString("foobar")
	second := s.table.AddISAString("blah")

	for i := 0; i < 128; i++ {
		handle := first
		if i >= 64 {
			handle = second
		}
		s.table.AddHartInfo(NewHartInfo(uint32(i), handle))
		s.encode()
	}

	data := s.encode()
	s.Require().Equal(uint32(130), s.table.Nodes())

	entries := s.table.Entries()
	s.Require().Len(entries, 130)
	for idx, entry := range entries[2:] {
		node := data[entry.Offset : entry.Offset+entry.Length]
		s.Require().Equal(uint16(NodeTypeHartInfo), binary.LittleEndian.Uint16(node[0:2]))
		s.Require().Equal(uint16(HartInfoSize), binary.LittleEndian.Uint16(node[2:4]))
		s.Require().Equal(uint16(1), binary.LittleEndian.Uint16(node[6:8]))
		s.Require().Equal(uint32(idx), binary.LittleEndian.Uint32(node[8:12]))

		expected := first.Offset()
		if idx >= 64 {
			expected = second.Offset()
		}
		s.Require().Equal(expected, binary.LittleEndian.Uint32(node[12:16]))
	}

	// referenced offsets point to ISA string nodes
	for _, h := range []ISAStringHandle{first, second} {
		s.Require().Equal(uint16(NodeTypeISAString), binary.LittleEndian.Uint16(data[h.Offset():]))
	}
}

func (s *RHCTSuite) TestForeignHandle() {
	other := New(acpi.MustOEM("RIVOS", "RIVOS", 42), acpi.DefaultCreator(), 1)
	h := other.AddISAString("rv64imac")
	before := s.table.Bytes()

	s.Require().Panics(func() {
		s.table.AddHartInfo(NewHartInfo(0, h))
	})
	s.Require().Panics(func() {
		s.table.AddHartInfo(HartInfo{ProcessorUID: 1})
	})
	s.Require().Equal(before, s.table.Bytes())
}

func (s *RHCTSuite) TestISAStringTooLong() {
	before := s.table.Bytes()
	s.Require().PanicsWithError((&acpi.ErrISAStringTooLong{Length: MaxISAStringLength + 1, Max: MaxISAStringLength}).Error(), func() {
		s.table.AddISAString(strings.Repeat("x", MaxISAStringLength+1))
	})
	s.Require().Equal(before, s.table.Bytes())

	s.table.AddISAString(strings.Repeat("x", MaxISAStringLength))
	s.encode()
}

func TestRHCT(t *testing.T) {
	suite.Run(t, new(RHCTSuite))
}

func TestISAStringNodeEncode(t *testing.T) {
	for _, tt := range []struct {
		name     string
		isa      string
		expected []byte
	}{
		{
			name: "padded",
			isa:  "rv64",
			expected: []byte{
				0x00, 0x00, 0x0e, 0x00, 0x01, 0x00, 0x05, 0x00,
				'r', 'v', '6', '4', 0x00, 0x00,
			},
		},
		{
			name: "aligned",
			isa:  "rv64i",
			expected: []byte{
				0x00, 0x00, 0x0e, 0x00, 0x01, 0x00, 0x06, 0x00,
				'r', 'v', '6', '4', 'i', 0x00,
			},
		},
		{
			name: "empty",
			isa:  "",
			expected: []byte{
				0x00, 0x00, 0x0a, 0x00, 0x01, 0x00, 0x01, 0x00,
				0x00, 0x00,
			},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			node := ISAStringNode{ISA: tt.isa}
			require.Equal(t, tt.expected, acpi.Bytes(node))
			require.Equal(t, uint16(len(tt.expected)), node.Len())
		})
	}
}

func TestHartInfoEncode(t *testing.T) {
	table := New(acpi.MustOEM("ACPI", "ACPI", 42), acpi.DefaultCreator(), 0x9012_1234_5678)
	h := table.AddISAString("rv64imafdc")
	hi := NewHartInfo(0x03020100, h)
	require.Equal(t, h, hi.ISAString())

	require.Equal(t, []byte{
		0xff, 0xff, 0x10, 0x00, 0x01, 0x00, 0x01, 0x00,
		0x00, 0x01, 0x02, 0x03,
		0x38, 0x00, 0x00, 0x00,
	}, acpi.Bytes(hi))
}

func TestHartInfoJSON(t *testing.T) {
	table := New(acpi.MustOEM("RIVOS", "RIVOS", 42), acpi.DefaultCreator(), 1)
	table.AddISAString("foobar")
	handle := table.AddISAString("rv64imac")

	b, err := json.Marshal(NewHartInfo(7, handle))
	require.NoError(t, err)
	require.JSONEq(t, `{"ProcessorUID": 7, "ISAStringOffset": 72}`, string(b))
}
