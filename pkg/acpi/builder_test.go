// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type counter struct {
	count uint32
}

func (c *counter) Encode(s Sink) {
	s.DWord(c.count)
}

type blob []byte

func (b blob) Encode(s Sink) {
	PutBytes(s, b)
}

func checkTable(t *testing.T, b *Builder) []byte {
	t.Helper()

	data := Bytes(b)
	require.Equal(t, uint8(0), Sum8(data), "checksum")
	require.Equal(t, int(b.Len()), len(data), "length")
	require.Equal(t, b.Len(), binary.LittleEndian.Uint32(data[4:8]), "length field")
	return data
}

func TestNewBuilder(t *testing.T) {
	oem := MustOEM("FOOBAR", "DECAFCOF", 0xdeadbeef)
	b := NewBuilder(SigAPIC, 1, oem, DefaultCreator(), nil)

	data := checkTable(t, b)
	require.Len(t, data, HeaderSize)
	require.Equal(t, []byte("APIC"), data[0:4])
	require.Equal(t, uint8(1), data[8])
	require.Equal(t, []byte("FOOBAR"), data[10:16])
	require.Equal(t, []byte("DECAFCOF"), data[16:24])
	require.Equal(t, uint32(0xdeadbeef), binary.LittleEndian.Uint32(data[24:28]))
	require.Equal(t, []byte("LBAT"), data[28:32])
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[32:36]))
	require.Equal(t, b.Header().Checksum, data[9])
}

func TestBuilderFixedFields(t *testing.T) {
	fixed := &counter{}
	b := NewBuilder(SigRQSC, 1, MustOEM("RQSSCC", "SOMETHIN", 0xcafed00d), DefaultCreator(), fixed)
	checkTable(t, b)
	require.Equal(t, uint32(HeaderSize+4), b.Len())

	for i := 0; i < 300; i++ {
		b.IncrementField(&fixed.count)
		data := checkTable(t, b)
		require.Equal(t, uint32(i+1), binary.LittleEndian.Uint32(data[HeaderSize:]))
	}
}

func TestBuilderAppend(t *testing.T) {
	b := NewBuilder(SigXSDT, 1, MustOEM("FOOBAR", "CAFEDEAD", 1), DefaultCreator(), nil)

	var offsets []uint32
	expectedLen := uint32(HeaderSize)
	for i := 0; i < 200; i++ {
		st := blob(bytes.Repeat([]byte{byte(i)}, i%7+1))
		offset := b.Append(st)
		require.Equal(t, expectedLen, offset)
		offsets = append(offsets, offset)
		expectedLen += uint32(len(st))

		checkTable(t, b)
		require.Equal(t, expectedLen, b.Len())
	}

	entries := b.Entries()
	require.Len(t, entries, 200)
	for idx, entry := range entries {
		require.Equal(t, offsets[idx], entry.Offset)
		require.Equal(t, uint32(idx%7+1), entry.Length)
	}
}

func TestBuilderLengthCarry(t *testing.T) {
	// Grow the table across the byte boundaries of the length field, where
	// every byte of the length encoding changes at once.
	b := NewBuilder(SigXSDT, 1, MustOEM("FOOBAR", "CAFEDEAD", 1), DefaultCreator(), nil)
	b.Append(blob(make([]byte, 0xff-HeaderSize)))
	checkTable(t, b)
	b.Append(blob{0x01})
	checkTable(t, b)
	b.Append(blob(make([]byte, 0xffff-0x100)))
	checkTable(t, b)
	b.Append(blob{0xff})
	data := checkTable(t, b)
	require.Equal(t, uint32(0x10000), binary.LittleEndian.Uint32(data[4:8]))
}

func TestBuilderEncodeIdempotent(t *testing.T) {
	b := NewBuilder(SigRHCT, 1, MustOEM("RIVOS", "RIVOS", 42), DefaultCreator(), &counter{})
	b.Append(blob("foobar"))
	b.Append(blob("blah"))

	require.Equal(t, Bytes(b), Bytes(b))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk is full")
}

func TestBuilderWriteTo(t *testing.T) {
	b := NewBuilder(SigXSDT, 1, MustOEM("FOOBAR", "CAFEDEAD", 1), DefaultCreator(), nil)
	b.Append(blob{1, 2, 3, 4, 5, 6, 7, 8})

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(HeaderSize+8), n)
	require.Equal(t, Bytes(b), buf.Bytes())

	_, err = b.WriteTo(failingWriter{})
	require.ErrorContains(t, err, "disk is full")
}

func TestNewOEM(t *testing.T) {
	oem, err := NewOEM("ACPI", "RIVOS", 42)
	require.NoError(t, err)
	require.Equal(t, [6]byte{'A', 'C', 'P', 'I', 0, 0}, oem.ID)
	require.Equal(t, [8]byte{'R', 'I', 'V', 'O', 'S', 0, 0, 0}, oem.TableID)
	require.Equal(t, uint32(42), oem.Revision)

	_, err = NewOEM("TOOLONGID", "TOOLONGTABLEID", 0)
	require.Error(t, err)
	require.ErrorContains(t, err, "OEM ID")
	require.ErrorContains(t, err, "OEM table ID")

	var errID *ErrInvalidIdentifier
	_, err = NewOEM("BAD\x01", "OK", 0)
	require.ErrorAs(t, err, &errID)
	require.Equal(t, "OEM ID", errID.Field)

	require.Panics(t, func() { MustOEM("1234567", "", 0) })
}

func TestSignatureBytes(t *testing.T) {
	require.Equal(t, [4]byte{'R', 'H', 'C', 'T'}, SigRHCT.Bytes())
}

func TestDefaultCreator(t *testing.T) {
	creator := DefaultCreator()
	require.Equal(t, [4]byte{'L', 'B', 'A', 'T'}, creator.ID)
	require.Equal(t, uint32(1), creator.Revision)

	creator.ID = [4]byte{'X', 'X', 'X', 'X'}
	require.Equal(t, [4]byte{'L', 'B', 'A', 'T'}, DefaultCreator().ID)

	b := NewBuilder(SigXSDT, 1, MustOEM("FOOBAR", "CAFEDEAD", 1), creator, nil)
	h := b.Header()
	require.Equal(t, "XXXX", string(h.CreatorID[:]))
}
