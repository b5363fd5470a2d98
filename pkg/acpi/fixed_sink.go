// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package acpi

import (
	"encoding/binary"
	"io"

	"github.com/xaionaro-go/bytesextra"

	"github.com/linuxboot/rvacpi/pkg/log"
)

var _ Sink = (*FixedSink)(nil)

// FixedSink is a Sink over a fixed memory area, for example the memory
// reserved for ACPI tables in a guest image.
//
// A value which does not fit entirely into the remaining space is dropped,
// and so is everything written after it. The first overflow is reported by
// Err.
type FixedSink struct {
	w        io.Writer
	capacity int
	written  int
	err      error
}

// NewFixedSink returns a FixedSink writing into "mem" starting at offset 0.
func NewFixedSink(mem []byte) *FixedSink {
	return &FixedSink{
		w:        bytesextra.NewReadWriteSeeker(mem),
		capacity: len(mem),
	}
}

func (s *FixedSink) write(b []byte) {
	if s.err != nil {
		return
	}
	if s.written+len(b) > s.capacity {
		s.err = &ErrSinkOverflow{Capacity: s.capacity, Offset: s.written, Size: len(b)}
		log.Warnf("ACPI table truncated: %v", s.err)
		return
	}
	n, err := s.w.Write(b)
	s.written += n
	if err == nil && n != len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.err = err
		log.Warnf("ACPI table truncated: %v", err)
	}
}

// Byte implements Sink.
func (s *FixedSink) Byte(v uint8) {
	s.write([]byte{v})
}

// Word implements Sink.
func (s *FixedSink) Word(v uint16) {
	s.write(binary.LittleEndian.AppendUint16(nil, v))
}

// DWord implements Sink.
func (s *FixedSink) DWord(v uint32) {
	s.write(dword(v))
}

// QWord implements Sink.
func (s *FixedSink) QWord(v uint64) {
	s.write(binary.LittleEndian.AppendUint64(nil, v))
}

// Written returns the amount of bytes stored into the memory area.
func (s *FixedSink) Written() int {
	return s.written
}

// Err returns the first write failure, or nil.
func (s *FixedSink) Err() error {
	return s.err
}
