// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStdLogger(log.New(&buf, "", 0))

	logger.Infof("built %d tables", 3)
	logger.Warnf("table %s truncated", "APIC")
	logger.Errorf("oops")

	require.Equal(t,
		"[rvacpi][INFO] built 3 tables\n"+
			"[rvacpi][WARN] table APIC truncated\n"+
			"[rvacpi][ERROR] oops\n",
		buf.String())
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	orig := DefaultLogger
	defer func() { DefaultLogger = orig }()
	DefaultLogger = NewStdLogger(log.New(&buf, "", 0))

	Warnf("%d bytes dropped", 4)
	require.Equal(t, "[rvacpi][WARN] 4 bytes dropped\n", buf.String())
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Infof("built %s", "RHCT")
	logger.Warnf("dropped %d", 1)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "built RHCT", entries[0].Message)
	require.Equal(t, zap.WarnLevel, entries[1].Level)
}
