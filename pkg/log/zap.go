// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"go.uber.org/zap"
)

// NewZapLogger returns a Logger backed by "logger".
func NewZapLogger(logger *zap.Logger) Logger {
	return zapWrapper{Logger: logger.Sugar()}
}

type zapWrapper struct {
	Logger *zap.SugaredLogger
}

// Infof implements Logger.
func (logger zapWrapper) Infof(format string, args ...interface{}) {
	logger.Logger.Infof(format, args...)
}

// Warnf implements Logger.
func (logger zapWrapper) Warnf(format string, args ...interface{}) {
	logger.Logger.Warnf(format, args...)
}

// Errorf implements Logger.
func (logger zapWrapper) Errorf(format string, args ...interface{}) {
	logger.Logger.Errorf(format, args...)
}

// Fatalf implements Logger.
func (logger zapWrapper) Fatalf(format string, args ...interface{}) {
	logger.Logger.Fatalf(format, args...)
}
