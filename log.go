// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdwallet

import (
	"github.com/ModChain/hdwallet/ecckd"
	"github.com/btcsuite/btclog"
)

// Subsystem defines the logging code for this subsystem.
const Subsystem = "HDWL"

// log is a logger that is initialized with no output filters.  This means the
// package will not perform any logging by default until the caller requests
// it.
var log = btclog.Disabled

// DisableLog disables all library log output.  Logging output is disabled by
// default until UseLogger is called.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// UseBackend creates the loggers of this package and of the ecckd package
// from backend with the given level.
func UseBackend(backend *btclog.Backend, level btclog.Level) {
	logger := backend.Logger(Subsystem)
	logger.SetLevel(level)
	UseLogger(logger)

	engineLogger := backend.Logger(ecckd.Subsystem)
	engineLogger.SetLevel(level)
	ecckd.UseLogger(engineLogger)
}
