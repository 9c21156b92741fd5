// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggscroll

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/ggscroll/internal/logging"
)

// loggerPtr stores the package logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Nop())
}

// SetLogger configures the default logger for windows created afterwards.
// By default ggscroll produces no log output. Pass nil to restore silence.
// A running window keeps its logger; use Window.SetLogger to change it.
//
// SetLogger is safe for concurrent use.
//
// Log levels used by ggscroll:
//   - [slog.LevelDebug]: frame diagnostics (invocations, diffs, display lists)
//   - [slog.LevelWarn]: non-fatal issues (failing content providers,
//     duplicate layout keys)
//
// Example:
//
//	ggscroll.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	loggerPtr.Store(logging.OrNop(l))
}

// Logger returns the current package logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by window components that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes l to every component implementing loggerSetter.
func propagateLogger(l *slog.Logger, components ...any) {
	for _, c := range components {
		if ls, ok := c.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}
