// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats-server/v2/server"
)

// NATSLogger adapts a slog.Logger to the NATS server.Logger interface so the
// embedded IPC server logs through the same pipeline as the services.
type NATSLogger struct {
	l *slog.Logger
}

// Fatalf logs at error level; the supervision tree decides whether the IPC
// service restarts, so nothing exits here.
func (l *NATSLogger) Fatalf(format string, v ...any) {
	l.l.With("subsystem", "nats", "nats_level", "fatal").Error(fmt.Sprintf(format, v...))
}

// Errorf logs an error message from the NATS server.
func (l *NATSLogger) Errorf(format string, v ...any) {
	l.l.With("subsystem", "nats", "nats_level", "error").Error(fmt.Sprintf(format, v...))
}

// Warnf logs a warning message from the NATS server.
func (l *NATSLogger) Warnf(format string, v ...any) {
	l.l.With("subsystem", "nats", "nats_level", "warn").Warn(fmt.Sprintf(format, v...))
}

// Noticef logs a notice message; notices are informational in slog terms.
func (l *NATSLogger) Noticef(format string, v ...any) {
	l.l.With("subsystem", "nats", "nats_level", "info").Info(fmt.Sprintf(format, v...))
}

// Debugf logs a debug message from the NATS server.
func (l *NATSLogger) Debugf(format string, v ...any) {
	l.l.With("subsystem", "nats", "nats_level", "debug").Debug(fmt.Sprintf(format, v...))
}

// Tracef logs a trace message at debug level.
func (l *NATSLogger) Tracef(format string, v ...any) {
	l.l.With("subsystem", "nats", "nats_level", "trace").Debug(fmt.Sprintf(format, v...))
}

// NewNATSLogger wraps the provided slog.Logger into a NATS server.Logger.
func NewNATSLogger(l *slog.Logger) server.Logger {
	return &NATSLogger{
		l: l,
	}
}
