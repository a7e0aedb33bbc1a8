// SPDX-License-Identifier: BSD-3-Clause

package log

import "errors"

var (
	// ErrLoggerInitialization indicates a failure during logger initialization.
	ErrLoggerInitialization = errors.New("failed to initialize logger")
	// ErrHandlerCreation indicates a failure to create a log handler.
	ErrHandlerCreation = errors.New("failed to create log handler")
	// ErrNATSLogger indicates a failure in the NATS logger adapter.
	ErrNATSLogger = errors.New("NATS logger adapter error")
	// ErrOversightLogger indicates a failure in the oversight logger adapter.
	ErrOversightLogger = errors.New("oversight logger adapter error")
)
