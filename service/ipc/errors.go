// SPDX-License-Identifier: BSD-3-Clause

package ipc

import "errors"

var (
	// ErrInvalidConfiguration indicates the IPC service configuration is invalid.
	ErrInvalidConfiguration = errors.New("invalid ipc configuration")
	// ErrServerCreationFailed indicates the embedded NATS server could not be created.
	ErrServerCreationFailed = errors.New("failed to create NATS server")
	// ErrServerTimeout indicates the server did not become ready in time.
	ErrServerTimeout = errors.New("NATS server startup timeout")
	// ErrConnectionNotAvailable indicates the server does not exist yet.
	ErrConnectionNotAvailable = errors.New("IPC connection not available")
	// ErrServerNotReady indicates the server exists but is not accepting connections.
	ErrServerNotReady = errors.New("IPC server not ready")
	// ErrInProcessConnFailed indicates in-process connection creation failed.
	ErrInProcessConnFailed = errors.New("failed to create in-process connection")
)
