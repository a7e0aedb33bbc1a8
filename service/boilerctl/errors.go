// SPDX-License-Identifier: BSD-3-Clause

package boilerctl

import "errors"

var (
	// ErrInvalidConfiguration indicates the supervisor configuration is invalid.
	ErrInvalidConfiguration = errors.New("invalid boilerctl configuration")
	// ErrNATSConnectionFailed indicates the IPC connection could not be established.
	ErrNATSConnectionFailed = errors.New("failed to connect to NATS")
	// ErrMicroServiceCreationFailed indicates micro service creation failed.
	ErrMicroServiceCreationFailed = errors.New("failed to create micro service")
	// ErrEndpointRegistrationFailed indicates endpoint registration failed.
	ErrEndpointRegistrationFailed = errors.New("failed to register endpoint")
	// ErrMeterCreationFailed indicates the telemetry meter could not be created.
	ErrMeterCreationFailed = errors.New("failed to create meter")
)
