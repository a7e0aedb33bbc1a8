// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import "errors"

var (
	// ErrInvalidConfiguration indicates the display service configuration is invalid.
	ErrInvalidConfiguration = errors.New("invalid displaysrv configuration")
	// ErrBusFailure indicates a SPI transfer to the panel failed.
	ErrBusFailure = errors.New("display bus failure")
	// ErrControllerFailure indicates the panel rejected a command.
	ErrControllerFailure = errors.New("display controller failure")
)
