// SPDX-License-Identifier: BSD-3-Clause

package watchdog

import "errors"

var (
	// ErrOpenFailed indicates the watchdog device could not be opened.
	ErrOpenFailed = errors.New("failed to open watchdog device")
	// ErrConfigureFailed indicates the timeout could not be programmed.
	ErrConfigureFailed = errors.New("failed to configure watchdog")
	// ErrPetFailed indicates a keepalive ioctl failed.
	ErrPetFailed = errors.New("failed to pet watchdog")
	// ErrCloseFailed indicates the magic close did not disarm the watchdog.
	ErrCloseFailed = errors.New("failed to close watchdog device")
)
