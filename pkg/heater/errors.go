// SPDX-License-Identifier: BSD-3-Clause

package heater

import "errors"

var (
	// ErrPin indicates a read or write on the heater GPIO line failed.
	ErrPin = errors.New("heater pin access failed")
	// ErrNoLine indicates the heater was constructed without a GPIO line.
	ErrNoLine = errors.New("heater requires a GPIO line")
	// ErrInvalidWindow indicates a time-proportioning window shorter than
	// one actuator tick.
	ErrInvalidWindow = errors.New("invalid time-proportioning window")
)
