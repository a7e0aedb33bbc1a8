// SPDX-License-Identifier: BSD-3-Clause

package pid

import "errors"

var (
	// ErrNotReady indicates Compute was called while the controller is in
	// Manual mode. Nothing in the controller changes when this is returned.
	ErrNotReady = errors.New("pid controller not in automatic mode")
	// ErrNegativeTuning indicates a negative gain was passed to SetTunings.
	ErrNegativeTuning = errors.New("pid tunings must not be negative")
	// ErrInvalidSampleTime indicates a non-positive sample period.
	ErrInvalidSampleTime = errors.New("pid sample time must be positive")
	// ErrInvalidLimits indicates output limits with min >= max.
	ErrInvalidLimits = errors.New("pid output limits must satisfy min < max")
)
