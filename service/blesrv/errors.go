// SPDX-License-Identifier: BSD-3-Clause

package blesrv

import "errors"

var (
	// ErrInvalidConfiguration indicates the publisher configuration is invalid.
	ErrInvalidConfiguration = errors.New("invalid blesrv configuration")
	// ErrRadioFailure indicates the radio rejected setup or advertising.
	ErrRadioFailure = errors.New("radio failure")
)
