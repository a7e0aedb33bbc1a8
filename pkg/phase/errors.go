// SPDX-License-Identifier: BSD-3-Clause

package phase

import "errors"

var (
	// ErrTransitionFailed indicates a phase transition could not complete,
	// usually because the warm entry action returned an error.
	ErrTransitionFailed = errors.New("phase transition failed")
)
