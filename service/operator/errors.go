// SPDX-License-Identifier: BSD-3-Clause

package operator

import "errors"

var (
	// ErrNameEmpty indicates the operator has no name.
	ErrNameEmpty = errors.New("operator name cannot be empty")
	// ErrIPCNil indicates neither an IPC service nor an external connection
	// provider was configured.
	ErrIPCNil = errors.New("no IPC service or connection configured")
	// ErrAddProcess indicates a service could not be added to the tree.
	ErrAddProcess = errors.New("failed to add process")
	// ErrPanicked indicates the operator recovered from a panic.
	ErrPanicked = errors.New("operator panicked")
)
