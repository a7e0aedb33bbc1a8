// SPDX-License-Identifier: BSD-3-Clause

package service

import (
	"context"

	"github.com/nats-io/nats.go"
)

// Service is the contract for the long-running daemons making up espressod.
// A service that returns an error is restarted by the supervision tree; a
// nil return marks it done (a oneshot). Names must be unique within the
// process since they key the supervision tree and the IPC endpoints.
type Service interface {
	// Name returns the unique name of the service.
	Name() string

	// Run starts the service and blocks until the context is canceled or
	// the service fails. ipcConn provides in-process connections to the
	// embedded message bus; services that do not use IPC accept nil.
	Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error
}
