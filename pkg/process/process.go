// SPDX-License-Identifier: BSD-3-Clause

package process

import (
	"context"
	"fmt"

	"cirello.io/oversight/v2"
	"github.com/nats-io/nats.go"

	"github.com/daschl/espressod/service"
)

// New wraps a service.Service into an oversight.ChildProcess. The wrapper
// recovers panics and converts them to errors carrying the service name, so
// a panicking service restarts under supervision instead of taking the
// daemon down — the watchdog covers the case where restarting cannot help.
func New(s service.Service, ipcConn nats.InProcessConnProvider) oversight.ChildProcess {
	return func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s panicked: %v", s.Name(), r)
			}
		}()

		return s.Run(ctx, ipcConn)
	}
}
