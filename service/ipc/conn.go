// SPDX-License-Identifier: BSD-3-Clause

package ipc

import (
	"fmt"
	"net"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

// ConnProvider hands out in-process connections to the embedded NATS server.
// It satisfies nats.InProcessConnProvider, so services connect with
// nats.Connect("", nats.InProcessServer(provider)).
type ConnProvider struct {
	server *server.Server
}

// InProcessConn creates a new in-process connection, waiting for the server
// to become ready if it is still starting.
func (p *ConnProvider) InProcessConn() (net.Conn, error) {
	if p.server == nil {
		return nil, ErrConnectionNotAvailable
	}

	if !p.server.ReadyForConnections(time.Minute) {
		return nil, ErrServerNotReady
	}

	conn, err := p.server.InProcessConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInProcessConnFailed, err)
	}

	return conn, nil
}
