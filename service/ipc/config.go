// SPDX-License-Identifier: BSD-3-Clause

package ipc

import "time"

const (
	DefaultServiceName     = "ipc"
	DefaultServerName      = "espressod-ipc"
	DefaultStartupTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

type config struct {
	serviceName     string
	serverName      string
	startupTimeout  time.Duration
	shutdownTimeout time.Duration
}

// Option configures the IPC service.
type Option interface {
	apply(*config)
}

type serviceNameOption struct {
	name string
}

func (o *serviceNameOption) apply(c *config) {
	c.serviceName = o.name
}

// WithServiceName overrides the service name.
func WithServiceName(name string) Option {
	return &serviceNameOption{name: name}
}

type serverNameOption struct {
	name string
}

func (o *serverNameOption) apply(c *config) {
	c.serverName = o.name
}

// WithServerName overrides the embedded NATS server name.
func WithServerName(name string) Option {
	return &serverNameOption{name: name}
}

type startupTimeoutOption struct {
	timeout time.Duration
}

func (o *startupTimeoutOption) apply(c *config) {
	c.startupTimeout = o.timeout
}

// WithStartupTimeout bounds how long the server may take to become ready.
func WithStartupTimeout(timeout time.Duration) Option {
	return &startupTimeoutOption{timeout: timeout}
}

type shutdownTimeoutOption struct {
	timeout time.Duration
}

func (o *shutdownTimeoutOption) apply(c *config) {
	c.shutdownTimeout = o.timeout
}

// WithShutdownTimeout bounds the graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return &shutdownTimeoutOption{timeout: timeout}
}
