// SPDX-License-Identifier: BSD-3-Clause

package ipc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/daschl/espressod/pkg/log"
	"github.com/daschl/espressod/service"
)

// Compile-time assertion that IPC implements service.Service.
var _ service.Service = (*IPC)(nil)

// IPC runs the embedded NATS server acting as the message bus between the
// espressod services. The server never listens on a socket — all traffic is
// in-process, which keeps the bus invisible from the network and free of
// auth concerns on a machine that also switches mains power.
type IPC struct {
	config *config
	server *server.Server
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates the IPC service with the provided options.
func New(opts ...Option) *IPC {
	cfg := &config{
		serviceName:     DefaultServiceName,
		serverName:      DefaultServerName,
		startupTimeout:  DefaultStartupTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &IPC{
		config: cfg,
	}
}

// Name returns the service name.
func (s *IPC) Name() string {
	return s.config.serviceName
}

// Run starts the embedded NATS server and blocks until the context is
// canceled. The ipcConn parameter must be nil: this service provides the IPC
// infrastructure rather than consuming it.
func (s *IPC) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.tracer = otel.Tracer(s.config.serviceName)

	ctx, span := s.tracer.Start(ctx, "ipc.Run")
	defer span.End()

	s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)

	if ipcConn != nil {
		err := fmt.Errorf("%w: external IPC connection provided", ErrInvalidConfiguration)
		span.RecordError(err)
		return err
	}

	ns, err := server.NewServer(&server.Options{
		ServerName: s.config.serverName,
		DontListen: true,
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrServerCreationFailed, err)
	}
	s.server = ns
	s.server.SetLoggerV2(log.NewNATSLogger(s.logger), false, false, false)

	s.logger.InfoContext(ctx, "Starting IPC server", "server_name", s.config.serverName)
	s.server.Start()

	if !s.server.ReadyForConnections(s.config.startupTimeout) {
		s.server.Shutdown()
		err := fmt.Errorf("%w: not ready within %v", ErrServerTimeout, s.config.startupTimeout)
		span.RecordError(err)
		return err
	}

	s.logger.InfoContext(ctx, "IPC server ready", "server_id", s.server.ID())

	<-ctx.Done()

	return s.shutdown(ctx)
}

// GetConnProvider returns a provider of in-process connections for the other
// services. It may be called before the server has started; it blocks for
// up to the startup timeout until the server exists. If the server still
// does not exist, the returned provider fails with ErrConnectionNotAvailable.
func (s *IPC) GetConnProvider() *ConnProvider {
	// The server usually exists within a few milliseconds of the operator
	// starting the tree; poll briefly rather than plumbing a ready channel.
	deadline := time.Now().Add(s.config.startupTimeout)
	for s.server == nil && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	return &ConnProvider{
		server: s.server,
	}
}

func (s *IPC) shutdown(ctx context.Context) error {
	err := ctx.Err()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.shutdownTimeout)
	defer cancel()

	s.logger.InfoContext(shutdownCtx, "Shutting down IPC server")

	if s.server != nil {
		done := make(chan struct{})
		go func() {
			defer close(done)
			s.server.Shutdown()
		}()

		select {
		case <-done:
		case <-shutdownCtx.Done():
			s.logger.WarnContext(shutdownCtx, "IPC server shutdown timed out")
		}
	}

	return err
}
