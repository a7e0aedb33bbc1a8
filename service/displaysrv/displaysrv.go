// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/daschl/espressod/pkg/log"
	"github.com/daschl/espressod/service"
)

// Compile-time assertion that DisplaySrv implements service.Service.
var _ service.Service = (*DisplaySrv)(nil)

// DisplaySrv periodically renders the telemetry snapshot onto the status
// panel. It is a pure consumer: it never writes the snapshot and never
// touches the control path. Frames that fail to draw are dropped — the next
// tick paints a fresh one anyway.
type DisplaySrv struct {
	config   *config
	logger   *slog.Logger
	tracer   trace.Tracer
	renderer *renderer
}

// New creates the display service with the provided options.
func New(opts ...Option) *DisplaySrv {
	cfg := &config{
		serviceName:    DefaultServiceName,
		redrawInterval: DefaultRedrawInterval,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	return &DisplaySrv{
		config:   cfg,
		renderer: newRenderer(),
	}
}

// Name returns the service name.
func (s *DisplaySrv) Name() string {
	return s.config.serviceName
}

// Run redraws the panel at the configured cadence until the context is
// canceled. The display bus is exclusively owned by this goroutine. The
// service does not use the message bus; ipcConn may be nil.
func (s *DisplaySrv) Run(ctx context.Context, _ nats.InProcessConnProvider) error {
	s.tracer = otel.Tracer(s.config.serviceName)

	ctx, span := s.tracer.Start(ctx, "displaysrv.Run")
	defer span.End()

	s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)

	if err := s.config.Validate(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	s.logger.InfoContext(ctx, "Display service started", "redraw_interval", s.config.redrawInterval)

	ticker := time.NewTicker(s.config.redrawInterval)
	defer ticker.Stop()

	// One-shot hardware bring-up happens on the first scheduled tick, not
	// in Run's prologue, so a panel that is slow out of reset only delays
	// frames, never service startup.
	initialized := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !initialized {
			if err := s.config.driver.Reset(ctx); err != nil {
				s.logger.WarnContext(ctx, "Display reset failed", "error", err)
				continue
			}
			if err := s.config.driver.Init(ctx); err != nil {
				s.logger.WarnContext(ctx, "Display init failed", "error", err)
				continue
			}
			initialized = true
			s.logger.InfoContext(ctx, "Display initialized")
		}

		s.redraw(ctx)
	}
}

// redraw renders one frame from the snapshot and pushes it to the panel.
// Draw or flush failures drop the frame silently: the operator sees a stale
// screen for a second, the alive glyph makes longer outages visible.
func (s *DisplaySrv) redraw(ctx context.Context) {
	frame := s.renderer.render(s.config.snap.Load())

	if err := s.config.driver.Draw(frame); err != nil {
		s.logger.DebugContext(ctx, "Dropping frame, draw failed", "error", err)
		return
	}
	if err := s.config.driver.Flush(); err != nil {
		s.logger.DebugContext(ctx, "Dropping frame, flush failed", "error", err)
	}
}
