// SPDX-License-Identifier: BSD-3-Clause

package operator

import (
	"context"
	"fmt"

	"cirello.io/oversight/v2"
	"github.com/arunsworld/nursery"
	"github.com/nats-io/nats.go"

	"github.com/daschl/espressod/pkg/log"
	"github.com/daschl/espressod/pkg/process"
	"github.com/daschl/espressod/pkg/telemetry"
	"github.com/daschl/espressod/service"
)

const defaultLogo = `
         ) )
        ( (
      ........
      |      |]
      \      /
       '----'
     espressod
`

// Compile-time assertion that Operator implements service.Service.
var _ service.Service = (*Operator)(nil)

// Operator assembles and supervises the espressod services: the IPC bus,
// the control supervisor, the display renderer and the optional wireless
// publisher. Services restart independently under the supervision tree; the
// control loop carries the safety guarantees, so a flapping display never
// touches the heater.
type Operator struct {
	config
}

// New creates an operator with the provided configuration options. Targets
// wire the board-specific drivers through the per-service options.
func New(opts ...Option) *Operator {
	cfg := &config{
		name:      "operator",
		timeout:   DefaultServiceTimeout,
		otelSetup: telemetry.DefaultSetup,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return &Operator{
		config: *cfg,
	}
}

// Name returns the operator's name.
func (s *Operator) Name() string {
	return s.name
}

// Run starts the supervision tree and blocks until the context is canceled
// or a fatal startup error occurs. If ipcConn is nil the operator starts
// the embedded IPC service configured with WithIPC and connects the other
// services to it; with neither, Run returns ErrIPCNil.
func (s *Operator) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) (err error) {
	if s.name == "" {
		return ErrNameEmpty
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s %w: %v", s.Name(), ErrPanicked, r)
		}
	}()

	// Telemetry globals first: the logger's OTEL bridge captures the
	// provider at construction time.
	s.otelSetup()

	l := log.GetGlobalLogger().With("service", s.name)

	if !s.disableLogo {
		l.Info(defaultLogo)
	}

	if s.ipc == nil && ipcConn == nil {
		return ErrIPCNil
	}

	supervisionTree := oversight.New(
		oversight.NeverHalt(),
		oversight.DefaultRestartStrategy(),
		oversight.WithLogger(log.NewOversightLogger(l)),
	)

	if s.ipc != nil && ipcConn == nil {
		if err := supervisionTree.Add(
			process.New(s.ipc, nil),
			oversight.Transient(),
			oversight.Timeout(s.timeout),
			s.ipc.Name(),
		); err != nil {
			return fmt.Errorf("%w %s to tree: %w", ErrAddProcess, s.ipc.Name(), err)
		}
	}

	supervise := func(ctx context.Context, c chan error) {
		c <- supervisionTree.Start(ctx)
	}

	spawnProcs := func(ctx context.Context, c chan error) {
		conn := ipcConn
		if conn == nil {
			conn = s.ipc.GetConnProvider()
		}

		for _, svc := range s.services() {
			if err := supervisionTree.Add(
				process.New(svc, conn),
				oversight.Transient(),
				oversight.Timeout(s.timeout),
				svc.Name(),
			); err != nil {
				c <- fmt.Errorf("%w %s to tree: %w", ErrAddProcess, svc.Name(), err)
				return
			}
		}
	}

	l.InfoContext(ctx, "Starting child services", "service", s.name)
	return nursery.RunConcurrentlyWithContext(ctx, supervise, spawnProcs)
}

// services collects the configured non-IPC services in start order.
func (s *Operator) services() []service.Service {
	var out []service.Service
	if s.boilerctl != nil {
		out = append(out, s.boilerctl)
	}
	if s.displaysrv != nil {
		out = append(out, s.displaysrv)
	}
	if s.blesrv != nil {
		out = append(out, s.blesrv)
	}
	out = append(out, s.extraServices...)
	return out
}
