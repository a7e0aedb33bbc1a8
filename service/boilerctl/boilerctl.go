// SPDX-License-Identifier: BSD-3-Clause

package boilerctl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/micro"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/daschl/espressod/pkg/boiler"
	"github.com/daschl/espressod/pkg/heater"
	"github.com/daschl/espressod/pkg/log"
	"github.com/daschl/espressod/pkg/phase"
	"github.com/daschl/espressod/pkg/pid"
	"github.com/daschl/espressod/service"
)

// Compile-time assertion that BoilerCtl implements service.Service.
var _ service.Service = (*BoilerCtl)(nil)

// Watchdog is the slice of the hardware watchdog the control loop uses.
// Both the real /dev/watchdog timer and the mock satisfy it.
type Watchdog interface {
	Pet() error
	BootCausedByWatchdog() (bool, error)
}

// BoilerCtl is the control supervisor: it owns the sensor, the heater
// actuator and the warm-up phase machine, and runs the two periodic jobs
// (MeasureTemp at 500 ms, DriveHeater at 20 ms) serially in one goroutine.
// Serial execution is the concurrency design, not an accident — the jobs
// share the actuator and the snapshot writer role, and running them in one
// goroutine removes every lock from the control path.
type BoilerCtl struct {
	config       *config
	logger       *slog.Logger
	tracer       trace.Tracer
	nc           *nats.Conn
	microService micro.Service
	sensor       *boiler.Boiler
	heater       *heater.Heater
	phases       *phase.Machine
	iterations   metric.Int64Counter

	// sensorFault latches between a failed MeasureTemp and the recovery
	// read. DriveHeater consults it to keep the pin low for the whole fault
	// interval. Only the control goroutine touches it.
	sensorFault bool
}

// New creates the control supervisor with the provided options.
func New(opts ...Option) *BoilerCtl {
	cfg := &config{
		serviceName:        DefaultServiceName,
		serviceDescription: DefaultServiceDescription,
		serviceVersion:     DefaultServiceVersion,
		targetTemp:         DefaultTargetTemp,
		startKp:            DefaultStartKp,
		startKi:            DefaultStartKi,
		startKd:            DefaultStartKd,
		warmKp:             DefaultWarmKp,
		warmKi:             DefaultWarmKi,
		warmKd:             DefaultWarmKd,
		coldStartEnabled:   true,
		windowSize:         heater.DefaultWindowSize,
		measureInterval:    DefaultMeasureInterval,
		heaterTick:         heater.TickPeriod,
		broadcastReadings:  true,
		subjectPrefix:      DefaultSubjectPrefix,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}

	return &BoilerCtl{
		config: cfg,
	}
}

// Name returns the service name.
func (s *BoilerCtl) Name() string {
	return s.config.serviceName
}

// Run starts the control supervisor. It reads the watchdog boot status (the
// watchdog itself is armed by whoever opened it), initializes the actuator
// and phase machine, optionally wires the IPC endpoints, and then
// enters the periodic job loop until the context is canceled. On the way
// out the heater is forced off.
func (s *BoilerCtl) Run(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	s.tracer = otel.Tracer(s.config.serviceName)

	ctx, span := s.tracer.Start(ctx, "boilerctl.Run")
	defer span.End()

	s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)

	if err := s.initialize(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	if ipcConn != nil {
		if err := s.connectIPC(ctx, ipcConn); err != nil {
			span.RecordError(err)
			return err
		}
		defer s.nc.Drain() //nolint:errcheck
	}

	s.logger.InfoContext(ctx, "Control supervisor started",
		"target_temp", s.config.targetTemp,
		"coldstart", s.config.coldStartEnabled,
		"window", s.config.windowSize,
		"watchdog_reset", s.config.snap.WatchdogReset())

	s.runJobs(ctx)

	// The relay must never stay energised past the control loop.
	if err := s.heater.TurnOff(); err != nil {
		s.logger.ErrorContext(context.WithoutCancel(ctx), "Failed to de-energise heater on shutdown", "error", err)
	}
	s.config.snap.SetHeaterOn(false)

	return ctx.Err()
}

// initialize builds the control chain: snapshot flags, sensor adapter,
// actuator with the phase-appropriate initial gains, and the phase machine.
// Split from Run so the tests can drive the jobs directly.
func (s *BoilerCtl) initialize(ctx context.Context) error {
	if s.logger == nil {
		s.logger = log.GetGlobalLogger().With("service", s.config.serviceName)
	}

	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if s.config.wdt != nil {
		reset, err := s.config.wdt.BootCausedByWatchdog()
		if err != nil {
			s.logger.WarnContext(ctx, "Could not read watchdog boot status", "error", err)
		} else if reset {
			s.logger.WarnContext(ctx, "Previous boot ended in a watchdog reset")
			s.config.snap.SetWatchdogReset(true)
		}
	}

	sensor, err := boiler.New(s.config.driver, s.logger)
	if err != nil {
		return err
	}
	s.sensor = sensor

	kp, ki, kd := s.config.startKp, s.config.startKi, s.config.startKd
	if !s.config.coldStartEnabled {
		kp, ki, kd = s.config.warmKp, s.config.warmKi, s.config.warmKd
	}

	h, err := heater.New(s.config.line, heater.Config{
		Setpoint:   s.config.targetTemp,
		Kp:         kp,
		Ki:         ki,
		Kd:         kd,
		WindowSize: s.config.windowSize,
	})
	if err != nil {
		return err
	}
	s.heater = h

	if !s.config.coldStartEnabled {
		// The warm schedule uses the classic proportional source; the
		// actuator default is on-measurement for the cold ramp.
		if err := h.UpdatePID(kp, ki, kd, pid.OnError); err != nil {
			return err
		}
	}

	s.config.snap.SetTunings(kp, ki, kd)

	s.phases = phase.New(s.config.coldStartEnabled, s.enterWarm)

	meter := otel.Meter(s.config.serviceName)
	s.iterations, err = meter.Int64Counter("boilerctl.measure.iterations",
		metric.WithDescription("Completed MeasureTemp job iterations"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMeterCreationFailed, err)
	}

	return nil
}

// enterWarm is the phase-machine entry action for the warm state: push the
// gentle gains into the live PID and update the snapshot. A tuning rejection
// here is a programming error in the configured gains and aborts the
// transition.
func (s *BoilerCtl) enterWarm(ctx context.Context) error {
	if err := s.heater.UpdatePID(s.config.warmKp, s.config.warmKi, s.config.warmKd, pid.OnError); err != nil {
		return err
	}

	s.config.snap.SetTunings(s.config.warmKp, s.config.warmKi, s.config.warmKd)
	s.config.snap.DisableColdStart()

	s.logger.InfoContext(ctx, "Cold start complete, switching to warm gains",
		"kp", s.config.warmKp,
		"ki", s.config.warmKi,
		"kd", s.config.warmKd)

	return nil
}

func (s *BoilerCtl) connectIPC(ctx context.Context, ipcConn nats.InProcessConnProvider) error {
	nc, err := nats.Connect("", nats.InProcessServer(ipcConn))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNATSConnectionFailed, err)
	}
	s.nc = nc

	s.microService, err = micro.AddService(nc, micro.Config{
		Name:        s.config.serviceName,
		Description: s.config.serviceDescription,
		Version:     s.config.serviceVersion,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMicroServiceCreationFailed, err)
	}

	err = s.microService.AddEndpoint("get-state", micro.HandlerFunc(func(req micro.Request) {
		data, err := json.Marshal(s.config.snap.Load())
		if err != nil {
			_ = req.Error("500", "failed to marshal state", nil)
			return
		}
		_ = req.Respond(data)
	}))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEndpointRegistrationFailed, err)
	}

	s.logger.InfoContext(ctx, "IPC endpoints registered", "endpoint", "get-state")

	return nil
}

func (s *BoilerCtl) publishReading(ctx context.Context) {
	if s.nc == nil || !s.config.broadcastReadings {
		return
	}

	data, err := json.Marshal(s.config.snap.Load())
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to marshal telemetry reading", "error", err)
		return
	}

	subject := s.config.subjectPrefix + ".telemetry.reading"
	if err := s.nc.Publish(subject, data); err != nil {
		s.logger.DebugContext(ctx, "Failed to publish telemetry reading", "error", err)
	}
}
