// SPDX-License-Identifier: BSD-3-Clause

package boilerctl

import (
	"fmt"
	"time"

	"github.com/daschl/espressod/pkg/boiler"
	"github.com/daschl/espressod/pkg/heater"
	"github.com/daschl/espressod/pkg/snapshot"
)

const (
	DefaultServiceName        = "boilerctl"
	DefaultServiceDescription = "Boiler control supervisor for the espresso machine"
	DefaultServiceVersion     = "1.0.0"
	DefaultSubjectPrefix      = "boilerctl"

	// DefaultMeasureInterval matches the conversion cadence of TSIC-class
	// probes and bounds the cold-to-warm detection latency to half a second.
	DefaultMeasureInterval = 500 * time.Millisecond

	// DefaultTargetTemp is the brew setpoint in °C.
	DefaultTargetTemp = 95.0

	// Cold-start gains: aggressive ramp, tolerating overshoot risk for
	// time-to-ready.
	DefaultStartKp = 200.0
	DefaultStartKi = 0.03
	DefaultStartKd = 0.0

	// Warm gains: hold the setpoint with minimal cycling.
	DefaultWarmKp = 69.0
	DefaultWarmKi = 0.17
	DefaultWarmKd = 0.0
)

type config struct {
	serviceName        string
	serviceDescription string
	serviceVersion     string
	targetTemp         float32
	startKp            float32
	startKi            float32
	startKd            float32
	warmKp             float32
	warmKi             float32
	warmKd             float32
	coldStartEnabled   bool
	windowSize         time.Duration
	measureInterval    time.Duration
	heaterTick         time.Duration
	broadcastReadings  bool
	subjectPrefix      string

	line   heater.Line
	driver boiler.Driver
	snap   *snapshot.State
	wdt    Watchdog
}

// Validate checks that the configuration is complete and sane.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if c.line == nil {
		return fmt.Errorf("heater line is required")
	}
	if c.driver == nil {
		return fmt.Errorf("sensor driver is required")
	}
	if c.snap == nil {
		return fmt.Errorf("telemetry snapshot is required")
	}
	if c.targetTemp <= 0 || c.targetTemp > 130 {
		return fmt.Errorf("target temperature %.1f°C outside sensible range", c.targetTemp)
	}
	if c.measureInterval <= 0 {
		return fmt.Errorf("measure interval must be positive")
	}
	if c.heaterTick <= 0 {
		return fmt.Errorf("heater tick must be positive")
	}
	if c.windowSize < c.heaterTick {
		return fmt.Errorf("window %v shorter than heater tick %v", c.windowSize, c.heaterTick)
	}
	return nil
}

// Option configures the control supervisor.
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

type targetTempOption struct {
	temp float32
}

func (o *targetTempOption) apply(c *config) {
	c.targetTemp = o.temp
}

// WithTargetTemperature sets the brew setpoint in °C.
func WithTargetTemperature(temp float32) Option {
	return &targetTempOption{temp: temp}
}

type coldStartGainsOption struct {
	kp, ki, kd float32
}

func (o *coldStartGainsOption) apply(c *config) {
	c.startKp, c.startKi, c.startKd = o.kp, o.ki, o.kd
}

// WithColdStartGains sets the aggressive warm-up gains.
func WithColdStartGains(kp, ki, kd float32) Option {
	return &coldStartGainsOption{kp: kp, ki: ki, kd: kd}
}

type warmGainsOption struct {
	kp, ki, kd float32
}

func (o *warmGainsOption) apply(c *config) {
	c.warmKp, c.warmKi, c.warmKd = o.kp, o.ki, o.kd
}

// WithWarmGains sets the steady-state gains.
func WithWarmGains(kp, ki, kd float32) Option {
	return &warmGainsOption{kp: kp, ki: ki, kd: kd}
}

type coldStartOption struct {
	enabled bool
}

func (o *coldStartOption) apply(c *config) {
	c.coldStartEnabled = o.enabled
}

// WithColdStart enables or disables the cold-start phase. Disabled means the
// supervisor begins directly in the warm phase.
func WithColdStart(enabled bool) Option {
	return &coldStartOption{enabled: enabled}
}

type windowSizeOption struct {
	window time.Duration
}

func (o *windowSizeOption) apply(c *config) {
	c.windowSize = o.window
}

// WithWindowSize sets the time-proportioning window of the heater actuator.
func WithWindowSize(window time.Duration) Option {
	return &windowSizeOption{window: window}
}

type measureIntervalOption struct {
	interval time.Duration
}

func (o *measureIntervalOption) apply(c *config) {
	c.measureInterval = o.interval
}

// WithMeasureInterval sets the sensor acquisition cadence.
func WithMeasureInterval(interval time.Duration) Option {
	return &measureIntervalOption{interval: interval}
}

type heaterTickOption struct {
	tick time.Duration
}

func (o *heaterTickOption) apply(c *config) {
	c.heaterTick = o.tick
}

// WithHeaterTick sets the actuator tick cadence. Only tests shrink this.
func WithHeaterTick(tick time.Duration) Option {
	return &heaterTickOption{tick: tick}
}

type heaterLineOption struct {
	line heater.Line
}

func (o *heaterLineOption) apply(c *config) {
	c.line = o.line
}

// WithHeaterLine hands the exclusively owned heater GPIO line to the
// supervisor.
func WithHeaterLine(line heater.Line) Option {
	return &heaterLineOption{line: line}
}

type sensorDriverOption struct {
	driver boiler.Driver
}

func (o *sensorDriverOption) apply(c *config) {
	c.driver = o.driver
}

// WithSensorDriver hands the boiler temperature driver to the supervisor.
func WithSensorDriver(driver boiler.Driver) Option {
	return &sensorDriverOption{driver: driver}
}

type snapshotOption struct {
	snap *snapshot.State
}

func (o *snapshotOption) apply(c *config) {
	c.snap = o.snap
}

// WithSnapshot wires the shared telemetry snapshot. The supervisor is its
// only writer; display and wireless read it.
func WithSnapshot(snap *snapshot.State) Option {
	return &snapshotOption{snap: snap}
}

type watchdogOption struct {
	wdt Watchdog
}

func (o *watchdogOption) apply(c *config) {
	c.wdt = o.wdt
}

// WithWatchdog wires the hardware watchdog. Omitting it disables petting,
// which is only acceptable on development setups.
func WithWatchdog(wdt Watchdog) Option {
	return &watchdogOption{wdt: wdt}
}

type broadcastReadingsOption struct {
	enabled bool
}

func (o *broadcastReadingsOption) apply(c *config) {
	c.broadcastReadings = o.enabled
}

// WithBroadcastReadings toggles the JSON telemetry broadcast on the bus.
func WithBroadcastReadings(enabled bool) Option {
	return &broadcastReadingsOption{enabled: enabled}
}

type subjectPrefixOption struct {
	prefix string
}

func (o *subjectPrefixOption) apply(c *config) {
	c.subjectPrefix = o.prefix
}

// WithSubjectPrefix overrides the NATS subject prefix for broadcasts.
func WithSubjectPrefix(prefix string) Option {
	return &subjectPrefixOption{prefix: prefix}
}
