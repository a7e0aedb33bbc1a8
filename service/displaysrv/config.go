// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import (
	"fmt"
	"time"

	"github.com/daschl/espressod/pkg/snapshot"
)

const (
	DefaultServiceName = "displaysrv"
	// DefaultRedrawInterval is a comfortable cadence for a status screen; a
	// boiler does not change faster than the eye can read.
	DefaultRedrawInterval = time.Second
)

type config struct {
	serviceName    string
	redrawInterval time.Duration
	driver         Driver
	snap           *snapshot.State
}

// Validate checks that the configuration is complete.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if c.driver == nil {
		return fmt.Errorf("display driver is required")
	}
	if c.snap == nil {
		return fmt.Errorf("telemetry snapshot is required")
	}
	if c.redrawInterval <= 0 {
		return fmt.Errorf("redraw interval must be positive")
	}
	return nil
}

// Option configures the display service.
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

type redrawIntervalOption struct {
	interval time.Duration
}

func (o *redrawIntervalOption) apply(c *config) {
	c.redrawInterval = o.interval
}

// WithRedrawInterval sets the redraw cadence.
func WithRedrawInterval(interval time.Duration) Option {
	return &redrawIntervalOption{interval: interval}
}

type driverOption struct {
	driver Driver
}

func (o *driverOption) apply(c *config) {
	c.driver = o.driver
}

// WithDriver hands the exclusively owned display driver to the service.
func WithDriver(driver Driver) Option {
	return &driverOption{driver: driver}
}

type snapshotOption struct {
	snap *snapshot.State
}

func (o *snapshotOption) apply(c *config) {
	c.snap = o.snap
}

// WithSnapshot wires the telemetry snapshot the frames are rendered from.
func WithSnapshot(snap *snapshot.State) Option {
	return &snapshotOption{snap: snap}
}
