// SPDX-License-Identifier: BSD-3-Clause

package blesrv

import (
	"fmt"
	"time"

	"github.com/daschl/espressod/pkg/snapshot"
)

const (
	DefaultServiceName = "blesrv"
	// DefaultDeviceName is the advertised local name.
	DefaultDeviceName = "espressod-controller"
	// DefaultAdvertiseInterval matches the usual fast-advertising cadence.
	DefaultAdvertiseInterval = 200 * time.Millisecond
	// DefaultPublishInterval mirrors the supervisor's sensor cadence; the
	// characteristic never lags the snapshot by more than one reading.
	DefaultPublishInterval = 500 * time.Millisecond
)

type config struct {
	serviceName       string
	deviceName        string
	advertiseInterval time.Duration
	publishInterval   time.Duration
	radio             Radio
	snap              *snapshot.State
}

// Validate checks that the configuration is complete.
func (c *config) Validate() error {
	if c.serviceName == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if c.deviceName == "" {
		return fmt.Errorf("device name cannot be empty")
	}
	if c.radio == nil {
		return fmt.Errorf("radio is required")
	}
	if c.snap == nil {
		return fmt.Errorf("telemetry snapshot is required")
	}
	if c.advertiseInterval <= 0 || c.publishInterval <= 0 {
		return fmt.Errorf("intervals must be positive")
	}
	return nil
}

// Option configures the wireless publisher.
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

type deviceNameOption struct {
	name string
}

func (o *deviceNameOption) apply(c *config) {
	c.deviceName = o.name
}

// WithDeviceName overrides the advertised device name.
func WithDeviceName(name string) Option {
	return &deviceNameOption{name: name}
}

type advertiseIntervalOption struct {
	interval time.Duration
}

func (o *advertiseIntervalOption) apply(c *config) {
	c.advertiseInterval = o.interval
}

// WithAdvertiseInterval sets the advertising cadence.
func WithAdvertiseInterval(interval time.Duration) Option {
	return &advertiseIntervalOption{interval: interval}
}

type publishIntervalOption struct {
	interval time.Duration
}

func (o *publishIntervalOption) apply(c *config) {
	c.publishInterval = o.interval
}

// WithPublishInterval sets how often the characteristic value refreshes.
func WithPublishInterval(interval time.Duration) Option {
	return &publishIntervalOption{interval: interval}
}

type radioOption struct {
	radio Radio
}

func (o *radioOption) apply(c *config) {
	c.radio = o.radio
}

// WithRadio hands the radio transport to the publisher.
func WithRadio(radio Radio) Option {
	return &radioOption{radio: radio}
}

type snapshotOption struct {
	snap *snapshot.State
}

func (o *snapshotOption) apply(c *config) {
	c.snap = o.snap
}

// WithSnapshot wires the telemetry snapshot the temperature is read from.
func WithSnapshot(snap *snapshot.State) Option {
	return &snapshotOption{snap: snap}
}
