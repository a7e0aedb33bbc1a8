// SPDX-License-Identifier: BSD-3-Clause

package boiler

import (
	"context"
	"fmt"
	"log/slog"
)

// Driver is the temperature-sensor contract. A driver performs one blocking
// acquisition bounded by its protocol timeout and returns the raw reading in
// millidegrees Celsius. Any protocol-level failure (timeout, parity or
// checksum mismatch, bus error) is returned as-is; the adapter flattens it.
type Driver interface {
	ReadRaw(ctx context.Context) (int, error)
}

// Plausible reading bounds for an espresso boiler probe. Anything outside is
// a wiring or conversion fault, not a temperature.
const (
	minPlausibleTemp = -40.0
	maxPlausibleTemp = 150.0
)

// Boiler wraps the temperature-sensor driver with unit conversion, range
// validation and a last-known-good cache. A failed read leaves the cached
// value in place; the supervisor decides what a fault means for the heater.
type Boiler struct {
	driver   Driver
	logger   *slog.Logger
	lastTemp float32
	haveTemp bool
}

// New creates a boiler sensor adapter around the given driver.
func New(driver Driver, logger *slog.Logger) (*Boiler, error) {
	if driver == nil {
		return nil, ErrNoDriver
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Boiler{
		driver: driver,
		logger: logger.With("component", "boiler"),
	}, nil
}

// Read performs one acquisition and returns the temperature in °C. On
// success the cache is updated; on any failure the cache is left alone and
// the error wraps ErrSensorFault. Driver failures are also logged at debug
// level and wrapped into the returned error for diagnostics; upstream
// consumers only need errors.Is(err, ErrSensorFault).
func (b *Boiler) Read(ctx context.Context) (float32, error) {
	raw, err := b.driver.ReadRaw(ctx)
	if err != nil {
		b.logger.DebugContext(ctx, "Boiler temperature read failed", "error", err)
		return 0, fmt.Errorf("%w: %w", ErrSensorFault, err)
	}

	temp := float32(raw) / 1000.0
	if temp < minPlausibleTemp || temp > maxPlausibleTemp {
		b.logger.DebugContext(ctx, "Boiler temperature out of range", "celsius", temp)
		return 0, fmt.Errorf("%w: %.1f°C out of range", ErrSensorFault, temp)
	}

	b.lastTemp = temp
	b.haveTemp = true

	return temp, nil
}

// Last returns the cached temperature. The boolean is false until the first
// successful read.
func (b *Boiler) Last() (float32, bool) {
	return b.lastTemp, b.haveTemp
}
