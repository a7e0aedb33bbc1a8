// SPDX-License-Identifier: BSD-3-Clause

// The mock board runs the full service stack against in-memory drivers: a
// replayed warm-up curve on the sensor, a fake heater line, a recording
// display and radio, and a mock watchdog. Useful for bring-up of everything
// that is not hardware.
package main

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/daschl/espressod/pkg/boiler"
	"github.com/daschl/espressod/pkg/snapshot"
	"github.com/daschl/espressod/pkg/watchdog"
	"github.com/daschl/espressod/service/blesrv"
	"github.com/daschl/espressod/service/boilerctl"
	"github.com/daschl/espressod/service/displaysrv"
	"github.com/daschl/espressod/service/operator"
)

const (
	targetTemp  = 95.0
	coldEnabled = true
)

// fakeHeaterLine is a stand-in for the relay GPIO.
type fakeHeaterLine struct {
	value int
}

func (l *fakeHeaterLine) SetValue(value int) error {
	l.value = value
	return nil
}

func (l *fakeHeaterLine) Value() (int, error) {
	return l.value, nil
}

func main() {
	// The production SoM has little memory and no swap; behave the same way
	// in the mock so leaks surface early.
	debug.SetMemoryLimit(64 * 1024 * 1024)

	// A plausible warm-up curve that overshoots the setpoint slightly and
	// settles on it, so the mock exercises the cold-to-warm transition.
	sensor := boiler.NewMockDriver(
		21, 24, 29, 36, 44, 53, 61, 69, 76, 82,
		87, 90, 92.5, 94, 94.8, 95.3, 95.1, 94.9, 95.0,
	)

	snap := snapshot.New(targetTemp,
		boilerctl.DefaultStartKp, boilerctl.DefaultStartKi, boilerctl.DefaultStartKd,
		coldEnabled)

	if err := operator.New(
		operator.WithIPC(),
		operator.WithBoilerctl(
			boilerctl.WithTargetTemperature(targetTemp),
			boilerctl.WithColdStart(coldEnabled),
			boilerctl.WithHeaterLine(&fakeHeaterLine{}),
			boilerctl.WithSensorDriver(sensor),
			boilerctl.WithSnapshot(snap),
			boilerctl.WithWatchdog(watchdog.NewMock(false)),
			boilerctl.WithMeasureInterval(500*time.Millisecond),
		),
		operator.WithDisplaysrv(
			displaysrv.WithDriver(displaysrv.NewMockDriver()),
			displaysrv.WithSnapshot(snap),
		),
		operator.WithBlesrv(
			blesrv.WithRadio(blesrv.NewMockRadio()),
			blesrv.WithSnapshot(snap),
		),
	).Run(context.Background(), nil); err != nil {
		panic(err)
	}
}
