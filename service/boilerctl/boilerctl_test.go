// SPDX-License-Identifier: BSD-3-Clause

package boilerctl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daschl/espressod/pkg/boiler"
	"github.com/daschl/espressod/pkg/snapshot"
	"github.com/daschl/espressod/pkg/watchdog"
)

// fakeLine is an in-memory heater GPIO line.
type fakeLine struct {
	value int
}

func (l *fakeLine) SetValue(value int) error {
	l.value = value
	return nil
}

func (l *fakeLine) Value() (int, error) {
	return l.value, nil
}

type fixture struct {
	svc    *BoilerCtl
	line   *fakeLine
	driver *boiler.MockDriver
	snap   *snapshot.State
	wdt    *watchdog.Mock
}

func newFixture(t *testing.T, driver *boiler.MockDriver, opts ...Option) *fixture {
	t.Helper()

	line := &fakeLine{}
	snap := snapshot.New(DefaultTargetTemp, DefaultStartKp, DefaultStartKi, DefaultStartKd, true)
	wdt := watchdog.NewMock(false)

	base := []Option{
		WithHeaterLine(line),
		WithSensorDriver(driver),
		WithSnapshot(snap),
		WithWatchdog(wdt),
	}
	svc := New(append(base, opts...)...)
	require.NoError(t, svc.initialize(context.Background()))

	return &fixture{svc: svc, line: line, driver: driver, snap: snap, wdt: wdt}
}

func TestColdStartToWarmTransition(t *testing.T) {
	f := newFixture(t, boiler.NewMockDriver(20, 40, 70, 94.9, 95.1, 95.0))
	ctx := context.Background()

	// Four readings at or below target: still cold.
	for range 4 {
		f.svc.measureTemp(ctx)
	}
	assert.True(t, f.snap.InColdStart())
	kp, ki, kd := f.snap.Tunings()
	assert.Equal(t, float32(DefaultStartKp), kp)
	assert.Equal(t, float32(DefaultStartKi), ki)
	assert.Equal(t, float32(DefaultStartKd), kd)

	// The 95.1 reading crosses the target.
	f.svc.measureTemp(ctx)
	assert.False(t, f.snap.InColdStart())
	kp, ki, kd = f.snap.Tunings()
	assert.Equal(t, float32(DefaultWarmKp), kp)
	assert.Equal(t, float32(DefaultWarmKi), ki)
	assert.Equal(t, float32(DefaultWarmKd), kd)

	// Dipping back to 95.0 must not revert the phase or the gains.
	f.svc.measureTemp(ctx)
	assert.False(t, f.snap.InColdStart())
	kp, _, _ = f.snap.Tunings()
	assert.Equal(t, float32(DefaultWarmKp), kp)
}

func TestColdStartDisabledStartsWithWarmGains(t *testing.T) {
	f := newFixture(t, boiler.NewMockDriver(20), WithColdStart(false))

	kp, ki, kd := f.snap.Tunings()
	assert.Equal(t, float32(DefaultWarmKp), kp)
	assert.Equal(t, float32(DefaultWarmKi), ki)
	assert.Equal(t, float32(DefaultWarmKd), kd)
	assert.False(t, f.svc.phases.InColdStart())
}

func TestSensorFaultForcesHeaterSafe(t *testing.T) {
	f := newFixture(t, boiler.NewMockDriver(90))
	ctx := context.Background()

	// Normal operation: temperature in the snapshot, heater cycling once
	// the integrator has had a window to act (the first window absorbs the
	// initial measurement jump).
	f.svc.measureTemp(ctx)
	assert.Equal(t, float32(90), f.snap.CurrentTemp())
	for range 100 {
		f.svc.driveHeater(ctx)
	}
	assert.Positive(t, f.svc.heater.LastOutput(), "5°C below setpoint must demand heat")
	f.svc.driveHeater(ctx)
	assert.True(t, f.snap.HeaterOn())

	// Three consecutive faults: pin low and reported off the whole time.
	f.driver.Fail(errors.New("protocol timeout"))
	for range 3 {
		f.svc.measureTemp(ctx)
		assert.False(t, f.snap.HeaterOn())
		assert.Zero(t, f.line.value)
		for range 25 {
			f.svc.driveHeater(ctx)
			assert.False(t, f.snap.HeaterOn())
			assert.Zero(t, f.line.value, "pin must stay low for the entire fault interval")
		}
	}

	// The last good temperature survives the fault.
	assert.Equal(t, float32(90), f.snap.CurrentTemp())

	// Recovery: cycling resumes within one window of ticks.
	f.driver.Recover()
	f.svc.measureTemp(ctx)

	sawOn := false
	for range 51 {
		f.svc.driveHeater(ctx)
		if f.snap.HeaterOn() {
			sawOn = true
			break
		}
	}
	assert.True(t, sawOn, "heater must resume cycling within one window after recovery")
}

func TestWatchdogPetOnEveryMeasureTick(t *testing.T) {
	f := newFixture(t, boiler.NewMockDriver(80))
	ctx := context.Background()

	f.svc.measureTemp(ctx)
	f.driver.Fail(errors.New("checksum mismatch"))
	f.svc.measureTemp(ctx)
	f.svc.measureTemp(ctx)

	// Faults degrade control but never starve the watchdog.
	assert.Equal(t, 3, f.wdt.Pets())
}

func TestWatchdogResetReflectedInSnapshot(t *testing.T) {
	driver := boiler.NewMockDriver(20)
	line := &fakeLine{}
	snap := snapshot.New(95, DefaultStartKp, DefaultStartKi, DefaultStartKd, true)

	svc := New(
		WithHeaterLine(line),
		WithSensorDriver(driver),
		WithSnapshot(snap),
		WithWatchdog(watchdog.NewMock(true)),
	)
	require.NoError(t, svc.initialize(context.Background()))

	assert.True(t, snap.WatchdogReset())
}

func TestValidateRejectsIncompleteConfig(t *testing.T) {
	svc := New(WithSensorDriver(boiler.NewMockDriver(20)))
	err := svc.initialize(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestRunStopsOnContextAndLeavesHeaterOff(t *testing.T) {
	line := &fakeLine{}
	driver := boiler.NewMockDriver(40)
	snap := snapshot.New(95, DefaultStartKp, DefaultStartKi, DefaultStartKd, true)
	wdt := watchdog.NewMock(false)

	svc := New(
		WithHeaterLine(line),
		WithSensorDriver(driver),
		WithSnapshot(snap),
		WithWatchdog(wdt),
		WithMeasureInterval(5*time.Millisecond),
		WithHeaterTick(time.Millisecond),
		WithWindowSize(20*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx, nil)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}

	assert.Positive(t, wdt.Pets(), "the loop must have petted the watchdog")
	assert.Zero(t, line.value, "heater must be de-energised after shutdown")
	assert.False(t, snap.HeaterOn())
}
