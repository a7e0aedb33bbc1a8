// SPDX-License-Identifier: BSD-3-Clause

package heater

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daschl/espressod/pkg/pid"
)

// fakeLine is an in-memory GPIO line with optional injected failures.
type fakeLine struct {
	value    int
	setErr   error
	valueErr error
	sets     int
}

func (l *fakeLine) SetValue(value int) error {
	if l.setErr != nil {
		return l.setErr
	}
	l.value = value
	l.sets++
	return nil
}

func (l *fakeLine) Value() (int, error) {
	if l.valueErr != nil {
		return 0, l.valueErr
	}
	return l.value, nil
}

func newTestHeater(t *testing.T) (*Heater, *fakeLine) {
	t.Helper()

	line := &fakeLine{}
	h, err := New(line, Config{
		Setpoint:   95,
		Kp:         69,
		Ki:         0.17,
		WindowSize: time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, h.UpdatePID(69, 0.17, 0, pid.OnError))

	return h, line
}

func TestNewRejectsMissingLine(t *testing.T) {
	_, err := New(nil, Config{Setpoint: 95})
	assert.ErrorIs(t, err, ErrNoLine)
}

func TestNewRejectsTinyWindow(t *testing.T) {
	_, err := New(&fakeLine{}, Config{Setpoint: 95, WindowSize: 5 * time.Millisecond})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestDutyCycleOverOneWindow(t *testing.T) {
	h, _ := newTestHeater(t)
	h.lastOutput = 400

	high, low := 0, 0
	for range 50 {
		on, err := h.Control(90)
		require.NoError(t, err)
		if on {
			high++
		} else {
			low++
		}
	}

	assert.Equal(t, 20, high, "400ms of on-time in a 1s window is 20 ticks")
	assert.Equal(t, 30, low)
}

func TestZeroOutputNeverAsserts(t *testing.T) {
	h, line := newTestHeater(t)
	h.lastOutput = 0

	for range 50 {
		on, err := h.Control(99)
		require.NoError(t, err)
		assert.False(t, on)
	}
	assert.Zero(t, line.value)
}

func TestFullOutputAlwaysAsserts(t *testing.T) {
	h, _ := newTestHeater(t)
	h.lastOutput = 1000

	// The recompute at the window boundary will change lastOutput, so only
	// the first window is checked.
	for range 49 {
		on, err := h.Control(20)
		require.NoError(t, err)
		assert.True(t, on)
	}
}

func TestWindowRollRecomputesCommand(t *testing.T) {
	h, _ := newTestHeater(t)
	require.Zero(t, h.LastOutput())

	// Far below setpoint: after one full window the PID must have produced
	// a saturated command.
	for range 50 {
		_, err := h.Control(20)
		require.NoError(t, err)
	}

	assert.Equal(t, float32(1000), h.LastOutput())
}

func TestPidNotReadyKeepsCommand(t *testing.T) {
	line := &fakeLine{}
	h, err := New(line, Config{Setpoint: 95, Kp: 69, Ki: 0.17})
	require.NoError(t, err)

	h.pid.SetMode(pid.Manual)
	h.lastOutput = 400

	for range 50 {
		_, err := h.Control(20)
		require.NoError(t, err)
	}

	assert.Equal(t, float32(400), h.LastOutput(), "not-ready PID must leave the command unchanged")
}

func TestTurnOffIdempotent(t *testing.T) {
	h, line := newTestHeater(t)
	line.value = 1

	require.NoError(t, h.TurnOff())
	require.NoError(t, h.TurnOff())
	assert.Zero(t, line.value)
}

func TestTurnOffUnconditional(t *testing.T) {
	h, line := newTestHeater(t)

	// Value reads failing must not stop the safe-off write.
	line.valueErr = errors.New("bus glitch")
	line.value = 1
	require.NoError(t, h.TurnOff())
	assert.Zero(t, line.value)
}

func TestControlSurfacesPinErrors(t *testing.T) {
	h, line := newTestHeater(t)
	line.valueErr = errors.New("bus glitch")

	_, err := h.Control(90)
	assert.ErrorIs(t, err, ErrPin)
}

func TestUpdatePIDKeepsWindowState(t *testing.T) {
	h, _ := newTestHeater(t)
	h.lastOutput = 600

	// Advance mid-window, retune, and check neither command nor phase of
	// the window moved.
	for range 10 {
		_, err := h.Control(90)
		require.NoError(t, err)
	}
	before := h.isrCounter

	require.NoError(t, h.UpdatePID(200, 0.03, 0, pid.OnMeasurement))

	assert.Equal(t, float32(600), h.LastOutput())
	assert.Equal(t, before, h.isrCounter)
}

func TestUpdatePIDRejectsNegativeGains(t *testing.T) {
	h, _ := newTestHeater(t)
	assert.Error(t, h.UpdatePID(-1, 0, 0, pid.OnError))
}
