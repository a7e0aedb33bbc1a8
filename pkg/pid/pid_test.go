// SPDX-License-Identifier: BSD-3-Clause

package pid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAutomatic(t *testing.T, setpoint, kp, ki, kd float32, pon Proportional, dir Direction) *Controller {
	t.Helper()

	c := New(setpoint, kp, ki, kd, pon, dir)
	require.NoError(t, c.SetOutputLimits(0, 100))
	require.NoError(t, c.SetSampleTime(100*time.Millisecond))
	c.SetMode(Automatic)

	return c
}

func TestComputeManualNotReady(t *testing.T) {
	c := New(95, 10, 1, 0, OnError, Direct)

	_, err := c.Compute(20)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestComputeOutputClamped(t *testing.T) {
	c := newAutomatic(t, 95, 1000, 100, 0, OnError, Direct)

	for _, input := range []float32{-50, 0, 20, 94, 95, 96, 200} {
		out, err := c.Compute(input)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out, float32(0), "input %v", input)
		assert.LessOrEqual(t, out, float32(100), "input %v", input)
	}
}

func TestIntegratorClampPreventsWindup(t *testing.T) {
	// Pure integral controller saturated high for a long time. If the
	// integrator wound up beyond the limits, the first step with a negative
	// error would still return the maximum.
	c := newAutomatic(t, 100, 0, 10, 0, OnError, Direct)

	for range 100 {
		out, err := c.Compute(0)
		require.NoError(t, err)
		assert.Equal(t, float32(100), out)
	}

	out, err := c.Compute(200)
	require.NoError(t, err)
	// ki_effective = 10 * 0.1s = 1; error = -100 pulls the sum down by 100.
	assert.Equal(t, float32(0), out)
}

func TestProportionalOnMeasurementNoKick(t *testing.T) {
	// With constant input the measurement delta is zero, so kp contributes
	// nothing: no proportional kick from the large initial error.
	c := newAutomatic(t, 100, 10, 0, 0, OnMeasurement, Direct)

	for range 3 {
		out, err := c.Compute(0)
		require.NoError(t, err)
		assert.Equal(t, float32(0), out)
	}
}

func TestProportionalOnErrorKicks(t *testing.T) {
	c := newAutomatic(t, 100, 1, 0, 0, OnError, Direct)

	out, err := c.Compute(50)
	require.NoError(t, err)
	assert.Equal(t, float32(50), out)
}

func TestNegativeTuningsRejected(t *testing.T) {
	c := newAutomatic(t, 100, 2, 0, 0, OnError, Direct)

	out1, err := c.Compute(40)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetTunings(-1, 0, 0, OnError), ErrNegativeTuning)
	assert.ErrorIs(t, c.SetTunings(1, -1, 0, OnError), ErrNegativeTuning)
	assert.ErrorIs(t, c.SetTunings(1, 0, -1, OnError), ErrNegativeTuning)

	// Same input must yield the same output: the rejected calls changed
	// nothing.
	out2, err := c.Compute(40)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestSetTuningsIdempotent(t *testing.T) {
	a := newAutomatic(t, 95, 69, 0.17, 0, OnError, Direct)
	b := newAutomatic(t, 95, 69, 0.17, 0, OnError, Direct)

	require.NoError(t, a.SetTunings(69, 0.17, 0, OnError))
	require.NoError(t, a.SetTunings(69, 0.17, 0, OnError))
	require.NoError(t, b.SetTunings(69, 0.17, 0, OnError))

	for _, input := range []float32{20, 45, 80, 94, 96} {
		outA, errA := a.Compute(input)
		outB, errB := b.Compute(input)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, outB, outA, "input %v", input)
	}
}

func TestInvalidOutputLimitsRejected(t *testing.T) {
	c := newAutomatic(t, 100, 1, 0, 0, OnError, Direct)

	assert.ErrorIs(t, c.SetOutputLimits(10, 10), ErrInvalidLimits)
	assert.ErrorIs(t, c.SetOutputLimits(20, 10), ErrInvalidLimits)

	// Limits from the fixture still in force.
	out, err := c.Compute(-1000)
	require.NoError(t, err)
	assert.Equal(t, float32(100), out)
}

func TestZeroSampleTimeRejected(t *testing.T) {
	c := newAutomatic(t, 100, 1, 1, 0, OnError, Direct)

	out1, err := c.Compute(50)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetSampleTime(0), ErrInvalidSampleTime)
	assert.ErrorIs(t, c.SetSampleTime(-time.Second), ErrInvalidSampleTime)

	c2 := newAutomatic(t, 100, 1, 1, 0, OnError, Direct)
	out2, err := c2.Compute(50)
	require.NoError(t, err)
	assert.Equal(t, out2, out1)
}

func TestSampleTimeRescalePreservesMeaning(t *testing.T) {
	// A controller stepped at 100 ms and one stepped at 200 ms should
	// accumulate the same integral per simulated second for the same
	// user-facing ki.
	fast := newAutomatic(t, 100, 0, 1, 0, OnError, Direct)
	slow := newAutomatic(t, 100, 0, 1, 0, OnError, Direct)
	require.NoError(t, slow.SetSampleTime(200*time.Millisecond))

	var fastOut, slowOut float32
	for range 10 {
		out, err := fast.Compute(90)
		require.NoError(t, err)
		fastOut = out
	}
	for range 5 {
		out, err := slow.Compute(90)
		require.NoError(t, err)
		slowOut = out
	}

	assert.InDelta(t, float64(fastOut), float64(slowOut), 1e-3)
}

func TestDirectionReverseFlipsResponse(t *testing.T) {
	// Direct: rising input drives output down. Reverse: rising input drives
	// output up. Verified by monotonicity over five successive inputs.
	direct := newAutomatic(t, 50, 0, 2, 0, OnError, Direct)
	reverse := newAutomatic(t, 50, 0, 2, 0, OnError, Direct)
	reverse.SetDirection(Reverse)

	// Seed both integrators mid-range so movement is visible either way.
	for range 25 {
		_, err := direct.Compute(45)
		require.NoError(t, err)
		_, err = reverse.Compute(55)
		require.NoError(t, err)
	}

	inputs := []float32{52, 54, 56, 58, 60}
	var prevDirect, prevReverse float32 = 101, -1
	for _, input := range inputs {
		outD, err := direct.Compute(input)
		require.NoError(t, err)
		outR, err := reverse.Compute(input)
		require.NoError(t, err)

		assert.Less(t, outD, prevDirect, "direct output must fall as input rises")
		assert.Greater(t, outR, prevReverse, "reverse output must rise as input rises")
		prevDirect, prevReverse = outD, outR
	}
}

func TestManualToAutomaticBumpless(t *testing.T) {
	c := newAutomatic(t, 100, 0, 10, 0, OnError, Direct)

	// Saturate, then shrink the limits while in Manual.
	for range 50 {
		_, err := c.Compute(0)
		require.NoError(t, err)
	}
	c.SetMode(Manual)
	require.NoError(t, c.SetOutputLimits(0, 10))
	c.SetMode(Automatic)

	// Integrator was re-clamped on the transition: the first step cannot
	// exceed the new maximum.
	out, err := c.Compute(100)
	require.NoError(t, err)
	assert.LessOrEqual(t, out, float32(10))
}
