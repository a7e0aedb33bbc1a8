// SPDX-License-Identifier: BSD-3-Clause

package boiler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConvertsAndCaches(t *testing.T) {
	b, err := New(NewMockDriver(93.5), nil)
	require.NoError(t, err)

	_, ok := b.Last()
	assert.False(t, ok, "no cached value before the first read")

	temp, err := b.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(93.5), temp)

	cached, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, float32(93.5), cached)
}

func TestReadFailureKeepsCache(t *testing.T) {
	drv := NewMockDriver(90)
	b, err := New(drv, nil)
	require.NoError(t, err)

	_, err = b.Read(context.Background())
	require.NoError(t, err)

	drv.Fail(errors.New("parity mismatch"))
	for range 3 {
		_, err = b.Read(context.Background())
		assert.ErrorIs(t, err, ErrSensorFault)
	}

	cached, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, float32(90), cached)

	drv.Recover()
	temp, err := b.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float32(90), temp)
}

func TestOutOfRangeReadingIsFault(t *testing.T) {
	for _, celsius := range []float32{-60, 400} {
		b, err := New(NewMockDriver(celsius), nil)
		require.NoError(t, err)

		_, err = b.Read(context.Background())
		assert.ErrorIs(t, err, ErrSensorFault, "reading %v°C", celsius)

		_, ok := b.Last()
		assert.False(t, ok, "faulty reading must not populate the cache")
	}
}

func TestMockDriverRepeatsLastReading(t *testing.T) {
	b, err := New(NewMockDriver(20, 40), nil)
	require.NoError(t, err)

	for _, want := range []float32{20, 40, 40, 40} {
		temp, err := b.Read(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, temp)
	}
}

func TestNewRequiresDriver(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoDriver)
}
