// SPDX-License-Identifier: BSD-3-Clause

package phase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColdStartToWarm(t *testing.T) {
	warmed := 0
	m := New(true, func(context.Context) error {
		warmed++
		return nil
	})

	assert.True(t, m.InColdStart())
	assert.Equal(t, ColdStart, m.Current())

	require.NoError(t, m.BoilerHot(context.Background()))
	assert.False(t, m.InColdStart())
	assert.Equal(t, Warm, m.Current())
	assert.Equal(t, 1, warmed)
}

func TestTransitionIsOneWay(t *testing.T) {
	warmed := 0
	m := New(true, func(context.Context) error {
		warmed++
		return nil
	})

	require.NoError(t, m.BoilerHot(context.Background()))

	// Further hot readings are ignored and do not re-run the action.
	require.NoError(t, m.BoilerHot(context.Background()))
	require.NoError(t, m.BoilerHot(context.Background()))
	assert.False(t, m.InColdStart())
	assert.Equal(t, 1, warmed)
}

func TestColdStartDisabledStartsWarm(t *testing.T) {
	m := New(false, func(context.Context) error {
		t.Fatal("warm action must not run for a machine created warm")
		return nil
	})

	assert.False(t, m.InColdStart())
	assert.Equal(t, Warm, m.Current())
	require.NoError(t, m.BoilerHot(context.Background()))
}

func TestWarmActionErrorSurfaces(t *testing.T) {
	m := New(true, func(context.Context) error {
		return errors.New("pid rejected tunings")
	})

	err := m.BoilerHot(context.Background())
	assert.ErrorIs(t, err, ErrTransitionFailed)
}
