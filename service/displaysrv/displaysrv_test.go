// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daschl/espressod/pkg/snapshot"
)

func TestRunInitializesOnceAndRedraws(t *testing.T) {
	driver := NewMockDriver()
	snap := snapshot.New(95, 200, 0.03, 0, true)
	snap.SetCurrentTemp(88)

	svc := New(
		WithDriver(driver),
		WithSnapshot(snap),
		WithRedrawInterval(5*time.Millisecond),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx, nil)
	}()

	require.Eventually(t, func() bool {
		_, _, flushes := driver.Stats()
		return flushes >= 3
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	resets, inits, flushes := driver.Stats()
	assert.Equal(t, 1, resets, "hardware bring-up happens exactly once")
	assert.Equal(t, 1, inits)
	assert.GreaterOrEqual(t, flushes, 3)
	assert.NotNil(t, driver.LastFrame())
}

func TestRunRejectsMissingDriver(t *testing.T) {
	svc := New(WithSnapshot(snapshot.New(95, 1, 0, 0, false)))
	err := svc.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
