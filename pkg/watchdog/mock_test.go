// SPDX-License-Identifier: BSD-3-Clause

package watchdog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockPetCounting(t *testing.T) {
	m := NewMock(false)

	require.NoError(t, m.Pet())
	require.NoError(t, m.Pet())
	assert.Equal(t, 2, m.Pets())
}

func TestMockResetCauseClearsOnRead(t *testing.T) {
	m := NewMock(true)

	caused, err := m.BootCausedByWatchdog()
	require.NoError(t, err)
	assert.True(t, caused)

	// Mirrors the clear-on-read hardware register.
	caused, err = m.BootCausedByWatchdog()
	require.NoError(t, err)
	assert.False(t, caused)
}

func TestMockWithoutResetCause(t *testing.T) {
	m := NewMock(false)

	caused, err := m.BootCausedByWatchdog()
	require.NoError(t, err)
	assert.False(t, caused)
	require.NoError(t, m.Close())
}
