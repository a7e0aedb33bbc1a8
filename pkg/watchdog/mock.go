// SPDX-License-Identifier: BSD-3-Clause

package watchdog

import (
	"sync"
	"time"
)

// Mock is an in-memory watchdog for tests and the mock board target. It
// records pets instead of arming hardware and can simulate a prior
// watchdog-caused reset.
type Mock struct {
	mu            sync.Mutex
	pets          int
	lastPet       time.Time
	causedByReset bool
}

// NewMock creates a mock watchdog. resetCause simulates the boot-status
// register reporting a watchdog-caused reset.
func NewMock(resetCause bool) *Mock {
	return &Mock{causedByReset: resetCause}
}

// Pet records a keepalive.
func (m *Mock) Pet() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pets++
	m.lastPet = time.Now()
	return nil
}

// BootCausedByWatchdog reports the simulated reset cause and clears it,
// mirroring the clear-on-read hardware register.
func (m *Mock) BootCausedByWatchdog() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	caused := m.causedByReset
	m.causedByReset = false
	return caused, nil
}

// Close releases nothing.
func (m *Mock) Close() error {
	return nil
}

// Pets returns how many times the mock was petted.
func (m *Mock) Pets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pets
}
