// SPDX-License-Identifier: BSD-3-Clause

package boiler

import (
	"context"
	"sync"
)

// MockDriver is an in-memory sensor driver for tests and the mock board
// target. It replays a temperature program and can inject faults.
type MockDriver struct {
	mu      sync.Mutex
	program []int
	index   int
	err     error
}

// NewMockDriver creates a mock driver replaying the given temperatures in
// °C. The last entry repeats once the program is exhausted.
func NewMockDriver(celsius ...float32) *MockDriver {
	program := make([]int, len(celsius))
	for i, t := range celsius {
		program[i] = int(t * 1000)
	}

	return &MockDriver{program: program}
}

// ReadRaw returns the next programmed reading in millidegrees.
func (d *MockDriver) ReadRaw(_ context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return 0, d.err
	}
	if len(d.program) == 0 {
		return 0, ErrSensorFault
	}

	value := d.program[d.index]
	if d.index < len(d.program)-1 {
		d.index++
	}

	return value, nil
}

// Fail makes every subsequent read return the given error until Recover is
// called.
func (d *MockDriver) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// Recover clears an injected failure.
func (d *MockDriver) Recover() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = nil
}
