// SPDX-License-Identifier: BSD-3-Clause

package displaysrv

import (
	"context"
	"image"
	"sync"
)

// Driver is the display contract: a small graphical panel that can be reset,
// initialised once, handed a full frame and told to push it out. Orientation
// and pixel format are fixed at init; the renderer always produces full
// frames, so partial updates are not part of the contract.
type Driver interface {
	Reset(ctx context.Context) error
	Init(ctx context.Context) error
	Draw(img image.Image) error
	Flush() error
}

// MockDriver records frames for tests and the mock board target.
type MockDriver struct {
	mu      sync.Mutex
	resets  int
	inits   int
	flushes int
	last    image.Image
}

// NewMockDriver creates an in-memory display driver.
func NewMockDriver() *MockDriver {
	return &MockDriver{}
}

// Reset records a reset.
func (d *MockDriver) Reset(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resets++
	return nil
}

// Init records an init.
func (d *MockDriver) Init(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inits++
	return nil
}

// Draw stores the frame.
func (d *MockDriver) Draw(img image.Image) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = img
	return nil
}

// Flush records a flush.
func (d *MockDriver) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushes++
	return nil
}

// Stats returns the recorded call counts.
func (d *MockDriver) Stats() (resets, inits, flushes int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resets, d.inits, d.flushes
}

// LastFrame returns the most recent frame, or nil.
func (d *MockDriver) LastFrame() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
