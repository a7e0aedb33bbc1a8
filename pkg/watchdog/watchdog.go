// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package watchdog

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// DefaultDevicePath is the kernel watchdog character device.
const DefaultDevicePath = "/dev/watchdog"

// DefaultTimeout is the reset deadline. The control loop pets every 500 ms,
// so three seconds absorbs scheduling jitter while still bounding a stalled
// loop to a short reset latency.
const DefaultTimeout = 3 * time.Second

// Timer is a handle on the hardware watchdog. Opening the device arms it;
// from that point the control loop must keep petting or the SoC resets.
type Timer struct {
	file       *os.File
	bootStatus int
}

// Open arms the hardware watchdog with the given timeout and captures the
// boot-status register, which records whether the previous reset was caused
// by a watchdog expiry.
func Open(path string, timeout time.Duration) (*Timer, error) {
	if path == "" {
		path = DefaultDevicePath
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}

	fd := int(f.Fd())

	seconds := int(timeout / time.Second)
	if err := unix.IoctlSetPointerInt(fd, unix.WDIOC_SETTIMEOUT, seconds); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: setting %ds timeout: %w", ErrConfigureFailed, seconds, err)
	}

	bootStatus, err := unix.IoctlGetInt(fd, unix.WDIOC_GETBOOTSTATUS)
	if err != nil {
		// Not every watchdog driver implements the boot-status register.
		bootStatus = 0
	}

	return &Timer{file: f, bootStatus: bootStatus}, nil
}

// Pet resets the watchdog countdown. Called only from the MeasureTemp job so
// a pet proves the whole critical path (scheduler, sensor driver, phase
// logic) is alive.
func (t *Timer) Pet() error {
	if _, err := unix.IoctlGetInt(int(t.file.Fd()), unix.WDIOC_KEEPALIVE); err != nil {
		return fmt.Errorf("%w: %w", ErrPetFailed, err)
	}
	return nil
}

// BootCausedByWatchdog reports whether the previous reset came from a
// watchdog expiry, as captured from the boot-status register at Open time.
// Reading the register via the ioctl clears it in the hardware, so the
// answer is stable for the process lifetime.
func (t *Timer) BootCausedByWatchdog() (bool, error) {
	return t.bootStatus&unix.WDIOF_CARDRESET != 0, nil
}

// Close performs a magic close, disarming the watchdog before releasing the
// device. Used only on orderly shutdown; a crash leaves the watchdog armed,
// which is the point.
func (t *Timer) Close() error {
	if _, err := t.file.WriteString("V"); err != nil {
		_ = t.file.Close()
		return fmt.Errorf("%w: magic close: %w", ErrCloseFailed, err)
	}
	return t.file.Close()
}
