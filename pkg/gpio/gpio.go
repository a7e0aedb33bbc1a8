// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package gpio

import (
	"errors"
	"fmt"
	"path/filepath"
	"syscall"

	"github.com/warthog618/go-gpiocdev"
)

// RequestLine requests a single GPIO line by name with the given options and
// returns the *gpiocdev.Line for direct use. The heater actuator takes such
// a line and keeps it for the process lifetime; lines are never shared.
func RequestLine(chip, lineName string, opts ...Option) (*gpiocdev.Line, error) {
	if chip == "" {
		return nil, fmt.Errorf("%w: chip path cannot be empty", ErrOperationFailed)
	}
	if lineName == "" {
		return nil, fmt.Errorf("%w: line name cannot be empty", ErrOperationFailed)
	}

	if err := gpiocdev.IsChip(chip); err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("invalid chip path %q", chip))
	}

	foundChip, offset, err := gpiocdev.FindLine(lineName)
	if err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("failed to find line %q", lineName))
	}
	// Normalize device identifiers (path vs basename) before comparing.
	if filepath.Base(foundChip) != filepath.Base(chip) {
		return nil, fmt.Errorf("%w: line %q not found on chip %q", ErrLineNotFound, lineName, chip)
	}

	defaultOpts := []gpiocdev.LineReqOption{gpiocdev.WithConsumer("espressod")}
	line, err := gpiocdev.RequestLine(chip, offset, append(defaultOpts, convertOptions(opts)...)...)
	if err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("failed to request line %q from chip %q", lineName, chip))
	}

	return line, nil
}

// RequestLineByNumber requests a single GPIO line by offset. Board pin maps
// use this form since relay and display wiring is by position, not by label.
func RequestLineByNumber(chip string, lineNumber int, opts ...Option) (*gpiocdev.Line, error) {
	if chip == "" {
		return nil, fmt.Errorf("%w: chip path cannot be empty", ErrOperationFailed)
	}
	if lineNumber < 0 {
		return nil, fmt.Errorf("%w: line number cannot be negative", ErrInvalidValue)
	}

	defaultOpts := []gpiocdev.LineReqOption{gpiocdev.WithConsumer("espressod")}
	line, err := gpiocdev.RequestLine(chip, lineNumber, append(defaultOpts, convertOptions(opts)...)...)
	if err != nil {
		return nil, mapGpiocdevError(err, fmt.Sprintf("failed to request line %d from chip %q", lineNumber, chip))
	}

	return line, nil
}

func mapGpiocdevError(err error, details string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, syscall.ENOENT):
		return fmt.Errorf("%w: %s", ErrChipNotFound, details)
	case errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, details)
	case errors.Is(err, gpiocdev.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrLineNotFound, details)
	case errors.Is(err, gpiocdev.ErrClosed):
		return fmt.Errorf("%w: %s", ErrLineClosed, details)
	default:
		return fmt.Errorf("%w: %s: %w", ErrOperationFailed, details, err)
	}
}
