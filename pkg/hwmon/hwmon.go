// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultBasePath is where the kernel exposes hwmon devices.
const DefaultBasePath = "/sys/class/hwmon"

// ReadInt reads an integer attribute such as temp1_input from a sysfs path.
func ReadInt(path string) (int, error) {
	return ReadIntCtx(context.Background(), path)
}

// ReadIntCtx reads an integer attribute, honouring context cancellation
// before touching the filesystem.
func ReadIntCtx(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOperationCanceled, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, mapFileError(err, path)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q in %s", ErrInvalidValue, strings.TrimSpace(string(data)), path)
	}

	return value, nil
}

// ReadString reads a string attribute such as the device name.
func ReadString(path string) (string, error) {
	return ReadStringCtx(context.Background(), path)
}

// ReadStringCtx reads a string attribute, honouring context cancellation.
func ReadStringCtx(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrOperationCanceled, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", mapFileError(err, path)
	}

	return strings.TrimSpace(string(data)), nil
}

// FindDeviceByName scans the hwmon base path for a device whose name
// attribute matches and returns its directory.
func FindDeviceByName(basePath, deviceName string) (string, error) {
	return FindDeviceByNameCtx(context.Background(), basePath, deviceName)
}

// FindDeviceByNameCtx scans the hwmon base path for a named device.
// The hwmonN indices are not stable across boots, so drivers locate their
// device by name on every start.
func FindDeviceByNameCtx(ctx context.Context, basePath, deviceName string) (string, error) {
	if basePath == "" {
		basePath = DefaultBasePath
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return "", mapFileError(err, basePath)
	}

	for _, entry := range entries {
		devicePath := filepath.Join(basePath, entry.Name())
		name, err := ReadStringCtx(ctx, filepath.Join(devicePath, "name"))
		if err != nil {
			continue
		}
		if name == deviceName {
			return devicePath, nil
		}
	}

	return "", fmt.Errorf("%w: %s under %s", ErrDeviceNotFound, deviceName, basePath)
}

// FileExists reports whether a sysfs attribute is present.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mapFileError(err error, path string) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrAttributeNotFound, path)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
	default:
		return fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
	}
}
