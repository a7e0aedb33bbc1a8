// SPDX-License-Identifier: BSD-3-Clause

package boiler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/daschl/espressod/pkg/hwmon"
)

// HwmonDriver reads the boiler probe through the kernel's hwmon subsystem.
// The device is located by name once, lazily, because hwmonN indices shuffle
// across boots.
type HwmonDriver struct {
	basePath   string
	deviceName string
	attribute  string
	sensorPath string
}

// NewHwmonDriver creates a driver for the named hwmon device. attribute is
// the input file, typically "temp1_input". An empty basePath means the
// default /sys/class/hwmon.
func NewHwmonDriver(basePath, deviceName, attribute string) *HwmonDriver {
	if attribute == "" {
		attribute = "temp1_input"
	}

	return &HwmonDriver{
		basePath:   basePath,
		deviceName: deviceName,
		attribute:  attribute,
	}
}

// ReadRaw returns the probe reading in millidegrees Celsius.
func (d *HwmonDriver) ReadRaw(ctx context.Context) (int, error) {
	if d.sensorPath == "" {
		devicePath, err := hwmon.FindDeviceByNameCtx(ctx, d.basePath, d.deviceName)
		if err != nil {
			return 0, fmt.Errorf("locating boiler probe: %w", err)
		}
		d.sensorPath = filepath.Join(devicePath, d.attribute)
	}

	value, err := hwmon.ReadIntCtx(ctx, d.sensorPath)
	if err != nil {
		// Re-resolve on the next read in case the device re-enumerated.
		d.sensorPath = ""
		return 0, err
	}

	return value, nil
}
