// SPDX-License-Identifier: BSD-3-Clause

package hwmon

import "errors"

var (
	// ErrDeviceNotFound indicates no hwmon device matched the requested name.
	ErrDeviceNotFound = errors.New("hwmon device not found")
	// ErrAttributeNotFound indicates the requested sysfs attribute is absent.
	ErrAttributeNotFound = errors.New("hwmon attribute not found")
	// ErrPermissionDenied indicates insufficient permissions on an attribute.
	ErrPermissionDenied = errors.New("hwmon attribute permission denied")
	// ErrReadFailed indicates a filesystem error while reading an attribute.
	ErrReadFailed = errors.New("hwmon attribute read failed")
	// ErrInvalidValue indicates an attribute did not parse as expected.
	ErrInvalidValue = errors.New("hwmon attribute value invalid")
	// ErrOperationCanceled indicates the context expired before the access.
	ErrOperationCanceled = errors.New("hwmon operation canceled")
)
