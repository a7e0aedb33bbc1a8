// SPDX-License-Identifier: BSD-3-Clause

package boiler

import "errors"

var (
	// ErrSensorFault is the single flattened failure for any unsuccessful
	// temperature acquisition: protocol timeout, checksum mismatch or an
	// implausible reading. The control loop only needs to know the reading
	// cannot be trusted.
	ErrSensorFault = errors.New("boiler sensor fault")
	// ErrNoDriver indicates the adapter was constructed without a driver.
	ErrNoDriver = errors.New("boiler requires a sensor driver")
)
