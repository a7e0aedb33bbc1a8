// SPDX-License-Identifier: BSD-3-Clause

// Package watchdog manages the hardware watchdog that backstops the control
// loop. Arming happens before the first periodic tick and only the sensor
// job pets, so a stall anywhere on the critical path — scheduler, sensor
// driver, phase logic — resets the machine within the timeout with the
// heater relay de-energised by the power-on pin defaults.
package watchdog
