// SPDX-License-Identifier: BSD-3-Clause

// Package boilerctl is the control supervisor of espressod. It runs the two
// hard-cadence jobs of the machine on a single goroutine:
//
//   - MeasureTemp (500 ms): acquire the boiler temperature, publish it into
//     the shared snapshot, drive the cold-start/warm phase transition and
//     pet the hardware watchdog.
//   - DriveHeater (20 ms): one tick of the time-proportional heater
//     actuator from the newest snapshot temperature.
//
// The safety posture is simple and absolute: any sensor fault forces the
// heater off before the next actuator tick and holds it off until readings
// recover; a stalled loop stops petting the watchdog and the machine resets
// to power-on defaults (relay de-energised) within the timeout.
//
// The service also exposes a read-only get-state endpoint and a periodic
// telemetry broadcast over the in-process NATS bus. Neither is on the
// control path — the loop runs identically with no bus at all.
package boilerctl
