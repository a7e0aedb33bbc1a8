// SPDX-License-Identifier: BSD-3-Clause

// Package boiler adapts the boiler temperature probe for the control loop.
// The underlying driver (hwmon on production boards, a mock in tests) hands
// over raw millidegree readings; the adapter converts to °C, rejects
// implausible values and keeps the last known-good temperature so readers
// always have something to show.
package boiler
