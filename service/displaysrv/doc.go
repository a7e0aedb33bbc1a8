// SPDX-License-Identifier: BSD-3-Clause

// Package displaysrv renders the operator status screen: current and target
// boiler temperature, heater state, live PID output and tunings, an
// alternating alive glyph, and a notice if the previous boot ended in a
// watchdog reset. The screen is a pure function of the telemetry snapshot,
// redrawn in full once a second; display faults drop frames and nothing
// else — the panel is strictly decorative as far as control is concerned.
package displaysrv
