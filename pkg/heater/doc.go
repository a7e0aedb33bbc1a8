// SPDX-License-Identifier: BSD-3-Clause

// Package heater drives the boiler's solid-state relay with a
// time-proportional output: the PID command u in [0, W] becomes u
// milliseconds of on-time within each window of length W. This trades the
// mains-frequency complexity of phase-angle control for slow full-cycle
// switching, which a resistive heating element is perfectly happy with.
//
// The heater exclusively owns its GPIO line. The single safe-state
// primitive is TurnOff; everything that smells like a fault funnels there.
package heater
