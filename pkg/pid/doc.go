// SPDX-License-Identifier: BSD-3-Clause

// Package pid implements the discrete PID controller driving the boiler
// heater. It follows the incremental form popularised by Brett Beauregard:
// gains pre-scaled by the sample period, integrator clamped to the output
// limits (anti-windup without a separate term), proportional-on-measurement
// as an alternative proportional source, and bumpless transfers on mode,
// tuning and direction changes.
//
// A generic textbook PID is not a drop-in replacement here: the warm-up
// sequence relies on proportional-on-measurement to avoid a full-scale
// output kick when the controller engages far below the setpoint, and the
// supervisor re-tunes the live controller at the cold-to-warm transition,
// which only works bumplessly with this formulation.
package pid
