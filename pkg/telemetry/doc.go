// SPDX-License-Identifier: BSD-3-Clause

// Package telemetry wires the OpenTelemetry globals for espressod. Services
// obtain tracers with otel.Tracer(name) and meters with otel.Meter(name);
// this package makes sure those calls are safe regardless of whether a
// deployment configures real exporters. On the machine itself telemetry
// stays no-op — the controller is the hard real-time path and must not grow
// blocking exports — but the hooks are in place for bench setups.
package telemetry
