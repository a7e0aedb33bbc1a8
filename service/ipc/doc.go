// SPDX-License-Identifier: BSD-3-Clause

// Package ipc runs the embedded NATS server that forms the message bus
// between the espressod services. The server runs in-process only (no
// listener); other services obtain connections through the ConnProvider the
// operator passes into their Run method. The control loop itself never
// depends on the bus — telemetry broadcasts and state queries ride on it,
// control does not.
package ipc
