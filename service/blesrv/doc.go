// SPDX-License-Identifier: BSD-3-Clause

// Package blesrv publishes the live boiler temperature over a short-range
// wireless link as a single read-only GATT characteristic (Temperature
// Celsius, 0x2A1F, signed 16-bit little-endian whole degrees). The device
// name is advertised continuously so a phone can find the machine from the
// kitchen. Strictly one-way: no writes, no pairing, no influence on control.
package blesrv
