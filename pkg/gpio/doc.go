// SPDX-License-Identifier: BSD-3-Clause

// Package gpio wraps the Linux GPIO character device (via go-gpiocdev) with
// the small request surface this project needs: claim a line by name or
// offset, as input or output, consumer-tagged as espressod. The board targets
// claim the heater relay line through it exactly once at startup and hold it
// until the process exits; the display reset and data/command pins are
// driven through periph.io instead.
package gpio
