// SPDX-License-Identifier: BSD-3-Clause

// Package snapshot holds the shared latest-value register connecting the
// control loop to the display and wireless services. Single writer, lock-free
// per-field atomics, stale reads acceptable, torn reads impossible.
package snapshot
