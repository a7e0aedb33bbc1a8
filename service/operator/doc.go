// SPDX-License-Identifier: BSD-3-Clause

// Package operator orchestrates the espressod services under a fault-
// tolerant supervision tree. Board targets construct an operator with the
// board's drivers wired into the per-service options and call Run; the
// operator brings up the in-process message bus first and the remaining
// services against it, restarting any child that fails.
package operator
