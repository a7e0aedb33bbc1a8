// SPDX-License-Identifier: BSD-3-Clause

// Package log provides structured logging for the espressod services with
// multi-target output: human-readable zerolog console output plus structured
// OpenTelemetry log records through the otelslog bridge.
//
// The package is built around the standard library slog package and also
// carries adapters for third-party components that bring their own logging
// interfaces (the embedded NATS server and the oversight supervision tree),
// so every line the daemon emits goes through the same pipeline.
//
// Basic usage:
//
//	logger := log.GetGlobalLogger().With("service", "boilerctl")
//	logger.InfoContext(ctx, "Cold start complete", "temperature", 95.1)
package log
