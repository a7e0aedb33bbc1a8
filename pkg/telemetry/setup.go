// SPDX-License-Identifier: BSD-3-Clause

package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/log/noop"
	"go.opentelemetry.io/otel/propagation"
)

var defaultSetupOnce sync.Once

// DefaultSetup installs the OpenTelemetry globals used by the espressod
// services. The default configuration is deliberately no-op: services create
// tracers and meters unconditionally, and a deployment that wants real
// exporters swaps the providers before the operator starts. Context
// propagation is configured either way so spans nest correctly.
//
// DefaultSetup must run before the first call to log.GetGlobalLogger, as the
// otelslog bridge captures the logger provider at construction time.
func DefaultSetup() {
	defaultSetupOnce.Do(func() {
		global.SetLoggerProvider(noop.NewLoggerProvider())

		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
	})
}
