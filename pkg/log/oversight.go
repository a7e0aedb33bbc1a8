// SPDX-License-Identifier: BSD-3-Clause

package log

import (
	"fmt"
	"log/slog"

	"cirello.io/oversight/v2"
)

// NewOversightLogger wraps the provided slog.Logger into an oversight.Logger
// so supervision-tree events (restarts, failures) show up in the structured
// log at debug level.
func NewOversightLogger(l *slog.Logger) oversight.Logger {
	return func(args ...any) {
		l.Debug("oversight", "msg", fmt.Sprint(args...))
	}
}
