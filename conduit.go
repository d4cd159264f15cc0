// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package conduit holds what every part of the conduit server shares:
// named loggers, the base configuration and telemetry setup.
package conduit

import (
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// Logger returns a structured logger whose records are sent through the
// global OpenTelemetry logger provider. name is usually the import path of
// the calling package and is what per-logger levels are matched against.
func Logger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}

// LogHandler is the [slog.Handler] behind [Logger]. It is handed to
// components which only accept a handler, such as a server error log.
func LogHandler(name string) slog.Handler {
	return otelslog.NewHandler(name)
}
