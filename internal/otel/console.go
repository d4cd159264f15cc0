// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// severityOffset converts between slog levels and OTel severities.
// slog.LevelDebug (-4) corresponds to log.SeverityDebug (5).
const severityOffset = log.SeverityDebug - log.Severity(slog.LevelDebug)

// consoleExporter writes log records as JSON lines.
type consoleExporter struct {
	handler slog.Handler
}

func newConsoleExporter(w io.Writer) *consoleExporter {
	return &consoleExporter{
		handler: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}
}

// Export implements [sdklog.Exporter].
func (e *consoleExporter) Export(ctx context.Context, records []sdklog.Record) error {
	for _, rec := range records {
		sr := slog.NewRecord(rec.Timestamp(), slog.Level(rec.Severity()-severityOffset), rec.Body().AsString(), 0)
		sr.AddAttrs(slog.String("logger", rec.InstrumentationScope().Name))

		rec.WalkAttributes(func(kv log.KeyValue) bool {
			sr.AddAttrs(slog.Attr{Key: kv.Key, Value: toSlogValue(kv.Value)})
			return true
		})

		if rec.TraceID().IsValid() {
			sr.AddAttrs(
				slog.String("trace_id", rec.TraceID().String()),
				slog.String("span_id", rec.SpanID().String()),
			)
		}

		err := e.handler.Handle(ctx, sr)
		if err != nil {
			return err
		}
	}
	return nil
}

func toSlogValue(v log.Value) slog.Value {
	switch v.Kind() {
	case log.KindBool:
		return slog.BoolValue(v.AsBool())
	case log.KindInt64:
		return slog.Int64Value(v.AsInt64())
	case log.KindFloat64:
		return slog.Float64Value(v.AsFloat64())
	case log.KindString:
		return slog.StringValue(v.AsString())
	case log.KindBytes:
		return slog.AnyValue(v.AsBytes())
	case log.KindSlice:
		items := v.AsSlice()
		vals := make([]any, len(items))
		for i, item := range items {
			vals[i] = toSlogValue(item).Any()
		}
		return slog.AnyValue(vals)
	case log.KindMap:
		kvs := v.AsMap()
		attrs := make([]slog.Attr, 0, len(kvs))
		for _, kv := range kvs {
			attrs = append(attrs, slog.Attr{Key: kv.Key, Value: toSlogValue(kv.Value)})
		}
		return slog.GroupValue(attrs...)
	default:
		return slog.StringValue(v.String())
	}
}

// ForceFlush implements [sdklog.Exporter].
func (e *consoleExporter) ForceFlush(context.Context) error {
	return nil
}

// Shutdown implements [sdklog.Exporter].
func (e *consoleExporter) Shutdown(context.Context) error {
	return nil
}
