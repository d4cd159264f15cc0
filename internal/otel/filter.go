// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package otel

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

type levelRule struct {
	prefix string
	min    log.Severity
}

// levelFilter drops records below the minimum level configured for their
// logger name. The longest matching prefix wins and loggers without a
// matching rule are never filtered.
type levelFilter struct {
	sdklog.Processor

	rules []levelRule
}

func newLevelFilter(next sdklog.Processor, levels map[string]string) *levelFilter {
	rules := make([]levelRule, 0, len(levels))
	for name, level := range levels {
		rules = append(rules, levelRule{prefix: name, min: parseLevel(level)})
	}
	slices.SortFunc(rules, func(a, b levelRule) int {
		return cmp.Compare(len(b.prefix), len(a.prefix))
	})

	return &levelFilter{
		Processor: next,
		rules:     rules,
	}
}

// parseLevel accepts the slog level names, case-insensitively, plus "warning".
// Anything else lets every record through.
func parseLevel(s string) log.Severity {
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}

	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	if err != nil {
		return log.SeverityDebug
	}
	return log.Severity(level) + severityOffset
}

// OnEmit implements [sdklog.Processor].
func (f *levelFilter) OnEmit(ctx context.Context, record *sdklog.Record) error {
	if !f.allows(record.InstrumentationScope().Name, record.Severity()) {
		return nil
	}
	return f.Processor.OnEmit(ctx, record)
}

func (f *levelFilter) allows(logger string, sev log.Severity) bool {
	for _, rule := range f.rules {
		if strings.HasPrefix(logger, rule.prefix) {
			return sev >= rule.min
		}
	}
	return true
}
