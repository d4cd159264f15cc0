// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"log/slog"
	"slices"

	"github.com/z5labs/conduit/concurrent"
	"github.com/z5labs/conduit/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Route describes one registered operation. Routes are created when the
// [Api] is built and never change afterwards.
type Route struct {
	Method      string
	Pattern     string
	OperationID string
	Auth        AuthMode

	// StatusCodes is the sorted status code table of the operation.
	StatusCodes []int
}

func (r Route) String() string {
	return r.Method + " " + r.Pattern
}

func (r Route) clone() Route {
	r.StatusCodes = slices.Clone(r.StatusCodes)
	return r
}

// pipeline holds the components every operation of an [Api] shares.
// None of them carry per-request state.
type pipeline struct {
	log          *slog.Logger
	pool         *concurrent.Pool
	validator    *validation.Validator
	maxBodyBytes int64
	responses    metric.Int64Counter
}

func newPipeline(log *slog.Logger) *pipeline {
	p := &pipeline{
		log:       log,
		validator: validation.New(),
	}

	counter, err := otel.Meter("github.com/z5labs/conduit/rest").Int64Counter(
		"conduit.rest.responses",
		metric.WithDescription("Number of responses sent, by route and status code."),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		log.Warn("failed to create response counter", slog.Any("error", err))
	}
	p.responses = counter
	return p
}

func (p *pipeline) record(ctx context.Context, route Route, status int) {
	if p.responses == nil || status == 0 {
		return
	}
	p.responses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.route", route.Pattern),
		attribute.String("http.method", route.Method),
		attribute.Int("http.status_code", status),
	))
}
