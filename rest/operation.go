// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"reflect"
	"slices"
	"strconv"

	"github.com/z5labs/conduit/concurrent"
	"github.com/z5labs/conduit/validation"

	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
	"github.com/z5labs/sdk-go/try"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RequestMeta is the transport level information every handler receives.
type RequestMeta struct {
	Method  string
	Host    string
	Cookies []*http.Cookie
}

// Request is the fully extracted and validated input of an operation.
type Request[C, P, B any] struct {
	RequestMeta

	// Claims is nil unless the route resolved claims. Routes using
	// [RequireAuth] always see non-nil claims.
	Claims *C

	Params P
	Body   B
}

// Handler implements the business logic of one operation.
//
// A non-nil error is the internal failure signal. It is logged and turned
// into an empty 500 response; it is never retried.
type Handler[C, P, B any, O Outcome] interface {
	Handle(context.Context, *Request[C, P, B]) (O, error)
}

// HandlerFunc is an adapter to allow the use of ordinary functions
// as [Handler]s.
type HandlerFunc[C, P, B any, O Outcome] func(context.Context, *Request[C, P, B]) (O, error)

// Handle implements the [Handler] interface.
func (f HandlerFunc[C, P, B, O]) Handle(ctx context.Context, req *Request[C, P, B]) (O, error) {
	return f(ctx, req)
}

// OperationOptions holds configuration for an operation registered with [Handle].
type OperationOptions struct {
	id         string
	summary    string
	tags       []string
	responses  []declaredResponse
	errHandler ErrorHandler
}

// OperationOption configures an operation created by [Handle].
type OperationOption func(*OperationOptions)

// OperationID names the operation, in logs and in the OpenAPI document.
func OperationID(id string) OperationOption {
	return func(oo *OperationOptions) {
		oo.id = id
	}
}

// Summary sets the OpenAPI summary of the operation.
func Summary(s string) OperationOption {
	return func(oo *OperationOptions) {
		oo.summary = s
	}
}

// Tags groups the operation in the OpenAPI document.
func Tags(tags ...string) OperationOption {
	return func(oo *OperationOptions) {
		oo.tags = append(oo.tags, tags...)
	}
}

// Returns declares one entry of the status code table. example is a value
// of the payload type used to describe the body, or nil for an empty body.
//
// Once at least one status is declared, an outcome with any other status is
// treated as a handler failure.
func Returns(status int, example any) OperationOption {
	return func(oo *OperationOptions) {
		oo.responses = append(oo.responses, declaredResponse{
			status:  status,
			example: example,
		})
	}
}

// OnError replaces the error handler of the operation.
func OnError(eh ErrorHandler) OperationOption {
	return func(oo *OperationOptions) {
		oo.errHandler = eh
	}
}

type operation[C, P, B any, O Outcome] struct {
	route      Route
	auth       Auth[C]
	handler    Handler[C, P, B, O]
	declared   map[int]bool
	errHandler ErrorHandler
	tracer     trace.Tracer
	pipe       *pipeline
}

// Handle registers an operation and returns it as an [ApiOption].
//
// Every request to the route runs through the same stages:
//
//	authenticate -> extract -> validate -> handle -> map -> send
//
// Authentication failures, decode failures and validation failures each end
// the request before the handler is called. The handler is called at most
// once per request.
func Handle[C, P, B any, O Outcome](method string, path Path, auth Auth[C], h Handler[C, P, B, O], opts ...OperationOption) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		endpoint := path.String()

		oo := &OperationOptions{
			id: method + " " + endpoint,
		}
		for _, opt := range opts {
			opt(oo)
		}
		if oo.errHandler == nil {
			oo.errHandler = defaultErrorHandler(ao.pipe.log)
		}

		declared := make(map[int]bool, len(oo.responses))
		for _, resp := range oo.responses {
			declared[resp.status] = true
		}

		op, err := operationSpec[P, B](oo)
		if err != nil {
			panic(err)
		}
		if auth.mode != AuthNone {
			ao.registerSecurityScheme(auth.scheme, auth.key)
			op.WithSecurity(map[string][]string{
				auth.scheme: {},
			})
		}

		err = ao.def.AddOperation(method, endpoint, op)
		if err != nil {
			panic(err)
		}

		route := Route{
			Method:      method,
			Pattern:     endpoint,
			OperationID: oo.id,
			Auth:        auth.mode,
			StatusCodes: slices.Sorted(maps.Keys(declared)),
		}
		ao.routes = append(ao.routes, route)

		ao.mux.Method(method, endpoint, otelhttp.WithRouteTag(endpoint, &operation[C, P, B, O]{
			route:      route,
			auth:       auth,
			handler:    h,
			declared:   declared,
			errHandler: oo.errHandler,
			tracer:     otel.Tracer("github.com/z5labs/conduit/rest"),
			pipe:       ao.pipe,
		}))
	})
}

func operationSpec[P, B any](oo *OperationOptions) (openapi3.Operation, error) {
	params, err := paramSpecs(reflect.TypeFor[P]())
	if err != nil {
		return openapi3.Operation{}, err
	}

	responses := make(map[string]openapi3.ResponseOrRef, len(oo.responses))
	for _, resp := range oo.responses {
		spec, err := resp.spec()
		if err != nil {
			return openapi3.Operation{}, err
		}
		responses[strconv.Itoa(resp.status)] = spec
	}

	op := openapi3.Operation{
		ID:         ptr.Ref(oo.id),
		Tags:       oo.tags,
		Parameters: params,
		Responses: openapi3.Responses{
			MapOfResponseOrRefValues: responses,
		},
	}
	if oo.summary != "" {
		op.Summary = ptr.Ref(oo.summary)
	}

	if !isNoBody[B]() {
		var b B
		body, err := requestBodySpec(b)
		if err != nil {
			return openapi3.Operation{}, err
		}
		op.RequestBody = body
	}
	return op, nil
}

// ServeHTTP implements the [http.Handler] interface.
func (op *operation[C, P, B, O]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, span := op.tracer.Start(r.Context(), "operation.ServeHTTP", trace.WithAttributes(
		attribute.String("conduit.operation", op.route.OperationID),
	))
	defer span.End()

	resp, err := op.serve(ctx, w, r)
	if ctx.Err() != nil {
		// the client is gone; nothing has been written and nothing will be
		op.pipe.log.DebugContext(ctx, "abandoned request", slog.String("operation", op.route.OperationID), slog.Any("error", ctx.Err()))
		return
	}

	sw := &statusWriter{ResponseWriter: w}
	defer func() {
		op.pipe.record(ctx, op.route, sw.status)
	}()

	if err != nil {
		span.RecordError(err)
		op.errHandler.OnError(ctx, sw, err)
		return
	}

	err = resp.Send(sw)
	if err != nil {
		span.RecordError(err)
		op.pipe.log.WarnContext(ctx, "failed to write response", slog.String("operation", op.route.OperationID), slog.Any("error", err))
	}
}

func (op *operation[C, P, B, O]) serve(ctx context.Context, w http.ResponseWriter, r *http.Request) (resp *Response, err error) {
	defer try.Recover(&err)

	claims, err := op.authenticate(ctx, r)
	if err != nil {
		return nil, err
	}

	req, presence, err := op.extract(ctx, w, r)
	if err != nil {
		return nil, err
	}
	req.Claims = claims

	err = op.validate(ctx, req, presence)
	if err != nil {
		return nil, err
	}

	out, err := op.invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return op.mapOutcome(ctx, out)
}

func (op *operation[C, P, B, O]) authenticate(ctx context.Context, r *http.Request) (*C, error) {
	if op.auth.mode == AuthNone {
		return nil, nil
	}

	spanCtx, span := op.tracer.Start(ctx, "operation.authenticate")
	defer span.End()

	return op.auth.resolve(spanCtx, r.Header)
}

type presences struct {
	params validation.Presence
	body   validation.Presence
}

func (op *operation[C, P, B, O]) extract(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Request[C, P, B], presences, error) {
	_, span := op.tracer.Start(ctx, "operation.extract")
	defer span.End()

	req := &Request[C, P, B]{
		RequestMeta: RequestMeta{
			Method:  r.Method,
			Host:    r.Host,
			Cookies: r.Cookies(),
		},
	}

	var p presences
	var err error
	p.params, err = decodeParams(r, &req.Params)
	if err != nil {
		return nil, p, err
	}

	if isNoBody[B]() {
		return req, p, nil
	}

	p.body, err = decodeBody(w, r, op.pipe.maxBodyBytes, &req.Body)
	if err != nil {
		return nil, p, err
	}
	return req, p, nil
}

func (op *operation[C, P, B, O]) validate(ctx context.Context, req *Request[C, P, B], p presences) error {
	spanCtx, span := op.tracer.Start(ctx, "operation.validate")
	defer span.End()

	errs, err := concurrent.Submit(spanCtx, op.pipe.pool, func() (validation.Errors, error) {
		paramErrs, err := op.pipe.validator.Validate(req.Params, p.params)
		if err != nil {
			return nil, err
		}
		if isNoBody[B]() {
			return paramErrs, nil
		}

		bodyErrs, err := op.pipe.validator.Validate(req.Body, p.body)
		if err != nil {
			return nil, err
		}
		return append(paramErrs, bodyErrs...), nil
	})
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return InvalidParametersError{Errors: errs}
	}
	return nil
}

// invoke calls the handler exactly once. Panics and returned errors are
// both reported as a [HandlerError].
func (op *operation[C, P, B, O]) invoke(ctx context.Context, req *Request[C, P, B]) (out O, err error) {
	spanCtx, span := op.tracer.Start(ctx, "operation.handle")
	defer span.End()

	defer func() {
		if err == nil {
			return
		}
		span.SetStatus(codes.Error, "handler failed")
		err = HandlerError{Operation: op.route.OperationID, Cause: err}
	}()
	defer try.Recover(&err)

	return op.handler.Handle(spanCtx, req)
}

func (op *operation[C, P, B, O]) mapOutcome(ctx context.Context, out O) (*Response, error) {
	spanCtx, span := op.tracer.Start(ctx, "operation.map")
	defer span.End()

	if any(out) == nil {
		return nil, UndeclaredOutcomeError{Operation: op.route.OperationID}
	}

	status := out.StatusCode()
	if len(op.declared) > 0 && !op.declared[status] {
		return nil, UndeclaredOutcomeError{Operation: op.route.OperationID, StatusCode: status}
	}

	resp := &Response{
		StatusCode: status,
		Header:     make(http.Header),
	}

	payload, ok := out.ResponseBody()
	if !ok {
		return resp, nil
	}
	resp.Header.Set("Content-Type", "application/json")

	b, err := concurrent.Submit(spanCtx, op.pipe.pool, func() ([]byte, error) {
		return json.Marshal(payload)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, SerializationError{Operation: op.route.OperationID, Cause: err}
	}
	resp.Body = b
	return resp, nil
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	return sw.ResponseWriter.Write(b)
}
