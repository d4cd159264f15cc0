// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/z5labs/conduit/validation"
)

// HttpResponseWriter is implemented by errors which know the exact
// response they should produce.
type HttpResponseWriter interface {
	WriteHttpResponse(context.Context, http.ResponseWriter)
}

// ErrorHandler turns a pipeline error into a response.
//
// Custom error handlers can be configured per operation using [OnError].
type ErrorHandler interface {
	OnError(context.Context, http.ResponseWriter, error)
}

// ErrorHandlerFunc is a function adapter that implements [ErrorHandler].
type ErrorHandlerFunc func(context.Context, http.ResponseWriter, error)

// OnError implements the [ErrorHandler] interface.
func (f ErrorHandlerFunc) OnError(ctx context.Context, w http.ResponseWriter, err error) {
	f(ctx, w, err)
}

// clientError is implemented by errors caused by the request itself.
type clientError interface {
	clientError()
}

func defaultErrorHandler(log *slog.Logger) ErrorHandlerFunc {
	return func(ctx context.Context, w http.ResponseWriter, err error) {
		if _, ok := err.(clientError); ok {
			log.DebugContext(ctx, "rejecting request", slog.String("request_id", RequestID(ctx)), slog.Any("error", err))
		} else {
			log.ErrorContext(ctx, "sending error response", slog.String("request_id", RequestID(ctx)), slog.Any("error", err))
		}

		// only the outermost error decides the status; wrapped causes never do
		hrw, ok := err.(HttpResponseWriter)
		if ok {
			hrw.WriteHttpResponse(ctx, w)
			return
		}

		w.WriteHeader(http.StatusInternalServerError)
	}
}

// UnauthorizedError is returned when a route requires claims and none
// could be resolved from the request headers. The response body is empty
// so nothing about the rejection is revealed.
type UnauthorizedError struct{}

func (UnauthorizedError) Error() string {
	return "unauthorized"
}

func (UnauthorizedError) clientError() {}

// WriteHttpResponse implements [HttpResponseWriter].
func (UnauthorizedError) WriteHttpResponse(ctx context.Context, w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnauthorized)
}

// BadRequestError is returned when path, query or body values could not be
// decoded. The cause's text is sent back as a plain text body.
type BadRequestError struct {
	Cause error
}

func (e BadRequestError) Error() string {
	return fmt.Sprintf("bad request error: %v", e.Cause)
}

// Unwrap returns the underlying cause of the bad request.
func (e BadRequestError) Unwrap() error {
	return e.Cause
}

func (BadRequestError) clientError() {}

// WriteHttpResponse implements [HttpResponseWriter].
func (e BadRequestError) WriteHttpResponse(ctx context.Context, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	io.WriteString(w, e.Cause.Error())
}

// InvalidParametersError carries every constraint which failed validation.
type InvalidParametersError struct {
	Errors validation.Errors
}

func (e InvalidParametersError) Error() string {
	return e.Errors.Error()
}

// Unwrap returns the [validation.Errors].
func (e InvalidParametersError) Unwrap() error {
	return e.Errors
}

func (InvalidParametersError) clientError() {}

// WriteHttpResponse implements [HttpResponseWriter].
func (e InvalidParametersError) WriteHttpResponse(ctx context.Context, w http.ResponseWriter) {
	b, err := json.Marshal(e.Errors)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write(b)
}

// InvalidParamValueError reports a path or query value which could not be
// parsed into its declared type.
type InvalidParamValueError struct {
	In    string
	Name  string
	Value string
	Cause error
}

func (e InvalidParamValueError) Error() string {
	return fmt.Sprintf("invalid %s parameter %q: cannot parse %q: %v", e.In, e.Name, e.Value, e.Cause)
}

func (e InvalidParamValueError) Unwrap() error {
	return e.Cause
}

// UnsupportedMediaTypeError is returned when a body bearing route receives
// a content type other than JSON.
type UnsupportedMediaTypeError struct {
	ContentType string
}

func (e UnsupportedMediaTypeError) Error() string {
	if e.ContentType == "" {
		return "missing content type, expected application/json"
	}
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

func (UnsupportedMediaTypeError) clientError() {}

// WriteHttpResponse implements [HttpResponseWriter].
func (UnsupportedMediaTypeError) WriteHttpResponse(ctx context.Context, w http.ResponseWriter) {
	w.WriteHeader(http.StatusUnsupportedMediaType)
}

// PayloadTooLargeError is returned when a body exceeds the configured limit.
type PayloadTooLargeError struct {
	Limit int64
}

func (e PayloadTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

func (PayloadTooLargeError) clientError() {}

// WriteHttpResponse implements [HttpResponseWriter].
func (PayloadTooLargeError) WriteHttpResponse(ctx context.Context, w http.ResponseWriter) {
	w.WriteHeader(http.StatusRequestEntityTooLarge)
}

// TooManyRequestsError is returned by the rate limit middleware.
type TooManyRequestsError struct{}

func (TooManyRequestsError) Error() string {
	return "rate limit exceeded"
}

func (TooManyRequestsError) clientError() {}

// WriteHttpResponse implements [HttpResponseWriter].
func (TooManyRequestsError) WriteHttpResponse(ctx context.Context, w http.ResponseWriter) {
	w.WriteHeader(http.StatusTooManyRequests)
}

// HandlerError wraps the internal failure signal returned by, or a panic
// raised from, a handler. It always results in an empty 500 response.
type HandlerError struct {
	Operation string
	Cause     error
}

func (e HandlerError) Error() string {
	return fmt.Sprintf("handler for %s failed: %v", e.Operation, e.Cause)
}

func (e HandlerError) Unwrap() error {
	return e.Cause
}

// UndeclaredOutcomeError is returned when a handler produces an outcome
// whose status code the route never declared, or no outcome at all.
type UndeclaredOutcomeError struct {
	Operation  string
	StatusCode int
}

func (e UndeclaredOutcomeError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("handler for %s returned a nil outcome", e.Operation)
	}
	return fmt.Sprintf("handler for %s returned undeclared status %d", e.Operation, e.StatusCode)
}

// SerializationError is returned when an outcome payload cannot be encoded.
type SerializationError struct {
	Operation string
	Cause     error
}

func (e SerializationError) Error() string {
	return fmt.Sprintf("failed to encode %s response: %v", e.Operation, e.Cause)
}

func (e SerializationError) Unwrap() error {
	return e.Cause
}
