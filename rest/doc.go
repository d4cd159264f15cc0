// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package rest dispatches HTTP requests to typed handlers.
//
// # Operations
//
// An operation is registered with [Handle] and fixes, at construction time:
//   - the method and path template, see [BasePath]
//   - the authentication requirement, see [NoAuth], [OptionalAuth] and [RequireAuth]
//   - the params type P, read from fields tagged path:"x" or query:"x"
//   - the body type B, decoded from JSON, or [NoBody]
//   - the outcome type O and its status code table, see [Returns]
//
// Every request then runs through the same stages:
//
//	authenticate -> extract -> validate -> handle -> map -> send
//
// The handler only ever sees requests which passed all earlier stages, and
// it is called at most once per request. Nothing is written to the client
// until the response has been fully built.
//
// # Failure responses
//
//	401  required claims could not be resolved (empty body)
//	400  a value could not be decoded (text/plain cause)
//	400  validation failed (application/json field error list)
//	413  the body exceeded the configured limit
//	415  a body was sent with a non-JSON content type
//	429  the rate limit was exceeded
//	500  the handler failed or returned an undeclared outcome (empty body)
//
// # Example
//
//	getTags := rest.Handle(
//	    http.MethodGet,
//	    rest.BasePath("/api/tags"),
//	    rest.NoAuth[Claims](),
//	    rest.HandlerFunc[Claims, rest.NoParams, rest.NoBody, TagsOutcome](listTags),
//	    rest.Returns(http.StatusOK, TagsResponse{}),
//	)
//	api := rest.NewApi("Conduit API", "1.0.0", getTags)
//	http.ListenAndServe(":8080", api)
//
// Every [Api] also serves its OpenAPI document at GET /openapi.json and
// health probes at GET /health/liveness and GET /health/readiness.
package rest
