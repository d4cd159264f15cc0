// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/z5labs/conduit"
	"github.com/z5labs/conduit/concurrent"
	"github.com/z5labs/conduit/health"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/openapi-go/openapi3"
	"golang.org/x/time/rate"
)

// ApiOptions holds configuration values used when constructing an [Api].
type ApiOptions struct {
	mux         *chi.Mux
	def         *openapi3.Spec
	routes      []Route
	pipe        *pipeline
	workers     int
	middlewares []func(http.Handler) http.Handler
	readiness   health.Monitor
	liveness    health.Monitor
}

// ApiOption is an interface for configuring an [Api].
//
// Common implementations include:
//   - [Handle] - registers an operation
//   - [Readiness] and [Liveness] - health probes
//   - [Workers] and [MaxBodyBytes] - pipeline limits
//   - [RateLimit] - request admission
type ApiOption interface {
	ApplyApiOption(*ApiOptions)
}

type apiOptionFunc func(*ApiOptions)

func (f apiOptionFunc) ApplyApiOption(ao *ApiOptions) {
	f(ao)
}

// Workers bounds how many validation and serialization tasks run at once
// across all requests. Non-positive values select 4 * GOMAXPROCS.
func Workers(n int) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.workers = n
	})
}

// MaxBodyBytes limits the size of request bodies. Larger bodies are
// rejected with 413 Request Entity Too Large.
func MaxBodyBytes(n int64) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		if n > 0 {
			ao.pipe.maxBodyBytes = n
		}
	})
}

// RateLimit rejects requests with 429 Too Many Requests once l runs out of
// tokens. The limiter is shared by every route.
func RateLimit(l *rate.Limiter) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.middlewares = append(ao.middlewares, rateLimitMiddleware(l, defaultErrorHandler(ao.pipe.log)))
	})
}

// Readiness sets the monitor reported at GET /health/readiness.
func Readiness(m health.Monitor) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.readiness = m
	})
}

// Liveness sets the monitor reported at GET /health/liveness.
func Liveness(m health.Monitor) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.liveness = m
	})
}

// NotFound replaces the handler for requests that match no route.
func NotFound(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.mux.NotFound(h.ServeHTTP)
	})
}

// MethodNotAllowed replaces the handler for requests to a known path with
// an unsupported method.
func MethodNotAllowed(h http.Handler) ApiOption {
	return apiOptionFunc(func(ao *ApiOptions) {
		ao.mux.MethodNotAllowed(h.ServeHTTP)
	})
}

func (ao *ApiOptions) registerSecurityScheme(name, header string) {
	ao.def.ComponentsEns().SecuritySchemesEns().WithMapOfSecuritySchemeOrRefValuesItem(
		name,
		openapi3.SecuritySchemeOrRef{
			SecurityScheme: &openapi3.SecurityScheme{
				APIKeySecurityScheme: &openapi3.APIKeySecurityScheme{
					Name: header,
					In:   openapi3.APIKeySecuritySchemeIn(openapi3.ParameterInHeader),
				},
			},
		},
	)
}

// Api is an [http.Handler] serving a fixed table of operations.
//
// Every Api also provides:
//   - the OpenAPI 3 document at GET /openapi.json
//   - health probes at GET /health/liveness and GET /health/readiness
//   - empty 404 and 405 responses for unknown routes and methods
type Api struct {
	handler http.Handler
	def     *openapi3.Spec
	routes  []Route
	log     *slog.Logger
}

// DefaultMaxBodyBytes is the request body limit used unless [MaxBodyBytes]
// is given.
const DefaultMaxBodyBytes = 2 << 20

// NewApi creates a new [Api] with the specified title and version.
//
// Example:
//
//	api := rest.NewApi(
//	    "Conduit API",
//	    "1.0.0",
//	    rest.Handle(http.MethodGet, rest.BasePath("/api/tags"), rest.NoAuth[Claims](), getTags),
//	)
func NewApi(title, version string, opts ...ApiOption) *Api {
	log := conduit.Logger("github.com/z5labs/conduit/rest")

	pipe := newPipeline(log)
	pipe.maxBodyBytes = DefaultMaxBodyBytes

	ao := &ApiOptions{
		mux: chi.NewMux(),
		def: &openapi3.Spec{
			Openapi: "3.0.3",
			Info: openapi3.Info{
				Title:   title,
				Version: version,
			},
		},
		pipe:      pipe,
		readiness: health.Always(true),
		liveness:  health.Always(true),
	}
	ao.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	ao.mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	for _, opt := range opts {
		opt.ApplyApiOption(ao)
	}

	// every operation reads the pool at request time, so it is safe to
	// create it only once all options are known
	pipe.pool = concurrent.NewPool(ao.workers)

	ao.mux.Method(http.MethodGet, "/health/readiness", healthHandler(ao.readiness, log))
	ao.mux.Method(http.MethodGet, "/health/liveness", healthHandler(ao.liveness, log))

	api := &Api{
		def:    ao.def,
		routes: ao.routes,
		log:    log,
	}
	ao.mux.Get("/openapi.json", api.serveOpenApi)

	middlewares := append([]func(http.Handler) http.Handler{requestIDMiddleware}, ao.middlewares...)
	api.handler = chi.Chain(middlewares...).Handler(ao.mux)
	return api
}

// ServeHTTP implements the [http.Handler] interface.
func (api *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.handler.ServeHTTP(w, r)
}

// Routes returns a copy of the route table in registration order.
func (api *Api) Routes() []Route {
	routes := make([]Route, len(api.routes))
	for i, r := range api.routes {
		routes[i] = r.clone()
	}
	return routes
}

// Route looks up a registered route by method and pattern.
func (api *Api) Route(method, pattern string) (Route, bool) {
	i := slices.IndexFunc(api.routes, func(r Route) bool {
		return r.Method == method && r.Pattern == pattern
	})
	if i < 0 {
		return Route{}, false
	}
	return api.routes[i].clone(), true
}

// WriteOpenApi writes the OpenAPI document as indented JSON.
func (api *Api) WriteOpenApi(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(api.def)
}

func (api *Api) serveOpenApi(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(api.def)
	if err != nil {
		api.log.ErrorContext(
			r.Context(),
			"failed to encode openapi schema to json",
			slog.Any("error", err),
		)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}
