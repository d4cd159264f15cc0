// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"net/http"
	"strings"
)

// ClaimsExtractor resolves an opaque claims value from request headers.
//
// Implementations must report missing or malformed credentials by
// returning false, never by panicking. The reason a credential was
// rejected is never sent to the client.
type ClaimsExtractor[C any] interface {
	ExtractClaimsFromHeader(ctx context.Context, h http.Header, key string) (C, bool)
}

// ClaimsExtractorFunc is a function adapter that implements [ClaimsExtractor].
type ClaimsExtractorFunc[C any] func(context.Context, http.Header, string) (C, bool)

// ExtractClaimsFromHeader implements the [ClaimsExtractor] interface.
func (f ClaimsExtractorFunc[C]) ExtractClaimsFromHeader(ctx context.Context, h http.Header, key string) (C, bool) {
	return f(ctx, h, key)
}

// AuthMode describes whether a route needs claims.
type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthOptional
	AuthRequired
)

func (m AuthMode) String() string {
	switch m {
	case AuthOptional:
		return "optional"
	case AuthRequired:
		return "required"
	default:
		return "none"
	}
}

// DefaultSecurityScheme names the OpenAPI security scheme registered for
// authenticated routes.
const DefaultSecurityScheme = "ApiKeyAuthHeader"

// Auth is the authentication requirement of a single route.
type Auth[C any] struct {
	mode      AuthMode
	extractor ClaimsExtractor[C]
	key       string
	scheme    string
}

// NoAuth never resolves claims. Handlers always see nil claims.
func NoAuth[C any]() Auth[C] {
	return Auth[C]{}
}

// RequireAuth resolves claims from the header named key and rejects the
// request with an empty 401 when none are found. The rejection happens
// before any parameter is extracted or validated.
func RequireAuth[C any](extractor ClaimsExtractor[C], key string) Auth[C] {
	return Auth[C]{
		mode:      AuthRequired,
		extractor: extractor,
		key:       key,
		scheme:    DefaultSecurityScheme,
	}
}

// OptionalAuth resolves claims from the header named key when possible and
// passes nil claims to the handler otherwise.
func OptionalAuth[C any](extractor ClaimsExtractor[C], key string) Auth[C] {
	return Auth[C]{
		mode:      AuthOptional,
		extractor: extractor,
		key:       key,
		scheme:    DefaultSecurityScheme,
	}
}

// Mode returns the requirement level.
func (a Auth[C]) Mode() AuthMode {
	return a.mode
}

func (a Auth[C]) resolve(ctx context.Context, h http.Header) (*C, error) {
	if a.mode == AuthNone {
		return nil, nil
	}

	if a.extractor != nil {
		claims, ok := a.extractor.ExtractClaimsFromHeader(ctx, h, a.key)
		if ok {
			return &claims, nil
		}
	}
	if a.mode == AuthRequired {
		return nil, UnauthorizedError{}
	}
	return nil, nil
}

// TokenFromHeader returns the credential carried by the header named key.
// Both the "Token <t>" and "Bearer <t>" forms are accepted, with the scheme
// matched case-insensitively. It reports false for absent, malformed or
// empty values.
func TokenFromHeader(h http.Header, key string) (string, bool) {
	v := h.Get(key)
	if v == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(v, " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
