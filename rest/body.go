// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/z5labs/conduit/validation"

	"github.com/swaggest/openapi-go/openapi3"
	"github.com/z5labs/sdk-go/ptr"
	"github.com/z5labs/sdk-go/try"
)

// NoBody is the body type of routes which do not read a request body.
type NoBody struct{}

func isNoBody[B any]() bool {
	var b B
	_, ok := any(b).(NoBody)
	return ok
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

// decodeBody reads at most limit bytes of JSON into dst. The same bytes are
// also decoded into a generic value tree from which the presence of every
// member is recorded.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) (presence validation.Presence, err error) {
	defer try.Close(&err, r.Body)

	contentType := r.Header.Get("Content-Type")
	if !isJSON(contentType) {
		return nil, UnsupportedMediaTypeError{ContentType: contentType}
	}

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, PayloadTooLargeError{Limit: mbe.Limit}
		}
		return nil, BadRequestError{Cause: err}
	}

	var tree any
	err = json.Unmarshal(b, &tree)
	if err != nil {
		return nil, BadRequestError{Cause: err}
	}

	err = json.Unmarshal(b, dst)
	if err != nil {
		return nil, BadRequestError{Cause: err}
	}

	return validation.PresenceOf(tree), nil
}

func requestBodySpec(v any) (*openapi3.RequestBodyOrRef, error) {
	schema, err := schemaOf(v)
	if err != nil {
		return nil, err
	}

	return &openapi3.RequestBodyOrRef{
		RequestBody: &openapi3.RequestBody{
			Required: ptr.Ref(true),
			Content: map[string]openapi3.MediaType{
				"application/json": {
					Schema: schema,
				},
			},
		},
	}, nil
}
