// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/swaggest/openapi-go/openapi3"
)

// Outcome is one variant of the closed result set of an operation.
//
// Every variant maps to exactly one status code. ResponseBody reports the
// payload to encode as JSON, or false when the response has no body.
type Outcome interface {
	StatusCode() int
	ResponseBody() (any, bool)
}

// Response is a fully built HTTP response. It is produced before anything
// is written to the client and never modified afterwards.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Send writes the response to w in one shot.
func (r *Response) Send(w http.ResponseWriter) error {
	hdr := w.Header()
	for k, vs := range r.Header {
		hdr[k] = append(hdr[k][:0:0], vs...)
	}
	if len(r.Body) > 0 {
		hdr.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}
	w.WriteHeader(r.StatusCode)
	if len(r.Body) == 0 {
		return nil
	}
	_, err := io.Copy(w, bytes.NewReader(r.Body))
	return err
}

type declaredResponse struct {
	status  int
	example any
}

func (d declaredResponse) spec() (openapi3.ResponseOrRef, error) {
	resp := &openapi3.Response{
		Description: http.StatusText(d.status),
	}
	if d.example == nil {
		return openapi3.ResponseOrRef{Response: resp}, nil
	}

	schema, err := schemaOf(d.example)
	if err != nil {
		return openapi3.ResponseOrRef{}, err
	}
	resp.Content = map[string]openapi3.MediaType{
		"application/json": {
			Schema: schema,
		},
	}
	return openapi3.ResponseOrRef{Response: resp}, nil
}
