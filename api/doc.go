// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package api binds the Conduit REST API to the request pipeline of
// package rest.
//
// The business logic is supplied as a [Server], which groups one contract
// per resource. Every operation returns one variant of a closed outcome
// set, e.g. [CreateArticleResponse], and each variant maps to exactly one
// status code.
//
//	type server struct {
//		api.Unimplemented[string]
//		rest.ClaimsExtractorFunc[string]
//	}
//
//	func (server) GetTags(ctx context.Context, meta rest.RequestMeta) (api.GetTagsResponse, error) {
//		return api.Status200Tags{Body: api.GetTags200Response{Tags: []string{"go"}}}, nil
//	}
//
//	h := api.NewApi[string]("Conduit API", "1.0.0", server{...})
package api
