// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/z5labs/conduit/validation"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchParams struct {
	Slug     string   `path:"slug"`
	Tag      *string  `query:"tag"`
	Limit    *int32   `query:"limit"`
	Ratio    float64  `query:"ratio"`
	Archived bool     `query:"archived"`
	Pages    []uint16 `query:"page"`
	Author   string   `query:"author" required:"true"`
}

func withPathParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestDecodeParams(t *testing.T) {
	t.Run("will decode every supported kind", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/how-to%2Fgo?tag=go&limit=20&ratio=0.5&archived=true&page=1&page=2", nil)
		r = withPathParams(r, "slug", "how-to%2Fgo")

		var p searchParams
		presence, err := decodeParams(r, &p)
		require.NoError(t, err)

		require.NotNil(t, p.Tag)
		require.NotNil(t, p.Limit)
		assert.Equal(t, "how-to/go", p.Slug)
		assert.Equal(t, "go", *p.Tag)
		assert.Equal(t, int32(20), *p.Limit)
		assert.Equal(t, 0.5, p.Ratio)
		assert.True(t, p.Archived)
		assert.Equal(t, []uint16{1, 2}, p.Pages)

		assert.Equal(t, validation.Presence{
			"slug":     true,
			"tag":      true,
			"limit":    true,
			"ratio":    true,
			"archived": true,
			"page":     true,
		}, presence)
	})

	t.Run("will decode path values exactly once", func(t *testing.T) {
		testCases := []struct {
			Name   string
			Target string
			Routed string
			Slug   string
		}{
			{
				Name:   "if an escaped percent sign is followed by letters",
				Target: "/100%25off",
				Routed: "100%off",
				Slug:   "100%off",
			},
			{
				Name:   "if an escaped percent sign looks like another escape",
				Target: "/x%2541",
				Routed: "x%41",
				Slug:   "x%41",
			},
			{
				Name:   "if an escaped slash forces matching on the raw path",
				Target: "/a%2Fb%2541",
				Routed: "a%2Fb%2541",
				Slug:   "a/b%41",
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				r := withPathParams(httptest.NewRequest(http.MethodGet, testCase.Target, nil), "slug", testCase.Routed)

				var p searchParams
				_, err := decodeParams(r, &p)
				require.NoError(t, err)
				assert.Equal(t, testCase.Slug, p.Slug)
			})
		}
	})

	t.Run("will leave absent query values unset", func(t *testing.T) {
		r := withPathParams(httptest.NewRequest(http.MethodGet, "/", nil), "slug", "a")

		var p searchParams
		presence, err := decodeParams(r, &p)
		require.NoError(t, err)

		assert.Nil(t, p.Tag)
		assert.Nil(t, p.Limit)
		assert.False(t, presence.Has("author"))
	})

	t.Run("will return a BadRequestError", func(t *testing.T) {
		testCases := []struct {
			Name  string
			Query string
			Param string
		}{
			{Name: "if an int overflows its size", Query: "limit=3000000000", Param: "limit"},
			{Name: "if a bool is malformed", Query: "archived=maybe", Param: "archived"},
			{Name: "if a slice element is malformed", Query: "page=1&page=-2", Param: "page"},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				r := withPathParams(httptest.NewRequest(http.MethodGet, "/?"+testCase.Query, nil), "slug", "a")

				var p searchParams
				_, err := decodeParams(r, &p)

				var brerr BadRequestError
				require.ErrorAs(t, err, &brerr)

				var perr InvalidParamValueError
				require.ErrorAs(t, brerr.Cause, &perr)
				assert.Equal(t, testCase.Param, perr.Name)
				assert.Equal(t, "query", perr.In)
			})
		}
	})
}

func TestParamFieldsOf(t *testing.T) {
	t.Run("will mark path params and tagged query params required", func(t *testing.T) {
		fields, err := paramFieldsOf(reflect.TypeFor[searchParams]())
		require.NoError(t, err)

		required := make(map[string]bool)
		for _, f := range fields {
			required[f.name] = f.required
		}
		assert.Equal(t, map[string]bool{
			"slug":     true,
			"tag":      false,
			"limit":    false,
			"ratio":    false,
			"archived": false,
			"page":     false,
			"author":   true,
		}, required)
	})

	t.Run("will reject unsupported field types", func(t *testing.T) {
		type badParams struct {
			Filter map[string]string `query:"filter"`
		}

		_, err := paramFieldsOf(reflect.TypeFor[badParams]())
		assert.Error(t, err)
	})
}

func TestPath(t *testing.T) {
	t.Run("will render segments and params", func(t *testing.T) {
		p := BasePath("/api/articles").Param("slug").Segment("comments").Param("id")

		assert.Equal(t, "/api/articles/{slug}/comments/{id}", p.String())
		assert.Equal(t, []string{"slug", "id"}, p.Params())
	})

	t.Run("will not share elements between derived paths", func(t *testing.T) {
		base := BasePath("/api/profiles").Param("username")

		follow := base.Segment("follow")
		other := base.Segment("posts")

		assert.Equal(t, "/api/profiles/{username}/follow", follow.String())
		assert.Equal(t, "/api/profiles/{username}/posts", other.String())
	})
}
