// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/z5labs/conduit/rest"
	"github.com/z5labs/conduit/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingServer counts every call into the handler contracts. Operations
// without an override answer like [Unimplemented].
type countingServer struct {
	Unimplemented[string]

	calls atomic.Int32

	createArticle  func(string, CreateArticleRequest) (CreateArticleResponse, error)
	getArticle     func(SlugParams) (GetArticleResponse, error)
	getArticles    func(GetArticlesParams) (GetArticlesResponse, error)
	createUser     func(CreateUserRequest) (CreateUserResponse, error)
	getCurrentUser func(string) (GetCurrentUserResponse, error)
}

func (s *countingServer) ExtractClaimsFromHeader(ctx context.Context, h http.Header, key string) (string, bool) {
	return rest.TokenFromHeader(h, key)
}

func (s *countingServer) CreateArticle(ctx context.Context, meta rest.RequestMeta, claims string, body CreateArticleRequest) (CreateArticleResponse, error) {
	s.calls.Add(1)
	if s.createArticle != nil {
		return s.createArticle(claims, body)
	}
	return s.Unimplemented.CreateArticle(ctx, meta, claims, body)
}

func (s *countingServer) DeleteArticle(ctx context.Context, meta rest.RequestMeta, claims string, params SlugParams) (DeleteArticleResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.DeleteArticle(ctx, meta, claims, params)
}

func (s *countingServer) GetArticle(ctx context.Context, meta rest.RequestMeta, params SlugParams) (GetArticleResponse, error) {
	s.calls.Add(1)
	if s.getArticle != nil {
		return s.getArticle(params)
	}
	return s.Unimplemented.GetArticle(ctx, meta, params)
}

func (s *countingServer) GetArticles(ctx context.Context, meta rest.RequestMeta, params GetArticlesParams) (GetArticlesResponse, error) {
	s.calls.Add(1)
	if s.getArticles != nil {
		return s.getArticles(params)
	}
	return s.Unimplemented.GetArticles(ctx, meta, params)
}

func (s *countingServer) GetArticlesFeed(ctx context.Context, meta rest.RequestMeta, claims string, params GetArticlesFeedParams) (GetArticlesFeedResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.GetArticlesFeed(ctx, meta, claims, params)
}

func (s *countingServer) UpdateArticle(ctx context.Context, meta rest.RequestMeta, claims string, params SlugParams, body UpdateArticleRequest) (UpdateArticleResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.UpdateArticle(ctx, meta, claims, params, body)
}

func (s *countingServer) CreateArticleComment(ctx context.Context, meta rest.RequestMeta, claims string, params SlugParams, body CreateArticleCommentRequest) (CreateArticleCommentResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.CreateArticleComment(ctx, meta, claims, params, body)
}

func (s *countingServer) DeleteArticleComment(ctx context.Context, meta rest.RequestMeta, claims string, params CommentParams) (DeleteArticleCommentResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.DeleteArticleComment(ctx, meta, claims, params)
}

func (s *countingServer) GetArticleComments(ctx context.Context, meta rest.RequestMeta, params SlugParams) (GetArticleCommentsResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.GetArticleComments(ctx, meta, params)
}

func (s *countingServer) CreateArticleFavorite(ctx context.Context, meta rest.RequestMeta, claims string, params SlugParams) (CreateArticleFavoriteResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.CreateArticleFavorite(ctx, meta, claims, params)
}

func (s *countingServer) DeleteArticleFavorite(ctx context.Context, meta rest.RequestMeta, claims string, params SlugParams) (DeleteArticleFavoriteResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.DeleteArticleFavorite(ctx, meta, claims, params)
}

func (s *countingServer) FollowUserByUsername(ctx context.Context, meta rest.RequestMeta, claims string, params UsernameParams) (FollowUserByUsernameResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.FollowUserByUsername(ctx, meta, claims, params)
}

func (s *countingServer) GetProfileByUsername(ctx context.Context, meta rest.RequestMeta, params UsernameParams) (GetProfileByUsernameResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.GetProfileByUsername(ctx, meta, params)
}

func (s *countingServer) UnfollowUserByUsername(ctx context.Context, meta rest.RequestMeta, claims string, params UsernameParams) (UnfollowUserByUsernameResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.UnfollowUserByUsername(ctx, meta, claims, params)
}

func (s *countingServer) GetTags(ctx context.Context, meta rest.RequestMeta) (GetTagsResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.GetTags(ctx, meta)
}

func (s *countingServer) CreateUser(ctx context.Context, meta rest.RequestMeta, body CreateUserRequest) (CreateUserResponse, error) {
	s.calls.Add(1)
	if s.createUser != nil {
		return s.createUser(body)
	}
	return s.Unimplemented.CreateUser(ctx, meta, body)
}

func (s *countingServer) GetCurrentUser(ctx context.Context, meta rest.RequestMeta, claims string) (GetCurrentUserResponse, error) {
	s.calls.Add(1)
	if s.getCurrentUser != nil {
		return s.getCurrentUser(claims)
	}
	return s.Unimplemented.GetCurrentUser(ctx, meta, claims)
}

func (s *countingServer) Login(ctx context.Context, meta rest.RequestMeta, body LoginRequest) (LoginResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.Login(ctx, meta, body)
}

func (s *countingServer) UpdateCurrentUser(ctx context.Context, meta rest.RequestMeta, claims string, body UpdateCurrentUserRequest) (UpdateCurrentUserResponse, error) {
	s.calls.Add(1)
	return s.Unimplemented.UpdateCurrentUser(ctx, meta, claims, body)
}

func newTestApi(s *countingServer) *rest.Api {
	return NewApi[string]("Conduit API", "1.0.0", s)
}

func send(api http.Handler, method, target, body string, hdr http.Header) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range hdr {
		r.Header[k] = vs
	}

	w := httptest.NewRecorder()
	api.ServeHTTP(w, r)
	return w
}

func withToken(token string) http.Header {
	return http.Header{AuthorizationHeader: {"Token " + token}}
}

func concretePath(pattern string) string {
	return strings.NewReplacer(
		"{slug}", "how-to-train-your-dragon",
		"{id}", "1",
		"{username}", "jake",
	).Replace(pattern)
}

func decodeFieldErrors(t *testing.T, w *httptest.ResponseRecorder) validation.Errors {
	t.Helper()

	var errs validation.Errors
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	return errs
}

var fixedTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestNewApi(t *testing.T) {
	t.Run("will register every operation", func(t *testing.T) {
		api := newTestApi(&countingServer{})

		var ids []string
		required := map[string]bool{}
		for _, route := range api.Routes() {
			ids = append(ids, route.OperationID)
			required[route.OperationID] = route.Auth == rest.AuthRequired
		}

		assert.ElementsMatch(t, []string{
			"CreateArticle", "DeleteArticle", "GetArticle", "GetArticles", "GetArticlesFeed", "UpdateArticle",
			"CreateArticleComment", "DeleteArticleComment", "GetArticleComments",
			"CreateArticleFavorite", "DeleteArticleFavorite",
			"FollowUserByUsername", "GetProfileByUsername", "UnfollowUserByUsername",
			"GetTags",
			"CreateUser", "GetCurrentUser", "Login", "UpdateCurrentUser",
		}, ids)

		for _, id := range []string{"GetArticle", "GetArticles", "GetArticleComments", "GetProfileByUsername", "GetTags", "CreateUser", "Login"} {
			assert.False(t, required[id], id)
		}
		for _, id := range []string{"CreateArticle", "DeleteArticle", "GetArticlesFeed", "UpdateArticle", "GetCurrentUser", "UpdateCurrentUser"} {
			assert.True(t, required[id], id)
		}
	})

	t.Run("will route the feed before the slug parameter", func(t *testing.T) {
		route, ok := newTestApi(&countingServer{}).Route(http.MethodGet, "/api/articles/feed")
		require.True(t, ok)
		assert.Equal(t, "GetArticlesFeed", route.OperationID)
		assert.Equal(t, []int{200, 401, 422}, route.StatusCodes)
	})
}

func TestAuthRequiredRoutes(t *testing.T) {
	t.Run("will respond with an empty 401 and never call the handler", func(t *testing.T) {
		headers := map[string]http.Header{
			"if the authorization header is missing": nil,
			"if the scheme is not supported":         {AuthorizationHeader: {"Basic Ym9iOnNlY3JldA=="}},
			"if the token is empty":                  {AuthorizationHeader: {"Token "}},
		}

		s := &countingServer{}
		api := newTestApi(s)

		var checked int
		for _, route := range api.Routes() {
			if route.Auth != rest.AuthRequired {
				continue
			}
			checked++

			for name, hdr := range headers {
				t.Run(route.OperationID+" "+name, func(t *testing.T) {
					w := send(api, route.Method, concretePath(route.Pattern), `{}`, hdr)

					assert.Equal(t, http.StatusUnauthorized, w.Code)
					assert.Empty(t, w.Body.Bytes())
				})
			}
		}

		assert.Equal(t, 12, checked)
		assert.Zero(t, s.calls.Load())
	})

	t.Run("will pass the resolved claims to the handler", func(t *testing.T) {
		var got string
		s := &countingServer{
			getCurrentUser: func(claims string) (GetCurrentUserResponse, error) {
				got = claims
				return Status200User{Body: Login200Response{User: User{Username: "jake", Token: claims}}}, nil
			},
		}

		w := send(newTestApi(s), http.MethodGet, "/api/user", "", withToken("jwt.token.here"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jwt.token.here", got)
		assert.EqualValues(t, 1, s.calls.Load())
	})
}

func TestQueryLowerBounds(t *testing.T) {
	t.Run("will respond with 400 before calling the handler", func(t *testing.T) {
		testCases := []struct {
			Name   string
			Target string
			Header http.Header
			Path   string
		}{
			{
				Name:   "if offset is negative",
				Target: "/api/articles?offset=-1",
				Path:   "offset",
			},
			{
				Name:   "if offset is negative among other valid values",
				Target: "/api/articles?tag=dragons&author=jake&favorited=jane&limit=20&offset=-1",
				Path:   "offset",
			},
			{
				Name:   "if limit is zero",
				Target: "/api/articles?limit=0",
				Path:   "limit",
			},
			{
				Name:   "if the feed offset is negative",
				Target: "/api/articles/feed?offset=-1",
				Header: withToken("abc"),
				Path:   "offset",
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				s := &countingServer{}

				w := send(newTestApi(s), http.MethodGet, testCase.Target, "", testCase.Header)

				require.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

				errs := decodeFieldErrors(t, w)
				require.Len(t, errs, 1)
				assert.Equal(t, testCase.Path, errs[0].Path)
				assert.Equal(t, "min", errs[0].Constraint)
				assert.Zero(t, s.calls.Load())
			})
		}
	})

	t.Run("will accept values on the bound", func(t *testing.T) {
		var got GetArticlesParams
		s := &countingServer{
			getArticles: func(p GetArticlesParams) (GetArticlesResponse, error) {
				got = p
				return Status200MultipleArticles{}, nil
			},
		}

		w := send(newTestApi(s), http.MethodGet, "/api/articles?offset=0&limit=1&tag=dragons", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"articles":[],"articlesCount":0}`, w.Body.String())
		require.NotNil(t, got.Offset)
		require.NotNil(t, got.Limit)
		require.NotNil(t, got.Tag)
		assert.EqualValues(t, 0, *got.Offset)
		assert.EqualValues(t, 1, *got.Limit)
		assert.Equal(t, "dragons", *got.Tag)
		assert.Nil(t, got.Author)
	})

	t.Run("will respond with a plain text 400 if a value is not a number", func(t *testing.T) {
		s := &countingServer{}

		w := send(newTestApi(s), http.MethodDelete, "/api/articles/how-to/comments/first", "", withToken("abc"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Zero(t, s.calls.Load())
	})
}

func TestMissingBodyFields(t *testing.T) {
	t.Run("will respond with 400 naming the full field path", func(t *testing.T) {
		testCases := []struct {
			Name   string
			Method string
			Target string
			Body   string
			Paths  []string
		}{
			{
				Name:   "if the article title is missing",
				Method: http.MethodPost,
				Target: "/api/articles",
				Body:   `{"article":{"description":"Ever wonder how?","body":"You have to believe"}}`,
				Paths:  []string{"article.title"},
			},
			{
				Name:   "if every article field is missing",
				Method: http.MethodPost,
				Target: "/api/articles",
				Body:   `{"article":{"tagList":["dragons"]}}`,
				Paths:  []string{"article.title", "article.description", "article.body"},
			},
			{
				Name:   "if the article is null",
				Method: http.MethodPost,
				Target: "/api/articles",
				Body:   `{"article":null}`,
				Paths:  []string{"article"},
			},
			{
				Name:   "if the comment body is missing",
				Method: http.MethodPost,
				Target: "/api/articles/how-to/comments",
				Body:   `{"comment":{}}`,
				Paths:  []string{"comment.body"},
			},
			{
				Name:   "if the updated user is missing",
				Method: http.MethodPut,
				Target: "/api/user",
				Body:   `{}`,
				Paths:  []string{"user"},
			},
		}

		for _, testCase := range testCases {
			t.Run(testCase.Name, func(t *testing.T) {
				s := &countingServer{}

				w := send(newTestApi(s), testCase.Method, testCase.Target, testCase.Body, withToken("abc"))

				require.Equal(t, http.StatusBadRequest, w.Code)

				errs := decodeFieldErrors(t, w)
				assert.Equal(t, testCase.Paths, errs.Paths())
				for _, e := range errs {
					assert.Equal(t, validation.ConstraintMissing, e.Constraint)
				}
				assert.Zero(t, s.calls.Load())
			})
		}
	})

	t.Run("will check unauthenticated bodies too", func(t *testing.T) {
		s := &countingServer{}

		w := send(newTestApi(s), http.MethodPost, "/api/users/login", `{"user":{"email":"jake@jake.jake"}}`, nil)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"user.password"}, decodeFieldErrors(t, w).Paths())
		assert.Zero(t, s.calls.Load())
	})
}

func TestGetArticle(t *testing.T) {
	t.Run("will respond with identical bytes for identical requests", func(t *testing.T) {
		s := &countingServer{
			getArticle: func(p SlugParams) (GetArticleResponse, error) {
				return Status200SingleArticle{
					Body: CreateArticle201Response{
						Article: Article{
							Slug:        p.Slug,
							Title:       "How to train your dragon",
							Description: "Ever wonder how?",
							Body:        "It takes a Jacobian",
							TagList:     []string{"dragons", "training"},
							CreatedAt:   fixedTime,
							UpdatedAt:   fixedTime,
							Author: Profile{
								Username: "jake",
								Bio:      "I work at statefarm",
								Image:    "https://i.stack.imgur.com/xHWG8.jpg",
							},
						},
					},
				}, nil
			},
		}
		api := newTestApi(s)

		first := send(api, http.MethodGet, "/api/articles/how-to-train-your-dragon", "", nil)
		second := send(api, http.MethodGet, "/api/articles/how-to-train-your-dragon", "", nil)

		require.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, first.Code, second.Code)
		assert.Equal(t, first.Header(), second.Header())
		assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
		assert.EqualValues(t, 2, s.calls.Load())
	})

	t.Run("will pass through a declared business error", func(t *testing.T) {
		s := &countingServer{
			getArticle: func(p SlugParams) (GetArticleResponse, error) {
				return Status422UnexpectedError{Body: NewGenericError("article " + p.Slug + " not found")}, nil
			},
		}

		w := send(newTestApi(s), http.MethodGet, "/api/articles/nope", "", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.JSONEq(t, `{"errors":{"body":["article nope not found"]}}`, w.Body.String())
	})

	t.Run("will respond with an empty 500 if the handler fails", func(t *testing.T) {
		s := &countingServer{
			getArticle: func(SlugParams) (GetArticleResponse, error) {
				return nil, context.DeadlineExceeded
			},
		}

		w := send(newTestApi(s), http.MethodGet, "/api/articles/slow", "", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Empty(t, w.Body.Bytes())
		assert.EqualValues(t, 1, s.calls.Load())
	})
}

func TestCreateArticle(t *testing.T) {
	t.Run("will default the tag list to an empty list", func(t *testing.T) {
		var received NewArticle
		s := &countingServer{
			createArticle: func(_ string, body CreateArticleRequest) (CreateArticleResponse, error) {
				received = body.Article
				return Status201SingleArticle{
					Body: CreateArticle201Response{
						Article: Article{
							Slug:        "how-to-train-your-dragon",
							Title:       body.Article.Title,
							Description: body.Article.Description,
							Body:        body.Article.Body,
							TagList:     body.Article.TagList,
							CreatedAt:   fixedTime,
							UpdatedAt:   fixedTime,
						},
					},
				}, nil
			},
		}

		w := send(
			newTestApi(s),
			http.MethodPost,
			"/api/articles",
			`{"article":{"title":"How to train your dragon","description":"Ever wonder how?","body":"You have to believe"}}`,
			withToken("abc"),
		)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotNil(t, received.TagList)
		assert.Empty(t, received.TagList)

		var resp CreateArticle201Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "How to train your dragon", resp.Article.Title)
		assert.Equal(t, "Ever wonder how?", resp.Article.Description)
		assert.Equal(t, "You have to believe", resp.Article.Body)
		assert.Equal(t, []string{}, resp.Article.TagList)
		assert.Contains(t, w.Body.String(), `"tagList":[]`)
	})
}

func TestCreateUser(t *testing.T) {
	t.Run("will respond with 201 and the user envelope", func(t *testing.T) {
		var received NewUser
		s := &countingServer{
			createUser: func(body CreateUserRequest) (CreateUserResponse, error) {
				received = body.User
				return Status201User{
					Body: Login200Response{
						User: User{
							Email:    body.User.Email,
							Token:    "jwt.token.here",
							Username: body.User.Username,
						},
					},
				}, nil
			},
		}

		w := send(
			newTestApi(s),
			http.MethodPost,
			"/api/users",
			`{"user":{"username":"bob","email":"bob@x.com","password":"secret"}}`,
			nil,
		)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, NewUser{Username: "bob", Email: "bob@x.com", Password: "secret"}, received)

		var resp Login200Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bob", resp.User.Username)
		assert.Equal(t, "bob@x.com", resp.User.Email)
		assert.Equal(t, "jwt.token.here", resp.User.Token)
	})
}

func TestUnimplemented(t *testing.T) {
	t.Run("will respond with 422 naming the operation", func(t *testing.T) {
		w := send(newTestApi(&countingServer{}), http.MethodGet, "/api/tags", "", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"errors":{"body":["GetTags is not implemented"]}}`, w.Body.String())
	})
}
