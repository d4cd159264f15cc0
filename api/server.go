// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

import (
	"context"
	"net/http"

	"github.com/z5labs/conduit/rest"
)

// AuthorizationHeader carries the credential of authenticated routes.
const AuthorizationHeader = "Authorization"

type (
	noParams = rest.NoParams
	noBody   = rest.NoBody
)

// operation registers f for method and path. The type parameters are
// inferred from the handler function literal.
func operation[C, P, B any, O rest.Outcome](method string, path rest.Path, auth rest.Auth[C], f func(context.Context, *rest.Request[C, P, B]) (O, error), opts ...rest.OperationOption) rest.ApiOption {
	return rest.Handle[C, P, B, O](method, path, auth, rest.HandlerFunc[C, P, B, O](f), opts...)
}

// NewApi binds every operation of impl to its route. opts are applied after
// the routes, so they may add middleware or replace the health monitors.
func NewApi[C any](title, version string, impl Server[C], opts ...rest.ApiOption) *rest.Api {
	required := rest.RequireAuth[C](impl, AuthorizationHeader)
	none := rest.NoAuth[C]()

	articles := rest.BasePath("/api/articles")
	article := articles.Param("slug")
	comments := article.Segment("comments")
	profile := rest.BasePath("/api/profiles").Param("username")
	user := rest.BasePath("/api/user")
	users := rest.BasePath("/api/users")

	unauthorized := rest.Returns(http.StatusUnauthorized, nil)
	unexpected := rest.Returns(http.StatusUnprocessableEntity, GenericErrorModel{})

	singleArticle := rest.Returns(http.StatusOK, CreateArticle201Response{})
	multipleArticles := rest.Returns(http.StatusOK, GetArticlesFeed200Response{})
	profileOK := rest.Returns(http.StatusOK, GetProfileByUsername200Response{})
	userOK := rest.Returns(http.StatusOK, Login200Response{})
	noContent := rest.Returns(http.StatusOK, nil)

	routes := []rest.ApiOption{
		// Articles
		operation(
			http.MethodPost, articles, required,
			func(ctx context.Context, req *rest.Request[C, noParams, CreateArticleRequest]) (CreateArticleResponse, error) {
				return impl.CreateArticle(ctx, req.RequestMeta, *req.Claims, req.Body)
			},
			rest.OperationID("CreateArticle"),
			rest.Summary("Create an article"),
			rest.Tags("Articles"),
			rest.Returns(http.StatusCreated, CreateArticle201Response{}),
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodDelete, article, required,
			func(ctx context.Context, req *rest.Request[C, SlugParams, noBody]) (DeleteArticleResponse, error) {
				return impl.DeleteArticle(ctx, req.RequestMeta, *req.Claims, req.Params)
			},
			rest.OperationID("DeleteArticle"),
			rest.Summary("Delete an article"),
			rest.Tags("Articles"),
			noContent,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodGet, article, none,
			func(ctx context.Context, req *rest.Request[C, SlugParams, noBody]) (GetArticleResponse, error) {
				return impl.GetArticle(ctx, req.RequestMeta, req.Params)
			},
			rest.OperationID("GetArticle"),
			rest.Summary("Get an article"),
			rest.Tags("Articles"),
			singleArticle,
			unexpected,
		),
		operation(
			http.MethodGet, articles, none,
			func(ctx context.Context, req *rest.Request[C, GetArticlesParams, noBody]) (GetArticlesResponse, error) {
				return impl.GetArticles(ctx, req.RequestMeta, req.Params)
			},
			rest.OperationID("GetArticles"),
			rest.Summary("Get recent articles globally"),
			rest.Tags("Articles"),
			multipleArticles,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodGet, articles.Segment("feed"), required,
			func(ctx context.Context, req *rest.Request[C, GetArticlesFeedParams, noBody]) (GetArticlesFeedResponse, error) {
				return impl.GetArticlesFeed(ctx, req.RequestMeta, *req.Claims, req.Params)
			},
			rest.OperationID("GetArticlesFeed"),
			rest.Summary("Get recent articles from users you follow"),
			rest.Tags("Articles"),
			multipleArticles,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodPut, article, required,
			func(ctx context.Context, req *rest.Request[C, SlugParams, UpdateArticleRequest]) (UpdateArticleResponse, error) {
				return impl.UpdateArticle(ctx, req.RequestMeta, *req.Claims, req.Params, req.Body)
			},
			rest.OperationID("UpdateArticle"),
			rest.Summary("Update an article"),
			rest.Tags("Articles"),
			singleArticle,
			unauthorized,
			unexpected,
		),

		// Comments
		operation(
			http.MethodPost, comments, required,
			func(ctx context.Context, req *rest.Request[C, SlugParams, CreateArticleCommentRequest]) (CreateArticleCommentResponse, error) {
				return impl.CreateArticleComment(ctx, req.RequestMeta, *req.Claims, req.Params, req.Body)
			},
			rest.OperationID("CreateArticleComment"),
			rest.Summary("Create a comment for an article"),
			rest.Tags("Comments"),
			rest.Returns(http.StatusOK, CreateArticleComment200Response{}),
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodDelete, comments.Param("id"), required,
			func(ctx context.Context, req *rest.Request[C, CommentParams, noBody]) (DeleteArticleCommentResponse, error) {
				return impl.DeleteArticleComment(ctx, req.RequestMeta, *req.Claims, req.Params)
			},
			rest.OperationID("DeleteArticleComment"),
			rest.Summary("Delete a comment for an article"),
			rest.Tags("Comments"),
			noContent,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodGet, comments, none,
			func(ctx context.Context, req *rest.Request[C, SlugParams, noBody]) (GetArticleCommentsResponse, error) {
				return impl.GetArticleComments(ctx, req.RequestMeta, req.Params)
			},
			rest.OperationID("GetArticleComments"),
			rest.Summary("Get comments for an article"),
			rest.Tags("Comments"),
			rest.Returns(http.StatusOK, GetArticleComments200Response{}),
			unauthorized,
			unexpected,
		),

		// Favorites
		operation(
			http.MethodPost, article.Segment("favorite"), required,
			func(ctx context.Context, req *rest.Request[C, SlugParams, noBody]) (CreateArticleFavoriteResponse, error) {
				return impl.CreateArticleFavorite(ctx, req.RequestMeta, *req.Claims, req.Params)
			},
			rest.OperationID("CreateArticleFavorite"),
			rest.Summary("Favorite an article"),
			rest.Tags("Favorites"),
			singleArticle,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodDelete, article.Segment("favorite"), required,
			func(ctx context.Context, req *rest.Request[C, SlugParams, noBody]) (DeleteArticleFavoriteResponse, error) {
				return impl.DeleteArticleFavorite(ctx, req.RequestMeta, *req.Claims, req.Params)
			},
			rest.OperationID("DeleteArticleFavorite"),
			rest.Summary("Unfavorite an article"),
			rest.Tags("Favorites"),
			singleArticle,
			unauthorized,
			unexpected,
		),

		// Profile
		operation(
			http.MethodPost, profile.Segment("follow"), required,
			func(ctx context.Context, req *rest.Request[C, UsernameParams, noBody]) (FollowUserByUsernameResponse, error) {
				return impl.FollowUserByUsername(ctx, req.RequestMeta, *req.Claims, req.Params)
			},
			rest.OperationID("FollowUserByUsername"),
			rest.Summary("Follow a user"),
			rest.Tags("Profile"),
			profileOK,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodGet, profile, none,
			func(ctx context.Context, req *rest.Request[C, UsernameParams, noBody]) (GetProfileByUsernameResponse, error) {
				return impl.GetProfileByUsername(ctx, req.RequestMeta, req.Params)
			},
			rest.OperationID("GetProfileByUsername"),
			rest.Summary("Get a profile"),
			rest.Tags("Profile"),
			profileOK,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodDelete, profile.Segment("follow"), required,
			func(ctx context.Context, req *rest.Request[C, UsernameParams, noBody]) (UnfollowUserByUsernameResponse, error) {
				return impl.UnfollowUserByUsername(ctx, req.RequestMeta, *req.Claims, req.Params)
			},
			rest.OperationID("UnfollowUserByUsername"),
			rest.Summary("Unfollow a user"),
			rest.Tags("Profile"),
			profileOK,
			unauthorized,
			unexpected,
		),

		// Tags
		operation(
			http.MethodGet, rest.BasePath("/api/tags"), none,
			func(ctx context.Context, req *rest.Request[C, noParams, noBody]) (GetTagsResponse, error) {
				return impl.GetTags(ctx, req.RequestMeta)
			},
			rest.OperationID("GetTags"),
			rest.Summary("Get tags"),
			rest.Tags("Tags"),
			rest.Returns(http.StatusOK, GetTags200Response{}),
			unexpected,
		),

		// User and Authentication
		operation(
			http.MethodPost, users, none,
			func(ctx context.Context, req *rest.Request[C, noParams, CreateUserRequest]) (CreateUserResponse, error) {
				return impl.CreateUser(ctx, req.RequestMeta, req.Body)
			},
			rest.OperationID("CreateUser"),
			rest.Summary("Register a new user"),
			rest.Tags("User and Authentication"),
			rest.Returns(http.StatusCreated, Login200Response{}),
			unexpected,
		),
		operation(
			http.MethodGet, user, required,
			func(ctx context.Context, req *rest.Request[C, noParams, noBody]) (GetCurrentUserResponse, error) {
				return impl.GetCurrentUser(ctx, req.RequestMeta, *req.Claims)
			},
			rest.OperationID("GetCurrentUser"),
			rest.Summary("Get current user"),
			rest.Tags("User and Authentication"),
			userOK,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodPost, users.Segment("login"), none,
			func(ctx context.Context, req *rest.Request[C, noParams, LoginRequest]) (LoginResponse, error) {
				return impl.Login(ctx, req.RequestMeta, req.Body)
			},
			rest.OperationID("Login"),
			rest.Summary("Existing user login"),
			rest.Tags("User and Authentication"),
			userOK,
			unauthorized,
			unexpected,
		),
		operation(
			http.MethodPut, user, required,
			func(ctx context.Context, req *rest.Request[C, noParams, UpdateCurrentUserRequest]) (UpdateCurrentUserResponse, error) {
				return impl.UpdateCurrentUser(ctx, req.RequestMeta, *req.Claims, req.Body)
			},
			rest.OperationID("UpdateCurrentUser"),
			rest.Summary("Update current user"),
			rest.Tags("User and Authentication"),
			userOK,
			unauthorized,
			unexpected,
		),
	}

	return rest.NewApi(title, version, append(routes, opts...)...)
}
