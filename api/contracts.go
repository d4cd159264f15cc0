// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

import (
	"context"

	"github.com/z5labs/conduit/rest"
)

// Articles
//
// Operations on authenticated routes receive the resolved claims by
// value. They are only called once claims were found.
type Articles[C any] interface {
	CreateArticle(ctx context.Context, meta rest.RequestMeta, claims C, body CreateArticleRequest) (CreateArticleResponse, error)
	DeleteArticle(ctx context.Context, meta rest.RequestMeta, claims C, params SlugParams) (DeleteArticleResponse, error)
	GetArticle(ctx context.Context, meta rest.RequestMeta, params SlugParams) (GetArticleResponse, error)
	GetArticles(ctx context.Context, meta rest.RequestMeta, params GetArticlesParams) (GetArticlesResponse, error)
	GetArticlesFeed(ctx context.Context, meta rest.RequestMeta, claims C, params GetArticlesFeedParams) (GetArticlesFeedResponse, error)
	UpdateArticle(ctx context.Context, meta rest.RequestMeta, claims C, params SlugParams, body UpdateArticleRequest) (UpdateArticleResponse, error)
}

// Comments
type Comments[C any] interface {
	CreateArticleComment(ctx context.Context, meta rest.RequestMeta, claims C, params SlugParams, body CreateArticleCommentRequest) (CreateArticleCommentResponse, error)
	DeleteArticleComment(ctx context.Context, meta rest.RequestMeta, claims C, params CommentParams) (DeleteArticleCommentResponse, error)
	GetArticleComments(ctx context.Context, meta rest.RequestMeta, params SlugParams) (GetArticleCommentsResponse, error)
}

// Favorites
type Favorites[C any] interface {
	CreateArticleFavorite(ctx context.Context, meta rest.RequestMeta, claims C, params SlugParams) (CreateArticleFavoriteResponse, error)
	DeleteArticleFavorite(ctx context.Context, meta rest.RequestMeta, claims C, params SlugParams) (DeleteArticleFavoriteResponse, error)
}

// Profiles
//
// The contract is plural so it does not clash with the [Profile] model.
type Profiles[C any] interface {
	FollowUserByUsername(ctx context.Context, meta rest.RequestMeta, claims C, params UsernameParams) (FollowUserByUsernameResponse, error)
	GetProfileByUsername(ctx context.Context, meta rest.RequestMeta, params UsernameParams) (GetProfileByUsernameResponse, error)
	UnfollowUserByUsername(ctx context.Context, meta rest.RequestMeta, claims C, params UsernameParams) (UnfollowUserByUsernameResponse, error)
}

// Tags has no authenticated operation so it does not depend on the
// claims type.
type Tags interface {
	GetTags(ctx context.Context, meta rest.RequestMeta) (GetTagsResponse, error)
}

// UserAndAuthentication
type UserAndAuthentication[C any] interface {
	CreateUser(ctx context.Context, meta rest.RequestMeta, body CreateUserRequest) (CreateUserResponse, error)
	GetCurrentUser(ctx context.Context, meta rest.RequestMeta, claims C) (GetCurrentUserResponse, error)
	Login(ctx context.Context, meta rest.RequestMeta, body LoginRequest) (LoginResponse, error)
	UpdateCurrentUser(ctx context.Context, meta rest.RequestMeta, claims C, body UpdateCurrentUserRequest) (UpdateCurrentUserResponse, error)
}

// Server is everything [NewApi] needs: every resource contract and the
// means to resolve claims from request headers. C is opaque to the
// server; it is only handed from the extractor to the handlers.
type Server[C any] interface {
	Articles[C]
	Comments[C]
	Favorites[C]
	Profiles[C]
	Tags
	UserAndAuthentication[C]
	rest.ClaimsExtractor[C]
}
