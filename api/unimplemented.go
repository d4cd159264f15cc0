// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

import (
	"context"

	"github.com/z5labs/conduit/rest"
)

// Unimplemented answers every operation with a 422 naming the operation.
// Embed it to implement the contracts one operation at a time.
type Unimplemented[C any] struct{}

func notImplemented(op string) Status422UnexpectedError {
	return Status422UnexpectedError{
		Body: NewGenericError(op + " is not implemented"),
	}
}

func (Unimplemented[C]) CreateArticle(context.Context, rest.RequestMeta, C, CreateArticleRequest) (CreateArticleResponse, error) {
	return notImplemented("CreateArticle"), nil
}

func (Unimplemented[C]) DeleteArticle(context.Context, rest.RequestMeta, C, SlugParams) (DeleteArticleResponse, error) {
	return notImplemented("DeleteArticle"), nil
}

func (Unimplemented[C]) GetArticle(context.Context, rest.RequestMeta, SlugParams) (GetArticleResponse, error) {
	return notImplemented("GetArticle"), nil
}

func (Unimplemented[C]) GetArticles(context.Context, rest.RequestMeta, GetArticlesParams) (GetArticlesResponse, error) {
	return notImplemented("GetArticles"), nil
}

func (Unimplemented[C]) GetArticlesFeed(context.Context, rest.RequestMeta, C, GetArticlesFeedParams) (GetArticlesFeedResponse, error) {
	return notImplemented("GetArticlesFeed"), nil
}

func (Unimplemented[C]) UpdateArticle(context.Context, rest.RequestMeta, C, SlugParams, UpdateArticleRequest) (UpdateArticleResponse, error) {
	return notImplemented("UpdateArticle"), nil
}

func (Unimplemented[C]) CreateArticleComment(context.Context, rest.RequestMeta, C, SlugParams, CreateArticleCommentRequest) (CreateArticleCommentResponse, error) {
	return notImplemented("CreateArticleComment"), nil
}

func (Unimplemented[C]) DeleteArticleComment(context.Context, rest.RequestMeta, C, CommentParams) (DeleteArticleCommentResponse, error) {
	return notImplemented("DeleteArticleComment"), nil
}

func (Unimplemented[C]) GetArticleComments(context.Context, rest.RequestMeta, SlugParams) (GetArticleCommentsResponse, error) {
	return notImplemented("GetArticleComments"), nil
}

func (Unimplemented[C]) CreateArticleFavorite(context.Context, rest.RequestMeta, C, SlugParams) (CreateArticleFavoriteResponse, error) {
	return notImplemented("CreateArticleFavorite"), nil
}

func (Unimplemented[C]) DeleteArticleFavorite(context.Context, rest.RequestMeta, C, SlugParams) (DeleteArticleFavoriteResponse, error) {
	return notImplemented("DeleteArticleFavorite"), nil
}

func (Unimplemented[C]) FollowUserByUsername(context.Context, rest.RequestMeta, C, UsernameParams) (FollowUserByUsernameResponse, error) {
	return notImplemented("FollowUserByUsername"), nil
}

func (Unimplemented[C]) GetProfileByUsername(context.Context, rest.RequestMeta, UsernameParams) (GetProfileByUsernameResponse, error) {
	return notImplemented("GetProfileByUsername"), nil
}

func (Unimplemented[C]) UnfollowUserByUsername(context.Context, rest.RequestMeta, C, UsernameParams) (UnfollowUserByUsernameResponse, error) {
	return notImplemented("UnfollowUserByUsername"), nil
}

func (Unimplemented[C]) GetTags(context.Context, rest.RequestMeta) (GetTagsResponse, error) {
	return notImplemented("GetTags"), nil
}

func (Unimplemented[C]) CreateUser(context.Context, rest.RequestMeta, CreateUserRequest) (CreateUserResponse, error) {
	return notImplemented("CreateUser"), nil
}

func (Unimplemented[C]) GetCurrentUser(context.Context, rest.RequestMeta, C) (GetCurrentUserResponse, error) {
	return notImplemented("GetCurrentUser"), nil
}

func (Unimplemented[C]) Login(context.Context, rest.RequestMeta, LoginRequest) (LoginResponse, error) {
	return notImplemented("Login"), nil
}

func (Unimplemented[C]) UpdateCurrentUser(context.Context, rest.RequestMeta, C, UpdateCurrentUserRequest) (UpdateCurrentUserResponse, error) {
	return notImplemented("UpdateCurrentUser"), nil
}
