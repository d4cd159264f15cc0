// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

import (
	"net/http"

	"github.com/z5labs/conduit/rest"
)

// Each operation returns one of a closed set of outcomes. The set is
// sealed by an unexported method so only the variants below satisfy it.

// CreateArticleResponse is implemented by Status201SingleArticle, Status401Unauthorized and Status422UnexpectedError.
type CreateArticleResponse interface {
	rest.Outcome
	isCreateArticleResponse()
}

// DeleteArticleResponse is implemented by Status200NoContent, Status401Unauthorized and Status422UnexpectedError.
type DeleteArticleResponse interface {
	rest.Outcome
	isDeleteArticleResponse()
}

// GetArticleResponse is implemented by Status200SingleArticle and Status422UnexpectedError.
type GetArticleResponse interface {
	rest.Outcome
	isGetArticleResponse()
}

// GetArticlesResponse is implemented by Status200MultipleArticles, Status401Unauthorized and Status422UnexpectedError.
type GetArticlesResponse interface {
	rest.Outcome
	isGetArticlesResponse()
}

// GetArticlesFeedResponse is implemented by Status200MultipleArticles, Status401Unauthorized and Status422UnexpectedError.
type GetArticlesFeedResponse interface {
	rest.Outcome
	isGetArticlesFeedResponse()
}

// UpdateArticleResponse is implemented by Status200SingleArticle, Status401Unauthorized and Status422UnexpectedError.
type UpdateArticleResponse interface {
	rest.Outcome
	isUpdateArticleResponse()
}

// CreateArticleCommentResponse is implemented by Status200SingleComment, Status401Unauthorized and Status422UnexpectedError.
type CreateArticleCommentResponse interface {
	rest.Outcome
	isCreateArticleCommentResponse()
}

// DeleteArticleCommentResponse is implemented by Status200NoContent, Status401Unauthorized and Status422UnexpectedError.
type DeleteArticleCommentResponse interface {
	rest.Outcome
	isDeleteArticleCommentResponse()
}

// GetArticleCommentsResponse is implemented by Status200MultipleComments, Status401Unauthorized and Status422UnexpectedError.
type GetArticleCommentsResponse interface {
	rest.Outcome
	isGetArticleCommentsResponse()
}

// CreateArticleFavoriteResponse is implemented by Status200SingleArticle, Status401Unauthorized and Status422UnexpectedError.
type CreateArticleFavoriteResponse interface {
	rest.Outcome
	isCreateArticleFavoriteResponse()
}

// DeleteArticleFavoriteResponse is implemented by Status200SingleArticle, Status401Unauthorized and Status422UnexpectedError.
type DeleteArticleFavoriteResponse interface {
	rest.Outcome
	isDeleteArticleFavoriteResponse()
}

// FollowUserByUsernameResponse is implemented by Status200Profile, Status401Unauthorized and Status422UnexpectedError.
type FollowUserByUsernameResponse interface {
	rest.Outcome
	isFollowUserByUsernameResponse()
}

// GetProfileByUsernameResponse is implemented by Status200Profile, Status401Unauthorized and Status422UnexpectedError.
type GetProfileByUsernameResponse interface {
	rest.Outcome
	isGetProfileByUsernameResponse()
}

// UnfollowUserByUsernameResponse is implemented by Status200Profile, Status401Unauthorized and Status422UnexpectedError.
type UnfollowUserByUsernameResponse interface {
	rest.Outcome
	isUnfollowUserByUsernameResponse()
}

// GetTagsResponse is implemented by Status200Tags and Status422UnexpectedError.
type GetTagsResponse interface {
	rest.Outcome
	isGetTagsResponse()
}

// CreateUserResponse is implemented by Status201User and Status422UnexpectedError.
type CreateUserResponse interface {
	rest.Outcome
	isCreateUserResponse()
}

// GetCurrentUserResponse is implemented by Status200User, Status401Unauthorized and Status422UnexpectedError.
type GetCurrentUserResponse interface {
	rest.Outcome
	isGetCurrentUserResponse()
}

// LoginResponse is implemented by Status200User, Status401Unauthorized and Status422UnexpectedError.
type LoginResponse interface {
	rest.Outcome
	isLoginResponse()
}

// UpdateCurrentUserResponse is implemented by Status200User, Status401Unauthorized and Status422UnexpectedError.
type UpdateCurrentUserResponse interface {
	rest.Outcome
	isUpdateCurrentUserResponse()
}

// Status200NoContent is an empty 200 response.
type Status200NoContent struct{}

// StatusCode implements [rest.Outcome].
func (Status200NoContent) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (Status200NoContent) ResponseBody() (any, bool) {
	return nil, false
}

func (Status200NoContent) isDeleteArticleResponse() {}
func (Status200NoContent) isDeleteArticleCommentResponse() {}

// Status401Unauthorized is an empty 401 response, sent when the handler
// rejects the claims it was given.
type Status401Unauthorized struct{}

// StatusCode implements [rest.Outcome].
func (Status401Unauthorized) StatusCode() int {
	return http.StatusUnauthorized
}

// ResponseBody implements [rest.Outcome].
func (Status401Unauthorized) ResponseBody() (any, bool) {
	return nil, false
}

func (Status401Unauthorized) isCreateArticleResponse() {}
func (Status401Unauthorized) isDeleteArticleResponse() {}
func (Status401Unauthorized) isGetArticlesResponse() {}
func (Status401Unauthorized) isGetArticlesFeedResponse() {}
func (Status401Unauthorized) isUpdateArticleResponse() {}
func (Status401Unauthorized) isCreateArticleCommentResponse() {}
func (Status401Unauthorized) isDeleteArticleCommentResponse() {}
func (Status401Unauthorized) isGetArticleCommentsResponse() {}
func (Status401Unauthorized) isCreateArticleFavoriteResponse() {}
func (Status401Unauthorized) isDeleteArticleFavoriteResponse() {}
func (Status401Unauthorized) isFollowUserByUsernameResponse() {}
func (Status401Unauthorized) isGetProfileByUsernameResponse() {}
func (Status401Unauthorized) isUnfollowUserByUsernameResponse() {}
func (Status401Unauthorized) isGetCurrentUserResponse() {}
func (Status401Unauthorized) isLoginResponse() {}
func (Status401Unauthorized) isUpdateCurrentUserResponse() {}

// Status422UnexpectedError reports a business error.
type Status422UnexpectedError struct {
	Body GenericErrorModel
}

// StatusCode implements [rest.Outcome].
func (Status422UnexpectedError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// ResponseBody implements [rest.Outcome].
func (o Status422UnexpectedError) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status422UnexpectedError) isCreateArticleResponse() {}
func (Status422UnexpectedError) isDeleteArticleResponse() {}
func (Status422UnexpectedError) isGetArticleResponse() {}
func (Status422UnexpectedError) isGetArticlesResponse() {}
func (Status422UnexpectedError) isGetArticlesFeedResponse() {}
func (Status422UnexpectedError) isUpdateArticleResponse() {}
func (Status422UnexpectedError) isCreateArticleCommentResponse() {}
func (Status422UnexpectedError) isDeleteArticleCommentResponse() {}
func (Status422UnexpectedError) isGetArticleCommentsResponse() {}
func (Status422UnexpectedError) isCreateArticleFavoriteResponse() {}
func (Status422UnexpectedError) isDeleteArticleFavoriteResponse() {}
func (Status422UnexpectedError) isFollowUserByUsernameResponse() {}
func (Status422UnexpectedError) isGetProfileByUsernameResponse() {}
func (Status422UnexpectedError) isUnfollowUserByUsernameResponse() {}
func (Status422UnexpectedError) isGetTagsResponse() {}
func (Status422UnexpectedError) isCreateUserResponse() {}
func (Status422UnexpectedError) isGetCurrentUserResponse() {}
func (Status422UnexpectedError) isLoginResponse() {}
func (Status422UnexpectedError) isUpdateCurrentUserResponse() {}

type Status200SingleArticle struct {
	Body CreateArticle201Response
}

// StatusCode implements [rest.Outcome].
func (Status200SingleArticle) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (o Status200SingleArticle) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status200SingleArticle) isGetArticleResponse() {}
func (Status200SingleArticle) isUpdateArticleResponse() {}
func (Status200SingleArticle) isCreateArticleFavoriteResponse() {}
func (Status200SingleArticle) isDeleteArticleFavoriteResponse() {}

// Status201SingleArticle is sent once an article was created.
type Status201SingleArticle struct {
	Body CreateArticle201Response
}

// StatusCode implements [rest.Outcome].
func (Status201SingleArticle) StatusCode() int {
	return http.StatusCreated
}

// ResponseBody implements [rest.Outcome].
func (o Status201SingleArticle) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status201SingleArticle) isCreateArticleResponse() {}

type Status200MultipleArticles struct {
	Body GetArticlesFeed200Response
}

// StatusCode implements [rest.Outcome].
func (Status200MultipleArticles) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (o Status200MultipleArticles) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status200MultipleArticles) isGetArticlesResponse() {}
func (Status200MultipleArticles) isGetArticlesFeedResponse() {}

type Status200SingleComment struct {
	Body CreateArticleComment200Response
}

// StatusCode implements [rest.Outcome].
func (Status200SingleComment) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (o Status200SingleComment) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status200SingleComment) isCreateArticleCommentResponse() {}

type Status200MultipleComments struct {
	Body GetArticleComments200Response
}

// StatusCode implements [rest.Outcome].
func (Status200MultipleComments) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (o Status200MultipleComments) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status200MultipleComments) isGetArticleCommentsResponse() {}

type Status200Profile struct {
	Body GetProfileByUsername200Response
}

// StatusCode implements [rest.Outcome].
func (Status200Profile) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (o Status200Profile) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status200Profile) isFollowUserByUsernameResponse() {}
func (Status200Profile) isGetProfileByUsernameResponse() {}
func (Status200Profile) isUnfollowUserByUsernameResponse() {}

type Status200Tags struct {
	Body GetTags200Response
}

// StatusCode implements [rest.Outcome].
func (Status200Tags) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (o Status200Tags) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status200Tags) isGetTagsResponse() {}

type Status200User struct {
	Body Login200Response
}

// StatusCode implements [rest.Outcome].
func (Status200User) StatusCode() int {
	return http.StatusOK
}

// ResponseBody implements [rest.Outcome].
func (o Status200User) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status200User) isGetCurrentUserResponse() {}
func (Status200User) isLoginResponse() {}
func (Status200User) isUpdateCurrentUserResponse() {}

// Status201User is sent once a user registered.
type Status201User struct {
	Body Login200Response
}

// StatusCode implements [rest.Outcome].
func (Status201User) StatusCode() int {
	return http.StatusCreated
}

// ResponseBody implements [rest.Outcome].
func (o Status201User) ResponseBody() (any, bool) {
	return o.Body, true
}

func (Status201User) isCreateUserResponse() {}
