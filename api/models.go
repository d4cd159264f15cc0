// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

import (
	"encoding/json"
	"time"
)

// Profile is the public view of a user.
type Profile struct {
	Username  string `json:"username" required:"true"`
	Bio       string `json:"bio" required:"true"`
	Image     string `json:"image" required:"true"`
	Following bool   `json:"following" required:"true"`
}

// Article is a published post together with its author.
type Article struct {
	Slug           string    `json:"slug" required:"true"`
	Title          string    `json:"title" required:"true"`
	Description    string    `json:"description" required:"true"`
	Body           string    `json:"body" required:"true"`
	TagList        []string  `json:"tagList" required:"true"`
	CreatedAt      time.Time `json:"createdAt" required:"true"`
	UpdatedAt      time.Time `json:"updatedAt" required:"true"`
	Favorited      bool      `json:"favorited" required:"true"`
	FavoritesCount int32     `json:"favoritesCount" required:"true"`
	Author         Profile   `json:"author" required:"true"`
}

// MarshalJSON encodes a nil tag list as [].
func (a Article) MarshalJSON() ([]byte, error) {
	type article Article
	if a.TagList == nil {
		a.TagList = []string{}
	}
	return json.Marshal(article(a))
}

// ArticleListItem is an [Article] as it appears in a list, without its body.
type ArticleListItem struct {
	Slug           string    `json:"slug" required:"true"`
	Title          string    `json:"title" required:"true"`
	Description    string    `json:"description" required:"true"`
	TagList        []string  `json:"tagList" required:"true"`
	CreatedAt      time.Time `json:"createdAt" required:"true"`
	UpdatedAt      time.Time `json:"updatedAt" required:"true"`
	Favorited      bool      `json:"favorited" required:"true"`
	FavoritesCount int32     `json:"favoritesCount" required:"true"`
	Author         Profile   `json:"author" required:"true"`
}

// MarshalJSON encodes a nil tag list as [].
func (a ArticleListItem) MarshalJSON() ([]byte, error) {
	type item ArticleListItem
	if a.TagList == nil {
		a.TagList = []string{}
	}
	return json.Marshal(item(a))
}

// Comment is a reply to an article.
type Comment struct {
	ID        int32     `json:"id" required:"true"`
	CreatedAt time.Time `json:"createdAt" required:"true"`
	UpdatedAt time.Time `json:"updatedAt" required:"true"`
	Body      string    `json:"body" required:"true"`
	Author    Profile   `json:"author" required:"true"`
}

// User is the authenticated user together with their token.
type User struct {
	Email    string `json:"email" required:"true"`
	Token    string `json:"token" required:"true"`
	Username string `json:"username" required:"true"`
	Bio      string `json:"bio" required:"true"`
	Image    string `json:"image" required:"true"`
}

// NewArticle is the input of CreateArticle.
type NewArticle struct {
	Title       string   `json:"title" required:"true"`
	Description string   `json:"description" required:"true"`
	Body        string   `json:"body" required:"true"`
	TagList     []string `json:"tagList,omitempty"`
}

// UnmarshalJSON leaves TagList empty but non-nil when it is absent or null.
func (a *NewArticle) UnmarshalJSON(b []byte) error {
	type newArticle NewArticle
	var v newArticle
	err := json.Unmarshal(b, &v)
	if err != nil {
		return err
	}
	if v.TagList == nil {
		v.TagList = []string{}
	}
	*a = NewArticle(v)
	return nil
}

// UpdateArticle only changes the fields which are set.
type UpdateArticle struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Body        *string `json:"body,omitempty"`
}

// NewComment is the input of CreateArticleComment.
type NewComment struct {
	Body string `json:"body" required:"true"`
}

// NewUser is the input of CreateUser.
type NewUser struct {
	Username string `json:"username" required:"true"`
	Email    string `json:"email" required:"true"`
	Password string `json:"password" required:"true"`
}

// LoginUser holds the credentials of Login.
type LoginUser struct {
	Email    string `json:"email" required:"true"`
	Password string `json:"password" required:"true"`
}

// UpdateUser only changes the fields which are set.
type UpdateUser struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Username *string `json:"username,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Image    *string `json:"image,omitempty"`
}

// CreateArticleRequest is the body of CreateArticle.
type CreateArticleRequest struct {
	Article NewArticle `json:"article" required:"true"`
}

// UpdateArticleRequest is the body of UpdateArticle.
type UpdateArticleRequest struct {
	Article UpdateArticle `json:"article" required:"true"`
}

// CreateArticleCommentRequest is the body of CreateArticleComment.
type CreateArticleCommentRequest struct {
	Comment NewComment `json:"comment" required:"true"`
}

// CreateUserRequest is the body of CreateUser.
type CreateUserRequest struct {
	User NewUser `json:"user" required:"true"`
}

// LoginRequest is the body of Login.
type LoginRequest struct {
	User LoginUser `json:"user" required:"true"`
}

// UpdateCurrentUserRequest is the body of UpdateCurrentUser.
type UpdateCurrentUserRequest struct {
	User UpdateUser `json:"user" required:"true"`
}

// CreateArticle201Response wraps a single article.
type CreateArticle201Response struct {
	Article Article `json:"article" required:"true"`
}

// GetArticlesFeed200Response wraps one page of articles.
type GetArticlesFeed200Response struct {
	Articles      []ArticleListItem `json:"articles" required:"true"`
	ArticlesCount int32             `json:"articlesCount" required:"true"`
}

// MarshalJSON encodes a nil page as [].
func (r GetArticlesFeed200Response) MarshalJSON() ([]byte, error) {
	type page GetArticlesFeed200Response
	if r.Articles == nil {
		r.Articles = []ArticleListItem{}
	}
	return json.Marshal(page(r))
}

// CreateArticleComment200Response wraps a single comment.
type CreateArticleComment200Response struct {
	Comment Comment `json:"comment" required:"true"`
}

// GetArticleComments200Response wraps the comments of an article.
type GetArticleComments200Response struct {
	Comments []Comment `json:"comments" required:"true"`
}

// MarshalJSON encodes nil comments as [].
func (r GetArticleComments200Response) MarshalJSON() ([]byte, error) {
	type comments GetArticleComments200Response
	if r.Comments == nil {
		r.Comments = []Comment{}
	}
	return json.Marshal(comments(r))
}

// GetProfileByUsername200Response wraps a single profile.
type GetProfileByUsername200Response struct {
	Profile Profile `json:"profile" required:"true"`
}

// GetTags200Response lists every known tag.
type GetTags200Response struct {
	Tags []string `json:"tags" required:"true"`
}

// MarshalJSON encodes nil tags as [].
func (r GetTags200Response) MarshalJSON() ([]byte, error) {
	type tags GetTags200Response
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return json.Marshal(tags(r))
}

// Login200Response wraps the authenticated user.
type Login200Response struct {
	User User `json:"user" required:"true"`
}

// GenericErrorModel is the body of every 422 response.
type GenericErrorModel struct {
	Errors GenericErrorModelErrors `json:"errors" required:"true"`
}

// GenericErrorModelErrors lists human readable error messages.
type GenericErrorModelErrors struct {
	Body []string `json:"body" required:"true"`
}

// NewGenericError builds a [GenericErrorModel] holding msgs.
func NewGenericError(msgs ...string) GenericErrorModel {
	if msgs == nil {
		msgs = []string{}
	}
	return GenericErrorModel{
		Errors: GenericErrorModelErrors{
			Body: msgs,
		},
	}
}
