// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

// SlugParams identifies an article.
type SlugParams struct {
	Slug string `path:"slug"`
}

// CommentParams identifies a comment of an article.
type CommentParams struct {
	Slug string `path:"slug"`
	ID   int32  `path:"id"`
}

// UsernameParams identifies a profile.
type UsernameParams struct {
	Username string `path:"username"`
}

// GetArticlesParams filters the global article list. Offset and limit
// are optional; how a missing value is interpreted is up to the handler.
type GetArticlesParams struct {
	Tag       *string `query:"tag"`
	Author    *string `query:"author"`
	Favorited *string `query:"favorited"`
	Offset    *int32  `query:"offset" validate:"omitempty,min=0"`
	Limit     *int32  `query:"limit" validate:"omitempty,min=1"`
}

// GetArticlesFeedParams pages through the articles of followed authors.
type GetArticlesFeedParams struct {
	Offset *int32 `query:"offset" validate:"omitempty,min=0"`
	Limit  *int32 `query:"limit" validate:"omitempty,min=1"`
}
