// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticle_MarshalJSON(t *testing.T) {
	t.Run("will encode a nil tag list as an empty list", func(t *testing.T) {
		b, err := json.Marshal(Article{Slug: "a"})
		require.NoError(t, err)

		var v map[string]any
		require.NoError(t, json.Unmarshal(b, &v))
		assert.Equal(t, []any{}, v["tagList"])
		assert.Equal(t, "a", v["slug"])
	})

	t.Run("will encode list items without a body", func(t *testing.T) {
		b, err := json.Marshal(GetArticlesFeed200Response{
			Articles: []ArticleListItem{{Slug: "a"}},
		})
		require.NoError(t, err)

		var v struct {
			Articles []map[string]any `json:"articles"`
		}
		require.NoError(t, json.Unmarshal(b, &v))
		require.Len(t, v.Articles, 1)
		assert.NotContains(t, v.Articles[0], "body")
		assert.Equal(t, []any{}, v.Articles[0]["tagList"])
	})
}

func TestListResponses_MarshalJSON(t *testing.T) {
	testCases := []struct {
		Name string
		V    any
		JSON string
	}{
		{
			Name: "will encode nil tags as an empty list",
			V:    GetTags200Response{},
			JSON: `{"tags":[]}`,
		},
		{
			Name: "will encode nil comments as an empty list",
			V:    GetArticleComments200Response{},
			JSON: `{"comments":[]}`,
		},
		{
			Name: "will encode a nil article page as an empty list",
			V:    GetArticlesFeed200Response{},
			JSON: `{"articles":[],"articlesCount":0}`,
		},
		{
			Name: "will keep the given tags",
			V:    GetTags200Response{Tags: []string{"dragons"}},
			JSON: `{"tags":["dragons"]}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			b, err := json.Marshal(testCase.V)
			require.NoError(t, err)
			assert.JSONEq(t, testCase.JSON, string(b))
		})
	}
}

func TestNewArticle_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		Name string
		JSON string
		Tags []string
	}{
		{
			Name: "will default an absent tag list to empty",
			JSON: `{"title":"t","description":"d","body":"b"}`,
			Tags: []string{},
		},
		{
			Name: "will default a null tag list to empty",
			JSON: `{"title":"t","description":"d","body":"b","tagList":null}`,
			Tags: []string{},
		},
		{
			Name: "will keep the given tags",
			JSON: `{"title":"t","description":"d","body":"b","tagList":["go","rest"]}`,
			Tags: []string{"go", "rest"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			var a NewArticle
			require.NoError(t, json.Unmarshal([]byte(testCase.JSON), &a))

			assert.Equal(t, "t", a.Title)
			assert.Equal(t, "d", a.Description)
			assert.Equal(t, "b", a.Body)
			assert.NotNil(t, a.TagList)
			assert.Equal(t, testCase.Tags, a.TagList)
		})
	}

	t.Run("will report malformed json", func(t *testing.T) {
		var a NewArticle
		assert.Error(t, json.Unmarshal([]byte(`{"title":1}`), &a))
	})
}

func TestNewGenericError(t *testing.T) {
	t.Run("will encode no messages as an empty list", func(t *testing.T) {
		b, err := json.Marshal(NewGenericError())
		require.NoError(t, err)
		assert.JSONEq(t, `{"errors":{"body":[]}}`, string(b))
	})
}
