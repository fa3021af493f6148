package utils

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  ListParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  ListParams{Pagination: Pagination{Page: 1, Limit: 100, Offset: 0}, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:  "explicit",
			query: "?page=3&limit=25&search=%20echo%20&sortBy=artistName&sortOrder=ASC",
			want:  ListParams{Pagination: Pagination{Page: 3, Limit: 25, Offset: 50}, Search: "echo", SortBy: "artistName", SortOrder: "asc"},
		},
		{
			name:  "no upper bound on limit",
			query: "?limit=100000",
			want:  ListParams{Pagination: Pagination{Page: 1, Limit: 100000, Offset: 0}, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:  "page past the int range",
			query: "?page=9223372036854775807&limit=100",
			want:  ListParams{Pagination: Pagination{Page: math.MaxInt64, Limit: 100, Offset: math.MaxInt}, SortBy: "createdAt", SortOrder: "desc"},
		},
		{
			name:  "invalid values fall back",
			query: "?page=-2&limit=abc&sortOrder=sideways",
			want:  ListParams{Pagination: Pagination{Page: 1, Limit: 100, Offset: 0}, SortBy: "createdAt", SortOrder: "desc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got ListParams
			app.Get("/", func(c *fiber.Ctx) error {
				got = ParseListParams(c)
				return nil
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPageMeta(t *testing.T) {
	assert.Equal(t, PageMeta{Page: 1, Limit: 10, Total: 21, Pages: 3}, NewPageMeta(Pagination{Page: 1, Limit: 10}, 21))
	assert.Equal(t, PageMeta{Page: 2, Limit: 10, Total: 0, Pages: 0}, NewPageMeta(Pagination{Page: 2, Limit: 10}, 0))
}
