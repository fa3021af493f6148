package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageLimit is used when the caller sends no usable limit.
const DefaultPageLimit = 100

// Pagination holds the page window read from the query string.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// PageMeta is the pagination block returned next to list data.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListParams are the shared list query parameters.
type ListParams struct {
	Pagination
	Search    string
	SortBy    string
	SortOrder string
}

// ParsePagination reads page and limit. The limit has no upper bound.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page"), 1)
	limit := parseInt(c.Query("limit"), DefaultPageLimit)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	offset := math.MaxInt
	if page-1 <= math.MaxInt/limit {
		offset = (page - 1) * limit
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: offset,
	}
}

// ParseListParams reads pagination together with search and sort parameters.
// Sort order defaults to desc and accepts only asc or desc.
func ParseListParams(c *fiber.Ctx) ListParams {
	order := strings.ToLower(c.Query("sortOrder"))
	if order != "asc" {
		order = "desc"
	}
	sortBy := strings.TrimSpace(c.Query("sortBy"))
	if sortBy == "" {
		sortBy = "createdAt"
	}

	return ListParams{
		Pagination: ParsePagination(c),
		Search:     strings.TrimSpace(c.Query("search")),
		SortBy:     sortBy,
		SortOrder:  order,
	}
}

// NewPageMeta computes the page count for total rows.
func NewPageMeta(p Pagination, total int64) PageMeta {
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return PageMeta{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
