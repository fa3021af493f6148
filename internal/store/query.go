package store

import (
	"math"
	"strings"
)

// ListQuery holds the shared list parameters.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// Offset returns the number of rows to skip. Pages past the int range clamp
// to math.MaxInt so they read as empty instead of wrapping to page 1.
func (q ListQuery) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.Limit {
		return math.MaxInt
	}
	return (q.Page - 1) * q.Limit
}

// EPKQuery adds the EPK specific filters. Empty values do not filter.
type EPKQuery struct {
	ListQuery
	ArtistType string
	// Status is "published" or "draft"; anything else is ignored.
	Status     string
	ArtistMode string
	MinScore   int
}

var appUserSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"name":        "name",
	"email":       "email",
	"phoneNumber": "phone_number",
	"stageName":   "stage_name",
	"role":        "role",
	"artistType":  "artist_type",
	"isVerified":  "is_verified",
}

var epkSortColumns = map[string]string{
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
	"artistName":       "artist_name",
	"artistType":       "artist_type",
	"slug":             "slug",
	"isPublished":      "is_published",
	"publishedAt":      "published_at",
	"artistMode":       "artist_mode",
	"epkScore.overall": "(epk_score->>'overall')::int",
}

// orderClause resolves a JSON field name through columns. Unknown names sort by
// created_at; id is appended so pages stay stable across equal keys.
func orderClause(columns map[string]string, sortBy, sortOrder string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction + ", id " + direction
}
