// Package store holds the gorm repositories for admin users, app users and EPKs.
package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique column already holds the value.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidUpdate is returned for bulk updates naming unknown or mistyped fields.
	ErrInvalidUpdate = errors.New("invalid update")
)

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// parseIDs drops every id that is not a valid uuid.
func parseIDs(ids []string) []uuid.UUID {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		parsed = append(parsed, id)
	}
	return parsed
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching search as a literal substring.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
