package helpers

import (
	"database/sql"
	"time"
)

// GetNullString converts a string pointer to sql.NullString.
// A nil pointer becomes NULL.
func GetNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullStringPtr is the inverse of GetNullString.
func NullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// NullTimePtr returns nil for a NULL timestamp.
func NullTimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
