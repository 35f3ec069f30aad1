package utils

import "strings"

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// LikePattern wraps a search term for use in a SQL LIKE clause.
func LikePattern(term string) string {
	return "%" + strings.TrimSpace(term) + "%"
}
