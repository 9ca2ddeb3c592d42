package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/Bryan21B/freelancer-cli/internal/domain"
)

// timeLayout is the RFC3339 format for storing times in SQLite
const timeLayout = time.RFC3339

// parseTime parses a time string in RFC3339 format
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// formatTime formats a time for storage
func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// nullableTime renders an optional time as a bind value (NULL when nil)
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

// scanTime converts a nullable stored time back to *time.Time
func scanTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableString renders an optional string as a bind value (NULL when nil)
func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// scanString converts a nullable stored string back to *string
func scanString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// storeErr wraps a driver failure as a StoreError
func storeErr(op string, err error) error {
	return &domain.StoreError{Op: op, Err: err}
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the given table.column. SQLite reports these in the error text.
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
