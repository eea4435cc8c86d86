// Package input normalises request values before they reach the store.
package input

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

var ErrInvalidDate = errors.New("invalid_date")

const dateLayout = "2006-01-02"

// Date parses YYYY-MM-DD or RFC3339 and keeps only the calendar day, in UTC.
func Date(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// OptionalDate returns nil for a nil or blank value.
func OptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := Date(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// OptionalString trims value and maps blank to nil.
func OptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringOr trims value and falls back to def when blank.
func StringOr(value, def string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return def
}

// FloatOr dereferences value, falling back to def when nil.
func FloatOr(value *float64, def float64) float64 {
	if value == nil {
		return def
	}
	return *value
}

// ID parses a positive snowflake id.
func ID(value string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
