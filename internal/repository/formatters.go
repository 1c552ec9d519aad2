package repository

import (
	"strings"
	"time"
)

// TimestampLayout matches ISO-8601 with millisecond precision in UTC,
// e.g. 2025-01-15T10:30:45.123Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the persisted form of a calendar date.
const DateLayout = "2006-01-02"

// FormatTimestamp formats t for storage.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp. Any RFC3339 value is accepted.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}

// FormatDate formats the calendar day of t, or returns nil for a nil date.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ParseDate parses a stored due date as local midnight. Full timestamps are
// accepted and truncated to their local calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return d, nil
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	local := ts.In(time.Local)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local), nil
}
