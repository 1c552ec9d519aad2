package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultTitleMaxLength bounds task titles when no limit is configured.
const DefaultTitleMaxLength = 255

// Validator provides common validation utilities
type Validator struct {
	relativeDateRegex *regexp.Regexp
	titleMaxLength    int
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return NewValidatorWithLimits(DefaultTitleMaxLength)
}

// NewValidatorWithLimits creates a validator with a configured title bound.
// A non-positive bound falls back to the default.
func NewValidatorWithLimits(titleMaxLength int) *Validator {
	if titleMaxLength <= 0 {
		titleMaxLength = DefaultTitleMaxLength
	}
	return &Validator{
		relativeDateRegex: regexp.MustCompile(`^\+?(\d+)(d|w|mo)$`),
		titleMaxLength:    titleMaxLength,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if the trimmed rune count is within range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTitleLength checks a title against the configured bound
func (v *Validator) IsValidTitleLength(title string) bool {
	return v.IsValidStringLength(title, 1, v.titleMaxLength)
}

// TitleMaxLength returns the configured title bound
func (v *Validator) TitleMaxLength() int {
	return v.titleMaxLength
}

// ParseRelativeDate resolves today, tomorrow, YYYY-MM-DD and offsets such as
// 3d, +2w or 1mo against now. The result is local midnight.
func (v *Validator) ParseRelativeDate(s string, now time.Time) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	local := now.In(time.Local)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)

	switch s {
	case "today":
		return today, true
	case "tomorrow":
		return today.AddDate(0, 0, 1), true
	}

	if d, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return d, true
	}

	matches := v.relativeDateRegex.FindStringSubmatch(s)
	if matches == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, false
	}
	switch matches[2] {
	case "d":
		return today.AddDate(0, 0, n), true
	case "w":
		return today.AddDate(0, 0, 7*n), true
	case "mo":
		return today.AddDate(0, n, 0), true
	}
	return time.Time{}, false
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
