// Package dates provides canonical date parsing and day arithmetic helpers.
//
// This package exists to avoid duplicating date logic across:
// - CLI date args (stale --as-of)
// - staleness scoring (days since modification)
// - daily-note detection in the frontmatter check
package dates

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD layout.
const DateLayout = "2006-01-02"

var (
	dateRegex       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datePrefixRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// HasDatePrefix reports whether s begins with something shaped like
// YYYY-MM-DD. The digits are not validated as a calendar date.
func HasDatePrefix(s string) bool {
	return datePrefixRegex.MatchString(s)
}

// ParseDate parses a YYYY-MM-DD date in loc (UTC when loc is nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// ParseDateArg parses a CLI date argument which can be:
// - "today", "yesterday", "tomorrow" (relative dates)
// - "YYYY-MM-DD" format (absolute date, in now's location)
// - Empty string defaults to now
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	if arg == "" {
		return now, nil
	}

	dateArg := strings.ToLower(strings.TrimSpace(arg))
	switch dateArg {
	case "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	default:
		parsed, err := ParseDate(dateArg, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date format '%s', use YYYY-MM-DD or today/yesterday/tomorrow", dateArg)
		}
		return parsed, nil
	}
}

// DaysSince returns the number of whole days from t to now, rounded down.
// It is negative when t is after now.
func DaysSince(t, now time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

// Format formats t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}
