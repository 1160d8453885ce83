// Package dates is the single normalization boundary for calendar dates.
// Everything past this package works on UTC midnights and never does
// timezone math.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format of a calendar date.
const Layout = "2006-01-02"

// Normalize drops the time of day, keeping the calendar date as seen in t's
// own location.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD date.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsNormalized reports whether t is a UTC midnight.
func IsNormalized(t time.Time) bool {
	return t.Equal(Normalize(t)) && t.Location() == time.UTC
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// Format renders t as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}
