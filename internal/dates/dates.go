// Package dates normalizes the date strings found in bank exports to
// day-precision time values.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// Day is the canonical storage format for ledger dates.
const Day = "2006-01-02"

// layouts tried in order by Normalize. Month-first forms come before
// day-first forms, matching the most common bank export convention; an
// unambiguous day-first date (day > 12) still parses because the
// month-first attempt fails.
var layouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
	"1-2-2006",
	"2-1-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"1/2/06",
	"2/1/06",
}

// Normalize parses a date string in any accepted bank format, including the
// OFX YYYYMMDD[HHMMSS] form, and returns it at day precision in UTC.
func Normalize(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	// OFX: YYYYMMDD with optional time and timezone suffix.
	if len(s) >= 8 && allDigits(s[:8]) {
		if t, err := time.ParseInLocation("20060102", s[:8], time.UTC); err == nil {
			return t, nil
		}
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// NormalizeDayFirst is Normalize with day-first forms preferred, for
// exports from day/month/year locales where both readings are valid.
func NormalizeDayFirst(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2/1/2006", "2-1-2006", "2/1/06"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return Normalize(s)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
