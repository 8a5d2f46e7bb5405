package model

import "time"

// DateLayout is the canonical string-sortable date form.
const DateLayout = "2006-01-02"

// MonthLayout is the month-prefix form used for time bucketing.
const MonthLayout = "2006-01"

// Today returns the current local date as "YYYY-MM-DD".
func Today() string {
	return time.Now().Format(DateLayout)
}

// CurrentMonth returns the current local month as "YYYY-MM".
func CurrentMonth() string {
	return time.Now().Format(MonthLayout)
}

// MonthOf returns the "YYYY-MM" prefix of a "YYYY-MM-DD" date string.
// Shorter strings are returned unchanged.
func MonthOf(date string) string {
	if len(date) < len(MonthLayout) {
		return date
	}
	return date[:len(MonthLayout)]
}

// ValidDate reports whether s is a real calendar date in canonical form.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	return err == nil && t.Format(DateLayout) == s
}

// ValidMonth reports whether s is a month prefix in canonical form.
func ValidMonth(s string) bool {
	t, err := time.Parse(MonthLayout, s)
	return err == nil && t.Format(MonthLayout) == s
}
