package dashboard

import (
	"math"
	"strings"
	"time"
)

var timestampLayouts = []string{"2006-01-02 15:04", "2006-01-02 15:04:05"}

// FormatTimestamp renders "YYYY-MM-DD HH:MM[:SS]" as "DD Mon YYYY, hh:mm am".
// Missing or malformed values render as "-".
func FormatTimestamp(v string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("02 Jan 2006, 03:04 pm")
		}
	}
	return "-"
}

// IsStale reports whether the calendar date of v is StaleAfterDays or more
// away from today's date. Values without a parseable date are never stale.
func IsStale(v string, today time.Time) bool {
	datePart, _, _ := strings.Cut(strings.TrimSpace(v), " ")
	if datePart == "" {
		return false
	}

	d, err := time.Parse(time.DateOnly, datePart)
	if err != nil {
		return false
	}

	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Floor(d.Sub(t).Hours() / 24))

	return days <= -StaleAfterDays || days >= StaleAfterDays
}
