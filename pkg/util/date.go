package util

import (
	"time"
)

// DayFormat is the calendar-date wire format used by the gateway.
const DayFormat = "2006-01-02"

// ParseDay parses a YYYY-MM-DD calendar date. Returns (t, true) if valid.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today returns the current UTC calendar date in wire format.
func Today() string {
	return time.Now().UTC().Format(DayFormat)
}
