package util

import (
	"strconv"
	"time"
)

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// QuarterOf returns the calendar quarter (1..4) containing t.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// NextQuarter returns the quarter after the one containing t, with the year
// rolled forward when the quarter wraps. Q4 of 2026 yields (1, 2027).
func NextQuarter(t time.Time) (quarter, year int) {
	quarter = QuarterOf(t)%4 + 1
	year = t.Year()
	if quarter == 1 {
		year++
	}
	return quarter, year
}

// ISODate formats t as a YYYY-MM-DD date string.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
