// utils/time_utils.go
package utils

import "time"

// ISODateLayout is the calendar date format exchanged with the planning service.
const ISODateLayout = "2006-01-02"

// Clock returns the current time; tests swap it for a fixed one.
type Clock func() time.Time

func ParseISODate(s string) (time.Time, error) {
	return time.Parse(ISODateLayout, s)
}

func FormatISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(ISODateLayout)
}

// AddDays moves a calendar date by n days, keeping the date in the same location.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func FormatDisplay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
