package utils

import (
	"strings"
	"time"
)

const (
	layoutDate      = "2006-01-02"
	layoutTimeOfDay = "15:04"
	layoutDateTime  = "2006-01-02 15:04:05"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutDate, strings.TrimSpace(s))
}

// ParseTimeOfDay parses HH:MM (accepts HH:MM:SS and keeps only HH:MM).
func ParseTimeOfDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(layoutTimeOfDay) {
		s = s[:len(layoutTimeOfDay)]
	}
	return time.Parse(layoutTimeOfDay, s)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS".
func ParseDateTime(s string) (time.Time, error) {
	return time.Parse(layoutDateTime, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS".
func FormatDateTime(t time.Time) string {
	return t.Format(layoutDateTime)
}

// WeekdayMon0 maps time.Weekday to the schedule convention 0=Monday..6=Sunday.
func WeekdayMon0(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
