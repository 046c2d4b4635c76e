package utils

import (
	"testing"
)

func TestWeekdayMon0(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2024-06-10", 0}, // Monday
		{"2024-06-12", 2}, // Wednesday
		{"2024-06-15", 5}, // Saturday
		{"2024-06-16", 6}, // Sunday
	}
	for _, c := range cases {
		day, err := ParseDate(c.date)
		if err != nil {
			t.Fatalf("parse %s: %v", c.date, err)
		}
		if got := WeekdayMon0(day); got != c.want {
			t.Fatalf("%s: expected weekday %d, got %d", c.date, c.want, got)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	if _, err := ParseTimeOfDay("09:30"); err != nil {
		t.Fatalf("expected 09:30 to parse, got %v", err)
	}
	if _, err := ParseTimeOfDay("9:30 AM"); err == nil {
		t.Fatalf("non HH:MM input must be rejected")
	}
}

func TestParseDateRejectsOtherLayouts(t *testing.T) {
	if _, err := ParseDate("2024-06-10"); err != nil {
		t.Fatalf("expected ISO date to parse, got %v", err)
	}
	if _, err := ParseDate("10-06-2024"); err == nil {
		t.Fatalf("non ISO date must be rejected")
	}
}
