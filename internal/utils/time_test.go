package utils

import (
	"testing"
	"time"

	"rutero/internal/models"
)

func TestWeeksElapsed(t *testing.T) {
	tests := []struct {
		name     string
		last     int
		current  int
		expected int
	}{
		{"same week", 10, 10, 0},
		{"two weeks later", 10, 12, 2},
		{"year rollover", 51, 2, 3},
		{"full gap across rollover", 52, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeksElapsed(tt.last, tt.current); got != tt.expected {
				t.Errorf("WeeksElapsed(%d, %d) = %d, want %d", tt.last, tt.current, got, tt.expected)
			}
		})
	}
}

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		date   string
		number int
		week   int
	}{
		{"2026-01-01", 1, 1},   // year opens period 1 week 1
		{"2026-01-28", 1, 4},   // day 28, last day of week 4
		{"2026-01-29", 2, 1},   // day 29 rolls into period 2
		{"2026-02-05", 2, 2},
		{"2026-12-31", 13, 4},  // trailing days clamp into the final period
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			if err != nil {
				t.Fatalf("parse %s: %v", tt.date, err)
			}
			p := PeriodOf(d)
			if p.Number != tt.number || p.Week != tt.week {
				t.Errorf("PeriodOf(%s) = {%d %d}, want {%d %d}", tt.date, p.Number, p.Week, tt.number, tt.week)
			}
		})
	}
}

func TestTodayWeekday(t *testing.T) {
	d, _ := time.Parse("2006-01-02", "2026-03-10") // a Tuesday
	if got := TodayWeekday(d); got != models.Tuesday {
		t.Errorf("TodayWeekday(2026-03-10) = %s, want Tuesday", got)
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	d, err := ParseDateInLocation("2026-03-10", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation failed: %v", err)
	}
	if d.Location() != loc {
		t.Errorf("expected location %v, got %v", loc, d.Location())
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("expected midnight, got %02d:%02d", d.Hour(), d.Minute())
	}

	if _, err := ParseDateInLocation("not-a-date", loc); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") {
		t.Error("empty timezone should be valid (falls back to Local)")
	}
	if ValidateTimezone("Mars/OlympusMons") {
		t.Error("bogus timezone should be invalid")
	}
}
