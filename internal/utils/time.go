package utils

import (
	"fmt"
	"time"

	"rutero/internal/constants"
	"rutero/internal/models"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// Today returns the date string (YYYY-MM-DD) of instant t.
func Today(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// TodayWeekday returns the canonical weekday of instant t.
func TodayWeekday(t time.Time) models.Weekday {
	return models.WeekdayFromTime(t.Weekday())
}

// WeekNumber returns the ISO 8601 calendar week of instant t.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// WeeksElapsed returns the number of calendar weeks between a recorded week
// number and the current one, tolerating a year rollover.
func WeeksElapsed(lastWeek, currentWeek int) int {
	elapsed := currentWeek - lastWeek
	if elapsed < 0 {
		elapsed += 52
	}
	return elapsed
}

// Period is the business periodic calendar position of a date: thirteen
// four-week periods per year, period 1 opening January 1.
type Period struct {
	Number int // 1..13
	Week   int // 1..4, week within the period
}

// PeriodOf returns the period descriptor of instant t.
func PeriodOf(t time.Time) Period {
	week := (t.YearDay() - 1) / 7
	p := Period{
		Number: week/constants.WeeksPerPeriod + 1,
		Week:   week%constants.WeeksPerPeriod + 1,
	}
	if p.Number > constants.PeriodsPerYear {
		p.Number = constants.PeriodsPerYear
		p.Week = constants.WeeksPerPeriod
	}
	return p
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in loc.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
