package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/doselog/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// An empty name resolves to UTC; "Local" resolves to the system timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	switch timezone {
	case "":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ResolveLocation is LoadLocation without the error: unknown names resolve to UTC.
// The boolean reports whether the name was resolved as given.
func ResolveLocation(timezone string) (*time.Location, bool) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesOfDay returns the minutes elapsed since midnight for t in its own location.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// CombineDateAndTime combines a date string (YYYY-MM-DD) and time string (HH:MM)
// into a single time.Time in the specified timezone.
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}

	timeOfDay, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}

	return time.Date(
		date.Year(), date.Month(), date.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	), nil
}

// AddDays shifts a date string (YYYY-MM-DD) by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// DateRange returns every date from start to end inclusive. It returns nil when end precedes start.
func DateRange(start, end string) ([]string, error) {
	s, err := time.Parse(constants.DateFormat, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	e, err := time.Parse(constants.DateFormat, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	var dates []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(constants.DateFormat))
	}
	return dates, nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}
