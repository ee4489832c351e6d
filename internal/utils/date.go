package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
	apperrors "github.com/julianstephens/pharmtrack/internal/errors"
)

// Civil dates are represented as time.Time values at midnight UTC. Day
// arithmetic on them is exact because UTC has no DST transitions, so a
// 23- or 25-hour local day can never shift a difference by one.

const secondsPerDay = 24 * 60 * 60

// CivilDate drops the time of day and zone from t, keeping its wall-clock date.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FormatDate renders the civil date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DaysBetween returns the number of whole calendar days from a to b.
// The result is negative when b is before a. Both civil dates are UTC
// midnights, so the Unix difference is an exact multiple of a day.
func DaysBetween(a, b time.Time) int {
	return int((CivilDate(b).Unix() - CivilDate(a).Unix()) / secondsPerDay)
}

// AddDays moves a civil date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return CivilDate(t).AddDate(0, 0, n)
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}

// MondayIndex maps a weekday to its column in a Monday-first week (Monday=0, Sunday=6).
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// StartOfWeek returns the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	d := CivilDate(t)
	return d.AddDate(0, 0, -MondayIndex(d.Weekday()))
}

// ResolveDay turns a command-line day argument into a civil date. It accepts
// "today", "tomorrow", "yesterday" or YYYY-MM-DD; today is taken from the given timezone.
func ResolveDay(arg, timezone string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return GetTodayInTimezone(timezone)
	case "tomorrow":
		today, err := GetTodayInTimezone(timezone)
		if err != nil {
			return time.Time{}, err
		}
		return AddDays(today, 1), nil
	case "yesterday":
		today, err := GetTodayInTimezone(timezone)
		if err != nil {
			return time.Time{}, err
		}
		return AddDays(today, -1), nil
	}
	d, err := ParseDate(arg)
	if err != nil {
		return time.Time{}, apperrors.Usage("invalid day %q: expected YYYY-MM-DD, today, tomorrow or yesterday", arg)
	}
	return d, nil
}
