package utils

import (
	"time"

	"github.com/julianstephens/pharmtrack/internal/models"
)

// ShouldScheduleCourse determines if a course is due on the given date based on
// its date range and interval. Activity and slot selection are not checked here.
// This logic is shared between validation and scheduling to ensure consistency.
//
// A course with a missing or unparseable start date, an unparseable end date or a
// negative interval is never due.
func ShouldScheduleCourse(course models.Course, date time.Time) bool {
	if course.StartDate == "" {
		return false
	}
	start, err := ParseDate(course.StartDate)
	if err != nil {
		return false
	}

	day := CivilDate(date)
	if day.Before(start) {
		return false
	}

	if !course.OpenEnded() {
		end, err := ParseDate(*course.EndDate)
		if err != nil {
			return false
		}
		if day.After(end) {
			return false
		}
	}

	interval := course.Interval()
	if interval < 1 {
		return false
	}
	return DaysBetween(start, day)%interval == 0
}
