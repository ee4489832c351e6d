package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
)

func strPtr(s string) *string { return &s }

func TestShouldScheduleCourse_Interval(t *testing.T) {
	course := models.Course{
		ID:           "c1",
		StartDate:    "2024-03-01",
		IntervalDays: 2,
		IsActive:     true,
	}

	tests := []struct {
		date string
		want bool
	}{
		{date: "2024-02-29", want: false}, // before start
		{date: "2024-03-01", want: true},
		{date: "2024-03-02", want: false},
		{date: "2024-03-03", want: true},
		{date: "2024-03-05", want: true},
		{date: "2024-03-06", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, _ := time.Parse(constants.DateFormat, tt.date)
			if got := ShouldScheduleCourse(course, date); got != tt.want {
				t.Errorf("ShouldScheduleCourse(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestShouldScheduleCourse_DistantStartDate(t *testing.T) {
	// 0224-03-01 to 2024-03-01 is 657437 days, longer than a time.Duration can hold.
	course := models.Course{
		ID:           "c1",
		StartDate:    "0224-03-01",
		IntervalDays: 3,
		IsActive:     true,
	}

	tests := []struct {
		date string
		want bool
	}{
		{date: "2024-03-01", want: false},
		{date: "2024-03-02", want: true},
		{date: "2024-03-03", want: false},
		{date: "2024-03-05", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, _ := time.Parse(constants.DateFormat, tt.date)
			if got := ShouldScheduleCourse(course, date); got != tt.want {
				t.Errorf("ShouldScheduleCourse(%s) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestShouldScheduleCourse_ZeroIntervalMeansDaily(t *testing.T) {
	course := models.Course{StartDate: "2024-03-01"}

	for i := 0; i < 10; i++ {
		date := time.Date(2024, 3, 1+i, 0, 0, 0, 0, time.UTC)
		if !ShouldScheduleCourse(course, date) {
			t.Errorf("expected course with no interval to be due on %s", FormatDate(date))
		}
	}
}

func TestShouldScheduleCourse_EndDate(t *testing.T) {
	course := models.Course{
		StartDate: "2024-03-01",
		EndDate:   strPtr("2024-03-10"),
	}

	end, _ := time.Parse(constants.DateFormat, "2024-03-10")
	if !ShouldScheduleCourse(course, end) {
		t.Error("Expected course to be due on its end date")
	}
	if ShouldScheduleCourse(course, end.AddDate(0, 0, 1)) {
		t.Error("Expected course not to be due the day after its end date")
	}

	// Lifelong courses ignore any stored end date
	course.IsLifelong = true
	if !ShouldScheduleCourse(course, end.AddDate(0, 1, 0)) {
		t.Error("Expected lifelong course to be due after its stored end date")
	}
}

func TestShouldScheduleCourse_MalformedRecords(t *testing.T) {
	date, _ := time.Parse(constants.DateFormat, "2024-03-05")

	tests := []struct {
		name   string
		course models.Course
	}{
		{name: "missing start date", course: models.Course{}},
		{name: "unparseable start date", course: models.Course{StartDate: "05/03/2024"}},
		{name: "unparseable end date", course: models.Course{StartDate: "2024-03-01", EndDate: strPtr("soon")}},
		{name: "negative interval", course: models.Course{StartDate: "2024-03-01", IntervalDays: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ShouldScheduleCourse(tt.course, date) {
				t.Errorf("expected malformed course to be skipped")
			}
		})
	}
}

func TestShouldScheduleCourse_IgnoresTimeOfDayAndZone(t *testing.T) {
	course := models.Course{StartDate: "2024-03-01", IntervalDays: 2}

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	// 23:59 local on the 5th is due; 00:01 local on the 6th is not
	if !ShouldScheduleCourse(course, time.Date(2024, 3, 5, 23, 59, 0, 0, tokyo)) {
		t.Error("Expected course to be due late on 2024-03-05")
	}
	if ShouldScheduleCourse(course, time.Date(2024, 3, 6, 0, 1, 0, 0, tokyo)) {
		t.Error("Expected course not to be due early on 2024-03-06")
	}
}
