package ledger

import (
	"testing"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

func strPtr(s string) *string { return &s }

func TestMonthRange(t *testing.T) {
	tests := []struct {
		in, first, last string
	}{
		{in: "2024-02-14", first: "2024-02-01", last: "2024-02-29"},
		{in: "2023-02-01", first: "2023-02-01", last: "2023-02-28"},
		{in: "2024-12-31", first: "2024-12-01", last: "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, _ := utils.ParseDate(tt.in)
			first, last := MonthRange(d)
			if first != tt.first || last != tt.last {
				t.Errorf("MonthRange(%s) = %s..%s, want %s..%s", tt.in, first, last, tt.first, tt.last)
			}
		})
	}
}

func TestMonth(t *testing.T) {
	courses := []models.Course{
		{
			ID:           "c1",
			StartDate:    "2024-03-01",
			EndDate:      strPtr("2024-03-10"),
			IsActive:     true,
			IntervalDays: 2,
			Schedule:     models.Schedule{Morning: true, Evening: true},
		},
		{ID: "paused", StartDate: "2024-03-01", Schedule: models.Schedule{Day: true}},
	}
	records := []models.IntakeRecord{
		{ID: "c1_2024-03-01_morning", Taken: true},
		{ID: "c1_2024-03-01_evening", Taken: true, Date: "2024-03-01"},
		{ID: "c1_2024-03-03_morning", Taken: true},
		{ID: "c1_2024-03-02_morning", Taken: true}, // not scheduled, ignored
	}

	month, _ := utils.ParseDate("2024-03-17")
	days := Month(scheduler.New(), month, courses, nil, records)
	if len(days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(days))
	}

	want := map[int]constants.CalendarStatus{
		1:  constants.StatusDone,
		2:  constants.StatusNone,
		3:  constants.StatusPending,
		5:  constants.StatusPending,
		9:  constants.StatusPending,
		10: constants.StatusNone,
		11: constants.StatusNone,
	}
	for day, status := range want {
		got := days[day-1]
		if got.Date.Day() != day {
			t.Fatalf("days[%d] is %s", day-1, utils.FormatDate(got.Date))
		}
		if got.Status != status {
			t.Errorf("2024-03-%02d status = %s, want %s", day, got.Status, status)
		}
	}
}
