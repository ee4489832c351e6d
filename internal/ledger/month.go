package ledger

import (
	"time"

	"github.com/julianstephens/pharmtrack/internal/constants"
	"github.com/julianstephens/pharmtrack/internal/models"
	"github.com/julianstephens/pharmtrack/internal/scheduler"
	"github.com/julianstephens/pharmtrack/internal/utils"
)

// DayStatus is one cell of a month calendar.
type DayStatus struct {
	Date   time.Time
	Status constants.CalendarStatus
}

// MonthRange returns the first and last day of the month containing t, as YYYY-MM-DD.
func MonthRange(t time.Time) (first, last string) {
	start := utils.StartOfMonth(t)
	return utils.FormatDate(start), utils.FormatDate(utils.AddDays(start, utils.DaysInMonth(start)-1))
}

// Month classifies every day of the month containing t. Days without intakes
// are resolved with HasScheduledIntakes and never expanded.
func Month(s *scheduler.Scheduler, t time.Time, courses []models.Course, packages []models.Package, records []models.IntakeRecord) []DayStatus {
	byDate := make(map[string][]models.IntakeRecord)
	for _, r := range records {
		date := r.Date
		if date == "" {
			if _, d, _, err := ParseKey(r.ID); err == nil {
				date = d
			}
		}
		byDate[date] = append(byDate[date], r)
	}

	active := scheduler.FilterActive(courses)
	start := utils.StartOfMonth(t)
	n := utils.DaysInMonth(start)

	days := make([]DayStatus, 0, n)
	for i := 0; i < n; i++ {
		day := utils.AddDays(start, i)
		status := constants.StatusNone
		if s.HasScheduledIntakes(day, active) {
			items := s.GenerateDaySchedule(day, active, packages)
			status = StatusFor(Merge(items, byDate[utils.FormatDate(day)]))
		}
		days = append(days, DayStatus{Date: day, Status: status})
	}
	return days
}
