// Package state holds the date cursor state shared by the TUI views.
package state

import (
	"time"

	"github.com/julianstephens/pharmtrack/internal/utils"
)

// ViewState is the date cursor of the TUI. It is a value; every move returns
// a new state and leaves the receiver untouched.
type ViewState struct {
	Today    time.Time // civil date of "today" in the configured timezone
	ViewDate time.Time // day shown on the Day tab
	Month    time.Time // first day of the month shown on the Calendar tab
	Selected time.Time // calendar cursor, always inside Month
}

func New(today time.Time) ViewState {
	today = utils.CivilDate(today)
	return ViewState{
		Today:    today,
		ViewDate: today,
		Month:    utils.StartOfMonth(today),
		Selected: today,
	}
}

// ShiftDay moves the Day tab by n days.
func (v ViewState) ShiftDay(n int) ViewState {
	v.ViewDate = utils.AddDays(v.ViewDate, n)
	return v
}

// MoveCursor moves the calendar cursor by n days; the month follows it.
func (v ViewState) MoveCursor(n int) ViewState {
	v.Selected = utils.AddDays(v.Selected, n)
	v.Month = utils.StartOfMonth(v.Selected)
	return v
}

// ShiftMonth moves the calendar by n months, keeping the cursor's day of
// month where the new month has it and clamping to the last day otherwise.
func (v ViewState) ShiftMonth(n int) ViewState {
	month := v.Month.AddDate(0, n, 0)
	day := v.Selected.Day()
	if last := utils.DaysInMonth(month); day > last {
		day = last
	}
	v.Month = month
	v.Selected = utils.AddDays(month, day-1)
	return v
}

// Open shows the calendar cursor's day on the Day tab.
func (v ViewState) Open() ViewState {
	v.ViewDate = v.Selected
	return v
}

// GoToday resets both the Day tab and the calendar to today.
func (v ViewState) GoToday() ViewState {
	return New(v.Today)
}

func (v ViewState) IsToday(t time.Time) bool {
	return utils.CivilDate(t).Equal(v.Today)
}
